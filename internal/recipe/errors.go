package recipe

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedID reports a missing or non-integer idMeal.
	ErrMalformedID = errors.New("malformed recipe id")
	// ErrTooManyIngredients reports a recipe that cannot fit the wire slots.
	ErrTooManyIngredients = errors.New("too many ingredients")
)

// FieldError reports a wire field whose JSON type does not match the schema.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
