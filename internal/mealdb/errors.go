package mealdb

import (
	"errors"
	"fmt"

	"github.com/five82/galley/internal/recipe"
)

// Kind classifies failures surfaced by the client and orchestrator.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidRequestTarget
	KindTransport
	KindServer
	KindDecoding
	KindNotFound
	KindMalformedID
	KindTooManyIngredients
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequestTarget:
		return "invalid request target"
	case KindTransport:
		return "transport error"
	case KindServer:
		return "server error"
	case KindDecoding:
		return "decoding error"
	case KindNotFound:
		return "not found"
	case KindMalformedID:
		return "malformed id"
	case KindTooManyIngredients:
		return "too many ingredients"
	default:
		return "unknown error"
	}
}

// Error carries the failure kind plus the operation and inner cause.
type Error struct {
	Kind       Kind
	Op         string
	StatusCode int // set for KindServer
	Err        error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Kind == KindServer {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: KindNotFound})
// works regardless of operation or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the failure kind from any error in the chain.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, recipe.ErrMalformedID):
		return KindMalformedID
	case errors.Is(err, recipe.ErrTooManyIngredients):
		return KindTooManyIngredients
	}
	return KindUnknown
}

// StatusCode returns the HTTP status of a server error, or zero.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Kind == KindServer {
		return e.StatusCode
	}
	return 0
}

// decodeFailure maps codec errors onto the client taxonomy.
func decodeFailure(op string, err error) error {
	kind := KindDecoding
	if errors.Is(err, recipe.ErrMalformedID) {
		kind = KindMalformedID
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
