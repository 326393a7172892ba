package recipe

import (
	"net/url"

	"github.com/google/uuid"
)

// Recipe is one meal as served by TheMealDB, normalized from the flat wire
// schema. Values are built by Codec.Decode and treated as read-only afterwards.
type Recipe struct {
	ID              int
	Name            string
	Category        string
	Area            string
	Tags            string
	DrinkAlternate  string
	InstructionsRaw string

	ImageURL       *url.URL
	YoutubeURL     *url.URL
	SourceURL      *url.URL
	ImageSourceURL *url.URL

	// Derived during decode; never written back to the wire.
	Ingredients  []Ingredient
	Instructions []string
	ThumbnailURL *url.URL
}

// Ingredient is one line item of a recipe, in wire slot order.
type Ingredient struct {
	// ID is a random handle for list diffing only. It is not part of the
	// recipe and is not encoded.
	ID          uuid.UUID
	Name        string
	Measurement string

	imageBase string
}

// ImageURL returns the small ingredient image. Nil when the ingredient was not
// produced by a Codec with an image base configured.
func (i Ingredient) ImageURL() *url.URL {
	if i.imageBase == "" {
		return nil
	}
	u, err := url.Parse(i.imageBase + url.PathEscape(i.Name) + "-Small.png")
	if err != nil {
		return nil
	}
	return u
}

// Equal compares the wire-significant fields of two ingredients.
func (i Ingredient) Equal(other Ingredient) bool {
	return i.Name == other.Name && i.Measurement == other.Measurement
}

// HasDetails reports whether the recipe carries lookup data rather than just
// the listing fields.
func (r Recipe) HasDetails() bool {
	return len(r.Ingredients) > 0 && len(r.Instructions) > 0
}

// DisplayName falls back to a generic title for unnamed recipes.
func (r Recipe) DisplayName() string {
	if r.Name == "" {
		return "Recipes"
	}
	return r.Name
}
