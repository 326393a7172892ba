package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/five82/galley/internal/recipe"
)

// Dump fetches category and writes the detailed recipes to w in the lookup
// response shape, sorted by id.
func Dump(ctx context.Context, w io.Writer, fetcher Fetcher, category string) error {
	recipes, err := fetcher.FetchWithDetails(ctx, category, nil)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", category, err)
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recipe.Envelope{Meals: recipes}); err != nil {
		return fmt.Errorf("encode recipes: %w", err)
	}
	return nil
}
