package ui

import (
	"testing"

	"github.com/five82/galley/internal/recipe"
)

func detailed(id int, name string) recipe.Recipe {
	return recipe.Recipe{
		ID:           id,
		Name:         name,
		Area:         "British",
		Ingredients:  []recipe.Ingredient{{Name: "Flour", Measurement: "200g"}},
		Instructions: []string{"1. Mix."},
	}
}

func TestShapeRecipes(t *testing.T) {
	in := []recipe.Recipe{
		detailed(3, "Tart"),
		{ID: 4, Name: "Listing only"},
		detailed(2, "Bakewell"),
		{ID: 5, Name: "No steps", Ingredients: []recipe.Ingredient{{Name: "Egg"}}},
		detailed(1, "Tart"),
	}
	out := shapeRecipes(in)

	wantIDs := []int{2, 1, 3}
	if len(out) != len(wantIDs) {
		t.Fatalf("shapeRecipes returned %d recipes, want %d", len(out), len(wantIDs))
	}
	for i, id := range wantIDs {
		if out[i].ID != id {
			t.Fatalf("out[%d].ID = %d, want %d (order by name then id)", i, out[i].ID, id)
		}
	}
	if in[0].ID != 3 {
		t.Fatalf("input was reordered")
	}
}

func TestShapeRecipes_Empty(t *testing.T) {
	if out := shapeRecipes(nil); len(out) != 0 {
		t.Fatalf("shapeRecipes(nil) = %v, want empty", out)
	}
}

func TestGridColumns(t *testing.T) {
	cases := []struct {
		width int
		want  int
	}{
		{0, 1},
		{LayoutCompactWidth - 1, 1},
		{LayoutCompactWidth, 2},
		{LayoutWideWidth - 1, 2},
		{LayoutWideWidth, 3},
		{300, 3},
	}
	for _, tc := range cases {
		if got := gridColumns(tc.width); got != tc.want {
			t.Fatalf("gridColumns(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}
