package ui

import (
	"testing"

	"github.com/five82/galley/internal/mealdb"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
	names[0] = "mutated"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames returned shared slice")
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_FallsBack(t *testing.T) {
	if got := GetTheme("nope"); got.Name != "Nightfox" {
		t.Fatalf("GetTheme fallback = %q, want Nightfox", got.Name)
	}
}

func TestThemesColorEveryPhase(t *testing.T) {
	phases := []mealdb.Phase{
		mealdb.PhaseIdle, mealdb.PhaseListing, mealdb.PhaseDetails,
		mealdb.PhaseSucceeded, mealdb.PhaseFailed,
	}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		for _, p := range phases {
			if th.PhaseColors[p.String()] == "" {
				t.Fatalf("theme %s has no color for phase %s", name, p)
			}
		}
	}
}
