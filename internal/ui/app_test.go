package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/galley/internal/mealdb"
	"github.com/five82/galley/internal/prefs"
	"github.com/five82/galley/internal/recipe"
	"github.com/five82/galley/internal/state"
)

type fakeLoader struct {
	loads   []string
	reloads int
}

func (f *fakeLoader) Load(category string) { f.loads = append(f.loads, category) }
func (f *fakeLoader) Reload()              { f.reloads++ }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T, width int) (Model, *fakeLoader, string) {
	t.Helper()
	loader := &fakeLoader{}
	prefsPath := filepath.Join(t.TempDir(), "prefs.toml")
	m := New(Options{Loader: loader, PrefsPath: prefsPath, Prefs: prefs.Defaults()})
	m = send(t, m, tea.WindowSizeMsg{Width: width, Height: 30})
	return m, loader, prefsPath
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return out
}

func dessertSnapshot() state.Snapshot {
	return state.Snapshot{
		Category: "dessert",
		Phase:    mealdb.PhaseSucceeded,
		Recipes: []recipe.Recipe{
			detailed(5, "Eton Mess"),
			detailed(1, "Apple Frangipan Tart"),
			detailed(4, "Dundee Cake"),
			detailed(2, "Bakewell Tart"),
			detailed(3, "Chocolate Gateau"),
			{ID: 6, Name: "Listing Only"},
		},
		LastUpdated: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestModel_SnapshotShapesGrid(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m = send(t, m, snapshotMsg(dessertSnapshot()))

	if len(m.recipes) != 5 {
		t.Fatalf("recipes = %d, want 5 (listing-only entry hidden)", len(m.recipes))
	}
	if m.recipes[0].Name != "Apple Frangipan Tart" {
		t.Fatalf("first recipe = %q, want Apple Frangipan Tart", m.recipes[0].Name)
	}
	view := m.View()
	if !strings.Contains(view, "Dessert") {
		t.Fatalf("view missing category title:\n%s", view)
	}
	if strings.Contains(view, "Listing Only") {
		t.Fatalf("view shows recipe without details")
	}
}

func TestModel_GridNavigationAndDetail(t *testing.T) {
	m, _, _ := newTestModel(t, 100) // two columns
	m = send(t, m, snapshotMsg(dessertSnapshot()))

	m = send(t, m, runes("j"))
	if m.selected != 2 {
		t.Fatalf("selected after down = %d, want 2", m.selected)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.selected != 3 {
		t.Fatalf("selected after right = %d, want 3", m.selected)
	}
	m = send(t, m, runes("j"))
	if m.selected != 3 {
		t.Fatalf("selected moved past last row: %d", m.selected)
	}
	m = send(t, m, runes("G"))
	if m.selected != 4 {
		t.Fatalf("selected after bottom = %d, want 4", m.selected)
	}
	m = send(t, m, runes("g"))
	if m.selected != 0 {
		t.Fatalf("selected after top = %d, want 0", m.selected)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.currentView != ViewDetail {
		t.Fatalf("view = %v, want detail", m.currentView)
	}
	if m.detailID != 1 {
		t.Fatalf("detailID = %d, want 1", m.detailID)
	}
	view := m.View()
	for _, want := range []string{"Apple Frangipan Tart", ingredientsHeading, instructionsHeading, "200g", "1. Mix."} {
		if !strings.Contains(view, want) {
			t.Fatalf("detail view missing %q:\n%s", want, view)
		}
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.currentView != ViewGrid {
		t.Fatalf("view after esc = %v, want grid", m.currentView)
	}
}

func TestModel_DetailFallsBackWhenRecipeDisappears(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m = send(t, m, snapshotMsg(dessertSnapshot()))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	next := state.Snapshot{
		Category:    "seafood",
		Phase:       mealdb.PhaseSucceeded,
		Recipes:     []recipe.Recipe{detailed(9, "Kedgeree")},
		LastUpdated: time.Now(),
	}
	m = send(t, m, snapshotMsg(next))
	if m.currentView != ViewGrid {
		t.Fatalf("view = %v, want grid after recipe vanished", m.currentView)
	}
	if m.selected != 0 {
		t.Fatalf("selected = %d, want clamped to 0", m.selected)
	}
}

func TestModel_CategoryPrompt(t *testing.T) {
	m, loader, prefsPath := newTestModel(t, 100)

	m = send(t, m, runes("c"))
	if !m.prompting {
		t.Fatal("expected prompt to open")
	}
	m = send(t, m, runes("Seafood"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.prompting {
		t.Fatal("prompt still open after enter")
	}
	if len(loader.loads) != 1 || loader.loads[0] != "Seafood" {
		t.Fatalf("loads = %v, want [Seafood]", loader.loads)
	}
	if got := prefs.Load(prefsPath).LastCategory; got != "Seafood" {
		t.Fatalf("saved LastCategory = %q, want Seafood", got)
	}
}

func TestModel_CategoryPromptCancel(t *testing.T) {
	m, loader, _ := newTestModel(t, 100)

	m = send(t, m, runes("/"))
	m = send(t, m, runes("q"))
	if !m.prompting {
		t.Fatal("q should type into the prompt, not quit")
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.prompting {
		t.Fatal("prompt still open after esc")
	}
	if len(loader.loads) != 0 {
		t.Fatalf("loads = %v, want none", loader.loads)
	}
}

func TestModel_ReloadAndPurge(t *testing.T) {
	loader := &fakeLoader{}
	purged := 0
	m := New(Options{
		Loader:     loader,
		PrefsPath:  filepath.Join(t.TempDir(), "prefs.toml"),
		PurgeCache: func() error { purged++; return nil },
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	m = send(t, m, runes("r"))
	if loader.reloads != 1 {
		t.Fatalf("reloads = %d, want 1", loader.reloads)
	}

	updated, cmd := m.Update(runes("X"))
	m = updated.(Model)
	if cmd == nil {
		t.Fatal("purge returned no command")
	}
	m = send(t, m, cmd())
	if purged != 1 {
		t.Fatalf("purged = %d, want 1", purged)
	}
	if loader.reloads != 2 {
		t.Fatalf("reloads after purge = %d, want 2", loader.reloads)
	}
	if m.notice != "cache cleared" {
		t.Fatalf("notice = %q", m.notice)
	}

	m = send(t, m, cachePurgedMsg{err: errors.New("locked")})
	if !strings.Contains(m.notice, "locked") {
		t.Fatalf("notice = %q, want failure", m.notice)
	}
}

func TestModel_PurgeWithoutCache(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	if _, cmd := m.Update(runes("X")); cmd != nil {
		t.Fatal("expected no command when cache is disabled")
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	m, _, prefsPath := newTestModel(t, 100)
	m = send(t, m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	if got := prefs.Load(prefsPath).Theme; got != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", got)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	m, _, _ := newTestModel(t, 100)
	m = send(t, m, runes("?"))
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not rendered")
	}
	m = send(t, m, runes("j"))
	if m.showHelp {
		t.Fatal("any key should close help")
	}
}

func TestModel_ErrorWithoutRecipes(t *testing.T) {
	m, _, _ := newTestModel(t, 120)
	m = send(t, m, snapshotMsg(state.Snapshot{
		Category:            "dessert",
		Phase:               mealdb.PhaseFailed,
		LastError:           &mealdb.Error{Kind: mealdb.KindTransport},
		ConsecutiveFailures: 2,
	}))
	view := m.View()
	for _, want := range []string{networkError, networkRecovery, "OFFLINE"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_LogsView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "galley.log")
	line := `{"component":"fetch","category":"dessert","level":"info","msg":"load finished","time":"2024-05-01T12:00:00Z"}`
	if err := os.WriteFile(path, []byte(line+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := New(Options{LogPath: path, PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 30})

	updated, cmd := m.Update(runes("l"))
	m = updated.(Model)
	if m.currentView != ViewLogs {
		t.Fatalf("view = %v, want logs", m.currentView)
	}
	if cmd == nil {
		t.Fatal("expected log read command")
	}
	m = send(t, m, cmd())
	if len(m.logEntries) != 1 {
		t.Fatalf("log entries = %d, want 1", len(m.logEntries))
	}
	view := m.View()
	for _, want := range []string{"load finished", "[fetch]", "category=dessert", "following"} {
		if !strings.Contains(view, want) {
			t.Fatalf("log view missing %q:\n%s", want, view)
		}
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	if m.logFollow {
		t.Fatal("space should pause follow")
	}
}

func TestModel_NotReady(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View before size = %q", got)
	}
}
