package ui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/galley/internal/logtail"
	"github.com/five82/galley/internal/prefs"
	"github.com/five82/galley/internal/recipe"
	"github.com/five82/galley/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewGrid View = iota
	ViewDetail
	ViewLogs
)

// Loader starts category fetches. *app.Loader implements it.
type Loader interface {
	Load(category string)
	Reload()
}

// Options configures the UI.
type Options struct {
	Context      context.Context
	Store        *state.Store
	Loader       Loader
	LogPath      string
	Prefs        prefs.Prefs
	PrefsPath    string
	RefreshEvery time.Duration
	PurgeCache   func() error // nil when there is no cache
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx          context.Context
	store        *state.Store
	loader       Loader
	logPath      string
	prefs        prefs.Prefs
	prefsPath    string
	refreshEvery time.Duration
	purgeCache   func() error

	// UI state
	keys        keyMap
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	notice      string

	// Data state
	snapshot state.Snapshot
	recipes  []recipe.Recipe // shaped for display
	selected int

	// Detail state
	detailViewport viewport.Model
	detailID       int

	// Log state
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logFollow   bool
	logErr      error

	// Category prompt
	prompting bool
	prompt    textinput.Model
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	refresh := opts.RefreshEvery
	if refresh <= 0 {
		refresh = DefaultUIInterval
	}

	prompt := textinput.New()
	prompt.Placeholder = "e.g. Dessert, Seafood, Vegetarian"
	prompt.Prompt = "category> "
	prompt.CharLimit = 40
	prompt.Width = 30

	return Model{
		ctx:          ctx,
		store:        opts.Store,
		loader:       opts.Loader,
		logPath:      opts.LogPath,
		prefs:        opts.Prefs,
		prefsPath:    opts.PrefsPath,
		refreshEvery: refresh,
		purgeCache:   opts.PurgeCache,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(opts.Prefs.Theme),
		currentView:  ViewGrid,
		logFollow:    true,
		prompt:       prompt,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd(m.refreshEvery)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(m.contentWidth(), m.contentHeight())
			m.logViewport = viewport.New(m.contentWidth(), m.contentHeight())
		}
		m.ready = true
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.applySnapshot(state.Snapshot(msg))
		return m, nil

	case logEntriesMsg:
		m.logEntries, m.logErr = msg.entries, msg.err
		m.updateLogViewport()
		return m, nil

	case cachePurgedMsg:
		if msg.err != nil {
			m.notice = "cache clear failed: " + msg.err.Error()
			return m, nil
		}
		m.notice = "cache cleared"
		if m.loader != nil {
			m.loader.Reload()
		}
		return m, nil
	}

	if m.prompting {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	if m.prompting {
		b.WriteString("\n")
		b.WriteString(m.prompt.View())
	}
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.renderDetail()
	case ViewLogs:
		return m.renderLogs()
	default:
		return m.renderGrid()
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.prompting {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		m.updateDetailViewport()
		m.updateLogViewport()
		return m, nil

	case key.Matches(msg, m.keys.ViewLogs):
		m.currentView = ViewLogs
		return m, m.refreshLogs()

	case key.Matches(msg, m.keys.ViewGrid), key.Matches(msg, m.keys.Escape):
		m.currentView = ViewGrid
		return m, nil

	case key.Matches(msg, m.keys.Category):
		m.prompting = true
		m.prompt.SetValue(m.snapshot.Category)
		m.prompt.CursorEnd()
		return m, m.prompt.Focus()

	case key.Matches(msg, m.keys.Reload):
		m.notice = ""
		if m.loader != nil {
			m.loader.Reload()
		}
		return m, nil

	case key.Matches(msg, m.keys.PurgeCache):
		return m, purgeCacheCmd(m.purgeCache)
	}

	switch m.currentView {
	case ViewGrid:
		return m.handleGridKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewLogs:
		return m.handleLogsKey(msg)
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompting = false
		m.prompt.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Confirm) {
		category := strings.TrimSpace(m.prompt.Value())
		m.prompting = false
		m.prompt.Blur()
		if category == "" {
			return m, nil
		}
		m.selected = 0
		m.currentView = ViewGrid
		m.notice = ""
		m.prefs.LastCategory = category
		m.savePrefs()
		if m.loader != nil {
			m.loader.Load(category)
		}
		return m, fetchSnapshotCmd(m.store)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleTick refreshes the snapshot and, when following, the log view.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	if m.currentView == ViewLogs && m.logFollow {
		cmds = append(cmds, m.refreshLogs())
	}
	cmds = append(cmds, tickCmd(m.refreshEvery))
	return m, tea.Batch(cmds...)
}

// applySnapshot stores the latest snapshot and reshapes the grid when the
// recipe set changed.
func (m *Model) applySnapshot(snap state.Snapshot) {
	changed := snap.Category != m.snapshot.Category ||
		!snap.LastUpdated.Equal(m.snapshot.LastUpdated) ||
		len(snap.Recipes) != len(m.snapshot.Recipes)
	m.snapshot = snap
	if !changed {
		return
	}

	m.recipes = shapeRecipes(snap.Recipes)
	if m.selected >= len(m.recipes) {
		m.selected = max(0, len(m.recipes)-1)
	}
	if m.currentView == ViewDetail {
		if _, ok := m.recipeByID(m.detailID); !ok {
			m.currentView = ViewGrid
		}
		m.updateDetailViewport()
	}
}

func (m *Model) savePrefs() {
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.notice = "save prefs: " + err.Error()
	}
}

func (m Model) contentWidth() int {
	return max(10, m.width-4)
}

// contentHeight is the inner height of the main box: header and command bar
// take two lines and the box border two more.
func (m Model) contentHeight() int {
	h := m.height - 4
	if m.prompting {
		h--
	}
	return max(3, h)
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type logEntriesMsg struct {
	entries []logtail.Entry
	err     error
}

type cachePurgedMsg struct {
	err error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func purgeCacheCmd(purge func() error) tea.Cmd {
	if purge == nil {
		return nil
	}
	return func() tea.Msg {
		return cachePurgedMsg{err: purge()}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context is cancelled.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
