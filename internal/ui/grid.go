package ui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/galley/internal/recipe"
)

// shapeRecipes keeps recipes that have both ingredients and instructions and
// orders them by name. Equal names fall back to ID so the order is stable
// across refreshes.
func shapeRecipes(in []recipe.Recipe) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, len(in))
	for _, r := range in {
		if r.HasDetails() {
			out = append(out, r)
		}
	}
	slices.SortStableFunc(out, func(a, b recipe.Recipe) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// gridColumns picks the number of card columns for a terminal width.
func gridColumns(width int) int {
	switch {
	case width >= LayoutWideWidth:
		return 3
	case width >= LayoutCompactWidth:
		return 2
	default:
		return 1
	}
}

func (m Model) recipeByID(id int) (recipe.Recipe, bool) {
	for _, r := range m.recipes {
		if r.ID == id {
			return r, true
		}
	}
	return recipe.Recipe{}, false
}

func (m Model) handleGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.recipes)
	if n == 0 {
		return m, nil
	}
	cols := gridColumns(m.width)
	rowsVisible := max(1, m.contentHeight()/gridCardHeight)

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.selected-cols >= 0 {
			m.selected -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected+cols < n {
			m.selected += cols
		}
	case key.Matches(msg, m.keys.Left):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Right):
		if m.selected < n-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = n - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		m.selected = min(n-1, m.selected+cols*max(1, rowsVisible/2))
	case key.Matches(msg, m.keys.HalfPageUp):
		m.selected = max(0, m.selected-cols*max(1, rowsVisible/2))
	case key.Matches(msg, m.keys.Open):
		m.detailID = m.recipes[m.selected].ID
		m.currentView = ViewDetail
		m.updateDetailViewport()
		m.detailViewport.GotoTop()
	}
	return m, nil
}

// renderGrid renders the recipe cards, paged so the selection stays visible.
func (m Model) renderGrid() string {
	styles := m.theme.Styles()
	width := m.contentWidth()
	height := m.contentHeight()
	title := "Recipes"
	if m.snapshot.Category != "" {
		title = titleCase(m.snapshot.Category)
	}

	if m.snapshot.LastError != nil && !m.snapshot.HasRecipes() {
		return m.renderBox(title, m.renderError(width), width, height, true)
	}
	if len(m.recipes) == 0 {
		msg := "No recipes to show."
		if m.snapshot.Loading {
			msg = "Loading recipes..."
		}
		return m.renderBox(title, styles.MutedText.Render(msg), width, height, true)
	}

	cols := gridColumns(m.width)
	cardWidth := max(10, width/cols-1)
	rowsVisible := max(1, height/gridCardHeight)
	selectedRow := m.selected / cols
	firstRow := 0
	if selectedRow >= rowsVisible {
		firstRow = selectedRow - rowsVisible + 1
	}

	var rows []string
	for row := firstRow; row < firstRow+rowsVisible; row++ {
		start := row * cols
		if start >= len(m.recipes) {
			break
		}
		end := min(start+cols, len(m.recipes))
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(m.recipes[i], cardWidth, i == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	if m.snapshot.LastError != nil {
		d := describeError(m.snapshot.LastError)
		body = styles.DangerText.Render(d.Message) + " " + styles.MutedText.Render(d.Recovery) + "\n" + body
	}
	return m.renderBox(fmt.Sprintf("%s (%d)", title, len(m.recipes)), body, width, height, true)
}

func (m Model) renderCard(r recipe.Recipe, width int, selected bool) string {
	styles := m.theme.Styles()
	inner := max(4, width-2)

	name := truncate(r.Name, inner)
	var meta []string
	if r.Area != "" {
		meta = append(meta, r.Area)
	}
	meta = append(meta, fmt.Sprintf("%d ingredients", len(r.Ingredients)))

	nameStyle := styles.Text.Bold(true)
	panel := styles.Panel
	if selected {
		nameStyle = styles.AccentText.Bold(true)
		panel = styles.FocusPanel
	}
	content := nameStyle.Render(name) + "\n" + styles.MutedText.Render(truncate(strings.Join(meta, " · "), inner))
	return panel.Width(inner).Render(content)
}

// renderBox draws a bordered panel with its title on the first line.
func (m Model) renderBox(title, content string, width, height int, focused bool) string {
	styles := m.theme.Styles()
	panel := styles.Panel
	if focused {
		panel = styles.FocusPanel
	}
	innerW := max(1, width-2)
	innerH := max(1, height-2)

	lines := strings.Split(content, "\n")
	if len(lines) > innerH-1 {
		lines = lines[:max(0, innerH-1)]
	}
	heading := styles.AccentText.Bold(true).Render(truncate(title, innerW))
	body := heading + "\n" + strings.Join(lines, "\n")
	return panel.Width(innerW).Height(innerH).Render(body)
}

func (m Model) renderError(width int) string {
	styles := m.theme.Styles()
	d := describeError(m.snapshot.LastError)
	var b strings.Builder
	b.WriteString(styles.DangerText.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Width(max(10, width-4)).Render(styles.Text.Render(d.Message)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render(d.Recovery))
	return b.String()
}
