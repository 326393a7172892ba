package ui

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/galley/internal/recipe"
)

const (
	ingredientsHeading  = "Ingredients"
	instructionsHeading = "Instructions"
)

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.detailViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.detailViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.detailViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.detailViewport.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.detailViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.detailViewport.GotoBottom()
	}
	return m, nil
}

func (m *Model) updateDetailViewport() {
	if !m.ready {
		return
	}
	m.detailViewport.Width = m.contentWidth() - 2
	m.detailViewport.Height = max(1, m.contentHeight()-3)
	r, ok := m.recipeByID(m.detailID)
	if !ok {
		m.detailViewport.SetContent("")
		return
	}
	m.detailViewport.SetContent(m.detailContent(r, m.detailViewport.Width))
}

func (m Model) renderDetail() string {
	r, ok := m.recipeByID(m.detailID)
	title := "Recipe"
	if ok {
		title = r.DisplayName()
	}
	return m.renderBox(title, m.detailViewport.View(), m.contentWidth(), m.contentHeight(), true)
}

// detailContent lays out one recipe for the detail viewport.
func (m Model) detailContent(r recipe.Recipe, width int) string {
	styles := m.theme.Styles()
	wrap := lipgloss.NewStyle().Width(max(10, width))
	var b strings.Builder

	var meta []string
	for _, v := range []string{r.Category, r.Area} {
		if v != "" {
			meta = append(meta, v)
		}
	}
	if len(meta) > 0 {
		b.WriteString(styles.MutedText.Render(strings.Join(meta, " · ")))
		b.WriteString("\n")
	}
	if r.Tags != "" {
		b.WriteString(styles.InfoText.Render("tags: " + strings.ReplaceAll(r.Tags, ",", ", ")))
		b.WriteString("\n")
	}
	links := []struct {
		label string
		u     *url.URL
	}{
		{"image", r.ImageURL},
		{"video", r.YoutubeURL},
		{"source", r.SourceURL},
	}
	for _, l := range links {
		if l.u == nil {
			continue
		}
		b.WriteString(styles.FaintText.Render(padRight(l.label, 8)))
		b.WriteString(styles.Text.Render(truncateMiddle(l.u.String(), max(10, width-8))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render(ingredientsHeading))
	b.WriteString("\n")
	measureWidth := 0
	for _, ing := range r.Ingredients {
		measureWidth = max(measureWidth, len([]rune(ing.Measurement)))
	}
	measureWidth = min(measureWidth, width/3)
	for _, ing := range r.Ingredients {
		b.WriteString("  ")
		b.WriteString(styles.WarningText.Render(padRight(truncate(ing.Measurement, measureWidth), measureWidth)))
		b.WriteString("  ")
		b.WriteString(styles.Text.Render(ing.Name))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.AccentText.Bold(true).Render(instructionsHeading))
	b.WriteString("\n")
	for _, step := range r.Instructions {
		b.WriteString(wrap.Render(styles.Text.Render(step)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
