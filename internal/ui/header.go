package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const logoText = "galley"

// renderHeader renders the status bar at the top of the screen.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	title := "Recipes"
	if m.snapshot.Category != "" {
		title = titleCase(m.snapshot.Category)
	}

	parts := []string{
		bg.Render(logoText, styles.Logo),
		bg.Render(title, styles.Text.Bold(true)),
		m.theme.Styles().PhaseStyle(m.snapshot.Phase).Render(m.snapshot.Phase.String()),
	}
	if n := len(m.recipes); n > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("%d recipes", n), styles.MutedText))
	}

	switch {
	case m.snapshot.Loading:
		parts = append(parts, bg.Render("Loading...", styles.WarningText.Bold(true)))
	case m.snapshot.IsOffline():
		parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
	case m.snapshot.LastError != nil:
		parts = append(parts, bg.Render("ERROR", styles.DangerText))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, bg.Render("updated "+m.snapshot.LastUpdated.Format("15:04:05"), styles.FaintText))
	}
	if m.notice != "" {
		parts = append(parts, bg.Render(m.notice, styles.InfoText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Padding(0, 1).
		Width(m.width).
		Render(bg.Join(parts, "  "))
}
