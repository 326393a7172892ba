package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/galley/internal/logtail"
)

func (m Model) refreshLogs() tea.Cmd {
	path := m.logPath
	if path == "" {
		return nil
	}
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, LogTailLines)
		return logEntriesMsg{entries: entries, err: err}
	}
}

func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logFollow = !m.logFollow
		if m.logFollow {
			m.logViewport.GotoBottom()
			return m, m.refreshLogs()
		}
	case key.Matches(msg, m.keys.Down):
		m.logFollow = false
		m.logViewport.ScrollDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logFollow = false
		m.logViewport.ScrollUp(1)
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logFollow = false
		m.logViewport.HalfPageDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logFollow = false
		m.logViewport.HalfPageUp()
	case key.Matches(msg, m.keys.Top):
		m.logFollow = false
		m.logViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logFollow = true
		m.logViewport.GotoBottom()
	}
	return m, nil
}

func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	m.logViewport.Width = m.contentWidth() - 2
	m.logViewport.Height = max(1, m.contentHeight()-4)

	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		lines = append(lines, m.formatLogEntry(e))
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

// formatLogEntry renders one entry as "time LEVEL [component] msg k=v".
func (m Model) formatLogEntry(e logtail.Entry) string {
	styles := m.theme.Styles()
	if e.Message == "" && e.Level == "" {
		return styles.MutedText.Render(e.Raw)
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(styles.FaintText.Render(e.Time.Format("15:04:05")))
		b.WriteString(" ")
	}
	b.WriteString(m.levelStyle(e.Level).Render(padRight(strings.ToUpper(e.Level), 5)))
	b.WriteString(" ")
	if e.Component != "" {
		b.WriteString(styles.AccentText.Render("[" + e.Component + "]"))
		b.WriteString(" ")
	}
	b.WriteString(styles.Text.Render(e.Message))
	for _, k := range e.FieldKeys() {
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(k + "=" + e.Fields[k]))
	}
	return b.String()
}

func (m Model) levelStyle(level string) lipgloss.Style {
	styles := m.theme.Styles()
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		return styles.DangerText
	case "warning", "warn":
		return styles.WarningText
	case "debug", "trace":
		return styles.FaintText
	default:
		return styles.InfoText
	}
}

func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)
	width := m.contentWidth()
	height := m.contentHeight() - 1 // status line below the box

	content := m.logViewport.View()
	switch {
	case m.logErr != nil:
		content = styles.DangerText.Render("read log: " + m.logErr.Error())
	case len(m.logEntries) == 0:
		content = styles.MutedText.Render("No log entries yet.")
	}
	box := m.renderBox("Log", content, width, height, true)

	follow := "paused"
	followStyle := styles.WarningText
	if m.logFollow {
		follow, followStyle = "following", styles.SuccessText
	}
	status := bg.Render(follow, followStyle) + bg.Spaces(2) +
		bg.Render(truncateMiddle(m.logPath, max(10, width-14)), styles.MutedText)
	return box + "\n" + bg.FillLine(status, width)
}
