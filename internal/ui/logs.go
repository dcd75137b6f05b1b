package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/receipt/internal/logtail"
)

type logsMsg []logtail.Entry

type logErrorMsg struct {
	err error
}

// refreshLogs reads the tail of the application log.
func (m Model) refreshLogs() tea.Cmd {
	if m.logPath == "" {
		return nil
	}
	path := m.logPath
	return func() tea.Msg {
		entries, err := logtail.ReadEntries(path, logLineLimit)
		if err != nil {
			return logErrorMsg{err: err}
		}
		return logsMsg(entries)
	}
}

func (m Model) logViewportHeight() int {
	// header, command bar, log title, status bar
	h := m.height - 4
	if h < 1 {
		return 1
	}
	return h
}

// updateLogViewport re-renders log entries into the viewport.
func (m *Model) updateLogViewport() {
	if !m.ready {
		return
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.logEntries))
	for _, entry := range m.logEntries {
		lines = append(lines, formatLogEntry(entry, styles))
	}
	m.logViewport.SetContent(strings.Join(lines, "\n"))
	if m.logFollow {
		m.logViewport.GotoBottom()
	}
}

func formatLogEntry(entry logtail.Entry, styles Styles) string {
	var b strings.Builder
	if !entry.Time.IsZero() {
		b.WriteString(styles.MutedText.Render(entry.Time.Local().Format("15:04:05")))
		b.WriteString(" ")
	}
	if entry.Level != "" {
		b.WriteString(styles.LevelStyle(entry.Level).Render(strings.ToUpper(padRight(entry.Level, 5))))
		b.WriteString(" ")
	}
	b.WriteString(styles.Text.Render(entry.Message))
	if fields := entry.FieldString(); fields != "" {
		b.WriteString(" ")
		b.WriteString(styles.FaintText.Render(fields))
	}
	return b.String()
}

// handleLogsKey processes keyboard input for the logs view.
func (m Model) handleLogsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToggleFollow):
		m.logFollow = !m.logFollow
		if m.logFollow {
			m.logViewport.GotoBottom()
		}
	case key.Matches(msg, m.keys.Down):
		m.logFollow = false
		m.logViewport.LineDown(1)
	case key.Matches(msg, m.keys.Up):
		m.logFollow = false
		m.logViewport.LineUp(1)
	case key.Matches(msg, m.keys.Top):
		m.logFollow = false
		m.logViewport.GotoTop()
	case key.Matches(msg, m.keys.Bottom):
		m.logViewport.GotoBottom()
	case key.Matches(msg, m.keys.HalfPageDown):
		m.logFollow = false
		m.logViewport.HalfViewDown()
	case key.Matches(msg, m.keys.HalfPageUp):
		m.logFollow = false
		m.logViewport.HalfViewUp()
	}
	return m, nil
}

// renderLogs renders the log view.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()

	title := styles.AccentText.Bold(true).Render("Logs")
	title += " " + styles.MutedText.Render(truncateMiddle(m.logPath, 60))
	if m.logFollow {
		title += " " + styles.SuccessText.Render("following")
	} else {
		title += " " + styles.FaintText.Render("paused")
	}
	if m.logErr != nil {
		title += " " + styles.DangerText.Render(m.logErr.Error())
	}

	if len(m.logEntries) == 0 {
		return title + "\n" + styles.FaintText.Render("No log lines yet")
	}
	return title + "\n" + m.logViewport.View()
}
