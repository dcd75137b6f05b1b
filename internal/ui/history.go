package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/receipt/internal/state"
)

// handleHistoryKey processes keyboard input for the history view.
func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.snapshot.Jobs)
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selectedRow < count-1 {
			m.selectedRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = count - 1
	}

	return m, nil
}

func (m *Model) clampSelection() {
	if m.selectedRow >= len(m.snapshot.Jobs) {
		m.selectedRow = len(m.snapshot.Jobs) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// renderHistory renders recent submissions, newest first, with details for
// the selected one.
func (m Model) renderHistory() string {
	styles := m.theme.Styles()
	jobs := m.snapshot.Jobs
	if len(jobs) == 0 {
		return styles.FaintText.Render("Nothing printed yet")
	}

	now := time.Now()
	var b strings.Builder
	if !m.lastUpdated.IsZero() {
		b.WriteString(styles.FaintText.Render(fmt.Sprintf("%d jobs, updated %s", len(jobs), humanize.RelTime(m.lastUpdated, now, "ago", "from now"))))
		b.WriteString("\n")
	}
	header := fmt.Sprintf("%-10s %-9s %-11s %-8s %s", "TIME", "STATUS", "KIND", "TOOK", "ERROR")
	b.WriteString(styles.MutedText.Bold(true).Render(header))
	b.WriteString("\n")

	for i, job := range jobs {
		line := m.formatJobRow(job, now, styles)
		if i == m.selectedRow {
			line = styles.Selected.Width(m.width).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.selectedRow < len(jobs) {
		b.WriteString("\n")
		b.WriteString(m.renderJobDetail(jobs[m.selectedRow], now, styles))
	}
	return b.String()
}

func (m Model) formatJobRow(job state.Job, now time.Time, styles Styles) string {
	status := styles.StatusStyle(string(job.Status)).Width(9).Render(string(job.Status))
	errText := ""
	if job.Error != "" {
		errText = truncate(job.Error, max(m.width-44, 10))
	}
	return fmt.Sprintf("%-10s %s %-11s %-8s %s",
		job.Started.Local().Format("15:04:05"),
		status,
		job.Kind,
		formatElapsed(job.Duration(now)),
		errText,
	)
}

func (m Model) renderJobDetail(job state.Job, now time.Time, styles Styles) string {
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted)).Width(10)
	rows := []string{
		label.Render("Job") + styles.Text.Render(job.ID.String()),
		label.Render("Endpoint") + styles.Text.Render(m.endpoint(job.Path)),
		label.Render("Started") + styles.Text.Render(humanize.RelTime(job.Started, now, "ago", "from now")),
	}
	if job.Error != "" {
		rows = append(rows, label.Render("Error")+styles.DangerText.Render(job.Error))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Render(strings.Join(rows, "\n"))
}
