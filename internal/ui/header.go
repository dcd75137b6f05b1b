package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// renderHeader renders the top bar: backend reachability and job counters.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render("receipt", styles.Logo)}

	health := m.snapshot.Health
	switch {
	case !health.Checked:
		parts = append(parts, bg.Render("● connecting", styles.WarningText))
	case health.IsOffline():
		parts = append(parts, bg.Render("● OFFLINE", styles.DangerText))
	case health.LastError != nil:
		parts = append(parts, bg.Render("● retrying", styles.WarningText))
	default:
		parts = append(parts, bg.Render("● ONLINE", styles.SuccessText))
	}

	parts = append(parts, bg.Render(truncateMiddle(m.endpoint("/"), 40), styles.MutedText))

	failedStyle := styles.MutedText
	if m.snapshot.Failed > 0 {
		failedStyle = styles.DangerText
	}
	parts = append(parts,
		bg.Render("Printed:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", m.snapshot.Printed), styles.Text)+
			sep+bg.Render("•", styles.FaintText)+sep+
			bg.Render("Failed:", styles.MutedText)+bg.Space()+
			bg.Render(fmt.Sprintf("%d", m.snapshot.Failed), failedStyle),
	)

	if !health.CheckedAt.IsZero() && m.width >= 100 {
		parts = append(parts, bg.Render("checked "+humanize.Time(health.CheckedAt), styles.FaintText))
	}

	if health.LastError != nil && m.width >= 120 {
		parts = append(parts, bg.Render(truncate(health.LastError.Error(), 50), styles.DangerText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the view tabs and the most useful shortcuts.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	tabs := []struct {
		view  View
		key   string
		label string
	}{
		{ViewCompose, "F2", "Compose"},
		{ViewHistory, "F3", "History"},
		{ViewLogs, "F4", "Logs"},
	}

	var parts []string
	for _, tab := range tabs {
		style := styles.MutedText
		if tab.view == m.currentView {
			style = styles.AccentText.Bold(true)
		}
		parts = append(parts, bg.Render("<"+tab.key+">", styles.WarningText)+bg.Space()+bg.Render(tab.label, style))
	}
	for _, binding := range m.keys.ShortHelp() {
		h := binding.Help()
		if h.Key == "f3" || h.Key == "f4" {
			continue
		}
		parts = append(parts, bg.Render("<"+h.Key+">", styles.FaintText)+bg.Space()+bg.Render(h.Desc, styles.FaintText))
	}
	return bg.FillLine(bg.Join(parts, "  "), m.width)
}

// renderStatusBar shows the request state: spinner while busy, otherwise the
// last error or notice.
func (m Model) renderStatusBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var content string
	switch {
	case m.request.Disabled:
		content = bg.Render(m.spinner.View(), styles.AccentText) + bg.Space() +
			bg.Render("printing...", styles.AccentText)
	case m.request.Failed:
		content = bg.Render("ERROR", styles.DangerText.Bold(true)) + bg.Space() +
			bg.Render(truncate(m.request.Error, max(m.width-10, 10)), styles.DangerText)
	case m.notice != "":
		content = bg.Render(m.notice, styles.SuccessText)
	default:
		content = bg.Render("ready", styles.MutedText)
	}
	return styles.Footer.
		Padding(0).
		Width(m.width).
		Render(strings.TrimRight(content, " "))
}
