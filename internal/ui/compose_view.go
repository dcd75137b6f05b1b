package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/receipt/internal/printer"
)

// renderCompose renders the document kind tabs and the active form.
func (m Model) renderCompose() string {
	styles := m.theme.Styles()
	var b strings.Builder

	kinds := make([]string, 0, len(printer.Kinds()))
	for _, kind := range printer.Kinds() {
		if kind == m.form.kind {
			kinds = append(kinds, styles.Selected.Padding(0, 1).Render(kind))
		} else {
			kinds = append(kinds, styles.MutedText.Padding(0, 1).Render(kind))
		}
	}
	b.WriteString(lipgloss.NewStyle().Width(m.width).Render(strings.Join(kinds, "")))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color(m.theme.Muted))
	focusColor := lipgloss.Color(m.theme.BorderFocus)
	focusLabel := label.Foreground(focusColor).Bold(true)

	for i, field := range m.form.fields {
		focused := i == m.form.focus
		marker := "  "
		l := label
		if focused {
			marker = lipgloss.NewStyle().Foreground(focusColor).Render("› ")
			l = focusLabel
		}
		b.WriteString(marker)
		b.WriteString(l.Render(field.def.label))

		switch field.def.kind {
		case fieldArea:
			frame := lipgloss.NewStyle().
				MarginLeft(2).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(lipgloss.Color(m.theme.Border))
			if focused {
				frame = frame.BorderForeground(focusColor)
			}
			b.WriteString("\n")
			b.WriteString(frame.Render(field.area.View()))
		case fieldToggle:
			box := "[ ]"
			if field.on {
				box = "[x]"
			}
			style := styles.Text
			if focused {
				style = styles.AccentText
			}
			b.WriteString(style.Render(box))
		case fieldFile:
			b.WriteString(field.input.View())
			if hint := fileHint(field.input.Value()); hint != "" {
				b.WriteString(" ")
				b.WriteString(styles.FaintText.Render(hint))
			}
		default:
			b.WriteString(field.input.View())
		}
		b.WriteString("\n")
	}

	if len(m.form.fields) == 0 {
		b.WriteString(styles.FaintText.Render("No options for this document."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	hint := "ctrl+s print  •  tab next field  •  ctrl+n/ctrl+p change document"
	if m.request.Disabled {
		hint = "printing, please wait"
	}
	b.WriteString(styles.FaintText.Render(hint))
	return b.String()
}
