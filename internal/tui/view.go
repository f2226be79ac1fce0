package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Width(13).Foreground(lipgloss.Color("8"))
	focusLabel = labelStyle.Foreground(lipgloss.Color("12")).Bold(true)
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	headStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorRow  = lipgloss.NewStyle().Reverse(true)
	listBox    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dialogBox  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("12")).Padding(1, 3)
)

var actionHints = []struct{ key, label string }{
	{"ctrl+a", "add"},
	{"ctrl+e", "edit selected"},
	{"ctrl+s", "save edit"},
	{"ctrl+d", "delete selected"},
	{"ctrl+t", "summary"},
	{"ctrl+c", "quit"},
}

func (m *Model) View() string {
	if m.summary != "" {
		return m.summaryView()
	}

	var b strings.Builder
	title := "Expense Tracker"
	if m.editing {
		title += " · editing"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	for i := range m.inputs {
		label := labelStyle
		if i == m.focus {
			label = focusLabel
		}
		b.WriteString(label.Render(fieldLabels[i] + ":"))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	hints := make([]string, len(actionHints))
	for i, h := range actionHints {
		hints[i] = keyStyle.Render(h.key) + " " + hintStyle.Render(h.label)
	}
	b.WriteString(strings.Join(hints, "  "))
	b.WriteString("\n")

	b.WriteString(listBox.Render(m.listView()))
	b.WriteString("\n")
	b.WriteString(m.statusView())
	return b.String()
}

func (m *Model) listView() string {
	header := headStyle.Render(fmt.Sprintf("%-15s   %-15s   %-20s   %s", "Date", "Category", "Description", "Amount"))
	if len(m.rows) == 0 {
		return header + "\n" + hintStyle.Render("No expenses yet.")
	}

	lines := []string{header}
	end := m.offset + m.listHeight()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.offset; i < end; i++ {
		line := m.rows[i].Text
		if i == m.cursor {
			line = cursorRow.Render(line)
		}
		lines = append(lines, line)
	}
	if len(m.rows) > end-m.offset {
		lines = append(lines, hintStyle.Render(fmt.Sprintf("%d–%d of %d", m.offset+1, end, len(m.rows))))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusView() string {
	switch {
	case m.busy:
		return hintStyle.Render("Working…")
	case m.status == "":
		return ""
	case m.statusKind == statusError:
		return errorStyle.Render(m.status)
	default:
		return infoStyle.Render(m.status)
	}
}

func (m *Model) summaryView() string {
	body := strings.TrimRight(m.summary, "\n") + "\n\n" + hintStyle.Render("esc to close")
	box := dialogBox.Render(body)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
