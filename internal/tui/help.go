package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpSection struct {
	title string
	keys  []helpKey
}

type helpKey struct {
	key  string
	desc string
}

var helpSections = []helpSection{
	{
		title: "Global",
		keys: []helpKey{
			{"Ctrl+q", "Quit"},
			{"Ctrl+h", "Toggle help"},
			{"Tab", "Next field / panel"},
			{"Shift+Tab", "Previous field / panel"},
		},
	},
	{
		title: "Attendance",
		keys: []helpKey{
			{"Ctrl+l", "Login"},
			{"Ctrl+o", "Logoff"},
			{"Ctrl+r", "Show logs"},
		},
	},
	{
		title: "Clock",
		keys: []helpKey{
			{"(type)", "Employee name"},
			{"Enter", "Press focused button"},
			{"←/→", "Move between buttons"},
		},
	},
	{
		title: "Logs",
		keys: []helpKey{
			{"j/k ↑/↓", "Scroll entries"},
			{"PgUp/PgDn", "Page"},
			{"g/G", "First / last entry"},
		},
	},
}

// renderHelp renders the help overlay content.
func renderHelp(width int) string {
	maxWidth := 50
	if width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 30 {
		maxWidth = 30
	}

	lines := []string{overlayTitleStyle.Render("Keyboard Shortcuts")}
	for _, sec := range helpSections {
		header := lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Render(sec.title)
		lines = append(lines, "", header)

		for _, k := range sec.keys {
			keyCol := lipgloss.NewStyle().
				Width(14).
				Foreground(colorWhite).
				Bold(true).
				Render(k.key)
			lines = append(lines, "  "+keyCol+hintStyle.Render(k.desc))
		}
	}
	lines = append(lines, "", hintStyle.Render("Press Esc or Ctrl+h to close"))

	return overlayStyle.Width(maxWidth).Render(strings.Join(lines, "\n"))
}
