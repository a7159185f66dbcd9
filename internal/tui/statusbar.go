package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(m *Model, width int) string {
	if m.err != nil {
		return renderErrorBar(m.err.Error(), width)
	}

	left := " " + getKeyHints(m)

	right := ""
	if m.busy {
		right = lipgloss.NewStyle().Foreground(colorYellow).Render("Working...") + " "
	} else if m.watching {
		right = lipgloss.NewStyle().Foreground(colorGreen).Render("Live") + " "
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return statusBarStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func getKeyHints(m *Model) string {
	if m.activeOverlay != overlayNone {
		return keyHint("Esc", "close")
	}

	base := keyHint("Ctrl+q", "quit") + "  " + keyHint("Ctrl+h", "help") + "  " + keyHint("Tab", "next")
	if m.focusedPanel == panelLogs {
		return base + "  " + keyHint("j/k", "scroll") + "  " + keyHint("Ctrl+r", "refresh")
	}
	return base + "  " + keyHint("Ctrl+l", "login") + "  " + keyHint("Ctrl+o", "logoff") + "  " +
		keyHint("Ctrl+r", "logs")
}

func keyHint(k, desc string) string {
	if k == "" {
		return hintStyle.Render(desc)
	}
	return keyStyle.Render(k) + " " + hintStyle.Render(desc)
}

func renderErrorBar(msg string, width int) string {
	return statusBarStyle.
		Background(colorRed).
		Width(width).
		Render(" " + msg)
}
