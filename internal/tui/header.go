package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func renderHeader(source string, badge string, width int) string {
	dot := lipgloss.NewStyle().Foreground(colorCyan).Render("●")
	name := lipgloss.NewStyle().Bold(true).Render("Rollcall")
	right := badge + " "

	room := width - lipgloss.Width(right) - 14
	if room < 1 {
		room = 1
	}
	if lipgloss.Width(source) > room {
		source = ansi.Truncate(source, room-1, "…")
	}
	src := lipgloss.NewStyle().Foreground(colorDim).Render(source)

	left := fmt.Sprintf(" %s %s  %s", dot, name, src)

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return headerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderSessionBadge shows whether the local session is open and for how long.
// tracked is false for backends without a session (remote).
func renderSessionBadge(tracked bool, start time.Time, open, busy bool, now time.Time) string {
	if busy {
		return badgeBusyStyle.Render("◌ Working")
	}
	if !tracked {
		return badgeIdleStyle.Render("● Remote")
	}
	if !open {
		return badgeIdleStyle.Render("○ Logged out")
	}
	return badgeActiveStyle.Render(fmt.Sprintf("● Logged in %s (%s)",
		start.Format("15:04:05"), formatElapsed(now.Sub(start))))
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
