package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Panel indices.
const (
	panelClock = 0
	panelLogs  = 1
)

// panelLayout holds computed dimensions for the two-panel layout.
type panelLayout struct {
	leftWidth     int
	rightWidth    int
	contentHeight int
	dividerCol    int // x position of the divider for mouse hit testing
}

func computeLayout(width, height int, splitRatio float64) panelLayout {
	// 1 line header, 1 line status bar
	contentHeight := height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}

	usable := width - 1 // 1 for divider
	leftWidth := int(float64(usable) * splitRatio)
	rightWidth := usable - leftWidth

	if leftWidth < 30 {
		leftWidth = 30
	}
	if rightWidth < 20 {
		rightWidth = 20
	}

	return panelLayout{
		leftWidth:     leftWidth,
		rightWidth:    rightWidth,
		contentHeight: contentHeight,
		dividerCol:    leftWidth,
	}
}

// innerSize returns the content area of a bordered panel that has a title line.
func (l panelLayout) innerSize(panel int) (width, height int) {
	width = l.leftWidth - 2
	if panel == panelLogs {
		width = l.rightWidth - 2
	}
	height = l.contentHeight - 3 // border top+bottom, title
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

func renderPanels(leftContent, rightContent string, layout panelLayout, focusedPanel int) string {
	leftStyle := unfocusedBorderStyle
	rightStyle := unfocusedBorderStyle
	if focusedPanel == panelClock {
		leftStyle = focusedBorderStyle
	} else {
		rightStyle = focusedBorderStyle
	}

	leftInner, innerHeight := layout.innerSize(panelClock)
	rightInner, _ := layout.innerSize(panelLogs)

	left := leftStyle.
		Width(leftInner).
		Height(innerHeight + 1).
		Render(panelTitleStyle.Render("Clock") + "\n" + truncateContent(leftContent, leftInner, innerHeight))

	right := rightStyle.
		Width(rightInner).
		Height(innerHeight + 1).
		Render(panelTitleStyle.Render("Logs") + "\n" + truncateContent(rightContent, rightInner, innerHeight))

	divider := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(strings.TrimSuffix(strings.Repeat("│\n", lipgloss.Height(left)), "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, left, divider, right)
}

// truncateContent ensures content fits within the given dimensions.
func truncateContent(content string, width, height int) string {
	lines := strings.Split(content, "\n")

	if len(lines) > height {
		lines = lines[:height]
	}

	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = ansi.Truncate(line, width, "")
		}
	}

	return strings.Join(lines, "\n")
}
