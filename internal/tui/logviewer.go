package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rollcall-io/rollcall/internal/models"
)

// LogViewer shows the attendance log as a scrollable table.
type LogViewer struct {
	table   table.Model
	data    *models.LogTable
	loaded  bool // whether logs have been fetched at least once
	width   int
	height  int
	focused bool
}

// NewLogViewer creates a new log viewer.
func NewLogViewer() *LogViewer {
	t := table.New(table.WithHeight(10))

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorDim).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"}).
		Bold(false)
	t.SetStyles(s)

	return &LogViewer{table: t}
}

// SetSize updates dimensions.
func (l *LogViewer) SetSize(width, height int) {
	l.width = width
	l.height = height
	h := height - 2 // header + border line
	if h < 1 {
		h = 1
	}
	l.table.SetWidth(width)
	l.table.SetHeight(h)
	l.layoutColumns()
}

// SetFocused toggles keyboard focus.
func (l *LogViewer) SetFocused(focused bool) {
	l.focused = focused
	if focused {
		l.table.Focus()
	} else {
		l.table.Blur()
	}
}

// SetTable replaces the displayed log and scrolls to the newest entry.
func (l *LogViewer) SetTable(data *models.LogTable) {
	l.data = data
	l.loaded = true

	// Rows must never be wider than the columns while they are swapped.
	l.table.SetRows(nil)
	l.layoutColumns()

	if data == nil {
		return
	}
	n := len(data.Columns)
	rows := make([]table.Row, 0, len(data.Rows))
	for _, r := range data.Rows {
		row := make(table.Row, n)
		copy(row, r)
		rows = append(rows, row)
	}
	l.table.SetRows(rows)
	l.table.GotoBottom()
}

// Len returns the number of displayed rows.
func (l *LogViewer) Len() int {
	return l.data.Len()
}

// Update forwards navigation keys to the table.
func (l *LogViewer) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.table, cmd = l.table.Update(msg)
	return cmd
}

// ScrollUp moves the cursor up n rows.
func (l *LogViewer) ScrollUp(n int) {
	l.table.MoveUp(n)
}

// ScrollDown moves the cursor down n rows.
func (l *LogViewer) ScrollDown(n int) {
	l.table.MoveDown(n)
}

// View renders the log.
func (l *LogViewer) View() string {
	dim := lipgloss.NewStyle().Foreground(colorDim)
	switch {
	case !l.loaded:
		return dim.Render("Loading logs...")
	case l.data == nil || l.data.Missing:
		return dim.Render("No attendance log file found.")
	case l.data.Len() == 0:
		return dim.Render("No attendance records yet.")
	}

	footer := dim.Render(fmt.Sprintf("%d entries", l.data.Len()))
	return l.table.View() + "\n" + footer
}

// layoutColumns spreads the width over the columns, the name column getting a double share.
func (l *LogViewer) layoutColumns() {
	if l.data == nil || len(l.data.Columns) == 0 {
		l.table.SetColumns(nil)
		return
	}
	n := len(l.data.Columns)
	// each cell is padded by one column on either side
	avail := l.width - 2*n
	if avail < n {
		avail = n
	}
	unit := avail / (n + 1)
	if unit < 4 {
		unit = 4
	}

	cols := make([]table.Column, n)
	for i, title := range l.data.Columns {
		w := unit
		if i == 0 {
			w = avail - unit*(n-1)
		}
		cols[i] = table.Column{Title: title, Width: w}
	}
	l.table.SetColumns(cols)
}
