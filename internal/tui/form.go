package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Focus targets inside the Clock panel, in Tab order.
const (
	focusName = iota
	focusLogin
	focusLogoff
	focusShowLogs
	formFocusCount
)

var buttonLabels = map[int]string{
	focusLogin:    "Login",
	focusLogoff:   "Logoff",
	focusShowLogs: "Show Logs",
}

// ClockForm is the name input with the Login / Logoff / Show Logs buttons.
type ClockForm struct {
	nameInput textinput.Model
	focus     int
	status    string
	statusErr bool
	width     int
}

// NewClockForm creates the form, pre-filled with name.
func NewClockForm(name string) *ClockForm {
	ti := textinput.New()
	ti.Placeholder = "Employee name"
	ti.CharLimit = 100
	ti.Prompt = "> "
	ti.SetValue(name)
	ti.Focus()

	return &ClockForm{nameInput: ti, focus: focusName}
}

// SetWidth updates the inner width.
func (f *ClockForm) SetWidth(width int) {
	f.width = width
	w := width - 4
	if w < 10 {
		w = 10
	}
	f.nameInput.Width = w
}

// Name returns the entered employee name.
func (f *ClockForm) Name() string {
	return strings.TrimSpace(f.nameInput.Value())
}

// Focus returns the focused element.
func (f *ClockForm) Focus() int {
	return f.focus
}

// SetFocus focuses element i, blurring the text input when it leaves.
func (f *ClockForm) SetFocus(i int) {
	f.focus = i
	if i == focusName {
		f.nameInput.Focus()
	} else {
		f.nameInput.Blur()
	}
}

// Blur removes focus from every element.
func (f *ClockForm) Blur() {
	f.focus = -1
	f.nameInput.Blur()
}

// MoveButton moves between buttons, staying on the button row.
func (f *ClockForm) MoveButton(delta int) {
	if f.focus < focusLogin {
		return
	}
	next := f.focus + delta
	if next < focusLogin || next > focusShowLogs {
		return
	}
	f.SetFocus(next)
}

// SetStatus sets the inline status line.
func (f *ClockForm) SetStatus(msg string, isErr bool) {
	f.status = msg
	f.statusErr = isErr
}

// UpdateInput forwards a key to the name input.
func (f *ClockForm) UpdateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.nameInput, cmd = f.nameInput.Update(msg)
	return cmd
}

// View renders the form.
func (f *ClockForm) View() string {
	var b strings.Builder

	b.WriteString(labelStyle.Render("Employee Name"))
	b.WriteString("\n")
	b.WriteString(f.nameInput.View())
	b.WriteString("\n\n")

	buttons := make([]string, 0, 3)
	for i := focusLogin; i <= focusShowLogs; i++ {
		style := buttonStyle
		if f.focus == i {
			style = buttonFocusedStyle
		}
		buttons = append(buttons, style.Render(buttonLabels[i]))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
	if f.width > 0 && lipgloss.Width(row) > f.width {
		row = lipgloss.JoinVertical(lipgloss.Left, buttons...)
	}
	b.WriteString(row)

	if f.status != "" {
		b.WriteString("\n\n")
		style := statusOKStyle
		if f.statusErr {
			style = statusErrStyle
		}
		b.WriteString(style.Width(f.width).Render(f.status))
	}
	return b.String()
}
