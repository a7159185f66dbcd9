package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rollcall-io/rollcall/internal/attendance"
)

// Model is the root Bubbletea model for the TUI.
type Model struct {
	backend attendance.Backend
	session *attendance.Session // nil when the backend keeps no session

	// UI state
	focusedPanel  int     // panelClock or panelLogs
	activeOverlay int     // overlayNone, overlayHelp
	splitRatio    float64 // Default 0.45
	width         int
	height        int

	// busy is set while a login, logoff or requested log load runs.
	busy     bool
	watching bool
	ticking  bool
	err      error
	errSeq   int // bumped per error so stale clear timers are ignored

	// Child components
	form      *ClockForm
	logViewer *LogViewer

	// Program reference for goroutine Send()
	program *programRef
	now     func() time.Time
}

// NewModel creates the initial TUI model.
func NewModel(backend attendance.Backend, name string, program *programRef) Model {
	m := Model{
		backend:    backend,
		splitRatio: 0.45,
		form:       NewClockForm(name),
		logViewer:  NewLogViewer(),
		program:    program,
		now:        time.Now,
	}
	if h, ok := backend.(attendance.SessionHolder); ok {
		m.session = h.Session()
	}
	return m
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadLogsCmd(m.backend, false),
		textinput.Blink,
	)
}

// Update processes messages and returns an updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// ── Window resize ──────────────────────────────────────────────
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateDimensions()
		return m, nil

	// ── Key events ─────────────────────────────────────────────────
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	// ── Mouse events ───────────────────────────────────────────────
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	// ── Attendance results ─────────────────────────────────────────
	case ActionDoneMsg:
		m.busy = false
		m.err = nil
		m.form.SetStatus(msg.Receipt.Message(), false)

		var cmds []tea.Cmd
		if msg.Receipt.Kind != attendance.ReceiptOpened && !m.watching {
			cmds = append(cmds, loadLogsCmd(m.backend, false))
		}
		if m.sessionOpen() && !m.ticking {
			m.ticking = true
			cmds = append(cmds, clockTick())
		}
		return m, tea.Batch(cmds...)

	case LogsLoadedMsg:
		m.logViewer.SetTable(msg.Table)
		if msg.Requested {
			m.busy = false
			m.setFocus(panelLogs, 0)
		}
		return m, nil

	case LogFileChangedMsg:
		return m, loadLogsCmd(m.backend, false)

	case clockTickMsg:
		if m.sessionOpen() {
			return m, clockTick()
		}
		m.ticking = false
		return m, nil

	// ── Error handling ─────────────────────────────────────────────
	case ErrorMsg:
		if !msg.Background {
			m.busy = false
		}
		m.err = msg.Err
		m.errSeq++
		m.form.SetStatus(userMessage(msg.Err), true)
		return m, clearErrorAfter(5*time.Second, m.errSeq)

	case ClearErrorMsg:
		if msg.Seq == m.errSeq {
			m.err = nil
		}
		return m, nil
	}

	cmd := m.forwardToFocused(msg)
	return m, cmd
}

// handleKey processes key events.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Overlay captures everything
	if m.activeOverlay != overlayNone {
		if key.Matches(msg, overlayKeys.Cancel) || key.Matches(msg, globalKeys.Help) {
			m.activeOverlay = overlayNone
		}
		if key.Matches(msg, globalKeys.Quit) {
			return m.doQuit()
		}
		return nil
	}

	switch {
	case key.Matches(msg, globalKeys.Quit):
		return m.doQuit()
	case key.Matches(msg, globalKeys.Help):
		m.activeOverlay = overlayHelp
		return nil
	case key.Matches(msg, globalKeys.Tab):
		m.cycleFocus(1)
		return nil
	case key.Matches(msg, globalKeys.ShiftTab):
		m.cycleFocus(-1)
		return nil
	case key.Matches(msg, globalKeys.Login):
		return m.login()
	case key.Matches(msg, globalKeys.Logoff):
		return m.logoff()
	case key.Matches(msg, globalKeys.Refresh):
		return m.showLogs()
	}

	if m.focusedPanel == panelLogs {
		return m.logViewer.Update(msg)
	}
	return m.handleFormKey(msg)
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	if m.form.Focus() == focusName {
		if msg.Type == tea.KeyEnter {
			m.form.SetFocus(focusLogin)
			return nil
		}
		return m.form.UpdateInput(msg)
	}

	switch {
	case key.Matches(msg, formKeys.Press):
		return m.press(m.form.Focus())
	case key.Matches(msg, formKeys.Left):
		m.form.MoveButton(-1)
	case key.Matches(msg, formKeys.Right):
		m.form.MoveButton(1)
	}
	return nil
}

func (m *Model) forwardToFocused(msg tea.Msg) tea.Cmd {
	if m.focusedPanel == panelClock && m.form.Focus() == focusName {
		return m.form.UpdateInput(msg)
	}
	return nil
}

// cycleFocus walks name → Login → Logoff → Show Logs → log table.
func (m *Model) cycleFocus(delta int) {
	stops := formFocusCount + 1
	cur := m.form.Focus()
	if m.focusedPanel == panelLogs {
		cur = formFocusCount
	}
	next := ((cur+delta)%stops + stops) % stops
	if next == formFocusCount {
		m.setFocus(panelLogs, 0)
	} else {
		m.setFocus(panelClock, next)
	}
}

func (m *Model) setFocus(panel, field int) {
	m.focusedPanel = panel
	if panel == panelLogs {
		m.form.Blur()
		m.logViewer.SetFocused(true)
		return
	}
	m.logViewer.SetFocused(false)
	m.form.SetFocus(field)
}

// ── Actions ──────────────────────────────────────────────────────

func (m *Model) press(button int) tea.Cmd {
	switch button {
	case focusLogin:
		return m.login()
	case focusLogoff:
		return m.logoff()
	case focusShowLogs:
		return m.showLogs()
	}
	return nil
}

func (m *Model) login() tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	return loginCmd(m.backend, m.form.Name())
}

func (m *Model) logoff() tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	return logoffCmd(m.backend, m.form.Name())
}

func (m *Model) showLogs() tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	return loadLogsCmd(m.backend, true)
}

// doQuit clears the program ref so late watcher events are dropped, then quits.
func (m *Model) doQuit() tea.Cmd {
	if m.program != nil {
		m.program.Clear()
	}
	return tea.Quit
}

func (m *Model) sessionOpen() bool {
	return m.session != nil && m.session.IsOpen()
}

// userMessage renders errors the way the form shows them.
func userMessage(err error) string {
	switch {
	case errors.Is(err, attendance.ErrMissingName):
		return "Please enter an employee name."
	case errors.Is(err, attendance.ErrAlreadyLoggedIn):
		return "You are already logged in."
	case errors.Is(err, attendance.ErrNotLoggedIn):
		return "You need to login first."
	default:
		return "Error: " + err.Error()
	}
}

// ── Mouse handling ───────────────────────────────────────────────

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || m.activeOverlay != overlayNone {
		return
	}
	layout := computeLayout(m.width, m.height, m.splitRatio)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if msg.X > layout.dividerCol {
			m.logViewer.ScrollUp(3)
		}
	case tea.MouseButtonWheelDown:
		if msg.X > layout.dividerCol {
			m.logViewer.ScrollDown(3)
		}
	case tea.MouseButtonLeft:
		if msg.X < layout.dividerCol {
			if m.focusedPanel != panelClock {
				m.setFocus(panelClock, focusName)
			}
		} else {
			m.setFocus(panelLogs, 0)
		}
	}
}

// ── Dimension helpers ────────────────────────────────────────────

func (m *Model) updateDimensions() {
	layout := computeLayout(m.width, m.height, m.splitRatio)
	leftInner, _ := layout.innerSize(panelClock)
	rightInner, innerHeight := layout.innerSize(panelLogs)

	m.form.SetWidth(leftInner)
	m.logViewer.SetSize(rightInner, innerHeight)
}

// ── View ─────────────────────────────────────────────────────────

// View renders the TUI.
func (m Model) View() string {
	if m.width < 72 || m.height < 16 {
		sizeStr := fmt.Sprintf("%dx%d", m.width, m.height)
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(colorYellow).
			Render(lipgloss.JoinVertical(lipgloss.Center,
				"Terminal too small",
				lipgloss.NewStyle().Foreground(colorDim).Render(
					"Need 72x16, have "+lipgloss.NewStyle().Bold(true).Render(sizeStr),
				),
			))
	}

	layout := computeLayout(m.width, m.height, m.splitRatio)

	var start time.Time
	open := false
	if m.session != nil {
		start, open = m.session.StartedAt()
	}
	badge := renderSessionBadge(m.session != nil, start, open, m.busy, m.now())
	header := renderHeader(m.backend.Describe(), badge, m.width)

	panels := renderPanels(m.form.View(), m.logViewer.View(), layout, m.focusedPanel)
	statusBar := renderStatusBar(&m, m.width)

	view := lipgloss.JoinVertical(lipgloss.Left, header, panels, statusBar)

	if m.activeOverlay == overlayHelp {
		view = renderOverlay(view, renderHelp(m.width), m.width, m.height)
	}
	return view
}
