// Package tray implements the system tray icon and attendance menu.
package tray

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rollcall-io/rollcall/internal/attendance"
)

// maxRecentSlots is the number of pre-allocated "Recent" menu items.
const maxRecentSlots = 5

// State runs the tray actions against a backend for one employee.
type State struct {
	mu       sync.Mutex
	backend  attendance.Backend
	employee string
	session  *attendance.Session
	last     string
	timeout  time.Duration
}

// NewState creates tray state for employee.
func NewState(backend attendance.Backend, employee string) *State {
	s := &State{backend: backend, employee: strings.TrimSpace(employee), timeout: time.Minute}
	if h, ok := backend.(attendance.SessionHolder); ok {
		s.session = h.Session()
	}
	return s
}

// Employee returns the configured name.
func (s *State) Employee() string {
	return s.employee
}

// Login records a login and returns the message to show.
func (s *State) Login() (string, error) {
	return s.run(s.backend.Login)
}

// Logoff records a logoff and returns the message to show.
func (s *State) Logoff() (string, error) {
	return s.run(s.backend.Logoff)
}

func (s *State) run(action func(context.Context, string) (attendance.Receipt, error)) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	r, err := action(ctx, s.employee)
	if err != nil {
		s.last = describeError(err)
		return s.last, err
	}
	s.last = r.Message()
	return s.last, nil
}

// Status is the one-line summary shown under the menu header.
func (s *State) Status() string {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if s.session != nil {
		if start, ok := s.session.StartedAt(); ok {
			return "Logged in since " + start.Format(attendance.TimeLayout)
		}
		if last == "" {
			return "Logged out"
		}
	}
	if last == "" {
		return s.backend.Describe()
	}
	return last
}

// CanLogin reports whether Login should be enabled. Remote backends always allow it.
func (s *State) CanLogin() bool {
	return s.session == nil || !s.session.IsOpen()
}

// CanLogoff reports whether Logoff should be enabled.
func (s *State) CanLogoff() bool {
	return s.session == nil || s.session.IsOpen()
}

// Recent returns up to n of the latest log rows, newest first, formatted for menu titles.
func (s *State) Recent(ctx context.Context, n int) ([]string, error) {
	table, err := s.backend.Logs(ctx)
	if err != nil {
		return nil, err
	}
	var out []string
	for i := len(table.Rows) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, formatRow(table.Rows[i]))
	}
	return out, nil
}

// Tooltip summarizes the state for the tray icon.
func (s *State) Tooltip() string {
	return fmt.Sprintf("Rollcall: %s (%s)", s.employee, s.Status())
}

func formatRow(row []string) string {
	cells := make([]string, 0, len(row))
	for _, c := range row {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return strings.Join(cells, "  ")
}

func describeError(err error) string {
	switch {
	case errors.Is(err, attendance.ErrMissingName):
		return "Set an employee name with 'rollcall init'"
	case errors.Is(err, attendance.ErrAlreadyLoggedIn):
		return "Already logged in"
	case errors.Is(err, attendance.ErrNotLoggedIn):
		return "You need to login first"
	default:
		return "Error: " + err.Error()
	}
}
