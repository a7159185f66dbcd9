// Package attendance implements login/logoff tracking and the attendance backends.
package attendance

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Layouts used when persisting timestamps.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
	DateTimeLayout = "2006-01-02 15:04:05"
)

// Interval is a closed session ready to be persisted.
type Interval struct {
	Date  string
	Start time.Time
	End   time.Time
}

// StartTime returns the start formatted as HH:MM:SS.
func (iv Interval) StartTime() string { return iv.Start.Format(TimeLayout) }

// EndTime returns the end formatted as HH:MM:SS.
func (iv Interval) EndTime() string { return iv.End.Format(TimeLayout) }

// Session tracks whether a login is open for this process.
// The employee name is not part of the session; it is read fresh on every action.
type Session struct {
	mu    sync.Mutex
	id    string
	start *time.Time
	now   func() time.Time
}

// NewSession creates a closed session using the wall clock.
func NewSession() *Session {
	return NewSessionWithClock(time.Now)
}

// NewSessionWithClock creates a closed session with an injected clock.
func NewSessionWithClock(now func() time.Time) *Session {
	return &Session{now: now}
}

// Login opens the session and returns its start time.
func (s *Session) Login(name string) (time.Time, error) {
	if strings.TrimSpace(name) == "" {
		return time.Time{}, ErrMissingName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.start != nil {
		return time.Time{}, ErrAlreadyLoggedIn
	}
	start := s.now()
	s.start = &start
	s.id = uuid.NewString()
	return start, nil
}

// Logoff closes the session and returns the interval to persist.
func (s *Session) Logoff(name string) (Interval, error) {
	if strings.TrimSpace(name) == "" {
		return Interval{}, ErrMissingName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.start == nil {
		return Interval{}, ErrNotLoggedIn
	}
	start := *s.start
	end := s.now()
	s.start = nil
	s.id = ""

	return Interval{
		Date:  start.Format(DateLayout),
		Start: start,
		End:   end,
	}, nil
}

// IsOpen reports whether a login is currently open.
func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.start != nil
}

// StartedAt returns the open session's start time, if any.
func (s *Session) StartedAt() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.start == nil {
		return time.Time{}, false
	}
	return *s.start, true
}

// ID returns the open session's identifier, or "" when closed.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Restore reopens a session that was started by an earlier process.
func (s *Session) Restore(id string, start time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		id = uuid.NewString()
	}
	s.id = id
	s.start = &start
}
