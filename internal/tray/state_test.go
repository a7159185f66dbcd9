package tray

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollcall-io/rollcall/internal/attendance"
)

func newLocalState(t *testing.T, name string) *State {
	t.Helper()
	ticks := []time.Time{
		time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local),
		time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local),
		time.Date(2026, 3, 14, 13, 0, 0, 0, time.Local),
		time.Date(2026, 3, 14, 17, 30, 0, 0, time.Local),
	}
	now := func() time.Time {
		c := ticks[0]
		if len(ticks) > 1 {
			ticks = ticks[1:]
		}
		return c
	}
	backend := attendance.NewLocalBackend(
		attendance.NewSessionWithClock(now),
		attendance.NewJournal(filepath.Join(t.TempDir(), "attendance_log.csv")),
	)
	return NewState(backend, name)
}

func TestStateLoginLogoff(t *testing.T) {
	s := newLocalState(t, " Bob ")
	assert.Equal(t, "Bob", s.Employee())
	assert.Equal(t, "Logged out", s.Status())
	assert.True(t, s.CanLogin())
	assert.False(t, s.CanLogoff())

	msg, err := s.Login()
	require.NoError(t, err)
	assert.Equal(t, "Login time recorded: 09:00:00", msg)
	assert.Equal(t, "Logged in since 09:00:00", s.Status())
	assert.False(t, s.CanLogin())
	assert.True(t, s.CanLogoff())

	_, err = s.Logoff()
	require.NoError(t, err)
	assert.Contains(t, s.Status(), "Logoff time recorded: 12:00:00")
	assert.Contains(t, s.Tooltip(), "Rollcall: Bob")
}

func TestStateRecentNewestFirst(t *testing.T) {
	s := newLocalState(t, "Bob")
	for i := 0; i < 2; i++ {
		_, err := s.Login()
		require.NoError(t, err)
		_, err = s.Logoff()
		require.NoError(t, err)
	}

	recent, err := s.Recent(context.Background(), maxRecentSlots)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Bob  2026-03-14  13:00:00  17:30:00",
		"Bob  2026-03-14  09:00:00  12:00:00",
	}, recent)

	recent, err = s.Recent(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestStateErrors(t *testing.T) {
	s := newLocalState(t, "")
	_, err := s.Login()
	assert.ErrorIs(t, err, attendance.ErrMissingName)
	assert.Equal(t, "Set an employee name with 'rollcall init'", s.Status())

	s = newLocalState(t, "Bob")
	_, err = s.Logoff()
	assert.ErrorIs(t, err, attendance.ErrNotLoggedIn)
	assert.Equal(t, "You need to login first", s.Status())
}

func TestStateRecentMissingLog(t *testing.T) {
	s := newLocalState(t, "Bob")
	recent, err := s.Recent(context.Background(), maxRecentSlots)
	require.NoError(t, err)
	assert.Empty(t, recent)
}
