package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepClock returns the given times in order, repeating the last one.
func stepClock(times ...time.Time) func() time.Time {
	i := 0
	return func() time.Time {
		t := times[i]
		if i < len(times)-1 {
			i++
		}
		return t
	}
}

func at(hh, mm, ss int) time.Time {
	return time.Date(2026, 3, 14, hh, mm, ss, 0, time.Local)
}

func TestSessionLoginLogoff(t *testing.T) {
	s := NewSessionWithClock(stepClock(at(9, 0, 0), at(17, 30, 0)))

	start, err := s.Login("Bob")
	require.NoError(t, err)
	assert.Equal(t, at(9, 0, 0), start)
	assert.True(t, s.IsOpen())
	assert.NotEmpty(t, s.ID())

	iv, err := s.Logoff("Bob")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", iv.Date)
	assert.Equal(t, "09:00:00", iv.StartTime())
	assert.Equal(t, "17:30:00", iv.EndTime())
	assert.False(t, iv.End.Before(iv.Start))
	assert.False(t, s.IsOpen())
	assert.Empty(t, s.ID())
}

func TestSessionRejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		name    string
		run     func(s *Session) error
		wantErr error
	}{
		{
			name: "login with empty name",
			run: func(s *Session) error {
				_, err := s.Login("")
				return err
			},
			wantErr: ErrMissingName,
		},
		{
			name: "login with whitespace name",
			run: func(s *Session) error {
				_, err := s.Login("   \t")
				return err
			},
			wantErr: ErrMissingName,
		},
		{
			name: "logoff with empty name",
			run: func(s *Session) error {
				_, err := s.Logoff(" ")
				return err
			},
			wantErr: ErrMissingName,
		},
		{
			name: "logoff without login",
			run: func(s *Session) error {
				_, err := s.Logoff("Alice")
				return err
			},
			wantErr: ErrNotLoggedIn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSessionWithClock(stepClock(at(8, 0, 0)))
			err := tt.run(s)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, s.IsOpen())
		})
	}
}

func TestSessionDoubleLoginKeepsStart(t *testing.T) {
	s := NewSessionWithClock(stepClock(at(9, 0, 0), at(9, 5, 0)))

	_, err := s.Login("Alice")
	require.NoError(t, err)

	_, err = s.Login("Alice")
	assert.ErrorIs(t, err, ErrAlreadyLoggedIn)

	start, ok := s.StartedAt()
	require.True(t, ok)
	assert.Equal(t, at(9, 0, 0), start)
}

func TestSessionIsReusable(t *testing.T) {
	s := NewSessionWithClock(stepClock(at(8, 0, 0), at(12, 0, 0), at(13, 0, 0), at(17, 0, 0)))

	for i := 0; i < 2; i++ {
		_, err := s.Login("Dana")
		require.NoError(t, err)
		_, err = s.Logoff("Dana")
		require.NoError(t, err)
	}
	assert.False(t, s.IsOpen())
}

func TestSessionRestore(t *testing.T) {
	s := NewSessionWithClock(stepClock(at(16, 0, 0)))
	s.Restore("abc", at(7, 45, 0))

	assert.Equal(t, "abc", s.ID())
	iv, err := s.Logoff("Eve")
	require.NoError(t, err)
	assert.Equal(t, "07:45:00", iv.StartTime())
	assert.Equal(t, "16:00:00", iv.EndTime())
}
