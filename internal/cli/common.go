package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/rollcall-io/rollcall/internal/attendance"
	"github.com/rollcall-io/rollcall/internal/config"
	"github.com/rollcall-io/rollcall/internal/models"
	"github.com/rollcall-io/rollcall/internal/store"
)

// loadSettings reads settings and applies the global flag overrides.
func loadSettings() (*models.Settings, error) {
	path, err := config.SettingsPath(flagConfig)
	if err != nil {
		return nil, err
	}
	s, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	if flagBackend != "" {
		s.Backend = flagBackend
		if err := config.Validate(s); err != nil {
			return nil, err
		}
	}
	if flagName != "" {
		s.Employee = flagName
	}
	return s, nil
}

// openBackend loads settings and opens the configured backend.
func openBackend(ctx context.Context) (attendance.Backend, *models.Settings, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}
	b, err := store.Open(ctx, s)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s backend: %w", s.Backend, err)
	}
	return b, s, nil
}

// employeeName picks the name from positional args, then --name / settings.
func employeeName(args []string, s *models.Settings) string {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " "))
	}
	return strings.TrimSpace(s.Employee)
}

// restoreCheckpoint reopens a session started by an earlier `rollcall login`.
// It returns the session, or nil when the backend keeps none.
func restoreCheckpoint(b attendance.Backend) (*attendance.Session, error) {
	h, ok := b.(attendance.SessionHolder)
	if !ok {
		return nil, nil
	}
	sess := h.Session()
	cp, err := config.LoadSessionCheckpoint()
	if err != nil {
		return nil, err
	}
	if cp != nil {
		sess.Restore(cp.SessionID, cp.StartedAt)
	}
	return sess, nil
}

// syncCheckpoint writes or removes the checkpoint to match sess.
func syncCheckpoint(sess *attendance.Session) error {
	if sess == nil {
		return nil
	}
	if start, open := sess.StartedAt(); open {
		return config.SaveSessionCheckpoint(sess.ID(), start)
	}
	return config.RemoveSessionCheckpoint()
}
