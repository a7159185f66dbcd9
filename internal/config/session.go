package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rollcall-io/rollcall/internal/models"
)

// LoadSessionCheckpoint returns the open CLI session, or nil if none is recorded.
func LoadSessionCheckpoint() (*models.SessionCheckpoint, error) {
	path, err := SessionFile()
	if err != nil {
		return nil, err
	}
	return loadSessionCheckpoint(path)
}

// SaveSessionCheckpoint records an open CLI session.
func SaveSessionCheckpoint(id string, startedAt time.Time) error {
	path, err := SessionFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, &models.SessionCheckpoint{
		Version:   1,
		SessionID: id,
		StartedAt: startedAt,
	})
}

// RemoveSessionCheckpoint forgets the CLI session. A missing file is not an error.
func RemoveSessionCheckpoint() error {
	path, err := SessionFile()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove session checkpoint: %w", err)
	}
	return nil
}

func loadSessionCheckpoint(path string) (*models.SessionCheckpoint, error) {
	if !FileExists(path) {
		return nil, nil
	}
	var cp models.SessionCheckpoint
	if err := LoadYAML(path, &cp); err != nil {
		return nil, err
	}
	if cp.StartedAt.IsZero() {
		return nil, nil
	}
	return &cp, nil
}
