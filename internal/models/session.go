package models

import "time"

// SessionCheckpoint carries an open local session between one-shot CLI invocations.
// This corresponds to ~/.rollcall/session.yaml.
type SessionCheckpoint struct {
	Version   int       `yaml:"version"`
	SessionID string    `yaml:"session_id"`
	StartedAt time.Time `yaml:"started_at"`
}
