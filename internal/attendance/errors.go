package attendance

import "errors"

// Sentinel errors returned by sessions, journals, rosters and backends.
// Match them with errors.Is.
var (
	ErrMissingName        = errors.New("please enter an employee name")
	ErrAlreadyLoggedIn    = errors.New("already logged in")
	ErrNotLoggedIn        = errors.New("you need to login first")
	ErrFileNotFound       = errors.New("no attendance log file found")
	ErrNotFound           = errors.New("employee not found")
	ErrBackendUnavailable = errors.New("attendance backend unavailable")
	ErrIO                 = errors.New("attendance log i/o failed")
)
