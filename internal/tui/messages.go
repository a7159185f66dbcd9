package tui

import (
	"github.com/rollcall-io/rollcall/internal/attendance"
	"github.com/rollcall-io/rollcall/internal/models"
)

// ActionDoneMsg carries the receipt of a finished login or logoff.
type ActionDoneMsg struct {
	Receipt attendance.Receipt
}

// LogsLoadedMsg carries the attendance log. Requested is set when the user
// asked for it, as opposed to a background refresh.
type LogsLoadedMsg struct {
	Table     *models.LogTable
	Requested bool
}

// LogFileChangedMsg signals that the file behind the backend changed on disk.
type LogFileChangedMsg struct{}

// ErrorMsg carries an error to display. Background is set for errors from
// refreshes the user did not start; those leave the busy flag alone.
type ErrorMsg struct {
	Err        error
	Background bool
}

// ClearErrorMsg clears the error display unless a newer error replaced it.
type ClearErrorMsg struct {
	Seq int
}

// clockTickMsg redraws the elapsed session time.
type clockTickMsg struct{}
