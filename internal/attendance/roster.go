package attendance

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/rollcall-io/rollcall/internal/models"
)

// Roster column positions (1-based, worksheet convention).
const (
	colName   = 1
	colLogin  = 2
	colLogoff = 3
)

// RosterHeader is the header row of the remote worksheet.
var RosterHeader = []string{"Employee Name", "Login Time", "Logoff Time"}

// Worksheet is the remote tabular store. Rows and columns are 1-based and
// row 1 holds the header.
type Worksheet interface {
	ColumnValues(ctx context.Context, col int) ([]string, error)
	UpdateCell(ctx context.Context, row, col int, value string) error
	AppendRow(ctx context.Context, values []string) error
	Records(ctx context.Context) ([]map[string]string, error)
}

// UpsertKind tells whether a roster write touched an existing row.
type UpsertKind int

const (
	UpsertUpdated UpsertKind = iota
	UpsertCreated
)

// UpsertResult describes a roster write.
type UpsertResult struct {
	Kind UpsertKind
	Row  int
	At   time.Time
}

// Roster keeps one row per employee name in a worksheet, last write wins.
type Roster struct {
	sheet Worksheet
	now   func() time.Time
}

// NewRoster returns a roster over sheet using the wall clock.
func NewRoster(sheet Worksheet) *Roster {
	return NewRosterWithClock(sheet, time.Now)
}

// NewRosterWithClock returns a roster with an injected clock.
func NewRosterWithClock(sheet Worksheet, now func() time.Time) *Roster {
	return &Roster{sheet: sheet, now: now}
}

// RecordLogin overwrites the employee's login cell, or appends a new row.
func (r *Roster) RecordLogin(ctx context.Context, name string) (UpsertResult, error) {
	names, err := r.sheet.ColumnValues(ctx, colName)
	if err != nil {
		return UpsertResult{}, unavailable("read names", err)
	}

	at := r.now()
	stamp := at.Format(DateTimeLayout)

	if row := findRow(names, name); row > 0 {
		if err := r.sheet.UpdateCell(ctx, row, colLogin, stamp); err != nil {
			return UpsertResult{}, unavailable("update login time", err)
		}
		return UpsertResult{Kind: UpsertUpdated, Row: row, At: at}, nil
	}

	if len(names) == 0 {
		if err := r.sheet.AppendRow(ctx, RosterHeader); err != nil {
			return UpsertResult{}, unavailable("write header", err)
		}
		names = append(names, RosterHeader[0])
		log.Printf("[roster] wrote header row to empty worksheet")
	}
	if err := r.sheet.AppendRow(ctx, []string{name, stamp, ""}); err != nil {
		return UpsertResult{}, unavailable("append row", err)
	}
	return UpsertResult{Kind: UpsertCreated, Row: len(names) + 1, At: at}, nil
}

// RecordLogoff overwrites the employee's logoff cell.
// Returns ErrNotFound if the employee has no row.
func (r *Roster) RecordLogoff(ctx context.Context, name string) (UpsertResult, error) {
	names, err := r.sheet.ColumnValues(ctx, colName)
	if err != nil {
		return UpsertResult{}, unavailable("read names", err)
	}

	row := findRow(names, name)
	if row == 0 {
		return UpsertResult{}, notFoundError{name: name}
	}

	at := r.now()
	if err := r.sheet.UpdateCell(ctx, row, colLogoff, at.Format(DateTimeLayout)); err != nil {
		return UpsertResult{}, unavailable("update logoff time", err)
	}
	return UpsertResult{Kind: UpsertUpdated, Row: row, At: at}, nil
}

// FetchAll returns every data row. An empty worksheet yields an empty slice.
func (r *Roster) FetchAll(ctx context.Context) ([]models.EmployeeRow, error) {
	records, err := r.sheet.Records(ctx)
	if err != nil {
		return nil, unavailable("read records", err)
	}

	rows := make([]models.EmployeeRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, models.EmployeeRow{
			EmployeeName: rec[RosterHeader[0]],
			LoginTime:    rec[RosterHeader[1]],
			LogoffTime:   rec[RosterHeader[2]],
		})
	}
	return rows, nil
}

// findRow returns the 1-based row whose name cell equals name exactly,
// skipping the header, or 0.
func findRow(names []string, name string) int {
	for i := 1; i < len(names); i++ {
		if names[i] == name {
			return i + 1
		}
	}
	return 0
}

type notFoundError struct {
	name string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("employee '%s' not found, please log in first", e.name)
}

func (e notFoundError) Unwrap() error { return ErrNotFound }

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrBackendUnavailable, op, err)
}
