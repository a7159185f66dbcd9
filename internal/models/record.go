// Package models contains shared data structures used across the application.
package models

// AttendanceRecord is one completed login/logoff cycle in the local journal.
type AttendanceRecord struct {
	EmployeeName string
	Date         string // YYYY-MM-DD of the login
	StartTime    string // HH:MM:SS
	EndTime      string // HH:MM:SS
}

// Fields returns the record in journal column order.
func (r AttendanceRecord) Fields() []string {
	return []string{r.EmployeeName, r.Date, r.StartTime, r.EndTime}
}

// EmployeeRow is the single row an employee owns in the remote roster.
// Empty LoginTime/LogoffTime means the cell was never written.
type EmployeeRow struct {
	EmployeeName string
	LoginTime    string // YYYY-MM-DD HH:MM:SS
	LogoffTime   string // YYYY-MM-DD HH:MM:SS
}

// Fields returns the row in roster column order.
func (r EmployeeRow) Fields() []string {
	return []string{r.EmployeeName, r.LoginTime, r.LogoffTime}
}

// LogTable is the read-only projection of a backend's rows used by viewers and exporters.
type LogTable struct {
	Columns []string
	Rows    [][]string
	Missing bool // backing store does not exist yet
}

// Len returns the number of data rows.
func (t *LogTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}
