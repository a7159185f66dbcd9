package sheets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumnLetter(t *testing.T) {
	tests := []struct {
		col  int
		want string
	}{
		{1, "A"},
		{3, "C"},
		{26, "Z"},
		{27, "AA"},
		{52, "AZ"},
		{703, "AAA"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, columnLetter(tt.col), "column %d", tt.col)
	}
}

func TestQuoteSheet(t *testing.T) {
	assert.Equal(t, "'Logs'", quoteSheet("Logs"))
	assert.Equal(t, "'Bob''s sheet'", quoteSheet("Bob's sheet"))

	g := &GoogleSheet{title: "Logs"}
	assert.Equal(t, "'Logs'!C2", g.rangeOf("C2"))
}

func TestSpreadsheetQuery(t *testing.T) {
	got := spreadsheetQuery("O'Brien Attendance")
	assert.Contains(t, got, `name = 'O\'Brien Attendance'`)
	assert.Contains(t, got, "mimeType = '"+spreadsheetMimeType+"'")
}

func TestToStrings(t *testing.T) {
	got := toStrings([]interface{}{"Alice", nil, 42.0, true})
	assert.Equal(t, []string{"Alice", "", "42", "true"}, got)
}

func TestOpenGoogleSheetMissingCredentials(t *testing.T) {
	_, err := OpenGoogleSheet(context.Background(), GoogleConfig{
		Credentials: filepath.Join(t.TempDir(), "service_account.json"),
		Spreadsheet: "Employee_Attendance",
		Worksheet:   "Logs",
	})
	assert.ErrorIs(t, err, ErrCredentialsNotFound)
}

func TestRecordsFromRows(t *testing.T) {
	rows := [][]string{
		{"Employee Name", "Login Time", "Logoff Time"},
		{"Alice", "2026-03-14 09:00:00"},
		{},
		{"Bob", "2026-03-14 08:00:00", "2026-03-14 17:00:00"},
	}
	got := recordsFromRows(rows)
	assert.Equal(t, []map[string]string{
		{"Employee Name": "Alice", "Login Time": "2026-03-14 09:00:00", "Logoff Time": ""},
		{"Employee Name": "Bob", "Login Time": "2026-03-14 08:00:00", "Logoff Time": "2026-03-14 17:00:00"},
	}, got)

	assert.Empty(t, recordsFromRows(nil))
}
