// Package sheets provides Worksheet drivers for the remote attendance roster.
package sheets

import "errors"

// Errors returned when a worksheet driver cannot be opened.
var (
	ErrCredentialsNotFound = errors.New("service account credentials not found")
	ErrSpreadsheetNotFound = errors.New("spreadsheet not found")
	ErrWorksheetNotFound   = errors.New("worksheet not found")
)

// recordsFromRows keys every data row by the header row, padding short rows.
func recordsFromRows(rows [][]string) []map[string]string {
	if len(rows) < 2 {
		return []map[string]string{}
	}
	header := rows[0]
	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmpty(row) {
			continue
		}
		rec := make(map[string]string, len(header))
		for i, h := range header {
			if h == "" {
				continue
			}
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out
}

// column extracts the 1-based column col from rows.
func column(rows [][]string, col int) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if col-1 < len(row) {
			out = append(out, row[col-1])
		} else {
			out = append(out, "")
		}
	}
	return out
}

func isEmpty(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
