// Package export renders the attendance log as CSV or PDF and ships it to object storage.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rollcall-io/rollcall/internal/models"
)

// CSV renders the table with its header row.
func CSV(table *models.LogTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(table.Columns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.WriteAll(table.Rows); err != nil {
		return nil, fmt.Errorf("failed to write rows: %w", err)
	}
	return buf.Bytes(), nil
}
