package attendance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rollcall-io/rollcall/internal/models"
)

// JournalHeader is the header row of the local CSV journal.
var JournalHeader = []string{"Employee Name", "Date", "Start Time", "End Time"}

// Journal is the append-only CSV attendance log.
type Journal struct {
	path string
}

// NewJournal returns a journal backed by the CSV file at path.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

// Path returns the backing file path.
func (j *Journal) Path() string {
	return j.path
}

// AppendRecord appends one row, writing the header first if the file is new.
func (j *Journal) AppendRecord(rec models.AttendanceRecord) error {
	_, statErr := os.Stat(j.path)
	exists := statErr == nil

	if dir := filepath.Dir(j.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create directory %s: %v", ErrIO, dir, err)
		}
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", ErrIO, j.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !exists {
		if err := w.Write(JournalHeader); err != nil {
			return fmt.Errorf("%w: write header: %v", ErrIO, err)
		}
	}
	if err := w.Write(rec.Fields()); err != nil {
		return fmt.Errorf("%w: write record: %v", ErrIO, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: flush %s: %v", ErrIO, j.path, err)
	}
	return nil
}

// ReadAll returns every record in write order.
// Returns ErrFileNotFound if nothing has been written yet.
func (j *Journal) ReadAll() ([]models.AttendanceRecord, error) {
	f, err := os.Open(j.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, fmt.Errorf("%w: open %s: %v", ErrIO, j.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records []models.AttendanceRecord
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, fmt.Errorf("%w: read %s: %v", ErrIO, j.path, err)
		}
		if first {
			first = false
			continue
		}
		if isBlankRow(row) || len(row) < len(JournalHeader) {
			continue
		}
		records = append(records, models.AttendanceRecord{
			EmployeeName: row[0],
			Date:         row[1],
			StartTime:    row[2],
			EndTime:      row[3],
		})
	}
	return records, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
