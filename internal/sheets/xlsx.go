package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"
)

// Workbook is a Worksheet stored in an .xlsx file. The file is re-opened on
// every call so writes from other instances are picked up.
type Workbook struct {
	mu    sync.Mutex
	path  string
	sheet string
}

// OpenWorkbook prepares the workbook at path, creating it and the worksheet if needed.
func OpenWorkbook(path, sheet string) (*Workbook, error) {
	if sheet == "" {
		return nil, fmt.Errorf("%w: empty worksheet name", ErrWorksheetNotFound)
	}
	w := &Workbook{path: path, sheet: sheet}
	if err := w.update(func(*excelize.File) (bool, error) { return false, nil }); err != nil {
		return nil, err
	}
	return w, nil
}

// Path returns the workbook file.
func (w *Workbook) Path() string {
	return w.path
}

// ColumnValues returns every cell of column col, header included.
func (w *Workbook) ColumnValues(_ context.Context, col int) ([]string, error) {
	rows, err := w.rows()
	if err != nil {
		return nil, err
	}
	return column(rows, col), nil
}

// UpdateCell overwrites one cell.
func (w *Workbook) UpdateCell(_ context.Context, row, col int, value string) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return w.update(func(f *excelize.File) (bool, error) {
		return true, f.SetCellStr(w.sheet, cell, value)
	})
}

// AppendRow writes values below the last used row.
func (w *Workbook) AppendRow(_ context.Context, values []string) error {
	return w.update(func(f *excelize.File) (bool, error) {
		rows, err := f.GetRows(w.sheet)
		if err != nil {
			return false, err
		}
		cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
		if err != nil {
			return false, err
		}
		cells := make([]interface{}, len(values))
		for i, v := range values {
			cells[i] = v
		}
		return true, f.SetSheetRow(w.sheet, cell, &cells)
	})
}

// Records returns every data row keyed by the header row.
func (w *Workbook) Records(_ context.Context) ([]map[string]string, error) {
	rows, err := w.rows()
	if err != nil {
		return nil, err
	}
	return recordsFromRows(rows), nil
}

func (w *Workbook) rows() ([][]string, error) {
	var rows [][]string
	err := w.update(func(f *excelize.File) (bool, error) {
		var err error
		rows, err = f.GetRows(w.sheet)
		return false, err
	})
	return rows, err
}

// update opens (or creates) the workbook, runs fn, and saves when fn reports a change.
func (w *Workbook) update(fn func(f *excelize.File) (bool, error)) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, created, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	dirty, err := fn(f)
	if err != nil {
		return fmt.Errorf("workbook %s: %w", w.path, err)
	}
	if !dirty && !created {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", w.path, err)
	}
	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", w.path, err)
	}
	return nil
}

func (w *Workbook) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(w.path); errors.Is(err, fs.ErrNotExist) {
		f := excelize.NewFile()
		if err := w.ensureSheet(f, true); err != nil {
			f.Close()
			return nil, false, err
		}
		return f, true, nil
	}

	f, err := excelize.OpenFile(w.path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open workbook %s: %w", w.path, err)
	}

	idx, err := f.GetSheetIndex(w.sheet)
	if err != nil {
		f.Close()
		return nil, false, err
	}
	if idx == -1 {
		if err := w.ensureSheet(f, false); err != nil {
			f.Close()
			return nil, false, err
		}
		return f, true, nil
	}
	return f, false, nil
}

func (w *Workbook) ensureSheet(f *excelize.File, fresh bool) error {
	const defaultSheet = "Sheet1"
	if fresh && w.sheet == defaultSheet {
		return nil
	}
	idx, err := f.NewSheet(w.sheet)
	if err != nil {
		return fmt.Errorf("failed to create worksheet %s: %w", w.sheet, err)
	}
	if fresh {
		f.SetActiveSheet(idx)
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return err
		}
	}
	return nil
}
