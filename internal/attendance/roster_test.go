package attendance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSheet is an in-memory Worksheet.
type fakeSheet struct {
	rows    [][]string
	failAll error
	appends int
	updates int
}

func newFakeSheet(rows ...[]string) *fakeSheet {
	return &fakeSheet{rows: rows}
}

func (f *fakeSheet) ColumnValues(_ context.Context, col int) ([]string, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	var out []string
	for _, row := range f.rows {
		v := ""
		if col-1 < len(row) {
			v = row[col-1]
		}
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeSheet) UpdateCell(_ context.Context, row, col int, value string) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.updates++
	r := f.rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	f.rows[row-1] = r
	return nil
}

func (f *fakeSheet) AppendRow(_ context.Context, values []string) error {
	if f.failAll != nil {
		return f.failAll
	}
	f.appends++
	f.rows = append(f.rows, append([]string(nil), values...))
	return nil
}

func (f *fakeSheet) Records(_ context.Context) ([]map[string]string, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	if len(f.rows) < 2 {
		return nil, nil
	}
	header := f.rows[0]
	var out []map[string]string
	for _, row := range f.rows[1:] {
		rec := map[string]string{}
		for i, h := range header {
			if i < len(row) {
				rec[h] = row[i]
			} else {
				rec[h] = ""
			}
		}
		out = append(out, rec)
	}
	return out, nil
}

func TestRosterLoginTwiceKeepsOneRow(t *testing.T) {
	sheet := newFakeSheet(RosterHeader)
	r := NewRosterWithClock(sheet, stepClock(at(9, 0, 0), at(9, 30, 0)))
	ctx := context.Background()

	first, err := r.RecordLogin(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, UpsertCreated, first.Kind)

	second, err := r.RecordLogin(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, UpsertUpdated, second.Kind)

	require.Len(t, sheet.rows, 2)
	assert.Equal(t, []string{"Alice", "2026-03-14 09:30:00", ""}, sheet.rows[1])
}

func TestRosterCarolLoginThenLogoff(t *testing.T) {
	sheet := newFakeSheet(RosterHeader, []string{"Bob", "2026-03-13 09:00:00", "2026-03-13 17:00:00"})
	r := NewRosterWithClock(sheet, stepClock(at(8, 15, 0), at(16, 45, 0)))
	ctx := context.Background()

	res, err := r.RecordLogin(ctx, "Carol")
	require.NoError(t, err)
	assert.Equal(t, UpsertCreated, res.Kind)
	assert.Equal(t, 3, res.Row)
	assert.Equal(t, []string{"Carol", "2026-03-14 08:15:00", ""}, sheet.rows[2])

	res, err = r.RecordLogoff(ctx, "Carol")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Row)
	assert.Equal(t, []string{"Carol", "2026-03-14 08:15:00", "2026-03-14 16:45:00"}, sheet.rows[2])
	assert.Len(t, sheet.rows, 3)
}

func TestRosterLogoffUnknownName(t *testing.T) {
	sheet := newFakeSheet(RosterHeader, []string{"Bob", "x", ""})
	r := NewRoster(sheet)

	_, err := r.RecordLogoff(context.Background(), "Zed")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "'Zed'")
	assert.Zero(t, sheet.updates)
	assert.Zero(t, sheet.appends)
}

func TestRosterDoesNotMatchHeader(t *testing.T) {
	sheet := newFakeSheet(RosterHeader)
	r := NewRoster(sheet)

	_, err := r.RecordLogoff(context.Background(), "Employee Name")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRosterMatchesNamesExactly(t *testing.T) {
	sheet := newFakeSheet(RosterHeader, []string{"Alice ", "2026-03-13 09:00:00", ""})
	r := NewRosterWithClock(sheet, stepClock(at(9, 0, 0)))

	res, err := r.RecordLogin(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, UpsertCreated, res.Kind)
	assert.Equal(t, 3, res.Row)
	require.Len(t, sheet.rows, 3)
	assert.Equal(t, "2026-03-13 09:00:00", sheet.rows[1][1])

	_, err = r.RecordLogoff(context.Background(), "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRosterWritesHeaderToEmptySheet(t *testing.T) {
	sheet := newFakeSheet()
	r := NewRosterWithClock(sheet, stepClock(at(10, 0, 0)))

	res, err := r.RecordLogin(context.Background(), "Frank")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Row)
	require.Len(t, sheet.rows, 2)
	assert.Equal(t, RosterHeader, sheet.rows[0])
	assert.Equal(t, "Frank", sheet.rows[1][0])
}

func TestRosterFetchAll(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		rows, err := NewRoster(newFakeSheet(RosterHeader)).FetchAll(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})

	t.Run("missing cells read as absent", func(t *testing.T) {
		sheet := newFakeSheet(RosterHeader, []string{"Gina", "2026-03-14 09:00:00"})
		rows, err := NewRoster(sheet).FetchAll(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Gina", rows[0].EmployeeName)
		assert.Empty(t, rows[0].LogoffTime)
	})
}

func TestRosterBackendUnavailable(t *testing.T) {
	sheet := newFakeSheet(RosterHeader)
	sheet.failAll = errors.New("429 rate limit exceeded")
	r := NewRoster(sheet)
	ctx := context.Background()

	_, err := r.RecordLogin(ctx, "Alice")
	assert.ErrorIs(t, err, ErrBackendUnavailable)

	_, err = r.RecordLogoff(ctx, "Alice")
	assert.ErrorIs(t, err, ErrBackendUnavailable)

	_, err = r.FetchAll(ctx)
	assert.ErrorIs(t, err, ErrBackendUnavailable)
	assert.Contains(t, err.Error(), "rate limit")
}
