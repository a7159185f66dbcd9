package attendance

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollcall-io/rollcall/internal/models"
)

func TestJournalAppendAndReadInOrder(t *testing.T) {
	for _, n := range []int{1, 3, 25} {
		t.Run(fmt.Sprintf("%d records", n), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "logs", "attendance_log.csv")
			j := NewJournal(path)

			for i := 0; i < n; i++ {
				err := j.AppendRecord(models.AttendanceRecord{
					EmployeeName: fmt.Sprintf("emp-%02d", i),
					Date:         "2026-03-14",
					StartTime:    "09:00:00",
					EndTime:      "17:00:00",
				})
				require.NoError(t, err)
			}

			records, err := j.ReadAll()
			require.NoError(t, err)
			require.Len(t, records, n)
			for i, rec := range records {
				assert.Equal(t, fmt.Sprintf("emp-%02d", i), rec.EmployeeName)
			}

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, 1, strings.Count(string(data), "Employee Name,Date,Start Time,End Time"))
			assert.True(t, strings.HasPrefix(string(data), "Employee Name,Date,Start Time,End Time\n"))
		})
	}
}

func TestJournalReadMissingFile(t *testing.T) {
	j := NewJournal(filepath.Join(t.TempDir(), "absent.csv"))

	records, err := j.ReadAll()
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Nil(t, records)
}

func TestJournalSkipsBlankAndShortRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance_log.csv")
	content := "Employee Name,Date,Start Time,End Time\n" +
		"Bob,2026-03-14,09:00:00,17:30:00\n" +
		"\n" +
		",,,\n" +
		"Broken,2026-03-14\n" +
		"\"Smith, Ann\",2026-03-15,08:00:00,16:00:00\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	records, err := NewJournal(path).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Bob", records[0].EmployeeName)
	assert.Equal(t, "Smith, Ann", records[1].EmployeeName)
}

func TestJournalQuotesNamesWithCommas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attendance_log.csv")
	j := NewJournal(path)

	require.NoError(t, j.AppendRecord(models.AttendanceRecord{
		EmployeeName: "Doe, Jane", Date: "2026-03-14", StartTime: "09:00:00", EndTime: "10:00:00",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"Doe, Jane\",2026-03-14,09:00:00,10:00:00\n")
}

func TestJournalAppendFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory where the file should be makes the open fail.
	path := filepath.Join(dir, "attendance_log.csv")
	require.NoError(t, os.Mkdir(path, 0o755))

	err := NewJournal(path).AppendRecord(models.AttendanceRecord{EmployeeName: "X"})
	assert.ErrorIs(t, err, ErrIO)
}
