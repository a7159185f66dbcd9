package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollcall-io/rollcall/internal/models"
)

func sampleTable() *models.LogTable {
	return &models.LogTable{
		Columns: []string{"Employee Name", "Date", "Start Time", "End Time"},
		Rows: [][]string{
			{"Bob", "2026-03-14", "09:00:00", "17:30:00"},
			{"Smith, Jane", "2026-03-14", "08:15:00", "16:00:00"},
		},
	}
}

func TestCSV(t *testing.T) {
	data, err := CSV(sampleTable())
	require.NoError(t, err)
	want := "Employee Name,Date,Start Time,End Time\n" +
		"Bob,2026-03-14,09:00:00,17:30:00\n" +
		"\"Smith, Jane\",2026-03-14,08:15:00,16:00:00\n"
	assert.Equal(t, want, string(data))
}

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestUploaderUpload(t *testing.T) {
	put := &fakePutter{}
	u, err := NewUploader(put, models.ExportConfig{Bucket: "hr-archive", Prefix: "attendance"})
	require.NoError(t, err)
	u.now = func() time.Time { return time.Date(2026, 3, 14, 18, 5, 0, 0, time.UTC) }

	key, err := u.Upload(context.Background(), sampleTable())
	require.NoError(t, err)
	assert.Equal(t, "attendance/attendance_20260314_180500.csv", key)
	assert.Equal(t, "hr-archive", aws.ToString(put.input.Bucket))
	assert.Equal(t, key, aws.ToString(put.input.Key))
	assert.Equal(t, "text/csv", aws.ToString(put.input.ContentType))
	assert.True(t, bytes.HasPrefix(put.body, []byte("Employee Name,Date")))
}

func TestUploaderErrors(t *testing.T) {
	_, err := NewUploader(&fakePutter{}, models.ExportConfig{})
	assert.ErrorIs(t, err, ErrNoBucket)

	boom := errors.New("access denied")
	u, err := NewUploader(&fakePutter{err: boom}, models.ExportConfig{Bucket: "b"})
	require.NoError(t, err)
	_, err = u.Upload(context.Background(), sampleTable())
	assert.ErrorIs(t, err, boom)
}

func TestPDF(t *testing.T) {
	tests := []struct {
		name  string
		table *models.LogTable
	}{
		{"with rows", sampleTable()},
		{"missing log", nil},
		{"many rows", func() *models.LogTable {
			tbl := sampleTable()
			for i := 0; i < 120; i++ {
				tbl.Rows = append(tbl.Rows, []string{"Alice", "2026-03-15", "09:00:00", "17:00:00"})
			}
			return tbl
		}()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := PDF(Report{Source: "local attendance_log.csv", Generated: time.Now(), Table: tt.table})
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		})
	}
}

func TestColumnWidths(t *testing.T) {
	assert.Equal(t, []float64{76, 38, 38, 38}, columnWidths(4, 190))
	assert.Empty(t, columnWidths(0, 190))
}
