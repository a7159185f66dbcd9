package attendance

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocal(t *testing.T) (*LocalBackend, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "attendance_log.csv")
	s := NewSessionWithClock(stepClock(at(9, 0, 0), at(17, 30, 0)))
	return NewLocalBackend(s, NewJournal(path)), path
}

func TestLocalBackendBobScenario(t *testing.T) {
	b, path := newLocal(t)
	ctx := context.Background()

	login, err := b.Login(ctx, "  Bob ")
	require.NoError(t, err)
	assert.Equal(t, ReceiptOpened, login.Kind)
	assert.Equal(t, "Login time recorded: 09:00:00", login.Message())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "login must not write")

	logoff, err := b.Logoff(ctx, "Bob")
	require.NoError(t, err)
	assert.Equal(t, ReceiptAppended, logoff.Kind)
	require.NotNil(t, logoff.Record)
	assert.Contains(t, logoff.Message(), "17:30:00")
	assert.Contains(t, logoff.Message(), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Bob,2026-03-14,09:00:00,17:30:00", lines[1])

	table, err := b.Logs(ctx)
	require.NoError(t, err)
	assert.False(t, table.Missing)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, JournalHeader, table.Columns)
}

func TestLocalBackendLogoffWithoutLoginPersistsNothing(t *testing.T) {
	b, path := newLocal(t)

	_, err := b.Logoff(context.Background(), "Bob")
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	table, err := b.Logs(context.Background())
	require.NoError(t, err)
	assert.True(t, table.Missing)
	assert.Zero(t, table.Len())
}

func TestLocalBackendCapabilities(t *testing.T) {
	b, path := newLocal(t)

	var backend Backend = b
	holder, ok := backend.(SessionHolder)
	require.True(t, ok)
	assert.Same(t, b.session, holder.Session())

	w, ok := backend.(Watchable)
	require.True(t, ok)
	assert.Equal(t, path, w.WatchPath())
}

func TestRemoteBackend(t *testing.T) {
	sheet := newFakeSheet(RosterHeader)
	roster := NewRosterWithClock(sheet, stepClock(at(9, 0, 0), at(9, 10, 0), at(18, 0, 0)))
	b := NewRemoteBackend(roster, WithLabel("sheet Logs"))
	ctx := context.Background()

	_, err := b.Login(ctx, " ")
	assert.ErrorIs(t, err, ErrMissingName)

	r, err := b.Login(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, ReceiptCreated, r.Kind)
	assert.Equal(t, "New entry created for Alice at 2026-03-14 09:00:00.", r.Message())

	r, err = b.Login(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, ReceiptUpdated, r.Kind)
	assert.Equal(t, "Login time updated for Alice at 2026-03-14 09:10:00.", r.Message())

	r, err = b.Logoff(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Logoff time updated for Alice at 2026-03-14 18:00:00.", r.Message())

	_, err = b.Logoff(ctx, "Nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	table, err := b.Logs(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, []string{"Alice", "2026-03-14 09:10:00", "2026-03-14 18:00:00"}, table.Rows[0])
	assert.Equal(t, "sheet Logs", b.Describe())

	_, isHolder := interface{}(b).(SessionHolder)
	assert.False(t, isHolder)
	assert.Empty(t, b.WatchPath())
	assert.NoError(t, b.Close())
}

func TestRemoteBackendCloser(t *testing.T) {
	closed := false
	b := NewRemoteBackend(NewRoster(newFakeSheet()), WithCloser(func() error {
		closed = true
		return nil
	}))
	require.NoError(t, b.Close())
	assert.True(t, closed)
}
