package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStarted(t *testing.T) *Watcher {
	t.Helper()
	w, err := New()
	require.NoError(t, err)
	w.Start()
	t.Cleanup(w.Stop)
	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for watcher event")
		return Event{}
	}
}

func TestWatchFileReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "attendance_log.csv")
	w := newStarted(t)
	require.NoError(t, w.WatchFile(path))

	require.NoError(t, os.WriteFile(path, []byte("Employee Name,Date,Start Time,End Time\n"), 0644))

	ev := waitEvent(t, w)
	assert.Equal(t, EventChanged, ev.Type)
	abs, _ := filepath.Abs(path)
	assert.Equal(t, abs, ev.Path)
}

func TestWatchFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	w := newStarted(t)
	require.NoError(t, w.WatchFile(filepath.Join(dir, "watched.csv")))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(4 * DebounceDelay):
	}
}

func TestUnwatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "watched.csv")
	w := newStarted(t)
	require.NoError(t, w.WatchFile(path))
	w.UnwatchFile(path)

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(4 * DebounceDelay):
	}
}

func TestStopIsIdempotent(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	w.Start()
	w.Stop()
	w.Stop()
}
