package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rollcall-io/rollcall/internal/models"
)

func TestLoadSettingsDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, models.NewSettings(), s)
}

func TestLoadSettingsFileAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "settings.yaml")
	doc := `
version: 1
employee: Alice
backend: remote
remote:
  driver: xlsx
  workbook: /srv/share/attendance.xlsx
  worksheet: March
  timeout: 10s
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	t.Setenv("ROLLCALL_EMPLOYEE", "Bob")
	t.Setenv("ROLLCALL_EXPORT_BUCKET", "hr-archive")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "Bob", s.Employee)
	assert.Equal(t, models.BackendRemote, s.Backend)
	assert.Equal(t, models.DriverXLSX, s.Remote.Driver)
	assert.Equal(t, "/srv/share/attendance.xlsx", s.Remote.Workbook)
	assert.Equal(t, "March", s.Remote.Worksheet)
	assert.Equal(t, 10*time.Second, s.Remote.Timeout)
	assert.Equal(t, "service_account.json", s.Remote.Credentials)
	assert.Equal(t, "hr-archive", s.Export.Bucket)
}

func TestLoadSettingsRejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"backend", map[string]string{"ROLLCALL_BACKEND": "cloud"}},
		{"driver", map[string]string{"ROLLCALL_BACKEND": "remote", "ROLLCALL_REMOTE_DRIVER": "mysql"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadSettings("")
			assert.Error(t, err)
		})
	}
}

func TestSaveSettingsRoundTrip(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	want := models.NewSettings()
	want.Employee = "Carol"
	want.Remote.Timeout = 45 * time.Second
	require.NoError(t, SaveSettings(path, want))

	got, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSettingsPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	t.Setenv(ConfigEnvVar, "")
	p, err := SettingsPath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".rollcall", "settings.yaml"), p)

	t.Setenv(ConfigEnvVar, "/etc/rollcall.yaml")
	p, err = SettingsPath("")
	require.NoError(t, err)
	assert.Equal(t, "/etc/rollcall.yaml", p)

	p, err = SettingsPath("./local.yaml")
	require.NoError(t, err)
	assert.Equal(t, "./local.yaml", p)
}

func TestSessionCheckpointLifecycle(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cp, err := LoadSessionCheckpoint()
	require.NoError(t, err)
	assert.Nil(t, cp)

	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.Local)
	require.NoError(t, SaveSessionCheckpoint("abc-123", start))

	cp, err = LoadSessionCheckpoint()
	require.NoError(t, err)
	require.NotNil(t, cp)
	assert.Equal(t, "abc-123", cp.SessionID)
	assert.True(t, start.Equal(cp.StartedAt))

	require.NoError(t, RemoveSessionCheckpoint())
	require.NoError(t, RemoveSessionCheckpoint())

	cp, err = LoadSessionCheckpoint()
	require.NoError(t, err)
	assert.Nil(t, cp)
}
