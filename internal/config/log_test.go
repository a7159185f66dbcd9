package config

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLoggingCreatesGlobalDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	closer, err := SetupLogging()
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(home, GlobalDirName))

	log.Printf("[test] hello")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(filepath.Join(home, GlobalDirName, LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "[rollcall] ")
	assert.Contains(t, string(data), "[test] hello")
}
