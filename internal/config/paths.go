// Package config handles settings loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the global Rollcall directory.
	GlobalDirName = ".rollcall"

	// ConfigEnvVar overrides the settings file location.
	ConfigEnvVar = "ROLLCALL_CONFIG"
)

// File names
const (
	SettingsFileName = "settings.yaml"
	SessionFileName  = "session.yaml"
	LogFileName      = "rollcall.log"
	JournalFileName  = "attendance_log.csv"
)

// GlobalDir returns the path to the global Rollcall directory (~/.rollcall/).
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

func globalFile(name string) (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

// GlobalSettingsFile returns the path to the settings.yaml file.
func GlobalSettingsFile() (string, error) {
	return globalFile(SettingsFileName)
}

// SessionFile returns the path to the CLI session checkpoint.
func SessionFile() (string, error) {
	return globalFile(SessionFileName)
}

// LogFile returns the path to the application log.
func LogFile() (string, error) {
	return globalFile(LogFileName)
}

// DefaultJournalFile returns where the local backend keeps its CSV when no path is configured.
func DefaultJournalFile() (string, error) {
	return globalFile(JournalFileName)
}

// SettingsPath resolves the settings file: explicit override, then $ROLLCALL_CONFIG,
// then ~/.rollcall/settings.yaml.
func SettingsPath(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	if env := os.Getenv(ConfigEnvVar); env != "" {
		return env, nil
	}
	return GlobalSettingsFile()
}

// EnsureGlobalDir creates the global Rollcall directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
