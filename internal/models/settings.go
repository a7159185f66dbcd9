package models

import "time"

// Backend names accepted by Settings.Backend.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

// Worksheet drivers accepted by RemoteConfig.Driver.
const (
	DriverGoogleSheets = "gsheets"
	DriverPostgres     = "postgres"
	DriverXLSX         = "xlsx"
)

// LocalConfig holds settings for the CSV journal backend.
type LocalConfig struct {
	Path string `yaml:"path" mapstructure:"path"` // empty = ~/.rollcall/attendance_log.csv
}

// RemoteConfig holds settings for the worksheet roster backend.
type RemoteConfig struct {
	Driver        string        `yaml:"driver" mapstructure:"driver"` // "gsheets" | "postgres" | "xlsx"
	Spreadsheet   string        `yaml:"spreadsheet" mapstructure:"spreadsheet"`
	SpreadsheetID string        `yaml:"spreadsheet_id,omitempty" mapstructure:"spreadsheet_id"`
	Worksheet     string        `yaml:"worksheet" mapstructure:"worksheet"`
	Credentials   string        `yaml:"credentials" mapstructure:"credentials"` // service account JSON
	DSN           string        `yaml:"dsn,omitempty" mapstructure:"dsn"`
	Workbook      string        `yaml:"workbook,omitempty" mapstructure:"workbook"`
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ExportConfig holds settings for uploading the log to object storage.
type ExportConfig struct {
	Bucket    string `yaml:"bucket" mapstructure:"bucket"`
	Prefix    string `yaml:"prefix" mapstructure:"prefix"`
	Region    string `yaml:"region" mapstructure:"region"`
	Endpoint  string `yaml:"endpoint,omitempty" mapstructure:"endpoint"` // R2 / MinIO
	AccessKey string `yaml:"access_key,omitempty" mapstructure:"access_key"`
	SecretKey string `yaml:"secret_key,omitempty" mapstructure:"secret_key"`
}

// Settings represents global application settings.
// This corresponds to ~/.rollcall/settings.yaml.
type Settings struct {
	Version  int          `yaml:"version" mapstructure:"version"`
	Employee string       `yaml:"employee" mapstructure:"employee"` // pre-filled name
	Backend  string       `yaml:"backend" mapstructure:"backend"`   // "local" | "remote"
	Local    LocalConfig  `yaml:"local" mapstructure:"local"`
	Remote   RemoteConfig `yaml:"remote" mapstructure:"remote"`
	Export   ExportConfig `yaml:"export" mapstructure:"export"`
}

// NewSettings creates settings with default values.
func NewSettings() *Settings {
	return &Settings{
		Version: 1,
		Backend: BackendLocal,
		Remote: RemoteConfig{
			Driver:      DriverGoogleSheets,
			Spreadsheet: "Employee_Attendance",
			Worksheet:   "Logs",
			Credentials: "service_account.json",
			Timeout:     30 * time.Second,
		},
		Export: ExportConfig{
			Prefix: "attendance",
			Region: "auto",
		},
	}
}
