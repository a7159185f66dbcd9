package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rollcall-io/rollcall/internal/models"
)

// EnvPrefix namespaces environment overrides, e.g. ROLLCALL_REMOTE_DSN.
const EnvPrefix = "ROLLCALL"

// LoadSettings reads settings from path (see SettingsPath), layering defaults,
// the YAML file if present, a .env file in the working directory, and
// ROLLCALL_* environment variables.
func LoadSettings(path string) (*models.Settings, error) {
	// .env is optional
	_ = godotenv.Load()

	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if FileExists(path) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to parse settings from %s: %w", path, err)
			}
		} else {
			log.Printf("[config] no settings file at %s, using defaults", path)
		}
	}

	settings := models.NewSettings()
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	if err := Validate(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings writes settings to path.
func SaveSettings(path string, settings *models.Settings) error {
	return SaveYAML(path, settings)
}

// Validate checks the enumerated settings values.
func Validate(s *models.Settings) error {
	switch s.Backend {
	case models.BackendLocal:
	case models.BackendRemote:
		switch s.Remote.Driver {
		case models.DriverGoogleSheets, models.DriverPostgres, models.DriverXLSX:
		default:
			return fmt.Errorf("unknown remote driver %q (want gsheets, postgres or xlsx)", s.Remote.Driver)
		}
	default:
		return fmt.Errorf("unknown backend %q (want local or remote)", s.Backend)
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Every key needs a default so AutomaticEnv can see it during Unmarshal.
	d := models.NewSettings()
	v.SetDefault("version", d.Version)
	v.SetDefault("employee", d.Employee)
	v.SetDefault("backend", d.Backend)
	v.SetDefault("local.path", d.Local.Path)
	v.SetDefault("remote.driver", d.Remote.Driver)
	v.SetDefault("remote.spreadsheet", d.Remote.Spreadsheet)
	v.SetDefault("remote.spreadsheet_id", d.Remote.SpreadsheetID)
	v.SetDefault("remote.worksheet", d.Remote.Worksheet)
	v.SetDefault("remote.credentials", d.Remote.Credentials)
	v.SetDefault("remote.dsn", d.Remote.DSN)
	v.SetDefault("remote.workbook", d.Remote.Workbook)
	v.SetDefault("remote.timeout", d.Remote.Timeout)
	v.SetDefault("export.bucket", d.Export.Bucket)
	v.SetDefault("export.prefix", d.Export.Prefix)
	v.SetDefault("export.region", d.Export.Region)
	v.SetDefault("export.endpoint", d.Export.Endpoint)
	v.SetDefault("export.access_key", d.Export.AccessKey)
	v.SetDefault("export.secret_key", d.Export.SecretKey)
	return v
}
