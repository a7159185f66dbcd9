// Package store builds the attendance backend selected by settings.
package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/rollcall-io/rollcall/internal/attendance"
	"github.com/rollcall-io/rollcall/internal/config"
	"github.com/rollcall-io/rollcall/internal/models"
	"github.com/rollcall-io/rollcall/internal/sheets"
)

// ErrIncompleteSettings is returned when the selected driver lacks a required setting.
var ErrIncompleteSettings = errors.New("incomplete settings")

// Open returns the backend configured in s. Remote drivers connect eagerly so
// credential and lookup problems surface before any action runs.
func Open(ctx context.Context, s *models.Settings) (attendance.Backend, error) {
	switch s.Backend {
	case models.BackendLocal, "":
		return openLocal(s.Local)
	case models.BackendRemote:
		return openRemote(ctx, s.Remote)
	default:
		return nil, fmt.Errorf("unknown backend %q", s.Backend)
	}
}

func openLocal(cfg models.LocalConfig) (*attendance.LocalBackend, error) {
	path := cfg.Path
	if path == "" {
		var err error
		if path, err = config.DefaultJournalFile(); err != nil {
			return nil, err
		}
	}
	log.Printf("[store] local journal at %s", path)
	return attendance.NewLocalBackend(attendance.NewSession(), attendance.NewJournal(path)), nil
}

func openRemote(ctx context.Context, cfg models.RemoteConfig) (*attendance.RemoteBackend, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	opts := []attendance.RemoteOption{attendance.WithTimeout(cfg.Timeout)}
	var sheet attendance.Worksheet

	switch cfg.Driver {
	case models.DriverGoogleSheets, "":
		g, err := sheets.OpenGoogleSheet(ctx, sheets.GoogleConfig{
			Credentials:   cfg.Credentials,
			Spreadsheet:   cfg.Spreadsheet,
			SpreadsheetID: cfg.SpreadsheetID,
			Worksheet:     cfg.Worksheet,
		})
		if err != nil {
			return nil, err
		}
		name := cfg.Spreadsheet
		if cfg.SpreadsheetID != "" {
			name = cfg.SpreadsheetID
		}
		sheet = g
		opts = append(opts, attendance.WithLabel(fmt.Sprintf("gsheets %s/%s", name, cfg.Worksheet)))

	case models.DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("%w: remote.dsn is required for the postgres driver", ErrIncompleteSettings)
		}
		t, err := sheets.OpenPostgres(ctx, cfg.DSN, cfg.Worksheet)
		if err != nil {
			return nil, err
		}
		sheet = t
		opts = append(opts,
			attendance.WithLabel("postgres "+cfg.Worksheet),
			attendance.WithCloser(t.Close),
		)

	case models.DriverXLSX:
		if cfg.Workbook == "" {
			return nil, fmt.Errorf("%w: remote.workbook is required for the xlsx driver", ErrIncompleteSettings)
		}
		w, err := sheets.OpenWorkbook(cfg.Workbook, cfg.Worksheet)
		if err != nil {
			return nil, err
		}
		sheet = w
		opts = append(opts,
			attendance.WithLabel(fmt.Sprintf("xlsx %s/%s", w.Path(), cfg.Worksheet)),
			attendance.WithWatchPath(w.Path()),
		)

	default:
		return nil, fmt.Errorf("unknown remote driver %q", cfg.Driver)
	}

	log.Printf("[store] remote roster via %s", cfg.Driver)
	return attendance.NewRemoteBackend(attendance.NewRoster(sheet), opts...), nil
}
