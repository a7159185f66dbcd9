package sheets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

var googleScopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveReadonlyScope,
}

// GoogleConfig identifies a worksheet inside a Google spreadsheet.
type GoogleConfig struct {
	Credentials   string // service account JSON key file
	Spreadsheet   string // title, used when SpreadsheetID is empty
	SpreadsheetID string
	Worksheet     string
}

// GoogleSheet is a Worksheet backed by the Google Sheets API.
type GoogleSheet struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	title         string
}

// OpenGoogleSheet authenticates with the service account key and resolves the
// spreadsheet and worksheet.
func OpenGoogleSheet(ctx context.Context, cfg GoogleConfig) (*GoogleSheet, error) {
	data, err := os.ReadFile(cfg.Credentials)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCredentialsNotFound, cfg.Credentials)
		}
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, data, googleScopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid service account credentials: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}

	id := cfg.SpreadsheetID
	if id == "" {
		id, err = findSpreadsheet(ctx, creds, cfg.Spreadsheet)
		if err != nil {
			return nil, err
		}
	}

	book, err := srv.Spreadsheets.Get(id).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpreadsheetNotFound, id, err)
	}
	found := false
	for _, s := range book.Sheets {
		if s.Properties != nil && s.Properties.Title == cfg.Worksheet {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", ErrWorksheetNotFound, cfg.Worksheet)
	}

	log.Printf("[gsheets] opened worksheet %q of spreadsheet %s", cfg.Worksheet, id)
	return newGoogleSheet(srv, id, cfg.Worksheet), nil
}

func newGoogleSheet(srv *sheets.Service, spreadsheetID, title string) *GoogleSheet {
	return &GoogleSheet{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		title:         title,
	}
}

func findSpreadsheet(ctx context.Context, creds *google.Credentials, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: no spreadsheet name or id configured", ErrSpreadsheetNotFound)
	}
	srv, err := drive.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return "", fmt.Errorf("failed to create drive client: %w", err)
	}
	list, err := srv.Files.List().
		Q(spreadsheetQuery(name)).
		Fields("files(id, name)").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to search for spreadsheet %q: %w", name, err)
	}
	if len(list.Files) == 0 {
		return "", fmt.Errorf("%w: %s", ErrSpreadsheetNotFound, name)
	}
	return list.Files[0].Id, nil
}

// ColumnValues returns every cell of column col, header included.
func (g *GoogleSheet) ColumnValues(ctx context.Context, col int) ([]string, error) {
	letter := columnLetter(col)
	resp, err := g.values.Get(g.spreadsheetID, g.rangeOf(letter+":"+letter)).
		MajorDimension("COLUMNS").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	return toStrings(resp.Values[0]), nil
}

// UpdateCell overwrites one cell.
func (g *GoogleSheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	cell := fmt.Sprintf("%s%d", columnLetter(col), row)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := g.values.Update(g.spreadsheetID, g.rangeOf(cell), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

// AppendRow adds values after the last row of the table.
func (g *GoogleSheet) AppendRow(ctx context.Context, values []string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	vr := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := g.values.Append(g.spreadsheetID, g.rangeOf("A1"), vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// Records returns every data row keyed by the header row.
func (g *GoogleSheet) Records(ctx context.Context) ([]map[string]string, error) {
	resp, err := g.values.Get(g.spreadsheetID, quoteSheet(g.title)).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, r := range resp.Values {
		rows = append(rows, toStrings(r))
	}
	return recordsFromRows(rows), nil
}

func (g *GoogleSheet) rangeOf(a1 string) string {
	return quoteSheet(g.title) + "!" + a1
}

// columnLetter converts a 1-based column index to A1 letters (1 → A, 27 → AA).
func columnLetter(col int) string {
	var b []byte
	for col > 0 {
		col--
		b = append([]byte{byte('A' + col%26)}, b...)
		col /= 26
	}
	return string(b)
}

func quoteSheet(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func spreadsheetQuery(name string) string {
	escaped := strings.ReplaceAll(name, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, "'", `\'`)
	return fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escaped, spreadsheetMimeType)
}

func toStrings(cells []interface{}) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if c == nil {
			continue
		}
		if s, ok := c.(string); ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprint(c)
		}
	}
	return out
}
