package sheets

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS sheet_rows (
		sheet      TEXT        NOT NULL,
		row_num    INTEGER     NOT NULL,
		cells      TEXT[]      NOT NULL DEFAULT '{}',
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (sheet, row_num)
	)
`

// DB is the subset of pgxpool.Pool used by Table.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Table is a Worksheet emulated on a Postgres table. Several worksheets share
// the sheet_rows table, keyed by name.
type Table struct {
	db    DB
	sheet string
	pool  *pgxpool.Pool
}

// OpenPostgres connects to dsn and makes sure the sheet_rows table exists.
func OpenPostgres(ctx context.Context, dsn, sheet string) (*Table, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach postgres: %w", err)
	}

	t := NewTable(pool, sheet)
	t.pool = pool
	if err := t.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Printf("[postgres] worksheet %q ready", sheet)
	return t, nil
}

// NewTable wraps an existing connection.
func NewTable(db DB, sheet string) *Table {
	return &Table{db: db, sheet: sheet}
}

// EnsureSchema creates the sheet_rows table if needed.
func (t *Table) EnsureSchema(ctx context.Context) error {
	if _, err := t.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to create sheet_rows: %w", err)
	}
	return nil
}

// ColumnValues returns every cell of column col, header included.
func (t *Table) ColumnValues(ctx context.Context, col int) ([]string, error) {
	query := `
		SELECT COALESCE(cells[$2], '')
		FROM sheet_rows
		WHERE sheet = $1
		ORDER BY row_num
	`
	rows, err := t.db.Query(ctx, query, t.sheet, col)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// UpdateCell overwrites one cell of an existing row.
func (t *Table) UpdateCell(ctx context.Context, row, col int, value string) error {
	query := `
		UPDATE sheet_rows
		SET cells[$3] = $4, updated_at = NOW()
		WHERE sheet = $1 AND row_num = $2
	`
	tag, err := t.db.Exec(ctx, query, t.sheet, row, col, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("row %d does not exist in %s", row, t.sheet)
	}
	return nil
}

// AppendRow inserts values after the last row.
func (t *Table) AppendRow(ctx context.Context, values []string) error {
	query := `
		INSERT INTO sheet_rows (sheet, row_num, cells)
		SELECT $1, COALESCE(MAX(row_num), 0) + 1, $2::text[]
		FROM sheet_rows
		WHERE sheet = $1
	`
	_, err := t.db.Exec(ctx, query, t.sheet, values)
	return err
}

// Records returns every data row keyed by the header row.
func (t *Table) Records(ctx context.Context) ([]map[string]string, error) {
	query := `
		SELECT array_replace(cells, NULL, '')
		FROM sheet_rows
		WHERE sheet = $1
		ORDER BY row_num
	`
	rows, err := t.db.Query(ctx, query, t.sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var all [][]string
	for rows.Next() {
		var cells []string
		if err := rows.Scan(&cells); err != nil {
			return nil, err
		}
		all = append(all, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recordsFromRows(all), nil
}

// Close releases the pool when the table owns it.
func (t *Table) Close() error {
	if t.pool != nil {
		t.pool.Close()
	}
	return nil
}
