package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// DuckDB implements Adapter on an in-process DuckDB database.
type DuckDB struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewDuckDB creates an unconnected DuckDB adapter.
func NewDuckDB() *DuckDB {
	return &DuckDB{logger: slog.Default()}
}

// SetLogger replaces the adapter's logger.
func (a *DuckDB) SetLogger(logger *slog.Logger) {
	if logger != nil {
		a.logger = logger
	}
}

// Connect opens the DuckDB database described by cfg.
func (a *DuckDB) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.logger.Debug("connected to duckdb", "path", path)
	a.db = db
	return nil
}

// Close closes the connection.
func (a *DuckDB) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Exec runs a statement that returns no rows.
func (a *DuckDB) Exec(ctx context.Context, sqlText string) error {
	if a.db == nil {
		return fmt.Errorf("not connected")
	}
	if _, err := a.db.ExecContext(ctx, sqlText); err != nil {
		return fmt.Errorf("failed to execute statement: %w", err)
	}
	return nil
}

// Query runs a statement and returns its rows.
func (a *DuckDB) Query(ctx context.Context, sqlText string) (*sql.Rows, error) {
	if a.db == nil {
		return nil, fmt.Errorf("not connected")
	}
	//nolint:rowserrcheck // rows.Err() is checked by the caller after iteration
	rows, err := a.db.QueryContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

// LoadCSV loads a CSV file into tableName via read_csv_auto, replacing any
// existing table of that name.
func (a *DuckDB) LoadCSV(ctx context.Context, tableName, filePath string) error {
	if a.db == nil {
		return fmt.Errorf("not connected")
	}
	if err := validateIdentifier(tableName); err != nil {
		return err
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", filePath, err)
	}

	a.logger.Debug("loading csv", "table", tableName, "path", absPath)

	stmt := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto('%s', header=true)",
		tableName,
		strings.ReplaceAll(absPath, "'", "''"),
	)
	if err := a.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("failed to load %s: %w", filePath, err)
	}
	return nil
}

// TableMetadata describes a loaded table using information_schema.
func (a *DuckDB) TableMetadata(ctx context.Context, tableName string) (*Metadata, error) {
	if a.db == nil {
		return nil, fmt.Errorf("not connected")
	}
	if err := validateIdentifier(tableName); err != nil {
		return nil, err
	}

	query := `
		SELECT column_name, data_type, is_nullable, ordinal_position
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position
	`
	rows, err := a.db.QueryContext(ctx, query, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []Column
	for rows.Next() {
		var col Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", tableName)
	}

	var rowCount int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName) //nolint:gosec // identifier validated above
	if err := a.db.QueryRowContext(ctx, countQuery).Scan(&rowCount); err != nil {
		rowCount = 0
	}

	return &Metadata{Name: tableName, Columns: columns, RowCount: rowCount}, nil
}

// validateIdentifier rejects table names that cannot be safely interpolated.
func validateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("empty table name")
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return fmt.Errorf("invalid table name %q", name)
			}
		default:
			return fmt.Errorf("invalid table name %q", name)
		}
	}
	return nil
}

var _ Adapter = (*DuckDB)(nil)
