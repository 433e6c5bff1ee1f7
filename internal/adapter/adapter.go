// Package adapter wraps the in-process analytical database used to ingest
// CSV inputs. CSV parsing and schema inference are delegated to the engine
// rather than reimplemented.
package adapter

import (
	"context"
	"database/sql"
)

// Config holds the connection settings for the analytical database.
type Config struct {
	// Path is the database file path. Empty or ":memory:" selects an
	// in-memory database, which is the normal mode: inputs are transient.
	Path string
}

// Column describes one column of an ingested table.
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Position int
}

// Metadata describes an ingested table.
type Metadata struct {
	Name     string
	Columns  []Column
	RowCount int64
}

// Adapter is the ingestion interface: connect, load CSVs, query them back.
type Adapter interface {
	// Connect opens the database.
	Connect(ctx context.Context, cfg Config) error

	// Close releases the connection.
	Close() error

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, sqlText string) error

	// Query runs a statement and returns its rows. The caller owns the
	// result and must check rows.Err after iterating.
	Query(ctx context.Context, sqlText string) (*sql.Rows, error)

	// LoadCSV loads a CSV file into the named table, replacing it if it
	// exists. The schema is inferred by the engine.
	LoadCSV(ctx context.Context, tableName, filePath string) error

	// TableMetadata describes a previously loaded table.
	TableMetadata(ctx context.Context, tableName string) (*Metadata, error)
}
