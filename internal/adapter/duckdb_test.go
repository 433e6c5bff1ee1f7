package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write csv: %v", err)
	}
	return path
}

func TestDuckDB_ConnectInMemory(t *testing.T) {
	ctx := context.Background()
	ad := NewDuckDB()

	if err := ad.Connect(ctx, Config{}); err != nil {
		t.Fatalf("failed to connect to in-memory duckdb: %v", err)
	}
	defer ad.Close()

	if err := ad.Exec(ctx, "SELECT 1"); err != nil {
		t.Errorf("exec failed: %v", err)
	}
}

func TestDuckDB_NotConnected(t *testing.T) {
	ctx := context.Background()
	ad := NewDuckDB()

	if err := ad.Exec(ctx, "SELECT 1"); err == nil {
		t.Error("expected error from exec before connect")
	}
	if _, err := ad.Query(ctx, "SELECT 1"); err == nil {
		t.Error("expected error from query before connect")
	}
	if err := ad.Close(); err != nil {
		t.Errorf("close before connect should be a no-op, got %v", err)
	}
}

func TestDuckDB_LoadCSVAndMetadata(t *testing.T) {
	ctx := context.Background()
	ad := NewDuckDB()
	if err := ad.Connect(ctx, Config{}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer ad.Close()

	path := writeCSV(t, "age.csv", "age_cat,age_count,age_percent\n15-24,10,12.5\n25-34,20,25.0\n")
	if err := ad.LoadCSV(ctx, "age", path); err != nil {
		t.Fatalf("failed to load csv: %v", err)
	}

	md, err := ad.TableMetadata(ctx, "age")
	if err != nil {
		t.Fatalf("failed to get metadata: %v", err)
	}
	if md.Name != "age" {
		t.Errorf("expected table name age, got %s", md.Name)
	}
	if len(md.Columns) != 3 {
		t.Fatalf("expected 3 columns, got %d", len(md.Columns))
	}
	if md.Columns[0].Name != "age_cat" {
		t.Errorf("expected first column age_cat, got %s", md.Columns[0].Name)
	}
	if md.RowCount != 2 {
		t.Errorf("expected 2 rows, got %d", md.RowCount)
	}
}

func TestDuckDB_LoadCSV_Replaces(t *testing.T) {
	ctx := context.Background()
	ad := NewDuckDB()
	if err := ad.Connect(ctx, Config{}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer ad.Close()

	first := writeCSV(t, "a.csv", "x,x_count\na,1\n")
	second := writeCSV(t, "b.csv", "x,x_count\nb,2\nc,3\n")

	if err := ad.LoadCSV(ctx, "input", first); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if err := ad.LoadCSV(ctx, "input", second); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	md, err := ad.TableMetadata(ctx, "input")
	if err != nil {
		t.Fatalf("failed to get metadata: %v", err)
	}
	if md.RowCount != 2 {
		t.Errorf("expected replacement table with 2 rows, got %d", md.RowCount)
	}
}

func TestDuckDB_InvalidTableName(t *testing.T) {
	ctx := context.Background()
	ad := NewDuckDB()
	if err := ad.Connect(ctx, Config{}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer ad.Close()

	for _, name := range []string{"", "bad name", "drop;table", "1leading"} {
		if err := ad.LoadCSV(ctx, name, "whatever.csv"); err == nil {
			t.Errorf("expected error for table name %q", name)
		}
	}
}

func TestDuckDB_TableMetadata_NotFound(t *testing.T) {
	ctx := context.Background()
	ad := NewDuckDB()
	if err := ad.Connect(ctx, Config{}); err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer ad.Close()

	if _, err := ad.TableMetadata(ctx, "nope"); err == nil {
		t.Error("expected error for unknown table")
	}
}
