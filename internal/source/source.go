// Package source builds category table inputs for the normalizer: CSV files
// and queries read through the ingestion adapter, and combined tables split
// into per-category inputs by row ranges.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/longform/internal/adapter"
	"github.com/leapstack-labs/longform/internal/reshape"
	"github.com/leapstack-labs/longform/internal/table"
)

// Segment assigns a category to the half-open row range [Start, End) of a
// combined table. Some reporting exports stack every categorical block into
// one file, with the category carried only by row position.
type Segment struct {
	Category string
	Start    int
	End      int
}

// SegmentError reports an invalid segment definition.
type SegmentError struct {
	Segment Segment
	Message string
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("segment %q [%d, %d): %s", e.Segment.Category, e.Segment.Start, e.Segment.End, e.Message)
}

// Split cuts a combined table into per-category inputs. Segments must name
// a category, stay within the table, and not overlap each other.
func Split(t *table.Table, segments []Segment) ([]reshape.Input, error) {
	if t == nil {
		return nil, fmt.Errorf("nil table")
	}

	covered := make([]bool, t.Len())
	inputs := make([]reshape.Input, 0, len(segments))

	for _, seg := range segments {
		if seg.Category == "" {
			return nil, &SegmentError{Segment: seg, Message: "category is required"}
		}
		if seg.Start < 0 || seg.End > t.Len() || seg.Start > seg.End {
			return nil, &SegmentError{Segment: seg, Message: fmt.Sprintf("out of range for %d rows", t.Len())}
		}
		for i := seg.Start; i < seg.End; i++ {
			if covered[i] {
				return nil, &SegmentError{Segment: seg, Message: fmt.Sprintf("row %d already assigned", i)}
			}
			covered[i] = true
		}

		part, err := t.Slice(seg.Start, seg.End)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, reshape.Input{Table: part, Category: seg.Category})
	}
	return inputs, nil
}

// Ingest loads a CSV file through the adapter and returns the name of the
// table it was loaded into.
func Ingest(ctx context.Context, ad adapter.Adapter, path string) (string, error) {
	name := tableNameFor(path)
	if err := ad.LoadCSV(ctx, name, path); err != nil {
		return "", err
	}
	return name, nil
}

// FromCSV loads a CSV file through the adapter and reads it back as a
// table, preserving the file's column order.
func FromCSV(ctx context.Context, ad adapter.Adapter, path string) (*table.Table, error) {
	name, err := Ingest(ctx, ad, path)
	if err != nil {
		return nil, err
	}
	return FromQuery(ctx, ad, fmt.Sprintf("SELECT * FROM %s", name))
}

// FromQuery materializes an arbitrary query as a table.
func FromQuery(ctx context.Context, ad adapter.Adapter, sqlText string) (*table.Table, error) {
	rows, err := ad.Query(ctx, sqlText)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	t, err := table.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to read query result: %w", err)
	}
	slog.Default().Debug("materialized query result", "rows", t.Len(), "columns", t.NumColumns())
	return t, nil
}

// tableNameFor derives a safe ingestion table name from a file path.
func tableNameFor(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	for i, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('t')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "input"
	}
	return b.String()
}
