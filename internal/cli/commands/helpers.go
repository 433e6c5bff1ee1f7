package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/longform/internal/adapter"
	"github.com/leapstack-labs/longform/internal/cli/config"
	"github.com/leapstack-labs/longform/internal/reshape"
	"github.com/leapstack-labs/longform/internal/source"
	"github.com/leapstack-labs/longform/internal/table"
)

// connectAdapter opens the ingestion database configured in cfg.
func connectAdapter(ctx context.Context, cfg *config.Config) (adapter.Adapter, error) {
	ad := adapter.NewDuckDB()
	if err := ad.Connect(ctx, adapter.Config{Path: cfg.Database}); err != nil {
		return nil, err
	}
	return ad, nil
}

// gatherInputs builds normalizer inputs from positional CSV arguments or,
// when none are given, from the configured sources. Positional files take
// their category from the matching --category flag, falling back to the
// file's base name.
func gatherInputs(ctx context.Context, ad adapter.Adapter, cfg *config.Config, args, categories []string) ([]reshape.Input, error) {
	if len(args) > 0 {
		return inputsFromArgs(ctx, ad, args, categories)
	}
	if len(cfg.Sources) == 0 {
		return nil, fmt.Errorf("no inputs: pass CSV files or configure sources in longform.yaml")
	}
	return inputsFromSources(ctx, ad, cfg.Sources)
}

func inputsFromArgs(ctx context.Context, ad adapter.Adapter, args, categories []string) ([]reshape.Input, error) {
	if len(categories) > len(args) {
		return nil, fmt.Errorf("%d categories given for %d files", len(categories), len(args))
	}

	inputs := make([]reshape.Input, 0, len(args))
	for i, path := range args {
		t, err := source.FromCSV(ctx, ad, path)
		if err != nil {
			return nil, err
		}
		category := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		if i < len(categories) {
			category = categories[i]
		}
		inputs = append(inputs, reshape.Input{Table: t, Category: category})
	}
	return inputs, nil
}

func inputsFromSources(ctx context.Context, ad adapter.Adapter, sources []config.SourceConfig) ([]reshape.Input, error) {
	var inputs []reshape.Input
	for _, src := range sources {
		t, err := source.FromCSV(ctx, ad, src.Path)
		if err != nil {
			return nil, err
		}
		if len(src.Segments) > 0 {
			parts, err := source.Split(t, src.SourceSegments())
			if err != nil {
				return nil, fmt.Errorf("%s: %w", src.Path, err)
			}
			inputs = append(inputs, parts...)
			continue
		}
		inputs = append(inputs, reshape.Input{Table: t, Category: src.Category})
	}
	return inputs, nil
}

// longToTable lays long-form rows out as a four-column table for rendering.
func longToTable(rows reshape.Long) *table.Table {
	t := table.New(reshape.ColumnCategory, reshape.ColumnVariable, "Metric", "Value")
	for _, r := range rows {
		// AppendRow only fails on arity mismatch, which is fixed here.
		_ = t.AppendRow(r.Category, r.Variable, r.Metric, r.Value)
	}
	return t
}
