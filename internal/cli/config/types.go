// Package config provides configuration management for the longform CLI.
package config

import (
	"github.com/leapstack-labs/longform/internal/reshape"
	"github.com/leapstack-labs/longform/internal/source"
)

// MetricRuleConfig is one metric classification rule: columns whose name
// contains Match (case-insensitive) are emitted under the metric Name.
type MetricRuleConfig struct {
	Match string `koanf:"match"`
	Name  string `koanf:"name"`
}

// SegmentConfig assigns a category to a half-open row range of a combined
// source file.
type SegmentConfig struct {
	Category string `koanf:"category"`
	Start    int    `koanf:"start"`
	End      int    `koanf:"end"`
}

// SourceConfig describes one input CSV. Either Category tags the whole
// file, or Segments splits it into per-category row ranges.
type SourceConfig struct {
	Path     string          `koanf:"path"`
	Category string          `koanf:"category"`
	Segments []SegmentConfig `koanf:"segments"`
}

// Config holds all CLI configuration options.
type Config struct {
	// Database is the DuckDB path used for CSV ingestion. Empty means
	// in-memory, which is the normal mode.
	Database string `koanf:"database"`

	// Output is the default output format (table, json, csv, md).
	Output string `koanf:"output"`

	Verbose bool `koanf:"verbose"`

	// VariableColumn names the label column of each source table.
	// Empty selects the first column.
	VariableColumn string `koanf:"variable_column"`

	// NullPolicy is "keep" or "drop" for NULL variable levels.
	NullPolicy string `koanf:"null_policy"`

	// Metrics overrides the default count/percent rules.
	Metrics []MetricRuleConfig `koanf:"metrics"`

	Sources []SourceConfig `koanf:"sources"`
}

// Default configuration values.
const (
	DefaultOutput     = "table"
	DefaultNullPolicy = "keep"
)

// ReshapeOptions translates the config into normalizer options.
// Validate must have accepted the config first.
func (c *Config) ReshapeOptions() reshape.Options {
	opts := reshape.Options{VariableColumn: c.VariableColumn}
	if c.NullPolicy == "drop" {
		opts.Nulls = reshape.NullDrop
	}
	for _, m := range c.Metrics {
		opts.Metrics = append(opts.Metrics, reshape.MetricRule{Match: m.Match, Name: m.Name})
	}
	return opts
}

// Segments translates a source's segment list.
func (s *SourceConfig) SourceSegments() []source.Segment {
	out := make([]source.Segment, 0, len(s.Segments))
	for _, seg := range s.Segments {
		out = append(out, source.Segment{Category: seg.Category, Start: seg.Start, End: seg.End})
	}
	return out
}
