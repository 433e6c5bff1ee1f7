package config

import "fmt"

var validOutputs = map[string]bool{
	"table":    true,
	"json":     true,
	"csv":      true,
	"md":       true,
	"markdown": true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !validOutputs[c.Output] {
		return fmt.Errorf("invalid output format %q (expected table, json, csv, or md)", c.Output)
	}

	if c.NullPolicy != "keep" && c.NullPolicy != "drop" {
		return fmt.Errorf("invalid null_policy %q (expected keep or drop)", c.NullPolicy)
	}

	for i, m := range c.Metrics {
		if m.Match == "" {
			return fmt.Errorf("metrics[%d]: match is required", i)
		}
		if m.Name == "" {
			return fmt.Errorf("metrics[%d]: name is required", i)
		}
	}

	for i, s := range c.Sources {
		if s.Path == "" {
			return fmt.Errorf("sources[%d]: path is required", i)
		}
		if s.Category == "" && len(s.Segments) == 0 {
			return fmt.Errorf("sources[%d] (%s): category or segments required", i, s.Path)
		}
		if s.Category != "" && len(s.Segments) > 0 {
			return fmt.Errorf("sources[%d] (%s): category and segments are mutually exclusive", i, s.Path)
		}
		for j, seg := range s.Segments {
			if seg.Category == "" {
				return fmt.Errorf("sources[%d].segments[%d]: category is required", i, j)
			}
			if seg.Start < 0 || seg.End < seg.Start {
				return fmt.Errorf("sources[%d].segments[%d]: invalid range [%d, %d)", i, j, seg.Start, seg.End)
			}
		}
	}

	return nil
}
