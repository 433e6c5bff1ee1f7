// Package reshape converts wide per-category reporting tables into a single
// long-form table, and pivots long-form rows back into a wide summary.
//
// Each input table describes one categorical variable: a label column plus
// one or more metric columns whose names encode the metric kind. The
// normalizer melts every input into (Category, Variable, Metric, Value)
// rows and concatenates them in caller order.
package reshape

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/longform/internal/table"
)

// Metric names emitted by the default classification rules.
const (
	MetricCount   = "Count"
	MetricPercent = "Percent"
)

// MetricRule classifies a column as a metric: any column whose name
// contains Match (case-insensitive) is emitted under the metric Name.
// Columns matching no rule are excluded from the output, never an error.
type MetricRule struct {
	Match string
	Name  string
}

// DefaultMetricRules returns the conventional count/percent rules.
func DefaultMetricRules() []MetricRule {
	return []MetricRule{
		{Match: "count", Name: MetricCount},
		{Match: "percent", Name: MetricPercent},
	}
}

// NullPolicy decides what happens to source rows whose variable cell is NULL.
type NullPolicy int

const (
	// NullKeep treats a NULL variable as its own category level
	// ("not applicable"). This is the default.
	NullKeep NullPolicy = iota
	// NullDrop filters out source rows with a NULL variable.
	NullDrop
)

// Options controls normalization. The zero value uses the first column as
// the variable column, the default count/percent rules, and NullKeep.
type Options struct {
	// VariableColumn names the label column. Empty selects the first
	// column of each input table.
	VariableColumn string
	// Metrics overrides the classification rules. Nil means
	// DefaultMetricRules().
	Metrics []MetricRule
	// Nulls is the policy for NULL variable cells.
	Nulls NullPolicy
}

func (o Options) rules() []MetricRule {
	if o.Metrics != nil {
		return o.Metrics
	}
	return DefaultMetricRules()
}

// Row is one long-form observation.
type Row struct {
	Category string
	Variable table.Value
	Metric   string
	Value    table.Value
}

// Long is an ordered sequence of long-form rows.
type Long []Row

// Input pairs a category table with its caller-declared category name.
// The category is supplied by the caller, never inferred from the data.
type Input struct {
	Table    *table.Table
	Category string
}

// ClassifyColumn returns the metric name a column would be emitted under,
// or "" when it matches no rule.
func ClassifyColumn(column string, opts Options) string {
	return classify(column, opts.rules())
}

// classify returns the metric name for a column, or "" if no rule matches.
func classify(column string, rules []MetricRule) string {
	lower := strings.ToLower(column)
	for _, r := range rules {
		if r.Match != "" && strings.Contains(lower, strings.ToLower(r.Match)) {
			return r.Name
		}
	}
	return ""
}

// coerceLabel converts a variable cell to a string label. NULL stays NULL.
func coerceLabel(v table.Value) table.Value {
	if v == nil {
		return nil
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// metricColumn is a matched metric column within one input table.
type metricColumn struct {
	pos  int
	name string
}

// metricColumns resolves the variable column position and the matched
// metric columns of t, in column order. A matched column that is also the
// variable column is never emitted as a metric.
func metricColumns(t *table.Table, opts Options) (int, []metricColumn) {
	varPos := 0
	if opts.VariableColumn != "" {
		p, ok := t.ColumnIndex(opts.VariableColumn)
		if !ok {
			return -1, nil
		}
		varPos = p
	}

	rules := opts.rules()
	var metrics []metricColumn
	for pos, col := range t.Columns() {
		if pos == varPos {
			continue
		}
		if name := classify(col, rules); name != "" {
			metrics = append(metrics, metricColumn{pos: pos, name: name})
		}
	}
	return varPos, metrics
}

// NormalizeOne melts a single category table into long form. The result is
// empty when no column matches the metric rules or when the named variable
// column is missing. The function is pure: t is not modified.
func NormalizeOne(t *table.Table, category string, opts Options) Long {
	if t == nil || t.NumColumns() == 0 {
		return nil
	}

	varPos, metrics := metricColumns(t, opts)
	if len(metrics) == 0 {
		return nil
	}

	var out Long
	for i := 0; i < t.Len(); i++ {
		variable := coerceLabel(t.At(i, varPos))
		if variable == nil && opts.Nulls == NullDrop {
			continue
		}
		for _, m := range metrics {
			out = append(out, Row{
				Category: category,
				Variable: variable,
				Metric:   m.name,
				Value:    t.At(i, m.pos),
			})
		}
	}
	return out
}

// NormalizeMany melts every input in order and concatenates the results.
// No reordering is applied: for inputs A then B, all rows derived from A
// precede all rows derived from B. Rows whose Variable and Value are both
// NULL are dropped.
func NormalizeMany(inputs []Input, opts Options) Long {
	var out Long
	for _, in := range inputs {
		for _, row := range NormalizeOne(in.Table, in.Category, opts) {
			if row.Variable == nil && row.Value == nil {
				continue
			}
			out = append(out, row)
		}
	}
	return out
}
