package reshape

import (
	"fmt"

	"github.com/leapstack-labs/longform/internal/table"
)

// Pivot output column names.
const (
	ColumnCategory = "Category"
	ColumnVariable = "Variable"
)

// DuplicateKeyError reports an ambiguous pivot: more than one row shared
// the same (Category, Variable, Metric) triple.
type DuplicateKeyError struct {
	Category string
	Variable table.Value
	Metric   string
}

func (e *DuplicateKeyError) Error() string {
	variable := "NULL"
	if e.Variable != nil {
		variable = fmt.Sprintf("%v", e.Variable)
	}
	return fmt.Sprintf("duplicate pivot key (category=%s, variable=%s, metric=%s)", e.Category, variable, e.Metric)
}

// pivotKey identifies one output row. Variables are strings by the time
// they reach the pivot (NormalizeOne coerces them), so a string plus a
// null marker is enough to key on.
type pivotKey struct {
	category string
	varNull  bool
	variable string
}

func keyOf(r Row) pivotKey {
	k := pivotKey{category: r.Category}
	if r.Variable == nil {
		k.varNull = true
	} else {
		k.variable = fmt.Sprintf("%v", r.Variable)
	}
	return k
}

// PivotWide reshapes long-form rows into a table keyed by
// (Category, Variable) with one column per distinct metric. Metric columns
// appear in first-seen order, as do keys. Rows whose Variable and every
// metric cell are all NULL are dropped from the result.
func PivotWide(rows Long) (*table.Table, error) {
	var metricOrder []string
	metricSeen := make(map[string]bool)

	var keyOrder []pivotKey
	cells := make(map[pivotKey]map[string]table.Value)
	variables := make(map[pivotKey]table.Value)

	for _, r := range rows {
		k := keyOf(r)
		if _, ok := cells[k]; !ok {
			cells[k] = make(map[string]table.Value)
			variables[k] = r.Variable
			keyOrder = append(keyOrder, k)
		}
		if !metricSeen[r.Metric] {
			metricSeen[r.Metric] = true
			metricOrder = append(metricOrder, r.Metric)
		}
		if _, dup := cells[k][r.Metric]; dup {
			return nil, &DuplicateKeyError{Category: r.Category, Variable: r.Variable, Metric: r.Metric}
		}
		cells[k][r.Metric] = r.Value
	}

	columns := append([]string{ColumnCategory, ColumnVariable}, metricOrder...)
	out := table.New(columns...)

	for _, k := range keyOrder {
		variable := variables[k]
		values := make([]table.Value, 0, len(columns))
		values = append(values, k.category, variable)

		allNull := variable == nil
		for _, m := range metricOrder {
			v := cells[k][m]
			if v != nil {
				allNull = false
			}
			values = append(values, v)
		}
		if allNull {
			continue
		}
		if err := out.AppendRow(values...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UnpivotLong is the inverse of PivotWide: every column other than
// Category and Variable is treated as a metric, and NULL metric cells are
// skipped. Pivoting then unpivoting non-conflicting rows returns the
// original row set.
func UnpivotLong(t *table.Table) Long {
	if t == nil {
		return nil
	}
	catPos, ok := t.ColumnIndex(ColumnCategory)
	if !ok {
		return nil
	}
	varPos, ok := t.ColumnIndex(ColumnVariable)
	if !ok {
		return nil
	}

	var out Long
	for i := 0; i < t.Len(); i++ {
		category, _ := t.At(i, catPos).(string)
		variable := t.At(i, varPos)
		for pos, col := range t.Columns() {
			if pos == catPos || pos == varPos {
				continue
			}
			v := t.At(i, pos)
			if v == nil {
				continue
			}
			out = append(out, Row{Category: category, Variable: variable, Metric: col, Value: v})
		}
	}
	return out
}
