// Package table provides a small column-oriented container for rectangular
// tabular data with nullable cells. It is the in-memory currency between the
// CSV-loading adapter, the reshape core, and the output renderers.
package table

import (
	"database/sql"
	"fmt"
)

// Value is a single cell. A nil Value is NULL.
type Value = any

// Table is a rectangular table with ordered, named columns.
// The zero value is not usable; create instances with New.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]Value
}

// New creates an empty table with the given column names, in order.
func New(columns ...string) *Table {
	t := &Table{
		cols:  make([]string, len(columns)),
		index: make(map[string]int, len(columns)),
	}
	copy(t.cols, columns)
	for i, c := range columns {
		t.index[c] = i
	}
	return t
}

// Columns returns the column names in declaration order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.cols)
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// AppendRow appends one row. The number of values must match the number
// of columns.
func (t *Table) AppendRow(values ...Value) error {
	if len(values) != len(t.cols) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.cols))
	}
	row := make([]Value, len(values))
	copy(row, values)
	t.rows = append(t.rows, row)
	return nil
}

// Row returns a copy of row i.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.rows[i]))
	copy(row, t.rows[i])
	return row
}

// Cell returns the value at row i in the named column. The second return
// is false if the column does not exist or i is out of range.
func (t *Table) Cell(i int, column string) (Value, bool) {
	c, ok := t.index[column]
	if !ok || i < 0 || i >= len(t.rows) {
		return nil, false
	}
	return t.rows[i][c], true
}

// At returns the value at row i, column c by position.
func (t *Table) At(i, c int) Value {
	return t.rows[i][c]
}

// Slice returns a new table holding rows [start, end) with the same columns.
func (t *Table) Slice(start, end int) (*Table, error) {
	if start < 0 || end > len(t.rows) || start > end {
		return nil, fmt.Errorf("slice bounds [%d, %d) out of range for %d rows", start, end, len(t.rows))
	}
	out := New(t.cols...)
	for i := start; i < end; i++ {
		if err := out.AppendRow(t.rows[i]...); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FromRows drains a database/sql result set into a Table. Byte slices are
// converted to strings for readability; SQL NULLs become nil cells.
func FromRows(rows *sql.Rows) (*Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	t := New(cols...)
	for rows.Next() {
		values := make([]Value, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		if err := t.AppendRow(values...); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return t, nil
}
