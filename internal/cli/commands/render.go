package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	pretty "github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/longform/internal/table"
)

// renderTableAs writes t in the requested format: table (default), json,
// csv, or markdown.
func renderTableAs(w io.Writer, t *table.Table, format string) error {
	switch format {
	case "json":
		return renderJSON(w, t)
	case "csv":
		return renderCSV(w, t)
	case "md", "markdown":
		return renderMarkdown(w, t)
	default:
		return renderPretty(w, t)
	}
}

func renderPretty(w io.Writer, t *table.Table) error {
	if t.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	cols := t.Columns()
	tw := pretty.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(pretty.StyleLight)

	header := make(pretty.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	tw.AppendHeader(header)

	for i := 0; i < t.Len(); i++ {
		row := make(pretty.Row, len(cols))
		for c := range cols {
			row[c] = formatValue(t.At(i, c))
		}
		tw.AppendRow(row)
	}

	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", t.Len())
	return nil
}

func renderJSON(w io.Writer, t *table.Table) error {
	cols := t.Columns()
	results := make([]map[string]any, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := make(map[string]any, len(cols))
		for c, col := range cols {
			row[col] = t.At(i, c)
		}
		results = append(results, row)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderCSV(w io.Writer, t *table.Table) error {
	cols := t.Columns()
	_, _ = fmt.Fprintln(w, strings.Join(cols, ","))

	for i := 0; i < t.Len(); i++ {
		values := make([]string, len(cols))
		for c := range cols {
			values[c] = escapeCSV(formatValue(t.At(i, c)))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, t *table.Table) error {
	if t.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	cols := t.Columns()
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for i := 0; i < t.Len(); i++ {
		values := make([]string, len(cols))
		for c := range cols {
			values[c] = formatValue(t.At(i, c))
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
