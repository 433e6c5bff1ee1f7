// Package chart builds chart series from long-form rows. Rendering proper
// is left to the charting collaborator, which expects a label column and a
// numeric value column; this package also offers a plain terminal preview.
package chart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/leapstack-labs/longform/internal/reshape"
)

// NullLabel is used for a NULL variable level.
const NullLabel = "NA"

// Series is one chart's worth of data: parallel labels and values.
type Series struct {
	Title  string
	Labels []string
	Values []float64
}

// FromLong selects the rows of one (category, metric) pair and turns them
// into a series, preserving row order. Rows whose value is NULL or not
// numeric are skipped; NULL variables become the NullLabel level.
func FromLong(rows reshape.Long, category, metric string) Series {
	s := Series{Title: fmt.Sprintf("%s (%s)", category, metric)}
	for _, r := range rows {
		if r.Category != category || r.Metric != metric {
			continue
		}
		v, ok := toFloat(r.Value)
		if !ok {
			continue
		}
		label := NullLabel
		if r.Variable != nil {
			label = fmt.Sprintf("%v", r.Variable)
		}
		s.Labels = append(s.Labels, label)
		s.Values = append(s.Values, v)
	}
	return s
}

// toFloat converts a cell to float64 where a numeric reading exists.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

const barWidth = 40

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Bars renders a horizontal bar preview of a series for the terminal.
func Bars(s Series) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(s.Title))
	b.WriteString("\n")

	if len(s.Values) == 0 {
		b.WriteString("(no data)\n")
		return b.String()
	}

	max := s.Values[0]
	labelWidth := 0
	for i, v := range s.Values {
		if v > max {
			max = v
		}
		if len(s.Labels[i]) > labelWidth {
			labelWidth = len(s.Labels[i])
		}
	}

	for i, v := range s.Values {
		width := 0
		if max > 0 && v > 0 {
			width = int(v / max * barWidth)
			if width == 0 {
				width = 1
			}
		}
		bar := barStyle.Render(strings.Repeat("█", width))
		fmt.Fprintf(&b, "%-*s  %s %s\n", labelWidth, s.Labels[i], bar, formatNumber(v))
	}
	return b.String()
}

// formatNumber trims trailing zeros so counts print as integers.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
