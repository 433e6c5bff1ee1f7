package reshape

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/longform/internal/table"
)

func TestPivotWide(t *testing.T) {
	long := NormalizeOne(adhdTable(t), "ADHD", Options{})

	wide, err := PivotWide(long)
	require.NoError(t, err)

	assert.Equal(t, []string{ColumnCategory, ColumnVariable, MetricCount, MetricPercent}, wide.Columns())
	require.Equal(t, 3, wide.Len())

	v, ok := wide.Cell(0, MetricCount)
	require.True(t, ok)
	assert.Equal(t, 10, v)

	v, ok = wide.Cell(1, MetricPercent)
	require.True(t, ok)
	assert.Equal(t, 4.5, v)

	// The NULL level stays its own row.
	v, ok = wide.Cell(2, ColumnVariable)
	require.True(t, ok)
	assert.Nil(t, v)
	v, ok = wide.Cell(2, MetricCount)
	require.True(t, ok)
	assert.Equal(t, 55, v)
}

func TestPivotWide_DuplicateKey(t *testing.T) {
	long := Long{
		{Category: "Age", Variable: "15-24", Metric: MetricCount, Value: 10},
		{Category: "Age", Variable: "15-24", Metric: MetricCount, Value: 12},
	}

	_, err := PivotWide(long)
	require.Error(t, err)

	var dup *DuplicateKeyError
	require.True(t, errors.As(err, &dup), "expected *DuplicateKeyError, got %T", err)
	assert.Equal(t, "Age", dup.Category)
	assert.Equal(t, "15-24", dup.Variable)
	assert.Equal(t, MetricCount, dup.Metric)
	assert.Contains(t, dup.Error(), "duplicate pivot key")
}

func TestPivotWide_KeyAndMetricOrder(t *testing.T) {
	long := Long{
		{Category: "Sex", Variable: "F", Metric: MetricPercent, Value: 52.0},
		{Category: "Sex", Variable: "F", Metric: MetricCount, Value: 40},
		{Category: "Age", Variable: "15-24", Metric: MetricCount, Value: 10},
	}

	wide, err := PivotWide(long)
	require.NoError(t, err)

	// First-seen order for both metrics and keys.
	assert.Equal(t, []string{ColumnCategory, ColumnVariable, MetricPercent, MetricCount}, wide.Columns())
	require.Equal(t, 2, wide.Len())

	cat, _ := wide.Cell(0, ColumnCategory)
	assert.Equal(t, "Sex", cat)
	cat, _ = wide.Cell(1, ColumnCategory)
	assert.Equal(t, "Age", cat)

	// Missing metric cells are NULL.
	v, ok := wide.Cell(1, MetricPercent)
	require.True(t, ok)
	assert.Nil(t, v)
}

func TestPivotWide_DropsAllNullRows(t *testing.T) {
	long := Long{
		{Category: "X", Variable: nil, Metric: MetricCount, Value: nil},
		{Category: "X", Variable: "a", Metric: MetricCount, Value: 1},
	}

	wide, err := PivotWide(long)
	require.NoError(t, err)
	require.Equal(t, 1, wide.Len())

	v, _ := wide.Cell(0, ColumnVariable)
	assert.Equal(t, "a", v)
}

func TestPivotWide_Empty(t *testing.T) {
	wide, err := PivotWide(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, wide.Len())
}

func TestPivotRoundTrip(t *testing.T) {
	long := NormalizeOne(adhdTable(t), "ADHD", Options{})

	wide, err := PivotWide(long)
	require.NoError(t, err)

	back := UnpivotLong(wide)
	assert.ElementsMatch(t, long, back)

	// Pivoting the unpivoted rows again reproduces the same table.
	wide2, err := PivotWide(back)
	require.NoError(t, err)
	assert.Equal(t, wide, wide2)
}

func TestUnpivotLong_MissingKeyColumns(t *testing.T) {
	tbl := table.New("a", "b")
	assert.Empty(t, UnpivotLong(tbl))
	assert.Empty(t, UnpivotLong(nil))
}
