package adri_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adri-oss/adri-go/pkg/adri"
)

func TestNewDataset_RowCountMismatch(t *testing.T) {
	_, err := adri.NewDataset([]adri.Column{
		{Name: "a", Cells: []adri.Cell{adri.IntCell(1), adri.IntCell(2)}},
		{Name: "b", Cells: []adri.Cell{adri.IntCell(1)}},
	})
	require.Error(t, err)
}

func TestNewDataset_DuplicateColumn(t *testing.T) {
	_, err := adri.NewDataset([]adri.Column{
		{Name: "a", Cells: []adri.Cell{adri.IntCell(1)}},
		{Name: "a", Cells: []adri.Cell{adri.IntCell(2)}},
	})
	require.Error(t, err)
}

func TestDataset_ColAndHead(t *testing.T) {
	ds, err := adri.NewDataset([]adri.Column{
		{Name: "age", Cells: []adri.Cell{adri.IntCell(25), adri.IntCell(30), adri.IntCell(35)}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, ds.RowCount)

	col, ok := ds.Col("age")
	require.True(t, ok)
	assert.Len(t, col.Cells, 3)

	_, ok = ds.Col("missing")
	assert.False(t, ok)

	head := ds.Head(2)
	assert.Equal(t, 2, head.RowCount)
	assert.Equal(t, ds, ds.Head(10)) // n >= RowCount returns self
}

func TestCell_AsFloat(t *testing.T) {
	f, ok := adri.TextCell("3.14").AsFloat()
	require.True(t, ok)
	assert.InDelta(t, 3.14, f, 1e-9)

	_, ok = adri.TextCell("not-a-number").AsFloat()
	assert.False(t, ok)

	f, ok = adri.IntCell(42).AsFloat()
	require.True(t, ok)
	assert.Equal(t, 42.0, f)
}

func TestCell_AsTime(t *testing.T) {
	_, ok := adri.TextCell("2024-01-15").AsTime()
	assert.True(t, ok)

	_, ok = adri.TextCell("not-a-date").AsTime()
	assert.False(t, ok)

	now := time.Now()
	dt := adri.DateTimeCell(now)
	got, ok := dt.AsTime()
	require.True(t, ok)
	assert.True(t, got.Equal(now))
}

func TestCell_Equal_CrossNumeric(t *testing.T) {
	assert.True(t, adri.IntCell(5).Equal(adri.FloatCell(5.0)))
	assert.False(t, adri.TextCell("5").Equal(adri.TextCell("05")))
}

func TestCell_Null(t *testing.T) {
	assert.True(t, adri.NullCell.Null())
	assert.False(t, adri.IntCell(0).Null())
}
