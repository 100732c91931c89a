package profiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/profiler"
)

func sampleDataset(t *testing.T) *adri.Dataset {
	t.Helper()
	ds, err := adri.NewDataset([]adri.Column{
		{Name: "email", Cells: []adri.Cell{
			adri.TextCell("john@example.com"), adri.TextCell("jane@test.org"), adri.NullCell,
		}},
		{Name: "age", Cells: []adri.Cell{
			adri.IntCell(25), adri.IntCell(30), adri.IntCell(1000),
		}},
	})
	require.NoError(t, err)
	return ds
}

func TestProfile_TableLevel(t *testing.T) {
	ds := sampleDataset(t)
	tp := profiler.Profile(ds, profiler.Config{})

	assert.Equal(t, 3, tp.TotalRows)
	assert.Equal(t, 2, tp.ColumnCount)
	assert.InDelta(t, 5.0/6.0, tp.OverallCompleteness, 1e-9)
}

func TestProfile_ColumnLevel_NullsAndPatterns(t *testing.T) {
	ds := sampleDataset(t)
	tp := profiler.Profile(ds, profiler.Config{})

	email := tp.Columns["email"]
	assert.Equal(t, 1, email.NullCount)
	assert.InDelta(t, 100.0/3.0, email.NullPercentage, 1e-6)
	require.NotNil(t, email.Text)
	assert.Contains(t, email.Text.Patterns, "email")

	age := tp.Columns["age"]
	require.NotNil(t, age.Numeric)
	assert.Equal(t, 25.0, age.Numeric.Min)
	assert.Equal(t, 1000.0, age.Numeric.Max)
}

func TestProfile_MaxRowsCap(t *testing.T) {
	ds := sampleDataset(t)
	tp := profiler.Profile(ds, profiler.Config{MaxRows: 2})
	assert.Equal(t, 2, tp.TotalRows)
	assert.Equal(t, 2, tp.Columns["age"].RowCount)
}

func TestDetectPatterns_RequiresCoverage(t *testing.T) {
	emails := []string{"a@b.com", "c@d.com", "not-an-email"}
	assert.Empty(t, profiler.DetectPatterns(emails), "below coverage threshold")

	allEmails := []string{"a@b.com", "c@d.com", "e@f.com"}
	assert.Equal(t, []string{"email"}, profiler.DetectPatterns(allEmails))
}

func TestMatchesEmailPattern(t *testing.T) {
	assert.True(t, profiler.MatchesEmailPattern([]string{"a@b.com", "c@d.org"}))
	assert.False(t, profiler.MatchesEmailPattern([]string{"a@b.com", "nope"}))
}

func TestProfile_QualityAssessment(t *testing.T) {
	ds, err := adri.NewDataset([]adri.Column{
		{Name: "name", Cells: []adri.Cell{
			adri.TextCell("a"), adri.TextCell("a"), adri.TextCell("b"), adri.NullCell,
		}},
		{Name: "code", Cells: []adri.Cell{
			adri.TextCell("x"), adri.TextCell("x"), adri.IntCell(7), adri.TextCell("y"),
		}},
		{Name: "ghost", Cells: []adri.Cell{
			adri.NullCell, adri.NullCell, adri.NullCell, adri.NullCell,
		}},
	})
	require.NoError(t, err)

	tp := profiler.Profile(ds, profiler.Config{})
	qa := tp.Quality

	assert.Equal(t, 2, qa.FieldsWithNulls)
	assert.Equal(t, 1, qa.CompletelyNullFields)
	assert.Equal(t, 1, qa.DuplicateRows, "rows 0 and 1 are identical")
	assert.Contains(t, qa.PotentialIssues, "1 duplicate rows found")
	assert.Contains(t, qa.PotentialIssues, "Mixed data types in field: code")
	assert.Contains(t, qa.PotentialIssues, "High null rate in 1 fields")
}

func TestProfile_Recommendations(t *testing.T) {
	ds, err := adri.NewDataset([]adri.Column{
		{Name: "name", Cells: []adri.Cell{adri.TextCell("a"), adri.NullCell}},
	})
	require.NoError(t, err)

	tp := profiler.Profile(ds, profiler.Config{})
	assert.Contains(t, tp.Recommendations, "Consider addressing missing values to improve completeness")
	assert.Contains(t, tp.Recommendations, "Review string fields for consistent formatting")
}
