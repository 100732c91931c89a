package generator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/generator"
	"github.com/adri-oss/adri-go/pkg/rules"
)

func sampleTrainingDataset(t *testing.T) *adri.Dataset {
	t.Helper()
	ds, err := adri.NewDataset([]adri.Column{
		{Name: "customer_id", Cells: []adri.Cell{adri.IntCell(1), adri.IntCell(2), adri.IntCell(3), adri.IntCell(4)}},
		{Name: "status", Cells: []adri.Cell{adri.TextCell("active"), adri.TextCell("active"), adri.TextCell("inactive"), adri.TextCell("active")}},
		{Name: "age", Cells: []adri.Cell{adri.IntCell(25), adri.IntCell(40), adri.IntCell(33), adri.IntCell(61)}},
		{Name: "email", Cells: []adri.Cell{adri.TextCell("a@example.com"), adri.TextCell("b@example.com"), adri.TextCell("c@example.com"), adri.TextCell("d@example.com")}},
	})
	require.NoError(t, err)
	return ds
}

func TestGenerate_AssemblesStandard(t *testing.T) {
	ds := sampleTrainingDataset(t)
	cfg := generator.DefaultConfig()
	cfg.StandardID = "customers-v1"
	cfg.StandardName = "customers"

	std, err := generator.Generate(ds, cfg)
	require.NoError(t, err)
	require.NotNil(t, std)

	assert.Equal(t, "customers-v1", std.Standards.ID)
	assert.Equal(t, 75.0, std.Requirements.OverallMinimum)
	assert.Len(t, std.Requirements.FieldRequirements, 4)
	assert.Equal(t, []string{"customer_id"}, std.RecordIdentification.PrimaryKeyFields)
	assert.Nil(t, std.Requirements.FieldRequirements["customer_id"].AllowedValues, "PK column must not get an enum")
	assert.NotNil(t, std.Requirements.FieldRequirements["status"].AllowedValues)

	for _, dim := range adri.Dimensions {
		_, ok := std.Requirements.DimensionRequirements[dim]
		assert.True(t, ok, "dimension %s must have requirements wired", dim)
	}

	explanations, ok := std.Metadata["explanations"].(map[string]generator.FieldExplanation)
	require.True(t, ok)
	assert.Contains(t, explanations, "age")
}

func TestGenerate_TrainingPassGuarantee(t *testing.T) {
	ds := sampleTrainingDataset(t)
	std, err := generator.Generate(ds, generator.DefaultConfig())
	require.NoError(t, err)

	// Property P1: every value of every field must pass its own
	// generated rule.
	for name, rule := range std.Requirements.FieldRequirements {
		col, ok := ds.Col(name)
		require.True(t, ok)
		for _, cell := range col.Cells {
			if cell.Null() {
				assert.True(t, rule.IsNullable(), "field %s: null observed but not marked nullable", name)
				continue
			}
			for _, outcome := range rules.EvaluateValue(cell, rule) {
				assert.True(t, outcome.Pass, "field %s rule %s should pass after training-pass enforcement: %s", name, outcome.Rule, outcome.Detail)
			}
		}
	}
}

func TestGenerate_RelaxesOutlierThatWouldOtherwiseFail(t *testing.T) {
	// A hand-built standard's numeric range is deliberately inconsistent
	// with the dataset it is being generated from is not directly
	// testable through Generate (inference always derives a consistent
	// range), so instead this exercises the enforcement loop's
	// widen-to-observed behavior indirectly: a skewed distribution still
	// ends up passing every value even under the default span strategy.
	ds, err := adri.NewDataset([]adri.Column{
		{Name: "amount", Cells: []adri.Cell{
			adri.FloatCell(10), adri.FloatCell(12), adri.FloatCell(11), adri.FloatCell(9000),
		}},
	})
	require.NoError(t, err)

	std, err := generator.Generate(ds, generator.DefaultConfig())
	require.NoError(t, err)

	rule := std.Requirements.FieldRequirements["amount"]
	for _, cell := range ds.Columns[0].Cells {
		outcome := rules.CheckNumericRange(cell, rule)
		assert.True(t, outcome.Pass)
	}
}

func TestGenerate_RejectsEmptyDataset(t *testing.T) {
	ds, err := adri.NewDataset(nil)
	require.NoError(t, err)
	_, err = generator.Generate(ds, generator.DefaultConfig())
	assert.Error(t, err)
}
