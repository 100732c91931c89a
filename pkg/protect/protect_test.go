package protect_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/audit"
	"github.com/adri-oss/adri-go/pkg/config"
	"github.com/adri-oss/adri-go/pkg/protect"
	"github.com/adri-oss/adri-go/pkg/standards"
)

func testStandard() *adri.Standard {
	nullableFalse := false
	return &adri.Standard{
		Standards: adri.StandardInfo{ID: "orders-v1", Name: "orders", Version: "1.0.0"},
		Requirements: adri.Requirements{
			OverallMinimum: 80,
			FieldRequirements: map[string]adri.FieldRule{
				"email": {
					Type:      adri.FieldString,
					Nullable:  &nullableFalse,
					Pattern:   `[^@\s]+@[^@\s]+\.[^@\s]+`,
					MinLength: adri.IntPtr(5),
					MaxLength: adri.IntPtr(40),
				},
				"age": {
					Type:     adri.FieldInteger,
					Nullable: &nullableFalse,
					MinValue: adri.FloatPtr(0),
					MaxValue: adri.FloatPtr(120),
				},
			},
			DimensionRequirements: map[string]adri.DimensionConfig{
				adri.DimValidity: {Scoring: adri.DimensionScoringConfig{RuleWeights: adri.RuleWeights{
					"type": 0.3, "pattern": 0.3, "length_bounds": 0.2, "numeric_range": 0.2,
				}}},
				adri.DimCompleteness: {Scoring: adri.DimensionScoringConfig{RuleWeights: adri.RuleWeights{"missing_required": 1}}},
				adri.DimConsistency:  {Scoring: adri.DimensionScoringConfig{RuleWeights: adri.RuleWeights{"primary_key_uniqueness": 1}}},
				adri.DimFreshness:    {Scoring: adri.DimensionScoringConfig{RuleWeights: adri.RuleWeights{"date_window_recency": 0}}},
				adri.DimPlausibility: {Scoring: adri.DimensionScoringConfig{RuleWeights: adri.RuleWeights{
					"statistical_outliers": 0.5, "categorical_frequency": 0.5,
				}}},
			},
		},
	}
}

func goodOrders(t *testing.T) *adri.Dataset {
	t.Helper()
	ds, err := adri.NewDataset([]adri.Column{
		{Name: "email", Cells: []adri.Cell{adri.TextCell("john@example.com"), adri.TextCell("jane@test.org"), adri.TextCell("bob@company.net")}},
		{Name: "age", Cells: []adri.Cell{adri.IntCell(25), adri.IntCell(30), adri.IntCell(35)}},
	})
	require.NoError(t, err)
	return ds
}

func badOrders(t *testing.T) *adri.Dataset {
	t.Helper()
	ds, err := adri.NewDataset([]adri.Column{
		{Name: "email", Cells: []adri.Cell{adri.TextCell("not-an-email"), adri.TextCell("also-bad"), adri.NullCell, adri.TextCell("x")}},
		{Name: "age", Cells: []adri.Cell{adri.IntCell(-5), adri.IntCell(999), adri.NullCell, adri.IntCell(200)}},
	})
	require.NoError(t, err)
	return ds
}

func newGuard(t *testing.T) (*protect.Guard, string) {
	t.Helper()
	dir := t.TempDir()
	logger, err := audit.New(dir)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Paths.Contracts = filepath.Join(dir, "contracts")
	return protect.NewGuard(nil, cfg, logger), dir
}

func noopFn(_ context.Context, _ *adri.Dataset) (any, error) {
	return "ok", nil
}

// Scenario 1: excellent input, default config.
func TestGuard_ExcellentInputAllowed(t *testing.T) {
	g, _ := newGuard(t)
	called := false
	fn := func(ctx context.Context, data *adri.Dataset) (any, error) {
		called = true
		return "result", nil
	}

	out, err := g.Run(context.Background(), goodOrders(t), protect.RunOptions{
		DataParam:    "orders",
		FunctionName: "process_orders",
		StandardDict: testStandard(),
		MinScore:     80,
		OnFailure:    protect.OnFailureRaise,
	}, fn)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "result", out)
}

// Scenario 2: bad input, raise mode.
func TestGuard_BadInputRaiseBlocksAndSkipsFunction(t *testing.T) {
	g, dir := newGuard(t)
	called := false
	fn := func(ctx context.Context, data *adri.Dataset) (any, error) {
		called = true
		return nil, nil
	}

	_, err := g.Run(context.Background(), badOrders(t), protect.RunOptions{
		DataParam:    "orders",
		FunctionName: "process_orders",
		StandardDict: testStandard(),
		MinScore:     80,
		OnFailure:    protect.OnFailureRaise,
	}, fn)

	require.Error(t, err)
	assert.False(t, called)

	var protErr *adri.ProtectionError
	require.True(t, errors.As(err, &protErr))
	assert.Contains(t, protErr.Error(), "BLOCKED")
	assert.Less(t, protErr.Score, 50.0)

	raw, readErr := os.ReadFile(filepath.Join(dir, "adri_assessment_logs.jsonl"))
	require.NoError(t, readErr)
	assert.Contains(t, string(raw), `"execution_decision":"BLOCKED"`)
}

// Scenario 3: bad input, warn mode still invokes the function.
func TestGuard_BadInputWarnStillInvokes(t *testing.T) {
	g, _ := newGuard(t)
	called := false
	fn := func(ctx context.Context, data *adri.Dataset) (any, error) {
		called = true
		return "ran anyway", nil
	}

	out, err := g.Run(context.Background(), badOrders(t), protect.RunOptions{
		DataParam:    "orders",
		FunctionName: "process_orders",
		StandardDict: testStandard(),
		MinScore:     80,
		OnFailure:    protect.OnFailureWarn,
	}, fn)

	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "ran anyway", out)
}

// Scenario 4: auto-generation path persists a standard that then
// passes assessment on the same data (property P1 end to end).
func TestGuard_AutoGeneratePersistsPassingStandard(t *testing.T) {
	g, dir := newGuard(t)

	_, err := g.Run(context.Background(), goodOrders(t), protect.RunOptions{
		DataParam:    "orders",
		FunctionName: "process_orders",
		StandardName: "auto_orders",
		MinScore:     70,
		OnFailure:    protect.OnFailureRaise,
		AutoGenerate: true,
	}, noopFn)
	require.NoError(t, err)

	path := filepath.Join(dir, "contracts", "auto_orders.yaml")
	_, statErr := os.Stat(path)
	require.NoError(t, statErr, "generated standard should be persisted")

	// Second call resolves the just-written file and still passes.
	_, err = g.Run(context.Background(), goodOrders(t), protect.RunOptions{
		DataParam:    "orders",
		FunctionName: "process_orders",
		StandardName: "auto_orders",
		MinScore:     70,
		OnFailure:    protect.OnFailureRaise,
		AutoGenerate: false,
	}, noopFn)
	require.NoError(t, err)
}

// Scenario 5: bundled standard takes precedence over a same-named file.
func TestGuard_BundledStandardPrecedence(t *testing.T) {
	dir := t.TempDir()
	bundledDir := filepath.Join(dir, "bundled")
	require.NoError(t, os.MkdirAll(bundledDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(bundledDir, "cust.yaml"), []byte(`
standards:
  id: cust-bundled
  name: cust
  version: "1.0.0"
requirements:
  overall_minimum: 0
  field_requirements: {}
  dimension_requirements: {}
`), 0o644))
	bundled, err := standards.NewFromDir(bundledDir)
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Paths.Contracts = dir
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cust.yaml"), []byte(`
standards:
  id: cust-file
  name: cust
  version: "1.0.0"
requirements:
  overall_minimum: 0
  field_requirements: {}
  dimension_requirements: {}
`), 0o644))

	logger, err := audit.New(filepath.Join(dir, "audit"))
	require.NoError(t, err)
	g := protect.NewGuard(bundled, cfg, logger)

	ds, err := adri.NewDataset([]adri.Column{{Name: "x", Cells: []adri.Cell{adri.IntCell(1)}}})
	require.NoError(t, err)

	_, err = g.Run(context.Background(), ds, protect.RunOptions{
		DataParam:    "data",
		FunctionName: "f",
		StandardName: "cust",
		MinScore:     0,
		OnFailure:    protect.OnFailureRaise,
	}, noopFn)
	require.NoError(t, err)

	raw, readErr := os.ReadFile(filepath.Join(dir, "audit", "adri_assessment_logs.jsonl"))
	require.NoError(t, readErr)
	assert.Contains(t, string(raw), `"standard_id":"cust-bundled"`,
		"bundled standard must take precedence over a same-named file")
}

// Scenario 6: dimension override failure names the offending dimension.
func TestGuard_DimensionOverrideFailureNamesDimension(t *testing.T) {
	g, _ := newGuard(t)

	// Missing the "age" field entirely tanks completeness while
	// validity/consistency/freshness/plausibility stay neutral-to-high,
	// giving an overall score that clears 80 but a completeness floor
	// of 15 that it cannot.
	ds, err := adri.NewDataset([]adri.Column{
		{Name: "email", Cells: []adri.Cell{adri.TextCell("john@example.com"), adri.TextCell("jane@test.org"), adri.TextCell("bob@company.net")}},
	})
	require.NoError(t, err)

	_, err = g.Run(context.Background(), ds, protect.RunOptions{
		DataParam:    "orders",
		FunctionName: "process_orders",
		StandardDict: testStandard(),
		MinScore:     0,
		OnFailure:    protect.OnFailureRaise,
		Dimensions:   map[string]float64{adri.DimCompleteness: 15},
	}, noopFn)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "completeness")
}

// Property P7: cache idempotence — identical results, reused not rerun
// (checked indirectly: two back-to-back calls on identical data both
// succeed and each produces an audit row).
func TestGuard_CacheIdempotence(t *testing.T) {
	dir := t.TempDir()
	logger, err := audit.New(dir)
	require.NoError(t, err)
	cfg := config.Default()
	cfg.Protection.CacheDurationHours = 1

	g := protect.NewGuard(nil, cfg, logger)
	opts := protect.RunOptions{
		DataParam:    "orders",
		FunctionName: "process_orders",
		StandardDict: testStandard(),
		MinScore:     80,
		OnFailure:    protect.OnFailureRaise,
	}

	_, err1 := g.Run(context.Background(), goodOrders(t), opts, noopFn)
	_, err2 := g.Run(context.Background(), goodOrders(t), opts, noopFn)
	require.NoError(t, err1)
	require.NoError(t, err2)

	raw, readErr := os.ReadFile(filepath.Join(dir, "adri_assessment_logs.jsonl"))
	require.NoError(t, readErr)
	assert.Equal(t, 2, countNonEmptyLines(string(raw)))
}

func countNonEmptyLines(s string) int {
	n := 0
	for _, line := range splitLines(s) {
		if line != "" {
			n++
		}
	}
	return n
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
