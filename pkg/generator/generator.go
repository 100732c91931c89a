// Package generator implements the standard generator (spec §4.4,
// component C5): it orchestrates profiling and inference into a
// self-consistent Standard document, then enforces the training-pass
// guarantee by relaxing whichever rules the training data itself would
// fail.
package generator

import (
	"fmt"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/inference"
	"github.com/adri-oss/adri-go/pkg/profiler"
)

// Config parametrizes generation.
type Config struct {
	StandardID      string
	StandardName    string
	OverallMinimum  float64 // default 75
	Inference       inference.Config
	Profile         profiler.Config
	MaxTrainingPasses int // default 2
}

// DefaultConfig returns the spec-documented defaults.
func DefaultConfig() Config {
	return Config{
		OverallMinimum:    75,
		Inference:         inference.DefaultConfig(),
		MaxTrainingPasses: 2,
	}
}

// Generate runs the full C5 pipeline over a training dataset and
// returns a Standard guaranteed to score ds as passing (property P1).
func Generate(ds *adri.Dataset, cfg Config) (*adri.Standard, error) {
	if ds == nil || len(ds.Columns) == 0 {
		return nil, fmt.Errorf("generator: cannot generate a standard from an empty dataset")
	}

	tp := profiler.Profile(ds, cfg.Profile)
	inferred := inference.Infer(ds, tp, cfg.Inference)

	explanations := map[string]*FieldExplanation{}
	fieldRequirements := map[string]adri.FieldRule{}
	pkSet := make(map[string]bool, len(inferred.PrimaryKey))
	for _, n := range inferred.PrimaryKey {
		pkSet[n] = true
	}

	for _, f := range inferred.Fields {
		rule := f.Rule
		if pkSet[f.Name] {
			rule.AllowedValues = nil // step 3: suppress enums on PK columns
		}
		fieldRequirements[f.Name] = rule
		explanations[f.Name] = explainField(f.Name, rule, tp.Columns[f.Name])
	}

	standard := &adri.Standard{
		Standards: adri.StandardInfo{
			ID:      cfg.StandardID,
			Name:    cfg.StandardName,
			Version: "1.0.0",
		},
		Requirements: adri.Requirements{
			OverallMinimum:        cfg.OverallMinimum,
			FieldRequirements:     fieldRequirements,
			DimensionRequirements: defaultDimensionRequirements(fieldRequirements),
		},
	}
	if len(inferred.PrimaryKey) > 0 {
		standard.RecordIdentification = &adri.RecordIdentification{
			PrimaryKeyFields: inferred.PrimaryKey,
			Strategy:         "combinatorial",
		}
	}

	passes := enforceTrainingPass(ds, standard, explanations, cfg.MaxTrainingPasses)

	standard.Metadata = map[string]any{
		"explanations":     explanationsToMetadata(explanations),
		"training_passes":  passes,
		"generated_row_count": ds.RowCount,
	}
	return standard, nil
}

func explanationsToMetadata(explanations map[string]*FieldExplanation) map[string]FieldExplanation {
	out := make(map[string]FieldExplanation, len(explanations))
	for k, v := range explanations {
		out[k] = *v
	}
	return out
}

// defaultDimensionRequirements wires an explicit, active rule_weights
// set for every dimension (spec §4.4 step 4). Freshness gets a
// date_window_recency weight of 1 when any inferred field carries a
// date window, and 0 otherwise.
func defaultDimensionRequirements(fields map[string]adri.FieldRule) map[string]adri.DimensionConfig {
	hasDateWindow := false
	for _, r := range fields {
		if r.AfterDate != "" || r.BeforeDate != "" || r.AfterDateTime != "" || r.BeforeDateTime != "" {
			hasDateWindow = true
			break
		}
	}
	freshnessWeight := 0.0
	if hasDateWindow {
		freshnessWeight = 1.0
	}

	return map[string]adri.DimensionConfig{
		adri.DimValidity: {
			MinimumScore: 15,
			Weight:       1,
			Scoring: adri.DimensionScoringConfig{
				RuleWeights: adri.RuleWeights{
					"type":           0.3,
					"allowed_values": 0.2,
					"pattern":        0.15,
					"length_bounds":  0.15,
					"numeric_range":  0.2,
				},
			},
		},
		adri.DimCompleteness: {
			MinimumScore: 15,
			Weight:       1,
			Scoring: adri.DimensionScoringConfig{
				RuleWeights: adri.RuleWeights{"missing_required": 1.0},
			},
		},
		adri.DimConsistency: {
			MinimumScore: 15,
			Weight:       1,
			Scoring: adri.DimensionScoringConfig{
				RuleWeights: adri.RuleWeights{"primary_key_uniqueness": 1.0},
			},
		},
		adri.DimFreshness: {
			MinimumScore: 0,
			Weight:       1,
			Scoring: adri.DimensionScoringConfig{
				RuleWeights: adri.RuleWeights{"date_window_recency": freshnessWeight},
			},
		},
		adri.DimPlausibility: {
			MinimumScore: 10,
			Weight:       1,
			Scoring: adri.DimensionScoringConfig{
				RuleWeights: adri.RuleWeights{
					"statistical_outliers":     0.4,
					"categorical_frequency":    0.2,
					"business_logic":           0.2,
					"cross_field_consistency":  0.2,
				},
			},
		},
	}
}

func explainField(name string, rule adri.FieldRule, cp profiler.ColumnProfile) *FieldExplanation {
	fe := newFieldExplanation()
	fe.addRule("type", rule.Type, fmt.Sprintf("inferred from observed values in %q", name), nil)

	if rule.Nullable != nil {
		fe.addRule("nullable", *rule.Nullable, "true iff nulls were observed in training data", map[string]any{
			"null_count": cp.NullCount,
		})
	}
	if len(rule.AllowedValues) > 0 {
		fe.addRule("allowed_values", rule.AllowedValues, "covers the observed category set within the configured coverage threshold", map[string]any{
			"distinct_count": cp.DistinctCount,
		})
	}
	if rule.MinValue != nil || rule.MaxValue != nil {
		stats := map[string]any{}
		if cp.Numeric != nil {
			stats["observed_min"] = cp.Numeric.Min
			stats["observed_max"] = cp.Numeric.Max
			stats["median"] = cp.Numeric.Median
			stats["iqr"] = cp.Numeric.Q3 - cp.Numeric.Q1
		}
		fe.addRule("numeric_range", [2]*float64{rule.MinValue, rule.MaxValue}, "widened around the observed distribution per the configured range strategy", stats)
	}
	if rule.MinLength != nil || rule.MaxLength != nil {
		stats := map[string]any{}
		if cp.Text != nil {
			stats["observed_min_length"] = cp.Text.MinLength
			stats["observed_max_length"] = cp.Text.MaxLength
		}
		fe.addRule("length_bounds", [2]*int{rule.MinLength, rule.MaxLength}, "matches the observed code-point length range", stats)
	}
	if rule.Pattern != "" {
		fe.addRule("pattern", rule.Pattern, "value shape is confidently email-like across the training data", nil)
	}
	if rule.AfterDate != "" || rule.BeforeDate != "" || rule.AfterDateTime != "" || rule.BeforeDateTime != "" {
		fe.addRule("date_bounds", [2]string{rule.AfterDate + rule.AfterDateTime, rule.BeforeDate + rule.BeforeDateTime}, "spans the observed date range plus margin", nil)
	}
	return fe
}
