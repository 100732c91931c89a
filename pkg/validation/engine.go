// Package validation implements the five-dimension scoring engine
// (spec §4.5, component C6): given a dataset and a Standard, it produces
// an AssessmentResult with per-dimension scores, a summary-level rule
// execution log, and sampled failed validations.
package validation

import (
	"sort"
	"time"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// Config bounds the cost and verbosity of assessment.
type Config struct {
	// FailedValidationSampleCap caps sample_failures per FailedValidation
	// entry (spec §4.5 "sample rows (capped, default 5)").
	FailedValidationSampleCap int
}

// DefaultConfig returns the spec-documented defaults.
func DefaultConfig() Config {
	return Config{FailedValidationSampleCap: 5}
}

// Assess scores ds against std and returns the full AssessmentResult
// (component C6). now is the assessment timestamp the caller wants
// recorded; pass a fixed value from tests to compare results modulo
// the clock.
func Assess(ds adri.TabularView, std *adri.Standard, cfg Config, assessmentID string, now time.Time) *adri.AssessmentResult {
	if cfg.FailedValidationSampleCap <= 0 {
		cfg.FailedValidationSampleCap = 5
	}

	acc := &accumulator{cfg: cfg, assessmentID: assessmentID}
	acc.fieldAnalysis(ds, std)

	validity := scoreValidity(ds, std, acc)
	completeness := scoreCompleteness(ds, std, acc)
	consistency := scoreConsistency(ds, std, acc)
	freshness := scoreFreshness(ds, std, acc)
	plausibility := scorePlausibility(ds, std, acc)

	dims := map[string]adri.DimensionScore{
		adri.DimValidity:     validity,
		adri.DimCompleteness: completeness,
		adri.DimConsistency:  consistency,
		adri.DimFreshness:    freshness,
		adri.DimPlausibility: plausibility,
	}

	overall := validity.Score + completeness.Score + consistency.Score + freshness.Score + plausibility.Score

	// Map iteration during scoring is not ordered; sort both logs so
	// repeated runs over the same (ds, std) are byte-equal (property P2)
	// apart from the injected timestamp.
	sort.Slice(acc.log, func(i, j int) bool {
		if acc.log[i].Dimension != acc.log[j].Dimension {
			return acc.log[i].Dimension < acc.log[j].Dimension
		}
		if acc.log[i].Field != acc.log[j].Field {
			return acc.log[i].Field < acc.log[j].Field
		}
		return acc.log[i].Rule < acc.log[j].Rule
	})
	sort.Slice(acc.failed, func(i, j int) bool {
		if acc.failed[i].FieldName != acc.failed[j].FieldName {
			return acc.failed[i].FieldName < acc.failed[j].FieldName
		}
		return acc.failed[i].IssueType < acc.failed[j].IssueType
	})

	return &adri.AssessmentResult{
		OverallScore:      overall,
		Passed:            overall >= std.Requirements.OverallMinimum,
		StandardID:        std.Standards.ID,
		AssessmentDate:    now,
		DimensionScores:   dims,
		RuleExecutionLog:  acc.log,
		FieldAnalysis:     acc.fields,
		FailedValidations: acc.failed,
		Metadata:          map[string]any{"issue_severity": severitySummary(acc.failed)},
	}
}

func severitySummary(failed []adri.FailedValidation) map[string]int {
	out := map[string]int{}
	for _, f := range failed {
		out[f.Severity]++
	}
	return out
}

// sortedFieldNames returns field_requirements keys in a fixed order so
// every dimension scorer walks fields deterministically.
func sortedFieldNames(std *adri.Standard) []string {
	names := make([]string, 0, len(std.Requirements.FieldRequirements))
	for n := range std.Requirements.FieldRequirements {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
