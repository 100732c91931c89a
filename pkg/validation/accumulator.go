package validation

import "github.com/adri-oss/adri-go/pkg/adri"

// accumulator collects the cross-cutting outputs every dimension scorer
// contributes to: the rule execution log, sampled failed validations,
// and the per-field analysis record (spec §4.5).
type accumulator struct {
	cfg          Config
	assessmentID string

	log    []adri.RuleExecutionSummary
	fields map[string]adri.FieldAnalysis
	failed []adri.FailedValidation
}

func (a *accumulator) recordRule(dim, field, rule string, pass, fail int, weight float64) {
	a.log = append(a.log, adri.RuleExecutionSummary{
		Dimension: dim,
		Field:     field,
		Rule:      rule,
		Passed:    pass,
		Failed:    fail,
		Weight:    weight,
	})
}

func (a *accumulator) recordFailure(field, issueType string, affectedRows, totalRows int, samples []string, remediation, severity string) {
	pct := 0.0
	if totalRows > 0 {
		pct = 100 * float64(affectedRows) / float64(totalRows)
	}
	if cap := a.cfg.FailedValidationSampleCap; cap > 0 && len(samples) > cap {
		samples = samples[:cap]
	}
	a.failed = append(a.failed, adri.FailedValidation{
		AssessmentID:       a.assessmentID,
		FieldName:          field,
		IssueType:          issueType,
		AffectedRows:       affectedRows,
		AffectedPercentage: pct,
		SampleFailures:     samples,
		Remediation:        remediation,
		Severity:           severity,
	})
}

// fieldAnalysis records what scoring observed about every field named
// in the standard plus every extra column present in the dataset but
// not in requirements (spec §4.5: "extra columns ... recorded in
// field_analysis").
func (a *accumulator) fieldAnalysis(ds adri.TabularView, std *adri.Standard) {
	a.fields = map[string]adri.FieldAnalysis{}
	seen := make(map[string]bool, len(std.Requirements.FieldRequirements))

	for name := range std.Requirements.FieldRequirements {
		seen[name] = true
		a.fields[name] = analyzeField(ds, name, true)
	}
	for _, name := range ds.ColumnNames() {
		if seen[name] {
			continue
		}
		a.fields[name] = analyzeField(ds, name, false)
	}
}

func analyzeField(ds adri.TabularView, name string, inStandard bool) adri.FieldAnalysis {
	fa := adri.FieldAnalysis{Field: name, InStandard: inStandard}
	col, ok := ds.Col(name)
	if !ok {
		return fa
	}
	fa.InDataset = true
	for _, c := range col.Cells {
		if c.Null() {
			fa.NullCount++
		} else {
			fa.NonNullCount++
		}
	}
	return fa
}

func severityFor(affected, total int) string {
	if total <= 0 || affected <= 0 {
		return "low"
	}
	pct := float64(affected) / float64(total)
	switch {
	case pct >= 0.5:
		return "critical"
	case pct >= 0.2:
		return "high"
	case pct >= 0.05:
		return "medium"
	default:
		return "low"
	}
}
