package adri

import "time"

// DimensionScore is one dimension's contribution to an AssessmentResult,
// bounded to [0,20] per invariant I1.
type DimensionScore struct {
	Score   float64        `json:"score" yaml:"score"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
}

// RuleExecutionSummary is one line of the rule_execution_log: a
// summary-level count of a rule's outcomes, never per-row (§4.5).
type RuleExecutionSummary struct {
	Dimension string  `json:"dimension" yaml:"dimension"`
	Field     string  `json:"field,omitempty" yaml:"field,omitempty"`
	Rule      string  `json:"rule" yaml:"rule"`
	Passed    int     `json:"passed" yaml:"passed"`
	Failed    int     `json:"failed" yaml:"failed"`
	Weight    float64 `json:"weight" yaml:"weight"`
}

// FailedValidation records one field/rule failure for audit and
// remediation purposes (§3).
type FailedValidation struct {
	AssessmentID       string   `json:"assessment_id" yaml:"assessment_id"`
	FieldName          string   `json:"field_name" yaml:"field_name"`
	IssueType          string   `json:"issue_type" yaml:"issue_type"`
	AffectedRows       int      `json:"affected_rows" yaml:"affected_rows"`
	AffectedPercentage float64  `json:"affected_percentage" yaml:"affected_percentage"`
	SampleFailures     []string `json:"sample_failures,omitempty" yaml:"sample_failures,omitempty"`
	Remediation        string   `json:"remediation,omitempty" yaml:"remediation,omitempty"`
	Severity           string   `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// FieldAnalysis records what scoring observed about one column,
// including columns present in the data but absent from requirements
// (§4.5: "extra columns ... recorded in field_analysis").
type FieldAnalysis struct {
	Field        string `json:"field" yaml:"field"`
	InStandard   bool   `json:"in_standard" yaml:"in_standard"`
	InDataset    bool   `json:"in_dataset" yaml:"in_dataset"`
	NullCount    int    `json:"null_count" yaml:"null_count"`
	NonNullCount int    `json:"non_null_count" yaml:"non_null_count"`
}

// AssessmentResult is the output of the validation engine (§3, C6).
type AssessmentResult struct {
	OverallScore     float64                    `json:"overall_score" yaml:"overall_score"`
	Passed           bool                       `json:"passed" yaml:"passed"`
	StandardID       string                     `json:"standard_id" yaml:"standard_id"`
	AssessmentDate   time.Time                  `json:"assessment_date" yaml:"assessment_date"`
	DimensionScores  map[string]DimensionScore  `json:"dimension_scores" yaml:"dimension_scores"`
	RuleExecutionLog []RuleExecutionSummary     `json:"rule_execution_log" yaml:"rule_execution_log"`
	FieldAnalysis    map[string]FieldAnalysis   `json:"field_analysis" yaml:"field_analysis"`
	FailedValidations []FailedValidation        `json:"failed_validations,omitempty" yaml:"failed_validations,omitempty"`
	Metadata         map[string]any             `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// DimensionScoreOrZero returns the dimension's score or zero, as the
// protection engine's dimension-floor check requires (§4.8 step 6: "if
// the dimension's score is missing ... treat as dimension failure").
func (r *AssessmentResult) DimensionScoreOrZero(dim string) (float64, bool) {
	d, ok := r.DimensionScores[dim]
	if !ok {
		return 0, false
	}
	return d.Score, true
}
