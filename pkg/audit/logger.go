// Package audit implements the append-only JSONL audit trail (spec
// §4.9, component C10): one line per assessment, one line per scored
// dimension, and one line per failed validation, written to three
// files in the configured audit directory.
package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// ExecutionDecision is the outcome the protection engine recorded for
// one assessment (spec §4.8 step 8).
type ExecutionDecision string

const (
	DecisionAllowed        ExecutionDecision = "ALLOWED"
	DecisionBlocked        ExecutionDecision = "BLOCKED"
	DecisionWarnContinue   ExecutionDecision = "WARN_CONTINUE"
	DecisionContinueSilent ExecutionDecision = "CONTINUE_SILENT"
)

const (
	assessmentLogFile = "adri_assessment_logs.jsonl"
	dimensionLogFile  = "adri_dimension_scores.jsonl"
	failureLogFile    = "adri_failed_validations.jsonl"
)

// AssessmentRecord is one row of adri_assessment_logs.jsonl.
type AssessmentRecord struct {
	Timestamp           time.Time         `json:"timestamp"`
	AssessmentID         string            `json:"assessment_id"`
	OverallScore         float64           `json:"overall_score"`
	Passed               bool              `json:"passed"`
	StandardID           string            `json:"standard_id"`
	FunctionName         string            `json:"function_name"`
	DataRowCount         int               `json:"data_row_count"`
	AssessmentDurationMS int64             `json:"assessment_duration_ms"`
	ExecutionDecision    ExecutionDecision `json:"execution_decision"`
}

// DimensionRecord is one row of adri_dimension_scores.jsonl.
type DimensionRecord struct {
	Timestamp    time.Time `json:"timestamp"`
	AssessmentID string    `json:"assessment_id"`
	Dimension    string    `json:"dimension"`
	Score        float64   `json:"score"`
}

// FailureRecord is one row of adri_failed_validations.jsonl.
type FailureRecord struct {
	Timestamp time.Time              `json:"timestamp"`
	Failure   adri.FailedValidation  `json:"failure"`
}

// Logger is the C10 append-only writer. Callers share one Logger per
// audit directory; it serializes writes with a mutex so concurrent
// protect_function_call invocations never interleave partial JSON
// lines (spec §5).
type Logger struct {
	dir string
	mu  sync.Mutex
}

// New returns a Logger writing into dir, creating it if necessary.
func New(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("audit: creating directory %q: %w", dir, err)
	}
	return &Logger{dir: dir}, nil
}

// LogAssessment appends one assessment row, one row per scored
// dimension, and one row per failed validation (spec §4.8 step 8). All
// rows for a single assessment are written while the lock is held so
// they land together even if another goroutine is also logging.
func (l *Logger) LogAssessment(rec AssessmentRecord, result *adri.AssessmentResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := appendLine(filepath.Join(l.dir, assessmentLogFile), rec); err != nil {
		return err
	}

	for _, dim := range adri.Dimensions {
		score, ok := result.DimensionScoreOrZero(dim)
		if !ok {
			continue
		}
		drec := DimensionRecord{
			Timestamp:    rec.Timestamp,
			AssessmentID: rec.AssessmentID,
			Dimension:    dim,
			Score:        score,
		}
		if err := appendLine(filepath.Join(l.dir, dimensionLogFile), drec); err != nil {
			return err
		}
	}

	for _, f := range result.FailedValidations {
		frec := FailureRecord{Timestamp: rec.Timestamp, Failure: f}
		if err := appendLine(filepath.Join(l.dir, failureLogFile), frec); err != nil {
			return err
		}
	}
	return nil
}

// appendLine writes v as one newline-terminated JSON line, opened in
// append mode per write so O_APPEND gives atomic single-line writes
// even across processes (spec §5).
func appendLine(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("audit: marshaling record: %w", err)
	}
	data = append(data, '\n')

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("audit: opening %q: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("audit: writing %q: %w", path, err)
	}
	return nil
}
