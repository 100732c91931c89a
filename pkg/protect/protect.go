// Package protect implements the protection engine (spec §4.8,
// component C9): a middleware that guards a user function call behind
// a standard assessment, following the strict resolve -> ensure ->
// fingerprint -> assess -> decide -> audit -> invoke order.
//
// Go has no callable introspection to rescue a dataset out of a
// function's positional arguments the way the reference implementation
// does, so this package follows spec §9's "Reflection-based arg
// extraction -> explicit contract" note: callers pass the dataset
// explicitly to Guard.Run, the same way the teacher's HTTP middleware
// (pkg/interface) wraps a handler rather than inspecting one.
package protect

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/audit"
	"github.com/adri-oss/adri-go/pkg/config"
	"github.com/adri-oss/adri-go/pkg/generator"
	"github.com/adri-oss/adri-go/pkg/standards"
	"github.com/adri-oss/adri-go/pkg/validation"
)

// FailureMode selects how Guard.Run reacts to a quality breach (spec
// §4.8 step 7).
type FailureMode string

const (
	OnFailureRaise    FailureMode = "raise"
	OnFailureWarn     FailureMode = "warn"
	OnFailureContinue FailureMode = "continue"
)

// RunOptions configures a single protect_function_call invocation
// (spec §4.8). Exactly one of StandardDict, StandardName, or
// StandardFile should be set; when none are set the standard name is
// inferred from FunctionName and DataParam.
type RunOptions struct {
	DataParam    string
	FunctionName string

	StandardDict *adri.Standard
	StandardName string
	StandardFile string

	MinScore     float64
	OnFailure    FailureMode
	Dimensions   map[string]float64
	AutoGenerate bool
	Verbose      bool
}

func (o RunOptions) onFailure() FailureMode {
	switch o.OnFailure {
	case OnFailureRaise, OnFailureWarn, OnFailureContinue:
		return o.OnFailure
	case "":
		return OnFailureRaise
	default:
		log.Printf("adri: unknown on_failure mode %q, defaulting to raise", o.OnFailure)
		return OnFailureRaise
	}
}

// Guard is the C9 state machine wired to the rest of the library:
// bundled+project standards (C7), config (C8), generation (C5),
// assessment (C6), and the audit trail (C10). One Guard is meant to be
// shared across goroutines; it is reentrant (spec §5).
type Guard struct {
	bundled    *standards.Loader
	cfg        *config.Config
	auditor    *audit.Logger
	genCfg     generator.Config
	valCfg     validation.Config
	cache      *resultCache
	packageDir string
	tel        *telemetry
}

// NewGuard wires a Guard from its dependencies. bundled may be nil to
// disable bundled-standard lookup; auditor may be nil to disable
// audit logging (emissions become no-ops).
func NewGuard(bundled *standards.Loader, cfg *config.Config, auditor *audit.Logger) *Guard {
	if cfg == nil {
		cfg = config.Default()
	}
	ttl := time.Duration(cfg.Protection.CacheDurationHours * float64(time.Hour))
	return &Guard{
		bundled:    bundled,
		cfg:        cfg,
		auditor:    auditor,
		genCfg:     generator.DefaultConfig(),
		valCfg:     validation.DefaultConfig(),
		cache:      newResultCache(ttl),
		packageDir: ".",
		tel:        newTelemetry(),
	}
}

// WithPackageDir sets the package_local resolution context (spec
// §4.7) — typically the directory of the calling package — and
// returns g for chaining.
func (g *Guard) WithPackageDir(dir string) *Guard {
	g.packageDir = dir
	return g
}

// Fn is the shape of a guarded user function: it receives the resolved
// dataset and returns whatever the caller wants propagated back.
type Fn func(ctx context.Context, data *adri.Dataset) (any, error)

// Run executes the full protect_function_call algorithm (spec §4.8)
// around fn, using data as the already-extracted data-param value
// (spec §9's explicit-contract note: extraction happens before Run is
// called, not inside it).
func (g *Guard) Run(ctx context.Context, data *adri.Dataset, opts RunOptions, fn Fn) (any, error) {
	ctx, span := g.tel.startSpan(ctx, opts)
	defer span.End()

	if data == nil {
		err := &adri.ProtectionError{
			Message:      fmt.Sprintf("adri: could not find data parameter %q", opts.DataParam),
			FunctionName: opts.FunctionName,
		}
		g.tel.recordError(span, err)
		return nil, err
	}
	if opts.MinScore == 0 {
		opts.MinScore = g.cfg.Protection.DefaultMinScore
	}
	start := time.Now()

	std, sourceDesc, err := g.resolveAndEnsure(data, opts)
	if err != nil {
		g.tel.recordError(span, err)
		return nil, err
	}

	fingerprint := Fingerprint(data)
	cacheKey := std.Standards.ID + ":" + fingerprint
	assessmentID := uuid.NewString()

	result, cached := g.cache.get(cacheKey)
	if !cached {
		result = validation.Assess(data, std, g.valCfg, assessmentID, time.Now())
		g.cache.put(cacheKey, result)
	}

	decision, reasons := evaluateDecision(result, opts.MinScore, opts.Dimensions)
	mode := opts.onFailure()

	var decisionTag audit.ExecutionDecision
	var runErr error
	invoke := true

	switch {
	case decision:
		decisionTag = audit.DecisionAllowed
	case mode == OnFailureRaise:
		decisionTag = audit.DecisionBlocked
		invoke = false
		runErr = &adri.ProtectionError{
			Message:      formatBlocked(result, opts.MinScore, sourceDesc, reasons),
			FunctionName: opts.FunctionName,
			Score:        result.OverallScore,
			MinScore:     opts.MinScore,
			StandardID:   std.Standards.ID,
		}
	case mode == OnFailureWarn:
		decisionTag = audit.DecisionWarnContinue
		log.Printf("adri: %s", formatBlocked(result, opts.MinScore, sourceDesc, reasons))
	default: // OnFailureContinue
		decisionTag = audit.DecisionContinueSilent
	}

	g.tel.recordDecision(ctx, span, std.Standards.ID, string(decisionTag), result.OverallScore)
	g.emitAudit(assessmentID, result, opts, decisionTag, data.Rows(), time.Since(start))

	if !invoke {
		g.tel.recordError(span, runErr)
		return nil, runErr
	}

	if opts.Verbose || decision {
		log.Printf("adri: %s %s function=%s standard=%s score=%.1f",
			decisionTag, boolLabel(decision), opts.FunctionName, std.Standards.ID, result.OverallScore)
	}

	return fn(ctx, data)
}

func boolLabel(pass bool) string {
	if pass {
		return "ALLOWED"
	}
	return "CONTINUED"
}

// evaluateDecision implements spec §4.8 step 6: overall floor plus any
// requested per-dimension floors.
func evaluateDecision(result *adri.AssessmentResult, minScore float64, dims map[string]float64) (pass bool, reasons []string) {
	pass = true
	if result.OverallScore < minScore {
		pass = false
		reasons = append(reasons, fmt.Sprintf("overall score %.1f below required %.1f", result.OverallScore, minScore))
	}
	for dim, floor := range dims {
		score, ok := result.DimensionScoreOrZero(dim)
		if !ok || score < floor {
			pass = false
			reasons = append(reasons, fmt.Sprintf("%s score %.1f below required %.1f", dim, score, floor))
		}
	}
	return pass, reasons
}

func (g *Guard) emitAudit(assessmentID string, result *adri.AssessmentResult, opts RunOptions, decision audit.ExecutionDecision, rows int, elapsed time.Duration) {
	if g.auditor == nil {
		return
	}
	rec := audit.AssessmentRecord{
		Timestamp:            time.Now(),
		AssessmentID:         assessmentID,
		OverallScore:         result.OverallScore,
		Passed:               result.Passed,
		StandardID:           result.StandardID,
		FunctionName:         opts.FunctionName,
		DataRowCount:         rows,
		AssessmentDurationMS: elapsed.Milliseconds(),
		ExecutionDecision:    decision,
	}
	if err := g.auditor.LogAssessment(rec, result); err != nil {
		log.Printf("adri: audit emission failed (non-fatal): %v", err)
	}
}
