// Package rules implements the pure per-value predicates ("rule
// checkers") that every other scoring/inference component is built on
// top of (spec §4.1, component C2). Each checker takes a value and a
// FieldRule and returns pass/fail plus, on failure, a short diagnostic.
// Checkers never raise: malformed input fails the check, it never
// propagates an error (spec §7 propagation policy).
package rules

import (
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// Outcome is the result of evaluating one rule against one value.
type Outcome struct {
	Rule    string
	Pass    bool
	Skipped bool // rule not applicable (e.g. allowed_values absent)
	Detail  string
}

func pass(rule string) Outcome  { return Outcome{Rule: rule, Pass: true} }
func skip(rule string) Outcome  { return Outcome{Rule: rule, Pass: true, Skipped: true} }
func fail(rule, detail string) Outcome {
	return Outcome{Rule: rule, Pass: false, Detail: detail}
}

// CheckNullable evaluates the null short-circuit (§4.1, §4.5 P6): a
// null value passes iff nullable=true, and no other rule is evaluated
// for it either way — callers must check Null() before invoking the
// other checkers.
func CheckNullable(v adri.Cell, r adri.FieldRule) Outcome {
	if !v.Null() {
		return pass("nullable")
	}
	if r.IsNullable() {
		return pass("nullable")
	}
	return fail("nullable", "null value not permitted")
}

// CheckType verifies the value's runtime type is compatible with the
// rule's type tag. date/datetime also accept well-formed ISO text.
func CheckType(v adri.Cell, r adri.FieldRule) Outcome {
	switch r.Type {
	case adri.FieldString:
		// Any renderable scalar is acceptable as a string; only an
		// explicit null without nullable is a type failure, and that is
		// caught by CheckNullable upstream.
		return pass("type")
	case adri.FieldInteger:
		switch v.Kind {
		case adri.KindInt:
			return pass("type")
		case adri.KindFloat:
			if v.Float == float64(int64(v.Float)) {
				return pass("type")
			}
			return fail("type", "value is not an integer")
		case adri.KindText:
			if f, ok := v.AsFloat(); ok && f == float64(int64(f)) {
				return pass("type")
			}
			return fail("type", "value does not coerce to integer")
		default:
			return fail("type", fmt.Sprintf("expected integer, got %s", v.Kind))
		}
	case adri.FieldFloat:
		if _, ok := v.AsFloat(); ok {
			return pass("type")
		}
		return fail("type", fmt.Sprintf("expected float, got %s", v.Kind))
	case adri.FieldBoolean:
		if v.Kind == adri.KindBool {
			return pass("type")
		}
		return fail("type", fmt.Sprintf("expected boolean, got %s", v.Kind))
	case adri.FieldDate, adri.FieldDateTime:
		if _, ok := v.AsTime(); ok {
			return pass("type")
		}
		return fail("type", fmt.Sprintf("expected %s, got unparsable value", r.Type))
	default:
		return pass("type")
	}
}

// CheckAllowedValues verifies membership in r.AllowedValues by
// canonical comparison (case-sensitive for text). Skipped when the
// list is absent.
func CheckAllowedValues(v adri.Cell, r adri.FieldRule) Outcome {
	if len(r.AllowedValues) == 0 {
		return skip("allowed_values")
	}
	for _, allowed := range r.AllowedValues {
		if cellsEqual(v, allowed) {
			return pass("allowed_values")
		}
	}
	return fail("allowed_values", fmt.Sprintf("value %q not in allowed set", v.AsString()))
}

func cellsEqual(v adri.Cell, allowed any) bool {
	switch a := allowed.(type) {
	case string:
		return v.Equal(adri.TextCell(a))
	case int:
		return v.Equal(adri.IntCell(int64(a)))
	case int64:
		return v.Equal(adri.IntCell(a))
	case float64:
		return v.Equal(adri.FloatCell(a))
	case bool:
		return v.Equal(adri.BoolCell(a))
	default:
		return v.AsString() == fmt.Sprintf("%v", allowed)
	}
}

// CheckNumericRange verifies a closed-interval bound over numeric
// coercion; NaN/uncoercible values fail (§4.1 min/max_value).
func CheckNumericRange(v adri.Cell, r adri.FieldRule) Outcome {
	if r.MinValue == nil && r.MaxValue == nil {
		return skip("numeric_range")
	}
	f, ok := v.AsFloat()
	if !ok {
		return fail("numeric_range", "value is not numeric")
	}
	if r.MinValue != nil && f < *r.MinValue {
		return fail("numeric_range", fmt.Sprintf("%v below minimum %v", f, *r.MinValue))
	}
	if r.MaxValue != nil && f > *r.MaxValue {
		return fail("numeric_range", fmt.Sprintf("%v above maximum %v", f, *r.MaxValue))
	}
	return pass("numeric_range")
}

// CheckLengthBounds measures the rendered string form in code-points,
// not bytes (§4.1 min/max_length).
func CheckLengthBounds(v adri.Cell, r adri.FieldRule) Outcome {
	if r.MinLength == nil && r.MaxLength == nil {
		return skip("length_bounds")
	}
	n := utf8.RuneCountInString(v.AsString())
	if r.MinLength != nil && n < *r.MinLength {
		return fail("length_bounds", fmt.Sprintf("length %d below minimum %d", n, *r.MinLength))
	}
	if r.MaxLength != nil && n > *r.MaxLength {
		return fail("length_bounds", fmt.Sprintf("length %d above maximum %d", n, *r.MaxLength))
	}
	return pass("length_bounds")
}

// CheckPattern full-matches the rendered string form against an
// anchored regex (§4.1 pattern).
func CheckPattern(v adri.Cell, r adri.FieldRule) Outcome {
	if r.Pattern == "" {
		return skip("pattern")
	}
	re, err := compiledPattern(r.Pattern)
	if err != nil {
		return fail("pattern", fmt.Sprintf("invalid pattern: %v", err))
	}
	s := v.AsString()
	loc := re.FindStringIndex(s)
	if loc != nil && loc[0] == 0 && loc[1] == len(s) {
		return pass("pattern")
	}
	return fail("pattern", fmt.Sprintf("value %q does not match pattern", s))
}

var (
	patternCacheMu sync.RWMutex
	patternCache   = map[string]*regexp.Regexp{}
)

// compiledPattern compiles (and memoizes) a pattern, anchoring it for
// full-match semantics if the caller did not already anchor it. Checkers
// run concurrently across workers (§5), so the cache is guarded by an
// RWMutex: the common case (already compiled) only takes a read lock.
func compiledPattern(pattern string) (*regexp.Regexp, error) {
	patternCacheMu.RLock()
	re, ok := patternCache[pattern]
	patternCacheMu.RUnlock()
	if ok {
		return re, nil
	}

	anchored := pattern
	if len(anchored) == 0 || anchored[0] != '^' {
		anchored = "^(?:" + anchored + ")$"
	}
	re, err := regexp.Compile(anchored)
	if err != nil {
		return nil, err
	}

	patternCacheMu.Lock()
	patternCache[pattern] = re
	patternCacheMu.Unlock()
	return re, nil
}

// CheckDateWindow verifies a value parsed as date/datetime falls in
// [after, before] when either bound is present (§4.1 date window).
func CheckDateWindow(v adri.Cell, r adri.FieldRule) Outcome {
	after, before, has := dateBounds(r)
	if !has {
		return skip("date_bounds")
	}
	t, ok := v.AsTime()
	if !ok {
		return fail("date_bounds", "value is not a valid date/datetime")
	}
	if after != nil && t.Before(*after) {
		return fail("date_bounds", fmt.Sprintf("%s before window start %s", t, *after))
	}
	if before != nil && t.After(*before) {
		return fail("date_bounds", fmt.Sprintf("%s after window end %s", t, *before))
	}
	return pass("date_bounds")
}

// EvaluateValue runs every applicable checker for a non-null value,
// skipping rules the FieldRule does not configure. Callers are expected
// to have already applied the null short-circuit via CheckNullable.
func EvaluateValue(v adri.Cell, r adri.FieldRule) []Outcome {
	return []Outcome{
		CheckType(v, r),
		CheckAllowedValues(v, r),
		CheckLengthBounds(v, r),
		CheckPattern(v, r),
		CheckNumericRange(v, r),
		CheckDateWindow(v, r),
	}
}
