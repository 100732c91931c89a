package generator

import (
	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/rules"
)

// enforceTrainingPass implements spec §4.4's training-pass enforcement
// loop: every training value is run through the rule checkers in fixed
// order (type → allowed_values → length_bounds → pattern →
// numeric_range → date_bounds); any failing rule on any field is
// relaxed according to policy and the relaxation is logged. Repeats up
// to maxPasses; termination is guaranteed because every action either
// widens a bound to contain observed data or deletes a rule
// (monotone relaxation, property P3).
func enforceTrainingPass(ds *adri.Dataset, standard *adri.Standard, explanations map[string]*FieldExplanation, maxPasses int) int {
	pass := 0
	for pass < maxPasses {
		pass++
		changed := false
		for name, rule := range standard.Requirements.FieldRequirements {
			col, ok := ds.Col(name)
			if !ok {
				continue
			}
			relaxed, didChange := relaxFieldOnce(name, rule, col.Cells, explanations[name])
			if didChange {
				standard.Requirements.FieldRequirements[name] = relaxed
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	return pass
}

// relaxFieldOnce checks every configured rule on r against cells in
// fixed order and relaxes each one that fails, recording an adjustment.
// Multiple rules on the same field may relax within a single pass.
func relaxFieldOnce(name string, r adri.FieldRule, cells []adri.Cell, fe *FieldExplanation) (adri.FieldRule, bool) {
	changed := false

	// Nullable: widen first, independent of the fixed rule order, since
	// it gates whether a cell is even checked by the rest.
	if !r.IsNullable() {
		for _, c := range cells {
			if c.Null() {
				before := false
				r.Nullable = adri.BoolPtr(true)
				fe.addAdjustment("nullable", "widen", before, true)
				changed = true
				break
			}
		}
	}

	nonNull := make([]adri.Cell, 0, len(cells))
	for _, c := range cells {
		if !c.Null() {
			nonNull = append(nonNull, c)
		}
	}

	if anyFails(nonNull, r, "type") {
		before := r.Type
		r.Type = adri.FieldString
		r.MinValue, r.MaxValue = nil, nil
		r.AfterDate, r.BeforeDate, r.AfterDateTime, r.BeforeDateTime = "", "", "", ""
		fe.addAdjustment("type", "coerce_to_string", before, r.Type)
		changed = true
	}

	if len(r.AllowedValues) > 0 && anyFails(nonNull, r, "allowed_values") {
		before := r.AllowedValues
		r.AllowedValues = nil
		fe.addAdjustment("allowed_values", "delete", before, nil)
		changed = true
	}

	if (r.MinLength != nil || r.MaxLength != nil) && anyFails(nonNull, r, "length_bounds") {
		before := [2]*int{r.MinLength, r.MaxLength}
		if lb, ok := observedLengthBounds(nonNull); ok {
			r.MinLength = adri.IntPtr(lb.Min)
			r.MaxLength = adri.IntPtr(lb.Max)
			fe.addAdjustment("length_bounds", "widen", before, [2]*int{r.MinLength, r.MaxLength})
		} else {
			r.MinLength, r.MaxLength = nil, nil
			fe.addAdjustment("length_bounds", "delete", before, [2]*int{nil, nil})
		}
		changed = true
	}

	if r.Pattern != "" && anyFails(nonNull, r, "pattern") {
		before := r.Pattern
		r.Pattern = ""
		fe.addAdjustment("pattern", "delete", before, "")
		changed = true
	}

	if (r.MinValue != nil || r.MaxValue != nil) && anyFails(nonNull, r, "numeric_range") {
		before := [2]*float64{r.MinValue, r.MaxValue}
		min, max, ok := observedNumericBounds(nonNull)
		if ok {
			if r.MinValue != nil && min > *r.MinValue {
				min = *r.MinValue
			}
			if r.MaxValue != nil && max < *r.MaxValue {
				max = *r.MaxValue
			}
			r.MinValue = adri.FloatPtr(min)
			r.MaxValue = adri.FloatPtr(max)
			fe.addAdjustment("numeric_range", "widen", before, [2]*float64{r.MinValue, r.MaxValue})
		} else {
			r.MinValue, r.MaxValue = nil, nil
			fe.addAdjustment("numeric_range", "delete", before, [2]*float64{nil, nil})
		}
		changed = true
	}

	hasDateBounds := r.AfterDate != "" || r.BeforeDate != "" || r.AfterDateTime != "" || r.BeforeDateTime != ""
	if hasDateBounds && anyFails(nonNull, r, "date_bounds") {
		before := [4]string{r.AfterDate, r.BeforeDate, r.AfterDateTime, r.BeforeDateTime}
		r.AfterDate, r.BeforeDate, r.AfterDateTime, r.BeforeDateTime = "", "", "", ""
		fe.addAdjustment("date_bounds", "delete", before, [4]string{})
		changed = true
	}

	_ = name
	return r, changed
}

func anyFails(cells []adri.Cell, r adri.FieldRule, ruleName string) bool {
	for _, c := range cells {
		var o rules.Outcome
		switch ruleName {
		case "type":
			o = rules.CheckType(c, r)
		case "allowed_values":
			o = rules.CheckAllowedValues(c, r)
		case "length_bounds":
			o = rules.CheckLengthBounds(c, r)
		case "pattern":
			o = rules.CheckPattern(c, r)
		case "numeric_range":
			o = rules.CheckNumericRange(c, r)
		case "date_bounds":
			o = rules.CheckDateWindow(c, r)
		}
		if !o.Pass {
			return true
		}
	}
	return false
}

type lengthBounds struct{ Min, Max int }

func observedLengthBounds(cells []adri.Cell) (lengthBounds, bool) {
	seen := false
	var min, max int
	for _, c := range cells {
		n := len([]rune(c.AsString()))
		if !seen {
			min, max, seen = n, n, true
			continue
		}
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	return lengthBounds{Min: min, Max: max}, seen
}

func observedNumericBounds(cells []adri.Cell) (float64, float64, bool) {
	seen := false
	var min, max float64
	for _, c := range cells {
		f, ok := c.AsFloat()
		if !ok {
			continue
		}
		if !seen {
			min, max, seen = f, f, true
			continue
		}
		if f < min {
			min = f
		}
		if f > max {
			max = f
		}
	}
	return min, max, seen
}
