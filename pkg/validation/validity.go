package validation

import (
	"sort"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/rules"
)

// scoreValidity evaluates the configured rules (type, allowed_values,
// pattern, length_bounds, numeric_range) for each non-null value of
// each required field and combines them by rule_weights, per spec
// §4.5. Missing fields are omitted here entirely (I4) and instead
// penalised under completeness.
func scoreValidity(ds adri.TabularView, std *adri.Standard, acc *accumulator) adri.DimensionScore {
	dimCfg := std.Requirements.DimensionRequirements[adri.DimValidity]
	names := sortedFieldNames(std)

	var total float64
	var fieldCount int
	details := map[string]any{}

	for _, name := range names {
		col, ok := ds.Col(name)
		if !ok {
			continue
		}
		rule := std.Requirements.FieldRequirements[name]
		weights := dimCfg.WeightsFor(name)

		tallies := map[string]*ruleTally{}
		var samples []string

		for _, c := range col.Cells {
			if c.Null() {
				// P6: the null short-circuit. A value that is null and
				// nullable contributes neither a validity pass nor a
				// validity failure.
				continue
			}
			for _, o := range rules.EvaluateValue(c, rule) {
				if o.Skipped {
					continue
				}
				t := tallies[o.Rule]
				if t == nil {
					t = &ruleTally{}
					tallies[o.Rule] = t
				}
				if o.Pass {
					t.pass++
				} else {
					t.fail++
					if cap := acc.cfg.FailedValidationSampleCap; len(samples) < cap {
						samples = append(samples, c.AsString()+": "+o.Detail)
					}
				}
			}
		}

		ruleNames := make([]string, 0, len(tallies))
		for r := range tallies {
			ruleNames = append(ruleNames, r)
		}
		sort.Strings(ruleNames)

		var weightedSum, weightTotal float64
		var fieldFail, fieldEvaluated int
		for _, rn := range ruleNames {
			t := tallies[rn]
			evaluated := t.pass + t.fail
			if evaluated == 0 {
				continue
			}
			w := weights[rn]
			weightedSum += w * (float64(t.pass) / float64(evaluated))
			weightTotal += w
			fieldFail += t.fail
			fieldEvaluated += evaluated
			acc.recordRule(adri.DimValidity, name, rn, t.pass, t.fail, w)
		}

		fieldScore := 20.0
		if weightTotal > 0 {
			fieldScore = 20 * weightedSum / weightTotal
		}
		details[name] = fieldScore
		total += fieldScore
		fieldCount++

		if fieldFail > 0 {
			acc.recordFailure(name, "validity", fieldFail, fieldEvaluated, samples,
				"review values failing configured validity rules for "+name, severityFor(fieldFail, fieldEvaluated))
		}
	}

	score := 20.0
	if fieldCount > 0 {
		score = total / float64(fieldCount)
	}
	return adri.DimensionScore{Score: score, Details: details}
}

type ruleTally struct{ pass, fail int }
