package validation

import (
	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/rules"
)

// scoreFreshness implements spec §4.5: "If date/datetime fields carry
// recency windows, score by proportion of values within window;
// otherwise returns neutral (maximum) score with a zero-weight log
// entry." The recency window is the field's own after/before bounds
// (spec.md §9 open question: exact recency semantics are an extension
// point, so this treats "freshness" as "falls inside the declared
// window" rather than inventing a wall-clock-relative notion the
// source does not specify).
func scoreFreshness(ds adri.TabularView, std *adri.Standard, acc *accumulator) adri.DimensionScore {
	dimCfg := std.Requirements.DimensionRequirements[adri.DimFreshness]
	weight := dimCfg.Scoring.RuleWeights["date_window_recency"]

	names := sortedFieldNames(std)
	var windowed []string
	for _, name := range names {
		r := std.Requirements.FieldRequirements[name]
		if r.AfterDate != "" || r.BeforeDate != "" || r.AfterDateTime != "" || r.BeforeDateTime != "" {
			windowed = append(windowed, name)
		}
	}

	if len(windowed) == 0 {
		acc.recordRule(adri.DimFreshness, "", "date_window_recency", 0, 0, 0)
		return adri.DimensionScore{Score: 20, Details: map[string]any{"date_window_recency": "not_applicable"}}
	}

	var total float64
	details := map[string]any{}

	for _, name := range windowed {
		rule := std.Requirements.FieldRequirements[name]
		col, ok := ds.Col(name)
		if !ok {
			continue
		}

		var pass, fail int
		var samples []string
		for _, c := range col.Cells {
			if c.Null() {
				continue
			}
			o := rules.CheckDateWindow(c, rule)
			if o.Skipped {
				continue
			}
			if o.Pass {
				pass++
			} else {
				fail++
				if cap := acc.cfg.FailedValidationSampleCap; len(samples) < cap {
					samples = append(samples, c.AsString())
				}
			}
		}

		evaluated := pass + fail
		fieldScore := 20.0
		if evaluated > 0 {
			fieldScore = 20 * float64(pass) / float64(evaluated)
		}
		details[name] = fieldScore
		total += fieldScore

		acc.recordRule(adri.DimFreshness, name, "date_window_recency", pass, fail, weight)
		if fail > 0 {
			acc.recordFailure(name, "date_window_recency", fail, evaluated, samples,
				"values fall outside the declared recency window for "+name, severityFor(fail, evaluated))
		}
	}

	score := 20.0
	if len(windowed) > 0 {
		score = total / float64(len(windowed))
	}
	return adri.DimensionScore{Score: score, Details: details}
}
