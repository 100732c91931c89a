package validation

import "github.com/adri-oss/adri-go/pkg/adri"

// scoreCompleteness implements spec §4.5: field_score =
// 20*(non_null_count/row_count), penalised by nullable. A field
// declared nullable never loses completeness points for being null
// (property P6: a null value under nullable=true "contributes a
// completeness pass"); a field declared non-nullable is scored on its
// raw non-null ratio. A field missing from the dataset entirely scores
// zero (I4).
func scoreCompleteness(ds adri.TabularView, std *adri.Standard, acc *accumulator) adri.DimensionScore {
	dimCfg := std.Requirements.DimensionRequirements[adri.DimCompleteness]
	weight := dimCfg.Scoring.RuleWeights["missing_required"]
	names := sortedFieldNames(std)

	var total float64
	var pass, fail int
	details := map[string]any{}

	for _, name := range names {
		rule := std.Requirements.FieldRequirements[name]
		col, ok := ds.Col(name)
		if !ok {
			details[name] = 0.0
			fail++
			acc.recordFailure(name, "missing_required", 0, 0, nil,
				"field "+name+" is absent from the dataset", "critical")
			continue
		}

		rows := len(col.Cells)
		var nullCount int
		for _, c := range col.Cells {
			if c.Null() {
				nullCount++
			}
		}
		nonNull := rows - nullCount

		var fieldScore float64
		switch {
		case rule.IsNullable():
			fieldScore = 20
			pass += rows
		case rows == 0:
			fieldScore = 20
		default:
			fieldScore = 20 * float64(nonNull) / float64(rows)
			pass += nonNull
			fail += nullCount
			if nullCount > 0 {
				acc.recordFailure(name, "missing_required", nullCount, rows, nil,
					"backfill or source missing values for "+name, severityFor(nullCount, rows))
			}
		}
		details[name] = fieldScore
		total += fieldScore
	}

	acc.recordRule(adri.DimCompleteness, "", "missing_required", pass, fail, weight)

	score := 20.0
	if len(names) > 0 {
		score = total / float64(len(names))
	}
	return adri.DimensionScore{Score: score, Details: details}
}
