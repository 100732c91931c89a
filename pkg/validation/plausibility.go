package validation

import (
	"math"
	"sort"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// scorePlausibility combines outlier rate (IQR over numeric columns),
// categorical frequency stability, and the declared business-logic and
// cross-field-consistency rules, per rule_weights (spec §4.5). The last
// two are defined extension points, not implemented by any rule
// checker (spec.md §9 open question): no FieldRule attribute currently
// expresses either, so their contribution is a trivial full pass —
// present in the log and weighted, but never the source of a failure,
// until a concrete rule shape is specified.
func scorePlausibility(ds adri.TabularView, std *adri.Standard, acc *accumulator) adri.DimensionScore {
	dimCfg := std.Requirements.DimensionRequirements[adri.DimPlausibility]
	weights := dimCfg.Scoring.RuleWeights

	outlierRate, numericFields := outlierSignal(ds, std)
	freqRate, catFields := categoricalFrequencySignal(ds, std)

	components := []struct {
		name string
		rate float64
		n    int
	}{
		{"statistical_outliers", outlierRate, numericFields},
		{"categorical_frequency", freqRate, catFields},
		{"business_logic", 1.0, 1},
		{"cross_field_consistency", 1.0, 1},
	}

	var weightedSum, weightTotal float64
	details := map[string]any{}
	for _, c := range components {
		w := weights[c.name]
		if c.n == 0 {
			// No applicable columns: exclude from the denominator rather
			// than silently crediting or penalising a signal with
			// nothing to measure.
			acc.recordRule(adri.DimPlausibility, "", c.name, 0, 0, 0)
			continue
		}
		weightedSum += w * c.rate
		weightTotal += w
		passPct := int(math.Round(c.rate * 100))
		acc.recordRule(adri.DimPlausibility, "", c.name, passPct, 100-passPct, w)
		details[c.name] = c.rate
	}

	score := 20.0
	if weightTotal > 0 {
		score = 20 * weightedSum / weightTotal
	}
	return adri.DimensionScore{Score: score, Details: details}
}

// outlierSignal computes 1-outlierRate across numeric required fields
// using IQR fences. Plausibility scoring never consults the advisory
// profiler (spec §4.2), so the IQR math here is independent of
// pkg/profiler despite being structurally similar.
func outlierSignal(ds adri.TabularView, std *adri.Standard) (float64, int) {
	names := sortedFieldNames(std)
	var totalValues, totalOutliers, fieldsSeen int

	for _, name := range names {
		rule := std.Requirements.FieldRequirements[name]
		if rule.Type != adri.FieldInteger && rule.Type != adri.FieldFloat {
			continue
		}
		col, ok := ds.Col(name)
		if !ok {
			continue
		}
		var values []float64
		for _, c := range col.Cells {
			if c.Null() {
				continue
			}
			if f, ok := c.AsFloat(); ok {
				values = append(values, f)
			}
		}
		if len(values) < 4 {
			continue
		}
		fieldsSeen++
		sort.Float64s(values)
		q1 := quantile(values, 0.25)
		q3 := quantile(values, 0.75)
		iqr := q3 - q1
		lo, hi := q1-1.5*iqr, q3+1.5*iqr

		var outliers int
		for _, v := range values {
			if v < lo || v > hi {
				outliers++
			}
		}
		totalValues += len(values)
		totalOutliers += outliers
	}

	if totalValues == 0 {
		return 1.0, 0
	}
	return 1.0 - float64(totalOutliers)/float64(totalValues), fieldsSeen
}

func quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := p * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// categoricalFrequencySignal measures what fraction of non-null values
// in enum-constrained fields fall in a category that is not
// vanishingly rare — a frequency-stability proxy for plausibility.
func categoricalFrequencySignal(ds adri.TabularView, std *adri.Standard) (float64, int) {
	const rareThreshold = 0.01
	names := sortedFieldNames(std)
	var totalValues, totalRare, fieldsSeen int

	for _, name := range names {
		rule := std.Requirements.FieldRequirements[name]
		if len(rule.AllowedValues) == 0 {
			continue
		}
		col, ok := ds.Col(name)
		if !ok {
			continue
		}
		counts := map[string]int{}
		var nonNull int
		for _, c := range col.Cells {
			if c.Null() {
				continue
			}
			counts[c.AsString()]++
			nonNull++
		}
		if nonNull == 0 {
			continue
		}
		fieldsSeen++
		var rare int
		for _, n := range counts {
			if float64(n)/float64(nonNull) < rareThreshold {
				rare += n
			}
		}
		totalValues += nonNull
		totalRare += rare
	}

	if totalValues == 0 {
		return 1.0, 0
	}
	return 1.0 - float64(totalRare)/float64(totalValues), fieldsSeen
}
