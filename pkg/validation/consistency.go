package validation

import (
	"sort"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// scoreConsistency is currently dominated by primary_key_uniqueness
// (spec §4.5): 20*(1-duplicate_rate) over the declared primary key,
// single or composite. A standard with no primary key declared, or
// whose key fields are absent from the dataset, returns the neutral
// maximum with a zero-weight log entry — the same "extensible, not yet
// populated" pattern freshness uses for recency.
func scoreConsistency(ds adri.TabularView, std *adri.Standard, acc *accumulator) adri.DimensionScore {
	dimCfg := std.Requirements.DimensionRequirements[adri.DimConsistency]
	weight := dimCfg.Scoring.RuleWeights["primary_key_uniqueness"]

	if std.RecordIdentification == nil || len(std.RecordIdentification.PrimaryKeyFields) == 0 {
		acc.recordRule(adri.DimConsistency, "", "primary_key_uniqueness", 0, 0, 0)
		return adri.DimensionScore{Score: 20, Details: map[string]any{"primary_key_uniqueness": "not_configured"}}
	}

	cols := make([]adri.Column, 0, len(std.RecordIdentification.PrimaryKeyFields))
	for _, name := range std.RecordIdentification.PrimaryKeyFields {
		col, ok := ds.Col(name)
		if !ok {
			acc.recordRule(adri.DimConsistency, "", "primary_key_uniqueness", 0, 0, 0)
			return adri.DimensionScore{Score: 20, Details: map[string]any{"primary_key_uniqueness": "pk_field_missing"}}
		}
		cols = append(cols, col)
	}

	rows := ds.Rows()
	seen := make(map[string]int, rows)
	for i := 0; i < rows; i++ {
		seen[compositeKey(cols, i)]++
	}

	// Collect and sort duplicate keys before capping so the sampled
	// failures are identical across runs (property P2); map iteration
	// order is not.
	var duplicateRows int
	var dupKeys []string
	for key, n := range seen {
		if n > 1 {
			duplicateRows += n
			dupKeys = append(dupKeys, key)
		}
	}
	sort.Strings(dupKeys)
	sample := dupKeys
	if cap := acc.cfg.FailedValidationSampleCap; len(sample) > cap {
		sample = sample[:cap]
	}

	dupRate := 0.0
	if rows > 0 {
		dupRate = float64(duplicateRows) / float64(rows)
	}
	score := 20 * (1 - dupRate)
	if score < 0 {
		score = 0
	}

	passRows := rows - duplicateRows
	acc.recordRule(adri.DimConsistency, "", "primary_key_uniqueness", passRows, duplicateRows, weight)
	if duplicateRows > 0 {
		acc.recordFailure(joinNames(std.RecordIdentification.PrimaryKeyFields), "primary_key_uniqueness",
			duplicateRows, rows, sample, "deduplicate rows sharing a primary key value", severityFor(duplicateRows, rows))
	}

	return adri.DimensionScore{Score: score, Details: map[string]any{
		"duplicate_rows": duplicateRows,
		"total_rows":      rows,
	}}
}

func compositeKey(cols []adri.Column, row int) string {
	key := ""
	for i, c := range cols {
		if i > 0 {
			key += "\x1f"
		}
		key += c.Cells[row].AsString()
	}
	return key
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ","
		}
		out += n
	}
	return out
}
