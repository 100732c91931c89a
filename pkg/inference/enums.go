package inference

import (
	"sort"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// InferEnum computes allowed_values for string/integer columns that
// are not primary-key fields and whose name is not id-like (spec §4.3
// Enums). Returns nil when enums should not be emitted.
func InferEnum(name string, cells []adri.Cell, fieldType adri.FieldType, isPK bool, cfg Config) []any {
	if fieldType != adri.FieldString && fieldType != adri.FieldInteger {
		return nil
	}
	if isPK || IsIDLike(name, cfg.IDLikeSubstrings) {
		return nil
	}

	nonNull := 0
	freq := map[string]int{}
	order := map[string]any{} // preserves first-seen representative value per key
	for _, c := range cells {
		if c.Null() {
			continue
		}
		nonNull++
		key := c.AsString()
		freq[key]++
		if _, ok := order[key]; !ok {
			order[key] = cellToAllowedValue(c)
		}
	}
	if nonNull == 0 {
		return nil
	}

	distinct := len(freq)
	coverage := float64(nonNull) / float64(len(cells))

	if !cfg.EnumTolerant {
		if distinct <= cfg.EnumMaxUnique && coverage >= cfg.EnumMinCoverage {
			return sortedValues(freq, order)
		}
		return nil
	}

	// Tolerant strategy: walk values by descending frequency,
	// accumulating until cumulative coverage reaches the threshold.
	type kv struct {
		key   string
		count int
	}
	kvs := make([]kv, 0, len(freq))
	for k, n := range freq {
		kvs = append(kvs, kv{k, n})
	}
	sort.Slice(kvs, func(i, j int) bool {
		if kvs[i].count != kvs[j].count {
			return kvs[i].count > kvs[j].count
		}
		return kvs[i].key < kvs[j].key
	})

	accepted := map[string]struct{}{}
	cumulative := 0
	for _, e := range kvs {
		accepted[e.key] = struct{}{}
		cumulative += e.count
		if float64(cumulative)/float64(nonNull) >= cfg.EnumMinCoverage {
			break
		}
	}
	if len(accepted) > cfg.EnumTopK || len(accepted) > cfg.EnumMaxUnique {
		return nil
	}

	accFreq := map[string]int{}
	for k := range accepted {
		accFreq[k] = freq[k]
	}
	return sortedValues(accFreq, order)
}

func cellToAllowedValue(c adri.Cell) any {
	switch c.Kind {
	case adri.KindInt:
		return c.Int
	case adri.KindFloat:
		return c.Float
	default:
		return c.Text
	}
}

// sortedValues returns accepted values in a deterministic order
// (ascending by key) so generation is reproducible (spec I6/P2).
func sortedValues(freq map[string]int, order map[string]any) []any {
	keys := make([]string, 0, len(freq))
	for k := range freq {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, order[k])
	}
	return out
}
