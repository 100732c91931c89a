package inference

import (
	"unicode/utf8"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// LengthBounds is an inferred [min_length,max_length] pair.
type LengthBounds struct {
	Min, Max int
}

// InferLengthBounds computes min/max code-point length from observed
// text values (spec §4.3 "Lengths"), with an optional symmetric
// widening fraction so near-future values of similar size still pass.
func InferLengthBounds(cells []adri.Cell, cfg Config) (LengthBounds, bool) {
	min, max := -1, -1
	seen := false
	for _, c := range cells {
		if c.Null() {
			continue
		}
		s := c.AsString()
		n := utf8.RuneCountInString(s)
		if !seen {
			min, max = n, n
			seen = true
			continue
		}
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	if !seen {
		return LengthBounds{}, false
	}

	if cfg.LengthWidenFraction > 0 {
		widen := int(float64(max-min) * cfg.LengthWidenFraction)
		min -= widen
		if min < 0 {
			min = 0
		}
		max += widen
	}
	return LengthBounds{Min: min, Max: max}, true
}
