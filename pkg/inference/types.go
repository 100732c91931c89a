package inference

import (
	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/profiler"
)

// InferType chooses the narrowest applicable FieldType for a column
// (spec §4.3 "Type tag"): prefer the profiled declared type; fall back
// to integer (all values whole) or float when all text values coerce
// to numeric cleanly; prefer date
// when the date pattern dominates; otherwise string.
func InferType(cells []adri.Cell, cp profiler.ColumnProfile) adri.FieldType {
	switch cp.DeclaredType {
	case adri.KindInt:
		return adri.FieldInteger
	case adri.KindFloat:
		return adri.FieldFloat
	case adri.KindBool:
		return adri.FieldBoolean
	case adri.KindDateTime:
		return adri.FieldDateTime
	case adri.KindDate:
		return adri.FieldDate
	}

	// Declared type is text (or unknown). Check whether it is secretly
	// numeric or secretly a date before settling on string.
	nonNull := nonNullStrings(cells)
	if len(nonNull) == 0 {
		return adri.FieldString
	}

	if allCoerceToFloat(cells) {
		if allCoerceToInt(cells) {
			return adri.FieldInteger
		}
		return adri.FieldFloat
	}

	if cp.Text != nil && dominatesDatePattern(cp.Text.Patterns) {
		return adri.FieldDate
	}

	return adri.FieldString
}

func nonNullStrings(cells []adri.Cell) []string {
	var out []string
	for _, c := range cells {
		if !c.Null() {
			out = append(out, c.AsString())
		}
	}
	return out
}

func allCoerceToFloat(cells []adri.Cell) bool {
	seen := false
	for _, c := range cells {
		if c.Null() {
			continue
		}
		if _, ok := c.AsFloat(); !ok {
			return false
		}
		seen = true
	}
	return seen
}

func allCoerceToInt(cells []adri.Cell) bool {
	for _, c := range cells {
		if c.Null() {
			continue
		}
		f, ok := c.AsFloat()
		if !ok || f != float64(int64(f)) {
			return false
		}
	}
	return true
}

func dominatesDatePattern(patterns []string) bool {
	for _, p := range patterns {
		if p == "date" {
			return true
		}
	}
	return false
}

// InferNullable applies spec §4.3 Nullability: false iff zero nulls
// observed.
func InferNullable(cp profiler.ColumnProfile) bool {
	return cp.NullCount > 0
}
