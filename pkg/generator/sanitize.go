package generator

import (
	"fmt"
	"sort"
	"time"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// SanitizeCell coerces an arbitrary decoded value (as produced by a YAML/
// JSON/CSV reader feeding row-oriented data into ADRI) into a Cell,
// canonicalizing anything that is not directly representable in the
// closed Kind sum type — maps, slices, and other composite values — to
// its deterministic text form (spec §4.4 step 1: "sanitize object-like
// cells that are not hashable/serialisable"). Go's static Cell model
// never constructs composite cells in the first place, so this is the
// single place that boundary concern lives.
func SanitizeCell(v any) adri.Cell {
	switch t := v.(type) {
	case nil:
		return adri.NullCell
	case adri.Cell:
		return t
	case bool:
		return adri.BoolCell(t)
	case int:
		return adri.IntCell(int64(t))
	case int64:
		return adri.IntCell(t)
	case float64:
		return adri.FloatCell(t)
	case string:
		return adri.TextCell(t)
	case time.Time:
		return adri.DateTimeCell(t)
	case map[string]any:
		return adri.TextCell(canonicalText(t))
	case []any:
		return adri.TextCell(canonicalText(t))
	default:
		return adri.TextCell(fmt.Sprintf("%v", t))
	}
}

// canonicalText renders maps/slices deterministically (sorted map keys)
// so repeated generation runs over the same input are reproducible.
func canonicalText(v any) string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := "{"
		for i, k := range keys {
			if i > 0 {
				out += ","
			}
			out += fmt.Sprintf("%s:%v", k, t[k])
		}
		return out + "}"
	case []any:
		out := "["
		for i, e := range t {
			if i > 0 {
				out += ","
			}
			out += fmt.Sprintf("%v", e)
		}
		return out + "]"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// RowsToDataset builds a Dataset from row-oriented data (the shape a
// caller most often has on hand: decoded JSON/YAML records, or rows read
// from a CSV library), sanitizing every cell. Columns are built in the
// order given by columnOrder; keys not named there are ignored, and a
// row missing a named key gets a null cell.
func RowsToDataset(rows []map[string]any, columnOrder []string) (*adri.Dataset, error) {
	cols := make([]adri.Column, len(columnOrder))
	for i, name := range columnOrder {
		cells := make([]adri.Cell, len(rows))
		for r, row := range rows {
			cells[r] = SanitizeCell(row[name])
		}
		cols[i] = adri.Column{Name: name, Cells: cells}
	}
	return adri.NewDataset(cols)
}
