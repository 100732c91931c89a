// Package adri defines the core data model shared by every ADRI
// component: the tabular value model, the standard document, and the
// assessment result. Leaf packages (rules, profiler, inference, ...)
// depend on this package; it depends on nothing else in the module.
package adri

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind tags the runtime type of a Cell. Dynamic typing from the source
// system becomes this closed sum type.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindText
	KindDate
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindDate:
		return "date"
	case KindDateTime:
		return "datetime"
	default:
		return "unknown"
	}
}

// Cell is a single tabular value. Exactly one of the typed fields is
// meaningful, selected by Kind; KindNull carries no payload.
type Cell struct {
	Kind  Kind
	Bool  bool
	Int   int64
	Float float64
	Text  string
	Time  time.Time
}

// Null reports whether the cell holds no value.
func (c Cell) Null() bool { return c.Kind == KindNull }

// NullCell is the canonical null value.
var NullCell = Cell{Kind: KindNull}

func BoolCell(v bool) Cell  { return Cell{Kind: KindBool, Bool: v} }
func IntCell(v int64) Cell  { return Cell{Kind: KindInt, Int: v} }
func FloatCell(v float64) Cell {
	return Cell{Kind: KindFloat, Float: v}
}
func TextCell(v string) Cell { return Cell{Kind: KindText, Text: v} }
func DateCell(t time.Time) Cell {
	return Cell{Kind: KindDate, Time: t}
}
func DateTimeCell(t time.Time) Cell {
	return Cell{Kind: KindDateTime, Time: t}
}

// AsFloat coerces the cell to a float64. NaN/false indicates the cell
// cannot be coerced cleanly.
func (c Cell) AsFloat() (float64, bool) {
	switch c.Kind {
	case KindInt:
		return float64(c.Int), true
	case KindFloat:
		if math.IsNaN(c.Float) {
			return 0, false
		}
		return c.Float, true
	case KindText:
		f, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	case KindBool:
		if c.Bool {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// AsString renders the cell's string form. Used for length and pattern
// checks: code-points, not bytes, is the caller's responsibility via
// utf8/[]rune on the result.
func (c Cell) AsString() string {
	switch c.Kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(c.Bool)
	case KindInt:
		return strconv.FormatInt(c.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(c.Float, 'g', -1, 64)
	case KindText:
		return c.Text
	case KindDate:
		return c.Time.Format("2006-01-02")
	case KindDateTime:
		return c.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// AsTime parses the cell as a date or datetime. Text cells are accepted
// when they are well-formed ISO text, per §4.1.
func (c Cell) AsTime() (time.Time, bool) {
	switch c.Kind {
	case KindDate, KindDateTime:
		return c.Time, true
	case KindText:
		s := strings.TrimSpace(c.Text)
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, true
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, true
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

// Equal performs canonical, case-sensitive-for-text comparison between
// two cells, used by the allowed_values checker.
func (c Cell) Equal(other Cell) bool {
	if c.Kind != other.Kind {
		// Allow numeric cross-comparison (int vs float) since YAML-loaded
		// allowed_values scalars decode as float64/int64 inconsistently.
		if af, aok := c.AsFloat(); aok {
			if bf, bok := other.AsFloat(); bok {
				return af == bf
			}
		}
		return false
	}
	switch c.Kind {
	case KindNull:
		return true
	case KindBool:
		return c.Bool == other.Bool
	case KindInt:
		return c.Int == other.Int
	case KindFloat:
		return c.Float == other.Float
	case KindText:
		return c.Text == other.Text
	case KindDate, KindDateTime:
		return c.Time.Equal(other.Time)
	}
	return false
}

// Column is a named, ordered, lazily-iterable sequence of cells.
type Column struct {
	Name  string
	Cells []Cell
}

// Dataset is an ordered sequence of named columns with a finite row
// count. It is the in-memory TabularView: small/medium tabular data
// held as columnar slices. Larger sources should implement TabularView
// directly rather than materializing a Dataset.
type Dataset struct {
	Columns   []Column
	ColumnIdx map[string]int
	RowCount  int
}

// NewDataset builds a Dataset from columns, validating that every
// column has the same length.
func NewDataset(columns []Column) (*Dataset, error) {
	rowCount := -1
	idx := make(map[string]int, len(columns))
	for i, col := range columns {
		if rowCount == -1 {
			rowCount = len(col.Cells)
		} else if len(col.Cells) != rowCount {
			return nil, fmt.Errorf("adri: column %q has %d rows, expected %d", col.Name, len(col.Cells), rowCount)
		}
		if _, exists := idx[col.Name]; exists {
			return nil, fmt.Errorf("adri: duplicate column %q", col.Name)
		}
		idx[col.Name] = i
	}
	if rowCount == -1 {
		rowCount = 0
	}
	return &Dataset{Columns: columns, ColumnIdx: idx, RowCount: rowCount}, nil
}

// Col returns the named column and whether it exists.
func (d *Dataset) Col(name string) (Column, bool) {
	i, ok := d.ColumnIdx[name]
	if !ok {
		return Column{}, false
	}
	return d.Columns[i], true
}

// ColumnNames returns column names in declaration order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Row materializes row i as a name->cell map. Used sparingly; prefer
// columnar iteration for hot paths.
func (d *Dataset) Row(i int) map[string]Cell {
	row := make(map[string]Cell, len(d.Columns))
	for _, col := range d.Columns {
		row[col.Name] = col.Cells[i]
	}
	return row
}

// Head returns a new Dataset containing at most n leading rows of d.
// Used by the protection engine to head-sample a runtime dataset before
// auto-generating a standard (§4.8 step 3).
func (d *Dataset) Head(n int) *Dataset {
	if n < 0 || n >= d.RowCount {
		return d
	}
	cols := make([]Column, len(d.Columns))
	for i, col := range d.Columns {
		cols[i] = Column{Name: col.Name, Cells: append([]Cell(nil), col.Cells[:n]...)}
	}
	out, _ := NewDataset(cols)
	return out
}

// TabularView is the capability surface the core assessment/inference
// code is written against, isolating it from any particular in-memory
// representation (design note: "Pandas dependence" in spec.md §9).
// *Dataset implements it directly.
type TabularView interface {
	ColumnNames() []string
	Col(name string) (Column, bool)
	Rows() int
}

func (d *Dataset) Rows() int { return d.RowCount }
