package inference

import (
	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/profiler"
)

// FieldInference is the per-field result of inference: the synthesized
// rule plus bookkeeping the generator needs for its explanations.
type FieldInference struct {
	Name string
	Rule adri.FieldRule
}

// Result is the whole-dataset inference output handed to the standard
// generator (spec §4.3/§4.4).
type Result struct {
	Fields     []FieldInference
	PrimaryKey []string
}

// Infer derives a FieldRule for every column of ds plus the primary key
// selection (spec §4.3, component C4). profile must come from the same
// dataset (profiler.Profile(ds, ...)).
func Infer(ds *adri.Dataset, profile profiler.TableProfile, cfg Config) Result {
	pk := InferPrimaryKey(ds, cfg)
	pkSet := make(map[string]bool, len(pk))
	for _, n := range pk {
		pkSet[n] = true
	}

	res := Result{PrimaryKey: pk}
	for _, name := range ds.ColumnNames() {
		col, _ := ds.Col(name)
		cp := profile.Columns[name]

		rule := adri.FieldRule{}
		rule.Type = InferType(col.Cells, cp)
		nullable := InferNullable(cp)
		rule.Nullable = &nullable

		isPK := pkSet[name]

		if enum := InferEnum(name, col.Cells, rule.Type, isPK, cfg); enum != nil {
			rule.AllowedValues = enum
		}

		switch rule.Type {
		case adri.FieldInteger, adri.FieldFloat:
			values := numericValues(col.Cells)
			if len(values) > 0 {
				r := InferNumericRange(values, cfg)
				rule.MinValue = adri.FloatPtr(r.Min)
				rule.MaxValue = adri.FloatPtr(r.Max)
			}
		case adri.FieldString:
			if lb, ok := InferLengthBounds(col.Cells, cfg); ok {
				rule.MinLength = adri.IntPtr(lb.Min)
				rule.MaxLength = adri.IntPtr(lb.Max)
			}
			if pattern, ok := InferPattern(name, col.Cells); ok {
				rule.Pattern = pattern
			}
		case adri.FieldDate, adri.FieldDateTime:
			if w, ok := InferDateWindow(col.Cells, rule.Type, cfg); ok {
				if rule.Type == adri.FieldDateTime {
					rule.AfterDateTime = w.After
					rule.BeforeDateTime = w.Before
				} else {
					rule.AfterDate = w.After
					rule.BeforeDate = w.Before
				}
			}
		}

		res.Fields = append(res.Fields, FieldInference{Name: name, Rule: rule})
	}
	return res
}

func numericValues(cells []adri.Cell) []float64 {
	var out []float64
	for _, c := range cells {
		if c.Null() {
			continue
		}
		if f, ok := c.AsFloat(); ok {
			out = append(out, f)
		}
	}
	return out
}
