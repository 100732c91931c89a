package adri

// FieldType is the type tag carried by a FieldRule. It constrains which
// rule attributes are meaningful for a field (§3 FieldRule).
type FieldType string

const (
	FieldString   FieldType = "string"
	FieldInteger  FieldType = "integer"
	FieldFloat    FieldType = "float"
	FieldBoolean  FieldType = "boolean"
	FieldDate     FieldType = "date"
	FieldDateTime FieldType = "datetime"
)

// FieldRule is the per-field contract: a type tag plus any subset of
// the constraints below. Nil/zero-value fields mean "constraint absent".
type FieldRule struct {
	Type FieldType `yaml:"type" json:"type"`

	Nullable      *bool    `yaml:"nullable,omitempty" json:"nullable,omitempty"`
	AllowedValues []any    `yaml:"allowed_values,omitempty" json:"allowed_values,omitempty"`
	MinValue      *float64 `yaml:"min_value,omitempty" json:"min_value,omitempty"`
	MaxValue      *float64 `yaml:"max_value,omitempty" json:"max_value,omitempty"`
	MinLength     *int     `yaml:"min_length,omitempty" json:"min_length,omitempty"`
	MaxLength     *int     `yaml:"max_length,omitempty" json:"max_length,omitempty"`
	Pattern       string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`

	AfterDate      string `yaml:"after_date,omitempty" json:"after_date,omitempty"`
	BeforeDate     string `yaml:"before_date,omitempty" json:"before_date,omitempty"`
	AfterDateTime  string `yaml:"after_datetime,omitempty" json:"after_datetime,omitempty"`
	BeforeDateTime string `yaml:"before_datetime,omitempty" json:"before_datetime,omitempty"`
}

// IsNullable reports the effective nullable value; absent defaults to
// false (§4.3 Nullability: nullable=false iff zero nulls observed).
func (r FieldRule) IsNullable() bool {
	return r.Nullable != nil && *r.Nullable
}

func BoolPtr(v bool) *bool       { return &v }
func FloatPtr(v float64) *float64 { return &v }
func IntPtr(v int) *int          { return &v }

// RuleWeights maps a rule name (e.g. "type", "allowed_values",
// "primary_key_uniqueness") to a weight in [0,1].
type RuleWeights map[string]float64

// DimensionConfig configures one of the five scoring dimensions.
type DimensionConfig struct {
	MinimumScore float64                `yaml:"minimum_score" json:"minimum_score"`
	Weight       float64                `yaml:"weight" json:"weight"`
	Scoring      DimensionScoringConfig `yaml:"scoring" json:"scoring"`
}

// DimensionScoringConfig carries the active rule weights for a
// dimension, with optional per-field overrides.
type DimensionScoringConfig struct {
	RuleWeights    RuleWeights            `yaml:"rule_weights,omitempty" json:"rule_weights,omitempty"`
	FieldOverrides map[string]RuleWeights `yaml:"field_overrides,omitempty" json:"field_overrides,omitempty"`
}

// WeightsFor resolves the effective rule weights for a field, applying
// a field-level override when present.
func (d DimensionConfig) WeightsFor(field string) RuleWeights {
	if d.Scoring.FieldOverrides != nil {
		if w, ok := d.Scoring.FieldOverrides[field]; ok {
			return w
		}
	}
	return d.Scoring.RuleWeights
}

// Dimension names. Exactly these five contribute to the overall score
// (§3, invariant I1/I2).
const (
	DimValidity      = "validity"
	DimCompleteness  = "completeness"
	DimConsistency   = "consistency"
	DimFreshness     = "freshness"
	DimPlausibility  = "plausibility"
)

// Dimensions lists the five scoring dimensions in the canonical order
// they are reported.
var Dimensions = []string{DimValidity, DimCompleteness, DimConsistency, DimFreshness, DimPlausibility}

// RecordIdentification declares the dataset's primary key.
type RecordIdentification struct {
	PrimaryKeyFields []string `yaml:"primary_key_fields" json:"primary_key_fields"`
	Strategy         string   `yaml:"strategy,omitempty" json:"strategy,omitempty"`
}

// Requirements is the scoring contract section of a Standard.
type Requirements struct {
	OverallMinimum       float64                    `yaml:"overall_minimum" json:"overall_minimum"`
	FieldRequirements    map[string]FieldRule       `yaml:"field_requirements" json:"field_requirements"`
	DimensionRequirements map[string]DimensionConfig `yaml:"dimension_requirements" json:"dimension_requirements"`
}

// StandardInfo is the `standards` metadata section.
type StandardInfo struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Authority   string `yaml:"authority,omitempty" json:"authority,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Standard is the full YAML document described in §3 and §6. Unknown
// top-level keys are kept in Extra when a standard is loaded; scoring
// ignores them, and Extra is not written back when a Standard is
// marshaled.
type Standard struct {
	Standards            StandardInfo           `yaml:"standards" json:"standards"`
	RecordIdentification *RecordIdentification   `yaml:"record_identification,omitempty" json:"record_identification,omitempty"`
	Requirements          Requirements            `yaml:"requirements" json:"requirements"`
	Metadata              map[string]any          `yaml:"metadata,omitempty" json:"metadata,omitempty"`

	Extra map[string]any `yaml:"-" json:"-"`
}

// Clone returns a deep-enough copy for a consumer to treat as
// immutable (§3 lifecycle: "loaded copies are immutable to consumers").
func (s *Standard) Clone() *Standard {
	if s == nil {
		return nil
	}
	out := *s
	out.Requirements.FieldRequirements = make(map[string]FieldRule, len(s.Requirements.FieldRequirements))
	for k, v := range s.Requirements.FieldRequirements {
		vv := v
		vv.AllowedValues = append([]any(nil), v.AllowedValues...)
		out.Requirements.FieldRequirements[k] = vv
	}
	out.Requirements.DimensionRequirements = make(map[string]DimensionConfig, len(s.Requirements.DimensionRequirements))
	for k, v := range s.Requirements.DimensionRequirements {
		out.Requirements.DimensionRequirements[k] = v
	}
	if s.RecordIdentification != nil {
		ri := *s.RecordIdentification
		ri.PrimaryKeyFields = append([]string(nil), s.RecordIdentification.PrimaryKeyFields...)
		out.RecordIdentification = &ri
	}
	return &out
}
