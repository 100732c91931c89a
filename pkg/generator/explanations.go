package generator

// Adjustment records one training-pass relaxation applied to a field's
// rule (spec §4.4 "Every relaxation appends an adjustments entry").
type Adjustment struct {
	Rule   string `yaml:"rule" json:"rule"`
	Action string `yaml:"action" json:"action"`
	Before any    `yaml:"before" json:"before"`
	After  any    `yaml:"after" json:"after"`
	Reason string `yaml:"reason" json:"reason"`
}

// RuleExplanation documents one active rule on a field: the value it
// was set to, the supporting statistics behind that choice, and a short
// human rationale (spec §4.4 step 5).
type RuleExplanation struct {
	Value     any            `yaml:"value" json:"value"`
	Stats     map[string]any `yaml:"stats,omitempty" json:"stats,omitempty"`
	Rationale string         `yaml:"rationale" json:"rationale"`
}

// FieldExplanation is the metadata.explanations entry for one field.
type FieldExplanation struct {
	Rules       map[string]RuleExplanation `yaml:"rules,omitempty" json:"rules,omitempty"`
	Adjustments []Adjustment               `yaml:"adjustments,omitempty" json:"adjustments,omitempty"`
}

func newFieldExplanation() *FieldExplanation {
	return &FieldExplanation{Rules: map[string]RuleExplanation{}}
}

func (fe *FieldExplanation) addRule(name string, value any, rationale string, stats map[string]any) {
	fe.Rules[name] = RuleExplanation{Value: value, Stats: stats, Rationale: rationale}
}

func (fe *FieldExplanation) addAdjustment(rule, action string, before, after any) {
	fe.Adjustments = append(fe.Adjustments, Adjustment{
		Rule: rule, Action: action, Before: before, After: after,
		Reason: "training-pass failure",
	})
}
