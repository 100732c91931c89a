package adri_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/adri-oss/adri-go/pkg/adri"
)

func TestFieldRule_IsNullable(t *testing.T) {
	r := adri.FieldRule{Type: adri.FieldString}
	assert.False(t, r.IsNullable())

	r.Nullable = adri.BoolPtr(true)
	assert.True(t, r.IsNullable())
}

func TestDimensionConfig_WeightsFor(t *testing.T) {
	cfg := adri.DimensionConfig{
		Scoring: adri.DimensionScoringConfig{
			RuleWeights: adri.RuleWeights{"type": 1.0},
			FieldOverrides: map[string]adri.RuleWeights{
				"email": {"pattern": 1.0},
			},
		},
	}
	assert.Equal(t, adri.RuleWeights{"pattern": 1.0}, cfg.WeightsFor("email"))
	assert.Equal(t, adri.RuleWeights{"type": 1.0}, cfg.WeightsFor("age"))
}

func TestStandard_Clone_Independence(t *testing.T) {
	s := &adri.Standard{
		Standards: adri.StandardInfo{ID: "s1"},
		Requirements: adri.Requirements{
			OverallMinimum: 75,
			FieldRequirements: map[string]adri.FieldRule{
				"age": {Type: adri.FieldInteger, AllowedValues: []any{1, 2, 3}},
			},
			DimensionRequirements: map[string]adri.DimensionConfig{
				adri.DimValidity: {MinimumScore: 15},
			},
		},
		RecordIdentification: &adri.RecordIdentification{PrimaryKeyFields: []string{"id"}},
	}
	clone := s.Clone()

	clone.Requirements.FieldRequirements["age"] = adri.FieldRule{Type: adri.FieldString}
	clone.RecordIdentification.PrimaryKeyFields[0] = "mutated"

	assert.Equal(t, adri.FieldInteger, s.Requirements.FieldRequirements["age"].Type)
	assert.Equal(t, "id", s.RecordIdentification.PrimaryKeyFields[0])
}
