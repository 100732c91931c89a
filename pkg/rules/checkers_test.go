package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/rules"
)

func TestCheckNullable(t *testing.T) {
	rule := adri.FieldRule{Type: adri.FieldString}
	assert.True(t, rules.CheckNullable(adri.TextCell("x"), rule).Pass)
	assert.False(t, rules.CheckNullable(adri.NullCell, rule).Pass)

	rule.Nullable = adri.BoolPtr(true)
	assert.True(t, rules.CheckNullable(adri.NullCell, rule).Pass)
}

func TestCheckType(t *testing.T) {
	cases := []struct {
		name string
		v    adri.Cell
		r    adri.FieldRule
		want bool
	}{
		{"int ok", adri.IntCell(5), adri.FieldRule{Type: adri.FieldInteger}, true},
		{"float as int fractional fails", adri.FloatCell(5.5), adri.FieldRule{Type: adri.FieldInteger}, false},
		{"float as int whole ok", adri.FloatCell(5.0), adri.FieldRule{Type: adri.FieldInteger}, true},
		{"text numeric coerces to integer", adri.TextCell("42"), adri.FieldRule{Type: adri.FieldInteger}, true},
		{"text non-numeric fails integer", adri.TextCell("abc"), adri.FieldRule{Type: adri.FieldInteger}, false},
		{"bool ok", adri.BoolCell(true), adri.FieldRule{Type: adri.FieldBoolean}, true},
		{"bool wrong type", adri.TextCell("true"), adri.FieldRule{Type: adri.FieldBoolean}, false},
		{"date text ok", adri.TextCell("2024-01-15"), adri.FieldRule{Type: adri.FieldDate}, true},
		{"date text bad", adri.TextCell("not-a-date"), adri.FieldRule{Type: adri.FieldDate}, false},
		{"string always ok", adri.TextCell("anything"), adri.FieldRule{Type: adri.FieldString}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, rules.CheckType(c.v, c.r).Pass)
		})
	}
}

func TestCheckAllowedValues(t *testing.T) {
	rule := adri.FieldRule{Type: adri.FieldString, AllowedValues: []any{"A", "B"}}
	assert.True(t, rules.CheckAllowedValues(adri.TextCell("A"), rule).Pass)
	assert.False(t, rules.CheckAllowedValues(adri.TextCell("a"), rule).Pass, "case-sensitive")
	assert.False(t, rules.CheckAllowedValues(adri.TextCell("C"), rule).Pass)

	noRule := adri.FieldRule{Type: adri.FieldString}
	out := rules.CheckAllowedValues(adri.TextCell("anything"), noRule)
	assert.True(t, out.Pass)
	assert.True(t, out.Skipped)
}

func TestCheckNumericRange(t *testing.T) {
	rule := adri.FieldRule{Type: adri.FieldInteger, MinValue: adri.FloatPtr(0), MaxValue: adri.FloatPtr(120)}
	assert.True(t, rules.CheckNumericRange(adri.IntCell(25), rule).Pass)
	assert.False(t, rules.CheckNumericRange(adri.IntCell(-5), rule).Pass)
	assert.False(t, rules.CheckNumericRange(adri.IntCell(200), rule).Pass)
	assert.False(t, rules.CheckNumericRange(adri.TextCell("nan"), rule).Pass)
}

func TestCheckLengthBounds_CodePoints(t *testing.T) {
	rule := adri.FieldRule{Type: adri.FieldString, MinLength: adri.IntPtr(1), MaxLength: adri.IntPtr(3)}
	// "café" is 4 code points but 5 bytes; exercise rune counting.
	assert.False(t, rules.CheckLengthBounds(adri.TextCell("café"), rule).Pass)
	assert.True(t, rules.CheckLengthBounds(adri.TextCell("cat"), rule).Pass)
}

func TestCheckPattern_FullMatch(t *testing.T) {
	rule := adri.FieldRule{Type: adri.FieldString, Pattern: `[a-z]+@[a-z]+\.[a-z]+`}
	assert.True(t, rules.CheckPattern(adri.TextCell("john@example.com"), rule).Pass)
	assert.False(t, rules.CheckPattern(adri.TextCell("john@example.com extra"), rule).Pass, "must be a full match")
	assert.False(t, rules.CheckPattern(adri.TextCell("not-an-email"), rule).Pass)
}

func TestCheckDateWindow(t *testing.T) {
	rule := adri.FieldRule{Type: adri.FieldDate, AfterDate: "2020-01-01", BeforeDate: "2020-12-31"}
	assert.True(t, rules.CheckDateWindow(adri.DateCell(mustDate("2020-06-15")), rule).Pass)
	assert.False(t, rules.CheckDateWindow(adri.DateCell(mustDate("2019-01-01")), rule).Pass)
	assert.False(t, rules.CheckDateWindow(adri.DateCell(mustDate("2021-01-01")), rule).Pass)
}

func TestEvaluateValue_SkipsAbsentRules(t *testing.T) {
	rule := adri.FieldRule{Type: adri.FieldString}
	outcomes := rules.EvaluateValue(adri.TextCell("x"), rule)
	for _, o := range outcomes {
		if o.Rule == "type" {
			continue
		}
		assert.True(t, o.Skipped, "rule %s should be skipped when unconfigured", o.Rule)
	}
}

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}
