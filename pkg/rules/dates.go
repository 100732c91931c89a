package rules

import (
	"time"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// dateBounds resolves the effective [after, before] window for a
// FieldRule, accepting whichever bound is present. When both a date
// and a datetime bound are set on the same side, the datetime bound
// wins, whatever the field's type.
func dateBounds(r adri.FieldRule) (after, before *time.Time, has bool) {
	parse := func(s string) *time.Time {
		if s == "" {
			return nil
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return &t
		}
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return &t
		}
		return nil
	}

	if a := parse(r.AfterDate); a != nil {
		after = a
	}
	if a := parse(r.AfterDateTime); a != nil {
		after = a
	}
	if b := parse(r.BeforeDate); b != nil {
		before = b
	}
	if b := parse(r.BeforeDateTime); b != nil {
		before = b
	}
	has = after != nil || before != nil
	return
}
