package inference

import (
	"time"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// DateWindow is an inferred [after,before] bound, already formatted for
// direct assignment into a FieldRule.
type DateWindow struct {
	After, Before string
}

// InferDateWindow derives an after/before window from observed
// date/datetime values, widened by cfg.DateMarginDays on each side so
// values arriving shortly before/after the training window still pass
// (spec §4.3 "Date window").
func InferDateWindow(cells []adri.Cell, fieldType adri.FieldType, cfg Config) (DateWindow, bool) {
	var min, max time.Time
	seen := false
	for _, c := range cells {
		if c.Null() {
			continue
		}
		t, ok := c.AsTime()
		if !ok {
			continue
		}
		if !seen {
			min, max = t, t
			seen = true
			continue
		}
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}
	if !seen {
		return DateWindow{}, false
	}

	margin := time.Duration(cfg.DateMarginDays) * 24 * time.Hour
	after := min.Add(-margin)
	before := max.Add(margin)

	layout := "2006-01-02"
	if fieldType == adri.FieldDateTime {
		layout = time.RFC3339
	}
	return DateWindow{After: after.Format(layout), Before: before.Format(layout)}, true
}
