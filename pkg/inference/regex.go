package inference

import (
	"github.com/adri-oss/adri-go/pkg/adri"
	"github.com/adri-oss/adri-go/pkg/profiler"
)

// InferPattern conservatively emits a pattern rule only for the one
// case inference is confident about: a column whose values uniformly
// look like e-mail addresses (spec §4.3 "Pattern inference is
// conservative: only emit a pattern for columns that are confidently
// email-shaped"). All other pattern families (phone, generic) are left
// to the profiler as advisory-only signals.
func InferPattern(name string, cells []adri.Cell) (string, bool) {
	values := nonNullStrings(cells)
	if len(values) == 0 {
		return "", false
	}
	if !profiler.MatchesEmailPattern(values) {
		return "", false
	}
	return profiler.EmailPatternSource(), true
}
