package profiler

import (
	"regexp"
	"sort"
)

// Pattern detection: classify each value, count per classification,
// and report dominant formats above a minimum-coverage threshold. Spec
// §4.2 bounds the reported set to {email, phone, date}; a pattern must
// cover more than 80% of non-empty values to be reported.

var (
	emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9][0-9\-. ()]{6,}[0-9]$`)
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([ T]\d{2}:\d{2}(:\d{2})?(\.\d+)?(Z|[+\-]\d{2}:\d{2})?)?$`)
)

const patternMinCoverage = 0.8

// DetectPatterns classifies a sample of string values and returns the
// short list of patterns that cover more than patternMinCoverage of the
// non-empty values, most-covering first.
func DetectPatterns(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	counts := map[string]int{"email": 0, "phone": 0, "date": 0}
	nonEmpty := 0
	for _, v := range values {
		if v == "" {
			continue
		}
		nonEmpty++
		switch {
		case emailRe.MatchString(v):
			counts["email"]++
		case dateRe.MatchString(v):
			counts["date"]++
		case phoneRe.MatchString(v):
			counts["phone"]++
		}
	}
	if nonEmpty == 0 {
		return nil
	}

	type scored struct {
		name  string
		ratio float64
	}
	var candidates []scored
	for name, n := range counts {
		ratio := float64(n) / float64(nonEmpty)
		if ratio > patternMinCoverage {
			candidates = append(candidates, scored{name, ratio})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ratio > candidates[j].ratio })

	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

// MatchesEmailPattern reports whether every value in values matches
// the canned e-mail pattern, used by inference's conservative regex
// rule (spec §4.3 Regex: "currently only a conservative e-mail pattern").
func MatchesEmailPattern(values []string) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if !emailRe.MatchString(v) {
			return false
		}
	}
	return true
}

// EmailPatternSource returns the source regex text used for the
// email rule, so the inference engine can embed it verbatim in a
// generated FieldRule.Pattern.
func EmailPatternSource() string {
	return emailRe.String()
}
