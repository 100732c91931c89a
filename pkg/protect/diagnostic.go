package protect

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adri-oss/adri-go/pkg/adri"
)

// issueCategoryLabels translates an adri.FailedValidation.IssueType
// into the plain-language phrase spec §7 requires in the BLOCKED
// diagnostic (e.g. "invalid data formats detected").
var issueCategoryLabels = map[string]string{
	"validity":             "invalid data formats detected",
	"missing_required":     "missing required data fields",
	"primary_key_uniqueness": "duplicate record identifiers detected",
	"date_window_recency":  "stale or out-of-window dates detected",
}

func categoryLabel(issueType string) string {
	if label, ok := issueCategoryLabels[issueType]; ok {
		return label
	}
	return strings.ReplaceAll(issueType, "_", " ") + " issues detected"
}

// dominantCategories picks the two issue types affecting the most rows,
// for the "two dominant issue categories" requirement in spec §7.
func dominantCategories(failed []adri.FailedValidation) []string {
	totals := map[string]int{}
	for _, f := range failed {
		totals[f.IssueType] += f.AffectedRows
	}
	types := make([]string, 0, len(totals))
	for t := range totals {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool {
		if totals[types[i]] != totals[types[j]] {
			return totals[types[i]] > totals[types[j]]
		}
		return types[i] < types[j]
	})
	if len(types) > 2 {
		types = types[:2]
	}
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = categoryLabel(t)
	}
	return labels
}

// formatBlocked renders the single compact paragraph spec §7 requires
// for a quality breach: the BLOCKED marker, actual vs. required score,
// the standard's id/path (already annotated "(bundled)" or
// "(auto-generated)" by resolveAndEnsure where applicable), the two
// dominant issue categories, and a pointer to the show-standard
// command.
func formatBlocked(result *adri.AssessmentResult, minScore float64, sourceDesc string, reasons []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BLOCKED: data quality score %.1f is below the required %.1f for standard %q (%s).",
		result.OverallScore, minScore, result.StandardID, sourceDesc)

	if cats := dominantCategories(result.FailedValidations); len(cats) > 0 {
		fmt.Fprintf(&b, " Leading issues: %s.", strings.Join(cats, "; "))
	}
	if len(reasons) > 0 {
		fmt.Fprintf(&b, " Dimension shortfalls: %s.", strings.Join(reasons, "; "))
	}
	fmt.Fprintf(&b, " Run `adri show-standard %s` for the full contract.", result.StandardID)
	return b.String()
}
