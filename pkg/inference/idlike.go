package inference

import "strings"

// IsIDLike reports whether a column name looks like an identifier by
// substring match against the configured set (spec §4.3 Enums: "name
// is not id-like"). Matching is case-insensitive.
func IsIDLike(name string, substrings []string) bool {
	lower := strings.ToLower(name)
	for _, s := range substrings {
		if strings.Contains(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
