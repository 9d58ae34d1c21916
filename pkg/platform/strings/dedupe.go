// Package strings provides string helpers shared by config parsing and
// provider response shaping.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{" https://a.example ", "*", "https://a.example", ""})
//	// Returns: []string{"https://a.example", "*"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SplitList splits a comma-separated value and applies DedupeAndTrim.
func SplitList(v string) []string {
	return DedupeAndTrim(strings.Split(v, ","))
}

// JoinNonEmpty trims each part and joins the non-empty ones with sep.
//
// Example:
//
//	JoinNonEmpty(", ", "1 Main St", "", " Springfield ")
//	// Returns: "1 Main St, Springfield"
func JoinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			kept = append(kept, t)
		}
	}
	return strings.Join(kept, sep)
}
