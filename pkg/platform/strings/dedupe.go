// Package strings holds small slice-of-string helpers for configuration lists.
package strings

import (
	"strings"
)

// DedupeAndTrim trims every element and drops blanks and repeats, keeping the
// first occurrence in order.
func DedupeAndTrim(values []string) []string {
	return dedupe(values, strings.TrimSpace)
}

// DedupeAndTrimUpper is DedupeAndTrim with case folded to upper, so "test"
// and "TEST" collapse into one entry.
func DedupeAndTrimUpper(values []string) []string {
	return dedupe(values, func(v string) string {
		return strings.ToUpper(strings.TrimSpace(v))
	})
}

func dedupe(values []string, clean func(string) string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		c := clean(v)
		if c == "" {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
