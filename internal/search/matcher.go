package search

import (
	"strings"
)

// matchesName reports whether the lower-cased base name contains pattern.
// pattern must already be lower-cased; an empty pattern matches everything.
func matchesName(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), pattern)
}

// preparePattern normalizes user input into the form SearchQuery expects
func preparePattern(pattern string) string {
	return strings.ToLower(pattern)
}
