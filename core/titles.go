package core

import (
	"regexp"
	"strings"
)

// Strips prefixes like "[2301.04567] " that aggregators prepend to titles.
var leadingBracketPrefixes = regexp.MustCompile(`^(?:\s*\[[^\]]+\]\s*)+`)

// NormalizeTitle trims a paper title and removes leading bracketed prefixes.
// Returns the empty string when nothing usable remains.
func NormalizeTitle(title string) string {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(leadingBracketPrefixes.ReplaceAllString(trimmed, ""))
}

// NormalizeURL trims surrounding whitespace from a paper URL.
func NormalizeURL(rawURL string) string {
	return strings.TrimSpace(rawURL)
}
