package core

import (
	"net/url"
	"regexp"
	"strings"
)

// Matches both old-style ids ("math.GT/0309136") and new-style ids
// ("2301.04567"), with optional version suffix and .pdf extension.
var arxivIDPattern = regexp.MustCompile(
	`^(?i)(?:([a-z-]+(?:\.[a-z-]+)?/\d{7})|(\d{4}\.\d{4,5}))(?:v\d+)?(?:\.pdf)?$`)

var arxivHostPattern = regexp.MustCompile(`(?i)(^|\.)arxiv\.org$`)

func parseArxivID(value string) (string, bool) {
	m := arxivIDPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return "", false
	}
	if m[1] != "" {
		return m[1], true
	}
	if m[2] != "" {
		return m[2], true
	}
	return "", false
}

// IsArxivURL reports whether rawURL points at an arxiv.org host.
func IsArxivURL(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return arxivHostPattern.MatchString(parsed.Hostname())
}

// ExtractArxivID derives the canonical arXiv identifier from a raw id or an
// arxiv.org abs/pdf URL. Version suffixes and the .pdf extension are dropped.
// Returns false if no identifier can be derived.
func ExtractArxivID(urlOrID string) (string, bool) {
	if id, ok := parseArxivID(urlOrID); ok {
		return id, true
	}
	if !IsArxivURL(urlOrID) {
		return "", false
	}
	parsed, err := url.Parse(urlOrID)
	if err != nil {
		return "", false
	}
	segments := strings.Split(strings.TrimPrefix(parsed.Path, "/"), "/")
	if len(segments) < 2 {
		return "", false
	}
	if segments[0] != "abs" && segments[0] != "pdf" {
		return "", false
	}
	return parseArxivID(strings.Join(segments[1:], "/"))
}

// CanonicalPDFURL normalizes a raw id or arXiv URL to the standard PDF URL.
func CanonicalPDFURL(urlOrID string) (string, bool) {
	id, ok := ExtractArxivID(urlOrID)
	if !ok {
		return "", false
	}
	return "https://arxiv.org/pdf/" + id + ".pdf", true
}
