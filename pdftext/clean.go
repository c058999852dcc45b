// Copyright 2026 Constellar Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package pdftext

import (
	"regexp"
	"strings"
)

var (
	referencesPattern = regexp.MustCompile(`(?i)\n\s*(?:References|Bibliography|Works\s+Cited)\s*\n`)
	ackPattern        = regexp.MustCompile(`(?i)\n\s*Acknowledg(?:e)?ments?\s*\n`)
	tocPattern        = regexp.MustCompile(`(?i)\n\s*(?:Table\s+of\s+)?Contents?\s*\n`)
	sectionAfterAck   = regexp.MustCompile(`\n\s*(?:\d+\.?\s+)?[A-Z][a-z]`)
	sectionAfterToC   = regexp.MustCompile(`(?i)\n\s*(?:1\.?\s+|Abstract|Introduction)`)
	excessNewlines    = regexp.MustCompile(`\n{4,}`)
)

// StripReferences removes the References / Bibliography section and
// everything after it.
func StripReferences(text string) string {
	if loc := referencesPattern.FindStringIndex(text); loc != nil {
		return strings.TrimRight(text[:loc[0]], " \t\n")
	}
	return text
}

// StripAcknowledgements removes the acknowledgements section, keeping any
// later section that follows it.
func StripAcknowledgements(text string) string {
	loc := ackPattern.FindStringIndex(text)
	if loc == nil {
		return text
	}
	rest := text[loc[1]:]
	if next := sectionAfterAck.FindStringIndex(rest); next != nil {
		return text[:loc[0]] + rest[next[0]:]
	}
	return strings.TrimRight(text[:loc[0]], " \t\n")
}

// StripTableOfContents removes a table of contents near the start of the
// document, up to the first major section.
func StripTableOfContents(text string) string {
	head := text
	if len(head) > 3000 {
		head = head[:3000]
	}
	loc := tocPattern.FindStringIndex(head)
	if loc == nil {
		return text
	}
	rest := text[loc[1]:]
	if next := sectionAfterToC.FindStringIndex(rest); next != nil {
		return text[:loc[0]] + rest[next[0]:]
	}
	return text
}

// stripRepeatedLines removes short lines that repeat across the document,
// which are almost always page headers, footers or page numbers.
func stripRepeatedLines(pages []string) []string {
	totalLines := 0
	counts := make(map[string]int)
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			totalLines++
			counts[strings.TrimSpace(line)]++
		}
	}
	if totalLines < 20 {
		return pages
	}

	repeated := make(map[string]bool)
	for line, count := range counts {
		if count >= 3 && len(line) > 0 && len(line) < 80 {
			repeated[line] = true
		}
	}
	if len(repeated) == 0 {
		return pages
	}

	cleaned := make([]string, len(pages))
	for i, page := range pages {
		lines := strings.Split(page, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if !repeated[strings.TrimSpace(line)] {
				kept = append(kept, line)
			}
		}
		cleaned[i] = strings.Join(kept, "\n")
	}
	return cleaned
}

// CleanText applies all cleaning steps to a single extracted text.
func CleanText(text string) string {
	text = StripTableOfContents(text)
	text = StripAcknowledgements(text)
	text = StripReferences(text)
	text = excessNewlines.ReplaceAllString(text, "\n\n\n")
	return strings.TrimSpace(text)
}

// CleanPages applies the cleaning steps across an extracted document:
// repeated header/footer lines are removed globally, the table of contents
// is stripped from the opening page, acknowledgements are stripped per page,
// and the document is truncated at the references section.
func CleanPages(pages []string) []string {
	pages = stripRepeatedLines(pages)

	cleaned := make([]string, 0, len(pages))
	for i, page := range pages {
		if i == 0 {
			page = StripTableOfContents(page)
		}
		page = StripAcknowledgements(page)

		// Pad so a references heading at the very start of a page matches.
		if loc := referencesPattern.FindStringIndex("\n" + page); loc != nil {
			page = strings.TrimRight(page[:max(loc[0]-1, 0)], " \t\n")
			page = excessNewlines.ReplaceAllString(page, "\n\n\n")
			if strings.TrimSpace(page) != "" {
				cleaned = append(cleaned, page)
			}
			return cleaned
		}

		cleaned = append(cleaned, excessNewlines.ReplaceAllString(page, "\n\n\n"))
	}
	return cleaned
}
