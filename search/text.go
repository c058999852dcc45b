package search

import "strings"

// Stop words to filter out when tokenizing queries and documents
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "we": true, "our": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation, and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}#*`"))
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// termCounts returns the occurrence count of each filtered term.
func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, word := range tokenizeAndFilter(text) {
		counts[word]++
	}
	return counts
}

// containsAllQueryWords checks if all query words (after filtering) appear in the document
func containsAllQueryWords(docWords map[string]int, queryWords []string) bool {
	if len(queryWords) == 0 {
		return false
	}
	for _, word := range queryWords {
		if docWords[word] == 0 {
			return false
		}
	}
	return true
}
