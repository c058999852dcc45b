package pdftext

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripReferences(t *testing.T) {
	text := "Intro text.\n\nReferences\n[1] Some citation.\n[2] Another."
	assert.Equal(t, "Intro text.", StripReferences(text))

	text = "Results.\n Bibliography \n[1] Cite."
	assert.Equal(t, "Results.", StripReferences(text))

	text = "No reference section here."
	assert.Equal(t, text, StripReferences(text))
}

func TestStripAcknowledgements(t *testing.T) {
	t.Run("keeps following section", func(t *testing.T) {
		text := "Results.\n\nAcknowledgements\nWe thank everyone.\n\nAppendix details follow."
		got := StripAcknowledgements(text)
		assert.Contains(t, got, "Results.")
		assert.Contains(t, got, "Appendix details follow.")
		assert.NotContains(t, got, "We thank everyone.")
	})

	t.Run("removes trailing acknowledgements", func(t *testing.T) {
		text := "Results.\n\nAcknowledgments\nwe thank the gpu cluster."
		assert.Equal(t, "Results.", StripAcknowledgements(text))
	})

	t.Run("no section", func(t *testing.T) {
		text := "Nothing to strip."
		assert.Equal(t, text, StripAcknowledgements(text))
	})
}

func TestStripTableOfContents(t *testing.T) {
	text := "Title page.\n\nContents\n1. Intro .... 1\n2. Methods .... 5\n\n1. Introduction\nBody."
	got := StripTableOfContents(text)
	assert.Contains(t, got, "Title page.")
	assert.Contains(t, got, "Introduction\nBody.")
	assert.NotContains(t, got, "Methods .... 5")

	// A "Contents" heading deep in the document is left alone.
	deep := strings.Repeat("x", 4000) + "\nContents\nstuff\n"
	assert.Equal(t, deep, StripTableOfContents(deep))
}

func TestCleanPagesRemovesRepeatedHeaders(t *testing.T) {
	pages := make([]string, 4)
	for i := range pages {
		var b strings.Builder
		b.WriteString("Proceedings of TestConf 2026\n")
		for j := 0; j < 5; j++ {
			// Body lines are unique per page so only the header repeats.
			b.WriteString(strings.Repeat("word ", j+1))
			b.WriteString(strconv.Itoa(i*10 + j))
			b.WriteString("\n")
		}
		b.WriteString("Page body ")
		b.WriteString(strconv.Itoa(i))
		pages[i] = b.String()
	}

	cleaned := CleanPages(pages)
	for _, page := range cleaned {
		assert.NotContains(t, page, "Proceedings of TestConf 2026")
		assert.Contains(t, page, "Page body")
	}
}

func TestCleanPagesTruncatesAtReferences(t *testing.T) {
	pages := []string{
		"Introduction and methods.",
		"Results go here.\n\nReferences\n[1] citation one",
		"[2] citation two spilling to next page",
	}

	cleaned := CleanPages(pages)
	assert.Len(t, cleaned, 2)
	assert.Equal(t, "Introduction and methods.", cleaned[0])
	assert.Equal(t, "Results go here.", cleaned[1])
}

func TestCleanPagesReferencesAtPageStart(t *testing.T) {
	pages := []string{
		"Body text.",
		"References\n[1] citation",
	}

	cleaned := CleanPages(pages)
	assert.Equal(t, []string{"Body text."}, cleaned)
}

func TestCleanText(t *testing.T) {
	text := "Abstract.\n\n\n\n\n\nBody.\n\nAcknowledgements\nthanks.\n\nReferences\n[1] x"
	got := CleanText(text)
	assert.NotContains(t, got, "thanks")
	assert.NotContains(t, got, "[1] x")
	assert.NotContains(t, got, "\n\n\n\n")
	assert.Contains(t, got, "Abstract.")
	assert.Contains(t, got, "Body.")
}
