package ingestion

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/constellar/paperflow/core"
)

// SplitSections splits a markdown document into sections at level 1 and 2
// headings. Content before the first heading becomes a headerless preamble
// section. Deeper headings stay inside their parent section. Bodies are
// whitespace-trimmed; rejoining the sections with blank lines reproduces the
// document content modulo whitespace.
func SplitSections(doc string) []core.Section {
	source := []byte(doc)
	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var offsets []int
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		heading, ok := child.(*ast.Heading)
		if !ok || heading.Level > 2 || heading.Lines().Len() == 0 {
			continue
		}
		// The heading segment starts after the marker; back up to the
		// start of the line so the marker stays with the header.
		start := heading.Lines().At(0).Start
		for start > 0 && source[start-1] != '\n' {
			start--
		}
		offsets = append(offsets, start)
	}

	if len(offsets) == 0 {
		body := strings.TrimSpace(doc)
		if body == "" {
			return nil
		}
		return []core.Section{{Body: body}}
	}

	sections := make([]core.Section, 0, len(offsets)+1)
	if preamble := strings.TrimSpace(string(source[:offsets[0]])); preamble != "" {
		sections = append(sections, core.Section{Body: preamble})
	}

	for i, offset := range offsets {
		end := len(source)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		block := string(source[offset:end])

		header := block
		body := ""
		if nl := strings.IndexByte(block, '\n'); nl >= 0 {
			header = block[:nl]
			body = block[nl+1:]
		}
		sections = append(sections, core.Section{
			Header: strings.TrimRight(header, " \t\r"),
			Body:   strings.TrimSpace(body),
		})
	}

	return sections
}
