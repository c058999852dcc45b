package pdftext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPagesRejectsNonPDF(t *testing.T) {
	_, err := ExtractPages([]byte("not a pdf at all"))
	assert.Error(t, err)
}

func TestExtractPagesRejectsEmptyInput(t *testing.T) {
	_, err := ExtractPages(nil)
	assert.Error(t, err)
}

func TestExtractPagesRejectsTruncatedHeader(t *testing.T) {
	_, err := ExtractPages([]byte("%PDF-1.4"))
	assert.Error(t, err)
}
