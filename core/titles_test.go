package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain title", "Attention Is All You Need", "Attention Is All You Need"},
		{"leading bracket prefix", "[2301.04567] Attention Is All You Need", "Attention Is All You Need"},
		{"stacked prefixes", "[cs.LG] [v2] Some Title", "Some Title"},
		{"whitespace only", "   ", ""},
		{"empty", "", ""},
		{"prefix only", "[2301.04567]", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTitle(tt.input))
		})
	}
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://arxiv.org/abs/2301.04567", NormalizeURL("  https://arxiv.org/abs/2301.04567\n"))
	assert.Equal(t, "", NormalizeURL("   "))
}
