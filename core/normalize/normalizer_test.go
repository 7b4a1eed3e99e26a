package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"whitespace only", " \r\n\t ", ""},
		{"crlf", "one\r\ntwo\r\n\r\nthree", "one\ntwo\n\nthree"},
		{"trims", "  \r\nHello world\r\n  ", "Hello world"},
		{"lone cr kept", "a\rb", "a\rb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.input)
			assert.Equal(t, tt.want, got)
			assert.NotContains(t, got, "\r\n")
			assert.Equal(t, strings.TrimSpace(got), got)
		})
	}
}

func TestMarkdownNormalizer_Normalize(t *testing.T) {
	n := New()

	got, err := n.Normalize(`<article><h2>Budget</h2><p>The <strong>council</strong> met.</p><p>Second paragraph.</p></article>`)
	require.NoError(t, err)

	assert.Contains(t, got, "## Budget")
	assert.Contains(t, got, "**council**")
	assert.Contains(t, got, "The **council** met.\n\nSecond paragraph.")
	assert.Equal(t, strings.TrimSpace(got), got)
}
