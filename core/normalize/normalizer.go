// Package normalize canonicalizes text before it enters the pipeline.
// Text handles user input; MarkdownNormalizer turns an extracted article
// fragment into readable, blank-line separated text.
package normalize

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// Text replaces CRLF line endings with LF and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// MarkdownNormalizer converts HTML to readable text using html-to-markdown.
// Headings, emphasis, lists and links keep their Markdown form.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts a cleaned HTML fragment into readable text.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return Text(markdown), nil
}
