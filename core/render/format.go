// Package render turns accepted model output into what the caller sees.
// Paragraphs is the display formatter; the renderers export the last output
// as HTML, JSON or PDF.
package render

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Paragraphs replaces every blank-line break ("\n\n") with a <p> tag,
// left to right and non-overlapping. Other text is left untouched.
func Paragraphs(text string) string {
	return strings.ReplaceAll(text, "\n\n", "<p>")
}

// paragraphTag matches opening and closing paragraph tags.
var paragraphTag = regexp.MustCompile(`(?i)</?p(?:\s[^>]*)?>`)

// splitParagraphs cuts rendered output into paragraph fragments. It accepts
// both bare <p> separators and <p>...</p> blocks.
func splitParagraphs(output string) []string {
	var parts []string
	for _, frag := range paragraphTag.Split(output, -1) {
		if frag = strings.TrimSpace(frag); frag != "" {
			parts = append(parts, frag)
		}
	}
	return parts
}

// plainText strips markup from a fragment.
func plainText(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Find("body").Text())
}

type mark int

const (
	markNone mark = iota
	markDeleted
	markInserted
)

// markOf classifies a bold element by its inline colour.
func markOf(s *goquery.Selection) mark {
	style, ok := s.Attr("style")
	if !ok {
		return markNone
	}
	style = strings.ReplaceAll(strings.ToLower(style), " ", "")
	switch {
	case strings.Contains(style, "color:red"):
		return markDeleted
	case strings.Contains(style, "color:green"):
		return markInserted
	default:
		return markNone
	}
}
