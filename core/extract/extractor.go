// Package extract implements the Extractor interface.
// It isolates the article body from a full news page by:
//  1. Removing noise elements (nav, footer, scripts, media, share widgets)
//  2. Picking the best content container (<article>, <main>, [role=main], <body>)
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/proofpipe/core"
)

// noiseSelectors are removed before extraction. They carry no article text.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
	".share", ".related", ".newsletter", "[aria-hidden=true]",
}

// containers are tried in priority order.
var containers = []string{"article", "main", "[role=main]", "body"}

// HTMLExtractor strips noise from HTML and returns the article fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes raw HTML and returns the cleaned article fragment and title.
// Inline formatting (emphasis, links, lists, headings) is kept.
func (e *HTMLExtractor) Extract(html string) (*core.Article, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	title := pageTitle(doc)

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, sel := range containers {
		found := doc.Find(sel)
		if found.Length() > 0 && strings.TrimSpace(found.First().Text()) != "" {
			content = found.First()
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("no content container found in HTML")
	}

	result, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, fmt.Errorf("serializing content: %w", err)
	}

	return &core.Article{Title: title, HTML: result}, nil
}

// pageTitle prefers og:title, then <title>, then the first <h1>.
func pageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
