package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/proofpipe/core"
)

// JSONRenderer produces a structured export: the markup, its plain text
// split into paragraphs, and the marked corrections.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts output and metadata into the export JSON.
func (r *JSONRenderer) Render(output string, meta core.ExportMetadata) ([]byte, error) {
	paragraphs := make([]string, 0)
	for _, frag := range splitParagraphs(output) {
		if text := plainText(frag); text != "" {
			paragraphs = append(paragraphs, text)
		}
	}

	corrections, err := extractCorrections(output)
	if err != nil {
		return nil, err
	}

	export := core.ExportJSON{
		Metadata: meta,
		Content: core.ExportContent{
			HTML:       output,
			Text:       strings.Join(paragraphs, "\n\n"),
			Paragraphs: paragraphs,
		},
		Corrections: corrections,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

func extractCorrections(output string) (core.Corrections, error) {
	c := core.Corrections{Deleted: make([]string, 0), Inserted: make([]string, 0)}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(output))
	if err != nil {
		return c, fmt.Errorf("parsing output: %w", err)
	}

	doc.Find("b").Each(func(_ int, s *goquery.Selection) {
		switch markOf(s) {
		case markDeleted:
			c.Deleted = append(c.Deleted, s.Text())
		case markInserted:
			c.Inserted = append(c.Inserted, s.Text())
		}
	})
	return c, nil
}
