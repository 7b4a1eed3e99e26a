package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/proofpipe/core"
)

// PDFRenderer renders the output as a PDF, one block per paragraph.
// Deletions are printed in red and insertions in green.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts output into PDF bytes.
func (r *PDFRenderer) Render(output string, meta core.ExportMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, "Proofread text", "", "L", false)
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	if meta.Location != "" {
		pdf.MultiCell(0, 5, tr("Source: "+meta.Location), "", "L", false)
	}
	if meta.ExportedAt != "" {
		pdf.MultiCell(0, 5, "Exported: "+meta.ExportedAt, "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	for _, frag := range splitParagraphs(output) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(frag))
		if err != nil {
			return nil, fmt.Errorf("parsing output: %w", err)
		}
		writeRuns(pdf, tr, doc.Find("body"))
		pdf.Ln(8)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// writeRuns flows the text of sel into the page, colouring marked spans.
func writeRuns(pdf *gofpdf.Fpdf, tr func(string) string, sel *goquery.Selection) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		switch goquery.NodeName(s) {
		case "#text":
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0, 0, 0)
			pdf.Write(5, tr(s.Text()))
		case "b", "strong":
			pdf.SetFont("Helvetica", "B", 10)
			switch markOf(s) {
			case markDeleted:
				pdf.SetTextColor(200, 0, 0)
			case markInserted:
				pdf.SetTextColor(0, 140, 0)
			default:
				pdf.SetTextColor(0, 0, 0)
			}
			pdf.Write(5, tr(s.Text()))
			pdf.SetTextColor(0, 0, 0)
		case "br":
			pdf.Ln(5)
		default:
			writeRuns(pdf, tr, s)
		}
	})
}
