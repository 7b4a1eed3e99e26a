package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/gaurav-prasanna/proofpipe/core"
)

// HTMLRenderer wraps the output fragment in a standalone document. The
// fragment is already display markup, so it is written as-is.
type HTMLRenderer struct{}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{}
}

// Render returns a complete HTML page around output.
func (r *HTMLRenderer) Render(output string, meta core.ExportMetadata) ([]byte, error) {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	b.WriteString("<title>Proofread text</title>\n")
	fmt.Fprintf(&b, "<meta name=\"source\" content=\"%s\">\n", html.EscapeString(meta.Location))
	fmt.Fprintf(&b, "<meta name=\"exported\" content=\"%s\">\n", html.EscapeString(meta.ExportedAt))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(output)
	b.WriteString("\n</body>\n</html>\n")
	return []byte(b.String()), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
