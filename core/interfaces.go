// Package core defines the pipeline interfaces for ProofPipe.
// Each stage of the proofreading pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Article is the readable content extracted from a page.
type Article struct {
	Title string `json:"title"`
	// HTML is the main content fragment with noise removed.
	HTML string `json:"-"`
}

// Request is one proofreading call. SourceURL wins over RawText when both
// are set.
type Request struct {
	RawText   string `json:"raw_text"`
	SourceURL string `json:"url"`
}

// Source names the primary input of a request.
type Source string

// Source values.
const (
	SourceText Source = "text"
	SourceURL  Source = "url"
)

// Result is the outcome of a successful pipeline run.
type Result struct {
	Source    Source `json:"source"`
	SourceURL string `json:"url,omitempty"`
	// Input is the normalized text that was sent for checking.
	Input string `json:"input"`
	// Output is the rendered HTML, identical to the persisted artifact.
	Output string `json:"output"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (*Article, error)
}

// Normalizer converts cleaned HTML into readable text (blank-line separated
// blocks, inline formatting preserved).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// ArticleSource turns a trusted URL into paragraph-formatted article text.
type ArticleSource interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// TemplateSource yields the prompt template. It is read on every request.
type TemplateSource interface {
	Load() (string, error)
}

// Proofreader sends a composed prompt to the upstream model and returns the
// raw completion text.
type Proofreader interface {
	Proofread(ctx context.Context, prompt string) (string, error)
}

// Validator gates a model response against the original text.
type Validator interface {
	Validate(output, original string) Outcome
}

// ArtifactStore holds the single last-output artifact.
type ArtifactStore interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
	// Location describes where the artifact lives (path or object URL).
	Location() string
}

// Renderer converts a rendered output into an export format.
type Renderer interface {
	Render(output string, meta ExportMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".html", ".pdf").
	Extension() string
}

// ExportMetadata describes an exported artifact.
type ExportMetadata struct {
	Location   string `json:"location"`
	ExportedAt string `json:"exported_at"` // ISO8601
}

// ExportJSON is the structured export of a rendered output.
type ExportJSON struct {
	Metadata    ExportMetadata `json:"metadata"`
	Content     ExportContent  `json:"content"`
	Corrections Corrections    `json:"corrections"`
}

// ExportContent holds the output as markup and as plain text.
type ExportContent struct {
	HTML       string   `json:"html"`
	Text       string   `json:"text"`
	Paragraphs []string `json:"paragraphs"`
}

// Corrections lists the marked spans in document order.
type Corrections struct {
	Deleted  []string `json:"deleted"`
	Inserted []string `json:"inserted"`
}
