// Package article retrieves news articles from the trusted site and reflows
// them into paragraph markup. It chains fetch → extract → normalize and is
// the only pipeline stage that touches the network besides the model call.
package article

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/proofpipe/core"
)

// Fetcher implements core.ArticleSource for one trusted URL prefix.
type Fetcher struct {
	prefix     string
	fetcher    core.Fetcher
	extractor  core.Extractor
	normalizer core.Normalizer
	logger     *slog.Logger
}

// New creates an article Fetcher restricted to prefix.
func New(prefix string, fetcher core.Fetcher, extractor core.Extractor, normalizer core.Normalizer, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		prefix:     prefix,
		fetcher:    fetcher,
		extractor:  extractor,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Prefix returns the trusted URL prefix.
func (f *Fetcher) Prefix() string { return f.prefix }

// Fetch downloads the article at rawURL and returns it as <p> segments.
// Untrusted URLs are rejected before any network call.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if !IsTrusted(rawURL, f.prefix) {
		return "", fmt.Errorf("%w: %s does not start with %s", core.ErrUntrustedSource, rawURL, f.prefix)
	}
	rawURL = NormalizeURL(rawURL)

	// 1. Fetch
	res, err := f.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrDownload, err)
	}
	if strings.TrimSpace(res.HTML) == "" {
		return "", fmt.Errorf("%w: empty response from %s", core.ErrDownload, rawURL)
	}

	// 2. Extract main content
	art, err := f.extractor.Extract(res.HTML)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrExtraction, err)
	}

	// 3. Normalize to readable text
	text, err := f.normalizer.Normalize(art.HTML)
	if err != nil {
		return "", fmt.Errorf("%w: %w", core.ErrExtraction, err)
	}

	out := Paragraphs(text)
	if out == "" {
		return "", fmt.Errorf("%w: no readable text at %s", core.ErrExtraction, rawURL)
	}

	f.logger.DebugContext(ctx, "article extracted",
		"url", rawURL,
		"title", art.Title,
		"chars", len(out),
	)
	return out, nil
}

var blankRuns = regexp.MustCompile(`\n[ \t]*(?:\n[ \t]*)+`)

// Paragraphs collapses runs of blank lines, wraps each block in <p>…</p>,
// drops empty segments and joins the rest with single newlines.
func Paragraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")

	blocks := strings.Split(text, "\n\n")
	segments := make([]string, 0, len(blocks))
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		segments = append(segments, "<p>"+b+"</p>")
	}
	return strings.Join(segments, "\n")
}
