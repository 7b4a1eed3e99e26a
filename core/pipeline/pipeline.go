// Package pipeline sequences one proofreading request through the stages:
// article fetch (URL requests only), normalization, prompt composition, the
// model call, validation, formatting and persistence of the last output.
//
// Any failure stops the run. Nothing is persisted unless every stage
// succeeded.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gaurav-prasanna/proofpipe/core"
	"github.com/gaurav-prasanna/proofpipe/core/normalize"
	"github.com/gaurav-prasanna/proofpipe/core/prompt"
	"github.com/gaurav-prasanna/proofpipe/core/render"
)

// Service runs proofreading requests.
type Service struct {
	template  core.TemplateSource
	articles  core.ArticleSource
	proofer   core.Proofreader
	validator core.Validator
	store     core.ArtifactStore
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithArticles enables URL requests. Without it a URL request fails with
// core.ErrUntrustedSource.
func WithArticles(a core.ArticleSource) Option {
	return func(s *Service) { s.articles = a }
}

// WithStore sets the last-output artifact. Without it results are not
// persisted.
func WithStore(store core.ArtifactStore) Option {
	return func(s *Service) { s.store = store }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service.
func New(template core.TemplateSource, proofer core.Proofreader, validator core.Validator, opts ...Option) *Service {
	s := &Service{
		template:  template,
		proofer:   proofer,
		validator: validator,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one request. A non-empty SourceURL takes precedence over
// RawText.
func (s *Service) Run(ctx context.Context, req core.Request) (core.Result, error) {
	start := time.Now()

	result, err := s.run(ctx, req)
	if err != nil {
		if core.IsRejection(err) {
			s.logger.WarnContext(ctx, "response rejected", "source", result.Source, "error", err)
		} else {
			s.logger.ErrorContext(ctx, "proofreading failed", "source", result.Source, "error", err)
		}
		return core.Result{}, err
	}

	s.logger.InfoContext(ctx, "proofreading complete",
		"source", result.Source,
		"input_chars", len(result.Input),
		"output_chars", len(result.Output),
		"duration", time.Since(start),
	)
	return result, nil
}

func (s *Service) run(ctx context.Context, req core.Request) (core.Result, error) {
	result := core.Result{Source: core.SourceText}
	text := req.RawText

	if url := strings.TrimSpace(req.SourceURL); url != "" {
		result.Source = core.SourceURL
		result.SourceURL = url
		if s.articles == nil {
			return result, fmt.Errorf("%w: article checking is disabled", core.ErrUntrustedSource)
		}
		article, err := s.articles.Fetch(ctx, url)
		if err != nil {
			return result, err
		}
		text = article
	}

	text = normalize.Text(text)
	if text == "" {
		return result, core.ErrEmptyInput
	}
	result.Input = text

	tmpl, err := s.template.Load()
	if err != nil {
		if !errors.Is(err, core.ErrTemplateMissing) {
			err = fmt.Errorf("%w: %w", core.ErrTemplateMissing, err)
		}
		return result, err
	}
	composed := prompt.Compose(tmpl, text)
	s.logger.DebugContext(ctx, "prompt composed", "chars", len(composed))

	raw, err := s.proofer.Proofread(ctx, composed)
	if err != nil {
		if !errors.Is(err, core.ErrUpstream) {
			err = fmt.Errorf("%w: %w", core.ErrUpstream, err)
		}
		return result, err
	}

	outcome := s.validator.Validate(raw, text)
	if !outcome.IsAccepted() {
		return result, outcome.Err()
	}

	result.Output = render.Paragraphs(outcome.Content())

	if s.store != nil {
		if err := s.store.Save(ctx, []byte(result.Output)); err != nil {
			return result, fmt.Errorf("%w: %w", core.ErrPersistence, err)
		}
	}
	return result, nil
}
