package cmd

import (
	"fmt"
	"log/slog"

	"github.com/gaurav-prasanna/proofpipe/core"
	"github.com/gaurav-prasanna/proofpipe/core/article"
	"github.com/gaurav-prasanna/proofpipe/core/extract"
	"github.com/gaurav-prasanna/proofpipe/core/fetch"
	"github.com/gaurav-prasanna/proofpipe/core/normalize"
	"github.com/gaurav-prasanna/proofpipe/core/output"
	"github.com/gaurav-prasanna/proofpipe/core/pipeline"
	"github.com/gaurav-prasanna/proofpipe/core/prompt"
	"github.com/gaurav-prasanna/proofpipe/core/proofread"
	"github.com/gaurav-prasanna/proofpipe/core/validate"
	"github.com/gaurav-prasanna/proofpipe/internal/config"
)

// newStore selects the artifact backend.
func newStore(cfg config.AppConfig) (core.ArtifactStore, error) {
	s3 := cfg.S3()
	if !s3.IsConfigured() {
		return output.NewFileStore(cfg.OutputFile()), nil
	}
	store, err := output.NewS3Store(output.S3Config{
		Endpoint:  s3.Endpoint(),
		AccessKey: s3.AccessKey(),
		SecretKey: s3.SecretKey(),
		Bucket:    s3.Bucket(),
		Key:       s3.Key(),
		Region:    s3.Region(),
		UseSSL:    s3.UseSSL(),
	})
	if err != nil {
		return nil, fmt.Errorf("output store: %w", err)
	}
	return store, nil
}

func newProofreader(cfg config.AppConfig, logger *slog.Logger) core.Proofreader {
	if cfg.Provider() == config.ProviderMock {
		logger.Warn("using mock proofreader, text is returned unchanged")
		return proofread.MockProofreader{}
	}
	o := cfg.OpenAI()
	return proofread.NewOpenAI(proofread.Config{
		APIKey:  o.APIKey(),
		BaseURL: o.BaseURL(),
		Model:   o.Model(),
		Timeout: o.Timeout(),
	}, logger)
}

// newService builds the pipeline and its artifact store from cfg.
func newService(cfg config.AppConfig, logger *slog.Logger) (*pipeline.Service, core.ArtifactStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	rules, err := validate.LoadRules(cfg.RulesFile())
	if err != nil {
		return nil, nil, err
	}

	store, err := newStore(cfg)
	if err != nil {
		return nil, nil, err
	}

	articles := article.New(
		cfg.TrustedPrefix(),
		fetch.New(cfg.FetchTimeout()),
		extract.New(),
		normalize.New(),
		logger,
	)

	svc := pipeline.New(
		prompt.FileTemplate{Path: cfg.PromptFile()},
		newProofreader(cfg, logger),
		validate.New(rules),
		pipeline.WithArticles(articles),
		pipeline.WithStore(store),
		pipeline.WithLogger(logger),
	)

	logger.Debug("pipeline ready",
		"provider", cfg.Provider(),
		"prompt_file", cfg.PromptFile(),
		"trusted_prefix", cfg.TrustedPrefix(),
		"output", store.Location(),
	)
	return svc, store, nil
}
