package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/proofpipe/core/render"
	"github.com/gaurav-prasanna/proofpipe/internal/config"
	"github.com/gaurav-prasanna/proofpipe/internal/log"
	"github.com/gaurav-prasanna/proofpipe/server"
)

var (
	flagHost string
	flagPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form and JSON API",
	Long: `Start the HTTP server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                    Server host to bind to (default: 0.0.0.0)
  PORT                    Server port to listen on (default: 8080)
  LOG_LEVEL               Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT              Log format: pretty, json (default: pretty)
  PROMPT_FILE             Prompt template, read on every request (default: prompt.txt)
  RULES_FILE              YAML file overriding the validation rules
  OUTPUT_FILE             Last-output artifact (default: output.html)
  ARTICLE_TRUSTED_PREFIX  Only article URLs with this prefix are fetched
  FETCH_TIMEOUT           Article download timeout (default: 30s)
  LLM_PROVIDER            openai or mock (default: openai)
  OPENAI_API_KEY          API key
  OPENAI_BASE_URL         OpenAI-compatible endpoint
  OPENAI_MODEL            Model name (default: gpt-4)
  OPENAI_TIMEOUT          Model call timeout (default: 60s)
  OUTPUT_S3_*             ENDPOINT, ACCESS_KEY, SECRET_KEY, BUCKET, KEY, REGION, USE_SSL
  CORS_ORIGINS            Comma-separated origins allowed on /api (default: *)`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&flagHost, "host", "", "Server host to bind to (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&flagPort, "port", 0, "Server port to listen on (default: 8080)")
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, flagHost, flagPort)

	logger := log.Configure(cfg).Slog()

	svc, store, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	handler := server.NewHandler(svc, store, render.NewPDFRenderer(), cfg.TrustedPrefix(), logger)
	srv := server.NewServer(cfg.Addr(), handler, cfg.CORSOrigins(), logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("received signal", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}

// applyServeOverrides applies command line flag values over the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption
	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}
	return cfg.Apply(opts...)
}
