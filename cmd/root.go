// Package cmd implements the CLI commands for ProofPipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/proofpipe/internal/config"
)

var flagEnvFile string

var rootCmd = &cobra.Command{
	Use:   "proofpipe",
	Short: "ProofPipe: proofread text and news articles with a language model",
	Long: `ProofPipe sends text, or an article from a trusted news site, to a language
model for proofreading and only shows the answer when it passes validation.

Usage:
  proofpipe serve [flags]
  proofpipe check [file|-] [--url URL]
  proofpipe export --pdf|--json|--html [--output_dir DIR]`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "Path to .env file (default: .env in current directory)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig() (config.AppConfig, error) {
	cfg, err := config.LoadConfig(flagEnvFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
