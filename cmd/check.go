package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/proofpipe/core"
	"github.com/gaurav-prasanna/proofpipe/internal/log"
)

var (
	flagCheckURL  string
	flagCheckJSON bool
)

var checkCmd = &cobra.Command{
	Use:   "check [file|-]",
	Short: "Proofread a file, stdin, or an article URL once",
	Long: `Check runs one proofreading request and prints the rendered output.
The output also replaces the last-output artifact, exactly as a web request would.

Examples:
  proofpipe check draft.txt
  echo "Their going home." | proofpipe check -
  proofpipe check --url https://www.bbc.com/news/articles/c0000000000o`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&flagCheckURL, "url", "", "Article URL to check instead of text")
	checkCmd.Flags().BoolVar(&flagCheckJSON, "json", false, "Print the full result as JSON")
}

func runCheck(cmd *cobra.Command, args []string) error {
	req := core.Request{SourceURL: flagCheckURL}
	if flagCheckURL == "" {
		if len(args) == 0 {
			return fmt.Errorf("a file, - for stdin, or --url is required")
		}
		text, err := readInput(cmd.InOrStdin(), args[0])
		if err != nil {
			return err
		}
		req.RawText = text
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := log.Configure(cfg).Slog()

	svc, _, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	res, err := svc.Run(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("%s (%w)", core.Message(err), err)
	}

	out := cmd.OutOrStdout()
	if flagCheckJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	_, err = fmt.Fprintln(out, res.Output)
	return err
}

func readInput(stdin io.Reader, name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return string(data), nil
}
