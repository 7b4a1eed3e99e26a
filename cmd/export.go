package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/proofpipe/core"
	"github.com/gaurav-prasanna/proofpipe/core/output"
	"github.com/gaurav-prasanna/proofpipe/core/render"
)

var (
	flagPDF       bool
	flagJSON      bool
	flagHTML      bool
	flagOutputDir string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the last output as PDF, JSON, or HTML",
	Long: `Export reads the last-output artifact and converts it to the specified format.

Examples:
  proofpipe export --pdf
  proofpipe export --json --output_dir ./out`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	// Output format flags (mutually exclusive).
	exportCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	exportCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	exportCmd.Flags().BoolVar(&flagHTML, "html", false, "Output a standalone HTML page")

	exportCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runExport(cmd *cobra.Command, args []string) error {
	renderer, err := selectRenderer(flagPDF, flagJSON, flagHTML)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := newStore(cfg)
	if err != nil {
		return err
	}

	data, err := store.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("loading %s: %w", store.Location(), err)
	}

	rendered, err := renderer.Render(string(data), core.ExportMetadata{
		Location:   store.Location(),
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	path, err := writer.Write(store.Location(), rendered, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	return nil
}

// selectRenderer returns the renderer for the single chosen format.
func selectRenderer(pdf, json, html bool) (core.Renderer, error) {
	count := 0
	for _, set := range []bool{pdf, json, html} {
		if set {
			count++
		}
	}
	if count == 0 {
		return nil, fmt.Errorf("exactly one output format is required: --pdf, --json, or --html")
	}
	if count > 1 {
		return nil, fmt.Errorf("only one output format allowed per run (got %d)", count)
	}

	switch {
	case pdf:
		return render.NewPDFRenderer(), nil
	case json:
		return render.NewJSONRenderer(), nil
	default:
		return render.NewHTMLRenderer(), nil
	}
}
