// Package cmd — audit command.
// This is the main command that orchestrates the pipeline:
// decode → audit (resolve → extract → probe → aggregate) → enrich →
// render → write.
//
// It handles flag validation, renderer selection, and the per-document
// progress output.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/auditpipe/batch"
	"github.com/gaurav-prasanna/auditpipe/core"
	"github.com/gaurav-prasanna/auditpipe/core/enrich"
	"github.com/gaurav-prasanna/auditpipe/core/output"
	"github.com/gaurav-prasanna/auditpipe/core/render"
)

// Flag variables.
var (
	flagText        bool
	flagJSON        bool
	flagMarkdown    bool
	flagPDF         bool
	flagEnrich      bool
	flagModel       string
	flagHFURL       string
	flagTimeout     time.Duration
	flagLinkWorkers int
	flagDocWorkers  int
	flagRPS         float64
	flagOutputDir   string
	flagConfig      string
	flagVerbose     bool
)

var auditCmd = &cobra.Command{
	Use:   "audit <batch.json>",
	Short: "Audit a batch of HTML documents",
	Long: `Audit reads a JSON batch file (a list of documents or a single document,
each carrying page_html and optionally base_url and label), audits every
document, and writes one report artifact per document.

Examples:
  auditpipe audit pages.json
  auditpipe audit pages.json --json --output_dir ./out
  auditpipe audit pages.json --enrich --model mistralai/Mistral-7B-Instruct-v0.2
  auditpipe audit pages.json --timeout 5s --link_workers 16 --doc_workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	// Output format flags (mutually exclusive; text is the default).
	auditCmd.Flags().BoolVar(&flagText, "text", false, "Output plain text (default)")
	auditCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	auditCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	auditCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")

	// Enrichment flags.
	auditCmd.Flags().BoolVar(&flagEnrich, "enrich", false, "Request a model advisory for each report")
	auditCmd.Flags().StringVar(&flagModel, "model", "", "Text-generation model (requires --enrich)")
	auditCmd.Flags().StringVar(&flagHFURL, "hf_url", "", "Inference endpoint override (requires --enrich)")

	// Audit tuning.
	auditCmd.Flags().DurationVar(&flagTimeout, "timeout", 10*time.Second, "Per-request probe timeout")
	auditCmd.Flags().IntVar(&flagLinkWorkers, "link_workers", 8, "Max in-flight probes per document")
	auditCmd.Flags().IntVar(&flagDocWorkers, "doc_workers", 4, "Max documents audited at once")
	auditCmd.Flags().Float64Var(&flagRPS, "rps", 0, "Probe rate limit in requests/second (0 = unlimited)")

	auditCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	auditCmd.Flags().StringVar(&flagConfig, "config", "", "YAML config file with flag defaults")
	auditCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

func runAudit(cmd *cobra.Command, args []string) error {
	if err := validateFlags(); err != nil {
		return err
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Verbose)
	renderer := selectRenderer()

	// Decode the batch input up front so input errors fail fast.
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening batch file: %w", err)
	}
	docs, err := batch.DecodeDocuments(f)
	f.Close()
	if err != nil {
		return err
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	runner := batch.New(batch.Config{
		RequestTimeout: cfg.Timeout,
		LinkWorkers:    cfg.LinkWorkers,
		DocWorkers:     cfg.DocWorkers,
		ProbeRPS:       cfg.RPS,
	}, logger)

	var enricher core.Enricher
	if cfg.Enrich {
		enricher = enrich.New(cfg.HFURL, cfg.Model, logger)
	}

	ctx := context.Background()

	fmt.Fprintf(os.Stdout, "Auditing %d document(s) from %s\n", len(docs), args[0])

	outcomes, err := runner.Run(ctx, docs)
	if err != nil {
		return err
	}

	var failed int
	for i, outcome := range outcomes {
		if outcome.Failure != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] ✗ %s\n", i+1, len(outcomes), outcome.Failure.Reason)
			failed++
			continue
		}

		artifact := core.Artifact{Report: outcome.Report}
		if enricher != nil {
			advisory, err := enricher.Enrich(ctx, outcome.Report, outcome.Excerpt)
			if err != nil {
				logger.Warn("enrichment failed", "document", i+1, "error", err)
				artifact.AdvisoryErr = err.Error()
			} else {
				artifact.Advisory = advisory
			}
		}

		data, err := renderer.Render(artifact)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] ✗ Render error: %v\n", i+1, len(outcomes), err)
			failed++
			continue
		}

		path, err := writer.Write(i+1, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(os.Stderr, "[%d/%d] ✗ Write error: %v\n", i+1, len(outcomes), err)
			failed++
			continue
		}
		fmt.Fprintf(os.Stdout, "[%d/%d] ✓ Written: %s\n", i+1, len(outcomes), path)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "\n%d/%d documents failed\n", failed, len(outcomes))
	}
	return nil
}

// validateFlags checks that at most one output format is chosen and
// that the enrichment flags are consistent.
func validateFlags() error {
	formatCount := 0
	if flagText {
		formatCount++
	}
	if flagJSON {
		formatCount++
	}
	if flagMarkdown {
		formatCount++
	}
	if flagPDF {
		formatCount++
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if !flagEnrich && flagModel != "" {
		return fmt.Errorf("--model requires --enrich")
	}
	if !flagEnrich && flagHFURL != "" {
		return fmt.Errorf("--hf_url requires --enrich")
	}

	return nil
}

// selectRenderer creates the Renderer for the chosen format. Text is
// the default when no format flag is given.
func selectRenderer() core.Renderer {
	switch {
	case flagJSON:
		return render.NewJSONRenderer()
	case flagMarkdown:
		return render.NewMarkdownRenderer()
	case flagPDF:
		return render.NewPDFRenderer()
	default:
		return render.NewTextRenderer()
	}
}
