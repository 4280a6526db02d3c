package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/logger"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

type extractOptions struct {
	outDir      string
	output      string
	concurrency int
	verbose     bool
}

func newExtractCmd(root *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract FILE...",
		Short: "Extract normalized text from resume files",
		Long: `Extract normalized text from one or more resume files (.pdf, .docx, .txt, .tex).

The file extension selects the decoder. Extracted text is printed to stdout, or
written as <file>.txt and <file>.meta.json when --out is given. With --output json
each document is printed as a JSON record validated against the extraction-result
schema. Files are processed concurrently; a failing file does not stop the others,
but makes the command exit non-zero.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.outDir, "out", "o", "", "Output directory (prints to stdout when empty)")
	cmd.Flags().StringVar(&opts.output, "output", config.OutputText, "Output mode: text or json")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "c", 0, "Files extracted in parallel (default from config)")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print a summary box per document to stderr")

	return cmd
}

// fileOutcome is the result of ingesting one path
type fileOutcome struct {
	path string
	doc  *ingestion.Document
	err  error
}

func runExtract(cmd *cobra.Command, root *rootOptions, opts *extractOptions, paths []string) error {
	cfg, err := root.loadConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("out") {
		cfg.OutDir = opts.outDir
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = opts.output
	}
	if cmd.Flags().Changed("concurrency") {
		if opts.concurrency < 1 {
			return fmt.Errorf("--concurrency must be at least 1")
		}
		cfg.Concurrency = opts.concurrency
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", cfg.Concurrency)
	}

	log := logger.NewForWriter(cmd.ErrOrStderr(), cfg.JSONLogs, cfg.Debug)
	defer func() { _ = log.Sync() }()

	svc := extraction.NewService(extraction.WithLogger(log))
	limits := ingestion.Limits{MaxFileSize: cfg.MaxFileSize, MinTextLength: cfg.MinTextLength}

	outcomes := make([]fileOutcome, len(paths))
	ctx := cmd.Context()

	var g errgroup.Group
	g.SetLimit(cfg.Concurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			doc, err := ingestion.IngestFile(ctx, svc, path, limits)
			outcomes[i] = fileOutcome{path: path, doc: doc, err: err}
			if err != nil {
				log.Warn("file failed", zap.String("path", path), zap.Error(err))
				return nil
			}
			log.Info("file extracted",
				zap.String("path", path),
				zap.String("id", doc.ID.String()),
				zap.Int("chars", len([]rune(doc.Text))),
			)
			log.Debug("text preview", zap.String("path", path), zap.String("preview", logger.TruncateForLog(doc.Text, 80)))
			return nil
		})
	}
	// per-file failures are recorded in outcomes, never returned
	_ = g.Wait()

	return reportOutcomes(cmd, cfg, opts.verbose, outcomes)
}

func reportOutcomes(cmd *cobra.Command, cfg config.Config, verbose bool, outcomes []fileOutcome) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	printer := observability.NewPrinter(errOut)

	failures := map[string]string{}
	order := make([]string, 0, len(outcomes))
	succeeded := 0

	for _, o := range outcomes {
		name := filepath.Base(o.path)
		order = append(order, name)

		if o.err != nil {
			failures[name] = o.err.Error()
			_, _ = fmt.Fprintf(errOut, "Error: %s: %v\n", o.path, o.err)
			continue
		}

		if verbose {
			printer.PrintDocument(o.doc)
			printer.PrintLinks(o.doc)
			printer.PrintWarnings(o.doc)
		}

		if err := emitDocument(out, cfg, o.doc, len(outcomes) > 1, succeeded == 0); err != nil {
			return err
		}
		succeeded++
	}

	if verbose && len(outcomes) > 1 {
		printer.PrintBatchSummary(len(outcomes), failures, order)
	}

	if len(failures) > 0 {
		return fmt.Errorf("%d of %d files failed", len(failures), len(outcomes))
	}
	return nil
}

// emitDocument writes one document according to the configured output mode.
// Text written for a multi-file run is headed by the file name.
func emitDocument(out io.Writer, cfg config.Config, doc *ingestion.Document, multi, first bool) error {
	if cfg.OutDir != "" {
		if err := ingestion.WriteOutput(cfg.OutDir, doc); err != nil {
			return fmt.Errorf("failed to write output for %s: %w", doc.FileName, err)
		}
		textPath, metaPath := ingestion.OutputPaths(cfg.OutDir, doc)
		_, _ = fmt.Fprintf(out, "Extracted text: %s\n", textPath)
		_, _ = fmt.Fprintf(out, "Metadata: %s\n", metaPath)
		return nil
	}

	if cfg.Output == config.OutputJSON {
		data, err := doc.ToJSON()
		if err != nil {
			return err
		}
		if err := schemas.ValidateDocument(data); err != nil {
			return fmt.Errorf("output for %s failed schema validation: %w", doc.FileName, err)
		}
		_, _ = fmt.Fprintf(out, "%s\n", data)
		return nil
	}

	if multi {
		if !first {
			_, _ = fmt.Fprintln(out)
		}
		_, _ = fmt.Fprintf(out, "==> %s <==\n", doc.FileName)
	}
	_, _ = fmt.Fprintf(out, "%s\n", doc.Text)
	return nil
}
