package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a résumé or job description into structured JSON",
	Long:  "Parse a plain-text résumé or job description into its structured form and validate it against the bundled JSON schema.",
	RunE:  runParse,
}

var (
	parseKind string
	parseIn   string
	parseOut  string
)

func init() {
	parseCmd.Flags().StringVarP(&parseKind, "kind", "k", "", "Document kind: resume or jd (required)")
	parseCmd.Flags().StringVarP(&parseIn, "in", "i", "", "Path to the plain-text input (required)")
	parseCmd.Flags().StringVarP(&parseOut, "out", "o", "", "Output JSON file (default stdout)")

	_ = parseCmd.MarkFlagRequired("kind")
	_ = parseCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	kind, err := types.ParseDocumentKind(parseKind)
	if err != nil {
		return err
	}

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	text, meta, err := ingestion.FromFile(parseIn)
	if err != nil {
		return err
	}
	logger.Debug("read input", "path", meta.Path, "chars", meta.Chars, "hash", meta.Hash)

	analyzer, err := pipeline.NewAnalyzer(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return err
	}

	parsed, err := analyzer.Parse(kind, text)
	if err != nil {
		return err
	}

	printer := observability.NewPrinter(cmd.ErrOrStderr())
	switch v := parsed.(type) {
	case *types.ResumeProfile:
		err = schemas.ValidateResumeProfile(v)
		if verbose {
			printer.PrintResumeProfile(v)
		}
	case *types.JobDescription:
		err = schemas.ValidateJobDescription(v)
		if verbose {
			printer.PrintJobDescription(v)
		}
	}
	if err != nil {
		return fmt.Errorf("parsed %s failed schema validation: %w", kind, err)
	}

	return writeJSON(cmd.OutOrStdout(), parseOut, parsed)
}
