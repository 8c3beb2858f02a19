package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score one or more résumés against a job description",
	Long: `Score plain-text résumés against a job description read from a file or URL.

A single --resume writes one analysis object. Repeating --resume scores every
résumé concurrently and writes an array in the same order.`,
	RunE: runAnalyze,
}

var (
	analyzeResumes    []string
	analyzeJD         string
	analyzeJDURL      string
	analyzeOut        string
	analyzeUseBrowser bool
)

func init() {
	analyzeCmd.Flags().StringArrayVarP(&analyzeResumes, "resume", "r", nil, "Path to a plain-text résumé (repeatable, required)")
	analyzeCmd.Flags().StringVarP(&analyzeJD, "jd", "j", "", "Path to a plain-text job description")
	analyzeCmd.Flags().StringVarP(&analyzeJDURL, "jd-url", "u", "", "URL of a job posting")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Output JSON file (default stdout)")
	analyzeCmd.Flags().BoolVar(&analyzeUseBrowser, "use-browser", false, "Render --jd-url in headless Chrome when the page is mostly script")

	_ = analyzeCmd.MarkFlagRequired("resume")
	analyzeCmd.MarkFlagsMutuallyExclusive("jd", "jd-url")
	analyzeCmd.MarkFlagsOneRequired("jd", "jd-url")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	jdText, err := readJD(ctx, logger)
	if err != nil {
		return err
	}

	resumes := make([]string, 0, len(analyzeResumes))
	for _, path := range analyzeResumes {
		text, _, err := ingestion.FromFile(path)
		if err != nil {
			return fmt.Errorf("failed to read résumé %s: %w", path, err)
		}
		resumes = append(resumes, text)
	}

	analyzer, err := pipeline.NewAnalyzer(cfg,
		pipeline.WithLogger(logger),
		pipeline.WithProgress(func(ev pipeline.ProgressEvent) {
			logger.Info("analyzed résumé",
				"file", analyzeResumes[ev.Index],
				"done", ev.Index+1,
				"total", ev.Total,
				"score", ev.Score)
		}),
	)
	if err != nil {
		return err
	}

	jd := analyzer.ParseJD(jdText)
	printer := observability.NewPrinter(cmd.ErrOrStderr())
	if verbose {
		printer.PrintJobDescription(jd)
	}

	if len(resumes) == 1 {
		result, breakdown := analyzer.Explain(analyzer.ParseResume(resumes[0]), jd)
		if err := schemas.ValidateAnalysisResult(result); err != nil {
			return fmt.Errorf("analysis failed schema validation: %w", err)
		}
		if verbose {
			printer.PrintAnalysis(&result)
			printer.PrintBreakdown(breakdown)
		}
		return writeJSON(cmd.OutOrStdout(), analyzeOut, result)
	}

	results, err := analyzer.AnalyzeBatch(ctx, resumes, jd)
	if err != nil {
		return err
	}
	for i := range results {
		if err := schemas.ValidateAnalysisResult(results[i]); err != nil {
			return fmt.Errorf("analysis of %s failed schema validation: %w", analyzeResumes[i], err)
		}
		if verbose {
			printer.PrintAnalysis(&results[i])
		}
	}
	return writeJSON(cmd.OutOrStdout(), analyzeOut, results)
}

// readJD loads the job description from --jd or --jd-url.
func readJD(ctx context.Context, logger *slog.Logger) (string, error) {
	if analyzeJD != "" {
		text, _, err := ingestion.FromFile(analyzeJD)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	}

	text, meta, err := ingestion.FromURL(ctx, analyzeJDURL, ingestion.URLOptions{UseBrowser: analyzeUseBrowser, Logger: logger})
	if err != nil {
		return "", fmt.Errorf("failed to fetch job description: %w", err)
	}
	logger.Debug("fetched job description", "url", meta.URL, "platform", meta.Platform, "chars", meta.Chars)
	return text, nil
}
