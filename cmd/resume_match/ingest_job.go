package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

var ingestJobCmd = &cobra.Command{
	Use:   "ingest-job",
	Short: "Ingest a job posting from a text file or URL",
	Long:  "Ingest a job posting from either a text file or URL, clean the content, and output cleaned text with metadata.",
	RunE:  runIngestJob,
}

var (
	textFile      string
	urlStr        string
	outDir        string
	ingestName    string
	ingestBrowser bool
)

func init() {
	ingestJobCmd.Flags().StringVarP(&textFile, "text-file", "t", "", "Path to text file containing job posting")
	ingestJobCmd.Flags().StringVarP(&urlStr, "url", "u", "", "URL to fetch job posting from")
	ingestJobCmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (required)")
	ingestJobCmd.Flags().StringVar(&ingestName, "name", "job_posting", "Base name of the output files")
	ingestJobCmd.Flags().BoolVar(&ingestBrowser, "use-browser", false, "Render the URL in headless Chrome when the page is mostly script")

	_ = ingestJobCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(ingestJobCmd)
}

func runIngestJob(cmd *cobra.Command, _ []string) error {
	// Validate mutually exclusive flags
	if textFile == "" && urlStr == "" {
		return fmt.Errorf("either --text-file or --url must be provided")
	}
	if textFile != "" && urlStr != "" {
		return fmt.Errorf("--text-file and --url are mutually exclusive; provide only one")
	}

	_, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	var cleanedText string
	var metadata *ingestion.Metadata

	if textFile != "" {
		cleanedText, metadata, err = ingestion.FromFile(textFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
	} else {
		cleanedText, metadata, err = ingestion.FromURL(cmd.Context(), urlStr, ingestion.URLOptions{
			UseBrowser: ingestBrowser,
			Logger:     logger,
		})
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
	}

	if err := ingestion.WriteOutput(outDir, ingestName, cleanedText, metadata); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Successfully ingested job posting\n")
	fmt.Fprintf(out, "Cleaned text: %s\n", filepath.Join(outDir, ingestName+".cleaned.txt"))
	fmt.Fprintf(out, "Metadata: %s\n", filepath.Join(outDir, ingestName+".meta.json"))

	return nil
}
