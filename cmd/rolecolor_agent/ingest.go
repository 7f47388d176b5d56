package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/rolecolor-agent/internal/ingestion"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest and clean resume text from a file or URL",
	Long:  "Reads a resume from a local file (txt, md, or html) or a URL, strips markup and noise, and writes the cleaned text plus source metadata.",
	RunE:  runIngest,
}

var (
	ingestInput  string
	ingestURL    string
	ingestOutput string
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestInput, "in", "i", "", "Path to resume file (mutually exclusive with --url)")
	ingestCmd.Flags().StringVar(&ingestURL, "url", "", "URL to fetch the resume from (mutually exclusive with --in)")
	ingestCmd.Flags().StringVarP(&ingestOutput, "out", "o", "", "Path to output cleaned text file (required)")

	if err := ingestCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	if ingestInput == "" && ingestURL == "" {
		return fmt.Errorf("either --in or --url must be provided")
	}
	if ingestInput != "" && ingestURL != "" {
		return fmt.Errorf("--in and --url are mutually exclusive; provide only one")
	}

	var (
		text string
		meta *ingestion.Metadata
		err  error
	)
	if ingestURL != "" {
		text, meta, err = ingestion.IngestFromURL(ctx, ingestURL)
	} else {
		text, meta, err = ingestion.IngestFromFile(ingestInput)
	}
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	outputDir := filepath.Dir(ingestOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(ingestOutput, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write cleaned text: %w", err)
	}

	// Metadata sits next to the cleaned text
	metaPath := ingestOutput + ".meta.json"
	metaBytes, err := meta.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}
	if err := os.WriteFile(metaPath, metaBytes, 0644); err != nil {
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Ingested %d characters (%s)\n", meta.Length, meta.SourceType)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", ingestOutput)
	_, _ = fmt.Fprintf(os.Stdout, "Metadata: %s\n", metaPath)
	return nil
}
