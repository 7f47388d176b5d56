// Package main implements the rolecolor_agent CLI for RoleColor resume analysis.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/rolecolor-agent/internal/ingestion"
	"github.com/jonathan/rolecolor-agent/internal/observability"
	"github.com/jonathan/rolecolor-agent/internal/schemas"
	"github.com/jonathan/rolecolor-agent/internal/scoring"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume against the RoleColor lexicon",
	Long:  "Scores resume text against the four RoleColor archetypes and reports the normalized distribution, dominant role, and top matched keywords.",
	RunE:  runScore,
}

var (
	scoreInput  string
	scoreURL    string
	scoreTopN   int
	scoreOutput string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreInput, "in", "i", "", "Path to resume file (txt, md, or html)")
	scoreCmd.Flags().StringVar(&scoreURL, "url", "", "URL to fetch the resume from (mutually exclusive with --in)")
	scoreCmd.Flags().IntVar(&scoreTopN, "top", 10, "Number of top keywords to report")
	scoreCmd.Flags().StringVarP(&scoreOutput, "out", "o", "", "Path to output ScoreResult JSON file (optional)")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	text, err := ingestResumeText(context.Background(), scoreInput, scoreURL)
	if err != nil {
		return err
	}

	engine := scoring.NewEngine(nil)
	result := engine.Score(text)
	keywords := scoring.TopKeywords(result, scoreTopN)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintScoreResult(result)
	printer.PrintTopKeywords(keywords)

	if scoreOutput == "" {
		return nil
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(scoreOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal score result to JSON: %w", err)
	}

	if err := os.WriteFile(scoreOutput, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write score result to output file: %w", err)
	}

	// Validate output against schema (non-fatal)
	schemaPath := schemas.ResolveSchemaPath("schemas/score_result.schema.json")
	if schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, scoreOutput); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Generated score result does not validate against schema: %v\n", err)
			} else {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
			}
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", scoreOutput)
	return nil
}

// ingestResumeText loads and cleans resume text from a file or URL.
// Exactly one source must be provided.
func ingestResumeText(ctx context.Context, path, url string) (string, error) {
	if path == "" && url == "" {
		return "", fmt.Errorf("either --in or --url must be provided")
	}
	if path != "" && url != "" {
		return "", fmt.Errorf("--in and --url are mutually exclusive; provide only one")
	}

	if url != "" {
		text, _, err := ingestion.IngestFromURL(ctx, url)
		if err != nil {
			return "", fmt.Errorf("failed to ingest resume from URL: %w", err)
		}
		return text, nil
	}

	text, _, err := ingestion.IngestFromFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to ingest resume file: %w", err)
	}
	return text, nil
}
