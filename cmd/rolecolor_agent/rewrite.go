package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/rolecolor-agent/internal/observability"
	"github.com/jonathan/rolecolor-agent/internal/rewriting"
	"github.com/jonathan/rolecolor-agent/internal/scoring"
	"github.com/spf13/cobra"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Generate a role-aligned professional summary",
	Long:  "Scores the resume, then asks the generative model to write a professional summary in the voice of the dominant RoleColor.",
	RunE:  runRewrite,
}

var (
	rewriteInput    string
	rewriteURL      string
	rewriteOriginal string
	rewriteOutput   string
	rewriteAPIKey   string
)

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteInput, "in", "i", "", "Path to resume file (mutually exclusive with --url)")
	rewriteCmd.Flags().StringVar(&rewriteURL, "url", "", "URL to fetch the resume from (mutually exclusive with --in)")
	rewriteCmd.Flags().StringVar(&rewriteOriginal, "original", "", "Path to an existing summary to enhance (optional)")
	rewriteCmd.Flags().StringVarP(&rewriteOutput, "out", "o", "", "Path to output summary text file (optional)")
	rewriteCmd.Flags().StringVar(&rewriteAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	rootCmd.AddCommand(rewriteCmd)
}

func runRewrite(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := rewriteAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	text, err := ingestResumeText(ctx, rewriteInput, rewriteURL)
	if err != nil {
		return err
	}

	originalSummary := ""
	if rewriteOriginal != "" {
		content, err := os.ReadFile(rewriteOriginal)
		if err != nil {
			return fmt.Errorf("failed to read original summary file: %w", err)
		}
		originalSummary = string(content)
	}

	engine := scoring.NewEngine(nil)
	score := engine.Score(text)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintScoreResult(score)

	summary, err := rewriting.RewriteSummary(ctx, text, score, originalSummary, apiKey)
	if err != nil {
		var apiErr *rewriting.APICallError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("summary generation failed: %w", err)
		}
		return fmt.Errorf("failed to generate summary: %w", err)
	}

	printer.PrintSummary(summary)

	if rewriteOutput == "" {
		return nil
	}

	outputDir := filepath.Dir(rewriteOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(rewriteOutput, []byte(summary+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write summary to output file: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", rewriteOutput)
	return nil
}
