package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/rolecolor-agent/internal/extraction"
	"github.com/jonathan/rolecolor-agent/internal/schemas"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract structured resume fields via the generative model",
	Long:  "Sends resume text to the generative model and extracts name, contact, summary, experience, skills, and education as LaTeX-ready structured fields.",
	RunE:  runExtract,
}

var (
	extractInput  string
	extractURL    string
	extractOutput string
	extractAPIKey string
)

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "in", "i", "", "Path to resume file (mutually exclusive with --url)")
	extractCmd.Flags().StringVar(&extractURL, "url", "", "URL to fetch the resume from (mutually exclusive with --in)")
	extractCmd.Flags().StringVarP(&extractOutput, "out", "o", "", "Path to output StructuredFields JSON file (required)")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	if err := extractCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := extractAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	text, err := ingestResumeText(ctx, extractInput, extractURL)
	if err != nil {
		return err
	}

	fields, err := extraction.ExtractFields(ctx, text, apiKey)
	if err != nil {
		var apiErr *extraction.APICallError
		var parseErr *extraction.ParseError
		if errors.As(err, &apiErr) || errors.As(err, &parseErr) {
			return fmt.Errorf("extraction failed: %w", err)
		}
		return fmt.Errorf("failed to extract fields: %w", err)
	}

	// Ensure output directory exists
	outputDir := filepath.Dir(extractOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	jsonBytes, err := json.MarshalIndent(fields, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal fields to JSON: %w", err)
	}

	if err := os.WriteFile(extractOutput, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write fields to output file: %w", err)
	}

	// Validate output against schema (non-fatal)
	schemaPath := schemas.ResolveSchemaPath("schemas/structured_fields.schema.json")
	if schemaPath != "" {
		if err := schemas.ValidateJSON(schemaPath, extractOutput); err != nil {
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Generated fields do not validate against schema: %v\n", err)
			} else {
				_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate output against schema: %v\n", err)
			}
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Extracted fields for: %s\n", fields.Name)
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", extractOutput)
	return nil
}
