package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/rolecolor-agent/internal/observability"
	"github.com/jonathan/rolecolor-agent/internal/validation"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the structure of a LaTeX resume",
	Long:  "Checks a LaTeX file for required document markers, balanced braces, matched environments, and line-break style issues.",
	RunE:  runValidate,
}

var validateInput string

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to LaTeX file (required)")

	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, _ []string) error {
	report, err := validation.ValidateFile(validateInput)
	if err != nil {
		var fileErr *validation.FileReadError
		if errors.As(err, &fileErr) {
			return fmt.Errorf("validation failed: %w", err)
		}
		return fmt.Errorf("failed to validate LaTeX file: %w", err)
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintValidationReport(report)

	if !report.Valid {
		// Exit non-zero so scripts can gate on structure errors
		return fmt.Errorf("validation found %d error(s)", len(report.Errors))
	}

	_, _ = fmt.Fprintf(os.Stdout, "Validation passed\n")
	return nil
}
