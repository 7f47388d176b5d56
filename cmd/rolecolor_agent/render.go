package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/rolecolor-agent/internal/observability"
	"github.com/jonathan/rolecolor-agent/internal/rendering"
	"github.com/jonathan/rolecolor-agent/internal/types"
	"github.com/jonathan/rolecolor-agent/internal/validation"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render structured fields into a LaTeX resume",
	Long:  "Substitutes structured resume fields into a versioned LaTeX template with the accent color of the given RoleColor, then checks the document structure.",
	RunE:  runRender,
}

var (
	renderFieldsFile string
	renderRole       string
	renderTemplate   string
	renderOutput     string
)

func init() {
	renderCmd.Flags().StringVarP(&renderFieldsFile, "fields", "f", "", "Path to StructuredFields JSON file (required)")
	renderCmd.Flags().StringVarP(&renderRole, "role", "r", "", "RoleColor for accents: Builder, Enabler, Thriver, or Supportee (required)")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", rendering.TemplateFull, "Template ID")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output .tex file (required)")

	if err := renderCmd.MarkFlagRequired("fields"); err != nil {
		panic(fmt.Sprintf("failed to mark fields flag as required: %v", err))
	}
	if err := renderCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}
	if err := renderCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(_ *cobra.Command, _ []string) error {
	content, err := os.ReadFile(renderFieldsFile)
	if err != nil {
		return fmt.Errorf("failed to read fields file: %w", err)
	}

	var fields types.StructuredFields
	if err := json.Unmarshal(content, &fields); err != nil {
		return fmt.Errorf("failed to unmarshal fields JSON: %w", err)
	}

	role, err := types.ParseRoleColor(renderRole)
	if err != nil {
		return err
	}

	document, err := rendering.Render(renderTemplate, role, &fields)
	if err != nil {
		var tmplErr *rendering.TemplateError
		var renderErr *rendering.RenderError
		if errors.As(err, &tmplErr) || errors.As(err, &renderErr) {
			return fmt.Errorf("rendering failed: %w", err)
		}
		return fmt.Errorf("failed to render document: %w", err)
	}

	outputDir := filepath.Dir(renderOutput)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(renderOutput, []byte(document), 0644); err != nil {
		return fmt.Errorf("failed to write document to output file: %w", err)
	}

	// Structural check on the rendered output (non-fatal for warnings)
	report := validation.CheckStructure(document)
	printer := observability.NewPrinter(os.Stdout)
	printer.PrintValidationReport(report)

	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", renderOutput)

	if !report.Valid {
		return fmt.Errorf("rendered document has %d structural error(s)", len(report.Errors))
	}
	return nil
}
