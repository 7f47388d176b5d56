package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jonathan/rolecolor-agent/internal/compile"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile",
	Short: "Compile a LaTeX resume to PDF",
	Long:  "Compiles a .tex file to PDF with pdflatex and reports the page count. Requires pdflatex on PATH.",
	RunE:  runCompileCmd,
}

var (
	compileInput   string
	compileWorkDir string
	compileKeepAux bool
)

func init() {
	compileCmd.Flags().StringVarP(&compileInput, "in", "i", "", "Path to .tex file (required)")
	compileCmd.Flags().StringVarP(&compileWorkDir, "work-dir", "w", "", "Directory for compilation output (defaults to a temp dir)")
	compileCmd.Flags().BoolVar(&compileKeepAux, "keep-aux", false, "Keep auxiliary files (.aux, .log, .out, .toc)")

	if err := compileCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(compileCmd)
}

func runCompileCmd(_ *cobra.Command, _ []string) error {
	if _, err := os.Stat(compileInput); os.IsNotExist(err) {
		return fmt.Errorf("LaTeX file not found: %s", compileInput)
	}

	result, err := compile.File(context.Background(), compileInput, compileWorkDir)
	if err != nil {
		var toolErr *compile.ToolError
		if errors.As(err, &toolErr) {
			return fmt.Errorf("compilation tooling unavailable: %w", err)
		}
		var compErr *compile.CompilationError
		if errors.As(err, &compErr) && result != nil {
			// Partial success: the PDF exists despite LaTeX warnings
			_, _ = fmt.Fprintf(os.Stderr, "Warning: compilation finished with errors: %v\n", err)
		} else {
			return fmt.Errorf("compilation failed: %w", err)
		}
	}

	if !compileKeepAux && compileWorkDir != "" {
		if err := compile.Cleanup(compileWorkDir); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: cleanup failed: %v\n", err)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "PDF: %s\n", result.PDFPath)
	if result.Pages > 0 {
		_, _ = fmt.Fprintf(os.Stdout, "Pages: %d\n", result.Pages)
	}
	return nil
}
