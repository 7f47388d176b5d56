// Package compile turns rendered LaTeX documents into PDFs using a local
// pdflatex installation, and inspects the resulting files.
package compile

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Timeout is the maximum time to wait for LaTeX compilation.
const Timeout = 30 * time.Second

// Result describes a completed compilation.
type Result struct {
	PDFPath   string
	LogOutput string
	Pages     int // 0 when page counting was unavailable
}

// Document compiles a LaTeX document string. The document is written to
// name.tex inside workDir (a temporary directory when workDir is empty) and
// compiled there.
func Document(ctx context.Context, document, name, workDir string) (*Result, error) {
	if name == "" {
		name = "resume"
	}

	workDir, err := ensureWorkDir(workDir)
	if err != nil {
		return nil, err
	}

	texPath := filepath.Join(workDir, name+".tex")
	if err := os.WriteFile(texPath, []byte(document), 0644); err != nil {
		return nil, &CompilationError{
			Message: fmt.Sprintf("failed to write LaTeX file: %s", texPath),
			Cause:   err,
		}
	}

	return File(ctx, texPath, workDir)
}

// File compiles a LaTeX file with pdflatex. Output lands next to the source
// in workDir. A Result is returned even on compilation errors when pdflatex
// still produced a PDF.
func File(ctx context.Context, texPath, workDir string) (*Result, error) {
	if _, err := exec.LookPath("pdflatex"); err != nil {
		return nil, &ToolError{
			Message: "pdflatex not found in PATH, install a LaTeX distribution (TeX Live, MiKTeX)",
			Cause:   err,
		}
	}

	workDir, err := ensureWorkDir(workDir)
	if err != nil {
		return nil, err
	}

	texBaseName := filepath.Base(texPath)
	workTexPath := filepath.Join(workDir, texBaseName)
	if texPath != workTexPath {
		content, err := os.ReadFile(texPath)
		if err != nil {
			return nil, &CompilationError{
				Message: fmt.Sprintf("failed to read LaTeX file: %s", texPath),
				Cause:   err,
			}
		}
		if err := os.WriteFile(workTexPath, content, 0644); err != nil {
			return nil, &CompilationError{
				Message: fmt.Sprintf("failed to stage LaTeX file in: %s", workDir),
				Cause:   err,
			}
		}
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	// nonstopmode prevents pdflatex from blocking on interactive prompts.
	cmd := exec.CommandContext(ctx, "pdflatex", "-interaction=nonstopmode", "-output-directory", workDir, workTexPath)

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()

	logOutput := stdout.String() + stderr.String()

	pdfPath := filepath.Join(workDir, strings.TrimSuffix(texBaseName, ".tex")+".pdf")
	if _, err := os.Stat(pdfPath); os.IsNotExist(err) {
		return nil, &CompilationError{
			Message:   "compilation failed: PDF was not generated",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	result := &Result{PDFPath: pdfPath, LogOutput: logOutput}
	if pages, err := CountPDFPages(pdfPath); err == nil {
		result.Pages = pages
	}

	// LaTeX can produce a PDF even when it reports errors. Surface the error
	// but hand back the result too.
	if runErr != nil {
		return result, &CompilationError{
			Message:   "compilation completed with errors (PDF may be incomplete)",
			LogOutput: logOutput,
			Cause:     runErr,
		}
	}

	return result, nil
}

// Cleanup removes compilation artifacts. Directories created by this package
// are removed entirely; for caller-owned directories only the auxiliary
// files are dropped.
func Cleanup(workDir string) error {
	if workDir == "" {
		return nil
	}

	if strings.Contains(workDir, "rolecolor-compile-") {
		return os.RemoveAll(workDir)
	}

	entries, err := os.ReadDir(workDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		switch filepath.Ext(entry.Name()) {
		case ".aux", ".log", ".out", ".toc":
			_ = os.Remove(filepath.Join(workDir, entry.Name()))
		}
	}
	return nil
}

// ensureWorkDir creates workDir, or a fresh temporary directory when empty.
func ensureWorkDir(workDir string) (string, error) {
	if workDir == "" {
		dir, err := os.MkdirTemp("", "rolecolor-compile-*")
		if err != nil {
			return "", &CompilationError{
				Message: "failed to create temporary working directory",
				Cause:   err,
			}
		}
		return dir, nil
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return "", &CompilationError{
			Message: fmt.Sprintf("failed to create working directory: %s", workDir),
			Cause:   err,
		}
	}
	return workDir, nil
}
