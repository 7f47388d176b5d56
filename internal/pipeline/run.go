// Package pipeline provides the high-level orchestration for the resume
// analysis process: ingest, score, rewrite and extract, render, validate,
// and optionally compile and persist.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/rolecolor-agent/internal/compile"
	"github.com/jonathan/rolecolor-agent/internal/db"
	"github.com/jonathan/rolecolor-agent/internal/extraction"
	"github.com/jonathan/rolecolor-agent/internal/ingestion"
	"github.com/jonathan/rolecolor-agent/internal/llm"
	"github.com/jonathan/rolecolor-agent/internal/observability"
	"github.com/jonathan/rolecolor-agent/internal/rendering"
	"github.com/jonathan/rolecolor-agent/internal/rewriting"
	"github.com/jonathan/rolecolor-agent/internal/scoring"
	"github.com/jonathan/rolecolor-agent/internal/types"
	"github.com/jonathan/rolecolor-agent/internal/validation"
)

// topKeywordCount is how many ranked keywords each run reports.
const topKeywordCount = 10

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	ResumePath  string
	ResumeURL   string
	TemplateID  string
	OutDir      string
	APIKey      string
	Compile     bool
	Verbose     bool
	DatabaseURL string
	OnProgress  ProgressCallback
}

// Result collects every artifact produced by a run.
type Result struct {
	RunID       uuid.UUID
	CleanedText string
	Metadata    *ingestion.Metadata
	Score       *types.ScoreResult
	TopKeywords []types.RankedKeyword
	Summary     string
	Fields      *types.StructuredFields
	LaTeX       string
	Report      *types.ValidationReport
	PDFPath     string
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// Run orchestrates the full analysis pipeline.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	printer := observability.NewPrinter(os.Stdout)
	result := &Result{}

	// Database persistence is best-effort: a failed connection downgrades to
	// an in-memory run rather than aborting.
	var database *db.DB
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: Failed to connect to database: %v\n", err)
			fmt.Printf("Continuing without database persistence...\n")
			database = nil
		} else {
			defer database.Close()
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Connected to database\n")
			}
		}
	}

	// Step 1: Ingest the resume (from URL or file)
	var err error
	source := opts.ResumePath
	if opts.ResumeURL != "" {
		source = opts.ResumeURL
		fmt.Printf("Step 1/6: Ingesting resume from URL: %s...\n", opts.ResumeURL)
		result.CleanedText, result.Metadata, err = ingestion.IngestFromURL(ctx, opts.ResumeURL)
		if err != nil {
			return nil, fmt.Errorf("resume ingestion from URL failed: %w", err)
		}
	} else {
		fmt.Printf("Step 1/6: Ingesting resume from file: %s...\n", opts.ResumePath)
		result.CleanedText, result.Metadata, err = ingestion.IngestFromFile(opts.ResumePath)
		if err != nil {
			return nil, fmt.Errorf("resume ingestion from file failed: %w", err)
		}
	}
	emitProgress(&opts, db.StepResumeText, db.CategoryIngestion,
		fmt.Sprintf("Ingested and cleaned resume from %s", source), nil)

	var runID uuid.UUID
	if database != nil {
		runID, err = database.CreateRun(ctx, source)
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
		} else {
			result.RunID = runID
			if opts.Verbose {
				fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
			}
			_ = database.SaveTextArtifact(ctx, runID, db.StepResumeText, db.CategoryIngestion, result.CleanedText)
			_ = database.SaveArtifact(ctx, runID, db.StepResumeMetadata, db.CategoryIngestion, result.Metadata)
		}
	}

	// Step 2: Score against the RoleColor lexicon
	fmt.Printf("Step 2/6: Scoring resume against the RoleColor lexicon...\n")
	engine := scoring.NewEngine(nil)
	result.Score = engine.Score(result.CleanedText)
	result.TopKeywords = scoring.TopKeywords(result.Score, topKeywordCount)
	if opts.Verbose {
		printer.PrintScoreResult(result.Score)
		printer.PrintTopKeywords(result.TopKeywords)
	}
	emitProgress(&opts, db.StepScoreResult, db.CategoryScoring,
		fmt.Sprintf("Dominant role: %s", result.Score.DominantRole), result.Score)

	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepScoreResult, db.CategoryScoring, result.Score)
		_ = database.SaveArtifact(ctx, runID, db.StepTopKeywords, db.CategoryScoring, result.TopKeywords)
	}

	// Step 3: Rewrite summary and extract fields. The two LLM calls are
	// independent, so they run concurrently on a shared client.
	if opts.APIKey != "" {
		fmt.Printf("Step 3/6: Generating summary and extracting fields...\n")
		if err := runGenerationBranches(ctx, &opts, result); err != nil {
			return nil, err
		}
		if opts.Verbose {
			printer.PrintSummary(result.Summary)
			printer.PrintFields(result.Fields)
		}
	} else {
		fmt.Printf("Step 3/6: Skipping summary and field extraction (no API key)...\n")
		result.Fields = &types.StructuredFields{}
	}

	if result.Fields == nil {
		result.Fields = &types.StructuredFields{}
	}
	if result.Summary != "" {
		result.Fields.Summary = result.Summary
	}

	if database != nil && runID != uuid.Nil {
		if result.Summary != "" {
			_ = database.SaveTextArtifact(ctx, runID, db.StepSummary, db.CategoryRewriting, result.Summary)
		}
		if !result.Fields.IsEmpty() {
			_ = database.SaveArtifact(ctx, runID, db.StepStructuredFields, db.CategoryRewriting, result.Fields)
		}
	}

	// Step 4: Render LaTeX
	templateID := opts.TemplateID
	if templateID == "" {
		templateID = rendering.TemplateFull
	}
	fmt.Printf("Step 4/6: Rendering LaTeX (%s template)...\n", templateID)
	result.LaTeX, err = rendering.Render(templateID, result.Score.DominantRole, result.Fields)
	if err != nil {
		return nil, fmt.Errorf("rendering latex failed: %w", err)
	}
	emitProgress(&opts, db.StepResumeTex, db.CategoryRendering, "Rendered LaTeX resume", nil)

	// Step 5: Validate structure
	fmt.Printf("Step 5/6: Validating LaTeX structure...\n")
	result.Report = validation.CheckStructure(result.LaTeX)
	if opts.Verbose {
		printer.PrintValidationReport(result.Report)
	}

	if database != nil && runID != uuid.Nil {
		_ = database.SaveTextArtifact(ctx, runID, db.StepResumeTex, db.CategoryRendering, result.LaTeX)
		_ = database.SaveArtifact(ctx, runID, db.StepValidationReport, db.CategoryValidation, result.Report)
	}

	// Step 6: Optional artifacts on disk and PDF compilation
	if opts.OutDir != "" {
		if err := writeArtifacts(opts.OutDir, result); err != nil {
			return nil, err
		}
	}
	if opts.Compile {
		fmt.Printf("Step 6/6: Compiling PDF...\n")
		compiled, err := compile.Document(ctx, result.LaTeX, "resume", opts.OutDir)
		if err != nil {
			fmt.Printf("Warning: PDF compilation failed: %v\n", err)
		} else {
			result.PDFPath = compiled.PDFPath
		}
	} else {
		fmt.Printf("Step 6/6: Skipping PDF compilation...\n")
	}

	if database != nil && runID != uuid.Nil {
		_ = database.CompleteRun(ctx, runID, db.StatusCompleted, result.Score.DominantRole.String())
	}

	fmt.Printf("Done! Dominant role: %s\n", result.Score.DominantRole)
	return result, nil
}

// runGenerationBranches runs summary rewriting and field extraction
// concurrently on one shared LLM client.
func runGenerationBranches(ctx context.Context, opts *RunOptions, result *Result) error {
	client, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	g, gCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex

	g.Go(func() error {
		summary, err := rewriting.RewriteSummaryWithClient(gCtx, client, result.CleanedText, result.Score, "")
		if err != nil {
			return fmt.Errorf("summary rewriting failed: %w", err)
		}
		mu.Lock()
		result.Summary = summary
		mu.Unlock()
		emitProgress(opts, db.StepSummary, db.CategoryRewriting, "Generated role-aligned summary", nil)
		return nil
	})

	g.Go(func() error {
		fields, err := extraction.ExtractFieldsWithClient(gCtx, client, result.CleanedText)
		if err != nil {
			return fmt.Errorf("field extraction failed: %w", err)
		}
		mu.Lock()
		result.Fields = fields
		mu.Unlock()
		emitProgress(opts, db.StepStructuredFields, db.CategoryRewriting, "Extracted structured fields", nil)
		return nil
	})

	return g.Wait()
}

// writeArtifacts writes the run outputs into outDir.
func writeArtifacts(outDir string, result *Result) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(outDir, "resume.tex"), []byte(result.LaTeX), 0644); err != nil {
		return fmt.Errorf("failed to write LaTeX output: %w", err)
	}

	if result.Metadata != nil {
		metaJSON, err := result.Metadata.ToJSON()
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, "resume.meta.json"), metaJSON, 0644); err != nil {
			return fmt.Errorf("failed to write metadata: %w", err)
		}
	}

	return nil
}
