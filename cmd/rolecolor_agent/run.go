package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/rolecolor-agent/internal/config"
	"github.com/jonathan/rolecolor-agent/internal/pipeline"
	"github.com/jonathan/rolecolor-agent/internal/rendering"
	"github.com/spf13/cobra"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Run the full RoleColor analysis pipeline end-to-end",
	Long: `Orchestrates the entire analysis process: ingestion -> scoring -> summary and field generation -> rendering -> validation -> optional compilation.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath  string
	runResume      string
	runResumeURL   string
	runTemplate    string
	runOutDir      string
	runCompile     bool
	runAPIKey      string
	runVerbose     bool
	runDatabaseURL string
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringVarP(&runResume, "resume", "i", "", "Path to resume file (mutually exclusive with --resume-url)")
	runCommand.Flags().StringVar(&runResumeURL, "resume-url", "", "URL to fetch the resume from (mutually exclusive with --resume)")
	runCommand.Flags().StringVarP(&runTemplate, "template", "t", "", "Template ID (full or summary)")
	runCommand.Flags().StringVarP(&runOutDir, "out", "o", "", "Output directory for artifacts")
	runCommand.Flags().BoolVar(&runCompile, "compile", false, "Compile the rendered resume to PDF (requires pdflatex)")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if err := loadedCfg.Validate(); err != nil {
			return err
		}

		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = runResume
	}
	if cmd.Flags().Changed("resume-url") {
		cfg.ResumeURL = runResumeURL
	}
	if cmd.Flags().Changed("template") {
		cfg.Template = runTemplate
	}
	if cmd.Flags().Changed("out") {
		cfg.OutDir = runOutDir
	}
	if cmd.Flags().Changed("compile") {
		cfg.Compile = runCompile
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	defaults := config.Config{
		Template: rendering.TemplateFull,
		OutDir:   "out",
	}
	cfg = cfg.MergeWithDefaults(defaults)

	// Step 4: Validate required fields
	if cfg.Resume == "" && cfg.ResumeURL == "" {
		return fmt.Errorf("either --resume or --resume-url must be provided (via flag or config)")
	}
	if cfg.Resume != "" && cfg.ResumeURL != "" {
		return fmt.Errorf("--resume and --resume-url are mutually exclusive; provide only one")
	}

	// Step 5: API key handling. The pipeline degrades to lexical-only
	// analysis without one, so this is optional.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.APIKey == "" {
		_, _ = fmt.Fprintf(os.Stderr, "Warning: no API key configured; skipping summary and field generation\n")
	}

	// Step 6: Database URL handling (optional)
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	opts := pipeline.RunOptions{
		ResumePath:  cfg.Resume,
		ResumeURL:   cfg.ResumeURL,
		TemplateID:  cfg.Template,
		OutDir:      cfg.OutDir,
		APIKey:      cfg.APIKey,
		Compile:     cfg.Compile,
		Verbose:     cfg.Verbose,
		DatabaseURL: cfg.DatabaseURL,
	}

	result, err := pipeline.Run(ctx, opts)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Dominant RoleColor: %s\n", result.Score.DominantRole)
	if result.PDFPath != "" {
		_, _ = fmt.Fprintf(os.Stdout, "PDF: %s\n", result.PDFPath)
	}
	return nil
}
