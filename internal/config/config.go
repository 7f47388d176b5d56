// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Input
	Resume    string `json:"resume,omitempty"`     // Path to resume text file
	ResumeURL string `json:"resume_url,omitempty"` // URL to fetch resume content from

	// Rendering
	Template string `json:"template,omitempty"` // Template ID (full, summary)
	OutDir   string `json:"out_dir,omitempty"`  // Directory for generated artifacts

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	Compile     bool   `json:"compile,omitempty"`      // Run pdflatex on rendered output
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Server
	ListenAddr string `json:"listen_addr,omitempty"` // Address for serve mode, e.g. ":8080"
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Required fields are handled by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Resume != "" && c.ResumeURL != "" {
		return fmt.Errorf("config error: 'resume' and 'resume_url' are mutually exclusive")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This applies config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.ResumeURL == "" {
		result.ResumeURL = defaults.ResumeURL
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags always win for bools).

	return result
}
