package db

import (
	"time"

	"github.com/google/uuid"
)

// Run represents an analysis run record
type Run struct {
	ID           uuid.UUID  `json:"id"`
	Source       string     `json:"source"`        // file path or URL the resume came from
	DominantRole string     `json:"dominant_role"` // filled in once scoring completes
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// Artifact step constants for known artifact types
const (
	StepResumeText       = "resume_text"
	StepResumeMetadata   = "resume_metadata"
	StepScoreResult      = "score_result"
	StepTopKeywords      = "top_keywords"
	StepStructuredFields = "structured_fields"
	StepSummary          = "summary"
	StepResumeTex        = "resume_tex"
	StepValidationReport = "validation_report"
)

// Artifact category constants group steps by pipeline phase
const (
	CategoryIngestion  = "ingestion"
	CategoryScoring    = "scoring"
	CategoryRewriting  = "rewriting"
	CategoryRendering  = "rendering"
	CategoryValidation = "validation"
)

// Run status constants
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
