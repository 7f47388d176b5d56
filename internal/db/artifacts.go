package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/rolecolor-agent/internal/types"
)

// GetScoreResultByRunID loads the score result stored for a run
func (db *DB) GetScoreResultByRunID(ctx context.Context, runID uuid.UUID) (*types.ScoreResult, error) {
	content, err := db.GetArtifact(ctx, runID, StepScoreResult)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var result types.ScoreResult
	if err := json.Unmarshal(content, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal score result: %w", err)
	}
	return &result, nil
}

// GetTopKeywordsByRunID loads the ranked keywords stored for a run
func (db *DB) GetTopKeywordsByRunID(ctx context.Context, runID uuid.UUID) ([]types.RankedKeyword, error) {
	content, err := db.GetArtifact(ctx, runID, StepTopKeywords)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var keywords []types.RankedKeyword
	if err := json.Unmarshal(content, &keywords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal top keywords: %w", err)
	}
	return keywords, nil
}

// GetStructuredFieldsByRunID loads the extracted fields stored for a run
func (db *DB) GetStructuredFieldsByRunID(ctx context.Context, runID uuid.UUID) (*types.StructuredFields, error) {
	content, err := db.GetArtifact(ctx, runID, StepStructuredFields)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var fields types.StructuredFields
	if err := json.Unmarshal(content, &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal structured fields: %w", err)
	}
	return &fields, nil
}

// GetValidationReportByRunID loads the validation report stored for a run
func (db *DB) GetValidationReportByRunID(ctx context.Context, runID uuid.UUID) (*types.ValidationReport, error) {
	content, err := db.GetArtifact(ctx, runID, StepValidationReport)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, nil
	}

	var report types.ValidationReport
	if err := json.Unmarshal(content, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal validation report: %w", err)
	}
	return &report, nil
}

// GetSummaryByRunID loads the generated summary text stored for a run
func (db *DB) GetSummaryByRunID(ctx context.Context, runID uuid.UUID) (string, error) {
	return db.GetTextArtifact(ctx, runID, StepSummary)
}

// GetResumeTexByRunID loads the rendered LaTeX document stored for a run
func (db *DB) GetResumeTexByRunID(ctx context.Context, runID uuid.UUID) (string, error) {
	return db.GetTextArtifact(ctx, runID, StepResumeTex)
}

// GetResumeMetadataByRunID loads ingestion metadata for a run.
// Returns raw JSON bytes to avoid an import cycle with the ingestion package.
func (db *DB) GetResumeMetadataByRunID(ctx context.Context, runID uuid.UUID) ([]byte, error) {
	return db.GetArtifact(ctx, runID, StepResumeMetadata)
}
