package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtifactStepConstants(t *testing.T) {
	steps := []string{
		StepResumeText,
		StepResumeMetadata,
		StepScoreResult,
		StepTopKeywords,
		StepStructuredFields,
		StepSummary,
		StepResumeTex,
		StepValidationReport,
	}

	seen := make(map[string]bool)
	for _, step := range steps {
		assert.NotEmpty(t, step, "step constant should not be empty")
		assert.False(t, seen[step], "step constant %q duplicated", step)
		seen[step] = true
	}
}

func TestRunType(t *testing.T) {
	run := Run{
		Source:       "resume.txt",
		DominantRole: "Builder",
		Status:       StatusRunning,
	}

	assert.Equal(t, "resume.txt", run.Source)
	assert.Equal(t, "Builder", run.DominantRole)
	assert.Equal(t, "running", run.Status)
	assert.Nil(t, run.CompletedAt)
}
