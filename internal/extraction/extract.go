package extraction

import (
	"context"

	"github.com/jonathan/rolecolor-agent/internal/llm"
	"github.com/jonathan/rolecolor-agent/internal/prompts"
	"github.com/jonathan/rolecolor-agent/internal/types"
)

// ExtractFields asks the model to pull structured resume fields out of raw
// resume text.
func ExtractFields(ctx context.Context, resumeText string, apiKey string) (*types.StructuredFields, error) {
	if apiKey == "" {
		return nil, &APICallError{Message: "API key is required"}
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return nil, &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	return ExtractFieldsWithClient(ctx, client, resumeText)
}

// ExtractFieldsWithClient extracts structured fields using an existing
// client.
func ExtractFieldsWithClient(ctx context.Context, client llm.Client, resumeText string) (*types.StructuredFields, error) {
	prompt := buildExtractionPrompt(resumeText)

	// Extraction is mechanical; the lite tier is enough.
	responseText, err := client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate content from LLM", Cause: err}
	}

	fields := ParseStructuredFields(responseText)
	if fields.IsEmpty() {
		return nil, &ParseError{Message: "model response contained no recognizable sections"}
	}

	return fields, nil
}

// buildExtractionPrompt constructs the extraction prompt.
func buildExtractionPrompt(resumeText string) string {
	system := prompts.MustGet(prompts.Extraction, "system")
	user := prompts.Format(prompts.MustGet(prompts.Extraction, "extract"), map[string]string{
		"ResumeText": resumeText,
	})
	return system + "\n\n" + user
}
