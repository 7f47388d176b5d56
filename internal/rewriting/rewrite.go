// Package rewriting generates role-aligned professional summaries. The
// rewriter takes the scored resume and produces a 4-6 line summary written
// in the tone of the dominant RoleColor, and can refine an existing summary
// from user feedback.
package rewriting

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/rolecolor-agent/internal/llm"
	"github.com/jonathan/rolecolor-agent/internal/prompts"
	"github.com/jonathan/rolecolor-agent/internal/types"
)

// RewriteSummary generates a professional summary emphasizing the dominant
// RoleColor from the score result. originalSummary is optional; when present
// the model is asked to enhance it rather than start from scratch.
func RewriteSummary(ctx context.Context, resumeText string, score *types.ScoreResult, originalSummary string, apiKey string) (string, error) {
	if apiKey == "" {
		return "", &APICallError{Message: "API key is required"}
	}
	if score == nil {
		return "", &APICallError{Message: "score result is required"}
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return "", &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	return rewriteSummaryWithClient(ctx, client, resumeText, score, originalSummary)
}

// rewriteSummaryWithClient is the client-injected core, shared with the
// pipeline so one client can serve several steps.
func rewriteSummaryWithClient(ctx context.Context, client llm.Client, resumeText string, score *types.ScoreResult, originalSummary string) (string, error) {
	prompt := buildSummaryPrompt(resumeText, score, originalSummary)

	// Summary rewriting needs the most nuance of any step.
	responseText, err := client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", &APICallError{Message: "failed to generate summary", Cause: err}
	}

	summary := strings.TrimSpace(responseText)
	if summary == "" {
		return "", &APICallError{Message: "model returned an empty summary"}
	}
	return summary, nil
}

// RewriteSummaryWithClient generates a summary using an existing client.
func RewriteSummaryWithClient(ctx context.Context, client llm.Client, resumeText string, score *types.ScoreResult, originalSummary string) (string, error) {
	if score == nil {
		return "", &APICallError{Message: "score result is required"}
	}
	return rewriteSummaryWithClient(ctx, client, resumeText, score, originalSummary)
}

// RefineSummary updates a previously generated summary based on user
// feedback, keeping the tone of the dominant role.
func RefineSummary(ctx context.Context, resumeText, currentSummary, feedback string, role types.RoleColor, apiKey string) (string, error) {
	if apiKey == "" {
		return "", &APICallError{Message: "API key is required"}
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return "", &APICallError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	return RefineSummaryWithClient(ctx, client, resumeText, currentSummary, feedback, role)
}

// RefineSummaryWithClient refines a summary using an existing client.
func RefineSummaryWithClient(ctx context.Context, client llm.Client, resumeText, currentSummary, feedback string, role types.RoleColor) (string, error) {
	prompt := buildRefinePrompt(resumeText, currentSummary, feedback, role)

	responseText, err := client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", &APICallError{Message: "failed to refine summary", Cause: err}
	}

	summary := strings.TrimSpace(responseText)
	if summary == "" {
		return "", &APICallError{Message: "model returned an empty summary"}
	}
	return summary, nil
}

// buildSummaryPrompt assembles the system and user prompts into a single
// prompt string for the model.
func buildSummaryPrompt(resumeText string, score *types.ScoreResult, originalSummary string) string {
	role := score.DominantRole

	system := prompts.Format(prompts.MustGet(prompts.Rewriting, "system"), map[string]string{
		"Role":              role.String(),
		"RoleDescription":   role.Description(),
		"ScoreDistribution": formatScoreDistribution(score.NormalizedScores),
		"StyleGuidelines":   stylePrompt(role),
	})

	originalBlock := ""
	if strings.TrimSpace(originalSummary) != "" {
		originalBlock = fmt.Sprintf("ORIGINAL SUMMARY TO ENHANCE: %s\n\n", originalSummary)
	}

	user := prompts.Format(prompts.MustGet(prompts.Rewriting, "user"), map[string]string{
		"Role":                 role.String(),
		"ResumeText":           resumeText,
		"OriginalSummaryBlock": originalBlock,
	})

	return system + "\n\n" + user
}

// buildRefinePrompt assembles the feedback-driven refinement prompt.
func buildRefinePrompt(resumeText, currentSummary, feedback string, role types.RoleColor) string {
	return prompts.Format(prompts.MustGet(prompts.Rewriting, "refine"), map[string]string{
		"Role":           role.String(),
		"CurrentSummary": currentSummary,
		"ResumeText":     resumeText,
		"Feedback":       feedback,
	})
}

// stylePrompt returns the writing style guidelines for a role. Unknown roles
// fall back to the Builder style.
func stylePrompt(role types.RoleColor) string {
	key := "style_" + strings.ToLower(role.String())
	guidelines, err := prompts.Get(prompts.Rewriting, key)
	if err != nil {
		return prompts.MustGet(prompts.Rewriting, "style_builder")
	}
	return guidelines
}

// formatScoreDistribution renders normalized scores as percentage lines,
// highest first.
func formatScoreDistribution(scores map[types.RoleColor]float64) string {
	roles := make([]types.RoleColor, 0, len(scores))
	for role := range scores {
		roles = append(roles, role)
	}
	sort.SliceStable(roles, func(i, j int) bool {
		if scores[roles[i]] != scores[roles[j]] {
			return scores[roles[i]] > scores[roles[j]]
		}
		return roles[i] < roles[j]
	})

	lines := make([]string, 0, len(roles))
	for _, role := range roles {
		lines = append(lines, fmt.Sprintf("- %s: %.0f%%", role, scores[role]*100))
	}
	return strings.Join(lines, "\n")
}
