package rewriting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rolecolor-agent/internal/llm"
	"github.com/jonathan/rolecolor-agent/internal/types"
)

// fakeClient is a canned-response llm.Client for exercising the rewrite flow
// without network access.
type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func sampleScore() *types.ScoreResult {
	return &types.ScoreResult{
		RawScores: map[types.RoleColor]float64{
			types.Builder: 4.5, types.Enabler: 2.5, types.Thriver: 2.0, types.Supportee: 1.0,
		},
		NormalizedScores: map[types.RoleColor]float64{
			types.Builder: 0.45, types.Enabler: 0.25, types.Thriver: 0.20, types.Supportee: 0.10,
		},
		DominantRole: types.Builder,
	}
}

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := buildSummaryPrompt("Built scalable backend systems in Go.", sampleScore(), "")

	assert.Contains(t, prompt, "Builder")
	assert.Contains(t, prompt, "visionary, strategic tone")
	assert.Contains(t, prompt, "- Builder: 45%")
	assert.Contains(t, prompt, "Built scalable backend systems in Go.")
	assert.NotContains(t, prompt, "ORIGINAL SUMMARY TO ENHANCE")
	// No placeholders left over.
	assert.NotContains(t, prompt, "{{.")
}

func TestBuildSummaryPromptWithOriginalSummary(t *testing.T) {
	prompt := buildSummaryPrompt("resume text", sampleScore(), "Seasoned engineer.")
	assert.Contains(t, prompt, "ORIGINAL SUMMARY TO ENHANCE: Seasoned engineer.")
}

func TestBuildRefinePrompt(t *testing.T) {
	prompt := buildRefinePrompt("resume text", "current summary", "make it shorter", types.Thriver)

	assert.Contains(t, prompt, "Thriver")
	assert.Contains(t, prompt, "current summary")
	assert.Contains(t, prompt, "make it shorter")
	assert.NotContains(t, prompt, "{{.")
}

func TestStylePrompt(t *testing.T) {
	assert.Contains(t, stylePrompt(types.Builder), "architect")
	assert.Contains(t, stylePrompt(types.Enabler), "mentor")
	assert.Contains(t, stylePrompt(types.Thriver), "fast-paced")
	assert.Contains(t, stylePrompt(types.Supportee), "systematic")
	// Unknown roles fall back to the Builder style.
	assert.Equal(t, stylePrompt(types.Builder), stylePrompt(types.RoleColor("Mystery")))
}

func TestFormatScoreDistribution(t *testing.T) {
	out := formatScoreDistribution(map[types.RoleColor]float64{
		types.Builder: 0.10, types.Enabler: 0.45, types.Thriver: 0.25, types.Supportee: 0.20,
	})

	assert.Equal(t, "- Enabler: 45%\n- Thriver: 25%\n- Supportee: 20%\n- Builder: 10%", out)
}

func TestRewriteSummaryRequiresAPIKey(t *testing.T) {
	_, err := RewriteSummary(context.Background(), "text", sampleScore(), "", "")

	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Error(), "API key")
}

func TestRewriteSummaryRequiresScore(t *testing.T) {
	_, err := RewriteSummary(context.Background(), "text", nil, "", "key")
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
}

func TestRewriteSummaryWithClient(t *testing.T) {
	client := &fakeClient{response: "  A strategic engineer who builds.  \n"}

	summary, err := RewriteSummaryWithClient(context.Background(), client, "resume", sampleScore(), "")
	require.NoError(t, err)
	assert.Equal(t, "A strategic engineer who builds.", summary)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Builder")
}

func TestRewriteSummaryWithClientEmptyResponse(t *testing.T) {
	client := &fakeClient{response: "   "}

	_, err := RewriteSummaryWithClient(context.Background(), client, "resume", sampleScore(), "")
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Error(), "empty summary")
}

func TestRefineSummaryWithClientPropagatesError(t *testing.T) {
	cause := errors.New("quota exceeded")
	client := &fakeClient{err: cause}

	_, err := RefineSummaryWithClient(context.Background(), client, "resume", "summary", "feedback", types.Enabler)
	var apiErr *APICallError
	require.ErrorAs(t, err, &apiErr)
	assert.ErrorIs(t, err, cause)
}
