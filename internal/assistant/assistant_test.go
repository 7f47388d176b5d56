package assistant

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/rolecolor-agent/internal/llm"
	"github.com/jonathan/rolecolor-agent/internal/types"
)

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

func scoreContext() Context {
	return Context{
		Score: &types.ScoreResult{
			NormalizedScores: map[types.RoleColor]float64{
				types.Builder: 0.45, types.Enabler: 0.25, types.Thriver: 0.20, types.Supportee: 0.10,
			},
			DominantRole: types.Builder,
		},
	}
}

func TestChatAppendsHistory(t *testing.T) {
	client := &fakeClient{response: "Hello there."}
	a := New(client)

	reply, err := a.Chat(context.Background(), "Hi")
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", reply)

	history := a.History()
	require.Len(t, history, 2)
	assert.Equal(t, Message{Role: "user", Content: "Hi"}, history[0])
	assert.Equal(t, Message{Role: "assistant", Content: "Hello there."}, history[1])
}

func TestChatPromptIncludesSystemAndContext(t *testing.T) {
	client := &fakeClient{response: "ok"}
	a := New(client)
	a.SetContext(scoreContext())
	a.SetContext(Context{Summary: "A builder at heart."})

	_, err := a.Chat(context.Background(), "What do my scores mean?")
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "RoleColorAI")
	assert.Contains(t, prompt, "Builder: 45%")
	assert.Contains(t, prompt, "Dominant RoleColor: Builder")
	assert.Contains(t, prompt, "Current summary: A builder at heart.")
	assert.Contains(t, prompt, "USER: What do my scores mean?")
}

func TestChatReplaysRecentHistoryOnly(t *testing.T) {
	client := &fakeClient{response: "ok"}
	a := New(client)

	for i := 0; i < 15; i++ {
		_, err := a.Chat(context.Background(), fmt.Sprintf("message %d", i))
		require.NoError(t, err)
	}

	last := client.prompts[len(client.prompts)-1]
	// Oldest turns fall outside the replay window.
	assert.NotContains(t, last, "USER: message 0\n")
	assert.Contains(t, last, "message 14")
}

func TestChatPropagatesClientError(t *testing.T) {
	cause := errors.New("rate limited")
	a := New(&fakeClient{err: cause})

	_, err := a.Chat(context.Background(), "hi")
	require.ErrorIs(t, err, cause)
	// Failed exchanges are not recorded.
	assert.Empty(t, a.History())
}

func TestSummarySuggestionRequiresSummary(t *testing.T) {
	client := &fakeClient{response: "better summary"}
	a := New(client)

	reply, err := a.SummarySuggestion(context.Background(), "make it punchier")
	require.NoError(t, err)
	assert.Contains(t, reply, "generate a summary first")
	assert.Empty(t, client.prompts)

	a.SetContext(Context{Summary: "current one"})
	reply, err = a.SummarySuggestion(context.Background(), "make it punchier")
	require.NoError(t, err)
	assert.Equal(t, "better summary", reply)
	assert.Contains(t, client.prompts[0], "make it punchier")
	assert.Contains(t, client.prompts[0], "current one")
}

func TestLaTeXModificationRequiresCode(t *testing.T) {
	client := &fakeClient{response: "\\textbf{done}"}
	a := New(client)

	reply, err := a.LaTeXModification(context.Background(), "bold the name")
	require.NoError(t, err)
	assert.Contains(t, reply, "No LaTeX code")

	a.SetContext(Context{LaTeXCode: "\\documentclass{article}"})
	reply, err = a.LaTeXModification(context.Background(), "bold the name")
	require.NoError(t, err)
	assert.Equal(t, "\\textbf{done}", reply)
}

func TestExplainScoresRequiresAnalysis(t *testing.T) {
	client := &fakeClient{response: "You lean Builder."}
	a := New(client)

	reply, err := a.ExplainScores(context.Background())
	require.NoError(t, err)
	assert.Contains(t, reply, "No RoleColor analysis")

	a.SetContext(scoreContext())
	reply, err = a.ExplainScores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "You lean Builder.", reply)
}

func TestClearHistoryAndContext(t *testing.T) {
	client := &fakeClient{response: "ok"}
	a := New(client)
	a.SetContext(scoreContext())

	_, err := a.Chat(context.Background(), "hi")
	require.NoError(t, err)
	require.NotEmpty(t, a.History())

	a.ClearHistory()
	assert.Empty(t, a.History())

	// Context survives a history clear.
	_, err = a.ExplainScores(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, client.prompts[len(client.prompts)-1], "No RoleColor analysis")

	a.ClearContext()
	reply, err := a.ExplainScores(context.Background())
	require.NoError(t, err)
	assert.Contains(t, reply, "No RoleColor analysis")
}
