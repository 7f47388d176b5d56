// Package assistant provides the interactive chat layer: explaining score
// results, suggesting summary improvements, and helping with LaTeX edits.
// Conversation history and analysis context are kept in memory per
// Assistant instance.
package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/rolecolor-agent/internal/llm"
	"github.com/jonathan/rolecolor-agent/internal/prompts"
	"github.com/jonathan/rolecolor-agent/internal/types"
)

// historyWindow bounds how many prior messages are replayed per request.
const historyWindow = 20

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Context carries the analysis artifacts the assistant can reference.
type Context struct {
	ResumeText string
	Score      *types.ScoreResult
	Summary    string
	LaTeXCode  string
}

// Assistant is a stateful chat session.
type Assistant struct {
	client  llm.Client
	history []Message
	context Context
}

// New creates an assistant on top of an existing LLM client.
func New(client llm.Client) *Assistant {
	return &Assistant{client: client}
}

// SetContext replaces the assistant's analysis context. Zero-value fields
// leave the existing context entry untouched.
func (a *Assistant) SetContext(ctx Context) {
	if ctx.ResumeText != "" {
		a.context.ResumeText = ctx.ResumeText
	}
	if ctx.Score != nil {
		a.context.Score = ctx.Score
	}
	if ctx.Summary != "" {
		a.context.Summary = ctx.Summary
	}
	if ctx.LaTeXCode != "" {
		a.context.LaTeXCode = ctx.LaTeXCode
	}
}

// History returns a copy of the conversation so far.
func (a *Assistant) History() []Message {
	out := make([]Message, len(a.history))
	copy(out, a.history)
	return out
}

// ClearHistory drops the conversation history but keeps context.
func (a *Assistant) ClearHistory() {
	a.history = nil
}

// ClearContext drops both context and history.
func (a *Assistant) ClearContext() {
	a.context = Context{}
	a.history = nil
}

// Chat sends a user message and returns the assistant's reply. The reply and
// the user message are appended to the history.
func (a *Assistant) Chat(ctx context.Context, userMessage string) (string, error) {
	prompt := a.buildPrompt(userMessage)

	reply, err := a.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	reply = strings.TrimSpace(reply)

	a.history = append(a.history,
		Message{Role: "user", Content: userMessage},
		Message{Role: "assistant", Content: reply},
	)

	return reply, nil
}

// SummarySuggestion asks for an improved summary based on user feedback.
func (a *Assistant) SummarySuggestion(ctx context.Context, feedback string) (string, error) {
	if a.context.Summary == "" {
		return "Please generate a summary first before asking for improvements.", nil
	}

	prompt := prompts.Format(prompts.MustGet(prompts.Assistant, "summary_suggestion"), map[string]string{
		"Summary":  a.context.Summary,
		"Feedback": feedback,
	})
	return a.Chat(ctx, prompt)
}

// LaTeXModification asks for LaTeX changes implementing a user request.
func (a *Assistant) LaTeXModification(ctx context.Context, request string) (string, error) {
	if a.context.LaTeXCode == "" {
		return "No LaTeX code is currently loaded. Please generate LaTeX first.", nil
	}

	prompt := prompts.Format(prompts.MustGet(prompts.Assistant, "latex_modification"), map[string]string{
		"Request": request,
	})
	return a.Chat(ctx, prompt)
}

// ExplainScores asks for a short interpretation of the current scores.
func (a *Assistant) ExplainScores(ctx context.Context) (string, error) {
	if a.context.Score == nil {
		return "No RoleColor analysis has been performed yet. Please analyze a resume first.", nil
	}
	return a.Chat(ctx, prompts.MustGet(prompts.Assistant, "explain_scores"))
}

// buildPrompt assembles system prompt, context block, recent history and the
// current user message into a single prompt.
func (a *Assistant) buildPrompt(userMessage string) string {
	var b strings.Builder

	b.WriteString(prompts.MustGet(prompts.Assistant, "system"))

	if contextBlock := a.buildContextBlock(); contextBlock != "" {
		b.WriteString("\n")
		b.WriteString(contextBlock)
	}

	history := a.history
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	for _, msg := range history {
		b.WriteString(fmt.Sprintf("\n%s: %s", strings.ToUpper(msg.Role), msg.Content))
	}

	b.WriteString("\nUSER: ")
	b.WriteString(userMessage)
	b.WriteString("\nASSISTANT:")

	return b.String()
}

// buildContextBlock summarizes the analysis context for the model.
func (a *Assistant) buildContextBlock() string {
	var parts []string

	if a.context.Score != nil {
		scores := a.context.Score.NormalizedScores
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
		pairs := make([]string, 0, len(roles))
		for _, role := range roles {
			pairs = append(pairs, fmt.Sprintf("%s: %.0f%%", role, scores[role]*100))
		}
		parts = append(parts, "Current RoleColor scores: "+strings.Join(pairs, ", "))
		parts = append(parts, "Dominant RoleColor: "+a.context.Score.DominantRole.String())
	}

	if a.context.Summary != "" {
		summary := a.context.Summary
		if len(summary) > 200 {
			summary = summary[:200] + "..."
		}
		parts = append(parts, "Current summary: "+summary)
	}

	if a.context.ResumeText != "" {
		parts = append(parts, fmt.Sprintf("Resume length: %d characters", len(a.context.ResumeText)))
	}

	if a.context.LaTeXCode != "" {
		parts = append(parts, "LaTeX code is available for modification")
	}

	if len(parts) == 0 {
		return ""
	}
	return "\n[Context]\n" + strings.Join(parts, "\n") + "\n"
}
