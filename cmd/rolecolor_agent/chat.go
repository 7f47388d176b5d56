package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/rolecolor-agent/internal/assistant"
	"github.com/jonathan/rolecolor-agent/internal/llm"
	"github.com/jonathan/rolecolor-agent/internal/scoring"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the RoleColor assistant",
	Long: `Start an interactive session with the RoleColor assistant. When a resume is
loaded with --in, the assistant answers with the resume's score distribution in
context. Type /scores for a score explanation, /clear to reset the
conversation, or /quit to exit.`,
	RunE: runChat,
}

var (
	chatInput  string
	chatAPIKey string
)

func init() {
	chatCmd.Flags().StringVarP(&chatInput, "in", "i", "", "Path to resume file to load as conversation context (optional)")
	chatCmd.Flags().StringVar(&chatAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")

	rootCmd.AddCommand(chatCmd)
}

func runChat(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	apiKey := chatAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}
	defer func() { _ = client.Close() }()

	asst := assistant.New(client)

	if chatInput != "" {
		text, err := ingestResumeText(ctx, chatInput, "")
		if err != nil {
			return err
		}
		score := scoring.NewEngine(nil).Score(text)
		asst.SetContext(assistant.Context{
			ResumeText: text,
			Score:      score,
		})
		_, _ = fmt.Fprintf(os.Stdout, "Loaded resume (%d characters), dominant RoleColor: %s\n", len(text), score.DominantRole)
	}

	_, _ = fmt.Fprintf(os.Stdout, "RoleColorAI ready. Type /quit to exit.\n")

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		_, _ = fmt.Fprintf(os.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/clear":
			asst.ClearHistory()
			_, _ = fmt.Fprintf(os.Stdout, "Conversation cleared.\n")
			continue
		case "/scores":
			reply, err := asst.ExplainScores(ctx)
			if err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			_, _ = fmt.Fprintf(os.Stdout, "%s\n", reply)
			continue
		}

		reply, err := asst.Chat(ctx, line)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintf(os.Stdout, "%s\n", reply)
	}

	return scanner.Err()
}
