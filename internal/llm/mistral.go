package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
)

// Mistral speaks the OpenAI-compatible chat-completions dialect exposed
// at api.mistral.ai: one user message, bearer-token auth, temperature 0.2
// to keep the replies close to the requested format.
const (
	mistralBaseURL = "https://api.mistral.ai/v1"
	mistralModel   = "mistral-small-latest"
)

type Mistral struct {
	client *openai.Client
	model  string
}

func NewMistral(apiKey string) (*Mistral, error) {
	return NewMistralWithBaseURL(apiKey, mistralBaseURL)
}

// NewMistralWithBaseURL exists so tests can point the client at a local
// HTTP server.
func NewMistralWithBaseURL(apiKey, baseURL string) (*Mistral, error) {
	if apiKey == "" {
		return nil, pkgerrors.New(pkgerrors.KindMissingCredential, "llm_mistral",
			"clé API Mistral requise")
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	return &Mistral{
		client: openai.NewClientWithConfig(cfg),
		model:  mistralModel,
	}, nil
}

func (m *Mistral) Name() string { return "mistral" }

func (m *Mistral) GenerateText(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       m.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.KindTransportFailure, "llm_mistral",
			fmt.Errorf("Mistral API call failed: %w", err))
	}

	slog.Info("LLM API call",
		"backend", m.Name(),
		"duration_ms", time.Since(start).Milliseconds(),
		"total_tokens", resp.Usage.TotalTokens)

	if len(resp.Choices) == 0 {
		return "", pkgerrors.New(pkgerrors.KindTransportFailure, "llm_mistral",
			"empty response from Mistral API")
	}
	return resp.Choices[0].Message.Content, nil
}
