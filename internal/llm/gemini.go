package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
)

const geminiModel = "gemini-1.5-pro-latest"

type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, pkgerrors.New(pkgerrors.KindMissingCredential, "llm_gemini",
			"clé API Gemini requise")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.KindTransportFailure, "llm_gemini",
			fmt.Errorf("failed to create Gemini client: %w", err))
	}
	return &Gemini{
		client: client,
		model:  geminiModel,
	}, nil
}

func (g *Gemini) Name() string { return "gemini" }

func (g *Gemini) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.model)

	start := time.Now()
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.KindTransportFailure, "llm_gemini",
			fmt.Errorf("Gemini API call failed: %w", err))
	}

	if resp.UsageMetadata != nil {
		slog.Info("LLM API call",
			"backend", g.Name(),
			"duration_ms", time.Since(start).Milliseconds(),
			"total_tokens", resp.UsageMetadata.TotalTokenCount)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", pkgerrors.New(pkgerrors.KindTransportFailure, "llm_gemini",
			"empty response from Gemini API")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", pkgerrors.New(pkgerrors.KindTransportFailure, "llm_gemini",
			"unexpected response format from Gemini API")
	}
	return string(text), nil
}
