package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_TOKEN", "token-123")
	t.Setenv("DEFAULT_LLM", "")
	t.Setenv("LETTRES_DIR", "")
	t.Setenv("RESULTATS_DIR", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DiscordToken != "token-123" {
		t.Errorf("token = %q", cfg.DiscordToken)
	}
	if cfg.DefaultLLM != "mistral" {
		t.Errorf("default LLM = %q, want mistral", cfg.DefaultLLM)
	}
	if cfg.LettersDir != "lettres" || cfg.ResultsDir != "resultats" {
		t.Errorf("default dirs = %q/%q", cfg.LettersDir, cfg.ResultsDir)
	}
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "DISCORD_TOKEN") {
		t.Errorf("expected missing-token error, got %v", err)
	}
}

func TestLoadBadDefaultLLM(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_LLM", "llama")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "DEFAULT_LLM") {
		t.Errorf("expected invalid-backend error, got %v", err)
	}
}

func TestLoadGeminiDefault(t *testing.T) {
	setRequired(t)
	t.Setenv("DEFAULT_LLM", "gemini")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultLLM != "gemini" {
		t.Errorf("default LLM = %q", cfg.DefaultLLM)
	}
}
