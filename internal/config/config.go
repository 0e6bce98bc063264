package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup. API keys
// for the LLM backends are optional here: a missing key only becomes an
// error when a command actually selects that backend.
type Config struct {
	DiscordToken string

	MistralAPIKey string
	GeminiAPIKey  string
	DefaultLLM    string

	// France Travail API credentials for the /scrape command.
	FTClientID     string
	FTClientSecret string

	LettersDir string
	ResultsDir string
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		MistralAPIKey:  os.Getenv("MISTRAL_API_KEY"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		DefaultLLM:     getenvDefault("DEFAULT_LLM", "mistral"),
		FTClientID:     os.Getenv("FT_CLIENT_ID"),
		FTClientSecret: os.Getenv("FT_CLIENT_SECRET"),
		LettersDir:     getenvDefault("LETTRES_DIR", "lettres"),
		ResultsDir:     getenvDefault("RESULTATS_DIR", "resultats"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is not set")
	}
	if c.DefaultLLM != "mistral" && c.DefaultLLM != "gemini" {
		return fmt.Errorf("DEFAULT_LLM must be \"mistral\" or \"gemini\", got %q", c.DefaultLLM)
	}
	return nil
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
