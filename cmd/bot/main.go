package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Thinguy99/bot-discord/internal/bot"
	"github.com/Thinguy99/bot-discord/internal/config"
	"github.com/Thinguy99/bot-discord/internal/jobs"
	"github.com/Thinguy99/bot-discord/internal/letter"
	"github.com/Thinguy99/bot-discord/internal/llm"
	"github.com/Thinguy99/bot-discord/internal/pipeline"
	"github.com/Thinguy99/bot-discord/internal/prompt"
	"github.com/Thinguy99/bot-discord/internal/session"
	"github.com/Thinguy99/bot-discord/pkg/logger"
)

const skillsPath = "configs/skills.yaml"

func main() {
	logger.Setup(slog.LevelDebug)
	slog.Info("Starting bot...")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	llms := llm.NewSet(cfg.DefaultLLM)
	if cfg.MistralAPIKey != "" {
		mistral, err := llm.NewMistral(cfg.MistralAPIKey)
		if err != nil {
			slog.Error("Error creating Mistral client", "error", err)
			os.Exit(1)
		}
		llms.Register(mistral)
	}
	if cfg.GeminiAPIKey != "" {
		gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey)
		if err != nil {
			slog.Error("Error creating Gemini client", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()
		llms.Register(gemini)
	}
	if len(llms.Names()) == 0 {
		slog.Warn("No LLM API key configured, CV commands will fail")
	}

	ref, err := prompt.LoadSkillReference(skillsPath)
	if err != nil {
		slog.Error("Error loading skill reference", "error", err)
		os.Exit(1)
	}

	pipe := pipeline.New(
		llms,
		prompt.NewBuilder(ref),
		letter.NewEmitter(cfg.LettersDir),
		cfg.ResultsDir,
	)

	var jobClient *jobs.Client
	if cfg.FTClientID != "" && cfg.FTClientSecret != "" {
		jobClient = jobs.NewClient(ctx, cfg.FTClientID, cfg.FTClientSecret)
	} else {
		slog.Warn("France Travail credentials absent, /scrape disabled")
	}

	b, err := bot.New(cfg.DiscordToken, pipe, jobClient, session.NewStore())
	if err != nil {
		slog.Error("Error creating Discord session", "error", err)
		os.Exit(1)
	}
	if err := b.Start(); err != nil {
		slog.Error("Error opening Discord session", "error", err)
		os.Exit(1)
	}
	defer b.Close()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	slog.Info("Shutting down...")
}
