// Package bot wires the pipeline to Discord: slash commands, embeds,
// the job-selection menu and file uploads. Every blocking call runs on
// its own goroutine behind a deferred interaction response so the
// gateway loop is never stalled.
package bot

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/Thinguy99/bot-discord/internal/jobs"
	"github.com/Thinguy99/bot-discord/internal/pipeline"
	"github.com/Thinguy99/bot-discord/internal/session"
)

const selectOffreID = "offre_select"

type Bot struct {
	session  *discordgo.Session
	pipeline *pipeline.Pipeline
	jobs     *jobs.Client // nil when France Travail credentials are absent
	store    *session.Store
}

func New(token string, p *pipeline.Pipeline, jc *jobs.Client, store *session.Store) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	b := &Bot{
		session:  dg,
		pipeline: p,
		jobs:     jc,
		store:    store,
	}
	dg.AddHandler(b.onInteractionCreate)
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages
	return b, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error opening Discord session: %w", err)
	}
	if err := b.registerCommands(); err != nil {
		b.session.Close()
		return err
	}
	slog.Info("Bot is running...")
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) registerCommands() error {
	backendOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "backend",
		Description: "Moteur LLM à utiliser",
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: "Mistral", Value: "mistral"},
			{Name: "Gemini", Value: "gemini"},
		},
	}

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "scrape",
			Description: "Rechercher des offres d'emploi",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "termes",
					Description: "Les termes de recherche (ex: data scientist)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "lieu",
					Description: "Emplacement de recherche (ex: Paris)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "max_resultats",
					Description: "Nombre maximum de résultats (max 100)",
				},
			},
		},
		{
			Name:        "stage",
			Description: "Rechercher des offres de stage",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "termes",
					Description: "Les termes de recherche (défaut: stage)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "lieu",
					Description: "Emplacement de recherche (ex: Paris)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "max_resultats",
					Description: "Nombre maximum de résultats (max 100)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "age_max",
					Description: "Âge maximum des offres en jours",
				},
			},
		},
		{
			Name:        "analyser_cv",
			Description: "Analyser un CV au format PDF et en extraire les informations",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "fichier",
					Description: "Le CV au format PDF",
					Required:    true,
				},
				backendOption,
			},
		},
		{
			Name:        "comparer_cv_offre",
			Description: "Comparer votre CV avec l'offre sélectionnée",
			Options:     []*discordgo.ApplicationCommandOption{backendOption},
		},
		{
			Name:        "generer_lettre",
			Description: "Générer une lettre de motivation pour l'offre sélectionnée",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "motivation",
					Description: "Votre motivation personnelle pour ce poste",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "lien_entreprise",
					Description: "Lien particulier avec l'entreprise ou le secteur",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "contraintes",
					Description: "Informations supplémentaires à mentionner",
				},
				backendOption,
			},
		},
	}

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd); err != nil {
			return fmt.Errorf("cannot register command %q: %w", cmd.Name, err)
		}
	}
	slog.Info("Commands registered", "count", len(commands))
	return nil
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		data := i.ApplicationCommandData()
		slog.Info("Received command", "name", data.Name, "user", userID(i))
		switch data.Name {
		case "scrape":
			b.handleScrape(s, i)
		case "stage":
			b.handleStage(s, i)
		case "analyser_cv":
			b.handleAnalyzeCV(s, i)
		case "comparer_cv_offre":
			b.handleCompare(s, i)
		case "generer_lettre":
			b.handleLetter(s, i)
		}
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == selectOffreID {
			b.handleOffreSelect(s, i)
		}
	}
}
