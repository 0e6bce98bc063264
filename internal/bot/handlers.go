package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Thinguy99/bot-discord/internal/jobs"
	"github.com/Thinguy99/bot-discord/internal/pipeline"
	"github.com/Thinguy99/bot-discord/pkg/types"
)

func (b *Bot) handleScrape(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commandOptions(i)
	terms := stringOption(opts, "termes")
	b.runSearch(s, i,
		jobs.SearchParams{
			Keywords: terms,
			Location: stringOption(opts, "lieu"),
			Limit:    intOption(opts, "max_resultats", 20),
		},
		fmt.Sprintf("Offres d'emploi pour '%s'", terms))
}

func (b *Bot) handleStage(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := commandOptions(i)
	terms := stringOption(opts, "termes")
	if terms == "" {
		terms = "stage"
	}
	b.runSearch(s, i,
		jobs.SearchParams{
			Keywords:   terms,
			Location:   stringOption(opts, "lieu"),
			Limit:      intOption(opts, "max_resultats", 20),
			Contract:   "Internship",
			MaxAgeDays: intOption(opts, "age_max", 0),
		},
		fmt.Sprintf("Offres de stage pour '%s'", terms))
}

func (b *Bot) runSearch(s *discordgo.Session, i *discordgo.InteractionCreate, params jobs.SearchParams, title string) {
	if b.jobs == nil {
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "❌ La recherche d'offres n'est pas configurée (identifiants France Travail absents).",
			},
		})
		return
	}
	if !deferReply(s, i) {
		return
	}

	go func() {
		err := runLocked(b.store, userID(i), func() {
			listings, err := b.jobs.Search(context.Background(), params)
			if err != nil {
				followupError(s, i, err)
				return
			}
			if len(listings) == 0 {
				followupText(s, i, "Aucune offre trouvée avec ces critères.")
				return
			}

			b.store.SetSearch(userID(i), listings)

			embed, shown := buildScrapeEmbed(title, params.Location, listings)
			var csvBuf bytes.Buffer
			if err := jobs.WriteCSV(&csvBuf, listings); err != nil {
				followupError(s, i, err)
				return
			}

			csvName := fmt.Sprintf("offres_%s.csv", time.Now().Format("20060102_150405"))
			msg := &discordgo.WebhookParams{
				Embeds: []*discordgo.MessageEmbed{embed},
				Files:  []*discordgo.File{{Name: csvName, Reader: &csvBuf}},
			}
			if shown > 0 {
				msg.Components = []discordgo.MessageComponent{buildOffreSelect(listings[:shown])}
			}
			if _, err := s.FollowupMessageCreate(i.Interaction, true, msg); err != nil {
				followupError(s, i, err)
			}
		})
		if err != nil {
			followupText(s, i, "⏳ "+err.Error())
		}
	}()
}

func buildScrapeEmbed(title, location string, listings []types.JobListing) (*discordgo.MessageEmbed, int) {
	summary := jobs.Summarize(listings)
	where := location
	if where == "" {
		where = "toute la France"
	}
	embed := &discordgo.MessageEmbed{
		Title:       truncate(title, maxEmbedTitle),
		Description: fmt.Sprintf("Résultats pour %s - %d offres trouvées", where, summary.Total),
		Color:       0x3498db,
	}

	if len(summary.TopCompanies) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Top entreprises",
			Value: truncate(formatCounts(summary.TopCompanies), maxFieldValue),
		})
	}
	if len(summary.TopContracts) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Types de contrat",
			Value: truncate(formatCounts(summary.TopContracts), maxFieldValue),
		})
	}

	totalChars := len(embed.Title) + len(embed.Description)
	shown := 0
	for idx, job := range listings {
		name := truncate(fmt.Sprintf("%d. %s - %s", idx+1, job.Title, job.Company), maxEmbedTitle)
		value := truncate(fmt.Sprintf("📍 %s\n📝 %s\n🔗 %s", job.Location, job.ContractType, job.URL), maxFieldValue)
		if totalChars+len(name)+len(value) > maxEmbedBudget || len(embed.Fields) >= maxEmbedFields {
			break
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: name, Value: value})
		totalChars += len(name) + len(value)
		shown = idx + 1
	}
	if shown < len(listings) {
		embed.Footer = &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("⚠️ %d offres non affichées (limite Discord atteinte)", len(listings)-shown),
		}
	}
	if shown > maxSelectValues {
		shown = maxSelectValues
	}
	return embed, shown
}

func formatCounts(counts []jobs.Counted) string {
	parts := make([]string, 0, len(counts))
	for _, c := range counts {
		parts = append(parts, fmt.Sprintf("%s (%d)", c.Value, c.Count))
	}
	return strings.Join(parts, ", ")
}

func buildOffreSelect(listings []types.JobListing) discordgo.ActionsRow {
	options := make([]discordgo.SelectMenuOption, 0, len(listings))
	for idx, job := range listings {
		options = append(options, discordgo.SelectMenuOption{
			Label:       truncate(fmt.Sprintf("%d. %s - %s", idx+1, job.Title, job.Company), maxSelectLabel),
			Value:       strconv.Itoa(idx),
			Description: truncate(fmt.Sprintf("%s - %s", job.Location, job.ContractType), maxSelectLabel),
		})
	}
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    selectOffreID,
				Placeholder: "Sélectionner une offre pour l'analyser",
				Options:     options,
			},
		},
	}
}

func (b *Bot) handleOffreSelect(s *discordgo.Session, i *discordgo.InteractionCreate) {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		return
	}
	index, err := strconv.Atoi(values[0])
	if err != nil {
		return
	}
	job, ok := b.store.SearchResult(userID(i), index)
	if !ok {
		_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "❌ Offre introuvable, relancez une recherche avec /scrape.",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
		return
	}
	b.store.SetJob(userID(i), job)

	embed := &discordgo.MessageEmbed{
		Title: "Offre sélectionnée",
		Description: fmt.Sprintf(
			"Vous avez sélectionné: %s - %s\n"+
				"Pour comparer avec votre CV, utilisez la commande `/comparer_cv_offre`\n"+
				"Pour générer une lettre de motivation, utilisez `/generer_lettre`",
			job.Title, job.Company),
		Color: 0x2ecc71,
	}
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) handleAnalyzeCV(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !deferReply(s, i) {
		return
	}

	opts := commandOptions(i)
	backend := stringOption(opts, "backend")

	var attachment *discordgo.MessageAttachment
	if opt, ok := opts["fichier"]; ok {
		if id, ok := opt.Value.(string); ok {
			attachment = i.ApplicationCommandData().Resolved.Attachments[id]
		}
	}

	go func() {
		uid := userID(i)
		err := runLocked(b.store, uid, func() {
			b.analyzeCV(s, i, uid, backend, attachment)
		})
		if err != nil {
			followupText(s, i, "⏳ "+err.Error())
		}
	}()
}

func (b *Bot) analyzeCV(s *discordgo.Session, i *discordgo.InteractionCreate, uid, backend string, attachment *discordgo.MessageAttachment) {
	if attachment == nil {
		followupText(s, i, "❌ Aucun fichier fourni.")
		return
	}
	if !strings.EqualFold(filepath.Ext(attachment.Filename), ".pdf") {
		followupText(s, i, "❌ Le fichier doit être un PDF.")
		return
	}

	data, err := downloadAttachment(attachment.URL)
	if err != nil {
		followupError(s, i, err)
		return
	}

	rec, err := b.pipeline.ExtractResume(context.Background(), backend, data)
	if err != nil {
		followupError(s, i, err)
		return
	}
	resultPath, err := b.pipeline.SaveResult(rec, attachment.Filename)
	if err != nil {
		followupError(s, i, err)
		return
	}
	b.store.SetResume(uid, rec)

	resultFile, err := os.Open(resultPath)
	if err != nil {
		followupError(s, i, err)
		return
	}
	defer resultFile.Close()

	embed := &discordgo.MessageEmbed{
		Title: "CV analysé",
		Description: fmt.Sprintf("%s — %d compétences techniques, %d expériences, %d formations",
			rec.FullName, len(rec.TechnicalSkills), len(rec.Experience), len(rec.Education)),
		Color: 0x2ecc71,
	}
	_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files:  []*discordgo.File{{Name: filepath.Base(resultPath), Reader: resultFile}},
	})
	if err != nil {
		followupError(s, i, err)
	}
}

func (b *Bot) handleCompare(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !deferReply(s, i) {
		return
	}
	backend := stringOption(commandOptions(i), "backend")

	go func() {
		uid := userID(i)
		err := runLocked(b.store, uid, func() {
			entry := b.store.Get(uid)
			if entry.Resume == nil {
				followupText(s, i, "❌ Analysez d'abord votre CV avec `/analyser_cv`.")
				return
			}
			if entry.Job == nil {
				followupText(s, i, "❌ Sélectionnez d'abord une offre avec `/scrape`.")
				return
			}

			verdict, err := b.pipeline.ScoreRelevance(context.Background(), backend, entry.Resume, entry.Job)
			if err != nil {
				followupError(s, i, err)
				return
			}

			embed := verdictEmbed(verdict, entry.Job)
			if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Embeds: []*discordgo.MessageEmbed{embed},
			}); err != nil {
				followupError(s, i, err)
			}
		})
		if err != nil {
			followupText(s, i, "⏳ "+err.Error())
		}
	}()
}

func verdictEmbed(verdict types.RelevanceVerdict, job *types.JobListing) *discordgo.MessageEmbed {
	switch verdict {
	case types.Relevant:
		return &discordgo.MessageEmbed{
			Title: "✅ Profil pertinent",
			Description: fmt.Sprintf("Votre CV correspond à plus de 70 %% à l'offre %s - %s.\n"+
				"Vous pouvez générer une lettre avec `/generer_lettre`.", job.Title, job.Company),
			Color: 0x2ecc71,
		}
	case types.NotRelevant:
		return &discordgo.MessageEmbed{
			Title:       "❌ Profil non pertinent",
			Description: fmt.Sprintf("Votre CV correspond à moins de 70 %% à l'offre %s - %s.", job.Title, job.Company),
			Color:       0xe74c3c,
		}
	default:
		return &discordgo.MessageEmbed{
			Title:       "⚠️ Verdict indéterminé",
			Description: "Le modèle n'a pas renvoyé une réponse exploitable, réessayez.",
			Color:       0xf1c40f,
		}
	}
}

func (b *Bot) handleLetter(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !deferReply(s, i) {
		return
	}

	opts := commandOptions(i)
	backend := stringOption(opts, "backend")
	personal := &types.PersonalContext{
		Motivation:  stringOption(opts, "motivation"),
		CompanyLink: stringOption(opts, "lien_entreprise"),
		Constraints: stringOption(opts, "contraintes"),
	}

	go func() {
		uid := userID(i)
		err := runLocked(b.store, uid, func() {
			entry := b.store.Get(uid)
			if entry.Resume == nil {
				followupText(s, i, "❌ Analysez d'abord votre CV avec `/analyser_cv`.")
				return
			}
			if entry.Job == nil {
				followupText(s, i, "❌ Sélectionnez d'abord une offre avec `/scrape`.")
				return
			}

			result, err := b.pipeline.GenerateLetter(context.Background(), backend, entry.Resume, entry.Job, personal)
			if err != nil {
				if errors.Is(err, pipeline.ErrNotRelevant) {
					followupText(s, i, "❌ "+pipeline.Reason(err))
					return
				}
				followupError(s, i, err)
				return
			}

			letterFile, err := os.Open(result.Path)
			if err != nil {
				followupError(s, i, err)
				return
			}
			defer letterFile.Close()

			_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
				Content: "✉️ Votre lettre de motivation :\n" + truncate(result.Content, maxMessageText-40),
				Files:   []*discordgo.File{{Name: filepath.Base(result.Path), Reader: letterFile}},
			})
			if err != nil {
				followupError(s, i, err)
			}
		})
		if err != nil {
			followupText(s, i, "⏳ "+err.Error())
		}
	}()
}
