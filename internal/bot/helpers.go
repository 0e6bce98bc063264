package bot

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/Thinguy99/bot-discord/internal/pipeline"
	"github.com/Thinguy99/bot-discord/internal/session"
)

// Discord hard limits on embeds and select menus.
const (
	maxEmbedTitle   = 256
	maxFieldValue   = 1024
	maxEmbedFields  = 25
	maxEmbedBudget  = 5800
	maxSelectLabel  = 100
	maxSelectValues = 25
	maxMessageText  = 1900
)

func userID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func commandOptions(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	opts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption)
	for _, opt := range i.ApplicationCommandData().Options {
		opts[opt.Name] = opt
	}
	return opts
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string, fallback int) int {
	if opt, ok := opts[name]; ok {
		return int(opt.IntValue())
	}
	return fallback
}

func deferReply(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		slog.Error("failed to defer interaction", "error", err)
		return false
	}
	return true
}

// runLocked holds the user's session slot for the duration of fn; a
// second operation for the same user fails with session.ErrBusy instead
// of running concurrently.
func runLocked(store *session.Store, userID string, fn func()) error {
	release, err := store.Begin(userID)
	if err != nil {
		return err
	}
	defer release()
	fn()
	return nil
}

func followupText(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	content = truncate(content, maxMessageText)
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	}); err != nil {
		slog.Error("failed to send followup", "error", err)
	}
}

func followupError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	slog.Error("Processing error", "error", err)
	followupText(s, i, "❌ "+pipeline.Reason(err))
}

// downloadAttachment fetches an uploaded file from Discord's CDN into
// memory; résumé PDFs are small enough that no temp file is needed.
func downloadAttachment(url string) ([]byte, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 response code: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// truncate caps s at n bytes without ever splitting a multi-byte rune,
// which matters for the bot's accented French text.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	suffix := "..."
	if n > len(suffix) {
		n -= len(suffix)
	} else {
		suffix = ""
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + suffix
}
