// Package normalize turns a raw LLM reply into a validated ResumeRecord.
// The reply is expected to contain a single JSON object, optionally
// wrapped in a fenced code block; the fenced form wins when both are
// present.
package normalize

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
	"github.com/Thinguy99/bot-discord/pkg/types"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	fencedAnyRe  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// Office-productivity tools the LLM chronically under-reports. Each is
// matched as a case-insensitive whole word in the source CV text, not in
// the model output.
var officeTools = []string{
	"Microsoft Office", "MS Office", "Office", "Suite Office",
	"Microsoft 365", "Office 365", "M365", "O365",
	"Excel", "Word", "PowerPoint", "PPT", "Access", "Outlook",
	"OneNote", "SharePoint", "OneDrive", "Teams", "Microsoft Teams",
}

// ExtractJSON pulls the JSON object out of an LLM reply. Precedence:
// a ```json fenced block, then any fenced block holding an object, then
// the whole trimmed reply when it is itself a bare object. Anything else
// is an explicit error, never a silent fallback.
func ExtractJSON(reply string) (string, error) {
	if m := fencedJSONRe.FindStringSubmatch(reply); m != nil {
		return m[1], nil
	}
	if m := fencedAnyRe.FindStringSubmatch(reply); m != nil {
		if inner := strings.TrimSpace(m[1]); strings.HasPrefix(inner, "{") {
			return inner, nil
		}
	}
	trimmed := strings.TrimSpace(reply)
	if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
		return trimmed, nil
	}
	return "", pkgerrors.New(pkgerrors.KindNoJSON, "normalize",
		"aucun objet JSON trouvé dans la réponse du modèle")
}

// Resume validates the extraction reply and produces the final record.
// sourceText is the raw CV text the LLM was given; the office-tool
// augmentation pass scans it, then the required fields are back-filled.
// Fenced and unfenced replies go through the exact same passes.
func Resume(reply, sourceText string) (*types.ResumeRecord, error) {
	raw, err := ExtractJSON(reply)
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(raw) {
		return nil, pkgerrors.New(pkgerrors.KindMalformedResponse, "normalize",
			"la réponse du modèle n'est pas un JSON valide")
	}

	raw, err = augmentOfficeTools(raw, sourceText)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.KindMalformedResponse, "normalize", err)
	}
	raw, err = backfillRequired(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.KindMalformedResponse, "normalize", err)
	}

	var rec types.ResumeRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.KindMalformedResponse, "normalize",
			fmt.Errorf("failed to decode resume JSON: %w", err))
	}
	ensureSlices(&rec)
	return &rec, nil
}

// augmentOfficeTools appends office tools found in the CV text to
// competences_techniques unless already listed (case-insensitively).
func augmentOfficeTools(raw, sourceText string) (string, error) {
	var err error
	if !gjson.Get(raw, "competences_techniques").Exists() {
		if raw, err = sjson.SetRaw(raw, "competences_techniques", "[]"); err != nil {
			return "", err
		}
	}
	existing := make(map[string]bool)
	for _, v := range gjson.Get(raw, "competences_techniques").Array() {
		existing[strings.ToLower(v.String())] = true
	}

	for _, term := range officeTools {
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
		if !re.MatchString(sourceText) {
			continue
		}
		normalized := capitalizeWords(term)
		if existing[strings.ToLower(normalized)] {
			continue
		}
		raw, err = sjson.Set(raw, "competences_techniques.-1", normalized)
		if err != nil {
			return "", err
		}
		existing[strings.ToLower(normalized)] = true
	}
	return raw, nil
}

// backfillRequired guarantees the five fields the rest of the system
// relies on are present even when the LLM omitted them.
func backfillRequired(raw string) (string, error) {
	var err error
	for _, field := range []string{"linkedin", "github"} {
		if !gjson.Get(raw, field).Exists() {
			if raw, err = sjson.Set(raw, field, ""); err != nil {
				return "", err
			}
		}
	}
	for _, field := range []string{"competences_techniques", "soft_skills", "certifications"} {
		if !gjson.Get(raw, field).Exists() {
			if raw, err = sjson.SetRaw(raw, field, "[]"); err != nil {
				return "", err
			}
		}
	}
	return raw, nil
}

func ensureSlices(rec *types.ResumeRecord) {
	if rec.TechnicalSkills == nil {
		rec.TechnicalSkills = []string{}
	}
	if rec.SoftSkills == nil {
		rec.SoftSkills = []string{}
	}
	if rec.Certifications == nil {
		rec.Certifications = []string{}
	}
	if rec.Languages == nil {
		rec.Languages = []string{}
	}
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
