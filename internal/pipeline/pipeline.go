// Package pipeline composes the PDF extractor, prompt builder, LLM
// backends, normalizer and document emitter into the three user-facing
// operations: extract a résumé, score relevance, generate a letter.
// Every operation short-circuits on the first failed stage.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Thinguy99/bot-discord/internal/letter"
	"github.com/Thinguy99/bot-discord/internal/llm"
	"github.com/Thinguy99/bot-discord/internal/normalize"
	"github.com/Thinguy99/bot-discord/internal/pdftext"
	"github.com/Thinguy99/bot-discord/internal/prompt"
	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
	"github.com/Thinguy99/bot-discord/pkg/types"
)

// ErrNotRelevant gates letter generation: the judged fit was below the
// bar, or the verdict could not be determined.
var ErrNotRelevant = errors.New("le profil ne correspond pas suffisamment à l'offre (moins de 70 %)")

const llmTimeout = 60 * time.Second

// The relevance prompt constrains the model to these two tokens.
const (
	affirmativeToken = "oui"
	negativeToken    = "non"
)

type Pipeline struct {
	llms       *llm.Set
	prompts    *prompt.Builder
	letters    *letter.Emitter
	resultsDir string
}

func New(llms *llm.Set, prompts *prompt.Builder, letters *letter.Emitter, resultsDir string) *Pipeline {
	return &Pipeline{
		llms:       llms,
		prompts:    prompts,
		letters:    letters,
		resultsDir: resultsDir,
	}
}

// ExtractResume runs PDF bytes through text extraction, the extraction
// prompt, the selected backend and the normalizer.
func (p *Pipeline) ExtractResume(ctx context.Context, backend string, pdfData []byte) (*types.ResumeRecord, error) {
	logger := slog.With(
		"component", "pipeline",
		"operation", "extract_resume",
		"request_id", uuid.NewString())

	client, err := p.llms.Pick(backend)
	if err != nil {
		return nil, err
	}
	logger.Info("starting resume extraction", "backend", client.Name(), "pdf_bytes", len(pdfData))

	cvText, err := pdftext.Extract(pdfData)
	if err != nil {
		logger.Error("PDF extraction failed", "error", err)
		return nil, err
	}
	logger.Debug("extracted PDF text", "text_length", len(cvText))

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()
	start := time.Now()
	reply, err := client.GenerateText(ctx, p.prompts.Extraction(cvText))
	if err != nil {
		logger.Error("resume extraction failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	logger.Info("received LLM response", "duration_ms", time.Since(start).Milliseconds(), "response_length", len(reply))

	rec, err := normalize.Resume(reply, cvText)
	if err != nil {
		logger.Error("normalization failed", "error", err)
		return nil, err
	}

	logger.Info("resume extraction completed",
		"name", rec.FullName,
		"technical_skills", len(rec.TechnicalSkills),
		"experience_entries", len(rec.Experience))
	return rec, nil
}

// SaveResult writes the record next to the results dir as
// <original-base>_resultat.json, UTF-8 with indentation.
func (p *Pipeline) SaveResult(rec *types.ResumeRecord, originalName string) (string, error) {
	if err := os.MkdirAll(p.resultsDir, 0o755); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.KindFileSystemFailure, "save_result", err)
	}
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	path := filepath.Join(p.resultsDir, base+"_resultat.json")

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.KindFileSystemFailure, "save_result", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.KindFileSystemFailure, "save_result", err)
	}
	return path, nil
}

// ScoreRelevance asks the selected backend for the binary fit judgment.
func (p *Pipeline) ScoreRelevance(ctx context.Context, backend string, rec *types.ResumeRecord, job *types.JobListing) (types.RelevanceVerdict, error) {
	logger := slog.With(
		"component", "pipeline",
		"operation", "score_relevance",
		"request_id", uuid.NewString())

	client, err := p.llms.Pick(backend)
	if err != nil {
		return types.Indeterminate, err
	}

	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()
	reply, err := client.GenerateText(ctx, prompt.Relevance(rec, job))
	if err != nil {
		logger.Error("relevance check failed", "error", err)
		return types.Indeterminate, err
	}

	verdict := ParseVerdict(reply)
	logger.Info("relevance check completed", "verdict", verdict.String(), "reply", strings.TrimSpace(reply))
	return verdict, nil
}

// ParseVerdict maps the constrained reply onto the tagged verdict.
// Anything that is not exactly the affirmative or negative token (after
// trimming and lower-casing) is Indeterminate.
func ParseVerdict(reply string) types.RelevanceVerdict {
	switch strings.ToLower(strings.TrimSpace(reply)) {
	case affirmativeToken:
		return types.Relevant
	case negativeToken:
		return types.NotRelevant
	default:
		return types.Indeterminate
	}
}

type LetterResult struct {
	Path    string
	Content string
	Verdict types.RelevanceVerdict
}

// GenerateLetter runs the full letter flow: relevance gate, letter
// prompt, document emission.
func (p *Pipeline) GenerateLetter(ctx context.Context, backend string, rec *types.ResumeRecord, job *types.JobListing, personal *types.PersonalContext) (*LetterResult, error) {
	logger := slog.With(
		"component", "pipeline",
		"operation", "generate_letter",
		"request_id", uuid.NewString())

	verdict, err := p.ScoreRelevance(ctx, backend, rec, job)
	if err != nil {
		return nil, err
	}
	if verdict != types.Relevant {
		logger.Info("letter generation blocked", "verdict", verdict.String())
		return &LetterResult{Verdict: verdict}, ErrNotRelevant
	}

	client, err := p.llms.Pick(backend)
	if err != nil {
		return nil, err
	}

	genCtx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()
	start := time.Now()
	content, err := client.GenerateText(genCtx, prompt.Letter(rec, job, personal))
	if err != nil {
		logger.Error("letter generation failed", "error", err, "duration_ms", time.Since(start).Milliseconds())
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.KindMalformedResponse, "generate_letter",
			"le modèle a renvoyé une lettre vide")
	}

	path, err := p.letters.Emit(rec, job, content)
	if err != nil {
		logger.Error("letter emission failed", "error", err)
		return nil, err
	}

	logger.Info("letter generated", "path", path, "duration_ms", time.Since(start).Milliseconds())
	return &LetterResult{Path: path, Content: content, Verdict: verdict}, nil
}

// Reason turns a pipeline failure into the French sentence shown to the
// end user.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrNotRelevant):
		return ErrNotRelevant.Error()
	case pkgerrors.KindOf(err) == pkgerrors.KindMissingCredential:
		return "clé API manquante pour le backend sélectionné"
	case pkgerrors.KindOf(err) == pkgerrors.KindTransportFailure:
		return "erreur de communication avec le service distant"
	case pkgerrors.KindOf(err) == pkgerrors.KindNoJSON,
		pkgerrors.KindOf(err) == pkgerrors.KindMalformedResponse:
		return "réponse du modèle inexploitable"
	case pkgerrors.KindOf(err) == pkgerrors.KindFileSystemFailure:
		return "impossible d'écrire le fichier de sortie"
	default:
		return fmt.Sprintf("erreur inattendue : %v", err)
	}
}
