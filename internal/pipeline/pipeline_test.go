package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Thinguy99/bot-discord/internal/letter"
	"github.com/Thinguy99/bot-discord/internal/llm"
	"github.com/Thinguy99/bot-discord/internal/prompt"
	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
	"github.com/Thinguy99/bot-discord/pkg/types"
)

// fakeLLM replays scripted replies in order and records the prompts it
// received.
type fakeLLM struct {
	replies []string
	err     error
	prompts []string
}

func (f *fakeLLM) Name() string { return "fake" }

func (f *fakeLLM) GenerateText(_ context.Context, p string) (string, error) {
	f.prompts = append(f.prompts, p)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no scripted reply left")
	}
	reply := f.replies[0]
	f.replies = f.replies[1:]
	return reply, nil
}

func newTestPipeline(t *testing.T, fake *fakeLLM) *Pipeline {
	t.Helper()
	set := llm.NewSet("fake")
	set.Register(fake)
	return New(
		set,
		prompt.NewBuilder(prompt.DefaultSkillReference()),
		letter.NewEmitter(t.TempDir()),
		t.TempDir(),
	)
}

func sampleResume() *types.ResumeRecord {
	return &types.ResumeRecord{
		FullName:        "Jean Dupont",
		Email:           "jean@example.com",
		Phone:           "0601020304",
		TechnicalSkills: []string{"Python"},
	}
}

func sampleJob() *types.JobListing {
	return &types.JobListing{
		Title:    "Data Scientist",
		Company:  "Acme Corp",
		Location: "Paris",
	}
}

func TestParseVerdict(t *testing.T) {
	tests := []struct {
		reply string
		want  types.RelevanceVerdict
	}{
		{"oui", types.Relevant},
		{" OUI \n", types.Relevant},
		{"Oui", types.Relevant},
		{"non", types.NotRelevant},
		{"NON", types.NotRelevant},
		{"Oui.", types.Indeterminate},
		{"oui, le profil correspond", types.Indeterminate},
		{"", types.Indeterminate},
		{"peut-être", types.Indeterminate},
	}
	for _, tt := range tests {
		if got := ParseVerdict(tt.reply); got != tt.want {
			t.Errorf("ParseVerdict(%q) = %v, want %v", tt.reply, got, tt.want)
		}
	}
}

func TestScoreRelevance(t *testing.T) {
	fake := &fakeLLM{replies: []string{"oui"}}
	p := newTestPipeline(t, fake)

	verdict, err := p.ScoreRelevance(context.Background(), "", sampleResume(), sampleJob())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verdict != types.Relevant {
		t.Errorf("verdict = %v, want Relevant", verdict)
	}
	if len(fake.prompts) != 1 || !strings.Contains(fake.prompts[0], "Jean Dupont") {
		t.Error("relevance prompt should carry the candidate's name")
	}
}

func TestScoreRelevanceUnknownBackend(t *testing.T) {
	p := newTestPipeline(t, &fakeLLM{})

	_, err := p.ScoreRelevance(context.Background(), "gemini", sampleResume(), sampleJob())
	if pkgerrors.KindOf(err) != pkgerrors.KindMissingCredential {
		t.Errorf("expected MissingCredential, got %v", err)
	}
}

func TestGenerateLetterBlockedWhenNotRelevant(t *testing.T) {
	fake := &fakeLLM{replies: []string{"non"}}
	p := newTestPipeline(t, fake)

	result, err := p.GenerateLetter(context.Background(), "", sampleResume(), sampleJob(), nil)
	if !errors.Is(err, ErrNotRelevant) {
		t.Fatalf("expected ErrNotRelevant, got %v", err)
	}
	if result == nil || result.Verdict != types.NotRelevant {
		t.Errorf("result should carry the NotRelevant verdict, got %+v", result)
	}
	if len(fake.prompts) != 1 {
		t.Errorf("letter prompt must not be sent after a negative verdict, got %d calls", len(fake.prompts))
	}
}

func TestGenerateLetterBlockedWhenIndeterminate(t *testing.T) {
	fake := &fakeLLM{replies: []string{"je ne sais pas"}}
	p := newTestPipeline(t, fake)

	result, err := p.GenerateLetter(context.Background(), "", sampleResume(), sampleJob(), nil)
	if !errors.Is(err, ErrNotRelevant) {
		t.Fatalf("expected ErrNotRelevant, got %v", err)
	}
	if result.Verdict != types.Indeterminate {
		t.Errorf("verdict = %v, want Indeterminate", result.Verdict)
	}
}

func TestGenerateLetter(t *testing.T) {
	body := "Madame, Monsieur,\n\nJe vous adresse ma candidature."
	fake := &fakeLLM{replies: []string{"oui", body}}
	p := newTestPipeline(t, fake)

	result, err := p.GenerateLetter(context.Background(), "", sampleResume(), sampleJob(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Verdict != types.Relevant {
		t.Errorf("verdict = %v, want Relevant", result.Verdict)
	}
	if result.Content != body {
		t.Errorf("content = %q, want the scripted body", result.Content)
	}
	if filepath.Base(result.Path) != "Lettre_Jean_Dupont_Acme_Corp.docx" {
		t.Errorf("unexpected file name %q", filepath.Base(result.Path))
	}
	if _, err := os.Stat(result.Path); err != nil {
		t.Errorf("letter file should exist: %v", err)
	}
}

func TestGenerateLetterEmptyBody(t *testing.T) {
	fake := &fakeLLM{replies: []string{"oui", "   \n  "}}
	p := newTestPipeline(t, fake)

	_, err := p.GenerateLetter(context.Background(), "", sampleResume(), sampleJob(), nil)
	if pkgerrors.KindOf(err) != pkgerrors.KindMalformedResponse {
		t.Errorf("expected MalformedResponse for an empty letter, got %v", err)
	}
}

func TestSaveResult(t *testing.T) {
	p := newTestPipeline(t, &fakeLLM{})

	path, err := p.SaveResult(sampleResume(), "CV_Jean_Dupont.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != "CV_Jean_Dupont_resultat.json" {
		t.Errorf("unexpected result name %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("result file should exist: %v", err)
	}
	if !strings.Contains(string(data), `"prenom_nom": "Jean Dupont"`) {
		t.Errorf("result JSON missing the candidate name: %s", data)
	}
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrNotRelevant, ErrNotRelevant.Error()},
		{pkgerrors.New(pkgerrors.KindMissingCredential, "llm", "x"), "clé API manquante"},
		{pkgerrors.New(pkgerrors.KindTransportFailure, "llm", "x"), "erreur de communication"},
		{pkgerrors.New(pkgerrors.KindNoJSON, "normalize", "x"), "réponse du modèle inexploitable"},
		{pkgerrors.New(pkgerrors.KindFileSystemFailure, "letter", "x"), "impossible d'écrire"},
		{errors.New("boom"), "erreur inattendue"},
	}
	for _, tt := range tests {
		if got := Reason(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("Reason(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
	}
}
