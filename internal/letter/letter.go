// Package letter renders a generated cover letter into a Word document
// with the fixed layout the bot has always produced: sender block,
// recipient block, date, subject line, then the letter body.
package letter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
	"github.com/Thinguy99/bot-discord/pkg/types"
)

type Emitter struct {
	outputDir string
	now       func() time.Time
}

func NewEmitter(outputDir string) *Emitter {
	return &Emitter{
		outputDir: outputDir,
		now:       time.Now,
	}
}

// Paragraphs returns the document paragraphs in order. An empty string
// stands for a deliberately blank paragraph; blank lines inside the body
// are dropped entirely instead.
func Paragraphs(rec *types.ResumeRecord, job *types.JobListing, body string, now time.Time) []string {
	paras := []string{rec.FullName}
	if rec.Address != "" {
		paras = append(paras, rec.Address)
	}
	paras = append(paras, rec.Email, rec.Phone)
	if rec.LinkedIn != "" {
		paras = append(paras, "LinkedIn: "+rec.LinkedIn)
	}
	paras = append(paras,
		"",
		job.Company,
		job.Location,
		fmt.Sprintf("Le %s", now.Format("02/01/2006")),
		fmt.Sprintf("Objet : Candidature au poste de %s", job.Title),
	)
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) != "" {
			paras = append(paras, line)
		}
	}
	return paras
}

// Emit writes the letter to <outputDir>/Lettre_<Name>_<Company>.docx and
// returns the created file's path.
func (e *Emitter) Emit(rec *types.ResumeRecord, job *types.JobListing, body string) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0o755); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.KindFileSystemFailure, "letter_emit", err)
	}

	name := fmt.Sprintf("Lettre_%s_%s.docx",
		strings.ReplaceAll(rec.FullName, " ", "_"),
		strings.ReplaceAll(job.Company, " ", "_"))
	path := filepath.Join(e.outputDir, name)

	doc := buildDocx(Paragraphs(rec, job, body, e.now()))
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.KindFileSystemFailure, "letter_emit", err)
	}
	return path, nil
}
