package pdftext

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
)

// Extract returns the concatenated text of every page of a PDF, pages
// joined by a newline. A parse failure is terminal: there is no retry.
func Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.KindMalformedResponse, "pdf_extract",
			fmt.Errorf("failed to read pdf: %w", err))
	}

	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	out := builder.String()
	if strings.TrimSpace(out) == "" {
		return "", pkgerrors.New(pkgerrors.KindMalformedResponse, "pdf_extract",
			"aucun texte extractible dans le PDF")
	}
	return out, nil
}
