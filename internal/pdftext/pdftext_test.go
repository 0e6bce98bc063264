package pdftext

import (
	"testing"

	pkgerrors "github.com/Thinguy99/bot-discord/pkg/errors"
)

func TestExtractRejectsNonPDF(t *testing.T) {
	for _, data := range [][]byte{
		nil,
		[]byte(""),
		[]byte("ceci n'est pas un PDF"),
	} {
		_, err := Extract(data)
		if err == nil {
			t.Errorf("Extract(%q) should fail", data)
			continue
		}
		if pkgerrors.KindOf(err) != pkgerrors.KindMalformedResponse {
			t.Errorf("Extract(%q): expected MalformedResponse, got %v", data, err)
		}
	}
}
