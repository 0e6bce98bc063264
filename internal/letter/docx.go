package letter

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"strings"
)

// The document is built as a minimal OOXML package: content types, the
// package relationship, and word/document.xml with one <w:p> per
// paragraph. Word, LibreOffice and Google Docs all open it as-is.

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func buildDocumentXML(paragraphs []string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		if p == "" {
			b.WriteString(`<w:p/>`)
			continue
		}
		var escaped bytes.Buffer
		_ = xml.EscapeText(&escaped, []byte(p))
		b.WriteString(`<w:p><w:r><w:t xml:space="preserve">`)
		b.Write(escaped.Bytes())
		b.WriteString(`</w:t></w:r></w:p>`)
	}
	b.WriteString(`<w:sectPr/></w:body></w:document>`)
	return b.String()
}

func buildDocx(paragraphs []string) []byte {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", relsXML},
		{"word/document.xml", buildDocumentXML(paragraphs)},
	}
	for _, part := range parts {
		f, err := w.Create(part.name)
		if err != nil {
			continue
		}
		_, _ = f.Write([]byte(part.content))
	}
	_ = w.Close()
	return buf.Bytes()
}
