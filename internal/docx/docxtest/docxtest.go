// Package docxtest builds minimal .docx fixtures for tests.
package docxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"os"
	"testing"
)

const header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`

const footer = `</w:body></w:document>`

// Write creates a minimal valid .docx at path containing one paragraph per
// element of paragraphs.
func Write(tb testing.TB, path string, paragraphs ...string) {
	tb.Helper()

	var body bytes.Buffer
	body.WriteString(header)
	for _, p := range paragraphs {
		body.WriteString("<w:p><w:r><w:t>")
		if err := xml.EscapeText(&body, []byte(p)); err != nil {
			tb.Fatal(err)
		}
		body.WriteString("</w:t></w:r></w:p>")
	}
	body.WriteString(footer)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		tb.Fatal(err)
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		tb.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		tb.Fatal(err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		tb.Fatal(err)
	}
}
