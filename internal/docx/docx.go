// Package docx extracts plain text from .docx documents. A .docx file is a
// ZIP container whose main body lives in word/document.xml; paragraph text is
// the concatenation of the w:t runs inside each w:p element.
package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const documentPart = "word/document.xml"

// ExtractText returns the paragraph text of the document at path, one line
// per paragraph. It fails if the file is not a readable ZIP container or has
// no document body.
func ExtractText(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name != documentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening %s in %s: %w", documentPart, path, err)
		}
		defer rc.Close()
		return extractParagraphs(rc)
	}

	return "", fmt.Errorf("%s: no %s part", path, documentPart)
}

// extractParagraphs streams the document XML and collects the text runs of
// each paragraph.
func extractParagraphs(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inRun      bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parsing %s: %w", documentPart, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inRun = true
			case "tab":
				current.WriteByte('\t')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRun = false
			case "p":
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		case xml.CharData:
			if inRun {
				current.Write(t)
			}
		}
	}

	return strings.Join(paragraphs, "\n"), nil
}
