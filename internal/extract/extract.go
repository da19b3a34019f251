// Package extract parses artwork description documents into records of the
// seven VRA Core fields. Extraction is best effort: fields are located by
// their textual labels anywhere in the document body, and a missing label
// yields an empty field, never an error.
package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/museosabiertos/artcat/internal/docx"
)

// Record holds the VRA Core fields extracted from one document. Absent
// fields are empty strings.
type Record struct {
	Agent          string
	Title          string
	WorkID         string
	WorkType       string
	Description    string
	Measurements   string
	Date           string
	SourceDocument string
}

// FieldNames lists the VRA Core labels in export column order.
var FieldNames = []string{
	"Work Agent",
	"Work Title",
	"Work ID",
	"Work Type",
	"Work Description",
	"Work Measurements",
	"Work Date",
}

// The source documents label fields in Spanish. Some were produced by
// conversions that mangled accented characters, so the known mojibake
// variants are accepted alongside the correct spellings.
var fieldPatterns = []struct {
	name   string
	re     *regexp.Regexp
	assign func(*Record, string)
}{
	{"Work Agent", regexp.MustCompile(`Autor:\s*(.+)`),
		func(r *Record, v string) { r.Agent = v }},
	{"Work Title", regexp.MustCompile(`(?:Título:|TÌtulo:)\s*(.+)`),
		func(r *Record, v string) { r.Title = v }},
	{"Work ID", regexp.MustCompile(`(?:N° de Inventario:|N∞ de Inventario:)\s*(.+)`),
		func(r *Record, v string) { r.WorkID = v }},
	{"Work Type", regexp.MustCompile(`(?:Técnica:|TÈcnica:)\s*(.+)`),
		func(r *Record, v string) { r.WorkType = v }},
	{"Work Description", regexp.MustCompile(`(?:Tema / Descripción:|Tema:)\s*(.+)`),
		func(r *Record, v string) { r.Description = v }},
	{"Work Measurements", regexp.MustCompile(`Medidas?:\s*(.+)`),
		func(r *Record, v string) { r.Measurements = v }},
	{"Work Date", regexp.MustCompile(`(?:Año:|Fecha:)\s*(.+)`),
		func(r *Record, v string) { r.Date = v }},
}

// Parse extracts a Record from the document at path. It returns an error
// only when the document itself cannot be read; missing fields are reported
// by MissingFields on the returned record.
func Parse(path string) (Record, error) {
	text, err := docx.ExtractText(path)
	if err != nil {
		return Record{}, fmt.Errorf("unreadable document: %w", err)
	}
	return FromText(text), nil
}

// FromText extracts a Record from already-decoded document text.
func FromText(text string) Record {
	var rec Record
	for _, fp := range fieldPatterns {
		m := fp.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := cleanField(m[1])
		if fp.name == "Work Date" {
			value = NormalizeDate(value)
		}
		fp.assign(&rec, value)
	}
	return rec
}

// MissingFields returns the labels of fields that could not be extracted,
// in export column order.
func (r Record) MissingFields() []string {
	values := map[string]string{
		"Work Agent":        r.Agent,
		"Work Title":        r.Title,
		"Work ID":           r.WorkID,
		"Work Type":         r.WorkType,
		"Work Description":  r.Description,
		"Work Measurements": r.Measurements,
		"Work Date":         r.Date,
	}
	var missing []string
	for _, name := range FieldNames {
		if values[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// cleanField trims surrounding whitespace and a single trailing period left
// over from sentence-style field values.
func cleanField(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, ".")
	return v
}
