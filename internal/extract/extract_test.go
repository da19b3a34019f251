package extract

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/museosabiertos/artcat/internal/docx/docxtest"
)

func TestFromText(t *testing.T) {
	text := `Autor: Benito Quinquela Martín.
Título: Día de sol en La Boca
N° de Inventario: 0042
Técnica: Óleo sobre tela.
Tema / Descripción: Vista del Riachuelo
Medidas: 50 x 70 cm
Año: 12 de marzo de 1934`

	got := FromText(text)
	want := Record{
		Agent:        "Benito Quinquela Martín",
		Title:        "Día de sol en La Boca",
		WorkID:       "0042",
		WorkType:     "Óleo sobre tela",
		Description:  "Vista del Riachuelo",
		Measurements: "50 x 70 cm",
		Date:         "1934-03-12",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FromText() = %+v, want %+v", got, want)
	}
	if missing := got.MissingFields(); len(missing) != 0 {
		t.Errorf("MissingFields() = %v, want none", missing)
	}
}

func TestFromTextMojibakeLabels(t *testing.T) {
	text := `TÌtulo: Paisaje
N∞ de Inventario: 17
TÈcnica: Acuarela`

	got := FromText(text)
	if got.Title != "Paisaje" || got.WorkID != "17" || got.WorkType != "Acuarela" {
		t.Errorf("FromText() = %+v, mojibake labels not recognized", got)
	}
}

func TestFromTextMissingFields(t *testing.T) {
	got := FromText("Autor: Anónimo\nFecha: 1920")

	if got.Agent != "Anónimo" || got.Date != "1920" {
		t.Fatalf("FromText() = %+v", got)
	}
	want := []string{"Work Title", "Work ID", "Work Type", "Work Description", "Work Measurements"}
	if missing := got.MissingFields(); !reflect.DeepEqual(missing, want) {
		t.Errorf("MissingFields() = %v, want %v", missing, want)
	}
}

func TestParse(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cuadro.docx")
	docxtest.Write(t, path, "Autor: Anónimo", "Título: Sin título.")

	got, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Agent != "Anónimo" || got.Title != "Sin título" {
		t.Errorf("Parse() = %+v", got)
	}
}

func TestParseUnreadable(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), "missing.docx")); err == nil {
		t.Error("Parse() on a missing file should fail")
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1934", "1934"},
		{"1934 Marzo", "1934-03"},
		{"1934, marzo 05", "1934-03-05"},
		{"Marzo de 1934", "1934-03"},
		{"Octubre, 1950", "1950-10"},
		{"12 de marzo de 1934", "1934-03-12"},
		{"3/1934", "1934-03"},
		{"5-3-34", "1934-03-05"},
		{"12-10-1950", "1950-10-12"},
		{"Sin fecha", "Sin fecha"},
		{"Circa 1930", "Circa 1930"},
		{"1930's", "1930's"},
		{"S/F", "S/F"},
		{"No presenta", "No presenta"},
		{"Varias", "Varias"},
		{"1934 Brumario", "1934 Brumario"}, // unknown month name passes through
		{"  1934  ", "1934"},
	}
	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
