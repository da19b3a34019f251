package exportcmd

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/museosabiertos/artcat/internal/docx/docxtest"
	"github.com/museosabiertos/artcat/internal/match"
	"github.com/museosabiertos/artcat/internal/report"
)

func defaultOptions(root string) Options {
	return Options{
		Root:      root,
		Output:    filepath.Join(root, "out.csv"),
		Format:    "csv",
		Delimiter: ',',
		Quote:     '"',
		Threshold: match.DefaultThreshold,
		Epsilon:   match.DefaultEpsilon,
		Report:    filepath.Join(root, "report.yaml"),
	}
}

func writeImage(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte{0xff, 0xd8, 0xff}, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExecuteExport(t *testing.T) {
	root := t.TempDir()
	sala := filepath.Join(root, "sala1")
	if err := os.MkdirAll(sala, 0o755); err != nil {
		t.Fatal(err)
	}

	docxtest.Write(t, filepath.Join(sala, "painting1.docx"), "Título: Sunset", "Autor: X")
	writeImage(t, filepath.Join(sala, "painting1.jpg"))
	docxtest.Write(t, filepath.Join(sala, "painting2.docx"), "Título: Dawn")
	writeImage(t, filepath.Join(sala, "painting2_photo.jpg"))
	// A corrupt document must not abort the run.
	if err := os.WriteFile(filepath.Join(sala, "broken.docx"), []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeImage(t, filepath.Join(sala, "orphan.jpg"))

	opts := defaultOptions(root)
	if err := executeExport(opts); err != nil {
		t.Fatalf("executeExport() error = %v", err)
	}

	f, err := os.Open(opts.Output)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	// header + painting1 + painting2 + orphan image row
	if len(records) != 4 {
		t.Fatalf("got %d records: %v", len(records), records)
	}

	byImage := map[string][]string{}
	for _, rec := range records[1:] {
		byImage[rec[0]] = rec
	}
	if row := byImage["painting1.jpg"]; row == nil || row[2] != "Sunset" {
		t.Errorf("painting1.jpg row = %v, want Work Title Sunset", row)
	}
	if row := byImage["painting2_photo.jpg"]; row == nil || row[2] != "Dawn" {
		t.Errorf("painting2_photo.jpg row = %v, want Work Title Dawn", row)
	}
	if row := byImage["orphan.jpg"]; row == nil || row[2] != "" {
		t.Errorf("orphan.jpg row = %v, want empty metadata", row)
	}

	data, err := os.ReadFile(opts.Report)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	var rep report.Report
	if err := yaml.Unmarshal(data, &rep); err != nil {
		t.Fatalf("parsing report: %v", err)
	}
	if len(rep.UnreadableDocuments) != 1 || rep.UnreadableDocuments[0].Document != "broken.docx" {
		t.Errorf("report unreadable documents = %+v", rep.UnreadableDocuments)
	}
	if len(rep.UnclaimedImages) != 1 || rep.UnclaimedImages[0].Image != "orphan.jpg" {
		t.Errorf("report unclaimed images = %+v", rep.UnclaimedImages)
	}
}

func TestExecuteExportUnmatchedDocumentRow(t *testing.T) {
	root := t.TempDir()
	sala := filepath.Join(root, "deposito")
	if err := os.MkdirAll(sala, 0o755); err != nil {
		t.Fatal(err)
	}
	docxtest.Write(t, filepath.Join(sala, "solo.docx"), "Título: Sin imagen")

	opts := defaultOptions(root)
	if err := executeExport(opts); err != nil {
		t.Fatalf("executeExport() error = %v", err)
	}

	f, err := os.Open(opts.Output)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}
	if records[1][0] != "" || records[1][2] != "Sin imagen" {
		t.Errorf("unmatched document row = %v", records[1])
	}
}

func TestExecuteExportFatalOnBadRoot(t *testing.T) {
	opts := defaultOptions(filepath.Join(t.TempDir(), "missing"))
	if err := executeExport(opts); err == nil {
		t.Error("executeExport() on a missing root should fail")
	}
}

func TestExecuteExportDefaultOutputPaths(t *testing.T) {
	root := t.TempDir()
	sala := filepath.Join(root, "sala")
	if err := os.MkdirAll(sala, 0o755); err != nil {
		t.Fatal(err)
	}
	docxtest.Write(t, filepath.Join(sala, "obra.docx"), "Título: X")
	writeImage(t, filepath.Join(sala, "obra.jpg"))

	opts := defaultOptions(root)
	opts.Output = ""
	opts.Report = ""
	if err := executeExport(opts); err != nil {
		t.Fatalf("executeExport() error = %v", err)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	var haveCSV, haveReport bool
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "export_") && strings.HasSuffix(name, ".csv") {
			haveCSV = true
		}
		if strings.HasPrefix(name, "report_") && strings.HasSuffix(name, ".yaml") {
			haveReport = true
		}
	}
	if !haveCSV || !haveReport {
		t.Errorf("default outputs missing under root: csv=%v report=%v", haveCSV, haveReport)
	}
}
