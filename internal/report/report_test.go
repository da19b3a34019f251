package report

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestReportSaveRoundTrip(t *testing.T) {
	r := New(RunConfig{Root: "/data", Output: "out.csv", Format: "csv", Threshold: 0.6, Epsilon: 0.05})
	r.UnreadableDocuments = append(r.UnreadableDocuments, UnreadableDocument{
		Directory: "sala1", Document: "broken.docx", Error: "not a zip",
	})
	r.UnmatchedDocuments = append(r.UnmatchedDocuments, UnmatchedDocument{
		Directory: "sala1", Document: "solo.docx", Reason: "no_candidates",
	})
	r.UnclaimedImages = append(r.UnclaimedImages, UnclaimedImage{Directory: "sala2", Image: "extra.jpg"})

	if got := r.AlertCount(); got != 3 {
		t.Errorf("AlertCount() = %d, want 3", got)
	}

	path := filepath.Join(t.TempDir(), "report.yaml")
	if err := r.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got Report
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshaling saved report: %v", err)
	}
	if got.Config.Root != "/data" || got.Config.Timestamp == "" {
		t.Errorf("config round-trip = %+v", got.Config)
	}
	if len(got.UnreadableDocuments) != 1 || got.UnreadableDocuments[0].Document != "broken.docx" {
		t.Errorf("unreadable documents round-trip = %+v", got.UnreadableDocuments)
	}
	if len(got.UnclaimedImages) != 1 || got.UnclaimedImages[0].Image != "extra.jpg" {
		t.Errorf("unclaimed images round-trip = %+v", got.UnclaimedImages)
	}
}

func TestReportSaveBadPath(t *testing.T) {
	r := New(RunConfig{})
	if err := r.Save(filepath.Join(t.TempDir(), "missing", "report.yaml")); err == nil {
		t.Error("Save() to a missing directory should fail")
	}
}
