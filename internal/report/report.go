// Package report collects the diagnostics of one export run and serializes
// them to YAML, replacing silent loss with a reviewable artifact: documents
// that could not be read, fields that could not be extracted, documents left
// unmatched and images no document claimed.
package report

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RunConfig echoes the settings the run used.
type RunConfig struct {
	Root      string  `yaml:"root"`
	Output    string  `yaml:"output"`
	Format    string  `yaml:"format"`
	Threshold float64 `yaml:"threshold"`
	Epsilon   float64 `yaml:"epsilon"`
	Timestamp string  `yaml:"timestamp"`
}

// UnreadableDocument records a document that was skipped entirely.
type UnreadableDocument struct {
	Directory string `yaml:"directory"`
	Document  string `yaml:"document"`
	Error     string `yaml:"error"`
}

// MissingFields records a parsed document with unextractable labels.
type MissingFields struct {
	Directory string   `yaml:"directory"`
	Document  string   `yaml:"document"`
	Fields    []string `yaml:"fields"`
}

// UnmatchedDocument records a document that claimed no image.
type UnmatchedDocument struct {
	Directory     string  `yaml:"directory"`
	Document      string  `yaml:"document"`
	Reason        string  `yaml:"reason"`
	BestCandidate string  `yaml:"bestcandidate,omitempty"`
	BestScore     float64 `yaml:"bestscore,omitempty"`
}

// UnclaimedImage records an image no document claimed.
type UnclaimedImage struct {
	Directory string `yaml:"directory"`
	Image     string `yaml:"image"`
}

// Report is the full YAML document for one run.
type Report struct {
	Config              RunConfig            `yaml:"config"`
	UnreadableDocuments []UnreadableDocument `yaml:"unreadabledocuments"`
	MissingFields       []MissingFields      `yaml:"missingfields"`
	UnmatchedDocuments  []UnmatchedDocument  `yaml:"unmatcheddocuments"`
	UnclaimedImages     []UnclaimedImage     `yaml:"unclaimedimages"`
}

// New returns a Report stamped with the current time.
func New(cfg RunConfig) *Report {
	cfg.Timestamp = time.Now().Format("2006-01-02_15-04-05")
	return &Report{Config: cfg}
}

// AlertCount returns the total number of recorded diagnostics.
func (r *Report) AlertCount() int {
	return len(r.UnreadableDocuments) + len(r.MissingFields) +
		len(r.UnmatchedDocuments) + len(r.UnclaimedImages)
}

// Save writes the report as YAML to path.
func (r *Report) Save(path string) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}
