package exportcmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/museosabiertos/artcat/internal/export"
	"github.com/museosabiertos/artcat/internal/extract"
	"github.com/museosabiertos/artcat/internal/match"
	"github.com/museosabiertos/artcat/internal/report"
	"github.com/museosabiertos/artcat/internal/scanner"
)

// Options holds the resolved settings for one export run.
type Options struct {
	Root      string
	Output    string
	Format    string
	Delimiter rune
	Quote     rune
	Threshold float64
	Epsilon   float64
	Report    string
	NoReport  bool
}

func executeExport(opts Options) error {
	started := time.Now()

	dirs, err := scanner.Scan(opts.Root)
	if err != nil {
		return err
	}
	slog.Info("Starting export", "root", opts.Root, "directories", len(dirs))

	timestamp := started.Format("2006-01-02_15-04-05")
	if opts.Output == "" {
		ext := ".csv"
		if opts.Format == "parquet" {
			ext = ".parquet"
		}
		opts.Output = filepath.Join(opts.Root, "export_"+timestamp+ext)
	}
	if opts.Report == "" {
		opts.Report = filepath.Join(opts.Root, "report_"+timestamp+".yaml")
	}

	rep := report.New(report.RunConfig{
		Root:      opts.Root,
		Output:    opts.Output,
		Format:    opts.Format,
		Threshold: opts.Threshold,
		Epsilon:   opts.Epsilon,
	})

	matcher := match.Matcher{Threshold: opts.Threshold, Epsilon: opts.Epsilon}

	var rows []export.Row
	for _, dir := range dirs {
		rows = append(rows, processDirectory(dir, matcher, rep)...)
	}

	switch opts.Format {
	case "parquet":
		err = export.WriteParquetFile(opts.Output, rows)
	default:
		err = export.WriteCSVFile(opts.Output, rows, opts.Delimiter, opts.Quote)
	}
	if err != nil {
		return err
	}

	if !opts.NoReport {
		if err := rep.Save(opts.Report); err != nil {
			return err
		}
	}

	slog.Info("Export finished",
		"rows", len(rows),
		"alerts", rep.AlertCount(),
		"output", opts.Output,
		"elapsed", time.Since(started).Round(time.Millisecond))
	return nil
}

// processDirectory parses the documents of one directory, matches them with
// its images, and returns the output rows: one per claimed (document, image)
// pair, one per unmatched document, one per unclaimed image.
func processDirectory(dir scanner.Directory, matcher match.Matcher, rep *report.Report) []export.Row {
	dirName := filepath.Base(dir.Path)

	records := make(map[string]extract.Record, len(dir.Documents))
	var parsed []string
	for _, doc := range dir.Documents {
		rec, err := extract.Parse(filepath.Join(dir.Path, doc))
		if err != nil {
			slog.Warn("Skipping unreadable document", "directory", dirName, "document", doc, "err", err)
			rep.UnreadableDocuments = append(rep.UnreadableDocuments, report.UnreadableDocument{
				Directory: dirName, Document: doc, Error: err.Error(),
			})
			continue
		}
		rec.SourceDocument = doc
		if missing := rec.MissingFields(); len(missing) > 0 {
			slog.Warn("Fields not found in document", "directory", dirName, "document", doc, "fields", missing)
			rep.MissingFields = append(rep.MissingFields, report.MissingFields{
				Directory: dirName, Document: doc, Fields: missing,
			})
		}
		records[doc] = rec
		parsed = append(parsed, doc)
	}

	claimed := make(map[string]bool, len(dir.Images))
	var rows []export.Row
	for _, res := range matcher.MatchDirectory(parsed, dir.Images) {
		rec := records[res.Document]
		if !res.Matched() {
			slog.Warn("No image for document",
				"directory", dirName, "document", res.Document, "reason", res.Reason)
			rep.UnmatchedDocuments = append(rep.UnmatchedDocuments, report.UnmatchedDocument{
				Directory:     dirName,
				Document:      res.Document,
				Reason:        string(res.Reason),
				BestCandidate: res.BestCandidate,
				BestScore:     res.Score,
			})
			rows = append(rows, export.NewRow(rec, ""))
			continue
		}

		slog.Debug("Matched document",
			"directory", dirName, "document", res.Document,
			"images", res.Images, "score", fmt.Sprintf("%.3f", res.Score), "reason", res.Reason)
		for _, img := range res.Images {
			claimed[img] = true
			rows = append(rows, export.NewRow(rec, img))
		}
	}

	for _, img := range dir.Images {
		if claimed[img] {
			continue
		}
		slog.Warn("Image claimed by no document", "directory", dirName, "image", img)
		rep.UnclaimedImages = append(rep.UnclaimedImages, report.UnclaimedImage{
			Directory: dirName, Image: img,
		})
		rows = append(rows, export.ImageOnlyRow(img))
	}

	return rows
}
