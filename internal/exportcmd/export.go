// Package exportcmd wires the CLI commands to the export pipeline.
package exportcmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/museosabiertos/artcat/internal/match"
)

// NewExportCmd creates the export command, the tool's main pipeline.
func NewExportCmd() *cobra.Command {
	var (
		output    string
		format    string
		delimiter string
		quote     string
		threshold float64
		epsilon   float64
		reportTo  string
		noReport  bool
	)

	cmd := &cobra.Command{
		Use:   "export [root]",
		Short: "Export artwork documents and their images to CSV",
		Long: `Export walks one level of subdirectories under the root path, parses every
.docx artwork description it finds, pairs each document with the image files
of matching name in the same directory, and writes one output row per pairing.

Unmatched documents and unclaimed images still produce rows (with the image
or metadata columns empty) so that nothing discovered is silently lost, and
every skipped or unpaired entity is listed in a YAML run report.`,
		Example: `  # Export a collection tree to CSV next to it
  artcat export /colecciones/quinquela

  # Semicolon-delimited output at a chosen location
  artcat export /colecciones/quinquela --delimiter ';' --output /tmp/obras.csv

  # Parquet instead of CSV, stricter matching
  artcat export /colecciones/quinquela --format parquet --threshold 0.8`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := resolveRoot(args, cmd.InOrStdin(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			// Flags win; otherwise the artcat.yaml / ARTCAT_* settings apply.
			if !cmd.Flags().Changed("threshold") {
				threshold = viper.GetFloat64("match.threshold")
			}
			if !cmd.Flags().Changed("epsilon") {
				epsilon = viper.GetFloat64("match.epsilon")
			}
			if !cmd.Flags().Changed("delimiter") {
				delimiter = viper.GetString("export.delimiter")
			}
			if !cmd.Flags().Changed("quote") {
				quote = viper.GetString("export.quote")
			}
			if !cmd.Flags().Changed("format") {
				format = viper.GetString("export.format")
			}

			delimRune, err := singleRune("delimiter", delimiter)
			if err != nil {
				return err
			}
			quoteRune, err := singleRune("quote", quote)
			if err != nil {
				return err
			}
			if format != "csv" && format != "parquet" {
				return fmt.Errorf("unsupported format %q (supported: csv, parquet)", format)
			}

			opts := Options{
				Root:      root,
				Output:    output,
				Format:    format,
				Delimiter: delimRune,
				Quote:     quoteRune,
				Threshold: threshold,
				Epsilon:   epsilon,
				Report:    reportTo,
				NoReport:  noReport,
			}
			return executeExport(opts)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default export_<timestamp>.csv under the root)")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or parquet")
	cmd.Flags().StringVar(&delimiter, "delimiter", ",", "CSV field delimiter (single character)")
	cmd.Flags().StringVar(&quote, "quote", `"`, "CSV quote character (single character)")
	cmd.Flags().Float64Var(&threshold, "threshold", match.DefaultThreshold, "Minimum similarity score for a fuzzy filename match")
	cmd.Flags().Float64Var(&epsilon, "epsilon", match.DefaultEpsilon, "Score margin below which top candidates count as tied")
	cmd.Flags().StringVar(&reportTo, "report", "", "Run report file (default report_<timestamp>.yaml under the root)")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "Skip writing the run report")

	return cmd
}

// resolveRoot takes the root path from the positional argument, or prompts
// for it. No other sources are consulted.
func resolveRoot(args []string, in io.Reader, out io.Writer) (string, error) {
	if len(args) == 1 && args[0] != "" {
		return args[0], nil
	}

	fmt.Fprint(out, "Please enter the root directory: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading root directory: %w", err)
	}
	root := strings.TrimSpace(line)
	if root == "" {
		return "", fmt.Errorf("no root directory given")
	}
	return root, nil
}

func singleRune(name, value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("--%s must be a single character, got %q", name, value)
	}
	r, _ := utf8.DecodeRuneInString(value)
	return r, nil
}
