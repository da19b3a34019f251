package exportcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/museosabiertos/artcat/internal/extract"
)

// NewInspectCmd creates the inspect command, which parses a single document
// and prints the extracted fields. Useful for checking why an export row
// came out empty.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "inspect <file.docx>",
		Short:   "Parse one document and print its extracted fields",
		Example: "  artcat inspect /colecciones/quinquela/sala1/painting1.docx",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := extract.Parse(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-18s %s\n", "Work Agent:", rec.Agent)
			fmt.Fprintf(out, "%-18s %s\n", "Work Title:", rec.Title)
			fmt.Fprintf(out, "%-18s %s\n", "Work ID:", rec.WorkID)
			fmt.Fprintf(out, "%-18s %s\n", "Work Type:", rec.WorkType)
			fmt.Fprintf(out, "%-18s %s\n", "Work Description:", rec.Description)
			fmt.Fprintf(out, "%-18s %s\n", "Work Measurements:", rec.Measurements)
			fmt.Fprintf(out, "%-18s %s\n", "Work Date:", rec.Date)

			if missing := rec.MissingFields(); len(missing) > 0 {
				fmt.Fprintf(out, "\nMissing fields: %v\n", missing)
			}
			return nil
		},
	}
}
