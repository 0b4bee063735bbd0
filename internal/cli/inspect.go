package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/OraMartindale/laser-cutter-files/internal/importer"
)

func newInspectCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <dxf>",
		Short: "List the closed outlines of a DXF file",
		Long: `Inspect reads a DXF drawing, such as one written by generate, and lists the
size of every closed outline it contains, largest first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := importer.ImportDXF(args[0])
			if len(result.Errors) > 0 {
				return fmt.Errorf("%s: %s", args[0], result.Errors[0])
			}

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(w, result.Shapes)
			}

			for _, msg := range result.Warnings {
				PrintWarning(w, msg)
			}
			rows := make([][]string, 0, len(result.Shapes))
			for i, shape := range result.Shapes {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					fmt.Sprintf("%.2f", shape.Width),
					fmt.Sprintf("%.2f", shape.Height),
					strconv.Itoa(len(shape.Outline)),
				})
			}
			PrintSection(w, PrintCount(len(result.Shapes), "outline", "outlines"))
			PrintTable(w, []string{"#", "Width (mm)", "Height (mm)", "Vertices"}, rows)
			return nil
		},
	}
}
