package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/OraMartindale/laser-cutter-files/internal/engine"
	"github.com/OraMartindale/laser-cutter-files/internal/importer"
)

// batchResult is the --json report for one book of a batch.
type batchResult struct {
	Book     string   `json:"book"`
	LayoutID string   `json:"layout_id,omitempty"`
	Files    []string `json:"files,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func newBatchCmd(opts *globalOptions) *cobra.Command {
	var (
		outputDir string
		formats   []string
		material  float64
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "batch <csv|xlsx>",
		Short: "Generate one set of cut files per book in a list",
		Long: `Batch reads a CSV or Excel file with one book per row (label, width, height,
thickness and optionally material thickness) and generates a box for each.
Files are named after the book label inside --output-dir.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") && len(s.config.DefaultFormats) > 0 {
				formats = s.config.DefaultFormats
			}
			selected, err := validateFormats(formats)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("material-thickness") {
				material = s.config.DefaultDimensions.MaterialThickness
			}

			w := cmd.OutOrStdout()
			imported := importer.ImportFile(args[0], material)
			if !opts.jsonOutput {
				for _, msg := range imported.Warnings {
					PrintWarning(w, msg)
				}
				for _, msg := range imported.Errors {
					PrintError(cmd.ErrOrStderr(), msg)
				}
			}
			if len(imported.Books) == 0 {
				return fmt.Errorf("no usable books in %s", args[0])
			}

			geometry := s.config.DefaultGeometry
			if cmd.Flags().Changed("strict") {
				geometry.StrictJoints = strict
			}

			used := make(map[string]int)
			var results []batchResult
			var written []string
			failed := 0
			for _, book := range imported.Books {
				res := batchResult{Book: book.Label}

				layout, err := engine.Generate(book.Dimensions, geometry)
				if err != nil {
					res.Error = err.Error()
					failed++
					results = append(results, res)
					continue
				}
				res.LayoutID = layout.ID
				res.Warnings = layout.Warnings

				base := uniqueName(slugify(book.Label), used)
				output := filepath.Join(outputDir, base+".svg")
				for _, format := range selected {
					path := outputPath(output, format)
					if _, err := writeOutput(format, path, layout, s.config.DefaultLaser); err != nil {
						return fmt.Errorf("%s: %s: %w", book.Label, format, err)
					}
					res.Files = append(res.Files, path)
				}
				written = append(written, res.Files...)
				results = append(results, res)
			}
			s.recordOutputs(cmd.ErrOrStderr(), written)

			if opts.jsonOutput {
				if err := outputJSON(w, results); err != nil {
					return err
				}
			} else {
				for _, res := range results {
					if res.Error != "" {
						PrintError(cmd.ErrOrStderr(), res.Book+": "+res.Error)
						continue
					}
					for _, warning := range res.Warnings {
						PrintWarning(w, res.Book+": "+warning)
					}
					PrintSuccess(w, fmt.Sprintf("%s: %s", res.Book, strings.Join(res.Files, ", ")))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %s failed", failed, PrintCount(len(results), "book", "books"))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory for the generated files")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{"svg"}, "Output formats: svg, dxf, pdf, gcode, xlsx, labels (repeatable)")
	cmd.Flags().Float64Var(&material, "material-thickness", 3, "Material thickness for rows that do not give one (mm)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail a book when a joint segment falls outside the slot length limits")

	return cmd
}

// slugify turns a book label into a file name stem.
func slugify(label string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
		} else if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "book"
	}
	return s
}

// uniqueName appends a counter to names seen before.
func uniqueName(name string, used map[string]int) string {
	used[name]++
	if n := used[name]; n > 1 {
		return fmt.Sprintf("%s-%d", name, n)
	}
	return name
}
