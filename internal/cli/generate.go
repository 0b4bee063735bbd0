package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OraMartindale/laser-cutter-files/internal/engine"
	"github.com/OraMartindale/laser-cutter-files/internal/gcode"
	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// generateSummary is the --json report of a generate run.
type generateSummary struct {
	ID           string              `json:"id"`
	Dimensions   model.BoxDimensions `json:"dimensions"`
	Joints       model.JointSet      `json:"joints"`
	CanvasWidth  float64             `json:"canvas_width"`
	CanvasHeight float64             `json:"canvas_height"`
	Panels       []panelSummary      `json:"panels"`
	Files        []string            `json:"files"`
	Warnings     []string            `json:"warnings"`
	Estimate     *jobSummary         `json:"gcode_estimate,omitempty"`
}

type panelSummary struct {
	ID     string  `json:"id"`
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jobSummary struct {
	CutLength    float64 `json:"cut_length_mm"`
	TravelLength float64 `json:"travel_length_mm"`
	Seconds      float64 `json:"seconds"`
}

func newGenerateCmd(opts *globalOptions) *cobra.Command {
	var (
		flags   boxFlags
		output  string
		formats []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate cut files for one box",
		Long: `Generate plans the finger joints for one book, lays out the five panels and
writes one file per requested format. Every file is named after --output with
the format's extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}
			box, err := flags.resolve(cmd, s)
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

			layout, err := engine.Generate(box.Dimensions, box.Geometry)
			if err != nil {
				return err
			}

			summary := generateSummary{
				ID:           layout.ID,
				Dimensions:   layout.Dimensions,
				Joints:       layout.Joints,
				CanvasWidth:  layout.CanvasWidth,
				CanvasHeight: layout.CanvasHeight,
				Warnings:     layout.Warnings,
				Files:        []string{},
			}
			for _, p := range layout.Panels {
				summary.Panels = append(summary.Panels, panelSummary{
					ID: p.ID, Kind: p.Kind.String(),
					X: p.Origin.X, Y: p.Origin.Y,
					Width: p.Width, Height: p.Height,
				})
			}

			for _, format := range selected {
				path := outputPath(output, format)
				est, err := writeOutput(format, path, layout, box.Laser)
				if err != nil {
					return fmt.Errorf("%s: %w", format, err)
				}
				if est != nil {
					summary.Estimate = newJobSummary(*est)
				}
				summary.Files = append(summary.Files, path)
			}
			s.recordOutputs(cmd.ErrOrStderr(), summary.Files)

			w := cmd.OutOrStdout()
			if opts.jsonOutput {
				return outputJSON(w, summary)
			}

			for _, warning := range layout.Warnings {
				PrintWarning(w, warning)
			}
			PrintSection(w, "Box "+layout.ID)
			PrintLabelValue(w, "Book", fmt.Sprintf("%g x %g x %g mm", box.Dimensions.BookWidth, box.Dimensions.BookHeight, box.Dimensions.BookThickness))
			PrintLabelValue(w, "Material", mm(box.Dimensions.MaterialThickness))
			PrintLabelValue(w, "Canvas", fmt.Sprintf("%.2f x %.2f mm", layout.CanvasWidth, layout.CanvasHeight))
			printJoints(w, layout.Joints)
			if summary.Estimate != nil {
				PrintLabelValue(w, "Laser time", fmt.Sprintf("%.0f s (%.0f mm cut)", summary.Estimate.Seconds, summary.Estimate.CutLength))
			}
			fmt.Fprintln(w)
			for _, f := range summary.Files {
				PrintSuccess(w, "Wrote "+f)
			}
			return nil
		},
	}

	flags.register(cmd.Flags(), true)
	cmd.Flags().StringVarP(&output, "output", "o", "box-set.svg", "Output file; other formats swap the extension")
	cmd.Flags().StringSliceVarP(&formats, "format", "f", []string{"svg"}, "Output formats: svg, dxf, pdf, gcode, xlsx, labels (repeatable)")

	return cmd
}

func newJobSummary(est gcode.JobEstimate) *jobSummary {
	return &jobSummary{
		CutLength:    est.CutLength,
		TravelLength: est.TravelLength,
		Seconds:      est.Duration.Seconds(),
	}
}
