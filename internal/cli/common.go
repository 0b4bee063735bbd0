package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/OraMartindale/laser-cutter-files/internal/export"
	"github.com/OraMartindale/laser-cutter-files/internal/gcode"
	"github.com/OraMartindale/laser-cutter-files/internal/model"
	"github.com/OraMartindale/laser-cutter-files/internal/project"
)

// Output formats accepted by --format, mapped to their file suffix.
var formatSuffixes = map[string]string{
	"svg":    ".svg",
	"dxf":    ".dxf",
	"pdf":    ".pdf",
	"gcode":  ".gcode",
	"xlsx":   ".xlsx",
	"labels": "-labels.pdf",
}

// formatNames returns the accepted output formats in sorted order.
func formatNames() []string {
	names := make([]string, 0, len(formatSuffixes))
	for name := range formatSuffixes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// session is the configuration a command runs with: the user's config
// file with custom profiles loaded.
type session struct {
	opts       *globalOptions
	config     model.AppConfig
	configPath string
	profiles   project.ProfileStore
}

// loadSession reads the config file named by --config, or the default one.
// Custom laser profiles next to the config file are registered so
// GetProfile can find them.
func loadSession(opts *globalOptions) (*session, error) {
	path := opts.configPath
	if path == "" {
		path = project.DefaultConfigPath()
	}
	cfg, err := project.LoadAppConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	store := project.ProfileStoreFor(path)
	profiles, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load laser profiles: %w", err)
	}
	model.CustomProfiles = profiles

	return &session{opts: opts, config: cfg, configPath: path, profiles: store}, nil
}

// recordOutputs adds the written files to the recent outputs history.
// A config that cannot be saved only produces a warning.
func (s *session) recordOutputs(w io.Writer, files []string) {
	for _, f := range files {
		s.config.AddRecentOutput(f)
	}
	if err := project.SaveAppConfig(s.configPath, s.config); err != nil {
		PrintWarning(w, fmt.Sprintf("Could not update %s: %v", s.configPath, err))
	}
}

// boxFlags are the dimension, geometry and laser flags shared by the
// commands that build a box.
type boxFlags struct {
	dims     model.BoxDimensions
	strict   bool
	project  string
	profile  string
	power    int
	feedRate float64
	passes   int
}

func (f *boxFlags) register(fs *pflag.FlagSet, withLaser bool) {
	d := model.DefaultBoxDimensions()
	fs.Float64Var(&f.dims.BookWidth, "book-width", d.BookWidth, "Book width in mm")
	fs.Float64Var(&f.dims.BookHeight, "book-height", d.BookHeight, "Book height in mm")
	fs.Float64Var(&f.dims.BookThickness, "book-thickness", d.BookThickness, "Book thickness in mm")
	fs.Float64Var(&f.dims.MaterialThickness, "material-thickness", d.MaterialThickness, "Sheet material thickness in mm")
	fs.BoolVar(&f.strict, "strict", false, "Fail when a joint segment falls outside the slot length limits")
	fs.StringVar(&f.project, "project", "", "Load dimensions and settings from a saved box project")

	if withLaser {
		l := model.DefaultLaserSettings()
		fs.StringVar(&f.profile, "profile", l.Profile, "GCode profile ("+strings.Join(model.GetProfileNames(), ", ")+")")
		fs.IntVar(&f.power, "power", l.Power, "Laser power (S value) while cutting")
		fs.Float64Var(&f.feedRate, "feed", l.FeedRate, "Cutting feed rate in mm/min")
		fs.IntVar(&f.passes, "passes", l.Passes, "Number of passes per outline")
	}
}

// resolve builds the box project for a run. Config defaults come first,
// then the --project file, then any flag given explicitly.
func (f *boxFlags) resolve(cmd *cobra.Command, s *session) (model.BoxProject, error) {
	p := model.NewBoxProject("")
	s.config.ApplyToProject(&p)

	if f.project != "" {
		loaded, err := project.LoadBox(f.project)
		if err != nil {
			return model.BoxProject{}, err
		}
		p = loaded
	}

	changed := cmd.Flags().Changed
	if changed("book-width") {
		p.Dimensions.BookWidth = f.dims.BookWidth
	}
	if changed("book-height") {
		p.Dimensions.BookHeight = f.dims.BookHeight
	}
	if changed("book-thickness") {
		p.Dimensions.BookThickness = f.dims.BookThickness
	}
	if changed("material-thickness") {
		p.Dimensions.MaterialThickness = f.dims.MaterialThickness
	}
	if changed("strict") {
		p.Geometry.StrictJoints = f.strict
	}
	if changed("profile") {
		p.Laser.Profile = f.profile
	}
	if changed("power") {
		p.Laser.Power = f.power
	}
	if changed("feed") {
		p.Laser.FeedRate = f.feedRate
	}
	if changed("passes") {
		p.Laser.Passes = f.passes
	}

	if err := p.Dimensions.Validate(); err != nil {
		return model.BoxProject{}, err
	}
	return p, nil
}

// validateFormats rejects unknown names and removes duplicates.
func validateFormats(formats []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if _, ok := formatSuffixes[f]; !ok {
			return nil, fmt.Errorf("unknown format %q (valid: %s)", f, strings.Join(formatNames(), ", "))
		}
		if !seen[f] {
			seen[f] = true
			result = append(result, f)
		}
	}
	if len(result) == 0 {
		return nil, fmt.Errorf("no output format given")
	}
	return result, nil
}

// outputPath derives the file for one format from the --output path, so
// "box-set.svg" becomes "box-set.dxf", "box-set-labels.pdf" and so on.
func outputPath(output, format string) string {
	suffix := formatSuffixes[format]
	ext := filepath.Ext(output)
	if format != "labels" && strings.EqualFold(ext, suffix) {
		return output
	}
	return strings.TrimSuffix(output, ext) + suffix
}

// writeOutput writes one format of the layout to path. For GCode it also
// returns the job estimate.
func writeOutput(format, path string, layout *model.Layout, laser model.LaserSettings) (*gcode.JobEstimate, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	switch format {
	case "svg":
		return nil, export.ExportSVG(path, layout)
	case "dxf":
		return nil, export.WriteDXF(path, layout)
	case "pdf":
		return nil, export.ExportPDF(path, layout)
	case "labels":
		return nil, export.ExportLabels(path, layout)
	case "xlsx":
		return nil, export.ExportCutList(path, layout)
	case "gcode":
		code := gcode.New(laser).Generate(layout)
		if err := os.WriteFile(path, []byte(code), 0644); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", path, err)
		}
		est := gcode.EstimateJob(gcode.ParseGCode(code), laser.TravelRate)
		return &est, nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func mm(v float64) string {
	return fmt.Sprintf("%.2f mm", v)
}
