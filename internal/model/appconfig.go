package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied when a flag is not given on the command line
	DefaultDimensions BoxDimensions `json:"default_dimensions"`
	DefaultGeometry   Geometry      `json:"default_geometry"`
	DefaultLaser      LaserSettings `json:"default_laser"`
	DefaultFormats    []string      `json:"default_formats"` // e.g. "svg", "dxf"
	OutputDir         string        `json:"output_dir"`

	RecentOutputs []string `json:"recent_outputs"`
}

// maxRecentOutputs bounds the RecentOutputs history.
const maxRecentOutputs = 10

// DefaultAppConfig returns an AppConfig populated with the built-in defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultDimensions: DefaultBoxDimensions(),
		DefaultGeometry:   DefaultGeometry(),
		DefaultLaser:      DefaultLaserSettings(),
		DefaultFormats:    []string{"svg"},
		OutputDir:         ".",
		RecentOutputs:     []string{},
	}
}

// ApplyToProject copies the default values from AppConfig into a BoxProject.
// This is used when creating a new project so it inherits the user's saved defaults.
func (c AppConfig) ApplyToProject(p *BoxProject) {
	p.Dimensions = c.DefaultDimensions
	p.Geometry = c.DefaultGeometry
	p.Laser = c.DefaultLaser
}

// AddRecentOutput records path as the most recent output, removing any
// earlier occurrence and trimming the history.
func (c *AppConfig) AddRecentOutput(path string) {
	recent := []string{path}
	for _, r := range c.RecentOutputs {
		if r != path {
			recent = append(recent, r)
		}
	}
	if len(recent) > maxRecentOutputs {
		recent = recent[:maxRecentOutputs]
	}
	c.RecentOutputs = recent
}
