package model

import (
	"fmt"
	"strconv"
	"strings"
)

// PowerPlaceholder marks where the laser power goes in a LaserOn command.
const PowerPlaceholder = "%d"

// LaserSettings holds the cutting parameters used for GCode output.
type LaserSettings struct {
	Profile    string  `json:"profile"`     // Name of the GCode profile to use
	Power      int     `json:"power"`       // Spindle/laser S value while cutting
	FeedRate   float64 `json:"feed_rate"`   // Cutting speed mm/min
	TravelRate float64 `json:"travel_rate"` // Rapid speed mm/min, used for time estimates
	Passes     int     `json:"passes"`      // Number of times each outline is traced
}

func DefaultLaserSettings() LaserSettings {
	return LaserSettings{
		Profile:    "Grbl",
		Power:      1000,
		FeedRate:   600,
		TravelRate: 3000,
		Passes:     1,
	}
}

// GCodeProfile defines a post-processor configuration for a laser controller.
type GCodeProfile struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	IsBuiltIn   bool   `json:"is_built_in"`
	Units       string `json:"units"` // "mm" or "inches"

	StartCode []string `json:"start_code"` // Commands at start of file
	LaserOn   string   `json:"laser_on"`   // Laser on command (e.g., "M4 S%d")
	LaserOff  string   `json:"laser_off"`  // Laser off command

	RapidMove string `json:"rapid_move"` // G0 or equivalent
	FeedMove  string `json:"feed_move"`  // G1 or equivalent

	EndCode []string `json:"end_code"`

	CommentPrefix string `json:"comment_prefix"` // Comment start (e.g., ";")
	CommentSuffix string `json:"comment_suffix"` // Comment end (if needed, e.g., ")")

	DecimalPlaces int `json:"decimal_places"`
}

// LaserOnCommand renders the laser on command for the given power.
// The command is a template, never a format string.
func (p GCodeProfile) LaserOnCommand(power int) string {
	return strings.Replace(p.LaserOn, PowerPlaceholder, strconv.Itoa(power), 1)
}

// Validate checks that a profile can be used to emit GCode.
func (p GCodeProfile) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: profile has no name", ErrInvalidProfile)
	case p.LaserOn == "" || p.LaserOff == "":
		return fmt.Errorf("%w: profile %q has no laser on/off commands", ErrInvalidProfile, p.Name)
	case strings.Count(p.LaserOn, PowerPlaceholder) != 1 || strings.Count(p.LaserOn, "%") != 1:
		return fmt.Errorf("%w: profile %q laser on command %q needs exactly one %s power placeholder",
			ErrInvalidProfile, p.Name, p.LaserOn, PowerPlaceholder)
	}
	return nil
}

// Built-in GCode profiles
var GCodeProfiles = []GCodeProfile{
	{
		Name:          "Grbl",
		Description:   "Grbl 1.1 laser mode (dynamic power)",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21", "G17"},
		LaserOn:       "M4 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Marlin",
		Description:   "Marlin firmware with laser/spindle support",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "G0 X0 Y0"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
	{
		Name:          "Generic",
		Description:   "Generic standard GCode",
		IsBuiltIn:     true,
		Units:         "mm",
		StartCode:     []string{"G90", "G21"},
		LaserOn:       "M3 S%d",
		LaserOff:      "M5",
		RapidMove:     "G0",
		FeedMove:      "G1",
		EndCode:       []string{"M5", "M2"},
		CommentPrefix: ";",
		DecimalPlaces: 3,
	},
}

// CustomProfiles holds user-defined profiles loaded at startup.
var CustomProfiles []GCodeProfile

// AllProfiles returns the built-in profiles followed by the custom ones.
func AllProfiles() []GCodeProfile {
	all := make([]GCodeProfile, 0, len(GCodeProfiles)+len(CustomProfiles))
	all = append(all, GCodeProfiles...)
	all = append(all, CustomProfiles...)
	return all
}

// GetProfile returns a GCode profile by name, or the Generic profile if not found.
func GetProfile(name string) GCodeProfile {
	for _, p := range AllProfiles() {
		if p.Name == name {
			return p
		}
	}
	return GCodeProfiles[len(GCodeProfiles)-1] // Return Generic (last one)
}

// GetProfileNames returns a list of all available profile names.
func GetProfileNames() []string {
	var names []string
	for _, p := range AllProfiles() {
		names = append(names, p.Name)
	}
	return names
}
