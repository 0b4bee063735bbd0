package model

import "fmt"

// Geometry holds the constants shared by the joint planner, the panel
// builders and the exporters.
type Geometry struct {
	CornerLength   float64 `json:"corner_length"`   // Straight run kept at each panel corner (mm)
	MinSlotLength  float64 `json:"min_slot_length"` // Shortest allowed finger/slot (mm)
	MaxSlotLength  float64 `json:"max_slot_length"` // Longest allowed finger/slot (mm)
	Margin         float64 `json:"margin"`          // Gap between panels and to the canvas edge (mm)
	Scale          float64 `json:"scale"`           // Output coordinate units per mm
	InnerClearance float64 `json:"inner_clearance"` // Extra room added to book height and thickness (mm)
	StrokeWidth    float64 `json:"stroke_width"`    // Cut line width in output units
	StrokeColor    string  `json:"stroke_color"`
	StrictJoints   bool    `json:"strict_joints"` // Fail instead of warn on out-of-range segments
}

func DefaultGeometry() Geometry {
	return Geometry{
		CornerLength:   20,
		MinSlotLength:  25,
		MaxSlotLength:  50,
		Margin:         5,
		Scale:          1000,
		InnerClearance: 1,
		StrokeWidth:    76.2,
		StrokeColor:    "red",
		StrictJoints:   false,
	}
}

// Validate checks the settings for values the planner cannot work with,
// including a min/max pair that can never be satisfied.
func (g Geometry) Validate() error {
	switch {
	case g.CornerLength < 0:
		return fmt.Errorf("%w: corner length must be >= 0, got %g", ErrInvalidGeometry, g.CornerLength)
	case g.MinSlotLength <= 0:
		return fmt.Errorf("%w: min slot length must be > 0, got %g", ErrInvalidGeometry, g.MinSlotLength)
	case g.MaxSlotLength < g.MinSlotLength:
		return fmt.Errorf("%w: max slot length %g is below min slot length %g",
			ErrInvalidGeometry, g.MaxSlotLength, g.MinSlotLength)
	case g.Margin < 0:
		return fmt.Errorf("%w: margin must be >= 0, got %g", ErrInvalidGeometry, g.Margin)
	case g.Scale <= 0:
		return fmt.Errorf("%w: scale must be > 0, got %g", ErrInvalidGeometry, g.Scale)
	case g.InnerClearance < 0:
		return fmt.Errorf("%w: inner clearance must be >= 0, got %g", ErrInvalidGeometry, g.InnerClearance)
	case g.StrokeWidth <= 0:
		return fmt.Errorf("%w: stroke width must be > 0, got %g", ErrInvalidGeometry, g.StrokeWidth)
	}
	return nil
}
