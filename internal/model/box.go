package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Default book and material dimensions in mm.
// 3 mm is the thickness of 1/8" plywood.
const (
	DefaultBookWidth         = 150.0
	DefaultBookHeight        = 200.0
	DefaultBookThickness     = 30.0
	DefaultMaterialThickness = 3.0
)

// BoxDimensions are the four user inputs that fully determine a box.
type BoxDimensions struct {
	BookWidth         float64 `json:"book_width"`         // mm
	BookHeight        float64 `json:"book_height"`        // mm
	BookThickness     float64 `json:"book_thickness"`     // mm
	MaterialThickness float64 `json:"material_thickness"` // Sheet thickness of the box material in mm
}

func DefaultBoxDimensions() BoxDimensions {
	return BoxDimensions{
		BookWidth:         DefaultBookWidth,
		BookHeight:        DefaultBookHeight,
		BookThickness:     DefaultBookThickness,
		MaterialThickness: DefaultMaterialThickness,
	}
}

// Validate rejects non-positive dimensions and a material thicker than the book itself.
func (d BoxDimensions) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"book width", d.BookWidth},
		{"book height", d.BookHeight},
		{"book thickness", d.BookThickness},
		{"material thickness", d.MaterialThickness},
	}
	for _, f := range fields {
		if f.value <= 0 {
			return fmt.Errorf("%w: %s must be > 0, got %g", ErrInvalidDimensions, f.name, f.value)
		}
	}
	if d.MaterialThickness >= d.BookWidth || d.MaterialThickness >= d.BookHeight {
		return fmt.Errorf("%w: material thickness %g leaves no usable edge", ErrInvalidDimensions, d.MaterialThickness)
	}
	return nil
}

// InnerWidth is the interior width of the box.
func (d BoxDimensions) InnerWidth() float64 {
	return d.BookWidth
}

// InnerHeight is the interior height of the box, leaving the book some room.
func (d BoxDimensions) InnerHeight(g Geometry) float64 {
	return d.BookHeight + g.InnerClearance
}

// InnerThickness is the interior depth of the box, leaving the book some room.
func (d BoxDimensions) InnerThickness(g Geometry) float64 {
	return d.BookThickness + g.InnerClearance
}

// Book is one entry of a batch: a labelled set of box dimensions.
type Book struct {
	ID         string        `json:"id"`
	Label      string        `json:"label"`
	Dimensions BoxDimensions `json:"dimensions"`
}

func NewBook(label string, dims BoxDimensions) Book {
	return Book{
		ID:         uuid.New().String()[:8],
		Label:      label,
		Dimensions: dims,
	}
}
