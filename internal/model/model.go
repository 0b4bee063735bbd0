package model

import "math"

// Point2D represents a 2D coordinate in mm.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline represents a closed polygon as a sequence of 2D points.
// The outline is implicitly closed: the last point connects back to the first.
type Outline []Point2D

// BoundingBox returns the min and max corners of the outline.
func (o Outline) BoundingBox() (min, max Point2D) {
	if len(o) == 0 {
		return Point2D{}, Point2D{}
	}
	min = Point2D{X: o[0].X, Y: o[0].Y}
	max = Point2D{X: o[0].X, Y: o[0].Y}
	for _, p := range o[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return min, max
}

// Translate shifts all points by dx, dy.
func (o Outline) Translate(dx, dy float64) Outline {
	result := make(Outline, len(o))
	for i, p := range o {
		result[i] = Point2D{X: p.X + dx, Y: p.Y + dy}
	}
	return result
}

// Perimeter returns the total length of the closed outline.
func (o Outline) Perimeter() float64 {
	n := len(o)
	if n < 2 {
		return 0
	}
	var total float64
	for i := 0; i < n; i++ {
		a := o[i]
		b := o[(i+1)%n]
		total += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return total
}

// PanelKind identifies which of the five box panels a Panel is.
type PanelKind int

const (
	PanelTopBottom PanelKind = iota // Top or bottom of the box (book width x book thickness)
	PanelSide                       // Large face covering the book (book width x book height)
	PanelBack                       // Spine panel (book thickness x book height)
)

func (k PanelKind) String() string {
	switch k {
	case PanelSide:
		return "Side"
	case PanelBack:
		return "Back"
	default:
		return "Top/Bottom"
	}
}

// Panel is one computed box panel positioned on the layout canvas.
// Width and Height are the outer extents including protruding fingers.
type Panel struct {
	ID     string    `json:"id"`
	Label  string    `json:"label"`
	Kind   PanelKind `json:"kind"`
	Origin Point2D   `json:"origin"` // Top-left corner of the extents on the canvas (mm)
	Width  float64   `json:"width"`
	Height float64   `json:"height"`
	Joints JointSet  `json:"joints"` // Plans this panel was built from
	Path   Path      `json:"path"`
}

// Bounds returns the canvas-space min and max corners of the panel extents.
func (p Panel) Bounds() (min, max Point2D) {
	return p.Origin, Point2D{X: p.Origin.X + p.Width, Y: p.Origin.Y + p.Height}
}

// Overlaps reports whether two panels' extents intersect. Touching edges do not count.
func (p Panel) Overlaps(other Panel) bool {
	aMin, aMax := p.Bounds()
	bMin, bMax := other.Bounds()
	return aMin.X < bMax.X && bMin.X < aMax.X && aMin.Y < bMax.Y && bMin.Y < aMax.Y
}

// Layout is the assembled path document: every panel of one box on a shared canvas.
type Layout struct {
	ID           string        `json:"id"`
	Dimensions   BoxDimensions `json:"dimensions"`
	Geometry     Geometry      `json:"geometry"`
	Joints       JointSet      `json:"joints"`
	Panels       []Panel       `json:"panels"`
	CanvasWidth  float64       `json:"canvas_width"`  // mm
	CanvasHeight float64       `json:"canvas_height"` // mm
	Warnings     []string      `json:"warnings,omitempty"`
}

// PanelsOfKind returns the panels with the given kind in layout order.
func (l Layout) PanelsOfKind(kind PanelKind) []Panel {
	var result []Panel
	for _, p := range l.Panels {
		if p.Kind == kind {
			result = append(result, p)
		}
	}
	return result
}

// CutLength returns the total cut path length of all panels in mm.
func (l Layout) CutLength() float64 {
	var total float64
	for _, p := range l.Panels {
		total += p.Path.Length()
	}
	return total
}
