package model

import (
	"math"
	"strconv"
	"strings"
)

// PathOp is a single SVG-style path operator.
type PathOp string

const (
	OpMove  PathOp = "M" // Absolute move; anchors the path on the canvas
	OpHLine PathOp = "h" // Relative horizontal line
	OpVLine PathOp = "v" // Relative vertical line
	OpClose PathOp = "Z"
)

// Command is one drawing instruction. For OpMove X and Y are absolute,
// for OpHLine only X is used and for OpVLine only Y, both relative.
type Command struct {
	Op PathOp  `json:"op"`
	X  float64 `json:"x,omitempty"`
	Y  float64 `json:"y,omitempty"`
}

func MoveTo(x, y float64) Command { return Command{Op: OpMove, X: x, Y: y} }
func HLine(dx float64) Command    { return Command{Op: OpHLine, X: dx} }
func VLine(dy float64) Command    { return Command{Op: OpVLine, Y: dy} }
func ClosePath() Command          { return Command{Op: OpClose} }

// Path is an ordered sequence of commands in mm.
type Path []Command

// closeTolerance absorbs float drift from summing segment lengths.
const closeTolerance = 1e-6

// Start returns the absolute anchor of the path.
func (p Path) Start() Point2D {
	for _, c := range p {
		if c.Op == OpMove {
			return Point2D{X: c.X, Y: c.Y}
		}
	}
	return Point2D{}
}

// Displacement sums every relative move of the path.
func (p Path) Displacement() (dx, dy float64) {
	for _, c := range p {
		switch c.Op {
		case OpHLine:
			dx += c.X
		case OpVLine:
			dy += c.Y
		}
	}
	return dx, dy
}

// Closed reports whether the path ends with Z and returns to its start.
func (p Path) Closed() bool {
	if len(p) == 0 || p[len(p)-1].Op != OpClose {
		return false
	}
	dx, dy := p.Displacement()
	return math.Abs(dx) < closeTolerance && math.Abs(dy) < closeTolerance
}

// Points returns the absolute vertices of the path. Zero-length moves are
// skipped and the closing vertex is not repeated.
func (p Path) Points() Outline {
	var pts Outline
	cur := Point2D{}
	for _, c := range p {
		switch c.Op {
		case OpMove:
			cur = Point2D{X: c.X, Y: c.Y}
			pts = append(pts, cur)
		case OpHLine:
			if c.X == 0 {
				continue
			}
			cur.X += c.X
			pts = appendVertex(pts, cur)
		case OpVLine:
			if c.Y == 0 {
				continue
			}
			cur.Y += c.Y
			pts = appendVertex(pts, cur)
		}
	}
	if len(pts) > 1 && pointsEqual(pts[0], pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	return pts
}

// appendVertex drops the middle point of collinear runs so consecutive
// moves along the same axis collapse into a single edge.
func appendVertex(pts Outline, v Point2D) Outline {
	n := len(pts)
	if n >= 2 {
		a, b := pts[n-2], pts[n-1]
		if (a.X == b.X && b.X == v.X) || (a.Y == b.Y && b.Y == v.Y) {
			pts[n-1] = v
			return pts
		}
	}
	return append(pts, v)
}

func pointsEqual(a, b Point2D) bool {
	return math.Abs(a.X-b.X) < closeTolerance && math.Abs(a.Y-b.Y) < closeTolerance
}

// Bounds returns the absolute bounding box of the path.
func (p Path) Bounds() (min, max Point2D) {
	return p.Points().BoundingBox()
}

// Length returns the total drawn length of the path, including the closing segment.
func (p Path) Length() float64 {
	var total float64
	for _, c := range p {
		switch c.Op {
		case OpHLine:
			total += math.Abs(c.X)
		case OpVLine:
			total += math.Abs(c.Y)
		}
	}
	if len(p) > 0 && p[len(p)-1].Op == OpClose {
		dx, dy := p.Displacement()
		total += math.Hypot(dx, dy)
	}
	return total
}

// Format renders the path as SVG path data with every coordinate
// multiplied by scale.
func (p Path) Format(scale float64) string {
	var b strings.Builder
	for i, c := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(string(c.Op))
		switch c.Op {
		case OpMove:
			b.WriteByte(' ')
			b.WriteString(FormatNumber(c.X * scale))
			b.WriteByte(',')
			b.WriteString(FormatNumber(c.Y * scale))
		case OpHLine:
			b.WriteByte(' ')
			b.WriteString(FormatNumber(c.X * scale))
		case OpVLine:
			b.WriteByte(' ')
			b.WriteString(FormatNumber(c.Y * scale))
		}
	}
	return b.String()
}

// FormatNumber prints v with at most three decimals and no trailing zeros.
func FormatNumber(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // normalise -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}
