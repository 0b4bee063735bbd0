package engine

import (
	"fmt"
	"math"

	"github.com/asim/quadtree"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// CheckOverlap returns ErrPanelOverlap if any two panels intersect.
// Panel centres go into a quadtree; each panel then only runs the exact
// extents test against centres close enough to possibly intersect it.
func CheckOverlap(panels []model.Panel) error {
	if len(panels) < 2 {
		return nil
	}

	var minX, minY, maxX, maxY float64
	var maxHalfW, maxHalfH float64
	for i, p := range panels {
		lo, hi := p.Bounds()
		if i == 0 || lo.X < minX {
			minX = lo.X
		}
		if i == 0 || lo.Y < minY {
			minY = lo.Y
		}
		if i == 0 || hi.X > maxX {
			maxX = hi.X
		}
		if i == 0 || hi.Y > maxY {
			maxY = hi.Y
		}
		maxHalfW = math.Max(maxHalfW, p.Width/2)
		maxHalfH = math.Max(maxHalfH, p.Height/2)
	}

	// Add a small margin to avoid dropping centres at the edges
	halfWidth := (maxX-minX)/2 + 10
	halfHeight := (maxY-minY)/2 + 10
	tree := quadtree.New(quadtree.NewAABB(
		quadtree.NewPoint((minX+maxX)/2, (minY+maxY)/2, nil),
		quadtree.NewPoint(halfWidth, halfHeight, nil),
	), 0, nil)

	for i, p := range panels {
		cx, cy := center(p)
		tree.Insert(quadtree.NewPoint(cx, cy, i))
	}

	for i, p := range panels {
		cx, cy := center(p)
		near := quadtree.NewAABB(
			quadtree.NewPoint(cx, cy, nil),
			quadtree.NewPoint(p.Width/2+maxHalfW, p.Height/2+maxHalfH, nil),
		)
		for _, candidate := range tree.Search(near) {
			j := candidate.Data().(int)
			if j <= i {
				continue
			}
			if p.Overlaps(panels[j]) {
				return fmt.Errorf("%w: %s and %s", ErrPanelOverlap, label(p), label(panels[j]))
			}
		}
	}
	return nil
}

func center(p model.Panel) (float64, float64) {
	return p.Origin.X + p.Width/2, p.Origin.Y + p.Height/2
}

func label(p model.Panel) string {
	if p.ID != "" {
		return p.ID
	}
	return p.Kind.String()
}
