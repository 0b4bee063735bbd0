package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// DXFShape is one closed outline found in a DXF drawing, translated so its
// bounding box starts at (0, 0).
type DXFShape struct {
	Outline model.Outline
	Width   float64
	Height  float64
}

// DXFResult holds the shapes read from a DXF file.
type DXFResult struct {
	Shapes   []DXFShape
	Errors   []string
	Warnings []string
}

// segment represents a line segment between two 2D points, used for
// chaining disconnected LINE entities into closed outlines.
type segment struct {
	start model.Point2D
	end   model.Point2D
}

// chainTolerance is the largest endpoint gap still treated as connected (mm).
const chainTolerance = 0.01

// ImportDXF reads the closed shapes of a DXF drawing, such as a cut file
// written by the exporter. LWPOLYLINEs are taken as is and loose LINEs are
// chained end to end. Shapes are sorted by area, largest first.
func ImportDXF(path string) DXFResult {
	result := DXFResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines []model.Outline
	var segments []segment
	skipped := 0

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := make(model.Outline, 0, len(e.Vertices))
			for _, v := range e.Vertices {
				outline = append(outline, model.Point2D{X: v[0], Y: v[1]})
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point2D{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point2D{X: e.End[0], Y: e.End[1]},
			})

		default:
			skipped++
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d unsupported entities", skipped))
	}

	outlines = append(outlines, chainSegments(segments, chainTolerance)...)
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})

	for _, outline := range outlines {
		normalized := normalizeOutline(outline)
		_, max := normalized.BoundingBox()
		if max.X < 0.01 || max.Y < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", max.X, max.Y))
			continue
		}
		result.Shapes = append(result.Shapes, DXFShape{Outline: normalized, Width: max.X, Height: max.Y})
	}

	return result
}

// chainSegments connects individual segments into closed outlines.
// Chains that do not close are dropped.
func chainSegments(segs []segment, tolerance float64) []model.Outline {
	used := make([]bool, len(segs))
	var outlines []model.Outline

	for startIdx := range segs {
		if used[startIdx] {
			continue
		}
		chain := []model.Point2D{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		// Try to extend the chain
		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, model.Outline(chain[:len(chain)-1]))
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point2D, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// outlineArea computes the absolute area of a polygon using the shoelace formula.
func outlineArea(o model.Outline) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X * o[j].Y
		area -= o[j].X * o[i].Y
	}
	return math.Abs(area) / 2
}

// normalizeOutline translates the outline so its bounding box starts at (0, 0).
func normalizeOutline(o model.Outline) model.Outline {
	if len(o) == 0 {
		return o
	}
	min, _ := o.BoundingBox()
	return o.Translate(-min.X, -min.Y)
}
