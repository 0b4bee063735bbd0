package engine

import "github.com/OraMartindale/laser-cutter-files/internal/model"

// Panel builders. Each one is a pure function of the box dimensions, the
// geometry, the shared joint plans and the canvas origin of the panel's
// top-left extent corner. Canvas Y grows downwards.
//
// The planned runs (corners plus segments) span the outer extents of the
// jointed edges: widthCore is the inner width plus the back panel, and
// heightCore is the inner height plus the top and bottom panels. Finger
// tips lie on the outer line and slots dip one material thickness in, so
// assembled panels enclose exactly the inner dimensions.
//
// Phases are chosen so mating edges are complementary:
//   top/bottom long edges  SlotFirst   <->  side top/bottom edges  FingerFirst
//   side back edge         SlotFirst   <->  back long edges        FingerFirst
//   top/bottom short edge  centre finger <-> back short edges      centre slot

// widthCore is the total length of a width-type edge.
func widthCore(g model.Geometry, j model.JointSet) float64 {
	return 2*g.CornerLength + j.Width.Span()
}

// heightCore is the total length of a height-type edge.
func heightCore(g model.Geometry, j model.JointSet) float64 {
	return 2*g.CornerLength + j.Height.Span()
}

// PanelSize returns the outer extents of a panel of the given kind.
func PanelSize(kind model.PanelKind, dims model.BoxDimensions, g model.Geometry, j model.JointSet) (w, h float64) {
	depth := dims.InnerThickness(g) + 2*dims.MaterialThickness
	switch kind {
	case model.PanelSide:
		return widthCore(g, j), heightCore(g, j)
	case model.PanelBack:
		return depth, heightCore(g, j)
	default:
		return widthCore(g, j), depth
	}
}

// BuildTopBottom builds a top or bottom panel: width joints on both long
// edges, a straight open edge and a single centred finger on the edge
// meeting the back panel.
func BuildTopBottom(dims model.BoxDimensions, g model.Geometry, j model.JointSet, origin model.Point2D) model.Panel {
	t := dims.MaterialThickness
	c := g.CornerLength
	depth := dims.InnerThickness(g)

	path := model.Path{model.MoveTo(origin.X, origin.Y)}

	// Top edge, left to right. The open corner reaches into the side panel.
	path = append(path, model.HLine(c), model.VLine(t))
	path = append(path, Edge{Axis: AxisHorizontal, Dir: Forward, Outward: -1, Phase: SlotFirst, Plan: j.Width, Depth: t}.Commands()...)
	path = append(path, model.HLine(c-t))

	// Back edge, downwards
	path = append(path, centerJoint(AxisVertical, Forward, 1, depth, t)...)

	// Bottom edge, right to left; mirrors the top edge
	path = append(path, model.HLine(-(c - t)))
	path = append(path, Edge{Axis: AxisHorizontal, Dir: Reverse, Outward: 1, Phase: SlotFirst, Plan: j.Width, Depth: t}.Commands()...)
	path = append(path, model.VLine(t), model.HLine(-c))

	// Open edge
	path = append(path, model.VLine(-(depth + 2*t)))
	path = append(path, model.ClosePath())

	return newPanel(model.PanelTopBottom, dims, g, j, origin, path)
}

// BuildSide builds a side panel: width joints along the top and bottom
// edges, height joints along the edge meeting the back panel, and a
// straight edge on the open side of the box.
func BuildSide(dims model.BoxDimensions, g model.Geometry, j model.JointSet, origin model.Point2D) model.Panel {
	t := dims.MaterialThickness
	c := g.CornerLength
	height := heightCore(g, j)

	path := model.Path{model.MoveTo(origin.X, origin.Y+t)}

	// Top edge. The back corner reaches into the top panel.
	path = append(path, model.HLine(c))
	path = append(path, Edge{Axis: AxisHorizontal, Dir: Forward, Outward: -1, Phase: FingerFirst, Plan: j.Width, Depth: t}.Commands()...)
	path = append(path, model.VLine(-t), model.HLine(c))

	// Back edge. Corners stay on the outer line, slots recess by t.
	path = append(path, model.VLine(c), model.HLine(-t))
	path = append(path, Edge{Axis: AxisVertical, Dir: Forward, Outward: 1, Phase: SlotFirst, Plan: j.Height, Depth: t}.Commands()...)
	path = append(path, model.HLine(t), model.VLine(c))

	// Bottom edge
	path = append(path, model.HLine(-c), model.VLine(-t))
	path = append(path, Edge{Axis: AxisHorizontal, Dir: Reverse, Outward: 1, Phase: FingerFirst, Plan: j.Width, Depth: t}.Commands()...)
	path = append(path, model.HLine(-c))

	// Open edge
	path = append(path, model.VLine(-(height - 2*t)))
	path = append(path, model.ClosePath())

	return newPanel(model.PanelSide, dims, g, j, origin, path)
}

// BuildBack builds the spine panel. Book thickness is usually small, so
// its short edges get a single centred slot instead of a finger series;
// both long edges carry height joints matching the side panels.
func BuildBack(dims model.BoxDimensions, g model.Geometry, j model.JointSet, origin model.Point2D) model.Panel {
	t := dims.MaterialThickness
	c := g.CornerLength
	width := dims.InnerThickness(g)

	path := model.Path{model.MoveTo(origin.X+t, origin.Y)}

	// Top edge: slot dips into the panel
	path = append(path, centerJoint(AxisHorizontal, Forward, 1, width, t)...)

	// Right edge
	path = append(path, model.VLine(c))
	path = append(path, Edge{Axis: AxisVertical, Dir: Forward, Outward: 1, Phase: FingerFirst, Plan: j.Height, Depth: t}.Commands()...)
	path = append(path, model.VLine(c))

	// Bottom edge
	path = append(path, centerJoint(AxisHorizontal, Reverse, -1, width, t)...)

	// Left edge
	path = append(path, model.VLine(-c))
	path = append(path, Edge{Axis: AxisVertical, Dir: Reverse, Outward: -1, Phase: FingerFirst, Plan: j.Height, Depth: t}.Commands()...)
	path = append(path, model.VLine(-c))
	path = append(path, model.ClosePath())

	return newPanel(model.PanelBack, dims, g, j, origin, path)
}

func newPanel(kind model.PanelKind, dims model.BoxDimensions, g model.Geometry, j model.JointSet, origin model.Point2D, path model.Path) model.Panel {
	w, h := PanelSize(kind, dims, g, j)
	return model.Panel{
		Kind:   kind,
		Label:  kind.String(),
		Origin: origin,
		Width:  w,
		Height: h,
		Joints: j,
		Path:   path,
	}
}
