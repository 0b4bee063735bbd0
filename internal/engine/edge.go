package engine

import "github.com/OraMartindale/laser-cutter-files/internal/model"

// Axis is the direction an edge runs along.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// Direction is the traversal sense along the edge axis.
type Direction int

const (
	Forward Direction = 1  // +X or +Y
	Reverse Direction = -1 // -X or -Y
)

// Phase selects which segment kind an edge starts with.
type Phase int

const (
	SlotFirst   Phase = iota // Even segments are recesses, odd segments fingers
	FingerFirst              // Even segments are fingers, odd segments recesses
)

// Complement returns the phase of the mating edge.
func (p Phase) Complement() Phase {
	if p == SlotFirst {
		return FingerFirst
	}
	return SlotFirst
}

// Edge describes one jointed panel edge. Fingers protrude by Depth along
// Outward (+1 or -1 on the perpendicular axis); slots stay on the base line.
type Edge struct {
	Axis    Axis
	Dir     Direction
	Outward float64
	Phase   Phase
	Plan    model.JointPlan
	Depth   float64
}

// IsFinger reports whether segment i protrudes.
func (e Edge) IsFinger(i int) bool {
	odd := i%2 == 1
	if e.Phase == SlotFirst {
		return odd
	}
	return !odd
}

// Commands renders the edge as relative path commands. The edge starts and
// ends on its base line. A reverse traversal visits the segments from the
// last index to the first, so segment i lands at the same position along
// the axis as on a forward edge of the same plan; this keeps mirrored edges
// of one panel aligned and the outline free of self-intersections.
func (e Edge) Commands() []model.Command {
	n := e.Plan.Count
	cmds := make([]model.Command, 0, n*2)
	run := float64(e.Dir) * e.Plan.Length
	for k := 0; k < n; k++ {
		i := k
		if e.Dir == Reverse {
			i = n - 1 - k
		}
		if e.IsFinger(i) {
			cmds = append(cmds,
				across(e.Axis, e.Outward*e.Depth),
				along(e.Axis, run),
				across(e.Axis, -e.Outward*e.Depth))
		} else {
			cmds = append(cmds, along(e.Axis, run))
		}
	}
	return cmds
}

// centerJoint splits span into thirds and offsets the middle third by
// depth along normal: outward for a single finger, inward for a single slot.
func centerJoint(axis Axis, dir Direction, normal, span, depth float64) []model.Command {
	third := float64(dir) * span / 3
	return []model.Command{
		along(axis, third),
		across(axis, normal*depth),
		along(axis, third),
		across(axis, -normal*depth),
		along(axis, third),
	}
}

// along moves d on the edge axis.
func along(axis Axis, d float64) model.Command {
	if axis == AxisHorizontal {
		return model.HLine(d)
	}
	return model.VLine(d)
}

// across moves d perpendicular to the edge axis.
func across(axis Axis, d float64) model.Command {
	if axis == AxisHorizontal {
		return model.VLine(d)
	}
	return model.HLine(d)
}
