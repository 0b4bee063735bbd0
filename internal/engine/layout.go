package engine

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// Cursor tracks where the next panel goes on the canvas. Panels are placed
// left to right in rows, separated from each other and from the canvas edge
// by a fixed margin.
type Cursor struct {
	margin    float64
	x, y      float64
	rowHeight float64
	maxX      float64
	maxY      float64
}

func NewCursor(margin float64) *Cursor {
	return &Cursor{margin: margin, x: margin, y: margin}
}

// Place reserves a w x h slot at the cursor and returns its top-left corner.
func (c *Cursor) Place(w, h float64) model.Point2D {
	origin := model.Point2D{X: c.x, Y: c.y}
	c.x += w + c.margin
	c.rowHeight = math.Max(c.rowHeight, h)
	c.maxX = math.Max(c.maxX, origin.X+w)
	c.maxY = math.Max(c.maxY, origin.Y+h)
	return origin
}

// NextRow moves the cursor below the tallest panel of the current row.
func (c *Cursor) NextRow() {
	c.x = c.margin
	c.y += c.rowHeight + c.margin
	c.rowHeight = 0
}

// Canvas returns the canvas size needed for everything placed so far.
func (c *Cursor) Canvas() (w, h float64) {
	return c.maxX + c.margin, c.maxY + c.margin
}

type builder func(model.BoxDimensions, model.Geometry, model.JointSet, model.Point2D) model.Panel

// panelSlot is one entry of the fixed layout order.
type panelSlot struct {
	id      string
	label   string
	kind    model.PanelKind
	build   builder
	newLine bool // start a new row before placing
}

var layoutOrder = []panelSlot{
	{id: "top", label: "Top", kind: model.PanelTopBottom, build: BuildTopBottom},
	{id: "bottom", label: "Bottom", kind: model.PanelTopBottom, build: BuildTopBottom},
	{id: "side-left", label: "Left side", kind: model.PanelSide, build: BuildSide, newLine: true},
	{id: "side-right", label: "Right side", kind: model.PanelSide, build: BuildSide},
	{id: "back", label: "Back", kind: model.PanelBack, build: BuildBack},
}

// Generate computes the complete layout for one box. Both joint plans are
// computed once and every panel is built from them.
func Generate(dims model.BoxDimensions, g model.Geometry) (*model.Layout, error) {
	if err := dims.Validate(); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}

	joints, err := PlanJoints(dims, g)
	if err != nil {
		return nil, err
	}

	warnings, err := checkJoints(dims, g, joints)
	if err != nil {
		return nil, err
	}

	cursor := NewCursor(g.Margin)
	panels := make([]model.Panel, 0, len(layoutOrder))
	for _, slot := range layoutOrder {
		if slot.newLine {
			cursor.NextRow()
		}
		w, h := PanelSize(slot.kind, dims, g, joints)
		panel := slot.build(dims, g, joints, cursor.Place(w, h))
		panel.ID = slot.id
		panel.Label = slot.label
		panels = append(panels, panel)
	}

	if err := CheckOverlap(panels); err != nil {
		return nil, err
	}

	canvasW, canvasH := cursor.Canvas()
	return &model.Layout{
		ID:           uuid.New().String()[:8],
		Dimensions:   dims,
		Geometry:     g,
		Joints:       joints,
		Panels:       panels,
		CanvasWidth:  canvasW,
		CanvasHeight: canvasH,
		Warnings:     warnings,
	}, nil
}

// checkJoints collects segment lengths outside the configured bounds. In
// strict mode the first one is returned as an error instead.
func checkJoints(dims model.BoxDimensions, g model.Geometry, j model.JointSet) ([]string, error) {
	var warnings []string
	for _, plan := range []model.JointPlan{j.Width, j.Height} {
		if plan.InRange {
			continue
		}
		msg := fmt.Sprintf("%s joints: %d segments of %.2f mm outside %.2f-%.2f mm",
			plan.Family, plan.Count, plan.Length, g.MinSlotLength, g.MaxSlotLength)
		warnings = append(warnings, msg)
	}

	// The back panel uses a single centred joint on its short edges,
	// which grows with the book thickness.
	if third := dims.InnerThickness(g) / 3; third > g.MaxSlotLength {
		warnings = append(warnings, fmt.Sprintf("back panel centre joint %.2f mm exceeds max %.2f mm",
			third, g.MaxSlotLength))
	}

	if g.StrictJoints && len(warnings) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrJointOutOfRange, warnings[0])
	}
	return warnings, nil
}
