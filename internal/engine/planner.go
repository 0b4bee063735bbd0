// Package engine computes finger-jointed box panels: it plans how each
// edge family is divided into fingers and slots, builds the closed cut
// path of every panel from those plans and lays the panels out on a
// shared canvas.
package engine

import (
	"fmt"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// maxPlanIterations caps the segment search. Each iteration adds two
// segments, so the cap is only reached for absurd length/max ratios.
const maxPlanIterations = 10000

// rangeEpsilon absorbs float error when comparing a length to its bounds.
const rangeEpsilon = 1e-9

// PlanWidthJoints divides a width-type edge into an even number of
// equally long fingers and slots.
//
// The search starts at two segments and adds two while the segments are
// longer than maxLen. If a step makes them shorter than minLen it steps
// back and accepts the longer segments. If even two segments are shorter
// than minLen the result is accepted as is and marked out of range.
func PlanWidthJoints(edgeLength, cornerLength, materialThickness, minLen, maxLen float64) (model.JointPlan, error) {
	if err := checkPlanInputs(edgeLength, cornerLength, materialThickness, minLen, maxLen); err != nil {
		return model.JointPlan{}, err
	}
	available := edgeLength + materialThickness - 2*cornerLength
	if available <= 0 {
		return model.JointPlan{}, fmt.Errorf("%w: width edge %g leaves %g mm after %g mm corners",
			ErrNoJointRun, edgeLength, available, cornerLength)
	}

	count, err := searchSegments(available, 2, widthTotal, minLen, maxLen)
	if err != nil {
		return model.JointPlan{}, fmt.Errorf("width edge %g: %w", edgeLength, err)
	}
	return newPlan(model.EdgeWidth, count, available, minLen, maxLen), nil
}

// PlanHeightJoints divides a height-type edge into an odd number of
// slots (at least three) separated by one finger fewer, so the total
// segment count is 2k-1 for k slots.
func PlanHeightJoints(edgeLength, cornerLength, materialThickness, minLen, maxLen float64) (model.JointPlan, error) {
	if err := checkPlanInputs(edgeLength, cornerLength, materialThickness, minLen, maxLen); err != nil {
		return model.JointPlan{}, err
	}
	available := edgeLength + 2*materialThickness - 2*cornerLength
	if available <= 0 {
		return model.JointPlan{}, fmt.Errorf("%w: height edge %g leaves %g mm after %g mm corners",
			ErrNoJointRun, edgeLength, available, cornerLength)
	}

	slots, err := searchSegments(available, 3, heightTotal, minLen, maxLen)
	if err != nil {
		return model.JointPlan{}, fmt.Errorf("height edge %g: %w", edgeLength, err)
	}
	return newPlan(model.EdgeHeight, heightTotal(slots), available, minLen, maxLen), nil
}

func widthTotal(n int) int { return n }

// heightTotal is slots plus fingers, where fingers = slots - 1.
func heightTotal(slots int) int { return slots + (slots - 1) }

// searchSegments walks the search parameter upward from floor in steps of
// two. total maps the parameter to the number of segments sharing the
// available length.
func searchSegments(available float64, floor int, total func(int) int, minLen, maxLen float64) (int, error) {
	n := floor
	for i := 0; i < maxPlanIterations; i++ {
		length := available / float64(total(n))
		switch {
		case inRange(length, minLen, maxLen):
			return n, nil
		case length > maxLen:
			n += 2
		case n > floor:
			// Too short after growing: the previous count was the last one
			// with long enough segments.
			return n - 2, nil
		default:
			return n, nil
		}
	}
	return 0, fmt.Errorf("%w after %d iterations (available %g, max %g)",
		ErrPlanDiverged, maxPlanIterations, available, maxLen)
}

func newPlan(family model.EdgeFamily, count int, available, minLen, maxLen float64) model.JointPlan {
	length := available / float64(count)
	return model.JointPlan{
		Family:  family,
		Count:   count,
		Length:  length,
		InRange: inRange(length, minLen, maxLen),
	}
}

func inRange(length, minLen, maxLen float64) bool {
	return length >= minLen-rangeEpsilon && length <= maxLen+rangeEpsilon
}

func checkPlanInputs(edgeLength, cornerLength, materialThickness, minLen, maxLen float64) error {
	switch {
	case edgeLength <= 0:
		return fmt.Errorf("%w: edge length must be > 0, got %g", model.ErrInvalidDimensions, edgeLength)
	case materialThickness <= 0:
		return fmt.Errorf("%w: material thickness must be > 0, got %g", model.ErrInvalidDimensions, materialThickness)
	case cornerLength < 0:
		return fmt.Errorf("%w: corner length must be >= 0, got %g", model.ErrInvalidGeometry, cornerLength)
	case cornerLength < materialThickness:
		return fmt.Errorf("%w: corner length %g is shorter than material thickness %g",
			model.ErrInvalidGeometry, cornerLength, materialThickness)
	case minLen <= 0:
		return fmt.Errorf("%w: min segment length must be > 0, got %g", model.ErrInvalidGeometry, minLen)
	case maxLen < minLen:
		return fmt.Errorf("%w: max segment length %g is below min %g", model.ErrInvalidGeometry, maxLen, minLen)
	}
	return nil
}

// PlanJoints computes the shared width and height plans for a box.
func PlanJoints(dims model.BoxDimensions, g model.Geometry) (model.JointSet, error) {
	width, err := PlanWidthJoints(dims.InnerWidth(), g.CornerLength, dims.MaterialThickness,
		g.MinSlotLength, g.MaxSlotLength)
	if err != nil {
		return model.JointSet{}, err
	}
	height, err := PlanHeightJoints(dims.InnerHeight(g), g.CornerLength, dims.MaterialThickness,
		g.MinSlotLength, g.MaxSlotLength)
	if err != nil {
		return model.JointSet{}, err
	}
	return model.JointSet{Width: width, Height: height}, nil
}
