package engine

import "errors"

var (
	// ErrNoJointRun indicates an edge too short to hold any finger after the corners.
	ErrNoJointRun = errors.New("edge too short for joints")

	// ErrPlanDiverged indicates the segment search hit its iteration cap.
	ErrPlanDiverged = errors.New("joint plan search did not converge")

	// ErrJointOutOfRange indicates a segment length outside the configured bounds in strict mode.
	ErrJointOutOfRange = errors.New("joint segment length out of range")

	// ErrPanelOverlap indicates two panels intersect on the layout canvas.
	ErrPanelOverlap = errors.New("panels overlap")
)
