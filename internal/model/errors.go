package model

import "errors"

var (
	// ErrInvalidDimensions indicates a book or material dimension that cannot produce a box.
	ErrInvalidDimensions = errors.New("invalid box dimensions")

	// ErrInvalidGeometry indicates a misconfigured geometry setting.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrInvalidProfile indicates a GCode profile that cannot drive a laser.
	ErrInvalidProfile = errors.New("invalid gcode profile")
)
