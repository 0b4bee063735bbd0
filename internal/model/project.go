package model

import (
	"time"

	"github.com/google/uuid"
)

// BoxProject ties the inputs of one box together for save/load.
type BoxProject struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	CreatedAt  string        `json:"created_at"`
	Dimensions BoxDimensions `json:"dimensions"`
	Geometry   Geometry      `json:"geometry"`
	Laser      LaserSettings `json:"laser"`
}

func NewBoxProject(name string) BoxProject {
	if name == "" {
		name = "Untitled"
	}
	return BoxProject{
		ID:         uuid.New().String()[:8],
		Name:       name,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Dimensions: DefaultBoxDimensions(),
		Geometry:   DefaultGeometry(),
		Laser:      DefaultLaserSettings(),
	}
}
