package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// BoxFileExtension is the conventional extension of saved box projects.
const BoxFileExtension = ".boxcut.json"

// SaveBox writes a box project to path as JSON.
func SaveBox(path string, p model.BoxProject) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project %s: %w", path, err)
	}
	return nil
}

// LoadBox reads a box project written by SaveBox. Missing geometry and
// laser sections fall back to their defaults, and the dimensions must
// pass validation.
func LoadBox(path string) (model.BoxProject, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.BoxProject{}, fmt.Errorf("failed to read project: %w", err)
	}

	p := model.BoxProject{
		Geometry: model.DefaultGeometry(),
		Laser:    model.DefaultLaserSettings(),
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return model.BoxProject{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}

	if err := p.Dimensions.Validate(); err != nil {
		return model.BoxProject{}, fmt.Errorf("project %s: %w", path, err)
	}
	if err := p.Geometry.Validate(); err != nil {
		return model.BoxProject{}, fmt.Errorf("project %s: %w", path, err)
	}
	return p, nil
}
