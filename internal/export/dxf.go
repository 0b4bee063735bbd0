package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// CutLayer is the DXF layer holding every panel outline.
const CutLayer = "CUT"

// WriteDXF saves the layout as a DXF drawing in millimetres. Each panel is
// a closed chain of LINE entities on CutLayer. DXF Y points up, so Y is
// mirrored about the canvas height.
func WriteDXF(path string, layout *model.Layout) error {
	if layout == nil || len(layout.Panels) == 0 {
		return ErrEmptyLayout
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(CutLayer, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", CutLayer, err)
	}

	for _, p := range layout.Panels {
		pts := p.Path.Points()
		if len(pts) < 3 {
			return fmt.Errorf("panel %s: outline has %d points", p.ID, len(pts))
		}
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if _, err := d.Line(a.X, layout.CanvasHeight-a.Y, 0, b.X, layout.CanvasHeight-b.Y, 0); err != nil {
				return fmt.Errorf("panel %s: %w", p.ID, err)
			}
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
