// Package export writes a box layout to the file formats used around a
// laser cutter: SVG and DXF for the cutting software, a PDF cut sheet,
// QR-coded panel labels and an XLSX cut list.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// ErrEmptyLayout is returned when a layout has no panels to export.
var ErrEmptyLayout = errors.New("layout has no panels")

// CutLineClass is the CSS class shared by every panel path.
const CutLineClass = "cut-line"

// WriteSVG writes the layout as an SVG document. The document size is in
// millimetres while path coordinates are in scaled units (Geometry.Scale
// per mm), so the viewBox is the canvas multiplied by the scale.
func WriteSVG(w io.Writer, layout *model.Layout) error {
	if layout == nil || len(layout.Panels) == 0 {
		return ErrEmptyLayout
	}
	g := layout.Geometry
	scale := g.Scale
	if scale <= 0 {
		scale = 1
	}

	canvas := svg.New(w)
	canvas.Startraw(
		fmt.Sprintf(`width="%smm"`, model.FormatNumber(layout.CanvasWidth)),
		fmt.Sprintf(`height="%smm"`, model.FormatNumber(layout.CanvasHeight)),
		fmt.Sprintf(`viewBox="0 0 %s %s"`,
			model.FormatNumber(layout.CanvasWidth*scale), model.FormatNumber(layout.CanvasHeight*scale)),
	)
	canvas.Title(fmt.Sprintf("Book box %s x %s x %s mm",
		model.FormatNumber(layout.Dimensions.BookWidth),
		model.FormatNumber(layout.Dimensions.BookHeight),
		model.FormatNumber(layout.Dimensions.BookThickness)))
	canvas.Def()
	canvas.Style("text/css", cutLineStyle(g))
	canvas.DefEnd()

	for _, p := range layout.Panels {
		canvas.Path(p.Path.Format(scale),
			fmt.Sprintf(`id="%s"`, p.ID),
			fmt.Sprintf(`class="%s"`, CutLineClass))
	}

	canvas.End()
	return nil
}

func cutLineStyle(g model.Geometry) string {
	color := g.StrokeColor
	if color == "" {
		color = "red"
	}
	return fmt.Sprintf(".%s {stroke:%s;stroke-width:%s;stroke-linejoin:bevel;fill:none}\n",
		CutLineClass, color, model.FormatNumber(g.StrokeWidth))
}

// ExportSVG writes the layout to an SVG file at path.
func ExportSVG(path string, layout *model.Layout) (err error) {
	if layout == nil || len(layout.Panels) == 0 {
		return ErrEmptyLayout
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()
	return WriteSVG(f, layout)
}
