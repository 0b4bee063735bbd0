package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// panelColor represents an RGB fill color for a panel drawing.
type panelColor struct {
	R, G, B int
}

// panelColors is indexed by model.PanelKind.
var panelColors = []panelColor{
	{R: 76, G: 175, B: 80},  // green: top/bottom
	{R: 33, G: 150, B: 243}, // blue: sides
	{R: 255, G: 152, B: 0},  // orange: back
}

func colorFor(kind model.PanelKind) panelColor {
	return panelColors[int(kind)%len(panelColors)]
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a cut sheet: a scaled drawing of the whole layout,
// followed by a summary page with the box dimensions, joint plans and
// panel list.
func ExportPDF(path string, layout *model.Layout) error {
	if layout == nil || len(layout.Panels) == 0 {
		return ErrEmptyLayout
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, layout)

	pdf.AddPage()
	renderSummaryPage(pdf, layout)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws every panel outline on the current PDF page.
func renderLayoutPage(pdf *fpdf.Fpdf, layout *model.Layout) {
	d := layout.Dimensions

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Book box %.0f x %.0f x %.0f mm (%.1f mm material)",
		d.BookWidth, d.BookHeight, d.BookThickness, d.MaterialThickness)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Panels: %d | Canvas: %.0f x %.0f mm | Cut length: %.0f mm",
		len(layout.Panels), layout.CanvasWidth, layout.CanvasHeight, layout.CutLength())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	// Scale the canvas into the drawing area, never enlarging it
	scale := math.Min(drawWidth/layout.CanvasWidth, drawHeight/layout.CanvasHeight)
	scale = math.Min(scale, 1)

	canvasW := layout.CanvasWidth * scale
	canvasH := layout.CanvasHeight * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Material sheet background (plywood color)
	pdf.SetFillColor(222, 196, 160)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, p := range layout.Panels {
		col := colorFor(p.Kind)
		pts := p.Path.Points()
		poly := make([]fpdf.PointType, len(pts))
		for i, pt := range pts {
			poly[i] = fpdf.PointType{X: offsetX + pt.X*scale, Y: offsetY + pt.Y*scale}
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.2)
		pdf.Polygon(poly, "FD")

		// Panel label, only if the panel is large enough
		pw := p.Width * scale
		ph := p.Height * scale
		if pw > 15 && ph > 8 {
			px := offsetX + p.Origin.X*scale
			py := offsetY + p.Origin.Y*scale
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Label
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}

			dims := fmt.Sprintf("%.1fx%.1f", p.Width, p.Height)
			dimsW := pdf.GetStringWidth(dims)
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, layout, offsetX, offsetY, canvasW, canvasH)
	drawPanelsLegend(pdf, layout, offsetY+canvasH+6)
}

// drawDimensionAnnotations adds canvas width and height labels outside the drawing.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, layout *model.Layout, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the canvas)
	widthLabel := fmt.Sprintf("%.0f mm", layout.CanvasWidth)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the canvas, rotated)
	heightLabel := fmt.Sprintf("%.0f mm", layout.CanvasHeight)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPanelsLegend renders a compact legend of the panels below the drawing.
func drawPanelsLegend(pdf *fpdf.Fpdf, layout *model.Layout, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Panels:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, p := range layout.Panels {
		col := colorFor(p.Kind)
		label := fmt.Sprintf("%s (%.1fx%.1f)", p.Label, p.Width, p.Height)
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the box parameters, joint plans and panel table.
func renderSummaryPage(pdf *fpdf.Fpdf, layout *model.Layout) {
	d := layout.Dimensions
	g := layout.Geometry

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Book Box Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Dimensions", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Book", fmt.Sprintf("%.1f x %.1f x %.1f mm", d.BookWidth, d.BookHeight, d.BookThickness)},
		{"Material Thickness", fmt.Sprintf("%.1f mm", d.MaterialThickness)},
		{"Inner Clearance", fmt.Sprintf("%.1f mm", g.InnerClearance)},
		{"Corner Length", fmt.Sprintf("%.1f mm", g.CornerLength)},
		{"Segment Range", fmt.Sprintf("%.1f - %.1f mm", g.MinSlotLength, g.MaxSlotLength)},
		{"Total Cut Length", fmt.Sprintf("%.0f mm", layout.CutLength())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	y = drawTable(pdf, y, "Joint Plans",
		[]float64{40, 35, 45, 35, 35, 35},
		[]string{"Edge", "Segments", "Length", "Fingers", "Slots", "In Range"},
		jointRows(layout.Joints))

	y += 5
	y = drawTable(pdf, y, "Panels",
		[]float64{40, 40, 45, 45, 55},
		[]string{"ID", "Panel", "Width", "Height", "Position"},
		panelRows(layout.Panels))

	if len(layout.Warnings) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNINGS", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, w := range layout.Warnings {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(250, 5, "- "+w, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by boxcut - finger-jointed book box generator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawTable renders a titled table and returns the y position below it.
func drawTable(pdf *fpdf.Fpdf, y float64, title string, colWidths []float64, headers []string, rows [][]string) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		xPos = marginLeft
		for j, cell := range row {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}
	return y
}

func jointRows(j model.JointSet) [][]string {
	var rows [][]string
	for _, plan := range []model.JointPlan{j.Width, j.Height} {
		inRange := "yes"
		if !plan.InRange {
			inRange = "no"
		}
		rows = append(rows, []string{
			plan.Family.String(),
			fmt.Sprintf("%d", plan.Count),
			fmt.Sprintf("%.2f mm", plan.Length),
			fmt.Sprintf("%d", plan.Fingers()),
			fmt.Sprintf("%d", plan.Slots()),
			inRange,
		})
	}
	return rows
}

func panelRows(panels []model.Panel) [][]string {
	rows := make([][]string, 0, len(panels))
	for _, p := range panels {
		rows = append(rows, []string{
			p.ID,
			p.Label,
			fmt.Sprintf("%.2f mm", p.Width),
			fmt.Sprintf("%.2f mm", p.Height),
			fmt.Sprintf("(%.1f, %.1f)", p.Origin.X, p.Origin.Y),
		})
	}
	return rows
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
