package export

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

// Sheet names of the cut list workbook.
const (
	PanelsSheet = "Panels"
	JointsSheet = "Joints"
)

var (
	panelHeaders = []interface{}{"ID", "Panel", "Kind", "Width (mm)", "Height (mm)", "X (mm)", "Y (mm)", "Cut Length (mm)"}
	jointHeaders = []interface{}{"Edge", "Segments", "Length (mm)", "Fingers", "Slots", "In Range"}
)

// ExportCutList writes an XLSX workbook with one row per panel and a
// second sheet describing both joint plans.
func ExportCutList(path string, layout *model.Layout) error {
	if layout == nil || len(layout.Panels) == 0 {
		return ErrEmptyLayout
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", PanelsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(JointsSheet); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", JointsSheet, err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	panels := [][]interface{}{panelHeaders}
	for _, p := range layout.Panels {
		panels = append(panels, []interface{}{
			p.ID, p.Label, p.Kind.String(),
			round2(p.Width), round2(p.Height),
			round2(p.Origin.X), round2(p.Origin.Y),
			round2(p.Path.Length()),
		})
	}
	if err := writeRows(f, PanelsSheet, panels, bold); err != nil {
		return err
	}

	joints := [][]interface{}{jointHeaders}
	for _, plan := range []model.JointPlan{layout.Joints.Width, layout.Joints.Height} {
		joints = append(joints, []interface{}{
			plan.Family.String(), plan.Count, round2(plan.Length),
			plan.Fingers(), plan.Slots(), plan.InRange,
		})
	}
	if err := writeRows(f, JointsSheet, joints, bold); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// writeRows writes rows from A1 down and styles the first one as a header.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("%s header style: %w", sheet, err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
