package export

import (
	"bytes"
	"encoding/xml"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/OraMartindale/laser-cutter-files/internal/engine"
	"github.com/OraMartindale/laser-cutter-files/internal/importer"
	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

func buildTestLayout(t *testing.T) *model.Layout {
	t.Helper()
	layout, err := engine.Generate(model.DefaultBoxDimensions(), model.DefaultGeometry())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	return layout
}

type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	Width   string   `xml:"width,attr"`
	Height  string   `xml:"height,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Style   string   `xml:"defs>style"`
	Paths   []struct {
		ID    string `xml:"id,attr"`
		Class string `xml:"class,attr"`
		D     string `xml:"d,attr"`
	} `xml:"path"`
}

// ─── SVG ───────────────────────────────────────────────────

func TestWriteSVG_Document(t *testing.T) {
	layout := buildTestLayout(t)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, layout); err != nil {
		t.Fatalf("WriteSVG returned error: %v", err)
	}

	var doc svgDoc
	if err := xml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid XML: %v\n%s", err, buf.String())
	}

	if doc.Width != "363mm" || doc.Height != "259mm" {
		t.Errorf("expected 363mm x 259mm, got %s x %s", doc.Width, doc.Height)
	}
	if doc.ViewBox != "0 0 363000 259000" {
		t.Errorf("unexpected viewBox %q", doc.ViewBox)
	}
	if !strings.Contains(doc.Style, ".cut-line {stroke:red;stroke-width:76.2;stroke-linejoin:bevel;fill:none}") {
		t.Errorf("unexpected style block %q", doc.Style)
	}

	if len(doc.Paths) != len(layout.Panels) {
		t.Fatalf("expected %d paths, got %d", len(layout.Panels), len(doc.Paths))
	}
	for i, p := range doc.Paths {
		panel := layout.Panels[i]
		if p.ID != panel.ID {
			t.Errorf("path %d: expected id %q, got %q", i, panel.ID, p.ID)
		}
		if p.Class != CutLineClass {
			t.Errorf("path %d: expected class %q, got %q", i, CutLineClass, p.Class)
		}
		if p.D != panel.Path.Format(layout.Geometry.Scale) {
			t.Errorf("path %d: d attribute does not match panel path", i)
		}
		if !strings.HasPrefix(p.D, "M ") || !strings.HasSuffix(p.D, " Z") {
			t.Errorf("path %d: expected M ... Z, got %q", i, p.D)
		}
	}
}

func TestWriteSVG_Deterministic(t *testing.T) {
	layout := buildTestLayout(t)

	var a, b bytes.Buffer
	if err := WriteSVG(&a, layout); err != nil {
		t.Fatal(err)
	}
	if err := WriteSVG(&b, layout); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Error("expected identical output for the same layout")
	}
}

func TestWriteSVG_CustomStroke(t *testing.T) {
	layout := buildTestLayout(t)
	layout.Geometry.StrokeColor = "#0000ff"
	layout.Geometry.StrokeWidth = 10

	var buf bytes.Buffer
	if err := WriteSVG(&buf, layout); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "stroke:#0000ff;stroke-width:10;") {
		t.Error("expected custom stroke in style block")
	}
}

func TestWriteSVG_EmptyLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, &model.Layout{}); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("expected ErrEmptyLayout, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("expected nothing written for an empty layout")
	}
}

func TestExportSVG_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box-set.svg")
	if err := ExportSVG(path, buildTestLayout(t)); err != nil {
		t.Fatalf("ExportSVG returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output file not created: %v", err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("expected a complete SVG document")
	}
}

func TestExportSVG_EmptyLayoutCreatesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.svg")
	if err := ExportSVG(path, nil); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("expected ErrEmptyLayout, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no file for an empty layout")
	}
}

// ─── DXF ───────────────────────────────────────────────────

func TestWriteDXF_RoundTrip(t *testing.T) {
	layout := buildTestLayout(t)
	path := filepath.Join(t.TempDir(), "box-set.dxf")

	if err := WriteDXF(path, layout); err != nil {
		t.Fatalf("WriteDXF returned error: %v", err)
	}

	result := importer.ImportDXF(path)
	if len(result.Errors) > 0 {
		t.Fatalf("reading DXF back failed: %v", result.Errors)
	}
	if len(result.Shapes) != len(layout.Panels) {
		t.Fatalf("expected %d shapes, got %d", len(layout.Panels), len(result.Shapes))
	}

	type size struct{ w, h float64 }
	var want, got []size
	for _, p := range layout.Panels {
		want = append(want, size{p.Width, p.Height})
	}
	for _, s := range result.Shapes {
		got = append(got, size{s.Width, s.Height})
		if len(s.Outline) < 4 {
			t.Errorf("shape has only %d vertices", len(s.Outline))
		}
	}
	less := func(s []size) func(i, j int) bool {
		return func(i, j int) bool {
			if s[i].w != s[j].w {
				return s[i].w < s[j].w
			}
			return s[i].h < s[j].h
		}
	}
	sort.Slice(want, less(want))
	sort.Slice(got, less(got))
	for i := range want {
		if math.Abs(want[i].w-got[i].w) > 1e-3 || math.Abs(want[i].h-got[i].h) > 1e-3 {
			t.Errorf("shape %d: expected %.3f x %.3f, got %.3f x %.3f", i, want[i].w, want[i].h, got[i].w, got[i].h)
		}
	}
}

func TestWriteDXF_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	if err := WriteDXF(path, &model.Layout{}); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("expected ErrEmptyLayout, got %v", err)
	}
}

// ─── PDF ───────────────────────────────────────────────────

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cut-sheet.pdf")

	if err := ExportPDF(path, buildTestLayout(t)); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output file not created: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("output file is empty")
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestExportPDF_WithWarnings(t *testing.T) {
	dims := model.DefaultBoxDimensions()
	dims.BookWidth = 50
	layout, err := engine.Generate(dims, model.DefaultGeometry())
	if err != nil {
		t.Fatal(err)
	}
	if len(layout.Warnings) == 0 {
		t.Fatal("expected the short book to produce a warning")
	}

	path := filepath.Join(t.TempDir(), "warnings.pdf")
	if err := ExportPDF(path, layout); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}
}

func TestExportPDF_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportPDF(path, &model.Layout{}); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("expected ErrEmptyLayout, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no file for an empty layout")
	}
}

// ─── Labels ────────────────────────────────────────────────

func TestCollectLabelInfos(t *testing.T) {
	layout := buildTestLayout(t)
	labels := CollectLabelInfos(layout)

	if len(labels) != 5 {
		t.Fatalf("expected 5 labels, got %d", len(labels))
	}
	first := labels[0]
	if first.PanelID != "top" || first.PanelLabel != "Top" || first.Kind != "Top/Bottom" {
		t.Errorf("unexpected first label %+v", first)
	}
	if first.LayoutID != layout.ID {
		t.Errorf("expected layout id %q, got %q", layout.ID, first.LayoutID)
	}
	if first.Book != "150x200x30" || first.Material != 3 {
		t.Errorf("unexpected book info %q / %.1f", first.Book, first.Material)
	}
	if CollectLabelInfos(nil) != nil {
		t.Error("expected nil labels for nil layout")
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestLayout(t)); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file not created: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestExportLabels_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	if err := ExportLabels(path, &model.Layout{}); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("expected ErrEmptyLayout, got %v", err)
	}
}

// ─── Cut list ──────────────────────────────────────────────

func TestExportCutList_Sheets(t *testing.T) {
	layout := buildTestLayout(t)
	path := filepath.Join(t.TempDir(), "cut-list.xlsx")

	if err := ExportCutList(path, layout); err != nil {
		t.Fatalf("ExportCutList returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot open workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != PanelsSheet || sheets[1] != JointsSheet {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	rows, err := f.GetRows(PanelsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 6 {
		t.Fatalf("expected header + 5 panel rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][3] != "Width (mm)" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "top" || rows[1][3] != "153" || rows[1][4] != "37" {
		t.Errorf("unexpected top row %v", rows[1])
	}
	if rows[5][0] != "back" || rows[5][3] != "37" || rows[5][4] != "207" {
		t.Errorf("unexpected back row %v", rows[5])
	}

	joints, err := f.GetRows(JointsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(joints) != 3 {
		t.Fatalf("expected header + 2 joint rows, got %d", len(joints))
	}
	if joints[1][0] != "Width" || joints[1][1] != "4" || joints[1][2] != "28.25" {
		t.Errorf("unexpected width joint row %v", joints[1])
	}
	if joints[2][0] != "Height" || joints[2][1] != "5" || joints[2][2] != "33.4" {
		t.Errorf("unexpected height joint row %v", joints[2])
	}
}

func TestExportCutList_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := ExportCutList(path, nil); !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("expected ErrEmptyLayout, got %v", err)
	}
}
