package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllProfilesIncludesBuiltInAndCustom(t *testing.T) {
	// Reset custom profiles
	CustomProfiles = nil

	builtInCount := len(GCodeProfiles)
	all := AllProfiles()
	if len(all) != builtInCount {
		t.Errorf("expected %d profiles with no custom, got %d", builtInCount, len(all))
	}

	CustomProfiles = []GCodeProfile{
		{Name: "Custom1", Description: "Test custom"},
	}
	defer func() { CustomProfiles = nil }()

	all = AllProfiles()
	if len(all) != builtInCount+1 {
		t.Errorf("expected %d profiles with 1 custom, got %d", builtInCount+1, len(all))
	}
}

func TestGetProfileFindsCustom(t *testing.T) {
	CustomProfiles = []GCodeProfile{
		{Name: "MyCustom", Description: "Custom profile", RapidMove: "G0", FeedMove: "G1"},
	}
	defer func() { CustomProfiles = nil }()

	p := GetProfile("MyCustom")
	if p.Name != "MyCustom" {
		t.Errorf("expected MyCustom, got %s", p.Name)
	}
}

func TestGetProfileFallsBackToGeneric(t *testing.T) {
	p := GetProfile("NonExistent")
	if p.Name != "Generic" {
		t.Errorf("expected Generic fallback, got %s", p.Name)
	}
}

func TestLaserOnCommand(t *testing.T) {
	p := GetProfile("Grbl")
	if got := p.LaserOnCommand(750); got != "M4 S750" {
		t.Errorf("expected M4 S750, got %q", got)
	}

	// A template without a placeholder is emitted verbatim
	p.LaserOn = "M3"
	if got := p.LaserOnCommand(750); got != "M3" {
		t.Errorf("expected M3, got %q", got)
	}
}

func TestGCodeProfileValidate(t *testing.T) {
	for _, p := range GCodeProfiles {
		assert.NoError(t, p.Validate(), p.Name)
	}

	tests := []struct {
		name   string
		mutate func(*GCodeProfile)
	}{
		{"no name", func(p *GCodeProfile) { p.Name = "" }},
		{"no laser off", func(p *GCodeProfile) { p.LaserOff = "" }},
		{"no placeholder", func(p *GCodeProfile) { p.LaserOn = "M3" }},
		{"two placeholders", func(p *GCodeProfile) { p.LaserOn = "M3 S%d S%d" }},
		{"stray verb", func(p *GCodeProfile) { p.LaserOn = "M3 S%d %x" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GetProfile("Generic")
			tt.mutate(&p)
			assert.True(t, errors.Is(p.Validate(), ErrInvalidProfile))
		})
	}
}

func TestBoxDimensionsValidate(t *testing.T) {
	require.NoError(t, DefaultBoxDimensions().Validate())

	tests := []struct {
		name string
		dims BoxDimensions
	}{
		{"zero width", BoxDimensions{BookWidth: 0, BookHeight: 200, BookThickness: 30, MaterialThickness: 3}},
		{"negative height", BoxDimensions{BookWidth: 150, BookHeight: -1, BookThickness: 30, MaterialThickness: 3}},
		{"zero thickness", BoxDimensions{BookWidth: 150, BookHeight: 200, BookThickness: 0, MaterialThickness: 3}},
		{"zero material", BoxDimensions{BookWidth: 150, BookHeight: 200, BookThickness: 30, MaterialThickness: 0}},
		{"material wider than book", BoxDimensions{BookWidth: 10, BookHeight: 200, BookThickness: 30, MaterialThickness: 12}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dims.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidDimensions))
		})
	}
}

func TestInnerDimensionsAddClearance(t *testing.T) {
	d := DefaultBoxDimensions()
	g := DefaultGeometry()
	assert.Equal(t, 150.0, d.InnerWidth())
	assert.Equal(t, 201.0, d.InnerHeight(g))
	assert.Equal(t, 31.0, d.InnerThickness(g))

	g.InnerClearance = 0
	assert.Equal(t, 200.0, d.InnerHeight(g))
}

func TestGeometryValidate(t *testing.T) {
	require.NoError(t, DefaultGeometry().Validate())

	mutate := []struct {
		name string
		fn   func(g *Geometry)
	}{
		{"negative corner", func(g *Geometry) { g.CornerLength = -1 }},
		{"zero min", func(g *Geometry) { g.MinSlotLength = 0 }},
		{"min above max", func(g *Geometry) { g.MinSlotLength = 60 }},
		{"negative margin", func(g *Geometry) { g.Margin = -5 }},
		{"zero scale", func(g *Geometry) { g.Scale = 0 }},
		{"negative clearance", func(g *Geometry) { g.InnerClearance = -1 }},
		{"zero stroke", func(g *Geometry) { g.StrokeWidth = 0 }},
	}
	for _, tt := range mutate {
		t.Run(tt.name, func(t *testing.T) {
			g := DefaultGeometry()
			tt.fn(&g)
			err := g.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidGeometry)
		})
	}
}

func TestJointPlanCounts(t *testing.T) {
	width := JointPlan{Family: EdgeWidth, Count: 4, Length: 28.25}
	assert.Equal(t, 2, width.Slots())
	assert.Equal(t, 2, width.Fingers())
	assert.InDelta(t, 113.0, width.Span(), 1e-9)

	height := JointPlan{Family: EdgeHeight, Count: 5, Length: 33.4}
	assert.Equal(t, 3, height.Slots())
	assert.Equal(t, 2, height.Fingers())
	assert.Equal(t, height.Fingers()+1, height.Slots())
}

func TestPanelOverlaps(t *testing.T) {
	a := Panel{Origin: Point2D{X: 0, Y: 0}, Width: 10, Height: 10}
	b := Panel{Origin: Point2D{X: 5, Y: 5}, Width: 10, Height: 10}
	c := Panel{Origin: Point2D{X: 10, Y: 0}, Width: 10, Height: 10}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
	assert.False(t, a.Overlaps(c), "touching edges are not an overlap")
}

func TestOutlinePerimeter(t *testing.T) {
	o := Outline{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 3}, {X: 0, Y: 3}}
	assert.InDelta(t, 14.0, o.Perimeter(), 1e-9)
	assert.Equal(t, 0.0, Outline{{X: 1, Y: 1}}.Perimeter())
}

func TestNewBookAndProjectIDs(t *testing.T) {
	b1 := NewBook("A", DefaultBoxDimensions())
	b2 := NewBook("B", DefaultBoxDimensions())
	assert.Len(t, b1.ID, 8)
	assert.NotEqual(t, b1.ID, b2.ID)

	p := NewBoxProject("")
	assert.Equal(t, "Untitled", p.Name)
	assert.Len(t, p.ID, 8)
	assert.Equal(t, DefaultGeometry(), p.Geometry)
}
