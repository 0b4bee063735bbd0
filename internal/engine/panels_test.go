package engine

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OraMartindale/laser-cutter-files/internal/model"
)

const geomTolerance = 1e-6

type interval struct{ lo, hi float64 }

// runsAt returns the outline edges lying on the line axis=level, as
// intervals along the other axis shifted by -offset.
func runsAt(pts model.Outline, vertical bool, level, offset float64) []interval {
	var runs []interval
	n := len(pts)
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		var fa, fb, la, lb float64
		if vertical {
			fa, fb, la, lb = a.X, b.X, a.Y, b.Y
		} else {
			fa, fb, la, lb = a.Y, b.Y, a.X, b.X
		}
		if math.Abs(fa-level) > geomTolerance || math.Abs(fb-level) > geomTolerance {
			continue
		}
		runs = append(runs, interval{math.Min(la, lb) - offset, math.Max(la, lb) - offset})
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].lo < runs[j].lo })
	return runs
}

// assertTiles checks that two sets of finger runs exactly tile [lo, hi].
func assertTiles(t *testing.T, a, b []interval, lo, hi float64) {
	t.Helper()
	all := append(append([]interval{}, a...), b...)
	sort.Slice(all, func(i, j int) bool { return all[i].lo < all[j].lo })
	require.NotEmpty(t, all)
	assert.InDelta(t, lo, all[0].lo, geomTolerance)
	for i := 1; i < len(all); i++ {
		assert.InDelta(t, all[i-1].hi, all[i].lo, geomTolerance, "gap or overlap at run %d", i)
	}
	assert.InDelta(t, hi, all[len(all)-1].hi, geomTolerance)
}

func assertSameRuns(t *testing.T, want, got []interval) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i].lo, got[i].lo, geomTolerance)
		assert.InDelta(t, want[i].hi, got[i].hi, geomTolerance)
	}
}

func defaultFixture(t *testing.T) (model.BoxDimensions, model.Geometry, model.JointSet) {
	t.Helper()
	dims := model.DefaultBoxDimensions()
	g := model.DefaultGeometry()
	j, err := PlanJoints(dims, g)
	require.NoError(t, err)
	return dims, g, j
}

func TestPanelSize_Defaults(t *testing.T) {
	dims, g, j := defaultFixture(t)

	tests := []struct {
		kind model.PanelKind
		w, h float64
	}{
		{model.PanelTopBottom, 153, 37},
		{model.PanelSide, 153, 207},
		{model.PanelBack, 37, 207},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			w, h := PanelSize(tt.kind, dims, g, j)
			assert.InDelta(t, tt.w, w, geomTolerance)
			assert.InDelta(t, tt.h, h, geomTolerance)
		})
	}
}

func TestBuildPanels_ClosedAndWithinExtents(t *testing.T) {
	dims, g, j := defaultFixture(t)
	origin := model.Point2D{X: 12, Y: 7}

	for _, p := range []model.Panel{
		BuildTopBottom(dims, g, j, origin),
		BuildSide(dims, g, j, origin),
		BuildBack(dims, g, j, origin),
	} {
		t.Run(p.Kind.String(), func(t *testing.T) {
			require.True(t, p.Path.Closed(), "path must return to its start")
			assert.Equal(t, model.OpMove, p.Path[0].Op)
			for _, c := range p.Path[1:] {
				assert.NotEqual(t, model.OpMove, c.Op, "only the first command may be absolute")
			}

			lo, hi := p.Path.Bounds()
			assert.InDelta(t, origin.X, lo.X, geomTolerance)
			assert.InDelta(t, origin.Y, lo.Y, geomTolerance)
			assert.InDelta(t, origin.X+p.Width, hi.X, geomTolerance)
			assert.InDelta(t, origin.Y+p.Height, hi.Y, geomTolerance)
			assert.Equal(t, j, p.Joints)
		})
	}
}

func TestBuildPanels_OnlyAxisAlignedMoves(t *testing.T) {
	dims, g, j := defaultFixture(t)
	p := BuildSide(dims, g, j, model.Point2D{})

	pts := p.Path.Points()
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		assert.True(t, a.X == b.X || a.Y == b.Y, "diagonal edge %v -> %v", a, b)
	}
}

func TestBuildTopBottom_MirroredLongEdges(t *testing.T) {
	dims, g, j := defaultFixture(t)
	p := BuildTopBottom(dims, g, j, model.Point2D{})
	pts := p.Path.Points()

	// Fingers plus the open corner
	top := runsAt(pts, false, 0, 0)
	bottom := runsAt(pts, false, p.Height, 0)
	require.Len(t, top, j.Width.Fingers()+1)
	assertSameRuns(t, top, bottom)

	open := runsAt(pts, true, 0, 0)
	assertSameRuns(t, []interval{{0, p.Height}}, open)

	finger := runsAt(pts, true, p.Width, 0)
	require.Len(t, finger, 1)
}

func TestBuildBack_MirroredLongEdges(t *testing.T) {
	dims, g, j := defaultFixture(t)
	p := BuildBack(dims, g, j, model.Point2D{})
	pts := p.Path.Points()

	left := runsAt(pts, true, 0, 0)
	right := runsAt(pts, true, p.Width, 0)
	require.Len(t, left, j.Height.Slots())
	assertSameRuns(t, left, right)
}

func TestBuildSide_MirroredWidthEdges(t *testing.T) {
	dims, g, j := defaultFixture(t)
	p := BuildSide(dims, g, j, model.Point2D{})
	pts := p.Path.Points()

	// Fingers plus the corner over the back panel
	top := runsAt(pts, false, 0, 0)
	bottom := runsAt(pts, false, p.Height, 0)
	require.Len(t, top, j.Width.Slots()+1)
	assertSameRuns(t, top, bottom)
	assert.InDelta(t, p.Width, top[len(top)-1].hi, geomTolerance)
}

func TestPanels_WidthJointsInterlock(t *testing.T) {
	dims, g, j := defaultFixture(t)
	tb := BuildTopBottom(dims, g, j, model.Point2D{})
	side := BuildSide(dims, g, j, model.Point2D{})

	// Along the shared corner, each panel's outer line fills the other's gaps
	tbTips := runsAt(tb.Path.Points(), false, 0, 0)
	sideTips := runsAt(side.Path.Points(), false, 0, 0)

	assert.Len(t, tbTips, j.Width.Fingers()+1)
	assert.Len(t, sideTips, j.Width.Slots()+1)
	assertTiles(t, tbTips, sideTips, 0, side.Width)
	assert.InDelta(t, tb.Width, side.Width, geomTolerance)
}

func TestPanels_HeightJointsInterlock(t *testing.T) {
	dims, g, j := defaultFixture(t)
	side := BuildSide(dims, g, j, model.Point2D{})
	back := BuildBack(dims, g, j, model.Point2D{})

	sideTips := runsAt(side.Path.Points(), true, side.Width, 0)
	backTips := runsAt(back.Path.Points(), true, back.Width, 0)

	// Both corners plus the fingers between the slots
	assert.Len(t, sideTips, j.Height.Fingers()+2)
	assert.Len(t, backTips, j.Height.Slots())
	assertTiles(t, sideTips, backTips, 0, side.Height)
	assert.InDelta(t, side.Height, back.Height, geomTolerance)
}

func TestPanels_SpineJointsInterlock(t *testing.T) {
	dims, g, j := defaultFixture(t)
	tb := BuildTopBottom(dims, g, j, model.Point2D{})
	side := BuildSide(dims, g, j, model.Point2D{})
	back := BuildBack(dims, g, j, model.Point2D{})
	tt := dims.MaterialThickness
	third := dims.InnerThickness(g) / 3

	require.InDelta(t, side.Height, back.Height, geomTolerance)

	finger := runsAt(tb.Path.Points(), true, tb.Width, 0)
	require.Len(t, finger, 1)
	assert.InDelta(t, tt+third, finger[0].lo, geomTolerance)
	assert.InDelta(t, tt+2*third, finger[0].hi, geomTolerance)

	// The slots span the top and bottom panel planes: from the side's
	// outer line to its base line, one thickness in.
	for _, level := range []float64{tt, back.Height - tt} {
		slot := runsAt(back.Path.Points(), false, level, 0)
		require.Len(t, slot, 1, "slot floor at %g", level)
		assertSameRuns(t, finger, slot)
		assert.NotEmpty(t, runsAt(side.Path.Points(), false, level, 0), "side base line at %g", level)
	}
	assert.Len(t, runsAt(back.Path.Points(), false, 0, 0), 2)
	assert.Len(t, runsAt(back.Path.Points(), false, back.Height, 0), 2)
}

func TestPanels_EncloseInnerDimensions(t *testing.T) {
	dims, g, j := defaultFixture(t)
	tb := BuildTopBottom(dims, g, j, model.Point2D{})
	side := BuildSide(dims, g, j, model.Point2D{})
	back := BuildBack(dims, g, j, model.Point2D{})
	tt := dims.MaterialThickness

	assert.InDelta(t, dims.InnerHeight(g), side.Height-2*tt, geomTolerance)
	assert.InDelta(t, dims.InnerWidth(), side.Width-tt, geomTolerance)
	assert.InDelta(t, dims.InnerWidth(), tb.Width-tt, geomTolerance)
	assert.InDelta(t, dims.InnerThickness(g), tb.Height-2*tt, geomTolerance)
	assert.InDelta(t, dims.InnerThickness(g), back.Width-2*tt, geomTolerance)

	// The open edge of a side runs between the top and bottom panels
	open := runsAt(side.Path.Points(), true, 0, 0)
	assertSameRuns(t, []interval{{tt, side.Height - tt}}, open)

	// Inner faces where the back panel sits
	assert.NotEmpty(t, runsAt(side.Path.Points(), true, side.Width-tt, 0))
	assert.Len(t, runsAt(tb.Path.Points(), true, tb.Width-tt, 0), 2)
}

func TestPanels_EncloseInnerDimensions_OtherSizes(t *testing.T) {
	cases := []model.BoxDimensions{
		{BookWidth: 210, BookHeight: 297, BookThickness: 45, MaterialThickness: 4},
		{BookWidth: 400, BookHeight: 600, BookThickness: 80, MaterialThickness: 6},
	}
	g := model.DefaultGeometry()
	for _, dims := range cases {
		j, err := PlanJoints(dims, g)
		require.NoError(t, err)
		tt := dims.MaterialThickness

		side := BuildSide(dims, g, j, model.Point2D{})
		back := BuildBack(dims, g, j, model.Point2D{})
		assert.InDelta(t, side.Height, back.Height, geomTolerance, "%+v", dims)
		assert.InDelta(t, dims.InnerHeight(g), side.Height-2*tt, geomTolerance, "%+v", dims)
		assert.InDelta(t, dims.InnerWidth(), side.Width-tt, geomTolerance, "%+v", dims)
	}
}

func TestBuildPanels_Deterministic(t *testing.T) {
	dims, g, j := defaultFixture(t)
	a := BuildSide(dims, g, j, model.Point2D{X: 5, Y: 47})
	b := BuildSide(dims, g, j, model.Point2D{X: 5, Y: 47})
	assert.Equal(t, a.Path.Format(g.Scale), b.Path.Format(g.Scale))
}

func TestBuildPanels_OriginOnlyMovesAnchor(t *testing.T) {
	dims, g, j := defaultFixture(t)
	a := BuildBack(dims, g, j, model.Point2D{})
	b := BuildBack(dims, g, j, model.Point2D{X: 100, Y: 50})

	require.Len(t, b.Path, len(a.Path))
	assert.Equal(t, a.Path[1:], b.Path[1:])
	assert.Equal(t, model.MoveTo(a.Path[0].X+100, a.Path[0].Y+50), b.Path[0])
}
