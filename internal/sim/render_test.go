package sim

import (
	"image/color"
	"testing"
)

func TestRender_VisibleCellsUsePalette(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(64, 64),
		WithBase(),
		WithUnit(30, 40, CellColorB),
		WithWall(34, 40),
	)
	frame := NewFrame(ts.Grid)
	Render(frame, ts.Grid, ts.Vis, RenderOptions{Fog: true})

	checks := []struct {
		x, y int
		want color.RGBA
	}{
		{30, 40, Palette[CellColorB]},
		{34, 40, Palette[CellWall]},
		{ts.Base.X, ts.Base.Y, Palette[CellBase]},
		{31, 40, Background},
	}
	for _, c := range checks {
		if got := frame.RGBAAt(c.x, c.y); got != c.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestRender_FogHidesUnitsButRemembersWalls(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(128, 128),
		WithBase(),
		WithWildUnit(5, 5, CellColorA),
		WithWall(6, 6),
	)
	frame := NewFrame(ts.Grid)

	Render(frame, ts.Grid, ts.Vis, RenderOptions{Fog: true})
	if got := frame.RGBAAt(5, 5); got != Background {
		t.Fatalf("hidden unit drawn as %v under fog", got)
	}
	if got := frame.RGBAAt(6, 6); got != FogWallColor {
		t.Fatalf("hidden wall drawn as %v, want the dimmed wall colour", got)
	}

	Render(frame, ts.Grid, ts.Vis, RenderOptions{Fog: false})
	if got := frame.RGBAAt(5, 5); got != shade(Palette[CellColorA]) {
		t.Fatalf("wild unit without fog drawn as %v", got)
	}
	if got := frame.RGBAAt(6, 6); got != Palette[CellWall] {
		t.Fatalf("wall without fog drawn as %v", got)
	}
}

func TestRender_Marker(t *testing.T) {
	ts := NewTestSim(WithGridSize(32, 32))
	frame := NewFrame(ts.Grid)
	Render(frame, ts.Grid, ts.Vis, RenderOptions{Fog: false, Marker: &Point{X: 7, Y: 9}})
	if got := frame.RGBAAt(7, 9); got != MarkerColor {
		t.Fatalf("marker pixel = %v", got)
	}
	// Out-of-range markers are ignored rather than panicking.
	Render(frame, ts.Grid, ts.Vis, RenderOptions{Marker: &Point{X: 99, Y: -1}})
}

func TestRenderOwned_OnlyPlayerUnits(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(32, 32),
		WithBase(),
		WithUnit(2, 2, CellColorD),
		WithWildUnit(3, 3, CellColorC),
		WithWall(4, 4),
	)
	frame := NewFrame(ts.Grid)
	RenderOwned(frame, ts.Grid)
	if got := frame.RGBAAt(2, 2); got != Palette[CellColorD] {
		t.Fatalf("owned unit pixel = %v", got)
	}
	transparent := color.RGBA{}
	for _, p := range []Point{{3, 3}, {4, 4}, {ts.Base.X, ts.Base.Y}, {0, 0}} {
		if got := frame.RGBAAt(p.X, p.Y); got != transparent {
			t.Errorf("pixel %v = %v, want transparent", p, got)
		}
	}
}
