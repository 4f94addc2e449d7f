package sim

import "testing"

func TestVisibility_BaseRadius(t *testing.T) {
	ts := NewTestSim(WithGridSize(64, 64), WithBase())
	v := ts.Vis
	r := ts.P.BaseVisionRadius
	if !v.VisibleAt(ts.Base.X+r, ts.Base.Y-r) {
		t.Fatal("corner of the base vision box should be visible")
	}
	if v.VisibleAt(ts.Base.X+r+1, ts.Base.Y) {
		t.Fatal("cell just outside base vision should be hidden")
	}
	if v.VisibleAt(0, 0) {
		t.Fatal("far corner should be hidden")
	}
}

func TestVisibility_UnitRevealsBox(t *testing.T) {
	ts := NewTestSim(WithGridSize(128, 128), WithUnit(100, 100, CellColorA))
	v := ts.Vis
	r := ts.P.UnitVisionRadius
	if !v.VisibleAt(100-r, 100+r) || !v.VisibleAt(100+r, 100-r) {
		t.Fatal("unit vision box corners should be visible")
	}
	if v.VisibleAt(100+r+1, 100) || v.VisibleAt(100, 100-r-1) {
		t.Fatal("cells beyond unit vision should be hidden")
	}
}

func TestVisibility_WildUnitsRevealNothing(t *testing.T) {
	ts := NewTestSim(WithGridSize(128, 128), WithWildUnit(100, 100, CellColorA))
	if ts.Vis.VisibleAt(100, 100) {
		t.Fatal("wild units must not grant the player vision")
	}
}

func TestVisibility_RebuiltEachTick(t *testing.T) {
	ts := NewTestSim(
		WithGridSize(128, 128),
		WithUnit(100, 100, CellColorB),
		WithTarget(100, 60),
	)
	ts.RunTicks(20)
	if ts.Vis.VisibleAt(100, 100+ts.P.UnitVisionRadius) {
		t.Fatal("area the unit left should fall back to hidden")
	}
	if !ts.Vis.VisibleAt(100, 80-ts.P.UnitVisionRadius) {
		t.Fatal("area around the unit's new position should be visible")
	}
}

func TestVisibility_ClampsAtEdges(t *testing.T) {
	ts := NewTestSim(WithGridSize(10, 10), WithUnit(0, 0, CellColorC), WithUnit(9, 9, CellColorC))
	if !ts.Vis.VisibleAt(0, 0) || !ts.Vis.VisibleAt(9, 9) {
		t.Fatal("corner units should see their own cell")
	}
	if ts.Vis.VisibleAt(-1, 0) || ts.Vis.VisibleAt(10, 10) {
		t.Fatal("out-of-bounds queries are hidden")
	}
}
