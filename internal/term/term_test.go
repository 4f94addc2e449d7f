package term

import (
	"image"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/slime-rts/internal/config"
	"github.com/Garsondee/slime-rts/internal/control"
	"github.com/Garsondee/slime-rts/internal/sim"
)

func newTestUI(t *testing.T, cols, rows int) *UI {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	cfg := config.Default()
	cfg.ExportDir = t.TempDir()
	ts := sim.NewTestSim(sim.WithBase())
	return New(screen, ts.Sim, cfg)
}

func TestFitStep(t *testing.T) {
	cases := []struct {
		w, h, cols, rows, want int
	}{
		{64, 64, 100, 40, 1},
		{256, 256, 80, 22, 6},
		{256, 64, 80, 50, 4},
		{10, 10, 0, 0, 10},
	}
	for _, c := range cases {
		if got := fitStep(c.w, c.h, c.cols, c.rows); got != c.want {
			t.Errorf("fitStep(%d,%d,%d,%d) = %d, want %d", c.w, c.h, c.cols, c.rows, got, c.want)
		}
	}
}

func TestCompose_HalfBlocks(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(frame.Pix); i += 4 {
		frame.Pix[i+3] = 255
	}
	unit := sim.Palette[sim.CellColorB]
	frame.SetRGBA(3, 3, unit)

	cells := compose(frame, 2, 10, 10)
	if len(cells) != 1 || len(cells[0]) != 2 {
		t.Fatalf("got %dx%d cells, want 2x1", len(cells[0]), len(cells))
	}
	if cells[0][1].Bottom != unit {
		t.Fatalf("lower half = %v, want the unit colour", cells[0][1].Bottom)
	}
	if cells[0][1].Top != sim.Background || cells[0][0].Bottom != sim.Background {
		t.Fatal("empty blocks should sample as background")
	}
}

func TestCompose_UnitsOutrankWalls(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 3, 3))
	for y := range 3 {
		for x := range 3 {
			frame.SetRGBA(x, y, sim.Palette[sim.CellWall])
		}
	}
	frame.SetRGBA(1, 0, sim.FogWallColor)
	frame.SetRGBA(2, 2, sim.Palette[sim.CellColorD])

	if got := sampleBlock(frame, 0, 0, 3); got != sim.Palette[sim.CellColorD] {
		t.Fatalf("sample = %v, want yellow", got)
	}
	if got := sampleBlock(frame, 0, 0, 2); got != sim.Palette[sim.CellWall] {
		t.Fatalf("sample = %v, want the visible wall over remembered terrain", got)
	}
}

func TestUI_KeysPostIntents(t *testing.T) {
	u := newTestUI(t, 40, 20)

	u.handleRune('3')
	u.handleRune('s')
	u.handleRune(' ')
	in := u.mailbox.Peek()
	if in.Color != sim.CellColorC || in.SpawnBatches != 2 {
		t.Fatalf("intent %+v", in)
	}

	fog := u.fog
	u.handleRune('F')
	if u.fog == fog {
		t.Fatal("f should toggle fog")
	}
	if u.handleRune('q') != control.ActQuit {
		t.Fatal("q should quit")
	}
}

func TestUI_MouseTargetsAndRecalls(t *testing.T) {
	u := newTestUI(t, 40, 20)
	if u.step != 2 {
		t.Fatalf("step = %d, want 2 for a 64x64 grid in 40x18", u.step)
	}

	u.handleMouse(5, 3, tcell.Button1)
	in := u.mailbox.Peek()
	if !in.HasTarget || in.Target != (sim.Point{X: 11, Y: 14}) {
		t.Fatalf("target = %+v", in)
	}

	u.handleMouse(5, 19, tcell.Button1)
	if u.mailbox.Peek().Target != (sim.Point{X: 11, Y: 14}) {
		t.Fatal("clicks on the status rows must not retarget")
	}

	u.handleMouse(0, 0, tcell.Button2)
	if in := u.mailbox.Peek(); !in.Recall || in.HasTarget {
		t.Fatalf("right click should recall, got %+v", in)
	}
}

func TestUI_AdvanceSpawnsAndDraws(t *testing.T) {
	u := newTestUI(t, 40, 20)
	start := u.sim.Resources

	u.handleRune('s')
	if n := u.advance(2 * sim.DefaultStep); n != 2 {
		t.Fatalf("ran %d ticks, want 2", n)
	}
	if u.sim.Resources != start-config.Default().SpawnBatch {
		t.Fatalf("resources = %d, want one batch spent", u.sim.Resources)
	}
	u.draw()
}

func TestUI_BlockedSpawnShowsStatus(t *testing.T) {
	u := newTestUI(t, 40, 20)
	u.sim.Resources = 0
	u.handleRune('s')
	u.advance(sim.DefaultStep)
	if u.status != "spawn blocked" {
		t.Fatalf("status = %q", u.status)
	}
}
