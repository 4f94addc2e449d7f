package export

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/slime-rts/internal/sim"
)

func TestSave_WritesScaledPNG(t *testing.T) {
	ts := sim.NewTestSim(
		sim.WithGridSize(16, 12),
		sim.WithUnit(3, 4, sim.CellColorA),
	)
	frame := sim.NewFrame(ts.Grid)
	sim.Render(frame, ts.Grid, ts.Vis, sim.RenderOptions{})

	dir := filepath.Join(t.TempDir(), "shots")
	path, err := Exporter{Dir: dir, Scale: 3}.Save(FileName(sim.ExportFrame, ts.Ticks), frame)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != "pixel_rts_map_000000.png" {
		t.Fatalf("unexpected file name %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 48 || b.Dy() != 36 {
		t.Fatalf("exported size %dx%d, want 48x36", b.Dx(), b.Dy())
	}
	// Each grid cell becomes a 3×3 block.
	r, g, b, _ := img.At(3*3+2, 4*3+2).RGBA()
	want := sim.Palette[sim.CellColorA]
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Fatalf("scaled unit pixel = (%d,%d,%d), want %v", r>>8, g>>8, b>>8, want)
	}
}

func TestLayer_OwnedOnly(t *testing.T) {
	ts := sim.NewTestSim(
		sim.WithGridSize(8, 8),
		sim.WithUnit(1, 1, sim.CellColorB),
		sim.WithWildUnit(2, 2, sim.CellColorC),
	)
	frame := sim.NewFrame(ts.Grid)
	sim.Render(frame, ts.Grid, ts.Vis, sim.RenderOptions{})

	if Layer(ts.Sim, sim.ExportFrame, frame) != frame {
		t.Fatal("frame export should reuse the rendered frame")
	}
	owned := Layer(ts.Sim, sim.ExportOwned, frame)
	if _, _, _, a := owned.At(2, 2).RGBA(); a != 0 {
		t.Fatal("wild unit should be transparent in the owned layer")
	}
	if _, _, _, a := owned.At(1, 1).RGBA(); a == 0 {
		t.Fatal("owned unit missing from the owned layer")
	}
	if FileName(sim.ExportOwned, 12) != "pixel_rts_units_000012.png" {
		t.Fatalf("owned file name = %q", FileName(sim.ExportOwned, 12))
	}
}
