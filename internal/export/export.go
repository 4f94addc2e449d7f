// Package export writes rendered frames to PNG files.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	xdraw "golang.org/x/image/draw"

	"github.com/Garsondee/slime-rts/internal/sim"
)

// Exporter saves frames into Dir, upscaled by Scale with nearest-neighbour
// sampling so cells stay crisp.
type Exporter struct {
	Dir      string
	Scale    int
	CopyPath bool // put the written path on the system clipboard
}

// Layer returns the image an export of kind should capture: the rendered
// frame itself, or a fresh owned-units-only layer.
func Layer(s *sim.Sim, kind sim.ExportKind, frame *image.RGBA) image.Image {
	if kind == sim.ExportOwned {
		img := sim.NewFrame(s.Grid)
		sim.RenderOwned(img, s.Grid)
		return img
	}
	return frame
}

// FileName is the default name for an export taken at tick.
func FileName(kind sim.ExportKind, tick int) string {
	suffix := "map"
	if kind == sim.ExportOwned {
		suffix = "units"
	}
	return fmt.Sprintf("pixel_rts_%s_%06d.png", suffix, tick)
}

// Save writes img as name under Dir and returns the full path. A clipboard
// failure is returned alongside the path; the file is already written.
func (e Exporter) Save(name string, img image.Image) (string, error) {
	scale := max(1, e.Scale)
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export dir %q: %w", dir, err)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %q: %w", path, err)
	}
	if err := png.Encode(f, dst); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("encode %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %q: %w", path, err)
	}

	if e.CopyPath {
		if clipboard.Unsupported {
			return path, fmt.Errorf("copy export path: clipboard unsupported on this system")
		}
		if err := clipboard.WriteAll(path); err != nil {
			return path, fmt.Errorf("copy export path: %w", err)
		}
	}
	return path, nil
}
