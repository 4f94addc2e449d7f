package term

import (
	"image"
	"image/color"

	"github.com/Garsondee/slime-rts/internal/sim"
)

// halfCell is one terminal cell: the upper sample is drawn as the glyph
// foreground, the lower one as the background.
type halfCell struct {
	Top, Bottom color.RGBA
}

// compose downsamples frame into at most cols×rows half-block cells, each
// half covering a step×step block of grid cells.
func compose(frame *image.RGBA, step, cols, rows int) [][]halfCell {
	b := frame.Bounds()
	step = max(1, step)
	w := min(cols, (b.Dx()+step-1)/step)
	h := min(rows, (b.Dy()+2*step-1)/(2*step))
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([][]halfCell, h)
	for y := range h {
		out[y] = make([]halfCell, w)
		for x := range w {
			out[y][x] = halfCell{
				Top:    sampleBlock(frame, x*step, 2*y*step, step),
				Bottom: sampleBlock(frame, x*step, (2*y+1)*step, step),
			}
		}
	}
	return out
}

// sampleBlock picks the most telling pixel in a step×step block so single
// units survive downsampling: anything coloured beats plain walls, which
// beat remembered walls, which beat empty ground.
func sampleBlock(frame *image.RGBA, x0, y0, step int) color.RGBA {
	b := frame.Bounds()
	best, bestRank := sim.Background, -1
	for y := y0; y < min(y0+step, b.Max.Y); y++ {
		for x := x0; x < min(x0+step, b.Max.X); x++ {
			c := frame.RGBAAt(x, y)
			if r := pixelRank(c); r > bestRank {
				best, bestRank = c, r
				if r == 3 {
					return best
				}
			}
		}
	}
	return best
}

func pixelRank(c color.RGBA) int {
	switch c {
	case sim.Background:
		return 0
	case sim.FogWallColor:
		return 1
	case sim.Palette[sim.CellWall]:
		return 2
	}
	return 3
}
