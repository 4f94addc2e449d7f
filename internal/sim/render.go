package sim

import (
	"image"
	"image/color"
)

// Palette maps each CellType to its display colour.
var Palette = [cellTypeCount]color.RGBA{
	CellEmpty:  {R: 0, G: 0, B: 0, A: 255},
	CellColorA: {R: 255, G: 68, B: 68, A: 255},
	CellColorB: {R: 68, G: 255, B: 68, A: 255},
	CellColorC: {R: 68, G: 68, B: 255, A: 255},
	CellColorD: {R: 255, G: 255, B: 68, A: 255},
	CellWall:   {R: 128, G: 128, B: 128, A: 255},
	CellBase:   {R: 255, G: 255, B: 255, A: 255},
}

var (
	Background   = Palette[CellEmpty]
	MarkerColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	FogWallColor = color.RGBA{R: 48, G: 48, B: 48, A: 255} // remembered terrain under fog
)

// RenderOptions controls per-frame presentation.
type RenderOptions struct {
	Fog    bool
	Marker *Point // move target to highlight, nil for none
}

// NewFrame allocates a pixel buffer sized to g.
func NewFrame(g *Grid) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, g.W, g.H))
}

// Render paints one frame of g into dst, which must be g.W×g.H.
//
// Hidden cells draw as background when fog is on, except walls, which stay
// visible in a dimmed shade so explored terrain reads as a map. Wild units
// draw in a darker version of their colour.
func Render(dst *image.RGBA, g *Grid, vis *Visibility, opts RenderOptions) {
	for y := 0; y < g.H; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+g.W*4]
		for x := 0; x < g.W; x++ {
			i := g.Index(x, y)
			t := g.Type(i)
			c := Palette[t]
			switch {
			case opts.Fog && !vis.Visible(i):
				c = Background
				if t == CellWall {
					c = FogWallColor
				}
			case g.Owner(i) == OwnerWild:
				c = shade(c)
			}
			putPixel(row, x, c)
		}
	}
	if m := opts.Marker; m != nil && g.InBounds(m.X, m.Y) {
		dst.SetRGBA(m.X, m.Y, MarkerColor)
	}
}

// RenderOwned paints only player-owned units into dst; every other pixel is
// transparent. This is the "owned units only" export layer.
func RenderOwned(dst *image.RGBA, g *Grid) {
	clear(dst.Pix)
	for y := 0; y < g.H; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+g.W*4]
		for x := 0; x < g.W; x++ {
			i := g.Index(x, y)
			if g.Owner(i) == OwnerPlayer && g.Type(i).IsUnitColor() {
				putPixel(row, x, Palette[g.Type(i)])
			}
		}
	}
}

func putPixel(row []byte, x int, c color.RGBA) {
	p := row[x*4 : x*4+4 : x*4+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

func shade(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R / 2, G: c.G / 2, B: c.B / 2, A: c.A}
}
