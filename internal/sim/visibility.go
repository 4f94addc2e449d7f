package sim

// Visibility is the tick-local fog-of-war mask. It is rebuilt from scratch
// every tick; there is no explored/remembered tier.
type Visibility struct {
	w, h    int
	visible []bool
}

// NewVisibility allocates a fully hidden mask matching g.
func NewVisibility(g *Grid) *Visibility {
	return &Visibility{w: g.W, h: g.H, visible: make([]bool, g.Size())}
}

// Visible reports whether index i is currently visible.
func (v *Visibility) Visible(i int) bool { return v.visible[i] }

// VisibleAt reports whether (x, y) is currently visible; out of bounds is hidden.
func (v *Visibility) VisibleAt(x, y int) bool {
	if x < 0 || y < 0 || x >= v.w || y >= v.h {
		return false
	}
	return v.visible[y*v.w+x]
}

// Count returns the number of visible cells.
func (v *Visibility) Count() int {
	n := 0
	for _, b := range v.visible {
		if b {
			n++
		}
	}
	return n
}

// Rebuild resets the mask and reveals a box of baseRadius around base plus
// a box of unitRadius around every player-owned cell.
func (v *Visibility) Rebuild(g *Grid, base Point, baseRadius, unitRadius int) {
	clear(v.visible)
	v.reveal(base.X, base.Y, baseRadius)
	for i := 0; i < g.Size(); i++ {
		if g.Owner(i) != OwnerPlayer {
			continue
		}
		x, y := g.XY(i)
		v.reveal(x, y, unitRadius)
	}
}

// reveal marks the clamped square of half-size r around (cx, cy).
func (v *Visibility) reveal(cx, cy, r int) {
	minX := max(0, cx-r)
	maxX := min(v.w-1, cx+r)
	minY := max(0, cy-r)
	maxY := min(v.h-1, cy+r)
	for y := minY; y <= maxY; y++ {
		row := v.visible[y*v.w : (y+1)*v.w]
		for x := minX; x <= maxX; x++ {
			row[x] = true
		}
	}
}
