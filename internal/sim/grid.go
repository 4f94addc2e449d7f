package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when a grid is requested with a
// non-positive width or height.
var ErrInvalidDimensions = errors.New("grid dimensions must be positive")

// Grid holds the parallel per-cell arrays of the playfield. Cells are
// addressed by linear index y*W+x. Grid owns storage only; the behaviour
// lives in the Sim.
type Grid struct {
	W, H int

	kind   []CellType
	owner  []Owner
	locked []bool // per-tick move-lock
}

// NewGrid allocates an empty w×h grid.
func NewGrid(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("new grid %dx%d: %w", w, h, ErrInvalidDimensions)
	}
	n := w * h
	return &Grid{
		W:      w,
		H:      h,
		kind:   make([]CellType, n),
		owner:  make([]Owner, n),
		locked: make([]bool, n),
	}, nil
}

// Size returns the total number of cells.
func (g *Grid) Size() int { return g.W * g.H }

// Index converts a coordinate to a linear index. It does not bounds check.
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// XY converts a linear index back to a coordinate.
func (g *Grid) XY(i int) (int, int) { return i % g.W, i / g.W }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

func (g *Grid) Type(i int) CellType { return g.kind[i] }
func (g *Grid) Owner(i int) Owner   { return g.owner[i] }

// At returns type and owner at (x, y); out-of-bounds reads report a wall.
func (g *Grid) At(x, y int) (CellType, Owner) {
	if !g.InBounds(x, y) {
		return CellWall, OwnerNone
	}
	i := g.Index(x, y)
	return g.kind[i], g.owner[i]
}

// Set writes type and owner at index i.
func (g *Grid) Set(i int, t CellType, o Owner) {
	g.kind[i] = t
	g.owner[i] = o
}

// Clear resets index i to empty, unowned ground.
func (g *Grid) Clear(i int) {
	g.kind[i] = CellEmpty
	g.owner[i] = OwnerNone
}

// Locked reports whether index i was already resolved this tick.
func (g *Grid) Locked(i int) bool { return g.locked[i] }

// Lock marks index i as resolved for the rest of the tick.
func (g *Grid) Lock(i int) { g.locked[i] = true }

// ResetLocks clears every move-lock at the start of a tick.
func (g *Grid) ResetLocks() { clear(g.locked) }

// IsUnit reports whether index i holds a colored unit of any owner.
func (g *Grid) IsUnit(i int) bool {
	return g.kind[i].IsUnitColor() && g.owner[i] != OwnerNone
}

// CountType returns how many cells hold type t.
func (g *Grid) CountType(t CellType) int {
	n := 0
	for _, k := range g.kind {
		if k == t {
			n++
		}
	}
	return n
}

// CountOwned returns how many unit cells owner o holds.
func (g *Grid) CountOwned(o Owner) int {
	n := 0
	for i, k := range g.kind {
		if k.IsUnitColor() && g.owner[i] == o {
			n++
		}
	}
	return n
}

// SameTypeNeighbors counts the 8-neighbourhood cells around (x, y) holding
// type t. The cell at index ignore is skipped so a mover does not count its
// own old position; pass -1 to count everything.
func (g *Grid) SameTypeNeighbors(x, y int, t CellType, ignore int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			i := g.Index(nx, ny)
			if i == ignore {
				continue
			}
			if g.kind[i] == t {
				n++
			}
		}
	}
	return n
}

// move transfers the occupant of from onto to, clears from and locks to.
func (g *Grid) move(from, to int) {
	g.kind[to] = g.kind[from]
	g.owner[to] = g.owner[from]
	g.Clear(from)
	g.locked[to] = true
}
