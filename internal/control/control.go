// Package control maps player input from any frontend onto the intent
// mailbox so the window and terminal builds share one key layout.
package control

import (
	"unicode"

	"github.com/Garsondee/slime-rts/internal/sim"
)

// Action is a frontend-neutral command.
type Action uint8

const (
	ActNone Action = iota
	ActSelectA
	ActSelectB
	ActSelectC
	ActSelectD
	ActSpawn
	ActRecall
	ActToggleFog
	ActExportFrame
	ActExportOwned
	ActQuit
)

var actionNames = [...]string{
	ActNone:        "none",
	ActSelectA:     "select-red",
	ActSelectB:     "select-green",
	ActSelectC:     "select-blue",
	ActSelectD:     "select-yellow",
	ActSpawn:       "spawn",
	ActRecall:      "recall",
	ActToggleFog:   "toggle-fog",
	ActExportFrame: "export-frame",
	ActExportOwned: "export-owned",
	ActQuit:        "quit",
}

func (a Action) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "unknown"
}

// RuneAction returns the action bound to a printable key. Letters are
// case-insensitive.
func RuneAction(r rune) Action {
	switch unicode.ToLower(r) {
	case '1':
		return ActSelectA
	case '2':
		return ActSelectB
	case '3':
		return ActSelectC
	case '4':
		return ActSelectD
	case ' ', 's':
		return ActSpawn
	case 'r':
		return ActRecall
	case 'f':
		return ActToggleFog
	case 'e':
		return ActExportFrame
	case 'o':
		return ActExportOwned
	case 'q':
		return ActQuit
	}
	return ActNone
}

// Apply posts a to the mailbox. Actions that belong to the frontend itself
// (fog, quit) are left to the caller and reported as unhandled.
func Apply(mb *sim.Mailbox, a Action) (handled bool) {
	switch a {
	case ActSelectA, ActSelectB, ActSelectC, ActSelectD:
		mb.SelectColor(sim.UnitColors[a-ActSelectA])
	case ActSpawn:
		mb.RequestSpawn()
	case ActRecall:
		mb.Recall()
	case ActExportFrame:
		mb.RequestExport(sim.ExportFrame)
	case ActExportOwned:
		mb.RequestExport(sim.ExportOwned)
	default:
		return false
	}
	return true
}

// Viewport maps screen positions onto grid cells for a playfield drawn at
// (OffX, OffY) with ScaleX×ScaleY screen units per cell.
type Viewport struct {
	OffX, OffY     int
	ScaleX, ScaleY int
	W, H           int // grid size in cells
}

// Cell returns the grid cell under screen position (sx, sy); ok is false
// outside the playfield.
func (v Viewport) Cell(sx, sy int) (p sim.Point, ok bool) {
	if v.ScaleX <= 0 || v.ScaleY <= 0 {
		return sim.Point{}, false
	}
	dx, dy := sx-v.OffX, sy-v.OffY
	if dx < 0 || dy < 0 {
		return sim.Point{}, false
	}
	p = sim.Point{X: dx / v.ScaleX, Y: dy / v.ScaleY}
	if p.X >= v.W || p.Y >= v.H {
		return sim.Point{}, false
	}
	return p, true
}
