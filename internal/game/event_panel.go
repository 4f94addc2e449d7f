package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/slime-rts/internal/sim"
)

const (
	panelWidth      = 240
	panelMaxEntries = 48
	panelLineHeight = 14
)

// PanelEntry is a single line in the event panel.
type PanelEntry struct {
	Tick    int
	Color   sim.CellType // dot colour; CellEmpty for none
	Message string
}

// EventPanel is a ring buffer of recent game events rendered beside the map.
type EventPanel struct {
	entries []PanelEntry
	head    int
	count   int
}

func NewEventPanel() *EventPanel {
	return &EventPanel{entries: make([]PanelEntry, panelMaxEntries)}
}

// Add appends an entry, overwriting the oldest once full.
func (p *EventPanel) Add(tick int, c sim.CellType, msg string) {
	p.entries[p.head] = PanelEntry{Tick: tick, Color: c, Message: msg}
	p.head = (p.head + 1) % panelMaxEntries
	if p.count < panelMaxEntries {
		p.count++
	}
}

// Recent returns entries oldest first.
func (p *EventPanel) Recent() []PanelEntry {
	out := make([]PanelEntry, p.count)
	for i := range p.count {
		out[i] = p.entries[(p.head-p.count+i+panelMaxEntries)%panelMaxEntries]
	}
	return out
}

// Draw renders the panel at panelX, filling the window height.
func (p *EventPanel) Draw(screen *ebiten.Image, panelX, panelH int) {
	x := float32(panelX)
	vector.FillRect(screen, x, 0, panelWidth, float32(panelH), color.RGBA{R: 10, G: 10, B: 12, A: 255}, false)
	vector.StrokeLine(screen, x, 0, x, float32(panelH), 1, color.RGBA{R: 60, G: 60, B: 70, A: 255}, false)
	vector.FillRect(screen, x, 0, panelWidth, 16, color.RGBA{R: 24, G: 24, B: 30, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)

	entries := p.Recent()
	maxVisible := (panelH - hudHeight - 20) / panelLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	y := 20
	for i, e := range entries {
		// Highlight the newest few.
		if i >= len(entries)-3 {
			vector.FillRect(screen, x+2, float32(y), panelWidth-4, panelLineHeight, color.RGBA{R: 30, G: 30, B: 40, A: 160}, false)
		}
		if e.Color != sim.CellEmpty {
			vector.FillRect(screen, x+5, float32(y+4), 4, 6, sim.Palette[e.Color], false)
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d %s", e.Tick, e.Message), panelX+12, y)
		y += panelLineHeight
	}
}
