// Package term is a terminal frontend built on tcell. Each character cell
// shows two grid samples stacked with the upper half block, and the map is
// downsampled to fit the window.
package term

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/slime-rts/internal/config"
	"github.com/Garsondee/slime-rts/internal/control"
	"github.com/Garsondee/slime-rts/internal/export"
	"github.com/Garsondee/slime-rts/internal/logs"
	"github.com/Garsondee/slime-rts/internal/sim"
)

const (
	frameInterval = 33 * time.Millisecond
	statusRows    = 2
	halfBlock     = '▀'
)

var (
	styleStatus = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorSilver)
	styleHelp   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorGray)
)

// UI owns the screen for the duration of Run.
type UI struct {
	screen   tcell.Screen
	sim      *sim.Sim
	mailbox  *sim.Mailbox
	clock    *sim.Clock
	exporter export.Exporter
	fog      bool
	frame    *image.RGBA
	status   string

	// Cached layout, refreshed on resize.
	cols, rows int
	step       int // grid cells per terminal column
}

// New builds a UI over an initialised screen.
func New(screen tcell.Screen, s *sim.Sim, cfg config.Config) *UI {
	u := &UI{
		screen:  screen,
		sim:     s,
		mailbox: sim.NewMailbox(sim.CellColorA),
		clock:   sim.NewClock(cfg.Tick, cfg.MaxBacklog),
		exporter: export.Exporter{
			Dir:   cfg.ExportDir,
			Scale: cfg.ExportScale,
		},
		fog:   cfg.Fog,
		frame: sim.NewFrame(s.Grid),
	}
	u.resize()
	return u
}

// Run polls input on its own goroutine and advances, then redraws, on every
// frame tick until ctx is done or the player quits.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	defer u.screen.DisableMouse()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	last := time.Now()
	u.draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if u.handleEvent(ev) == control.ActQuit {
				return nil
			}
		case now := <-ticker.C:
			u.advance(now.Sub(last))
			last = now
			u.draw()
		}
	}
}

func (u *UI) handleEvent(ev tcell.Event) control.Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return control.ActQuit
		case tcell.KeyRune:
			return u.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		u.handleMouse(x, y, ev.Buttons())
	case *tcell.EventResize:
		u.resize()
		u.screen.Sync()
	}
	return control.ActNone
}

func (u *UI) handleRune(r rune) control.Action {
	a := control.RuneAction(r)
	switch a {
	case control.ActQuit:
		return a
	case control.ActToggleFog:
		u.fog = !u.fog
	default:
		control.Apply(u.mailbox, a)
	}
	return control.ActNone
}

func (u *UI) handleMouse(x, y int, buttons tcell.ButtonMask) {
	switch {
	case buttons&tcell.Button1 != 0:
		if p, ok := u.cellAt(x, y); ok {
			u.mailbox.SetTarget(p)
		}
	case buttons&tcell.Button2 != 0, buttons&tcell.Button3 != 0:
		u.mailbox.Recall()
	}
}

// cellAt maps a terminal position to the grid cell at the centre of the
// block it shows.
func (u *UI) cellAt(x, y int) (sim.Point, bool) {
	g := u.sim.Grid
	if x < 0 || y < 0 || y >= u.rows-statusRows {
		return sim.Point{}, false
	}
	p := sim.Point{X: x*u.step + u.step/2, Y: 2*y*u.step + u.step}
	if !g.InBounds(p.X, p.Y) {
		return sim.Point{}, false
	}
	return p, true
}

func (u *UI) resize() {
	u.cols, u.rows = u.screen.Size()
	u.step = fitStep(u.sim.Grid.W, u.sim.Grid.H, u.cols, u.rows-statusRows)
}

// fitStep returns the smallest downsampling step that fits a w×h grid into
// cols×rows half-block cells.
func fitStep(w, h, cols, rows int) int {
	cols, rows = max(1, cols), max(1, rows)
	return max(1, (w+cols-1)/cols, (h+2*rows-1)/(2*rows))
}

func (u *UI) advance(dt time.Duration) int {
	n := u.clock.Advance(dt)
	for range n {
		in := u.mailbox.Take()
		rep := u.sim.Tick(in)
		if rep.Spawned == 0 && in.SpawnBatches > 0 {
			u.status = "spawn blocked"
		}
		if rep.Export != sim.ExportNone {
			u.export(rep.Tick, rep.Export)
		}
	}
	return n
}

func (u *UI) export(tick int, kind sim.ExportKind) {
	sim.Render(u.frame, u.sim.Grid, u.sim.Vis, u.renderOptions())
	path, err := u.exporter.Save(export.FileName(kind, tick), export.Layer(u.sim, kind, u.frame))
	if err != nil {
		logs.Error("export failed", zap.Stringer("kind", kind), zap.Error(err))
		u.status = "export failed"
		return
	}
	logs.Info("exported", zap.Stringer("kind", kind), zap.String("path", path))
	u.status = "saved " + filepath.Base(path)
}

func (u *UI) renderOptions() sim.RenderOptions {
	opts := sim.RenderOptions{Fog: u.fog}
	if in := u.mailbox.Peek(); in.HasTarget {
		opts.Marker = &in.Target
	}
	return opts
}

func (u *UI) draw() {
	u.screen.Clear()
	sim.Render(u.frame, u.sim.Grid, u.sim.Vis, u.renderOptions())

	mapRows := u.rows - statusRows
	for y, row := range compose(u.frame, u.step, u.cols, mapRows) {
		for x, hc := range row {
			st := tcell.StyleDefault.Foreground(rgb(hc.Top)).Background(rgb(hc.Bottom))
			u.screen.SetContent(x, y, halfBlock, nil, st)
		}
	}

	in := u.mailbox.Peek()
	mode := "idle"
	switch {
	case in.Recall:
		mode = "recall"
	case in.HasTarget:
		mode = fmt.Sprintf("move %d,%d", in.Target.X, in.Target.Y)
	}
	line := fmt.Sprintf("T%d  res %d  %s  %s  fog %t  1:%d  %s",
		u.sim.Ticks, u.sim.Resources, in.Color, mode, u.fog, u.step, u.status)
	u.putString(0, mapRows, line, styleStatus.Foreground(rgb(sim.Palette[in.Color])))
	u.putString(0, mapRows+1, "1-4 color  spc/s spawn  r recall  f fog  e/o export  q quit  click move", styleHelp)
	u.screen.Show()
}

func (u *UI) putString(x, y int, s string, st tcell.Style) {
	for _, r := range s {
		if x >= u.cols {
			return
		}
		u.screen.SetContent(x, y, r, nil, st)
		x++
	}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
