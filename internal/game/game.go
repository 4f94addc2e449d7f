// Package game is the ebiten window frontend: it drives the simulation from
// a fixed-step clock, turns mouse and keyboard input into intents and draws
// the grid with an event panel and HUD.
package game

import (
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/Garsondee/slime-rts/internal/config"
	"github.com/Garsondee/slime-rts/internal/control"
	"github.com/Garsondee/slime-rts/internal/export"
	"github.com/Garsondee/slime-rts/internal/logs"
	"github.com/Garsondee/slime-rts/internal/sim"
)

// hudHeight is the space reserved for the HUD at the bottom of the panel.
const hudHeight = 7 * panelLineHeight

var keyBindings = []struct {
	key ebiten.Key
	act control.Action
}{
	{ebiten.Key1, control.ActSelectA},
	{ebiten.Key2, control.ActSelectB},
	{ebiten.Key3, control.ActSelectC},
	{ebiten.Key4, control.ActSelectD},
	{ebiten.KeySpace, control.ActSpawn},
	{ebiten.KeyS, control.ActSpawn},
	{ebiten.KeyR, control.ActRecall},
	{ebiten.KeyF, control.ActToggleFog},
	{ebiten.KeyE, control.ActExportFrame},
	{ebiten.KeyO, control.ActExportOwned},
	{ebiten.KeyEscape, control.ActQuit},
	{ebiten.KeyQ, control.ActQuit},
}

type Game struct {
	sim      *sim.Sim
	mailbox  *sim.Mailbox
	clock    *sim.Clock
	exporter export.Exporter
	panel    *EventPanel

	scale  int
	fog    bool
	width  int
	height int

	frame    *image.RGBA
	worldImg *ebiten.Image // created on first Draw

	now  func() time.Time
	last time.Time
}

// New wraps s in a window frontend configured by cfg.
func New(s *sim.Sim, cfg config.Config) *Game {
	scale := max(1, cfg.Scale)
	return &Game{
		sim:     s,
		mailbox: sim.NewMailbox(sim.CellColorA),
		clock:   sim.NewClock(cfg.Tick, cfg.MaxBacklog),
		exporter: export.Exporter{
			Dir:      cfg.ExportDir,
			Scale:    cfg.ExportScale,
			CopyPath: true,
		},
		panel:  NewEventPanel(),
		scale:  scale,
		fog:    cfg.Fog,
		width:  s.Grid.W*scale + panelWidth,
		height: max(s.Grid.H*scale, 20+hudHeight+10*panelLineHeight),
		frame:  sim.NewFrame(s.Grid),
		now:    time.Now,
	}
}

// Mailbox exposes the intent mailbox so other input sources can post to it.
func (g *Game) Mailbox() *sim.Mailbox { return g.mailbox }

func (g *Game) Update() error {
	if g.handleInput() == control.ActQuit {
		return ebiten.Termination
	}

	g.advance(g.frameDelta())
	return nil
}

// frameDelta returns the wall-clock time since the previous frame; the first
// frame has none.
func (g *Game) frameDelta() time.Duration {
	now := g.now()
	var dt time.Duration
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now
	return dt
}

// advance feeds dt into the clock and runs the ticks it releases. Only the
// first tick of a burst sees queued one-shot requests.
func (g *Game) advance(dt time.Duration) int {
	n := g.clock.Advance(dt)
	for range n {
		in := g.mailbox.Take()
		g.afterTick(in, g.sim.Tick(in))
	}
	return n
}

func (g *Game) afterTick(in sim.Intent, rep sim.TickReport) {
	if rep.ResourcesChanged() {
		logs.Debug("resources changed",
			zap.Int("tick", rep.Tick),
			zap.Int("before", rep.ResourcesBefore),
			zap.Int("after", rep.ResourcesAfter))
	}
	switch {
	case rep.Spawned > 0:
		g.panel.Add(rep.Tick, in.Color, fmt.Sprintf("spawned %d %s", rep.Spawned, in.Color))
	case in.SpawnBatches > 0:
		g.panel.Add(rep.Tick, in.Color, "spawn blocked")
		logs.Info("spawn produced nothing",
			zap.Stringer("color", in.Color),
			zap.Int("resources", g.sim.Resources))
	}
	if rep.Recalled > 0 {
		g.panel.Add(rep.Tick, sim.CellBase, fmt.Sprintf("recalled %d", rep.Recalled))
	}
	if rep.Captures > 0 {
		g.panel.Add(rep.Tick, in.Color, fmt.Sprintf("captured %d", rep.Captures))
	}
	if rep.Losses > 0 {
		g.panel.Add(rep.Tick, sim.CellEmpty, fmt.Sprintf("lost %d", rep.Losses))
	}
	if rep.Export != sim.ExportNone {
		g.export(rep.Tick, rep.Export)
	}
}

func (g *Game) export(tick int, kind sim.ExportKind) {
	sim.Render(g.frame, g.sim.Grid, g.sim.Vis, g.renderOptions())
	path, err := g.exporter.Save(export.FileName(kind, tick), export.Layer(g.sim, kind, g.frame))
	if path == "" {
		logs.Error("export failed", zap.Stringer("kind", kind), zap.Error(err))
		g.panel.Add(tick, sim.CellEmpty, "export failed")
		return
	}
	if err != nil {
		logs.Warn("export path not copied", zap.String("path", path), zap.Error(err))
	}
	logs.Info("exported", zap.Stringer("kind", kind), zap.String("path", path))
	g.panel.Add(tick, sim.CellEmpty, "saved "+filepath.Base(path))
}

// handleInput posts this frame's input to the mailbox and returns ActQuit
// when the player asked to leave.
func (g *Game) handleInput() control.Action {
	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.key) && g.dispatch(b.act) == control.ActQuit {
			return control.ActQuit
		}
	}

	// Holding the left button drags the target along with the cursor.
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if p, ok := g.viewport().Cell(ebiten.CursorPosition()); ok {
			if in := g.mailbox.Peek(); !in.HasTarget || in.Target != p {
				g.mailbox.SetTarget(p)
			}
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.dispatch(control.ActRecall)
	}
	return control.ActNone
}

func (g *Game) dispatch(a control.Action) control.Action {
	switch a {
	case control.ActToggleFog:
		g.fog = !g.fog
		logs.Debug("fog toggled", zap.Bool("fog", g.fog))
	case control.ActQuit:
		return a
	default:
		control.Apply(g.mailbox, a)
	}
	return control.ActNone
}

func (g *Game) viewport() control.Viewport {
	return control.Viewport{ScaleX: g.scale, ScaleY: g.scale, W: g.sim.Grid.W, H: g.sim.Grid.H}
}

func (g *Game) renderOptions() sim.RenderOptions {
	opts := sim.RenderOptions{Fog: g.fog}
	if in := g.mailbox.Peek(); in.HasTarget {
		opts.Marker = &in.Target
	}
	return opts
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 8, G: 8, B: 10, A: 255})

	if g.worldImg == nil {
		g.worldImg = ebiten.NewImage(g.sim.Grid.W, g.sim.Grid.H)
	}
	sim.Render(g.frame, g.sim.Grid, g.sim.Vis, g.renderOptions())
	g.worldImg.WritePixels(g.frame.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.worldImg, op)

	panelX := g.sim.Grid.W * g.scale
	g.panel.Draw(screen, panelX, g.height)
	g.drawHUD(screen, panelX)
}

func (g *Game) drawHUD(screen *ebiten.Image, panelX int) {
	in := g.mailbox.Peek()
	counts := g.sim.UnitCounts()
	fog := "on"
	if !g.fog {
		fog = "off"
	}
	mode := "idle"
	switch {
	case in.Recall:
		mode = "recall"
	case in.HasTarget:
		mode = fmt.Sprintf("move %d,%d", in.Target.X, in.Target.Y)
	}

	lines := []string{
		fmt.Sprintf("TICK %d  TPS %.0f  +%.2f", g.sim.Ticks, ebiten.ActualTPS(), g.clock.Alpha()),
		fmt.Sprintf("RES %d  FOG %s", g.sim.Resources, fog),
		fmt.Sprintf("  COLOR %s  %s", in.Color, mode),
		fmt.Sprintf("R%d G%d B%d Y%d",
			counts[sim.CellColorA], counts[sim.CellColorB], counts[sim.CellColorC], counts[sim.CellColorD]),
		"1-4 color  SPC spawn",
		"LMB move  R/RMB recall",
		"F fog  E/O export",
	}

	top := g.height - hudHeight
	x := float32(panelX)
	vector.FillRect(screen, x+1, float32(top), panelWidth-1, hudHeight, color.RGBA{R: 16, G: 16, B: 22, A: 255}, false)
	vector.StrokeLine(screen, x, float32(top), x+panelWidth, float32(top), 1, color.RGBA{R: 60, G: 60, B: 70, A: 255}, false)
	// Swatch for the selected spawn color, in front of the COLOR line.
	vector.FillRect(screen, x+8, float32(top+2*panelLineHeight+4), 6, 6, sim.Palette[in.Color], false)
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, panelX+8, top+i*panelLineHeight)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
