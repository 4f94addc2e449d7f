package sim

import "fmt"

// TestSim is a headless harness for tests and batch reports. Unlike New it
// starts from an empty grid with no random terrain, so scenarios are built
// explicitly with options, and it defaults to a fixed seed.
type TestSim struct {
	*Sim
	Mailbox *Mailbox
	Reports []TickReport
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // grid size, seed, params; applied before allocation
	simOptTerrain                      // walls and base; applied after allocation
	simOptUnit                         // units; applied after terrain
	simOptIntent                       // targets and recall; applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind  simOptionKind
	infra func(*Params, *bool)
	fn    func(*TestSim)
}

// WithGridSize sets the grid dimensions.
func WithGridSize(w, h int) SimOption {
	return SimOption{kind: simOptInfra, infra: func(p *Params, _ *bool) {
		p.Width = w
		p.Height = h
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{kind: simOptInfra, infra: func(p *Params, _ *bool) { p.Seed = seed }}
}

// WithResources sets the starting resource count.
func WithResources(n int) SimOption {
	return SimOption{kind: simOptInfra, infra: func(p *Params, _ *bool) { p.InitialResources = n }}
}

// WithParams applies an arbitrary tweak to the parameters.
func WithParams(fn func(*Params)) SimOption {
	return SimOption{kind: simOptInfra, infra: func(p *Params, _ *bool) { fn(p) }}
}

// WithVerbose records every move step in the event log.
func WithVerbose(v bool) SimOption {
	return SimOption{kind: simOptInfra, infra: func(_ *Params, verbose *bool) { *verbose = v }}
}

// WithGenerated runs the normal map generator instead of starting blank.
func WithGenerated() SimOption {
	return SimOption{kind: simOptTerrain, fn: func(ts *TestSim) { ts.generate() }}
}

// WithBase stamps the 3×3 base block at the grid centre.
func WithBase() SimOption {
	return SimOption{kind: simOptTerrain, fn: func(ts *TestSim) { ts.placeBase() }}
}

// WithWall places a wall cell.
func WithWall(x, y int) SimOption {
	return SimOption{kind: simOptTerrain, fn: func(ts *TestSim) {
		ts.Grid.Set(ts.Grid.Index(x, y), CellWall, OwnerNone)
	}}
}

// WithUnit places a player unit.
func WithUnit(x, y int, c CellType) SimOption {
	return SimOption{kind: simOptUnit, fn: func(ts *TestSim) {
		ts.Grid.Set(ts.Grid.Index(x, y), c, OwnerPlayer)
	}}
}

// WithWildUnit places a stationary wild unit.
func WithWildUnit(x, y int, c CellType) SimOption {
	return SimOption{kind: simOptUnit, fn: func(ts *TestSim) {
		ts.Grid.Set(ts.Grid.Index(x, y), c, OwnerWild)
	}}
}

// WithBlock fills the w×h rectangle at (x, y) with player units of color c.
func WithBlock(x, y, w, h int, c CellType) SimOption {
	return SimOption{kind: simOptUnit, fn: func(ts *TestSim) {
		for yy := y; yy < y+h; yy++ {
			for xx := x; xx < x+w; xx++ {
				ts.Grid.Set(ts.Grid.Index(xx, yy), c, OwnerPlayer)
			}
		}
	}}
}

// WithTarget sets the move target.
func WithTarget(x, y int) SimOption {
	return SimOption{kind: simOptIntent, fn: func(ts *TestSim) {
		ts.Mailbox.SetTarget(Point{X: x, Y: y})
	}}
}

// WithRecall raises the recall flag.
func WithRecall() SimOption {
	return SimOption{kind: simOptIntent, fn: func(ts *TestSim) { ts.Mailbox.Recall() }}
}

// NewTestSim builds a TestSim from options in ordered passes: parameters,
// terrain, units, intent. It panics on invalid dimensions, which only a
// broken test can produce.
func NewTestSim(opts ...SimOption) *TestSim {
	p := DefaultParams()
	p.Width, p.Height = 64, 64
	p.WildColonies = 0
	p.Seed = 1
	verbose := false
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.infra(&p, &verbose)
		}
	}
	s, err := newBlank(p)
	if err != nil {
		panic(fmt.Sprintf("test sim: %v", err))
	}
	s.Log = NewEventLog(verbose)
	ts := &TestSim{Sim: s, Mailbox: NewMailbox(CellColorA)}
	for _, pass := range []simOptionKind{simOptTerrain, simOptUnit, simOptIntent} {
		for _, o := range opts {
			if o.kind == pass {
				o.fn(ts)
			}
		}
	}
	ts.Vis.Rebuild(ts.Grid, ts.Base, ts.P.BaseVisionRadius, ts.P.UnitVisionRadius)
	return ts
}

// Step takes the current intent and runs one tick.
func (ts *TestSim) Step() TickReport {
	rep := ts.Tick(ts.Mailbox.Take())
	ts.Reports = append(ts.Reports, rep)
	return rep
}

// RunTicks runs n ticks.
func (ts *TestSim) RunTicks(n int) {
	for range n {
		ts.Step()
	}
}

// TypeAt returns the cell type at (x, y).
func (ts *TestSim) TypeAt(x, y int) CellType {
	t, _ := ts.Grid.At(x, y)
	return t
}

// OwnerAt returns the owner at (x, y).
func (ts *TestSim) OwnerAt(x, y int) Owner {
	_, o := ts.Grid.At(x, y)
	return o
}

// FindUnits returns the coordinates of every player unit of color c.
func (ts *TestSim) FindUnits(c CellType) []Point {
	var out []Point
	g := ts.Grid
	for i := 0; i < g.Size(); i++ {
		if g.Type(i) == c && g.Owner(i) == OwnerPlayer {
			x, y := g.XY(i)
			out = append(out, Point{X: x, Y: y})
		}
	}
	return out
}

// Summary returns a short human-readable summary of the simulation state.
func (ts *TestSim) Summary() string {
	counts := ts.UnitCounts()
	return fmt.Sprintf("T=%03d resources=%d red=%d green=%d blue=%d yellow=%d wild=%d",
		ts.Ticks, ts.Resources,
		counts[CellColorA], counts[CellColorB], counts[CellColorC], counts[CellColorD],
		ts.Grid.CountOwned(OwnerWild))
}
