package sim

import (
	"fmt"
	"math/rand"
	"time"
)

// Params are the tunables fixed when a Sim is created.
type Params struct {
	Width, Height    int
	InitialResources int
	WallProbability  float64 // per-cell chance of a random wall
	BorderWalls      int     // thickness of the wall ring around the map

	BaseVisionRadius int
	UnitVisionRadius int
	RecallRadius     int // Chebyshev distance from the base centre

	SpawnBatch     int
	SpawnOffset    int // rows below the base centre where spawning starts
	SpawnMaxRadius int

	WildColonies   int // stationary enemy clusters placed at generation
	WildColonySize int

	Seed int64 // 0 picks a time-based seed
}

// DefaultParams returns the reference tuning: a 256×256 map with 600
// resources and a 20-unit spawn batch.
func DefaultParams() Params {
	return Params{
		Width:            256,
		Height:           256,
		InitialResources: 600,
		WallProbability:  0.008,
		BorderWalls:      2,
		BaseVisionRadius: 15,
		UnitVisionRadius: 6,
		RecallRadius:     4,
		SpawnBatch:       20,
		SpawnOffset:      4,
		SpawnMaxRadius:   20,
		WildColonies:     6,
		WildColonySize:   12,
	}
}

const wildColonyRadius = 6 // search radius when planting a wild colony

// Sim is the complete simulation state. Frontends own one and hand it
// intents; nothing here is global.
type Sim struct {
	P         Params
	Grid      *Grid
	Vis       *Visibility
	Base      Point // centre of the 3×3 base block
	Resources int
	Ticks     int
	Log       *EventLog // nil disables event recording

	rng *rand.Rand
}

// TickReport summarises what one tick changed.
type TickReport struct {
	Tick     int
	Spawned  int
	Moves    int
	Combats  int
	Captures int
	Losses   int
	Recalled int

	ResourcesBefore int
	ResourcesAfter  int
	Export          ExportKind // export requested by this tick's intent
}

// ResourcesChanged reports whether the tick spent or refunded resources.
func (r TickReport) ResourcesChanged() bool { return r.ResourcesBefore != r.ResourcesAfter }

// New creates a Sim and generates its map: random walls, a border ring, the
// base with an entrance on its left side and the wild colonies.
func New(p Params) (*Sim, error) {
	s, err := newBlank(p)
	if err != nil {
		return nil, err
	}
	s.generate()
	s.Vis.Rebuild(s.Grid, s.Base, s.P.BaseVisionRadius, s.P.UnitVisionRadius)
	return s, nil
}

// newBlank allocates an all-empty Sim with the base position computed but
// not placed.
func newBlank(p Params) (*Sim, error) {
	g, err := NewGrid(p.Width, p.Height)
	if err != nil {
		return nil, fmt.Errorf("new sim: %w", err)
	}
	seed := p.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Sim{
		P:         p,
		Grid:      g,
		Vis:       NewVisibility(g),
		Base:      Point{X: p.Width / 2, Y: p.Height / 2},
		Resources: max(0, p.InitialResources),
		rng:       rand.New(rand.NewSource(seed)), // #nosec G404 -- gameplay only
	}, nil
}

func (s *Sim) generate() {
	g := s.Grid
	b := s.P.BorderWalls
	for i := 0; i < g.Size(); i++ {
		x, y := g.XY(i)
		border := x < b || x >= g.W-b || y < b || y >= g.H-b
		if border || s.rng.Float64() < s.P.WallProbability {
			g.Set(i, CellWall, OwnerNone)
		}
	}
	s.placeBase()
	for range s.P.WildColonies {
		s.plantWildColony()
	}
}

// placeBase stamps the 3×3 base over whatever lies beneath and clears the
// column to its left as an entrance.
func (s *Sim) placeBase() {
	g := s.Grid
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			x, y := s.Base.X+dx, s.Base.Y+dy
			if g.InBounds(x, y) {
				g.Set(g.Index(x, y), CellBase, OwnerPlayer)
			}
		}
		x, y := s.Base.X-2, s.Base.Y+dy
		if g.InBounds(x, y) {
			g.Clear(g.Index(x, y))
		}
	}
}

// plantWildColony drops a single-color wild cluster somewhere outside the
// base's sight. It gives up quietly on maps too small to hold one.
func (s *Sim) plantWildColony() {
	g := s.Grid
	clearance := s.P.BaseVisionRadius + wildColonyRadius
	for attempt := 0; attempt < 64; attempt++ {
		x := s.rng.Intn(g.W)
		y := s.rng.Intn(g.H)
		if absInt(x-s.Base.X) <= clearance && absInt(y-s.Base.Y) <= clearance {
			continue
		}
		color := UnitColors[s.rng.Intn(len(UnitColors))]
		s.fillDisc(Point{X: x, Y: y}, s.P.WildColonySize, wildColonyRadius, func(i int) {
			g.Set(i, color, OwnerWild)
		})
		return
	}
}

// Tick advances the simulation by one logic step using the given intent
// snapshot: queued spawn batches first, then the movement pass with inline
// combat, then the visibility rebuild.
func (s *Sim) Tick(in Intent) TickReport {
	s.Ticks++
	rep := TickReport{
		Tick:            s.Ticks,
		ResourcesBefore: s.Resources,
		Export:          in.Export,
	}

	s.Grid.ResetLocks()
	for range in.SpawnBatches {
		rep.Spawned += s.Spawn(in.Color, s.P.SpawnBatch)
	}
	s.moveUnits(in, &rep)
	s.Vis.Rebuild(s.Grid, s.Base, s.P.BaseVisionRadius, s.P.UnitVisionRadius)

	rep.ResourcesAfter = s.Resources
	return rep
}

// UnitCounts returns the number of player units per color, indexed by
// CellType.
func (s *Sim) UnitCounts() [cellTypeCount]int {
	var out [cellTypeCount]int
	g := s.Grid
	for i := 0; i < g.Size(); i++ {
		if g.Owner(i) == OwnerPlayer && g.Type(i).IsUnitColor() {
			out[g.Type(i)]++
		}
	}
	return out
}
