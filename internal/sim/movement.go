package sim

import "fmt"

const (
	// Target-seeking score weights.
	scoreCloser     = 2.0  // Manhattan distance to target shrinks
	scoreCohesion   = 5.0  // keeps at least as many same-color neighbours
	scoreIsolation  = -10  // would end up with fewer than isolationLimit neighbours
	scoreJitter     = 2.0  // uniform [0, scoreJitter) tie-break
	isolationLimit  = 2    // neighbour count below which a move is penalised
	embeddedLimit   = 6    // idle units with this many neighbours stay put
	cohesionSamples = 4    // random offsets tried per idle unit
)

// moveUnits runs one movement pass. Cells are visited in a linear scan that
// starts at a random offset each tick so no direction is systematically
// favoured.
func (s *Sim) moveUnits(in Intent, rep *TickReport) {
	g := s.Grid
	n := g.Size()

	target, seeking := in.Target, in.HasTarget
	if in.Recall {
		target, seeking = s.Base, true
	}

	start := s.rng.Intn(n)
	for k := 0; k < n; k++ {
		i := k + start
		if i >= n {
			i -= n
		}
		if g.Owner(i) != OwnerPlayer || !g.Type(i).IsUnitColor() || g.Locked(i) {
			continue
		}

		if in.Recall && s.nearBase(i) {
			g.Clear(i)
			s.Resources++
			rep.Recalled++
			s.record(CatRecall, "removed", i, -1)
			continue
		}

		if seeking {
			s.seek(i, target, rep)
		} else {
			s.cohere(i, rep)
		}
	}
}

// nearBase reports whether index i is within RecallRadius (Chebyshev) of the
// base centre.
func (s *Sim) nearBase(i int) bool {
	x, y := s.Grid.XY(i)
	r := s.P.RecallRadius
	return absInt(x-s.Base.X) <= r && absInt(y-s.Base.Y) <= r
}

// seek moves the unit at i one step toward target, weighing progress against
// staying attached to same-colored neighbours. Contact with a unit of another
// owner turns into combat and ends the unit's action for the tick.
func (s *Sim) seek(i int, target Point, rep *TickReport) {
	g := s.Grid
	cx, cy := g.XY(i)
	dx := sign(target.X - cx)
	dy := sign(target.Y - cy)
	if dx == 0 && dy == 0 {
		return
	}

	color := g.Type(i)
	owner := g.Owner(i)
	here := g.SameTypeNeighbors(cx, cy, color, -1)
	distOld := absInt(target.X-cx) + absInt(target.Y-cy)

	candidates := [4]Point{
		{dx, dy},
		{dx, 0},
		{0, dy},
		{s.rng.Intn(2)*2 - 1, s.rng.Intn(2)*2 - 1},
	}

	best := -1
	bestScore := 0.0
	for _, c := range candidates {
		if c.X == 0 && c.Y == 0 {
			continue
		}
		nx, ny := cx+c.X, cy+c.Y
		if !g.InBounds(nx, ny) {
			continue
		}
		ni := g.Index(nx, ny)
		t := g.Type(ni)
		if t.IsTerrain() || t == color || g.Locked(ni) {
			continue
		}
		if t != CellEmpty {
			if g.Owner(ni) != owner && g.Owner(ni) != OwnerNone {
				s.fight(i, ni, rep)
				g.Lock(i)
				return
			}
			continue
		}

		there := g.SameTypeNeighbors(nx, ny, color, i)
		score := 0.0
		if absInt(target.X-nx)+absInt(target.Y-ny) < distOld {
			score += scoreCloser
		}
		if there >= here {
			score += scoreCohesion
		} else if there < isolationLimit {
			score += scoreIsolation
		}
		score += s.rng.Float64() * scoreJitter

		if best < 0 || score > bestScore {
			best = ni
			bestScore = score
		}
	}

	if best >= 0 && bestScore > 0 {
		g.move(i, best)
		rep.Moves++
		s.recordMove(i, best)
	}
}

// cohere lets an idle unit drift toward denser clusters of its own color.
func (s *Sim) cohere(i int, rep *TickReport) {
	g := s.Grid
	cx, cy := g.XY(i)
	color := g.Type(i)
	here := g.SameTypeNeighbors(cx, cy, color, -1)
	if here >= embeddedLimit {
		return
	}

	for k := 0; k < cohesionSamples; k++ {
		ox := s.rng.Intn(3) - 1
		oy := s.rng.Intn(3) - 1
		if ox == 0 && oy == 0 {
			continue
		}
		nx, ny := cx+ox, cy+oy
		if !g.InBounds(nx, ny) {
			continue
		}
		ni := g.Index(nx, ny)
		if g.Type(ni) != CellEmpty || g.Locked(ni) {
			continue
		}
		if g.SameTypeNeighbors(nx, ny, color, i) > here {
			g.move(i, ni)
			rep.Moves++
			s.recordMove(i, ni)
			return
		}
	}
}

// fight runs the combat resolver and books the outcome.
func (s *Sim) fight(attacker, defender int, rep *TickReport) {
	g := s.Grid
	a, d := g.Type(attacker), g.Type(defender)
	out := ResolveCombat(g, s.rng, attacker, defender)
	rep.Combats++
	switch out {
	case AttackerWon:
		rep.Captures++
	case DefenderWon, CoinFlipAttackerRemoved:
		rep.Losses++
	}
	if s.Log != nil {
		ax, ay := g.XY(attacker)
		dx, dy := g.XY(defender)
		s.Log.Add(Event{
			Tick:     s.Ticks,
			Category: CatCombat,
			Key:      out.String(),
			From:     attacker,
			To:       defender,
			Value:    fmt.Sprintf("%s(%d,%d) vs %s(%d,%d)", a, ax, ay, d, dx, dy),
		})
	}
}

func (s *Sim) recordMove(from, to int) {
	if !s.Log.Verbose() {
		return
	}
	fx, fy := s.Grid.XY(from)
	tx, ty := s.Grid.XY(to)
	s.Log.Add(Event{
		Tick:     s.Ticks,
		Category: CatMove,
		Key:      "step",
		From:     from,
		To:       to,
		Value:    fmt.Sprintf("(%d,%d)->(%d,%d)", fx, fy, tx, ty),
	})
}

func (s *Sim) record(category, key string, from, to int) {
	if s.Log == nil {
		return
	}
	at := from
	if at < 0 {
		at = to
	}
	x, y := s.Grid.XY(at)
	s.Log.Add(Event{
		Tick:     s.Ticks,
		Category: category,
		Key:      key,
		From:     from,
		To:       to,
		Value:    fmt.Sprintf("(%d,%d)", x, y),
	})
}
