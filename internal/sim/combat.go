package sim

import "math/rand"

// CombatOutcome reports how a contested cell was resolved.
type CombatOutcome int

const (
	AttackerWon             CombatOutcome = iota // defender captured, attacker moved in
	DefenderWon                                  // attacker destroyed
	CoinFlipAttackerRemoved                      // same-color fallback
	CoinFlipDefenderRemoved                      // same-color fallback
)

func (o CombatOutcome) String() string {
	switch o {
	case AttackerWon:
		return "attacker_won"
	case DefenderWon:
		return "defender_won"
	case CoinFlipAttackerRemoved:
		return "coinflip_attacker_removed"
	case CoinFlipDefenderRemoved:
		return "coinflip_defender_removed"
	default:
		return "unknown"
	}
}

// Beats reports whether color a dominates color b in the fixed cycle
// red > green > blue > yellow > red.
func Beats(a, b CellType) bool {
	if !a.IsUnitColor() || !b.IsUnitColor() {
		return false
	}
	next := a + 1
	if next > CellColorD {
		next = CellColorA
	}
	return next == b
}

// ResolveCombat settles an attacker moving onto a defender's cell. Both cells
// must hold units; terrain never reaches this point. The winning side ends
// up locked for the rest of the tick.
//
// An attacker that does not beat a differently colored defender loses,
// including the two non-adjacent pairings (red/blue, green/yellow) that the
// cycle leaves undecided. Equal colors are blocked by the movement engine;
// if one arrives here anyway a coin flip removes exactly one side.
func ResolveCombat(g *Grid, rng *rand.Rand, attacker, defender int) CombatOutcome {
	a := g.Type(attacker)
	d := g.Type(defender)

	switch {
	case Beats(a, d):
		g.Set(defender, a, g.Owner(attacker))
		g.Clear(attacker)
		g.Lock(attacker)
		g.Lock(defender)
		return AttackerWon
	case a != d:
		g.Clear(attacker)
		g.Lock(attacker)
		return DefenderWon
	}

	if rng.Intn(2) == 0 {
		g.Clear(attacker)
		g.Lock(attacker)
		return CoinFlipAttackerRemoved
	}
	g.Clear(defender)
	g.Lock(attacker)
	g.Lock(defender)
	return CoinFlipDefenderRemoved
}
