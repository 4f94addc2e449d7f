package main

import (
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/Garsondee/slime-rts/internal/sim"
)

const (
	spawnEvery    = 30 // ticks between spawn requests during the build-up
	retargetEvery = 60
	recallAt      = 0.85 // fraction of the run after which units are recalled

	stalemateMinCombats = 20
)

type runStats struct {
	runIndex int
	seed     int64
	scenario string

	firstCombatTick  int
	firstCaptureTick int
	firstLossTick    int

	spawned   int
	spent     int
	refunded  int
	combats   int
	captures  int
	losses    int
	coinFlips int

	wildStart int
	wildEnd   int
	peakUnits int
	final     map[string]int // surviving player units by color
	resources int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var scenario string
	var size int

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&scenario, "scenario", "expedition", "scenario name (expedition, idle)")
	flag.IntVar(&size, "size", 128, "grid width and height")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if size < 48 {
		fmt.Println("error: -size must be >= 48")
		return
	}
	if scenario != "expedition" && scenario != "idle" {
		fmt.Printf("error: unsupported scenario %q (supported: expedition, idle)\n", scenario)
		return
	}

	fmt.Printf("=== Headless Colony Report ===\n")
	fmt.Printf("scenario=%s runs=%d ticks=%d size=%d seed_base=%d seed_step=%d\n\n", scenario, runs, ticks, size, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := range runs {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(scenario, i+1, seed, ticks, size)
		all = append(all, stats)
		printRun(stats)
	}

	printAggregate(all)
}

func newRunSim(seed int64, size int) *sim.TestSim {
	return sim.NewTestSim(
		sim.WithGridSize(size, size),
		sim.WithSeed(seed),
		sim.WithParams(func(p *sim.Params) {
			p.WildColonies = sim.DefaultParams().WildColonies
		}),
		sim.WithGenerated(),
	)
}

func runScenario(scenario string, runIndex int, seed int64, ticks, size int) runStats {
	ts := newRunSim(seed, size)
	wildStart := ts.Grid.CountOwned(sim.OwnerWild)
	peak := 0

	for t := range ticks {
		if scenario == "expedition" {
			driveExpedition(ts, t, ticks)
		} else if t < 5*spawnEvery && t%spawnEvery == 0 {
			ts.Mailbox.RequestSpawn()
		}
		ts.Step()
		peak = max(peak, totalUnits(ts.UnitCounts()))
	}

	rs := collectStats(ts.Reports, ts.Log.Entries())
	rs.runIndex = runIndex
	rs.seed = seed
	rs.scenario = scenario
	rs.wildStart = wildStart
	rs.wildEnd = ts.Grid.CountOwned(sim.OwnerWild)
	rs.peakUnits = peak
	rs.resources = ts.Resources
	rs.final = map[string]int{}
	counts := ts.UnitCounts()
	for _, c := range sim.UnitColors {
		rs.final[c.String()] = counts[c]
	}
	return rs
}

func totalUnits(counts [len(sim.Palette)]int) int {
	n := 0
	for _, c := range sim.UnitColors {
		n += counts[c]
	}
	return n
}

// driveExpedition plays a simple script: build up an army of the color that
// beats the nearest wild colony, march it there, then bring it home.
func driveExpedition(ts *sim.TestSim, t, ticks int) {
	if t >= int(float64(ticks)*recallAt) {
		if !ts.Mailbox.Peek().Recall {
			ts.Mailbox.Recall()
		}
		return
	}
	if t%retargetEvery != 0 && t%spawnEvery != 0 {
		return
	}
	target, wild, ok := nearestWild(ts.Grid, ts.Base)
	if !ok {
		return
	}
	if t%retargetEvery == 0 {
		ts.Mailbox.SetTarget(target)
	}
	if t%spawnEvery == 0 && t < ticks/2 {
		ts.Mailbox.SelectColor(counterColor(wild))
		ts.Mailbox.RequestSpawn()
	}
}

// nearestWild returns the wild unit closest to from by Chebyshev distance.
func nearestWild(g *sim.Grid, from sim.Point) (sim.Point, sim.CellType, bool) {
	best, bestD := -1, 0
	for i := range g.Size() {
		if g.Owner(i) != sim.OwnerWild {
			continue
		}
		x, y := g.XY(i)
		d := max(abs(x-from.X), abs(y-from.Y))
		if best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	if best < 0 {
		return sim.Point{}, sim.CellEmpty, false
	}
	x, y := g.XY(best)
	return sim.Point{X: x, Y: y}, g.Type(best), true
}

// counterColor returns the unit color that beats c.
func counterColor(c sim.CellType) sim.CellType {
	for _, a := range sim.UnitColors {
		if sim.Beats(a, c) {
			return a
		}
	}
	return sim.CellColorA
}

func collectStats(reports []sim.TickReport, events []sim.Event) runStats {
	rs := runStats{
		firstCombatTick:  firstTick(events, sim.CatCombat, ""),
		firstCaptureTick: firstTick(events, sim.CatCombat, sim.AttackerWon.String()),
		firstLossTick:    firstTick(events, sim.CatCombat, sim.DefenderWon.String()),
	}
	for _, r := range reports {
		rs.spawned += r.Spawned
		rs.combats += r.Combats
		rs.captures += r.Captures
		rs.losses += r.Losses
		if d := r.ResourcesBefore - r.ResourcesAfter; d > 0 {
			rs.spent += d
		} else {
			rs.refunded -= d
		}
	}
	for _, e := range events {
		if e.Category == sim.CatCombat && strings.HasPrefix(e.Key, "coinflip") {
			rs.coinFlips++
		}
	}
	return rs
}

// firstTick returns the tick of the first event matching category and,
// when non-empty, key; -1 when none does.
func firstTick(events []sim.Event, category, key string) int {
	for _, e := range events {
		if e.Category != category {
			continue
		}
		if key == "" || e.Key == key {
			return e.Tick
		}
	}
	return -1
}

// detectStalemate flags runs where the army traded evenly with the wild
// colonies for a long time without clearing them.
func detectStalemate(rs runStats) (bool, string) {
	if rs.wildEnd == 0 {
		return false, "wild_cleared"
	}
	if rs.combats < stalemateMinCombats {
		return false, fmt.Sprintf("low_contact combats=%d", rs.combats)
	}
	if abs(rs.captures-rs.losses)*5 > rs.combats {
		return false, fmt.Sprintf("decisive_exchange captures=%d losses=%d", rs.captures, rs.losses)
	}
	return true, fmt.Sprintf("even_exchange captures=%d losses=%d wild_left=%d", rs.captures, rs.losses, rs.wildEnd)
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Printf("phase_markers: first_combat=%d first_capture=%d first_loss=%d\n",
		rs.firstCombatTick, rs.firstCaptureTick, rs.firstLossTick)
	fmt.Printf("economy: spawned=%d spent=%d refunded=%d final_resources=%d peak_units=%d\n",
		rs.spawned, rs.spent, rs.refunded, rs.resources, rs.peakUnits)
	fmt.Printf("combat: total=%d captures=%d losses=%d coin_flips=%d\n",
		rs.combats, rs.captures, rs.losses, rs.coinFlips)
	fmt.Printf("wild: start=%d end=%d cleared=%.0f%%\n", rs.wildStart, rs.wildEnd, pct(rs.wildStart-rs.wildEnd, rs.wildStart))
	fmt.Printf("survivors: %s\n", joinCounts(rs.final))
	stale, reason := detectStalemate(rs)
	fmt.Printf("stalemate=%t (%s)\n\n", stale, reason)
}

func printAggregate(all []runStats) {
	var spawned, spent, refunded, combats, captures, losses, coinFlips, wildStart, wildEnd, stalemates int
	combatTicks := make([]int, 0, len(all))
	captureTicks := make([]int, 0, len(all))
	survivors := map[string]int{}

	for _, rs := range all {
		spawned += rs.spawned
		spent += rs.spent
		refunded += rs.refunded
		combats += rs.combats
		captures += rs.captures
		losses += rs.losses
		coinFlips += rs.coinFlips
		wildStart += rs.wildStart
		wildEnd += rs.wildEnd
		if rs.firstCombatTick >= 0 {
			combatTicks = append(combatTicks, rs.firstCombatTick)
		}
		if rs.firstCaptureTick >= 0 {
			captureTicks = append(captureTicks, rs.firstCaptureTick)
		}
		for c, n := range rs.final {
			survivors[c] += n
		}
		if s, _ := detectStalemate(rs); s {
			stalemates++
		}
	}

	n := len(all)
	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d stalemates=%d\n", n, stalemates)
	fmt.Printf("avg_economy_per_run: spawned=%.1f spent=%.1f refunded=%.1f\n",
		avg(spawned, n), avg(spent, n), avg(refunded, n))
	fmt.Printf("avg_combat_per_run: total=%.1f captures=%.1f losses=%.1f coin_flips=%.1f\n",
		avg(combats, n), avg(captures, n), avg(losses, n), avg(coinFlips, n))
	fmt.Printf("phase_marker_avg_ticks: first_combat=%s first_capture=%s\n",
		avgTickString(combatTicks), avgTickString(captureTicks))
	fmt.Printf("wild_cleared=%.0f%%\n", pct(wildStart-wildEnd, wildStart))
	fmt.Printf("total_survivors: %s\n", joinCounts(survivors))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func pct(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, m[k])
	}
	return strings.Join(parts, " ")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
