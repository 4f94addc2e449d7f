package sim

// Spawn places up to count units of color near the base, paying one resource
// per unit. The request is clamped to the available resources. Placement
// searches filled discs of growing radius around a point SpawnOffset rows
// below the base centre and stops at SpawnMaxRadius, so a crowded base may
// place fewer units than paid for. Returns the number placed.
func (s *Sim) Spawn(color CellType, count int) int {
	if !color.IsUnitColor() {
		return 0
	}
	count = min(count, s.Resources)
	if count <= 0 {
		return 0
	}
	origin := Point{X: s.Base.X, Y: s.Base.Y + s.P.SpawnOffset}
	placed := s.fillDisc(origin, count, s.P.SpawnMaxRadius, func(i int) {
		s.Grid.Set(i, color, OwnerPlayer)
		s.Resources--
		s.record(CatSpawn, color.String(), -1, i)
	})
	return placed
}

// fillDisc visits cells in rings of radius 1..maxRadius-1 around origin and
// calls place on the first count empty cells it finds. Within a ring the
// candidates are the cells of the filled disc x²+y² ≤ r², row by row.
func (s *Sim) fillDisc(origin Point, count, maxRadius int, place func(i int)) int {
	g := s.Grid
	placed := 0
	for r := 1; r < maxRadius && placed < count; r++ {
		for y := -r; y <= r && placed < count; y++ {
			for x := -r; x <= r && placed < count; x++ {
				if x*x+y*y > r*r {
					continue
				}
				nx, ny := origin.X+x, origin.Y+y
				if !g.InBounds(nx, ny) {
					continue
				}
				i := g.Index(nx, ny)
				if g.Type(i) != CellEmpty {
					continue
				}
				place(i)
				placed++
			}
		}
	}
	return placed
}
