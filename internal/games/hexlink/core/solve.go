package core

// solveBudget caps the number of path steps a single Solve explores.
const solveBudget = 500_000

// Solution maps every non-fixed tile id to a rotation under which all
// targets are connected to a source.
type Solution map[TileID]int

// Solve searches for rotations that activate every TARGET. Tiles keep their
// current rotation wherever the path search does not need to change it, so
// the result stays close to the given state.
//
// A target is reachable iff some simple path from a source to it can be
// oriented tile by tile; the search enumerates such paths and backtracks
// across targets when their paths disagree on a shared tile.
func Solve(tiles []Tile) (Solution, bool) {
	s := &solver{
		tiles:    tiles,
		at:       indexByCoord(tiles),
		assigned: make(map[int]int),
		budget:   solveBudget,
	}
	for i, t := range tiles {
		switch t.Kind {
		case KindSource:
			s.sources = append(s.sources, i)
		case KindTarget:
			s.targets = append(s.targets, i)
		}
	}
	if len(s.targets) == 0 || len(s.sources) == 0 {
		return nil, false
	}

	if !s.connect(0) {
		return nil, false
	}

	sol := make(Solution)
	for i, t := range tiles {
		if t.Fixed {
			continue
		}
		if r, ok := s.assigned[i]; ok {
			sol[t.ID] = r
		} else {
			sol[t.ID] = t.Rotation
		}
	}
	return sol, true
}

// SolveLayout reports whether a layout can be solved from any scramble.
func SolveLayout(l Layout) (Solution, bool) {
	if err := l.Validate(); err != nil {
		return nil, false
	}
	return Solve(l.Build())
}

// Apply returns a copy of tiles with the solution's rotations and fresh
// active flags.
func (sol Solution) Apply(tiles []Tile) []Tile {
	out := make([]Tile, len(tiles))
	copy(out, tiles)
	for i := range out {
		if r, ok := sol[out[i].ID]; ok && !out[i].Fixed {
			out[i].Rotation = r
		}
	}
	return Propagate(out)
}

// Hint returns a tile whose ports must change to reach the solution.
// Tiles are considered in grid order.
func (sol Solution) Hint(tiles []Tile) (TileID, bool) {
	for _, t := range tiles {
		r, ok := sol[t.ID]
		if !ok || t.Fixed {
			continue
		}
		if Ports(t.Kind, r) != t.Ports() {
			return t.ID, true
		}
	}
	return 0, false
}

type solver struct {
	tiles    []Tile
	at       map[Coord]int
	sources  []int
	targets  []int
	assigned map[int]int
	budget   int
}

// connect routes targets[k:] given the assignments made for earlier targets.
func (s *solver) connect(k int) bool {
	if k == len(s.targets) {
		return true
	}
	for _, src := range s.sources {
		path := make([]bool, len(s.tiles))
		if s.walk(src, 0, s.targets[k], path, func() bool { return s.connect(k + 1) }) {
			return true
		}
	}
	return false
}

// walk extends the current path at tile i, entered through the ports in
// in. On reaching goal it hands over to next.
func (s *solver) walk(i int, in PortSet, goal int, path []bool, next func() bool) bool {
	s.budget--
	if s.budget < 0 {
		return false
	}

	if i == goal {
		for _, r := range s.candidates(i, in) {
			undo := s.assign(i, r)
			if next() {
				return true
			}
			undo()
		}
		return false
	}

	path[i] = true
	defer func() { path[i] = false }()

	for _, d := range AllDirs {
		ni, ok := s.at[s.tiles[i].Pos.Neighbor(d)]
		if !ok || path[ni] {
			continue
		}
		for _, r := range s.candidates(i, in|NewPortSet(d)) {
			undo := s.assign(i, r)
			if s.walk(ni, NewPortSet(d.Opposite()), goal, path, next) {
				return true
			}
			undo()
		}
	}
	return false
}

// candidates lists rotations of tile i exposing every port in need, one per
// distinct port set, starting from the tile's current rotation.
func (s *solver) candidates(i int, need PortSet) []int {
	t := s.tiles[i]
	if r, ok := s.assigned[i]; ok {
		if Ports(t.Kind, r)&need == need {
			return []int{r}
		}
		return nil
	}
	if t.Fixed {
		if t.Ports()&need == need {
			return []int{t.Rotation}
		}
		return nil
	}

	var out []int
	seen := make(map[PortSet]bool, DirCount)
	for k := range DirCount {
		r := (t.Rotation + k) % DirCount
		p := Ports(t.Kind, r)
		if p&need != need || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, r)
	}
	return out
}

func (s *solver) assign(i, r int) (undo func()) {
	if _, ok := s.assigned[i]; ok {
		return func() {}
	}
	s.assigned[i] = r
	return func() { delete(s.assigned, i) }
}
