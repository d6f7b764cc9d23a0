package core

// Traversal permutes a slice of n elements through swap. It has the shape of
// (*rand.Rand).Shuffle so callers can randomize the engine's visiting order;
// activation does not depend on that order.
type Traversal func(n int, swap func(i, j int))

// Propagate recomputes the active flag of every tile: a tile is active iff a
// chain of mutually matching ports connects it to some SOURCE. The input is
// not modified; a new slice in the same order is returned.
func Propagate(tiles []Tile) []Tile {
	return PropagateWith(tiles, nil)
}

// PropagateWith is Propagate with a caller-controlled visiting order.
// A nil traversal visits sources in slice order and ports in ascending
// direction order.
func PropagateWith(tiles []Tile, traversal Traversal) []Tile {
	next := make([]Tile, len(tiles))
	copy(next, tiles)

	at := indexByCoord(next)
	visited := make([]bool, len(next))
	queue := make([]int, 0, len(next))

	// Sources are the base case
	for i := range next {
		next[i].Active = next[i].IsSource()
		if next[i].Active {
			visited[i] = true
			queue = append(queue, i)
		}
	}
	permute(traversal, queue)

	// Each tile is enqueued at most once, so this terminates
	for head := 0; head < len(queue); head++ {
		cur := next[queue[head]]
		dirs := cur.Ports().Dirs()
		permuteDirs(traversal, dirs)

		for _, d := range dirs {
			ni, ok := at[cur.Pos.Neighbor(d)]
			if !ok || visited[ni] {
				continue // Dead end or already reached
			}
			if !next[ni].Ports().Has(d.Opposite()) {
				continue
			}
			next[ni].Active = true
			visited[ni] = true
			queue = append(queue, ni)
		}
	}

	return next
}

// Linked reports whether two tiles are adjacent and expose ports facing
// each other.
func Linked(a, b Tile) bool {
	for _, d := range AllDirs {
		if a.Pos.Neighbor(d) == b.Pos {
			return a.Ports().Has(d) && b.Ports().Has(d.Opposite())
		}
	}
	return false
}

// ActiveIDs returns the ids of all active tiles.
func ActiveIDs(tiles []Tile) map[TileID]bool {
	ids := make(map[TileID]bool)
	for _, t := range tiles {
		if t.Active {
			ids[t.ID] = true
		}
	}
	return ids
}

// indexByCoord maps each coordinate to its position in tiles.
func indexByCoord(tiles []Tile) map[Coord]int {
	at := make(map[Coord]int, len(tiles))
	for i, t := range tiles {
		at[t.Pos] = i
	}
	return at
}

func permute(traversal Traversal, s []int) {
	if traversal == nil || len(s) < 2 {
		return
	}
	traversal(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}

func permuteDirs(traversal Traversal, s []Dir) {
	if traversal == nil || len(s) < 2 {
		return
	}
	traversal(len(s), func(i, j int) {
		s[i], s[j] = s[j], s[i]
	})
}
