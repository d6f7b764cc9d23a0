package core

// TileView is the read-only view of a tile handed to callers.
type TileView struct {
	ID       TileID
	Pos      Coord
	Kind     Kind
	Rotation int
	Fixed    bool
	Active   bool
}

// GridSnapshot is an ordered, read-only copy of the grid at one moment.
// Mutating the session later does not change an existing snapshot.
type GridSnapshot struct {
	tiles []TileView
}

func newSnapshot(tiles []Tile) GridSnapshot {
	views := make([]TileView, len(tiles))
	for i, t := range tiles {
		views[i] = TileView{
			ID:       t.ID,
			Pos:      t.Pos,
			Kind:     t.Kind,
			Rotation: t.Rotation,
			Fixed:    t.Fixed,
			Active:   t.Active,
		}
	}
	return GridSnapshot{tiles: views}
}

// Len returns the number of tiles.
func (g GridSnapshot) Len() int {
	return len(g.tiles)
}

// At returns the i-th tile in grid order.
func (g GridSnapshot) At(i int) TileView {
	return g.tiles[i]
}

// Tiles returns a copy of all tile views in grid order.
func (g GridSnapshot) Tiles() []TileView {
	out := make([]TileView, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// Lookup finds a tile by id.
func (g GridSnapshot) Lookup(id TileID) (TileView, bool) {
	for _, t := range g.tiles {
		if t.ID == id {
			return t, true
		}
	}
	return TileView{}, false
}

// TileAt finds the tile at a coordinate.
func (g GridSnapshot) TileAt(c Coord) (TileView, bool) {
	for _, t := range g.tiles {
		if t.Pos == c {
			return t, true
		}
	}
	return TileView{}, false
}

// ActiveCount returns how many tiles carry the signal.
func (g GridSnapshot) ActiveCount() int {
	n := 0
	for _, t := range g.tiles {
		if t.Active {
			n++
		}
	}
	return n
}
