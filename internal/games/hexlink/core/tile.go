package core

// TileID is a stable tile identifier assigned when the grid is built.
type TileID int

// Tile is one cell of the puzzle grid.
type Tile struct {
	ID       TileID
	Pos      Coord
	Kind     Kind
	Rotation int  // 60° clockwise steps in [0,6)
	Fixed    bool // SOURCE and TARGET are always fixed
	Active   bool // Derived by Propagate; never set directly
}

// Ports returns the directions this tile conducts through.
func (t Tile) Ports() PortSet {
	return Ports(t.Kind, t.Rotation)
}

// IsSource reports whether the tile is a signal source.
func (t Tile) IsSource() bool {
	return t.Kind == KindSource
}

// IsTarget reports whether the tile is an unlock target.
func (t Tile) IsTarget() bool {
	return t.Kind == KindTarget
}

// TileSpec describes a tile in a layout before a session is created.
type TileSpec struct {
	ID       TileID
	Pos      Coord
	Kind     Kind
	Rotation int
	Fixed    bool
}

// Layout is an initial grid definition.
type Layout struct {
	ID    string
	Name  string
	Tiles []TileSpec
}

// Build turns the layout into tiles. Rotations are normalized and
// SOURCE/TARGET tiles are forced fixed. Active flags are not computed.
func (l Layout) Build() []Tile {
	tiles := make([]Tile, len(l.Tiles))
	for i, spec := range l.Tiles {
		tiles[i] = Tile{
			ID:       spec.ID,
			Pos:      spec.Pos,
			Kind:     spec.Kind,
			Rotation: int(NormalizeDir(spec.Rotation)),
			Fixed:    spec.Fixed || spec.Kind.AlwaysFixed(),
		}
	}
	return tiles
}

// Validate checks the layout for duplicate ids and coordinates and
// requires at least one TARGET.
func (l Layout) Validate() error {
	ids := make(map[TileID]bool, len(l.Tiles))
	coords := make(map[Coord]TileID, len(l.Tiles))
	targets := 0

	for _, spec := range l.Tiles {
		if ids[spec.ID] {
			return &InvalidLayoutError{Reason: "duplicate tile id", Tile: spec.ID, Pos: spec.Pos}
		}
		ids[spec.ID] = true

		if _, taken := coords[spec.Pos]; taken {
			return &InvalidLayoutError{Reason: "duplicate coordinate", Tile: spec.ID, Pos: spec.Pos}
		}
		coords[spec.Pos] = spec.ID

		if spec.Kind == KindTarget {
			targets++
		}
	}

	if targets == 0 {
		return &InvalidLayoutError{Reason: "no target tile", Tile: -1}
	}
	return nil
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	tiles := make([]TileSpec, len(l.Tiles))
	copy(tiles, l.Tiles)
	return Layout{ID: l.ID, Name: l.Name, Tiles: tiles}
}
