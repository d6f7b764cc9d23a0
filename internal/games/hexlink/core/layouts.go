package core

// DefaultLayoutID identifies the built-in routing grid.
const DefaultLayoutID = "core"

// DefaultLayout returns the standard routing grid: a TARGET in the centre,
// two rings of rotatable tiles and two SOURCEs on the outer edge.
func DefaultLayout() Layout {
	return Layout{
		ID:   DefaultLayoutID,
		Name: "Data Routing",
		Tiles: []TileSpec{
			// Center
			{ID: 0, Pos: C(0, 0), Kind: KindTarget},

			// Ring 1
			{ID: 1, Pos: C(0, -1), Kind: KindStraight},
			{ID: 2, Pos: C(1, -1), Kind: KindCorner},
			{ID: 3, Pos: C(1, 0), Kind: KindTri},
			{ID: 4, Pos: C(0, 1), Kind: KindStraight},
			{ID: 5, Pos: C(-1, 1), Kind: KindCorner},
			{ID: 6, Pos: C(-1, 0), Kind: KindTri},

			// Ring 2 (partial)
			{ID: 7, Pos: C(0, -2), Kind: KindCorner},
			{ID: 8, Pos: C(1, -2), Kind: KindStraight},
			{ID: 9, Pos: C(2, -2), Kind: KindTri},
			{ID: 10, Pos: C(2, -1), Kind: KindCorner},
			{ID: 11, Pos: C(2, 0), Kind: KindStraight},
			{ID: 12, Pos: C(1, 1), Kind: KindTri},
			{ID: 13, Pos: C(0, 2), Kind: KindCorner},
			{ID: 14, Pos: C(-1, 2), Kind: KindStraight},
			{ID: 15, Pos: C(-2, 2), Kind: KindTri},
			{ID: 16, Pos: C(-2, 1), Kind: KindCorner},
			{ID: 17, Pos: C(-2, 0), Kind: KindStraight},
			{ID: 18, Pos: C(-1, -1), Kind: KindTri},

			// Sources
			{ID: 99, Pos: C(0, -3), Kind: KindSource},
			{ID: 98, Pos: C(-3, 3), Kind: KindSource},
		},
	}
}
