package core

import "fmt"

// Coord is an axial hex coordinate. The implicit third cube coordinate is
// s = -q - r.
type Coord struct {
	Q int
	R int
}

// C is a convenience constructor for Coord.
func C(q, r int) Coord {
	return Coord{Q: q, R: r}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Q, c.R)
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

// Add returns the sum of two coordinates.
func (c Coord) Add(other Coord) Coord {
	return Coord{Q: c.Q + other.Q, R: c.R + other.R}
}

// Neighbor returns the coordinate one step in the given direction.
// There is no bounds checking: grids are sparse, and a neighbor coordinate
// that matches no tile simply has no tile.
func (c Coord) Neighbor(d Dir) Coord {
	return c.Add(d.Offset())
}

// Distance returns the hex distance to another coordinate.
func (c Coord) Distance(other Coord) int {
	dq := abs(c.Q - other.Q)
	dr := abs(c.R - other.R)
	ds := abs(c.S() - other.S())
	return max(dq, dr, ds)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
