// Package core implements the hexagonal signal-routing puzzle: axial
// coordinates, tile ports, signal propagation and the puzzle session.
// This package is UI-agnostic and deterministic.
package core

import "strings"

// DirCount is the number of neighbor directions on a hex grid.
const DirCount = 6

// Dir is one of the six hex directions. Direction d and (d+3) mod 6 are
// the two ends of the edge shared by adjacent tiles.
type Dir uint8

const (
	DirNE Dir = iota
	DirE
	DirSE
	DirSW
	DirW
	DirNW
)

// dirOffsets maps each direction to its axial offset.
var dirOffsets = [DirCount]Coord{
	{Q: 1, R: -1}, // NE
	{Q: 1, R: 0},  // E
	{Q: 0, R: 1},  // SE
	{Q: -1, R: 1}, // SW
	{Q: -1, R: 0}, // W
	{Q: 0, R: -1}, // NW
}

var dirNames = [DirCount]string{"NE", "E", "SE", "SW", "W", "NW"}

// AllDirs lists the directions in ordinal order.
var AllDirs = [DirCount]Dir{DirNE, DirE, DirSE, DirSW, DirW, DirNW}

// NormalizeDir folds any integer into [0,6).
func NormalizeDir(n int) Dir {
	n %= DirCount
	if n < 0 {
		n += DirCount
	}
	return Dir(n)
}

// String returns the compass name of a direction.
func (d Dir) String() string {
	if int(d) >= DirCount {
		return "Unknown"
	}
	return dirNames[d]
}

// Offset returns the axial (dq, dr) for one step in this direction.
func (d Dir) Offset() Coord {
	return dirOffsets[d%DirCount]
}

// Opposite returns the direction pointing back across the same edge.
func (d Dir) Opposite() Dir {
	return (d + 3) % DirCount
}

// Rotate returns the direction turned clockwise by the given number of
// 60° steps. Negative steps turn counter-clockwise.
func (d Dir) Rotate(steps int) Dir {
	return NormalizeDir(int(d) + steps)
}

// Kind identifies what a tile does with a signal.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindStraight
	KindCorner
	KindTri
	KindSource
	KindTarget
)

var kindNames = map[Kind]string{
	KindEmpty:    "empty",
	KindStraight: "straight",
	KindCorner:   "corner",
	KindTri:      "tri",
	KindSource:   "source",
	KindTarget:   "target",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// AlwaysFixed reports whether tiles of this kind can never rotate.
func (k Kind) AlwaysFixed() bool {
	return k == KindSource || k == KindTarget
}

// ParseKind converts a case-insensitive name into a Kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindEmpty, false
}
