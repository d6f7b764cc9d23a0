package core

import "strings"

// PortSet is the set of directions a tile conducts through, stored as a
// 6-bit mask (bit d set means a port facing direction d).
type PortSet uint8

const allPorts PortSet = 1<<DirCount - 1

// NewPortSet builds a set from directions.
func NewPortSet(dirs ...Dir) PortSet {
	var p PortSet
	for _, d := range dirs {
		p |= 1 << (d % DirCount)
	}
	return p
}

// Has reports whether the set contains a port facing d.
func (p PortSet) Has(d Dir) bool {
	return p&(1<<(d%DirCount)) != 0
}

// Len returns the number of ports.
func (p PortSet) Len() int {
	n := 0
	for _, d := range AllDirs {
		if p.Has(d) {
			n++
		}
	}
	return n
}

// Dirs returns the ports in ascending direction order.
func (p PortSet) Dirs() []Dir {
	dirs := make([]Dir, 0, DirCount)
	for _, d := range AllDirs {
		if p.Has(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Rotate turns every port clockwise by steps (mod 6).
func (p PortSet) Rotate(steps int) PortSet {
	n := int(NormalizeDir(steps))
	if n == 0 {
		return p
	}
	return (p<<n | p>>(DirCount-n)) & allPorts
}

// String renders the set like "{0,3}".
func (p PortSet) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, d := range p.Dirs() {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte(byte('0' + d))
	}
	sb.WriteByte('}')
	return sb.String()
}

// basePorts is the unrotated port set for each kind.
var basePorts = [...]PortSet{
	KindEmpty:    0,
	KindStraight: NewPortSet(0, 3),
	KindCorner:   NewPortSet(1, 3),
	KindTri:      NewPortSet(0, 2, 4),
	KindSource:   allPorts,
	KindTarget:   allPorts,
}

// BasePorts returns the rotation-0 port set of a kind.
// Unknown kinds conduct nothing.
func BasePorts(k Kind) PortSet {
	if int(k) >= len(basePorts) {
		return 0
	}
	return basePorts[k]
}

// Ports resolves the ports a tile of the given kind exposes at a rotation.
func Ports(k Kind, rotation int) PortSet {
	return BasePorts(k).Rotate(rotation)
}

// DistinctRotations returns the number of rotations in [0,6) that produce
// different port sets for a kind (3 for STRAIGHT, 2 for TRI, 6 for CORNER).
func DistinctRotations(k Kind) int {
	base := BasePorts(k)
	for n := 1; n < DirCount; n++ {
		if base.Rotate(n) == base {
			return n
		}
	}
	return DirCount
}
