package core

import "testing"

func TestBasePorts(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected []Dir
	}{
		{KindEmpty, nil},
		{KindStraight, []Dir{0, 3}},
		{KindCorner, []Dir{1, 3}},
		{KindTri, []Dir{0, 2, 4}},
		{KindSource, []Dir{0, 1, 2, 3, 4, 5}},
		{KindTarget, []Dir{0, 1, 2, 3, 4, 5}},
	}

	for _, tc := range tests {
		t.Run(tc.kind.String(), func(t *testing.T) {
			got := Ports(tc.kind, 0)
			if got != NewPortSet(tc.expected...) {
				t.Errorf("Ports(%v, 0) = %v, expected %v", tc.kind, got, tc.expected)
			}
			if got.Len() != len(tc.expected) {
				t.Errorf("Len() = %d, expected %d", got.Len(), len(tc.expected))
			}
		})
	}
}

func TestPortsRotation(t *testing.T) {
	tests := []struct {
		kind     Kind
		rotation int
		expected PortSet
	}{
		{KindStraight, 1, NewPortSet(1, 4)},
		{KindStraight, 2, NewPortSet(2, 5)},
		{KindStraight, 3, NewPortSet(0, 3)},
		{KindCorner, 1, NewPortSet(2, 4)},
		{KindCorner, 3, NewPortSet(4, 0)},
		{KindCorner, 5, NewPortSet(0, 2)},
		{KindTri, 1, NewPortSet(1, 3, 5)},
		{KindTri, 2, NewPortSet(0, 2, 4)},
		{KindSource, 4, NewPortSet(0, 1, 2, 3, 4, 5)},
		{KindEmpty, 2, 0},
	}

	for _, tc := range tests {
		if got := Ports(tc.kind, tc.rotation); got != tc.expected {
			t.Errorf("Ports(%v, %d) = %v, expected %v", tc.kind, tc.rotation, got, tc.expected)
		}
	}
}

func TestPortsMatchFormula(t *testing.T) {
	// Rotated set must equal {(p + rotation) mod 6 : p in base}
	for _, kind := range []Kind{KindStraight, KindCorner, KindTri} {
		for r := range DirCount {
			var want PortSet
			for _, p := range BasePorts(kind).Dirs() {
				want |= NewPortSet(Dir((int(p) + r) % DirCount))
			}
			if got := Ports(kind, r); got != want {
				t.Errorf("Ports(%v, %d) = %v, expected %v", kind, r, got, want)
			}
		}
	}
}

func TestPortSetFullCycle(t *testing.T) {
	p := NewPortSet(1, 3)
	q := p
	for range DirCount {
		q = q.Rotate(1)
	}
	if q != p {
		t.Errorf("six single rotations = %v, expected %v", q, p)
	}
	if p.Rotate(-1) != NewPortSet(0, 2) {
		t.Errorf("Rotate(-1) = %v, expected {0,2}", p.Rotate(-1))
	}
}

func TestDistinctRotations(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected int
	}{
		{KindStraight, 3},
		{KindCorner, 6},
		{KindTri, 2},
		{KindSource, 1},
		{KindEmpty, 1},
	}

	for _, tc := range tests {
		if got := DistinctRotations(tc.kind); got != tc.expected {
			t.Errorf("DistinctRotations(%v) = %d, expected %d", tc.kind, got, tc.expected)
		}
	}
}

func TestPortSetString(t *testing.T) {
	if s := NewPortSet(4, 0, 2).String(); s != "{0,2,4}" {
		t.Errorf("String() = %q, expected %q", s, "{0,2,4}")
	}
	if s := PortSet(0).String(); s != "{}" {
		t.Errorf("String() = %q, expected {}", s)
	}
}
