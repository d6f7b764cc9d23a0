package core

import (
	"math/rand"
	"testing"
)

func TestSolveDefaultLayout(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := DefaultLayout().Build()

	for trial := range 20 {
		tiles := make([]Tile, len(base))
		copy(tiles, base)
		for i := range tiles {
			if !tiles[i].Fixed {
				tiles[i].Rotation = rng.Intn(DirCount)
			}
		}

		sol, ok := Solve(tiles)
		if !ok {
			t.Fatalf("trial %d: default layout reported unsolvable", trial)
		}
		solved := sol.Apply(tiles)
		for _, tl := range solved {
			if tl.IsTarget() && !tl.Active {
				t.Fatalf("trial %d: target %d inactive after applying solution", trial, tl.ID)
			}
		}
		if _, ok := sol.Hint(solved); ok {
			t.Errorf("trial %d: hint offered on a solved grid", trial)
		}
	}
}

func TestSolveLayoutBuiltins(t *testing.T) {
	if _, ok := SolveLayout(DefaultLayout()); !ok {
		t.Error("DefaultLayout should be solvable")
	}
}

func TestSolveBranchingTargets(t *testing.T) {
	tiles := Layout{
		ID: "fork",
		Tiles: []TileSpec{
			{ID: 1, Pos: C(0, 0), Kind: KindSource},
			{ID: 2, Pos: C(1, 0), Kind: KindTri, Rotation: 1},
			{ID: 3, Pos: C(2, -1), Kind: KindTarget},
			{ID: 4, Pos: C(1, 1), Kind: KindTarget},
		},
	}.Build()

	sol, ok := Solve(tiles)
	if !ok {
		t.Fatal("fork should be solvable")
	}
	if got := Ports(KindTri, sol[2]); got != NewPortSet(DirNE, DirSE, DirW) {
		t.Errorf("tri ports = %v, expected {0,2,4}", got)
	}

	hint, ok := sol.Hint(tiles)
	if !ok || hint != 2 {
		t.Errorf("Hint = %d, %v; expected tile 2", hint, ok)
	}
}

func TestSolveUnsolvable(t *testing.T) {
	tests := []struct {
		name  string
		tiles []TileSpec
	}{
		{
			name: "blocked by empty",
			tiles: []TileSpec{
				{ID: 1, Pos: C(0, 0), Kind: KindSource},
				{ID: 2, Pos: C(1, 0), Kind: KindEmpty},
				{ID: 3, Pos: C(2, 0), Kind: KindTarget},
			},
		},
		{
			name: "fixed tile misaligned",
			tiles: []TileSpec{
				{ID: 1, Pos: C(0, 0), Kind: KindSource},
				{ID: 2, Pos: C(1, 0), Kind: KindStraight, Rotation: 0, Fixed: true},
				{ID: 3, Pos: C(2, 0), Kind: KindTarget},
			},
		},
		{
			name: "straight cannot turn",
			tiles: []TileSpec{
				{ID: 1, Pos: C(0, 0), Kind: KindSource},
				{ID: 2, Pos: C(1, 0), Kind: KindStraight},
				{ID: 3, Pos: C(2, -1), Kind: KindTarget},
			},
		},
		{
			name: "no source",
			tiles: []TileSpec{
				{ID: 1, Pos: C(0, 0), Kind: KindStraight},
				{ID: 2, Pos: C(1, 0), Kind: KindTarget},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, ok := SolveLayout(Layout{ID: tc.name, Tiles: tc.tiles}); ok {
				t.Error("expected unsolvable")
			}
		})
	}
}

func TestSolveKeepsCurrentRotationsWhenSolved(t *testing.T) {
	tiles := lineLayout().Build()
	tiles[1].Rotation = 2

	sol, ok := Solve(tiles)
	if !ok {
		t.Fatal("line should be solvable")
	}
	if sol[2] != 2 {
		t.Errorf("solution moved an already aligned tile to %d", sol[2])
	}
	if _, ok := sol.Hint(Propagate(tiles)); ok {
		t.Error("no hint expected on a solved grid")
	}
}
