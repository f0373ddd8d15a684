package wfc

import (
	"errors"
	"testing"

	"github.com/mossgrove/terrasim/internal/tiles"
)

func TestGenerateInvalidSize(t *testing.T) {
	tests := []struct{ w, h int }{
		{0, 5},
		{5, 0},
		{-1, 5},
		{5, -3},
		{0, 0},
	}

	for _, tc := range tests {
		s := NewSolver(tc.w, tc.h, 1, tiles.BaseKinds(), nil)
		if _, err := s.Generate(); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Generate() with %dx%d: error = %v, want ErrInvalidSize", tc.w, tc.h, err)
		}
	}
}

func TestGenerateEmptyUniverse(t *testing.T) {
	s := NewSolver(4, 4, 1, nil, NewRules(tiles.BaseKinds()))
	if _, err := s.Generate(); !errors.Is(err, ErrEmptyUniverse) {
		t.Errorf("Generate() with empty universe: error = %v, want ErrEmptyUniverse", err)
	}
}

func TestGenerateFullyResolved(t *testing.T) {
	universe := tiles.BaseKinds()
	inUniverse := make(map[tiles.Kind]bool)
	for _, k := range universe {
		inUniverse[k] = true
	}

	sizes := []struct{ w, h int }{{1, 1}, {3, 5}, {8, 8}, {12, 7}}
	seeds := []int64{1, 42, 9999}

	for _, size := range sizes {
		for _, seed := range seeds {
			s := NewSolver(size.w, size.h, seed, universe, nil)
			g, err := s.Generate()
			if err != nil {
				t.Fatalf("Generate(%dx%d, seed %d) failed: %v", size.w, size.h, seed, err)
			}
			if g.Width() != size.w || g.Height() != size.h {
				t.Errorf("grid is %dx%d, want %dx%d", g.Width(), g.Height(), size.w, size.h)
			}
			for _, k := range g.Cells() {
				if !inUniverse[k] {
					t.Fatalf("cell resolved to %v, not in the universe", k)
				}
			}
		}
	}
}

func TestGenerateSingleKindUniverse(t *testing.T) {
	// Universe of just water with water permitted next to water: every
	// seed must produce an all-water grid.
	universe := []tiles.Kind{tiles.Water}
	rules := NewRules(universe)
	rules.Install(RuleMap{
		tiles.Water: {
			tiles.North: {tiles.Water},
			tiles.East:  {tiles.Water},
			tiles.South: {tiles.Water},
			tiles.West:  {tiles.Water},
		},
	})

	for _, seed := range []int64{1, 7, 31337} {
		s := NewSolver(4, 4, seed, universe, rules)
		g, err := s.Generate()
		if err != nil {
			t.Fatalf("Generate() failed: %v", err)
		}
		for _, k := range g.Cells() {
			if k != tiles.Water {
				t.Fatalf("seed %d: cell = %v, want water", seed, k)
			}
		}
		if s.Repairs() != 0 {
			t.Errorf("seed %d: repairs = %d, want 0", seed, s.Repairs())
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a, err := NewSolver(8, 8, 1234, tiles.BaseKinds(), nil).Generate()
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	b, err := NewSolver(8, 8, 1234, tiles.BaseKinds(), nil).Generate()
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if !a.Equal(b) {
		t.Error("two runs with the same seed produced different grids")
	}
}

func TestGenerateUnsatisfiableTerminates(t *testing.T) {
	// Every kind forbids every neighbor outright, so any collapse
	// contradicts all four neighbors. Generation must still terminate
	// with a fully resolved grid; the result necessarily violates the
	// table on at least one edge.
	universe := []tiles.Kind{tiles.Water, tiles.Sand}
	rules := NewRules(universe)
	forbidAll := map[tiles.Direction][]tiles.Kind{
		tiles.North: {}, tiles.East: {}, tiles.South: {}, tiles.West: {},
	}
	rules.Install(RuleMap{
		tiles.Water: forbidAll,
		tiles.Sand:  forbidAll,
	})

	s := NewSolver(3, 3, 77, universe, rules)
	g, err := s.Generate()
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	inUniverse := map[tiles.Kind]bool{tiles.Water: true, tiles.Sand: true}
	for _, k := range g.Cells() {
		if !inUniverse[k] {
			t.Fatalf("cell resolved to %v, not in the universe", k)
		}
	}

	if s.Repairs() == 0 {
		t.Error("expected forced repairs for an unsatisfiable table")
	}

	// Find a horizontal edge that violates the table
	violated := false
	for y := 0; y < g.Height() && !violated; y++ {
		for x := 0; x+1 < g.Width(); x++ {
			if !rules.Allows(g.At(x, y), tiles.East, g.At(x+1, y)) {
				violated = true
				break
			}
		}
	}
	if !violated {
		t.Error("expected at least one rule-violating edge in the repaired grid")
	}
}

func TestLowestEntropySkipsCollapsedCells(t *testing.T) {
	s := NewSolver(2, 2, 1, tiles.BaseKinds(), nil)
	s.initializeGrid()

	// Collapse (0,0) by hand; entropy 0 but it must never be selected
	s.Grid[0][0].Possible = map[tiles.Kind]bool{tiles.Water: true}
	s.Grid[0][0].Collapsed = true

	cell := s.lowestEntropyCell()
	if cell == nil {
		t.Fatal("expected an uncollapsed cell")
	}
	if cell.X == 0 && cell.Y == 0 {
		t.Error("selection returned an already-collapsed cell")
	}
}

func TestLowestEntropyRowMajorTieBreak(t *testing.T) {
	s := NewSolver(3, 3, 1, tiles.BaseKinds(), nil)
	s.initializeGrid()

	// All cells tie on entropy: the first in row-major order wins
	cell := s.lowestEntropyCell()
	if cell.X != 0 || cell.Y != 0 {
		t.Errorf("tie-break selected (%d, %d), want (0, 0)", cell.X, cell.Y)
	}

	// Narrow a later cell below the rest: it must win
	s.Grid[1][2].Possible = map[tiles.Kind]bool{tiles.Water: true, tiles.Sand: true}
	cell = s.lowestEntropyCell()
	if cell.X != 2 || cell.Y != 1 {
		t.Errorf("min-entropy selection chose (%d, %d), want (2, 1)", cell.X, cell.Y)
	}
}

func TestPropagationNarrowsNeighbor(t *testing.T) {
	// Collapse the center of a 3x3 to water; direct neighbors may then
	// only hold kinds permitted next to water.
	universe := tiles.BaseKinds()
	s := NewSolver(3, 3, 1, universe, nil)
	s.initializeGrid()

	center := s.Grid[1][1]
	center.Possible = map[tiles.Kind]bool{tiles.Water: true}
	center.Collapsed = true
	s.propagateFrom(1, 1)

	east := s.Grid[1][2]
	if east.Possible[tiles.Forest] {
		t.Error("forest should have been pruned next to collapsed water")
	}
	if east.Possible[tiles.Grass] {
		t.Error("grass should have been pruned next to collapsed water")
	}
	if !east.Possible[tiles.Water] || !east.Possible[tiles.Sand] {
		t.Error("water and sand should remain candidates next to water")
	}
}

func TestCellEntropy(t *testing.T) {
	cell := &Cell{
		Possible: map[tiles.Kind]bool{
			tiles.Water: true,
			tiles.Sand:  true,
			tiles.Grass: false,
		},
	}

	if got := cell.Entropy(); got != 1 {
		t.Errorf("Entropy() = %d, want 1 (candidate count minus one)", got)
	}

	cell.Possible = map[tiles.Kind]bool{tiles.Water: true}
	if got := cell.Entropy(); got != 0 {
		t.Errorf("Entropy() = %d, want 0 for a collapsed cell", got)
	}
}
