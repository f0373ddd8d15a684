package wfc

import (
	"testing"

	"github.com/mossgrove/terrasim/internal/tiles"
)

func TestDefaultRulesTerrainChain(t *testing.T) {
	r := NewRules(tiles.BaseKinds())

	tests := []struct {
		kind, neighbor tiles.Kind
		want           bool
	}{
		{tiles.Water, tiles.Water, true},
		{tiles.Water, tiles.Sand, true},
		{tiles.Water, tiles.Grass, false},
		{tiles.Water, tiles.Forest, false},
		{tiles.Sand, tiles.Grass, true},
		{tiles.Grass, tiles.Forest, true},
		{tiles.Forest, tiles.Water, false},
		{tiles.Forest, tiles.Forest, true},
	}

	for _, tc := range tests {
		for _, dir := range tiles.AllDirections() {
			if got := r.Allows(tc.kind, dir, tc.neighbor); got != tc.want {
				t.Errorf("Allows(%s, %s, %s) = %v, want %v", tc.kind, dir, tc.neighbor, got, tc.want)
			}
		}
	}
}

func TestUnconstrainedPairIsPermissive(t *testing.T) {
	// A kind with no entry allows every neighbor, and vice versa
	snow := tiles.Kind(10)
	universe := append(tiles.BaseKinds(), snow)
	r := NewRules(universe)

	for _, dir := range tiles.AllDirections() {
		if !r.Allows(snow, dir, tiles.Water) {
			t.Errorf("unconstrained kind should allow any neighbor (%s)", dir)
		}
	}

	allowed := r.AllowedNeighbors(snow, tiles.North)
	if len(allowed) != len(universe) {
		t.Errorf("AllowedNeighbors for unconstrained kind returned %d kinds, want full universe (%d)",
			len(allowed), len(universe))
	}
}

func TestExplicitEmptySetForbidsAll(t *testing.T) {
	// An entry that is present but empty is a prohibition, not an absence
	r := NewRules(tiles.BaseKinds())
	r.Install(RuleMap{
		tiles.Water: {tiles.North: {}},
	})

	if r.Allows(tiles.Water, tiles.North, tiles.Water) {
		t.Error("explicit empty set should forbid every neighbor")
	}
	// Other directions for water have no entry and stay permissive
	if !r.Allows(tiles.Water, tiles.South, tiles.Forest) {
		t.Error("directions without entries should stay permissive")
	}
	if len(r.AllowedNeighbors(tiles.Water, tiles.North)) != 0 {
		t.Error("AllowedNeighbors should be empty for an explicit empty set")
	}
}

func TestInstallDoesNotAliasCallerData(t *testing.T) {
	r := NewRules(tiles.BaseKinds())

	allowed := []tiles.Kind{tiles.Water}
	table := RuleMap{
		tiles.Water: {tiles.North: allowed},
	}
	r.Install(table)

	// Mutating the caller's data after Install must not affect the table
	allowed[0] = tiles.Forest
	table[tiles.Water][tiles.South] = []tiles.Kind{tiles.Forest}

	if !r.Allows(tiles.Water, tiles.North, tiles.Water) {
		t.Error("Install should have deep-copied the allowed set")
	}
	if r.Allows(tiles.Water, tiles.North, tiles.Forest) {
		t.Error("mutation of caller slice leaked into the table")
	}
	if !r.Allows(tiles.Water, tiles.South, tiles.Water) {
		t.Error("mutation of caller map leaked into the table")
	}
}

func TestAsymmetricTableIsRespected(t *testing.T) {
	// Sand accepts only water to its east; water itself stays
	// unconstrained. No implicit symmetrization.
	r := NewRules(tiles.BaseKinds())
	r.Install(RuleMap{
		tiles.Sand: {tiles.East: {tiles.Water}},
	})

	if r.Allows(tiles.Sand, tiles.East, tiles.Grass) {
		t.Error("sand/east should only allow water")
	}
	if !r.Allows(tiles.Sand, tiles.West, tiles.Grass) {
		t.Error("sand/west has no entry and should be permissive")
	}
	if !r.Allows(tiles.Water, tiles.West, tiles.Grass) {
		t.Error("water must not inherit sand's constraint")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	r := NewRules(tiles.BaseKinds())
	r.Install(RuleMap{
		tiles.Water: {tiles.North: {}},
	})
	r.Reset()

	if !r.Allows(tiles.Water, tiles.North, tiles.Sand) {
		t.Error("Reset() should restore the default water/sand adjacency")
	}
	if r.Allows(tiles.Water, tiles.North, tiles.Forest) {
		t.Error("Reset() should restore default constraints, not permissiveness")
	}
}

func TestAllowedNeighborsUniverseOrder(t *testing.T) {
	r := NewRules(tiles.BaseKinds())
	r.Install(RuleMap{
		tiles.Grass: {tiles.North: {tiles.Forest, tiles.Sand}},
	})

	got := r.AllowedNeighbors(tiles.Grass, tiles.North)
	want := []tiles.Kind{tiles.Sand, tiles.Forest}
	if len(got) != len(want) {
		t.Fatalf("AllowedNeighbors returned %d kinds, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllowedNeighbors[%d] = %v, want %v (universe order)", i, got[i], want[i])
		}
	}
}

func TestUniverseIsCopied(t *testing.T) {
	universe := tiles.BaseKinds()
	r := NewRules(universe)

	u := r.Universe()
	u[0] = tiles.Kind(99)

	if r.Universe()[0] != tiles.Water {
		t.Error("mutating Universe() result leaked into the table")
	}
}
