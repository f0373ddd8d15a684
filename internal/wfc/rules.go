package wfc

import (
	"github.com/mossgrove/terrasim/internal/tiles"
)

// RuleMap is the caller-facing shape of an adjacency table: for each tile
// kind and direction, the kinds permitted as that neighbor. A missing
// (kind, direction) entry means unconstrained, not forbidden. An entry
// that is present but empty forbids every neighbor.
type RuleMap map[tiles.Kind]map[tiles.Direction][]tiles.Kind

// Rules holds directional adjacency constraints for the solver. Tables
// may be asymmetric; no implicit symmetrization is applied.
type Rules struct {
	universe []tiles.Kind
	allow    map[tiles.Kind]map[tiles.Direction]map[tiles.Kind]bool
}

// NewRules creates a rule table over the given universe with the
// built-in default constraints installed.
func NewRules(universe []tiles.Kind) *Rules {
	r := &Rules{universe: append([]tiles.Kind(nil), universe...)}
	r.Reset()
	return r
}

// Install replaces the active table with a deep copy of the given
// mapping. The caller's map is never aliased.
func (r *Rules) Install(table RuleMap) {
	r.allow = make(map[tiles.Kind]map[tiles.Direction]map[tiles.Kind]bool, len(table))
	for kind, byDir := range table {
		dirs := make(map[tiles.Direction]map[tiles.Kind]bool, len(byDir))
		for dir, allowed := range byDir {
			set := make(map[tiles.Kind]bool, len(allowed))
			for _, n := range allowed {
				set[n] = true
			}
			dirs[dir] = set
		}
		r.allow[kind] = dirs
	}
}

// Reset restores the built-in default adjacency table: water borders
// water and sand, sand borders water through grass, grass borders sand
// through forest, forest borders grass and forest, in every direction.
// Kinds outside the built-in set are left unconstrained.
func (r *Rules) Reset() {
	defaults := RuleMap{}
	chain := map[tiles.Kind][]tiles.Kind{
		tiles.Water:  {tiles.Water, tiles.Sand},
		tiles.Sand:   {tiles.Water, tiles.Sand, tiles.Grass},
		tiles.Grass:  {tiles.Sand, tiles.Grass, tiles.Forest},
		tiles.Forest: {tiles.Grass, tiles.Forest},
	}
	for kind, allowed := range chain {
		byDir := make(map[tiles.Direction][]tiles.Kind, 4)
		for _, dir := range tiles.AllDirections() {
			byDir[dir] = allowed
		}
		defaults[kind] = byDir
	}
	r.Install(defaults)
}

// Allows reports whether candidate may sit in the given direction from
// kind. Unconstrained (kind, direction) pairs allow everything.
func (r *Rules) Allows(kind tiles.Kind, dir tiles.Direction, candidate tiles.Kind) bool {
	byDir, ok := r.allow[kind]
	if !ok {
		return true
	}
	set, ok := byDir[dir]
	if !ok {
		return true
	}
	return set[candidate]
}

// AllowedNeighbors returns the kinds permitted next to kind in the given
// direction. Unconstrained pairs return the full universe. The result is
// freshly allocated.
func (r *Rules) AllowedNeighbors(kind tiles.Kind, dir tiles.Direction) []tiles.Kind {
	byDir, ok := r.allow[kind]
	if !ok {
		return append([]tiles.Kind(nil), r.universe...)
	}
	set, ok := byDir[dir]
	if !ok {
		return append([]tiles.Kind(nil), r.universe...)
	}
	out := make([]tiles.Kind, 0, len(set))
	for _, k := range r.universe {
		if set[k] {
			out = append(out, k)
		}
	}
	return out
}

// Universe returns the tile universe the table was built over.
func (r *Rules) Universe() []tiles.Kind {
	return append([]tiles.Kind(nil), r.universe...)
}
