// Package tiles defines the terrain tile universe: kind identifiers,
// cardinal directions, and a registry mapping kinds to display metadata.
package tiles

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a lookup references an unregistered tile kind.
var ErrNotFound = errors.New("tiles: kind not found")

// Definition holds the display metadata for a registered tile kind.
// The simulation core only ever reads the kind itself; names and colors
// exist for renderers and config files.
type Definition struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color,omitempty"`
}

// Registry assigns stable numeric identifiers to tile kinds and tracks
// their display metadata. The built-in terrain kinds are always present.
type Registry struct {
	defs   map[Kind]Definition
	byName map[string]Kind
	order  []Kind
	nextID Kind
}

// NewRegistry creates a registry pre-populated with the built-in kinds.
func NewRegistry() *Registry {
	r := &Registry{
		defs:   make(map[Kind]Definition),
		byName: make(map[string]Kind),
	}
	base := []struct {
		kind  Kind
		color string
	}{
		{Water, "#2389da"},
		{Sand, "#e3c088"},
		{Grass, "#5da130"},
		{Forest, "#1e5c28"},
	}
	for _, b := range base {
		r.defs[b.kind] = Definition{Name: b.kind.String(), Color: b.color}
		r.byName[b.kind.String()] = b.kind
		r.order = append(r.order, b.kind)
	}
	r.nextID = Forest + 1
	return r
}

// Register adds a new tile kind with the given display metadata and
// returns its identifier. Registering an existing name updates the
// metadata and returns the existing kind.
func (r *Registry) Register(name, color string) Kind {
	if k, ok := r.byName[name]; ok {
		r.defs[k] = Definition{Name: name, Color: color}
		return k
	}
	k := r.nextID
	r.nextID++
	r.defs[k] = Definition{Name: name, Color: color}
	r.byName[name] = k
	r.order = append(r.order, k)
	return k
}

// ByName looks up a kind by its registered name.
func (r *Registry) ByName(name string) (Kind, error) {
	k, ok := r.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return k, nil
}

// Definition returns the metadata for a registered kind.
func (r *Registry) Definition(k Kind) (Definition, error) {
	def, ok := r.defs[k]
	if !ok {
		return Definition{}, fmt.Errorf("%w: id %d", ErrNotFound, int(k))
	}
	return def, nil
}

// Name returns the display name for a kind, or "unknown" if unregistered.
func (r *Registry) Name(k Kind) string {
	if def, ok := r.defs[k]; ok {
		return def.Name
	}
	return "unknown"
}

// Kinds returns all registered kinds in registration order. The returned
// slice is a copy and safe for callers to modify.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, len(r.order))
	copy(out, r.order)
	return out
}

// Count returns the number of registered kinds.
func (r *Registry) Count() int {
	return len(r.order)
}
