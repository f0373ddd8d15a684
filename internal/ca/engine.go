// Package ca implements the cellular automaton that evolves a resolved
// terrain grid. Each step reads a single input snapshot and writes a
// fresh output grid, so evaluation order never affects the result.
package ca

import (
	"github.com/mossgrove/terrasim/internal/grid"
	"github.com/mossgrove/terrasim/internal/tiles"
)

// Transform maps a cell's current kind and its 8-neighborhood kind
// counts to the kind it becomes next step.
type Transform func(current tiles.Kind, counts map[tiles.Kind]int) tiles.Kind

// Selector decides which cells a rule applies to: either one exact tile
// kind, or every kind via the wildcard.
type Selector struct {
	Kind     tiles.Kind
	Wildcard bool
}

// For returns a selector matching exactly the given kind.
func For(k tiles.Kind) Selector {
	return Selector{Kind: k}
}

// Any returns the wildcard selector.
func Any() Selector {
	return Selector{Wildcard: true}
}

// Matches reports whether the selector applies to the given kind.
func (s Selector) Matches(k tiles.Kind) bool {
	return s.Wildcard || s.Kind == k
}

// Rule pairs a selector with a transform.
type Rule struct {
	Selector  Selector
	Transform Transform
}

// Engine holds an ordered set of transition rules. Exact-kind rules take
// precedence over wildcard rules; within equal specificity the most
// recently registered rule wins. Cells matching no rule keep their kind.
type Engine struct {
	thresholds Thresholds
	rules      []Rule
}

// NewEngine creates an engine with the built-in terrain rules installed.
func NewEngine() *Engine {
	return NewEngineWithThresholds(DefaultThresholds())
}

// NewEngineWithThresholds creates an engine whose built-in rules use the
// given thresholds instead of the defaults.
func NewEngineWithThresholds(t Thresholds) *Engine {
	e := &Engine{thresholds: t}
	e.ResetRules()
	return e
}

// AddRule appends a rule. Later additions take precedence over earlier
// ones of the same specificity, so callers can override built-ins for a
// kind without touching them.
func (e *Engine) AddRule(sel Selector, fn Transform) {
	e.rules = append(e.rules, Rule{Selector: sel, Transform: fn})
}

// ResetRules discards all registered rules and restores the built-in
// defaults for the base terrain kinds.
func (e *Engine) ResetRules() {
	e.rules = defaultRules(e.thresholds)
}

// Step computes the next grid state. The input snapshot is never
// mutated; every cell is evaluated against the same snapshot and the
// result written into a freshly allocated grid.
func (e *Engine) Step(g *grid.Grid) *grid.Grid {
	next := grid.New(g.Width(), g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			current := g.At(x, y)
			fn := e.match(current)
			if fn == nil {
				next.Set(x, y, current)
				continue
			}
			next.Set(x, y, fn(current, g.NeighborCounts(x, y)))
		}
	}
	return next
}

// match finds the transform for a kind: newest exact-kind rule first,
// then newest wildcard rule, nil when nothing matches.
func (e *Engine) match(k tiles.Kind) Transform {
	for i := len(e.rules) - 1; i >= 0; i-- {
		r := e.rules[i]
		if !r.Selector.Wildcard && r.Selector.Kind == k {
			return r.Transform
		}
	}
	for i := len(e.rules) - 1; i >= 0; i-- {
		r := e.rules[i]
		if r.Selector.Wildcard {
			return r.Transform
		}
	}
	return nil
}
