// Package grid provides the resolved terrain grid shared by the solver,
// the evolution engine, and renderers.
package grid

import (
	"github.com/mossgrove/terrasim/internal/tiles"
)

// Grid stores a fixed-size 2D field of tile kinds in row-major order.
// Dimensions are set at construction and never change.
type Grid struct {
	w, h  int
	cells []tiles.Kind
}

// New allocates a grid with the given dimensions. Non-positive
// dimensions are clamped to 1.
func New(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{w: w, h: h, cells: make([]tiles.Kind, w*h)}
}

// Width returns the grid width.
func (g *Grid) Width() int { return g.w }

// Height returns the grid height.
func (g *Grid) Height() int { return g.h }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.w + x }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// At returns the tile kind at (x, y).
func (g *Grid) At(x, y int) tiles.Kind { return g.cells[g.Index(x, y)] }

// Set writes the tile kind at (x, y).
func (g *Grid) Set(x, y int, k tiles.Kind) { g.cells[g.Index(x, y)] = k }

// Cells exposes the backing slice in row-major order.
func (g *Grid) Cells() []tiles.Kind { return g.cells }

// Fill sets every cell to the given kind.
func (g *Grid) Fill(k tiles.Kind) {
	for i := range g.cells {
		g.cells[i] = k
	}
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{w: g.w, h: g.h, cells: make([]tiles.Kind, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Equal reports whether two grids have identical dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.w != other.w || g.h != other.h {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}

// NeighborCounts tallies tile kinds over the 8-connected neighborhood of
// (x, y). Cells outside the grid are skipped, so corners see 3 neighbors
// and non-corner edges see 5.
func (g *Grid) NeighborCounts(x, y int) map[tiles.Kind]int {
	counts := make(map[tiles.Kind]int)
	for dy := -1; dy <= 1; dy++ {
		ny := y + dy
		if ny < 0 || ny >= g.h {
			continue
		}
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := x + dx
			if nx < 0 || nx >= g.w {
				continue
			}
			counts[g.cells[ny*g.w+nx]]++
		}
	}
	return counts
}
