// Package wfc implements a wave function collapse solver over directional
// adjacency constraints. Cells start in superposition of every tile kind
// and are collapsed lowest-entropy-first, with breadth-first constraint
// propagation after each collapse.
package wfc

import (
	"errors"
	"math/rand"

	"github.com/mossgrove/terrasim/internal/grid"
	"github.com/mossgrove/terrasim/internal/logger"
	"github.com/mossgrove/terrasim/internal/tiles"
)

var (
	ErrInvalidSize   = errors.New("wfc: invalid grid size")
	ErrEmptyUniverse = errors.New("wfc: empty tile universe")
)

// Cell represents a single cell in the WFC grid during solving
type Cell struct {
	X, Y      int
	Possible  map[tiles.Kind]bool // Which tile kinds are still candidates
	Collapsed bool                // Whether this cell has been resolved
}

// Entropy returns the cell's candidate count minus one. Zero means the
// cell is down to a single kind.
func (c *Cell) Entropy() int {
	count := 0
	for _, possible := range c.Possible {
		if possible {
			count++
		}
	}
	return count - 1
}

// Solver runs the wave function collapse algorithm over a rule table.
// Each solver owns its rules and random source; concurrent solvers do
// not share state.
type Solver struct {
	Width, Height int
	Grid          [][]*Cell
	Rules         *Rules

	universe []tiles.Kind
	rng      *rand.Rand
	repairs  int
}

// NewSolver creates a solver for the given dimensions, universe, and
// rule table. A nil rules table gets the built-in defaults.
func NewSolver(width, height int, seed int64, universe []tiles.Kind, rules *Rules) *Solver {
	if rules == nil {
		rules = NewRules(universe)
	}
	return &Solver{
		Width:    width,
		Height:   height,
		Rules:    rules,
		universe: append([]tiles.Kind(nil), universe...),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Repairs returns how many contradictions were patched over during the
// last Generate call.
func (s *Solver) Repairs() int {
	return s.repairs
}

// Generate resolves every cell to a single tile kind and returns the
// result. Contradictions encountered during propagation are repaired by
// forcing a random candidate rather than backtracking, so the output may
// locally violate the rule table; it is always fully resolved.
func (s *Solver) Generate() (*grid.Grid, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, ErrInvalidSize
	}
	if len(s.universe) == 0 {
		return nil, ErrEmptyUniverse
	}

	s.initializeGrid()
	s.repairs = 0

	for {
		cell := s.lowestEntropyCell()
		if cell == nil {
			break
		}
		s.collapse(cell)
		s.propagateFrom(cell.X, cell.Y)
	}

	if s.repairs > 0 {
		logger.Debug("generation finished with forced repairs", "repairs", s.repairs)
	}

	return s.extract(), nil
}

// initializeGrid puts every cell into full superposition
func (s *Solver) initializeGrid() {
	s.Grid = make([][]*Cell, s.Height)
	for y := 0; y < s.Height; y++ {
		s.Grid[y] = make([]*Cell, s.Width)
		for x := 0; x < s.Width; x++ {
			possible := make(map[tiles.Kind]bool, len(s.universe))
			for _, k := range s.universe {
				possible[k] = true
			}
			s.Grid[y][x] = &Cell{X: x, Y: y, Possible: possible}
		}
	}
}

// lowestEntropyCell scans uncollapsed cells in row-major order and
// returns the first one with minimum entropy, or nil when every cell is
// collapsed. Already-collapsed cells never participate, so the solver
// cannot stall re-selecting resolved cells.
func (s *Solver) lowestEntropyCell() *Cell {
	var best *Cell
	bestEntropy := 0
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			cell := s.Grid[y][x]
			if cell.Collapsed {
				continue
			}
			e := cell.Entropy()
			if best == nil || e < bestEntropy {
				best = cell
				bestEntropy = e
			}
		}
	}
	return best
}

// candidates returns the cell's remaining candidates in universe order,
// keeping random draws deterministic for a fixed seed.
func (s *Solver) candidates(cell *Cell) []tiles.Kind {
	out := make([]tiles.Kind, 0, len(cell.Possible))
	for _, k := range s.universe {
		if cell.Possible[k] {
			out = append(out, k)
		}
	}
	return out
}

// collapse fixes the cell to one of its candidates, drawn uniformly
func (s *Solver) collapse(cell *Cell) {
	cands := s.candidates(cell)
	chosen := cands[s.rng.Intn(len(cands))]
	cell.Possible = map[tiles.Kind]bool{chosen: true}
	cell.Collapsed = true
}

// propagateFrom narrows neighbor candidate sets breadth-first starting at
// the given cell. A neighbor is re-enqueued only when its set strictly
// shrank, which bounds the total amount of propagation work.
func (s *Solver) propagateFrom(x, y int) {
	type point struct{ x, y int }
	queue := []point{{x, y}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cell := s.Grid[cur.y][cur.x]
		from := s.candidates(cell)

		for _, dir := range tiles.AllDirections() {
			dx, dy := dir.Offset()
			nx, ny := cur.x+dx, cur.y+dy
			if nx < 0 || nx >= s.Width || ny < 0 || ny >= s.Height {
				continue
			}
			neighbor := s.Grid[ny][nx]

			next := make(map[tiles.Kind]bool)
			for _, c := range s.candidates(neighbor) {
				for _, t := range from {
					if s.Rules.Allows(t, dir, c) {
						next[c] = true
						break
					}
				}
			}

			if len(next) == len(neighbor.Possible) {
				continue
			}

			if len(next) == 0 {
				if s.repair(neighbor) {
					queue = append(queue, point{nx, ny})
				}
				continue
			}

			neighbor.Possible = next
			if len(next) == 1 {
				neighbor.Collapsed = true
			}
			queue = append(queue, point{nx, ny})
		}
	}
}

// repair resolves a contradiction by forcing the cell to a random member
// of its prior candidate set. The chosen tile may violate the rule table
// at this location; that is the accepted price for never backtracking.
// A cell that was already collapsed keeps its value and the conflict is
// only recorded; returning false in that case stops the cell from being
// re-enqueued, which keeps propagation finite.
func (s *Solver) repair(cell *Cell) bool {
	s.repairs++
	if cell.Collapsed {
		logger.Debug("adjacency conflict at collapsed cell", "x", cell.X, "y", cell.Y)
		return false
	}
	cands := s.candidates(cell)
	chosen := cands[s.rng.Intn(len(cands))]
	cell.Possible = map[tiles.Kind]bool{chosen: true}
	cell.Collapsed = true
	logger.Debug("forced repair during propagation", "x", cell.X, "y", cell.Y, "kind", chosen.String())
	return true
}

// extract converts the collapsed wave into a resolved grid
func (s *Solver) extract() *grid.Grid {
	g := grid.New(s.Width, s.Height)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			cands := s.candidates(s.Grid[y][x])
			g.Set(x, y, cands[0])
		}
	}
	return g
}
