// internal/solver/solver.go
//
// Search engine for a single puzzle.
// Responsibilities:
//   - Own the one live State shared by the whole search.
//   - Answer physics queries (pull level, foothold) against that state.
//   - Apply/revert moves with undo tokens.
//   - Run the depth-bounded backtracking search (search.go).
//
// Notes:
//   - A Solver is single-threaded. Use one per goroutine.
//   - The Model is shared by reference and never mutated.
package solver

import (
	"github.com/robalobadob/pullblock/internal/grid"
	"github.com/robalobadob/pullblock/internal/puzzle"
)

// Solver explores pulls on one puzzle.
type Solver struct {
	model *puzzle.Model
	state State

	maxDepth int
	prune    bool

	attempts int
	scratch  [][]Move          // candidate buffers indexed by depth
	visited  map[StateKey]int // shallowest depth a state was expanded at
}

// Option configures a Solver.
type Option func(*Solver)

// WithMaxDepth sets the number of pulls the search may chain. Values < 1 are
// ignored.
func WithMaxDepth(depth int) Option {
	return func(s *Solver) {
		if depth > 0 {
			s.maxDepth = depth
		}
	}
}

// WithPruning skips states that were already expanded at the same or a
// shallower depth.
func WithPruning(on bool) Option {
	return func(s *Solver) { s.prune = on }
}

// New creates a solver in the initial state of m.
func New(m *puzzle.Model, opts ...Option) *Solver {
	s := &Solver{
		model:    m,
		state:    NewState(m),
		maxDepth: DefaultMaxDepth,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Model returns the puzzle being solved.
func (s *Solver) Model() *puzzle.Model { return s.model }

// State returns a copy of the live state.
func (s *Solver) State() State { return s.state.Clone() }

// Player is the current player position.
func (s *Solver) Player() grid.Position { return s.state.Player }

// Extension returns the extension level of piece idx.
func (s *Solver) Extension(idx int32) int8 { return s.state.Extensions[idx] }

// MaxDepth is the configured depth bound.
func (s *Solver) MaxDepth() int { return s.maxDepth }

// Attempts is the number of moves applied by the last Solve.
func (s *Solver) Attempts() int { return s.attempts }

// Reset returns to the initial state.
func (s *Solver) Reset() { s.state = NewState(s.model) }

// Apply mutates the live state. See State.Apply.
func (s *Solver) Apply(m Move) Undo { return s.state.Apply(m) }

// Revert consumes a token returned by Apply.
func (s *Solver) Revert(u Undo) { s.state.Revert(u) }
