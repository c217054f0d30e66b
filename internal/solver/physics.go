package solver

import (
	"github.com/robalobadob/pullblock/internal/grid"
	"github.com/robalobadob/pullblock/internal/puzzle"
)

// PullLevel reports how far the cell at p protrudes in st: GroundLevel on the
// implicit row under the grid, 0 for holes and anything out of bounds,
// otherwise the covering piece's extension.
func PullLevel(m *puzzle.Model, st *State, p grid.Position) int8 {
	if p.Y == m.Height && p.X >= 0 && p.X < m.Width {
		return GroundLevel
	}
	idx := m.PieceAt(p)
	if idx == puzzle.Hole {
		return 0
	}
	return st.Extensions[idx]
}

// Foothold reports whether the player can stand at p. The bottom parsed row
// always offers footing; elsewhere the cell below must protrude further than
// p itself.
func Foothold(m *puzzle.Model, st *State, p grid.Position) bool {
	if p.Y == m.Height-1 && p.X >= 0 && p.X < m.Width {
		return true
	}
	return PullLevel(m, st, p) < PullLevel(m, st, p.Below())
}

// PieceAt is the piece covering p regardless of extension, or puzzle.Hole.
func (s *Solver) PieceAt(p grid.Position) int32 { return s.model.PieceAt(p) }

// PullLevelAt evaluates PullLevel against the live state.
func (s *Solver) PullLevelAt(p grid.Position) int8 { return PullLevel(s.model, &s.state, p) }

// HasFoothold evaluates Foothold against the live state.
func (s *Solver) HasFoothold(p grid.Position) bool { return Foothold(s.model, &s.state, p) }
