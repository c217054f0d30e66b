// internal/puzzle/types.go
//
// Core type definitions for the puzzle model.
// Defines:
//   - Piece: one maximal 4-connected group of same-letter cells.
//   - Model: the immutable puzzle built once from text and shared by reference
//     with the solver.

package puzzle

import "github.com/robalobadob/pullblock/internal/grid"

// Hole is the lookup value of a cell that no piece occupies.
const Hole int32 = -1

// Piece is a pullable block. Its index in Model.Pieces is its identity.
type Piece struct {
	Letter byte            // source letter, 'A'..'Z'
	Cells  []grid.Position // row-major discovery order
}

// Model is the parsed puzzle. It is never mutated after Parse returns.
type Model struct {
	Width  int32
	Height int32
	Pieces []Piece
	Goal   grid.Position // may be one row above row 0

	cellToPiece [][]int32 // [Height][Width], Hole where empty
}

// InBounds reports whether p lies inside the parsed rows.
func (m *Model) InBounds(p grid.Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// PieceAt returns the index of the piece covering p, or Hole when p is empty
// or out of bounds.
func (m *Model) PieceAt(p grid.Position) int32 {
	if !m.InBounds(p) {
		return Hole
	}
	return m.cellToPiece[p.Y][p.X]
}

// NumPieces is len(m.Pieces) as an int32.
func (m *Model) NumPieces() int32 { return int32(len(m.Pieces)) }
