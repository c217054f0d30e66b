package solver

import (
	"github.com/robalobadob/pullblock/internal/grid"
	"github.com/robalobadob/pullblock/internal/puzzle"
)

// MovesAt lists the pulls available to a player standing at p.
//
// Standing in front of a piece that sits at least two levels behind the cell
// below, the player pulls that piece. Otherwise, on a step at least two
// levels tall, the player may pull a side neighbour that is partly but not
// fully extended. Only extensions are generated.
func (s *Solver) MovesAt(p grid.Position) []Move {
	return s.appendMovesAt(nil, p)
}

func (s *Solver) appendMovesAt(out []Move, p grid.Position) []Move {
	level := s.PullLevelAt(p)
	under := s.PullLevelAt(p.Below())

	if idx := s.PieceAt(p); idx != puzzle.Hole && level < under-1 {
		return append(out, Move{Actor: p, Piece: idx, Extend: true})
	}
	if under-level < 2 {
		return out
	}
	for _, side := range [2]grid.Position{p.Translate(1, 0), p.Translate(-1, 0)} {
		idx := s.PieceAt(side)
		if idx == puzzle.Hole {
			continue
		}
		if e := s.state.Extensions[idx]; e > 0 && e < MaxExtension {
			out = append(out, Move{Actor: p, Piece: idx, Extend: true})
		}
	}
	return out
}

// Score rates the position a move leaves the player in: the negated
// Manhattan distance to the goal. Higher is better.
func (s *Solver) Score(m Move) float32 {
	return -float32(s.model.Goal.Manhattan(m.Actor))
}
