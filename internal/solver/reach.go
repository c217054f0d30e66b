package solver

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/robalobadob/pullblock/internal/grid"
)

// steps are the free player moves: walk left/right, climb straight up or
// diagonally up. Ceilings are not checked.
var steps = [5][2]int32{
	{-1, 0},
	{1, 0},
	{0, -1},
	{-1, -1},
	{1, -1},
}

// ReachableFrom returns every position the player can walk or climb to from
// start without pulling anything, in breadth-first order. start is always
// the first element.
func (s *Solver) ReachableFrom(start grid.Position) []grid.Position {
	visited := mapset.New[grid.Position]()
	visited.Put(start)
	out := []grid.Position{start}

	for i := 0; i < len(out); i++ {
		p := out[i]
		for _, d := range steps {
			n := p.Translate(d[0], d[1])
			if visited.Has(n) || !s.HasFoothold(n) {
				continue
			}
			visited.Put(n)
			out = append(out, n)
		}
	}
	return out
}
