// internal/grid/position.go
//
// Integer grid coordinates shared by the puzzle model and the solver.
// x grows to the right, y grows downwards; row 0 is the top parsed row.

package grid

import "fmt"

// Position is an immutable cell coordinate. Compare with ==.
type Position struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// At is shorthand for Position{X: x, Y: y}.
func At(x, y int32) Position { return Position{X: x, Y: y} }

// Translate returns p shifted by (dx, dy).
func (p Position) Translate(dx, dy int32) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Below is the cell directly underneath p.
func (p Position) Below() Position { return p.Translate(0, 1) }

// Manhattan returns |p.X-q.X| + |p.Y-q.Y|.
func (p Position) Manhattan(q Position) int32 {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func (p Position) String() string { return fmt.Sprintf("(%d, %d)", p.X, p.Y) }

func abs(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
