// internal/puzzle/parse.go
//
// Builds a Model from the textual grid.
// Input alphabet:
//   - 'A'..'Z'  a piece cell of that color
//   - '.'       a hole
//   - '*'       goal overlay; the goal sits one row above the line it is drawn
//               on, in the column of the cell just before it
//   - '\n'      ends a row ('\r' is ignored)
//
// Trailing rows without cells are dropped. Ragged rows are padded with holes
// up to the longest row.

package puzzle

import (
	"strings"

	"github.com/robalobadob/pullblock/internal/grid"
)

const holeColor int8 = -1

// Parse builds a Model from text. Malformed text yields a *ParseError.
func Parse(text string) (*Model, error) {
	rows := [][]int8{{}}
	var goal grid.Position
	goalSeen := false
	line, col := 1, 0

	for _, c := range text {
		col++
		cur := len(rows) - 1
		switch {
		case c >= 'A' && c <= 'Z':
			rows[cur] = append(rows[cur], int8(c-'A'))
		case c == '.':
			rows[cur] = append(rows[cur], holeColor)
		case c == '*':
			if goalSeen {
				return nil, &ParseError{Line: line, Column: col, Err: ErrDuplicateGoal}
			}
			if len(rows[cur]) == 0 {
				return nil, &ParseError{Line: line, Column: col, Err: ErrGoalPlacement}
			}
			goal = grid.At(int32(len(rows[cur])-1), int32(cur)-1)
			goalSeen = true
		case c == '\n':
			rows = append(rows, []int8{})
			line, col = line+1, 0
		case c == '\r':
		default:
			return nil, &ParseError{Line: line, Column: col, Char: c, Err: ErrBadChar}
		}
	}

	for len(rows) > 0 && len(rows[len(rows)-1]) == 0 {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, &ParseError{Err: ErrEmpty}
	}
	if !goalSeen {
		return nil, &ParseError{Err: ErrNoGoal}
	}

	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	if width == 0 {
		return nil, &ParseError{Err: ErrNoWidth}
	}

	m := &Model{
		Width:  int32(width),
		Height: int32(len(rows)),
		Goal:   goal,
	}
	m.Pieces = extractPieces(rows, width)
	m.cellToPiece = buildLookup(m.Pieces, width, len(rows))
	return m, nil
}

// MustParse is Parse for fixtures known to be valid; it panics otherwise.
func MustParse(text string) *Model {
	m, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return m
}

// extractPieces flood-fills each unvisited colored cell into one Piece,
// scanning row-major. Visited cells are overwritten with holeColor in a padded
// scratch copy so they are never reconsidered.
func extractPieces(rows [][]int8, width int) []Piece {
	scratch := make([][]int8, len(rows))
	for y, r := range rows {
		scratch[y] = make([]int8, width)
		for x := range scratch[y] {
			if x < len(r) {
				scratch[y][x] = r[x]
			} else {
				scratch[y][x] = holeColor
			}
		}
	}

	var pieces []Piece
	for y := range scratch {
		for x := range scratch[y] {
			color := scratch[y][x]
			if color == holeColor {
				continue
			}
			piece := Piece{Letter: byte('A' + color)}
			scratch[y][x] = holeColor
			stack := []grid.Position{grid.At(int32(x), int32(y))}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				piece.Cells = append(piece.Cells, p)
				for _, n := range [4]grid.Position{
					p.Translate(-1, 0), p.Translate(1, 0), p.Translate(0, -1), p.Translate(0, 1),
				} {
					if n.X < 0 || n.Y < 0 || int(n.Y) >= len(scratch) || int(n.X) >= width {
						continue
					}
					if scratch[n.Y][n.X] == color {
						scratch[n.Y][n.X] = holeColor
						stack = append(stack, n)
					}
				}
			}
			pieces = append(pieces, piece)
		}
	}
	return pieces
}

func buildLookup(pieces []Piece, width, height int) [][]int32 {
	cells := make([][]int32, height)
	for y := range cells {
		cells[y] = make([]int32, width)
		for x := range cells[y] {
			cells[y][x] = Hole
		}
	}
	for i, p := range pieces {
		for _, c := range p.Cells {
			cells[c.Y][c.X] = int32(i)
		}
	}
	return cells
}

// String serializes the model back into puzzle text. Parse(m.String())
// reproduces an equivalent model.
func (m *Model) String() string {
	var b strings.Builder
	for y := int32(0); y < m.Height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := int32(0); x < m.Width; x++ {
			if idx := m.cellToPiece[y][x]; idx == Hole {
				b.WriteByte('.')
			} else {
				b.WriteByte(m.Pieces[idx].Letter)
			}
			if m.Goal == grid.At(x, y-1) {
				b.WriteByte('*')
			}
		}
	}
	return b.String()
}
