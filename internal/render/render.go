// internal/render/render.go
//
// Text projection of a puzzle and its live state.
// Responsibilities:
//   - Render: one line of pull levels per row (from the row above the grid
//     down to the bottom row), each followed by an overlay line marking the
//     player '@' and the goal '*'.
//   - Replay: step a solution forward on a private state, one frame per move.
//   - WriteReplay: the console transcript printed by the CLI.
//
// Rendering never mutates the state it is given.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/pullblock/internal/grid"
	"github.com/robalobadob/pullblock/internal/puzzle"
	"github.com/robalobadob/pullblock/internal/solver"
)

// Frame is one snapshot of a replayed solution. Step 0 is the initial
// configuration; Move is nil for it.
type Frame struct {
	Step int          `json:"step"`
	Move *solver.Move `json:"move,omitempty"`
	Text string       `json:"text"`
}

// Render draws st on top of m.
func Render(m *puzzle.Model, st solver.State) string {
	var b strings.Builder
	for y := int32(-1); y < m.Height; y++ {
		for x := int32(0); x < m.Width; x++ {
			fmt.Fprintf(&b, "%d ", solver.PullLevel(m, &st, grid.At(x, y)))
		}
		b.WriteByte('\n')
		for x := int32(0); x < m.Width; x++ {
			switch p := grid.At(x, y); {
			case p == st.Player:
				b.WriteByte('@')
			case p == m.Goal:
				b.WriteByte('*')
			default:
				b.WriteByte(' ')
			}
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Replay renders the initial state of m followed by the state after each
// move. It returns len(moves)+1 frames.
func Replay(m *puzzle.Model, moves []solver.Move) []Frame {
	st := solver.NewState(m)
	frames := make([]Frame, 0, len(moves)+1)
	frames = append(frames, Frame{Step: 0, Text: Render(m, st)})
	for i := range moves {
		mv := moves[i]
		st.Apply(mv)
		frames = append(frames, Frame{Step: i + 1, Move: &mv, Text: Render(m, st)})
	}
	return frames
}

// WriteReplay prints the outcome of a solve. A solved puzzle is printed frame
// by frame; anything else gets a single summary line.
func WriteReplay(w io.Writer, m *puzzle.Model, res solver.Result) error {
	if res.Status != solver.Solved {
		msg := "Could not find a solution."
		if res.Status == solver.Canceled {
			msg = "Search canceled."
		}
		_, err := fmt.Fprintf(w, "#### %s Solver checked %d moves. ####\n", msg, res.Attempts)
		return err
	}
	for _, f := range Replay(m, res.Moves) {
		title := "Initial Configuration"
		if f.Step > 0 {
			title = fmt.Sprintf("Step %d", f.Step)
		}
		if _, err := fmt.Fprintf(w, "======= %s =======\n%s\n", title, f.Text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "======= Solved in %d steps. Solver checked %d moves. =======\n",
		len(res.Moves), res.Attempts)
	return err
}
