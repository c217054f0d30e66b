// internal/solver/types.go
//
// Core type definitions for the search engine.
// Defines:
//   - Move:   one candidate action (where the player stands, which piece moves).
//   - State:  the only mutable data (player position + per-piece extension).
//   - Undo:   token returned by Apply, consumed by Revert.
//   - Status/Result: outcome of a solve.

package solver

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/robalobadob/pullblock/internal/grid"
	"github.com/robalobadob/pullblock/internal/puzzle"
)

const (
	// MaxExtension is the furthest a piece can be pulled out.
	MaxExtension int8 = 3
	// GroundLevel is reported for the implicit row below the grid. It is never
	// stored in State.Extensions.
	GroundLevel int8 = 4
	// DefaultMaxDepth bounds the number of pulls in a solution.
	DefaultMaxDepth = 15
)

// Move describes pulling (or, when Extend is false, pushing back) a piece
// while the player stands at Actor. The player ends up at Actor.
type Move struct {
	Actor  grid.Position `json:"actor"`
	Piece  int32         `json:"piece"`
	Extend bool          `json:"extend"`
	Score  float32       `json:"score"`
}

func (m Move) String() string {
	return fmt.Sprintf("player at %v, piece %d, pull? %t", m.Actor, m.Piece, m.Extend)
}

// State is the live puzzle situation.
type State struct {
	Player     grid.Position `json:"player"`
	Extensions []int8        `json:"extensions"`
}

// NewState returns the initial state for m: nothing pulled, player at the
// bottom-left cell.
func NewState(m *puzzle.Model) State {
	return State{
		Player:     grid.At(0, m.Height-1),
		Extensions: make([]int8, len(m.Pieces)),
	}
}

// Clone returns a deep copy.
func (st State) Clone() State {
	return State{Player: st.Player, Extensions: append([]int8(nil), st.Extensions...)}
}

// Equal compares player position and every extension level.
func (st State) Equal(o State) bool {
	if st.Player != o.Player || len(st.Extensions) != len(o.Extensions) {
		return false
	}
	for i := range st.Extensions {
		if st.Extensions[i] != o.Extensions[i] {
			return false
		}
	}
	return true
}

// StateKey is a canonical, comparable encoding of a State. Two states have the
// same key exactly when Equal reports true, so it can be used as a map key.
type StateKey string

// Key encodes the player position followed by the extension vector.
func (st State) Key() StateKey {
	b := make([]byte, 8+len(st.Extensions))
	binary.LittleEndian.PutUint32(b[0:4], uint32(st.Player.X))
	binary.LittleEndian.PutUint32(b[4:8], uint32(st.Player.Y))
	for i, e := range st.Extensions {
		b[8+i] = byte(e)
	}
	return StateKey(b)
}

// Undo restores the state that existed before an Apply.
type Undo struct {
	player grid.Position
	piece  int32
	delta  int8
}

// Apply mutates st according to m and returns the token that reverts it.
// An out-of-range piece index is a programming error and panics.
func (st *State) Apply(m Move) Undo {
	if m.Piece < 0 || int(m.Piece) >= len(st.Extensions) {
		panic(fmt.Sprintf("solver: piece index %d out of range [0,%d)", m.Piece, len(st.Extensions)))
	}
	u := Undo{player: st.Player, piece: m.Piece, delta: 1}
	if !m.Extend {
		u.delta = -1
	}
	st.Player = m.Actor
	st.Extensions[m.Piece] += u.delta
	return u
}

// Revert undoes the Apply that produced u. Tokens must be reverted in
// reverse order of application.
func (st *State) Revert(u Undo) {
	st.Extensions[u.piece] -= u.delta
	st.Player = u.player
}

// Status is the outcome kind of a solve.
type Status int

const (
	// Exhausted means no solution exists within the depth bound. It is an
	// expected outcome, not an error.
	Exhausted Status = iota
	Solved
	Canceled
)

func (s Status) String() string {
	switch s {
	case Solved:
		return "solved"
	case Canceled:
		return "canceled"
	default:
		return "exhausted"
	}
}

// MarshalText lets Status serialize as its name.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Result is returned by Solver.Solve. Moves is only set when Status == Solved.
type Result struct {
	Status   Status
	Moves    []Move
	Attempts int // candidate moves applied during the search
	Duration time.Duration
}
