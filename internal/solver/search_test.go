package solver

import (
	"context"
	"testing"

	"github.com/robalobadob/pullblock/internal/grid"
)

// replayReachesGoal applies moves to a fresh solver and reports whether the
// goal is reachable afterwards.
func replayReachesGoal(t *testing.T, s *Solver, moves []Move) bool {
	t.Helper()
	r := New(s.Model())
	for _, m := range moves {
		r.Apply(m)
	}
	for _, p := range r.ReachableFrom(r.Player()) {
		if p == r.Model().Goal {
			return true
		}
	}
	return false
}

func TestSolveTwoRows(t *testing.T) {
	s := newSolver(t, twoRows)
	initial := s.State()

	res := s.Solve(context.Background())
	if res.Status != Solved {
		t.Fatalf("status = %v, want solved", res.Status)
	}
	a, b := s.PieceAt(grid.At(0, 0)), s.PieceAt(grid.At(0, 1))
	want := []Move{
		{Actor: grid.At(1, 1), Piece: b, Extend: true, Score: -2},
		{Actor: grid.At(1, 1), Piece: b, Extend: true, Score: -2},
		{Actor: grid.At(1, 0), Piece: a, Extend: true, Score: -1},
	}
	if len(res.Moves) != len(want) {
		t.Fatalf("moves = %v, want %v", res.Moves, want)
	}
	for i := range want {
		if res.Moves[i] != want[i] {
			t.Fatalf("move %d = %v (score %v), want %v", i, res.Moves[i], res.Moves[i].Score, want[i])
		}
	}
	if res.Attempts != 3 || s.Attempts() != 3 {
		t.Fatalf("attempts = %d, want 3", res.Attempts)
	}
	if !s.State().Equal(initial) {
		t.Fatalf("state after solve = %v, want %v", s.State(), initial)
	}
	if !replayReachesGoal(t, s, res.Moves) {
		t.Fatal("replayed solution does not reach the goal")
	}
}

func TestSolveThreeByThree(t *testing.T) {
	s := newSolver(t, threeGrid)
	initial := s.State()
	res := s.Solve(context.Background())
	if res.Status != Solved {
		t.Fatalf("status = %v after %d attempts", res.Status, res.Attempts)
	}
	if len(res.Moves) == 0 || res.Attempts <= 0 {
		t.Fatalf("moves = %v attempts = %d", res.Moves, res.Attempts)
	}
	if len(res.Moves) > DefaultMaxDepth {
		t.Fatalf("solution longer than depth bound: %d", len(res.Moves))
	}
	if !replayReachesGoal(t, s, res.Moves) {
		t.Fatalf("replay of %v does not reach the goal", res.Moves)
	}
	if !s.State().Equal(initial) {
		t.Fatalf("state not restored: %v", s.State())
	}
}

func TestSolveSealedGoal(t *testing.T) {
	s := newSolver(t, sealed)
	initial := s.State()
	res := s.Solve(context.Background())
	if res.Status != Exhausted {
		t.Fatalf("status = %v, want exhausted", res.Status)
	}
	if res.Moves != nil {
		t.Fatalf("moves = %v on failure", res.Moves)
	}
	// One pull from the wall, then two ways to pull again at each of the
	// next two levels until the piece is fully out.
	if res.Attempts != 7 {
		t.Fatalf("attempts = %d, want 7", res.Attempts)
	}
	if !s.State().Equal(initial) {
		t.Fatalf("state not restored: %v", s.State())
	}
}

func TestSolveNoPieces(t *testing.T) {
	s := newSolver(t, ".*\n..\n..")
	res := s.Solve(context.Background())
	if res.Status != Exhausted || res.Attempts != 0 {
		t.Fatalf("res = %+v", res)
	}
}

func TestSolveDepthBound(t *testing.T) {
	if res := newSolver(t, twoRows, WithMaxDepth(3)).Solve(context.Background()); res.Status != Exhausted {
		t.Fatalf("depth 3: status = %v, want exhausted", res.Status)
	}
	res := newSolver(t, twoRows, WithMaxDepth(4)).Solve(context.Background())
	if res.Status != Solved || len(res.Moves) != 3 {
		t.Fatalf("depth 4: %v %v", res.Status, res.Moves)
	}
	if s := newSolver(t, twoRows, WithMaxDepth(0)); s.MaxDepth() != DefaultMaxDepth {
		t.Fatalf("non-positive depth must be ignored, got %d", s.MaxDepth())
	}
}

func TestSolveFromSolvedState(t *testing.T) {
	s := newSolver(t, twoRows)
	first := s.Solve(context.Background())
	for _, m := range first.Moves {
		s.Apply(m)
	}
	before := s.State()
	res := s.Solve(context.Background())
	if res.Status != Solved || len(res.Moves) != 0 || res.Moves == nil {
		t.Fatalf("res = %+v, want solved with an empty path", res)
	}
	if res.Attempts != 0 {
		t.Fatalf("attempts = %d", res.Attempts)
	}
	if !s.State().Equal(before) {
		t.Fatal("state changed")
	}
	s.Reset()
	if !s.State().Equal(NewState(s.Model())) {
		t.Fatal("Reset did not restore the initial state")
	}
}

// countdown reports cancellation after a fixed number of Err calls.
type countdown struct {
	context.Context
	left int
}

func (c *countdown) Err() error {
	if c.left <= 0 {
		return context.Canceled
	}
	c.left--
	return nil
}

func TestSolveCanceled(t *testing.T) {
	s := newSolver(t, threeGrid)
	initial := s.State()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := s.Solve(ctx)
	if res.Status != Canceled || res.Attempts != 0 || res.Moves != nil {
		t.Fatalf("pre-canceled: %+v", res)
	}

	for _, budget := range []int{1, 2, 3, 4} {
		res = s.Solve(&countdown{Context: context.Background(), left: budget})
		if res.Status != Canceled {
			t.Fatalf("budget %d: status = %v", budget, res.Status)
		}
		if res.Attempts != budget {
			t.Fatalf("budget %d: attempts = %d", budget, res.Attempts)
		}
		if !s.State().Equal(initial) {
			t.Fatalf("budget %d: state not unwound: %v", budget, s.State())
		}
	}
}

func TestPruningMatchesBaseline(t *testing.T) {
	cases := []struct {
		text  string
		depth int
	}{
		{twoRows, DefaultMaxDepth},
		{threeGrid, DefaultMaxDepth},
		{sealed, DefaultMaxDepth},
		{"AB.*\nCBD\nEEE", 5},
	}
	for _, c := range cases {
		base := newSolver(t, c.text, WithMaxDepth(c.depth)).Solve(context.Background())
		pruned := newSolver(t, c.text, WithMaxDepth(c.depth), WithPruning(true)).Solve(context.Background())
		if base.Status != pruned.Status {
			t.Fatalf("%q: status %v vs %v", c.text, base.Status, pruned.Status)
		}
		if pruned.Attempts > base.Attempts {
			t.Fatalf("%q: pruning explored more (%d > %d)", c.text, pruned.Attempts, base.Attempts)
		}
		if len(base.Moves) != len(pruned.Moves) {
			t.Fatalf("%q: paths differ: %v vs %v", c.text, base.Moves, pruned.Moves)
		}
		for i := range base.Moves {
			if base.Moves[i] != pruned.Moves[i] {
				t.Fatalf("%q: paths differ at %d", c.text, i)
			}
		}
	}
}
