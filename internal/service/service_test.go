package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/robalobadob/pullblock/internal/library"
	"github.com/robalobadob/pullblock/internal/puzzle"
	"github.com/robalobadob/pullblock/internal/solver"
	"github.com/robalobadob/pullblock/internal/store"
)

const collection = `# two-rows
AA*
BB

# tower
.A*
.C.
BBB

# walled
..*
...
...
A..
`

func newService(t *testing.T, cfg Config) (*Service, store.Store) {
	t.Helper()
	lib, err := library.Load(strings.NewReader(collection))
	if err != nil {
		t.Fatal(err)
	}
	st := store.NewMemoryStore()
	s, err := New(lib, st, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s, st
}

func TestSolveByID(t *testing.T) {
	s, st := newService(t, Config{CacheSize: 8})
	out, err := s.Solve(context.Background(), Request{PuzzleID: "two-rows", Frames: true})
	if err != nil {
		t.Fatal(err)
	}
	rec := out.Record
	if rec.Status != "solved" || len(rec.Moves) != 3 || rec.Attempts != 3 {
		t.Fatalf("record = %+v", rec)
	}
	if rec.PuzzleID != "two-rows" || rec.MaxDepth != solver.DefaultMaxDepth || rec.Puzzle != "AA*\nBB" {
		t.Fatalf("record metadata = %+v", rec)
	}
	if out.Cached {
		t.Fatal("first solve reported as cached")
	}
	if len(out.Frames) != 4 {
		t.Fatalf("frames = %d", len(out.Frames))
	}

	archived, err := st.Get(context.Background(), rec.ID)
	if err != nil || archived.Status != "solved" {
		t.Fatalf("archive = %+v, %v", archived, err)
	}
}

func TestSolveCache(t *testing.T) {
	s, st := newService(t, Config{CacheSize: 8})
	ctx := context.Background()
	first, err := s.Solve(ctx, Request{Puzzle: ".A*\n.C.\nBBB"})
	if err != nil {
		t.Fatal(err)
	}
	// Same grid through the library id hits the same entry.
	second, err := s.Solve(ctx, Request{PuzzleID: "tower"})
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second solve missed the cache")
	}
	if second.Record.ID == first.Record.ID || second.Record.Attempts != first.Record.Attempts {
		t.Fatalf("records = %+v / %+v", first.Record, second.Record)
	}
	if len(second.Record.Moves) != len(first.Record.Moves) {
		t.Fatal("cached moves differ")
	}

	// Options are part of the key.
	third, _ := s.Solve(ctx, Request{PuzzleID: "tower", Prune: true})
	if third.Cached {
		t.Fatal("pruned solve served from unpruned entry")
	}

	list, _ := st.List(ctx, 10)
	if len(list) != 3 {
		t.Fatalf("archived %d runs, want 3", len(list))
	}
}

func TestSolveWithoutCache(t *testing.T) {
	s, _ := newService(t, Config{})
	ctx := context.Background()
	s.Solve(ctx, Request{PuzzleID: "two-rows"})
	out, err := s.Solve(ctx, Request{PuzzleID: "two-rows"})
	if err != nil || out.Cached {
		t.Fatalf("out = %+v, err = %v", out, err)
	}
}

func TestSolveCanceledNotCached(t *testing.T) {
	s, _ := newService(t, Config{CacheSize: 8})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := s.Solve(ctx, Request{PuzzleID: "tower"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Record.Status != "canceled" || out.Frames != nil {
		t.Fatalf("record = %+v", out.Record)
	}
	out, _ = s.Solve(context.Background(), Request{PuzzleID: "tower"})
	if out.Cached || out.Record.Status != "solved" {
		t.Fatalf("after cancel: cached=%t status=%s", out.Cached, out.Record.Status)
	}
}

func TestSolveExhausted(t *testing.T) {
	s, _ := newService(t, Config{})
	out, err := s.Solve(context.Background(), Request{PuzzleID: "walled", Frames: true})
	if err != nil {
		t.Fatal(err)
	}
	if out.Record.Status != "exhausted" || len(out.Record.Moves) != 0 || out.Frames != nil {
		t.Fatalf("record = %+v", out.Record)
	}
}

func TestSolveErrors(t *testing.T) {
	s, _ := newService(t, Config{})
	ctx := context.Background()
	cases := []struct {
		req  Request
		want error
	}{
		{Request{}, ErrNoPuzzle},
		{Request{PuzzleID: "nope"}, ErrUnknownPuzzle},
		{Request{PuzzleID: "tower", MaxDepth: MaxDepthLimit + 1}, ErrDepth},
		{Request{PuzzleID: "tower", MaxDepth: -1}, ErrDepth},
		{Request{Puzzle: "AB\nCD"}, puzzle.ErrNoGoal},
	}
	for _, c := range cases {
		if _, err := s.Solve(ctx, c.req); !errors.Is(err, c.want) {
			t.Errorf("%+v: err = %v, want %v", c.req, err, c.want)
		}
	}
	var pe *puzzle.ParseError
	if _, err := s.Solve(ctx, Request{Puzzle: "A?*"}); !errors.As(err, &pe) {
		t.Fatalf("err = %v, want *ParseError", err)
	}

	if _, err := New(nil, nil, Config{MaxDepth: MaxDepthLimit + 1}); !errors.Is(err, ErrDepth) {
		t.Fatalf("New: %v", err)
	}
}

func TestDaily(t *testing.T) {
	s, _ := newService(t, Config{DailySalt: "salt"})
	day := time.Date(2024, 7, 4, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	date, id, err := s.DailyID(day)
	if err != nil {
		t.Fatal(err)
	}
	if date != "2024-07-04" {
		t.Fatalf("date = %s", date)
	}
	if _, err := s.Puzzle(id); err != nil {
		t.Fatalf("daily id %q not in library", id)
	}
	if _, again, _ := s.DailyID(day.Add(5 * time.Hour)); again != id {
		t.Fatalf("daily changed within a day: %s vs %s", id, again)
	}

	gotDate, out, err := s.Daily(context.Background(), false)
	if err != nil {
		t.Fatal(err)
	}
	if gotDate != date || out.Record.PuzzleID != id {
		t.Fatalf("Daily = %s %+v", gotDate, out.Record)
	}

	empty, _ := New(nil, nil, Config{})
	if _, _, err := empty.DailyID(day); !errors.Is(err, ErrNoLibrary) {
		t.Fatalf("err = %v", err)
	}
}

func TestSolutions(t *testing.T) {
	s, _ := newService(t, Config{})
	ctx := context.Background()
	out, _ := s.Solve(ctx, Request{PuzzleID: "two-rows"})

	rec, err := s.Solution(ctx, out.Record.ID)
	if err != nil || rec.ID != out.Record.ID {
		t.Fatalf("Solution = %+v, %v", rec, err)
	}
	list, _ := s.Solutions(ctx, 0)
	if len(list) != 1 {
		t.Fatalf("Solutions = %d", len(list))
	}
	if err := s.DeleteSolution(ctx, rec.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Solution(ctx, rec.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("after delete: %v", err)
	}
}
