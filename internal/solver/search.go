package solver

import (
	"context"
	"sort"
	"time"
)

// Solve runs a depth-first search from the current state and returns the
// first sequence of pulls after which the goal is reachable. Candidates are
// tried best-score first, so the result is not necessarily the shortest.
//
// ctx is polled once per search node; cancellation yields Status Canceled.
// On every outcome the live state is left exactly as it was on entry.
func (s *Solver) Solve(ctx context.Context) Result {
	start := time.Now()
	s.attempts = 0
	if s.prune {
		s.visited = make(map[StateKey]int)
	} else {
		s.visited = nil
	}

	moves, status := s.search(ctx, 0)
	if status != Solved {
		moves = nil
	}
	return Result{
		Status:   status,
		Moves:    moves,
		Attempts: s.attempts,
		Duration: time.Since(start),
	}
}

func (s *Solver) search(ctx context.Context, depth int) ([]Move, Status) {
	if ctx.Err() != nil {
		return nil, Canceled
	}
	if depth >= s.maxDepth {
		return nil, Exhausted
	}
	if s.visited != nil {
		key := s.state.Key()
		if seen, ok := s.visited[key]; ok && seen <= depth {
			return nil, Exhausted
		}
		s.visited[key] = depth
	}

	reach := s.ReachableFrom(s.state.Player)
	for _, p := range reach {
		if p == s.model.Goal {
			return []Move{}, Solved
		}
	}

	if depth >= len(s.scratch) {
		s.scratch = append(s.scratch, nil)
	}
	candidates := s.scratch[depth][:0]
	for _, p := range reach {
		candidates = s.appendMovesAt(candidates, p)
	}
	for i := range candidates {
		candidates[i].Score = s.Score(candidates[i])
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	s.scratch[depth] = candidates

	for _, m := range candidates {
		rest, status := s.descend(ctx, depth, m)
		switch status {
		case Solved:
			return append([]Move{m}, rest...), Solved
		case Canceled:
			return nil, Canceled
		}
	}
	return nil, Exhausted
}

// descend applies m, explores one level deeper and reverts m on the way out.
func (s *Solver) descend(ctx context.Context, depth int, m Move) ([]Move, Status) {
	s.attempts++
	undo := s.Apply(m)
	defer s.Revert(undo)
	return s.search(ctx, depth+1)
}
