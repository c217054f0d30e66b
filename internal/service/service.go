// internal/service/service.go
//
// Use-case layer shared by the HTTP server and the CLI.
// Responsibilities:
//   - Resolve a request to a puzzle (library id or raw text) and parse it.
//   - Run the solver with the requested depth/pruning under the caller's ctx.
//   - Memoize finished results in an LRU keyed by canonical puzzle text and
//     search options.
//   - Archive every run in the Store (best effort).
//   - Pick and solve the puzzle of the day.

package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pullblock/internal/daily"
	"github.com/robalobadob/pullblock/internal/library"
	"github.com/robalobadob/pullblock/internal/puzzle"
	"github.com/robalobadob/pullblock/internal/render"
	"github.com/robalobadob/pullblock/internal/solver"
	"github.com/robalobadob/pullblock/internal/store"
)

// MaxDepthLimit bounds the depth a caller may request.
const MaxDepthLimit = 40

var (
	ErrNoPuzzle      = errors.New("no puzzle given")
	ErrUnknownPuzzle = errors.New("unknown puzzle id")
	ErrDepth         = fmt.Errorf("max depth must be between 1 and %d", MaxDepthLimit)
	ErrNoLibrary     = errors.New("no puzzle library loaded")
)

// Config holds the tunables read from the environment by main.
type Config struct {
	MaxDepth  int    // default depth when a request leaves it unset
	CacheSize int    // LRU entries; <= 0 disables caching
	DailySalt string // HMAC key for the puzzle of the day
}

// Request asks for one solve. Exactly one of PuzzleID and Puzzle is used;
// PuzzleID wins when both are set.
type Request struct {
	PuzzleID string `json:"id,omitempty"`
	Puzzle   string `json:"puzzle,omitempty"`
	MaxDepth int    `json:"maxDepth,omitempty"`
	Prune    bool   `json:"prune,omitempty"`
	Frames   bool   `json:"frames,omitempty"`
}

// Outcome is the result of a Solve call.
type Outcome struct {
	Record *store.Record  `json:"record"`
	Cached bool           `json:"cached"`
	Frames []render.Frame `json:"frames,omitempty"`
	Model  *puzzle.Model  `json:"-"`
}

// cached is what the LRU keeps per key.
type cached struct {
	status   solver.Status
	moves    []solver.Move
	attempts int
	duration time.Duration
}

// Service wires the library, the solver, the cache and the archive.
type Service struct {
	lib   *library.Library
	store store.Store
	cache *lru.Cache
	cfg   Config
	now   func() time.Time
}

// New builds a Service. lib may be nil, in which case id lookups fail.
func New(lib *library.Library, st store.Store, cfg Config) (*Service, error) {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = solver.DefaultMaxDepth
	}
	if cfg.MaxDepth > MaxDepthLimit {
		return nil, ErrDepth
	}
	s := &Service{lib: lib, store: st, cfg: cfg, now: time.Now}
	if cfg.CacheSize > 0 {
		c, err := lru.New(cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("solve cache: %w", err)
		}
		s.cache = c
	}
	return s, nil
}

// Library exposes the puzzle collection (may be nil).
func (s *Service) Library() *library.Library { return s.lib }

// Puzzle looks up a library puzzle.
func (s *Service) Puzzle(id string) (library.Puzzle, error) {
	if s.lib == nil {
		return library.Puzzle{}, ErrNoLibrary
	}
	p, ok := s.lib.ByID(id)
	if !ok {
		return library.Puzzle{}, ErrUnknownPuzzle
	}
	return p, nil
}

func (s *Service) resolve(req Request) (*puzzle.Model, string, error) {
	switch {
	case req.PuzzleID != "":
		p, err := s.Puzzle(req.PuzzleID)
		if err != nil {
			return nil, "", err
		}
		return p.Model, p.ID, nil
	case req.Puzzle != "":
		m, err := puzzle.Parse(req.Puzzle)
		return m, "", err
	default:
		return nil, "", ErrNoPuzzle
	}
}

func cacheKey(m *puzzle.Model, depth int, prune bool) string {
	return fmt.Sprintf("%d|%t|%s", depth, prune, m.String())
}

// Solve resolves, solves and archives one request. Parse failures are
// returned as *puzzle.ParseError. A canceled search is reported through the
// record status, not as an error, and is never cached.
func (s *Service) Solve(ctx context.Context, req Request) (*Outcome, error) {
	depth := req.MaxDepth
	if depth == 0 {
		depth = s.cfg.MaxDepth
	}
	if depth < 1 || depth > MaxDepthLimit {
		return nil, ErrDepth
	}
	m, puzzleID, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	key := cacheKey(m, depth, req.Prune)
	var res cached
	hit := false
	if s.cache != nil {
		if v, ok := s.cache.Get(key); ok {
			res, hit = v.(cached), true
		}
	}
	if !hit {
		r := solver.New(m, solver.WithMaxDepth(depth), solver.WithPruning(req.Prune)).Solve(ctx)
		res = cached{status: r.Status, moves: r.Moves, attempts: r.Attempts, duration: r.Duration}
		if s.cache != nil && r.Status != solver.Canceled {
			s.cache.Add(key, res)
		}
	}

	rec := &store.Record{
		ID:        newID(),
		PuzzleID:  puzzleID,
		Puzzle:    m.String(),
		MaxDepth:  depth,
		Prune:     req.Prune,
		Status:    res.status.String(),
		Moves:     append([]solver.Move(nil), res.moves...),
		Attempts:  res.attempts,
		Duration:  res.duration,
		CreatedAt: s.now().UTC(),
	}
	log.Debug().
		Str("id", rec.ID).
		Str("puzzle", puzzleID).
		Int("depth", depth).
		Bool("prune", req.Prune).
		Str("status", rec.Status).
		Int("attempts", rec.Attempts).
		Dur("took", rec.Duration).
		Bool("cached", hit).
		Msg("solve")

	if s.store != nil {
		if err := s.store.Save(ctx, rec); err != nil {
			log.Warn().Err(err).Str("id", rec.ID).Msg("archive solve")
		}
	}

	out := &Outcome{Record: rec, Cached: hit, Model: m}
	if req.Frames && res.status == solver.Solved {
		out.Frames = render.Replay(m, res.moves)
	}
	return out, nil
}

// DailyID returns the date key and the library id of the puzzle of the day.
func (s *Service) DailyID(t time.Time) (date, id string, err error) {
	if s.lib == nil || s.lib.Len() == 0 {
		return "", "", ErrNoLibrary
	}
	idx := daily.PuzzleIndex(t, s.cfg.DailySalt, s.lib.Len())
	return daily.DateKey(t), s.lib.At(idx).ID, nil
}

// Daily solves today's puzzle.
func (s *Service) Daily(ctx context.Context, frames bool) (string, *Outcome, error) {
	date, id, err := s.DailyID(s.now())
	if err != nil {
		return "", nil, err
	}
	out, err := s.Solve(ctx, Request{PuzzleID: id, Frames: frames})
	return date, out, err
}

// Solution returns an archived record.
func (s *Service) Solution(ctx context.Context, id string) (*store.Record, error) {
	if s.store == nil {
		return nil, store.ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// Solutions lists archived records, newest first.
func (s *Service) Solutions(ctx context.Context, limit int) ([]store.Record, error) {
	if s.store == nil {
		return []store.Record{}, nil
	}
	return s.store.List(ctx, limit)
}

// DeleteSolution removes an archived record.
func (s *Service) DeleteSolution(ctx context.Context, id string) error {
	if s.store == nil {
		return store.ErrNotFound
	}
	return s.store.Delete(ctx, id)
}

// newID creates a 22-char URL-safe, crypto-random identifier (no padding).
func newID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
