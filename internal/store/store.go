// internal/store/store.go
//
// Archive of solve runs.
// Implementations:
//   - memory.go: map-backed, lost on restart (dev/tests, or DB_PATH unset).
//   - sqlite.go: durable, schema applied from embedded migrations.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/robalobadob/pullblock/internal/solver"
)

// ErrNotFound is returned for unknown record ids.
var ErrNotFound = errors.New("store: not found")

// DefaultListLimit caps List when the caller passes limit <= 0.
const DefaultListLimit = 20

// Record is one archived solve.
type Record struct {
	ID        string        `json:"id"`
	PuzzleID  string        `json:"puzzleId,omitempty"` // library id, if the puzzle came from the library
	Puzzle    string        `json:"puzzle"`
	MaxDepth  int           `json:"maxDepth"`
	Prune     bool          `json:"prune"`
	Status    string        `json:"status"`
	Moves     []solver.Move `json:"moves"`
	Attempts  int           `json:"attempts"`
	Duration  time.Duration `json:"durationNs"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Store defines the persistence interface for solve records.
type Store interface {
	// Save inserts or replaces r, keyed by r.ID.
	Save(ctx context.Context, r *Record) error

	// Get retrieves a record by id or returns ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Delete removes a record or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
