// internal/daily/daily.go
//
// Puzzle-of-the-day selection.
// The index is HMAC-SHA256(salt, YYYY-MM-DD) reduced modulo the collection
// size, so every server sharing a salt agrees on the day's puzzle without
// coordination, and the order is not guessable without the salt.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// PuzzleIndex returns the deterministic index in [0, n) for date.
// It returns 0 when n <= 0.
func PuzzleIndex(date time.Time, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	v := binary.BigEndian.Uint64(sum[:8])
	return int(v % uint64(n))
}
