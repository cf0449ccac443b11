// Package daily derives the shared root word of the day and keeps the
// per-date leaderboard.
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

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % n.
func WordIndex(date time.Time, salt string, n int) int {
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

// Root returns the day's root word and its index in roots.
// ok is false when roots is empty.
func Root(date time.Time, salt string, roots []string) (word string, idx int, ok bool) {
	if len(roots) == 0 {
		return "", 0, false
	}
	idx = WordIndex(date, salt, len(roots))
	return roots[idx], idx, true
}
