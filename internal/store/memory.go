// internal/store/memory.go
//
// In-memory store of live round sessions.
//
// Characteristics:
//   - Stores *game.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Per-round serialization is the Session's job, not the store's.
//   - State is lost when the process restarts; history lives in SQLite.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/robalobadob/wordscramble/internal/game"
)

// ErrNotFound is returned when no session or row matches.
var ErrNotFound = errors.New("not found")

// Sessions defines the lookup interface for live sessions.
type Sessions interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete drops a session. Missing IDs are not an error.
	Delete(ctx context.Context, id string) error
}

// memory is an in-memory map-based Sessions implementation.
type memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

// NewMemoryStore constructs a new in-memory Sessions store.
func NewMemoryStore() Sessions {
	return &memory{sessions: make(map[string]*game.Session)}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
