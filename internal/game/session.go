// internal/game/session.go
//
// Round lifecycle for one player.
//
//   NotStarted ──Start──▶ InProgress ──Submit (accepted or rejected)──▶ InProgress
//                              ▲                                          │
//                              └────────────── Start (restart) ───────────┘
//
// There is no finished state. Submissions on one Session are serialized by
// its mutex, so results come back in submission order.

package game

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordscramble/internal/words"
)

// Status is the coarse lifecycle state of a Session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
)

// ErrNotStarted is returned when submitting to a session with no round.
var ErrNotStarted = errors.New("round not started")

// ErrBlankRoot is returned when a round is started on an empty root word.
var ErrBlankRoot = errors.New("root word is blank")

// Round modes recorded on a Session.
const (
	ModeFree  = "free"
	ModeDaily = "daily"
)

// Session owns the current Round for one player.
// Mode and Owner are set by the caller before the session is shared.
type Session struct {
	ID        string
	StartedAt time.Time
	Mode      string
	Owner     string

	mu     sync.Mutex
	engine *Engine
	lang   string
	status Status
	round  Round
}

// NewSession creates a session in the NotStarted state.
func NewSession(engine *Engine, language string) *Session {
	if language == "" {
		language = DefaultLanguage
	}
	return &Session{
		ID:     randomID(),
		engine: engine,
		lang:   language,
		status: StatusNotStarted,
		Mode:   ModeFree,
	}
}

// Start picks a root from src and replaces the round wholesale.
// On error the session is left as it was.
func (s *Session) Start(src words.Source) error {
	root, err := words.PickRoot(src)
	if err != nil {
		return err
	}
	return s.StartWith(root)
}

// StartWith starts a round on a fixed root word. A root that normalizes to
// "" returns ErrBlankRoot and leaves the session as it was.
func (s *Session) StartWith(root string) error {
	rd := Reset(root, s.lang)
	if rd.Root == "" {
		return ErrBlankRoot
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.round = rd
	s.status = StatusInProgress
	s.StartedAt = time.Now().UTC()
	return nil
}

// Submit validates candidate against the current round.
func (s *Session) Submit(candidate string) (Round, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != StatusInProgress {
		return Round{}, Outcome{}, ErrNotStarted
	}
	next, out := s.engine.Submit(s.round, candidate)
	s.round = next
	return next, out, nil
}

// Snapshot returns the current round and status.
func (s *Session) Snapshot() (Round, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round, s.status
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
