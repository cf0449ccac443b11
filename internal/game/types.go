// internal/game/types.go
//
// Core type definitions for the Word Scramble rule engine.
// Defines:
//   - Round: value snapshot of a round (root word, accepted words, score).
//   - Reason/Rejection: why a candidate was refused, with display text.
//   - Outcome: result of a single submission.
//   - Dictionary: the external "is this a real word" capability.

package game

// Reason identifies which validation check refused a candidate.
type Reason string

const (
	ReasonTooShort       Reason = "too_short"
	ReasonAlreadyUsed    Reason = "already_used"
	ReasonNotPossible    Reason = "not_possible"
	ReasonNotRecognized  Reason = "not_recognized"
	ReasonStartsLikeRoot Reason = "starts_like_root"
)

// Rejection is the (title, message) pair surfaced to the player.
type Rejection struct {
	Reason  Reason `json:"reason"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Error lets a Rejection travel through error-typed plumbing when needed.
func (r *Rejection) Error() string { return r.Title + ": " + r.Message }

// Round is the state of a single round.
// Used is newest-first. A Round is treated as a value: engine operations
// return a new Round and never modify the slice of the one passed in.
type Round struct {
	Root     string   `json:"root"`     // Root word (always lowercase).
	Used     []string `json:"used"`     // Accepted words, newest first.
	Score    int      `json:"score"`    // Accumulated score.
	Language string   `json:"language"` // Dictionary language, e.g. "en".
}

// Outcome reports what happened to a submission.
// Exactly one of Ignored, Accepted or Rejection != nil holds.
type Outcome struct {
	Word      string     // Normalized candidate.
	Ignored   bool       // Empty input; nothing happened.
	Accepted  bool       // Word was added to the round.
	Points    int        // Points awarded when Accepted.
	Rejection *Rejection // Set when a check failed.
}

// Dictionary answers whether a word is a real word in a language.
// Implementations must be deterministic for a (word, language) pair.
type Dictionary interface {
	IsKnownWord(word, language string) bool
}

// DictionaryFunc adapts a plain function to Dictionary.
type DictionaryFunc func(word, language string) bool

// IsKnownWord calls f(word, language).
func (f DictionaryFunc) IsKnownWord(word, language string) bool { return f(word, language) }
