// internal/game/engine.go
//
// Rule engine for a single Word Scramble round.
// Responsibilities:
//   - Create fresh rounds (Reset).
//   - Normalize and validate candidates in a fixed order.
//   - Score accepted words: rune length + number of words accepted so far.
//
// Validation order (first failure wins, later checks never run):
//   1. empty        → ignored, no rejection
//   2. < 3 letters  → too_short
//   3. reused       → already_used
//   4. not spellable from the root's letters → not_possible
//   5. dictionary says no → not_recognized
//   6. equals the root's prefix of the same length → starts_like_root
//
// Check 6 compares only against the root's leading letters. It rejects the
// root itself and any word that copies the root's start, nothing broader.

package game

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinWordLength is the shortest word the engine accepts.
const MinWordLength = 3

// DefaultLanguage is used when a Round carries no language.
const DefaultLanguage = "en"

// Engine validates submissions against a Round.
type Engine struct {
	Dict Dictionary
}

// NewEngine returns an Engine backed by dict.
func NewEngine(dict Dictionary) *Engine {
	return &Engine{Dict: dict}
}

// Reset starts a new round on root. Nothing from a previous round survives,
// even when root is the same word.
func Reset(root, language string) Round {
	if language == "" {
		language = DefaultLanguage
	}
	return Round{
		Root:     strings.ToLower(strings.TrimSpace(root)),
		Used:     []string{},
		Language: language,
	}
}

// Accept prepends word and adds its points. The caller must have validated
// word already; Accept performs no checks.
func (r Round) Accept(word string) Round {
	used := make([]string, 0, len(r.Used)+1)
	used = append(used, word)
	used = append(used, r.Used...)
	r.Used = used
	r.Score += utf8.RuneCountInString(word) + len(used)
	return r
}

// Submit runs candidate through the checks and returns the resulting round.
// On rejection or ignore the returned Round is r unchanged.
func (e *Engine) Submit(r Round, candidate string) (Round, Outcome) {
	word := Normalize(candidate)
	out := Outcome{Word: word}

	if word == "" {
		out.Ignored = true
		return r, out
	}
	if rej := e.Validate(r, word); rej != nil {
		out.Rejection = rej
		return r, out
	}

	next := r.Accept(word)
	out.Accepted = true
	out.Points = next.Score - r.Score
	return next, out
}

// Validate runs checks 2–6 on an already normalized, non-empty word.
// It returns nil when the word is acceptable.
func (e *Engine) Validate(r Round, word string) *Rejection {
	switch {
	case !LongEnough(word):
		return rejectTooShort()
	case !IsOriginal(r.Used, word):
		return rejectAlreadyUsed()
	case !IsPossible(r.Root, word):
		return rejectNotPossible(r.Root)
	case !e.isReal(r, word):
		return rejectNotRecognized()
	case StartsLikeRoot(r.Root, word):
		return rejectStartsLikeRoot()
	}
	return nil
}

func (e *Engine) isReal(r Round, word string) bool {
	if e.Dict == nil {
		return false
	}
	lang := r.Language
	if lang == "" {
		lang = DefaultLanguage
	}
	return e.Dict.IsKnownWord(word, lang)
}

// Normalize lowercases s and trims surrounding whitespace and newlines.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// LongEnough reports whether word has at least MinWordLength letters.
func LongEnough(word string) bool {
	return utf8.RuneCountInString(word) >= MinWordLength
}

// IsOriginal reports whether word is not yet in used (case-insensitive).
func IsOriginal(used []string, word string) bool {
	for _, u := range used {
		if strings.EqualFold(u, word) {
			return false
		}
	}
	return true
}

// IsPossible reports whether word can be spelled from root's letters,
// using each letter of root at most once.
func IsPossible(root, word string) bool {
	counts := make(map[rune]int, len(root))
	for _, c := range root {
		counts[c]++
	}
	for _, c := range word {
		if counts[c] == 0 {
			return false
		}
		counts[c]--
	}
	return true
}

// StartsLikeRoot reports whether word equals root's prefix of the same
// length. When word is longer than root the whole root is compared.
func StartsLikeRoot(root, word string) bool {
	rr := []rune(root)
	n := utf8.RuneCountInString(word)
	if n > len(rr) {
		n = len(rr)
	}
	return string(rr[:n]) == word
}

func rejectTooShort() *Rejection {
	return &Rejection{Reason: ReasonTooShort, Title: "You can not enter less than 3 letters", Message: "You can not do that"}
}

func rejectAlreadyUsed() *Rejection {
	return &Rejection{Reason: ReasonAlreadyUsed, Title: "Word used already", Message: "Be more original"}
}

func rejectNotPossible(root string) *Rejection {
	return &Rejection{
		Reason:  ReasonNotPossible,
		Title:   "Word not possible",
		Message: fmt.Sprintf("You can't spell that word from '%s'!", root),
	}
}

func rejectNotRecognized() *Rejection {
	return &Rejection{Reason: ReasonNotRecognized, Title: "Word not recognized", Message: "You can't just make them up, you know!"}
}

func rejectStartsLikeRoot() *Rejection {
	return &Rejection{Reason: ReasonStartsLikeRoot, Title: "You can not start like that", Message: "You can not do that"}
}
