// internal/words/words.go
//
// Word list management for the rule engine.
//
// Responsibilities:
//   - Supply root words from a newline-delimited source (file or embedded).
//   - Pick a uniformly random root word (PickRoot).
//   - Build the static dictionary used for the recognized-word check.
//
// Loading behavior (Load):
//   1. If Options.StartFile is set, roots come from that file,
//      otherwise from the embedded assets/start.txt.
//   2. If Options.DictionaryFile is set, recognized words come from that file,
//      otherwise from the embedded assets/dictionary.txt.
//   3. Roots are added to the dictionary so every root is a real word.
//
// An empty or unreadable root list is a configuration error (ErrNoRootWords);
// there is no fallback root word.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordscramble/assets"
)

// ErrNoRootWords reports that no root word could be established.
var ErrNoRootWords = errors.New("words: no root words available")

// Source supplies candidate root words, one per element.
type Source interface {
	Load() ([]string, error)
}

// FileSource reads a newline-delimited word file.
type FileSource struct {
	Path string
}

// Load reads the file at s.Path.
func (s FileSource) Load() ([]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// EmbeddedSource serves the root list compiled into the binary.
type EmbeddedSource struct{}

// Load returns the embedded start words.
func (EmbeddedSource) Load() ([]string, error) { return assets.StartWords() }

// StaticSource is a fixed in-memory list.
type StaticSource []string

// Load returns s.
func (s StaticSource) Load() ([]string, error) { return s, nil }

// PickRoot loads src and returns one non-empty entry, chosen uniformly with
// crypto/rand. Any load failure or an empty list wraps ErrNoRootWords.
func PickRoot(src Source) (string, error) {
	if src == nil {
		return "", ErrNoRootWords
	}
	list, err := src.Load()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoRootWords, err)
	}
	candidates := nonEmpty(list)
	if len(candidates) == 0 {
		return "", ErrNoRootWords
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(candidates))))
	if err != nil {
		return "", fmt.Errorf("pick root: %w", err)
	}
	return candidates[nBig.Int64()], nil
}

// nonEmpty returns the trimmed, lowercased, non-blank entries of list.
func nonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, w := range list {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Options selects where word lists come from.
type Options struct {
	StartFile      string // newline-delimited root words; empty = embedded
	DictionaryFile string // newline-delimited recognized words; empty = embedded
	Language       string // dictionary language tag, e.g. "en"
}

// Lists bundles the loaded root words and dictionary.
type Lists struct {
	Roots    StaticSource
	Dict     *ListDictionary
	Language string
}

// Load reads both word lists once. Roots are validated eagerly so a missing
// or empty list fails at startup rather than at the first round.
func Load(opts Options) (*Lists, error) {
	lang := opts.Language
	if lang == "" {
		lang = "en"
	}

	var rootSrc Source = EmbeddedSource{}
	if opts.StartFile != "" {
		rootSrc = FileSource{Path: opts.StartFile}
	}
	rawRoots, err := rootSrc.Load()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoRootWords, err)
	}
	roots := nonEmpty(rawRoots)
	if len(roots) == 0 {
		return nil, ErrNoRootWords
	}

	var dictWords []string
	if opts.DictionaryFile != "" {
		dictWords, err = FileSource{Path: opts.DictionaryFile}.Load()
	} else {
		dictWords, err = assets.DictionaryWords()
	}
	if err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}

	dict := NewListDictionary()
	dict.Add(lang, dictWords...)
	dict.Add(lang, roots...)

	return &Lists{Roots: StaticSource(roots), Dict: dict, Language: lang}, nil
}

// PickRoot returns a random root from the loaded list.
func (l *Lists) PickRoot() (string, error) { return PickRoot(l.Roots) }

// Stats returns counts of loaded words: (roots, dictionary).
func (l *Lists) Stats() (rootCount int, dictCount int) {
	return len(l.Roots), l.Dict.Len(l.Language)
}
