package words

import (
	"sort"
	"strings"
)

// ListDictionary is a static, per-language set of recognized words.
// Populate it with Add before sharing; lookups are read-only afterwards.
type ListDictionary struct {
	sets   map[string]map[string]struct{}
	sorted map[string][]string
}

// NewListDictionary returns an empty dictionary.
func NewListDictionary() *ListDictionary {
	return &ListDictionary{
		sets:   make(map[string]map[string]struct{}),
		sorted: make(map[string][]string),
	}
}

// Add registers words for language. Words are lowercased and trimmed.
func (d *ListDictionary) Add(language string, words ...string) {
	language = normLang(language)
	set, ok := d.sets[language]
	if !ok {
		set = make(map[string]struct{}, len(words))
		d.sets[language] = set
	}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	list := make([]string, 0, len(set))
	for w := range set {
		list = append(list, w)
	}
	sort.Strings(list)
	d.sorted[language] = list
}

// IsKnownWord reports whether word is in the list for language.
func (d *ListDictionary) IsKnownWord(word, language string) bool {
	_, ok := d.sets[normLang(language)][strings.ToLower(word)]
	return ok
}

// Len returns the number of words known for language.
func (d *ListDictionary) Len(language string) int {
	return len(d.sets[normLang(language)])
}

// normLang maps "en-US" and "EN" to "en".
func normLang(language string) string {
	language = strings.ToLower(strings.TrimSpace(language))
	if i := strings.IndexAny(language, "-_"); i > 0 {
		language = language[:i]
	}
	return language
}
