package words

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Suggest returns the known word closest to word by edit distance, among
// those for which keep returns true. Ties resolve alphabetically.
// Words farther than maxSuggestDistance are never suggested.
func (d *ListDictionary) Suggest(word, language string, keep func(string) bool) (string, bool) {
	n := utf8.RuneCountInString(word)
	limit := maxSuggestDistance(n)
	best, bestDist := "", limit+1
	for _, cand := range d.sorted[normLang(language)] {
		if cand == word {
			continue
		}
		// Length difference is a lower bound on the distance.
		if diff := utf8.RuneCountInString(cand) - n; diff > limit || -diff > limit {
			continue
		}
		dist := levenshtein.ComputeDistance(word, cand)
		if dist >= bestDist {
			continue
		}
		if keep != nil && !keep(cand) {
			continue
		}
		best, bestDist = cand, dist
	}
	return best, best != ""
}

func maxSuggestDistance(n int) int {
	if n <= 4 {
		return 1
	}
	return 2
}
