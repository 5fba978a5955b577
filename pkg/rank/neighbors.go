package rank

import (
	"fmt"
	"sort"

	"github.com/wordvane/wordvane/pkg/vocab"
)

// Neighbors ranks every OTHER vocabulary word by similarity to word and
// returns up to n of them: the closest end by default, the farthest end
// with farthest set. Farthest results come least-similar-first. Each
// entry's Rank is its position in the full descending order over the other
// words, so rank 0 is the single closest neighbor.
func Neighbors(store *vocab.Store, word string, n int, farthest bool) ([]Entry, error) {
	ref, ok := store.Vector(word)
	if !ok {
		return nil, fmt.Errorf("%q: %w", word, vocab.ErrUnknownWord)
	}
	if n <= 0 {
		return nil, nil
	}

	type scored struct {
		word string
		dot  float32
	}
	others := make([]scored, 0, store.Len()-1)
	for _, w := range store.Words() {
		if w == word {
			continue
		}
		vec, _ := store.Vector(w)
		others = append(others, scored{word: w, dot: vocab.Dot(vec, ref)})
	}
	sort.SliceStable(others, func(i, j int) bool { return others[i].dot > others[j].dot })

	if n > len(others) {
		n = len(others)
	}

	out := make([]Entry, n)
	if farthest {
		last := len(others) - 1
		for i := 0; i < n; i++ {
			s := others[last-i]
			out[i] = Entry{Word: s.word, Score: vocab.RoundPercent(s.dot), Rank: last - i}
		}
	} else {
		for i := 0; i < n; i++ {
			out[i] = Entry{Word: others[i].word, Score: vocab.RoundPercent(others[i].dot), Rank: i}
		}
	}
	return out, nil
}
