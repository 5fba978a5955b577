package solver

import (
	"github.com/wordvane/wordvane/pkg/vocab"
)

// consistent reports whether a candidate vector could belong to the secret
// given one observation. The declared value was read off a display rounded
// to two decimals, so the true similarity lies inside a half-open window
// around it; tol must be half the display rounding step or consistent
// words get spuriously excluded.
func consistent(candidate, observed []float32, target, tol float64) bool {
	p := vocab.Percent(vocab.Dot(candidate, observed))
	return p >= target-tol && p < target+tol
}

// narrow deletes candidates inconsistent with a single new observation.
// Sound only for additions: filtering is an intersection, so applying one
// more constraint to an already-narrowed set equals recomputing from
// scratch.
func narrow(candidates map[string][]float32, observed []float32, target, tol float64) {
	for word, vec := range candidates {
		if !consistent(vec, observed, target, tol) {
			delete(candidates, word)
		}
	}
}

// filterAll derives the candidate set from the full vocabulary against
// every constraint in the log.
func filterAll(store *vocab.Store, constraints []Constraint, tol float64) map[string][]float32 {
	observed := make([][]float32, len(constraints))
	for i, c := range constraints {
		observed[i], _ = store.Vector(c.Word)
	}

	out := make(map[string][]float32, store.Len())
	for _, w := range store.Words() {
		vec, _ := store.Vector(w)
		keep := true
		for i, c := range constraints {
			if !consistent(vec, observed[i], c.Similarity, tol) {
				keep = false
				break
			}
		}
		if keep {
			out[w] = vec
		}
	}
	return out
}

// allCandidates copies the vocabulary into a fresh working set.
func allCandidates(store *vocab.Store) map[string][]float32 {
	out := make(map[string][]float32, store.Len())
	for _, w := range store.Words() {
		vec, _ := store.Vector(w)
		out[w] = vec
	}
	return out
}
