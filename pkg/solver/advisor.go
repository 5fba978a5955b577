package solver

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/wordvane/wordvane/pkg/vocab"
)

// Proposal is the advisor's suggested next guess. Buckets counts the
// distinct similarity values the word produces across the remaining
// candidates; a zero-value Proposal (empty Word) means no candidates
// remain to choose from.
type Proposal struct {
	Word    string
	Buckets int
}

// FindBest proposes the candidate whose similarities against the other
// candidates fall into the most distinct buckets: the more finely a word
// splits the remaining set, the more a reply about it narrows the search.
//
// With an empty log every word is still a candidate and all profiles look
// alike, so the scan is skipped in favor of the configured bootstrap word.
// Candidates are visited in vocabulary file order and ties keep the first
// word seen, so the proposal is deterministic.
func (s *Session) FindBest() Proposal {
	if len(s.log) == 0 {
		return Proposal{Word: s.bootstrap}
	}

	var best Proposal
	for _, w := range s.store.Words() {
		vec, ok := s.candidates[w]
		if !ok {
			continue
		}
		buckets := s.countBuckets(vec)
		if buckets > best.Buckets {
			best = Proposal{Word: w, Buckets: buckets}
		}
	}

	log.Debugf("Session %s: proposing %q splitting %d candidates into %d buckets",
		s.id, best.Word, len(s.candidates), best.Buckets)
	return best
}

// countBuckets counts distinct similarity values between one vector and
// every candidate, rounded at the same precision the display uses, so two
// candidates land in one bucket exactly when a reply cannot tell them
// apart.
func (s *Session) countBuckets(vec []float32) int {
	seen := make(map[int]struct{}, len(s.candidates))
	for _, other := range s.candidates {
		b := int(math.Round(float64(vocab.Dot(vec, other)) * 10000))
		seen[b] = struct{}{}
	}
	return len(seen)
}
