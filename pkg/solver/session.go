/*
Package solver maintains the set of vocabulary words consistent with a log
of (word, similarity) observations and proposes informative next guesses.

A Session owns one solver run: the read-only vocabulary, the ordered
constraint log, and the working candidate set derived from it. Adding a
constraint narrows the current candidates in place (filtering is an
intersection, so the incremental AND is sound); editing or removing one
recomputes the candidates from the full vocabulary, because those changes
are not monotonic.

Words reaching a Session are expected to be normalized already; the
interactive shell owns input cleanup.
*/
package solver

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/wordvane/wordvane/pkg/vocab"
)

var (
	// ErrDuplicateConstraint rejects adding a word that already has one.
	ErrDuplicateConstraint = errors.New("constraint already exists")
	// ErrUnknownConstraint rejects editing or removing a word that has none.
	ErrUnknownConstraint = errors.New("no such constraint")
)

// Constraint is one observation: the declared percent similarity between a
// word and the unknown secret.
type Constraint struct {
	Word       string
	Similarity float64
}

// Session is the solver state threaded through every command: vocabulary,
// constraint log, and the candidates still consistent with the log.
type Session struct {
	store      *vocab.Store
	candidates map[string][]float32
	log        []Constraint
	tolerance  float64
	bootstrap  string
	id         string
}

// New starts a session over the full vocabulary. tolerance is the percent-
// scale window used by the candidate filter; bootstrap is the fixed word
// the advisor proposes before any constraint exists.
func New(store *vocab.Store, tolerance float64, bootstrap string) *Session {
	s := &Session{
		store:      store,
		candidates: allCandidates(store),
		tolerance:  tolerance,
		bootstrap:  bootstrap,
		id:         uuid.NewString(),
	}
	log.Debugf("Solver session %s: %d candidates, tolerance %v", s.id, len(s.candidates), tolerance)
	return s
}

// Add appends a constraint and narrows the current candidate set with it.
func (s *Session) Add(word string, similarity float64) error {
	if !s.store.Has(word) {
		return fmt.Errorf("%q: %w", word, vocab.ErrUnknownWord)
	}
	if s.indexOf(word) >= 0 {
		return fmt.Errorf("%q: %w", word, ErrDuplicateConstraint)
	}

	s.log = append(s.log, Constraint{Word: word, Similarity: similarity})
	observed, _ := s.store.Vector(word)
	narrow(s.candidates, observed, similarity, s.tolerance)
	log.Debugf("Session %s: constraint %s=%v added, %d candidates remain",
		s.id, word, similarity, len(s.candidates))
	return nil
}

// Edit replaces the value of an existing constraint, keeping its position,
// and recomputes the candidates from the full vocabulary.
func (s *Session) Edit(word string, similarity float64) error {
	i := s.indexOf(word)
	if i < 0 {
		return fmt.Errorf("%q: %w", word, ErrUnknownConstraint)
	}

	s.log[i].Similarity = similarity
	s.recompute()
	log.Debugf("Session %s: constraint %s=%v edited, %d candidates remain",
		s.id, word, similarity, len(s.candidates))
	return nil
}

// Remove deletes a constraint and recomputes the candidates from the full
// vocabulary.
func (s *Session) Remove(word string) error {
	i := s.indexOf(word)
	if i < 0 {
		return fmt.Errorf("%q: %w", word, ErrUnknownConstraint)
	}

	s.log = append(s.log[:i], s.log[i+1:]...)
	s.recompute()
	log.Debugf("Session %s: constraint on %s removed, %d candidates remain",
		s.id, word, len(s.candidates))
	return nil
}

// Constraints returns the log in insertion order. The slice is a copy.
func (s *Session) Constraints() []Constraint {
	out := make([]Constraint, len(s.log))
	copy(out, s.log)
	return out
}

// Candidates returns the remaining candidate words in vocabulary file
// order, the one deterministic view of the working set.
func (s *Session) Candidates() []string {
	out := make([]string, 0, len(s.candidates))
	for _, w := range s.store.Words() {
		if _, ok := s.candidates[w]; ok {
			out = append(out, w)
		}
	}
	return out
}

// CandidateCount returns the size of the working candidate set.
func (s *Session) CandidateCount() int {
	return len(s.candidates)
}

// CandidateVector returns the embedding of a remaining candidate.
func (s *Session) CandidateVector(word string) ([]float32, bool) {
	vec, ok := s.candidates[word]
	return vec, ok
}

// indexOf returns the log position of a word's constraint, -1 if none. The
// log stays small enough that a scan beats keeping a parallel index.
func (s *Session) indexOf(word string) int {
	for i, c := range s.log {
		if c.Word == word {
			return i
		}
	}
	return -1
}

// recompute rebuilds the candidate set from the original vocabulary
// against the whole log.
func (s *Session) recompute() {
	s.candidates = filterAll(s.store, s.log, s.tolerance)
}
