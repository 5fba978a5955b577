/*
Package game runs one round of the guessing game: a secret word is drawn
from the vocabulary and every guess is scored by semantic similarity to it,
with the full rank table as the authoritative order.

A Session is a pure state machine over validated words; the interactive
shell owns prompting, meta commands and rendering, and feeds the session
already-normalized input. Nothing is persisted: a session dies with the
process.
*/
package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/wordvane/wordvane/pkg/rank"
	"github.com/wordvane/wordvane/pkg/vocab"
)

var (
	// ErrNoGuesses rejects a hint before any valid guess exists.
	ErrNoGuesses = errors.New("no guesses yet")
	// ErrNoHint means the only rank left to reveal is the secret itself.
	ErrNoHint = errors.New("no hint left to give")
)

// Guess is one recorded entry of the history: the order it was made in,
// and how the rank table scored it.
type Guess struct {
	Number int
	Word   string
	Score  float64
	Rank   int
}

// Outcome classifies what a submitted word did to the session.
type Outcome int

const (
	// OutcomeNew recorded a fresh guess.
	OutcomeNew Outcome = iota
	// OutcomeRepeat re-surfaced an earlier guess without consuming a number.
	OutcomeRepeat
	// OutcomeWon ended the game: the word was the secret.
	OutcomeWon
)

// Result is what one turn produced. Guess carries the surfaced record; for
// a win, Total is the full guess count including the winning word.
type Result struct {
	Outcome Outcome
	Guess   Guess
	Total   int
}

// Session is one game: the secret, its rank table, and the guess history.
type Session struct {
	store      *vocab.Store
	secret     string
	table      *rank.Table
	history    []Guess
	byWord     map[string]int
	mostRecent int
	id         string
}

// New starts a game with a known secret, which must be in the vocabulary.
func New(store *vocab.Store, secret string) (*Session, error) {
	vec, ok := store.Vector(secret)
	if !ok {
		return nil, fmt.Errorf("secret %q: %w", secret, vocab.ErrUnknownWord)
	}
	s := &Session{
		store:      store,
		secret:     secret,
		table:      rank.Build(store, vec),
		byWord:     make(map[string]int),
		mostRecent: -1,
		id:         uuid.NewString(),
	}
	log.Debugf("Game session %s: secret %q over %d words", s.id, secret, store.Len())
	return s, nil
}

// NewRandom starts a game with a secret drawn uniformly from the
// vocabulary.
func NewRandom(store *vocab.Store) (*Session, error) {
	if store.Len() == 0 {
		return nil, errors.New("empty vocabulary")
	}
	words := store.Words()
	return New(store, words[rand.Intn(len(words))])
}

// Guess submits one word. The word must already be normalized.
func (s *Session) Guess(word string) (Result, error) {
	if word == s.secret {
		total := len(s.history) + 1
		e, _ := s.table.Lookup(s.secret)
		log.Debugf("Game session %s: won in %d guesses", s.id, total)
		return Result{
			Outcome: OutcomeWon,
			Guess:   Guess{Number: total, Word: s.secret, Score: e.Score, Rank: e.Rank},
			Total:   total,
		}, nil
	}

	if i, ok := s.byWord[word]; ok {
		s.mostRecent = i
		return Result{Outcome: OutcomeRepeat, Guess: s.history[i]}, nil
	}

	e, ok := s.table.Lookup(word)
	if !ok {
		return Result{}, fmt.Errorf("%q: %w", word, vocab.ErrUnknownWord)
	}

	g := Guess{Number: len(s.history) + 1, Word: word, Score: e.Score, Rank: e.Rank}
	s.byWord[word] = len(s.history)
	s.mostRecent = len(s.history)
	s.history = append(s.history, g)
	return Result{Outcome: OutcomeNew, Guess: g}, nil
}

// Hint reveals the word ranked just above the best guess so far and
// records it like a guess, so each call walks one rank closer to the
// secret. Rank 0 is never revealed: once the best rank is 1, hints run
// out.
func (s *Session) Hint() (Guess, error) {
	if len(s.history) == 0 {
		return Guess{}, ErrNoGuesses
	}

	best := s.history[0].Rank
	for _, g := range s.history[1:] {
		if g.Rank < best {
			best = g.Rank
		}
	}
	if best <= 1 {
		return Guess{}, ErrNoHint
	}

	e, ok := s.table.At(best - 1)
	if !ok {
		return Guess{}, ErrNoHint
	}

	g := Guess{Number: len(s.history) + 1, Word: e.Word, Score: e.Score, Rank: e.Rank}
	s.byWord[e.Word] = len(s.history)
	s.mostRecent = len(s.history)
	s.history = append(s.history, g)
	log.Debugf("Game session %s: hint revealed rank %d", s.id, e.Rank)
	return g, nil
}

// History returns a copy of all recorded guesses in the order they were
// made.
func (s *Session) History() []Guess {
	out := make([]Guess, len(s.history))
	copy(out, s.history)
	return out
}

// MostRecent returns the record to highlight: the latest new guess, hint,
// or repeated word.
func (s *Session) MostRecent() (Guess, bool) {
	if s.mostRecent < 0 {
		return Guess{}, false
	}
	return s.history[s.mostRecent], true
}

// Len returns the number of recorded guesses.
func (s *Session) Len() int {
	return len(s.history)
}
