package vocab

import (
	"fmt"

	"github.com/wordvane/wordvane/internal/utils"
)

// Store is the loaded vocabulary: every known word and its vector, in file
// order. It is immutable once built.
type Store struct {
	dim   int
	words []string
	vecs  map[string][]float32
}

// FromEntries builds a store from in-memory entries. Words are normalized
// before insertion; every vector must match dim and every normalized word
// must be unique. Vectors are taken as-is: the packer is responsible for
// unit length, the store never rescales.
func FromEntries(dim int, entries []Entry) (*Store, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid vector dimension %d", dim)
	}
	s := newStore(dim, len(entries))
	for _, e := range entries {
		if err := s.add(e.Word, e.Vector); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func newStore(dim, capacity int) *Store {
	return &Store{
		dim:   dim,
		words: make([]string, 0, capacity),
		vecs:  make(map[string][]float32, capacity),
	}
}

// add normalizes the word and stores the entry. Only the loader and
// FromEntries call add; afterwards the store is read-only.
func (s *Store) add(word string, vec []float32) error {
	word = utils.NormalizeWord(word)
	if word == "" {
		return fmt.Errorf("empty word in vocabulary")
	}
	if len(vec) != s.dim {
		return fmt.Errorf("word %q has dimension %d, expected %d", word, len(vec), s.dim)
	}
	if _, exists := s.vecs[word]; exists {
		return fmt.Errorf("duplicate word %q in vocabulary", word)
	}
	s.words = append(s.words, word)
	s.vecs[word] = vec
	return nil
}

// Vector returns the embedding for a word. The returned slice is shared;
// callers must not modify it.
func (s *Store) Vector(word string) ([]float32, bool) {
	vec, ok := s.vecs[word]
	return vec, ok
}

// Has reports whether the word is in the vocabulary.
func (s *Store) Has(word string) bool {
	_, ok := s.vecs[word]
	return ok
}

// Words returns all vocabulary words in file order. The returned slice is
// shared; callers must not modify it.
func (s *Store) Words() []string {
	return s.words
}

// Len returns the vocabulary size.
func (s *Store) Len() int {
	return len(s.words)
}

// Dim returns the vector dimension shared by every entry.
func (s *Store) Dim() int {
	return s.dim
}
