/*
Package rank orders the vocabulary by similarity to a reference vector.

A Table is the authoritative ranking for one reference (the game builds it
once per secret): every word gets a display score and a 0-based rank index,
rank 0 being the reference word itself. Neighbors answers one-off "closest
words" queries without keeping a table around.

Ranks are positions in the sorted order, not shared between equal scores.
The sort is stable over vocabulary file order, so two words with identical
similarity rank in file order and the whole table is deterministic.
*/
package rank

import (
	"sort"

	"github.com/charmbracelet/log"

	"github.com/wordvane/wordvane/pkg/vocab"
)

// Entry is one ranked word: its display score (percent, two decimals) and
// its position in the descending order.
type Entry struct {
	Word  string
	Score float64
	Rank  int
}

// Table ranks every vocabulary word against one reference vector.
type Table struct {
	entries []Entry
	byWord  map[string]int
}

// Build ranks the full vocabulary against ref. The reference must be a
// vector from the same store. Sorting uses the raw dot product; the rounded
// display score is only attached afterwards, so two words that display the
// same score still rank by their true similarity.
func Build(store *vocab.Store, ref []float32) *Table {
	words := store.Words()

	type scored struct {
		word string
		dot  float32
	}
	all := make([]scored, len(words))
	for i, w := range words {
		vec, _ := store.Vector(w)
		all[i] = scored{word: w, dot: vocab.Dot(vec, ref)}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].dot > all[j].dot })

	t := &Table{
		entries: make([]Entry, len(all)),
		byWord:  make(map[string]int, len(all)),
	}
	for i, s := range all {
		t.entries[i] = Entry{Word: s.word, Score: vocab.RoundPercent(s.dot), Rank: i}
		t.byWord[s.word] = i
	}

	log.Debugf("Rank table built over %d words", len(all))
	return t
}

// Lookup returns the entry for a word.
func (t *Table) Lookup(word string) (Entry, bool) {
	i, ok := t.byWord[word]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// At returns the entry holding the given rank.
func (t *Table) At(rank int) (Entry, bool) {
	if rank < 0 || rank >= len(t.entries) {
		return Entry{}, false
	}
	return t.entries[rank], true
}

// Len returns the number of ranked words.
func (t *Table) Len() int {
	return len(t.entries)
}
