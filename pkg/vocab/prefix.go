package vocab

import (
	"errors"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

var errEnough = errors.New("enough matches")

// collection cap before sorting; a prefix subtree larger than this is too
// unspecific to produce useful suggestions anyway
const maxScan = 512

// PrefixIndex is a patricia trie over the vocabulary, used to suggest
// nearby words when the user types something the vocabulary doesn't have.
type PrefixIndex struct {
	trie *patricia.Trie
}

// NewPrefixIndex indexes every word of the store. The trie item is the
// word's file position, so suggestions can be ordered the way the source
// dump ordered words (most embedding dumps are frequency-sorted).
func NewPrefixIndex(s *Store) *PrefixIndex {
	trie := patricia.NewTrie()
	for i, word := range s.Words() {
		trie.Insert(patricia.Prefix(word), i)
	}
	return &PrefixIndex{trie: trie}
}

// WithPrefix returns up to limit vocabulary words sharing the prefix,
// ordered by file position.
func (p *PrefixIndex) WithPrefix(prefix string, limit int) []string {
	if prefix == "" || limit <= 0 {
		return nil
	}

	type match struct {
		word string
		pos  int
	}
	var matches []match

	err := p.trie.VisitSubtree(patricia.Prefix(prefix), func(pr patricia.Prefix, item patricia.Item) error {
		pos, ok := item.(int)
		if !ok {
			log.Errorf("Unknown item type %T for word %s", item, pr)
			return nil
		}
		matches = append(matches, match{word: string(pr), pos: pos})
		if len(matches) >= maxScan {
			return errEnough
		}
		return nil
	})
	if err != nil && !errors.Is(err, errEnough) {
		log.Errorf("Error visiting trie subtree: %v", err)
		return nil
	}

	if len(matches) == 0 {
		return nil
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].pos < matches[j].pos })
	if len(matches) > limit {
		matches = matches[:limit]
	}

	words := make([]string, len(matches))
	for i, m := range matches {
		words[i] = m.word
	}
	return words
}
