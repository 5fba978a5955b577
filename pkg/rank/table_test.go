package rank

import (
	"errors"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/wordvane/wordvane/pkg/vocab"
)

func init() {
	log.SetLevel(log.FatalLevel)
}

func scenarioStore(t *testing.T) *vocab.Store {
	t.Helper()
	store, err := vocab.FromEntries(2, []vocab.Entry{
		{Word: "cat", Vector: []float32{1, 0}},
		{Word: "dog", Vector: []float32{0.9, 0.1}},
		{Word: "car", Vector: []float32{0, 1}},
	})
	if err != nil {
		t.Fatalf("FromEntries failed: %v", err)
	}
	return store
}

func refVector(t *testing.T, store *vocab.Store, word string) []float32 {
	t.Helper()
	v, ok := store.Vector(word)
	if !ok {
		t.Fatalf("reference word %q missing", word)
	}
	return v
}

func TestBuildAgainstSecret(t *testing.T) {
	store := scenarioStore(t)
	table := Build(store, refVector(t, store, "cat"))

	if table.Len() != 3 {
		t.Fatalf("Len = %d, expected 3", table.Len())
	}

	cases := []struct {
		word  string
		score float64
		rank  int
	}{
		{"cat", 100, 0},
		{"dog", 90, 1},
		{"car", 0, 2},
	}
	for _, tc := range cases {
		e, ok := table.Lookup(tc.word)
		if !ok {
			t.Fatalf("Lookup(%q) missing", tc.word)
		}
		if e.Score != tc.score || e.Rank != tc.rank {
			t.Errorf("Lookup(%q) = score %v rank %d, expected %v/%d",
				tc.word, e.Score, e.Rank, tc.score, tc.rank)
		}
	}
}

func TestSelfRanksFirst(t *testing.T) {
	// unit vectors: every word must outrank the rest against itself
	store, err := vocab.FromEntries(2, []vocab.Entry{
		{Word: "north", Vector: []float32{0, 1}},
		{Word: "east", Vector: []float32{1, 0}},
		{Word: "uphill", Vector: []float32{0.6, 0.8}},
		{Word: "downhill", Vector: []float32{0.8, -0.6}},
	})
	if err != nil {
		t.Fatalf("FromEntries failed: %v", err)
	}

	for _, w := range store.Words() {
		table := Build(store, refVector(t, store, w))
		e, ok := table.Lookup(w)
		if !ok {
			t.Fatalf("Lookup(%q) missing from its own table", w)
		}
		if e.Rank != 0 {
			t.Errorf("%q ranks %d against itself, expected 0", w, e.Rank)
		}
		if e.Score != 100 {
			t.Errorf("%q scores %v against itself, expected 100", w, e.Score)
		}
	}
}

func TestBuildTiesKeepFileOrder(t *testing.T) {
	store, err := vocab.FromEntries(2, []vocab.Entry{
		{Word: "anchor", Vector: []float32{1, 0}},
		{Word: "twinb", Vector: []float32{0, 1}},
		{Word: "twina", Vector: []float32{0, 1}},
	})
	if err != nil {
		t.Fatalf("FromEntries failed: %v", err)
	}

	table := Build(store, refVector(t, store, "anchor"))
	b, _ := table.Lookup("twinb")
	a, _ := table.Lookup("twina")
	if b.Rank != 1 || a.Rank != 2 {
		t.Errorf("tied words rank %d/%d, expected file order 1/2", b.Rank, a.Rank)
	}
}

func TestAt(t *testing.T) {
	store := scenarioStore(t)
	table := Build(store, refVector(t, store, "cat"))

	e, ok := table.At(1)
	if !ok || e.Word != "dog" {
		t.Errorf("At(1) = %v/%v, expected dog", e.Word, ok)
	}
	if _, ok := table.At(-1); ok {
		t.Error("At(-1) reported ok")
	}
	if _, ok := table.At(3); ok {
		t.Error("At(3) reported ok past the end")
	}
}

func TestLookupMissing(t *testing.T) {
	store := scenarioStore(t)
	table := Build(store, refVector(t, store, "cat"))
	if _, ok := table.Lookup("fish"); ok {
		t.Error("Lookup(fish) reported ok")
	}
}

func TestNeighbors(t *testing.T) {
	store := scenarioStore(t)

	nearest, err := Neighbors(store, "cat", 1, false)
	if err != nil {
		t.Fatalf("Neighbors failed: %v", err)
	}
	if len(nearest) != 1 || nearest[0].Word != "dog" || nearest[0].Score != 90 || nearest[0].Rank != 0 {
		t.Errorf("nearest = %+v, expected dog at 90/0", nearest)
	}

	farthest, err := Neighbors(store, "cat", 1, true)
	if err != nil {
		t.Fatalf("Neighbors failed: %v", err)
	}
	if len(farthest) != 1 || farthest[0].Word != "car" || farthest[0].Rank != 1 {
		t.Errorf("farthest = %+v, expected car at rank 1", farthest)
	}
}

func TestNeighborsExcludesSelf(t *testing.T) {
	store := scenarioStore(t)
	all, err := Neighbors(store, "cat", 10, false)
	if err != nil {
		t.Fatalf("Neighbors failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d neighbors, expected 2", len(all))
	}
	for _, e := range all {
		if e.Word == "cat" {
			t.Error("neighbors include the query word itself")
		}
	}
}

func TestNeighborsUnknownWord(t *testing.T) {
	store := scenarioStore(t)
	if _, err := Neighbors(store, "fish", 3, false); !errors.Is(err, vocab.ErrUnknownWord) {
		t.Errorf("error = %v, expected ErrUnknownWord", err)
	}
}

func TestNeighborsZeroCount(t *testing.T) {
	store := scenarioStore(t)
	got, err := Neighbors(store, "cat", 0, false)
	if err != nil {
		t.Fatalf("Neighbors failed: %v", err)
	}
	if got != nil {
		t.Errorf("Neighbors with count 0 = %v, expected nil", got)
	}
}
