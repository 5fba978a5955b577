/*
Package vocab holds the embedding vocabulary: an immutable mapping from word
to a fixed-length float32 vector, loaded once at startup from a wvec binary
file.

Vectors are unit-length by construction (the packer normalizes them), so a
plain dot product between two of them approximates cosine similarity in
[-1, 1]. The engine works on a percent scale: dot * 100, displayed rounded
to two decimals.

The store is never mutated after loading and is safe to share between
readers. Words are NFC-normalized and lower-cased; user input must go
through the same normalization before a lookup.
*/
package vocab

import "errors"

// ErrUnknownWord marks lookups of words the vocabulary does not hold. Every
// engine that takes user words reports absence through this sentinel so
// shells can match it with errors.Is and suggest alternatives.
var ErrUnknownWord = errors.New("unknown word")

// Entry pairs a word with its embedding vector. It is both the unit of the
// wvec file format and the input to FromEntries.
type Entry struct {
	Word   string    `msgpack:"w"`
	Vector []float32 `msgpack:"v"`
}
