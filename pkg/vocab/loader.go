package vocab

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Load reads a wvec embedding file into a store.
func Load(path string) (*Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open embedding file %s: %w", path, err)
	}
	defer file.Close()

	store, err := Read(bufio.NewReaderSize(file, 1<<16))
	if err != nil {
		return nil, fmt.Errorf("load embedding file %s: %w", path, err)
	}
	return store, nil
}

// Read decodes a wvec stream. The reader should be buffered; Load takes
// care of that for files.
func Read(r io.Reader) (*Store, error) {
	dec := msgpack.NewDecoder(r)

	var h header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := h.validate(); err != nil {
		return nil, err
	}

	log.Debugf("Loading %d words, dim %d", h.Count, h.Dim)

	store := newStore(h.Dim, h.Count)
	for i := 0; i < h.Count; i++ {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("truncated file: %d of %d entries", i, h.Count)
			}
			return nil, fmt.Errorf("read entry %d: %w", i, err)
		}
		if err := store.add(e.Word, e.Vector); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	log.Debugf("Vocabulary loaded: %d words", store.Len())
	return store, nil
}
