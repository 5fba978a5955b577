package vocab

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
)

// Write encodes a wvec stream: header first, then every entry in order.
// Entries must already be normalized and unit-length; Write only checks
// dimensions and counts so a bad pack run fails instead of producing a
// file the loader rejects later.
func Write(w io.Writer, dim int, entries []Entry) error {
	h := header{
		Magic:   FormatMagic,
		Version: FormatVersion,
		Dim:     dim,
		Count:   len(entries),
	}
	if err := h.validate(); err != nil {
		return err
	}

	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, e := range entries {
		if len(e.Vector) != dim {
			return fmt.Errorf("entry %d (%q): dimension %d, expected %d", i, e.Word, len(e.Vector), dim)
		}
		if err := enc.Encode(e); err != nil {
			return fmt.Errorf("write entry %d (%q): %w", i, e.Word, err)
		}
	}
	return nil
}

// WriteFile writes a wvec file, buffering and flushing around Write.
func WriteFile(path string, dim int, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create embedding file %s: %w", path, err)
	}
	defer file.Close()

	w := bufio.NewWriterSize(file, 1<<16)
	if err := Write(w, dim, entries); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush embedding file %s: %w", path, err)
	}
	return nil
}
