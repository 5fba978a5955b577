package vocab

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// wvec binary format, version 1: a msgpack stream of one header followed by
// exactly Count entries. Little else — the file is written once by vanepack
// and read once at startup.
const (
	FormatMagic   = "WVEC"
	FormatVersion = 1

	// Extension expected for embedding files
	FileExtension = ".bin"

	maxDim   = 4096
	maxCount = 4_000_000

	// header (4 msgpack fields) plus at least one entry
	minFileSize = 16
)

// header leads every wvec file and sizes the entry stream that follows.
type header struct {
	Magic   string `msgpack:"m"`
	Version int    `msgpack:"ver"`
	Dim     int    `msgpack:"dim"`
	Count   int    `msgpack:"n"`
}

func (h header) validate() error {
	if h.Magic != FormatMagic {
		return fmt.Errorf("bad magic %q, not a wvec file", h.Magic)
	}
	if h.Version != FormatVersion {
		return fmt.Errorf("unsupported wvec version %d (supported: %d)", h.Version, FormatVersion)
	}
	if h.Dim < 1 || h.Dim > maxDim {
		return fmt.Errorf("invalid vector dimension %d (must be 1..%d)", h.Dim, maxDim)
	}
	if h.Count < 1 || h.Count > maxCount {
		return fmt.Errorf("invalid word count %d (must be 1..%d)", h.Count, maxCount)
	}
	return nil
}

// FileInfo describes a wvec file without loading its vectors.
type FileInfo struct {
	Path  string
	Dim   int
	Count int
	Size  int64
}

// ValidateFile checks that a file exists, looks like a wvec file and has a
// sane header. It does not read the entries.
func ValidateFile(path string) error {
	_, err := Inspect(path)
	return err
}

// Inspect reads and validates just the header of a wvec file.
func Inspect(path string) (FileInfo, error) {
	info := FileInfo{Path: path}

	stat, err := os.Stat(path)
	if err != nil {
		return info, fmt.Errorf("stat embedding file: %w", err)
	}
	info.Size = stat.Size()
	if stat.Size() < minFileSize {
		return info, fmt.Errorf("embedding file %s is too small (%d bytes, minimum %d)",
			path, stat.Size(), minFileSize)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != FileExtension {
		return info, fmt.Errorf("embedding file %s has extension %q, expected %q",
			path, ext, FileExtension)
	}

	file, err := os.Open(path)
	if err != nil {
		return info, fmt.Errorf("open embedding file: %w", err)
	}
	defer file.Close()

	var h header
	if err := msgpack.NewDecoder(file).Decode(&h); err != nil {
		return info, fmt.Errorf("read header from %s: %w", path, err)
	}
	if err := h.validate(); err != nil {
		return info, fmt.Errorf("embedding file %s: %w", path, err)
	}

	info.Dim = h.Dim
	info.Count = h.Count
	log.Debugf("Embedding file %s validated: %d words, dim %d", path, h.Count, h.Dim)
	return info, nil
}
