package vocab

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

func unitEntries() []Entry {
	// unit length, the shape vanepack actually writes
	return []Entry{
		{Word: "cat", Vector: []float32{1, 0, 0}},
		{Word: "dog", Vector: []float32{0.9, sqrt32(1 - 0.9*0.9), 0}},
		{Word: "car", Vector: []float32{0, 0, 1}},
	}
}

func sqrt32(x float64) float32 {
	return float32(math.Sqrt(x))
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.bin")
	entries := unitEntries()

	if err := WriteFile(path, 3, entries); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	store, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.Len() != len(entries) {
		t.Fatalf("Len = %d, expected %d", store.Len(), len(entries))
	}
	if store.Dim() != 3 {
		t.Fatalf("Dim = %d, expected 3", store.Dim())
	}

	words := store.Words()
	for i, e := range entries {
		if words[i] != e.Word {
			t.Errorf("Words()[%d] = %q, expected %q", i, words[i], e.Word)
		}
		v, ok := store.Vector(e.Word)
		if !ok {
			t.Fatalf("Vector(%q) missing after load", e.Word)
		}
		for j := range v {
			if math.Abs(float64(v[j]-e.Vector[j])) > 1e-6 {
				t.Errorf("%s[%d] = %v, expected %v", e.Word, j, v[j], e.Vector[j])
			}
		}
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.bin")
	if err := WriteFile(path, 3, unitEntries()); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	info, err := Inspect(path)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Dim != 3 || info.Count != 3 {
		t.Errorf("Inspect = dim %d count %d, expected 3/3", info.Dim, info.Count)
	}
	if info.Size <= 0 {
		t.Errorf("Inspect reported size %d", info.Size)
	}
}

func TestInspectRejects(t *testing.T) {
	dir := t.TempDir()

	wrongExt := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(wrongExt, bytes.Repeat([]byte{0}, 64), 0644); err != nil {
		t.Fatal(err)
	}
	tooSmall := filepath.Join(dir, "small.bin")
	if err := os.WriteFile(tooSmall, []byte{1, 2, 3}, 0644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "nope.bin"), "stat"},
		{"wrong extension", wrongExt, "extension"},
		{"too small", tooSmall, "too small"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Inspect(tc.path)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestReadRejectsHeader(t *testing.T) {
	cases := []struct {
		name string
		h    header
		want string
	}{
		{"bad magic", header{Magic: "NOPE", Version: 1, Dim: 3, Count: 1}, "magic"},
		{"future version", header{Magic: FormatMagic, Version: 99, Dim: 3, Count: 1}, "version"},
		{"zero dim", header{Magic: FormatMagic, Version: 1, Dim: 0, Count: 1}, "dimension"},
		{"zero count", header{Magic: FormatMagic, Version: 1, Dim: 3, Count: 0}, "count"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := msgpack.NewEncoder(&buf).Encode(tc.h); err != nil {
				t.Fatal(err)
			}
			_, err := Read(&buf)
			if err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestReadTruncated(t *testing.T) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	h := header{Magic: FormatMagic, Version: 1, Dim: 3, Count: 3}
	if err := enc.Encode(h); err != nil {
		t.Fatal(err)
	}
	if err := enc.Encode(unitEntries()[0]); err != nil {
		t.Fatal(err)
	}

	_, err := Read(&buf)
	if err == nil {
		t.Fatal("expected an error for a truncated stream")
	}
	if !strings.Contains(err.Error(), "truncated") {
		t.Errorf("error %q does not mention truncation", err)
	}
}

func TestReadGarbage(t *testing.T) {
	if _, err := Read(bytes.NewReader([]byte("this is not msgpack at all"))); err == nil {
		t.Fatal("expected an error for garbage input")
	}
}

func TestWriteRejectsDimMismatch(t *testing.T) {
	entries := []Entry{
		{Word: "cat", Vector: []float32{1, 0, 0}},
		{Word: "dog", Vector: []float32{1, 0}},
	}
	var buf bytes.Buffer
	if err := Write(&buf, 3, entries); err == nil {
		t.Fatal("expected an error for a mismatched vector")
	}
}

func TestWriteRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, 3, nil); err == nil {
		t.Fatal("expected an error for an empty vocabulary")
	}
}
