// Copyright 2026 The WordVane Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// vanepack converts word2vec-style text dumps into the packed binary
// vocabulary wordvane loads at startup. Every vector is scaled to unit
// length here, so the engine can treat dot products as cosine similarity
// without rescaling anything at runtime.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wordvane/wordvane/internal/logger"
	"github.com/wordvane/wordvane/internal/utils"
	"github.com/wordvane/wordvane/pkg/vocab"
)

func main() {
	inPath := flag.String("in", "", "word2vec-style text file to convert")
	outPath := flag.String("out", "data/words.bin", "Packed output file")
	dim := flag.Int("dim", 0, "Vector dimension (0 infers it from the input)")
	maxWords := flag.Int("max", 0, "Maximum number of words to pack (use 0 for all words)")
	checkPath := flag.String("check", "", "Inspect a packed file and exit")
	debugMode := flag.Bool("d", false, "Toggle debug mode")

	flag.Parse()

	level := log.InfoLevel
	if *debugMode {
		level = log.DebugLevel
	}
	log.SetDefault(logger.NewWithConfig("vanepack", level, false, true, log.TextFormatter))

	if *checkPath != "" {
		info, err := vocab.Inspect(*checkPath)
		if err != nil {
			log.Fatalf("Failed to inspect %s: %v", *checkPath, err)
		}
		fmt.Printf("%s: dim %d, %s words, %s bytes\n", info.Path, info.Dim,
			utils.FormatWithCommas(info.Count), utils.FormatWithCommas(int(info.Size)))
		return
	}

	if *inPath == "" {
		fmt.Printf("Usage: %s -in vectors.txt [-out data/words.bin] [-dim N] [-max N]\n", os.Args[0])
		os.Exit(1)
	}

	start := time.Now()
	entries, packedDim, skipped, err := readTextVectors(*inPath, *dim, *maxWords)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *inPath, err)
	}
	if len(entries) == 0 {
		log.Fatalf("No usable vectors in %s", *inPath)
	}

	if err := utils.EnsureDir(filepath.Dir(*outPath)); err != nil {
		log.Fatalf("Failed to create output directory for %s: %v", *outPath, err)
	}
	if err := vocab.WriteFile(*outPath, packedDim, entries); err != nil {
		log.Fatalf("Failed to write %s: %v", *outPath, err)
	}
	if err := vocab.ValidateFile(*outPath); err != nil {
		log.Fatalf("Verification of %s failed: %v", *outPath, err)
	}

	log.Infof("Packed %s words at dim %d into %s",
		utils.FormatWithCommas(len(entries)), packedDim, *outPath)
	if skipped > 0 {
		log.Warnf("Skipped %s lines (unusable tokens, duplicates, dimension mismatches or zero vectors)",
			utils.FormatWithCommas(skipped))
	}
	log.Debugf("Conversion took %v", time.Since(start))
}

// readTextVectors parses one embedding per line: a word followed by its
// components, whitespace separated. A leading "count dim" header is
// consumed when present. Words are normalized the same way the store
// normalizes lookups, and unusable lines are skipped rather than fatal so
// one bad row never loses a whole dump.
func readTextVectors(path string, dim, max int) ([]vocab.Entry, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	// embedding rows run long at higher dimensions
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<20)

	var entries []vocab.Entry
	seen := make(map[string]struct{})
	skipped := 0
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if lineNo == 1 && isCountHeader(fields) {
			if n, _ := strconv.Atoi(fields[1]); dim == 0 {
				dim = n
			}
			continue
		}

		word := utils.NormalizeWord(fields[0])
		if !utils.IsWordLike(word) {
			log.Debugf("line %d: unusable token %q", lineNo, fields[0])
			skipped++
			continue
		}
		if _, dup := seen[word]; dup {
			log.Debugf("line %d: duplicate word %q", lineNo, word)
			skipped++
			continue
		}

		if dim == 0 {
			dim = len(fields) - 1
			log.Debugf("inferred dimension %d from line %d", dim, lineNo)
		}
		if len(fields)-1 != dim {
			log.Debugf("line %d: got %d components, want %d", lineNo, len(fields)-1, dim)
			skipped++
			continue
		}

		vec, ok := parseComponents(fields[1:])
		if !ok {
			log.Debugf("line %d: unparsable component for %q", lineNo, word)
			skipped++
			continue
		}
		if vocab.Normalize(vec) == 0 {
			log.Debugf("line %d: zero vector for %q", lineNo, word)
			skipped++
			continue
		}

		seen[word] = struct{}{}
		entries = append(entries, vocab.Entry{Word: word, Vector: vec})
		if max > 0 && len(entries) >= max {
			log.Debugf("stopping at the %d word cap", max)
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, 0, err
	}
	return entries, dim, skipped, nil
}

// isCountHeader spots the optional word2vec preamble: exactly two numeric
// fields, count then dimension.
func isCountHeader(fields []string) bool {
	if len(fields) != 2 {
		return false
	}
	if _, err := strconv.Atoi(fields[0]); err != nil {
		return false
	}
	_, err := strconv.Atoi(fields[1])
	return err == nil
}

func parseComponents(raw []string) ([]float32, bool) {
	vec := make([]float32, len(raw))
	for i, r := range raw {
		v, err := strconv.ParseFloat(r, 32)
		if err != nil {
			return nil, false
		}
		vec[i] = float32(v)
	}
	return vec, true
}
