//go:build test

package mem

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/wordvane/wordvane/pkg/game"
	"github.com/wordvane/wordvane/pkg/rank"
	"github.com/wordvane/wordvane/pkg/solver"
	"github.com/wordvane/wordvane/pkg/vocab"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const (
	vocabSize = 2000
	vectorDim = 16
)

// buildStore generates a deterministic synthetic vocabulary so the tests
// never depend on a packed data file being present.
func buildStore(t testing.TB) *vocab.Store {
	t.Helper()

	entries := make([]vocab.Entry, 0, vocabSize)
	for i := 0; i < vocabSize; i++ {
		vec := make([]float32, vectorDim)
		for j := range vec {
			vec[j] = float32(math.Sin(float64(i*vectorDim + j + 1)))
		}
		if vocab.Normalize(vec) == 0 {
			t.Fatalf("degenerate vector at %d", i)
		}
		entries = append(entries, vocab.Entry{
			Word:   fmt.Sprintf("word%04d", i),
			Vector: vec,
		})
	}

	store, err := vocab.FromEntries(vectorDim, entries)
	if err != nil {
		t.Fatalf("build store: %v", err)
	}
	return store
}

func TestMemoryLeakRankTables(t *testing.T) {
	iterations := []int{50, 100, 250, 500}

	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runRankTableMemoryTest(t, iterCount)
		})
	}
}

func TestMemoryLeakConcurrentSolvers(t *testing.T) {
	configs := []struct {
		workers             int
		iterationsPerWorker int
	}{
		{workers: 1, iterationsPerWorker: 200},
		{workers: 2, iterationsPerWorker: 100},
		{workers: 4, iterationsPerWorker: 50},
		{workers: 8, iterationsPerWorker: 25},
	}

	for _, config := range configs {
		t.Run(fmt.Sprintf("workers_%d_iter_%d", config.workers, config.iterationsPerWorker), func(t *testing.T) {
			runConcurrentSolverMemoryTest(t, config.workers, config.iterationsPerWorker)
		})
	}
}

func TestMemoryStabilityLongRun(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping long-running memory stability test in short mode")
	}

	cycles := 50
	opsPerCycle := 100

	runLongRunMemoryTest(t, cycles, opsPerCycle)
}

// runRankTableMemoryTest hammers the hottest allocation path: a full rank
// table per game session. Tables must become garbage once the session is
// dropped.
func runRankTableMemoryTest(t *testing.T, iterations int) {
	store := buildStore(t)
	words := store.Words()

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for i := 0; i < iterations; i++ {
		secret := words[i%len(words)]
		session, err := game.New(store, secret)
		if err != nil {
			t.Fatalf("new game: %v", err)
		}
		for _, probe := range words[:8] {
			if probe == secret {
				continue
			}
			if _, err := session.Guess(probe); err != nil {
				t.Fatalf("guess %s: %v", probe, err)
			}
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	totalOps := iterations * 8
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

// runConcurrentSolverMemoryTest runs independent sessions over one shared
// store. The store is read-only after load, so sessions must never step on
// each other.
func runConcurrentSolverMemoryTest(t *testing.T, workers, iterationsPerWorker int) {
	memFile, err := os.Create("solver_concurrent.prof")
	if err != nil {
		t.Fatalf("profile file creation failed: %v", err)
	}
	defer func() {
		memFile.Close()
		os.Remove("solver_concurrent.prof")
	}()

	store := buildStore(t)
	words := store.Words()
	target, _ := store.Vector(words[0])

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	var wg sync.WaitGroup
	errs := make(chan error, workers)

	for worker := 0; worker < workers; worker++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for iter := 0; iter < iterationsPerWorker; iter++ {
				session := solver.New(store, 0.005, words[0])
				for _, probe := range words[1:6] {
					vec, _ := store.Vector(probe)
					if err := session.Add(probe, vocab.Percent(vocab.Dot(vec, target))); err != nil {
						errs <- fmt.Errorf("add %s: %w", probe, err)
						return
					}
				}
				session.FindBest()
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatal(err)
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	totalOps := workers * iterationsPerWorker * 5
	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("workers=%d iter_per_worker=%d total_ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		workers, iterationsPerWorker, totalOps, memDelta, memPerOp, goroutineDelta)

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		t.Errorf("heap profile write failed: %v", err)
	}

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 3 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func runLongRunMemoryTest(t *testing.T, cycles, opsPerCycle int) {
	memFile, err := os.Create("longrun_stability.prof")
	if err != nil {
		t.Fatalf("profile file creation failed: %v", err)
	}
	defer func() {
		memFile.Close()
		os.Remove("longrun_stability.prof")
	}()

	store := buildStore(t)
	words := store.Words()

	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	totalOps := 0
	maxMemDelta := int64(0)

	for cycle := 0; cycle < cycles; cycle++ {
		secret := words[cycle%len(words)]
		session, err := game.New(store, secret)
		if err != nil {
			t.Fatalf("new game: %v", err)
		}
		table := rank.Build(store, mustVector(t, store, secret))

		for op := 0; op < opsPerCycle; op++ {
			probe := words[(cycle*opsPerCycle+op)%len(words)]
			if probe != secret {
				if _, err := session.Guess(probe); err != nil {
					t.Fatalf("guess %s: %v", probe, err)
				}
			}
			table.Lookup(probe)
			totalOps++
		}

		var snapshot runtime.MemStats
		runtime.GC()
		runtime.ReadMemStats(&snapshot)
		delta := int64(snapshot.Alloc - baseline.Alloc)
		if delta > maxMemDelta {
			maxMemDelta = delta
		}
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc - baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("cycles=%d ops=%d mem_delta=%d bytes max_delta=%d mem_per_op=%.2f goroutine_delta=%d",
		cycles, totalOps, memDelta, maxMemDelta, memPerOp, goroutineDelta)

	if err := pprof.WriteHeapProfile(memFile); err != nil {
		t.Errorf("heap profile write failed: %v", err)
	}

	if memPerOp > 1000 {
		t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
	}

	if goroutineDelta > 2 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

func mustVector(t *testing.T, store *vocab.Store, word string) []float32 {
	t.Helper()
	vec, ok := store.Vector(word)
	if !ok {
		t.Fatalf("missing vector for %s", word)
	}
	return vec
}
