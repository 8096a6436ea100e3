package search

import (
	"context"
	"fmt"
	"math/bits"
	"runtime"

	"github.com/seekerror/logw"
	"github.com/solskog/corvid/pkg/board"
	"go.uber.org/atomic"
)

// Bound represents the bound of a -- possibly inexact -- search score.
type Bound uint8

const (
	ExactBound Bound = iota
	LowerBound
	UpperBound
)

func (b Bound) String() string {
	switch b {
	case ExactBound:
		return "Exact"
	case LowerBound:
		return "Lower"
	case UpperBound:
		return "Upper"
	default:
		return "?"
	}
}

// TranspositionTable caches search results keyed by position hash.
// Caveat: evaluation heuristics that depend on game history (e.g. a
// "has castled" term) may be unsuitable for position-keyed caching; this
// table caches purely on Zobrist hash with no history awareness. Must be
// thread-safe: many search goroutines probe and store concurrently.
type TranspositionTable interface {
	// Probe returns the bound, depth, score and best move stored for hash,
	// if present and the stored hash matches exactly.
	Probe(hash uint64) (Bound, int, board.Score, board.Move, bool)
	// Store records an entry for hash, subject to the table's replacement
	// policy; returns whether the write took effect.
	Store(hash uint64, bound Bound, depth int, score board.Score, move board.Move) bool

	Size() uint64
	Used() float64
}

// entry is one transposition table slot, guarded by its own spin-lock so
// contention is proportional to hash-collision rate rather than table-wide.
type entry struct {
	lock  atomic.Bool
	valid bool
	hash  uint64
	score board.Score
	move  board.Move
	depth uint16
	bound Bound
}

func (e *entry) Lock() {
	for !e.lock.CAS(false, true) {
		runtime.Gosched()
	}
}

func (e *entry) Unlock() {
	e.lock.Store(false)
}

// table is a fixed-capacity, power-of-two-sized transposition table with
// one directly-mapped, non-chained slot per index.
type table struct {
	entries []entry
	mask    uint64
}

// NewTranspositionTable allocates a table sized to the largest power of two
// of entries that fits in size bytes.
func NewTranspositionTable(ctx context.Context, size uint64) TranspositionTable {
	const entrySize = uint64(32)
	n := uint64(1) << (63 - bits.LeadingZeros64(size/entrySize))
	if n == 0 {
		n = 1
	}

	logw.Infof(ctx, "Allocating %vMB TT with %v entries", size>>20, n)

	return &table{
		entries: make([]entry, n),
		mask:    n - 1,
	}
}

func (t *table) Size() uint64 {
	return uint64(len(t.entries)) * 32
}

func (t *table) Used() float64 {
	used := 0
	for i := range t.entries {
		if t.entries[i].valid {
			used++
		}
	}
	return float64(used) / float64(len(t.entries))
}

func (t *table) Probe(hash uint64) (Bound, int, board.Score, board.Move, bool) {
	e := &t.entries[hash&t.mask]

	e.Lock()
	defer e.Unlock()

	if !e.valid || e.hash != hash {
		return 0, 0, 0, board.NoMove, false
	}
	return e.bound, int(e.depth), e.score, e.move, true
}

func (t *table) Store(hash uint64, bound Bound, depth int, score board.Score, move board.Move) bool {
	e := &t.entries[hash&t.mask]

	e.Lock()
	defer e.Unlock()

	if e.valid && int(e.depth) >= depth {
		return false // deeper (or equally deep) existing work is never discarded for shallower
	}

	e.valid = true
	e.hash = hash
	e.bound = bound
	e.depth = uint16(depth)
	e.score = score
	e.move = move
	return true
}

func (t *table) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}

// NoTranspositionTable is a Nop implementation, used when caching is
// disabled (e.g. to isolate search correctness from TT interaction).
type NoTranspositionTable struct{}

func (NoTranspositionTable) Probe(hash uint64) (Bound, int, board.Score, board.Move, bool) {
	return 0, 0, 0, board.NoMove, false
}

func (NoTranspositionTable) Store(hash uint64, bound Bound, depth int, score board.Score, move board.Move) bool {
	return false
}

func (NoTranspositionTable) Size() uint64 { return 0 }
func (NoTranspositionTable) Used() float64 { return 0 }
