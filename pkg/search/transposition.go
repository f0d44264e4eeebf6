package search

import (
	"fmt"
	"math/bits"

	"golang.org/x/exp/constraints"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/eval"
)

// clampDepth floors v at min, used to keep a cached depth non-negative
// regardless of how a caller computed it.
func clampDepth[T constraints.Ordered](v, min T) T {
	if v < min {
		return min
	}
	return v
}

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

// entry is a single transposition table slot.
type entry struct {
	valid bool
	hash  board.ZobristHash
	bound Bound
	depth int
	score eval.Score
	best  board.Move
}

// TranspositionTable caches search results keyed by position hash. A single
// Worker (§4.G) owns its table exclusively during a search, so the table
// need not be safe for concurrent access: it is fixed-size, direct-mapped
// and always-replace, trading lookup precision for a single branchless array
// access per probe.
type TranspositionTable struct {
	entries []entry
	mask    uint64
	used    int
}

// NewTranspositionTable allocates a table sized to the largest power of two
// number of entries that fits within size bytes.
func NewTranspositionTable(size uint64) *TranspositionTable {
	const entrySize = 48
	n := uint64(1) << bits.Len64(size/entrySize/2)
	if n == 0 {
		n = 1
	}
	return &TranspositionTable{
		entries: make([]entry, n),
		mask:    n - 1,
	}
}

// Read returns the cached bound, depth, score and best move for hash, if
// present.
func (t *TranspositionTable) Read(hash board.ZobristHash) (Bound, int, eval.Score, board.Move, bool) {
	e := &t.entries[uint64(hash)&t.mask]
	if e.valid && e.hash == hash {
		return e.bound, e.depth, e.score, e.best, true
	}
	return 0, 0, 0, board.Move{}, false
}

// Write unconditionally replaces the slot hash maps to.
func (t *TranspositionTable) Write(hash board.ZobristHash, bound Bound, depth int, score eval.Score, move board.Move) {
	e := &t.entries[uint64(hash)&t.mask]
	if !e.valid {
		t.used++
	}
	*e = entry{valid: true, hash: hash, bound: bound, depth: clampDepth(depth, 0), score: score, best: move}
}

// Size returns the size of the table in bytes.
func (t *TranspositionTable) Size() uint64 {
	return uint64(len(t.entries)) * 48
}

// Used returns the utilization as a fraction [0;1], the basis for the UCI
// "info hashfull" metric.
func (t *TranspositionTable) Used() float64 {
	return float64(t.used) / float64(len(t.entries))
}

func (t *TranspositionTable) String() string {
	return fmt.Sprintf("TT[%v @ %v%%]", t.Size(), int(100*t.Used()))
}
