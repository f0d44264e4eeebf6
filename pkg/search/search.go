// Package search contains the game-tree search: a unified negamax with
// alpha-beta pruning, the transposition table it probes, and the iterative
// deepening harness (searchctl) that drives it under time/depth controls.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/eval"
)

// ErrHalted indicates a search was halted (via context cancellation)
// before it completed its current depth.
var ErrHalted = errors.New("search halted")

// PV is the principal variation found for a completed search depth.
type PV struct {
	Depth int
	Moves []board.LegalMove
	Score eval.Score
	Nodes uint64
	Time  time.Duration
	Hash  float64 // transposition table utilization, [0;1]
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v score=%v nodes=%v time=%v hashfull=%v%% pv=%v",
		p.Depth, p.Score, p.Nodes, p.Time, int(100*p.Hash), formatPV(p.Moves))
}

func formatPV(moves []board.LegalMove) string {
	s := ""
	for i, m := range moves {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}

// Noise perturbs a score at the search root to break ties between
// equally-scored moves instead of always preferring the first one
// generated (§4.I).
type Noise interface {
	Sample() eval.Score
}

// Search is a fixed-depth game-tree search over a Game's current position.
type Search interface {
	// Search explores g's position to the given ply depth and returns the
	// node count, the position's score for the side to move, and the
	// principal variation. g is mutated and restored (PushMove/PopMove) and
	// its position is unchanged on return; if the root has no legal moves,
	// g's Result is set to the checkmate or stalemate outcome.
	Search(ctx context.Context, g *board.Game, tt *TranspositionTable, noise Noise, depth int) (uint64, eval.Score, []board.LegalMove, error)
}
