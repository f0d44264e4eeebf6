// Package perft counts leaf nodes of the legal move tree to a fixed depth,
// the standard move-generator correctness and performance harness.
// See: https://www.chessprogramming.org/Perft_Results.
package perft

import (
	"fmt"

	"github.com/arnegrim/corvid/pkg/board"
)

// Count walks g's legal move tree to depth plies via make/unmake and returns
// the leaf count. depth 0 counts as a single leaf.
func Count(g *board.Game, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	for _, m := range board.GenerateLegalMoves(g.Position()) {
		g.PushMove(m)
		nodes += Count(g, depth-1)
		g.PopMove()
	}
	return nodes
}

// Divide reports the leaf count contributed by each root move separately,
// useful for isolating a move generation bug against a reference perft
// table.
func Divide(g *board.Game, depth int) []Entry {
	if depth == 0 {
		return nil
	}

	moves := board.GenerateLegalMoves(g.Position())
	entries := make([]Entry, 0, len(moves))
	for _, m := range moves {
		g.PushMove(m)
		nodes := Count(g, depth-1)
		g.PopMove()

		entries = append(entries, Entry{Move: m, Nodes: nodes})
	}
	return entries
}

// Entry is one root move's contribution to a Divide result.
type Entry struct {
	Move  board.LegalMove
	Nodes uint64
}

func (e Entry) String() string {
	return fmt.Sprintf("%v: %v", e.Move, e.Nodes)
}
