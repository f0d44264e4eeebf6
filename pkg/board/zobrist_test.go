package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
)

// TestUpdateHashMatchesFromScratch checks that the incremental hash update
// UpdateHash produces after a move agrees with hashing the resulting
// position from scratch (§4.I, §8).
func TestUpdateHashMatchesFromScratch(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}

	zt := board.NewZobristTable(42)

	for _, start := range positions {
		p, err := fen.Decode(start)
		require.NoError(t, err)

		before := zt.Hash(p)
		for _, m := range board.GenerateLegalMoves(p) {
			incremental := zt.UpdateHash(p, before, m)

			p.MakeMove(m)
			fromScratch := zt.Hash(p)
			p.UnmakeMove(m)

			assert.Equal(t, fromScratch, incremental, "move %v on %v", m, start)
		}
	}
}

// TestHashEquivalenceByTransposition checks that two different move orders
// reaching the same position produce equal hash and FEN (§8 end-to-end
// scenario).
func TestHashEquivalenceByTransposition(t *testing.T) {
	zt := board.NewZobristTable(7)

	g1 := board.NewGame(zt, mustDecode(t, fen.Initial), 0, 1)
	playUCI(t, g1, "g1f3", "g8f6", "b1c3", "b8c6")

	g2 := board.NewGame(zt, mustDecode(t, fen.Initial), 0, 1)
	playUCI(t, g2, "b1c3", "b8c6", "g1f3", "g8f6")

	assert.Equal(t, g1.Hash(), g2.Hash())
	assert.Equal(t, fen.Encode(g1.Position()), fen.Encode(g2.Position()))
}

func mustDecode(t *testing.T, f string) *board.Position {
	t.Helper()
	p, err := fen.Decode(f)
	require.NoError(t, err)
	return p
}

// playUCI plays a sequence of long-algebraic moves against g, matching each
// against the legal move generator.
func playUCI(t *testing.T, g *board.Game, ucis ...string) {
	t.Helper()
	for _, u := range ucis {
		found := false
		for _, m := range board.GenerateLegalMoves(g.Position()) {
			if uciOf(g.Turn(), m) == u {
				g.PushMove(m)
				found = true
				break
			}
		}
		require.True(t, found, "move %v not legal", u)
	}
}

func uciOf(mover board.Color, m board.LegalMove) string {
	switch m.Kind {
	case board.LegalDoublePawnPush:
		src := board.NewSquare(m.File, mover.PawnStartRank())
		dest := board.NewSquare(m.File, mover.DoublePushRank())
		return src.String() + dest.String()
	default:
		return m.Src.String() + m.Dest.String()
	}
}
