package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
)

// TestMakeUnmakeReversibility exercises every LegalMoveKind: for each legal
// move in a handful of fixture positions, making then unmaking it must
// restore the exact prior FEN (§4.G, §8).
func TestMakeUnmakeReversibility(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", // castling rights both sides
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",                          // en passant candidates
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",          // pending promotion
		"4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1",                                  // live en-passant target
	}

	for _, start := range positions {
		p, err := fen.Decode(start)
		require.NoError(t, err)

		before := fen.Encode(p)
		for _, m := range board.GenerateLegalMoves(p) {
			p.MakeMove(m)
			p.UnmakeMove(m)
			assert.Equal(t, before, fen.Encode(p), "move %v on %v did not round-trip", m, start)
		}
	}
}

func TestFENRoundTripAtPositionLevel(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}
	for _, tt := range tests {
		p, err := fen.Decode(tt)
		require.NoError(t, err)

		p2, err := fen.Decode(fen.Encode(p))
		require.NoError(t, err)

		assert.Equal(t, fen.Encode(p), fen.Encode(p2))
		assert.Equal(t, p.ActivePlayer(), p2.ActivePlayer())
		assert.Equal(t, p.Castling(), p2.Castling())
		assert.Equal(t, p.EnPassant(), p2.EnPassant())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	clone := p.Clone()
	moves := board.GenerateLegalMoves(p)
	require.NotEmpty(t, moves)

	clone.MakeMove(moves[0])

	assert.Equal(t, fen.Initial, fen.Encode(p))
	assert.NotEqual(t, fen.Encode(p), fen.Encode(clone))
}
