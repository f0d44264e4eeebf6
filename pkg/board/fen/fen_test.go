package fen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		fen.Initial,
		"4k3/2pppp2/8/4P1K1/4PP2/3P4/8/8 w - - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/5P2/PPPPP1PP/RNBQKBNR w KQkq - 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	}

	for _, tt := range tests {
		p, err := fen.Decode(tt)
		require.NoError(t, err)

		// Encode always emits "0 1" for halfmove/fullmove (those two fields
		// live on board.Game, not Position), so compare only the first four.
		assert.Equal(t, firstFour(tt), firstFour(fen.Encode(p)))
	}
}

func TestDecodeInitialPosition(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	a1 := p.PieceAt(board.A1)
	assert.Equal(t, board.White, a1.Color)
	assert.Equal(t, board.Rook, a1.Type)

	a2 := p.PieceAt(board.A2)
	assert.Equal(t, board.White, a2.Color)
	assert.Equal(t, board.Pawn, a2.Type)

	assert.False(t, p.PieceAt(board.A3).IsPresent())

	e8 := p.PieceAt(board.E8)
	assert.Equal(t, board.Black, e8.Color)
	assert.Equal(t, board.King, e8.Type)

	assert.Equal(t, board.White, p.ActivePlayer())
	assert.Equal(t, board.WhiteKingside|board.WhiteQueenside|board.BlackKingside|board.BlackQueenside, p.Castling())
	_, ok := p.EnPassant().V()
	assert.False(t, ok)
}

func TestDecodeGameTracksCounters(t *testing.T) {
	_, noprogress, fullmoves, err := fen.DecodeGame("rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8")
	require.NoError(t, err)
	assert.Equal(t, 1, noprogress)
	assert.Equal(t, 8, fullmoves)
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"8/8/8/8/8/8/8/9 w - - 0 1",
	}
	for _, tt := range tests {
		_, err := fen.Decode(tt)
		assert.Error(t, err, tt)
	}
}

func firstFour(s string) string {
	parts := make([]string, 0, 4)
	n := 0
	start := 0
	for i, r := range s {
		if r == ' ' {
			parts = append(parts, s[start:i])
			start = i + 1
			n++
			if n == 4 {
				break
			}
		}
	}
	return parts[0] + " " + parts[1] + " " + parts[2] + " " + parts[3]
}
