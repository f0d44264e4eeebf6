package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
	"github.com/seekerror/stdlib/pkg/lang"
)

// perft walks the legal move tree via make/unmake, the canonical generator
// correctness check (§4.J, §8).
func perft(p *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range board.GenerateLegalMoves(p) {
		p.MakeMove(m)
		nodes += perft(p, depth-1)
		p.UnmakeMove(m)
	}
	return nodes
}

func TestPerftCanonical(t *testing.T) {
	tests := []struct {
		fenStr string
		depth  int
		nodes  uint64
	}{
		{fen.Initial, 4, 197281},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
		{"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1", 3, 9467},
		{"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8", 3, 62379},
	}

	for _, tt := range tests {
		p, err := fen.Decode(tt.fenStr)
		require.NoError(t, err)

		assert.Equal(t, tt.nodes, perft(p, tt.depth), "fen=%v depth=%v", tt.fenStr, tt.depth)
	}
}

func TestPerftDepth123StartingPosition(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, uint64(20), perft(p, 1))
	assert.Equal(t, uint64(400), perft(p, 2))
	assert.Equal(t, uint64(8902), perft(p, 3))
}

func TestGeneratorSoundnessNoSelfCheck(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	for _, m := range board.GenerateLegalMoves(p) {
		p.MakeMove(m)
		assert.False(t, board.IsKingInCheck(p, p.ActivePlayer().Opponent()),
			"move %v left mover's own king in check", m)
		p.UnmakeMove(m)
	}
}

func TestGeneratorSoundnessNoFriendlyCapture(t *testing.T) {
	p, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	mover := p.ActivePlayer()
	for _, m := range board.GenerateLegalMoves(p) {
		if m.Kind == board.LegalNormal || m.Kind == board.LegalPromotion {
			if m.Captured != board.NoPiece {
				assert.NotEqual(t, mover, captureOwner(p, m))
			}
		}
	}
}

func captureOwner(p *board.Position, m board.LegalMove) board.Color {
	return p.PieceAt(m.Dest).Color
}

func TestPinnedPieceMoveRejected(t *testing.T) {
	p, err := fen.Decode("4r3/8/8/8/4B3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	for _, m := range board.GenerateLegalMoves(p) {
		if m.Kind == board.LegalNormal && m.Src == board.NewSquare(board.FileE, board.Rank4) && m.Dest == board.NewSquare(board.FileF, board.Rank3) {
			t.Fatalf("pinned bishop move e4f3 must be rejected, got %v", m)
		}
	}
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	p, err := fen.Decode("6kb/8/8/8/8/8/8/R3K2R b KQ - 0 1")
	require.NoError(t, err)

	var capture board.LegalMove
	found := false
	for _, m := range board.GenerateLegalMoves(p) {
		if m.Kind == board.LegalNormal && m.Src == board.H8 && m.Dest == board.A1 {
			capture = m
			found = true
		}
	}
	require.True(t, found, "h8a1 must be a legal move")

	p.MakeMove(capture)
	assert.False(t, p.HasQueensideRights(board.White))
	assert.True(t, p.HasKingsideRights(board.White))
}

func TestEnPassantCapture(t *testing.T) {
	e5 := board.NewSquare(board.FileE, board.Rank5)
	d5 := board.NewSquare(board.FileD, board.Rank5)
	d6 := board.NewSquare(board.FileD, board.Rank6)
	e1 := board.NewSquare(board.FileE, board.Rank1)
	e8 := board.NewSquare(board.FileE, board.Rank8)

	p := board.NewPosition(
		[]board.Placement{
			{Square: e5, Piece: board.Piece{Type: board.Pawn, Color: board.White}},
			{Square: d5, Piece: board.Piece{Type: board.Pawn, Color: board.Black}},
			{Square: e1, Piece: board.Piece{Type: board.King, Color: board.White}},
			{Square: e8, Piece: board.Piece{Type: board.King, Color: board.Black}},
		},
		board.White, board.Castling(0), lang.Some(d6),
	)

	var ep board.LegalMove
	found := false
	for _, m := range board.GenerateLegalMoves(p) {
		if m.Kind == board.LegalEnPassant {
			ep = m
			found = true
		}
	}
	require.True(t, found, "e5d6 en passant must be generated")

	p.MakeMove(ep)
	assert.True(t, p.PieceAt(d6).IsPresent())
	assert.Equal(t, board.White, p.PieceAt(d6).Color)
	assert.False(t, p.PieceAt(e5).IsPresent())
	assert.False(t, p.PieceAt(d5).IsPresent())
	_, ok := p.EnPassant().V()
	assert.False(t, ok)
}

func TestCheckmateRecognised(t *testing.T) {
	// 1.f3 e5 2.g4 Qh4#
	p, err := fen.Decode("rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2")
	require.NoError(t, err)

	h4 := board.NewSquare(board.FileH, board.Rank4)
	for _, m := range board.GenerateLegalMoves(p) {
		if m.Kind == board.LegalNormal && m.Dest == h4 {
			p.MakeMove(m)
		}
	}

	assert.Equal(t, board.StateCheckmate, board.GetGameState(p))
}
