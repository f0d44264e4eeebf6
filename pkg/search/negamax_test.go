package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
	"github.com/arnegrim/corvid/pkg/eval"
	"github.com/arnegrim/corvid/pkg/search"
)

func newGame(t *testing.T, f string) *board.Game {
	t.Helper()
	p, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewGame(board.NewZobristTable(1), p, 0, 1)
}

func TestNegamaxFindsMateInOne(t *testing.T) {
	// White to move: Ra8# (black king boxed in on g8 by its own pawns).
	g := newGame(t, "6k1/5ppp/8/8/8/8/8/R6K w - - 0 1")

	n := search.Negamax{Eval: eval.Smart{}}
	_, score, pv, err := n.Search(context.Background(), g, nil, nil, 2)
	require.NoError(t, err)
	require.NotEmpty(t, pv)

	assert.Equal(t, board.NewSquare(board.FileA, board.Rank8), pv[0].Dest)
	assert.Greater(t, score, eval.Score(900000), "mate score should approach +Inf")
}

func TestNegamaxTranspositionTableDoesNotChangeBestMove(t *testing.T) {
	g := newGame(t, fen.Initial)
	n := search.Negamax{Eval: eval.Smart{}}

	tt := search.NewTranspositionTable(1 << 20)
	_, scoreWithTT, pvWithTT, err := n.Search(context.Background(), g, tt, nil, 3)
	require.NoError(t, err)
	require.NotEmpty(t, pvWithTT)

	_, scoreNoTT, pvNoTT, err := n.Search(context.Background(), g, nil, nil, 3)
	require.NoError(t, err)
	require.NotEmpty(t, pvNoTT)

	assert.Equal(t, scoreNoTT, scoreWithTT, "clearing the table must not change the evaluated score")
	assert.Equal(t, pvNoTT[0], pvWithTT[0], "clearing the table must not change the chosen best move")
}

func TestNegamaxHandlesNoLegalMoves(t *testing.T) {
	// Fool's mate final position: white to move, checkmated.
	g := newGame(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")

	n := search.Negamax{Eval: eval.Smart{}}
	_, score, pv, err := n.Search(context.Background(), g, nil, nil, 2)
	require.NoError(t, err)
	assert.Nil(t, pv)
	assert.Equal(t, eval.NegInf, score)
}
