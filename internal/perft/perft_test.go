package perft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegrim/corvid/internal/perft"
	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
)

func newGame(t *testing.T, f string) *board.Game {
	t.Helper()
	pos, noprogress, fullmoves, err := fen.DecodeGame(f)
	require.NoError(t, err)
	return board.NewGame(board.NewZobristTable(0), pos, noprogress, fullmoves)
}

func TestCountMatchesCanonicalTable(t *testing.T) {
	g := newGame(t, fen.Initial)
	assert.Equal(t, uint64(20), perft.Count(g, 1))
	assert.Equal(t, uint64(400), perft.Count(g, 2))
	assert.Equal(t, uint64(197281), perft.Count(g, 4))
}

func TestDivideSumsToCount(t *testing.T) {
	g := newGame(t, fen.Initial)

	entries := perft.Divide(g, 3)
	var sum uint64
	for _, e := range entries {
		sum += e.Nodes
	}
	assert.Equal(t, perft.Count(g, 3), sum)
	assert.Len(t, entries, 20)
}

func TestDivideDepthZeroIsEmpty(t *testing.T) {
	g := newGame(t, fen.Initial)
	assert.Empty(t, perft.Divide(g, 0))
}
