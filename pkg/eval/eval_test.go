package eval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
	"github.com/arnegrim/corvid/pkg/eval"
)

func TestSmartEvaluateBareKingsIsLevel(t *testing.T) {
	// Equal (zero) material, both kings on the e-file: no check, no
	// material imbalance, and the endgame edge-distance bonus is zero
	// because the black king on e5 is three squares from every edge.
	p, err := fen.Decode("8/8/8/4k3/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	got := eval.Smart{}.Evaluate(context.Background(), p)
	assert.Zero(t, got)
}

func TestSmartEvaluateRewardsMaterial(t *testing.T) {
	// White is up a full rook.
	up, err := fen.Decode("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	even, err := fen.Decode("4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	scoreUp := eval.Smart{}.Evaluate(context.Background(), up)
	scoreEven := eval.Smart{}.Evaluate(context.Background(), even)

	assert.Greater(t, scoreUp, scoreEven)
}

func TestSmartEvaluatePenalizesCheck(t *testing.T) {
	// Black king in check from the white rook on the open e-file; same
	// material and white king square in both positions, only the rook's
	// file differs.
	checked, err := fen.Decode("4k3/8/8/8/8/8/8/K3R3 b - - 0 1")
	require.NoError(t, err)

	safe, err := fen.Decode("4k3/8/8/8/8/8/8/K2R4 b - - 0 1")
	require.NoError(t, err)

	scoreChecked := eval.Smart{}.Evaluate(context.Background(), checked)
	scoreSafe := eval.Smart{}.Evaluate(context.Background(), safe)

	assert.Less(t, scoreChecked, scoreSafe)
}

func TestUnit(t *testing.T) {
	assert.Equal(t, eval.Score(1), eval.Unit(board.White))
	assert.Equal(t, eval.Score(-1), eval.Unit(board.Black))
}
