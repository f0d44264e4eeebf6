package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnegrim/corvid/pkg/board/fen"
	"github.com/arnegrim/corvid/pkg/engine"
	"github.com/arnegrim/corvid/pkg/eval"
	"github.com/arnegrim/corvid/pkg/search"
	"github.com/arnegrim/corvid/pkg/search/searchctl"
	"github.com/seekerror/stdlib/pkg/lang"
)

func newEngine(ctx context.Context) *engine.Engine {
	s := search.Negamax{Eval: eval.Smart{}}
	return engine.New(ctx, "test-engine", "test", s, engine.WithZobrist(1))
}

func TestEngineStartsAtInitialPosition(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	assert.Equal(t, fen.Initial, e.Position())
}

func TestEngineResetToArbitraryFEN(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	fenStr := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	require.NoError(t, e.Reset(ctx, fenStr))

	assert.Equal(t, fenStr, e.Position())
}

func TestEngineRejectsMalformedFEN(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	err := e.Reset(ctx, "not-a-fen")
	assert.Error(t, err)
}

func TestEngineMoveAndTakeBack(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, fen.Initial, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, fen.Initial, e.Position())
}

func TestEngineRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	err := e.Move(ctx, "e2e5")
	assert.Error(t, err)
}

func TestEngineAnalyzeProducesPV(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	opt := searchctl.Options{DepthLimit: lang.Some(uint(2))}
	out, err := e.Analyze(ctx, opt)
	require.NoError(t, err)

	var last search.PV
	for pv := range out {
		last = pv
	}
	assert.NotEmpty(t, last.Moves)
}

func TestEngineAnalyzeRejectsConcurrentSearch(t *testing.T) {
	ctx := context.Background()
	e := newEngine(ctx)

	_, err := e.Analyze(ctx, searchctl.Options{DepthLimit: lang.Some(uint(3))})
	require.NoError(t, err)

	_, err = e.Analyze(ctx, searchctl.Options{})
	assert.Error(t, err)

	_, _ = e.Halt(ctx)
}
