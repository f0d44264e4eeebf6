package search

import (
	"math/rand"

	"github.com/arnegrim/corvid/pkg/eval"
)

// RootNoise perturbs root move scores by up to +/-10 centipawns (0.1 pawn)
// so that ties among near-equal top moves aren't always broken in move
// generation order. Applied only at the search root (§4.I): deeper nodes
// must stay deterministic for alpha-beta pruning and the transposition
// table to behave correctly.
type RootNoise struct {
	r *rand.Rand
}

func NewRootNoise(seed int64) *RootNoise {
	return &RootNoise{r: rand.New(rand.NewSource(seed))}
}

func (n *RootNoise) Sample() eval.Score {
	return eval.Score(n.r.Intn(21) - 10)
}
