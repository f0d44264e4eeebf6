package search

import (
	"context"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/eval"
	"github.com/seekerror/stdlib/pkg/util/contextx"
)

// Negamax implements a unified negamax search with alpha-beta pruning and
// transposition-table-assisted move ordering (§4.I). Pseudo-code:
//
//	function negamax(node, depth, α, β, color) is
//	    if depth = 0 or node is terminal then
//	        return color * evaluate(node)
//	    value := −∞
//	    for each child of node do
//	        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
//	        α := max(α, value)
//	        if α ≥ β then
//	            break (* cutoff *)
//	    return value
//
// Cancellation is only checked between root children: a search that has
// already committed to exploring a subtree runs it to completion, trading a
// bounded worst-case overrun for not discarding partially-explored deep
// work on every recursive call.
type Negamax struct {
	Eval eval.Evaluator
}

func (n Negamax) Search(ctx context.Context, g *board.Game, tt *TranspositionTable, noise Noise, depth int) (uint64, eval.Score, []board.LegalMove, error) {
	run := &runNegamax{eval: n.Eval, tt: tt, g: g}

	moves := board.GenerateLegalMoves(g.Position())
	if len(moves) == 0 {
		result := g.AdjudicateNoLegalMoves()
		if result.Reason == board.Checkmate {
			return 0, eval.NegInf, nil, nil
		}
		return 0, 0, nil, nil
	}
	orderMoves(moves, tt, g.Hash())

	alpha, beta := eval.NegInf, eval.Inf
	var best eval.Score = eval.NegInf
	var pv []board.LegalMove

	for _, m := range moves {
		if contextx.IsCancelled(ctx) {
			return run.nodes, eval.Inf, nil, ErrHalted
		}

		g.PushMove(m)
		childScore, childPV := run.search(depth-1, beta.Negate(), alpha.Negate())
		g.PopMove()

		score := childScore.Negate()
		if noise != nil {
			score += noise.Sample()
		}

		if score > best {
			best = score
			pv = append([]board.LegalMove{m}, childPV...)
		}
		if best > alpha {
			alpha = best
		}
	}

	if tt != nil && len(pv) > 0 {
		tt.Write(g.Hash(), ExactBound, depth, best, pv[0].ToMove(g.Turn()))
	}

	return run.nodes, best, pv, nil
}

type runNegamax struct {
	eval  eval.Evaluator
	tt    *TranspositionTable
	g     *board.Game
	nodes uint64
}

func (m *runNegamax) search(depth int, alpha, beta eval.Score) (eval.Score, []board.LegalMove) {
	if m.tt != nil {
		if bound, d, score, _, ok := m.tt.Read(m.g.Hash()); ok && d >= depth && bound == ExactBound {
			return score, nil
		}
	}

	if result := m.g.Result(); result.Outcome == board.Draw {
		return 0, nil
	}

	if depth == 0 {
		m.nodes++
		score := m.eval.Evaluate(context.Background(), m.g.Position())
		if m.tt != nil {
			m.tt.Write(m.g.Hash(), ExactBound, 0, score, board.Move{})
		}
		return score, nil
	}

	moves := board.GenerateLegalMoves(m.g.Position())
	if len(moves) == 0 {
		result := m.g.AdjudicateNoLegalMoves()
		if result.Reason == board.Checkmate {
			return eval.NegInf, nil
		}
		return 0, nil
	}
	orderMoves(moves, m.tt, m.g.Hash())

	m.nodes++

	bound := ExactBound
	var pv []board.LegalMove

	for _, move := range moves {
		m.g.PushMove(move)
		score, rem := m.search(depth-1, beta.Negate(), alpha.Negate())
		m.g.PopMove()

		score = score.Negate()
		if score > alpha {
			alpha = score
			pv = append([]board.LegalMove{move}, rem...)
		}
		if alpha >= beta {
			bound = LowerBound
			break
		}
	}

	if m.tt != nil {
		var best board.Move
		if len(pv) > 0 {
			best = pv[0].ToMove(m.g.Turn())
		}
		m.tt.Write(m.g.Hash(), bound, depth, alpha, best)
	}

	return alpha, pv
}

// orderMoves sorts moves in place: the transposition table's cached best
// move for hash first (if present among them), then captures ordered by
// the value of the piece captured. Moves of equal priority keep their
// generation order.
func orderMoves(moves []board.LegalMove, tt *TranspositionTable, hash board.ZobristHash) {
	var ttMove board.Move
	haveTTMove := false
	if tt != nil {
		if _, _, _, m, ok := tt.Read(hash); ok {
			ttMove, haveTTMove = m, true
		}
	}

	priority := func(m board.LegalMove) int {
		if haveTTMove && m.Dest == ttMove.Dest && m.Src == ttMove.Src {
			return 1000
		}
		if m.Captured != board.NoPiece {
			return 100 + int(m.Captured)
		}
		return 0
	}

	for i := 1; i < len(moves); i++ {
		for j := i; j > 0 && priority(moves[j]) > priority(moves[j-1]); j-- {
			moves[j], moves[j-1] = moves[j-1], moves[j]
		}
	}
}
