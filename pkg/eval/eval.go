// Package eval contains static position evaluation.
package eval

import (
	"context"

	"github.com/arnegrim/corvid/pkg/board"
)

// Evaluator is a static position evaluator: it scores a position from the
// point of view of the side to move, without searching further.
type Evaluator interface {
	Evaluate(ctx context.Context, p *board.Position) Score
}

// Smart is the engine's default evaluator: material plus positional bonuses
// for pawn advancement, knight centralization, king safety and (in the
// endgame) driving the enemy king to the edge.
type Smart struct{}

func (Smart) Evaluate(ctx context.Context, p *board.Position) Score {
	mover := p.ActivePlayer()

	var score Score
	if board.IsKingInCheck(p, mover) {
		score -= 30
	}

	var myMaterial, oppMaterial Score
	for sq := board.ZeroSquare; sq < board.NumSquares; sq++ {
		piece := p.PieceAt(sq)
		if !piece.IsPresent() {
			continue
		}
		value := pieceValue(sq, piece)
		if piece.Color == mover {
			myMaterial += value
		} else {
			oppMaterial += value
		}
	}
	score += myMaterial - oppMaterial

	if myMaterial+oppMaterial < 3300 {
		score += endgameBonus(p)
	} else {
		score += middlegameBonus(p)
	}

	return score
}

// pieceValue returns a piece's positional value in centipawns: flat for
// bishop/rook/queen, shape-dependent for pawns and knights, and zero for the
// king (its safety is scored separately).
func pieceValue(sq board.Square, piece board.Piece) Score {
	switch piece.Type {
	case board.Pawn:
		return pawnValue(sq, piece.Color)
	case board.Knight:
		return knightValue(sq)
	case board.Bishop:
		return 310
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	default:
		return 0
	}
}

// knightValue rewards centralization: distance to the nearer edge maps to a
// jump count, scaled into centipawns.
func knightValue(sq board.Square) Score {
	dx := minInt(sq.File().V(), 7-sq.File().V())
	dy := minInt(sq.Rank().V(), 7-sq.Rank().V())
	var jumps int
	switch {
	case dx == 0 && dy == 0:
		jumps = 2
	case (dx == 1 && dy == 0) || (dx == 0 && dy == 1):
		jumps = 3
	case (dx == 1 && dy == 1) || (dx == 0 && dy == 2) || (dx == 2 && dy == 0) || (dx == 0 && dy == 3) || (dx == 3 && dy == 0):
		jumps = 4
	case (dx == 1 && dy == 2) || (dx == 2 && dy == 1) || (dx == 1 && dy == 3) || (dx == 3 && dy == 1):
		jumps = 6
	default:
		jumps = 8
	}
	return 250 + 10*Score(jumps)
}

// pawnValue rewards advancement toward promotion and central files.
func pawnValue(sq board.Square, color board.Color) Score {
	dist := abs32(sq.Rank().V() - color.PawnStartRank().V())
	var distBonus Score
	switch dist {
	case 0:
		distBonus = 0
	case 1:
		distBonus = 10
	case 2:
		distBonus = 20
	case 3:
		distBonus = 30
	case 4:
		distBonus = 40
	default:
		distBonus = 220
	}

	var fileBonus Score
	switch sq.File() {
	case board.FileA, board.FileH:
		fileBonus = 0
	case board.FileB, board.FileG:
		fileBonus = 5
	case board.FileC, board.FileF:
		fileBonus = 10
	default: // FileD, FileE
		fileBonus = 20
	}

	return 100 + distBonus + fileBonus
}

// middlegameBonus scores the side-to-move's own king safety: a penalty for
// sitting in the center, and a bonus for a pawn shield while it is still on
// its home rank.
func middlegameBonus(p *board.Position) Score {
	mover := p.ActivePlayer()
	kingSq := board.SeekKing(p, mover)

	var score Score
	switch kingSq.File() {
	case board.FileE, board.FileD:
		score -= 20
	case board.FileF:
		score -= 10
	default:
		score += 20
	}

	if kingSq.Rank() == mover.HomeRank() {
		shieldRank := mover.PawnStartRank()
		var shield int
		for _, df := range [3]int{-1, 0, 1} {
			sq, ok := board.NewSquare(kingSq.File(), shieldRank).Step(df, 0)
			if !ok {
				continue
			}
			if piece := p.PieceAt(sq); piece.Type == board.Pawn && piece.Color == mover {
				shield++
			}
		}
		switch {
		case shield == 1:
			score += 30
		case shield >= 2:
			score += 100
		}
	}

	return score
}

// endgameBonus rewards driving the opponent's king toward the edge of the
// board once enough material has been traded off.
func endgameBonus(p *board.Position) Score {
	kingSq := board.SeekKing(p, p.ActivePlayer().Opponent())
	dx := minInt(kingSq.File().V(), 7-kingSq.File().V())
	dy := minInt(kingSq.Rank().V(), 7-kingSq.Rank().V())
	return Score(3-minInt(dx, dy)) * 10
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func abs32(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
