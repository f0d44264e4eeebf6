package board

import (
	"fmt"

	"github.com/seekerror/stdlib/pkg/lang"
)

// LegalMoveKind tags the variant of a validated, reversible LegalMove.
type LegalMoveKind uint8

const (
	LegalNormal LegalMoveKind = iota
	LegalDoublePawnPush
	LegalCastleKingside
	LegalCastleQueenside
	LegalPromotion
	LegalEnPassant
)

// LegalMove is a move that has been checked legal against the Position that
// produced it and carries the data needed to make and exactly unmake it
// in-place (§3, §9). Expressed as a single tagged struct -- a dense switch
// over Kind, no per-variant dynamic dispatch or allocation -- so only the
// fields relevant to Kind are meaningful.
//
// PrevEnPassant closes the §9 open question: unlike the source this is
// rewritten from, unmake_move here restores the en-passant target exactly,
// because every LegalMove snapshots it at construction time.
type LegalMove struct {
	Kind LegalMoveKind

	Src, Dest Square // Normal, Promotion, EnPassant
	File      File   // DoublePawnPush: the pushed pawn's file

	CastleMask Castling  // Normal, CastleKingside, CastleQueenside, Promotion
	Captured   PieceType // Normal, Promotion: NoPiece if none
	Promotion  PieceType // Promotion: the piece type promoted to

	PrevEnPassant lang.Optional[Square]
}

// ToMove converts a LegalMove back into the user-intent Move that produced
// it. mover is the color that made the move (Position.ActivePlayer() before
// MakeMove), needed to reconstruct the implicit src/dest of a DoublePawnPush.
func (m LegalMove) ToMove(mover Color) Move {
	switch m.Kind {
	case LegalCastleKingside:
		return Move{Kind: MoveCastleKingside}
	case LegalCastleQueenside:
		return Move{Kind: MoveCastleQueenside}
	case LegalPromotion:
		promo, _ := PromotionPieceTypeFromPieceType(m.Promotion)
		return Move{Kind: MovePromotion, Src: m.Src, Dest: m.Dest, Promotion: promo}
	case LegalEnPassant:
		return Move{Kind: MoveNormal, Src: m.Src, Dest: m.Dest}
	case LegalDoublePawnPush:
		return Move{
			Kind: MoveNormal,
			Src:  NewSquare(m.File, mover.PawnStartRank()),
			Dest: NewSquare(m.File, mover.DoublePushRank()),
		}
	default:
		return Move{Kind: MoveNormal, Src: m.Src, Dest: m.Dest}
	}
}

func (m LegalMove) String() string {
	switch m.Kind {
	case LegalCastleKingside:
		return "O-O"
	case LegalCastleQueenside:
		return "O-O-O"
	case LegalDoublePawnPush:
		return fmt.Sprintf("%vx2", m.File)
	case LegalPromotion:
		return fmt.Sprintf("%v%v=%v", m.Src, m.Dest, m.Promotion)
	default:
		return fmt.Sprintf("%v%v", m.Src, m.Dest)
	}
}
