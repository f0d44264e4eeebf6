package board

import "fmt"

// MoveKind tags the variant of a user-intent Move.
type MoveKind uint8

const (
	MoveNormal MoveKind = iota
	MoveCastleKingside
	MoveCastleQueenside
	MovePromotion
)

// Move is a user-intent move: what a UCI string or a human move entry names,
// before it has been checked against a Position. Expressed as a single
// tagged struct (dense switch, no vtable) per the four variants of §3.
type Move struct {
	Kind      MoveKind
	Src, Dest Square              // valid for MoveNormal, MovePromotion
	Promotion PromotionPieceType  // valid for MovePromotion
}

func (m Move) String() string {
	switch m.Kind {
	case MoveCastleKingside:
		return "O-O"
	case MoveCastleQueenside:
		return "O-O-O"
	case MovePromotion:
		return fmt.Sprintf("%v%v%v", m.Src, m.Dest, m.Promotion)
	default:
		return fmt.Sprintf("%v%v", m.Src, m.Dest)
	}
}

// ParseMove parses a long-algebraic UCI move string ("e2e4", "a7a8q", or one
// of the four castling strings "e1g1"/"e1c1"/"e8g8"/"e8c8") against pos,
// which is consulted only to disambiguate a two-file king step from castling
// (§4.C). It does not check legality.
func ParseMove(pos *Position, str string) (Move, error) {
	runes := []rune(str)
	if len(runes) != 4 && len(runes) != 5 {
		return Move{}, fmt.Errorf("invalid move length: %q", str)
	}

	src, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid source square in %q: %w", str, err)
	}
	dest, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid dest square in %q: %w", str, err)
	}

	if piece := pos.PieceAt(src); piece.Type == King {
		switch {
		case src == E1 && dest == G1 && piece.Color == White,
			src == E8 && dest == G8 && piece.Color == Black:
			return Move{Kind: MoveCastleKingside}, nil
		case src == E1 && dest == C1 && piece.Color == White,
			src == E8 && dest == C8 && piece.Color == Black:
			return Move{Kind: MoveCastleQueenside}, nil
		}
	}

	if len(runes) == 5 {
		promo, ok := ParsePromotionPieceType(runes[4])
		if !ok {
			return Move{}, fmt.Errorf("invalid promotion piece in %q", str)
		}
		return Move{Kind: MovePromotion, Src: src, Dest: dest, Promotion: promo}, nil
	}

	return Move{Kind: MoveNormal, Src: src, Dest: dest}, nil
}

func (m Move) Equals(o Move) bool {
	return m.Kind == o.Kind && m.Src == o.Src && m.Dest == o.Dest && m.Promotion == o.Promotion
}
