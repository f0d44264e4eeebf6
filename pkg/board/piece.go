package board

// PieceType represents a chess piece kind, without color.
type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	ZeroPieceType PieceType = Pawn
	NumPieceTypes PieceType = King + 1
)

func ParsePieceType(r rune) (PieceType, bool) {
	switch r {
	case 'p', 'P':
		return Pawn, true
	case 'n', 'N':
		return Knight, true
	case 'b', 'B':
		return Bishop, true
	case 'r', 'R':
		return Rook, true
	case 'q', 'Q':
		return Queen, true
	case 'k', 'K':
		return King, true
	default:
		return NoPiece, false
	}
}

func (p PieceType) IsValid() bool {
	return Pawn <= p && p <= King
}

func (p PieceType) String() string {
	switch p {
	case NoPiece:
		return "-"
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return "?"
	}
}

// PromotionPieceType is the subset of PieceType a pawn may promote to.
type PromotionPieceType uint8

const (
	PromotionKnight PromotionPieceType = iota
	PromotionBishop
	PromotionRook
	PromotionQueen
)

// ToPieceType converts a PromotionPieceType to the corresponding PieceType.
func (p PromotionPieceType) ToPieceType() PieceType {
	switch p {
	case PromotionKnight:
		return Knight
	case PromotionBishop:
		return Bishop
	case PromotionRook:
		return Rook
	case PromotionQueen:
		return Queen
	default:
		panic("invalid promotion piece type")
	}
}

// PromotionPieceTypeFromPieceType converts a PieceType into a PromotionPieceType.
// Pawn and King are not reachable and return false.
func PromotionPieceTypeFromPieceType(p PieceType) (PromotionPieceType, bool) {
	switch p {
	case Knight:
		return PromotionKnight, true
	case Bishop:
		return PromotionBishop, true
	case Rook:
		return PromotionRook, true
	case Queen:
		return PromotionQueen, true
	default:
		return 0, false
	}
}

func ParsePromotionPieceType(r rune) (PromotionPieceType, bool) {
	switch r {
	case 'n', 'N':
		return PromotionKnight, true
	case 'b', 'B':
		return PromotionBishop, true
	case 'r', 'R':
		return PromotionRook, true
	case 'q', 'Q':
		return PromotionQueen, true
	default:
		return 0, false
	}
}

func (p PromotionPieceType) String() string {
	switch p {
	case PromotionKnight:
		return "n"
	case PromotionBishop:
		return "b"
	case PromotionRook:
		return "r"
	case PromotionQueen:
		return "q"
	default:
		return "?"
	}
}

// Piece is a (PieceType, Color) pair.
type Piece struct {
	Type  PieceType
	Color Color
}

// IsPresent reports whether this represents an actual piece, as opposed to
// the zero value standing in for an empty square.
func (p Piece) IsPresent() bool {
	return p.Type != NoPiece
}

// Unicode glyphs for printable board rendering, indexed [Color][PieceType].
var pieceGlyph = [NumColors][NumPieceTypes]rune{
	White: {Pawn: '♙', Knight: '♘', Bishop: '♗', Rook: '♖', Queen: '♕', King: '♔'},
	Black: {Pawn: '♟', Knight: '♞', Bishop: '♝', Rook: '♜', Queen: '♛', King: '♚'},
}

func (p Piece) String() string {
	if !p.IsPresent() {
		return "."
	}
	return string(pieceGlyph[p.Color][p.Type])
}
