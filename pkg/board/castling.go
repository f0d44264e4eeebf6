package board

import "strings"

// Castling is a 4-bit castling-rights field. Bit layout fixed by the core
// position model: White-kingside=0b1000, White-queenside=0b0100,
// Black-kingside=0b0010, Black-queenside=0b0001.
type Castling uint8

const (
	BlackQueenside Castling = 0b0001
	BlackKingside  Castling = 0b0010
	WhiteQueenside Castling = 0b0100
	WhiteKingside  Castling = 0b1000
)

const (
	ZeroCastling Castling = 0
	NumCastling  Castling = 16
	AllCastling  Castling = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// Has reports whether all bits of mask are set.
func (c Castling) Has(mask Castling) bool {
	return c&mask == mask
}

// HasKingside reports whether color still has the right to castle kingside.
func (c Castling) HasKingside(color Color) bool {
	return c.Has(color.CastleKingsideBit())
}

// HasQueenside reports whether color still has the right to castle queenside.
func (c Castling) HasQueenside(color Color) bool {
	return c.Has(color.CastleQueensideBit())
}

func (c Castling) String() string {
	if c == 0 {
		return "-"
	}

	var sb strings.Builder
	if c.Has(WhiteKingside) {
		sb.WriteString("K")
	}
	if c.Has(WhiteQueenside) {
		sb.WriteString("Q")
	}
	if c.Has(BlackKingside) {
		sb.WriteString("k")
	}
	if c.Has(BlackQueenside) {
		sb.WriteString("q")
	}
	return sb.String()
}
