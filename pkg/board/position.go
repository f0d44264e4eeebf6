package board

import (
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Placement is a single piece placed on a square, as parsed from a FEN
// piece-placement field.
type Placement struct {
	Square Square
	Piece  Piece
}

// Position is the central entity: an 8x8 mailbox board, side to move,
// castling rights and en-passant target (§3). Value-typed: created from FEN
// or by cloning; MakeMove mutates in place, UnmakeMove restores it exactly.
type Position struct {
	squares   [NumSquares]Piece
	active    Color
	castling  Castling
	enPassant lang.Optional[Square]
}

// NewPosition builds a Position from an explicit piece placement list plus
// metadata. Used by fen.Decode; exported so other front-ends (perft fixtures,
// tests) can build positions without going through FEN text.
func NewPosition(placements []Placement, active Color, castling Castling, enPassant lang.Optional[Square]) *Position {
	p := &Position{active: active, castling: castling, enPassant: enPassant}
	for _, pl := range placements {
		p.squares[pl.Square] = pl.Piece
	}
	return p
}

// Clone returns an independent copy. Position is a plain value type (array,
// not slice, fields), so a Go struct assignment is already a deep copy; Clone
// exists for readability at call sites mirroring the teacher's Board.Fork.
func (p *Position) Clone() *Position {
	cp := *p
	return &cp
}

func (p *Position) ActivePlayer() Color {
	return p.active
}

func (p *Position) Castling() Castling {
	return p.castling
}

func (p *Position) EnPassant() lang.Optional[Square] {
	return p.enPassant
}

// PieceAt returns the piece on sq, or the zero Piece (NoPiece) if empty.
func (p *Position) PieceAt(sq Square) Piece {
	return p.squares[sq]
}

func (p *Position) setPieceAt(sq Square, piece Piece) {
	p.squares[sq] = piece
}

func (p *Position) clearSquare(sq Square) {
	p.squares[sq] = Piece{}
}

// movePiece requires a piece at src and overwrites dest, leaving src empty.
func (p *Position) movePiece(src, dest Square) {
	piece := p.squares[src]
	if !piece.IsPresent() {
		panic("movePiece: no piece at source square")
	}
	p.squares[dest] = piece
	p.squares[src] = Piece{}
}

func (p *Position) HasKingsideRights(c Color) bool {
	return p.castling.HasKingside(c)
}

func (p *Position) HasQueensideRights(c Color) bool {
	return p.castling.HasQueenside(c)
}

// MakeMove applies a validated LegalMove in place, flipping the side to move.
// It is the sole mutator of board state during search; paired exactly with
// UnmakeMove, which an identical LegalMove value restores via (§9).
func (p *Position) MakeMove(m LegalMove) {
	mover := p.active
	switch m.Kind {
	case LegalNormal:
		p.movePiece(m.Src, m.Dest)
		p.castling ^= m.CastleMask
		p.enPassant = lang.None[Square]()
	case LegalDoublePawnPush:
		src := NewSquare(m.File, mover.PawnStartRank())
		dest := NewSquare(m.File, mover.DoublePushRank())
		p.movePiece(src, dest)
		p.enPassant = lang.Some(NewSquare(m.File, mover.HopRank()))
	case LegalCastleKingside:
		home := mover.HomeRank()
		p.movePiece(NewSquare(FileE, home), NewSquare(FileG, home))
		p.movePiece(NewSquare(FileH, home), NewSquare(FileF, home))
		p.castling ^= m.CastleMask
		p.enPassant = lang.None[Square]()
	case LegalCastleQueenside:
		home := mover.HomeRank()
		p.movePiece(NewSquare(FileE, home), NewSquare(FileC, home))
		p.movePiece(NewSquare(FileA, home), NewSquare(FileD, home))
		p.castling ^= m.CastleMask
		p.enPassant = lang.None[Square]()
	case LegalPromotion:
		p.clearSquare(m.Src)
		p.setPieceAt(m.Dest, Piece{Type: m.Promotion, Color: mover})
		p.castling ^= m.CastleMask
		p.enPassant = lang.None[Square]()
	case LegalEnPassant:
		captured := NewSquare(m.Dest.File(), m.Src.Rank())
		p.movePiece(m.Src, m.Dest)
		p.clearSquare(captured)
		p.enPassant = lang.None[Square]()
	}
	p.active = mover.Opponent()
}

// UnmakeMove exactly reverses the LegalMove last passed to MakeMove. m must
// be the identical value MakeMove was called with -- its Captured and
// PrevEnPassant fields are what make the reversal exact without external
// snapshotting.
func (p *Position) UnmakeMove(m LegalMove) {
	mover := p.active.Opponent()
	switch m.Kind {
	case LegalNormal:
		p.movePiece(m.Dest, m.Src)
		if m.Captured != NoPiece {
			p.setPieceAt(m.Dest, Piece{Type: m.Captured, Color: mover.Opponent()})
		}
		p.castling ^= m.CastleMask
	case LegalDoublePawnPush:
		src := NewSquare(m.File, mover.PawnStartRank())
		dest := NewSquare(m.File, mover.DoublePushRank())
		p.movePiece(dest, src)
	case LegalCastleKingside:
		home := mover.HomeRank()
		p.movePiece(NewSquare(FileG, home), NewSquare(FileE, home))
		p.movePiece(NewSquare(FileF, home), NewSquare(FileH, home))
		p.castling ^= m.CastleMask
	case LegalCastleQueenside:
		home := mover.HomeRank()
		p.movePiece(NewSquare(FileC, home), NewSquare(FileE, home))
		p.movePiece(NewSquare(FileD, home), NewSquare(FileA, home))
		p.castling ^= m.CastleMask
	case LegalPromotion:
		p.clearSquare(m.Dest)
		p.setPieceAt(m.Src, Piece{Type: Pawn, Color: mover})
		if m.Captured != NoPiece {
			p.setPieceAt(m.Dest, Piece{Type: m.Captured, Color: mover.Opponent()})
		}
		p.castling ^= m.CastleMask
	case LegalEnPassant:
		captured := NewSquare(m.Dest.File(), m.Src.Rank())
		p.movePiece(m.Dest, m.Src)
		p.setPieceAt(captured, Piece{Type: Pawn, Color: mover.Opponent()})
	}
	p.enPassant = m.PrevEnPassant
	p.active = mover
}

// String renders the board with standard Unicode chess glyphs, rank 8 down
// to rank 1, file a through h, matching the original source's printable form.
func (p *Position) String() string {
	var sb strings.Builder
	for r := int(Rank8); r >= int(Rank1); r-- {
		for f := ZeroFile; f < NumFiles; f++ {
			sb.WriteString(p.PieceAt(NewSquare(f, Rank(r))).String())
			if f < NumFiles-1 {
				sb.WriteString(" ")
			}
		}
		if r > int(Rank1) {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
