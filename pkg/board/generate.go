package board

// castleRightsMaskForSquare returns the castling bits that touching sq would
// strip: a king's home square strips both of its color's rights, a rook's
// home corner strips that one right. It does not consult which rights are
// currently held -- callers must intersect with the position's held rights
// so a right already lost is never XORed back in.
func castleRightsMaskForSquare(sq Square) Castling {
	switch sq {
	case E1:
		return WhiteKingside | WhiteQueenside
	case E8:
		return BlackKingside | BlackQueenside
	case H1:
		return WhiteKingside
	case A1:
		return WhiteQueenside
	case H8:
		return BlackKingside
	case A8:
		return BlackQueenside
	default:
		return ZeroCastling
	}
}

// castleMaskForMove returns the subset of p's currently-held castling rights
// that a move touching src and dest strips, gated against p.Castling() so a
// right already lost is never reintroduced. Moving a piece off, or
// capturing a piece on, either square has the same effect, so MakeMove's
// CastleMask is computed once from the move's src and dest together.
func castleMaskForMove(p *Position, src, dest Square) Castling {
	touched := castleRightsMaskForSquare(src) | castleRightsMaskForSquare(dest)
	return touched & p.Castling()
}

// CanCastleKingside reports whether color currently satisfies all three
// castling preconditions on the kingside: retained rights, an empty path
// between king and rook, and no square the king crosses (including its
// start and destination) under attack.
func CanCastleKingside(p *Position, color Color) bool {
	if !p.HasKingsideRights(color) {
		return false
	}
	home := color.HomeRank()
	e, f, g, h := NewSquare(FileE, home), NewSquare(FileF, home), NewSquare(FileG, home), NewSquare(FileH, home)
	if p.PieceAt(f).IsPresent() || p.PieceAt(g).IsPresent() {
		return false
	}
	if rook := p.PieceAt(h); rook.Type != Rook || rook.Color != color {
		return false
	}
	opp := color.Opponent()
	return !IsSquareAttacked(p, e, opp) && !IsSquareAttacked(p, f, opp) && !IsSquareAttacked(p, g, opp)
}

// CanCastleQueenside is CanCastleKingside's mirror. The b-file square is
// part of the empty-path requirement but, unlike c and d, the king never
// crosses it, so it is excluded from the attack check.
func CanCastleQueenside(p *Position, color Color) bool {
	if !p.HasQueensideRights(color) {
		return false
	}
	home := color.HomeRank()
	e, d, c, b, a := NewSquare(FileE, home), NewSquare(FileD, home), NewSquare(FileC, home), NewSquare(FileB, home), NewSquare(FileA, home)
	if p.PieceAt(d).IsPresent() || p.PieceAt(c).IsPresent() || p.PieceAt(b).IsPresent() {
		return false
	}
	if rook := p.PieceAt(a); rook.Type != Rook || rook.Color != color {
		return false
	}
	opp := color.Opponent()
	return !IsSquareAttacked(p, e, opp) && !IsSquareAttacked(p, d, opp) && !IsSquareAttacked(p, c, opp)
}

// pseudoLegalDestinations yields the candidate destination squares for the
// piece on src, ignoring whether the resulting position leaves the mover's
// own king in check. Captures of the mover's own pieces are excluded;
// en-passant and castling destinations are handled separately by their
// dedicated generators.
func pseudoLegalDestinations(p *Position, src Square) []Square {
	piece := p.PieceAt(src)
	var dests []Square

	switch piece.Type {
	case Knight:
		it := NewKnightHopIter(src)
		for sq, ok := it.Next(); ok; sq, ok = it.Next() {
			if occ := p.PieceAt(sq); !occ.IsPresent() || occ.Color != piece.Color {
				dests = append(dests, sq)
			}
		}
	case King:
		for _, d := range AllDirections {
			sq, ok := src.Step(d.DF, d.DR)
			if !ok {
				continue
			}
			if occ := p.PieceAt(sq); !occ.IsPresent() || occ.Color != piece.Color {
				dests = append(dests, sq)
			}
		}
	case Rook, Bishop, Queen:
		var dirs []Direction
		switch piece.Type {
		case Rook:
			dirs = RookDirections[:]
		case Bishop:
			dirs = BishopDirections[:]
		case Queen:
			dirs = AllDirections[:]
		}
		for _, d := range dirs {
			ray := NewRayIter(src, d)
			for sq, ok := ray.Next(); ok; sq, ok = ray.Next() {
				occ := p.PieceAt(sq)
				if !occ.IsPresent() {
					dests = append(dests, sq)
					continue
				}
				if occ.Color != piece.Color {
					dests = append(dests, sq)
				}
				break
			}
		}
	case Pawn:
		fwd := 1
		if piece.Color == Black {
			fwd = -1
		}
		if sq, ok := src.Step(0, fwd); ok && !p.PieceAt(sq).IsPresent() {
			dests = append(dests, sq)
			if src.Rank() == piece.Color.PawnStartRank() {
				if sq2, ok := src.Step(0, 2*fwd); ok && !p.PieceAt(sq2).IsPresent() {
					dests = append(dests, sq2)
				}
			}
		}
		for _, df := range [2]int{-1, 1} {
			sq, ok := src.Step(df, fwd)
			if !ok {
				continue
			}
			if occ := p.PieceAt(sq); occ.IsPresent() && occ.Color != piece.Color {
				dests = append(dests, sq)
			}
		}
	}
	return dests
}

// promoteToLegal checks whether making a pseudo-legal src->dest move leaves
// the mover's own king safe, and if so returns the fully-populated LegalMove
// (§4.E's pseudo-legal-to-legal promotion procedure):
//  1. snapshot the captured piece and prior en-passant target
//  2. make the move on a scratch copy
//  3. reject if the mover's king is now attacked
//  4. compute the castling-rights mask the move strips
//  5. return the reversible LegalMove
func promoteToLegal(p *Position, src, dest Square, kind LegalMoveKind, promo PieceType) (LegalMove, bool) {
	mover := p.ActivePlayer()
	captured := p.PieceAt(dest).Type

	m := LegalMove{
		Kind:          kind,
		Src:           src,
		Dest:          dest,
		File:          src.File(),
		Captured:      captured,
		Promotion:     promo,
		CastleMask:    castleMaskForMove(p, src, dest),
		PrevEnPassant: p.EnPassant(),
	}

	scratch := p.Clone()
	scratch.MakeMove(m)
	if IsKingInCheck(scratch, mover) {
		return LegalMove{}, false
	}
	return m, true
}

// GenerateLegalMoves returns every legal move available to the side to move.
func GenerateLegalMoves(p *Position) []LegalMove {
	mover := p.ActivePlayer()
	var moves []LegalMove

	for src := ZeroSquare; src < NumSquares; src++ {
		piece := p.PieceAt(src)
		if !piece.IsPresent() || piece.Color != mover {
			continue
		}

		if piece.Type == Pawn {
			moves = append(moves, generatePawnMoves(p, src)...)
			continue
		}

		for _, dest := range pseudoLegalDestinations(p, src) {
			if m, ok := promoteToLegal(p, src, dest, LegalNormal, NoPiece); ok {
				moves = append(moves, m)
			}
		}

		if piece.Type == King {
			if CanCastleKingside(p, mover) {
				moves = append(moves, legalCastle(p, mover, LegalCastleKingside))
			}
			if CanCastleQueenside(p, mover) {
				moves = append(moves, legalCastle(p, mover, LegalCastleQueenside))
			}
		}
	}

	return moves
}

func legalCastle(p *Position, mover Color, kind LegalMoveKind) LegalMove {
	home := mover.HomeRank()
	src := NewSquare(FileE, home)
	dest := NewSquare(FileG, home)
	if kind == LegalCastleQueenside {
		dest = NewSquare(FileC, home)
	}
	return LegalMove{
		Kind:          kind,
		Src:           src,
		Dest:          dest,
		Captured:      NoPiece,
		CastleMask:    castleRightsMaskForSquare(src) & p.Castling(),
		PrevEnPassant: p.EnPassant(),
	}
}

func generatePawnMoves(p *Position, src Square) []LegalMove {
	mover := p.ActivePlayer()
	var moves []LegalMove

	for _, dest := range pseudoLegalDestinations(p, src) {
		if IsPawnPromotion(dest, mover) {
			for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
				if m, ok := promoteToLegal(p, src, dest, LegalPromotion, pt); ok {
					moves = append(moves, m)
				}
			}
			continue
		}
		if abs(dest.Rank().V()-src.Rank().V()) == 2 {
			if m, ok := promoteToLegal(p, src, dest, LegalDoublePawnPush, NoPiece); ok {
				moves = append(moves, m)
			}
			continue
		}
		if m, ok := promoteToLegal(p, src, dest, LegalNormal, NoPiece); ok {
			moves = append(moves, m)
		}
	}

	if ep, ok := p.EnPassant().V(); ok {
		for _, df := range [2]int{-1, 1} {
			fwd := 1
			if mover == Black {
				fwd = -1
			}
			if dest, stepOk := src.Step(df, fwd); stepOk && dest == ep {
				if m, promOk := promoteToLegal(p, src, dest, LegalEnPassant, NoPiece); promOk {
					moves = append(moves, m)
				}
			}
		}
	}

	return moves
}

// HasLegalMoves reports whether the side to move has at least one legal
// move, short-circuiting a full GenerateLegalMoves scan. Used by
// GetGameState for the cheaper stalemate/checkmate test.
func HasLegalMoves(p *Position) bool {
	mover := p.ActivePlayer()
	for src := ZeroSquare; src < NumSquares; src++ {
		piece := p.PieceAt(src)
		if !piece.IsPresent() || piece.Color != mover {
			continue
		}
		if piece.Type == Pawn {
			if len(generatePawnMoves(p, src)) > 0 {
				return true
			}
			continue
		}
		for _, dest := range pseudoLegalDestinations(p, src) {
			if _, ok := promoteToLegal(p, src, dest, LegalNormal, NoPiece); ok {
				return true
			}
		}
	}
	return false
}

// GameState classifies a position by whether the side to move has legal
// moves and is in check.
type GameState uint8

const (
	StateInProgress GameState = iota
	StateCheckmate
	StateStalemate
)

func (s GameState) String() string {
	switch s {
	case StateCheckmate:
		return "checkmate"
	case StateStalemate:
		return "stalemate"
	default:
		return "in progress"
	}
}

// GetGameState classifies p from the mover's point of view. It does not
// detect draws by repetition, the fifty-move rule, or insufficient
// material -- those are tracked by Game, not Position (§K).
func GetGameState(p *Position) GameState {
	if HasLegalMoves(p) {
		return StateInProgress
	}
	if IsKingInCheck(p, p.ActivePlayer()) {
		return StateCheckmate
	}
	return StateStalemate
}
