package board

// IsSquareAttacked reports whether sq is attacked by any piece of color
// attacker in the current position. Used both to validate a king's
// destination square (castling, normal king moves) and to test for check.
func IsSquareAttacked(p *Position, sq Square, attacker Color) bool {
	// Pawns: look at the two squares a defending-color pawn would capture
	// from, and check whether an attacking pawn sits there. Equivalently,
	// step backwards along the attacker's own push direction.
	fwd := 1
	if attacker == Black {
		fwd = -1
	}
	for _, df := range [2]int{-1, 1} {
		if from, ok := sq.Step(df, -fwd); ok {
			if pc := p.PieceAt(from); pc.Type == Pawn && pc.Color == attacker {
				return true
			}
		}
	}

	it := NewKnightHopIter(sq)
	for from, ok := it.Next(); ok; from, ok = it.Next() {
		if pc := p.PieceAt(from); pc.Type == Knight && pc.Color == attacker {
			return true
		}
	}

	for _, d := range AllDirections {
		if from, ok := sq.Step(d.DF, d.DR); ok {
			if pc := p.PieceAt(from); pc.Type == King && pc.Color == attacker {
				return true
			}
		}
	}

	for _, d := range RookDirections {
		ray := NewRayIter(sq, d)
		for from, ok := ray.Next(); ok; from, ok = ray.Next() {
			pc := p.PieceAt(from)
			if !pc.IsPresent() {
				continue
			}
			if pc.Color == attacker && (pc.Type == Rook || pc.Type == Queen) {
				return true
			}
			break
		}
	}

	for _, d := range BishopDirections {
		ray := NewRayIter(sq, d)
		for from, ok := ray.Next(); ok; from, ok = ray.Next() {
			pc := p.PieceAt(from)
			if !pc.IsPresent() {
				continue
			}
			if pc.Color == attacker && (pc.Type == Bishop || pc.Type == Queen) {
				return true
			}
			break
		}
	}

	return false
}

// SeekKing returns the square of color's king. Panics if none is present: a
// position without a king is a programmer error (§7), never a runtime
// condition a caller should need to recover from.
func SeekKing(p *Position, color Color) Square {
	home := NewSquare(FileE, color.HomeRank())
	if pc := p.PieceAt(home); pc.Type == King && pc.Color == color {
		return home
	}
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if pc := p.PieceAt(sq); pc.Type == King && pc.Color == color {
			return sq
		}
	}
	panic("SeekKing: no king on board for color")
}

// IsKingInCheck reports whether color's king is currently attacked.
func IsKingInCheck(p *Position, color Color) bool {
	return IsSquareAttacked(p, SeekKing(p, color), color.Opponent())
}
