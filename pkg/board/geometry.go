package board

// Direction is a (df, dr) file/rank step.
type Direction struct {
	DF, DR int
}

// Rook, bishop and combined directions, in the order attack detection and
// move generation walk them.
var (
	RookDirections   = [4]Direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	BishopDirections = [4]Direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	AllDirections    = [8]Direction{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

	KnightHops = [8]Direction{
		{1, 2}, {2, 1}, {2, -1}, {1, -2},
		{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
	}
)

// RayIter is a stateful, allocation-free cursor that yields successive
// squares along a direction from (exclusive of) a starting square, until it
// runs off the board.
type RayIter struct {
	cur Square
	dir Direction
	ok  bool
}

// NewRayIter starts a ray from src stepping by dir.
func NewRayIter(src Square, dir Direction) RayIter {
	return RayIter{cur: src, dir: dir, ok: true}
}

// Next returns the next square on the ray, if any.
func (it *RayIter) Next() (Square, bool) {
	if !it.ok {
		return 0, false
	}
	sq, ok := it.cur.Step(it.dir.DF, it.dir.DR)
	if !ok {
		it.ok = false
		return 0, false
	}
	it.cur = sq
	return sq, true
}

// KnightHopIter yields the in-board subset of the eight knight hops from src.
type KnightHopIter struct {
	src Square
	i   int
}

func NewKnightHopIter(src Square) KnightHopIter {
	return KnightHopIter{src: src}
}

func (it *KnightHopIter) Next() (Square, bool) {
	for it.i < len(KnightHops) {
		d := KnightHops[it.i]
		it.i++
		if sq, ok := it.src.Step(d.DF, d.DR); ok {
			return sq, true
		}
	}
	return 0, false
}

// SlideIter yields the squares strictly between src and dest, exclusive of
// both endpoints, along the rook or bishop line connecting them. Used to
// check that a sliding piece's path is unobstructed. If src and dest are not
// aligned on a rook or bishop line, it yields nothing.
type SlideIter struct {
	cur, dest Square
	dir       Direction
	ok        bool
}

func NewSlideIter(src, dest Square) SlideIter {
	df := dest.File().V() - src.File().V()
	dr := dest.Rank().V() - src.Rank().V()

	var dir Direction
	switch {
	case df == 0 && dr != 0:
		dir = Direction{0, sign(dr)}
	case dr == 0 && df != 0:
		dir = Direction{sign(df), 0}
	case df != 0 && abs(df) == abs(dr):
		dir = Direction{sign(df), sign(dr)}
	default:
		return SlideIter{ok: false}
	}
	return SlideIter{cur: src, dest: dest, dir: dir, ok: true}
}

func (it *SlideIter) Next() (Square, bool) {
	if !it.ok {
		return 0, false
	}
	sq, ok := it.cur.Step(it.dir.DF, it.dir.DR)
	if !ok || sq == it.dest {
		it.ok = false
		return 0, false
	}
	it.cur = sq
	return sq, true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// IsRookMove reports whether dest lies on a straight line from src.
func IsRookMove(src, dest Square) bool {
	return src.File() == dest.File() || src.Rank() == dest.Rank()
}

// IsBishopMove reports whether dest lies on a diagonal from src.
func IsBishopMove(src, dest Square) bool {
	df := abs(dest.File().V() - src.File().V())
	dr := abs(dest.Rank().V() - src.Rank().V())
	return df == dr && df != 0
}

// IsKnightMove reports whether dest is an L-shape hop from src.
func IsKnightMove(src, dest Square) bool {
	df := abs(dest.File().V() - src.File().V())
	dr := abs(dest.Rank().V() - src.Rank().V())
	return (df == 1 && dr == 2) || (df == 2 && dr == 1)
}

// IsKingMove reports whether dest is one step (in any of the 8 directions) from src.
func IsKingMove(src, dest Square) bool {
	if src == dest {
		return false
	}
	df := abs(dest.File().V() - src.File().V())
	dr := abs(dest.Rank().V() - src.Rank().V())
	return df <= 1 && dr <= 1
}

// IsPawnMove reports whether dest matches one of color's pawn movement
// patterns from src: single push, double push from the start rank, or one of
// the two diagonal captures. Does not check occupancy.
func IsPawnMove(src, dest Square, color Color) bool {
	df := dest.File().V() - src.File().V()
	dr := dest.Rank().V() - src.Rank().V()
	fwd := 1
	if color == Black {
		fwd = -1
	}
	switch {
	case df == 0 && dr == fwd:
		return true
	case df == 0 && dr == 2*fwd && src.Rank() == color.PawnStartRank():
		return true
	case abs(df) == 1 && dr == fwd:
		return true
	default:
		return false
	}
}

// IsPawnPromotion reports whether a pawn move to dest lands on the back rank
// for the moving color.
func IsPawnPromotion(dest Square, color Color) bool {
	return dest.Rank() == color.Opponent().HomeRank()
}

// IsMovePseudoLegal reports whether dest matches piece's movement pattern
// from src, independent of occupancy or check. Used to validate a Move's
// shape before the more detailed pseudo-legal-to-legal promotion.
func IsMovePseudoLegal(src, dest Square, piece PieceType, color Color) bool {
	switch piece {
	case Rook:
		return IsRookMove(src, dest)
	case Bishop:
		return IsBishopMove(src, dest)
	case Queen:
		return IsRookMove(src, dest) || IsBishopMove(src, dest)
	case Knight:
		return IsKnightMove(src, dest)
	case King:
		return IsKingMove(src, dest)
	case Pawn:
		return IsPawnMove(src, dest, color)
	default:
		return false
	}
}
