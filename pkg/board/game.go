package board

import "fmt"

const (
	repetition3Limit   = 3
	noprogressPlyLimit = 100
)

// Outcome is the final result of a game, from no one's particular
// perspective.
type Outcome uint8

const (
	Undecided Outcome = iota
	WhiteWins
	BlackWins
	Draw
)

// Reason records why a terminal Result was reached.
type Reason uint8

const (
	NoReason Reason = iota
	Checkmate
	Stalemate
	Repetition3
	NoProgress
	InsufficientMaterial
)

func (r Reason) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Repetition3:
		return "threefold repetition"
	case NoProgress:
		return "fifty-move rule"
	case InsufficientMaterial:
		return "insufficient material"
	default:
		return "undecided"
	}
}

// Result is the outcome of a game and why it was reached.
type Result struct {
	Outcome Outcome
	Reason  Reason
}

func (r Result) String() string {
	switch r.Outcome {
	case WhiteWins:
		return fmt.Sprintf("1-0 (%v)", r.Reason)
	case BlackWins:
		return fmt.Sprintf("0-1 (%v)", r.Reason)
	case Draw:
		return fmt.Sprintf("1/2-1/2 (%v)", r.Reason)
	default:
		return "*"
	}
}

// Loss returns the Outcome of color losing.
func Loss(color Color) Outcome {
	if color == White {
		return BlackWins
	}
	return WhiteWins
}

type undoFrame struct {
	move       LegalMove
	noprogress int
	hash       ZobristHash
}

// Game wraps a Position with the move-count and history bookkeeping (§K)
// that Position itself does not carry: fullmove/halfmove counters, an
// incremental Zobrist hash, and threefold-repetition/fifty-move/
// insufficient-material draw detection. Search mutates a Game's Position
// in place via PushMove/PopMove rather than allocating a new position per
// node.
type Game struct {
	zt  *ZobristTable
	pos *Position

	hash        ZobristHash
	repetitions map[ZobristHash]int
	noprogress  int
	fullmoves   int
	result      Result

	undo []undoFrame
}

// NewGame starts a Game from pos with the given halfmove (noprogress) clock
// and fullmove number, as read from FEN.
func NewGame(zt *ZobristTable, pos *Position, noprogress, fullmoves int) *Game {
	hash := zt.Hash(pos)
	return &Game{
		zt:          zt,
		pos:         pos,
		hash:        hash,
		repetitions: map[ZobristHash]int{hash: 1},
		noprogress:  noprogress,
		fullmoves:   fullmoves,
	}
}

// Fork returns an independent copy that can be searched without disturbing
// g. Position is a value type, so cloning it and copying the small
// bookkeeping maps/slices is cheap compared to the teacher's persistent
// node-history design, which existed to make sharing cheap for an immutable
// position -- unneeded once Position mutates in place.
func (g *Game) Fork() *Game {
	reps := make(map[ZobristHash]int, len(g.repetitions))
	for k, v := range g.repetitions {
		reps[k] = v
	}
	return &Game{
		zt:          g.zt,
		pos:         g.pos.Clone(),
		hash:        g.hash,
		repetitions: reps,
		noprogress:  g.noprogress,
		fullmoves:   g.fullmoves,
		result:      g.result,
		undo:        append([]undoFrame(nil), g.undo...),
	}
}

func (g *Game) Position() *Position { return g.pos }
func (g *Game) Turn() Color         { return g.pos.ActivePlayer() }
func (g *Game) Hash() ZobristHash   { return g.hash }
func (g *Game) NoProgress() int     { return g.noprogress }
func (g *Game) FullMoves() int      { return g.fullmoves }
func (g *Game) Result() Result      { return g.result }
func (g *Game) Ply() int            { return len(g.undo) }

// PushMove makes a LegalMove, updating the hash and draw-detection
// bookkeeping. The move must have come from GenerateLegalMoves(g.Position())
// for this Game's current position.
func (g *Game) PushMove(m LegalMove) {
	frame := undoFrame{move: m, noprogress: g.noprogress, hash: g.hash}
	g.hash = g.zt.UpdateHash(g.pos, g.hash, m)
	mover := g.pos.ActivePlayer()
	captured := isCapture(m)
	pawn := isPawnMove(g.pos, m)

	g.pos.MakeMove(m)

	g.undo = append(g.undo, frame)

	if pawn || captured {
		g.noprogress = 0
	} else {
		g.noprogress++
	}
	if mover == Black {
		g.fullmoves++
	}

	g.repetitions[g.hash]++
	g.result = Result{}

	if g.repetitions[g.hash] >= repetition3Limit {
		g.result = Result{Outcome: Draw, Reason: Repetition3}
	}
	if g.noprogress >= noprogressPlyLimit {
		g.result = Result{Outcome: Draw, Reason: NoProgress}
	}
	if HasInsufficientMaterial(g.pos) {
		g.result = Result{Outcome: Draw, Reason: InsufficientMaterial}
	}
}

// PopMove undoes the last move pushed. Returns false if there is none.
func (g *Game) PopMove() bool {
	if len(g.undo) == 0 {
		return false
	}
	last := g.undo[len(g.undo)-1]
	g.undo = g.undo[:len(g.undo)-1]

	g.repetitions[g.hash]--
	if g.repetitions[g.hash] == 0 {
		delete(g.repetitions, g.hash)
	}

	g.pos.UnmakeMove(last.move)
	if g.pos.ActivePlayer() == Black {
		g.fullmoves--
	}

	g.noprogress = last.noprogress
	g.hash = last.hash
	g.result = Result{}
	return true
}

// AdjudicateNoLegalMoves settles the result once the side to move has no
// legal moves: checkmate if in check, stalemate otherwise.
func (g *Game) AdjudicateNoLegalMoves() Result {
	result := Result{Outcome: Draw, Reason: Stalemate}
	if IsKingInCheck(g.pos, g.Turn()) {
		result = Result{Outcome: Loss(g.Turn()), Reason: Checkmate}
	}
	g.result = result
	return result
}

func (g *Game) String() string {
	return fmt.Sprintf("game{pos=%v turn=%v hash=%x noprogress=%v fullmoves=%v result=%v}",
		g.pos, g.Turn(), g.hash, g.noprogress, g.fullmoves, g.result)
}

func isCapture(m LegalMove) bool {
	return m.Captured != NoPiece || m.Kind == LegalEnPassant
}

func isPawnMove(p *Position, m LegalMove) bool {
	switch m.Kind {
	case LegalDoublePawnPush, LegalEnPassant, LegalPromotion:
		return true
	case LegalNormal:
		return p.PieceAt(m.Src).Type == Pawn
	default:
		return false
	}
}

// HasInsufficientMaterial reports whether neither side has enough material
// to deliver checkmate: king-only, king+knight, or king+bishop on either
// side.
func HasInsufficientMaterial(p *Position) bool {
	var minor, major int
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		switch p.PieceAt(sq).Type {
		case Pawn, Rook, Queen:
			major++
		case Knight, Bishop:
			minor++
		}
	}
	return major == 0 && minor <= 1
}
