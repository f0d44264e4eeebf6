// Package fen contains utilities for reading and writing positions in FEN
// notation.
package fen

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/seekerror/stdlib/pkg/lang"
)

const (
	Initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Decode parses a FEN record into a Position. A FEN record has six
// space-separated fields.
//
// Example:
//
//	"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
func Decode(str string) (*board.Position, error) {
	parts := strings.Split(strings.TrimSpace(str), " ")
	if len(parts) != 6 {
		return nil, fmt.Errorf("invalid number of sections in FEN: %q", str)
	}

	// (1) Piece placement, from white's perspective: rank 8 down to rank 1,
	// within each rank file a through file h.

	var placements []board.Placement

	rank := board.Rank8
	file := board.ZeroFile
	for _, r := range []rune(parts[0]) {
		switch {
		case r == '/':
			if file != board.NumFiles {
				return nil, fmt.Errorf("invalid rank in FEN: %q", str)
			}
			if rank == board.ZeroRank {
				return nil, fmt.Errorf("too many ranks in FEN: %q", str)
			}
			rank--
			file = board.ZeroFile

		case unicode.IsDigit(r):
			file += board.File(r - '0')

		case unicode.IsLetter(r):
			if file >= board.NumFiles {
				return nil, fmt.Errorf("too many squares in rank in FEN: %q", str)
			}
			color, piece, ok := parsePiece(r)
			if !ok {
				return nil, fmt.Errorf("invalid piece %q in FEN: %q", r, str)
			}
			sq := board.NewSquare(file, rank)
			placements = append(placements, board.Placement{Square: sq, Piece: board.Piece{Type: piece, Color: color}})
			file++

		default:
			return nil, fmt.Errorf("invalid character in FEN: %q", str)
		}
	}
	if rank != board.ZeroRank || file != board.NumFiles {
		return nil, fmt.Errorf("invalid number of squares in FEN: %q", str)
	}

	// (2) Active color: "w" or "b".

	active, ok := parseColor(parts[1])
	if !ok {
		return nil, fmt.Errorf("invalid active color in FEN: %q", str)
	}

	// (3) Castling availability: "-", or one or more of "K", "Q", "k", "q".

	castling, ok := parseCastling(parts[2])
	if !ok {
		return nil, fmt.Errorf("invalid castling in FEN: %q", str)
	}

	// (4) En-passant target square, or "-".

	ep, err := parseEnPassant(parts[3])
	if err != nil {
		return nil, fmt.Errorf("invalid en passant in FEN: %q: %w", str, err)
	}

	// (5)/(6) Halfmove clock and fullmove number. Position itself carries
	// only the data §3 defines, not move-count bookkeeping -- DecodeGame
	// returns these two for callers building a board.Game.

	if _, err := strconv.Atoi(parts[4]); err != nil {
		return nil, fmt.Errorf("invalid halfmove clock in FEN: %q", str)
	}
	if _, err := strconv.Atoi(parts[5]); err != nil {
		return nil, fmt.Errorf("invalid fullmove number in FEN: %q", str)
	}

	return board.NewPosition(placements, active, castling, ep), nil
}

// DecodeGame parses str like Decode, additionally returning the halfmove
// clock and fullmove number needed to construct a board.Game.
func DecodeGame(str string) (*board.Position, int, int, error) {
	parts := strings.Split(strings.TrimSpace(str), " ")
	if len(parts) != 6 {
		return nil, 0, 0, fmt.Errorf("invalid number of sections in FEN: %q", str)
	}

	pos, err := Decode(str)
	if err != nil {
		return nil, 0, 0, err
	}

	noprogress, err := strconv.Atoi(parts[4])
	if err != nil || noprogress < 0 {
		return nil, 0, 0, fmt.Errorf("invalid halfmove clock in FEN: %q", str)
	}
	fullmoves, err := strconv.Atoi(parts[5])
	if err != nil || fullmoves < 0 {
		return nil, 0, 0, fmt.Errorf("invalid fullmove number in FEN: %q", str)
	}

	return pos, noprogress, fullmoves, nil
}

// Encode renders pos as a FEN string. The halfmove clock and fullmove
// number are not tracked by Position, so this always emits "0 1" for those
// two trailing fields, matching engine usage where Game tracks them
// separately.
func Encode(pos *board.Position) string {
	var sb strings.Builder
	for r := int(board.Rank8); r >= int(board.Rank1); r-- {
		blanks := 0
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			piece := pos.PieceAt(board.NewSquare(f, board.Rank(r)))
			if !piece.IsPresent() {
				blanks++
				continue
			}
			if blanks > 0 {
				sb.WriteString(strconv.Itoa(blanks))
				blanks = 0
			}
			sb.WriteRune(printPiece(piece))
		}
		if blanks > 0 {
			sb.WriteString(strconv.Itoa(blanks))
		}
		if r > int(board.Rank1) {
			sb.WriteString("/")
		}
	}

	ep := "-"
	if sq, ok := pos.EnPassant().V(); ok {
		ep = sq.String()
	}

	return fmt.Sprintf("%v %v %v %v 0 1", sb.String(), pos.ActivePlayer(), pos.Castling(), ep)
}

func parseCastling(str string) (board.Castling, bool) {
	var ret board.Castling
	if str == "-" {
		return ret, true
	}
	for _, r := range []rune(str) {
		switch r {
		case 'K':
			ret |= board.WhiteKingside
		case 'Q':
			ret |= board.WhiteQueenside
		case 'k':
			ret |= board.BlackKingside
		case 'q':
			ret |= board.BlackQueenside
		default:
			return 0, false
		}
	}
	return ret, true
}

func parseColor(str string) (board.Color, bool) {
	switch str {
	case "w", "W":
		return board.White, true
	case "b", "B":
		return board.Black, true
	default:
		return 0, false
	}
}

func parseEnPassant(str string) (lang.Optional[board.Square], error) {
	if str == "-" {
		return lang.None[board.Square](), nil
	}
	sq, err := board.ParseSquareStr(str)
	if err != nil {
		return lang.None[board.Square](), err
	}
	return lang.Some(sq), nil
}

func parsePiece(r rune) (board.Color, board.PieceType, bool) {
	pt, ok := board.ParsePieceType(r)
	if !ok {
		return 0, 0, false
	}
	if unicode.IsUpper(r) {
		return board.White, pt, true
	}
	return board.Black, pt, true
}

func printPiece(p board.Piece) rune {
	r := []rune(p.Type.String())[0]
	if p.Color == board.White {
		return unicode.ToUpper(r)
	}
	return r
}
