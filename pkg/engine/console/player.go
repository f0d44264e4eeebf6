package console

import (
	"bufio"
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/arnegrim/corvid/pkg/board"
)

// Player selects a move for the side to move in g.
type Player interface {
	Move(ctx context.Context, g *board.Game) (board.LegalMove, error)
}

// HumanPlayer reads a long-algebraic move from a line-oriented input,
// reprompting on a parse failure or an illegal move.
type HumanPlayer struct {
	in  *bufio.Scanner
	out chan<- string
}

func NewHumanPlayer(in *bufio.Scanner, out chan<- string) *HumanPlayer {
	return &HumanPlayer{in: in, out: out}
}

func (h *HumanPlayer) Move(ctx context.Context, g *board.Game) (board.LegalMove, error) {
	for {
		h.out <- fmt.Sprintf("%v to move> ", g.Turn())
		if !h.in.Scan() {
			return board.LegalMove{}, fmt.Errorf("input closed")
		}
		text := strings.TrimSpace(h.in.Text())

		candidate, err := board.ParseMove(g.Position(), text)
		if err != nil {
			h.out <- fmt.Sprintf("invalid move %q: %v", text, err)
			continue
		}

		if m, ok := findLegal(g, candidate); ok {
			return m, nil
		}
		h.out <- fmt.Sprintf("illegal move: %v", text)
	}
}

// RandomPlayer selects uniformly at random among the legal moves available.
type RandomPlayer struct {
	r *rand.Rand
}

func NewRandomPlayer(seed int64) *RandomPlayer {
	return &RandomPlayer{r: rand.New(rand.NewSource(seed))}
}

func (p *RandomPlayer) Move(ctx context.Context, g *board.Game) (board.LegalMove, error) {
	moves := board.GenerateLegalMoves(g.Position())
	if len(moves) == 0 {
		return board.LegalMove{}, fmt.Errorf("no legal moves")
	}
	return moves[p.r.Intn(len(moves))], nil
}

func findLegal(g *board.Game, candidate board.Move) (board.LegalMove, bool) {
	turn := g.Turn()
	for _, m := range board.GenerateLegalMoves(g.Position()) {
		if m.ToMove(turn).Equals(candidate) {
			return m, true
		}
	}
	return board.LegalMove{}, false
}

// PlayGame alternates white and black Player.Move calls against g until the
// game reaches a decided result, reporting each move and the final result to
// out. Mirrors otus::chess::player's top-level game loop.
func PlayGame(ctx context.Context, g *board.Game, white, black Player, out chan<- string) board.Result {
	for {
		if len(board.GenerateLegalMoves(g.Position())) == 0 {
			result := g.AdjudicateNoLegalMoves()
			out <- fmt.Sprintf("result: %v", result)
			return result
		}
		if result := g.Result(); result.Outcome != board.Undecided {
			out <- fmt.Sprintf("result: %v", result)
			return result
		}

		player := white
		if g.Turn() == board.Black {
			player = black
		}

		m, err := player.Move(ctx, g)
		if err != nil {
			out <- fmt.Sprintf("player error: %v", err)
			return g.Result()
		}

		mover := g.Turn()
		g.PushMove(m)
		out <- fmt.Sprintf("%v: %v", mover, m)
	}
}
