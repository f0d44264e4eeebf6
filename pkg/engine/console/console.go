// Package console implements an interactive human-playable driver for
// debugging the engine outside the UCI protocol, with a printed board and
// per-move search breakdowns.
package console

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
	"github.com/arnegrim/corvid/pkg/engine"
	"github.com/arnegrim/corvid/pkg/eval"
	"github.com/arnegrim/corvid/pkg/search"
	"github.com/arnegrim/corvid/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// Driver implements a console driver for human play and debugging.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out chan<- string

	root   search.Search
	active atomic.Bool // user is waiting for engine to move
}

func NewDriver(ctx context.Context, e *engine.Engine, root search.Search, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		root:        root,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "reset", "r":
				// reset [<fenstring>] moves ...

				d.ensureInactive(ctx)

				pos := fen.Initial
				if len(args) >= 6 && args[0] != "moves" {
					pos = strings.Join(args[0:6], " ")
				}
				if err := d.e.Reset(ctx, pos); err != nil {
					logw.Errorf(ctx, "Invalid position: %v", line)
					return
				}
				move := false
				for _, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}

					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
						return
					}
				}
				d.printBoard(ctx)

			case "undo", "u":
				d.ensureInactive(ctx)

				_ = d.e.TakeBack(ctx)
				d.printBoard(ctx)

			case "print", "p":
				d.printBoard(ctx)

			case "analyze", "a":
				d.ensureInactive(ctx)

				var opt searchctl.Options
				if len(args) > 0 {
					if depth, err := strconv.Atoi(args[0]); err == nil {
						opt.DepthLimit = lang.Some(uint(depth))
					}
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.out <- pv.String()
					}
					d.searchCompleted(ctx, last)
				}()

			case "depth", "d":
				if len(args) > 0 {
					if depth, err := strconv.Atoi(args[0]); err == nil {
						d.e.SetDepth(uint(depth))
					}
				}

			case "hash": // size in MB
				if len(args) > 0 {
					if hash, err := strconv.Atoi(args[0]); err == nil {
						d.e.SetHash(uint(hash))
					}
				}

			case "nohash":
				d.e.SetHash(0)

			case "noise":
				d.e.SetNoise(true)

			case "nonoise":
				d.e.SetNoise(false)

			case "halt", "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore empty command

			default:
				// Assume move if not a recognized command.

				d.ensureInactive(ctx)
				if err := d.e.Move(ctx, cmd); err != nil {
					d.out <- fmt.Sprintf("invalid move: '%v'", cmd)
				} else {
					d.printBoard(ctx)
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if !d.active.CompareAndSwap(true, false) {
		return // stale or duplicate result
	}

	if len(pv.Moves) > 0 {
		d.out <- fmt.Sprintf("bestmove %v", pv.Moves[0])
	}

	// Ponder each root move for a score breakdown. No TT, no noise.

	g := d.e.Game()
	turn := g.Turn()

	var sub []result
	for _, m := range board.GenerateLegalMoves(g.Position()) {
		child := g.Fork()
		child.PushMove(m)

		nodes, score, moves, _ := d.root.Search(ctx, child, nil, nil, maxInt(pv.Depth-1, 1))
		sub = append(sub, result{m: m, s: score.Negate(), n: nodes, pv: moves})
	}
	sort.Sort(byScore(sub))

	d.out <- fmt.Sprintf("Search, depth=%v, turn=%v", pv.Depth, turn)
	for i := range sub {
		d.out <- fmt.Sprintf(" %2d. %v\t%v\t\t(%v nodes\tpv %v)", i+1, sub[i].m, sub[i].s, sub[i].n, formatMoves(sub[i].pv))
	}
}

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard(ctx context.Context) {
	g := d.e.Game()
	p := g.Position()

	d.out <- ""
	d.out <- files
	d.out <- horizontal
	for r := int(board.Rank8); r >= int(board.Rank1); r-- {
		var sb strings.Builder
		sb.WriteString(board.Rank(r).String())
		sb.WriteString(vertical)
		for f := board.ZeroFile; f < board.NumFiles; f++ {
			piece := p.PieceAt(board.NewSquare(f, board.Rank(r)))
			sb.WriteString(piece.String())
			sb.WriteString(vertical)
		}
		d.out <- sb.String()
		d.out <- horizontal
	}
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("fen:    %v", d.e.Position())
	d.out <- fmt.Sprintf("result: %v, ply: %v, hash: 0x%x", g.Result(), g.Ply(), g.Hash())
	d.out <- ""
}

func formatMoves(moves []board.LegalMove) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

type result struct {
	m  board.LegalMove
	s  eval.Score
	n  uint64
	pv []board.LegalMove
}

// byScore sorts results best-first from the side to move's perspective.
type byScore []result

func (b byScore) Len() int      { return len(b) }
func (b byScore) Less(i, j int) bool { return b[j].s < b[i].s }
func (b byScore) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
