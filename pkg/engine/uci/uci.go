// Package uci contains a driver for using the engine under the UCI protocol.
//
// See: http://wbec-ridderkerk.nl/html/UCIProtocol.html
// See: https://en.wikipedia.org/wiki/Universal_Chess_Interface
package uci

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/arnegrim/corvid/internal/perft"
	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
	"github.com/arnegrim/corvid/pkg/engine"
	"github.com/arnegrim/corvid/pkg/search"
	"github.com/arnegrim/corvid/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

const ProtocolName = "uci"

// Driver implements a UCI driver for an engine. It is activated if sent "uci".
type Driver struct {
	e *engine.Engine

	out chan<- string

	active       atomic.Bool    // user is waiting for engine to move
	mover        board.Color    // side to move when the active search was launched
	ponder       chan search.PV // chan for intermediate search information
	lastPosition string         // last position line (empty if no last position)

	quit   chan struct{}
	closed atomic.Bool
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		e:      e,
		out:    out,
		ponder: make(chan search.PV, 400),
		quit:   make(chan struct{}),
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) Close() {
	if d.closed.CompareAndSwap(false, true) {
		close(d.quit)
	}
}

func (d *Driver) Closed() <-chan struct{} {
	return d.quit
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	// * uci
	//
	//	tell engine to use the uci (universal chess interface),
	//	this will be send once as a first command after program boot
	//	to tell the engine to switch to uci mode.
	//	After receiving the uci command the engine must identify itself with the "id" command
	//	and sent the "option" commands to tell the GUI which engine settings the engine supports if any.
	//	After that the engine should sent "uciok" to acknowledge the uci mode.
	//	If no uciok is sent within a certain time period, the engine task will be killed by the GUI.

	logw.Infof(ctx, "UCI protocol initialized")

	// * id
	//	* name <x>
	//		this must be sent after receiving the "uci" command to identify the engine.
	//	* author <x>
	//		this must be sent after receiving the "uci" command to identify the engine.

	d.out <- fmt.Sprintf("id name %v", d.e.Name())
	d.out <- fmt.Sprintf("id author %v", d.e.Author())

	// * option
	//
	//	The GUI should parse this and build a dialog for the user to change the settings.

	opts := d.e.Options()
	d.out <- fmt.Sprintf("option name Hash type spin default %v min 0 max 4096", opts.Hash)
	d.out <- fmt.Sprintf("option name NoiseMove type check default %v", opts.Noise)

	d.out <- "uciok"

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
			case "isready":
				// * isready / readyok
				//
				//	synchronizes the engine with the GUI.

				d.out <- "readyok"

			case "debug":
				// * debug [ on | off ]
				//
				//	switch the debug mode of the engine on and off. Not implemented.

			case "setoption":
				// * setoption name <id> [value <x>]

				var name, value string
				if len(args) > 1 {
					name = args[1]
				}
				if len(args) > 3 {
					value = args[3]
				}

				switch name {
				case "Hash":
					if n, err := strconv.Atoi(value); err == nil {
						d.e.SetHash(uint(n))
					}
				case "NoiseMove":
					if b, err := strconv.ParseBool(value); err == nil {
						d.e.SetNoise(b)
					}
				}

			case "register":
				// * register: not implemented, engine needs no registration.

			case "ucinewgame":
				// * ucinewgame
				//
				//	sent when the next search will be from a different game.

				d.ensureInactive(ctx)
				d.lastPosition = ""

			case "position":
				// * position [fen <fenstring> | startpos ]  moves <move1> .... <movei>

				d.ensureInactive(ctx)

				if d.lastPosition != "" && strings.HasPrefix(line, d.lastPosition) {
					// Continuation of game.

					moves := strings.TrimSpace(strings.TrimPrefix(line, d.lastPosition))
					for _, arg := range strings.Split(moves, " ") {
						if arg == "moves" || arg == "" {
							continue
						}

						if err := d.e.Move(ctx, arg); err != nil {
							logw.Errorf(ctx, "Invalid position move '%v': %v: %v", arg, line, err)
							return
						}
					}

					d.lastPosition = line
					break
				}

				// New position.

				position := fen.Initial
				if len(args) >= 7 && args[0] == "fen" {
					position = strings.Join(args[1:7], " ")
				}

				if err := d.e.Reset(ctx, position); err != nil {
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
				d.lastPosition = line

			case "go":
				// * go
				//
				//	start calculating on the current position set up with the "position" command.

				d.ensureInactive(ctx)

				var depthLimit lang.Optional[uint]
				var tc searchctl.TimeControl
				haveTC := false
				timeout := time.Duration(0)

				for i := 0; i < len(args); i++ {
					cmd := args[i]
					switch cmd {
					case "wtime", "btime", "movestogo", "depth", "movetime":
						i++
						if i == len(args) {
							logw.Errorf(ctx, "No argument for %v: %v", cmd, line)
							return
						}
						n, err := strconv.Atoi(args[i])
						if err != nil {
							logw.Errorf(ctx, "Invalid argument for %v: %v", line, err)
							return
						}

						switch cmd {
						case "depth":
							depthLimit = lang.Some(uint(n))
						case "wtime":
							tc.White = time.Millisecond * time.Duration(n)
							haveTC = true
						case "btime":
							tc.Black = time.Millisecond * time.Duration(n)
							haveTC = true
						case "movestogo":
							tc.Moves = n
							haveTC = true
						case "movetime":
							timeout = time.Millisecond * time.Duration(n)
						}

					case "infinite", "ponder":
						// Handled below: infinite suppresses auto-completion,
						// ponder is treated as a normal search.

					default:
						// silently ignore anything not handled (searchmoves, nodes, mate).
					}
				}

				var opt searchctl.Options
				opt.DepthLimit = depthLimit
				if haveTC {
					opt.TimeControl = lang.Some(tc)
				}

				infinite := contains(args, "infinite")

				d.mover = d.e.Game().Turn()

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "Analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				// Forward ponder info. Complete search if it ends, unless infinite.

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.ponder <- pv
					}
					if !infinite {
						d.searchCompleted(ctx, last)
					}
				}()

				// Enforce move time limit, if set.

				if timeout > 0 {
					time.AfterFunc(timeout, func() {
						_, _ = d.e.Halt(ctx)
					})
				}

			case "stop":
				// * stop
				//
				//	stop calculating as soon as possible and report bestmove.

				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "perft":
				// * perft <depth>
				//
				//	debugging extension: divide the legal move tree rooted at
				//	the current position to depth and report the leaf count
				//	contributed by each root move, then the total.

				d.ensureInactive(ctx)

				if len(args) < 1 {
					logw.Errorf(ctx, "Missing depth for perft: %v", line)
					break
				}
				depth, err := strconv.Atoi(args[0])
				if err != nil || depth < 0 {
					logw.Errorf(ctx, "Invalid depth for perft: %v", line)
					break
				}

				g := d.e.Game()
				var nodes uint64
				for _, e := range perft.Divide(g, depth) {
					d.out <- e.String()
					nodes += e.Nodes
				}
				d.out <- fmt.Sprintf("Nodes searched: %v", nodes)

			case "ponderhit":
				// * ponderhit: not distinguished from a normal search here.

			case "quit":
				return

			default:
				logw.Warningf(ctx, "Unknown command '%v': %v", cmd, args)
			}

		case pv := <-d.ponder:
			// * info
			//
			//	"info depth 2 score cp 214 time 1242 nodes 2124 nps 34928 pv e2e4 e7e5 g1f3"

			if d.active.Load() {
				d.out <- printPV(pv, d.mover)
			}

		case <-d.quit:
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
	if d.active.CompareAndSwap(true, false) {
		// * bestmove <move1> [ ponder <move2> ]

		if len(pv.Moves) > 0 {
			d.out <- printPV(pv, d.mover)
			d.out <- fmt.Sprintf("bestmove %v", printMove(pv.Moves[0], d.mover))
		} else {
			// No PV. Position is checkmate or stalemate. Send NullMove.

			d.out <- "bestmove 0000"
		}
	} // else: stale or duplicate result
}

func printPV(pv search.PV, mover board.Color) string {
	parts := []string{"info"}
	parts = append(parts, fmt.Sprintf("depth %v", pv.Depth))
	parts = append(parts, fmt.Sprintf("score cp %v", int(pv.Score)))
	if pv.Nodes > 0 {
		parts = append(parts, fmt.Sprintf("nodes %v", pv.Nodes))
	}
	if pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("time %v", pv.Time.Milliseconds()))
	}
	if pv.Nodes > 0 && pv.Time > 0 {
		parts = append(parts, fmt.Sprintf("nps %v", uint64(time.Second)*pv.Nodes/uint64(pv.Time)))
	}
	if pv.Hash > 0 {
		parts = append(parts, fmt.Sprintf("hashfull %v", int(1000*pv.Hash)))
	}
	if len(pv.Moves) > 0 {
		parts = append(parts, "pv")
		parts = append(parts, formatMoves(pv.Moves, mover))
	}

	return strings.Join(parts, " ")
}

func formatMoves(moves []board.LegalMove, mover board.Color) string {
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = printMove(m, mover)
		mover = mover.Opponent()
	}
	return strings.Join(parts, " ")
}

func printMove(m board.LegalMove, mover board.Color) string {
	switch m.Kind {
	case board.LegalCastleKingside:
		if mover == board.White {
			return "e1g1"
		}
		return "e8g8"
	case board.LegalCastleQueenside:
		if mover == board.White {
			return "e1c1"
		}
		return "e8c8"
	case board.LegalDoublePawnPush:
		src := board.NewSquare(m.File, mover.PawnStartRank())
		dest := board.NewSquare(m.File, mover.DoublePushRank())
		return fmt.Sprintf("%v%v", src, dest)
	case board.LegalPromotion:
		promo, _ := board.PromotionPieceTypeFromPieceType(m.Promotion)
		return fmt.Sprintf("%v%v%v", m.Src, m.Dest, promo)
	default:
		return fmt.Sprintf("%v%v", m.Src, m.Dest)
	}
}

func contains(args []string, s string) bool {
	for _, a := range args {
		if a == s {
			return true
		}
	}
	return false
}
