// corvid is a UCI chess engine. Run with no arguments to speak UCI (or the
// line-oriented console debug protocol) over stdin/stdout; run with the
// "debug" or "perftest" positional argument for the two supplemental modes
// described in SPEC_FULL.md.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/arnegrim/corvid/internal/config"
	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
	"github.com/arnegrim/corvid/pkg/engine"
	"github.com/arnegrim/corvid/pkg/engine/console"
	"github.com/arnegrim/corvid/pkg/engine/uci"
	"github.com/arnegrim/corvid/pkg/eval"
	"github.com/arnegrim/corvid/pkg/search"
	"github.com/seekerror/logw"
)

var (
	depth      = flag.Uint("depth", 0, "Search depth limit (0 = unlimited)")
	hash       = flag.Uint("hash", 16, "Transposition table size in MB (0 = disabled)")
	noise      = flag.Bool("noise", true, "Randomize root move scores by +/-10 centipawns")
	configPath = flag.String("config", "", "Optional YAML file of engine defaults, overriding the flags above")

	perftDepth    = flag.Int("perft-depth", 5, "perftest: search depth")
	perftPosition = flag.String("perft-fen", "", "perftest: start position (default to standard)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: corvid [options] [debug|perftest]

CORVID is a UCI chess engine.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	opts := engine.Options{Depth: *depth, Hash: *hash, Noise: *noise}
	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			logw.Exitf(ctx, "Invalid config %v: %v", *configPath, err)
		}
		opts = c.Options()
	}

	s := search.Negamax{Eval: eval.Smart{}}
	e := engine.New(ctx, "corvid", "arnegrim", s, engine.WithOptions(opts), engine.WithZobrist(time.Now().UnixNano()))

	switch flag.Arg(0) {
	case "debug":
		runDebug(ctx, e)
	case "perftest":
		runPerftest(ctx, s)
	default:
		runProtocol(ctx, e, s)
	}
}

// runProtocol speaks whichever of UCI or the console debug protocol the
// first input line names, exactly as the engine's original front-end did.
func runProtocol(ctx context.Context, e *engine.Engine, s search.Search) {
	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, s, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}

// runDebug plays an interactive game: a human typing long-algebraic moves
// on stdin against a uniform-random opponent.
func runDebug(ctx context.Context, e *engine.Engine) {
	out := make(chan string, 100)
	go engine.WriteStdoutLines(ctx, out)
	defer close(out)

	out <- fmt.Sprintf("engine %v (%v) -- debug mode: you are White against a random mover", e.Name(), e.Author())

	human := console.NewHumanPlayer(bufio.NewScanner(os.Stdin), out)
	random := console.NewRandomPlayer(time.Now().UnixNano())

	console.PlayGame(ctx, e.Game(), human, random, out)
}

// runPerftest runs a fixed-depth search (no transposition table, no noise)
// from the initial (or given) position at each depth up to -perft-depth and
// reports nodes and elapsed time, mirroring the profiling path otus::main
// exposed.
func runPerftest(ctx context.Context, s search.Search) {
	position := *perftPosition
	if position == "" {
		position = fen.Initial
	}

	pos, noprogress, fullmoves, err := fen.DecodeGame(position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen %q: %v", position, err)
	}
	g := board.NewGame(board.NewZobristTable(0), pos, noprogress, fullmoves)

	for d := 1; d <= *perftDepth; d++ {
		start := time.Now()
		nodes, _, _, _ := s.Search(ctx, g, nil, nil, d)
		elapsed := time.Since(start)

		fmt.Printf("perft,%v,%v,%v,%v\n", position, d, nodes, elapsed.Microseconds())
	}
}
