// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/arnegrim/corvid/internal/perft"
	"github.com/arnegrim/corvid/pkg/board"
	"github.com/arnegrim/corvid/pkg/board/fen"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	position = flag.String("fen", "", "Start position (default to standard)")
	divide   = flag.Bool("divide", false, "Divide counts by initial move")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *position == "" {
		*position = fen.Initial
	}

	pos, noprogress, fullmoves, err := fen.DecodeGame(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}
	g := board.NewGame(board.NewZobristTable(0), pos, noprogress, fullmoves)

	for i := 1; i <= *depth; i++ {
		start := time.Now()

		var nodes uint64
		if *divide && i == *depth {
			for _, e := range perft.Divide(g, i) {
				fmt.Println(e.String())
				nodes += e.Nodes
			}
		} else {
			nodes = perft.Count(g, i)
		}

		duration := time.Since(start)
		fmt.Printf("perft,%v,%v,%v,%v\n", *position, i, nodes, duration.Microseconds())
	}
}
