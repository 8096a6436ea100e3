// perft is a movegen debugging tool. See: https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/seekerror/logw"
	"github.com/solskog/corvid/pkg/board"
	"github.com/solskog/corvid/pkg/board/fen"
	"github.com/solskog/corvid/pkg/movegen"
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

	pos, _, _, _, err := fen.Decode(*position)
	if err != nil {
		logw.Exitf(ctx, "Invalid fen '%v': %v", *position, err)
	}

	for i := 1; i <= *depth; i++ {
		start := time.Now()
		nodes := perft(pos, i, *divide && i == *depth)
		duration := time.Since(start)

		println(fmt.Sprintf("perft,%v,%v,%v,%v", *position, i, nodes, duration.Microseconds()))
	}
}

func perft(pos *board.Position, depth int, d bool) int64 {
	if depth == 0 {
		return 1
	}

	var buf [movegen.MaxMoves]board.Move
	n := movegen.GenerateLegal(pos, buf[:], movegen.All)

	var nodes int64
	for _, m := range buf[:n] {
		info := pos.Make(m, board.AllFlags)
		count := perft(pos, depth-1, false)
		pos.Unmake(m, board.AllFlags, info)

		if d {
			println(fmt.Sprintf("%v: %v", m, count))
		}
		nodes += count
	}
	return nodes
}
