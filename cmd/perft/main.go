// Command perft sanity-checks the move generator against known node
// counts (spec §8 property 5). Grounded on
// Oliverans-GooseEngine/cmd/perft/main.go's flag layout, rewritten
// against chesscore/board instead of goosemg.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"chesscore/board"
)

func main() {
	fen := flag.String("fen", board.StartFEN, "FEN string (defaults to the initial position)")
	depth := flag.Int("depth", 0, "perft depth (required)")
	divide := flag.Bool("divide", false, "print per-move node counts at the root")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := board.FromFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parsing FEN: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		div := pos.PerftDivide(*depth)
		moves := make([]string, 0, len(div))
		for m := range div {
			moves = append(moves, m)
		}
		sort.Strings(moves)
		var total uint64
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
			total += div[m]
		}
		fmt.Printf("total: %d\n", total)
		return
	}

	start := time.Now()
	nodes := pos.Perft(*depth)
	elapsed := time.Since(start)
	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("depth %d: %d nodes in %s (%.0f nps)\n", *depth, nodes, elapsed, nps)
}
