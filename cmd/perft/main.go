// Command perft counts the legal move tree below a position, the
// standard conformance check for a move generator: node counts at each
// depth are compared against known-correct values for well-studied
// positions.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	chess "github.com/hailam/chessgen"
)

var (
	fen    = flag.String("fen", chess.StartFEN, "FEN of the position to search from")
	depth  = flag.Int("depth", 5, "search depth in plies")
	divide = flag.Bool("divide", true, "print per-root-move subtree counts")
)

func main() {
	flag.Parse()

	pos, err := chess.ParseFEN(*fen)
	if err != nil {
		log.Fatalf("perft: %v", err)
	}

	start := time.Now()
	var total uint64
	if *divide {
		total = perftDivide(pos, *depth)
	} else {
		total = perft(pos, *depth)
	}
	elapsed := time.Since(start)

	nps := float64(total) / elapsed.Seconds()
	fmt.Printf("\ndepth %d: %d nodes in %s (%.0f nodes/sec)\n", *depth, total, elapsed, nps)
}

// perft counts the leaf nodes of the legal move tree below p at depth.
func perft(p chess.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := chess.LegalMoves(p)
	if depth == 1 {
		return uint64(moves.Len())
	}
	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		nodes += perft(p.Make(moves.Get(i)), depth-1)
	}
	return nodes
}

// perftDivide runs perft for each legal root move individually, printing
// each move's subtree count before returning the grand total.
func perftDivide(p chess.Position, depth int) uint64 {
	moves := chess.LegalMoves(p)
	var total uint64
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		var n uint64
		if depth <= 1 {
			n = 1
		} else {
			n = perft(p.Make(m), depth-1)
		}
		fmt.Printf("%s: %d\n", m, n)
		total += n
	}
	return total
}
