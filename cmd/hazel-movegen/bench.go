package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/jfredett/hazel-sub002/internal/attacks"
	"github.com/jfredett/hazel-sub002/internal/board"
)

type lookup struct {
	sq  board.Square
	occ board.Bitboard
}

// sink keeps lookup results live.
var sink board.Bitboard

func runBench(table *attacks.Table, n int) error {
	rng := rand.New(rand.NewPCG(1, 2))
	samples := make([]lookup, n)
	for i := range samples {
		samples[i] = lookup{
			sq:  board.Square(rng.IntN(64)),
			occ: board.Bitboard(rng.Uint64() & rng.Uint64()),
		}
	}

	for _, pt := range []board.PieceType{board.Rook, board.Bishop} {
		slow := timeLookups(samples, func(l lookup) board.Bitboard {
			return attacks.SlowAttacksFor(pt, l.sq, l.occ)
		})
		fast := timeLookups(samples, func(l lookup) board.Bitboard {
			return table.AttacksFor(pt, l.sq, l.occ)
		})

		fmt.Printf("%-6s slow %12.0f lookups/s  fast (%s) %12.0f lookups/s  x%.1f\n",
			pt, perSecond(n, slow), table.Extractor().Name(), perSecond(n, fast),
			float64(slow)/float64(max(fast, 1)))
	}
	return nil
}

func timeLookups(samples []lookup, f func(lookup) board.Bitboard) time.Duration {
	start := time.Now()
	for _, l := range samples {
		sink ^= f(l)
	}
	return time.Since(start)
}

func perSecond(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}
