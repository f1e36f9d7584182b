package movegen

import (
	"sync"

	"github.com/jfredett/hazel-sub002/internal/board"
)

// Census summarizes one ply of generation for a position.
type Census struct {
	// ByGroup counts moves per generator group ("pawn", ..., "castle").
	ByGroup  map[string]int `json:"by_group"`
	Captures int            `json:"captures"`
	Quiets   int            `json:"quiets"`
	// Special counts double pushes, castles and promotions that do not
	// capture.
	Special int `json:"special"`
	Total   int `json:"total"`
}

// Census generates every move for pos and tallies it.
func (g *Generator) Census(pos Position) Census {
	c := Census{ByGroup: make(map[string]int)}
	for _, grp := range g.Groups() {
		n := 0
		for m := range grp.Generate(pos) {
			n++
			switch t := m.Type(); {
			case t.IsCapture():
				c.Captures++
			case t == board.Quiet:
				c.Quiets++
			default:
				c.Special++
			}
		}
		c.ByGroup[grp.Name] = n
		c.Total += n
	}
	return c
}

// CensusParallel runs Census for each position on its own goroutine.
// Results line up with positions.
func (g *Generator) CensusParallel(positions []Position) []Census {
	results := make([]Census, len(positions))

	var wg sync.WaitGroup
	for i, pos := range positions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = g.Census(pos)
		}()
	}
	wg.Wait()

	return results
}
