package board

import "iter"

// SquareIter walks the set squares of a private copy of a bitboard in
// ascending order. It is single-pass.
type SquareIter struct {
	rest Bitboard
}

// Iter returns an iterator over the set squares of b.
func (b Bitboard) Iter() SquareIter {
	return SquareIter{rest: b}
}

// Next returns the lowest remaining square and drops it.
func (it *SquareIter) Next() (Square, bool) {
	if it.rest == 0 {
		return NoSquare, false
	}
	return it.rest.PopLSB(), true
}

// Len returns the number of squares not yet yielded.
func (it *SquareIter) Len() int {
	return it.rest.PopCount()
}

// All returns the set squares as a sequence, lowest index first.
func (b Bitboard) All() iter.Seq[Square] {
	return func(yield func(Square) bool) {
		it := b.Iter()
		for sq, ok := it.Next(); ok; sq, ok = it.Next() {
			if !yield(sq) {
				return
			}
		}
	}
}

// ForEach calls the function for each set square.
func (b Bitboard) ForEach(f func(Square)) {
	for b != 0 {
		f(b.PopLSB())
	}
}

// Squares returns a slice of all squares that are set.
func (b Bitboard) Squares() []Square {
	squares := make([]Square, 0, b.PopCount())
	for b != 0 {
		squares = append(squares, b.PopLSB())
	}
	return squares
}
