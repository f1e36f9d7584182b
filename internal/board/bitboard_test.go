package board

import (
	"errors"
	"testing"
	"testing/quick"
)

// neighbour computes the expected destination of a single step using file/rank
// arithmetic, independent of the shift implementation.
func neighbour(sq Square, d Direction) (Square, bool) {
	df := [8]int{0, 1, 1, 1, 0, -1, -1, -1}[d]
	dr := [8]int{1, 1, 0, -1, -1, -1, 0, 1}[d]
	f, r := sq.File()+df, sq.Rank()+dr
	if f < 0 || f > 7 || r < 0 || r > 7 {
		return NoSquare, false
	}
	return NewSquare(f, r), true
}

func TestShiftEdgeSafety(t *testing.T) {
	for _, d := range Directions {
		for sq := A1; sq <= H8; sq++ {
			got := SquareBB(sq).Shift(d)
			want, ok := neighbour(sq, d)
			if !ok {
				if got != Empty {
					t.Errorf("%s shifted %s = %s, want empty", sq, d, got.Notation())
				}
				continue
			}
			if got != SquareBB(want) {
				t.Errorf("%s shifted %s = %s, want %s", sq, d, got.Notation(), want)
			}
		}
	}
}

// The landing masks must be exactly the files a one-step shift can wrap onto.
func TestDirectionMasks(t *testing.T) {
	want := map[Direction]Bitboard{
		North: Universe, South: Universe,
		NorthEast: NotFileA, East: NotFileA, SouthEast: NotFileA,
		NorthWest: NotFileH, West: NotFileH, SouthWest: NotFileH,
	}
	for _, d := range Directions {
		if d.Mask() != want[d] {
			t.Errorf("%s mask = %#x, want %#x", d, uint64(d.Mask()), uint64(want[d]))
		}
		for sq := A1; sq <= H8; sq++ {
			var raw Bitboard
			if o := d.Offset(); o > 0 {
				raw = SquareBB(sq) << o
			} else {
				raw = SquareBB(sq) >> -o
			}
			if got, exp := SquareBB(sq).Shift(d), raw&d.Mask(); got != exp {
				t.Errorf("%s shifted %s = [%s], offset and mask give [%s]", sq, d, got.Notation(), exp.Notation())
			}
		}
	}
}

func TestShiftRejectsInvalidDirection(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Shift(8) did not panic")
		}
	}()
	SquareBB(D4).Shift(Direction(8))
}

func TestShiftCorners(t *testing.T) {
	tests := []struct {
		sq   Square
		dirs []Direction
	}{
		{A1, []Direction{West, SouthWest, South, NorthWest, SouthEast}},
		{H8, []Direction{East, NorthEast, North, NorthWest, SouthEast}},
		{H1, []Direction{East, SouthEast, South, NorthEast, SouthWest}},
		{A8, []Direction{West, NorthWest, North, NorthEast, SouthWest}},
	}

	for _, tc := range tests {
		for _, d := range tc.dirs {
			if got := SquareBB(tc.sq).Shift(d); got != Empty {
				t.Errorf("%s shifted %s = %s, want empty", tc.sq, d, got.Notation())
			}
		}
	}
}

func TestShiftWholeBoard(t *testing.T) {
	for _, d := range Directions {
		got := Universe.Shift(d)
		want := 0
		for sq := A1; sq <= H8; sq++ {
			if _, ok := neighbour(sq, d); ok {
				want++
			}
		}
		if got.PopCount() != want {
			t.Errorf("Universe shifted %s has %d squares, want %d", d, got.PopCount(), want)
		}
	}
}

func TestShiftAssign(t *testing.T) {
	b := SquareBB(D4)
	b.ShiftAssign(NorthEast)
	b.ShiftAssign(NorthEast)
	if b != SquareBB(F6) {
		t.Errorf("d4 shifted NE twice = %s, want f6", b.Notation())
	}
}

func TestIterationProperties(t *testing.T) {
	f := func(raw uint64) bool {
		b := Bitboard(raw)
		prev := -1
		count := 0
		for sq := range b.All() {
			if int(sq) <= prev || !b.IsSet(sq) {
				return false
			}
			prev = int(sq)
			count++
		}
		if count != b.PopCount() {
			return false
		}

		var eager []Square
		b.ForEach(func(sq Square) { eager = append(eager, sq) })
		squares := b.Squares()
		if len(eager) != count || len(squares) != count {
			return false
		}
		i := 0
		for sq := range b.All() {
			if eager[i] != sq || squares[i] != sq {
				return false
			}
			i++
		}
		return true
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 5000}); err != nil {
		t.Error(err)
	}
}

func TestIteratorDoesNotAliasSource(t *testing.T) {
	b := FromSquares(A1, D4, H8)
	it := b.Iter()

	var got []Square
	for sq, ok := it.Next(); ok; sq, ok = it.Next() {
		got = append(got, sq)
	}

	if b != FromSquares(A1, D4, H8) {
		t.Errorf("source changed during iteration: %s", b.Notation())
	}
	if len(got) != 3 || got[0] != A1 || got[1] != D4 || got[2] != H8 {
		t.Errorf("iteration = %v, want [a1 d4 h8]", got)
	}
	if _, ok := it.Next(); ok {
		t.Error("drained iterator yielded again")
	}
	if it.Len() != 0 {
		t.Errorf("drained iterator Len() = %d, want 0", it.Len())
	}
}

func TestIterationStopsEarly(t *testing.T) {
	n := 0
	for range Universe.All() {
		n++
		if n == 3 {
			break
		}
	}
	if n != 3 {
		t.Errorf("visited %d squares, want 3", n)
	}
}

func TestSetAlgebra(t *testing.T) {
	a := FromSquares(A1, B2, C3)
	b := FromSquares(C3, D4)

	if got := a.Union(b); got != FromSquares(A1, B2, C3, D4) {
		t.Errorf("Union = %s", got.Notation())
	}
	if got := a.Intersect(b); got != SquareBB(C3) {
		t.Errorf("Intersect = %s", got.Notation())
	}
	if got := a.Difference(b); got != FromSquares(A1, B2) {
		t.Errorf("Difference = %s", got.Notation())
	}
	if got := a.Xor(b); got != FromSquares(A1, B2, D4) {
		t.Errorf("Xor = %s", got.Notation())
	}

	c := a
	c.UnionWith(b)
	c.IntersectWith(FromSquares(A1, D4, H8))
	c.DifferenceWith(SquareBB(A1))
	c.XorWith(SquareBB(E5))
	if c != FromSquares(D4, E5) {
		t.Errorf("in-place chain = %s, want d4 e5", c.Notation())
	}

	var d Bitboard
	d.Insert(G7)
	d.Insert(B2)
	d.Remove(G7)
	if d != SquareBB(B2) {
		t.Errorf("Insert/Remove = %s, want b2", d.Notation())
	}
	if !Empty.IsEmpty() || Empty.IsFull() || !Universe.IsFull() {
		t.Error("Empty/Universe predicates wrong")
	}
	if Universe.PopCount() != 64 {
		t.Errorf("Universe.PopCount() = %d", Universe.PopCount())
	}
	if Empty.LSB() != NoSquare {
		t.Errorf("Empty.LSB() = %v, want NoSquare", Empty.LSB())
	}
}

func TestFromNotation(t *testing.T) {
	tests := []struct {
		in   string
		want Bitboard
		ok   bool
	}{
		{"d4", SquareBB(D4), true},
		{"a1", SquareBB(A1), true},
		{"h8", SquareBB(H8), true},
		{"i1", Empty, false},
		{"a9", Empty, false},
		{"a0", Empty, false},
		{"d", Empty, false},
		{"d44", Empty, false},
		{"", Empty, false},
		{"D4", Empty, false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := FromNotation(tc.in)
			if tc.ok {
				if err != nil {
					t.Fatalf("FromNotation(%q) error: %v", tc.in, err)
				}
				if got != tc.want {
					t.Errorf("FromNotation(%q) = %s, want %s", tc.in, got.Notation(), tc.want.Notation())
				}
				return
			}
			if !errors.Is(err, ErrInvalidSquare) {
				t.Errorf("FromNotation(%q) error = %v, want ErrInvalidSquare", tc.in, err)
			}
			var nerr *NotationError
			if !errors.As(err, &nerr) || nerr.Input != tc.in {
				t.Errorf("FromNotation(%q) error = %#v, want *NotationError", tc.in, err)
			}
		})
	}
}

func TestNotationRoundTrip(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		b, err := FromNotation(sq.String())
		if err != nil {
			t.Fatalf("FromNotation(%s): %v", sq, err)
		}
		if b.Notation() != sq.String() {
			t.Errorf("round trip of %s gave %q", sq, b.Notation())
		}
	}
}

func TestMustSquarePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustSquare(64) did not panic")
		}
	}()
	MustSquare(64)
}

func TestStep(t *testing.T) {
	if sq, ok := D4.Step(NorthWest); !ok || sq != C5 {
		t.Errorf("d4 step NW = %v %v, want c5", sq, ok)
	}
	if _, ok := H4.Step(East); ok {
		t.Error("h4 step E should fall off the board")
	}
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Errorf("%s opposite twice != itself", d)
		}
	}
}

func TestDirectionOffsets(t *testing.T) {
	for _, d := range Directions {
		next, ok := D4.Step(d)
		if !ok {
			t.Fatalf("d4 has no %s neighbour", d)
		}
		if int(next)-int(D4) != d.Offset() {
			t.Errorf("%s offset = %d, step moved %d", d, d.Offset(), int(next)-int(D4))
		}
	}
}
