package attacks

import (
	"math/rand/v2"
	"sync"
	"testing"
	"testing/quick"

	"github.com/dylhunn/dragontoothmg"

	"github.com/jfredett/hazel-sub002/internal/board"
)

// extractors returns every extractor usable on this machine.
func extractors() []Extractor {
	exts := []Extractor{Software{}}
	if hw, ok := Hardware(); ok {
		exts = append(exts, hw)
	}
	return exts
}

// sampleOccupancy mixes dense and sparse boards.
func sampleOccupancy(r *rand.Rand) board.Bitboard {
	switch r.IntN(3) {
	case 0:
		return board.Bitboard(r.Uint64())
	case 1:
		return board.Bitboard(r.Uint64() & r.Uint64())
	default:
		return board.Bitboard(r.Uint64() & r.Uint64() & r.Uint64())
	}
}

func TestMaskPopcounts(t *testing.T) {
	tbl := Default()

	tests := []struct {
		pt       board.PieceType
		min, max int
		total    int
	}{
		{board.Rook, 10, 12, RookEntries},
		{board.Bishop, 5, 9, BishopEntries},
	}

	for _, tc := range tests {
		t.Run(tc.pt.String(), func(t *testing.T) {
			sum := 0
			for sq := board.A1; sq <= board.H8; sq++ {
				mask := tbl.Mask(tc.pt, sq)
				n := mask.PopCount()
				if n < tc.min || n > tc.max {
					t.Errorf("mask popcount on %s = %d, want %d..%d", sq, n, tc.min, tc.max)
				}
				if mask.IsSet(sq) {
					t.Errorf("mask on %s includes the source square", sq)
				}
				if got := tbl.Entries(tc.pt, sq); got != 1<<n {
					t.Errorf("Entries(%s) = %d, want %d", sq, got, 1<<n)
				}
				sum += tbl.Entries(tc.pt, sq)
			}
			if sum != tc.total || tbl.Size(tc.pt) != tc.total {
				t.Errorf("total entries = %d (Size %d), want %d", sum, tbl.Size(tc.pt), tc.total)
			}
		})
	}
}

func TestKnownMasks(t *testing.T) {
	tbl := Default()

	tests := []struct {
		pt   board.PieceType
		sq   board.Square
		want int
	}{
		{board.Rook, board.A1, 12},
		{board.Rook, board.H8, 12},
		{board.Rook, board.D4, 10},
		{board.Rook, board.A4, 11},
		{board.Bishop, board.A1, 6},
		{board.Bishop, board.D4, 9},
		{board.Bishop, board.B1, 5},
		{board.Bishop, board.E5, 9},
	}

	for _, tc := range tests {
		if got := tbl.Mask(tc.pt, tc.sq).PopCount(); got != tc.want {
			t.Errorf("%s mask on %s has %d squares, want %d", tc.pt, tc.sq, got, tc.want)
		}
	}
	if tbl.Mask(board.Rook, board.A1)&board.SquareBB(board.A8) != 0 {
		t.Error("rook mask on a1 includes the edge square a8")
	}
}

func TestVerify(t *testing.T) {
	for _, ext := range extractors() {
		t.Run(ext.Name(), func(t *testing.T) {
			if err := NewTable(ext).Verify(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestFastMatchesSlow(t *testing.T) {
	const samplesPerSquare = 1 << 14 // 64 * 2^14 = 2^20 per piece

	for _, ext := range extractors() {
		tbl := NewTable(ext)
		t.Run(ext.Name(), func(t *testing.T) {
			r := rand.New(rand.NewPCG(0x5eed, uint64(len(ext.Name()))))
			for sq := board.A1; sq <= board.H8; sq++ {
				for i := 0; i < samplesPerSquare; i++ {
					occ := sampleOccupancy(r)
					if got, want := tbl.Rook(sq, occ), SlowRook(sq, occ); got != want {
						t.Fatalf("Rook(%s, %#x) = %#x, want %#x", sq, uint64(occ), uint64(got), uint64(want))
					}
					if got, want := tbl.Bishop(sq, occ), SlowBishop(sq, occ); got != want {
						t.Fatalf("Bishop(%s, %#x) = %#x, want %#x", sq, uint64(occ), uint64(got), uint64(want))
					}
				}
			}
		})
	}
}

func TestMatchesDragontooth(t *testing.T) {
	tbl := Default()
	r := rand.New(rand.NewPCG(7, 11))

	for i := 0; i < 50000; i++ {
		sq := board.Square(r.IntN(64))
		occ := sampleOccupancy(r)

		if got, want := tbl.Rook(sq, occ), dragontoothmg.CalculateRookMoveBitboard(uint8(sq), uint64(occ)); uint64(got) != want {
			t.Fatalf("Rook(%s, %#x) = %#x, dragontoothmg gives %#x", sq, uint64(occ), uint64(got), want)
		}
		if got, want := tbl.Bishop(sq, occ), dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), uint64(occ)); uint64(got) != want {
			t.Fatalf("Bishop(%s, %#x) = %#x, dragontoothmg gives %#x", sq, uint64(occ), uint64(got), want)
		}
	}
}

func TestSlowAttacksKnownPositions(t *testing.T) {
	mustBB := func(squares ...board.Square) board.Bitboard { return board.FromSquares(squares...) }

	tests := []struct {
		name string
		pt   board.PieceType
		sq   board.Square
		occ  board.Bitboard
		want board.Bitboard
	}{
		{
			name: "rook d4 blocked on d6 f4 d3",
			pt:   board.Rook, sq: board.D4,
			occ:  mustBB(board.D6, board.F4, board.D3, board.D1),
			want: mustBB(board.D5, board.D6, board.E4, board.F4, board.D3, board.C4, board.B4, board.A4),
		},
		{
			name: "bishop d4 blocked on c3 e3 b6 f6",
			pt:   board.Bishop, sq: board.D4,
			occ:  mustBB(board.C3, board.E3, board.B6, board.F6),
			want: mustBB(board.C3, board.E3, board.C5, board.B6, board.E5, board.F6),
		},
		{
			name: "rook a1 empty board",
			pt:   board.Rook, sq: board.A1,
			occ:  board.Empty,
			want: (board.FileA | board.Rank1) &^ board.SquareBB(board.A1),
		},
		{
			name: "queen d4 ring of blockers",
			pt:   board.Queen, sq: board.D4,
			occ:  KingAttacks(board.D4),
			want: KingAttacks(board.D4),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SlowAttacksFor(tc.pt, tc.sq, tc.occ); got != tc.want {
				t.Errorf("SlowAttacksFor = [%s], want [%s]", got.Notation(), tc.want.Notation())
			}
			if got := Default().AttacksFor(tc.pt, tc.sq, tc.occ); got != tc.want {
				t.Errorf("AttacksFor = [%s], want [%s]", got.Notation(), tc.want.Notation())
			}
		})
	}
}

func TestJumpTables(t *testing.T) {
	tests := []struct {
		pt   board.PieceType
		sq   board.Square
		want int
	}{
		{board.Knight, board.A1, 2},
		{board.Knight, board.B1, 3},
		{board.Knight, board.B2, 4},
		{board.Knight, board.A4, 4},
		{board.Knight, board.D4, 8},
		{board.Knight, board.H8, 2},
		{board.King, board.A1, 3},
		{board.King, board.A4, 5},
		{board.King, board.D4, 8},
		{board.King, board.H8, 3},
	}

	for _, tc := range tests {
		got := AttacksFor(tc.pt, tc.sq, board.Universe)
		if got.PopCount() != tc.want {
			t.Errorf("%s on %s attacks %d squares (%s), want %d", tc.pt, tc.sq, got.PopCount(), got.Notation(), tc.want)
		}
	}

	if got := KnightAttacks(board.D4); got != board.FromSquares(board.C2, board.E2, board.B3, board.F3, board.B5, board.F5, board.C6, board.E6) {
		t.Errorf("KnightAttacks(d4) = %s", got.Notation())
	}
}

func TestPawnAttacks(t *testing.T) {
	if got := PawnAttacks(board.White, board.A2); got != board.SquareBB(board.B3) {
		t.Errorf("white a2 = %s, want b3", got.Notation())
	}
	if got := PawnAttacks(board.Black, board.E5); got != board.FromSquares(board.D4, board.F4) {
		t.Errorf("black e5 = %s, want d4 f4", got.Notation())
	}
	pawns := board.FromSquares(board.A2, board.H2, board.D4)
	want := board.FromSquares(board.B3, board.G3, board.C5, board.E5)
	if got := PawnSetAttacks(board.White, pawns); got != want {
		t.Errorf("PawnSetAttacks = %s, want %s", got.Notation(), want.Notation())
	}
}

func TestAttacksForPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"square out of range", func() { Default().AttacksFor(board.Rook, board.NoSquare, 0) }},
		{"pawn", func() { Default().AttacksFor(board.Pawn, board.D4, 0) }},
		{"slow out of range", func() { SlowBishop(board.Square(70), 0) }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tc.fn()
		})
	}
}

func TestExtractDeposit(t *testing.T) {
	sw := Software{}
	f := func(src, mask uint64) bool {
		if sw.Extract(Deposit(src, mask), mask) != src&(1<<popcount(mask)-1) {
			return false
		}
		return Deposit(sw.Extract(src, mask), mask) == src&mask
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 10000}); err != nil {
		t.Error(err)
	}

	if got := sw.Extract(0b1011_0100, 0b1111_0000); got != 0b1011 {
		t.Errorf("Extract = %#b, want 0b1011", got)
	}
}

func TestHardwareMatchesSoftware(t *testing.T) {
	hw, ok := Hardware()
	if !ok {
		t.Skip("no hardware extractor on this CPU")
	}
	sw := Software{}
	f := func(src, mask uint64) bool {
		return hw.Extract(src, mask) == sw.Extract(src, mask)
	}
	if err := quick.Check(f, &quick.Config{MaxCount: 100000}); err != nil {
		t.Error(err)
	}
}

func TestByName(t *testing.T) {
	if ext, err := ByName("software"); err != nil || ext.Name() != "software" {
		t.Errorf("ByName(software) = %v, %v", ext, err)
	}
	if _, err := ByName("auto"); err != nil {
		t.Errorf("ByName(auto): %v", err)
	}
	if _, err := ByName("quantum"); err == nil {
		t.Error("ByName(quantum) succeeded")
	}
	if _, ok := Hardware(); !ok {
		if _, err := ByName("hardware"); err != ErrNoHardware {
			t.Errorf("ByName(hardware) error = %v, want ErrNoHardware", err)
		}
	}
}

func TestDefaultConcurrentInit(t *testing.T) {
	var wg sync.WaitGroup
	tables := make([]*Table, 16)
	for i := range tables {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tables[i] = Default()
		}()
	}
	wg.Wait()

	for i, tbl := range tables {
		if tbl != tables[0] {
			t.Fatalf("goroutine %d saw a different table", i)
		}
	}
	if got := tables[0].Rook(board.D4, board.Empty).PopCount(); got != 14 {
		t.Errorf("rook on empty board attacks %d squares, want 14", got)
	}
}

func popcount(x uint64) uint {
	n := uint(0)
	for ; x != 0; x &= x - 1 {
		n++
	}
	return n
}
