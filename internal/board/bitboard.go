package board

import (
	"math/bits"
	"strings"
)

// Bitboard represents a 64-bit board where each bit corresponds to a square.
// Bit 0 = A1, Bit 7 = H1, Bit 56 = A8, Bit 63 = H8 (Little-Endian Rank-File Mapping).
type Bitboard uint64

// File masks
const (
	FileA Bitboard = 0x0101010101010101
	FileB Bitboard = 0x0202020202020202
	FileC Bitboard = 0x0404040404040404
	FileD Bitboard = 0x0808080808080808
	FileE Bitboard = 0x1010101010101010
	FileF Bitboard = 0x2020202020202020
	FileG Bitboard = 0x4040404040404040
	FileH Bitboard = 0x8080808080808080
)

// Rank masks
const (
	Rank1 Bitboard = 0x00000000000000FF
	Rank2 Bitboard = 0x000000000000FF00
	Rank3 Bitboard = 0x0000000000FF0000
	Rank4 Bitboard = 0x00000000FF000000
	Rank5 Bitboard = 0x000000FF00000000
	Rank6 Bitboard = 0x0000FF0000000000
	Rank7 Bitboard = 0x00FF000000000000
	Rank8 Bitboard = 0xFF00000000000000
)

// Special masks
const (
	Empty    Bitboard = 0
	Universe Bitboard = 0xFFFFFFFFFFFFFFFF

	NotFileA  Bitboard = ^FileA
	NotFileH  Bitboard = ^FileH
	NotFileAB Bitboard = ^(FileA | FileB)
	NotFileGH Bitboard = ^(FileG | FileH)

	// Edges is the outer ring of the board.
	Edges Bitboard = FileA | FileH | Rank1 | Rank8
)

// FileMask indexes the file masks by file (0-7).
var FileMask = [8]Bitboard{FileA, FileB, FileC, FileD, FileE, FileF, FileG, FileH}

// RankMask indexes the rank masks by rank (0-7).
var RankMask = [8]Bitboard{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8}

// SquareBB returns a bitboard with only the given square set.
func SquareBB(sq Square) Bitboard {
	return 1 << sq
}

// FromSquares returns a bitboard with each of the given squares set.
func FromSquares(squares ...Square) Bitboard {
	var b Bitboard
	for _, sq := range squares {
		b |= SquareBB(sq)
	}
	return b
}

// FromNotation parses a single square in algebraic notation into a one-bit board.
func FromNotation(s string) (Bitboard, error) {
	sq, err := ParseSquare(s)
	if err != nil {
		return Empty, err
	}
	return SquareBB(sq), nil
}

// Set returns a copy with the bit at sq set.
func (b Bitboard) Set(sq Square) Bitboard {
	return b | (1 << sq)
}

// Clear returns a copy with the bit at sq cleared.
func (b Bitboard) Clear(sq Square) Bitboard {
	return b &^ (1 << sq)
}

// Insert sets the bit at sq in place.
func (b *Bitboard) Insert(sq Square) {
	*b |= 1 << sq
}

// Remove clears the bit at sq in place.
func (b *Bitboard) Remove(sq Square) {
	*b &^= 1 << sq
}

// IsSet returns true if the bit at the given square is set.
func (b Bitboard) IsSet(sq Square) bool {
	return b&(1<<sq) != 0
}

func (b Bitboard) Union(o Bitboard) Bitboard      { return b | o }
func (b Bitboard) Intersect(o Bitboard) Bitboard  { return b & o }
func (b Bitboard) Difference(o Bitboard) Bitboard { return b &^ o }
func (b Bitboard) Xor(o Bitboard) Bitboard        { return b ^ o }

func (b *Bitboard) UnionWith(o Bitboard)      { *b |= o }
func (b *Bitboard) IntersectWith(o Bitboard)  { *b &= o }
func (b *Bitboard) DifferenceWith(o Bitboard) { *b &^= o }
func (b *Bitboard) XorWith(o Bitboard)        { *b ^= o }

// PopCount returns the number of set bits (population count).
func (b Bitboard) PopCount() int {
	return bits.OnesCount64(uint64(b))
}

// LSB returns the least significant bit (lowest square index).
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros64(uint64(b)))
}

// PopLSB removes and returns the least significant bit.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// IsEmpty returns true if no bits are set.
func (b Bitboard) IsEmpty() bool {
	return b == 0
}

// IsFull returns true if every square is set.
func (b Bitboard) IsFull() bool {
	return b == Universe
}

// Shift moves every set bit one step in direction d. Bits that would leave
// the board or wrap onto the opposite file are dropped by d's landing mask.
func (b Bitboard) Shift(d Direction) Bitboard {
	if d > NorthWest {
		panic("board: invalid direction " + d.String())
	}
	if o := d.Offset(); o > 0 {
		return (b << o) & d.Mask()
	}
	return (b >> -d.Offset()) & d.Mask()
}

// ShiftAssign shifts the bitboard in place.
func (b *Bitboard) ShiftAssign(d Direction) {
	*b = b.Shift(d)
}

// North shifts the bitboard one rank up (toward rank 8).
func (b Bitboard) North() Bitboard { return b.Shift(North) }

// South shifts the bitboard one rank down (toward rank 1).
func (b Bitboard) South() Bitboard { return b.Shift(South) }

// East shifts the bitboard one file right (toward file h).
func (b Bitboard) East() Bitboard { return b.Shift(East) }

// West shifts the bitboard one file left (toward file a).
func (b Bitboard) West() Bitboard { return b.Shift(West) }

func (b Bitboard) NorthEast() Bitboard { return b.Shift(NorthEast) }
func (b Bitboard) NorthWest() Bitboard { return b.Shift(NorthWest) }
func (b Bitboard) SouthEast() Bitboard { return b.Shift(SouthEast) }
func (b Bitboard) SouthWest() Bitboard { return b.Shift(SouthWest) }

// String returns a visual representation of the bitboard, rank 8 first.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte(byte('1' + rank))
		sb.WriteByte(' ')
		for file := 0; file < 8; file++ {
			if b.IsSet(NewSquare(file, rank)) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}

// Notation lists the set squares in ascending order, space separated.
func (b Bitboard) Notation() string {
	names := make([]string, 0, b.PopCount())
	for sq := range b.All() {
		names = append(names, sq.String())
	}
	return strings.Join(names, " ")
}
