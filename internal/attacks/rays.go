package attacks

import (
	"fmt"

	"github.com/jfredett/hazel-sub002/internal/board"
)

// slide casts a ray from sq in each direction, one step at a time, stopping
// after the first occupied square or at the board edge.
func slide(sq board.Square, occupied board.Bitboard, dirs [4]board.Direction) board.Bitboard {
	var attacks board.Bitboard
	for _, d := range dirs {
		ray := board.SquareBB(sq)
		for {
			ray = ray.Shift(d)
			if ray.IsEmpty() {
				break
			}
			attacks |= ray
			if ray&occupied != 0 {
				break
			}
		}
	}
	return attacks
}

// SlowRook computes rook attacks by ray casting.
func SlowRook(sq board.Square, occupied board.Bitboard) board.Bitboard {
	checkSquare(sq)
	return slide(sq, occupied, board.Orthogonal)
}

// SlowBishop computes bishop attacks by ray casting.
func SlowBishop(sq board.Square, occupied board.Bitboard) board.Bitboard {
	checkSquare(sq)
	return slide(sq, occupied, board.Diagonal)
}

// SlowAttacksFor is the ray-casting counterpart of Table.AttacksFor. Knight
// and king attacks come from the jump tables, which have no slow form.
func SlowAttacksFor(pt board.PieceType, sq board.Square, occupied board.Bitboard) board.Bitboard {
	switch pt {
	case board.Bishop:
		return SlowBishop(sq, occupied)
	case board.Rook:
		return SlowRook(sq, occupied)
	case board.Queen:
		return SlowBishop(sq, occupied) | SlowRook(sq, occupied)
	case board.Knight:
		return KnightAttacks(sq)
	case board.King:
		return KingAttacks(sq)
	}
	panic(fmt.Sprintf("attacks: no attack set for %s", pt))
}

// relevantMask returns the squares whose occupancy can change the slider's
// attack set: every ray square except the last one before the edge.
func relevantMask(sq board.Square, dirs [4]board.Direction) board.Bitboard {
	var mask board.Bitboard
	for _, d := range dirs {
		ray := board.SquareBB(sq).Shift(d)
		for !ray.IsEmpty() {
			next := ray.Shift(d)
			if next.IsEmpty() {
				break
			}
			mask |= ray
			ray = next
		}
	}
	return mask
}

func checkSquare(sq board.Square) {
	if !sq.IsValid() {
		panic(fmt.Sprintf("attacks: square %d out of range", sq))
	}
}
