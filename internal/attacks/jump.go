package attacks

import "github.com/jfredett/hazel-sub002/internal/board"

// Pre-computed attack tables for non-sliding pieces
var (
	knightAttacks [64]board.Bitboard
	kingAttacks   [64]board.Bitboard
	pawnAttacks   [2][64]board.Bitboard // [Color][Square]
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
}

func initKnightAttacks() {
	for sq := board.A1; sq <= board.H8; sq++ {
		bb := board.SquareBB(sq)

		attacks := board.Empty

		// Up 2, left/right 1
		attacks |= (bb << 17) & board.NotFileA  // NNE
		attacks |= (bb << 15) & board.NotFileH  // NNW
		attacks |= (bb >> 17) & board.NotFileH  // SSW
		attacks |= (bb >> 15) & board.NotFileA  // SSE

		// Up 1, left/right 2
		attacks |= (bb << 10) & board.NotFileAB // ENE
		attacks |= (bb << 6) & board.NotFileGH  // WNW
		attacks |= (bb >> 10) & board.NotFileGH // WSW
		attacks |= (bb >> 6) & board.NotFileAB  // ESE

		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := board.A1; sq <= board.H8; sq++ {
		bb := board.SquareBB(sq)
		var attacks board.Bitboard
		for _, d := range board.Directions {
			attacks |= bb.Shift(d)
		}
		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := board.A1; sq <= board.H8; sq++ {
		bb := board.SquareBB(sq)
		pawnAttacks[board.White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[board.Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq board.Square) board.Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq board.Square) board.Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the squares a pawn of color c on sq attacks.
func PawnAttacks(c board.Color, sq board.Square) board.Bitboard {
	return pawnAttacks[c][sq]
}

// PawnSetAttacks returns every square attacked by the pawns in pawns.
func PawnSetAttacks(c board.Color, pawns board.Bitboard) board.Bitboard {
	advance := pawns.Shift(c.PawnDirection())
	return advance.East() | advance.West()
}
