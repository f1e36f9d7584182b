// Package movegen turns attack sets into pseudo-legal moves.
//
// Every generator returns a lazy sequence in a fixed order: source squares
// ascending, captures before quiet moves, targets ascending. Generators hold
// no state beyond the attack table, so one Generator may be shared by any
// number of goroutines.
package movegen

import "github.com/jfredett/hazel-sub002/internal/board"

// Occupancy is the read-only view of a position the piece generators need.
// Our and Friendlies are from the side to move's point of view.
type Occupancy interface {
	Our(pt board.PieceType) board.Bitboard
	Enemies() board.Bitboard
	Friendlies() board.Bitboard
	// TheirReach is every square the opponent attacks.
	TheirReach() board.Bitboard
	OurKing() board.Square
}

// Position adds the state pawn and castling moves depend on.
type Position interface {
	Occupancy
	SideToMove() board.Color
	// EnPassant is the en passant target square, or board.NoSquare.
	EnPassant() board.Square
	Castling() board.CastlingRights
}
