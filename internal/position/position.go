// Package position provides a FEN-backed position that supplies occupancy
// and reach to the move generator.
package position

import (
	"fmt"
	"strings"

	"github.com/jfredett/hazel-sub002/internal/attacks"
	"github.com/jfredett/hazel-sub002/internal/board"
)

// Position is a static chess position. Derived fields (Occupied,
// AllOccupied, KingSquare and the reach sets) are filled in by ParseFEN; call
// Refresh after editing Pieces directly.
type Position struct {
	// Piece bitboards: [Color][PieceType]
	Pieces [2][6]board.Bitboard

	// Occupancy bitboards
	Occupied    [2]board.Bitboard
	AllOccupied board.Bitboard

	// Game state
	Side            board.Color
	CastlingRights  board.CastlingRights
	EnPassantSquare board.Square // NoSquare if none
	HalfMoveClock   int
	FullMoveNumber  int

	// King positions, NoSquare when a side has no king
	KingSquare [2]board.Square

	table *attacks.Table
	reach [2]board.Bitboard // [Color] squares attacked by that color
}

// New returns an empty board with white to move, using table for reach.
func New(table *attacks.Table) *Position {
	return &Position{
		EnPassantSquare: board.NoSquare,
		FullMoveNumber:  1,
		KingSquare:      [2]board.Square{board.NoSquare, board.NoSquare},
		table:           table,
	}
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// Put places a piece on a square without refreshing derived state.
func (p *Position) Put(piece board.Piece, sq board.Square) {
	if piece == board.NoPiece {
		return
	}
	p.Pieces[piece.Color()][piece.Type()].Insert(sq)
}

// Refresh recomputes occupancy, king squares and both reach sets.
func (p *Position) Refresh() {
	p.Occupied = [2]board.Bitboard{}
	for pt := board.Pawn; pt <= board.King; pt++ {
		p.Occupied[board.White] |= p.Pieces[board.White][pt]
		p.Occupied[board.Black] |= p.Pieces[board.Black][pt]
	}
	p.AllOccupied = p.Occupied[board.White] | p.Occupied[board.Black]

	p.KingSquare[board.White] = p.Pieces[board.White][board.King].LSB()
	p.KingSquare[board.Black] = p.Pieces[board.Black][board.King].LSB()

	if p.table == nil {
		p.table = attacks.Default()
	}
	p.reach[board.White] = p.reachOf(board.White)
	p.reach[board.Black] = p.reachOf(board.Black)
}

// reachOf is every square color c attacks against the full occupancy.
// Squares holding c's own pieces count, so a defended piece is in reach.
func (p *Position) reachOf(c board.Color) board.Bitboard {
	reach := attacks.PawnSetAttacks(c, p.Pieces[c][board.Pawn])
	for pt := board.Knight; pt <= board.King; pt++ {
		for sq := range p.Pieces[c][pt].All() {
			reach |= p.table.AttacksFor(pt, sq, p.AllOccupied)
		}
	}
	return reach
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq board.Square) board.Piece {
	bb := board.SquareBB(sq)
	if p.AllOccupied&bb == 0 {
		return board.NoPiece
	}

	c := board.Black
	if p.Occupied[board.White]&bb != 0 {
		c = board.White
	}

	for pt := board.Pawn; pt <= board.King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return board.NewPiece(pt, c)
		}
	}
	return board.NoPiece
}

// Our returns the side to move's pieces of type pt.
func (p *Position) Our(pt board.PieceType) board.Bitboard {
	return p.Pieces[p.Side][pt]
}

// Their returns the opponent's pieces of type pt.
func (p *Position) Their(pt board.PieceType) board.Bitboard {
	return p.Pieces[p.Side.Other()][pt]
}

func (p *Position) Friendlies() board.Bitboard {
	return p.Occupied[p.Side]
}

func (p *Position) Enemies() board.Bitboard {
	return p.Occupied[p.Side.Other()]
}

// TheirReach is every square the opponent attacks.
func (p *Position) TheirReach() board.Bitboard {
	return p.reach[p.Side.Other()]
}

// OurReach is every square the side to move attacks.
func (p *Position) OurReach() board.Bitboard {
	return p.reach[p.Side]
}

func (p *Position) OurKing() board.Square {
	return p.KingSquare[p.Side]
}

func (p *Position) SideToMove() board.Color {
	return p.Side
}

func (p *Position) EnPassant() board.Square {
	return p.EnPassantSquare
}

func (p *Position) Castling() board.CastlingRights {
	return p.CastlingRights
}

// InCheck reports whether the side to move's king is in the opponent's reach.
func (p *Position) InCheck() bool {
	king := p.OurKing()
	return king.IsValid() && p.TheirReach().IsSet(king)
}

// Validate checks the position for states no game can reach.
func (p *Position) Validate() error {
	if p.Pieces[board.White][board.King].PopCount() != 1 {
		return fmt.Errorf("%w: white must have exactly one king", ErrInvalidPosition)
	}
	if p.Pieces[board.Black][board.King].PopCount() != 1 {
		return fmt.Errorf("%w: black must have exactly one king", ErrInvalidPosition)
	}
	if (p.Pieces[board.White][board.Pawn]|p.Pieces[board.Black][board.Pawn])&(board.Rank1|board.Rank8) != 0 {
		return fmt.Errorf("%w: pawns cannot be on rank 1 or 8", ErrInvalidPosition)
	}
	if p.Occupied[board.White]&p.Occupied[board.Black] != 0 {
		return fmt.Errorf("%w: squares occupied by both colors", ErrInvalidPosition)
	}
	if king := p.KingSquare[p.Side.Other()]; p.reach[p.Side].IsSet(king) {
		return fmt.Errorf("%w: side not to move is in check", ErrInvalidPosition)
	}
	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(board.NewSquare(file, rank))
			if piece == board.NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.Side)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassantSquare)
	return sb.String()
}
