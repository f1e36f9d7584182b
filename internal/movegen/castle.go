package movegen

import (
	"iter"

	"github.com/jfredett/hazel-sub002/internal/board"
)

// castle describes one castling move relative to the home rank.
type castle struct {
	short   bool
	rook    int   // rook's starting file
	kingTo  int   // king's destination file
	between []int // files that must be empty
	path    []int // files the king stands on or crosses
}

var castles = [2]castle{
	{short: true, rook: 7, kingTo: 6, between: []int{5, 6}, path: []int{4, 5, 6}},
	{short: false, rook: 0, kingTo: 2, between: []int{1, 2, 3}, path: []int{4, 3, 2}},
}

// Castles generates short then long castling for the side to move. A castle
// needs the right, the king and rook on their home squares, empty squares in
// between, and a king path outside the opponent's reach. Checks further than
// that belong to legality filtering.
func (g *Generator) Castles(pos Position) iter.Seq[board.Move] {
	return func(yield func(board.Move) bool) {
		us := pos.SideToMove()
		rank := us.HomeRank()
		kingFrom := board.NewSquare(4, rank)

		if pos.OurKing() != kingFrom {
			return
		}

		rights := pos.Castling()
		blockers := pos.Enemies() | pos.Friendlies()
		reach := pos.TheirReach()
		rooks := pos.Our(board.Rook)

		for _, c := range castles {
			if !rights.CanCastle(us, c.short) || !rooks.IsSet(board.NewSquare(c.rook, rank)) {
				continue
			}
			if blockers&filesOnRank(c.between, rank) != 0 || reach&filesOnRank(c.path, rank) != 0 {
				continue
			}
			if !yield(board.NewMove(kingFrom, board.NewSquare(c.kingTo, rank), board.CastleType(us, c.short))) {
				return
			}
		}
	}
}

func filesOnRank(files []int, rank int) board.Bitboard {
	var bb board.Bitboard
	for _, f := range files {
		bb.Insert(board.NewSquare(f, rank))
	}
	return bb
}
