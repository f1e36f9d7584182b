package movegen

import (
	"iter"

	"github.com/jfredett/hazel-sub002/internal/attacks"
	"github.com/jfredett/hazel-sub002/internal/board"
)

// Per-target promotion order.
var promotionOrder = [4]board.PieceType{board.Rook, board.Queen, board.Knight, board.Bishop}

// Pawns generates pawn moves for the side to move in this order: double
// pushes, single pushes, captures, push promotions, capture promotions,
// en passant. Captures list east-side targets before west-side ones.
func (g *Generator) Pawns(pos Position) iter.Seq[board.Move] {
	return func(yield func(board.Move) bool) {
		if Debug {
			validate(pieceGroup(board.Pawn), pos)
		}

		us := pos.SideToMove()
		fwd := us.PawnDirection()
		step := fwd.Offset()

		pawns := pos.Our(board.Pawn)
		enemies := pos.Enemies()
		empty := ^(enemies | pos.Friendlies())

		promoting := pawns & us.PromotionRank()
		plain := pawns &^ promoting

		// emit yields one move per target, tracing the source back by delta.
		emit := func(targets board.Bitboard, delta int, t board.MoveType) bool {
			for to := range targets.All() {
				if !yield(board.NewMove(board.Square(int(to)-delta), to, t)) {
					return false
				}
			}
			return true
		}

		emitPromotions := func(targets board.Bitboard, delta int, capture bool) bool {
			for to := range targets.All() {
				from := board.Square(int(to) - delta)
				for _, pt := range promotionOrder {
					if !yield(board.NewMove(from, to, board.PromotionType(pt, capture))) {
						return false
					}
				}
			}
			return true
		}

		single := (pawns & us.PawnStartRank()).Shift(fwd) & empty
		if !emit(single.Shift(fwd)&empty, 2*step, board.DoublePawn) {
			return
		}

		if !emit(plain.Shift(fwd)&empty, step, board.Quiet) {
			return
		}

		for _, side := range [2]board.Direction{board.East, board.West} {
			if !emit(plain.Shift(fwd).Shift(side)&enemies, step+side.Offset(), board.Capture) {
				return
			}
		}

		if !emitPromotions(promoting.Shift(fwd)&empty, step, false) {
			return
		}

		for _, side := range [2]board.Direction{board.East, board.West} {
			if !emitPromotions(promoting.Shift(fwd).Shift(side)&enemies, step+side.Offset(), true) {
				return
			}
		}

		ep := pos.EnPassant()
		if !ep.IsValid() || ep.RelativeRank(us) != 5 {
			return
		}
		for from := range (attacks.PawnAttacks(us.Other(), ep) & pawns).All() {
			if !yield(board.NewMove(from, ep, board.EnPassant)) {
				return
			}
		}
	}
}
