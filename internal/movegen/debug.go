package movegen

import (
	"github.com/apex/log"

	"github.com/jfredett/hazel-sub002/internal/board"
)

// Debug enables occupancy sanity checks at the start of every generator.
// Problems are logged, never fixed up.
var Debug = false

func validate(group string, occ Occupancy) {
	friendlies := occ.Friendlies()
	enemies := occ.Enemies()
	ctx := log.WithField("group", group)

	if overlap := friendlies & enemies; overlap != 0 {
		ctx.WithField("squares", overlap.Notation()).Warn("friendly and enemy occupancy overlap")
	}

	for _, pt := range board.PieceTypes {
		if stray := occ.Our(pt) &^ friendlies; stray != 0 {
			ctx.WithFields(log.Fields{
				"piece":   pt.String(),
				"squares": stray.Notation(),
			}).Warn("pieces missing from friendly occupancy")
		}
	}

	king := occ.Our(board.King)
	if king.PopCount() != 1 {
		ctx.WithField("kings", king.PopCount()).Warn("side to move does not have exactly one king")
	} else if occ.OurKing() != king.LSB() {
		ctx.WithFields(log.Fields{
			"reported": occ.OurKing().String(),
			"board":    king.LSB().String(),
		}).Warn("king square disagrees with king bitboard")
	}
}
