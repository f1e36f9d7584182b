// Package attacks builds and queries attack sets for every piece type.
//
// Rook and bishop attacks come from dense per-square tables indexed by
// parallel bit extraction (PEXT) of the board occupancy against the square's
// relevant mask. The ray-casting functions in rays.go are the reference the
// tables are built from and checked against.
package attacks

import (
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"

	"github.com/jfredett/hazel-sub002/internal/board"
)

// Table sizes summed over all 64 squares.
const (
	RookEntries   = 102400
	BishopEntries = 5248
)

// slider holds the PEXT table for one sliding piece.
type slider struct {
	masks   [64]board.Bitboard
	offsets [64]uint32
	attacks []board.Bitboard
}

// Table is an immutable set of slider attack tables. It is safe for
// concurrent use once NewTable returns.
type Table struct {
	ext    Extractor
	rook   slider
	bishop slider
}

// Default returns the process-wide table, built on first use with Best().
var Default = sync.OnceValue(func() *Table {
	return NewTable(Best())
})

// NewTable builds rook and bishop tables indexed with ext.
func NewTable(ext Extractor) *Table {
	start := time.Now()

	t := &Table{
		ext:    ext,
		rook:   buildSlider(ext, board.Orthogonal, RookEntries),
		bishop: buildSlider(ext, board.Diagonal, BishopEntries),
	}

	log.WithFields(log.Fields{
		"extractor": ext.Name(),
		"rook":      len(t.rook.attacks),
		"bishop":    len(t.bishop.attacks),
		"elapsed":   time.Since(start),
	}).Debug("attack tables built")

	return t
}

func buildSlider(ext Extractor, dirs [4]board.Direction, size int) slider {
	s := slider{attacks: make([]board.Bitboard, size)}

	var offset uint32
	for sq := board.A1; sq <= board.H8; sq++ {
		mask := relevantMask(sq, dirs)
		entries := uint32(1) << mask.PopCount()

		s.masks[sq] = mask
		s.offsets[sq] = offset

		// Every subset of the mask, enumerated by depositing a counter.
		for i := uint32(0); i < entries; i++ {
			occ := Deposit(uint64(i), uint64(mask))
			idx := offset + uint32(ext.Extract(occ, uint64(mask)))
			s.attacks[idx] = slide(sq, board.Bitboard(occ), dirs)
		}
		offset += entries
	}

	if int(offset) != size {
		panic(fmt.Sprintf("attacks: table holds %d entries, want %d", offset, size))
	}
	return s
}

func (s *slider) lookup(ext Extractor, sq board.Square, occupied board.Bitboard) board.Bitboard {
	mask := s.masks[sq]
	return s.attacks[s.offsets[sq]+uint32(ext.Extract(uint64(occupied&mask), uint64(mask)))]
}

// Extractor returns the extractor the table indexes with.
func (t *Table) Extractor() Extractor {
	return t.ext
}

// Rook returns rook attacks from sq given the full board occupancy.
func (t *Table) Rook(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return t.rook.lookup(t.ext, sq, occupied)
}

// Bishop returns bishop attacks from sq given the full board occupancy.
func (t *Table) Bishop(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return t.bishop.lookup(t.ext, sq, occupied)
}

// Queen returns the union of rook and bishop attacks.
func (t *Table) Queen(sq board.Square, occupied board.Bitboard) board.Bitboard {
	return t.rook.lookup(t.ext, sq, occupied) | t.bishop.lookup(t.ext, sq, occupied)
}

// AttacksFor returns the attack set of piece pt on sq. Occupancy is ignored
// for knights and kings. Pawns are not supported; use PawnAttacks.
func (t *Table) AttacksFor(pt board.PieceType, sq board.Square, occupied board.Bitboard) board.Bitboard {
	checkSquare(sq)
	if pt.IsSlider() {
		var a board.Bitboard
		if pt != board.Bishop {
			a |= t.Rook(sq, occupied)
		}
		if pt != board.Rook {
			a |= t.Bishop(sq, occupied)
		}
		return a
	}
	switch pt {
	case board.Knight:
		return knightAttacks[sq]
	case board.King:
		return kingAttacks[sq]
	}
	panic(fmt.Sprintf("attacks: no attack table for %s", pt))
}

// Mask returns the relevant occupancy mask of a slider on sq.
func (t *Table) Mask(pt board.PieceType, sq board.Square) board.Bitboard {
	return t.slider(pt).masks[sq]
}

// Entries returns the size of sq's block in the slider's table.
func (t *Table) Entries(pt board.PieceType, sq board.Square) int {
	return 1 << t.slider(pt).masks[sq].PopCount()
}

// Size returns the total number of entries in the slider's table.
func (t *Table) Size(pt board.PieceType) int {
	return len(t.slider(pt).attacks)
}

func (t *Table) slider(pt board.PieceType) *slider {
	switch pt {
	case board.Rook:
		return &t.rook
	case board.Bishop:
		return &t.bishop
	}
	panic(fmt.Sprintf("attacks: %s is not a table slider", pt))
}

// Verify checks every stored entry against the ray caster. It touches all
// 107648 entries and is meant for tests and diagnostics.
func (t *Table) Verify() error {
	for _, pt := range []board.PieceType{board.Rook, board.Bishop} {
		s := t.slider(pt)
		for sq := board.A1; sq <= board.H8; sq++ {
			mask := s.masks[sq]
			entries := uint64(1) << mask.PopCount()
			for i := uint64(0); i < entries; i++ {
				occ := board.Bitboard(Deposit(i, uint64(mask)))
				got := s.lookup(t.ext, sq, occ)
				want := SlowAttacksFor(pt, sq, occ)
				if got != want {
					return fmt.Errorf("%s on %s with blockers [%s]: table has [%s], rays give [%s]",
						pt, sq, occ.Notation(), got.Notation(), want.Notation())
				}
			}
		}
	}
	return nil
}

// AttacksFor looks up attacks in the Default table.
func AttacksFor(pt board.PieceType, sq board.Square, occupied board.Bitboard) board.Bitboard {
	return Default().AttacksFor(pt, sq, occupied)
}
