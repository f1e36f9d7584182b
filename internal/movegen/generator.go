package movegen

import (
	"fmt"
	"iter"
	"slices"

	"github.com/jfredett/hazel-sub002/internal/attacks"
	"github.com/jfredett/hazel-sub002/internal/board"
)

// Generator produces pseudo-legal moves using one attack table.
type Generator struct {
	table *attacks.Table
}

// New returns a generator backed by t.
func New(t *attacks.Table) *Generator {
	return &Generator{table: t}
}

// Default returns a generator backed by attacks.Default().
func Default() *Generator {
	return New(attacks.Default())
}

// Table returns the attack table the generator looks up.
func (g *Generator) Table() *attacks.Table {
	return g.table
}

// Knights generates knight captures and quiet moves.
func (g *Generator) Knights(occ Occupancy) iter.Seq[board.Move] {
	return g.pieceMoves(board.Knight, occ, board.Universe)
}

// Bishops generates bishop captures and quiet moves.
func (g *Generator) Bishops(occ Occupancy) iter.Seq[board.Move] {
	return g.pieceMoves(board.Bishop, occ, board.Universe)
}

// Rooks generates rook captures and quiet moves.
func (g *Generator) Rooks(occ Occupancy) iter.Seq[board.Move] {
	return g.pieceMoves(board.Rook, occ, board.Universe)
}

// Queens generates queen captures and quiet moves.
func (g *Generator) Queens(occ Occupancy) iter.Seq[board.Move] {
	return g.pieceMoves(board.Queen, occ, board.Universe)
}

// Kings generates king captures and quiet moves, skipping any square in the
// opponent's reach. Castling is generated separately by Castles.
func (g *Generator) Kings(occ Occupancy) iter.Seq[board.Move] {
	return g.pieceMoves(board.King, occ, ^occ.TheirReach())
}

// Pieces dispatches to the generator for pt. Pawns need a full Position and
// are rejected here.
func (g *Generator) Pieces(pt board.PieceType, occ Occupancy) iter.Seq[board.Move] {
	switch pt {
	case board.Knight:
		return g.Knights(occ)
	case board.Bishop:
		return g.Bishops(occ)
	case board.Rook:
		return g.Rooks(occ)
	case board.Queen:
		return g.Queens(occ)
	case board.King:
		return g.Kings(occ)
	}
	panic(fmt.Sprintf("movegen: no occupancy-only generator for %s", pt))
}

// pieceMoves emits, per source square ascending, captures then quiet moves,
// each ascending by target. Targets outside allowed are dropped.
func (g *Generator) pieceMoves(pt board.PieceType, occ Occupancy, allowed board.Bitboard) iter.Seq[board.Move] {
	return func(yield func(board.Move) bool) {
		if Debug {
			validate(pieceGroup(pt), occ)
		}

		enemies := occ.Enemies()
		blockers := enemies | occ.Friendlies()

		for from := range occ.Our(pt).All() {
			targets := g.table.AttacksFor(pt, from, blockers) & allowed

			for to := range (targets & enemies).All() {
				if !yield(board.NewMove(from, to, board.Capture)) {
					return
				}
			}
			for to := range (targets &^ blockers).All() {
				if !yield(board.NewMove(from, to, board.Quiet)) {
					return
				}
			}
		}
	}
}

const castleGroup = "castle"

// groupNames follows board.PieceType order, then castling.
var groupNames = []string{"pawn", "knight", "bishop", "rook", "queen", "king", castleGroup}

// GroupNames returns the generator group names in the order All chains them.
// It needs no attack table.
func GroupNames() []string {
	return slices.Clone(groupNames)
}

func pieceGroup(pt board.PieceType) string {
	return groupNames[pt]
}

// Group names one generator in the order All chains them.
type Group struct {
	Name     string
	Generate func(Position) iter.Seq[board.Move]
}

// Groups returns the generators All chains, in order.
func (g *Generator) Groups() []Group {
	return []Group{
		{pieceGroup(board.Pawn), g.Pawns},
		{pieceGroup(board.Knight), func(p Position) iter.Seq[board.Move] { return g.Knights(p) }},
		{pieceGroup(board.Bishop), func(p Position) iter.Seq[board.Move] { return g.Bishops(p) }},
		{pieceGroup(board.Rook), func(p Position) iter.Seq[board.Move] { return g.Rooks(p) }},
		{pieceGroup(board.Queen), func(p Position) iter.Seq[board.Move] { return g.Queens(p) }},
		{pieceGroup(board.King), func(p Position) iter.Seq[board.Move] { return g.Kings(p) }},
		{castleGroup, g.Castles},
	}
}

// Group looks up a generator by name.
func (g *Generator) Group(name string) (Group, error) {
	for _, grp := range g.Groups() {
		if grp.Name == name {
			return grp, nil
		}
	}
	return Group{}, fmt.Errorf("unknown move group: %s", name)
}

// All chains every group: pawns, knights, bishops, rooks, queens, king,
// then castling.
func (g *Generator) All(pos Position) iter.Seq[board.Move] {
	groups := g.Groups()
	return func(yield func(board.Move) bool) {
		for _, grp := range groups {
			for m := range grp.Generate(pos) {
				if !yield(m) {
					return
				}
			}
		}
	}
}

// AppendTo adds every move of seq to ml.
func AppendTo(ml *board.MoveList, seq iter.Seq[board.Move]) {
	for m := range seq {
		ml.Add(m)
	}
}

// Collect drains seq into a slice.
func Collect(seq iter.Seq[board.Move]) []board.Move {
	return slices.Collect(seq)
}
