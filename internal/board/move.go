package board

import "fmt"

// MoveType tags what kind of move a Move is.
// Bit 3 marks captures, bit 4 marks promotions.
type MoveType uint8

const (
	Quiet            MoveType = 0
	DoublePawn       MoveType = 1
	ShortCastleWhite MoveType = 2
	LongCastleWhite  MoveType = 3
	ShortCastleBlack MoveType = 4
	LongCastleBlack  MoveType = 5
	NullMove         MoveType = 6

	Capture   MoveType = captureFlag
	EnPassant MoveType = captureFlag | 1

	PromoteKnight MoveType = promotionFlag
	PromoteBishop MoveType = promotionFlag | 1
	PromoteRook   MoveType = promotionFlag | 2
	PromoteQueen  MoveType = promotionFlag | 3

	PromoteCaptureKnight MoveType = promotionFlag | captureFlag
	PromoteCaptureBishop MoveType = promotionFlag | captureFlag | 1
	PromoteCaptureRook   MoveType = promotionFlag | captureFlag | 2
	PromoteCaptureQueen  MoveType = promotionFlag | captureFlag | 3
)

const (
	captureFlag   = 1 << 3
	promotionFlag = 1 << 4
	moveTypeMask  = 0x1F
)

var moveTypeNames = map[MoveType]string{
	Quiet:                "QUIET",
	DoublePawn:           "DOUBLE_PAWN",
	ShortCastleWhite:     "SHORT_CASTLE_WHITE",
	LongCastleWhite:      "LONG_CASTLE_WHITE",
	ShortCastleBlack:     "SHORT_CASTLE_BLACK",
	LongCastleBlack:      "LONG_CASTLE_BLACK",
	NullMove:             "NULLMOVE",
	Capture:              "CAPTURE",
	EnPassant:            "EN_PASSANT",
	PromoteKnight:        "PROMOTION_KNIGHT",
	PromoteBishop:        "PROMOTION_BISHOP",
	PromoteRook:          "PROMOTION_ROOK",
	PromoteQueen:         "PROMOTION_QUEEN",
	PromoteCaptureKnight: "PROMOTION_CAPTURE_KNIGHT",
	PromoteCaptureBishop: "PROMOTION_CAPTURE_BISHOP",
	PromoteCaptureRook:   "PROMOTION_CAPTURE_ROOK",
	PromoteCaptureQueen:  "PROMOTION_CAPTURE_QUEEN",
}

// MoveTypes lists every valid move type in ascending tag order.
var MoveTypes = []MoveType{
	Quiet, DoublePawn,
	ShortCastleWhite, LongCastleWhite, ShortCastleBlack, LongCastleBlack,
	NullMove, Capture, EnPassant,
	PromoteKnight, PromoteBishop, PromoteRook, PromoteQueen,
	PromoteCaptureKnight, PromoteCaptureBishop, PromoteCaptureRook, PromoteCaptureQueen,
}

func (t MoveType) String() string {
	if name, ok := moveTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MoveType(%d)", uint8(t))
}

// ParseMoveType is the inverse of MoveType.String.
func ParseMoveType(s string) (MoveType, error) {
	for t, name := range moveTypeNames {
		if name == s {
			return t, nil
		}
	}
	return Quiet, fmt.Errorf("invalid move type: %s", s)
}

// IsValid reports whether t is one of the defined move types.
func (t MoveType) IsValid() bool {
	_, ok := moveTypeNames[t]
	return ok
}

// IsCapture is true for captures, en passant and capture-promotions.
func (t MoveType) IsCapture() bool {
	return t&captureFlag != 0
}

func (t MoveType) IsPromotion() bool {
	return t&promotionFlag != 0
}

func (t MoveType) IsCastle() bool {
	return t >= ShortCastleWhite && t <= LongCastleBlack
}

// Promotion returns the promoted-to piece, or NoPieceType.
func (t MoveType) Promotion() PieceType {
	if !t.IsPromotion() {
		return NoPieceType
	}
	return Knight + PieceType(t&3)
}

// PromotionType returns the promotion tag for pt, with or without capture.
func PromotionType(pt PieceType, capture bool) MoveType {
	t := promotionFlag | MoveType(pt-Knight)&3
	if capture {
		t |= captureFlag
	}
	return t
}

// CastleType returns the castle tag for the given side and wing.
func CastleType(c Color, short bool) MoveType {
	t := ShortCastleWhite + MoveType(c)*2
	if !short {
		t++
	}
	return t
}

// Move encodes a chess move in 17 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-16: move type
type Move uint32

// NoMove is the encoded null move.
const NoMove Move = Move(NullMove) << 12

// NewMove packs a move. It panics if either square is off the board.
func NewMove(from, to Square, t MoveType) Move {
	if !from.IsValid() || !to.IsValid() {
		panic(fmt.Sprintf("board: move %d->%d has a square off the board", from, to))
	}
	return Move(from&0x3F) | Move(to&0x3F)<<6 | Move(t&moveTypeMask)<<12
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Type returns the move type tag.
func (m Move) Type() MoveType {
	return MoveType((m >> 12) & moveTypeMask)
}

func (m Move) IsNull() bool {
	return m.Type() == NullMove
}

func (m Move) IsCapture() bool {
	return m.Type().IsCapture()
}

func (m Move) IsPromotion() bool {
	return m.Type().IsPromotion()
}

// String returns the long algebraic form of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m.IsNull() {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Type().Promotion().Char())
	}
	return s
}

// Describe returns the move with its type, e.g. "d4c6 CAPTURE".
func (m Move) Describe() string {
	return m.String() + " " + m.Type().String()
}

// ParseMove parses a move in the Describe format.
func ParseMove(s string) (Move, error) {
	var coords, kind string
	if _, err := fmt.Sscan(s, &coords, &kind); err != nil {
		return NoMove, fmt.Errorf("invalid move string %q: %w", s, err)
	}

	t, err := ParseMoveType(kind)
	if err != nil {
		return NoMove, err
	}
	if t == NullMove {
		return NoMove, nil
	}
	if len(coords) < 4 {
		return NoMove, fmt.Errorf("invalid move string: %s", s)
	}

	from, err := ParseSquare(coords[0:2])
	if err != nil {
		return NoMove, err
	}
	to, err := ParseSquare(coords[2:4])
	if err != nil {
		return NoMove, err
	}

	return NewMove(from, to, t), nil
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
