package board

// Direction is one of the eight compass directions on the board.
type Direction uint8

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Directions lists all eight directions clockwise from North.
var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

// Orthogonal directions are the ones a rook slides along.
var Orthogonal = [4]Direction{North, East, South, West}

// Diagonal directions are the ones a bishop slides along.
var Diagonal = [4]Direction{NorthEast, SouthEast, SouthWest, NorthWest}

var directionNames = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Index delta of one step, by direction.
var directionOffsets = [8]int{8, 9, 1, -7, -8, -9, -1, 7}

// Landing masks remove bits that wrapped onto the opposite file.
var directionMasks = [8]Bitboard{Universe, NotFileA, NotFileA, NotFileA, Universe, NotFileH, NotFileH, NotFileH}

func (d Direction) String() string {
	if d > NorthWest {
		return "?"
	}
	return directionNames[d]
}

// Offset returns the index delta of a single step in this direction.
func (d Direction) Offset() int {
	return directionOffsets[d]
}

// Mask returns the edge mask applied after shifting in this direction.
func (d Direction) Mask() Bitboard {
	return directionMasks[d]
}

// Opposite returns the direction rotated by 180 degrees.
func (d Direction) Opposite() Direction {
	return (d + 4) & 7
}

// Step returns the neighbouring square in direction d, or false at the edge.
func (sq Square) Step(d Direction) (Square, bool) {
	next := SquareBB(sq).Shift(d)
	if next.IsEmpty() {
		return NoSquare, false
	}
	return next.LSB(), true
}
