package game

type Shape uint8

const (
	NoShape Shape = iota
	ShapeI
	ShapeS
	ShapeO
	ShapeT
	ShapeL
)

func (s Shape) String() string {
	switch s {
	case ShapeI:
		return "I"
	case ShapeS:
		return "S"
	case ShapeO:
		return "O"
	case ShapeT:
		return "T"
	case ShapeL:
		return "L"
	default:
		return "-"
	}
}

// Shapes lists the playable shapes in catalog order.
func Shapes() []Shape {
	return []Shape{ShapeI, ShapeS, ShapeO, ShapeT, ShapeL}
}

// Piece describes a tetromino that is not on the board yet: the next piece,
// the held piece or the one about to spawn. The zero Piece means none.
type Piece struct {
	Shape    Shape
	Inverted bool
	Color    Color
}

func (p Piece) None() bool {
	return p.Shape == NoShape
}

type shapeDef struct {
	normal   [4]Point
	inverted [4]Point
	pivot    int
}

// Offsets are relative to the spawn column, rows start at 1.
var catalog = [...]shapeDef{
	ShapeI: {
		normal:   [4]Point{{0, 1}, {0, 2}, {0, 3}, {0, 4}},
		inverted: [4]Point{{0, 1}, {0, 2}, {0, 3}, {0, 4}},
		pivot:    2,
	},
	ShapeS: {
		normal:   [4]Point{{-1, 1}, {0, 1}, {0, 2}, {1, 2}},
		inverted: [4]Point{{-1, 2}, {0, 1}, {0, 2}, {1, 1}},
		pivot:    2,
	},
	ShapeO: {
		normal:   [4]Point{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		inverted: [4]Point{{0, 1}, {0, 2}, {1, 1}, {1, 2}},
		pivot:    -1,
	},
	ShapeT: {
		normal:   [4]Point{{-1, 1}, {0, 1}, {1, 1}, {0, 2}},
		inverted: [4]Point{{-1, 2}, {0, 1}, {1, 2}, {0, 2}},
		pivot:    1,
	},
	ShapeL: {
		normal:   [4]Point{{0, 1}, {0, 2}, {0, 3}, {1, 3}},
		inverted: [4]Point{{0, 1}, {0, 2}, {0, 3}, {1, 1}},
		pivot:    1,
	},
}

// Offsets returns the four spawn cells of a shape relative to its spawn
// column. NoShape has no cells and returns the zero array.
func Offsets(s Shape, inverted bool) [4]Point {
	if s == NoShape || int(s) >= len(catalog) {
		return [4]Point{}
	}
	if inverted {
		return catalog[s].inverted
	}
	return catalog[s].normal
}

// Pivot returns the index of the rotation center among Offsets, or -1 when
// the shape does not rotate.
func Pivot(s Shape) int {
	if s == NoShape || int(s) >= len(catalog) {
		return -1
	}
	return catalog[s].pivot
}
