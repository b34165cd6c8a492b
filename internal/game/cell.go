// Package game holds the falling-block engine: board, piece catalog,
// active-piece controller, line clearing and the session state machine.
// It knows nothing about terminals or keys.
package game

type Color uint8

const (
	Red Color = iota + 1
	Cyan
	Yellow
	Green
)

const colorCount = 4

// NextColor returns the color following c in the 1->2->3->4->1 cycle.
func NextColor(c Color) Color {
	if c >= colorCount {
		return Red
	}
	return c + 1
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Cyan:
		return "cyan"
	case Yellow:
		return "yellow"
	case Green:
		return "green"
	default:
		return "none"
	}
}

// Cell is a board square. The zero value is empty.
type Cell struct {
	color  Color
	filled bool
}

func Filled(c Color) Cell {
	return Cell{color: c, filled: true}
}

func (c Cell) Empty() bool {
	return !c.filled
}

func (c Cell) Color() (Color, bool) {
	return c.color, c.filled
}

type Point struct {
	Col int
	Row int
}

func (p Point) Add(dc, dr int) Point {
	return Point{Col: p.Col + dc, Row: p.Row + dr}
}
