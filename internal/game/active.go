package game

// Direction of a rotation. Rows grow downward, so a clockwise turn maps an
// offset (dc, dr) from the pivot to (-dr, dc).
type Direction int

const (
	Clockwise        Direction = -1
	CounterClockwise Direction = 1
)

// SpawnShifts are the spawn columns tried in order, center first.
var SpawnShifts = [10]int{5, 6, 4, 7, 3, 8, 2, 9, 1, 10}

var kickShifts = [4]int{-1, 1, -2, 2}

// ActivePiece is the falling tetromino. Pivot indexes Cells, -1 when the
// piece has no rotation center.
type ActivePiece struct {
	Cells [4]Point
	Pivot int
	Color Color
	Piece Piece
}

// Controller moves the active piece over a board. All writes go through the
// board's indexed accessors.
type Controller struct {
	board  *Board
	active ActivePiece
	live   bool
}

func NewController(board *Board) *Controller {
	return &Controller{board: board}
}

func (c *Controller) Board() *Board {
	return c.board
}

func (c *Controller) Active() (ActivePiece, bool) {
	return c.active, c.live
}

func (c *Controller) CanSpawn(p Piece, shift int) bool {
	if p.None() {
		return true
	}
	for _, off := range Offsets(p.Shape, p.Inverted) {
		if !c.board.IsEmpty(off.Col+shift, off.Row) {
			return false
		}
	}
	return true
}

func (c *Controller) CanSpawnAnywhere(p Piece) bool {
	for _, shift := range SpawnShifts {
		if c.CanSpawn(p, shift) {
			return true
		}
	}
	return false
}

// Spawn places p at the first free column of SpawnShifts and makes it the
// active piece. It reports false when no column fits.
func (c *Controller) Spawn(p Piece) bool {
	if p.None() {
		panic("game: spawn of an empty piece")
	}
	for _, shift := range SpawnShifts {
		if !c.CanSpawn(p, shift) {
			continue
		}
		offsets := Offsets(p.Shape, p.Inverted)
		piece := ActivePiece{Pivot: Pivot(p.Shape), Color: p.Color, Piece: p}
		for i, off := range offsets {
			piece.Cells[i] = off.Add(shift, 0)
		}
		c.active = piece
		c.live = true
		c.paint(Filled(p.Color))
		return true
	}
	return false
}

func (c *Controller) paint(cell Cell) {
	for _, p := range c.active.Cells {
		c.board.Set(p.Col, p.Row, cell)
	}
}

// fits reports whether every target is inside the board and empty. The
// active cells must already be lifted.
func (c *Controller) fits(targets [4]Point) bool {
	for _, p := range targets {
		if !c.board.IsEmpty(p.Col, p.Row) {
			return false
		}
	}
	return true
}

// check runs fn with the active cells lifted off the board.
func (c *Controller) check(fn func() bool) bool {
	if !c.live {
		return false
	}
	c.paint(Cell{})
	ok := fn()
	c.paint(Filled(c.active.Color))
	return ok
}

func (c *Controller) translated(dh, dv int) [4]Point {
	var out [4]Point
	for i, p := range c.active.Cells {
		out[i] = p.Add(dh, dv)
	}
	return out
}

func (c *Controller) CanMove(dh, dv int) bool {
	return c.check(func() bool {
		return c.fits(c.translated(dh, dv))
	})
}

// Move shifts all four cells or none of them.
func (c *Controller) Move(dh, dv int) bool {
	if !c.live {
		return false
	}
	c.paint(Cell{})
	target := c.translated(dh, dv)
	ok := c.fits(target)
	if ok {
		c.active.Cells = target
	}
	c.paint(Filled(c.active.Color))
	return ok
}

func (c *Controller) rotates() bool {
	return c.live && c.active.Piece.Shape != ShapeO && c.active.Pivot >= 0
}

func (c *Controller) rotated(dir Direction) [4]Point {
	pivot := c.active.Cells[c.active.Pivot]
	d := int(dir)
	var out [4]Point
	for i, p := range c.active.Cells {
		dc := pivot.Col - p.Col
		dr := pivot.Row - p.Row
		out[i] = Point{Col: pivot.Col - dr*d, Row: pivot.Row + dc*d}
	}
	return out
}

func (c *Controller) CanRotate(dir Direction) bool {
	if !c.rotates() {
		return false
	}
	return c.check(func() bool {
		return c.fits(c.rotated(dir))
	})
}

func (c *Controller) Rotate(dir Direction) bool {
	if !c.rotates() {
		return false
	}
	c.paint(Cell{})
	target := c.rotated(dir)
	ok := c.fits(target)
	if ok {
		c.active.Cells = target
	}
	c.paint(Filled(c.active.Color))
	return ok
}

// TryRotate rotates in place or, failing that, after one of the horizontal
// kicks. As a last resort the piece drops one row and tries again there; the
// drop is kept even when that rotation fails too.
func (c *Controller) TryRotate(dir Direction) bool {
	if !c.rotates() {
		return false
	}
	if c.Rotate(dir) {
		return true
	}
	for _, dh := range kickShifts {
		if !c.Move(dh, 0) {
			continue
		}
		if c.Rotate(dir) {
			return true
		}
		c.Move(-dh, 0)
	}
	if c.Move(0, 1) {
		return c.Rotate(dir)
	}
	return false
}

// DropDistance is how many rows the piece can still fall.
func (c *Controller) DropDistance() int {
	if !c.live {
		return 0
	}
	n := 0
	c.check(func() bool {
		for c.fits(c.translated(0, n+1)) {
			n++
		}
		return true
	})
	return n
}

// Ghost returns the cells the piece would occupy after a hard drop.
func (c *Controller) Ghost() [4]Point {
	return c.translated(0, c.DropDistance())
}

// Lock leaves the cells on the board and stops tracking them.
func (c *Controller) Lock() {
	c.active = ActivePiece{}
	c.live = false
}

// Lift removes the active piece from the board entirely.
func (c *Controller) Lift() {
	if !c.live {
		return
	}
	c.paint(Cell{})
	c.Lock()
}
