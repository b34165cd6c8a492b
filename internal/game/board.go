package game

import "fmt"

const (
	Width  = 10
	Height = 18
)

// Board is the playfield. Columns run 1..Width left to right and rows
// 1..Height top to bottom; index 0 and Width+1/Height+1 are a margin that
// is never written.
type Board struct {
	cells [Width + 2][Height + 2]Cell
}

func NewBoard() *Board {
	return &Board{}
}

func InBounds(col, row int) bool {
	return col >= 1 && col <= Width && row >= 1 && row <= Height
}

// IsEmpty reports whether a piece may occupy (col,row). Anything outside the
// playfield counts as blocked.
func (b *Board) IsEmpty(col, row int) bool {
	if !InBounds(col, row) {
		return false
	}
	return b.cells[col][row].Empty()
}

func (b *Board) At(col, row int) Cell {
	if !InBounds(col, row) {
		return Cell{}
	}
	return b.cells[col][row]
}

func (b *Board) Set(col, row int, cell Cell) {
	if !InBounds(col, row) {
		panic(fmt.Sprintf("game: set outside board at (%d,%d)", col, row))
	}
	b.cells[col][row] = cell
}

func (b *Board) ClearRow(row int) {
	for c := 1; c <= Width; c++ {
		b.cells[c][row] = Cell{}
	}
}

// CompactFrom shifts rows row..1 down by one, then clears row 1. After
// deleting row d, CompactFrom(d-1) settles the stack above it.
func (b *Board) CompactFrom(row int) {
	if row > Height-1 {
		row = Height - 1
	}
	for r := row; r >= 1; r-- {
		for c := 1; c <= Width; c++ {
			b.cells[c][r+1] = b.cells[c][r]
		}
	}
	b.ClearRow(1)
}

func (b *Board) rowFull(row int) bool {
	for c := 1; c <= Width; c++ {
		if b.cells[c][row].Empty() {
			return false
		}
	}
	return true
}

// FullRows returns the complete rows from top to bottom.
func (b *Board) FullRows() []int {
	var rows []int
	for r := 1; r <= Height; r++ {
		if b.rowFull(r) {
			rows = append(rows, r)
		}
	}
	return rows
}

func (b *Board) Occupied() int {
	n := 0
	for c := 1; c <= Width; c++ {
		for r := 1; r <= Height; r++ {
			if !b.cells[c][r].Empty() {
				n++
			}
		}
	}
	return n
}

// Rows copies the playfield row-major with 0-based indices, the layout
// renderers iterate over.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, Height)
	for r := range rows {
		rows[r] = make([]Cell, Width)
		for c := range rows[r] {
			rows[r][c] = b.cells[c+1][r+1]
		}
	}
	return rows
}

func (b *Board) Reset() {
	b.cells = [Width + 2][Height + 2]Cell{}
}
