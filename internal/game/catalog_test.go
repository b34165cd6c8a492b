package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogShapes(t *testing.T) {
	for _, shape := range Shapes() {
		for _, inverted := range []bool{false, true} {
			offsets := Offsets(shape, inverted)
			seen := map[Point]bool{}
			for _, p := range offsets {
				assert.GreaterOrEqual(t, p.Row, 1, "%s inverted=%v", shape, inverted)
				assert.LessOrEqual(t, p.Row, 4, "%s inverted=%v", shape, inverted)
				assert.False(t, seen[p], "%s has duplicate cell %v", shape, p)
				seen[p] = true
			}
		}
	}
}

func TestCatalogPivot(t *testing.T) {
	assert.Equal(t, -1, Pivot(ShapeO))
	assert.Equal(t, -1, Pivot(NoShape))
	for _, shape := range []Shape{ShapeI, ShapeS, ShapeT, ShapeL} {
		p := Pivot(shape)
		assert.True(t, p >= 0 && p < 4, "%s pivot %d", shape, p)
	}
}

func TestCatalogInvertedLayouts(t *testing.T) {
	assert.Equal(t, Offsets(ShapeI, false), Offsets(ShapeI, true))
	assert.Equal(t, Offsets(ShapeO, false), Offsets(ShapeO, true))
	assert.NotEqual(t, Offsets(ShapeT, false), Offsets(ShapeT, true))
	assert.Equal(t, [4]Point{{-1, 2}, {0, 1}, {0, 2}, {1, 1}}, Offsets(ShapeS, true))
	assert.Equal(t, [4]Point{}, Offsets(NoShape, false))
}

func TestNextColorCycle(t *testing.T) {
	assert.Equal(t, Red, NextColor(0))
	assert.Equal(t, Cyan, NextColor(Red))
	assert.Equal(t, Yellow, NextColor(Cyan))
	assert.Equal(t, Green, NextColor(Yellow))
	assert.Equal(t, Red, NextColor(Green))
}

func TestRandomGeneratorNeverRepeatsColor(t *testing.T) {
	gen := NewRandomGenerator(7)
	prev := Piece{}
	for i := 0; i < 200; i++ {
		p := gen.Next(prev)
		assert.NotEqual(t, NoShape, p.Shape)
		assert.NotEqual(t, prev.Color, p.Color)
		assert.Equal(t, NextColor(prev.Color), p.Color)
		prev = p
	}
}

func TestSequenceGeneratorWraps(t *testing.T) {
	gen := NewSequenceGenerator(Piece{Shape: ShapeT}, Piece{Shape: ShapeL, Inverted: true})
	a := gen.Next(Piece{})
	b := gen.Next(a)
	c := gen.Next(b)
	assert.Equal(t, ShapeT, a.Shape)
	assert.Equal(t, Red, a.Color)
	assert.Equal(t, ShapeL, b.Shape)
	assert.True(t, b.Inverted)
	assert.Equal(t, Cyan, b.Color)
	assert.Equal(t, ShapeT, c.Shape)
}
