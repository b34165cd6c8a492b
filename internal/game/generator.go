package game

import "math/rand"

// Generator produces the piece that follows prev.
type Generator interface {
	Next(prev Piece) Piece
}

// RandomGenerator draws a uniform shape and orientation. The color always
// advances one step in the 4-cycle so two consecutive pieces never share it.
type RandomGenerator struct {
	rng *rand.Rand
}

func NewRandomGenerator(seed int64) *RandomGenerator {
	return &RandomGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *RandomGenerator) Next(prev Piece) Piece {
	shapes := Shapes()
	return Piece{
		Shape:    shapes[g.rng.Intn(len(shapes))],
		Inverted: g.rng.Intn(2) == 1,
		Color:    NextColor(prev.Color),
	}
}

// SequenceGenerator replays a fixed list of shapes, wrapping around at the
// end. Colors follow the same cycle as RandomGenerator.
type SequenceGenerator struct {
	pieces []Piece
	pos    int
}

func NewSequenceGenerator(pieces ...Piece) *SequenceGenerator {
	return &SequenceGenerator{pieces: pieces}
}

func (g *SequenceGenerator) Next(prev Piece) Piece {
	if len(g.pieces) == 0 {
		return Piece{Shape: ShapeO, Color: NextColor(prev.Color)}
	}
	p := g.pieces[g.pos%len(g.pieces)]
	g.pos++
	p.Color = NextColor(prev.Color)
	return p
}
