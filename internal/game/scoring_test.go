package game

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestScoreFor(t *testing.T) {
	cases := []struct {
		rows, level int
		want        uint64
	}{
		{0, 5, 0},
		{1, 1, 40},
		{2, 1, 100},
		{3, 3, 900},
		{4, 1, 1200},
		{4, 7, 8400},
		{6, 2, 2400},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScoreFor(tc.rows, tc.level), "rows=%d level=%d", tc.rows, tc.level)
	}
}

func TestStatsAward(t *testing.T) {
	s := NewStats()
	assert.Equal(t, 1, s.Level)
	assert.Zero(t, s.Award(0))

	assert.Equal(t, uint64(300), s.Award(3))
	assert.Equal(t, 3, s.Lines)

	for s.Lines < 27 {
		s.Award(1)
	}
	assert.Equal(t, 27, s.Lines)
	assert.Equal(t, 3, s.Level)

	before := s.Score
	assert.Equal(t, uint64(1200*3), s.Award(4))
	assert.Equal(t, before+3600, s.Score)
	assert.Equal(t, 4, s.Level)
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 1, LevelFor(0))
	assert.Equal(t, 1, LevelFor(9))
	assert.Equal(t, 2, LevelFor(10))
	assert.Equal(t, 3, LevelFor(27))
	assert.Equal(t, 31, LevelFor(300))
}

func TestClearLinesCompactsStack(t *testing.T) {
	b := NewBoard()
	b.Set(4, 15, Filled(Red))
	fillRow(b, 16, Cyan)
	b.Set(2, 17, Filled(Yellow))
	fillRow(b, 18, Green)

	want := NewBoard()
	want.Set(4, 17, Filled(Red))
	want.Set(2, 18, Filled(Yellow))

	assert.Equal(t, 2, ClearLines(b))
	if diff := cmp.Diff(want.Rows(), b.Rows(), cmp.AllowUnexported(Cell{})); diff != "" {
		t.Fatalf("board mismatch (-want +got):\n%s", diff)
	}
}

func TestClearLinesNothingToDo(t *testing.T) {
	b := NewBoard()
	fillRow(b, 18, Red, 10)
	assert.Zero(t, ClearLines(b))
	assert.Equal(t, Width-1, b.Occupied())
}

func TestClearLinesConservesCells(t *testing.T) {
	for seed := int64(1); seed <= 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := NewBoard()
		for r := 6; r <= Height; r++ {
			if rng.Intn(3) == 0 {
				fillRow(b, r, Red)
				continue
			}
			for c := 1; c <= Width; c++ {
				if rng.Intn(2) == 0 {
					b.Set(c, r, Filled(Cyan))
				}
			}
		}
		before := b.Occupied()
		full := len(b.FullRows())
		cleared := ClearLines(b)
		assert.Equal(t, full, cleared, "seed %d", seed)
		assert.Equal(t, before-cleared*Width, b.Occupied(), "seed %d", seed)
		assert.Empty(t, b.FullRows(), "seed %d", seed)
	}
}
