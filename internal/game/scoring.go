package game

var lineScores = [5]uint64{0, 40, 100, 300, 1200}

// ScoreFor returns the points for clearing rows lines at once on level.
// Four or more rows pay the four-row bonus.
func ScoreFor(rows, level int) uint64 {
	if rows <= 0 || level <= 0 {
		return 0
	}
	if rows > 4 {
		rows = 4
	}
	return lineScores[rows] * uint64(level)
}

type Stats struct {
	Score uint64
	Lines int
	Level int
}

func NewStats() Stats {
	return Stats{Level: 1}
}

// Award books a lock that cleared rows lines and returns the points earned.
// The multiplier is the level before the new lines count.
func (s *Stats) Award(rows int) uint64 {
	if rows <= 0 {
		return 0
	}
	delta := ScoreFor(rows, s.Level)
	s.Score += delta
	s.Lines += rows
	s.Level = LevelFor(s.Lines)
	return delta
}

func LevelFor(lines int) int {
	return lines/10 + 1
}

// ClearLines deletes full rows one at a time, re-scanning after every
// deletion, and returns how many were removed.
func ClearLines(b *Board) int {
	cleared := 0
	for {
		rows := b.FullRows()
		if len(rows) == 0 {
			return cleared
		}
		row := rows[0]
		b.ClearRow(row)
		b.CompactFrom(row - 1)
		cleared++
	}
}
