package game

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newTestSession(shapes ...Shape) *Session {
	pieces := make([]Piece, 0, len(shapes))
	for _, s := range shapes {
		pieces = append(pieces, Piece{Shape: s})
	}
	return NewSession(WithGenerator(NewSequenceGenerator(pieces...)))
}

func TestSessionStart(t *testing.T) {
	s := newTestSession(ShapeT, ShapeL)
	assert.Equal(t, StatusIdle, s.Status())

	res := s.Start(t0)
	assert.False(t, res.GameOver)
	assert.Equal(t, PhaseFalling, s.Phase())
	assert.Equal(t, StatusRunning, s.Status())

	v := s.View()
	assert.Equal(t, ShapeT, v.Current.Shape)
	assert.Equal(t, Red, v.ActiveColor)
	assert.Equal(t, ShapeL, v.Next.Shape)
	assert.Equal(t, Cyan, v.Next.Color)
	assert.True(t, v.Held.None())
	assert.Len(t, v.Active, 4)
	assert.Len(t, v.Ghost, 4)
	assert.Equal(t, 1, v.Stats.Level)

	before := v.Active
	s.Start(t0)
	assert.Equal(t, before, s.View().Active, "Start is ignored while running")
}

func TestSessionIgnoresCommandsWhenIdle(t *testing.T) {
	s := newTestSession(ShapeT)
	assert.Equal(t, Result{}, s.Handle(CmdHardDrop, t0))
	assert.Equal(t, Result{}, s.Tick(t0.Add(time.Hour)))
	assert.Zero(t, s.board.Occupied())
	assert.True(t, s.NextDeadline().IsZero())
}

func TestSessionGravity(t *testing.T) {
	s := newTestSession(ShapeO)
	s.Start(t0)
	top := s.View().Active[0].Row
	assert.Equal(t, t0.Add(time.Second), s.NextDeadline())

	res := s.Tick(t0.Add(500 * time.Millisecond))
	assert.False(t, res.Moved)
	assert.Equal(t, top, s.View().Active[0].Row)

	res = s.Tick(t0.Add(time.Second))
	assert.True(t, res.Moved)
	assert.Equal(t, top+1, s.View().Active[0].Row)
	assert.Equal(t, t0.Add(2*time.Second), s.NextDeadline())
}

func TestSessionLockDelay(t *testing.T) {
	s := newTestSession(ShapeO, ShapeT)
	s.Start(t0)
	for s.Handle(CmdSoftDrop, t0).Moved {
	}
	assert.Equal(t, t0.Add(time.Second), s.lockAt)

	res := s.Handle(CmdMoveLeft, t0.Add(300*time.Millisecond))
	require.True(t, res.Moved)
	assert.Equal(t, t0.Add(time.Second), s.lockAt, "a grounded slide keeps the running delay")

	res = s.Tick(t0.Add(time.Second))
	assert.False(t, res.Locked)
	assert.Equal(t, PhaseFalling, s.Phase())

	res = s.Tick(t0.Add(time.Second + time.Millisecond))
	assert.True(t, res.Locked)
	assert.Equal(t, PhaseFalling, s.Phase())
	assert.Equal(t, ShapeT, s.View().Current.Shape)
	assert.Equal(t, 8, s.board.Occupied())
}

func TestSessionLockDelayResetsWhenFree(t *testing.T) {
	s := newTestSession(ShapeO)
	s.Start(t0)
	s.board.Set(5, 5, Filled(Green))
	s.board.Set(7, 4, Filled(Green))
	for s.Handle(CmdSoftDrop, t0).Moved {
	}
	require.False(t, s.lockAt.IsZero())

	res := s.Handle(CmdMoveRightMax, t0.Add(100*time.Millisecond))
	require.False(t, res.Moved, "the stack at column 7 blocks the slide")
	s.board.Set(7, 4, Cell{})
	res = s.Handle(CmdMoveRight, t0.Add(200*time.Millisecond))
	require.True(t, res.Moved)
	assert.True(t, s.lockAt.IsZero(), "a piece that can fall again is no longer grounded")
}

func TestSessionHardDropMatchesSoftDrops(t *testing.T) {
	for _, shape := range Shapes() {
		hard := newTestSession(shape, ShapeL)
		soft := newTestSession(shape, ShapeL)
		hard.Start(t0)
		soft.Start(t0)
		for _, s := range []*Session{hard, soft} {
			s.Handle(CmdMoveLeft, t0)
			s.Handle(CmdRotateCW, t0)
		}

		res := hard.Handle(CmdHardDrop, t0)
		require.True(t, res.Locked, shape.String())

		drops := 0
		for soft.Handle(CmdSoftDrop, t0).Moved {
			drops++
		}
		assert.Equal(t, res.Dropped, drops, shape.String())
		res = soft.Tick(t0.Add(2 * time.Second))
		require.True(t, res.Locked, shape.String())

		if diff := cmp.Diff(hard.View().Board, soft.View().Board, cmp.AllowUnexported(Cell{})); diff != "" {
			t.Errorf("%s: boards differ (-hard +soft):\n%s", shape, diff)
		}
	}
}

func TestSessionTetrisScore(t *testing.T) {
	s := newTestSession(ShapeI, ShapeO)
	s.Start(t0)
	for r := Height - 3; r <= Height; r++ {
		fillRow(s.board, r, Green, 1)
	}
	s.stats = Stats{Score: 500, Lines: 20, Level: 3}

	require.True(t, s.Handle(CmdMoveLeftMax, t0).Moved)
	res := s.Handle(CmdHardDrop, t0)
	assert.True(t, res.Locked)
	assert.Equal(t, 4, res.Cleared)
	assert.Equal(t, uint64(1200*3), res.Points)

	st := s.Stats()
	assert.Equal(t, uint64(500+3600), st.Score)
	assert.Equal(t, 24, st.Lines)
	assert.Equal(t, 3, st.Level)
	assert.Equal(t, 4, s.board.Occupied(), "only the new O remains")
}

func TestSessionScoreNeverDecreases(t *testing.T) {
	s := NewSession(WithGenerator(NewRandomGenerator(3)))
	s.Start(t0)
	now := t0
	var last uint64
	cmds := []Command{CmdMoveLeft, CmdRotateCW, CmdMoveRightMax, CmdHardDrop, CmdMoveLeftMax, CmdRotateCCW, CmdHardDrop}
	for i := 0; i < 400 && s.Status() == StatusRunning; i++ {
		now = now.Add(50 * time.Millisecond)
		s.Handle(cmds[i%len(cmds)], now)
		s.Tick(now)
		assert.GreaterOrEqual(t, s.Stats().Score, last)
		last = s.Stats().Score
	}
}

func TestSessionHold(t *testing.T) {
	s := newTestSession(ShapeI, ShapeT, ShapeL, ShapeS)
	s.Start(t0)
	v := s.View()
	require.Equal(t, ShapeI, v.Current.Shape)
	require.Equal(t, ShapeT, v.Next.Shape)

	res := s.Handle(CmdHold, t0)
	assert.True(t, res.Held)
	v = s.View()
	assert.Equal(t, ShapeI, v.Held.Shape)
	assert.Equal(t, Red, v.Held.Color)
	assert.Equal(t, ShapeT, v.Current.Shape)
	assert.Equal(t, ShapeL, v.Next.Shape)
	assert.True(t, v.HoldUsed)
	assert.Equal(t, 4, s.board.Occupied())

	active := v.Active
	res = s.Handle(CmdHold, t0)
	assert.False(t, res.Held)
	v = s.View()
	assert.Equal(t, active, v.Active)
	assert.Equal(t, ShapeI, v.Held.Shape)
	assert.Equal(t, ShapeT, v.Current.Shape)

	s.Handle(CmdHardDrop, t0)
	v = s.View()
	assert.False(t, v.HoldUsed)
	assert.Equal(t, ShapeL, v.Current.Shape)

	res = s.Handle(CmdHold, t0)
	assert.True(t, res.Held)
	v = s.View()
	assert.Equal(t, ShapeI, v.Current.Shape, "the held piece comes back")
	assert.Equal(t, ShapeL, v.Held.Shape)
	assert.Equal(t, ShapeS, v.Next.Shape, "swapping does not consume the next piece")
	assert.Equal(t, 8, s.board.Occupied())
}

func TestSessionHoldRefusedWhenIncomingCannotSpawn(t *testing.T) {
	s := newTestSession(ShapeI, ShapeO)
	s.Start(t0)
	for c := 1; c <= Width; c++ {
		for r := 1; r <= 2; r++ {
			if c%2 == 0 && s.board.IsEmpty(c, r) {
				s.board.Set(c, r, Filled(Green))
			}
		}
	}
	res := s.Handle(CmdHold, t0)
	assert.False(t, res.Held)
	assert.True(t, s.View().Held.None())
	assert.Equal(t, ShapeI, s.View().Current.Shape)
	assert.Equal(t, PhaseFalling, s.Phase())
}

func TestSessionGameOver(t *testing.T) {
	s := newTestSession(ShapeO)
	s.Start(t0)
	for c := 1; c <= Width; c++ {
		for r := 1; r <= Height; r++ {
			if (c+r)%2 == 1 && s.board.IsEmpty(c, r) {
				s.board.Set(c, r, Filled(Green))
			}
		}
	}
	require.Empty(t, s.board.FullRows())

	res := s.Handle(CmdHardDrop, t0)
	assert.True(t, res.Locked)
	assert.True(t, res.GameOver)
	assert.Equal(t, PhaseGameOver, s.Phase())
	assert.Equal(t, StatusGameOver, s.View().Status)
	assert.Nil(t, s.View().Active)

	assert.Equal(t, Result{}, s.Handle(CmdMoveLeft, t0))
	assert.Equal(t, Result{}, s.Tick(t0.Add(time.Minute)))

	s.Start(t0)
	assert.Equal(t, StatusRunning, s.Status())
	assert.Equal(t, 4, s.board.Occupied())
}

func TestSessionFastSlide(t *testing.T) {
	s := newTestSession(ShapeO)
	s.Start(t0)
	s.Handle(CmdToggleFastSlide, t0)
	assert.True(t, s.View().FastSlide)

	require.True(t, s.Handle(CmdMoveRight, t0).Moved)
	assert.ElementsMatch(t, []Point{{9, 1}, {9, 2}, {10, 1}, {10, 2}}, s.View().Active)
	assert.False(t, s.View().FastSlide)

	require.True(t, s.Handle(CmdMoveLeft, t0).Moved)
	assert.ElementsMatch(t, []Point{{8, 1}, {8, 2}, {9, 1}, {9, 2}}, s.View().Active)
}

func TestSessionUnknownCommand(t *testing.T) {
	s := newTestSession(ShapeT)
	s.Start(t0)
	before := s.View()
	assert.Equal(t, Result{}, s.Handle(Command(99), t0))
	assert.Equal(t, Result{}, s.Handle(CmdQuit, t0))
	assert.Equal(t, before.Active, s.View().Active)
	assert.Equal(t, "unknown", Command(99).String())
}

func TestSessionReset(t *testing.T) {
	s := newTestSession(ShapeT)
	s.Start(t0)
	s.Handle(CmdHardDrop, t0)
	s.Reset()
	assert.Equal(t, StatusIdle, s.Status())
	assert.Zero(t, s.board.Occupied())
	assert.Equal(t, NewStats(), s.Stats())
}

func TestGravityPeriodCapped(t *testing.T) {
	r := DefaultRules()
	assert.Equal(t, time.Second, r.GravityPeriod(1))
	assert.Equal(t, 250*time.Millisecond, r.GravityPeriod(4))
	assert.Equal(t, 50*time.Millisecond, r.GravityPeriod(20))
	assert.Equal(t, r.GravityPeriod(20), r.GravityPeriod(35))
	assert.Equal(t, time.Second, r.GravityPeriod(0))
}

func TestGravityFollowsLevel(t *testing.T) {
	s := newTestSession(ShapeI, ShapeO)
	s.Start(t0)
	s.stats.Level = 4
	s.Handle(CmdHardDrop, t0)
	assert.Equal(t, t0.Add(250*time.Millisecond), s.NextDeadline())
}

func TestSessionDelay(t *testing.T) {
	s := newTestSession(ShapeO)
	s.Start(t0)
	for s.Handle(CmdSoftDrop, t0).Moved {
	}
	s.Delay(5 * time.Second)
	assert.Equal(t, t0.Add(6*time.Second), s.NextDeadline())

	res := s.Tick(t0.Add(3 * time.Second))
	assert.False(t, res.Locked, "paused time does not count toward the lock delay")
	res = s.Tick(t0.Add(7 * time.Second))
	assert.True(t, res.Locked)
}
