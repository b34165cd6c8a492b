package game

import (
	"time"

	"github.com/rs/zerolog"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSpawning
	PhaseFalling
	PhaseLocking
	PhaseClearing
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSpawning:
		return "spawning"
	case PhaseFalling:
		return "falling"
	case PhaseLocking:
		return "locking"
	case PhaseClearing:
		return "clearing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Status is the coarse state shown to the player.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusGameOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusGameOver:
		return "game over"
	default:
		return "idle"
	}
}

// Session runs one game at a time: spawn, fall, lock, clear, spawn again
// until a piece no longer fits. It is not safe for concurrent use; the
// owner feeds it commands and ticks from a single loop.
type Session struct {
	rules Rules
	gen   Generator
	log   zerolog.Logger

	board *Board
	ctl   *Controller

	phase     Phase
	stats     Stats
	current   Piece
	next      Piece
	held      Piece
	holdUsed  bool
	fastSlide bool

	gravityAt time.Time
	lockAt    time.Time
}

type Option func(*Session)

func WithRules(r Rules) Option {
	return func(s *Session) {
		s.rules = r
	}
}

func WithGenerator(g Generator) Option {
	return func(s *Session) {
		s.gen = g
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}

func NewSession(opts ...Option) *Session {
	board := NewBoard()
	s := &Session{
		rules: DefaultRules(),
		log:   zerolog.Nop(),
		board: board,
		ctl:   NewController(board),
		stats: NewStats(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = NewRandomGenerator(time.Now().UnixNano())
	}
	return s
}

func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) Status() Status {
	switch s.phase {
	case PhaseIdle:
		return StatusIdle
	case PhaseGameOver:
		return StatusGameOver
	default:
		return StatusRunning
	}
}

func (s *Session) Stats() Stats {
	return s.stats
}

func (s *Session) Rules() Rules {
	return s.rules
}

// Start begins a fresh game. It does nothing while a game is running.
func (s *Session) Start(now time.Time) Result {
	var res Result
	if s.phase != PhaseIdle && s.phase != PhaseGameOver {
		return res
	}
	s.clear()
	s.next = s.gen.Next(Piece{})
	s.log.Debug().Str("next", s.next.Shape.String()).Msg("session start")
	s.setPhase(PhaseSpawning)
	s.advance(now, &res)
	return res
}

// Reset abandons the current game and returns to idle.
func (s *Session) Reset() {
	s.clear()
	s.setPhase(PhaseIdle)
}

func (s *Session) clear() {
	s.board.Reset()
	s.ctl.Lock()
	s.stats = NewStats()
	s.current = Piece{}
	s.next = Piece{}
	s.held = Piece{}
	s.holdUsed = false
	s.fastSlide = false
	s.gravityAt = time.Time{}
	s.lockAt = time.Time{}
}

func (s *Session) setPhase(p Phase) {
	if s.phase == p {
		return
	}
	s.log.Debug().Stringer("from", s.phase).Stringer("to", p).Msg("phase")
	s.phase = p
}

// advance runs the transient phases to completion so callers only ever see
// a session that is idle, falling or over.
func (s *Session) advance(now time.Time, res *Result) {
	for {
		switch s.phase {
		case PhaseSpawning:
			s.spawnNext(now, res)
		case PhaseLocking:
			s.ctl.Lock()
			s.holdUsed = false
			res.Locked = true
			s.setPhase(PhaseClearing)
		case PhaseClearing:
			rows := ClearLines(s.board)
			if rows > 0 {
				points := s.stats.Award(rows)
				res.Cleared += rows
				res.Points += points
				s.log.Debug().
					Int("rows", rows).
					Uint64("points", points).
					Int("level", s.stats.Level).
					Msg("lines cleared")
			}
			s.setPhase(PhaseSpawning)
		default:
			return
		}
	}
}

func (s *Session) spawnNext(now time.Time, res *Result) {
	piece := s.next
	if !s.place(piece, now) {
		s.log.Debug().Str("shape", piece.Shape.String()).Msg("spawn blocked")
		res.GameOver = true
		s.setPhase(PhaseGameOver)
		return
	}
	s.next = s.gen.Next(piece)
	s.setPhase(PhaseFalling)
}

// place spawns p as the current piece and restarts both timers.
func (s *Session) place(p Piece, now time.Time) bool {
	if !s.ctl.Spawn(p) {
		return false
	}
	s.current = p
	s.gravityAt = now.Add(s.rules.GravityPeriod(s.stats.Level))
	s.lockAt = time.Time{}
	s.ground(now)
	return true
}

// ground arms the lock delay the first time the piece rests on something,
// keeps a running delay untouched and drops it once the piece is free again.
func (s *Session) ground(now time.Time) {
	if s.ctl.CanMove(0, 1) {
		s.lockAt = time.Time{}
		return
	}
	if s.lockAt.IsZero() {
		s.lockAt = now.Add(s.rules.LockDelay)
	}
}

// Tick applies gravity and lock delay for the current time.
func (s *Session) Tick(now time.Time) Result {
	var res Result
	if s.phase != PhaseFalling {
		return res
	}
	if !now.Before(s.gravityAt) {
		if s.ctl.Move(0, 1) {
			res.Moved = true
			res.Dropped = 1
		}
		s.gravityAt = now.Add(s.rules.GravityPeriod(s.stats.Level))
	}
	s.ground(now)
	if !s.lockAt.IsZero() && now.After(s.lockAt) {
		s.setPhase(PhaseLocking)
		s.advance(now, &res)
	}
	return res
}

// Handle applies a player command. Commands outside the falling phase and
// unknown commands are ignored.
func (s *Session) Handle(cmd Command, now time.Time) Result {
	var res Result
	if s.phase != PhaseFalling {
		return res
	}
	switch cmd {
	case CmdMoveLeft, CmdMoveRight:
		dh := 1
		if cmd == CmdMoveLeft {
			dh = -1
		}
		if s.fastSlide {
			s.fastSlide = false
			res.Moved = s.slide(dh) > 0
		} else {
			res.Moved = s.ctl.Move(dh, 0)
		}
	case CmdMoveLeftMax:
		res.Moved = s.slide(-1) > 0
	case CmdMoveRightMax:
		res.Moved = s.slide(1) > 0
	case CmdSoftDrop:
		if s.ctl.Move(0, 1) {
			res.Moved = true
			res.Dropped = 1
		}
	case CmdHardDrop:
		for s.ctl.Move(0, 1) {
			res.Dropped++
		}
		res.Moved = res.Dropped > 0
		s.setPhase(PhaseLocking)
		s.advance(now, &res)
		return res
	case CmdRotateCW:
		res.Rotated = s.ctl.TryRotate(Clockwise)
	case CmdRotateCCW:
		res.Rotated = s.ctl.TryRotate(CounterClockwise)
	case CmdHold:
		s.hold(now, &res)
	case CmdToggleFastSlide:
		s.fastSlide = !s.fastSlide
	default:
		return res
	}
	if s.phase == PhaseFalling {
		s.ground(now)
	}
	return res
}

func (s *Session) slide(dh int) int {
	n := 0
	for s.ctl.Move(dh, 0) {
		n++
	}
	return n
}

// hold banks the current piece once per spawn. The incoming piece must fit
// somewhere on the board as it stands, otherwise nothing changes.
func (s *Session) hold(now time.Time, res *Result) {
	if s.holdUsed {
		return
	}
	incoming := s.held
	if incoming.None() {
		incoming = s.next
	}
	if !s.ctl.CanSpawnAnywhere(incoming) {
		s.log.Debug().Str("shape", incoming.Shape.String()).Msg("hold refused")
		return
	}
	prev := s.current
	s.ctl.Lift()
	if s.held.None() {
		s.held = prev
		if !s.place(s.next, now) {
			s.setPhase(PhaseGameOver)
			res.GameOver = true
			return
		}
		s.next = s.gen.Next(s.current)
	} else {
		swap := s.held
		s.held = prev
		if !s.place(swap, now) {
			s.setPhase(PhaseGameOver)
			res.GameOver = true
			return
		}
	}
	s.holdUsed = true
	res.Held = true
	s.log.Debug().
		Str("held", s.held.Shape.String()).
		Str("current", s.current.Shape.String()).
		Msg("hold")
}

// Delay pushes both deadlines back by d. Owners call it when they resume
// after holding the clock, so a pause does not count as falling time.
func (s *Session) Delay(d time.Duration) {
	if s.phase != PhaseFalling || d <= 0 {
		return
	}
	s.gravityAt = s.gravityAt.Add(d)
	if !s.lockAt.IsZero() {
		s.lockAt = s.lockAt.Add(d)
	}
}

// NextDeadline is the earliest moment a Tick can change anything, or the
// zero time when no game is running.
func (s *Session) NextDeadline() time.Time {
	if s.phase != PhaseFalling {
		return time.Time{}
	}
	if !s.lockAt.IsZero() && s.lockAt.Before(s.gravityAt) {
		return s.lockAt
	}
	return s.gravityAt
}
