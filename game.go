package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dariolbs/termetris/internal/game"
)

const (
	minTickInterval  = 10 * time.Millisecond
	idleTickInterval = 250 * time.Millisecond
)

var gameKeys = map[string]game.Command{
	"left":  game.CmdMoveLeft,
	"h":     game.CmdMoveLeft,
	"right": game.CmdMoveRight,
	"l":     game.CmdMoveRight,
	"H":     game.CmdMoveLeftMax,
	"L":     game.CmdMoveRightMax,
	"<":     game.CmdToggleFastSlide,
	"down":  game.CmdSoftDrop,
	"j":     game.CmdSoftDrop,
	" ":     game.CmdHardDrop,
	"up":    game.CmdRotateCW,
	"x":     game.CmdRotateCW,
	"k":     game.CmdRotateCW,
	"z":     game.CmdRotateCCW,
	"c":     game.CmdHold,
	"q":     game.CmdQuit,
	"esc":   game.CmdQuit,
}

// commandForKey maps a key to an engine command. Unknown keys map to
// CmdNone, which the session ignores.
func commandForKey(key string) game.Command {
	if cmd, ok := gameKeys[key]; ok {
		return cmd
	}
	return game.CmdNone
}

// tickMsg carries the generation of the tick chain that produced it, so a
// chain left over from an abandoned game dies out on its next tick.
type tickMsg struct {
	at  time.Time
	gen int
}

func tickCmd(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg{at: t, gen: gen} })
}

// tickInterval waits until the session's next deadline, never busy-looping
// and never sleeping through a deadline.
func tickInterval(session *game.Session, now time.Time) time.Duration {
	deadline := session.NextDeadline()
	if deadline.IsZero() {
		return idleTickInterval
	}
	wait := deadline.Sub(now) + time.Millisecond
	if wait < minTickInterval {
		return minTickInterval
	}
	return wait
}
