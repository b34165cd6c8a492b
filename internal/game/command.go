package game

// Command is the input vocabulary of a session, independent of any key
// encoding. Tick is delivered through Session.Tick.
type Command int

const (
	CmdNone Command = iota
	CmdMoveLeft
	CmdMoveRight
	CmdMoveLeftMax
	CmdMoveRightMax
	CmdSoftDrop
	CmdHardDrop
	CmdRotateCW
	CmdRotateCCW
	CmdHold
	CmdToggleFastSlide
	CmdQuit
)

var commandNames = [...]string{
	CmdNone:            "none",
	CmdMoveLeft:        "move-left",
	CmdMoveRight:       "move-right",
	CmdMoveLeftMax:     "move-left-max",
	CmdMoveRightMax:    "move-right-max",
	CmdSoftDrop:        "soft-drop",
	CmdHardDrop:        "hard-drop",
	CmdRotateCW:        "rotate-cw",
	CmdRotateCCW:       "rotate-ccw",
	CmdHold:            "hold",
	CmdToggleFastSlide: "toggle-fast-slide",
	CmdQuit:            "quit",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return "unknown"
	}
	return commandNames[c]
}

// Result tells the caller what an event changed, mostly so it can pick a
// sound or an animation.
type Result struct {
	Moved    bool
	Rotated  bool
	Dropped  int
	Held     bool
	Locked   bool
	Cleared  int
	Points   uint64
	GameOver bool
}
