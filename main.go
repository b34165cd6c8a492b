package main

import (
	"flag"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	seed := flag.Int64("seed", 0, "piece generator seed (0 picks one from the clock)")
	flag.Parse()
	EnableDebugLogging(*debug)

	config, err := loadConfig()
	if err != nil {
		DebugLogf("config load error: %v", err)
	}
	applyEnvOverrides(&config, seed)
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	DebugLogf("termetris start debug=%v seed=%d", *debug, *seed)

	program := tea.NewProgram(NewModel(config, *seed), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		DebugLogf("program error: %v", err)
		os.Exit(1)
	}
}
