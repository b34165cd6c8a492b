package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	debugMu     sync.Mutex
	debugLogger = zerolog.Nop()
	debugFile   *os.File
)

// EnableDebugLogging routes the debug logger to termetris-debug.log in the
// temp dir. The terminal belongs to the game, so nothing goes to stderr.
func EnableDebugLogging(enabled bool) {
	debugMu.Lock()
	defer debugMu.Unlock()
	if !enabled {
		debugLogger = zerolog.Nop()
		return
	}
	if debugFile == nil {
		path := filepath.Join(os.TempDir(), "termetris-debug.log")
		file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		debugFile = file
	}
	zerolog.TimeFieldFormat = time.RFC3339Nano
	debugLogger = zerolog.New(debugFile).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

func DebugLogger() zerolog.Logger {
	debugMu.Lock()
	defer debugMu.Unlock()
	return debugLogger
}

func DebugLogf(format string, args ...any) {
	logger := DebugLogger()
	logger.Debug().Msg(fmt.Sprintf(format, args...))
}
