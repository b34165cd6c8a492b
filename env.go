package main

import (
	"os"
	"strconv"
	"strings"
)

// applyEnvOverrides lets TERMETRIS_MUSIC_FILE and TERMETRIS_SEED win over the
// config file. An explicit -seed flag wins over the environment.
func applyEnvOverrides(config *Config, seed *int64) {
	if path, ok := os.LookupEnv("TERMETRIS_MUSIC_FILE"); ok {
		config.MusicFile = strings.TrimSpace(path)
	}
	if *seed != 0 {
		return
	}
	if raw, ok := os.LookupEnv("TERMETRIS_SEED"); ok {
		value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			DebugLogf("ignoring TERMETRIS_SEED=%q: %v", raw, err)
			return
		}
		*seed = value
	}
}
