package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type Config struct {
	Theme     string `json:"theme"`
	Sound     bool   `json:"sound"`
	Music     bool   `json:"music"`
	MusicFile string `json:"music_file,omitempty"`
	Volume    int    `json:"volume"`
	Ghost     bool   `json:"ghost"`
	Scale     int    `json:"scale"`
}

func defaultConfig() Config {
	return Config{
		Theme:  themes[0].Name,
		Sound:  true,
		Music:  true,
		Volume: 70,
		Ghost:  true,
		Scale:  1,
	}
}

// loadConfig always returns a usable config; the error reports why the file
// could not be used.
func loadConfig() (Config, error) {
	path, err := configPath()
	if err != nil {
		return defaultConfig(), err
	}
	return readConfig(path)
}

func readConfig(path string) (Config, error) {
	config := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return defaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if themeIndexByName(config.Theme) < 0 {
		config.Theme = themes[0].Name
	}
	config.Scale = clampScale(config.Scale)
	config.Volume = clampVolumePercent(config.Volume)
	return config, nil
}

func saveConfig(config Config) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return writeConfig(path, config)
}

func writeConfig(path string, config Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func configPath() (string, error) {
	root, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	dir := filepath.Join(root, "termetris")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return filepath.Join(dir, "config.json"), nil
}
