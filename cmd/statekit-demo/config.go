package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// demoConfig captures the tunables of the demo, loaded from a TOML file and
// overridable per field by flags.
type demoConfig struct {
	HistoryLimit int
	LogLevel     string
	LogPath      string
	ProfileDelay time.Duration
	FailEvery    int
}

const defaultConfigPath = "statekit-demo.toml"

func defaultDemoConfig() demoConfig {
	return demoConfig{
		HistoryLimit: 128,
		LogLevel:     "debug",
		LogPath:      "statekit-demo.log",
		ProfileDelay: 600 * time.Millisecond,
		FailEvery:    3,
	}
}

// loadConfig parses the demo config, falling back to defaults when the file
// is missing.
func loadConfig(path string) (demoConfig, error) {
	cfg := defaultDemoConfig()

	bytes, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return demoConfig{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		HistoryLimit   *int   `toml:"history_limit"`
		LogLevel       string `toml:"log_level"`
		LogPath        string `toml:"log_path"`
		ProfileDelayMS *int   `toml:"profile_delay_ms"`
		FailEvery      *int   `toml:"fail_every"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return demoConfig{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.HistoryLimit != nil {
		cfg.HistoryLimit = *raw.HistoryLimit
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if path := strings.TrimSpace(raw.LogPath); path != "" {
		cfg.LogPath = path
	}
	if raw.ProfileDelayMS != nil {
		cfg.ProfileDelay = time.Duration(*raw.ProfileDelayMS) * time.Millisecond
	}
	if raw.FailEvery != nil {
		cfg.FailEvery = *raw.FailEvery
	}

	return cfg, nil
}
