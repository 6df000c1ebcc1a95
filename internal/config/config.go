package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.spindlerc, $XDG_CONFIG_HOME/spindle/config.toml, ~/.config/spindle/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	// Try loading from file
	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Apply defaults, then environment variable overrides
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, ".spindlerc"),
	}

	// XDG_CONFIG_HOME or default
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "spindle", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// General
	if v := os.Getenv("SPINDLE_DATA_DIR"); v != "" {
		cfg.General.DataDir = v
	}

	// Player
	if v := os.Getenv("SPINDLE_FFPLAY"); v != "" {
		cfg.Player.FFplay = v
	}
	if v := os.Getenv("SPINDLE_FFMPEG"); v != "" {
		cfg.Player.FFmpeg = v
	}
	if v := os.Getenv("SPINDLE_FFPROBE"); v != "" {
		cfg.Player.FFprobe = v
	}

	// Log
	if v := os.Getenv("SPINDLE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SPINDLE_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
