package config

import "path/filepath"

// Config is the root configuration structure.
type Config struct {
	General  GeneralConfig  `toml:"general"`
	Player   PlayerConfig   `toml:"player"`
	Controls ControlsConfig `toml:"controls"`
	Log      LogConfig      `toml:"log"`
}

// GeneralConfig holds paths shared by all commands.
type GeneralConfig struct {
	DataDir string `toml:"data_dir"`
}

// PlayerConfig holds the external binaries used for playback and probing.
type PlayerConfig struct {
	FFplay  string `toml:"ffplay"`
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// ControlsConfig maps keys to playback session actions.
// A key is either a single printable character or the word "space".
type ControlsConfig struct {
	PlayPause string `toml:"play_pause"`
	Skip      string `toml:"skip"`
	Favourite string `toml:"favourite"`
	Quit      string `toml:"quit"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `toml:"level"`
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
	Compress   bool   `toml:"compress"`
}

// LibraryPath returns the database path for a named library.
func (c *Config) LibraryPath(name string) string {
	return filepath.Join(c.General.DataDir, name+".db")
}
