package config

import (
	"os"
	"path/filepath"
)

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	dataDir := ".spindle"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".spindle")
	}

	return &Config{
		General: GeneralConfig{
			DataDir: dataDir,
		},
		Player: PlayerConfig{
			FFplay:  "ffplay",
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
		Controls: ControlsConfig{
			PlayPause: "space",
			Skip:      "n",
			Favourite: "f",
			Quit:      "q",
		},
		Log: LogConfig{
			Level:      "info",
			File:       filepath.Join(dataDir, "spindle.log"),
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// General
	if c.General.DataDir == "" {
		c.General.DataDir = d.General.DataDir
	}

	// Player
	if c.Player.FFplay == "" {
		c.Player.FFplay = d.Player.FFplay
	}
	if c.Player.FFmpeg == "" {
		c.Player.FFmpeg = d.Player.FFmpeg
	}
	if c.Player.FFprobe == "" {
		c.Player.FFprobe = d.Player.FFprobe
	}

	// Controls
	if c.Controls.PlayPause == "" {
		c.Controls.PlayPause = d.Controls.PlayPause
	}
	if c.Controls.Skip == "" {
		c.Controls.Skip = d.Controls.Skip
	}
	if c.Controls.Favourite == "" {
		c.Controls.Favourite = d.Controls.Favourite
	}
	if c.Controls.Quit == "" {
		c.Controls.Quit = d.Controls.Quit
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.General.DataDir, "spindle.log")
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = d.Log.MaxBackups
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = d.Log.MaxAgeDays
	}
}
