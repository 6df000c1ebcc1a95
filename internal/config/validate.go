package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.General.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("general: %w", err))
	}
	if err := c.Player.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("player: %w", err))
	}
	if err := c.Controls.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("controls: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks GeneralConfig for errors.
func (c *GeneralConfig) Validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir must not be empty")
	}
	return nil
}

// Validate checks PlayerConfig for errors.
func (c *PlayerConfig) Validate() error {
	if c.FFplay == "" {
		return errors.New("ffplay must not be empty")
	}
	if c.FFmpeg == "" {
		return errors.New("ffmpeg must not be empty")
	}
	if c.FFprobe == "" {
		return errors.New("ffprobe must not be empty")
	}
	return nil
}

// Validate checks ControlsConfig for errors.
func (c *ControlsConfig) Validate() error {
	keys := map[string]string{
		"play_pause": c.PlayPause,
		"skip":       c.Skip,
		"favourite":  c.Favourite,
		"quit":       c.Quit,
	}

	seen := make(map[string]string, len(keys))
	for name, key := range keys {
		if err := validateKey(key); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%s and %s are bound to the same key %q", prev, name, key)
		}
		seen[key] = name
	}
	return nil
}

// ParseKey resolves a key binding to its raw byte: the word "space" or
// a single printable ASCII character. Validation and the play-time
// keymap share this parser so a config that validates always binds.
func ParseKey(key string) (byte, error) {
	if key == "space" {
		return ' ', nil
	}
	if len(key) != 1 || key[0] < '!' || key[0] > '~' {
		return 0, fmt.Errorf("invalid key %q (must be a single printable character or \"space\")", key)
	}
	return key[0], nil
}

func validateKey(key string) error {
	_, err := ParseKey(key)
	return err
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return errors.New("rotation settings must be non-negative")
	}
	return nil
}
