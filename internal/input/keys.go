// Package input turns raw terminal bytes into playback commands using
// the configured keymap. The terminal must already be in raw mode.
package input

import (
	"fmt"
	"io"

	"github.com/rosdahl/spindle/internal/config"
	"github.com/rosdahl/spindle/internal/session"
)

// ctrlC always quits, whatever the keymap says; in raw mode nothing
// else will.
const ctrlC = 0x03

// Keymap maps single key bytes to session commands.
type Keymap struct {
	commands map[byte]session.Command
}

// NewKeymap builds a Keymap from the controls configuration.
func NewKeymap(controls config.ControlsConfig) (*Keymap, error) {
	bindings := []struct {
		name string
		key  string
		cmd  session.Command
	}{
		{"play_pause", controls.PlayPause, session.CmdTogglePause},
		{"skip", controls.Skip, session.CmdSkip},
		{"favourite", controls.Favourite, session.CmdToggleFavourite},
		{"quit", controls.Quit, session.CmdQuit},
	}

	commands := make(map[byte]session.Command, len(bindings)+1)
	for _, b := range bindings {
		key, err := config.ParseKey(b.key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b.name, err)
		}
		if _, taken := commands[key]; taken {
			return nil, fmt.Errorf("%s: key %q already bound", b.name, b.key)
		}
		commands[key] = b.cmd
	}
	commands[ctrlC] = session.CmdQuit

	return &Keymap{commands: commands}, nil
}

// Lookup resolves one key byte to a command.
func (k *Keymap) Lookup(key byte) (session.Command, bool) {
	cmd, ok := k.commands[key]
	return cmd, ok
}

// Reader feeds mapped commands from a raw byte stream into a command
// channel until the stream ends or the user quits.
type Reader struct {
	in     io.Reader
	keymap *Keymap
}

// NewReader returns a Reader over in.
func NewReader(in io.Reader, keymap *Keymap) *Reader {
	return &Reader{in: in, keymap: keymap}
}

// Run reads key bytes, dropping unmapped keys, and closes the channel
// on exit. Meant to run as its own goroutine; it returns after sending
// a quit command or on read error.
func (r *Reader) Run(commands chan<- session.Command) {
	defer close(commands)

	buf := make([]byte, 1)
	for {
		n, err := r.in.Read(buf)
		if n > 0 {
			if cmd, ok := r.keymap.Lookup(buf[0]); ok {
				commands <- cmd
				if cmd == session.CmdQuit {
					return
				}
			}
		}
		if err != nil {
			return
		}
	}
}
