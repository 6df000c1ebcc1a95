// Package player drives the external playback process. One Driver owns
// at most one ffplay process at a time; pause and resume are delivered
// as process control signals so any player binary works unmodified.
package player

import (
	"fmt"
	"os/exec"
	"sync"
	"syscall"

	spinerrors "github.com/rosdahl/spindle/internal/errors"
)

// State is the driver's view of the playback process.
type State int

const (
	StateNotPlaying State = iota
	StatePlaying
	StatePaused
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "not playing"
	}
}

// DefaultArgs suppress ffplay's window and console output and make it
// exit when the track ends.
var DefaultArgs = []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}

// Driver launches and controls one playback process at a time.
type Driver struct {
	mu     sync.Mutex
	binary string
	args   []string
	cmd    *exec.Cmd
	state  State
	done   chan struct{}
}

// New returns a Driver for the given ffplay binary.
func New(binary string) *Driver {
	return NewWithArgs(binary, DefaultArgs...)
}

// NewWithArgs returns a Driver invoking binary with the given fixed
// arguments; the track path is appended per Start.
func NewWithArgs(binary string, args ...string) *Driver {
	return &Driver{binary: binary, args: args}
}

// State returns the current driver state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Start launches the playback process for the file at path.
func (d *Driver) Start(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StateNotPlaying {
		return fmt.Errorf("track already %s", d.state)
	}

	cmd := exec.Command(d.binary, append(append([]string{}, d.args...), path)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", spinerrors.ErrLaunchFailed, path, err)
	}

	done := make(chan struct{})
	d.cmd = cmd
	d.state = StatePlaying
	d.done = done

	// Reap the process and reset state before releasing waiters. The
	// exit reason (natural end vs kill) is intentionally not surfaced;
	// the session derives meaning from its own flags.
	go func() {
		_ = cmd.Wait()
		d.mu.Lock()
		if d.cmd == cmd {
			d.cmd = nil
			d.state = StateNotPlaying
		}
		d.mu.Unlock()
		close(done)
	}()

	return nil
}

// Pause suspends the running process. No-op unless playing.
func (d *Driver) Pause() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StatePlaying || d.cmd == nil {
		return nil
	}
	if err := d.cmd.Process.Signal(syscall.SIGSTOP); err != nil {
		return fmt.Errorf("failed to pause playback: %w", err)
	}
	d.state = StatePaused
	return nil
}

// Resume continues a paused process. No-op unless paused.
func (d *Driver) Resume() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state != StatePaused || d.cmd == nil {
		return nil
	}
	if err := d.cmd.Process.Signal(syscall.SIGCONT); err != nil {
		return fmt.Errorf("failed to resume playback: %w", err)
	}
	d.state = StatePlaying
	return nil
}

// Stop kills the playback process regardless of state. Idempotent; safe
// to call when nothing is playing.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cmd == nil {
		return
	}
	// SIGKILL terminates the process even while stopped by SIGSTOP.
	_ = d.cmd.Process.Kill()
}

// Wait blocks until the current process exits, either on its own or via
// Stop. Returns immediately if nothing was started.
func (d *Driver) Wait() {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()

	if done == nil {
		return
	}
	<-done
}
