// Package session runs the playback loop: select the least-played track,
// hand it to the playback driver, and keep playing until quit. Three
// actors share one state under a single lock: the main loop, the command
// loop and the progress clock. A condition variable wakes the progress
// clock whenever a track is active and unpaused.
package session

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rosdahl/spindle/internal/catalog"
)

// Command is one user-initiated playback action.
type Command int

const (
	CmdTogglePause Command = iota
	CmdSkip
	CmdToggleFavourite
	CmdQuit
)

// Driver controls the external playback process for one track at a time.
type Driver interface {
	Start(path string) error
	Pause() error
	Resume() error
	Stop()
	Wait()
}

// Session owns the currently-playing state.
type Session struct {
	mu   sync.Mutex
	cond *sync.Cond // predicate: current != nil && !paused && !stopped

	store    Catalogue
	selector *Selector
	driver   Driver
	display  Display
	log      *zap.Logger

	commands <-chan Command
	done     chan struct{}
	quit     sync.Once

	// All fields below are guarded by mu.
	current   *catalog.Track
	favourite bool
	playCount int
	paused    bool
	stopped   bool
	skipped   bool
	advanced  bool
	notice    string

	// Elapsed playing time is wall-clock based: time accumulated before
	// the last pause plus, while unpaused, the time since last resume.
	accumulated time.Duration
	resumedAt   time.Time

	// Injection points for tests.
	now   func() time.Time
	sleep func(time.Duration)
	tick  time.Duration
}

// New assembles a session. Commands are consumed from the given channel
// until it is closed or a quit command arrives.
func New(store Catalogue, driver Driver, display Display, commands <-chan Command, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Session{
		store:    store,
		selector: NewSelector(store),
		driver:   driver,
		display:  display,
		log:      log,
		commands: commands,
		done:     make(chan struct{}),
		now:      time.Now,
		tick:     time.Second,
	}
	s.sleep = s.sleepTick
	s.cond = sync.NewCond(&s.mu)
	return s
}

// sleepTick spaces display refreshes but returns early on teardown so
// quit never waits out a full tick.
func (s *Session) sleepTick(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.done:
	case <-timer.C:
	}
}

// Run plays tracks until quit. It returns a non-nil error only for fatal
// conditions: an empty catalogue or a playback process that cannot start.
// Both concurrent actors are joined before Run returns.
func (s *Session) Run() error {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		s.commandLoop()
	}()
	go func() {
		defer wg.Done()
		s.progressLoop()
	}()
	defer wg.Wait()
	defer s.shutdown()

	for {
		s.mu.Lock()
		if s.stopped {
			s.mu.Unlock()
			return nil
		}
		s.mu.Unlock()

		track, err := s.selector.Next()
		if err != nil {
			return err
		}

		s.mu.Lock()
		// Quit may have landed while the selection was in flight. The
		// play is already recorded, but no new process must start: the
		// quit handler's Stop has nothing left to kill.
		if s.stopped {
			s.mu.Unlock()
			return nil
		}
		s.current = track
		s.favourite = track.Favourite
		s.playCount = track.ListenCount + 1
		s.paused = false
		s.skipped = false
		s.advanced = false
		s.notice = ""
		s.accumulated = 0
		s.resumedAt = s.now()
		s.renderLocked()
		s.mu.Unlock()

		if err := s.driver.Start(track.Path); err != nil {
			s.log.Error("playback launch failed", zap.String("path", track.Path), zap.Error(err))
			return fmt.Errorf("cannot play %s: %w", track.Path, err)
		}
		s.log.Info("playback event",
			zap.Stringer("event", EventTrackStart),
			zap.String("path", track.Path),
			zap.Int("play_count", track.ListenCount+1))

		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()

		s.driver.Wait()

		s.mu.Lock()
		ev := EventTrackFinish
		if s.skipped {
			ev = EventTrackSkip
		}
		s.current = nil
		stopped := s.stopped
		s.mu.Unlock()

		s.log.Info("playback event", zap.Stringer("event", ev), zap.String("path", track.Path))
		if stopped {
			return nil
		}
	}
}

// Elapsed returns the playing time accumulated for the current track,
// excluding paused intervals.
func (s *Session) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsedLocked()
}

func (s *Session) elapsedLocked() time.Duration {
	if s.current == nil {
		return 0
	}
	if s.paused {
		return s.accumulated
	}
	return s.accumulated + s.now().Sub(s.resumedAt)
}

// shutdown forces session teardown on every exit path: the stop flag
// unblocks the progress clock, the process kill unblocks Wait, and the
// done channel unblocks the command loop.
func (s *Session) shutdown() {
	s.mu.Lock()
	s.stopped = true
	s.cond.Broadcast()
	s.mu.Unlock()

	s.driver.Stop()
	s.quit.Do(func() { close(s.done) })
}

// commandLoop consumes user commands until quit or session teardown.
func (s *Session) commandLoop() {
	for {
		select {
		case <-s.done:
			return
		case cmd, ok := <-s.commands:
			if !ok {
				return
			}
			if s.handle(cmd) {
				return
			}
		}
	}
}

// handle applies one command as a single indivisible transition under
// the session lock. Returns true when the command loop should exit.
func (s *Session) handle(cmd Command) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return true
	}

	switch cmd {
	case CmdQuit:
		s.stopped = true
		s.cond.Broadcast()
		s.driver.Stop()
		s.quit.Do(func() { close(s.done) })
		s.log.Info("playback event", zap.Stringer("event", EventQuit))
		return true

	case CmdTogglePause:
		if s.current == nil {
			return false
		}
		if s.paused {
			s.paused = false
			s.resumedAt = s.now()
			if err := s.driver.Resume(); err != nil {
				s.log.Warn("resume failed", zap.Error(err))
			}
			s.cond.Broadcast()
			s.log.Info("playback event", zap.Stringer("event", EventResume), zap.String("path", s.current.Path))
		} else {
			s.accumulated += s.now().Sub(s.resumedAt)
			s.paused = true
			if err := s.driver.Pause(); err != nil {
				s.log.Warn("pause failed", zap.Error(err))
			}
			s.log.Info("playback event", zap.Stringer("event", EventPause), zap.String("path", s.current.Path))
		}
		s.renderLocked()

	case CmdSkip:
		if s.current == nil {
			return false
		}
		s.skipped = true
		s.driver.Stop()

	case CmdToggleFavourite:
		if s.current == nil {
			return false
		}
		fav := !s.favourite
		// Best effort: the in-memory flag is the display's source of
		// truth even when the write is lost.
		if err := s.store.SetFavourite(s.current.Path, fav); err != nil {
			s.notice = "favourite not saved: " + err.Error()
			s.log.Warn("favourite write failed", zap.String("path", s.current.Path), zap.Error(err))
		} else {
			s.notice = ""
		}
		s.favourite = fav
		s.log.Info("playback event",
			zap.Stringer("event", EventFavourite),
			zap.String("path", s.current.Path),
			zap.Bool("favourite", fav))
		s.renderLocked()
	}

	return false
}

// progressLoop refreshes the display once per second while a track plays
// and triggers auto-advance when elapsed time exceeds the duration. It
// parks on the condition variable whenever there is nothing to clock.
func (s *Session) progressLoop() {
	s.mu.Lock()
	for {
		for !s.stopped && (s.current == nil || s.paused) {
			s.cond.Wait()
		}
		if s.stopped {
			s.mu.Unlock()
			return
		}

		s.renderLocked()
		if !s.advanced && s.elapsedLocked() > s.current.DurationSpan() {
			// Same advance path as a manual skip, fired once per track.
			s.advanced = true
			s.driver.Stop()
		}

		s.mu.Unlock()
		s.sleep(s.tick)
		s.mu.Lock()
	}
}

// renderLocked snapshots the state for the display. Callers hold mu.
func (s *Session) renderLocked() {
	if s.display == nil || s.current == nil {
		return
	}
	s.display.Render(View{
		Paused:    s.paused,
		Elapsed:   s.elapsedLocked(),
		Duration:  s.current.DurationSpan(),
		Title:     s.current.DisplayTitle(),
		Genre:     s.current.Genre,
		Artist:    s.current.Artist,
		Album:     s.current.Album,
		Favourite: s.favourite,
		PlayCount: s.playCount,
		Notice:    s.notice,
	})
}
