package session

import "time"

// View is an immutable snapshot of the session state handed to the
// display on every transition and once per second while playing.
type View struct {
	Paused   bool
	Elapsed  time.Duration
	Duration time.Duration

	Title  string
	Genre  string
	Artist string
	Album  string

	Favourite bool
	PlayCount int

	// Notice carries a transient, non-fatal problem (e.g. a favourite
	// write that did not reach the store).
	Notice string
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (v View) ProgressPercent() float64 {
	if v.Duration <= 0 {
		return 0
	}
	p := float64(v.Elapsed) / float64(v.Duration) * 100
	if p > 100 {
		return 100
	}
	return p
}

// Display renders session state. Render is always called from under the
// session lock, so implementations never see concurrent calls.
type Display interface {
	Render(View)
}
