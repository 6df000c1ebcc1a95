// Package ui renders the now-playing screen while the terminal is in
// raw mode. Every line ends with \r\n since raw mode disables output
// post-processing.
package ui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/rosdahl/spindle/internal/session"
	"github.com/rosdahl/spindle/internal/ui/styles"
)

const clearScreen = "\x1b[2J\x1b[H"

// Screen is a full-redraw session display writing to a raw-mode
// terminal.
type Screen struct {
	out   io.Writer
	width int
	hint  string
}

// NewScreen returns a Screen of the given width. hint is the controls
// line shown at the bottom, built from the active keymap.
func NewScreen(out io.Writer, width int, hint string) *Screen {
	if width < 20 {
		width = 20
	}
	if width > 100 {
		width = 100
	}
	return &Screen{out: out, width: width, hint: hint}
}

// Render redraws the whole screen from the snapshot. It is called under
// the session lock, so it never runs concurrently with itself.
func (s *Screen) Render(v session.View) {
	var b strings.Builder
	b.WriteString(clearScreen)

	if v.Paused {
		line(&b, styles.Paused.Render("[paused]"))
	} else {
		line(&b, styles.Playing.Render("[playing]"))
	}
	line(&b, "")

	line(&b, styles.Title.Render(s.fit(v.Title)))
	s.metadata(&b, "Artist", v.Artist)
	s.metadata(&b, "Album", v.Album)
	s.metadata(&b, "Genre", v.Genre)
	line(&b, "")

	line(&b, s.progress(v))
	line(&b, "")

	if v.Favourite {
		line(&b, styles.Favourite.Render("♥ favourite"))
	}
	line(&b, styles.Muted.Render(fmt.Sprintf("Play count: %d", v.PlayCount)))

	if v.Notice != "" {
		line(&b, "")
		line(&b, styles.Notice.Render(s.fit(v.Notice)))
	}

	line(&b, "")
	line(&b, styles.Dim.Render(s.fit(s.hint)))

	fmt.Fprint(s.out, b.String())
}

func (s *Screen) metadata(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	line(b, styles.Label.Render(label+": ")+styles.Subtitle.Render(s.fit(value)))
}

// progress renders "m:ss ━━━───── m:ss".
func (s *Screen) progress(v session.View) string {
	elapsed := formatClock(v.Elapsed)
	total := formatClock(v.Duration)

	barWidth := s.width - len(elapsed) - len(total) - 2
	if barWidth < 10 {
		barWidth = 10
	}
	bar := styles.ProgressBar(v.ProgressPercent(), barWidth)
	return fmt.Sprintf("%s %s %s", elapsed, bar, total)
}

func (s *Screen) fit(text string) string {
	if runewidth.StringWidth(text) <= s.width {
		return text
	}
	return runewidth.Truncate(text, s.width, "...")
}

func line(b *strings.Builder, text string) {
	b.WriteString(text)
	b.WriteString("\r\n")
}

func formatClock(d time.Duration) string {
	d = d.Round(time.Second)
	m := d / time.Minute
	s := (d % time.Minute) / time.Second
	return fmt.Sprintf("%d:%02d", m, s)
}

// ControlsHint builds the bottom hint line from the configured keys.
func ControlsHint(playPause, skip, favourite, quit string) string {
	return fmt.Sprintf("[%s] play/pause  [%s] skip  [%s] favourite  [%s] quit",
		playPause, skip, favourite, quit)
}
