package catalog

import (
	"path/filepath"
	"time"
)

// Track is one catalogued audio file. Path is the primary key; the
// display tags are empty strings when the file carried no usable tag.
// Duration is always positive for a persisted record: files whose
// duration cannot be determined are never indexed.
type Track struct {
	Path        string  `db:"path" json:"path"`
	Title       string  `db:"title" json:"title,omitempty"`
	Genre       string  `db:"genre" json:"genre,omitempty"`
	Artist      string  `db:"artist" json:"artist,omitempty"`
	Album       string  `db:"album" json:"album,omitempty"`
	Duration    float64 `db:"duration" json:"duration"`
	Favourite   bool    `db:"favourite" json:"favourite"`
	ListenCount int     `db:"listen_count" json:"listen_count"`
}

// DisplayTitle returns the title tag, falling back to the file name.
func (t *Track) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	return filepath.Base(t.Path)
}

// DurationSpan returns the track duration as a time.Duration.
func (t *Track) DurationSpan() time.Duration {
	return time.Duration(t.Duration * float64(time.Second))
}
