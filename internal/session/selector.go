package session

import "github.com/rosdahl/spindle/internal/catalog"

// Catalogue is the slice of the store the session needs: atomic
// least-played selection and the favourite flag write.
type Catalogue interface {
	SelectLeastPlayed() (*catalog.Track, error)
	SetFavourite(path string, favourite bool) error
}

// Selector picks the next track. The store already biases toward the
// least-played tracks and counts the play as part of the selection; the
// returned record carries the pre-increment listen count, so displays
// must add one.
type Selector struct {
	store Catalogue
}

// NewSelector returns a Selector over the given catalogue.
func NewSelector(store Catalogue) *Selector {
	return &Selector{store: store}
}

// Next returns the next track to play.
func (s *Selector) Next() (*catalog.Track, error) {
	return s.store.SelectLeastPlayed()
}
