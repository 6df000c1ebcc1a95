// Package catalog persists the track catalogue for one music library.
// Each library is a standalone sqlite database file.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	spinerrors "github.com/rosdahl/spindle/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS tracks (
	path         TEXT PRIMARY KEY,
	title        TEXT,
	genre        TEXT,
	artist       TEXT,
	album        TEXT,
	duration     REAL NOT NULL,
	favourite    INTEGER NOT NULL DEFAULT 0,
	listen_count INTEGER NOT NULL DEFAULT 0
);`

// trackColumns folds NULL tags to empty strings for scanning into Track.
const trackColumns = `
	path,
	COALESCE(title, '')  AS title,
	COALESCE(genre, '')  AS genre,
	COALESCE(artist, '') AS artist,
	COALESCE(album, '')  AS album,
	duration,
	favourite,
	listen_count`

// Store owns one library database.
type Store struct {
	db *sqlx.DB
}

// Open opens (creating if necessary) the library database at path.
// Transactions start in IMMEDIATE mode: a deferred transaction would take
// a shared lock first and two concurrent selections would then deadlock
// upgrading to the write lock, bypassing the busy handler entirely.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path+"?_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("failed to open library database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize library schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SelectLeastPlayed picks one track uniformly at random among the tracks
// with the lowest listen count, and increments that track's listen count
// within the same transaction. The returned record carries the
// pre-increment count.
func (s *Store) SelectLeastPlayed() (*Track, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin selection: %w", err)
	}
	defer tx.Rollback()

	var t Track
	err = tx.Get(&t, `
		SELECT`+trackColumns+`
		FROM tracks
		WHERE listen_count = (SELECT MIN(listen_count) FROM tracks)
		ORDER BY RANDOM()
		LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, spinerrors.ErrEmptyCatalogue
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select next track: %w", err)
	}

	if _, err := tx.Exec(`UPDATE tracks SET listen_count = listen_count + 1 WHERE path = ?`, t.Path); err != nil {
		return nil, fmt.Errorf("failed to record play for %s: %w", t.Path, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit selection: %w", err)
	}
	return &t, nil
}

// SetFavourite writes the favourite flag for one track. Idempotent.
func (s *Store) SetFavourite(path string, favourite bool) error {
	res, err := s.db.Exec(`UPDATE tracks SET favourite = ? WHERE path = ?`, favourite, path)
	if err != nil {
		return fmt.Errorf("failed to update favourite for %s: %w", path, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no catalogued track at %s", path)
	}
	return nil
}

// Upsert inserts or refreshes a track record by path. Tags and duration
// are replaced; favourite and listen_count are preserved on update.
func (s *Store) Upsert(t Track) error {
	_, err := s.db.Exec(`
		INSERT INTO tracks (path, title, genre, artist, album, duration)
		VALUES (?, NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), NULLIF(?, ''), ?)
		ON CONFLICT(path) DO UPDATE SET
			title    = excluded.title,
			genre    = excluded.genre,
			artist   = excluded.artist,
			album    = excluded.album,
			duration = excluded.duration`,
		t.Path, t.Title, t.Genre, t.Artist, t.Album, t.Duration)
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", t.Path, err)
	}
	return nil
}

// DeleteMissing removes every record whose path is not in knownPaths.
// An empty knownPaths clears the catalogue.
func (s *Store) DeleteMissing(knownPaths []string) error {
	if len(knownPaths) == 0 {
		if _, err := s.db.Exec(`DELETE FROM tracks`); err != nil {
			return fmt.Errorf("failed to clear catalogue: %w", err)
		}
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM tracks WHERE path NOT IN (?)`, knownPaths)
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}
	if _, err := s.db.Exec(s.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to delete missing tracks: %w", err)
	}
	return nil
}

// Tracks returns every catalogued track ordered by artist, album and title.
func (s *Store) Tracks() ([]Track, error) {
	var tracks []Track
	err := s.db.Select(&tracks, `
		SELECT`+trackColumns+`
		FROM tracks
		ORDER BY artist COLLATE NOCASE, album COLLATE NOCASE, title COLLATE NOCASE, path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	return tracks, nil
}

// Stats summarises one library.
type Stats struct {
	Tracks     int `db:"tracks"`
	Favourites int `db:"favourites"`
	TotalPlays int `db:"total_plays"`
}

// Stats returns the library summary counts.
func (s *Store) Stats() (*Stats, error) {
	var st Stats
	err := s.db.Get(&st, `
		SELECT
			COUNT(*)                      AS tracks,
			COALESCE(SUM(favourite), 0)   AS favourites,
			COALESCE(SUM(listen_count), 0) AS total_plays
		FROM tracks`)
	if err != nil {
		return nil, fmt.Errorf("failed to read library stats: %w", err)
	}
	return &st, nil
}
