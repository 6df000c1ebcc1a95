package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rosdahl/spindle/internal/catalog"
	spinerrors "github.com/rosdahl/spindle/internal/errors"
)

// Prober is the metadata source for one file.
type prober interface {
	Probe(path string) (*Metadata, error)
}

// trackWriter is the slice of the store the scanner needs.
type trackWriter interface {
	Upsert(track catalog.Track) error
	DeleteMissing(knownPaths []string) error
}

// Stats summarises one scan.
type Stats struct {
	Found   int `json:"found"`
	Indexed int `json:"indexed"`
	Skipped int `json:"skipped"`
}

// Scanner indexes a directory tree into a library.
type Scanner struct {
	store   trackWriter
	prober  prober
	formats map[string]bool
}

// NewScanner returns a Scanner writing to store.
func NewScanner(store trackWriter, p prober, formats map[string]bool) *Scanner {
	return &Scanner{store: store, prober: p, formats: formats}
}

// Scan walks root, removes records whose files vanished, and upserts a
// record for every playable file with a determinable duration. Per-file
// failures are collected, not fatal; progress is reported per file.
func (s *Scanner) Scan(root string, progress func(path string)) (*spinerrors.PartialResult[Stats], error) {
	paths, err := s.collect(root)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no playable audio files under %s", root)
	}

	if err := s.store.DeleteMissing(paths); err != nil {
		return nil, err
	}

	result := &spinerrors.PartialResult[Stats]{}
	result.Data.Found = len(paths)

	for _, path := range paths {
		if progress != nil {
			progress(path)
		}

		meta, err := s.prober.Probe(path)
		if err != nil {
			result.Data.Skipped++
			result.AddError(err)
			continue
		}

		err = s.store.Upsert(catalog.Track{
			Path:     path,
			Title:    meta.Title,
			Genre:    meta.Genre,
			Artist:   meta.Artist,
			Album:    meta.Album,
			Duration: meta.Duration,
		})
		if err != nil {
			result.Data.Skipped++
			result.AddError(err)
			continue
		}
		result.Data.Indexed++
	}

	return result, nil
}

// collect returns the absolute paths of all candidate audio files under
// root, filtered by the supported format set.
func (s *Scanner) collect(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
		if ext == "" || !s.formats[ext] {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		paths = append(paths, abs)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	return paths, nil
}
