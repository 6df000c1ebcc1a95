package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	spinerrors "github.com/rosdahl/spindle/internal/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seedTracks(t *testing.T, store *Store, n int) []string {
	t.Helper()
	paths := make([]string, 0, n)
	for i := 0; i < n; i++ {
		path := fmt.Sprintf("/music/track-%02d.mp3", i)
		err := store.Upsert(Track{
			Path:     path,
			Title:    fmt.Sprintf("Track %d", i),
			Artist:   "Artist",
			Duration: 180,
		})
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
		paths = append(paths, path)
	}
	return paths
}

func TestSelectLeastPlayedEmpty(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SelectLeastPlayed()
	if !errors.Is(err, spinerrors.ErrEmptyCatalogue) {
		t.Errorf("SelectLeastPlayed() error = %v, want ErrEmptyCatalogue", err)
	}
}

func TestSelectLeastPlayedIncrements(t *testing.T) {
	store := openTestStore(t)
	seedTracks(t, store, 1)

	got, err := store.SelectLeastPlayed()
	if err != nil {
		t.Fatalf("SelectLeastPlayed() error = %v", err)
	}
	if got.ListenCount != 0 {
		t.Errorf("ListenCount = %d, want pre-increment 0", got.ListenCount)
	}

	// Second selection must observe the increment.
	got, err = store.SelectLeastPlayed()
	if err != nil {
		t.Fatalf("SelectLeastPlayed() error = %v", err)
	}
	if got.ListenCount != 1 {
		t.Errorf("ListenCount = %d, want 1", got.ListenCount)
	}
}

// After any multiple of the catalogue size selections, play counts must
// be level; in between they may differ by at most one.
func TestSelectionFairness(t *testing.T) {
	store := openTestStore(t)
	const size = 5
	seedTracks(t, store, size)

	for i := 1; i <= size*4; i++ {
		if _, err := store.SelectLeastPlayed(); err != nil {
			t.Fatalf("SelectLeastPlayed() error = %v", err)
		}

		tracks, err := store.Tracks()
		if err != nil {
			t.Fatalf("Tracks() error = %v", err)
		}
		min, max := tracks[0].ListenCount, tracks[0].ListenCount
		for _, tr := range tracks {
			if tr.ListenCount < min {
				min = tr.ListenCount
			}
			if tr.ListenCount > max {
				max = tr.ListenCount
			}
		}
		if max-min > 1 {
			t.Fatalf("after %d selections: count spread %d, want <= 1", i, max-min)
		}
		if i%size == 0 && max != min {
			t.Fatalf("after %d selections: counts not level (min %d, max %d)", i, min, max)
		}
	}
}

// Concurrent selections must never serve the same track twice while
// other tracks still have a lower count.
func TestConcurrentSelectionAtomicity(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	const size = 8
	seedTracks(t, store, size)

	// Second independent connection, as the command loop would hold.
	other, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer other.Close()

	stores := []*Store{store, other}
	results := make(chan string, size)
	var wg sync.WaitGroup
	for i := 0; i < size; i++ {
		wg.Add(1)
		go func(s *Store) {
			defer wg.Done()
			tr, err := s.SelectLeastPlayed()
			if err != nil {
				t.Errorf("SelectLeastPlayed() error = %v", err)
				return
			}
			results <- tr.Path
		}(stores[i%len(stores)])
	}
	wg.Wait()
	close(results)

	seen := make(map[string]int)
	for path := range results {
		seen[path]++
	}
	for path, n := range seen {
		if n > 1 {
			t.Errorf("track %s served %d times in one round", path, n)
		}
	}
}

// Selections racing across two connections must all succeed: the write
// lock is taken when the transaction begins, so no selection can fail
// mid-upgrade with a busy error.
func TestConcurrentSelectionUnderContention(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	const size = 5
	seedTracks(t, store, size)

	other, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer other.Close()

	const goroutines = 10
	const perGoroutine = 4
	stores := []*Store{store, other}

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(s *Store) {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				if _, err := s.SelectLeastPlayed(); err != nil {
					t.Errorf("SelectLeastPlayed() error = %v", err)
					return
				}
			}
		}(stores[i%len(stores)])
	}
	wg.Wait()

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if st.TotalPlays != goroutines*perGoroutine {
		t.Errorf("TotalPlays = %d, want %d (every selection applied exactly once)",
			st.TotalPlays, goroutines*perGoroutine)
	}

	tracks, err := store.Tracks()
	if err != nil {
		t.Fatalf("Tracks() error = %v", err)
	}
	min, max := tracks[0].ListenCount, tracks[0].ListenCount
	for _, tr := range tracks {
		if tr.ListenCount < min {
			min = tr.ListenCount
		}
		if tr.ListenCount > max {
			max = tr.ListenCount
		}
	}
	if max-min > 1 {
		t.Errorf("count spread %d after contention, want <= 1", max-min)
	}
}

func TestFavouriteRoundTrip(t *testing.T) {
	store := openTestStore(t)
	paths := seedTracks(t, store, 1)

	if err := store.SetFavourite(paths[0], true); err != nil {
		t.Fatalf("SetFavourite() error = %v", err)
	}
	tracks, _ := store.Tracks()
	if !tracks[0].Favourite {
		t.Error("favourite not persisted")
	}

	if err := store.SetFavourite(paths[0], false); err != nil {
		t.Fatalf("SetFavourite() error = %v", err)
	}
	tracks, _ = store.Tracks()
	if tracks[0].Favourite {
		t.Error("favourite not cleared after second toggle")
	}
}

func TestSetFavouriteUnknownPath(t *testing.T) {
	store := openTestStore(t)
	seedTracks(t, store, 1)

	if err := store.SetFavourite("/nowhere.mp3", true); err == nil {
		t.Error("SetFavourite() on unknown path succeeded, want error")
	}
}

func TestUpsertPreservesMutableFields(t *testing.T) {
	store := openTestStore(t)
	paths := seedTracks(t, store, 1)

	if _, err := store.SelectLeastPlayed(); err != nil {
		t.Fatal(err)
	}
	if err := store.SetFavourite(paths[0], true); err != nil {
		t.Fatal(err)
	}

	// Rescan refreshes tags but must not reset history.
	err := store.Upsert(Track{Path: paths[0], Title: "Retagged", Duration: 200})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	tracks, _ := store.Tracks()
	tr := tracks[0]
	if tr.Title != "Retagged" || tr.Duration != 200 {
		t.Errorf("tags not refreshed: %+v", tr)
	}
	if !tr.Favourite || tr.ListenCount != 1 {
		t.Errorf("history reset by upsert: favourite=%v listen_count=%d", tr.Favourite, tr.ListenCount)
	}
}

func TestUpsertNullsEmptyTags(t *testing.T) {
	store := openTestStore(t)
	err := store.Upsert(Track{Path: "/music/untagged.ogg", Duration: 90})
	if err != nil {
		t.Fatal(err)
	}

	tracks, _ := store.Tracks()
	if tracks[0].Title != "" || tracks[0].Artist != "" {
		t.Errorf("empty tags came back non-empty: %+v", tracks[0])
	}
	if tracks[0].DisplayTitle() != "untagged.ogg" {
		t.Errorf("DisplayTitle() = %q, want file name fallback", tracks[0].DisplayTitle())
	}
}

func TestDeleteMissing(t *testing.T) {
	store := openTestStore(t)
	paths := seedTracks(t, store, 3)

	if err := store.DeleteMissing(paths[:1]); err != nil {
		t.Fatalf("DeleteMissing() error = %v", err)
	}
	tracks, _ := store.Tracks()
	if len(tracks) != 1 || tracks[0].Path != paths[0] {
		t.Errorf("tracks after DeleteMissing = %+v, want only %s", tracks, paths[0])
	}

	if err := store.DeleteMissing(nil); err != nil {
		t.Fatalf("DeleteMissing(nil) error = %v", err)
	}
	st, _ := store.Stats()
	if st.Tracks != 0 {
		t.Errorf("tracks after full DeleteMissing = %d, want 0", st.Tracks)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)
	paths := seedTracks(t, store, 3)
	store.SetFavourite(paths[1], true)
	store.SelectLeastPlayed()
	store.SelectLeastPlayed()

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if st.Tracks != 3 {
		t.Errorf("Tracks = %d, want 3", st.Tracks)
	}
	if st.Favourites != 1 {
		t.Errorf("Favourites = %d, want 1", st.Favourites)
	}
	if st.TotalPlays != 2 {
		t.Errorf("TotalPlays = %d, want 2", st.TotalPlays)
	}
}
