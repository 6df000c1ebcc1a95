package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rosdahl/spindle/internal/catalog"
	spinerrors "github.com/rosdahl/spindle/internal/errors"
	"github.com/rosdahl/spindle/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse <library>",
	Short: "Browse a library's tracks",
	Long: `Open an interactive view of a library's tracks with filtering.
With --json, print the tracks instead of opening the view.`,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	library := args[0]
	dbPath := cfg.LibraryPath(library)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", spinerrors.ErrLibraryNotFound, library)
	}

	store, err := catalog.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open library %q: %w", library, err)
	}
	defer store.Close()

	tracks, err := store.Tracks()
	if err != nil {
		return fmt.Errorf("failed to read library: %w", err)
	}
	if len(tracks) == 0 {
		return fmt.Errorf("%w: %s", spinerrors.ErrEmptyCatalogue, library)
	}

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(tracks)
	}

	return tui.RunBrowser(library, tracks)
}
