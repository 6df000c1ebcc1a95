package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rosdahl/spindle/internal/catalog"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List libraries",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

type libraryInfo struct {
	Name       string `json:"name"`
	Tracks     int    `json:"tracks"`
	Favourites int    `json:"favourites"`
	TotalPlays int    `json:"total_plays"`
}

func runList(cmd *cobra.Command, args []string) error {
	entries, err := os.ReadDir(cfg.General.DataDir)
	if err != nil {
		if os.IsNotExist(err) {
			entries = nil
		} else {
			return fmt.Errorf("failed to read data directory: %w", err)
		}
	}

	var libraries []libraryInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".db") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".db")

		store, err := catalog.Open(filepath.Join(cfg.General.DataDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to open library %q: %w", name, err)
		}
		stats, err := store.Stats()
		store.Close()
		if err != nil {
			return fmt.Errorf("failed to read library %q: %w", name, err)
		}

		libraries = append(libraries, libraryInfo{
			Name:       name,
			Tracks:     stats.Tracks,
			Favourites: stats.Favourites,
			TotalPlays: stats.TotalPlays,
		})
	}
	sort.Slice(libraries, func(i, j int) bool { return libraries[i].Name < libraries[j].Name })

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(libraries)
	}

	if len(libraries) == 0 {
		fmt.Println("No libraries. Run 'spindle update <name> --path <dir>' to create one.")
		return nil
	}

	table := NewTable(os.Stdout, "NAME", "TRACKS", "FAVOURITES", "PLAYS")
	for _, lib := range libraries {
		table.Row(lib.Name,
			fmt.Sprintf("%d", lib.Tracks),
			fmt.Sprintf("%d", lib.Favourites),
			fmt.Sprintf("%d", lib.TotalPlays))
	}
	table.Flush()
	return nil
}
