package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rosdahl/spindle/internal/catalog"
	spinerrors "github.com/rosdahl/spindle/internal/errors"
	"github.com/rosdahl/spindle/internal/scan"
)

var updatePath string

var updateCmd = &cobra.Command{
	Use:   "update <library>",
	Short: "Index a music directory into a library",
	Long: `Walk a music directory and index every playable file into the named
library. New files are added, changed tags are refreshed, and records for
files that disappeared from disk are removed. Favourites and play counts
survive re-indexing.

Examples:
  spindle update jazz --path ~/Music/jazz
  spindle update jazz --path /mnt/nas/jazz   # Same library, moved files`,
	Args: cobra.ExactArgs(1),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVarP(&updatePath, "path", "p", "", "music directory to index (required)")
	_ = updateCmd.MarkFlagRequired("path")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	library := args[0]

	store, err := openLibrary(library)
	if err != nil {
		return err
	}
	defer store.Close()

	return scanLibrary(store, library, updatePath)
}

// openLibrary opens (creating if needed) the named library database.
func openLibrary(name string) (*catalog.Store, error) {
	if err := os.MkdirAll(cfg.General.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := catalog.Open(cfg.LibraryPath(name))
	if err != nil {
		return nil, fmt.Errorf("failed to open library %q: %w", name, err)
	}
	return store, nil
}

// scanLibrary indexes root into store, printing progress as it goes.
func scanLibrary(store *catalog.Store, library, root string) error {
	ffplay, err := exec.LookPath(cfg.Player.FFplay)
	if err != nil {
		return fmt.Errorf("%w: %s", spinerrors.ErrPlayerNotFound, cfg.Player.FFplay)
	}
	ffprobe, err := exec.LookPath(cfg.Player.FFprobe)
	if err != nil {
		return fmt.Errorf("%w: %s", spinerrors.ErrProbeNotFound, cfg.Player.FFprobe)
	}
	// ffmpeg is only a duration fallback; scanning works without it.
	ffmpeg, _ := exec.LookPath(cfg.Player.FFmpeg)

	formats, err := scan.SupportedFormats(ffplay)
	if err != nil {
		return err
	}

	root, err = filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", root, err)
	}

	logger.Info("indexing library",
		zap.String("library", library),
		zap.String("root", root))

	if !JSONOutput() {
		fmt.Printf("Indexing %s into %q...\n", root, library)
	}

	scanner := scan.NewScanner(store, scan.NewProber(ffprobe, ffmpeg), formats)
	result, err := scanner.Scan(root, func(path string) {
		if Verbose() && !JSONOutput() {
			fmt.Printf("  %s\n", path)
		}
	})
	if err != nil {
		return err
	}

	logger.Info("indexing finished",
		zap.Int("found", result.Data.Found),
		zap.Int("indexed", result.Data.Indexed),
		zap.Int("skipped", result.Data.Skipped))

	if JSONOutput() {
		return json.NewEncoder(os.Stdout).Encode(result.Data)
	}

	fmt.Printf("Indexed %d of %d files", result.Data.Indexed, result.Data.Found)
	if result.Data.Skipped > 0 {
		fmt.Printf(" (%d skipped)", result.Data.Skipped)
	}
	fmt.Println()

	if result.HasErrors() && Verbose() {
		fmt.Println(result.ErrorSummary())
	}
	return nil
}
