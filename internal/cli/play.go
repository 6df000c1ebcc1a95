package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/rosdahl/spindle/internal/catalog"
	spinerrors "github.com/rosdahl/spindle/internal/errors"
	"github.com/rosdahl/spindle/internal/input"
	"github.com/rosdahl/spindle/internal/player"
	"github.com/rosdahl/spindle/internal/session"
	"github.com/rosdahl/spindle/internal/ui"
)

var playPath string

var playCmd = &cobra.Command{
	Use:   "play <library>",
	Short: "Play a library in fair rotation",
	Long: `Play tracks from a library, always choosing among the least-played
ones. Playback runs until quit.

Examples:
  spindle play jazz                  # Play an existing library
  spindle play jazz --path ~/Music   # Index ~/Music first, then play`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVarP(&playPath, "path", "p", "", "music directory to index before playing")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	library := args[0]

	ffplay, err := exec.LookPath(cfg.Player.FFplay)
	if err != nil {
		return fmt.Errorf("%w: %s", spinerrors.ErrPlayerNotFound, cfg.Player.FFplay)
	}

	dbPath := cfg.LibraryPath(library)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) && playPath == "" {
		return fmt.Errorf("%w: %s", spinerrors.ErrLibraryNotFound, library)
	}

	store, err := openLibrary(library)
	if err != nil {
		return err
	}
	defer store.Close()

	if playPath != "" {
		if err := scanLibrary(store, library, playPath); err != nil {
			return err
		}
	}

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("failed to read library: %w", err)
	}
	if stats.Tracks == 0 {
		return fmt.Errorf("%w: %s", spinerrors.ErrEmptyCatalogue, library)
	}

	keymap, err := input.NewKeymap(cfg.Controls)
	if err != nil {
		return fmt.Errorf("%w: %v", spinerrors.ErrInvalidConfig, err)
	}

	logger.Info("session starting",
		zap.String("library", library),
		zap.Int("tracks", stats.Tracks))

	return runSession(store, ffplay, keymap)
}

// runSession owns the terminal for the lifetime of the playback session.
func runSession(store *catalog.Store, ffplay string, keymap *input.Keymap) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
		fmt.Println()
	}()

	width, _, err := term.GetSize(fd)
	if err != nil {
		width = 80
	}

	hint := ui.ControlsHint(cfg.Controls.PlayPause, cfg.Controls.Skip,
		cfg.Controls.Favourite, cfg.Controls.Quit)
	screen := ui.NewScreen(os.Stdout, width, hint)

	commands := make(chan session.Command, 16)
	go input.NewReader(os.Stdin, keymap).Run(commands)

	driver := player.New(ffplay)
	sess := session.New(store, driver, screen, commands, logger)
	return sess.Run()
}
