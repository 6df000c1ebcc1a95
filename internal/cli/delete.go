package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	spinerrors "github.com/rosdahl/spindle/internal/errors"
)

var deleteForce bool

var deleteCmd = &cobra.Command{
	Use:   "delete <library>",
	Short: "Delete a library",
	Long: `Delete a library's index, including its favourites and play counts.
The music files themselves are never touched.`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	library := args[0]
	dbPath := cfg.LibraryPath(library)

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", spinerrors.ErrLibraryNotFound, library)
	}

	if !deleteForce {
		var confirmed bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete library %q?", library)).
					Description("Favourites and play counts will be lost. Music files are not touched.").
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("confirmation cancelled: %w", err)
		}
		if !confirmed {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete library: %w", err)
	}

	if !JSONOutput() {
		fmt.Printf("Deleted library %q\n", library)
	}
	return nil
}
