package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/storage"
)

var dropForce bool

// dropCmd deletes the ladder database file.
var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Delete the ladder database",
	Long:  "Permanently delete the SQLite ladder database and its WAL files. Ratings and match history are lost; export first to keep a copy you can import later.",
	Args:  cobra.NoArgs,
	RunE:  runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	removed, err := storage.Remove(dbPath)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
		return nil
	}
	logger.Debug().Str("db", dbPath).Msg("database dropped")
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}
