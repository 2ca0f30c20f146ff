package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/report"
)

var importCmd = &cobra.Command{
	Use:   "import <export.json|export.json.zst>",
	Short: "Load a ladder written by export into an empty database",
	Long: `Restore players, matches and results from an export file. Plain and
zstd-compressed exports are both accepted. The target database must not
hold any matches yet; run drop first to replace an existing ladder.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open %s: %w", args[0], err)
	}
	defer f.Close()

	snap, err := report.ReadSnapshot(f)
	if err != nil {
		return fmt.Errorf("read export: %w", err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Restore(snap); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	logger.Info().
		Int("players", len(snap.Players)).
		Int("matches", len(snap.Matches)).
		Str("exported_at", snap.ExportedAt).
		Msg("imported ladder")
	fmt.Fprintf(os.Stdout, "Imported %d players and %d matches.\n", len(snap.Players), len(snap.Matches))
	return nil
}
