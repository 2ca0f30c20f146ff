package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/report"
)

var (
	exportOut  string
	exportZstd bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ladder and match history as JSON",
	Long: `Write every player, match and result row as a single JSON document.

With --zstd the document is zstd-compressed; use a .json.zst extension.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportZstd, "zstd", false, "compress output with zstd")
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := db.Snapshot(time.Now())
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	var w io.Writer = os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}
	if err := report.WriteSnapshot(w, snap, exportZstd); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	logger.Info().
		Int("players", len(snap.Players)).
		Int("matches", len(snap.Matches)).
		Bool("zstd", exportZstd).
		Msg("exported ladder")
	return nil
}
