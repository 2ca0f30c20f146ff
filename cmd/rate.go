package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/elo"
	"github.com/pable/go-skill-ratings/internal/ladder"
	"github.com/pable/go-skill-ratings/internal/parser"
	"github.com/pable/go-skill-ratings/internal/rating"
	"github.com/pable/go-skill-ratings/internal/report"
	"github.com/pable/go-skill-ratings/internal/storage"
)

var rateDryRun bool

var rateCmd = &cobra.Command{
	Use:   "rate <sheet.yaml> [sheet.yaml...]",
	Short: "Rate one or more match sheets and update the ladder",
	Long: `Rate match sheets in the order given. Each sheet lists teams with a rank
(lower is better, equal ranks draw) and the players on each team:

  played_at: 2025-03-01
  teams:
    - rank: 1
      players: [alice, bob]
    - rank: 2
      players: [carol, dave]

Sheets already rated (same file contents) are skipped. Ratings default to
FIDE Elo starting at 1200; set calculator and game in the config file to
change the scale.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRate,
}

func init() {
	rateCmd.Flags().BoolVar(&rateDryRun, "dry-run", false, "compute and print new ratings without storing them")
}

func runRate(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	calc, err := cfg.NewCalculator(elo.WithLogger(logger))
	if err != nil {
		return err
	}
	return rateSheets(os.Stdout, db, calc, args, rateDryRun)
}

// rateSheets settles each sheet in order. Ratings produced earlier in the
// same run feed later sheets whether or not they were stored, so a dry run
// prints what a real run would record.
func rateSheets(w io.Writer, db *storage.DB, calc rating.Calculator, paths []string, dryRun bool) error {
	settled := make(map[string]float64)
	seen := make(map[string]bool)

	for _, path := range paths {
		raw, err := parser.ParseFile(path)
		if err != nil {
			return err
		}
		log := logger.With().Str("sheet", path).Str("hash", raw.SourceHash[:12]).Logger()

		if seen[raw.SourceHash] {
			log.Info().Msg("already rated in this run, skipping")
			continue
		}
		exists, err := db.MatchExists(raw.SourceHash)
		if err != nil {
			return fmt.Errorf("check match: %w", err)
		}
		if exists {
			log.Info().Msg("already rated, skipping")
			continue
		}

		names := raw.PlayerNames()
		current, err := db.GetRatings(names)
		if err != nil {
			return fmt.Errorf("load ratings: %w", err)
		}
		for _, name := range names {
			if mean, ok := settled[name]; ok {
				current[name] = mean
			}
		}
		summary, results, err := ladder.Settle(calc, cfg.Game, raw, current, cfg.Calculator)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		report.PrintMatchSummary(w, summary)
		report.PrintResultTable(w, results)

		seen[raw.SourceHash] = true
		for _, r := range results {
			settled[r.Player] = r.MeanAfter
		}

		if dryRun {
			log.Info().Msg("dry run, not stored")
			continue
		}
		if err := db.RecordMatch(summary, results); err != nil {
			return fmt.Errorf("store match: %w", err)
		}
		log.Info().Str("match", summary.MatchID).Int("players", len(results)).Msg("rated")
	}
	return nil
}
