package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/report"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the ladder database",
	Long: `Run an arbitrary SQL query against the ladder database and print results as a table.

Schema overview:
  players(name, mean, matches, last_played)
  matches(id, source_hash, played_at, calculator, quality, team_count, player_count, created_at)
  match_results(match_id, player, team, rank, mean_before, mean_after)

Example: SELECT player, mean_after - mean_before AS delta FROM match_results WHERE match_id LIKE 'abcd%'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	report.PrintQueryResult(os.Stdout, cols, rows)
	return nil
}
