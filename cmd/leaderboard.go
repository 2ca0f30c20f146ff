package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/report"
)

var (
	leaderboardTop    int
	leaderboardPlayer string
)

var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"ladder"},
	Short:   "Show players ordered by rating",
	Args:    cobra.NoArgs,
	RunE:    runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVarP(&leaderboardTop, "top", "n", 0, "only show the top N players (0 = all)")
	leaderboardCmd.Flags().StringVar(&leaderboardPlayer, "player", "", "highlight a player")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	players, err := db.ListPlayers()
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	if len(players) == 0 {
		fmt.Fprintln(os.Stdout, "Ladder is empty. Run 'skillrate rate <sheet.yaml>' to add matches.")
		return nil
	}
	if leaderboardTop > 0 && leaderboardTop < len(players) {
		players = players[:leaderboardTop]
	}
	report.PrintLeaderboard(os.Stdout, players, leaderboardPlayer)
	return nil
}
