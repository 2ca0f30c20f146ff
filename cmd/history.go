package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history <player>",
	Short: "Chronological rating history for a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.GetPlayerHistory(args[0])
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("no matches found")
		return nil
	}

	report.PrintHistoryTable(os.Stdout, entries)
	return nil
}
