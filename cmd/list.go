package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/report"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rated matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches rated yet. Run 'skillrate rate <sheet.yaml>' to add one.")
		return nil
	}
	report.PrintMatchList(os.Stdout, matches)
	return nil
}
