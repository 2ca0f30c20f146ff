package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/report"
)

var showCmd = &cobra.Command{
	Use:   "show <match-id-prefix>",
	Short: "Show a rated match by ID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	match, err := db.GetMatchByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if match == nil {
		fmt.Fprintf(os.Stderr, "No match found with ID prefix %q\n", prefix)
		return nil
	}

	results, err := db.GetMatchResults(match.MatchID)
	if err != nil {
		return fmt.Errorf("get results: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, *match)
	report.PrintResultTable(os.Stdout, results)
	return nil
}
