package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/ladder"
	"github.com/pable/go-skill-ratings/internal/parser"
)

var qualityCmd = &cobra.Command{
	Use:   "quality <sheet.yaml>",
	Short: "Show how evenly matched a sheet's teams are under current ratings",
	Long:  "Print the match quality (0-100%) of the teams in a sheet using the current ladder. Ranks are ignored and nothing is stored.",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuality,
}

func runQuality(cmd *cobra.Command, args []string) error {
	raw, err := parser.ParseFile(args[0])
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	current, err := db.GetRatings(raw.PlayerNames())
	if err != nil {
		return fmt.Errorf("load ratings: %w", err)
	}
	calc, err := cfg.NewCalculator()
	if err != nil {
		return err
	}
	q, err := ladder.Quality(calc, cfg.Game, raw, current)
	if err != nil {
		return fmt.Errorf("match quality: %w", err)
	}

	for i, t := range raw.Teams {
		fmt.Fprintf(os.Stdout, "Team %d:", i+1)
		for _, name := range t.Players {
			mean, ok := current[name]
			if !ok {
				mean = cfg.Game.InitialMean
			}
			fmt.Fprintf(os.Stdout, "  %s (%.2f)", name, mean)
		}
		fmt.Fprintln(os.Stdout)
	}
	fmt.Fprintf(os.Stdout, "\nMatch quality: %.1f%%\n", q*100)
	return nil
}
