package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pable/go-skill-ratings/internal/config"
	"github.com/pable/go-skill-ratings/internal/storage"
)

var (
	dbPath     string
	configPath string
	logLevel   string

	cfg    *config.Config
	logger = zerolog.Nop()
)

var rootCmd = &cobra.Command{
	Use:   "skillrate",
	Short: "Skill rating ladder",
	Long: `Rate players from ranked match sheets and keep a persistent ladder.

Multi-team and team matches are rated with the dueling heuristic: every player
is compared against every opponent on other teams and moves by the average of
those two-player Elo updates.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".skillrate", "ladder.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")

	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(qualityCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(sqlCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(dropCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	c, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = c

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
	logger.Debug().
		Str("calculator", cfg.Calculator).
		Str("db", dbPath).
		Msg("configuration loaded")
	return nil
}

// openDB opens the ladder database, creating its directory if needed.
func openDB() (*storage.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
