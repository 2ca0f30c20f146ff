package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/pable/go-skill-ratings/internal/model"
)

// Snapshot reads the whole ladder for export: players by mean, matches
// oldest first, and every result row.
func (db *DB) Snapshot(now time.Time) (*model.Snapshot, error) {
	players, err := db.ListPlayers()
	if err != nil {
		return nil, err
	}
	matches, err := db.ListMatches()
	if err != nil {
		return nil, err
	}
	// ListMatches is newest first; exports read chronologically.
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}

	rows, err := db.conn.Query(`
		SELECT r.match_id, r.player, r.team, r.rank, r.mean_before, r.mean_after
		FROM match_results r JOIN matches m ON m.id = r.match_id
		ORDER BY m.played_at ASC, m.created_at ASC, m.rowid ASC, r.team, r.rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results, err := scanResults(rows)
	if err != nil {
		return nil, err
	}

	return &model.Snapshot{
		ExportedAt: now.UTC().Format(time.RFC3339),
		Players:    players,
		Matches:    matches,
		Results:    results,
	}, nil
}

// Restore loads an exported snapshot into an empty ladder in one transaction.
// Players are written as exported rather than replayed, so the ladder matches
// the snapshot even when it was rated with another calculator.
func (db *DB) Restore(snap *model.Snapshot) error {
	var existing int
	if err := db.conn.QueryRow("SELECT COUNT(*) FROM matches").Scan(&existing); err != nil {
		return err
	}
	if existing > 0 {
		return fmt.Errorf("ladder already holds %d matches; drop it before importing", existing)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, p := range snap.Players {
		if _, err := tx.Exec(`
			INSERT INTO players(name, mean, matches, last_played) VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				mean = excluded.mean, matches = excluded.matches, last_played = excluded.last_played`,
			p.Name, p.Mean, p.Matches, p.LastPlayed,
		); err != nil {
			return fmt.Errorf("insert player %s: %w", p.Name, err)
		}
	}
	for _, m := range snap.Matches {
		if _, err := tx.Exec(`
			INSERT INTO matches(id, source_hash, played_at, calculator, quality, team_count, player_count)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.MatchID, m.SourceHash, m.PlayedAt, m.Calculator, m.Quality, m.TeamCount, m.PlayerCount,
		); err != nil {
			return fmt.Errorf("insert match %s: %w", m.MatchID, err)
		}
	}
	for _, r := range snap.Results {
		if _, err := tx.Exec(`
			INSERT INTO match_results(match_id, player, team, rank, mean_before, mean_after)
			VALUES (?, ?, ?, ?, ?, ?)`,
			r.MatchID, r.Player, r.Team, r.Rank, r.MeanBefore, r.MeanAfter,
		); err != nil {
			return fmt.Errorf("insert result %s/%s: %w", r.MatchID, r.Player, err)
		}
	}
	return tx.Commit()
}

// placeholders returns "?,?,...,?" with n entries.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}
