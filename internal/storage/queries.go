package storage

import (
	"database/sql"
	"fmt"

	"github.com/pable/go-skill-ratings/internal/model"
)

// MatchExists returns true if a sheet with the given hash has already been rated.
func (db *DB) MatchExists(sourceHash string) (bool, error) {
	var count int
	err := db.conn.QueryRow("SELECT COUNT(1) FROM matches WHERE source_hash = ?", sourceHash).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetRatings returns the stored mean for each named player that exists.
// Unknown names are absent from the result.
func (db *DB) GetRatings(names []string) (map[string]float64, error) {
	out := make(map[string]float64, len(names))
	if len(names) == 0 {
		return out, nil
	}
	args := make([]any, len(names))
	for i, n := range names {
		args[i] = n
	}
	rows, err := db.conn.Query(
		"SELECT name, mean FROM players WHERE name IN ("+placeholders(len(names))+")", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var mean float64
		if err := rows.Scan(&name, &mean); err != nil {
			return nil, err
		}
		out[name] = mean
	}
	return out, rows.Err()
}

// RecordMatch stores a settled match in one transaction: the match row, the
// new player means, and one result row per player.
func (db *DB) RecordMatch(summary model.MatchSummary, results []model.PlayerResult) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO matches(id, source_hash, played_at, calculator, quality, team_count, player_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		summary.MatchID, summary.SourceHash, summary.PlayedAt, summary.Calculator,
		summary.Quality, summary.TeamCount, summary.PlayerCount,
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	upsert, err := tx.Prepare(`
		INSERT INTO players(name, mean, matches, last_played) VALUES (?, ?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET
			mean = excluded.mean,
			matches = players.matches + 1,
			last_played = MAX(players.last_played, excluded.last_played)`)
	if err != nil {
		return err
	}
	defer upsert.Close()

	insert, err := tx.Prepare(`
		INSERT INTO match_results(match_id, player, team, rank, mean_before, mean_after)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer insert.Close()

	for _, r := range results {
		if _, err := upsert.Exec(r.Player, r.MeanAfter, summary.PlayedAt); err != nil {
			return fmt.Errorf("upsert player %s: %w", r.Player, err)
		}
		if _, err := insert.Exec(summary.MatchID, r.Player, r.Team, r.Rank, r.MeanBefore, r.MeanAfter); err != nil {
			return fmt.Errorf("insert result for %s: %w", r.Player, err)
		}
	}
	return tx.Commit()
}

// ListPlayers returns the ladder, highest mean first.
func (db *DB) ListPlayers() ([]model.PlayerRating, error) {
	rows, err := db.conn.Query(`
		SELECT name, mean, matches, last_played
		FROM players ORDER BY mean DESC, name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerRating
	for rows.Next() {
		var p model.PlayerRating
		if err := rows.Scan(&p.Name, &p.Mean, &p.Matches, &p.LastPlayed); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const matchColumns = `id, source_hash, played_at, calculator, quality, team_count, player_count`

func scanMatch(s interface{ Scan(...any) error }) (model.MatchSummary, error) {
	var m model.MatchSummary
	err := s.Scan(&m.MatchID, &m.SourceHash, &m.PlayedAt, &m.Calculator,
		&m.Quality, &m.TeamCount, &m.PlayerCount)
	return m, err
}

// ListMatches returns all rated matches, newest first.
func (db *DB) ListMatches() ([]model.MatchSummary, error) {
	rows, err := db.conn.Query(`SELECT ` + matchColumns + `
		FROM matches ORDER BY played_at DESC, created_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchSummary
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// GetMatchByPrefix returns the first match whose ID starts with prefix, or nil.
func (db *DB) GetMatchByPrefix(prefix string) (*model.MatchSummary, error) {
	m, err := scanMatch(db.conn.QueryRow(`SELECT `+matchColumns+`
		FROM matches WHERE id LIKE ? ORDER BY id LIMIT 1`, prefix+"%"))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// GetMatchResults returns a match's results in sheet order.
func (db *DB) GetMatchResults(matchID string) ([]model.PlayerResult, error) {
	rows, err := db.conn.Query(`
		SELECT match_id, player, team, rank, mean_before, mean_after
		FROM match_results WHERE match_id = ? ORDER BY team, rowid`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]model.PlayerResult, error) {
	var out []model.PlayerResult
	for rows.Next() {
		var r model.PlayerResult
		if err := rows.Scan(&r.MatchID, &r.Player, &r.Team, &r.Rank, &r.MeanBefore, &r.MeanAfter); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetPlayerHistory returns every match a player took part in, oldest first.
func (db *DB) GetPlayerHistory(name string) ([]model.HistoryEntry, error) {
	rows, err := db.conn.Query(`
		SELECT m.id, m.played_at, r.team, r.rank, m.team_count, m.quality, r.mean_before, r.mean_after
		FROM match_results r JOIN matches m ON m.id = r.match_id
		WHERE r.player = ?
		ORDER BY m.played_at ASC, m.created_at ASC, m.rowid ASC`, name)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.HistoryEntry
	for rows.Next() {
		var h model.HistoryEntry
		if err := rows.Scan(&h.MatchID, &h.PlayedAt, &h.Team, &h.Rank, &h.TeamCount,
			&h.Quality, &h.MeanBefore, &h.MeanAfter); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// QueryRaw runs an arbitrary query and returns column names and stringified rows.
func (db *DB) QueryRaw(query string) ([]string, [][]string, error) {
	rows, err := db.conn.Query(query)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var out [][]string
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, nil, err
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = formatValue(v)
		}
		out = append(out, row)
	}
	return cols, out, rows.Err()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case float64:
		return fmt.Sprintf("%.4f", x)
	default:
		return fmt.Sprint(x)
	}
}
