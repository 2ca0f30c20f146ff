// Package model holds the match, result and ladder records shared by the
// parser, ladder, storage and report packages.
package model

// ---- Raw input from a match sheet ----

// RawTeam is one team as written in a match sheet.
type RawTeam struct {
	Rank    int      `yaml:"rank"`
	Players []string `yaml:"players"`
}

// RawMatch is a parsed match sheet.
type RawMatch struct {
	SourceHash string    `yaml:"-"` // SHA-256 of the sheet bytes
	SourcePath string    `yaml:"-"`
	PlayedAt   string    `yaml:"played_at"`
	Teams      []RawTeam `yaml:"teams"`
}

// PlayerCount is the number of player slots across all teams.
func (m *RawMatch) PlayerCount() int {
	n := 0
	for _, t := range m.Teams {
		n += len(t.Players)
	}
	return n
}

// PlayerNames returns every player in team order.
func (m *RawMatch) PlayerNames() []string {
	out := make([]string, 0, m.PlayerCount())
	for _, t := range m.Teams {
		out = append(out, t.Players...)
	}
	return out
}

// ---- Settled match records ----

// MatchSummary is the stored header of a rated match.
type MatchSummary struct {
	MatchID     string  `json:"match_id"`
	SourceHash  string  `json:"source_hash"`
	PlayedAt    string  `json:"played_at"`
	Calculator  string  `json:"calculator"`
	Quality     float64 `json:"quality"` // computed on pre-match ratings
	TeamCount   int     `json:"team_count"`
	PlayerCount int     `json:"player_count"`
}

// PlayerResult is one player's rating movement in one match.
type PlayerResult struct {
	MatchID    string  `json:"match_id"`
	Player     string  `json:"player"`
	Team       int     `json:"team"` // index in the match sheet
	Rank       int     `json:"rank"`
	MeanBefore float64 `json:"mean_before"`
	MeanAfter  float64 `json:"mean_after"`
}

// Delta is the change in mean.
func (r PlayerResult) Delta() float64 {
	return r.MeanAfter - r.MeanBefore
}

// ---- Ladder state ----

// PlayerRating is a player's current ladder entry.
type PlayerRating struct {
	Name       string  `json:"name"`
	Mean       float64 `json:"mean"`
	Matches    int     `json:"matches"`
	LastPlayed string  `json:"last_played"`
}

// HistoryEntry is one match in a player's history, oldest first.
type HistoryEntry struct {
	MatchID    string  `json:"match_id"`
	PlayedAt   string  `json:"played_at"`
	Team       int     `json:"team"`
	Rank       int     `json:"rank"`
	TeamCount  int     `json:"team_count"`
	Quality    float64 `json:"quality"`
	MeanBefore float64 `json:"mean_before"`
	MeanAfter  float64 `json:"mean_after"`
}

func (h HistoryEntry) Delta() float64 {
	return h.MeanAfter - h.MeanBefore
}

// Snapshot is a full export of the ladder.
type Snapshot struct {
	ExportedAt string         `json:"exported_at"`
	Players    []PlayerRating `json:"players"`
	Matches    []MatchSummary `json:"matches"`
	Results    []PlayerResult `json:"results"`
}
