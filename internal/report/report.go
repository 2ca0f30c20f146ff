package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pable/go-skill-ratings/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// FormatDelta renders a rating change with sign, green for gains and red
// for losses. Colour is dropped automatically when stdout is not a terminal.
func FormatDelta(d float64) string {
	switch {
	case d > 0.005:
		return color.GreenString("+%.2f", d)
	case d < -0.005:
		return color.RedString("%.2f", d)
	default:
		return "±0.00"
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// PrintMatchSummary prints a one-line summary header for the match.
func PrintMatchSummary(w io.Writer, s model.MatchSummary) {
	fmt.Fprintf(w, "\nMatch: %s  |  Date: %s  |  Teams: %d  |  Players: %d  |  Quality: %.1f%%  |  Calculator: %s\n\n",
		shortID(s.MatchID), s.PlayedAt, s.TeamCount, s.PlayerCount, s.Quality*100, s.Calculator)
}

// PrintResultTable prints one row per player with before, after and delta.
func PrintResultTable(w io.Writer, results []model.PlayerResult) {
	table := newTable(w)
	table.Header("TEAM", "RANK", "PLAYER", "BEFORE", "AFTER", "DELTA")
	for _, r := range results {
		table.Append(
			strconv.Itoa(r.Team+1),
			strconv.Itoa(r.Rank),
			r.Player,
			fmt.Sprintf("%.2f", r.MeanBefore),
			fmt.Sprintf("%.2f", r.MeanAfter),
			FormatDelta(r.Delta()),
		)
	}
	table.Render()
}

// PrintLeaderboard prints the ladder. If focus is non-empty, that player's
// row is marked with ">".
func PrintLeaderboard(w io.Writer, players []model.PlayerRating, focus string) {
	table := newTable(w)
	table.Header(" ", "#", "PLAYER", "RATING", "MATCHES", "LAST_PLAYED")
	for i, p := range players {
		marker := " "
		if focus != "" && p.Name == focus {
			marker = ">"
		}
		table.Append(
			marker,
			strconv.Itoa(i+1),
			p.Name,
			fmt.Sprintf("%.2f", p.Mean),
			strconv.Itoa(p.Matches),
			p.LastPlayed,
		)
	}
	table.Render()
}

// PrintHistoryTable prints a player's matches oldest first with the running
// rating.
func PrintHistoryTable(w io.Writer, entries []model.HistoryEntry) {
	table := newTable(w)
	table.Header("DATE", "MATCH", "PLACE", "QUALITY", "BEFORE", "AFTER", "DELTA")
	for _, h := range entries {
		table.Append(
			h.PlayedAt,
			shortID(h.MatchID),
			fmt.Sprintf("%d/%d", h.Rank, h.TeamCount),
			fmt.Sprintf("%.0f%%", h.Quality*100),
			fmt.Sprintf("%.2f", h.MeanBefore),
			fmt.Sprintf("%.2f", h.MeanAfter),
			FormatDelta(h.Delta()),
		)
	}
	table.Render()

	if len(entries) > 0 {
		first, last := entries[0], entries[len(entries)-1]
		fmt.Fprintf(w, "\n%d matches, %.2f → %.2f (%s)\n",
			len(entries), first.MeanBefore, last.MeanAfter, FormatDelta(last.MeanAfter-first.MeanBefore))
	}
}

// PrintMatchList prints rated matches, one per row.
func PrintMatchList(w io.Writer, matches []model.MatchSummary) {
	table := newTable(w)
	table.Header("MATCH", "DATE", "TEAMS", "PLAYERS", "QUALITY", "CALCULATOR")
	for _, m := range matches {
		table.Append(
			shortID(m.MatchID),
			m.PlayedAt,
			strconv.Itoa(m.TeamCount),
			strconv.Itoa(m.PlayerCount),
			fmt.Sprintf("%.0f%%", m.Quality*100),
			m.Calculator,
		)
	}
	table.Render()
}

// PrintQueryResult prints raw query output with a row count footer.
func PrintQueryResult(w io.Writer, cols []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return
	}
	table := newTable(w)
	header := make([]any, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	table.Header(header...)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		table.Append(cells...)
	}
	table.Render()
	fmt.Fprintf(w, "\n(%d rows)\n", len(rows))
}
