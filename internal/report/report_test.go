package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/pable/go-skill-ratings/internal/model"
)

func init() {
	color.NoColor = true
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{12, "+12.00"},
		{-3.456, "-3.46"},
		{0.001, "±0.00"},
		{-0.001, "±0.00"},
	}
	for _, tt := range tests {
		if got := FormatDelta(tt.in); got != tt.want {
			t.Errorf("FormatDelta(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPrintResultTable(t *testing.T) {
	var buf bytes.Buffer
	PrintResultTable(&buf, []model.PlayerResult{
		{Player: "alice", Team: 0, Rank: 1, MeanBefore: 25, MeanAfter: 37},
		{Player: "carol", Team: 1, Rank: 2, MeanBefore: 25, MeanAfter: 13},
	})
	out := buf.String()
	for _, want := range []string{"PLAYER", "alice", "carol", "37.00", "+12.00", "-12.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintLeaderboardMarksFocus(t *testing.T) {
	var buf bytes.Buffer
	PrintLeaderboard(&buf, []model.PlayerRating{
		{Name: "alice", Mean: 37, Matches: 1, LastPlayed: "2025-01-01"},
		{Name: "bob", Mean: 13, Matches: 1, LastPlayed: "2025-01-01"},
	}, "bob")
	out := buf.String()
	var bobLine string
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "bob") {
			bobLine = line
		}
	}
	if !strings.Contains(bobLine, ">") {
		t.Errorf("expected focus marker on bob's row:\n%s", out)
	}
}

func TestPrintHistoryTableTotals(t *testing.T) {
	var buf bytes.Buffer
	PrintHistoryTable(&buf, []model.HistoryEntry{
		{MatchID: "0123456789", PlayedAt: "2025-01-01", Rank: 1, TeamCount: 2, Quality: 1, MeanBefore: 25, MeanAfter: 37},
		{MatchID: "abcdef0123", PlayedAt: "2025-01-02", Rank: 2, TeamCount: 3, Quality: 0.5, MeanBefore: 37, MeanAfter: 30},
	})
	out := buf.String()
	for _, want := range []string{"01234567", "2/3", "50%", "2 matches, 25.00 → 30.00 (+5.00)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintMatchSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintMatchSummary(&buf, model.MatchSummary{MatchID: "deadbeef-1234", PlayedAt: "2025-01-01", TeamCount: 2, PlayerCount: 4, Quality: 1, Calculator: "gaussian"})
	if !strings.Contains(buf.String(), "Match: deadbeef  |  Date: 2025-01-01") {
		t.Errorf("unexpected summary %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Quality: 100.0%") {
		t.Errorf("unexpected summary %q", buf.String())
	}
}

func TestPrintQueryResult(t *testing.T) {
	var buf bytes.Buffer
	PrintQueryResult(&buf, []string{"name", "mean"}, [][]string{{"alice", "37.0000"}, {"bob", "13.0000"}})
	out := buf.String()
	for _, want := range []string{"alice", "13.0000", "(2 rows)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(strings.ToUpper(out), "MEAN") {
		t.Errorf("output missing header:\n%s", out)
	}

	buf.Reset()
	PrintQueryResult(&buf, []string{"name"}, nil)
	if buf.String() != "(no rows)\n" {
		t.Errorf("empty result = %q", buf.String())
	}
}

func sampleSnapshot() *model.Snapshot {
	return &model.Snapshot{
		ExportedAt: "2025-04-01T00:00:00Z",
		Players:    []model.PlayerRating{{Name: "alice", Mean: 37, Matches: 1, LastPlayed: "2025-01-01"}},
		Matches:    []model.MatchSummary{{MatchID: "m1", SourceHash: "h1", PlayedAt: "2025-01-01", Calculator: "gaussian", Quality: 1, TeamCount: 2, PlayerCount: 2}},
		Results:    []model.PlayerResult{{MatchID: "m1", Player: "alice", Rank: 1, MeanBefore: 25, MeanAfter: 37}},
	}
}

func TestSnapshotPlainAndCompressed(t *testing.T) {
	for _, compress := range []bool{false, true} {
		var buf bytes.Buffer
		if err := WriteSnapshot(&buf, sampleSnapshot(), compress); err != nil {
			t.Fatalf("WriteSnapshot(compress=%v): %v", compress, err)
		}
		if isZstd := bytes.HasPrefix(buf.Bytes(), zstdMagic); isZstd != compress {
			t.Errorf("compress=%v but zstd frame=%v", compress, isZstd)
		}
		if !compress && !strings.Contains(buf.String(), `"name": "alice"`) {
			t.Errorf("plain export should be indented JSON:\n%s", buf.String())
		}

		got, err := ReadSnapshot(&buf)
		if err != nil {
			t.Fatalf("ReadSnapshot(compress=%v): %v", compress, err)
		}
		if len(got.Players) != 1 || got.Players[0].Mean != 37 || got.Results[0].MeanAfter != 37 {
			t.Errorf("compress=%v: unexpected snapshot %+v", compress, got)
		}
	}
}

func TestReadSnapshotRejectsGarbage(t *testing.T) {
	if _, err := ReadSnapshot(strings.NewReader("not json")); err == nil {
		t.Error("expected decode error")
	}
}
