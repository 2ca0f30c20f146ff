package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/pable/go-skill-ratings/internal/model"
)

func openMemDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open in-memory db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleMatch(id, hash, date string, results ...model.PlayerResult) (model.MatchSummary, []model.PlayerResult) {
	for i := range results {
		results[i].MatchID = id
	}
	return model.MatchSummary{
		MatchID:     id,
		SourceHash:  hash,
		PlayedAt:    date,
		Calculator:  "gaussian",
		Quality:     1,
		TeamCount:   2,
		PlayerCount: len(results),
	}, results
}

func TestRecordMatchAndExists(t *testing.T) {
	db := openMemDB(t)

	summary, results := sampleMatch("m1", "abc123", "2025-01-01",
		model.PlayerResult{Player: "alice", Team: 0, Rank: 1, MeanBefore: 25, MeanAfter: 37},
		model.PlayerResult{Player: "bob", Team: 1, Rank: 2, MeanBefore: 25, MeanAfter: 13},
	)
	if err := db.RecordMatch(summary, results); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	exists, err := db.MatchExists("abc123")
	if err != nil {
		t.Fatalf("MatchExists: %v", err)
	}
	if !exists {
		t.Error("expected match to exist after insert")
	}

	exists2, _ := db.MatchExists("nonexistent")
	if exists2 {
		t.Error("expected non-existent match to not exist")
	}
}

func TestRecordMatchRejectsDuplicateSheet(t *testing.T) {
	db := openMemDB(t)

	s1, r1 := sampleMatch("m1", "same", "2025-01-01", model.PlayerResult{Player: "alice", MeanBefore: 25, MeanAfter: 30})
	if err := db.RecordMatch(s1, r1); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}
	s2, r2 := sampleMatch("m2", "same", "2025-01-02", model.PlayerResult{Player: "alice", MeanBefore: 30, MeanAfter: 40})
	if err := db.RecordMatch(s2, r2); err == nil {
		t.Fatal("expected unique violation on source_hash")
	}

	// The failed transaction must not have moved alice.
	ratings, err := db.GetRatings([]string{"alice"})
	if err != nil {
		t.Fatalf("GetRatings: %v", err)
	}
	if ratings["alice"] != 30 {
		t.Errorf("alice mean = %v, want 30", ratings["alice"])
	}
}

func TestGetRatings(t *testing.T) {
	db := openMemDB(t)

	got, err := db.GetRatings(nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("GetRatings(nil) = %v, %v", got, err)
	}

	s, r := sampleMatch("m1", "h1", "2025-01-01",
		model.PlayerResult{Player: "alice", MeanBefore: 25, MeanAfter: 37},
		model.PlayerResult{Player: "bob", Team: 1, MeanBefore: 25, MeanAfter: 13},
	)
	if err := db.RecordMatch(s, r); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	got, err = db.GetRatings([]string{"alice", "bob", "carol"})
	if err != nil {
		t.Fatalf("GetRatings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 known players, got %d", len(got))
	}
	if got["alice"] != 37 || got["bob"] != 13 {
		t.Errorf("unexpected ratings %v", got)
	}
	if _, ok := got["carol"]; ok {
		t.Error("unknown player should be absent")
	}
}

func TestListPlayersOrderedByMean(t *testing.T) {
	db := openMemDB(t)

	s1, r1 := sampleMatch("m1", "h1", "2025-01-01",
		model.PlayerResult{Player: "alice", MeanBefore: 25, MeanAfter: 37},
		model.PlayerResult{Player: "bob", Team: 1, MeanBefore: 25, MeanAfter: 13},
	)
	s2, r2 := sampleMatch("m2", "h2", "2025-02-01",
		model.PlayerResult{Player: "bob", MeanBefore: 13, MeanAfter: 40},
		model.PlayerResult{Player: "carol", Team: 1, MeanBefore: 25, MeanAfter: 20},
	)
	for _, m := range []struct {
		s model.MatchSummary
		r []model.PlayerResult
	}{{s1, r1}, {s2, r2}} {
		if err := db.RecordMatch(m.s, m.r); err != nil {
			t.Fatalf("RecordMatch: %v", err)
		}
	}

	list, err := db.ListPlayers()
	if err != nil {
		t.Fatalf("ListPlayers: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 players, got %d", len(list))
	}
	if list[0].Name != "bob" || list[0].Mean != 40 || list[0].Matches != 2 {
		t.Errorf("unexpected leader %+v", list[0])
	}
	if list[0].LastPlayed != "2025-02-01" {
		t.Errorf("bob last played %s", list[0].LastPlayed)
	}
	if list[2].Name != "carol" {
		t.Errorf("expected carol last, got %s", list[2].Name)
	}
}

func TestListMatchesAndPrefix(t *testing.T) {
	db := openMemDB(t)

	s1, r1 := sampleMatch("deadbeef-0001", "h1", "2025-01-01", model.PlayerResult{Player: "a", MeanAfter: 1})
	s2, r2 := sampleMatch("cafef00d-0002", "h2", "2025-02-01", model.PlayerResult{Player: "a", MeanAfter: 2})
	db.RecordMatch(s1, r1)
	db.RecordMatch(s2, r2)

	list, err := db.ListMatches()
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(list))
	}
	// Ordered by played_at DESC: cafef00d first.
	if list[0].MatchID != "cafef00d-0002" {
		t.Errorf("expected newest first, got %s", list[0].MatchID)
	}

	m, err := db.GetMatchByPrefix("deadb")
	if err != nil {
		t.Fatalf("GetMatchByPrefix: %v", err)
	}
	if m == nil || m.MatchID != "deadbeef-0001" {
		t.Fatalf("unexpected match %+v", m)
	}
	if m.Calculator != "gaussian" || m.PlayerCount != 1 {
		t.Errorf("summary mismatch: %+v", m)
	}

	m2, err := db.GetMatchByPrefix("ffffffff")
	if err != nil {
		t.Fatalf("GetMatchByPrefix no-match: %v", err)
	}
	if m2 != nil {
		t.Error("expected nil for unknown prefix")
	}
}

func TestResultsAndHistory(t *testing.T) {
	db := openMemDB(t)

	s1, r1 := sampleMatch("m1", "h1", "2025-01-01",
		model.PlayerResult{Player: "alice", Team: 0, Rank: 1, MeanBefore: 25, MeanAfter: 37},
		model.PlayerResult{Player: "bob", Team: 1, Rank: 2, MeanBefore: 25, MeanAfter: 13},
	)
	s2, r2 := sampleMatch("m2", "h2", "2025-01-05",
		model.PlayerResult{Player: "bob", Team: 0, Rank: 1, MeanBefore: 13, MeanAfter: 28},
		model.PlayerResult{Player: "alice", Team: 1, Rank: 2, MeanBefore: 37, MeanAfter: 22},
	)
	// Insert out of chronological order; history sorts by played_at.
	if err := db.RecordMatch(s2, r2); err != nil {
		t.Fatal(err)
	}
	if err := db.RecordMatch(s1, r1); err != nil {
		t.Fatal(err)
	}

	results, err := db.GetMatchResults("m2")
	if err != nil {
		t.Fatalf("GetMatchResults: %v", err)
	}
	if len(results) != 2 || results[0].Player != "bob" || results[1].Player != "alice" {
		t.Fatalf("unexpected results %+v", results)
	}
	if results[1].Delta() != -15 {
		t.Errorf("alice delta = %v, want -15", results[1].Delta())
	}

	hist, err := db.GetPlayerHistory("alice")
	if err != nil {
		t.Fatalf("GetPlayerHistory: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("expected 2 history rows, got %d", len(hist))
	}
	if hist[0].MatchID != "m1" || hist[1].MatchID != "m2" {
		t.Errorf("history not chronological: %s, %s", hist[0].MatchID, hist[1].MatchID)
	}
	if hist[0].Rank != 1 || hist[0].TeamCount != 2 || hist[0].Delta() != 12 {
		t.Errorf("unexpected first entry %+v", hist[0])
	}

	none, err := db.GetPlayerHistory("nobody")
	if err != nil || len(none) != 0 {
		t.Errorf("expected empty history, got %v, %v", none, err)
	}
}

func TestSnapshot(t *testing.T) {
	db := openMemDB(t)

	s1, r1 := sampleMatch("m1", "h1", "2025-01-01",
		model.PlayerResult{Player: "alice", MeanBefore: 25, MeanAfter: 37},
		model.PlayerResult{Player: "bob", Team: 1, MeanBefore: 25, MeanAfter: 13},
	)
	s2, r2 := sampleMatch("m2", "h2", "2025-03-01",
		model.PlayerResult{Player: "carol", MeanBefore: 25, MeanAfter: 30},
		model.PlayerResult{Player: "bob", Team: 1, MeanBefore: 13, MeanAfter: 8},
	)
	db.RecordMatch(s2, r2)
	db.RecordMatch(s1, r1)

	now := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	snap, err := db.Snapshot(now)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.ExportedAt != "2025-04-01T12:00:00Z" {
		t.Errorf("ExportedAt = %s", snap.ExportedAt)
	}
	if len(snap.Players) != 3 || len(snap.Matches) != 2 || len(snap.Results) != 4 {
		t.Fatalf("snapshot sizes: %d players, %d matches, %d results",
			len(snap.Players), len(snap.Matches), len(snap.Results))
	}
	if snap.Matches[0].MatchID != "m1" {
		t.Errorf("matches should be oldest first, got %s", snap.Matches[0].MatchID)
	}
	if snap.Results[0].MatchID != "m1" || snap.Results[3].MatchID != "m2" {
		t.Errorf("results not chronological: %+v", snap.Results)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	src := openMemDB(t)
	s1, r1 := sampleMatch("m1", "h1", "2025-01-01",
		model.PlayerResult{Player: "alice", Rank: 1, MeanBefore: 25, MeanAfter: 37},
		model.PlayerResult{Player: "bob", Team: 1, Rank: 2, MeanBefore: 25, MeanAfter: 13},
	)
	s2, r2 := sampleMatch("m2", "h2", "2025-02-01",
		model.PlayerResult{Player: "bob", Rank: 1, MeanBefore: 13, MeanAfter: 20},
		model.PlayerResult{Player: "carol", Team: 1, Rank: 2, MeanBefore: 25, MeanAfter: 18},
	)
	if err := src.RecordMatch(s1, r1); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}
	if err := src.RecordMatch(s2, r2); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}

	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	want, err := src.Snapshot(now)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	dst := openMemDB(t)
	if err := dst.Restore(want); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got, err := dst.Snapshot(now)
	if err != nil {
		t.Fatalf("Snapshot after restore: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("restored ladder differs:\n got %+v\nwant %+v", got, want)
	}

	exists, err := dst.MatchExists("h2")
	if err != nil || !exists {
		t.Errorf("restored sheet hash should dedup, exists=%v err=%v", exists, err)
	}
	if err := dst.Restore(want); err == nil {
		t.Error("expected error restoring into a non-empty ladder")
	}
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ladder.db")
	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s, r := sampleMatch("m1", "h1", "2025-01-01", model.PlayerResult{Player: "alice", MeanBefore: 25, MeanAfter: 37})
	if err := db.RecordMatch(s, r); err != nil {
		t.Fatalf("RecordMatch: %v", err)
	}
	db.Close()

	removed, err := Remove(path)
	if err != nil || !removed {
		t.Fatalf("Remove = %v, %v; want true, nil", removed, err)
	}
	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("%s still present", filepath.Base(p))
		}
	}

	removed, err = Remove(path)
	if err != nil || removed {
		t.Errorf("second Remove = %v, %v; want false, nil", removed, err)
	}
}

func TestQueryRaw(t *testing.T) {
	db := openMemDB(t)

	s, r := sampleMatch("m1", "h1", "2025-01-01", model.PlayerResult{Player: "alice", MeanBefore: 25, MeanAfter: 37.5})
	db.RecordMatch(s, r)

	cols, rows, err := db.QueryRaw("SELECT name, mean, matches FROM players")
	if err != nil {
		t.Fatalf("QueryRaw: %v", err)
	}
	if len(cols) != 3 || cols[0] != "name" {
		t.Errorf("unexpected columns %v", cols)
	}
	if len(rows) != 1 || rows[0][0] != "alice" || rows[0][1] != "37.5000" || rows[0][2] != "1" {
		t.Errorf("unexpected rows %v", rows)
	}

	if _, _, err := db.QueryRaw("SELECT nope FROM nowhere"); err == nil {
		t.Error("expected error for bad query")
	}
}

func TestPlaceholders(t *testing.T) {
	if placeholders(0) != "" || placeholders(1) != "?" || placeholders(3) != "?,?,?" {
		t.Error("placeholders mismatch")
	}
}
