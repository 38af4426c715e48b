package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chessmine/chessmine/internal/chessql"
	"github.com/chessmine/chessmine/internal/extract"
	"github.com/chessmine/chessmine/internal/motifs"
	"github.com/chessmine/chessmine/internal/pgn"
)

const strongGame = `[Site "https://www.chess.com/game/live/1"]
[White "alice"]
[Black "bob"]
[WhiteElo "2700"]
[BlackElo "2650"]
[TimeClass "blitz"]
[ECO "C20"]
[Result "1-0"]
[UTCDate "2024.03.01"]
[UTCTime "12:00:00"]

1. e4 e5 2. Qh5 Nc6 3. Bc4 Nf6 4. Qxf7# 1-0`

const quietGame = `[Site "https://www.chess.com/game/live/2"]
[White "carol"]
[Black "dave"]
[WhiteElo "1500"]
[BlackElo "1480"]
[TimeClass "rapid"]
[ECO "D00"]
[Result "1/2-1/2"]
[UTCDate "2024.03.02"]

1. d4 d5 2. Nf3 Nf6 1/2-1/2`

func mustIndex(t *testing.T, s *Store, pgnText string) (*GameRecord, *extract.GameFeatures) {
	t.Helper()
	game, err := pgn.Parse(pgnText)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	features, err := extract.New().ExtractGame(game)
	if err != nil {
		t.Fatalf("ExtractGame: %v", err)
	}
	rec := RecordFromGame(game, pgnText)
	if err := s.IndexGame(rec, features); err != nil {
		t.Fatalf("IndexGame: %v", err)
	}
	return rec, features
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestIndexAndQuery(t *testing.T) {
	s := openTestStore(t)
	mustIndex(t, s, strongGame)
	mustIndex(t, s, quietGame)

	compiled, err := chessql.Compile("white_elo > 2500")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	records, err := s.Query(compiled, 10, 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].WhiteUsername != "alice" || records[0].WhiteElo != 2700 {
		t.Errorf("unexpected record: %+v", records[0])
	}
}

func TestQueryMotifPredicate(t *testing.T) {
	s := openTestStore(t)
	mustIndex(t, s, strongGame)
	mustIndex(t, s, quietGame)

	compiled, err := chessql.Compile("motif(checkmate)")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	records, err := s.Query(compiled, 10, 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(records) != 1 || records[0].GameURL != "https://www.chess.com/game/live/1" {
		t.Fatalf("motif(checkmate) matched %d records: %+v", len(records), records)
	}
}

func TestQueryLimitAndOffset(t *testing.T) {
	s := openTestStore(t)
	mustIndex(t, s, strongGame)
	mustIndex(t, s, quietGame)

	compiled, err := chessql.Compile("num_moves > 0")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	page1, err := s.Query(compiled, 1, 0)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	page2, err := s.Query(compiled, 1, 1)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(page1) != 1 || len(page2) != 1 {
		t.Fatalf("page sizes = %d, %d; want 1, 1", len(page1), len(page2))
	}
	if page1[0].GameURL == page2[0].GameURL {
		t.Error("paging returned the same game twice")
	}
}

func TestReindexReplacesOccurrences(t *testing.T) {
	s := openTestStore(t)
	rec, features := mustIndex(t, s, strongGame)

	before, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	// Indexing the same game again must not grow either table.
	if err := s.IndexGame(rec, features); err != nil {
		t.Fatalf("IndexGame again: %v", err)
	}
	after, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("stats changed on reindex (-before +after):\n%s", diff)
	}
}

func TestGame(t *testing.T) {
	s := openTestStore(t)
	rec, _ := mustIndex(t, s, strongGame)

	got, err := s.Game(rec.GameURL)
	if err != nil {
		t.Fatalf("Game: %v", err)
	}
	if got.WhiteUsername != "alice" || got.Result != "1-0" || got.NumMoves != 4 {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.PGN != strongGame {
		t.Error("stored PGN does not round-trip")
	}

	if _, err := s.Game("missing"); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("missing game error = %v, want ErrGameNotFound", err)
	}
}

func TestOccurrences(t *testing.T) {
	s := openTestStore(t)
	rec, features := mustIndex(t, s, strongGame)

	rows, err := s.Occurrences(rec.GameURL, nil)
	if err != nil {
		t.Fatalf("Occurrences: %v", err)
	}
	if len(rows) != len(features.All()) {
		t.Errorf("got %d rows, want %d", len(rows), len(features.All()))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i].Ply < rows[i-1].Ply {
			t.Errorf("rows out of ply order at %d", i)
		}
	}

	mates, err := s.Occurrences(rec.GameURL, []string{"checkmate"})
	if err != nil {
		t.Fatalf("Occurrences filtered: %v", err)
	}
	if len(mates) != 1 || mates[0].Motif != "checkmate" {
		t.Fatalf("filtered rows = %+v, want one checkmate", mates)
	}
	occ, ok := mates[0].ToOccurrence()
	if !ok || occ.Motif != motifs.Checkmate || !occ.IsMate {
		t.Errorf("ToOccurrence = (%+v, %v)", occ, ok)
	}
}

func TestRecordFromGame(t *testing.T) {
	game, err := pgn.Parse(strongGame)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rec := RecordFromGame(game, strongGame)

	want := &GameRecord{
		GameURL:       "https://www.chess.com/game/live/1",
		Platform:      "chesscom",
		WhiteUsername: "alice",
		BlackUsername: "bob",
		WhiteElo:      2700,
		BlackElo:      2650,
		TimeClass:     "blitz",
		ECO:           "C20",
		Result:        "1-0",
		PlayedAt:      "2024.03.01 12:00:00",
		PGN:           strongGame,
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "nested", "index.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Games != 0 || stats.Occurrences != 0 {
		t.Errorf("fresh database stats = %+v", stats)
	}
}
