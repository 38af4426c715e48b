// Package store handles SQLite persistence for mined games: the
// game_features metadata table and the motif_occurrences rows the
// ChessQL compiler queries against.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chessmine/chessmine/internal/chessql"
	"github.com/chessmine/chessmine/internal/extract"
	"github.com/chessmine/chessmine/internal/motifs"
	"github.com/chessmine/chessmine/internal/sqlutil"
)

// Store is the SQLite database handle.
type Store struct {
	db *sql.DB
}

var (
	// ErrGameNotFound indicates the requested game URL is not indexed.
	ErrGameNotFound = errors.New("game not found in index")
)

// DB returns the underlying sql.DB for advanced queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenInMemory opens an in-memory database (for testing). The pool is
// capped at one connection; each connection would otherwise see its own
// empty in-memory database.
func OpenInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		-- One row per indexed game; columns back the ChessQL field whitelist
		CREATE TABLE IF NOT EXISTS game_features (
			game_url       TEXT PRIMARY KEY,
			platform       TEXT,
			white_username TEXT,
			black_username TEXT,
			white_elo      INTEGER,
			black_elo      INTEGER,
			time_class     TEXT,
			eco            TEXT,
			result         TEXT,
			num_moves      INTEGER NOT NULL DEFAULT 0,
			played_at      TEXT,
			indexed_at     INTEGER NOT NULL,
			pgn            TEXT NOT NULL
		);

		-- One row per motif occurrence, replaced wholesale on reindex
		CREATE TABLE IF NOT EXISTS motif_occurrences (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			game_url      TEXT NOT NULL,
			motif         TEXT NOT NULL,
			ply           INTEGER NOT NULL,
			move_number   INTEGER NOT NULL,
			side          TEXT NOT NULL,
			description   TEXT,
			moved_piece   TEXT,
			attacker      TEXT,
			target        TEXT,
			is_discovered INTEGER NOT NULL DEFAULT 0,
			is_mate       INTEGER NOT NULL DEFAULT 0,
			pin_type      TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_occurrences_game ON motif_occurrences(game_url);
		CREATE INDEX IF NOT EXISTS idx_occurrences_motif ON motif_occurrences(motif);
		CREATE INDEX IF NOT EXISTS idx_occurrences_motif_game ON motif_occurrences(motif, game_url);
		CREATE INDEX IF NOT EXISTS idx_features_played_at ON game_features(played_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}
	return nil
}

// IndexGame writes one game's metadata and occurrences in a single
// transaction. Reindexing a known game replaces its row and deletes its
// old occurrence rows before inserting the new ones.
func (s *Store) IndexGame(record *GameRecord, features *extract.GameFeatures) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	indexedAt := record.IndexedAt
	if indexedAt == 0 {
		indexedAt = time.Now().Unix()
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO game_features
			(game_url, platform, white_username, black_username, white_elo, black_elo,
			 time_class, eco, result, num_moves, played_at, indexed_at, pgn)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.GameURL, record.Platform, record.WhiteUsername, record.BlackUsername,
		record.WhiteElo, record.BlackElo, record.TimeClass, record.ECO, record.Result,
		features.NumMoves, record.PlayedAt, indexedAt, record.PGN)
	if err != nil {
		return fmt.Errorf("failed to upsert game: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM motif_occurrences WHERE game_url = ?`, record.GameURL); err != nil {
		return fmt.Errorf("failed to clear old occurrences: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO motif_occurrences
			(game_url, motif, ply, move_number, side, description,
			 moved_piece, attacker, target, is_discovered, is_mate, pin_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare occurrence insert: %w", err)
	}
	defer stmt.Close()

	for _, occ := range features.All() {
		_, err := stmt.Exec(
			record.GameURL, occ.Motif.String(), occ.Ply, occ.MoveNumber, occ.Side,
			occ.Description, nullable(occ.MovedPiece), nullable(occ.Attacker),
			nullable(occ.Target), occ.IsDiscovered, occ.IsMate, nullable(string(occ.PinType)))
		if err != nil {
			return fmt.Errorf("failed to insert occurrence: %w", err)
		}
	}

	return tx.Commit()
}

// Query runs a compiled ChessQL query with paging and returns the
// matching game rows.
func (s *Store) Query(compiled *chessql.CompiledQuery, limit, offset int) ([]GameRecord, error) {
	sqlStr := compiled.SelectSQL + " LIMIT ? OFFSET ?"
	args := append(append([]any{}, compiled.Params...), limit, offset)

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return sqlutil.ScanRows(rows, scanGameRecord)
}

// Game fetches one indexed game by URL.
func (s *Store) Game(gameURL string) (*GameRecord, error) {
	rows, err := s.db.Query(`
		SELECT game_url, platform, white_username, black_username, white_elo, black_elo,
		       time_class, eco, result, num_moves, played_at, indexed_at, pgn
		FROM game_features WHERE game_url = ?`, gameURL)
	if err != nil {
		return nil, err
	}
	records, err := sqlutil.ScanRows(rows, scanGameRecord)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrGameNotFound
	}
	return &records[0], nil
}

// Occurrences returns a game's stored occurrence rows, optionally
// filtered to a set of motif names, ordered by ply.
func (s *Store) Occurrences(gameURL string, motifNames []string) ([]OccurrenceRow, error) {
	sqlStr := `
		SELECT motif, ply, move_number, side, description,
		       moved_piece, attacker, target, is_discovered, is_mate, pin_type
		FROM motif_occurrences WHERE game_url = ?`
	args := []any{gameURL}
	if len(motifNames) > 0 {
		placeholders, inArgs := sqlutil.InClauseArgs(motifNames)
		sqlStr += " AND motif IN (" + placeholders + ")"
		args = append(args, inArgs...)
	}
	sqlStr += " ORDER BY ply, id"

	rows, err := s.db.Query(sqlStr, args...)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, scanOccurrenceRow)
}

// Stats summarizes the index contents.
type Stats struct {
	Games       int
	Occurrences int
}

func (s *Store) Stats() (*Stats, error) {
	var st Stats
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM game_features`).Scan(&st.Games); err != nil {
		return nil, err
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM motif_occurrences`).Scan(&st.Occurrences); err != nil {
		return nil, err
	}
	return &st, nil
}

// OccurrenceRow is one persisted motif occurrence.
type OccurrenceRow struct {
	Motif        string
	Ply          int
	MoveNumber   int
	Side         string
	Description  string
	MovedPiece   string
	Attacker     string
	Target       string
	IsDiscovered bool
	IsMate       bool
	PinType      string
}

// ToOccurrence converts a stored row back to the detector shape. Rows
// with motif names from newer versions resolve to ok == false.
func (r *OccurrenceRow) ToOccurrence() (motifs.Occurrence, bool) {
	m, ok := motifs.FromName(r.Motif)
	if !ok {
		return motifs.Occurrence{}, false
	}
	return motifs.Occurrence{
		Motif:        m,
		Ply:          r.Ply,
		MoveNumber:   r.MoveNumber,
		Side:         r.Side,
		Description:  r.Description,
		MovedPiece:   r.MovedPiece,
		Attacker:     r.Attacker,
		Target:       r.Target,
		IsDiscovered: r.IsDiscovered,
		IsMate:       r.IsMate,
		PinType:      motifs.PinType(r.PinType),
	}, true
}

func scanGameRecord(rows *sql.Rows) (GameRecord, error) {
	var rec GameRecord
	var platform, white, black, timeClass, eco, result, playedAt sql.NullString
	var whiteElo, blackElo sql.NullInt64
	err := rows.Scan(&rec.GameURL, &platform, &white, &black, &whiteElo, &blackElo,
		&timeClass, &eco, &result, &rec.NumMoves, &playedAt, &rec.IndexedAt, &rec.PGN)
	if err != nil {
		return rec, err
	}
	rec.Platform = platform.String
	rec.WhiteUsername = white.String
	rec.BlackUsername = black.String
	rec.WhiteElo = int(whiteElo.Int64)
	rec.BlackElo = int(blackElo.Int64)
	rec.TimeClass = timeClass.String
	rec.ECO = eco.String
	rec.Result = result.String
	rec.PlayedAt = playedAt.String
	return rec, nil
}

func scanOccurrenceRow(rows *sql.Rows) (OccurrenceRow, error) {
	var row OccurrenceRow
	var description, movedPiece, attacker, target, pinType sql.NullString
	err := rows.Scan(&row.Motif, &row.Ply, &row.MoveNumber, &row.Side, &description,
		&movedPiece, &attacker, &target, &row.IsDiscovered, &row.IsMate, &pinType)
	if err != nil {
		return row, err
	}
	row.Description = description.String
	row.MovedPiece = movedPiece.String
	row.Attacker = attacker.String
	row.Target = target.String
	row.PinType = pinType.String
	return row, nil
}

// nullable maps "" to NULL so optional notation columns stay NULL
// rather than empty strings.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
