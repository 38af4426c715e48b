package store

import (
	"strconv"
	"strings"

	"github.com/chessmine/chessmine/internal/pgn"
)

// GameRecord is one game's metadata row. Its columns back the ChessQL
// field whitelist.
type GameRecord struct {
	GameURL       string
	Platform      string
	WhiteUsername string
	BlackUsername string
	WhiteElo      int
	BlackElo      int
	TimeClass     string
	ECO           string
	Result        string
	NumMoves      int
	PlayedAt      string
	IndexedAt     int64
	PGN           string
}

// RecordFromGame builds a GameRecord from a parsed game's tag pairs,
// keeping the raw PGN for replay. The game URL comes from the Link tag
// (chess.com exports) falling back to Site; games with neither need the
// URL set by the caller before indexing.
func RecordFromGame(game *pgn.Game, rawPGN string) *GameRecord {
	rec := &GameRecord{
		GameURL:       firstTag(game, "Link", "Site"),
		Platform:      platformFromTags(game),
		WhiteUsername: game.Tag("White"),
		BlackUsername: game.Tag("Black"),
		WhiteElo:      atoiTag(game, "WhiteElo"),
		BlackElo:      atoiTag(game, "BlackElo"),
		TimeClass:     firstTag(game, "TimeClass", "TimeControl"),
		ECO:           game.Tag("ECO"),
		Result:        game.Tag("Result"),
		PlayedAt:      playedAt(game),
		PGN:           rawPGN,
	}
	return rec
}

func firstTag(game *pgn.Game, names ...string) string {
	for _, name := range names {
		if v := game.Tag(name); v != "" {
			return v
		}
	}
	return ""
}

func atoiTag(game *pgn.Game, name string) int {
	n, err := strconv.Atoi(game.Tag(name))
	if err != nil {
		return 0
	}
	return n
}

func platformFromTags(game *pgn.Game) string {
	site := strings.ToLower(firstTag(game, "Site", "Link"))
	switch {
	case strings.Contains(site, "chess.com"):
		return "chesscom"
	case strings.Contains(site, "lichess"):
		return "lichess"
	}
	return ""
}

// playedAt combines the UTC date/time tags into "YYYY.MM.DD HH:MM:SS",
// or just the date when no time tag is present.
func playedAt(game *pgn.Game) string {
	date := firstTag(game, "UTCDate", "Date")
	if date == "" {
		return ""
	}
	if t := game.Tag("UTCTime"); t != "" {
		return date + " " + t
	}
	return date
}
