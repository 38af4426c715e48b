package cli

import (
	"github.com/chessmine/chessmine/internal/extract"
	"github.com/chessmine/chessmine/internal/pgn"
)

// splitGames splits a PGN file into per-game text chunks.
func splitGames(text string) []string {
	return pgn.SplitGames(text)
}

// extractGame parses one game's text and mines it for motifs.
func extractGame(extractor *extract.Extractor, text string) (*pgn.Game, *extract.GameFeatures, error) {
	game, err := pgn.Parse(text)
	if err != nil {
		return nil, nil, err
	}
	features, err := extractor.ExtractGame(game)
	if err != nil {
		return nil, nil, err
	}
	return game, features, nil
}
