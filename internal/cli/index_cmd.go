package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/chessmine/chessmine/internal/extract"
	"github.com/chessmine/chessmine/internal/store"
	"github.com/chessmine/chessmine/internal/ui"
)

// IndexedGameJSON is the JSON representation of one indexed game.
type IndexedGameJSON struct {
	GameURL  string `json:"game_url"`
	NumMoves int    `json:"num_moves"`
	Motifs   int    `json:"motifs"`
}

// IndexFailureJSON is the JSON representation of a game that could not
// be indexed.
type IndexFailureJSON struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

var indexCmd = &cobra.Command{
	Use:   "index <pgn-file>...",
	Short: "Mine PGN files and persist the results",
	Long: `Parses, replays, and mines every game in the given PGN files, then
writes the metadata and motif occurrences to the SQLite index.
Reindexing a known game replaces its previous rows.

Games that fail to parse or replay are reported and skipped; the rest
of the file is still indexed.

Examples:
  chessmine index games.pgn
  chessmine index january.pgn february.pgn --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "Check the --db path is writable")
		}
		defer s.Close()

		start := time.Now()
		extractor := extract.New()
		var indexed []IndexedGameJSON
		var failures []IndexFailureJSON

		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return handleError(ErrFileNotFound, err, "Check the PGN file path")
			}
			for i, text := range splitGames(string(data)) {
				source := fmt.Sprintf("%s#%d", path, i+1)
				entry, err := indexOne(s, extractor, text, source)
				if err != nil {
					failures = append(failures, IndexFailureJSON{Source: source, Error: err.Error()})
					if !jsonOutput {
						fmt.Fprintln(os.Stderr, ui.Warningf("%s: %v", source, err))
					}
					continue
				}
				indexed = append(indexed, *entry)
				if !jsonOutput {
					fmt.Println(ui.Successf("%s (%d moves, %d motifs)",
						entry.GameURL, entry.NumMoves, entry.Motifs))
				}
			}
		}

		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"indexed":  indexed,
				"failures": failures,
			}, &Meta{Count: len(indexed), QueryTimeMs: elapsed})
			return nil
		}

		stats, err := s.Stats()
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		fmt.Printf("\n%d game(s) indexed, %d failed. Index now holds %d game(s), %d occurrence(s).\n",
			len(indexed), len(failures), stats.Games, stats.Occurrences)
		return nil
	},
}

func indexOne(s *store.Store, extractor *extract.Extractor, text, fallbackURL string) (*IndexedGameJSON, error) {
	game, features, err := extractGame(extractor, text)
	if err != nil {
		return nil, err
	}

	rec := store.RecordFromGame(game, text)
	if rec.GameURL == "" {
		rec.GameURL = fallbackURL
	}
	if err := s.IndexGame(rec, features); err != nil {
		return nil, err
	}
	return &IndexedGameJSON{
		GameURL:  rec.GameURL,
		NumMoves: features.NumMoves,
		Motifs:   len(features.All()),
	}, nil
}

func init() {
	rootCmd.AddCommand(indexCmd)
}
