package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chessmine/chessmine/internal/chessql"
	"github.com/chessmine/chessmine/internal/store"
	"github.com/chessmine/chessmine/internal/ui"
)

var (
	queryLimit  int
	queryOffset int
)

// GameRecordJSON is the JSON representation of an indexed game row.
type GameRecordJSON struct {
	GameURL       string `json:"game_url"`
	Platform      string `json:"platform,omitempty"`
	WhiteUsername string `json:"white_username,omitempty"`
	BlackUsername string `json:"black_username,omitempty"`
	WhiteElo      int    `json:"white_elo,omitempty"`
	BlackElo      int    `json:"black_elo,omitempty"`
	TimeClass     string `json:"time_class,omitempty"`
	ECO           string `json:"eco,omitempty"`
	Result        string `json:"result,omitempty"`
	NumMoves      int    `json:"num_moves"`
	PlayedAt      string `json:"played_at,omitempty"`
}

var queryCmd = &cobra.Command{
	Use:   "query <chessql>",
	Short: "Search indexed games with ChessQL",
	Long: `Compiles a ChessQL expression to SQL and runs it against the index.

Fields: white_elo, black_elo, white_username, black_username, platform,
time_class, eco, result, num_moves, played_at, indexed_at. Dot notation
(white.elo) is accepted.

Examples:
  chessmine query "white_elo > 2500 AND motif(fork)"
  chessmine query "eco IN ['B20', 'B21'] AND NOT motif(checkmate)"
  chessmine query "sequence(check, check, checkmate)"
  chessmine query "motif(sacrifice) ORDER BY motif(check) DESC" --limit 10`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		compiled, err := chessql.Compile(args[0])
		if err != nil {
			return handleError(ErrQueryInvalid, err, "Run 'chessmine explain' to inspect the query")
		}

		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "Run 'chessmine index' first to build the index")
		}
		defer s.Close()

		limit := queryLimit
		if limit <= 0 {
			limit = getConfig().Limit()
		}

		start := time.Now()
		records, err := s.Query(compiled, limit, queryOffset)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			items := make([]GameRecordJSON, len(records))
			for i, rec := range records {
				items[i] = gameRecordJSON(rec)
			}
			outputSuccess(map[string]interface{}{
				"query": args[0],
				"items": items,
			}, &Meta{Count: len(items), QueryTimeMs: elapsed})
			return nil
		}

		fmt.Print(ui.RenderGames(records))
		return nil
	},
}

func gameRecordJSON(rec store.GameRecord) GameRecordJSON {
	return GameRecordJSON{
		GameURL:       rec.GameURL,
		Platform:      rec.Platform,
		WhiteUsername: rec.WhiteUsername,
		BlackUsername: rec.BlackUsername,
		WhiteElo:      rec.WhiteElo,
		BlackElo:      rec.BlackElo,
		TimeClass:     rec.TimeClass,
		ECO:           rec.ECO,
		Result:        rec.Result,
		NumMoves:      rec.NumMoves,
		PlayedAt:      rec.PlayedAt,
	}
}

func init() {
	queryCmd.Flags().IntVar(&queryLimit, "limit", 0, "Maximum games to return (default from config)")
	queryCmd.Flags().IntVar(&queryOffset, "offset", 0, "Games to skip (for paging)")
	rootCmd.AddCommand(queryCmd)
}
