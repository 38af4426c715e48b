package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/chessmine/chessmine/internal/store"
	"github.com/chessmine/chessmine/internal/ui"
)

var showMotifs []string

var showCmd = &cobra.Command{
	Use:   "show <game-url>",
	Short: "Show an indexed game and its motif occurrences",
	Long: `Fetches one indexed game by URL and lists its stored motif
occurrences, ordered by ply.

Examples:
  chessmine show https://www.chess.com/game/live/12345
  chessmine show games.pgn#3 --motif fork --motif pin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore()
		if err != nil {
			return handleError(ErrDatabaseError, err, "Run 'chessmine index' first to build the index")
		}
		defer s.Close()

		start := time.Now()
		rec, err := s.Game(args[0])
		if err != nil {
			if errors.Is(err, store.ErrGameNotFound) {
				return handleError(ErrGameNotFound, err, "Run 'chessmine query' to list indexed games")
			}
			return handleError(ErrDatabaseError, err, "")
		}

		rows, err := s.Occurrences(args[0], showMotifs)
		if err != nil {
			return handleError(ErrDatabaseError, err, "")
		}
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			occurrences := make([]OccurrenceJSON, 0, len(rows))
			for _, row := range rows {
				occ, ok := row.ToOccurrence()
				if !ok {
					continue
				}
				occurrences = append(occurrences, occurrenceJSON(occ))
			}
			outputSuccess(map[string]interface{}{
				"game":        gameRecordJSON(*rec),
				"occurrences": occurrences,
			}, &Meta{Count: len(occurrences), QueryTimeMs: elapsed})
			return nil
		}

		fmt.Println(ui.Header(fmt.Sprintf("%s (%d) - %s (%d)",
			orUnknown(rec.WhiteUsername), rec.WhiteElo,
			orUnknown(rec.BlackUsername), rec.BlackElo)))
		fmt.Printf("%s  %s  %d moves  %s\n\n",
			rec.Result, rec.TimeClass, rec.NumMoves, ui.Styled(ui.Muted, rec.PlayedAt))
		fmt.Print(ui.RenderOccurrences(rows))
		return nil
	},
}

func init() {
	showCmd.Flags().StringArrayVar(&showMotifs, "motif", nil, "Only show these motifs (repeatable)")
	rootCmd.AddCommand(showCmd)
}
