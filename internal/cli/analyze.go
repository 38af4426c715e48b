package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chessmine/chessmine/internal/extract"
	"github.com/chessmine/chessmine/internal/motifs"
	"github.com/chessmine/chessmine/internal/store"
	"github.com/chessmine/chessmine/internal/ui"
)

var analyzeOccurrences bool

// OccurrenceJSON is the JSON representation of a motif occurrence.
type OccurrenceJSON struct {
	Motif        string `json:"motif"`
	Ply          int    `json:"ply"`
	MoveNumber   int    `json:"move_number"`
	Side         string `json:"side"`
	Description  string `json:"description,omitempty"`
	MovedPiece   string `json:"moved_piece,omitempty"`
	Attacker     string `json:"attacker,omitempty"`
	Target       string `json:"target,omitempty"`
	IsDiscovered bool   `json:"is_discovered,omitempty"`
	IsMate       bool   `json:"is_mate,omitempty"`
	PinType      string `json:"pin_type,omitempty"`
}

// GameAnalysisJSON is the JSON representation of one analyzed game.
type GameAnalysisJSON struct {
	GameURL     string           `json:"game_url,omitempty"`
	White       string           `json:"white,omitempty"`
	Black       string           `json:"black,omitempty"`
	NumMoves    int              `json:"num_moves"`
	MotifCounts map[string]int   `json:"motif_counts"`
	Occurrences []OccurrenceJSON `json:"occurrences,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <pgn-file>",
	Short: "Mine a PGN file for tactical motifs",
	Long: `Parses and replays every game in a PGN file, runs the motif
detectors, and prints what was found. Nothing is persisted; use
'chessmine index' to store results.

Examples:
  chessmine analyze games.pgn
  chessmine analyze games.pgn --occurrences
  chessmine analyze games.pgn --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return handleError(ErrFileNotFound, err, "Check the PGN file path")
		}

		texts := splitGames(string(data))
		if len(texts) == 0 {
			return handleErrorMsg(ErrInvalidInput, "no games found in "+args[0], "")
		}

		extractor := extract.New()
		var analyses []GameAnalysisJSON
		for i, text := range texts {
			analysis, err := analyzeOne(extractor, text)
			if err != nil {
				if jsonOutput {
					return handleError(ErrPGNParse, err, "")
				}
				fmt.Fprintln(os.Stderr, ui.Warningf("game %d: %v", i+1, err))
				continue
			}
			analyses = append(analyses, *analysis)
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{"games": analyses},
				&Meta{Count: len(analyses)})
			return nil
		}

		for i, a := range analyses {
			if len(analyses) > 1 {
				fmt.Println(ui.Header(fmt.Sprintf("Game %d: %s", i+1, gameLabel(a))))
			}
			printAnalysis(a)
			if i < len(analyses)-1 {
				fmt.Println()
			}
		}
		return nil
	},
}

func analyzeOne(extractor *extract.Extractor, text string) (*GameAnalysisJSON, error) {
	game, features, err := extractGame(extractor, text)
	if err != nil {
		return nil, err
	}
	rec := store.RecordFromGame(game, text)

	analysis := &GameAnalysisJSON{
		GameURL:     rec.GameURL,
		White:       rec.WhiteUsername,
		Black:       rec.BlackUsername,
		NumMoves:    features.NumMoves,
		MotifCounts: make(map[string]int),
	}
	for _, m := range features.Motifs() {
		analysis.MotifCounts[m.String()] = len(features.Occurrences[m])
	}
	if analyzeOccurrences || isJSONOutput() {
		for _, occ := range features.All() {
			analysis.Occurrences = append(analysis.Occurrences, occurrenceJSON(occ))
		}
	}
	return analysis, nil
}

func occurrenceJSON(occ motifs.Occurrence) OccurrenceJSON {
	return OccurrenceJSON{
		Motif:        occ.Motif.String(),
		Ply:          occ.Ply,
		MoveNumber:   occ.MoveNumber,
		Side:         occ.Side,
		Description:  occ.Description,
		MovedPiece:   occ.MovedPiece,
		Attacker:     occ.Attacker,
		Target:       occ.Target,
		IsDiscovered: occ.IsDiscovered,
		IsMate:       occ.IsMate,
		PinType:      string(occ.PinType),
	}
}

func printAnalysis(a GameAnalysisJSON) {
	fmt.Printf("%d moves\n", a.NumMoves)
	if len(a.MotifCounts) == 0 {
		fmt.Println(ui.Info("no motifs detected"))
		return
	}
	t := ui.NewTable(2)
	for _, name := range motifs.Names() {
		if n, ok := a.MotifCounts[name]; ok {
			t.AddRow(ui.Styled(ui.AccentBold, name), fmt.Sprintf("%d", n))
		}
	}
	fmt.Print(t.String())

	if analyzeOccurrences {
		fmt.Println()
		for _, occ := range a.Occurrences {
			detail := occurrenceDetail(occ)
			fmt.Printf("  %s %s %s\n",
				ui.Styled(ui.Muted, fmt.Sprintf("ply %d", occ.Ply)),
				ui.Styled(ui.AccentBold, occ.Motif),
				detail)
		}
	}
}

func occurrenceDetail(occ OccurrenceJSON) string {
	var parts []string
	if occ.Attacker != "" {
		parts = append(parts, occ.Attacker)
	}
	if occ.Target != "" {
		parts = append(parts, "-> "+occ.Target)
	}
	if occ.PinType != "" {
		parts = append(parts, "("+occ.PinType+")")
	}
	if len(parts) == 0 && occ.Description != "" {
		parts = append(parts, occ.Description)
	}
	return strings.Join(parts, " ")
}

func gameLabel(a GameAnalysisJSON) string {
	if a.White != "" || a.Black != "" {
		return orUnknown(a.White) + " - " + orUnknown(a.Black)
	}
	if a.GameURL != "" {
		return a.GameURL
	}
	return "(untitled)"
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeOccurrences, "occurrences", false, "List every occurrence, not just counts")
	rootCmd.AddCommand(analyzeCmd)
}
