package ui

import (
	"fmt"
	"strings"

	"github.com/chessmine/chessmine/internal/store"
)

// RenderGames renders query results as a plain aligned table: players,
// ratings, result, pace, length, and the game URL.
func RenderGames(records []store.GameRecord) string {
	if len(records) == 0 {
		return Info("no games matched") + "\n"
	}

	t := NewTable(5)
	for _, rec := range records {
		players := fmt.Sprintf("%s (%d) - %s (%d)",
			orDash(rec.WhiteUsername), rec.WhiteElo,
			orDash(rec.BlackUsername), rec.BlackElo)
		t.AddRow(
			players,
			orDash(rec.Result),
			orDash(rec.TimeClass),
			fmt.Sprintf("%d moves", rec.NumMoves),
			Styled(Accent, rec.GameURL),
		)
	}

	var sb strings.Builder
	sb.WriteString(t.String())
	sb.WriteString(Styled(Muted, fmt.Sprintf("%d game(s)", len(records))))
	sb.WriteString("\n")
	return sb.String()
}

// RenderOccurrences renders one game's motif occurrences grouped the
// way they were detected, ordered by ply.
func RenderOccurrences(rows []store.OccurrenceRow) string {
	if len(rows) == 0 {
		return Info("no motifs detected") + "\n"
	}

	t := NewTable(4)
	for _, row := range rows {
		detail := row.Attacker
		if row.Target != "" {
			if detail != "" {
				detail += " -> "
			}
			detail += row.Target
		}
		t.AddRow(
			Styled(Muted, fmt.Sprintf("ply %d", row.Ply)),
			Styled(AccentBold, row.Motif),
			detail,
			row.Description,
		)
	}
	return t.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
