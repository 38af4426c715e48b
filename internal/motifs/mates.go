package motifs

import (
	"fmt"
	"strings"

	"github.com/chessmine/chessmine/internal/board"
	"github.com/chessmine/chessmine/internal/replay"
)

// detectBackRankMates fires on a checkmate where the losing king sits on
// its own back rank with at least one forward escape square blocked by
// its own piece.
func detectBackRankMates(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		if pos.LastMove == "" || !strings.HasSuffix(pos.LastMove, "#") {
			continue
		}

		loserIsWhite := pos.WhiteToMove()
		backRank, escapeRank := 0, 1
		if loserIsWhite {
			backRank, escapeRank = 7, 6
		}

		kr, kc := pos.Board.FindKing(loserIsWhite)
		if kr != backRank {
			continue
		}

		blocked := false
		for dc := -1; dc <= 1; dc++ {
			ec := kc + dc
			if ec < 0 || ec >= board.Size {
				continue
			}
			piece := pos.Board[escapeRank][ec]
			if piece != board.Empty && (piece > 0) == loserIsWhite {
				blocked = true
				break
			}
		}
		if !blocked {
			continue
		}

		out = append(out, Occurrence{
			Motif:       BackRankMate,
			Ply:         pos.Ply,
			MoveNumber:  pos.MoveNumber(),
			Side:        pos.Side(),
			Description: fmt.Sprintf("Back rank mate at move %d", pos.MoveNumber()),
			Target:      board.PieceNotation(pos.Board[kr][kc], kr, kc),
			IsMate:      true,
		})
	}
	return out
}

// detectSmotheredMates fires when a knight mates a king whose every
// adjacent square is off the board or held by the king's own pieces.
func detectSmotheredMates(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		if pos.LastMove == "" || !strings.HasSuffix(pos.LastMove, "#") {
			continue
		}

		loserIsWhite := pos.WhiteToMove()
		kr, kc := pos.Board.FindKing(loserIsWhite)
		if kr == -1 {
			continue
		}

		knight := board.Knight
		if loserIsWhite {
			knight = -board.Knight
		}
		var matingKnight string
		for r := 0; r < board.Size && matingKnight == ""; r++ {
			for c := 0; c < board.Size; c++ {
				if pos.Board[r][c] == knight && pos.Board.PieceAttacks(r, c, kr, kc) {
					matingKnight = board.PieceNotation(knight, r, c)
					break
				}
			}
		}
		if matingKnight == "" || !isSmothered(&pos.Board, kr, kc, loserIsWhite) {
			continue
		}

		out = append(out, Occurrence{
			Motif:       SmotheredMate,
			Ply:         pos.Ply,
			MoveNumber:  pos.MoveNumber(),
			Side:        pos.Side(),
			Description: fmt.Sprintf("Smothered mate at move %d", pos.MoveNumber()),
			Attacker:    matingKnight,
			Target:      board.PieceNotation(pos.Board[kr][kc], kr, kc),
			IsMate:      true,
		})
	}
	return out
}

// isSmothered reports whether every adjacent square is off-board or holds
// one of the king's own pieces.
func isSmothered(b *board.Board, kr, kc int, kingIsWhite bool) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := kr+dr, kc+dc
			if !board.InBounds(nr, nc) {
				continue
			}
			piece := b[nr][nc]
			if piece == board.Empty || (piece > 0) != kingIsWhite {
				return false
			}
		}
	}
	return true
}
