package motifs

import (
	"fmt"
	"strings"

	"github.com/chessmine/chessmine/internal/board"
	"github.com/chessmine/chessmine/internal/replay"
)

// detectChecks fires on every move whose SAN carries a check or mate
// suffix. The geometry kernel locates the checking piece so attacker and
// target are filled in; checkmates are checks with IsMate set.
func detectChecks(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		move := pos.LastMove
		if move == "" || (!strings.HasSuffix(move, "+") && !strings.HasSuffix(move, "#")) {
			continue
		}
		occ := Occurrence{
			Motif:       Check,
			Ply:         pos.Ply,
			MoveNumber:  pos.MoveNumber(),
			Side:        pos.Side(),
			Description: fmt.Sprintf("Check at move %d", pos.MoveNumber()),
			IsMate:      strings.HasSuffix(move, "#"),
		}
		occ.Attacker, occ.Target = checkNotation(&pos.Board, pos.MoverIsWhite)
		out = append(out, occ)
	}
	return out
}

func detectCheckmates(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		if pos.LastMove == "" || !strings.HasSuffix(pos.LastMove, "#") {
			continue
		}
		occ := Occurrence{
			Motif:       Checkmate,
			Ply:         pos.Ply,
			MoveNumber:  pos.MoveNumber(),
			Side:        pos.Side(),
			Description: fmt.Sprintf("Checkmate at move %d", pos.MoveNumber()),
			IsMate:      true,
		}
		occ.Attacker, occ.Target = checkNotation(&pos.Board, pos.MoverIsWhite)
		out = append(out, occ)
	}
	return out
}

// checkNotation returns the notation of the first mover's piece attacking
// the enemy king, and of the king itself. Empty strings when the board
// shows no check (degenerate transcripts).
func checkNotation(b *board.Board, moverIsWhite bool) (attacker, target string) {
	cr, cc, ok := b.FindCheckingPiece(moverIsWhite)
	if !ok {
		return "", ""
	}
	kr, kc := b.FindKing(!moverIsWhite)
	return board.PieceNotation(b[cr][cc], cr, cc), board.PieceNotation(b[kr][kc], kr, kc)
}

func detectPromotions(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		if pos.LastMove == "" || !strings.Contains(pos.LastMove, "=") {
			continue
		}
		out = append(out, Occurrence{
			Motif:       Promotion,
			Ply:         pos.Ply,
			MoveNumber:  pos.MoveNumber(),
			Side:        pos.Side(),
			Description: fmt.Sprintf("Promotion at move %d", pos.MoveNumber()),
			IsMate:      strings.HasSuffix(pos.LastMove, "#"),
		})
	}
	return out
}

// detectPromotionsWithCheck requires the promoted piece itself to attack
// the enemy king. A check revealed by the pawn leaving its file is a
// discovered check, not a promotion check; a mating promotion belongs to
// PromotionWithCheckmate.
func detectPromotionsWithCheck(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		move := pos.LastMove
		if move == "" || !strings.Contains(move, "=") || !strings.HasSuffix(move, "+") {
			continue
		}
		if !promotedPieceDeliversCheck(pos) {
			continue
		}
		out = append(out, Occurrence{
			Motif:       PromotionWithCheck,
			Ply:         pos.Ply,
			MoveNumber:  pos.MoveNumber(),
			Side:        pos.Side(),
			Description: fmt.Sprintf("Promotion with check at move %d", pos.MoveNumber()),
		})
	}
	return out
}

func detectPromotionsWithCheckmate(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		move := pos.LastMove
		if move == "" || !strings.Contains(move, "=") || !strings.HasSuffix(move, "#") {
			continue
		}
		if !promotedPieceDeliversCheck(pos) {
			continue
		}
		out = append(out, Occurrence{
			Motif:       PromotionWithCheckmate,
			Ply:         pos.Ply,
			MoveNumber:  pos.MoveNumber(),
			Side:        pos.Side(),
			Description: fmt.Sprintf("Promotion with checkmate at move %d", pos.MoveNumber()),
			IsMate:      true,
		})
	}
	return out
}

// promotedPieceDeliversCheck reports whether the piece standing on the
// promotion destination square directly attacks the enemy king.
func promotedPieceDeliversCheck(pos *replay.Position) bool {
	dr, dc := board.ParsePromotionDestination(pos.LastMove)
	if dr == -1 {
		return false
	}
	promoted := pos.Board[dr][dc]
	if promoted == board.Empty || (promoted > 0) != pos.MoverIsWhite {
		return false
	}
	kr, kc := pos.Board.FindKing(!pos.MoverIsWhite)
	if kr == -1 {
		return false
	}
	return pos.Board.PieceAttacks(dr, dc, kr, kc)
}

// detectDoubleChecks fires when a checking move leaves the enemy king
// attacked by two or more of the mover's pieces.
func detectDoubleChecks(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		move := pos.LastMove
		if move == "" || (!strings.HasSuffix(move, "+") && !strings.HasSuffix(move, "#")) {
			continue
		}
		kr, kc := pos.Board.FindKing(!pos.MoverIsWhite)
		if kr == -1 {
			continue
		}
		if pos.Board.CountAttackers(kr, kc, pos.MoverIsWhite) < 2 {
			continue
		}
		out = append(out, Occurrence{
			Motif:       DoubleCheck,
			Ply:         pos.Ply,
			MoveNumber:  pos.MoveNumber(),
			Side:        pos.Side(),
			Description: fmt.Sprintf("Double check at move %d", pos.MoveNumber()),
			Target:      board.PieceNotation(pos.Board[kr][kc], kr, kc),
			IsMate:      strings.HasSuffix(move, "#"),
		})
	}
	return out
}
