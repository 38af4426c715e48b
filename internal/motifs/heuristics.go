package motifs

import (
	"fmt"

	"github.com/chessmine/chessmine/internal/board"
	"github.com/chessmine/chessmine/internal/replay"
)

// detectSacrifices flags moves where the capturing piece is worth more
// than what it captured: the square held an enemy piece before the move
// and a heavier mover's piece after it.
func detectSacrifices(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := 1; i < len(positions); i++ {
		before, after := &positions[i-1], &positions[i]
		if after.LastMove == "" {
			continue
		}
		if !hasSacrifice(&before.Board, &after.Board, after.MoverIsWhite) {
			continue
		}
		out = append(out, Occurrence{
			Motif:       Sacrifice,
			Ply:         after.Ply,
			MoveNumber:  after.MoveNumber(),
			Side:        after.Side(),
			Description: fmt.Sprintf("Sacrifice at move %d", after.MoveNumber()),
		})
	}
	return out
}

func hasSacrifice(before, after *board.Board, moverIsWhite bool) bool {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			pb, pa := before[r][c], after[r][c]
			if pb == board.Empty || pa == board.Empty {
				continue
			}
			if (pb > 0) == moverIsWhite || (pa > 0) != moverIsWhite {
				continue
			}
			if board.Abs(pa) > board.Abs(pb) {
				return true
			}
		}
	}
	return false
}

// detectZugzwang flags queenless endgames (eight pieces or fewer) where
// the side to move has every pawn blocked and no other piece with a move
// to an empty square. A mobility heuristic, not an engine verdict.
func detectZugzwang(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		if pos.LastMove == "" {
			continue
		}
		if !isEndgame(&pos.Board) || !isLikelyZugzwang(&pos.Board, pos.WhiteToMove()) {
			continue
		}
		out = append(out, Occurrence{
			Motif:       Zugzwang,
			Ply:         pos.Ply,
			MoveNumber:  pos.MoveNumber(),
			Side:        pos.Side(),
			Description: fmt.Sprintf("Zugzwang (heuristic) at move %d", pos.MoveNumber()),
		})
	}
	return out
}

func isEndgame(b *board.Board) bool {
	total := 0
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			piece := b[r][c]
			if piece == board.Empty {
				continue
			}
			if board.Abs(piece) == board.Queen {
				return false
			}
			total++
		}
	}
	return total <= 8
}

func isLikelyZugzwang(b *board.Board, toMoveIsWhite bool) bool {
	pawnDir := 1
	if toMoveIsWhite {
		pawnDir = -1
	}
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			piece := b[r][c]
			if piece == board.Empty || (piece > 0) != toMoveIsWhite {
				continue
			}
			switch board.Abs(piece) {
			case board.King:
				// King moves are not counted toward mobility.
			case board.Pawn:
				nr := r + pawnDir
				if board.InBounds(nr, c) && b[nr][c] == board.Empty {
					return false
				}
			default:
				if canStepToEmpty(b, r, c) {
					return false
				}
			}
		}
	}
	return true
}

// canStepToEmpty reports whether the piece has at least one empty square
// one step away in any of its movement directions.
func canStepToEmpty(b *board.Board, r, c int) bool {
	switch board.Abs(b[r][c]) {
	case board.Knight:
		for _, off := range knightOffsets {
			nr, nc := r+off[0], c+off[1]
			if board.InBounds(nr, nc) && b[nr][nc] == board.Empty {
				return true
			}
		}
	case board.Bishop, board.Rook, board.Queen:
		for _, dir := range allDirections {
			if !slidesAlong(b[r][c], dir) {
				continue
			}
			nr, nc := r+dir[0], c+dir[1]
			if board.InBounds(nr, nc) && b[nr][nc] == board.Empty {
				return true
			}
		}
	}
	return false
}

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

// detectInterference flags moves landing on a previously empty square
// that an enemy slider was attacking through, cutting the line.
func detectInterference(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := 1; i < len(positions); i++ {
		before, after := &positions[i-1], &positions[i]
		if after.LastMove == "" {
			continue
		}
		if !hasInterference(&before.Board, &after.Board, after.MoverIsWhite) {
			continue
		}
		out = append(out, Occurrence{
			Motif:       Interference,
			Ply:         after.Ply,
			MoveNumber:  after.MoveNumber(),
			Side:        after.Side(),
			Description: fmt.Sprintf("Interference at move %d", after.MoveNumber()),
		})
	}
	return out
}

func hasInterference(before, after *board.Board, moverIsWhite bool) bool {
	for dr := 0; dr < board.Size; dr++ {
		for dc := 0; dc < board.Size; dc++ {
			if before[dr][dc] != board.Empty {
				continue
			}
			pa := after[dr][dc]
			if pa == board.Empty || (pa > 0) != moverIsWhite {
				continue
			}
			if blocksEnemySlidingLine(before, dr, dc, moverIsWhite) {
				return true
			}
		}
	}
	return false
}

// blocksEnemySlidingLine reports whether an enemy slider attacked
// through the square in the before position, with the line continuing
// past it on the board.
func blocksEnemySlidingLine(before *board.Board, destR, destC int, moverIsWhite bool) bool {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			piece := before[r][c]
			if piece == board.Empty || (piece > 0) == moverIsWhite {
				continue
			}
			abs := board.Abs(piece)
			if abs != board.Bishop && abs != board.Rook && abs != board.Queen {
				continue
			}
			if !before.PieceAttacks(r, c, destR, destC) {
				continue
			}
			nr := destR + signInt(destR-r)
			nc := destC + signInt(destC-c)
			if board.InBounds(nr, nc) {
				return true
			}
		}
	}
	return false
}

// detectOverloadedPieces flags positions where one defending piece
// covers two or more friendly pieces that are under attack: pulling it
// to one loses the other.
func detectOverloadedPieces(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		if pos.LastMove == "" {
			continue
		}
		if !hasOverloadedPiece(&pos.Board, pos.MoverIsWhite) {
			continue
		}
		out = append(out, Occurrence{
			Motif:       OverloadedPiece,
			Ply:         pos.Ply,
			MoveNumber:  pos.MoveNumber(),
			Side:        pos.Side(),
			Description: fmt.Sprintf("Overloaded piece at move %d", pos.MoveNumber()),
		})
	}
	return out
}

func hasOverloadedPiece(b *board.Board, attackerIsWhite bool) bool {
	defenderIsWhite := !attackerIsWhite

	var attacked [][2]int
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			piece := b[r][c]
			if piece == board.Empty || (piece > 0) != defenderIsWhite {
				continue
			}
			if b.CountAttackers(r, c, attackerIsWhite) > 0 {
				attacked = append(attacked, [2]int{r, c})
			}
		}
	}
	if len(attacked) < 2 {
		return false
	}

	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			piece := b[r][c]
			if piece == board.Empty || (piece > 0) != defenderIsWhite {
				continue
			}
			defended := 0
			for _, sq := range attacked {
				if sq[0] == r && sq[1] == c {
					continue
				}
				if b.PieceAttacks(r, c, sq[0], sq[1]) {
					defended++
				}
			}
			if defended >= 2 {
				return true
			}
		}
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func signInt(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
