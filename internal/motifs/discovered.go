package motifs

import (
	"fmt"
	"strings"

	"github.com/chessmine/chessmine/internal/board"
	"github.com/chessmine/chessmine/internal/replay"
)

// revealedAttack is one attack line opened by a piece leaving a square.
type revealedAttack struct {
	movedPiece string // "Be4->h7"
	attacker   string
	target     string
}

// detectDiscoveredAttacks compares each consecutive board pair and
// reports every attack line opened by the moved piece leaving a square.
// The mover itself is never the attacker.
func detectDiscoveredAttacks(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := 1; i < len(positions); i++ {
		before, after := &positions[i-1], &positions[i]
		if after.LastMove == "" {
			continue
		}
		for _, ra := range findDiscoveredAttacks(&before.Board, &after.Board, after.MoverIsWhite) {
			out = append(out, Occurrence{
				Motif:        DiscoveredAttack,
				Ply:          after.Ply,
				MoveNumber:   after.MoveNumber(),
				Side:         after.Side(),
				Description:  fmt.Sprintf("Discovered attack at move %d", after.MoveNumber()),
				MovedPiece:   ra.movedPiece,
				Attacker:     ra.attacker,
				Target:       ra.target,
				IsDiscovered: true,
			})
		}
	}
	return out
}

// detectDiscoveredChecks reports checks delivered along a line that was
// closed until a moment ago. A move with check notation is a discovered
// check when the checking piece reaches the enemy king through a square
// that held a piece within the last two plies. That covers the classic
// case, where the mover steps off the line of a friendly slider, and the
// case where the checker exploits a line the opponent's previous move
// opened. A direct check along an untouched line never qualifies.
func detectDiscoveredChecks(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := 1; i < len(positions); i++ {
		before, after := &positions[i-1], &positions[i]
		move := after.LastMove
		if !strings.HasSuffix(move, "+") && !strings.HasSuffix(move, "#") {
			continue
		}
		earlier := &before.Board
		if i >= 2 {
			earlier = &positions[i-2].Board
		}
		kr, kc := after.Board.FindKing(!after.MoverIsWhite)
		if kr == -1 {
			continue
		}
		movedPiece := describeMover(&before.Board, &after.Board, after.MoverIsWhite)
		for r := 0; r < board.Size; r++ {
			for c := 0; c < board.Size; c++ {
				piece := after.Board[r][c]
				if piece == board.Empty || (piece > 0) != after.MoverIsWhite {
					continue
				}
				if !after.Board.PieceAttacks(r, c, kr, kc) {
					continue
				}
				if !rayRecentlyOpened(&after.Board, &before.Board, earlier, r, c, kr, kc) {
					continue
				}
				out = append(out, Occurrence{
					Motif:        DiscoveredCheck,
					Ply:          after.Ply,
					MoveNumber:   after.MoveNumber(),
					Side:         after.Side(),
					Description:  fmt.Sprintf("Discovered check at move %d", after.MoveNumber()),
					MovedPiece:   movedPiece,
					Attacker:     board.PieceNotation(piece, r, c),
					Target:       board.PieceNotation(after.Board[kr][kc], kr, kc),
					IsDiscovered: true,
					IsMate:       strings.HasSuffix(move, "#"),
				})
			}
		}
	}
	return out
}

// rayRecentlyOpened reports whether a square strictly between the two
// endpoints is empty now but was occupied one or two plies ago. Contact
// checks and knight checks have no such square and always report false.
func rayRecentlyOpened(after, prev, earlier *board.Board, fromR, fromC, toR, toC int) bool {
	rowDelta, colDelta := toR-fromR, toC-fromC
	if rowDelta != 0 && colDelta != 0 && absInt(rowDelta) != absInt(colDelta) {
		return false
	}
	rowStep, colStep := signInt(rowDelta), signInt(colDelta)
	r, c := fromR+rowStep, fromC+colStep
	for r != toR || c != toC {
		if after[r][c] == board.Empty &&
			(prev[r][c] != board.Empty || earlier[r][c] != board.Empty) {
			return true
		}
		r += rowStep
		c += colStep
	}
	return false
}

// describeMover renders the move as "Be4->h7" from the board diff: the
// first square the mover vacated plus where that piece landed.
// Promotions leave no destination to find and render as "Pd7->??".
func describeMover(before, after *board.Board, moverIsWhite bool) string {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			pb := before[r][c]
			if pb == board.Empty || after[r][c] != board.Empty || (pb > 0) != moverIsWhite {
				continue
			}
			destSquare := "??"
			if dr, dc, found := findDestination(before, after, pb, r, c); found {
				destSquare = board.SquareName(dr, dc)
			}
			return board.PieceLetter(pb) + board.SquareName(r, c) + "->" + destSquare
		}
	}
	return ""
}

// findDiscoveredAttacks scans every square the mover vacated and walks
// the eight rays outward looking for sliding pieces whose line was
// opened. A friendly slider now hitting an enemy piece is a revealed
// attack. An enemy slider now hitting one of the mover's pieces also
// counts, but only when it attacks a piece worth at least its own value;
// exposing a cheaper piece to a queen is not a discovery worth noting.
// The moved piece standing on its destination is never an attacker or a
// target.
func findDiscoveredAttacks(before, after *board.Board, moverIsWhite bool) []revealedAttack {
	var result []revealedAttack
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			pb := before[r][c]
			if pb == board.Empty || after[r][c] != board.Empty || (pb > 0) != moverIsWhite {
				continue
			}
			destR, destC, found := findDestination(before, after, pb, r, c)
			destSquare := "??"
			if found {
				destSquare = board.SquareName(destR, destC)
			}
			movedPiece := board.PieceLetter(pb) + board.SquareName(r, c) + "->" + destSquare
			result = append(result, revealsAttacks(after, r, c, moverIsWhite, movedPiece, destR, destC, found)...)
		}
	}
	return result
}

func revealsAttacks(b *board.Board, vacatedR, vacatedC int, moverIsWhite bool, movedPiece string, destR, destC int, haveDest bool) []revealedAttack {
	var friendly, enemy []revealedAttack
	for _, dir := range allDirections {
		// Walk away from the vacated square to find the piece whose line
		// was opened.
		br, bc := vacatedR-dir[0], vacatedC-dir[1]
		for board.InBounds(br, bc) && b[br][bc] == board.Empty {
			br -= dir[0]
			bc -= dir[1]
		}
		if !board.InBounds(br, bc) {
			continue
		}
		piece := b[br][bc]
		if haveDest && br == destR && bc == destC {
			continue
		}
		if !slidesAlong(piece, dir) {
			continue
		}
		// Walk forward through the vacated square to the first piece on
		// the opened line.
		fr, fc := vacatedR+dir[0], vacatedC+dir[1]
		for board.InBounds(fr, fc) && b[fr][fc] == board.Empty {
			fr += dir[0]
			fc += dir[1]
		}
		if !board.InBounds(fr, fc) {
			continue
		}
		target := b[fr][fc]
		if (target > 0) == (piece > 0) {
			continue
		}
		if haveDest && fr == destR && fc == destC {
			// The slider was already aimed at the mover before it slid
			// along its own line.
			continue
		}
		ra := revealedAttack{
			movedPiece: movedPiece,
			attacker:   board.PieceNotation(piece, br, bc),
			target:     board.PieceNotation(target, fr, fc),
		}
		if (piece > 0) == moverIsWhite {
			friendly = append(friendly, ra)
		} else if board.Abs(piece) <= board.Abs(target) {
			enemy = append(enemy, ra)
		}
	}
	return append(friendly, enemy...)
}

// findDestination locates where the vacating piece landed: a square that
// now holds the same piece value but did not before. Promotions have no
// such square and report not found.
func findDestination(before, after *board.Board, piece int8, fromR, fromC int) (int, int, bool) {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if r == fromR && c == fromC {
				continue
			}
			if after[r][c] == piece && before[r][c] != piece {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

var allDirections = [8][2]int{
	{0, 1}, {0, -1}, {1, 0}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// slidesAlong reports whether a piece attacks along the given ray
// direction: queens on all eight, bishops on diagonals, rooks on files
// and ranks.
func slidesAlong(piece int8, dir [2]int) bool {
	diagonal := dir[0] != 0 && dir[1] != 0
	switch board.Abs(piece) {
	case board.Queen:
		return true
	case board.Bishop:
		return diagonal
	case board.Rook:
		return !diagonal
	}
	return false
}

func isKingTarget(notation string) bool {
	return notation != "" && (notation[0] == 'K' || notation[0] == 'k')
}
