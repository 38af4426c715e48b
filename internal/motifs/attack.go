package motifs

import (
	"fmt"
	"strings"

	"github.com/chessmine/chessmine/internal/board"
	"github.com/chessmine/chessmine/internal/replay"
)

// DetectAttacks emits the internal attack primitive: one row per
// significant attack created by each move. Direct rows have the moved
// piece as the attacker; discovered rows carry the revealed slider.
// Significant means the target is a king or queen, or the attacker hits
// two or more targets of knight value and up in the same position.
func DetectAttacks(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := 1; i < len(positions); i++ {
		before, after := &positions[i-1], &positions[i]
		move := after.LastMove
		if move == "" {
			continue
		}
		isCheckmate := strings.HasSuffix(move, "#")

		if !strings.HasPrefix(move, "O-") {
			out = append(out, directAttacks(before, after, isCheckmate)...)
		}

		for _, ra := range findDiscoveredAttacks(&before.Board, &after.Board, after.MoverIsWhite) {
			out = append(out, Occurrence{
				Motif:        Attack,
				Ply:          after.Ply,
				MoveNumber:   after.MoveNumber(),
				Side:         after.Side(),
				Description:  fmt.Sprintf("Discovered attack at move %d", after.MoveNumber()),
				MovedPiece:   ra.movedPiece,
				Attacker:     ra.attacker,
				Target:       ra.target,
				IsDiscovered: true,
				IsMate:       isCheckmate && isKingTarget(ra.target),
			})
		}
	}
	return out
}

func directAttacks(before, after *replay.Position, isCheckmate bool) []Occurrence {
	moverIsWhite := after.MoverIsWhite
	dr, dc, ok := findArrivalSquare(&before.Board, &after.Board, moverIsWhite)
	if !ok {
		return nil
	}
	attacker := after.Board[dr][dc]
	attackerNotation := board.PieceNotation(attacker, dr, dc)

	var targets []string
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			piece := after.Board[r][c]
			if piece == board.Empty || (piece > 0) == moverIsWhite {
				continue
			}
			if after.Board.PieceAttacks(dr, dc, r, c) {
				targets = append(targets, board.PieceNotation(piece, r, c))
			}
		}
	}

	var out []Occurrence
	for _, t := range filterSignificant(targets) {
		out = append(out, Occurrence{
			Motif:       Attack,
			Ply:         after.Ply,
			MoveNumber:  after.MoveNumber(),
			Side:        after.Side(),
			Description: fmt.Sprintf("Attack at move %d", after.MoveNumber()),
			MovedPiece:  attackerNotation,
			Attacker:    attackerNotation,
			Target:      t,
			IsMate:      isCheckmate && isKingTarget(t),
		})
	}
	return out
}

// findArrivalSquare returns the square where a mover's piece appeared:
// empty or enemy-held before, mover-held after.
func findArrivalSquare(before, after *board.Board, moverIsWhite bool) (int, int, bool) {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			pa := after[r][c]
			pb := before[r][c]
			if pa != board.Empty && (pa > 0) == moverIsWhite &&
				(pb == board.Empty || (pb > 0) != moverIsWhite) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// filterSignificant keeps king and queen targets always, and all targets
// of knight value and up when at least two such targets exist.
func filterSignificant(targets []string) []string {
	var out []string
	for _, t := range targets {
		if isKingTarget(t) || t[0] == 'Q' || t[0] == 'q' {
			out = append(out, t)
		}
	}
	valuable := 0
	for _, t := range targets {
		if targetValue(t) >= 2 {
			valuable++
		}
	}
	if valuable >= 2 {
		for _, t := range targets {
			if targetValue(t) >= 2 && !contains(out, t) {
				out = append(out, t)
			}
		}
	}
	return out
}

func targetValue(notation string) int {
	switch notation[0] {
	case 'P', 'p':
		return 1
	case 'N', 'n':
		return 2
	case 'B', 'b':
		return 3
	case 'R', 'r':
		return 4
	case 'Q', 'q':
		return 5
	case 'K', 'k':
		return 6
	}
	return 0
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// DeriveForks groups the non-discovered attack rows by (moveNumber,
// side, attacker) and turns every group attacking two or more distinct
// targets into one fork occurrence per target.
func DeriveForks(attacks []Occurrence) []Occurrence {
	type key struct {
		moveNumber int
		side       string
		attacker   string
	}
	var order []key
	groups := make(map[key][]Occurrence)
	for _, a := range attacks {
		if a.IsDiscovered {
			continue
		}
		k := key{a.MoveNumber, a.Side, a.Attacker}
		if _, seen := groups[k]; !seen {
			order = append(order, k)
		}
		groups[k] = append(groups[k], a)
	}

	var out []Occurrence
	for _, k := range order {
		group := groups[k]
		distinct := make(map[string]bool, len(group))
		for _, a := range group {
			distinct[a.Target] = true
		}
		if len(distinct) < 2 {
			continue
		}
		seen := make(map[string]bool, len(distinct))
		for _, a := range group {
			if seen[a.Target] {
				continue
			}
			seen[a.Target] = true
			out = append(out, Occurrence{
				Motif:       Fork,
				Ply:         a.Ply,
				MoveNumber:  a.MoveNumber,
				Side:        a.Side,
				Description: fmt.Sprintf("Fork at move %d", a.MoveNumber),
				MovedPiece:  a.MovedPiece,
				Attacker:    a.Attacker,
				Target:      a.Target,
				IsMate:      a.IsMate,
			})
		}
	}
	return out
}

// detectForks is the registry entry: forks are derived from the attack
// primitive, never detected independently, so the two can't diverge.
func detectForks(positions []replay.Position) []Occurrence {
	return DeriveForks(DetectAttacks(positions))
}
