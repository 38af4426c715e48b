package motifs

import (
	"fmt"

	"github.com/chessmine/chessmine/internal/board"
	"github.com/chessmine/chessmine/internal/replay"
)

// pinLine is one sliding-piece line with two enemy pieces on it, front
// first. Pins and skewers both reduce to this shape; they differ in
// which of the two pieces is worth more.
type pinLine struct {
	attackerR, attackerC int
	frontR, frontC       int
	backR, backC         int
	dir                  [2]int
}

// scanLines walks every ray of every sliding piece of the attacking side
// and collects the lines holding exactly two consecutive enemy pieces. A
// friendly piece anywhere on the ray blocks it.
func scanLines(b *board.Board, attackerIsWhite bool) []pinLine {
	var lines []pinLine
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			piece := b[r][c]
			if piece == board.Empty || (piece > 0) != attackerIsWhite {
				continue
			}
			abs := board.Abs(piece)
			if abs != board.Bishop && abs != board.Rook && abs != board.Queen {
				continue
			}
			for _, dir := range allDirections {
				if !slidesAlong(piece, dir) {
					continue
				}
				if line, ok := twoEnemiesAlongRay(b, r, c, dir, attackerIsWhite); ok {
					lines = append(lines, line)
				}
			}
		}
	}
	return lines
}

func twoEnemiesAlongRay(b *board.Board, ar, ac int, dir [2]int, attackerIsWhite bool) (pinLine, bool) {
	line := pinLine{attackerR: ar, attackerC: ac, frontR: -1, dir: dir}
	r, c := ar+dir[0], ac+dir[1]
	for board.InBounds(r, c) {
		piece := b[r][c]
		if piece != board.Empty {
			if (piece > 0) == attackerIsWhite {
				return line, false
			}
			if line.frontR == -1 {
				line.frontR, line.frontC = r, c
			} else {
				line.backR, line.backC = r, c
				return line, true
			}
		}
		r += dir[0]
		c += dir[1]
	}
	return line, false
}

// detectPins reports every line where the mover's slider holds an enemy
// piece in place in front of something worth more. A king behind makes
// the pin absolute, any other higher-value piece makes it relative.
func detectPins(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		if pos.LastMove == "" {
			continue
		}
		for _, line := range scanLines(&pos.Board, pos.MoverIsWhite) {
			pt := classifyPin(&pos.Board, line)
			if pt == PinNone {
				continue
			}
			out = append(out, Occurrence{
				Motif:       Pin,
				Ply:         pos.Ply,
				MoveNumber:  pos.MoveNumber(),
				Side:        pos.Side(),
				Description: fmt.Sprintf("Pin detected at move %d", pos.MoveNumber()),
				Attacker:    board.PieceNotation(pos.Board[line.attackerR][line.attackerC], line.attackerR, line.attackerC),
				Target:      board.PieceNotation(pos.Board[line.frontR][line.frontC], line.frontR, line.frontC),
				PinType:     pt,
			})
		}
	}
	return out
}

func classifyPin(b *board.Board, line pinLine) PinType {
	front := board.Abs(b[line.frontR][line.frontC])
	back := board.Abs(b[line.backR][line.backC])
	if front == board.King {
		return PinNone
	}
	if back == board.King {
		return PinAbsolute
	}
	if back > front {
		return PinRelative
	}
	return PinNone
}

// detectCrossPins fires when one enemy piece is pinned along two or more
// distinct axes at once.
func detectCrossPins(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		if pos.LastMove == "" {
			continue
		}

		type pinned struct {
			r, c int
		}
		axes := make(map[pinned]map[int]bool)
		first := make(map[pinned]pinLine)
		var order []pinned
		for _, line := range scanLines(&pos.Board, pos.MoverIsWhite) {
			if classifyPin(&pos.Board, line) == PinNone {
				continue
			}
			key := pinned{line.frontR, line.frontC}
			if axes[key] == nil {
				axes[key] = make(map[int]bool)
				first[key] = line
				order = append(order, key)
			}
			axes[key][axisOf(line.dir)] = true
		}

		for _, key := range order {
			if len(axes[key]) < 2 {
				continue
			}
			line := first[key]
			out = append(out, Occurrence{
				Motif:       CrossPin,
				Ply:         pos.Ply,
				MoveNumber:  pos.MoveNumber(),
				Side:        pos.Side(),
				Description: fmt.Sprintf("Cross-pin detected at move %d", pos.MoveNumber()),
				Attacker:    board.PieceNotation(pos.Board[line.attackerR][line.attackerC], line.attackerR, line.attackerC),
				Target:      board.PieceNotation(pos.Board[key.r][key.c], key.r, key.c),
				PinType:     classifyPin(&pos.Board, line),
			})
		}
	}
	return out
}

// axisOf folds a ray direction and its opposite into one axis id.
func axisOf(dir [2]int) int {
	dr, dc := dir[0], dir[1]
	if dr < 0 || (dr == 0 && dc < 0) {
		dr, dc = -dr, -dc
	}
	return dr*3 + dc
}

// detectSkewers is the pin mirrored: the front piece is worth more than
// the piece behind it, so moving the front piece loses the back one. The
// back piece must be at least knight value.
func detectSkewers(positions []replay.Position) []Occurrence {
	var out []Occurrence
	for i := range positions {
		pos := &positions[i]
		if pos.LastMove == "" {
			continue
		}
		for _, line := range scanLines(&pos.Board, pos.MoverIsWhite) {
			front := board.Abs(pos.Board[line.frontR][line.frontC])
			back := board.Abs(pos.Board[line.backR][line.backC])
			if front <= back || back < board.Knight {
				continue
			}
			out = append(out, Occurrence{
				Motif:       Skewer,
				Ply:         pos.Ply,
				MoveNumber:  pos.MoveNumber(),
				Side:        pos.Side(),
				Description: fmt.Sprintf("Skewer detected at move %d", pos.MoveNumber()),
				Attacker:    board.PieceNotation(pos.Board[line.attackerR][line.attackerC], line.attackerR, line.attackerC),
				Target:      board.PieceNotation(pos.Board[line.frontR][line.frontC], line.frontR, line.frontC),
			})
		}
	}
	return out
}
