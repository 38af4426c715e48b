// Package replay applies SAN moves to a board, producing one immutable
// Position snapshot per ply. It resolves disambiguation, captures,
// castling, en passant and promotion, but trusts the movetext to be a
// legal game transcript.
package replay

import (
	"fmt"
	"strings"

	"github.com/chessmine/chessmine/internal/board"
	"github.com/chessmine/chessmine/internal/pgn"
)

// Position is one snapshot of the game. Ply 0 is the synthetic pre-game
// position with an empty LastMove; plies 1..n follow the moves played.
type Position struct {
	Ply          int
	Board        board.Board
	MoverIsWhite bool
	LastMove     string
}

// MoveNumber returns the full move number this position belongs to.
func (p *Position) MoveNumber() int {
	if p.Ply <= 0 {
		return 0
	}
	return (p.Ply + 1) / 2
}

// WhiteToMove reports whose turn it is in this position.
func (p *Position) WhiteToMove() bool { return !p.MoverIsWhite }

// Side returns "white" or "black" for the side that just moved.
func (p *Position) Side() string {
	if p.MoverIsWhite {
		return "white"
	}
	return "black"
}

// Error is a replay failure at a specific ply. It indicates a
// transcription error or unsupported notation; the replayer never
// guesses a mover.
type Error struct {
	Ply    int
	SAN    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("replay: ply %d (%s): %s", e.Ply, e.SAN, e.Reason)
}

// Replay plays the moves from the standard initial position and returns
// every position the game passed through, the synthetic start included.
func Replay(moves []pgn.Move) ([]Position, error) {
	b := board.Initial()
	positions := make([]Position, 0, len(moves)+1)
	positions = append(positions, Position{Ply: 0, Board: b, MoverIsWhite: false})

	for i, mv := range moves {
		ply := i + 1
		if err := applySAN(&b, mv.SAN, mv.White); err != nil {
			return nil, &Error{Ply: ply, SAN: mv.SAN, Reason: err.Error()}
		}
		positions = append(positions, Position{
			Ply:          ply,
			Board:        b,
			MoverIsWhite: mv.White,
			LastMove:     mv.SAN,
		})
	}
	return positions, nil
}

// ReplayText parses bare movetext and replays it.
func ReplayText(movetext string) ([]Position, error) {
	moves, err := pgn.ParseMoves(movetext)
	if err != nil {
		return nil, err
	}
	return Replay(moves)
}

// san holds the decoded components of one SAN token.
type san struct {
	piece     int8 // type magnitude; Pawn for pawn moves
	fromFile  int  // -1 when absent
	fromRank  int  // -1 when absent
	capture   bool
	destRow   int
	destCol   int
	promotion int8 // Empty when not a promotion
}

func applySAN(b *board.Board, text string, moverIsWhite bool) error {
	text = strings.TrimRight(text, "+#")

	if text == "O-O" || text == "O-O-O" {
		return applyCastle(b, text == "O-O", moverIsWhite)
	}

	mv, err := decodeSAN(text)
	if err != nil {
		return err
	}

	fr, fc, err := resolveOrigin(b, mv, moverIsWhite)
	if err != nil {
		return err
	}

	piece := b[fr][fc]

	// En passant: a pawn capture onto an empty square removes the pawn
	// that was bypassed, which sits on the origin rank.
	if mv.piece == board.Pawn && mv.capture && b[mv.destRow][mv.destCol] == board.Empty {
		b[fr][mv.destCol] = board.Empty
	}

	b[fr][fc] = board.Empty
	if mv.promotion != board.Empty {
		promoted := mv.promotion
		if !moverIsWhite {
			promoted = -promoted
		}
		b[mv.destRow][mv.destCol] = promoted
	} else {
		b[mv.destRow][mv.destCol] = piece
	}
	return nil
}

func applyCastle(b *board.Board, kingside, moverIsWhite bool) error {
	row := 0
	king, rook := -board.King, -board.Rook
	if moverIsWhite {
		row = 7
		king, rook = board.King, board.Rook
	}
	if b[row][4] != king {
		return fmt.Errorf("castle: king not on %s", board.SquareName(row, 4))
	}
	if kingside {
		if b[row][7] != rook {
			return fmt.Errorf("castle: rook not on %s", board.SquareName(row, 7))
		}
		b[row][4], b[row][7] = board.Empty, board.Empty
		b[row][6], b[row][5] = king, rook
	} else {
		if b[row][0] != rook {
			return fmt.Errorf("castle: rook not on %s", board.SquareName(row, 0))
		}
		b[row][4], b[row][0] = board.Empty, board.Empty
		b[row][2], b[row][3] = king, rook
	}
	return nil
}

func decodeSAN(text string) (san, error) {
	mv := san{piece: board.Pawn, fromFile: -1, fromRank: -1}

	if i := strings.IndexByte(text, '='); i >= 0 {
		if i+1 >= len(text) {
			return mv, fmt.Errorf("truncated promotion")
		}
		switch text[i+1] {
		case 'Q':
			mv.promotion = board.Queen
		case 'R':
			mv.promotion = board.Rook
		case 'B':
			mv.promotion = board.Bishop
		case 'N':
			mv.promotion = board.Knight
		default:
			return mv, fmt.Errorf("bad promotion piece %q", text[i+1])
		}
		text = text[:i]
	}

	if len(text) > 0 {
		switch text[0] {
		case 'K':
			mv.piece = board.King
			text = text[1:]
		case 'Q':
			mv.piece = board.Queen
			text = text[1:]
		case 'R':
			mv.piece = board.Rook
			text = text[1:]
		case 'B':
			mv.piece = board.Bishop
			text = text[1:]
		case 'N':
			mv.piece = board.Knight
			text = text[1:]
		}
	}

	if len(text) < 2 {
		return mv, fmt.Errorf("truncated move")
	}

	destFile := text[len(text)-2]
	destRank := text[len(text)-1]
	if destFile < 'a' || destFile > 'h' || destRank < '1' || destRank > '8' {
		return mv, fmt.Errorf("bad destination square %q", text[len(text)-2:])
	}
	mv.destCol = int(destFile - 'a')
	mv.destRow = 8 - int(destRank-'0')
	rest := text[:len(text)-2]

	for i := 0; i < len(rest); i++ {
		switch c := rest[i]; {
		case c == 'x':
			mv.capture = true
		case c >= 'a' && c <= 'h':
			mv.fromFile = int(c - 'a')
		case c >= '1' && c <= '8':
			mv.fromRank = 8 - int(c-'0')
		default:
			return mv, fmt.Errorf("bad disambiguation %q", rest)
		}
	}
	return mv, nil
}

// resolveOrigin finds the unique origin square for a decoded SAN move.
// Candidates that would leave the mover's own king in check are
// discarded, which resolves the cases where SAN relies on legality
// rather than explicit disambiguation.
func resolveOrigin(b *board.Board, mv san, moverIsWhite bool) (int, int, error) {
	want := mv.piece
	if !moverIsWhite {
		want = -want
	}

	var candidates [][2]int
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if b[r][c] != want {
				continue
			}
			if mv.fromFile >= 0 && c != mv.fromFile {
				continue
			}
			if mv.fromRank >= 0 && r != mv.fromRank {
				continue
			}
			if !canReach(b, r, c, mv, moverIsWhite) {
				continue
			}
			if leavesKingInCheck(b, r, c, mv, moverIsWhite) {
				continue
			}
			candidates = append(candidates, [2]int{r, c})
		}
	}

	switch len(candidates) {
	case 1:
		return candidates[0][0], candidates[0][1], nil
	case 0:
		return 0, 0, fmt.Errorf("no %s can reach %s",
			board.PieceLetter(want), board.SquareName(mv.destRow, mv.destCol))
	default:
		return 0, 0, fmt.Errorf("%d pieces can reach %s, disambiguation needed",
			len(candidates), board.SquareName(mv.destRow, mv.destCol))
	}
}

func canReach(b *board.Board, fr, fc int, mv san, moverIsWhite bool) bool {
	if mv.piece != board.Pawn {
		// For pieces, movement geometry equals attack geometry, and the
		// destination must not hold a friendly piece.
		dest := b[mv.destRow][mv.destCol]
		if dest != board.Empty && (dest > 0) == moverIsWhite {
			return false
		}
		return b.PieceAttacks(fr, fc, mv.destRow, mv.destCol)
	}

	dir := 1
	startRow := 1
	if moverIsWhite {
		dir = -1
		startRow = 6
	}

	if mv.capture {
		// Diagonal one step; destination holds an enemy piece, or is the
		// en-passant square (empty, with the bypassed pawn alongside).
		if mv.destRow-fr != dir || abs(mv.destCol-fc) != 1 {
			return false
		}
		dest := b[mv.destRow][mv.destCol]
		if dest != board.Empty {
			return (dest > 0) != moverIsWhite
		}
		bypassed := b[fr][mv.destCol]
		return bypassed != board.Empty && (bypassed > 0) != moverIsWhite && board.Abs(bypassed) == board.Pawn
	}

	// Pawn push: same file, empty destination, one step or two from the
	// start rank with a clear intermediate square.
	if mv.destCol != fc || b[mv.destRow][mv.destCol] != board.Empty {
		return false
	}
	if mv.destRow-fr == dir {
		return true
	}
	return fr == startRow && mv.destRow-fr == 2*dir && b[fr+dir][fc] == board.Empty
}

func leavesKingInCheck(b *board.Board, fr, fc int, mv san, moverIsWhite bool) bool {
	sim := *b
	piece := sim[fr][fc]
	if mv.piece == board.Pawn && mv.capture && sim[mv.destRow][mv.destCol] == board.Empty {
		sim[fr][mv.destCol] = board.Empty
	}
	sim[fr][fc] = board.Empty
	sim[mv.destRow][mv.destCol] = piece

	kr, kc := sim.FindKing(moverIsWhite)
	if kr == -1 {
		return false
	}
	return sim.CountAttackers(kr, kc, !moverIsWhite) > 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
