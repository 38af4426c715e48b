// Package board implements the 8x8 piece grid and the pure geometry
// queries the motif detectors are built on. board[0][0] is a8 (rank 8,
// file a) and board[7][7] is h1. Piece values: P=1, N=2, B=3, R=4, Q=5,
// K=6; negative for black pieces, 0 for an empty square.
package board

// Size is the edge length of the board grid.
const Size = 8

// Piece type magnitudes. The sign of a square's value carries the colour.
const (
	Empty  int8 = 0
	Pawn   int8 = 1
	Knight int8 = 2
	Bishop int8 = 3
	Rook   int8 = 4
	Queen  int8 = 5
	King   int8 = 6
)

// Board is a signed 8x8 grid. Row 0 is rank 8; column 0 is file a.
type Board [Size][Size]int8

// IsWhite reports whether a non-empty piece value is white.
func IsWhite(piece int8) bool { return piece > 0 }

// Abs returns the piece type magnitude.
func Abs(piece int8) int8 {
	if piece < 0 {
		return -piece
	}
	return piece
}

// InBounds reports whether (row, col) is on the board.
func InBounds(row, col int) bool {
	return row >= 0 && row < Size && col >= 0 && col < Size
}

// PieceAttacks reports whether the piece at (pieceRow, pieceCol) attacks
// the square (targetRow, targetCol). Sliding pieces require a clear path.
// Returns false for an empty source square.
func (b *Board) PieceAttacks(pieceRow, pieceCol, targetRow, targetCol int) bool {
	piece := b[pieceRow][pieceCol]
	if piece == Empty {
		return false
	}
	pieceIsWhite := piece > 0

	rowDelta := targetRow - pieceRow
	colDelta := targetCol - pieceCol

	switch Abs(piece) {
	case Pawn:
		// Pawns attack diagonally one step in their forward direction.
		pawnDir := 1
		if pieceIsWhite {
			pawnDir = -1
		}
		return rowDelta == pawnDir && abs(colDelta) == 1

	case Knight:
		ar, ac := abs(rowDelta), abs(colDelta)
		return (ar == 2 && ac == 1) || (ar == 1 && ac == 2)

	case Bishop:
		if abs(rowDelta) != abs(colDelta) || rowDelta == 0 {
			return false
		}
		return b.IsPathClear(pieceRow, pieceCol, targetRow, targetCol)

	case Rook:
		if rowDelta != 0 && colDelta != 0 {
			return false
		}
		return b.IsPathClear(pieceRow, pieceCol, targetRow, targetCol)

	case Queen:
		if rowDelta != 0 && colDelta != 0 && abs(rowDelta) != abs(colDelta) {
			return false
		}
		return b.IsPathClear(pieceRow, pieceCol, targetRow, targetCol)

	case King:
		return abs(rowDelta) <= 1 && abs(colDelta) <= 1 && (rowDelta != 0 || colDelta != 0)
	}
	return false
}

// IsPathClear reports whether every square strictly between the two
// endpoints is empty. The endpoints themselves are not inspected.
func (b *Board) IsPathClear(fromRow, fromCol, toRow, toCol int) bool {
	rowStep := sign(toRow - fromRow)
	colStep := sign(toCol - fromCol)
	row, col := fromRow+rowStep, fromCol+colStep
	for row != toRow || col != toCol {
		if b[row][col] != Empty {
			return false
		}
		row += rowStep
		col += colStep
	}
	return true
}

// CountAttackers counts how many pieces of the given colour attack
// (targetRow, targetCol), skipping any piece standing on the target
// square itself.
func (b *Board) CountAttackers(targetRow, targetCol int, attackerIsWhite bool) int {
	count := 0
	for row := 0; row < Size; row++ {
		for col := 0; col < Size; col++ {
			if row == targetRow && col == targetCol {
				continue
			}
			piece := b[row][col]
			if piece == Empty || (piece > 0) != attackerIsWhite {
				continue
			}
			if b.PieceAttacks(row, col, targetRow, targetCol) {
				count++
			}
		}
	}
	return count
}

// FindKing returns the coordinates of the king of the given colour, or
// (-1, -1) if it is not on the board.
func (b *Board) FindKing(kingIsWhite bool) (int, int) {
	kingPiece := King
	if !kingIsWhite {
		kingPiece = -King
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if b[r][c] == kingPiece {
				return r, c
			}
		}
	}
	return -1, -1
}

// FindCheckingPiece scans the mover's pieces and returns the first one
// attacking the enemy king. ok is false when no piece gives check or the
// enemy king is absent.
func (b *Board) FindCheckingPiece(moverIsWhite bool) (row, col int, ok bool) {
	kr, kc := b.FindKing(!moverIsWhite)
	if kr == -1 {
		return 0, 0, false
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			piece := b[r][c]
			if piece == Empty || (piece > 0) != moverIsWhite {
				continue
			}
			if b.PieceAttacks(r, c, kr, kc) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// SquareName converts grid coordinates to the algebraic square name.
// (0, 0) is "a8"; (7, 4) is "e1".
func SquareName(row, col int) string {
	return string([]byte{byte('a' + col), byte('8' - row)})
}

// PieceNotation returns the piece letter plus square name for a piece at
// a given square. White pieces are uppercase, black lowercase:
// PieceNotation(5, 7, 4) is "Qe1"; PieceNotation(-6, 0, 4) is "ke8".
func PieceNotation(piece int8, row, col int) string {
	return PieceLetter(piece) + SquareName(row, col)
}

// PieceLetter returns the single-letter notation for a piece value,
// uppercase for white and lowercase for black.
func PieceLetter(piece int8) string {
	var letter byte
	switch Abs(piece) {
	case Pawn:
		letter = 'P'
	case Knight:
		letter = 'N'
	case Bishop:
		letter = 'B'
	case Rook:
		letter = 'R'
	case Queen:
		letter = 'Q'
	case King:
		letter = 'K'
	default:
		letter = '?'
	}
	if piece < 0 {
		letter += 'a' - 'A'
	}
	return string(letter)
}

// ParsePromotionDestination extracts the destination square from a
// promotion move like "e8=Q+" or "axb8=N#". The two characters before
// '=' are the destination. Returns (-1, -1) on malformed input.
func ParsePromotionDestination(move string) (int, int) {
	eq := -1
	for i := 0; i < len(move); i++ {
		if move[i] == '=' {
			eq = i
			break
		}
	}
	if eq < 2 {
		return -1, -1
	}
	fileChar := move[eq-2]
	rankChar := move[eq-1]
	if fileChar < 'a' || fileChar > 'h' || rankChar < '1' || rankChar > '8' {
		return -1, -1
	}
	col := int(fileChar - 'a')
	row := 8 - int(rankChar-'0')
	return row, col
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
