package board

import (
	"fmt"
	"strings"
)

// Initial returns the standard chess starting position.
func Initial() Board {
	var b Board
	backRank := []int8{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for c := 0; c < Size; c++ {
		b[0][c] = -backRank[c]
		b[1][c] = -Pawn
		b[6][c] = Pawn
		b[7][c] = backRank[c]
	}
	return b
}

// ParsePlacement parses the piece-placement field of a FEN string
// ("rnbqkbnr/pppppppp/8/..."). Only the first field is consumed; a full
// FEN may be passed and the remainder is ignored.
func ParsePlacement(fen string) (Board, error) {
	var b Board
	placement := fen
	if i := strings.IndexByte(fen, ' '); i >= 0 {
		placement = fen[:i]
	}
	ranks := strings.Split(placement, "/")
	if len(ranks) != Size {
		return b, fmt.Errorf("placement has %d ranks, want %d", len(ranks), Size)
	}
	for r, rank := range ranks {
		c := 0
		for i := 0; i < len(rank); i++ {
			ch := rank[i]
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			if c >= Size {
				return b, fmt.Errorf("rank %d overflows: %q", 8-r, rank)
			}
			piece := pieceFromLetter(ch)
			if piece == Empty {
				return b, fmt.Errorf("bad piece letter %q in rank %q", ch, rank)
			}
			b[r][c] = piece
			c++
		}
		if c != Size {
			return b, fmt.Errorf("rank %d has %d files, want %d", 8-r, c, Size)
		}
	}
	return b, nil
}

// MustParsePlacement is ParsePlacement for known-good literals; it
// panics on error. Intended for tests and fixtures.
func MustParsePlacement(fen string) Board {
	b, err := ParsePlacement(fen)
	if err != nil {
		panic(err)
	}
	return b
}

// Placement renders the board as a FEN piece-placement field.
func (b *Board) Placement() string {
	var sb strings.Builder
	for r := 0; r < Size; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		run := 0
		for c := 0; c < Size; c++ {
			piece := b[r][c]
			if piece == Empty {
				run++
				continue
			}
			if run > 0 {
				sb.WriteByte(byte('0' + run))
				run = 0
			}
			sb.WriteString(PieceLetter(piece))
		}
		if run > 0 {
			sb.WriteByte(byte('0' + run))
		}
	}
	return sb.String()
}

func pieceFromLetter(ch byte) int8 {
	switch ch {
	case 'K':
		return King
	case 'Q':
		return Queen
	case 'R':
		return Rook
	case 'B':
		return Bishop
	case 'N':
		return Knight
	case 'P':
		return Pawn
	case 'k':
		return -King
	case 'q':
		return -Queen
	case 'r':
		return -Rook
	case 'b':
		return -Bishop
	case 'n':
		return -Knight
	case 'p':
		return -Pawn
	}
	return Empty
}
