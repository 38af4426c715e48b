// Package pgn parses PGN game text into tag pairs and an ordered list
// of SAN move tokens. It is a movetext tokenizer, not a rules engine:
// legality is the replayer's concern.
package pgn

import (
	"fmt"
	"regexp"
	"strings"
)

// Move is one half-move of the game.
type Move struct {
	// Number is the full move number (1-based).
	Number int
	// White reports whether white is the side to move before this move.
	White bool
	// SAN is the move text with annotation glyphs stripped but check,
	// mate and promotion markers kept ("Nf3", "exd5", "e8=Q+", "O-O").
	SAN string
}

// Game is a parsed PGN game: its tag pairs and its moves in order.
type Game struct {
	Tags  map[string]string
	Moves []Move
}

// Tag returns the value of a tag pair, or "" when absent.
func (g *Game) Tag(name string) string { return g.Tags[name] }

// ParseError reports a movetext token that could not be classified as a
// move, a move number, or a game terminator.
type ParseError struct {
	Token string
	Index int // 0-based index of the offending token in the movetext
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pgn: unrecognized token %q at index %d", e.Token, e.Index)
}

var (
	tagPattern = regexp.MustCompile(`\[(\w+)\s+"([^"]*)"\]`)
	// SAN: castling, or optional piece letter + optional disambiguation
	// + optional capture + destination + optional promotion + optional
	// check/mate suffix.
	sanPattern        = regexp.MustCompile(`^(O-O(-O)?|[KQRBN]?[a-h]?[1-8]?x?[a-h][1-8](=[QRBN])?)[+#]?$`)
	moveNumberPattern = regexp.MustCompile(`^\d+\.{1,3}$`)
)

// Parse splits a PGN string into tag pairs and SAN moves. Comments
// ({...} and ; to end of line), variations ((...)) and NAGs ($n) are
// stripped; !/? annotation suffixes are removed from move tokens. A
// result token (1-0, 0-1, 1/2-1/2, *) terminates the move sequence.
func Parse(text string) (*Game, error) {
	game := &Game{Tags: make(map[string]string)}

	var movetext strings.Builder
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			if m := tagPattern.FindStringSubmatch(trimmed); m != nil {
				game.Tags[m[1]] = m[2]
			}
			continue
		}
		if trimmed != "" {
			movetext.WriteString(trimmed)
			movetext.WriteByte(' ')
		}
	}

	cleaned := stripVariations(stripComments(movetext.String()))
	moves, err := tokenizeMoves(cleaned)
	if err != nil {
		return nil, err
	}
	game.Moves = moves
	return game, nil
}

// ParseMoves parses bare movetext with no tag section.
func ParseMoves(movetext string) ([]Move, error) {
	return tokenizeMoves(stripVariations(stripComments(movetext)))
}

// SplitGames splits a file containing one or more PGN games into the
// raw text of each game. A tag line that follows movetext starts a new
// game. Empty input yields no games.
func SplitGames(text string) []string {
	var games []string
	var current strings.Builder
	seenMovetext := false

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			games = append(games, s)
		}
		current.Reset()
		seenMovetext = false
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		isTag := strings.HasPrefix(trimmed, "[") && tagPattern.MatchString(trimmed)
		if isTag && seenMovetext {
			flush()
		}
		if trimmed != "" && !isTag {
			seenMovetext = true
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}
	flush()
	return games
}

func stripComments(movetext string) string {
	var out strings.Builder
	inBrace := false
	inLine := false
	for i := 0; i < len(movetext); i++ {
		c := movetext[i]
		switch {
		case inLine:
			if c == '\n' {
				inLine = false
			}
		case inBrace:
			if c == '}' {
				inBrace = false
			}
		case c == '{':
			inBrace = true
		case c == ';':
			inLine = true
		default:
			out.WriteByte(c)
		}
	}
	return out.String()
}

func stripVariations(movetext string) string {
	var out strings.Builder
	depth := 0
	for i := 0; i < len(movetext); i++ {
		c := movetext[i]
		switch {
		case c == '(':
			depth++
		case c == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			out.WriteByte(c)
		}
	}
	return out.String()
}

func tokenizeMoves(movetext string) ([]Move, error) {
	var moves []Move
	moveNumber := 1
	whiteToMove := true

	for i, raw := range strings.Fields(movetext) {
		if isResult(raw) {
			break
		}
		if moveNumberPattern.MatchString(raw) || strings.HasPrefix(raw, "$") {
			continue
		}
		san := strings.TrimRight(raw, "!?")
		if !sanPattern.MatchString(san) {
			return nil, &ParseError{Token: raw, Index: i}
		}
		moves = append(moves, Move{Number: moveNumber, White: whiteToMove, SAN: san})
		if !whiteToMove {
			moveNumber++
		}
		whiteToMove = !whiteToMove
	}
	return moves, nil
}

func isResult(token string) bool {
	switch token {
	case "1-0", "0-1", "1/2-1/2", "*":
		return true
	}
	return false
}
