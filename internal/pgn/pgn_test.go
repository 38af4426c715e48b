package pgn

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const samplePGN = `[Event "Live Chess"]
[Site "Chess.com"]
[White "alice"]
[Black "bob"]
[Result "1-0"]
[WhiteElo "2610"]
[BlackElo "2588"]

1. e4 {king's pawn} e5 2. Nf3 $1 Nc6 3. Bb5 (3. Bc4 Bc5) a6 1-0`

func TestParse(t *testing.T) {
	game, err := Parse(samplePGN)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if got := game.Tag("White"); got != "alice" {
		t.Errorf("White tag = %q, want %q", got, "alice")
	}
	if got := game.Tag("WhiteElo"); got != "2610" {
		t.Errorf("WhiteElo tag = %q, want %q", got, "2610")
	}
	if got := game.Tag("Missing"); got != "" {
		t.Errorf("missing tag = %q, want empty", got)
	}

	want := []Move{
		{Number: 1, White: true, SAN: "e4"},
		{Number: 1, White: false, SAN: "e5"},
		{Number: 2, White: true, SAN: "Nf3"},
		{Number: 2, White: false, SAN: "Nc6"},
		{Number: 3, White: true, SAN: "Bb5"},
		{Number: 3, White: false, SAN: "a6"},
	}
	if diff := cmp.Diff(want, game.Moves); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMoves(t *testing.T) {
	tests := []struct {
		name     string
		movetext string
		want     []Move
	}{
		{
			name:     "annotation suffixes stripped",
			movetext: "1. e4!? e5?? 2. Nf3!",
			want: []Move{
				{Number: 1, White: true, SAN: "e4"},
				{Number: 1, White: false, SAN: "e5"},
				{Number: 2, White: true, SAN: "Nf3"},
			},
		},
		{
			name:     "result token terminates",
			movetext: "1. e4 e5 1/2-1/2 2. Nf3",
			want: []Move{
				{Number: 1, White: true, SAN: "e4"},
				{Number: 1, White: false, SAN: "e5"},
			},
		},
		{
			name:     "black continuation numbers",
			movetext: "1. e4 e5 2... Nc6",
			want: []Move{
				{Number: 1, White: true, SAN: "e4"},
				{Number: 1, White: false, SAN: "e5"},
				{Number: 2, White: true, SAN: "Nc6"},
			},
		},
		{
			name:     "castling and promotion survive",
			movetext: "1. O-O e8=Q+ 2. O-O-O exd5",
			want: []Move{
				{Number: 1, White: true, SAN: "O-O"},
				{Number: 1, White: false, SAN: "e8=Q+"},
				{Number: 2, White: true, SAN: "O-O-O"},
				{Number: 2, White: false, SAN: "exd5"},
			},
		},
		{
			name:     "line comment stripped",
			movetext: "1. e4 ; best by test\ne5",
			want: []Move{
				{Number: 1, White: true, SAN: "e4"},
				{Number: 1, White: false, SAN: "e5"},
			},
		},
		{
			name:     "empty movetext",
			movetext: "",
			want:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoves(tt.movetext)
			if err != nil {
				t.Fatalf("ParseMoves: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("moves mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMovesNestedVariations(t *testing.T) {
	got, err := ParseMoves("1. e4 (1. d4 d5 (1... Nf6 2. c4)) e5")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	want := []Move{
		{Number: 1, White: true, SAN: "e4"},
		{Number: 1, White: false, SAN: "e5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMovesBadToken(t *testing.T) {
	_, err := ParseMoves("1. e4 zz9")
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.Token != "zz9" {
		t.Errorf("Token = %q, want %q", perr.Token, "zz9")
	}
}

func TestSplitGames(t *testing.T) {
	twoGames := `[Event "A"]
[White "alice"]

1. e4 e5 1-0

[Event "B"]
[White "carol"]

1. d4 d5 0-1`

	tests := []struct {
		name string
		text string
		want int
	}{
		{"two games", twoGames, 2},
		{"single game", samplePGN, 1},
		{"bare movetext", "1. e4 e5 2. Nf3", 1},
		{"empty input", "", 0},
		{"whitespace only", "\n\n  \n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			games := SplitGames(tt.text)
			if len(games) != tt.want {
				t.Fatalf("SplitGames returned %d chunks, want %d", len(games), tt.want)
			}
			for i, chunk := range games {
				if _, err := Parse(chunk); err != nil {
					t.Errorf("chunk %d does not parse: %v", i, err)
				}
			}
		})
	}
}

func TestSplitGamesPreservesTags(t *testing.T) {
	text := `[White "alice"]

1. e4 e5 1-0

[White "carol"]

1. d4 d5 0-1`
	games := SplitGames(text)
	if len(games) != 2 {
		t.Fatalf("got %d games, want 2", len(games))
	}
	first, err := Parse(games[0])
	if err != nil {
		t.Fatalf("Parse first: %v", err)
	}
	second, err := Parse(games[1])
	if err != nil {
		t.Fatalf("Parse second: %v", err)
	}
	if first.Tag("White") != "alice" || second.Tag("White") != "carol" {
		t.Errorf("tags = %q, %q; want alice, carol", first.Tag("White"), second.Tag("White"))
	}
}
