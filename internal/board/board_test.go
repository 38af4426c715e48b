package board

import "testing"

func TestSquareName(t *testing.T) {
	tests := []struct {
		name     string
		row, col int
		want     string
	}{
		{"a8 corner", 0, 0, "a8"},
		{"h1 corner", 7, 7, "h1"},
		{"e1", 7, 4, "e1"},
		{"d5", 3, 3, "d5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SquareName(tt.row, tt.col); got != tt.want {
				t.Errorf("SquareName(%d, %d) = %q, want %q", tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestPieceNotation(t *testing.T) {
	tests := []struct {
		name     string
		piece    int8
		row, col int
		want     string
	}{
		{"white queen", Queen, 7, 4, "Qe1"},
		{"black king", -King, 0, 4, "ke8"},
		{"white pawn", Pawn, 4, 4, "Pe4"},
		{"black knight", -Knight, 2, 5, "nf6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PieceNotation(tt.piece, tt.row, tt.col); got != tt.want {
				t.Errorf("PieceNotation(%d, %d, %d) = %q, want %q", tt.piece, tt.row, tt.col, got, tt.want)
			}
		})
	}
}

func TestPieceAttacks(t *testing.T) {
	tests := []struct {
		name             string
		fen              string
		fromRow, fromCol int
		toRow, toCol     int
		want             bool
	}{
		{"white pawn attacks diagonally", "8/8/8/8/4P3/8/8/8", 4, 4, 3, 3, true},
		{"white pawn does not attack forward", "8/8/8/8/4P3/8/8/8", 4, 4, 3, 4, false},
		{"black pawn attacks toward rank 1", "8/8/8/4p3/8/8/8/8", 3, 4, 4, 3, true},
		{"knight L-shape", "8/8/8/8/8/8/8/6N1", 7, 6, 5, 5, true},
		{"knight straight line", "8/8/8/8/8/8/8/6N1", 7, 6, 5, 6, false},
		{"rook along open rank", "8/8/8/8/R2p4/8/8/8", 4, 0, 4, 3, true},
		{"rook blocked by piece", "8/8/8/8/R2p4/8/8/8", 4, 0, 4, 4, false},
		{"bishop long diagonal", "8/8/8/8/8/8/8/B7", 7, 0, 0, 7, true},
		{"bishop off diagonal", "8/8/8/8/8/8/8/B7", 7, 0, 0, 6, false},
		{"queen as rook", "8/8/8/8/8/8/8/Q7", 7, 0, 0, 0, true},
		{"king adjacent", "8/8/8/8/8/8/8/4K3", 7, 4, 6, 4, true},
		{"king two squares away", "8/8/8/8/8/8/8/4K3", 7, 4, 5, 4, false},
		{"empty source square", "8/8/8/8/8/8/8/8", 4, 4, 3, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustParsePlacement(tt.fen)
			got := b.PieceAttacks(tt.fromRow, tt.fromCol, tt.toRow, tt.toCol)
			if got != tt.want {
				t.Errorf("PieceAttacks(%s -> %s) = %v, want %v",
					SquareName(tt.fromRow, tt.fromCol), SquareName(tt.toRow, tt.toCol), got, tt.want)
			}
		})
	}
}

func TestCountAttackers(t *testing.T) {
	// White rook on e1 and bishop on h2 both hit the black rook on e5.
	b := MustParsePlacement("8/8/8/4r3/8/8/7B/4R3")
	if got := b.CountAttackers(3, 4, true); got != 2 {
		t.Errorf("CountAttackers(e5, white) = %d, want 2", got)
	}
	if got := b.CountAttackers(3, 4, false); got != 0 {
		t.Errorf("CountAttackers(e5, black) = %d, want 0", got)
	}
}

func TestCountAttackersSkipsTargetSquare(t *testing.T) {
	// The piece standing on the target square is never its own attacker.
	b := MustParsePlacement("8/8/8/4R3/8/8/8/8")
	if got := b.CountAttackers(3, 4, true); got != 0 {
		t.Errorf("CountAttackers = %d, want 0", got)
	}
}

func TestFindKing(t *testing.T) {
	b := Initial()
	if r, c := b.FindKing(true); r != 7 || c != 4 {
		t.Errorf("white king at (%d, %d), want (7, 4)", r, c)
	}
	if r, c := b.FindKing(false); r != 0 || c != 4 {
		t.Errorf("black king at (%d, %d), want (0, 4)", r, c)
	}

	empty := MustParsePlacement("8/8/8/8/8/8/8/8")
	if r, c := empty.FindKing(true); r != -1 || c != -1 {
		t.Errorf("missing king at (%d, %d), want (-1, -1)", r, c)
	}
}

func TestFindCheckingPiece(t *testing.T) {
	// White queen on e1 checks the black king along the open e-file.
	b := MustParsePlacement("4k3/8/8/8/8/8/8/4QK2")
	r, c, ok := b.FindCheckingPiece(true)
	if !ok {
		t.Fatal("expected a checking piece")
	}
	if got := PieceNotation(b[r][c], r, c); got != "Qe1" {
		t.Errorf("checking piece = %q, want %q", got, "Qe1")
	}

	if _, _, ok := b.FindCheckingPiece(false); ok {
		t.Error("black does not give check here")
	}
}

func TestParsePromotionDestination(t *testing.T) {
	tests := []struct {
		name     string
		move     string
		row, col int
	}{
		{"push promotion", "e8=Q+", 0, 4},
		{"capture promotion", "axb8=N#", 0, 1},
		{"underpromotion to rank 1", "d1=R", 7, 3},
		{"not a promotion", "e4", -1, -1},
		{"equals sign too early", "=Q", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, c := ParsePromotionDestination(tt.move)
			if r != tt.row || c != tt.col {
				t.Errorf("ParsePromotionDestination(%q) = (%d, %d), want (%d, %d)",
					tt.move, r, c, tt.row, tt.col)
			}
		})
	}
}

func TestPlacementRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"initial position", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR"},
		{"sparse endgame", "8/5k2/8/8/3P4/8/2K5/8"},
		{"empty board", "8/8/8/8/8/8/8/8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParsePlacement(tt.fen)
			if err != nil {
				t.Fatalf("ParsePlacement: %v", err)
			}
			if got := b.Placement(); got != tt.fen {
				t.Errorf("Placement() = %q, want %q", got, tt.fen)
			}
		})
	}
}

func TestParsePlacementFullFEN(t *testing.T) {
	b, err := ParsePlacement("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		t.Fatalf("ParsePlacement: %v", err)
	}
	if b != Initial() {
		t.Error("full FEN should parse to the initial position")
	}
}

func TestParsePlacementErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"too few ranks", "8/8/8"},
		{"bad piece letter", "8/8/8/8/8/8/8/7X"},
		{"rank too long", "9/8/8/8/8/8/8/8"},
		{"rank too short", "7/8/8/8/8/8/8/8"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePlacement(tt.fen); err == nil {
				t.Errorf("ParsePlacement(%q) succeeded, want error", tt.fen)
			}
		})
	}
}
