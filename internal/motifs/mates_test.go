package motifs

import (
	"testing"

	"github.com/chessmine/chessmine/internal/replay"
)

func TestDetectBackRankMates(t *testing.T) {
	tests := []struct {
		name         string
		fen          string
		moverIsWhite bool
		lastMove     string
		count        int
		target       string
	}{
		{
			name:         "classic back rank mate",
			fen:          "4R1k1/5ppp/8/8/8/8/8/6K1",
			moverIsWhite: true,
			lastMove:     "Re8#",
			count:        1,
			target:       "kg8",
		},
		{
			name:         "white king mated on rank 1",
			fen:          "6k1/8/8/8/8/8/5PPP/4r1K1",
			moverIsWhite: false,
			lastMove:     "Re1#",
			count:        1,
			target:       "Kg1",
		},
		{
			name:         "king off the back rank",
			fen:          "4R3/5pkp/5p2/8/8/8/8/6K1",
			moverIsWhite: true,
			lastMove:     "Re8#",
			count:        0,
		},
		{
			name:         "escape squares open",
			fen:          "4R1k1/8/8/8/8/8/8/6K1",
			moverIsWhite: true,
			lastMove:     "Re8#",
			count:        0,
		},
		{
			name:         "check is not enough",
			fen:          "4R1k1/5ppp/8/8/8/8/8/6K1",
			moverIsWhite: true,
			lastMove:     "Re8+",
			count:        0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions := []replay.Position{position(1, tt.fen, tt.moverIsWhite, tt.lastMove)}
			got := detectBackRankMates(positions)
			if len(got) != tt.count {
				t.Fatalf("got %d occurrences, want %d", len(got), tt.count)
			}
			if tt.count == 0 {
				return
			}
			if got[0].Target != tt.target || !got[0].IsMate {
				t.Errorf("Target = %q IsMate = %v, want %q true", got[0].Target, got[0].IsMate, tt.target)
			}
		})
	}
}

func TestDetectSmotheredMates(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		lastMove string
		count    int
	}{
		{
			name:     "knight mates the cornered king",
			fen:      "6rk/5Npp/8/8/8/8/8/6K1",
			lastMove: "Nf7#",
			count:    1,
		},
		{
			name:     "escape square open",
			fen:      "7k/5Npp/8/8/8/8/8/6K1",
			lastMove: "Nf7#",
			count:    0,
		},
		{
			name:     "rook mate is not smothered",
			fen:      "4R1k1/5ppp/8/8/8/8/8/6K1",
			lastMove: "Re8#",
			count:    0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions := []replay.Position{position(1, tt.fen, true, tt.lastMove)}
			got := detectSmotheredMates(positions)
			if len(got) != tt.count {
				t.Fatalf("got %d occurrences, want %d", len(got), tt.count)
			}
			if tt.count == 1 {
				occ := got[0]
				if occ.Attacker != "Nf7" || occ.Target != "kh8" {
					t.Errorf("attacker/target = %q/%q, want Nf7/kh8", occ.Attacker, occ.Target)
				}
			}
		})
	}
}
