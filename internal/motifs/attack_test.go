package motifs

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestDetectAttacksDirect(t *testing.T) {
	t.Run("queen target is always significant", func(t *testing.T) {
		// The rook lands on e2 and hits the queen on e8.
		positions := moved(
			"4q3/8/8/8/8/8/8/R3K3",
			"4q3/8/8/8/8/8/4R3/4K3",
			true, "Re2")
		got := DetectAttacks(positions)
		if len(got) != 1 {
			t.Fatalf("got %d attacks, want 1", len(got))
		}
		occ := got[0]
		if occ.Motif != Attack || occ.Attacker != "Re2" || occ.Target != "qe8" || occ.IsDiscovered {
			t.Errorf("unexpected attack: %+v", occ)
		}
	})

	t.Run("lone minor piece target is not significant", func(t *testing.T) {
		positions := moved(
			"4n3/8/8/8/8/8/8/R3K3",
			"4n3/8/8/8/8/8/4R3/4K3",
			true, "Re2")
		if got := DetectAttacks(positions); len(got) != 0 {
			t.Errorf("got %d attacks, want 0", len(got))
		}
	})

	t.Run("castling produces no direct rows", func(t *testing.T) {
		positions := moved(
			"4q3/8/8/8/8/8/8/4K2R",
			"4q3/8/8/8/8/8/8/5RK1",
			true, "O-O")
		for _, occ := range DetectAttacks(positions) {
			if !occ.IsDiscovered {
				t.Errorf("direct attack row after castling: %+v", occ)
			}
		}
	})
}

func TestDetectForks(t *testing.T) {
	// Nc4-d6+ forks the king on e8 and the rook on b7.
	positions := moved(
		"4k3/1r6/8/8/2N5/8/8/4K3",
		"4k3/1r6/3N4/8/8/8/8/4K3",
		true, "Nd6+")

	got := detectForks(positions)
	want := []Occurrence{
		{
			Motif:       Fork,
			Ply:         1,
			MoveNumber:  1,
			Side:        "white",
			Description: "Fork at move 1",
			MovedPiece:  "Nd6",
			Attacker:    "Nd6",
			Target:      "ke8",
		},
		{
			Motif:       Fork,
			Ply:         1,
			MoveNumber:  1,
			Side:        "white",
			Description: "Fork at move 1",
			MovedPiece:  "Nd6",
			Attacker:    "Nd6",
			Target:      "rb7",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("forks mismatch (-want +got):\n%s", diff)
	}
}

func TestDetectForksSingleTarget(t *testing.T) {
	// One significant target is an attack, never a fork.
	positions := moved(
		"4q3/8/8/8/8/8/8/R3K3",
		"4q3/8/8/8/8/8/4R3/4K3",
		true, "Re2")
	if got := detectForks(positions); len(got) != 0 {
		t.Errorf("got %d forks, want 0", len(got))
	}
}

func TestDeriveForks(t *testing.T) {
	attack := func(moveNumber int, side, attacker, target string, discovered bool) Occurrence {
		return Occurrence{
			Motif:        Attack,
			Ply:          moveNumber*2 - 1,
			MoveNumber:   moveNumber,
			Side:         side,
			Attacker:     attacker,
			Target:       target,
			IsDiscovered: discovered,
		}
	}

	tests := []struct {
		name    string
		attacks []Occurrence
		targets []string
	}{
		{
			name: "two distinct targets make a fork",
			attacks: []Occurrence{
				attack(5, "white", "Nd6", "ke8", false),
				attack(5, "white", "Nd6", "rb7", false),
			},
			targets: []string{"ke8", "rb7"},
		},
		{
			name: "duplicate target rows collapse",
			attacks: []Occurrence{
				attack(5, "white", "Nd6", "ke8", false),
				attack(5, "white", "Nd6", "ke8", false),
			},
			targets: nil,
		},
		{
			name: "discovered rows never join a fork group",
			attacks: []Occurrence{
				attack(5, "white", "Nd6", "ke8", false),
				attack(5, "white", "Nd6", "qd1", true),
			},
			targets: nil,
		},
		{
			name: "groups split by attacker",
			attacks: []Occurrence{
				attack(5, "white", "Nd6", "ke8", false),
				attack(5, "white", "Re2", "qe8", false),
			},
			targets: nil,
		},
		{
			name: "groups split by move number",
			attacks: []Occurrence{
				attack(5, "white", "Nd6", "ke8", false),
				attack(6, "white", "Nd6", "rb7", false),
			},
			targets: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			forks := DeriveForks(tt.attacks)
			var got []string
			for _, f := range forks {
				if f.Motif != Fork {
					t.Errorf("derived occurrence has motif %v, want Fork", f.Motif)
				}
				got = append(got, f.Target)
			}
			if diff := cmp.Diff(tt.targets, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("fork targets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeriveForksSiblingsShareGroup(t *testing.T) {
	positions := moved(
		"4k3/1r6/8/8/2N5/8/8/4K3",
		"4k3/1r6/3N4/8/8/8/8/4K3",
		true, "Nd6+")
	forks := detectForks(positions)
	if len(forks) < 2 {
		t.Fatalf("got %d forks, want at least 2", len(forks))
	}
	first := forks[0]
	for _, f := range forks[1:] {
		if f.MoveNumber != first.MoveNumber || f.Side != first.Side || f.Attacker != first.Attacker {
			t.Errorf("fork %+v does not share the group of %+v", f, first)
		}
	}
}
