// Package extract runs the full pipeline for one game: parse the PGN,
// replay the moves, run every motif detector, and collect the results
// into a GameFeatures value.
package extract

import (
	"fmt"

	"github.com/chessmine/chessmine/internal/motifs"
	"github.com/chessmine/chessmine/internal/pgn"
	"github.com/chessmine/chessmine/internal/replay"
)

// GameFeatures is everything mined from one game. Occurrences holds one
// chronological list per motif actually present; a motif with no
// occurrences has no key. The internal attack primitive never appears.
type GameFeatures struct {
	NumMoves    int
	Occurrences map[motifs.Motif][]motifs.Occurrence
}

// Motifs returns the motifs present, in registry order.
func (f *GameFeatures) Motifs() []motifs.Motif {
	var out []motifs.Motif
	for _, d := range motifs.Registry() {
		if _, ok := f.Occurrences[d.Motif]; ok {
			out = append(out, d.Motif)
		}
	}
	return out
}

// Has reports whether the motif occurred at least once.
func (f *GameFeatures) Has(m motifs.Motif) bool {
	_, ok := f.Occurrences[m]
	return ok
}

// All returns every occurrence across motifs, grouped by motif in
// registry order and chronological within each motif.
func (f *GameFeatures) All() []motifs.Occurrence {
	var out []motifs.Occurrence
	for _, m := range f.Motifs() {
		out = append(out, f.Occurrences[m]...)
	}
	return out
}

// Extractor runs the detector registry over replayed games. The zero
// value is not usable; construct with New.
type Extractor struct {
	detectors []motifs.Detector
}

func New() *Extractor {
	return &Extractor{detectors: motifs.Registry()}
}

// Extract parses and replays pgnText and mines it for motifs. Parse and
// replay errors are returned as-is; a game that cannot be replayed
// yields no features. Repeated calls on the same text yield identical
// results.
func (e *Extractor) Extract(pgnText string) (*GameFeatures, error) {
	game, err := pgn.Parse(pgnText)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return e.ExtractGame(game)
}

// ExtractGame mines an already-parsed game.
func (e *Extractor) ExtractGame(game *pgn.Game) (*GameFeatures, error) {
	positions, err := replay.Replay(game.Moves)
	if err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}
	return e.extractPositions(positions), nil
}

func (e *Extractor) extractPositions(positions []replay.Position) *GameFeatures {
	features := &GameFeatures{
		Occurrences: make(map[motifs.Motif][]motifs.Occurrence),
	}
	if len(positions) > 0 {
		last := positions[len(positions)-1]
		features.NumMoves = last.MoveNumber()
	}
	for _, d := range e.detectors {
		occurrences := d.Detect(positions)
		if len(occurrences) > 0 {
			features.Occurrences[d.Motif] = occurrences
		}
	}
	return features
}
