// Package motifs holds the tactical motif detectors. Each detector is a
// pure function over an ordered position sequence; the closed registry
// fixes which motifs exist and the order they run in.
package motifs

import (
	"github.com/chessmine/chessmine/internal/replay"
)

// Motif is a tactical pattern kind.
type Motif int

const (
	// Attack is the internal primitive feeding fork derivation. It is
	// never exposed in extraction results and has no external name.
	Attack Motif = iota
	Pin
	CrossPin
	Fork
	Skewer
	DiscoveredAttack
	DiscoveredCheck
	Check
	Checkmate
	Promotion
	PromotionWithCheck
	PromotionWithCheckmate
	BackRankMate
	SmotheredMate
	DoubleCheck
	Sacrifice
	Zugzwang
	Interference
	OverloadedPiece

	numMotifs
)

var motifNames = [numMotifs]string{
	Attack:                 "attack",
	Pin:                    "pin",
	CrossPin:               "cross_pin",
	Fork:                   "fork",
	Skewer:                 "skewer",
	DiscoveredAttack:       "discovered_attack",
	DiscoveredCheck:        "discovered_check",
	Check:                  "check",
	Checkmate:              "checkmate",
	Promotion:              "promotion",
	PromotionWithCheck:     "promotion_with_check",
	PromotionWithCheckmate: "promotion_with_checkmate",
	BackRankMate:           "back_rank_mate",
	SmotheredMate:          "smothered_mate",
	DoubleCheck:            "double_check",
	Sacrifice:              "sacrifice",
	Zugzwang:               "zugzwang",
	Interference:           "interference",
	OverloadedPiece:        "overloaded_piece",
}

func (m Motif) String() string {
	if m < 0 || m >= numMotifs {
		return "unknown"
	}
	return motifNames[m]
}

// FromName resolves an external motif token to its Motif. "attack" is an
// internal primitive and is not a valid external name.
func FromName(name string) (Motif, bool) {
	for m, n := range motifNames {
		if n == name && Motif(m) != Attack {
			return Motif(m), true
		}
	}
	return 0, false
}

// Names returns the external motif tokens in enum order, excluding the
// internal attack primitive.
func Names() []string {
	names := make([]string, 0, numMotifs-1)
	for m, n := range motifNames {
		if Motif(m) == Attack {
			continue
		}
		names = append(names, n)
	}
	return names
}

// PinType distinguishes pins against the king from pins against another
// higher-value piece.
type PinType string

const (
	PinNone     PinType = ""
	PinAbsolute PinType = "absolute"
	PinRelative PinType = "relative"
)

// Occurrence is one detected motif instance. The same shape carries the
// internal attack primitive rows (Motif == Attack), which only ever feed
// fork derivation.
type Occurrence struct {
	Motif        Motif
	Ply          int
	MoveNumber   int
	Side         string
	Description  string
	MovedPiece   string // piece + from + "->" + to, for discovered patterns
	Attacker     string // piece + square notation
	Target       string // piece + square notation
	IsDiscovered bool
	IsMate       bool
	PinType      PinType
}

// DetectFunc inspects a full position sequence and returns occurrences in
// chronological order. Detectors return nil for an empty sequence and
// never fire on the synthetic start position (empty LastMove).
type DetectFunc func(positions []replay.Position) []Occurrence

// Detector pairs a motif kind with its detect function.
type Detector struct {
	Motif  Motif
	Detect DetectFunc
}

// Registry returns the closed, ordered detector set. Every public Motif
// has exactly one entry; the attack primitive runs inside the fork
// detector and has none.
func Registry() []Detector {
	return []Detector{
		{Check, detectChecks},
		{Checkmate, detectCheckmates},
		{Promotion, detectPromotions},
		{PromotionWithCheck, detectPromotionsWithCheck},
		{PromotionWithCheckmate, detectPromotionsWithCheckmate},
		{DiscoveredAttack, detectDiscoveredAttacks},
		{DiscoveredCheck, detectDiscoveredChecks},
		{DoubleCheck, detectDoubleChecks},
		{Pin, detectPins},
		{CrossPin, detectCrossPins},
		{Fork, detectForks},
		{Skewer, detectSkewers},
		{BackRankMate, detectBackRankMates},
		{SmotheredMate, detectSmotheredMates},
		{Sacrifice, detectSacrifices},
		{Zugzwang, detectZugzwang},
		{Interference, detectInterference},
		{OverloadedPiece, detectOverloadedPieces},
	}
}
