package models

import (
	"strings"
)

// StatType identifies a per-game statistic that a prop can be written on.
type StatType string

// Supported statistic types
const (
	StatPoints   StatType = "points"
	StatRebounds StatType = "rebounds"
	StatAssists  StatType = "assists"
	StatSteals   StatType = "steals"
	StatBlocks   StatType = "blocks"
	StatThrees   StatType = "threes"
	StatPRA      StatType = "pra"
)

// StatTypes lists every supported statistic in display order.
var StatTypes = []StatType{
	StatPoints,
	StatRebounds,
	StatAssists,
	StatSteals,
	StatBlocks,
	StatThrees,
	StatPRA,
}

// ComponentStats lists the statistics a provider reports directly.
// PRA is derived from points, rebounds and assists.
var ComponentStats = []StatType{
	StatPoints,
	StatRebounds,
	StatAssists,
	StatSteals,
	StatBlocks,
	StatThrees,
}

var statAliases = map[string]StatType{
	"points":                  StatPoints,
	"pts":                     StatPoints,
	"rebounds":                StatRebounds,
	"reb":                     StatRebounds,
	"assists":                 StatAssists,
	"ast":                     StatAssists,
	"steals":                  StatSteals,
	"stl":                     StatSteals,
	"blocks":                  StatBlocks,
	"blk":                     StatBlocks,
	"threes":                  StatThrees,
	"3pm":                     StatThrees,
	"three-pointers":          StatThrees,
	"pra":                     StatPRA,
	"pts+reb+ast":             StatPRA,
	"points+rebounds+assists": StatPRA,
}

// ParseStatType resolves a statistic name or one of its common aliases.
func ParseStatType(name string) (StatType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if st, ok := statAliases[key]; ok {
		return st, nil
	}
	return "", &MalformedInputError{Field: "stat_type", Reason: "unknown statistic " + quote(name)}
}

// Label returns a human-readable name.
func (s StatType) Label() string {
	switch s {
	case StatPRA:
		return "Pts+Reb+Ast"
	case StatThrees:
		return "3-Pointers"
	case "":
		return ""
	default:
		return strings.ToUpper(string(s[:1])) + string(s[1:])
	}
}

// Direction is the side of a prop wager.
type Direction string

// Wager directions
const (
	DirectionOver  Direction = "OVER"
	DirectionUnder Direction = "UNDER"
)

// ParseDirection accepts "over"/"under" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "OVER", "O":
		return DirectionOver, nil
	case "UNDER", "U":
		return DirectionUnder, nil
	default:
		return "", &MalformedInputError{Field: "direction", Reason: "expected OVER or UNDER, got " + quote(s)}
	}
}

// Trend classifies the most recent games against the earlier ones.
type Trend string

// Trend values
const (
	TrendHot    Trend = "HOT"
	TrendCold   Trend = "COLD"
	TrendStable Trend = "STABLE"
)

// MarketLean is the side the books' pricing favors.
type MarketLean string

// Market lean values
const (
	LeanOver    MarketLean = "OVER"
	LeanUnder   MarketLean = "UNDER"
	LeanNeutral MarketLean = "NEUTRAL"
)

// Recommendation is the engine's final call on a wager.
type Recommendation string

// Recommendation values
const (
	RecommendOver  Recommendation = "OVER"
	RecommendUnder Recommendation = "UNDER"
	RecommendNoBet Recommendation = "NO_BET"
)

// RecommendationFor maps a direction onto its recommendation.
func RecommendationFor(d Direction) Recommendation {
	if d == DirectionUnder {
		return RecommendUnder
	}
	return RecommendOver
}

func quote(s string) string {
	return "'" + s + "'"
}
