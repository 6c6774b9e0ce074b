package models

import (
	"encoding/json"
	"time"
)

// GameRecord is one qualifying game for a single statistic. Records are
// produced by the normalizer and never modified afterwards.
type GameRecord struct {
	Date     time.Time `json:"date"`
	Opponent string    `json:"opponent,omitempty"`
	Minutes  float64   `json:"minutes"`
	Value    float64   `json:"value"`
}

// Values extracts the statistic values, preserving order.
func Values(records []GameRecord) []float64 {
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = r.Value
	}
	return out
}

// SeasonProfile holds per-statistic averages over every qualifying game.
type SeasonProfile struct {
	GamesPlayed    int                  `json:"games_played"`
	MinutesPerGame float64              `json:"minutes_per_game"`
	Averages       map[StatType]float64 `json:"averages"`
}

// Average returns the season average for a statistic, 0 when unknown.
func (p *SeasonProfile) Average(stat StatType) float64 {
	if p == nil || p.Averages == nil {
		return 0
	}
	return p.Averages[stat]
}

// RecentForm summarizes the most recent games for one statistic.
type RecentForm struct {
	Games        int     `json:"games"`
	SeasonAvg    float64 `json:"season_avg"`
	Last5Avg     float64 `json:"last5_avg"`
	Last10Avg    float64 `json:"last10_avg"`
	MaxRecent    float64 `json:"max_recent"`
	MinRecent    float64 `json:"min_recent"`
	StdDevRecent float64 `json:"std_dev_recent"`
	Trend        Trend   `json:"trend"`
}

// HitRates holds the share of games, in percent, that beat the line in the
// requested direction. A nil entry means fewer games than the horizon.
type HitRates struct {
	Last5  *float64 `json:"last5"`
	Last10 *float64 `json:"last10"`
	Season *float64 `json:"season"`
}

// UnknownRestDays marks rest days the caller did not supply. The engine
// replaces it, and any other negative value, with its configured default.
const UnknownRestDays = -1

// Situational carries the contextual factors of the upcoming game. A zero
// OpponentDefRating means unknown. RestDays 0 is a back-to-back game, so
// unknown rest must be UnknownRestDays.
type Situational struct {
	Opponent          string  `json:"opponent,omitempty"`
	IsHome            bool    `json:"is_home"`
	OpponentDefRating float64 `json:"opponent_def_rating"`
	RestDays          int     `json:"rest_days"`
}

// UnmarshalJSON decodes a missing or null rest_days as UnknownRestDays
// rather than a back-to-back.
func (s *Situational) UnmarshalJSON(data []byte) error {
	type plain Situational
	decoded := plain{RestDays: UnknownRestDays}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*s = Situational(decoded)
	return nil
}

// DefaultSituational mirrors the values used when the caller knows nothing
// about the matchup.
func DefaultSituational() Situational {
	return Situational{OpponentDefRating: 110, RestDays: 1}
}
