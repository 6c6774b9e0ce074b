package models

import (
	"time"

	"github.com/google/uuid"
)

// FeatureCount is the length of a FeatureVector.
const FeatureCount = 12

// Feature indexes. The order is part of the classifier contract.
const (
	FeatSeasonAvg = iota
	FeatLast5Avg
	FeatLast3Avg
	FeatMaxRecent
	FeatMinRecent
	FeatStdDev
	FeatTrend
	FeatHome
	FeatOppDefRating
	FeatRestDays
	FeatMinutesAvg
	FeatUsage
)

// FeatureNames labels each FeatureVector slot.
var FeatureNames = [FeatureCount]string{
	"season_avg",
	"last5_avg",
	"last3_avg",
	"max_recent",
	"min_recent",
	"std_dev",
	"trend",
	"is_home",
	"opp_def_rating",
	"rest_days",
	"minutes_avg",
	"usage_proxy",
}

// FeatureVector is the fixed-order numeric input of the probability model.
type FeatureVector [FeatureCount]float64

// ProbabilitySource records which model produced the probability.
type ProbabilitySource string

// Probability sources
const (
	SourceHeuristic  ProbabilitySource = "heuristic"
	SourceClassifier ProbabilitySource = "classifier"
)

// VerdictCall is the model-side call made from the over probability alone.
type VerdictCall string

// Verdict calls
const (
	VerdictOver  VerdictCall = "over"
	VerdictUnder VerdictCall = "under"
	VerdictPush  VerdictCall = "push"
)

// VerdictStrength grades a verdict.
type VerdictStrength string

// Verdict strengths
const (
	StrengthHigh   VerdictStrength = "high"
	StrengthMedium VerdictStrength = "medium"
	StrengthLow    VerdictStrength = "low"
)

// Verdict pairs a call with its strength.
type Verdict struct {
	Call     VerdictCall     `json:"call"`
	Strength VerdictStrength `json:"strength"`
}

// Factors lists human-readable reasons for and against the over.
type Factors struct {
	Supporting []string `json:"supporting"`
	Opposing   []string `json:"opposing"`
}

// AnalysisResult is the single output of an analysis. Each request gets a
// fresh value.
type AnalysisResult struct {
	ID                uuid.UUID         `json:"id"`
	GeneratedAt       time.Time         `json:"generated_at"`
	PlayerName        string            `json:"player_name,omitempty"`
	StatType          StatType          `json:"stat_type"`
	Line              float64           `json:"line"`
	Direction         Direction         `json:"direction"`
	Situational       Situational       `json:"situational"`
	Projection        float64           `json:"projection"`
	Edge              float64           `json:"edge"`
	EdgeDirection     Direction         `json:"edge_direction,omitempty"`
	SignalConflict    bool              `json:"signal_conflict"`
	HitRates          HitRates          `json:"hit_rates"`
	Trend             Trend             `json:"trend"`
	OverProbability   float64           `json:"over_probability"`
	BetProbability    float64           `json:"bet_probability"`
	ProbabilitySource ProbabilitySource `json:"probability_source"`
	Verdict           Verdict           `json:"verdict"`
	ConfidenceScore   float64           `json:"confidence_score"`
	Recommendation    Recommendation    `json:"recommendation"`
	Factors           Factors           `json:"factors"`
	Features          *FeatureVector    `json:"features,omitempty"`
	Season            *SeasonProfile    `json:"season,omitempty"`
	RecentForm        *RecentForm       `json:"recent_form,omitempty"`
	RecentGames       []GameRecord      `json:"recent_games,omitempty"`
	Market            *MarketSummary    `json:"market,omitempty"`
	InsufficientData  *DataAbsent       `json:"insufficient_data,omitempty"`
}

// HasData reports whether the game log produced any qualifying records.
func (r *AnalysisResult) HasData() bool {
	return r.InsufficientData == nil
}
