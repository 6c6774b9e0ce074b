// Package confidence folds hit rates, trend, edge and market lean into a
// bounded confidence score and a final recommendation.
package confidence

import (
	"math"

	"github.com/yourusername/stat-prophet/internal/models"
)

// Config holds the scoring constants. Hit-rate thresholds are percentages.
type Config struct {
	Start   float64
	Floor   float64
	Ceiling float64

	HitRateStrong      float64
	HitRateStrongBonus float64
	HitRateGood        float64
	HitRateGoodBonus   float64
	HitRatePoor        float64
	HitRatePoorPenalty float64
	HitRateWeak        float64
	HitRateWeakPenalty float64

	TrendAdjustment float64
	EdgeThreshold   float64
	EdgeAdjustment  float64
	LeanAdjustment  float64

	// MinBet is the lowest score that still recommends the requested side.
	MinBet          float64
	NoBetOnConflict bool
}

// DefaultConfig returns the standard scoring constants.
func DefaultConfig() Config {
	return Config{
		Start:              50,
		Floor:              10,
		Ceiling:            95,
		HitRateStrong:      70,
		HitRateStrongBonus: 15,
		HitRateGood:        60,
		HitRateGoodBonus:   10,
		HitRatePoor:        30,
		HitRatePoorPenalty: 15,
		HitRateWeak:        40,
		HitRateWeakPenalty: 10,
		TrendAdjustment:    10,
		EdgeThreshold:      3,
		EdgeAdjustment:     10,
		LeanAdjustment:     5,
		MinBet:             40,
	}
}

// Inputs are the signals the score is built from.
type Inputs struct {
	Direction     models.Direction
	Last10HitRate *float64
	Trend         models.Trend
	Edge          float64
	Lean          models.MarketLean
}

// Adjustment is one named contribution to the score.
type Adjustment struct {
	Signal string  `json:"signal"`
	Delta  float64 `json:"delta"`
}

// Assessment is the synthesized outcome for one wager.
type Assessment struct {
	Score          float64
	Adjustments    []Adjustment
	Recommendation models.Recommendation
	EdgeDirection  models.Direction
	SignalConflict bool
}

// Synthesizer scores wagers. It is stateless and safe for concurrent use.
type Synthesizer struct {
	cfg Config
}

// NewSynthesizer creates a synthesizer.
func NewSynthesizer(cfg Config) *Synthesizer {
	return &Synthesizer{cfg: cfg}
}

// Assess scores the inputs and derives the recommendation.
func (s *Synthesizer) Assess(in Inputs) Assessment {
	adjustments := s.adjustments(in)

	raw := s.cfg.Start
	for _, a := range adjustments {
		raw += a.Delta
	}
	score := clip(raw, s.cfg.Floor, s.cfg.Ceiling)

	edgeDir := EdgeDirection(in.Edge)
	conflict := edgeDir != "" && edgeDir != in.Direction

	rec := models.RecommendationFor(in.Direction)
	if score < s.cfg.MinBet || (conflict && s.cfg.NoBetOnConflict) {
		rec = models.RecommendNoBet
	}

	return Assessment{
		Score:          score,
		Adjustments:    adjustments,
		Recommendation: rec,
		EdgeDirection:  edgeDir,
		SignalConflict: conflict,
	}
}

func (s *Synthesizer) adjustments(in Inputs) []Adjustment {
	var out []Adjustment

	if d, ok := s.hitRateDelta(in.Last10HitRate); ok {
		out = append(out, Adjustment{Signal: "last10_hit_rate", Delta: d})
	}

	switch {
	case in.Trend == models.TrendHot && in.Direction == models.DirectionOver,
		in.Trend == models.TrendCold && in.Direction == models.DirectionUnder:
		out = append(out, Adjustment{Signal: "trend", Delta: s.cfg.TrendAdjustment})
	case in.Trend == models.TrendHot && in.Direction == models.DirectionUnder,
		in.Trend == models.TrendCold && in.Direction == models.DirectionOver:
		out = append(out, Adjustment{Signal: "trend", Delta: -s.cfg.TrendAdjustment})
	}

	if math.Abs(in.Edge) >= s.cfg.EdgeThreshold {
		if EdgeDirection(in.Edge) == in.Direction {
			out = append(out, Adjustment{Signal: "edge", Delta: s.cfg.EdgeAdjustment})
		} else {
			out = append(out, Adjustment{Signal: "edge", Delta: -s.cfg.EdgeAdjustment})
		}
	}

	switch in.Lean {
	case models.LeanOver, models.LeanUnder:
		if string(in.Lean) == string(in.Direction) {
			out = append(out, Adjustment{Signal: "market_lean", Delta: s.cfg.LeanAdjustment})
		} else {
			out = append(out, Adjustment{Signal: "market_lean", Delta: -s.cfg.LeanAdjustment})
		}
	}

	return out
}

// hitRateDelta applies the single matching band. Bands are checked from the
// extremes inward so they stay mutually exclusive.
func (s *Synthesizer) hitRateDelta(rate *float64) (float64, bool) {
	if rate == nil || math.IsNaN(*rate) {
		return 0, false
	}
	switch r := *rate; {
	case r >= s.cfg.HitRateStrong:
		return s.cfg.HitRateStrongBonus, true
	case r >= s.cfg.HitRateGood:
		return s.cfg.HitRateGoodBonus, true
	case r <= s.cfg.HitRatePoor:
		return -s.cfg.HitRatePoorPenalty, true
	case r <= s.cfg.HitRateWeak:
		return -s.cfg.HitRateWeakPenalty, true
	}
	return 0, false
}

// EdgeDirection is the side the projection favors, or "" for no edge.
func EdgeDirection(edge float64) models.Direction {
	switch {
	case edge > 0:
		return models.DirectionOver
	case edge < 0:
		return models.DirectionUnder
	default:
		return ""
	}
}

func clip(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
