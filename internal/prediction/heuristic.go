package prediction

import (
	"math"

	"github.com/yourusername/stat-prophet/internal/models"
)

// HeuristicConfig holds the closed-form model constants.
type HeuristicConfig struct {
	SeasonWeight float64
	Last5Weight  float64
	Last3Weight  float64
	// FallbackScale multiplies the blended average when std-dev is zero.
	FallbackScale float64
	Steepness     float64

	TrendBand       float64
	TrendAdjustment float64
	HomeAdjustment  float64

	RestedDays        int
	RestedAdjustment  float64
	BackToBackPenalty float64

	WeakDefenseRating   float64
	StrongDefenseRating float64
	DefenseAdjustment   float64

	ConsistencyRatio      float64
	ConsistencyAdjustment float64

	Floor   float64
	Ceiling float64
}

// DefaultHeuristicConfig returns the standard heuristic constants.
func DefaultHeuristicConfig() HeuristicConfig {
	return HeuristicConfig{
		SeasonWeight:          0.3,
		Last5Weight:           0.4,
		Last3Weight:           0.3,
		FallbackScale:         0.15,
		Steepness:             1.5,
		TrendBand:             0.1,
		TrendAdjustment:       5,
		HomeAdjustment:        3,
		RestedDays:            2,
		RestedAdjustment:      2,
		BackToBackPenalty:     3,
		WeakDefenseRating:     115,
		StrongDefenseRating:   105,
		DefenseAdjustment:     4,
		ConsistencyRatio:      0.1,
		ConsistencyAdjustment: 3,
		Floor:                 5,
		Ceiling:               95,
	}
}

// Heuristic computes an over-probability from a feature vector without any
// trained parameters.
type Heuristic struct {
	cfg HeuristicConfig
}

// NewHeuristic creates the heuristic model.
func NewHeuristic(cfg HeuristicConfig) *Heuristic {
	return &Heuristic{cfg: cfg}
}

// Blend returns the weighted average of season, last-5 and last-3 averages.
func (h *Heuristic) Blend(fv models.FeatureVector) float64 {
	return fv[models.FeatSeasonAvg]*h.cfg.SeasonWeight +
		fv[models.FeatLast5Avg]*h.cfg.Last5Weight +
		fv[models.FeatLast3Avg]*h.cfg.Last3Weight
}

// BaseProbability maps the line's distance from the blend onto (0,100).
func (h *Heuristic) BaseProbability(line float64, fv models.FeatureVector) float64 {
	blend := h.Blend(fv)
	scale := fv[models.FeatStdDev]
	if scale <= 0 || math.IsNaN(scale) {
		scale = math.Max(blend*h.cfg.FallbackScale, 1)
	}
	z := (line - blend) / scale
	return 100 / (1 + math.Exp(z*h.cfg.Steepness))
}

// Adjustment sums the situational adjustments for a base probability.
func (h *Heuristic) Adjustment(base float64, fv models.FeatureVector) float64 {
	var adj float64

	switch trend := fv[models.FeatTrend]; {
	case trend > h.cfg.TrendBand:
		adj += h.cfg.TrendAdjustment
	case trend < -h.cfg.TrendBand:
		adj -= h.cfg.TrendAdjustment
	}

	if fv[models.FeatHome] != 0 {
		adj += h.cfg.HomeAdjustment
	}

	switch rest := fv[models.FeatRestDays]; {
	case rest >= float64(h.cfg.RestedDays):
		adj += h.cfg.RestedAdjustment
	case rest == 0:
		adj -= h.cfg.BackToBackPenalty
	}

	switch def := fv[models.FeatOppDefRating]; {
	case def > h.cfg.WeakDefenseRating:
		adj += h.cfg.DefenseAdjustment
	case def < h.cfg.StrongDefenseRating:
		adj -= h.cfg.DefenseAdjustment
	}

	// Low-variance form pushes further in the direction already leaned.
	if fv[models.FeatStdDev] < h.Blend(fv)*h.cfg.ConsistencyRatio {
		if base > 50 {
			adj += h.cfg.ConsistencyAdjustment
		} else {
			adj -= h.cfg.ConsistencyAdjustment
		}
	}

	return adj
}

// OverProbability returns the clipped over-probability in percent.
func (h *Heuristic) OverProbability(line float64, fv models.FeatureVector) float64 {
	base := h.BaseProbability(line, fv)
	return clip(base+h.Adjustment(base, fv), h.cfg.Floor, h.cfg.Ceiling)
}

func clip(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return (lo + hi) / 2
	}
	return math.Max(lo, math.Min(hi, v))
}
