// Package stats derives averages, hit rates, projections and trend labels
// from a player's most-recent-first game records.
package stats

import (
	"math"

	"github.com/yourusername/stat-prophet/internal/models"
)

// Config holds the aggregation constants.
type Config struct {
	// RecencyWeights apply to the most recent games in order; games beyond
	// the list use weight 1.0.
	RecencyWeights []float64
	// TrendWindow is how many recent games are compared with the rest.
	TrendWindow int
	// TrendThreshold is the relative band around the earlier mean that
	// counts as STABLE.
	TrendThreshold float64
	// RecentWindow bounds max, min and std-dev of recent form.
	RecentWindow int
}

// DefaultConfig returns the standard aggregation constants.
func DefaultConfig() Config {
	return Config{
		RecencyWeights: []float64{1.5, 1.4, 1.3, 1.2, 1.1},
		TrendWindow:    5,
		TrendThreshold: 0.10,
		RecentWindow:   10,
	}
}

// Aggregator computes recent form with a fixed configuration. It holds no
// mutable state.
type Aggregator struct {
	cfg Config
}

// NewAggregator creates an aggregator, filling zero fields from DefaultConfig.
func NewAggregator(cfg Config) *Aggregator {
	def := DefaultConfig()
	if cfg.RecencyWeights == nil {
		cfg.RecencyWeights = def.RecencyWeights
	}
	if cfg.TrendWindow <= 0 {
		cfg.TrendWindow = def.TrendWindow
	}
	if cfg.TrendThreshold <= 0 {
		cfg.TrendThreshold = def.TrendThreshold
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = def.RecentWindow
	}
	return &Aggregator{cfg: cfg}
}

// Config returns the effective configuration.
func (a *Aggregator) Config() Config {
	return a.cfg
}

// RecentForm summarizes records. It returns nil when there are none.
func (a *Aggregator) RecentForm(records []models.GameRecord) *models.RecentForm {
	if len(records) == 0 {
		return nil
	}
	values := models.Values(records)
	recent := head(values, a.cfg.RecentWindow)

	return &models.RecentForm{
		Games:        len(values),
		SeasonAvg:    Mean(values),
		Last5Avg:     AverageLastN(values, 5),
		Last10Avg:    AverageLastN(values, 10),
		MaxRecent:    Max(recent),
		MinRecent:    Min(recent),
		StdDevRecent: StdDev(recent),
		Trend:        ClassifyTrend(values, a.cfg.TrendWindow, a.cfg.TrendThreshold),
	}
}

// Projection returns the recency-weighted mean of the values.
func (a *Aggregator) Projection(values []float64) float64 {
	return WeightedProjection(values, a.cfg.RecencyWeights)
}

// HitRates returns hit rates over the last 5, last 10 and all games.
func (a *Aggregator) HitRates(values []float64, line float64, dir models.Direction) models.HitRates {
	rates := models.HitRates{
		Last5:  HitRate(values, line, dir, 5),
		Last10: HitRate(values, line, dir, 10),
	}
	if len(values) > 0 {
		rates.Season = HitRate(values, line, dir, len(values))
	}
	return rates
}

// SeasonProfile computes per-statistic averages from records grouped by
// statistic. Games played and minutes come from the points records.
func (a *Aggregator) SeasonProfile(byStat map[models.StatType][]models.GameRecord) *models.SeasonProfile {
	base := byStat[models.StatPoints]
	if len(base) == 0 {
		return nil
	}

	profile := &models.SeasonProfile{
		GamesPlayed: len(base),
		Averages:    make(map[models.StatType]float64, len(models.StatTypes)),
	}
	var minutes float64
	for _, r := range base {
		minutes += r.Minutes
	}
	profile.MinutesPerGame = round1(minutes / float64(len(base)))

	for _, stat := range models.StatTypes {
		records := byStat[stat]
		if len(records) == 0 {
			continue
		}
		profile.Averages[stat] = round1(Mean(models.Values(records)))
	}
	return profile
}

// Mean returns the arithmetic mean, 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// AverageLastN averages the first n values, or all when fewer exist.
func AverageLastN(values []float64, n int) float64 {
	return Mean(head(values, n))
}

// HitRate returns the percentage of the first n values strictly beyond the
// line in the given direction. Ties never count. It returns nil when fewer
// than n values exist or n is not positive.
func HitRate(values []float64, line float64, dir models.Direction, n int) *float64 {
	if n <= 0 || len(values) < n {
		return nil
	}
	hits := 0
	for _, v := range values[:n] {
		if dir == models.DirectionUnder {
			if v < line {
				hits++
			}
		} else if v > line {
			hits++
		}
	}
	rate := float64(hits) / float64(n) * 100
	return &rate
}

// WeightedProjection weights the i-th most recent value by weights[i],
// or 1.0 past the end of weights.
func WeightedProjection(values []float64, weights []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum, total float64
	for i, v := range values {
		w := 1.0
		if i < len(weights) {
			w = weights[i]
		}
		sum += v * w
		total += w
	}
	if total == 0 {
		return Mean(values)
	}
	return sum / total
}

// ClassifyTrend compares the mean of the first window values with the mean
// of the rest. Sequences no longer than window are STABLE.
func ClassifyTrend(values []float64, window int, threshold float64) models.Trend {
	if window <= 0 || len(values) <= window {
		return models.TrendStable
	}
	recent := Mean(values[:window])
	earlier := Mean(values[window:])

	switch {
	case recent > earlier*(1+threshold):
		return models.TrendHot
	case recent < earlier*(1-threshold):
		return models.TrendCold
	default:
		return models.TrendStable
	}
}

// StdDev returns the population standard deviation.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// Max returns the largest value, 0 for none.
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}

// Min returns the smallest value, 0 for none.
func Min(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		m = math.Min(m, v)
	}
	return m
}

func head(values []float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	if len(values) < n {
		return values
	}
	return values[:n]
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
