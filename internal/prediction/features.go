// Package prediction builds feature vectors and turns them into an
// over-probability, either through an injected classifier or the built-in
// heuristic.
package prediction

import (
	"github.com/yourusername/stat-prophet/internal/models"
	"github.com/yourusername/stat-prophet/internal/stats"
)

// DefaultMinutes is assumed when no game reports minutes.
const DefaultMinutes = 30.0

// BuildFeatures assembles the feature vector from most-recent-first records.
// recentWindow bounds the games used for max, min, std-dev and minutes.
func BuildFeatures(records []models.GameRecord, sit models.Situational, recentWindow int) models.FeatureVector {
	var fv models.FeatureVector
	values := models.Values(records)
	if recentWindow <= 0 || recentWindow > len(records) {
		recentWindow = len(records)
	}
	recent := values[:recentWindow]

	season := stats.Mean(values)
	last5 := season
	last3 := season
	if len(values) > 0 {
		last5 = stats.AverageLastN(values, 5)
		last3 = stats.AverageLastN(values, 3)
	}

	fv[models.FeatSeasonAvg] = season
	fv[models.FeatLast5Avg] = last5
	fv[models.FeatLast3Avg] = last3
	fv[models.FeatMaxRecent] = season
	fv[models.FeatMinRecent] = season
	if len(recent) > 0 {
		fv[models.FeatMaxRecent] = stats.Max(recent)
		fv[models.FeatMinRecent] = stats.Min(recent)
	}
	if len(recent) > 1 {
		fv[models.FeatStdDev] = stats.StdDev(recent)
	}

	trend := TrendRatio(last5, season)
	fv[models.FeatTrend] = trend

	if sit.IsHome {
		fv[models.FeatHome] = 1
	}
	fv[models.FeatOppDefRating] = sit.OpponentDefRating
	fv[models.FeatRestDays] = float64(sit.RestDays)

	minutes := DefaultMinutes
	if recentWindow > 0 {
		var sum float64
		for _, r := range records[:recentWindow] {
			sum += r.Minutes
		}
		minutes = sum / float64(recentWindow)
	}
	fv[models.FeatMinutesAvg] = minutes
	fv[models.FeatUsage] = trend * minutes / 30

	return fv
}

// TrendRatio is (last5 - season) / max(season, 1), or 0 for a zero season.
func TrendRatio(last5, season float64) float64 {
	if season == 0 {
		return 0
	}
	denom := season
	if denom < 1 {
		denom = 1
	}
	return (last5 - season) / denom
}
