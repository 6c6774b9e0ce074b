package stats

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/stat-prophet/internal/models"
)

func records(values ...float64) []models.GameRecord {
	out := make([]models.GameRecord, len(values))
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		out[i] = models.GameRecord{Date: start.AddDate(0, 0, -i), Minutes: 30, Value: v}
	}
	return out
}

func randomValues(r *rand.Rand) []float64 {
	n := r.Intn(30) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(r.Intn(45))
	}
	return out
}

// TestFiveGameScenario tests the canonical five-game sequence
func TestFiveGameScenario(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	values := []float64{30, 25, 28, 22, 31}

	form := agg.RecentForm(records(values...))
	require.NotNil(t, form)
	assert.InDelta(t, 27.2, form.Last5Avg, 1e-9)
	assert.InDelta(t, 27.2, form.SeasonAvg, 1e-9)
	assert.Equal(t, models.TrendStable, form.Trend)
	assert.Equal(t, 31.0, form.MaxRecent)
	assert.Equal(t, 22.0, form.MinRecent)

	rates := agg.HitRates(values, 25.5, models.DirectionOver)
	require.NotNil(t, rates.Last5)
	assert.InDelta(t, 60.0, *rates.Last5, 1e-9)
	assert.Nil(t, rates.Last10)
	require.NotNil(t, rates.Season)
	assert.InDelta(t, 60.0, *rates.Season, 1e-9)

	assert.Greater(t, agg.Projection(values), Mean(values))
}

// TestHitRateStrictComparison tests that ties never count as hits
func TestHitRateStrictComparison(t *testing.T) {
	values := []float64{20, 20, 20, 20, 20}

	over := HitRate(values, 20, models.DirectionOver, 5)
	under := HitRate(values, 20, models.DirectionUnder, 5)
	require.NotNil(t, over)
	require.NotNil(t, under)
	assert.Equal(t, 0.0, *over)
	assert.Equal(t, 0.0, *under)

	assert.Nil(t, HitRate(values, 20, models.DirectionOver, 10))
	assert.Nil(t, HitRate(nil, 20, models.DirectionOver, 0))
}

// TestHitRateMonotonic tests that moving the line against the bet never raises the hit rate
func TestHitRateMonotonic(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		values := randomValues(r)
		n := len(values)
		line := float64(r.Intn(40)) + 0.5
		step := float64(r.Intn(5)+1) * 0.5

		overLow := *HitRate(values, line, models.DirectionOver, n)
		overHigh := *HitRate(values, line+step, models.DirectionOver, n)
		assert.LessOrEqual(t, overHigh, overLow)

		underHigh := *HitRate(values, line, models.DirectionUnder, n)
		underLow := *HitRate(values, line-step, models.DirectionUnder, n)
		assert.LessOrEqual(t, underLow, underHigh)
	}
}

// TestWeightedProjectionRecency tests that recent games carry more weight
func TestWeightedProjectionRecency(t *testing.T) {
	weights := DefaultConfig().RecencyWeights
	r := rand.New(rand.NewSource(11))

	for i := 0; i < 500; i++ {
		values := randomValues(r)
		if len(values) < 2 {
			continue
		}
		j := r.Intn(len(values)-1) + 1
		if values[j] <= values[0] {
			continue
		}
		swapped := append([]float64(nil), values...)
		swapped[0], swapped[j] = swapped[j], swapped[0]

		before := WeightedProjection(values, weights)
		after := WeightedProjection(swapped, weights)
		assert.GreaterOrEqual(t, after, before)
	}
}

// TestWeightedProjectionUniform tests degenerate weighting cases
func TestWeightedProjectionUniform(t *testing.T) {
	assert.Equal(t, 0.0, WeightedProjection(nil, DefaultConfig().RecencyWeights))
	assert.Equal(t, 17.0, WeightedProjection([]float64{17}, DefaultConfig().RecencyWeights))
	assert.InDelta(t, 20.0, WeightedProjection([]float64{10, 20, 30}, nil), 1e-9)
	assert.InDelta(t, 20.0, WeightedProjection([]float64{10, 20, 30}, []float64{0, 0, 0}), 1e-9)
}

// TestClassifyTrend tests HOT, COLD and STABLE boundaries
func TestClassifyTrend(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   models.Trend
	}{
		{"too short", []float64{40, 40, 40, 40, 40}, models.TrendStable},
		{"hot", []float64{30, 30, 30, 30, 30, 20, 20}, models.TrendHot},
		{"cold", []float64{10, 10, 10, 10, 10, 20, 20}, models.TrendCold},
		{"inside band", []float64{21, 21, 21, 21, 21, 20, 20}, models.TrendStable},
		{"exact upper edge", []float64{22, 22, 22, 22, 22, 20, 20}, models.TrendStable},
		{"zero history", []float64{1, 0, 0, 0, 0, 0}, models.TrendHot},
		{"all zero", []float64{0, 0, 0, 0, 0, 0}, models.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTrend(tt.values, 5, 0.10))
		})
	}
}

// TestRecentFormEmpty tests that no records yield no form
func TestRecentFormEmpty(t *testing.T) {
	agg := NewAggregator(Config{})
	assert.Nil(t, agg.RecentForm(nil))
	assert.Equal(t, DefaultConfig().TrendWindow, agg.Config().TrendWindow)
}

// TestRecentFormWindows tests averages with more games than the windows
func TestRecentFormWindows(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	values := []float64{10, 10, 10, 10, 10, 20, 20, 20, 20, 20, 50, 0}

	form := agg.RecentForm(records(values...))
	require.NotNil(t, form)
	assert.Equal(t, 12, form.Games)
	assert.InDelta(t, 10.0, form.Last5Avg, 1e-9)
	assert.InDelta(t, 15.0, form.Last10Avg, 1e-9)
	assert.InDelta(t, 200.0/12, form.SeasonAvg, 1e-9)
	assert.Equal(t, 20.0, form.MaxRecent, "max is bounded by the recent window")
	assert.Equal(t, 10.0, form.MinRecent)
	assert.InDelta(t, 5.0, form.StdDevRecent, 1e-9)
	assert.Equal(t, models.TrendCold, form.Trend)
}

// TestSeasonProfile tests per-statistic averages
func TestSeasonProfile(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	byStat := map[models.StatType][]models.GameRecord{
		models.StatPoints:   records(20, 25),
		models.StatRebounds: records(5, 6),
	}
	byStat[models.StatPoints][1].Minutes = 35

	profile := agg.SeasonProfile(byStat)
	require.NotNil(t, profile)
	assert.Equal(t, 2, profile.GamesPlayed)
	assert.Equal(t, 32.5, profile.MinutesPerGame)
	assert.Equal(t, 22.5, profile.Average(models.StatPoints))
	assert.Equal(t, 5.5, profile.Average(models.StatRebounds))
	assert.Equal(t, 0.0, profile.Average(models.StatBlocks))

	assert.Nil(t, agg.SeasonProfile(nil))
}
