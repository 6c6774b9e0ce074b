package confidence

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/stat-prophet/internal/models"
)

func rate(v float64) *float64 { return &v }

// TestHitRateBands tests that exactly one band applies
func TestHitRateBands(t *testing.T) {
	s := NewSynthesizer(DefaultConfig())

	tests := []struct {
		name string
		rate *float64
		want float64
	}{
		{"no sample", nil, 50},
		{"strong", rate(80), 65},
		{"strong boundary", rate(70), 65},
		{"good", rate(60), 60},
		{"middle", rate(50), 50},
		{"weak boundary", rate(40), 40},
		{"poor boundary", rate(30), 35},
		{"poor", rate(0), 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Assess(Inputs{Direction: models.DirectionOver, Last10HitRate: tt.rate, Trend: models.TrendStable}).Score
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestTrendAlignment tests trend bonuses and penalties in both directions
func TestTrendAlignment(t *testing.T) {
	s := NewSynthesizer(DefaultConfig())

	tests := []struct {
		trend models.Trend
		dir   models.Direction
		want  float64
	}{
		{models.TrendHot, models.DirectionOver, 60},
		{models.TrendCold, models.DirectionUnder, 60},
		{models.TrendHot, models.DirectionUnder, 40},
		{models.TrendCold, models.DirectionOver, 40},
		{models.TrendStable, models.DirectionOver, 50},
	}

	for _, tt := range tests {
		t.Run(string(tt.trend)+"_"+string(tt.dir), func(t *testing.T) {
			assert.Equal(t, tt.want, s.Assess(Inputs{Direction: tt.dir, Trend: tt.trend}).Score)
		})
	}
}

// TestEdgeAndLean tests the edge and market lean adjustments
func TestEdgeAndLean(t *testing.T) {
	s := NewSynthesizer(DefaultConfig())

	assert.Equal(t, 60.0, s.Assess(Inputs{Direction: models.DirectionOver, Edge: 3}).Score)
	assert.Equal(t, 40.0, s.Assess(Inputs{Direction: models.DirectionOver, Edge: -3.5}).Score)
	assert.Equal(t, 60.0, s.Assess(Inputs{Direction: models.DirectionUnder, Edge: -4}).Score)
	assert.Equal(t, 50.0, s.Assess(Inputs{Direction: models.DirectionOver, Edge: 2.9}).Score)

	assert.Equal(t, 55.0, s.Assess(Inputs{Direction: models.DirectionOver, Lean: models.LeanOver}).Score)
	assert.Equal(t, 45.0, s.Assess(Inputs{Direction: models.DirectionOver, Lean: models.LeanUnder}).Score)
	assert.Equal(t, 50.0, s.Assess(Inputs{Direction: models.DirectionOver, Lean: models.LeanNeutral}).Score)
	assert.Equal(t, 50.0, s.Assess(Inputs{Direction: models.DirectionOver}).Score)
}

// TestAssessRecommendation tests the recommendation and conflict flag
func TestAssessRecommendation(t *testing.T) {
	s := NewSynthesizer(DefaultConfig())

	a := s.Assess(Inputs{Direction: models.DirectionOver, Last10HitRate: rate(70), Trend: models.TrendHot, Edge: 4, Lean: models.LeanOver})
	assert.Equal(t, 90.0, a.Score)
	assert.Equal(t, models.RecommendOver, a.Recommendation)
	assert.Equal(t, models.DirectionOver, a.EdgeDirection)
	assert.False(t, a.SignalConflict)
	assert.Len(t, a.Adjustments, 4)

	a = s.Assess(Inputs{Direction: models.DirectionUnder, Edge: 1.2})
	assert.Equal(t, models.RecommendUnder, a.Recommendation)
	assert.True(t, a.SignalConflict)

	a = s.Assess(Inputs{Direction: models.DirectionOver, Last10HitRate: rate(10), Trend: models.TrendCold, Edge: -5})
	assert.Equal(t, 15.0, a.Score)
	assert.Equal(t, models.RecommendNoBet, a.Recommendation)

	a = s.Assess(Inputs{Direction: models.DirectionOver})
	assert.Equal(t, models.Direction(""), a.EdgeDirection)
	assert.False(t, a.SignalConflict)
}

// TestNoBetOnConflict tests the optional conflict veto
func TestNoBetOnConflict(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NoBetOnConflict = true
	s := NewSynthesizer(cfg)

	a := s.Assess(Inputs{Direction: models.DirectionOver, Last10HitRate: rate(90), Edge: -0.5})
	assert.True(t, a.SignalConflict)
	assert.Equal(t, models.RecommendNoBet, a.Recommendation)
}

// TestScoreOrderIndependent tests that adjustments are additive
func TestScoreOrderIndependent(t *testing.T) {
	s := NewSynthesizer(DefaultConfig())
	in := Inputs{Direction: models.DirectionUnder, Last10HitRate: rate(65), Trend: models.TrendCold, Edge: -3, Lean: models.LeanOver}

	var sum float64
	for _, adj := range s.Assess(in).Adjustments {
		sum += adj.Delta
	}
	assert.Equal(t, 50+sum, s.Assess(in).Score)
	assert.Equal(t, 75.0, s.Assess(in).Score)
}

// TestScoreBounds tests the clip under adversarial inputs
func TestScoreBounds(t *testing.T) {
	s := NewSynthesizer(DefaultConfig())

	best := Inputs{Direction: models.DirectionOver, Last10HitRate: rate(100), Trend: models.TrendHot, Edge: 1e9, Lean: models.LeanOver}
	assert.Equal(t, 95.0, s.Assess(best).Score)

	worst := Inputs{Direction: models.DirectionOver, Last10HitRate: rate(0), Trend: models.TrendCold, Edge: -1e9, Lean: models.LeanUnder}
	assert.Equal(t, 10.0, s.Assess(worst).Score)

	nan := Inputs{Direction: models.DirectionUnder, Last10HitRate: rate(math.NaN()), Edge: math.NaN()}
	assert.Equal(t, 50.0, s.Assess(nan).Score)

	trends := []models.Trend{models.TrendHot, models.TrendCold, models.TrendStable}
	leans := []models.MarketLean{models.LeanOver, models.LeanUnder, models.LeanNeutral, ""}
	dirs := []models.Direction{models.DirectionOver, models.DirectionUnder}
	r := rand.New(rand.NewSource(11))

	for i := 0; i < 1000; i++ {
		in := Inputs{
			Direction: dirs[r.Intn(len(dirs))],
			Trend:     trends[r.Intn(len(trends))],
			Lean:      leans[r.Intn(len(leans))],
			Edge:      (r.Float64() - 0.5) * 100,
		}
		if r.Intn(4) > 0 {
			in.Last10HitRate = rate(float64(r.Intn(11) * 10))
		}
		score := s.Assess(in).Score
		require.GreaterOrEqual(t, score, 10.0)
		require.LessOrEqual(t, score, 95.0)
	}
}

func TestEdgeDirection(t *testing.T) {
	assert.Equal(t, models.DirectionOver, EdgeDirection(0.1))
	assert.Equal(t, models.DirectionUnder, EdgeDirection(-0.1))
	assert.Equal(t, models.Direction(""), EdgeDirection(0))
}
