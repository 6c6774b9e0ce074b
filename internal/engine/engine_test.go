package engine

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/stat-prophet/internal/datasource"
	"github.com/yourusername/stat-prophet/internal/ml"
	"github.com/yourusername/stat-prophet/internal/models"
	"github.com/yourusername/stat-prophet/internal/prediction"
)

func strPtr(s string) *string { return &s }

func f64(v float64) *float64 { return &v }

// gameLog builds most-recent-first entries that all played 35 minutes.
func gameLog(points ...float64) []datasource.GameEntry {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]datasource.GameEntry, len(points))
	for i, p := range points {
		entries[i] = datasource.GameEntry{
			Date:     base.AddDate(0, 0, -i),
			Opponent: "BOS",
			Minutes:  strPtr("35:00"),
			Stats: map[models.StatType]*float64{
				models.StatPoints:   f64(p),
				models.StatRebounds: f64(7),
				models.StatAssists:  f64(8),
			},
		}
	}
	return entries
}

func propOutcomes(player string, line float64, over, under int) []datasource.OutcomeOdds {
	return []datasource.OutcomeOdds{
		{Side: datasource.SideOver, Participant: player, Price: over, Point: f64(line)},
		{Side: datasource.SideUnder, Participant: player, Price: under, Point: f64(line)},
	}
}

func pointsBook(key string, outcomes []datasource.OutcomeOdds) datasource.BookOdds {
	return datasource.BookOdds{Key: key, Markets: []datasource.MarketOdds{{Key: "player_points", Outcomes: outcomes}}}
}

func oddsEvents() []datasource.OddsEvent {
	return []datasource.OddsEvent{
		{
			ID:       "evt1",
			HomeTeam: "Los Angeles Lakers",
			AwayTeam: "Boston Celtics",
			Books: []datasource.BookOdds{
				pointsBook("draftkings", propOutcomes("LeBron James", 25.5, -115, -105)),
				pointsBook("pinnacle", propOutcomes("LeBron James", 25.5, -112, -108)),
				pointsBook("betmgm", propOutcomes("LeBron James", 24.5, -130, 110)),
			},
		},
		{
			ID:       "evt2",
			HomeTeam: "Phoenix Suns",
			AwayTeam: "Denver Nuggets",
			Books: []datasource.BookOdds{
				pointsBook("fanduel", propOutcomes("Nikola Jokic", 26.5, -110, -110)),
			},
		},
	}
}

func scenarioRequest() AnalysisRequest {
	return AnalysisRequest{
		PlayerName: "LeBron James",
		StatType:   "points",
		Line:       25.5,
		Direction:  "over",
		GameLog:    gameLog(30, 25, 28, 22, 31),
	}
}

type stubClassifier struct {
	prob float64
	err  error
}

func (s stubClassifier) PredictOver(context.Context, models.StatType, models.FeatureVector) (float64, error) {
	return s.prob, s.err
}

func newTestEngine(t *testing.T, classifier prediction.Classifier) (*Engine, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return New(DefaultSettings(), classifier, log), hook
}

func TestAnalyzeEndToEnd(t *testing.T) {
	e, hook := newTestEngine(t, nil)

	result, err := e.Analyze(context.Background(), scenarioRequest())
	require.NoError(t, err)
	require.True(t, result.HasData())

	assert.Equal(t, models.StatPoints, result.StatType)
	assert.Equal(t, models.DirectionOver, result.Direction)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", result.ID.String())

	require.NotNil(t, result.RecentForm)
	assert.InDelta(t, 27.2, result.RecentForm.Last5Avg, 1e-9)
	assert.InDelta(t, 27.2, result.RecentForm.SeasonAvg, 1e-9)
	assert.Equal(t, models.TrendStable, result.Trend)

	require.NotNil(t, result.HitRates.Last5)
	assert.InDelta(t, 60, *result.HitRates.Last5, 1e-9)
	assert.Nil(t, result.HitRates.Last10)
	require.NotNil(t, result.HitRates.Season)
	assert.InDelta(t, 60, *result.HitRates.Season, 1e-9)

	assert.Greater(t, result.Projection, result.RecentForm.SeasonAvg)
	assert.InDelta(t, 176.9/6.5, result.Projection, 1e-9)
	assert.InDelta(t, result.Projection-25.5, result.Edge, 1e-9)
	assert.Equal(t, models.DirectionOver, result.EdgeDirection)
	assert.False(t, result.SignalConflict)

	assert.Equal(t, models.SourceHeuristic, result.ProbabilitySource)
	assert.GreaterOrEqual(t, result.OverProbability, 1.0)
	assert.LessOrEqual(t, result.OverProbability, 99.0)
	assert.Equal(t, result.OverProbability, result.BetProbability)
	assert.Equal(t, prediction.VerdictFor(result.OverProbability), result.Verdict)

	// No L10 sample, stable trend, small edge and no market: the score stays at start.
	assert.Equal(t, 50.0, result.ConfidenceScore)
	assert.Equal(t, models.RecommendOver, result.Recommendation)

	require.NotNil(t, result.Features)
	assert.Equal(t, 27.2, result.Features[models.FeatLast5Avg])
	require.NotNil(t, result.Season)
	assert.Equal(t, 5, result.Season.GamesPlayed)
	assert.Equal(t, 35.0, result.Season.MinutesPerGame)
	assert.Equal(t, 7.0, result.Season.Average(models.StatRebounds))
	assert.Len(t, result.RecentGames, 5)
	assert.Equal(t, 30.0, result.RecentGames[0].Value)

	require.NotNil(t, result.Market)
	require.NotNil(t, result.Market.Absent)
	assert.Equal(t, "no odds events supplied", result.Market.Absent.Reason)

	var completed bool
	for _, entry := range hook.AllEntries() {
		if entry.Message == "Analysis completed" {
			completed = true
			assert.Equal(t, "analysis", entry.Data["component"])
			assert.Equal(t, "OVER", entry.Data["recommendation"])
		}
	}
	assert.True(t, completed)
}

func TestAnalyzeMarketAbsentForOpponent(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	req := scenarioRequest()
	req.Odds = oddsEvents()
	req.Situational = &models.Situational{Opponent: "Utah Jazz", RestDays: 2}

	result, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, result.Market.Absent)
	assert.Contains(t, result.Market.Absent.Reason, "Utah Jazz")
	assert.Equal(t, []string{"Boston Celtics @ Los Angeles Lakers", "Denver Nuggets @ Phoenix Suns"},
		result.Market.Absent.AvailableEvents)
	assert.Equal(t, models.LeanNeutral, result.Market.Lean())

	require.NotNil(t, result.HitRates.Last5)
	assert.InDelta(t, 60, *result.HitRates.Last5, 1e-9)
	assert.Equal(t, models.TrendStable, result.Trend)
	assert.Equal(t, 110.0, result.Situational.OpponentDefRating, "missing rating falls back to the default")
	assert.Equal(t, 2, result.Situational.RestDays)
}

func TestAnalyzeWithMarket(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	req := scenarioRequest()
	req.Odds = oddsEvents()
	req.Situational = &models.Situational{Opponent: "Celtics", IsHome: true, OpponentDefRating: 110, RestDays: 1}

	result, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)
	require.True(t, result.Market.Available())

	assert.Equal(t, "LeBron James", result.Market.MatchedPlayer)
	assert.Equal(t, 3, result.Market.BookCount)
	assert.Equal(t, models.LeanOver, result.Market.Lean())
	assert.Equal(t, 55.0, result.ConfidenceScore, "market lean agreeing with OVER adds to the score")

	assert.Contains(t, result.Factors.Supporting, "Home game advantage")
	assert.True(t, hasPrefix(result.Factors.Supporting, "Market prices lean OVER"))
	assert.True(t, hasSuffix(result.Factors.Opposing, "pressure toward UNDER"))
}

func TestAnalyzeMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*AnalysisRequest)
		field string
	}{
		{"unknown stat", func(r *AnalysisRequest) { r.StatType = "dunks" }, "stat_type"},
		{"zero line", func(r *AnalysisRequest) { r.Line = 0 }, "line"},
		{"negative line", func(r *AnalysisRequest) { r.Line = -3.5 }, "line"},
		{"nan line", func(r *AnalysisRequest) { r.Line = math.NaN() }, "line"},
		{"infinite line", func(r *AnalysisRequest) { r.Line = math.Inf(1) }, "line"},
		{"unknown direction", func(r *AnalysisRequest) { r.Direction = "sideways" }, "direction"},
	}

	e, _ := newTestEngine(t, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := scenarioRequest()
			tt.mod(&req)

			result, err := e.Analyze(context.Background(), req)
			require.Error(t, err)
			assert.Nil(t, result)
			assert.True(t, errors.Is(err, models.ErrMalformedInput))

			var malformed *models.MalformedInputError
			require.True(t, errors.As(err, &malformed))
			assert.Equal(t, tt.field, malformed.Field)
		})
	}
}

func TestAnalyzeInsufficientData(t *testing.T) {
	e, hook := newTestEngine(t, nil)

	req := scenarioRequest()
	req.GameLog = []datasource.GameEntry{
		{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Minutes: nil, Stats: map[models.StatType]*float64{models.StatPoints: f64(30)}},
		{Date: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC), Minutes: strPtr("0:00"), Stats: map[models.StatType]*float64{models.StatPoints: f64(0)}},
	}
	req.Odds = oddsEvents()
	req.Situational = &models.Situational{Opponent: "Celtics"}

	result, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, result.HasData())
	require.NotNil(t, result.InsufficientData)
	assert.True(t, errors.Is(result.InsufficientData, models.ErrDataAbsent))
	assert.Equal(t, models.RecommendNoBet, result.Recommendation)
	assert.Equal(t, 10.0, result.ConfidenceScore)

	assert.Nil(t, result.HitRates.Last5)
	assert.Nil(t, result.HitRates.Season)
	assert.Nil(t, result.RecentForm)
	assert.Nil(t, result.Features)
	assert.Zero(t, result.OverProbability)
	assert.Empty(t, result.ProbabilitySource)

	assert.True(t, result.Market.Available(), "market data is still summarized")

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Insufficient game data for analysis", hook.LastEntry().Message)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestAnalyzeUnderDirection(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	req := scenarioRequest()
	req.Direction = "UNDER"

	result, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.DirectionUnder, result.Direction)
	assert.InDelta(t, 100-result.OverProbability, result.BetProbability, 1e-9)
	require.NotNil(t, result.HitRates.Last5)
	assert.InDelta(t, 40, *result.HitRates.Last5, 1e-9)
	assert.Equal(t, models.DirectionOver, result.EdgeDirection)
	assert.True(t, result.SignalConflict)
	assert.Equal(t, models.RecommendUnder, result.Recommendation)
}

func TestAnalyzeNoBetOnConflict(t *testing.T) {
	settings := DefaultSettings()
	settings.Confidence.NoBetOnConflict = true
	e := New(settings, nil, nil)

	req := scenarioRequest()
	req.Direction = "under"

	result, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.SignalConflict)
	assert.Equal(t, models.RecommendNoBet, result.Recommendation)
}

func TestAnalyzeClassifier(t *testing.T) {
	t.Run("classifier probability is used", func(t *testing.T) {
		e, _ := newTestEngine(t, stubClassifier{prob: 0.8})

		result, err := e.Analyze(context.Background(), scenarioRequest())
		require.NoError(t, err)
		assert.Equal(t, models.SourceClassifier, result.ProbabilitySource)
		assert.InDelta(t, 80, result.OverProbability, 1e-9)
		assert.Equal(t, models.Verdict{Call: models.VerdictOver, Strength: models.StrengthHigh}, result.Verdict)
	})

	t.Run("unavailable model falls back", func(t *testing.T) {
		e, _ := newTestEngine(t, stubClassifier{err: ml.ErrModelUnavailable})

		result, err := e.Analyze(context.Background(), scenarioRequest())
		require.NoError(t, err)
		assert.Equal(t, models.SourceHeuristic, result.ProbabilitySource)
	})
}

func TestAnalyzeCanceledContext(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Analyze(ctx, scenarioRequest())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeFreshResults(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	a, err := e.Analyze(context.Background(), scenarioRequest())
	require.NoError(t, err)
	b, err := e.Analyze(context.Background(), scenarioRequest())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	a.RecentGames[0].Value = 99
	assert.Equal(t, 30.0, b.RecentGames[0].Value)
}

func hasPrefix(items []string, prefix string) bool {
	for _, item := range items {
		if strings.HasPrefix(item, prefix) {
			return true
		}
	}
	return false
}

func hasSuffix(items []string, suffix string) bool {
	for _, item := range items {
		if strings.HasSuffix(item, suffix) {
			return true
		}
	}
	return false
}

func TestAnalyzeSituationalOmittedRestDays(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	var sit models.Situational
	require.NoError(t, json.Unmarshal([]byte(`{"opponent":"Celtics","is_home":true}`), &sit))
	assert.Equal(t, models.UnknownRestDays, sit.RestDays)

	req := scenarioRequest()
	req.Situational = &sit
	omitted, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, omitted.Situational.RestDays)
	assert.Equal(t, 110.0, omitted.Situational.OpponentDefRating)
	assert.NotContains(t, omitted.Factors.Opposing, "Back-to-back game (fatigue risk)")

	req.Situational = &models.Situational{Opponent: "Celtics", IsHome: true, OpponentDefRating: 110, RestDays: 1}
	explicit, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.InDelta(t, explicit.OverProbability, omitted.OverProbability, 1e-9)

	require.NoError(t, json.Unmarshal([]byte(`{"opponent":"Celtics","is_home":true,"rest_days":0}`), &sit))
	req.Situational = &sit
	backToBack, err := e.Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0, backToBack.Situational.RestDays)
	assert.Contains(t, backToBack.Factors.Opposing, "Back-to-back game (fatigue risk)")
	assert.Less(t, backToBack.OverProbability, omitted.OverProbability)
}
