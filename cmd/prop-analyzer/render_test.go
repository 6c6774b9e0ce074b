package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/stat-prophet/internal/engine"
	"github.com/yourusername/stat-prophet/internal/models"
)

func f64(v float64) *float64 { return &v }

func TestRenderAnalysis(t *testing.T) {
	r := &models.AnalysisResult{
		PlayerName:        "LeBron James",
		StatType:          models.StatPoints,
		Line:              25.5,
		Direction:         models.DirectionOver,
		Projection:        27.2,
		Edge:              1.7,
		EdgeDirection:     models.DirectionOver,
		Trend:             models.TrendStable,
		HitRates:          models.HitRates{Last5: f64(60), Season: f64(60)},
		OverProbability:   69.7,
		ProbabilitySource: models.SourceHeuristic,
		Verdict:           models.Verdict{Call: models.VerdictOver, Strength: models.StrengthMedium},
		ConfidenceScore:   55,
		Recommendation:    models.RecommendOver,
		Factors:           models.Factors{Supporting: []string{"Home game advantage"}, Opposing: []string{}},
	}

	var buf bytes.Buffer
	require.NoError(t, renderAnalysis(&buf, r))
	out := buf.String()

	assert.Contains(t, out, "LeBron James  Points 25.5 OVER")
	assert.Contains(t, out, "69.7% (heuristic)")
	assert.Contains(t, out, "+1.7 (OVER)")
	assert.Contains(t, out, "NEUTRAL")
	assert.Contains(t, out, "For:     Home game advantage")
	assert.NotContains(t, out, "Against:")
	assert.Contains(t, out, "Model suggests OVER with 69.7% probability")
}

func TestRenderAnalysisInsufficientData(t *testing.T) {
	r := &models.AnalysisResult{
		StatType:         models.StatRebounds,
		Line:             8.5,
		Direction:        models.DirectionUnder,
		Recommendation:   models.RecommendNoBet,
		InsufficientData: &models.DataAbsent{Reason: "no qualifying rebounds games in 0 game log entries"},
	}

	var buf bytes.Buffer
	require.NoError(t, renderAnalysis(&buf, r))

	assert.Contains(t, buf.String(), "(unnamed player)  Rebounds 8.5 UNDER")
	assert.Contains(t, buf.String(), "Insufficient data: no qualifying rebounds games")
	assert.Contains(t, buf.String(), "Recommendation: NO_BET")
}

func TestRenderParlay(t *testing.T) {
	p, err := engine.EvaluateParlay([]*models.AnalysisResult{
		{PlayerName: "A", StatType: models.StatPoints, Line: 20.5, Direction: models.DirectionOver, BetProbability: 60, Recommendation: models.RecommendOver},
		{PlayerName: "B", StatType: models.StatAssists, Line: 6.5, Direction: models.DirectionUnder, BetProbability: 50, Recommendation: models.RecommendUnder},
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, renderParlay(&buf, p))

	assert.Contains(t, buf.String(), "Points 20.5 OVER")
	assert.Contains(t, buf.String(), "-150")
	assert.Contains(t, buf.String(), "+100")
	assert.Contains(t, buf.String(), "Combined probability: 30.00%  Fair odds: +233")
}

func TestLoadLegs(t *testing.T) {
	appLogger = logrus.New()
	appLogger.SetOutput(new(bytes.Buffer))

	dir := t.TempDir()
	games := `[{"date":"2024-03-01","minutes":"34:10","points":28},{"date":"2024-02-28","minutes":"31","points":22}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "games.json"), []byte(games), 0o600))

	legs := `[
		{"player_name":"A","stat_type":"points","line":24.5,"direction":"over","games":"games.json"},
		{"player_name":"A","stat_type":"pts","line":30.5,"direction":"under","games":"games.json",
		 "situational":{"opponent":"Celtics","is_home":true,"opponent_def_rating":108,"rest_days":2}},
		{"player_name":"A","stat_type":"points","line":24.5,"direction":"over","games":"games.json",
		 "situational":{"opponent":"Celtics"}}
	]`
	legsPath := filepath.Join(dir, "legs.json")
	require.NoError(t, os.WriteFile(legsPath, []byte(legs), 0o600))

	reqs, err := loadLegs(legsPath)
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	assert.Len(t, reqs[0].GameLog, 2)
	assert.Nil(t, reqs[0].Situational)
	require.NotNil(t, reqs[1].Situational)
	assert.Equal(t, "Celtics", reqs[1].Situational.Opponent)
	assert.Equal(t, "pts", reqs[1].StatType)
	assert.Equal(t, 2, reqs[1].Situational.RestDays)
	require.NotNil(t, reqs[2].Situational)
	assert.Equal(t, models.UnknownRestDays, reqs[2].Situational.RestDays, "omitted rest days are not a back-to-back")
}

func TestLoadLegsMissingGames(t *testing.T) {
	appLogger = logrus.New()

	legsPath := filepath.Join(t.TempDir(), "legs.json")
	require.NoError(t, os.WriteFile(legsPath, []byte(`[{"player_name":"A","stat_type":"points","line":1.5,"direction":"over"}]`), 0o600))

	_, err := loadLegs(legsPath)
	require.Error(t, err)

	var malformed *models.MalformedInputError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "legs", malformed.Field)
}
