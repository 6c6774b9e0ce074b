package ml

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/stat-prophet/internal/models"
)

func loadTestClassifier(t *testing.T) *LogisticClassifier {
	t.Helper()
	logger, _ := test.NewNullLogger()
	c, err := LoadClassifier("testdata/model.json", logger)
	require.NoError(t, err)
	return c
}

// TestLoadClassifier tests loading the artifact and resolving stat aliases
func TestLoadClassifier(t *testing.T) {
	c := loadTestClassifier(t)

	assert.Equal(t, "2024.03-logit", c.Version())
	assert.Equal(t, []models.StatType{models.StatPoints, models.StatRebounds}, c.Stats())
}

// TestLogisticClassifierPredictOver tests standardized logistic scoring
func TestLogisticClassifierPredictOver(t *testing.T) {
	c := loadTestClassifier(t)
	ctx := context.Background()

	prob, err := c.PredictOver(ctx, models.StatPoints, vector(25))
	require.NoError(t, err)
	assert.InDelta(t, 0.7311, prob, 1e-4)

	home := vector(25)
	home[models.FeatHome] = 1
	prob, err = c.PredictOver(ctx, models.StatPoints, home)
	require.NoError(t, err)
	assert.InDelta(t, 0.8176, prob, 1e-4, "zero scale is treated as one")

	prob, err = c.PredictOver(ctx, models.StatRebounds, vector(25))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, prob, 1e-9)
}

// TestLogisticClassifierUnavailable tests statistics without a model
func TestLogisticClassifierUnavailable(t *testing.T) {
	c := loadTestClassifier(t)

	_, err := c.PredictOver(context.Background(), models.StatBlocks, vector(2))
	assert.True(t, errors.Is(err, ErrModelUnavailable))
}

// TestLogisticClassifierCanceledContext tests that a canceled context short-circuits
func TestLogisticClassifierCanceledContext(t *testing.T) {
	c := loadTestClassifier(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.PredictOver(ctx, models.StatPoints, vector(25))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestParseModelFileErrors tests artifact validation
func TestParseModelFileErrors(t *testing.T) {
	twelve := `[0,0,0,0,0,0,0,0,0,0,0,0]`
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"not json", `{`, ErrInvalidModel},
		{"missing version", `{"models":{"points":{"mean":` + twelve + `,"scale":` + twelve + `,"coef":` + twelve + `}}}`, ErrInvalidModel},
		{"no models", `{"version":"v1","models":{}}`, ErrInvalidModel},
		{"unknown stat", `{"version":"v1","models":{"goals":{"mean":` + twelve + `,"scale":` + twelve + `,"coef":` + twelve + `}}}`, ErrInvalidModel},
		{"short coef", `{"version":"v1","models":{"points":{"mean":` + twelve + `,"scale":` + twelve + `,"coef":[1,2]}}}`, ErrFeatureMismatch},
		{"feature order", `{"version":"v1","features":["a","b","c","d","e","f","g","h","i","j","k","l"],"models":{"points":{"mean":` + twelve + `,"scale":` + twelve + `,"coef":` + twelve + `}}}`, ErrFeatureMismatch},
		{"feature count", `{"version":"v1","features":["season_avg"],"models":{"points":{"mean":` + twelve + `,"scale":` + twelve + `,"coef":` + twelve + `}}}`, ErrFeatureMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseModelFile([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// TestLoadModelFileMissing tests a missing artifact path
func TestLoadModelFileMissing(t *testing.T) {
	_, err := LoadModelFile("testdata/does-not-exist.json")
	assert.Error(t, err)
}

type countingScorer struct {
	calls int
	prob  float64
	err   error
}

func (s *countingScorer) PredictOver(ctx context.Context, stat models.StatType, fv models.FeatureVector) (float64, error) {
	s.calls++
	return s.prob, s.err
}

func (s *countingScorer) Version() string { return "test" }

// TestCachedClassifier tests that repeat predictions are served from cache
func TestCachedClassifier(t *testing.T) {
	scorer := &countingScorer{prob: 0.62}
	logger, _ := test.NewNullLogger()
	c := NewCachedClassifier(scorer, time.Hour, 100, logger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		prob, err := c.PredictOver(ctx, models.StatPoints, vector(25))
		require.NoError(t, err)
		assert.Equal(t, 0.62, prob)
	}
	assert.Equal(t, 1, scorer.calls)

	hits, misses, ratio := c.GetCacheStats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(1), misses)
	assert.InDelta(t, 2.0/3.0, ratio, 1e-9)

	_, err := c.PredictOver(ctx, models.StatRebounds, vector(25))
	require.NoError(t, err)
	assert.Equal(t, 2, scorer.calls, "a different statistic is a separate entry")
	assert.Equal(t, "test", c.Version())
}

// TestCachedClassifierDoesNotCacheErrors tests error pass-through
func TestCachedClassifierDoesNotCacheErrors(t *testing.T) {
	scorer := &countingScorer{err: ErrModelUnavailable}
	c := NewCachedClassifier(scorer, 0, 100, nil)
	ctx := context.Background()

	_, err := c.PredictOver(ctx, models.StatSteals, vector(1))
	assert.ErrorIs(t, err, ErrModelUnavailable)
	_, err = c.PredictOver(ctx, models.StatSteals, vector(1))
	assert.ErrorIs(t, err, ErrModelUnavailable)
	assert.Equal(t, 2, scorer.calls)
}
