package ml

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/stat-prophet/internal/models"
)

// CachedClassifier wraps a Scorer with prediction caching
type CachedClassifier struct {
	scorer Scorer
	cache  *PredictionCache
	logger logrus.FieldLogger
}

// NewCachedClassifier creates a cached classifier. A non-positive ttl
// defaults to five minutes.
func NewCachedClassifier(scorer Scorer, ttl time.Duration, maxSize int, logger logrus.FieldLogger) *CachedClassifier {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CachedClassifier{
		scorer: scorer,
		cache:  NewPredictionCache(ttl, maxSize),
		logger: logger,
	}
}

// PredictOver retrieves a probability with caching. Errors are not cached.
func (c *CachedClassifier) PredictOver(ctx context.Context, stat models.StatType, fv models.FeatureVector) (float64, error) {
	key := NewCacheKey(stat, fv, c.scorer.Version())

	if prob, ok := c.cache.Get(key); ok {
		if c.logger != nil {
			c.logger.WithField("cache_key", key.String()).Debug("Cache hit for prediction")
		}
		MLPredictionsTotal.WithLabelValues(string(stat), "true").Inc()
		return prob, nil
	}

	prob, err := c.scorer.PredictOver(ctx, stat, fv)
	if err != nil {
		return 0, err
	}

	c.cache.Set(key, prob)
	MLPredictionsTotal.WithLabelValues(string(stat), "false").Inc()
	return prob, nil
}

// Version returns the wrapped scorer's version.
func (c *CachedClassifier) Version() string {
	return c.scorer.Version()
}

// GetCacheStats returns cache statistics
func (c *CachedClassifier) GetCacheStats() (hits, misses uint64, hitRatio float64) {
	return c.cache.Stats()
}
