package ml

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/yourusername/stat-prophet/internal/models"
)

// featureNamespace scopes the name-based UUIDs derived from feature vectors.
var featureNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("stat-prophet/features"))

// CacheKey represents a unique key for caching predictions
type CacheKey struct {
	StatType     models.StatType
	FeatureID    uuid.UUID
	ModelVersion string
}

// NewCacheKey derives a key from the exact bits of a feature vector.
func NewCacheKey(stat models.StatType, fv models.FeatureVector, modelVersion string) CacheKey {
	buf := make([]byte, 0, models.FeatureCount*8)
	for _, x := range fv {
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(x))
	}
	return CacheKey{
		StatType:     stat,
		FeatureID:    uuid.NewSHA1(featureNamespace, buf),
		ModelVersion: modelVersion,
	}
}

// String returns string representation of cache key
func (k CacheKey) String() string {
	return fmt.Sprintf("%s:%s:%s", k.StatType, k.FeatureID, k.ModelVersion)
}

// PredictionCache provides in-memory caching for classifier probabilities
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	maxSize   int
	mu        sync.Mutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache
func NewPredictionCache(ttl time.Duration, maxSize int) *PredictionCache {
	return &PredictionCache{
		cache:   cache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached probability
func (pc *PredictionCache) Get(key CacheKey) (float64, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if result, found := pc.cache.Get(key.String()); found {
		if prob, ok := result.(float64); ok {
			pc.hitCount++
			pc.updateMetrics()
			return prob, true
		}
	}

	pc.missCount++
	pc.updateMetrics()
	return 0, false
}

// Set stores a probability in cache. A full cache first drops expired
// entries and skips the write if it is still full.
func (pc *PredictionCache) Set(key CacheKey, prob float64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.maxSize > 0 && pc.cache.ItemCount() >= pc.maxSize {
		pc.cache.DeleteExpired()
		if pc.cache.ItemCount() >= pc.maxSize {
			return
		}
	}

	pc.cache.Set(key.String(), prob, pc.ttl)
}

// Stats returns cache statistics
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.stats()
}

func (pc *PredictionCache) stats() (hits, misses uint64, ratio float64) {
	hits = pc.hitCount
	misses = pc.missCount
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (pc *PredictionCache) updateMetrics() {
	_, _, ratio := pc.stats()
	MLCacheHitRatio.Set(ratio)
}
