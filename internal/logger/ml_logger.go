// Package logger provides ML-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// MLLogger provides dedicated logging for classifier operations.
type MLLogger struct {
	*logrus.Entry
}

// NewMLLogger creates a new ML logger.
func NewMLLogger(baseLogger *logrus.Logger) *MLLogger {
	return &MLLogger{
		Entry: baseLogger.WithField("component", "ml"),
	}
}

// LogClassifierLoaded logs a loaded classifier artifact.
func (ml *MLLogger) LogClassifierLoaded(path, version string, statsCount int) {
	ml.WithFields(logrus.Fields{
		"model_path":  path,
		"version":     version,
		"stats_count": statsCount,
	}).Info("Classifier artifact loaded")
}

// LogClassifierDisabled logs that only the heuristic will be used.
func (ml *MLLogger) LogClassifierDisabled(reason string) {
	ml.WithField("reason", reason).Info("Classifier disabled, heuristic only")
}

// LogCacheStats logs prediction cache statistics.
func (ml *MLLogger) LogCacheStats(hits, misses uint64, hitRatio float64) {
	ml.WithFields(logrus.Fields{
		"cache_hits":      hits,
		"cache_misses":    misses,
		"cache_hit_ratio": hitRatio,
	}).Debug("Classifier cache statistics")
}
