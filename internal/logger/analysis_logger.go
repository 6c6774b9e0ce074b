package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for prop analyses.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogAnalysisCompleted logs a finished analysis.
func (al *AnalysisLogger) LogAnalysisCompleted(analysisID, player, statType, direction string, line, overProbability, confidence float64, recommendation, source string, durationMs float64) {
	al.WithFields(logrus.Fields{
		"analysis_id":        analysisID,
		"player":             player,
		"stat_type":          statType,
		"direction":          direction,
		"line":               line,
		"over_probability":   overProbability,
		"confidence":         confidence,
		"recommendation":     recommendation,
		"probability_source": source,
		"duration_ms":        durationMs,
	}).Info("Analysis completed")
}

// LogInsufficientData logs an analysis with no qualifying games.
func (al *AnalysisLogger) LogInsufficientData(analysisID, statType, reason string, entries int) {
	al.WithFields(logrus.Fields{
		"analysis_id": analysisID,
		"stat_type":   statType,
		"reason":      reason,
		"entries":     entries,
	}).Warn("Insufficient game data for analysis")
}

// LogNormalization logs how many game log entries survived normalization.
func (al *AnalysisLogger) LogNormalization(statType string, total, kept int, excluded map[string]int) {
	al.WithFields(logrus.Fields{
		"stat_type": statType,
		"total":     total,
		"kept":      kept,
		"excluded":  excluded,
	}).Debug("Game log normalized")
}

// LogEntityNotResolved logs a player or team lookup that found no match.
func (al *AnalysisLogger) LogEntityNotResolved(reason string, candidates []string) {
	al.WithFields(logrus.Fields{
		"reason":     reason,
		"candidates": candidates,
	}).Warn("Market data unavailable")
}

// LogSignalConflict logs a wager whose edge points the other way.
func (al *AnalysisLogger) LogSignalConflict(analysisID, direction, edgeDirection string, edge float64) {
	al.WithFields(logrus.Fields{
		"analysis_id":    analysisID,
		"direction":      direction,
		"edge_direction": edgeDirection,
		"edge":           edge,
	}).Info("Projection disagrees with requested direction")
}

// LogMalformedRequest logs a rejected request.
func (al *AnalysisLogger) LogMalformedRequest(field, reason string) {
	al.WithFields(logrus.Fields{
		"field":  field,
		"reason": reason,
	}).Warn("Rejected malformed analysis request")
}
