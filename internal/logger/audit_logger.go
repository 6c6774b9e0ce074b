// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger records every recommendation the engine hands out.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRecommendation logs a recommendation issued for a prop.
func (al *AuditLogger) LogRecommendation(analysisID, player, statType string, line float64, direction, recommendation string, confidence float64, signalConflict bool, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"analysis_id":     analysisID,
		"player":          player,
		"stat_type":       statType,
		"line":            line,
		"direction":       direction,
		"recommendation":  recommendation,
		"confidence":      confidence,
		"signal_conflict": signalConflict,
		"timestamp":       timestamp.Unix(),
	}).Info("Recommendation recorded")
}

// LogParlay logs an evaluated parlay.
func (al *AuditLogger) LogParlay(legs int, probability float64, fairOdds int, analysisIDs []string) {
	al.WithFields(logrus.Fields{
		"legs":         legs,
		"probability":  probability,
		"fair_odds":    fairOdds,
		"analysis_ids": analysisIDs,
	}).Info("Parlay evaluated")
}
