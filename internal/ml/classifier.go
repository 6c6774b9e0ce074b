package ml

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/stat-prophet/internal/models"
)

// Scorer produces an over-probability in [0,1] for a statistic.
type Scorer interface {
	PredictOver(ctx context.Context, stat models.StatType, fv models.FeatureVector) (float64, error)
	Version() string
}

// LogisticClassifier scores feature vectors with the per-statistic models of
// a loaded artifact.
type LogisticClassifier struct {
	version string
	models  map[models.StatType]LogisticModel
	logger  logrus.FieldLogger
}

// NewLogisticClassifier builds a classifier from a validated artifact.
func NewLogisticClassifier(file *ModelFile, logger logrus.FieldLogger) (*LogisticClassifier, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: nil artifact", ErrInvalidModel)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}

	byStat := make(map[models.StatType]LogisticModel, len(file.Models))
	for key, m := range file.Models {
		stat, _ := models.ParseStatType(key)
		byStat[stat] = m
	}

	c := &LogisticClassifier{
		version: file.Version,
		models:  byStat,
		logger:  logger,
	}
	MLModelsLoaded.Set(float64(len(byStat)))

	if logger != nil {
		logger.WithFields(logrus.Fields{
			"version": file.Version,
			"stats":   c.Stats(),
		}).Info("Classifier loaded")
	}
	return c, nil
}

// LoadClassifier reads an artifact from disk and builds a classifier.
func LoadClassifier(path string, logger logrus.FieldLogger) (*LogisticClassifier, error) {
	file, err := LoadModelFile(path)
	if err != nil {
		return nil, err
	}
	return NewLogisticClassifier(file, logger)
}

// PredictOver returns P(over) for the statistic.
func (c *LogisticClassifier) PredictOver(ctx context.Context, stat models.StatType, fv models.FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m, ok := c.models[stat]
	if !ok {
		MLPredictionErrorsTotal.WithLabelValues(string(stat), "unavailable").Inc()
		return 0, fmt.Errorf("%w: %s", ErrModelUnavailable, stat)
	}

	start := time.Now()
	prob := m.Probability(fv)
	MLPredictionLatency.WithLabelValues(string(stat)).Observe(time.Since(start).Seconds())

	if math.IsNaN(prob) {
		MLPredictionErrorsTotal.WithLabelValues(string(stat), "non_finite").Inc()
		return 0, ErrInvalidPrediction
	}
	return prob, nil
}

// Version returns the artifact version.
func (c *LogisticClassifier) Version() string {
	return c.version
}

// Stats lists the statistics with a loaded model.
func (c *LogisticClassifier) Stats() []models.StatType {
	out := make([]models.StatType, 0, len(c.models))
	for stat := range c.models {
		out = append(out, stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
