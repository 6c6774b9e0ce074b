package prediction

import (
	"context"
	"errors"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/stat-prophet/internal/ml"
	"github.com/yourusername/stat-prophet/internal/models"
)

// Classifier is a pre-trained model that scores a feature vector. It returns
// the over-probability in [0,1], or ml.ErrModelUnavailable when it has no
// model for the statistic.
type Classifier interface {
	PredictOver(ctx context.Context, stat models.StatType, fv models.FeatureVector) (float64, error)
}

// Prediction is the model output for one prop.
type Prediction struct {
	OverProbability float64
	Source          models.ProbabilitySource
	Verdict         models.Verdict
}

// Predictor prefers the classifier and falls back to the heuristic whenever
// the classifier is absent, has no model for the statistic, or errors.
type Predictor struct {
	heuristic  *Heuristic
	classifier Classifier
	logger     logrus.FieldLogger
}

// NewPredictor creates a predictor. classifier may be nil.
func NewPredictor(heuristic *Heuristic, classifier Classifier, logger logrus.FieldLogger) *Predictor {
	return &Predictor{
		heuristic:  heuristic,
		classifier: classifier,
		logger:     logger,
	}
}

// Predict scores a prop line.
func (p *Predictor) Predict(ctx context.Context, stat models.StatType, line float64, fv models.FeatureVector) Prediction {
	if prob, ok := p.classify(ctx, stat, fv); ok {
		return Prediction{
			OverProbability: prob,
			Source:          models.SourceClassifier,
			Verdict:         VerdictFor(prob),
		}
	}

	prob := p.heuristic.OverProbability(line, fv)
	return Prediction{
		OverProbability: prob,
		Source:          models.SourceHeuristic,
		Verdict:         VerdictFor(prob),
	}
}

func (p *Predictor) classify(ctx context.Context, stat models.StatType, fv models.FeatureVector) (float64, bool) {
	if p.classifier == nil {
		return 0, false
	}

	prob, err := p.classifier.PredictOver(ctx, stat, fv)
	if err != nil {
		if p.logger != nil {
			entry := p.logger.WithFields(logrus.Fields{"stat_type": stat, "error": err.Error()})
			if errors.Is(err, ml.ErrModelUnavailable) {
				entry.Debug("No classifier for statistic, using heuristic")
			} else {
				entry.Warn("Classifier failed, using heuristic")
			}
		}
		return 0, false
	}
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		if p.logger != nil {
			p.logger.WithFields(logrus.Fields{"stat_type": stat, "probability": prob}).Warn("Classifier returned out-of-range probability, using heuristic")
		}
		return 0, false
	}
	return prob * 100, true
}
