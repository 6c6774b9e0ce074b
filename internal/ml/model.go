package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/yourusername/stat-prophet/internal/models"
)

// ModelFile is the on-disk classifier artifact: one standardized logistic
// regression per statistic, all sharing the engine's feature order.
type ModelFile struct {
	Version   string                   `json:"version"`
	TrainedAt time.Time                `json:"trained_at"`
	Features  []string                 `json:"features"`
	Models    map[string]LogisticModel `json:"models"`
}

// LogisticModel is a logistic regression over standardized features.
type LogisticModel struct {
	Mean      []float64 `json:"mean"`
	Scale     []float64 `json:"scale"`
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// LoadModelFile reads and validates an artifact from disk.
func LoadModelFile(path string) (*ModelFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}
	return ParseModelFile(data)
}

// ParseModelFile decodes and validates an artifact.
func ParseModelFile(data []byte) (*ModelFile, error) {
	var file ModelFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidModel, err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate checks the feature layout and every model's dimensions.
func (f *ModelFile) Validate() error {
	if f.Version == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidModel)
	}
	if len(f.Models) == 0 {
		return fmt.Errorf("%w: no models", ErrInvalidModel)
	}
	if len(f.Features) > 0 {
		if len(f.Features) != models.FeatureCount {
			return fmt.Errorf("%w: expected %d features, got %d", ErrFeatureMismatch, models.FeatureCount, len(f.Features))
		}
		for i, name := range f.Features {
			if name != models.FeatureNames[i] {
				return fmt.Errorf("%w: feature %d is %q, expected %q", ErrFeatureMismatch, i, name, models.FeatureNames[i])
			}
		}
	}

	for key, m := range f.Models {
		if _, err := models.ParseStatType(key); err != nil {
			return fmt.Errorf("%w: unknown statistic %q", ErrInvalidModel, key)
		}
		if err := m.validate(); err != nil {
			return fmt.Errorf("model %s: %w", key, err)
		}
	}
	return nil
}

func (m LogisticModel) validate() error {
	for name, v := range map[string][]float64{"mean": m.Mean, "scale": m.Scale, "coef": m.Coef} {
		if len(v) != models.FeatureCount {
			return fmt.Errorf("%w: %s has %d values, expected %d", ErrFeatureMismatch, name, len(v), models.FeatureCount)
		}
		for _, x := range v {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return fmt.Errorf("%w: %s contains a non-finite value", ErrInvalidModel, name)
			}
		}
	}
	if math.IsNaN(m.Intercept) || math.IsInf(m.Intercept, 0) {
		return fmt.Errorf("%w: non-finite intercept", ErrInvalidModel)
	}
	return nil
}

// Probability returns P(over) in [0,1] for a feature vector.
func (m LogisticModel) Probability(fv models.FeatureVector) float64 {
	z := m.Intercept
	for i, x := range fv {
		scale := m.Scale[i]
		// Constant features are stored with zero scale.
		if scale == 0 {
			scale = 1
		}
		z += m.Coef[i] * (x - m.Mean[i]) / scale
	}
	return 1 / (1 + math.Exp(-z))
}
