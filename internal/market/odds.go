// Package market turns bookmaker prop quotes into a consensus view of a
// player's line and pricing.
package market

import (
	"fmt"
	"math"
)

// AmericanToImplied converts American odds to implied probability.
// Example: -200 → 0.667, +150 → 0.4. Zero odds return 0.
func AmericanToImplied(odds int) float64 {
	if odds == 0 {
		return 0
	}
	if odds > 0 {
		return 100.0 / (float64(odds) + 100.0)
	}
	abs := math.Abs(float64(odds))
	return abs / (abs + 100.0)
}

// ProbabilityToAmerican converts a fair probability to American odds.
// 0.5 → +100, 0.25 → +300, 0.8 → -400
func ProbabilityToAmerican(probability float64) (int, error) {
	if math.IsNaN(probability) || probability <= 0 || probability >= 1 {
		return 0, fmt.Errorf("invalid probability: must be between 0 and 1")
	}
	if probability > 0.5 {
		return int(math.Round(-100 * probability / (1 - probability))), nil
	}
	return int(math.Round(100 * (1 - probability) / probability)), nil
}

// FormatAmerican renders odds with an explicit sign for positive prices.
func FormatAmerican(odds int) string {
	if odds > 0 {
		return fmt.Sprintf("+%d", odds)
	}
	return fmt.Sprintf("%d", odds)
}
