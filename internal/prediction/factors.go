package prediction

import (
	"fmt"

	"github.com/yourusername/stat-prophet/internal/models"
)

// Verdict thresholds on the over-probability, in percent.
const (
	overThreshold     = 65.0
	strongOverCutoff  = 75.0
	underThreshold    = 35.0
	strongUnderCutoff = 25.0
	ceilingMultiplier = 1.3
	floorMultiplier   = 0.7
)

// VerdictFor grades an over-probability into a call and a strength.
func VerdictFor(overProb float64) models.Verdict {
	switch {
	case overProb >= overThreshold:
		if overProb >= strongOverCutoff {
			return models.Verdict{Call: models.VerdictOver, Strength: models.StrengthHigh}
		}
		return models.Verdict{Call: models.VerdictOver, Strength: models.StrengthMedium}
	case overProb <= underThreshold:
		if overProb <= strongUnderCutoff {
			return models.Verdict{Call: models.VerdictUnder, Strength: models.StrengthHigh}
		}
		return models.Verdict{Call: models.VerdictUnder, Strength: models.StrengthMedium}
	default:
		return models.Verdict{Call: models.VerdictPush, Strength: models.StrengthLow}
	}
}

// AnalyzeFactors lists the features that argue for and against the over.
func AnalyzeFactors(cfg HeuristicConfig, line float64, fv models.FeatureVector) models.Factors {
	factors := models.Factors{Supporting: []string{}, Opposing: []string{}}

	last5 := fv[models.FeatLast5Avg]
	switch {
	case last5 > line:
		factors.Supporting = append(factors.Supporting, fmt.Sprintf("Averaging %.1f over last 5 games (above line)", last5))
	case last5 < line:
		factors.Opposing = append(factors.Opposing, fmt.Sprintf("Averaging %.1f over last 5 games (below line)", last5))
	}

	switch trend := fv[models.FeatTrend]; {
	case trend > cfg.TrendBand:
		factors.Supporting = append(factors.Supporting, "Player is trending upward recently")
	case trend < -cfg.TrendBand:
		factors.Opposing = append(factors.Opposing, "Player is trending downward recently")
	}

	if fv[models.FeatHome] != 0 {
		factors.Supporting = append(factors.Supporting, "Home game advantage")
	}

	switch def := fv[models.FeatOppDefRating]; {
	case def > cfg.WeakDefenseRating:
		factors.Supporting = append(factors.Supporting, fmt.Sprintf("Facing weak defense (rating: %.1f)", def))
	case def < cfg.StrongDefenseRating:
		factors.Opposing = append(factors.Opposing, fmt.Sprintf("Facing strong defense (rating: %.1f)", def))
	}

	switch rest := int(fv[models.FeatRestDays]); {
	case rest >= cfg.RestedDays:
		factors.Supporting = append(factors.Supporting, fmt.Sprintf("Well-rested (%d days off)", rest))
	case rest == 0:
		factors.Opposing = append(factors.Opposing, "Back-to-back game (fatigue risk)")
	}

	if max := fv[models.FeatMaxRecent]; max > line*ceilingMultiplier {
		factors.Supporting = append(factors.Supporting, fmt.Sprintf("Has hit %.0f recently (high ceiling)", max))
	}
	if min := fv[models.FeatMinRecent]; min < line*floorMultiplier {
		factors.Opposing = append(factors.Opposing, fmt.Sprintf("Has put up only %.0f recently (low floor)", min))
	}

	return factors
}
