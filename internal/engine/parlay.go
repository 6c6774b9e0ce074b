package engine

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/yourusername/stat-prophet/internal/market"
	"github.com/yourusername/stat-prophet/internal/models"
)

// Parlay leg limits
const (
	MinParlayLegs = 2
	MaxParlayLegs = 6
)

// pricingEpsilon keeps a saturated combined probability inside the open
// interval that American odds can express.
const pricingEpsilon = 1e-4

// Parlay is the combination of independently analyzed legs. Probability is a
// percentage, like the leg bet probabilities it is built from.
type Parlay struct {
	Legs        []*models.AnalysisResult `json:"legs"`
	Probability float64                  `json:"probability"`
	FairOdds    int                      `json:"fair_odds"`
}

// FairOddsText renders FairOdds with its sign.
func (p *Parlay) FairOddsText() string {
	return market.FormatAmerican(p.FairOdds)
}

// EvaluateParlay multiplies the legs' bet probabilities and prices the
// combination. Legs are treated as independent.
func EvaluateParlay(legs []*models.AnalysisResult) (*Parlay, error) {
	if len(legs) < MinParlayLegs || len(legs) > MaxParlayLegs {
		return nil, &models.MalformedInputError{
			Field:  "legs",
			Reason: fmt.Sprintf("a parlay needs %d to %d legs, got %d", MinParlayLegs, MaxParlayLegs, len(legs)),
		}
	}

	combined := 1.0
	for i, leg := range legs {
		if leg == nil || !leg.HasData() {
			return nil, &models.MalformedInputError{
				Field:  "legs",
				Reason: fmt.Sprintf("leg %d has no qualifying game data", i+1),
			}
		}
		combined *= leg.BetProbability / 100
	}

	odds, err := market.ProbabilityToAmerican(math.Min(math.Max(combined, pricingEpsilon), 1-pricingEpsilon))
	if err != nil {
		return nil, fmt.Errorf("pricing parlay: %w", err)
	}

	return &Parlay{
		Legs:        legs,
		Probability: combined * 100,
		FairOdds:    odds,
	}, nil
}

// AnalyzeParlay analyzes every leg concurrently and combines them. The first
// leg error, in leg order, is returned.
func (e *Engine) AnalyzeParlay(ctx context.Context, reqs []AnalysisRequest) (*Parlay, error) {
	if len(reqs) < MinParlayLegs || len(reqs) > MaxParlayLegs {
		return EvaluateParlay(make([]*models.AnalysisResult, len(reqs)))
	}

	results := make([]*models.AnalysisResult, len(reqs))
	errs := make([]error, len(reqs))

	var wg sync.WaitGroup
	for i := range reqs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.Analyze(ctx, reqs[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i+1, err)
		}
	}

	parlay, err := EvaluateParlay(results)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.ID.String()
	}
	e.audit.LogParlay(len(results), parlay.Probability, parlay.FairOdds, ids)

	return parlay, nil
}
