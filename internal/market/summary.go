package market

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yourusername/stat-prophet/internal/models"
)

// Config holds the market normalization constants.
type Config struct {
	FuzzyCutoff        float64
	LeanBand           float64
	SharpSoftThreshold float64
	LineGapSignal      float64
	SharpBooks         []string
	SoftBooks          []string
}

// DefaultConfig returns the standard market constants.
func DefaultConfig() Config {
	return Config{
		FuzzyCutoff:        DefaultFuzzyCutoff,
		LeanBand:           0.03,
		SharpSoftThreshold: 0.4,
		LineGapSignal:      1.0,
		SharpBooks:         DefaultSharpBooks,
		SoftBooks:          DefaultSoftBooks,
	}
}

var (
	two  = decimal.NewFromInt(2)
	zero = decimal.Zero
)

// Summarize aggregates quotes into a MarketSummary. requestedLine, when
// positive, is compared with the consensus to flag off-market lines.
func Summarize(cfg Config, roster *Roster, quotes map[string]models.MarketQuote, requestedLine float64) *models.MarketSummary {
	summary := &models.MarketSummary{
		BookCount:  len(quotes),
		Quotes:     quotes,
		MarketLean: models.LeanNeutral,
	}
	if len(quotes) == 0 {
		summary.Absent = &models.DataAbsent{Reason: "no market quotes"}
		return summary
	}

	keys := make([]string, 0, len(quotes))
	for k := range quotes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines, sharpLines, softLines []decimal.Decimal
	var overImplied, underImplied []float64
	for _, k := range keys {
		q := quotes[k]
		if q.Line > 0 && !math.IsNaN(q.Line) && !math.IsInf(q.Line, 0) {
			line := decimal.NewFromFloat(q.Line)
			lines = append(lines, line)
			switch roster.Classify(k) {
			case BookSharp:
				sharpLines = append(sharpLines, line)
			case BookSoft:
				softLines = append(softLines, line)
			}
		}
		if q.HasOver() {
			overImplied = append(overImplied, AmericanToImplied(q.OverPrice))
			if summary.BestOverPrice == nil || q.OverPrice > *summary.BestOverPrice {
				p := q.OverPrice
				summary.BestOverPrice = &p
			}
		}
		if q.HasUnder() {
			underImplied = append(underImplied, AmericanToImplied(q.UnderPrice))
			if summary.BestUnderPrice == nil || q.UnderPrice > *summary.BestUnderPrice {
				p := q.UnderPrice
				summary.BestUnderPrice = &p
			}
		}
	}

	if len(lines) > 0 {
		summary.ConsensusLine = floatPtr(ConsensusLine(lines))
		lo, hi := lineRange(lines)
		summary.LineSpread = floatPtr(hi.Sub(lo).InexactFloat64())
	}

	var sharp, soft *decimal.Decimal
	if len(sharpLines) > 0 {
		m := meanDecimal(sharpLines)
		sharp = &m
		summary.SharpConsensus = floatPtr(m.InexactFloat64())
	}
	if len(softLines) > 0 {
		m := meanDecimal(softLines)
		soft = &m
		summary.SoftConsensus = floatPtr(m.InexactFloat64())
	}
	if sharp != nil && soft != nil {
		delta := sharp.Sub(*soft)
		summary.SharpSoftDelta = floatPtr(delta.InexactFloat64())
		if signal := sharpSoftSignal(delta, decimal.NewFromFloat(cfg.SharpSoftThreshold), *sharp, *soft); signal != "" {
			summary.Signals = append(summary.Signals, signal)
		}
	}

	if len(overImplied) > 0 {
		summary.AvgOverImplied = floatPtr(meanFloat(overImplied))
	}
	if len(underImplied) > 0 {
		summary.AvgUnderImplied = floatPtr(meanFloat(underImplied))
	}
	summary.MarketLean = Lean(summary.AvgOverImplied, summary.AvgUnderImplied, cfg.LeanBand)
	if summary.MarketLean != models.LeanNeutral {
		summary.Signals = append(summary.Signals, fmt.Sprintf("Market prices lean %s (%.1f%% over vs %.1f%% under implied)",
			summary.MarketLean, *summary.AvgOverImplied*100, *summary.AvgUnderImplied*100))
	}

	if summary.ConsensusLine != nil && requestedLine > 0 && cfg.LineGapSignal > 0 {
		gap := requestedLine - *summary.ConsensusLine
		if math.Abs(gap) >= cfg.LineGapSignal {
			side := "above"
			if gap < 0 {
				side = "below"
			}
			summary.Signals = append(summary.Signals, fmt.Sprintf("Requested line %.1f is %.1f pts %s market consensus %.1f",
				requestedLine, math.Abs(gap), side, *summary.ConsensusLine))
		}
	}

	return summary
}

// ConsensusLine returns the most frequent line when exactly one line has
// the highest count, otherwise the median rounded to the nearest half point.
func ConsensusLine(lines []decimal.Decimal) float64 {
	if len(lines) == 0 {
		return 0
	}
	if mode, ok := uniqueMode(lines); ok {
		return mode.InexactFloat64()
	}
	return halfPoint(median(lines)).InexactFloat64()
}

// Lean compares mean implied over and under probabilities. Either side
// missing yields NEUTRAL.
func Lean(avgOver, avgUnder *float64, band float64) models.MarketLean {
	if avgOver == nil || avgUnder == nil {
		return models.LeanNeutral
	}
	diff := *avgOver - *avgUnder
	switch {
	case diff > band:
		return models.LeanOver
	case diff < -band:
		return models.LeanUnder
	default:
		return models.LeanNeutral
	}
}

func sharpSoftSignal(delta, threshold, sharp, soft decimal.Decimal) string {
	switch {
	case delta.GreaterThan(threshold):
		return fmt.Sprintf("Sharp books %s pts above soft books (%s vs %s): pressure toward UNDER",
			delta.StringFixed(1), sharp.StringFixed(1), soft.StringFixed(1))
	case delta.LessThan(threshold.Neg()):
		return fmt.Sprintf("Sharp books %s pts below soft books (%s vs %s): pressure toward OVER",
			delta.Abs().StringFixed(1), sharp.StringFixed(1), soft.StringFixed(1))
	default:
		return ""
	}
}

func uniqueMode(lines []decimal.Decimal) (decimal.Decimal, bool) {
	counts := make(map[string]int, len(lines))
	values := make(map[string]decimal.Decimal, len(lines))
	for _, l := range lines {
		k := l.String()
		counts[k]++
		values[k] = l
	}
	best, bestCount, tied := "", 0, false
	for k, c := range counts {
		switch {
		case c > bestCount:
			best, bestCount, tied = k, c, false
		case c == bestCount:
			tied = true
		}
	}
	if tied {
		return zero, false
	}
	return values[best], true
}

func median(lines []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(lines))
	copy(sorted, lines)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return sorted[n/2-1].Add(sorted[n/2]).Div(two)
}

func halfPoint(d decimal.Decimal) decimal.Decimal {
	return d.Mul(two).Round(0).Div(two)
}

func lineRange(lines []decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	lo, hi := lines[0], lines[0]
	for _, l := range lines[1:] {
		if l.LessThan(lo) {
			lo = l
		}
		if l.GreaterThan(hi) {
			hi = l
		}
	}
	return lo, hi
}

func meanDecimal(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return zero
	}
	return decimal.Sum(values[0], values[1:]...).Div(decimal.NewFromInt(int64(len(values))))
}

func meanFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func floatPtr(v float64) *float64 {
	return &v
}

// SignalSide reports which side a summary signal favors, or "" when it is
// informational only.
func SignalSide(signal string) models.Direction {
	switch {
	case strings.HasSuffix(signal, "pressure toward OVER"), strings.HasPrefix(signal, "Market prices lean OVER"):
		return models.DirectionOver
	case strings.HasSuffix(signal, "pressure toward UNDER"), strings.HasPrefix(signal, "Market prices lean UNDER"):
		return models.DirectionUnder
	default:
		return ""
	}
}
