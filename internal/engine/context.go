package engine

import (
	"fmt"
	"strings"

	"github.com/yourusername/stat-prophet/internal/market"
	"github.com/yourusername/stat-prophet/internal/models"
)

// contextGames is how many recent games the context block lists.
const contextGames = 5

// RenderContextBlock serializes a result into the text handed to a narration
// service. Every section is always present so the layout is stable; missing
// data is spelled out rather than omitted.
func RenderContextBlock(r *models.AnalysisResult) string {
	var b strings.Builder

	opponent := r.Situational.Opponent
	if opponent == "" {
		opponent = "Unknown"
	}
	venue := "Away"
	if r.Situational.IsHome {
		venue = "Home"
	}

	fmt.Fprintf(&b, "## Player: %s\n", orNA(r.PlayerName))
	fmt.Fprintf(&b, "## Prop: %s %s %s\n", strings.ToUpper(r.StatType.Label()), formatLine(r.Line), r.Direction)
	fmt.Fprintf(&b, "## Opponent: %s (%s, def rating %.1f, %d rest days)\n\n",
		opponent, venue, r.Situational.OpponentDefRating, r.Situational.RestDays)

	b.WriteString("### Season Averages:\n")
	if r.Season == nil {
		b.WriteString("- N/A\n")
	} else {
		for _, stat := range []models.StatType{models.StatPoints, models.StatRebounds, models.StatAssists} {
			fmt.Fprintf(&b, "- %s: %.1f\n", stat.Label(), r.Season.Average(stat))
		}
		fmt.Fprintf(&b, "- Minutes: %.1f MPG\n", r.Season.MinutesPerGame)
		fmt.Fprintf(&b, "- Games Played: %d\n", r.Season.GamesPlayed)
	}

	fmt.Fprintf(&b, "\n### Last %d Games (%s):\n", contextGames, r.StatType.Label())
	if len(r.RecentGames) == 0 {
		b.WriteString("- none\n")
	}
	for i, g := range r.RecentGames {
		if i == contextGames {
			break
		}
		fmt.Fprintf(&b, "  Game %d: %s in %.1f min", i+1, formatLine(g.Value), g.Minutes)
		if g.Opponent != "" {
			fmt.Fprintf(&b, " vs %s", g.Opponent)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n### Form:\n")
	if r.InsufficientData != nil {
		fmt.Fprintf(&b, "- Insufficient data: %s\n", r.InsufficientData.Reason)
	} else {
		fmt.Fprintf(&b, "- Projection: %.1f (edge %+.1f)\n", r.Projection, r.Edge)
		fmt.Fprintf(&b, "- Trend: %s\n", r.Trend)
		fmt.Fprintf(&b, "- Hit rate L5/L10/Season: %s / %s / %s\n",
			formatRate(r.HitRates.Last5), formatRate(r.HitRates.Last10), formatRate(r.HitRates.Season))
	}

	b.WriteString("\n### Model Prediction:\n")
	if r.InsufficientData != nil {
		b.WriteString("- N/A\n")
	} else {
		fmt.Fprintf(&b, "- Probability of OVER: %.1f%% (%s)\n", r.OverProbability, r.ProbabilitySource)
		fmt.Fprintf(&b, "- Verdict: %s (%s)\n", r.Verdict.Call, r.Verdict.Strength)
	}
	fmt.Fprintf(&b, "- Confidence: %.0f/100\n", r.ConfidenceScore)
	fmt.Fprintf(&b, "- Recommendation: %s\n", r.Recommendation)
	if r.SignalConflict {
		fmt.Fprintf(&b, "- Note: projection favors %s against the requested %s\n", r.EdgeDirection, r.Direction)
	}

	b.WriteString("\n### Supporting Factors:\n")
	writeList(&b, r.Factors.Supporting)
	b.WriteString("\n### Risk Factors:\n")
	writeList(&b, r.Factors.Opposing)

	b.WriteString("\n### Market:\n")
	writeMarket(&b, r.Market)

	return b.String()
}

// FallbackSummary is the one-line summary used when no narrator is available.
func FallbackSummary(r *models.AnalysisResult) string {
	if r.InsufficientData != nil {
		return fmt.Sprintf("Not enough data to analyze %s %s %s: %s.",
			orNA(r.PlayerName), r.StatType.Label(), formatLine(r.Line), r.InsufficientData.Reason)
	}

	call := strings.ToUpper(string(r.Verdict.Call))
	if r.Verdict.Call == models.VerdictPush {
		call = "AVOID"
	}
	return fmt.Sprintf("Model suggests %s with %.1f%% probability of the over. Recommendation: %s at %.0f/100 confidence.",
		call, r.OverProbability, r.Recommendation, r.ConfidenceScore)
}

func writeMarket(b *strings.Builder, m *models.MarketSummary) {
	switch {
	case m == nil:
		b.WriteString("- No odds supplied\n")
		return
	case m.Absent != nil:
		fmt.Fprintf(b, "- Unavailable: %s\n", m.Absent.Reason)
		if len(m.Absent.Candidates) > 0 {
			fmt.Fprintf(b, "- Closest names: %s\n", strings.Join(m.Absent.Candidates, ", "))
		}
		if len(m.Absent.AvailableEvents) > 0 {
			fmt.Fprintf(b, "- Available events: %s\n", strings.Join(m.Absent.AvailableEvents, "; "))
		}
		return
	}

	fmt.Fprintf(b, "- Event: %s\n", orNA(m.MatchedEvent))
	fmt.Fprintf(b, "- Books: %d\n", m.BookCount)
	fmt.Fprintf(b, "- Consensus line: %s", formatOptional(m.ConsensusLine))
	if m.SharpConsensus != nil || m.SoftConsensus != nil {
		fmt.Fprintf(b, " (sharp %s, soft %s)", formatOptional(m.SharpConsensus), formatOptional(m.SoftConsensus))
	}
	b.WriteString("\n")
	if m.AvgOverImplied != nil && m.AvgUnderImplied != nil {
		fmt.Fprintf(b, "- Implied OVER/UNDER: %.1f%% / %.1f%%\n", *m.AvgOverImplied*100, *m.AvgUnderImplied*100)
	}
	if m.BestOverPrice != nil {
		fmt.Fprintf(b, "- Best OVER price: %s\n", market.FormatAmerican(*m.BestOverPrice))
	}
	if m.BestUnderPrice != nil {
		fmt.Fprintf(b, "- Best UNDER price: %s\n", market.FormatAmerican(*m.BestUnderPrice))
	}
	fmt.Fprintf(b, "- Lean: %s\n", m.Lean())
	for _, s := range m.Signals {
		fmt.Fprintf(b, "- Signal: %s\n", s)
	}
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("- none\n")
		return
	}
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func formatRate(rate *float64) string {
	if rate == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", *rate)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return formatLine(*v)
}

// formatLine prints half-point lines without trailing zeros.
func formatLine(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
