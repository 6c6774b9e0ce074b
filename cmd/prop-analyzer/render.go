package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/stat-prophet/internal/engine"
	"github.com/yourusername/stat-prophet/internal/market"
	"github.com/yourusername/stat-prophet/internal/models"
)

func renderAnalysis(w io.Writer, r *models.AnalysisResult) error {
	fmt.Fprintf(w, "%s  %s %.1f %s\n\n", displayName(r.PlayerName), r.StatType.Label(), r.Line, r.Direction)

	if r.InsufficientData != nil {
		fmt.Fprintf(w, "Insufficient data: %s\n", r.InsufficientData.Reason)
		fmt.Fprintf(w, "Recommendation: %s\n", r.Recommendation)
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	rows := [][]string{
		{"Projection", fmt.Sprintf("%.1f", r.Projection)},
		{"Edge", fmt.Sprintf("%+.1f (%s)", r.Edge, orDash(string(r.EdgeDirection)))},
		{"Trend", string(r.Trend)},
		{"Hit rate L5", rate(r.HitRates.Last5)},
		{"Hit rate L10", rate(r.HitRates.Last10)},
		{"Hit rate season", rate(r.HitRates.Season)},
		{"Over probability", fmt.Sprintf("%.1f%% (%s)", r.OverProbability, r.ProbabilitySource)},
		{"Verdict", fmt.Sprintf("%s / %s", r.Verdict.Call, r.Verdict.Strength)},
		{"Market lean", string(r.Market.Lean())},
		{"Confidence", fmt.Sprintf("%.0f", r.ConfidenceScore)},
		{"Recommendation", string(r.Recommendation)},
	}
	for _, row := range rows {
		if err := table.Append(row[0], row[1]); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if r.SignalConflict {
		fmt.Fprintf(w, "\nWarning: projection favors %s\n", r.EdgeDirection)
	}
	if len(r.Factors.Supporting) > 0 {
		fmt.Fprintf(w, "\nFor:     %s\n", strings.Join(r.Factors.Supporting, "; "))
	}
	if len(r.Factors.Opposing) > 0 {
		fmt.Fprintf(w, "Against: %s\n", strings.Join(r.Factors.Opposing, "; "))
	}
	fmt.Fprintf(w, "\n%s\n", engine.FallbackSummary(r))
	return nil
}

func renderParlay(w io.Writer, p *engine.Parlay) error {
	table := tablewriter.NewWriter(w)
	table.Header("#", "Player", "Prop", "Bet prob", "Fair odds", "Confidence", "Rec")

	for i, leg := range p.Legs {
		legOdds := "-"
		if odds, err := market.ProbabilityToAmerican(leg.BetProbability / 100); err == nil {
			legOdds = market.FormatAmerican(odds)
		}
		if err := table.Append(
			fmt.Sprintf("%d", i+1),
			displayName(leg.PlayerName),
			fmt.Sprintf("%s %.1f %s", leg.StatType.Label(), leg.Line, leg.Direction),
			fmt.Sprintf("%.1f%%", leg.BetProbability),
			legOdds,
			fmt.Sprintf("%.0f", leg.ConfidenceScore),
			string(leg.Recommendation),
		); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\nCombined probability: %.2f%%  Fair odds: %s\n", p.Probability, p.FairOddsText())
	return nil
}

func rate(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", *v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func displayName(s string) string {
	if s == "" {
		return "(unnamed player)"
	}
	return s
}
