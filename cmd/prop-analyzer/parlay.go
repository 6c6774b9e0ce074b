package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yourusername/stat-prophet/internal/datasource"
	"github.com/yourusername/stat-prophet/internal/engine"
	"github.com/yourusername/stat-prophet/internal/models"
)

// legEntry is one parlay leg as written in the legs file. File paths are
// resolved relative to the legs file.
type legEntry struct {
	PlayerName  string              `json:"player_name"`
	StatType    string              `json:"stat_type"`
	Line        float64             `json:"line"`
	Direction   string              `json:"direction"`
	Situational *models.Situational `json:"situational,omitempty"`
	Games       string              `json:"games"`
	GamesSource string              `json:"games_source,omitempty"`
	Odds        string              `json:"odds,omitempty"`
}

var parlayOpts struct {
	legsPath string
	asJSON   bool
}

var parlayCmd = &cobra.Command{
	Use:   "parlay",
	Short: "Analyze every leg of a parlay and price the combination",
	RunE: func(cmd *cobra.Command, args []string) error {
		reqs, err := loadLegs(parlayOpts.legsPath)
		if err != nil {
			return err
		}

		parlay, err := eng.AnalyzeParlay(cmd.Context(), reqs)
		if err != nil {
			return err
		}

		if parlayOpts.asJSON {
			return writeJSON(cmd.OutOrStdout(), parlay)
		}
		return renderParlay(cmd.OutOrStdout(), parlay)
	},
}

func init() {
	parlayCmd.Flags().StringVar(&parlayOpts.legsPath, "legs", "", "JSON file listing the parlay legs")
	parlayCmd.Flags().BoolVar(&parlayOpts.asJSON, "json", false, "Print the parlay as JSON")
	_ = parlayCmd.MarkFlagRequired("legs")
}

func loadLegs(path string) ([]engine.AnalysisRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read legs: %w", err)
	}

	var entries []legEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode legs %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	reqs := make([]engine.AnalysisRequest, 0, len(entries))
	for i, leg := range entries {
		if leg.Games == "" {
			return nil, &models.MalformedInputError{Field: "legs", Reason: fmt.Sprintf("leg %d has no games file", i+1)}
		}
		source := leg.GamesSource
		if source == "" {
			source = datasource.GenericSourceName
		}

		games, err := readGameLog(resolvePath(dir, leg.Games), source)
		if err != nil {
			return nil, fmt.Errorf("leg %d: %w", i+1, err)
		}
		var odds []datasource.OddsEvent
		if leg.Odds != "" {
			if odds, err = readOdds(resolvePath(dir, leg.Odds)); err != nil {
				return nil, fmt.Errorf("leg %d: %w", i+1, err)
			}
		}

		reqs = append(reqs, engine.AnalysisRequest{
			PlayerName:  leg.PlayerName,
			StatType:    leg.StatType,
			Line:        leg.Line,
			Direction:   leg.Direction,
			Situational: leg.Situational,
			GameLog:     games,
			Odds:        odds,
		})
	}
	return reqs, nil
}

func resolvePath(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
