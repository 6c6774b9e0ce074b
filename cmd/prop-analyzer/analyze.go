package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yourusername/stat-prophet/internal/datasource"
	"github.com/yourusername/stat-prophet/internal/engine"
	"github.com/yourusername/stat-prophet/internal/models"
	"github.com/yourusername/stat-prophet/internal/service"
)

var analyzeOpts struct {
	player      string
	stat        string
	line        float64
	direction   string
	opponent    string
	home        bool
	defRating   float64
	restDays    int
	gamesPath   string
	gamesSource string
	oddsPath    string
	asJSON      bool
	withContext bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a single player prop",
	Example: `  prop-analyzer analyze --player "LeBron James" --stat points --line 25.5 \
    --direction over --opponent Celtics --games lebron.json --odds nba_odds.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildAnalyzeRequest(cmd)
		if err != nil {
			return err
		}

		result, err := eng.Analyze(cmd.Context(), req)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if analyzeOpts.asJSON {
			return writeJSON(out, result)
		}
		if err := renderAnalysis(out, result); err != nil {
			return err
		}
		if analyzeOpts.withContext {
			fmt.Fprintln(out)
			fmt.Fprint(out, engine.RenderContextBlock(result))
		}
		return nil
	},
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeOpts.player, "player", "", "Player name as it appears in the odds feed")
	f.StringVar(&analyzeOpts.stat, "stat", "points", "Statistic: points, rebounds, assists, steals, blocks, threes, pra")
	f.Float64Var(&analyzeOpts.line, "line", 0, "Prop line")
	f.StringVar(&analyzeOpts.direction, "direction", "over", "Side of the bet: over or under")
	f.StringVar(&analyzeOpts.opponent, "opponent", "", "Opposing team")
	f.BoolVar(&analyzeOpts.home, "home", false, "Player's team is at home")
	f.Float64Var(&analyzeOpts.defRating, "def-rating", 0, "Opponent defensive rating (0 uses the configured default)")
	f.IntVar(&analyzeOpts.restDays, "rest-days", models.UnknownRestDays, "Days of rest before the game (-1 uses the configured default)")
	f.StringVar(&analyzeOpts.gamesPath, "games", "", "Game log JSON file")
	f.StringVar(&analyzeOpts.gamesSource, "games-source", datasource.GenericSourceName, "Game log format: generic or api_sports")
	f.StringVar(&analyzeOpts.oddsPath, "odds", "", "Odds API event odds JSON file")
	f.BoolVar(&analyzeOpts.asJSON, "json", false, "Print the full result as JSON")
	f.BoolVar(&analyzeOpts.withContext, "context", false, "Also print the narration context block")

	_ = analyzeCmd.MarkFlagRequired("line")
	_ = analyzeCmd.MarkFlagRequired("games")
}

func buildAnalyzeRequest(cmd *cobra.Command) (engine.AnalysisRequest, error) {
	req := engine.AnalysisRequest{
		PlayerName: analyzeOpts.player,
		StatType:   analyzeOpts.stat,
		Line:       analyzeOpts.line,
		Direction:  analyzeOpts.direction,
	}

	if cmd.Flags().Changed("opponent") || cmd.Flags().Changed("home") ||
		cmd.Flags().Changed("def-rating") || cmd.Flags().Changed("rest-days") {
		sit := eng.Settings().DefaultSituational
		sit.Opponent = analyzeOpts.opponent
		sit.IsHome = analyzeOpts.home
		if analyzeOpts.defRating > 0 {
			sit.OpponentDefRating = analyzeOpts.defRating
		}
		if analyzeOpts.restDays >= 0 {
			sit.RestDays = analyzeOpts.restDays
		}
		req.Situational = &sit
	}

	var err error
	req.GameLog, err = readGameLog(analyzeOpts.gamesPath, analyzeOpts.gamesSource)
	if err != nil {
		return req, err
	}
	req.Odds, err = readOdds(analyzeOpts.oddsPath)
	if err != nil {
		return req, err
	}
	return req, nil
}

// readGameLog decodes a game log file and logs any structural problems.
func readGameLog(path, source string) ([]datasource.GameEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game log: %w", err)
	}

	entries, err := datasource.NewFactory(appLogger).DecodeGameLog(datasource.SourceType(source), data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode game log %s: %w", path, err)
	}

	for _, problem := range service.NewDataValidator(appLogger).ValidateGameEntries(entries) {
		appLogger.WithField("file", path).Warn(problem)
	}
	return entries, nil
}

// readOdds decodes an odds file. An empty path means no odds were supplied.
func readOdds(path string) ([]datasource.OddsEvent, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read odds: %w", err)
	}

	events, err := datasource.NewFactory(appLogger).DecodeOdds(datasource.OddsAPISourceType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode odds %s: %w", path, err)
	}

	for _, problem := range service.NewDataValidator(appLogger).ValidateOddsEvents(events) {
		appLogger.WithField("file", path).Warn(problem)
	}
	return events, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
