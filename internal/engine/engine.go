// Package engine runs a single prop analysis end to end: it normalizes the
// game log, aggregates recent form, summarizes the market, scores the line
// and synthesizes a recommendation.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/stat-prophet/internal/confidence"
	"github.com/yourusername/stat-prophet/internal/datasource"
	"github.com/yourusername/stat-prophet/internal/logger"
	"github.com/yourusername/stat-prophet/internal/market"
	"github.com/yourusername/stat-prophet/internal/metrics"
	"github.com/yourusername/stat-prophet/internal/models"
	"github.com/yourusername/stat-prophet/internal/prediction"
	"github.com/yourusername/stat-prophet/internal/service"
	"github.com/yourusername/stat-prophet/internal/stats"
)

// recentGamesShown bounds AnalysisResult.RecentGames.
const recentGamesShown = 10

// Settings gathers the constants of every engine stage.
type Settings struct {
	MaxGames           int
	Stats              stats.Config
	Market             market.Config
	Heuristic          prediction.HeuristicConfig
	Confidence         confidence.Config
	DefaultSituational models.Situational
}

// DefaultSettings returns the standard constants.
func DefaultSettings() Settings {
	return Settings{
		MaxGames:           service.DefaultMaxGames,
		Stats:              stats.DefaultConfig(),
		Market:             market.DefaultConfig(),
		Heuristic:          prediction.DefaultHeuristicConfig(),
		Confidence:         confidence.DefaultConfig(),
		DefaultSituational: models.DefaultSituational(),
	}
}

// AnalysisRequest is one prop to analyze. StatType and Direction are taken
// as the caller wrote them and validated by Analyze. A nil Situational uses
// the configured defaults.
type AnalysisRequest struct {
	PlayerName  string                 `json:"player_name"`
	StatType    string                 `json:"stat_type"`
	Line        float64                `json:"line"`
	Direction   string                 `json:"direction"`
	Situational *models.Situational    `json:"situational,omitempty"`
	GameLog     []datasource.GameEntry `json:"-"`
	Odds        []datasource.OddsEvent `json:"-"`
}

// Engine is the analysis entry point. It holds only read-only collaborators
// and is safe for concurrent use.
type Engine struct {
	settings    Settings
	validator   *service.DataValidator
	normalizer  *service.DataNormalizer
	aggregator  *stats.Aggregator
	market      *market.Normalizer
	predictor   *prediction.Predictor
	synthesizer *confidence.Synthesizer
	log         *logger.AnalysisLogger
	audit       *logger.AuditLogger
}

// New creates an engine. classifier may be nil, in which case every
// probability comes from the heuristic. A nil log discards output.
func New(settings Settings, classifier prediction.Classifier, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	heuristic := prediction.NewHeuristic(settings.Heuristic)
	analysisLog := logger.NewAnalysisLogger(log)

	return &Engine{
		settings:    settings,
		validator:   service.NewDataValidator(analysisLog),
		normalizer:  service.NewDataNormalizer(settings.MaxGames, analysisLog),
		aggregator:  stats.NewAggregator(settings.Stats),
		market:      market.NewNormalizer(settings.Market),
		predictor:   prediction.NewPredictor(heuristic, classifier, logger.NewMLLogger(log)),
		synthesizer: confidence.NewSynthesizer(settings.Confidence),
		log:         analysisLog,
		audit:       logger.NewAuditLogger(log),
	}
}

// Settings returns the constants in use.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Analyze runs one analysis. A request that fails validation returns a
// *models.MalformedInputError. A game log with no qualifying games is not an
// error: the result carries InsufficientData and whatever market data could
// still be summarized.
func (e *Engine) Analyze(ctx context.Context, req AnalysisRequest) (*models.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	stat, dir, err := e.validator.ValidateProp(req.StatType, req.Line, req.Direction)
	if err != nil {
		var malformed *models.MalformedInputError
		if errors.As(err, &malformed) {
			metrics.RecordMalformedRequest(malformed.Field)
			e.log.LogMalformedRequest(malformed.Field, malformed.Reason)
		}
		return nil, err
	}

	sit := e.situational(req.Situational)
	result := &models.AnalysisResult{
		ID:          uuid.New(),
		GeneratedAt: time.Now().UTC(),
		PlayerName:  req.PlayerName,
		StatType:    stat,
		Line:        req.Line,
		Direction:   dir,
		Situational: sit,
		Factors:     models.Factors{Supporting: []string{}, Opposing: []string{}},
	}

	result.Market = e.summarizeMarket(req.Odds, req.PlayerName, sit.Opponent, stat, req.Line)

	records, report := e.normalizer.Normalize(req.GameLog, stat)
	metrics.RecordExcludedGames(report.Excluded)
	e.log.LogNormalization(string(stat), report.Total, report.Kept, report.Excluded)

	if len(records) == 0 {
		reason := fmt.Sprintf("no qualifying %s games in %d game log entries", stat, len(req.GameLog))
		result.InsufficientData = &models.DataAbsent{Reason: reason}
		result.ConfidenceScore = e.settings.Confidence.Floor
		result.Recommendation = models.RecommendNoBet

		metrics.RecordInsufficientData(string(stat), time.Since(start).Seconds())
		e.log.LogInsufficientData(result.ID.String(), string(stat), reason, len(req.GameLog))
		return result, nil
	}

	e.aggregate(result, records, req.GameLog)

	fv := prediction.BuildFeatures(records, sit, e.aggregator.Config().RecentWindow)
	result.Features = &fv

	pred := e.predictor.Predict(ctx, stat, req.Line, fv)
	result.OverProbability = pred.OverProbability
	result.BetProbability = pred.OverProbability
	if dir == models.DirectionUnder {
		result.BetProbability = 100 - pred.OverProbability
	}
	result.ProbabilitySource = pred.Source
	result.Verdict = pred.Verdict

	result.Factors = prediction.AnalyzeFactors(e.settings.Heuristic, req.Line, fv)
	addMarketFactors(&result.Factors, result.Market)

	assessment := e.synthesizer.Assess(confidence.Inputs{
		Direction:     dir,
		Last10HitRate: result.HitRates.Last10,
		Trend:         result.Trend,
		Edge:          result.Edge,
		Lean:          result.Market.Lean(),
	})
	result.ConfidenceScore = assessment.Score
	result.Recommendation = assessment.Recommendation
	result.EdgeDirection = assessment.EdgeDirection
	result.SignalConflict = assessment.SignalConflict

	e.record(result, time.Since(start))
	return result, nil
}

func (e *Engine) aggregate(result *models.AnalysisResult, records []models.GameRecord, entries []datasource.GameEntry) {
	values := models.Values(records)

	result.RecentForm = e.aggregator.RecentForm(records)
	result.Trend = result.RecentForm.Trend
	result.HitRates = e.aggregator.HitRates(values, result.Line, result.Direction)
	result.Projection = e.aggregator.Projection(values)
	result.Edge = result.Projection - result.Line
	result.Season = e.aggregator.SeasonProfile(e.normalizer.NormalizeAll(entries))

	shown := records
	if len(shown) > recentGamesShown {
		shown = shown[:recentGamesShown]
	}
	result.RecentGames = append([]models.GameRecord(nil), shown...)
}

func (e *Engine) summarizeMarket(events []datasource.OddsEvent, player, opponent string, stat models.StatType, line float64) *models.MarketSummary {
	summary, res := e.market.Summarize(events, market.Query{
		PlayerName: player,
		Opponent:   opponent,
		StatType:   stat,
		Line:       line,
	})

	metrics.RecordEntityResolution(string(models.EntityTeam), string(res.Team))
	metrics.RecordEntityResolution(string(models.EntityPlayer), string(res.Player))

	if summary.Available() {
		metrics.RecordMarket(string(summary.Lean()), summary.BookCount)
	} else if summary.Absent != nil && len(events) > 0 {
		e.log.LogEntityNotResolved(summary.Absent.Reason, summary.Absent.Candidates)
	}
	return summary
}

func (e *Engine) situational(sit *models.Situational) models.Situational {
	if sit == nil {
		return e.settings.DefaultSituational
	}
	out := *sit
	if out.OpponentDefRating <= 0 {
		out.OpponentDefRating = e.settings.DefaultSituational.OpponentDefRating
	}
	if out.RestDays < 0 {
		out.RestDays = e.settings.DefaultSituational.RestDays
	}
	return out
}

func (e *Engine) record(result *models.AnalysisResult, elapsed time.Duration) {
	id := result.ID.String()

	metrics.RecordAnalysis(string(result.StatType), string(result.Recommendation), result.ConfidenceScore, elapsed.Seconds())
	metrics.RecordProbabilitySource(string(result.ProbabilitySource))

	if result.SignalConflict {
		e.log.LogSignalConflict(id, string(result.Direction), string(result.EdgeDirection), result.Edge)
	}
	e.log.LogAnalysisCompleted(id, result.PlayerName, string(result.StatType), string(result.Direction),
		result.Line, result.OverProbability, result.ConfidenceScore, string(result.Recommendation),
		string(result.ProbabilitySource), float64(elapsed.Microseconds())/1000)
	e.audit.LogRecommendation(id, result.PlayerName, string(result.StatType), result.Line,
		string(result.Direction), string(result.Recommendation), result.ConfidenceScore,
		result.SignalConflict, result.GeneratedAt)
}

// addMarketFactors files directional market signals under the side they favor.
func addMarketFactors(factors *models.Factors, summary *models.MarketSummary) {
	if !summary.Available() {
		return
	}
	for _, signal := range summary.Signals {
		switch market.SignalSide(signal) {
		case models.DirectionOver:
			factors.Supporting = append(factors.Supporting, signal)
		case models.DirectionUnder:
			factors.Opposing = append(factors.Opposing, signal)
		}
	}
}
