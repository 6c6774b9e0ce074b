// Package config provides configuration management for the prop analyzer.
package config

import (
	"time"

	"github.com/yourusername/stat-prophet/internal/confidence"
	"github.com/yourusername/stat-prophet/internal/engine"
	"github.com/yourusername/stat-prophet/internal/market"
	"github.com/yourusername/stat-prophet/internal/models"
	"github.com/yourusername/stat-prophet/internal/prediction"
	"github.com/yourusername/stat-prophet/internal/stats"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Stats       StatsConfig       `mapstructure:"stats" validate:"required"`
	Situational SituationalConfig `mapstructure:"situational"`
	Market      MarketConfig      `mapstructure:"market" validate:"required"`
	Model       ModelConfig       `mapstructure:"model" validate:"required"`
	Confidence  ConfidenceConfig  `mapstructure:"confidence" validate:"required"`
	Classifier  ClassifierConfig  `mapstructure:"classifier"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// StatsConfig controls game log normalization and aggregation
type StatsConfig struct {
	MaxGames       int       `mapstructure:"max_games" validate:"required,gt=0,lte=82"`
	RecentWindow   int       `mapstructure:"recent_window" validate:"required,gt=0"`
	TrendWindow    int       `mapstructure:"trend_window" validate:"required,gt=0"`
	TrendThreshold float64   `mapstructure:"trend_threshold" validate:"gt=0,lt=1"`
	RecencyWeights []float64 `mapstructure:"recency_weights" validate:"required,min=1,dive,gt=0"`
}

// SituationalConfig holds the matchup defaults used when a request omits them
type SituationalConfig struct {
	DefaultDefRating float64 `mapstructure:"default_def_rating" validate:"gt=0"`
	DefaultRestDays  int     `mapstructure:"default_rest_days" validate:"gte=0"`
}

// MarketConfig controls odds normalization
type MarketConfig struct {
	FuzzyCutoff        float64  `mapstructure:"fuzzy_cutoff" validate:"gt=0,lte=1"`
	LeanBand           float64  `mapstructure:"lean_band" validate:"gte=0,lt=1"`
	SharpSoftThreshold float64  `mapstructure:"sharp_soft_threshold" validate:"gte=0"`
	LineGapSignal      float64  `mapstructure:"line_gap_signal" validate:"gte=0"`
	SharpBooks         []string `mapstructure:"sharp_books" validate:"dive,bookkey"`
	SoftBooks          []string `mapstructure:"soft_books" validate:"dive,bookkey"`
}

// ModelConfig holds the heuristic probability constants
type ModelConfig struct {
	SeasonWeight          float64 `mapstructure:"season_weight" validate:"gte=0"`
	Last5Weight           float64 `mapstructure:"last5_weight" validate:"gte=0"`
	Last3Weight           float64 `mapstructure:"last3_weight" validate:"gte=0"`
	FallbackScale         float64 `mapstructure:"fallback_scale" validate:"gt=0"`
	Steepness             float64 `mapstructure:"steepness" validate:"gt=0"`
	TrendBand             float64 `mapstructure:"trend_band" validate:"gte=0"`
	TrendAdjustment       float64 `mapstructure:"trend_adjustment" validate:"gte=0"`
	HomeAdjustment        float64 `mapstructure:"home_adjustment" validate:"gte=0"`
	RestedDays            int     `mapstructure:"rested_days" validate:"gte=0"`
	RestedAdjustment      float64 `mapstructure:"rested_adjustment" validate:"gte=0"`
	BackToBackPenalty     float64 `mapstructure:"back_to_back_penalty" validate:"gte=0"`
	WeakDefenseRating     float64 `mapstructure:"weak_defense_rating" validate:"gt=0"`
	StrongDefenseRating   float64 `mapstructure:"strong_defense_rating" validate:"gt=0"`
	DefenseAdjustment     float64 `mapstructure:"defense_adjustment" validate:"gte=0"`
	ConsistencyRatio      float64 `mapstructure:"consistency_ratio" validate:"gte=0"`
	ConsistencyAdjustment float64 `mapstructure:"consistency_adjustment" validate:"gte=0"`
	Floor                 float64 `mapstructure:"floor" validate:"gte=0,lte=100"`
	Ceiling               float64 `mapstructure:"ceiling" validate:"gte=0,lte=100"`
}

// ConfidenceConfig holds the confidence synthesis constants
type ConfidenceConfig struct {
	Start              float64 `mapstructure:"start" validate:"gte=0,lte=100"`
	Floor              float64 `mapstructure:"floor" validate:"gte=0,lte=100"`
	Ceiling            float64 `mapstructure:"ceiling" validate:"gte=0,lte=100"`
	HitRateStrong      float64 `mapstructure:"hit_rate_strong" validate:"gte=0,lte=100"`
	HitRateStrongBonus float64 `mapstructure:"hit_rate_strong_bonus" validate:"gte=0"`
	HitRateGood        float64 `mapstructure:"hit_rate_good" validate:"gte=0,lte=100"`
	HitRateGoodBonus   float64 `mapstructure:"hit_rate_good_bonus" validate:"gte=0"`
	HitRatePoor        float64 `mapstructure:"hit_rate_poor" validate:"gte=0,lte=100"`
	HitRatePoorPenalty float64 `mapstructure:"hit_rate_poor_penalty" validate:"gte=0"`
	HitRateWeak        float64 `mapstructure:"hit_rate_weak" validate:"gte=0,lte=100"`
	HitRateWeakPenalty float64 `mapstructure:"hit_rate_weak_penalty" validate:"gte=0"`
	TrendAdjustment    float64 `mapstructure:"trend_adjustment" validate:"gte=0"`
	EdgeThreshold      float64 `mapstructure:"edge_threshold" validate:"gt=0"`
	EdgeAdjustment     float64 `mapstructure:"edge_adjustment" validate:"gte=0"`
	LeanAdjustment     float64 `mapstructure:"lean_adjustment" validate:"gte=0"`
	MinBet             float64 `mapstructure:"min_bet" validate:"gte=0,lte=100"`
	NoBetOnConflict    bool    `mapstructure:"no_bet_on_conflict"`
}

// ClassifierConfig represents the optional trained classifier
type ClassifierConfig struct {
	Enabled         bool   `mapstructure:"enabled"`
	ModelPath       string `mapstructure:"model_path"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	CacheMaxSize    int    `mapstructure:"cache_max_size" validate:"gte=0"`
}

// MetricsConfig represents metrics output configuration
type MetricsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	TextfilePath string `mapstructure:"textfile_path"`
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// CacheTTL returns the classifier cache lifetime
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Classifier.CacheTTLSeconds) * time.Second
}

// EngineSettings converts the configuration into engine constants
func (c *Config) EngineSettings() engine.Settings {
	return engine.Settings{
		MaxGames: c.Stats.MaxGames,
		Stats: stats.Config{
			RecencyWeights: append([]float64(nil), c.Stats.RecencyWeights...),
			TrendWindow:    c.Stats.TrendWindow,
			TrendThreshold: c.Stats.TrendThreshold,
			RecentWindow:   c.Stats.RecentWindow,
		},
		Market: market.Config{
			FuzzyCutoff:        c.Market.FuzzyCutoff,
			LeanBand:           c.Market.LeanBand,
			SharpSoftThreshold: c.Market.SharpSoftThreshold,
			LineGapSignal:      c.Market.LineGapSignal,
			SharpBooks:         append([]string(nil), c.Market.SharpBooks...),
			SoftBooks:          append([]string(nil), c.Market.SoftBooks...),
		},
		Heuristic: prediction.HeuristicConfig{
			SeasonWeight:          c.Model.SeasonWeight,
			Last5Weight:           c.Model.Last5Weight,
			Last3Weight:           c.Model.Last3Weight,
			FallbackScale:         c.Model.FallbackScale,
			Steepness:             c.Model.Steepness,
			TrendBand:             c.Model.TrendBand,
			TrendAdjustment:       c.Model.TrendAdjustment,
			HomeAdjustment:        c.Model.HomeAdjustment,
			RestedDays:            c.Model.RestedDays,
			RestedAdjustment:      c.Model.RestedAdjustment,
			BackToBackPenalty:     c.Model.BackToBackPenalty,
			WeakDefenseRating:     c.Model.WeakDefenseRating,
			StrongDefenseRating:   c.Model.StrongDefenseRating,
			DefenseAdjustment:     c.Model.DefenseAdjustment,
			ConsistencyRatio:      c.Model.ConsistencyRatio,
			ConsistencyAdjustment: c.Model.ConsistencyAdjustment,
			Floor:                 c.Model.Floor,
			Ceiling:               c.Model.Ceiling,
		},
		Confidence: confidence.Config{
			Start:              c.Confidence.Start,
			Floor:              c.Confidence.Floor,
			Ceiling:            c.Confidence.Ceiling,
			HitRateStrong:      c.Confidence.HitRateStrong,
			HitRateStrongBonus: c.Confidence.HitRateStrongBonus,
			HitRateGood:        c.Confidence.HitRateGood,
			HitRateGoodBonus:   c.Confidence.HitRateGoodBonus,
			HitRatePoor:        c.Confidence.HitRatePoor,
			HitRatePoorPenalty: c.Confidence.HitRatePoorPenalty,
			HitRateWeak:        c.Confidence.HitRateWeak,
			HitRateWeakPenalty: c.Confidence.HitRateWeakPenalty,
			TrendAdjustment:    c.Confidence.TrendAdjustment,
			EdgeThreshold:      c.Confidence.EdgeThreshold,
			EdgeAdjustment:     c.Confidence.EdgeAdjustment,
			LeanAdjustment:     c.Confidence.LeanAdjustment,
			MinBet:             c.Confidence.MinBet,
			NoBetOnConflict:    c.Confidence.NoBetOnConflict,
		},
		DefaultSituational: models.Situational{
			OpponentDefRating: c.Situational.DefaultDefRating,
			RestDays:          c.Situational.DefaultRestDays,
		},
	}
}
