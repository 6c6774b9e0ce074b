package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/stat-prophet/internal/engine"
)

const (
	// EnvPrefix prefixes every environment override, e.g. STAT_PROPHET_APP_LOG_LEVEL
	EnvPrefix = "STAT_PROPHET"
	// DefaultConfigPath is read when no path is given
	DefaultConfigPath = "config/config.yaml"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration over the built-in engine defaults.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}

// setDefaults mirrors engine.DefaultSettings so an empty file still yields a
// valid configuration.
func setDefaults(v *viper.Viper) {
	d := engine.DefaultSettings()

	v.SetDefault("app.name", "stat-prophet")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("stats.max_games", d.MaxGames)
	v.SetDefault("stats.recent_window", d.Stats.RecentWindow)
	v.SetDefault("stats.trend_window", d.Stats.TrendWindow)
	v.SetDefault("stats.trend_threshold", d.Stats.TrendThreshold)
	v.SetDefault("stats.recency_weights", d.Stats.RecencyWeights)

	v.SetDefault("situational.default_def_rating", d.DefaultSituational.OpponentDefRating)
	v.SetDefault("situational.default_rest_days", d.DefaultSituational.RestDays)

	v.SetDefault("market.fuzzy_cutoff", d.Market.FuzzyCutoff)
	v.SetDefault("market.lean_band", d.Market.LeanBand)
	v.SetDefault("market.sharp_soft_threshold", d.Market.SharpSoftThreshold)
	v.SetDefault("market.line_gap_signal", d.Market.LineGapSignal)
	v.SetDefault("market.sharp_books", d.Market.SharpBooks)
	v.SetDefault("market.soft_books", d.Market.SoftBooks)

	h := d.Heuristic
	v.SetDefault("model.season_weight", h.SeasonWeight)
	v.SetDefault("model.last5_weight", h.Last5Weight)
	v.SetDefault("model.last3_weight", h.Last3Weight)
	v.SetDefault("model.fallback_scale", h.FallbackScale)
	v.SetDefault("model.steepness", h.Steepness)
	v.SetDefault("model.trend_band", h.TrendBand)
	v.SetDefault("model.trend_adjustment", h.TrendAdjustment)
	v.SetDefault("model.home_adjustment", h.HomeAdjustment)
	v.SetDefault("model.rested_days", h.RestedDays)
	v.SetDefault("model.rested_adjustment", h.RestedAdjustment)
	v.SetDefault("model.back_to_back_penalty", h.BackToBackPenalty)
	v.SetDefault("model.weak_defense_rating", h.WeakDefenseRating)
	v.SetDefault("model.strong_defense_rating", h.StrongDefenseRating)
	v.SetDefault("model.defense_adjustment", h.DefenseAdjustment)
	v.SetDefault("model.consistency_ratio", h.ConsistencyRatio)
	v.SetDefault("model.consistency_adjustment", h.ConsistencyAdjustment)
	v.SetDefault("model.floor", h.Floor)
	v.SetDefault("model.ceiling", h.Ceiling)

	c := d.Confidence
	v.SetDefault("confidence.start", c.Start)
	v.SetDefault("confidence.floor", c.Floor)
	v.SetDefault("confidence.ceiling", c.Ceiling)
	v.SetDefault("confidence.hit_rate_strong", c.HitRateStrong)
	v.SetDefault("confidence.hit_rate_strong_bonus", c.HitRateStrongBonus)
	v.SetDefault("confidence.hit_rate_good", c.HitRateGood)
	v.SetDefault("confidence.hit_rate_good_bonus", c.HitRateGoodBonus)
	v.SetDefault("confidence.hit_rate_poor", c.HitRatePoor)
	v.SetDefault("confidence.hit_rate_poor_penalty", c.HitRatePoorPenalty)
	v.SetDefault("confidence.hit_rate_weak", c.HitRateWeak)
	v.SetDefault("confidence.hit_rate_weak_penalty", c.HitRateWeakPenalty)
	v.SetDefault("confidence.trend_adjustment", c.TrendAdjustment)
	v.SetDefault("confidence.edge_threshold", c.EdgeThreshold)
	v.SetDefault("confidence.edge_adjustment", c.EdgeAdjustment)
	v.SetDefault("confidence.lean_adjustment", c.LeanAdjustment)
	v.SetDefault("confidence.min_bet", c.MinBet)
	v.SetDefault("confidence.no_bet_on_conflict", c.NoBetOnConflict)

	v.SetDefault("classifier.enabled", false)
	v.SetDefault("classifier.model_path", "")
	v.SetDefault("classifier.cache_ttl_seconds", 300)
	v.SetDefault("classifier.cache_max_size", 1000)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile_path", "")
}
