// Package main provides the prop-analyzer CLI: it analyzes a player prop
// from a game log and an optional odds payload, and prices parlays.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/stat-prophet/internal/config"
	"github.com/yourusername/stat-prophet/internal/engine"
	"github.com/yourusername/stat-prophet/internal/logger"
	"github.com/yourusername/stat-prophet/internal/metrics"
	"github.com/yourusername/stat-prophet/internal/ml"
	"github.com/yourusername/stat-prophet/internal/prediction"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	logLevel   string
	cfg        *config.Config
	appLogger  *logrus.Logger
	cached     *ml.CachedClassifier
	eng        *engine.Engine
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigPath, "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level")

	rootCmd.AddCommand(analyzeCmd, parlayCmd, versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "prop-analyzer",
	Short: "Analyze player prop bets",
	Long: `Analyzes a player prop line against the player's game log and, when supplied,
bookmaker odds. Produces hit rates, a projection, an over probability and a
confidence-weighted recommendation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		setupDependencies()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			return nil
		}
		if cached != nil {
			hits, misses, ratio := cached.GetCacheStats()
			logger.NewMLLogger(appLogger).LogCacheStats(hits, misses, ratio)
		}
		if cfg.Metrics.Enabled {
			if err := metrics.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
				return fmt.Errorf("failed to write metrics: %w", err)
			}
			appLogger.WithField("path", cfg.Metrics.TextfilePath).Debug("Metrics written")
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "prop-analyzer %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	// A missing .env file is fine
	_ = godotenv.Load()

	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.App.LogLevel = logLevel
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	if err := config.ValidateEnvironment(loaded); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func setupDependencies() {
	// Logs go to stderr so table and JSON output stay clean on stdout
	appLogger = logger.NewLoggerFor(cfg.App.LogLevel, cfg.App.Environment, os.Stderr)

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	eng = engine.New(cfg.EngineSettings(), buildClassifier(), appLogger)
}

// buildClassifier returns nil when the classifier is disabled or cannot be
// loaded, leaving the heuristic as the only model.
func buildClassifier() prediction.Classifier {
	mlLog := logger.NewMLLogger(appLogger)
	if !cfg.Classifier.Enabled {
		mlLog.LogClassifierDisabled("disabled in configuration")
		return nil
	}

	scorer, err := ml.LoadClassifier(cfg.Classifier.ModelPath, mlLog)
	if err != nil {
		mlLog.LogClassifierDisabled(err.Error())
		return nil
	}
	mlLog.LogClassifierLoaded(cfg.Classifier.ModelPath, scorer.Version(), len(scorer.Stats()))

	cached = ml.NewCachedClassifier(scorer, cfg.CacheTTL(), cfg.Classifier.CacheMaxSize, mlLog)
	return cached
}
