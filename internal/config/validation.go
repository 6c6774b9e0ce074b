package config

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var bookKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_]*$`)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() *CustomValidator {
	v := validator.New()

	_ = v.RegisterValidation("environment", validateEnvironment)
	_ = v.RegisterValidation("loglevel", validateLogLevel)
	_ = v.RegisterValidation("bookkey", validateBookKey)

	return &CustomValidator{validator: v}
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	return NewValidator().Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	if err := cv.validator.Struct(cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateBookKey accepts The Odds API style bookmaker keys such as
// "betfair_ex_us".
func validateBookKey(fl validator.FieldLevel) bool {
	return bookKeyPattern.MatchString(fl.Field().String())
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	c := cfg.Confidence
	if c.Floor > c.Ceiling {
		return fmt.Errorf("confidence floor %.1f cannot exceed ceiling %.1f", c.Floor, c.Ceiling)
	}
	if c.Start < c.Floor || c.Start > c.Ceiling {
		return fmt.Errorf("confidence start %.1f must lie between floor and ceiling", c.Start)
	}
	if c.MinBet < c.Floor || c.MinBet > c.Ceiling {
		return fmt.Errorf("confidence min_bet %.1f must lie between floor and ceiling", c.MinBet)
	}
	if !(c.HitRatePoor < c.HitRateWeak && c.HitRateWeak < c.HitRateGood && c.HitRateGood < c.HitRateStrong) {
		return fmt.Errorf("hit rate bands must satisfy poor < weak < good < strong")
	}

	m := cfg.Model
	if m.Floor >= m.Ceiling {
		return fmt.Errorf("model floor %.1f must be below ceiling %.1f", m.Floor, m.Ceiling)
	}
	if m.WeakDefenseRating <= m.StrongDefenseRating {
		return fmt.Errorf("weak_defense_rating must exceed strong_defense_rating")
	}
	if sum := m.SeasonWeight + m.Last5Weight + m.Last3Weight; math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("model blend weights must sum to 1, got %.3f", sum)
	}

	if overlap := intersect(cfg.Market.SharpBooks, cfg.Market.SoftBooks); len(overlap) > 0 {
		return fmt.Errorf("books listed as both sharp and soft: %s", strings.Join(overlap, ", "))
	}

	if cfg.Classifier.Enabled && cfg.Classifier.ModelPath == "" {
		return fmt.Errorf("classifier is enabled but model_path is empty")
	}

	if cfg.Metrics.Enabled && cfg.Metrics.TextfilePath == "" {
		return fmt.Errorf("metrics are enabled but textfile_path is empty")
	}

	return nil
}

func intersect(a, b []string) []string {
	seen := make(map[string]bool, len(a))
	for _, k := range a {
		seen[strings.ToLower(k)] = true
	}
	var out []string
	for _, k := range b {
		if seen[strings.ToLower(k)] {
			out = append(out, k)
		}
	}
	return out
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		field := fieldError.Namespace()
		tag := fieldError.Tag()
		value := fieldError.Value()

		switch tag {
		case "required":
			errMsg += fmt.Sprintf("- Field '%s' is required\n", field)
		case "min", "max":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: %s constraint violated\n", field, tag)
		case "gt", "gte", "lt", "lte":
			errMsg += fmt.Sprintf("- Field '%s' validation failed: numeric constraint %s=%s violated, got '%v'\n", field, tag, fieldError.Param(), value)
		case "environment":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: development, staging, production\n", field)
		case "loglevel":
			errMsg += fmt.Sprintf("- Field '%s' must be one of: debug, info, warn, error\n", field)
		case "bookkey":
			errMsg += fmt.Sprintf("- Field '%s' has invalid bookmaker key '%v'\n", field, value)
		default:
			errMsg += fmt.Sprintf("- Field '%s' failed validation: %s\n", field, tag)
		}
	}
	return fmt.Errorf("configuration validation failed:\n%s", errMsg)
}

// ValidateEnvironment validates environment-specific requirements
func ValidateEnvironment(cfg *Config) error {
	if cfg.IsProduction() && cfg.App.LogLevel == "debug" {
		return fmt.Errorf("production environment should not log at debug level")
	}
	return nil
}
