package service

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/stat-prophet/internal/datasource"
	"github.com/yourusername/stat-prophet/internal/models"
)

// propFields holds the caller-supplied request values before they are typed
type propFields struct {
	StatType  string  `validate:"required,stattype"`
	Line      float64 `validate:"finite,gt=0"`
	Direction string  `validate:"required,direction"`
}

// DataValidator validates analysis requests and adapter output
type DataValidator struct {
	validate *validator.Validate
	logger   logrus.FieldLogger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger logrus.FieldLogger) *DataValidator {
	v := validator.New()
	_ = v.RegisterValidation("stattype", func(fl validator.FieldLevel) bool {
		_, err := models.ParseStatType(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDirection(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return &DataValidator{validate: v, logger: logger}
}

// ValidateProp checks the statistic, line and direction of a request and
// returns their typed forms. Failures are *models.MalformedInputError.
func (v *DataValidator) ValidateProp(statType string, line float64, direction string) (models.StatType, models.Direction, error) {
	err := v.validate.Struct(propFields{StatType: statType, Line: line, Direction: direction})
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return "", "", formatFieldError(validationErrors[0], statType, line, direction)
		}
		return "", "", &models.MalformedInputError{Field: "request", Reason: err.Error()}
	}

	stat, _ := models.ParseStatType(statType)
	dir, _ := models.ParseDirection(direction)
	return stat, dir, nil
}

func formatFieldError(fieldError validator.FieldError, statType string, line float64, direction string) error {
	switch fieldError.StructField() {
	case "StatType":
		if statType == "" {
			return &models.MalformedInputError{Field: "stat_type", Reason: "is required"}
		}
		return &models.MalformedInputError{Field: "stat_type", Reason: fmt.Sprintf("unknown statistic '%s'", statType)}
	case "Line":
		return &models.MalformedInputError{Field: "line", Reason: fmt.Sprintf("must be a positive finite number, got %v", line)}
	case "Direction":
		if direction == "" {
			return &models.MalformedInputError{Field: "direction", Reason: "is required"}
		}
		return &models.MalformedInputError{Field: "direction", Reason: fmt.Sprintf("expected OVER or UNDER, got '%s'", direction)}
	default:
		return &models.MalformedInputError{Field: strings.ToLower(fieldError.StructField()), Reason: fieldError.Tag()}
	}
}

// ValidateOddsEvents reports structural problems in adapter odds output.
// Problems are advisory; the market normalizer skips what it cannot use.
func (v *DataValidator) ValidateOddsEvents(events []datasource.OddsEvent) []string {
	var issues []string

	for i, ev := range events {
		if ev.HomeTeam == "" || ev.AwayTeam == "" {
			issues = append(issues, fmt.Sprintf("event %d (%s) is missing a team name", i, ev.ID))
		}
		for _, book := range ev.Books {
			if book.Key == "" {
				issues = append(issues, fmt.Sprintf("event %s has a bookmaker without a key", ev.ID))
			}
			for _, m := range book.Markets {
				for _, o := range m.Outcomes {
					if o.Price != 0 && o.Price > -100 && o.Price < 100 {
						issues = append(issues, fmt.Sprintf("%s %s %s: price %d is not valid American odds", book.Key, m.Key, o.Participant, o.Price))
					}
					if o.Point != nil && (*o.Point <= 0 || math.IsNaN(*o.Point)) {
						issues = append(issues, fmt.Sprintf("%s %s %s: line %v must be positive", book.Key, m.Key, o.Participant, *o.Point))
					}
				}
			}
		}
	}

	if len(issues) > 0 && v.logger != nil {
		v.logger.WithField("issues", len(issues)).Warn("Odds payload has validation issues")
	}
	return issues
}

// ValidateGameEntries reports entries whose dates cannot be ordered and stat
// values that did not parse. Each problem is counted once for the whole log.
func (v *DataValidator) ValidateGameEntries(entries []datasource.GameEntry) []string {
	var undated, unparsable int
	for _, e := range entries {
		if e.Date.IsZero() {
			undated++
		}
		for _, val := range e.Stats {
			if val != nil && math.IsNaN(*val) {
				unparsable++
			}
		}
	}

	var issues []string
	if undated > 0 {
		issues = append(issues, fmt.Sprintf("%d of %d games have no date; they are ordered after dated games", undated, len(entries)))
	}
	if unparsable > 0 {
		issues = append(issues, fmt.Sprintf("%d stat values do not parse; those games are excluded for the affected statistic", unparsable))
	}
	return issues
}
