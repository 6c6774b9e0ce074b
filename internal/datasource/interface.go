// Package datasource adapts provider payloads into the fixed shapes the
// analysis engine consumes. Provider field names never leave this package.
package datasource

import (
	"errors"
	"time"

	"github.com/yourusername/stat-prophet/internal/models"
)

// GameLogDecoder turns a provider's per-game payload into game entries.
type GameLogDecoder interface {
	DecodeGameLog(data []byte) ([]GameEntry, error)
	Name() string
}

// OddsDecoder turns a provider's bookmaker payload into odds events.
type OddsDecoder interface {
	DecodeOdds(data []byte) ([]OddsEvent, error)
	Name() string
}

// GameEntry is one provider game row in normalized field names. Minutes is
// kept raw because its validity is decided by the normalizer. A nil stat was
// not reported; NaN means the provider sent a value that does not parse.
type GameEntry struct {
	Date     time.Time                    `json:"date"`
	Team     string                       `json:"team,omitempty"`
	Opponent string                       `json:"opponent,omitempty"`
	Minutes  *string                      `json:"minutes"`
	Stats    map[models.StatType]*float64 `json:"stats"`
}

// Stat returns the reported value for a component statistic.
func (e GameEntry) Stat(stat models.StatType) (float64, bool) {
	if e.Stats == nil {
		return 0, false
	}
	v, ok := e.Stats[stat]
	if !ok || v == nil {
		return 0, false
	}
	return *v, true
}

// OddsEvent is one game with every book's player-prop markets.
type OddsEvent struct {
	ID           string     `json:"id"`
	HomeTeam     string     `json:"home_team"`
	AwayTeam     string     `json:"away_team"`
	CommenceTime time.Time  `json:"commence_time"`
	Books        []BookOdds `json:"books"`
}

// Label names the event as "Away @ Home".
func (e OddsEvent) Label() string {
	return e.AwayTeam + " @ " + e.HomeTeam
}

// BookOdds is one bookmaker's markets for an event.
type BookOdds struct {
	Key     string       `json:"key"`
	Title   string       `json:"title,omitempty"`
	Markets []MarketOdds `json:"markets"`
}

// MarketOdds is a single market such as player points.
type MarketOdds struct {
	Key      string        `json:"key"`
	Outcomes []OutcomeOdds `json:"outcomes"`
}

// OutcomeSide is the Over or Under side of a prop outcome.
type OutcomeSide string

// Outcome sides
const (
	SideOver  OutcomeSide = "over"
	SideUnder OutcomeSide = "under"
)

// OutcomeOdds is one priced side of a player prop.
type OutcomeOdds struct {
	Side        OutcomeSide `json:"side"`
	Participant string      `json:"participant"`
	Price       int         `json:"price"`
	Point       *float64    `json:"point,omitempty"`
}

// SourceError represents a failure to decode a provider payload
type SourceError struct {
	Source  string // Adapter name
	Code    string // Error code (e.g., "invalid_data")
	Message string // Error message
	Err     error  // Underlying error
}

func (e SourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

func (e SourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeInvalidData   = "invalid_data"
	ErrCodeProviderError = "provider_error"
)

// ErrInvalidData is wrapped by every decode failure.
var ErrInvalidData = errors.New("invalid data format")

// NewSourceError creates a new adapter error
func NewSourceError(source, code, message string, err error) SourceError {
	return SourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
