package datasource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OddsAPISourceName identifies the adapter for The Odds API event payloads.
const OddsAPISourceName = "odds_api"

// OddsAPIDecoder reads event odds responses shaped as
// event -> bookmakers -> markets -> outcomes.
type OddsAPIDecoder struct{}

// NewOddsAPIDecoder creates an odds payload decoder
func NewOddsAPIDecoder() *OddsAPIDecoder {
	return &OddsAPIDecoder{}
}

// Name returns the adapter name
func (d *OddsAPIDecoder) Name() string {
	return OddsAPISourceName
}

type oddsAPIEvent struct {
	ID           string             `json:"id"`
	CommenceTime string             `json:"commence_time"`
	HomeTeam     string             `json:"home_team"`
	AwayTeam     string             `json:"away_team"`
	Bookmakers   []oddsAPIBookmaker `json:"bookmakers"`
}

type oddsAPIBookmaker struct {
	Key     string          `json:"key"`
	Title   string          `json:"title"`
	Markets []oddsAPIMarket `json:"markets"`
}

type oddsAPIMarket struct {
	Key      string           `json:"key"`
	Outcomes []oddsAPIOutcome `json:"outcomes"`
}

type oddsAPIOutcome struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       flexPrice  `json:"price"`
	Point       flexNumber `json:"point"`
}

// DecodeOdds accepts a single event object or an array of events.
func (d *OddsAPIDecoder) DecodeOdds(data []byte) ([]OddsEvent, error) {
	var raw []oddsAPIEvent
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) == 0:
		return nil, nil
	case trimmed[0] == '{':
		var single oddsAPIEvent
		if err := json.Unmarshal(trimmed, &single); err != nil {
			return nil, NewSourceError(d.Name(), ErrCodeInvalidData, "failed to decode odds event", fmt.Errorf("%w: %v", ErrInvalidData, err))
		}
		raw = []oddsAPIEvent{single}
	default:
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, NewSourceError(d.Name(), ErrCodeInvalidData, "failed to decode odds events", fmt.Errorf("%w: %v", ErrInvalidData, err))
		}
	}

	events := make([]OddsEvent, 0, len(raw))
	for _, ev := range raw {
		out := OddsEvent{
			ID:       ev.ID,
			HomeTeam: ev.HomeTeam,
			AwayTeam: ev.AwayTeam,
			Books:    make([]BookOdds, 0, len(ev.Bookmakers)),
		}
		if t, err := time.Parse(time.RFC3339, ev.CommenceTime); err == nil {
			out.CommenceTime = t.UTC()
		}
		for _, bm := range ev.Bookmakers {
			book := BookOdds{Key: strings.ToLower(bm.Key), Title: bm.Title}
			for _, m := range bm.Markets {
				market := MarketOdds{Key: m.Key}
				for _, o := range m.Outcomes {
					side, ok := outcomeSide(o.Name)
					if !ok {
						continue
					}
					market.Outcomes = append(market.Outcomes, OutcomeOdds{
						Side:        side,
						Participant: o.Description,
						Price:       o.Price.value,
						Point:       o.Point.value,
					})
				}
				book.Markets = append(book.Markets, market)
			}
			out.Books = append(out.Books, book)
		}
		events = append(events, out)
	}
	return events, nil
}

func outcomeSide(name string) (OutcomeSide, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "over":
		return SideOver, true
	case "under":
		return SideUnder, true
	default:
		return "", false
	}
}
