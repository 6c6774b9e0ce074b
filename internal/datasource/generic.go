package datasource

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yourusername/stat-prophet/internal/models"
)

// GenericSourceName identifies the adapter for already-normalized game logs.
const GenericSourceName = "generic"

// GenericDecoder reads game logs that use the engine's own field names,
// either as a bare array or wrapped in a "games" object.
type GenericDecoder struct{}

// NewGenericDecoder creates a decoder for normalized game logs
func NewGenericDecoder() *GenericDecoder {
	return &GenericDecoder{}
}

// Name returns the adapter name
func (d *GenericDecoder) Name() string {
	return GenericSourceName
}

type genericGame struct {
	Date     string     `json:"date"`
	Team     string     `json:"team"`
	Opponent string     `json:"opponent"`
	Minutes  flexString `json:"minutes"`
	Points   flexNumber `json:"points"`
	Rebounds flexNumber `json:"rebounds"`
	Assists  flexNumber `json:"assists"`
	Steals   flexNumber `json:"steals"`
	Blocks   flexNumber `json:"blocks"`
	Threes   flexNumber `json:"threes"`
}

// DecodeGameLog maps normalized rows onto game entries
func (d *GenericDecoder) DecodeGameLog(data []byte) ([]GameEntry, error) {
	var games []genericGame
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Games []genericGame `json:"games"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, NewSourceError(d.Name(), ErrCodeInvalidData, "failed to decode game log", fmt.Errorf("%w: %v", ErrInvalidData, err))
		}
		games = wrapped.Games
	} else if err := json.Unmarshal(trimmed, &games); err != nil {
		return nil, NewSourceError(d.Name(), ErrCodeInvalidData, "failed to decode game log", fmt.Errorf("%w: %v", ErrInvalidData, err))
	}

	entries := make([]GameEntry, 0, len(games))
	for _, g := range games {
		entries = append(entries, GameEntry{
			Date:     parseDate(g.Date),
			Team:     g.Team,
			Opponent: g.Opponent,
			Minutes:  g.Minutes.value,
			Stats: map[models.StatType]*float64{
				models.StatPoints:   g.Points.stat(),
				models.StatRebounds: g.Rebounds.stat(),
				models.StatAssists:  g.Assists.stat(),
				models.StatSteals:   g.Steals.stat(),
				models.StatBlocks:   g.Blocks.stat(),
				models.StatThrees:   g.Threes.stat(),
			},
		})
	}
	return entries, nil
}
