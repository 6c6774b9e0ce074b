package datasource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/yourusername/stat-prophet/internal/models"
)

// APISportsSourceName identifies the API-Sports NBA adapter.
const APISportsSourceName = "api_sports"

// APISportsDecoder reads the players/statistics response of the API-Sports
// NBA API.
type APISportsDecoder struct{}

// NewAPISportsDecoder creates an API-Sports game log decoder
func NewAPISportsDecoder() *APISportsDecoder {
	return &APISportsDecoder{}
}

// Name returns the adapter name
func (d *APISportsDecoder) Name() string {
	return APISportsSourceName
}

type apiSportsResponse struct {
	Errors   json.RawMessage       `json:"errors"`
	Response []apiSportsStatistics `json:"response"`
}

type apiSportsStatistics struct {
	Game struct {
		Date apiSportsDate `json:"date"`
	} `json:"game"`
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
	Opponent struct {
		Name string `json:"name"`
	} `json:"opponent"`
	Min     flexString `json:"min"`
	Points  flexNumber `json:"points"`
	TotReb  flexNumber `json:"totReb"`
	Assists flexNumber `json:"assists"`
	Steals  flexNumber `json:"steals"`
	Blocks  flexNumber `json:"blocks"`
	TPM     flexNumber `json:"tpm"`
}

// apiSportsDate accepts either a date string or an object with a start field.
type apiSportsDate struct {
	raw string
}

func (d *apiSportsDate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '{' {
		var obj struct {
			Start string `json:"start"`
			Date  string `json:"date"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		d.raw = obj.Start
		if d.raw == "" {
			d.raw = obj.Date
		}
		return nil
	}
	return json.Unmarshal(data, &d.raw)
}

// DecodeGameLog maps API-Sports rows onto game entries. Rows keep their
// payload order; sorting is the normalizer's job.
func (d *APISportsDecoder) DecodeGameLog(data []byte) ([]GameEntry, error) {
	var resp apiSportsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, NewSourceError(d.Name(), ErrCodeInvalidData, "failed to decode statistics payload", fmt.Errorf("%w: %v", ErrInvalidData, err))
	}
	if msg := providerErrors(resp.Errors); msg != "" {
		return nil, NewSourceError(d.Name(), ErrCodeProviderError, msg, nil)
	}

	entries := make([]GameEntry, 0, len(resp.Response))
	for _, row := range resp.Response {
		entries = append(entries, GameEntry{
			Date:     parseDate(row.Game.Date.raw),
			Team:     row.Team.Name,
			Opponent: row.Opponent.Name,
			Minutes:  row.Min.value,
			Stats: map[models.StatType]*float64{
				models.StatPoints:   row.Points.stat(),
				models.StatRebounds: row.TotReb.stat(),
				models.StatAssists:  row.Assists.stat(),
				models.StatSteals:   row.Steals.stat(),
				models.StatBlocks:   row.Blocks.stat(),
				models.StatThrees:   row.TPM.stat(),
			},
		})
	}
	return entries, nil
}

// providerErrors flattens the errors field, which API-Sports sends as either
// an empty array or an object of messages.
func providerErrors(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return ""
	}
	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err != nil || len(obj) == 0 {
		return ""
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+obj[k])
	}
	return strings.Join(parts, "; ")
}
