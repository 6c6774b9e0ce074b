package datasource

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// flexNumber accepts a JSON number, a numeric string, or null. A string
// that does not parse sets invalid and leaves value nil.
type flexNumber struct {
	value   *float64
	invalid bool
}

// stat returns the value for a game entry statistic. Invalid text maps to
// NaN so it stays distinct from a missing value.
func (n flexNumber) stat() *float64 {
	if n.invalid {
		nan := math.NaN()
		return &nan
	}
	return n.value
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	n.value, n.invalid = nil, false
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			n.invalid = true
			return nil
		}
		n.value = &f
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	n.value = &f
	return nil
}

// flexString keeps the raw text of a string or number; null stays nil.
type flexString struct {
	value *string
}

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		s.value = nil
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s.value = &str
		return nil
	}
	str := string(data)
	s.value = &str
	return nil
}

// flexPrice reads an American price that may arrive as a float.
type flexPrice struct {
	value int
}

func (p *flexPrice) UnmarshalJSON(data []byte) error {
	var n flexNumber
	if err := n.UnmarshalJSON(data); err != nil {
		return err
	}
	if n.value == nil {
		p.value = 0
		return nil
	}
	p.value = int(math.Round(*n.value))
	return nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDate returns the zero time when no layout matches.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
