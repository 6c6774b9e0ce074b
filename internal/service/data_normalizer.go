package service

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/stat-prophet/internal/datasource"
	"github.com/yourusername/stat-prophet/internal/models"
)

// DefaultMaxGames caps how many qualifying games are kept per player.
const DefaultMaxGames = 30

// Exclusion reasons reported by the normalizer
const (
	ExcludedNoMinutes      = "missing_minutes"
	ExcludedBadMinutes     = "unparsable_minutes"
	ExcludedZeroMinutes    = "zero_minutes"
	ExcludedInvalidValue   = "invalid_value"
	ExcludedBeyondMaxGames = "beyond_max_games"
)

// NormalizeReport counts what happened to each raw entry.
type NormalizeReport struct {
	Total    int            `json:"total"`
	Kept     int            `json:"kept"`
	Excluded map[string]int `json:"excluded"`
}

func (r *NormalizeReport) exclude(reason string) {
	if r.Excluded == nil {
		r.Excluded = make(map[string]int)
	}
	r.Excluded[reason]++
}

// DataNormalizer turns adapter game entries into GameRecords
type DataNormalizer struct {
	maxGames int
	logger   logrus.FieldLogger
}

// NewDataNormalizer creates a new data normalizer. A non-positive maxGames
// falls back to DefaultMaxGames.
func NewDataNormalizer(maxGames int, logger logrus.FieldLogger) *DataNormalizer {
	if maxGames <= 0 {
		maxGames = DefaultMaxGames
	}
	return &DataNormalizer{
		maxGames: maxGames,
		logger:   logger,
	}
}

// Normalize returns the qualifying games for one statistic, most recent
// first, capped at the configured maximum.
func (n *DataNormalizer) Normalize(entries []datasource.GameEntry, stat models.StatType) ([]models.GameRecord, NormalizeReport) {
	report := NormalizeReport{Total: len(entries)}
	records := make([]models.GameRecord, 0, min(len(entries), n.maxGames))

	for _, entry := range sortByDateDesc(entries) {
		minutes, reason := ParseMinutes(entry.Minutes)
		if reason != "" {
			report.exclude(reason)
			continue
		}

		value := statValue(entry, stat)
		if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
			report.exclude(ExcludedInvalidValue)
			continue
		}

		if len(records) >= n.maxGames {
			report.exclude(ExcludedBeyondMaxGames)
			continue
		}

		records = append(records, models.GameRecord{
			Date:     entry.Date,
			Opponent: entry.Opponent,
			Minutes:  minutes,
			Value:    value,
		})
	}
	report.Kept = len(records)

	if n.logger != nil {
		n.logger.WithFields(logrus.Fields{
			"stat_type": stat,
			"total":     report.Total,
			"kept":      report.Kept,
			"excluded":  report.Excluded,
		}).Debug("Normalized game log")
	}

	return records, report
}

// NormalizeAll normalizes the game log once per statistic type.
func (n *DataNormalizer) NormalizeAll(entries []datasource.GameEntry) map[models.StatType][]models.GameRecord {
	out := make(map[models.StatType][]models.GameRecord, len(models.StatTypes))
	for _, stat := range models.StatTypes {
		records, _ := n.Normalize(entries, stat)
		out[stat] = records
	}
	return out
}

// ParseMinutes reads "M:SS" or a plain number. The second return value is
// the exclusion reason, empty when the minutes qualify.
func ParseMinutes(raw *string) (float64, string) {
	if raw == nil {
		return 0, ExcludedNoMinutes
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return 0, ExcludedNoMinutes
	}

	var minutes float64
	if m, sec, ok := strings.Cut(s, ":"); ok {
		mm, err := strconv.Atoi(strings.TrimSpace(m))
		if err != nil || mm < 0 {
			return 0, ExcludedBadMinutes
		}
		ss, err := strconv.Atoi(strings.TrimSpace(sec))
		if err != nil || ss < 0 || ss >= 60 {
			return 0, ExcludedBadMinutes
		}
		minutes = float64(mm) + float64(ss)/60
	} else {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
			return 0, ExcludedBadMinutes
		}
		minutes = f
	}

	if minutes <= 0 {
		return 0, ExcludedZeroMinutes
	}
	return minutes, ""
}

// statValue reads the statistic from an entry. A missing value counts as 0;
// an unparsable one comes back NaN and is excluded by the caller.
func statValue(entry datasource.GameEntry, stat models.StatType) float64 {
	if stat == models.StatPRA {
		var total float64
		for _, part := range []models.StatType{models.StatPoints, models.StatRebounds, models.StatAssists} {
			v, _ := entry.Stat(part)
			total += v
		}
		return total
	}
	v, _ := entry.Stat(stat)
	return v
}

// sortByDateDesc orders entries newest first. Undated entries keep their
// relative order after every dated one.
func sortByDateDesc(entries []datasource.GameEntry) []datasource.GameEntry {
	sorted := make([]datasource.GameEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Date, sorted[j].Date
		switch {
		case a.IsZero():
			return false
		case b.IsZero():
			return true
		default:
			return a.After(b)
		}
	})
	return sorted
}
