package market

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/yourusername/stat-prophet/internal/models"
)

// DefaultFuzzyCutoff is the minimum similarity ratio for a fuzzy match.
const DefaultFuzzyCutoff = 0.5

// maxNearMisses bounds the candidates reported on a failed match.
const maxNearMisses = 3

// MatchStage records which resolution stage produced a match.
type MatchStage string

// Match stages
const (
	StageExact  MatchStage = "exact"
	StageFuzzy  MatchStage = "fuzzy"
	StageFailed MatchStage = "failed"
)

// Match is a resolved entity name.
type Match struct {
	Name  string
	Stage MatchStage
	Score float64
}

// Resolver matches loosely formatted names against a candidate list.
type Resolver struct {
	cutoff float64
}

// NewResolver creates a resolver; a cutoff outside (0,1] uses the default.
func NewResolver(cutoff float64) *Resolver {
	if cutoff <= 0 || cutoff > 1 {
		cutoff = DefaultFuzzyCutoff
	}
	return &Resolver{cutoff: cutoff}
}

// Resolve tries a case-insensitive substring match first, in candidate
// order, then the single most similar candidate at or above the cutoff.
// Failure returns *models.EntityNotResolvedError listing the nearest names.
func (r *Resolver) Resolve(kind models.EntityKind, query string, candidates []string) (Match, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Match{Stage: StageFailed}, &models.EntityNotResolvedError{Kind: kind, Query: query}
	}

	for _, c := range candidates {
		if strings.Contains(strings.ToLower(c), q) {
			return Match{Name: c, Stage: StageExact, Score: 1}, nil
		}
	}

	type scored struct {
		name  string
		score float64
	}
	scores := make([]scored, 0, len(candidates))
	for _, c := range candidates {
		scores = append(scores, scored{name: c, score: Similarity(q, strings.ToLower(c))})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	if len(scores) > 0 && scores[0].score >= r.cutoff {
		return Match{Name: scores[0].name, Stage: StageFuzzy, Score: scores[0].score}, nil
	}

	nearest := make([]string, 0, maxNearMisses)
	for _, s := range scores {
		if len(nearest) == maxNearMisses || s.score == 0 {
			break
		}
		nearest = append(nearest, s.name)
	}
	return Match{Stage: StageFailed}, &models.EntityNotResolvedError{Kind: kind, Query: query, Candidates: nearest}
}

// Similarity returns the difflib ratio 2*M/T of two strings compared
// character by character.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1
	}
	m := difflib.NewMatcher(splitChars(b), splitChars(a))
	return m.Ratio()
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
