package market

import (
	"errors"
	"fmt"

	"github.com/yourusername/stat-prophet/internal/datasource"
	"github.com/yourusername/stat-prophet/internal/models"
)

// marketKeys maps each statistic to its player-prop market key.
var marketKeys = map[models.StatType]string{
	models.StatPoints:   "player_points",
	models.StatRebounds: "player_rebounds",
	models.StatAssists:  "player_assists",
	models.StatSteals:   "player_steals",
	models.StatBlocks:   "player_blocks",
	models.StatThrees:   "player_threes",
	models.StatPRA:      "player_points_rebounds_assists",
}

// MarketKey returns the player-prop market key for a statistic.
func MarketKey(stat models.StatType) string {
	return marketKeys[stat]
}

// Query selects one player's prop from a set of events.
type Query struct {
	PlayerName string
	Opponent   string
	StatType   models.StatType
	Line       float64
}

// Resolution records how the player and team names were matched.
type Resolution struct {
	Team   MatchStage
	Player MatchStage
}

// Normalizer extracts a player's quotes from odds events and summarizes
// them. It is safe for concurrent use.
type Normalizer struct {
	cfg      Config
	roster   *Roster
	resolver *Resolver
}

// NewNormalizer creates a market normalizer.
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{
		cfg:      cfg,
		roster:   NewRoster(cfg.SharpBooks, cfg.SoftBooks),
		resolver: NewResolver(cfg.FuzzyCutoff),
	}
}

// Summarize finds the queried player's prop across events. A summary is
// always returned; when nothing could be gathered its Absent field says why.
func (n *Normalizer) Summarize(events []datasource.OddsEvent, q Query) (*models.MarketSummary, Resolution) {
	res := Resolution{}
	labels := eventLabels(events)

	if len(events) == 0 {
		return absent("no odds events supplied", nil, nil), res
	}

	if q.Opponent != "" {
		match, err := n.resolver.Resolve(models.EntityTeam, q.Opponent, teamNames(events))
		res.Team = match.Stage
		if err != nil {
			return absent(fmt.Sprintf("no event found for opponent %q", q.Opponent), labels, nearMisses(err)), res
		}
		events = eventsWithTeam(events, match.Name)
	}

	key := MarketKey(q.StatType)
	participants := participantNames(events, key)
	if len(participants) == 0 {
		return absent(fmt.Sprintf("no %s quotes in supplied events", key), labels, nil), res
	}
	if q.PlayerName == "" {
		return absent("no player name supplied", labels, nil), res
	}

	match, err := n.resolver.Resolve(models.EntityPlayer, q.PlayerName, participants)
	res.Player = match.Stage
	if err != nil {
		return absent(fmt.Sprintf("player %q not found in %s quotes", q.PlayerName, key), labels, nearMisses(err)), res
	}

	quotes, eventLabel := collectQuotes(events, key, match.Name)
	summary := Summarize(n.cfg, n.roster, quotes, q.Line)
	summary.MatchedPlayer = match.Name
	summary.MatchedEvent = eventLabel
	if summary.Absent != nil {
		summary.Absent.AvailableEvents = labels
	}
	return summary, res
}

// collectQuotes takes at most one line per book: the first point seen for
// the player, with the over and under prices quoted at that point.
func collectQuotes(events []datasource.OddsEvent, marketKey, player string) (map[string]models.MarketQuote, string) {
	quotes := make(map[string]models.MarketQuote)
	matchedEvent := ""

	for _, ev := range events {
		for _, book := range ev.Books {
			if _, seen := quotes[book.Key]; seen || book.Key == "" {
				continue
			}
			quote, ok := bookQuote(book, marketKey, player)
			if !ok {
				continue
			}
			quotes[book.Key] = quote
			if matchedEvent == "" {
				matchedEvent = ev.Label()
			}
		}
	}
	return quotes, matchedEvent
}

func bookQuote(book datasource.BookOdds, marketKey, player string) (models.MarketQuote, bool) {
	quote := models.MarketQuote{BookKey: book.Key}
	found := false

	for _, m := range book.Markets {
		if m.Key != marketKey {
			continue
		}
		for _, o := range m.Outcomes {
			if o.Participant != player || o.Point == nil || *o.Point <= 0 {
				continue
			}
			if !found {
				quote.Line = *o.Point
				found = true
			}
			if *o.Point != quote.Line {
				continue
			}
			switch o.Side {
			case datasource.SideOver:
				if quote.OverPrice == 0 {
					quote.OverPrice = o.Price
				}
			case datasource.SideUnder:
				if quote.UnderPrice == 0 {
					quote.UnderPrice = o.Price
				}
			}
		}
	}
	return quote, found
}

func participantNames(events []datasource.OddsEvent, marketKey string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, ev := range events {
		for _, book := range ev.Books {
			for _, m := range book.Markets {
				if m.Key != marketKey {
					continue
				}
				for _, o := range m.Outcomes {
					if o.Participant != "" && !seen[o.Participant] {
						seen[o.Participant] = true
						names = append(names, o.Participant)
					}
				}
			}
		}
	}
	return names
}

func teamNames(events []datasource.OddsEvent) []string {
	seen := make(map[string]bool)
	var names []string
	for _, ev := range events {
		for _, team := range []string{ev.HomeTeam, ev.AwayTeam} {
			if team != "" && !seen[team] {
				seen[team] = true
				names = append(names, team)
			}
		}
	}
	return names
}

func eventsWithTeam(events []datasource.OddsEvent, team string) []datasource.OddsEvent {
	var out []datasource.OddsEvent
	for _, ev := range events {
		if ev.HomeTeam == team || ev.AwayTeam == team {
			out = append(out, ev)
		}
	}
	return out
}

func eventLabels(events []datasource.OddsEvent) []string {
	labels := make([]string, 0, len(events))
	for _, ev := range events {
		labels = append(labels, ev.Label())
	}
	return labels
}

func nearMisses(err error) []string {
	var notResolved *models.EntityNotResolvedError
	if errors.As(err, &notResolved) {
		return notResolved.Candidates
	}
	return nil
}

func absent(reason string, events, candidates []string) *models.MarketSummary {
	return &models.MarketSummary{
		MarketLean: models.LeanNeutral,
		Absent: &models.DataAbsent{
			Reason:          reason,
			AvailableEvents: events,
			Candidates:      candidates,
		},
	}
}
