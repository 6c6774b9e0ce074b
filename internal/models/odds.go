package models

// MarketQuote is one book's line and prices for a player prop.
type MarketQuote struct {
	BookKey    string  `json:"book"`
	Line       float64 `json:"line"`
	OverPrice  int     `json:"over_price"`
	UnderPrice int     `json:"under_price"`
}

// HasOver reports whether the book priced the over.
func (q MarketQuote) HasOver() bool { return q.OverPrice != 0 }

// HasUnder reports whether the book priced the under.
func (q MarketQuote) HasUnder() bool { return q.UnderPrice != 0 }

// MarketSummary aggregates quotes across books. Pointer fields are nil when
// the underlying group reported nothing.
type MarketSummary struct {
	MatchedPlayer   string                 `json:"matched_player,omitempty"`
	MatchedEvent    string                 `json:"matched_event,omitempty"`
	BookCount       int                    `json:"book_count"`
	Quotes          map[string]MarketQuote `json:"quotes,omitempty"`
	ConsensusLine   *float64               `json:"consensus_line"`
	SharpConsensus  *float64               `json:"sharp_consensus"`
	SoftConsensus   *float64               `json:"soft_consensus"`
	SharpSoftDelta  *float64               `json:"sharp_soft_delta"`
	AvgOverImplied  *float64               `json:"avg_over_implied"`
	AvgUnderImplied *float64               `json:"avg_under_implied"`
	MarketLean      MarketLean             `json:"market_lean"`
	BestOverPrice   *int                   `json:"best_over_price"`
	BestUnderPrice  *int                   `json:"best_under_price"`
	LineSpread      *float64               `json:"line_spread"`
	Signals         []string               `json:"signals,omitempty"`
	Absent          *DataAbsent            `json:"absent,omitempty"`
}

// Available reports whether the summary carries at least one quote.
func (m *MarketSummary) Available() bool {
	return m != nil && m.Absent == nil && m.BookCount > 0
}

// Lean returns the market lean, NEUTRAL when no summary exists.
func (m *MarketSummary) Lean() MarketLean {
	if m == nil || m.MarketLean == "" {
		return LeanNeutral
	}
	return m.MarketLean
}
