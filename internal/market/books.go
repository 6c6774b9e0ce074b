package market

import "strings"

// BookClass groups bookmakers by how efficiently they price.
type BookClass string

// Book classes
const (
	BookSharp BookClass = "sharp"
	BookSoft  BookClass = "soft"
	BookOther BookClass = "other"
)

// DefaultSharpBooks are exchange-style and market-leading books.
var DefaultSharpBooks = []string{
	"pinnacle",
	"circasports",
	"betfair_ex_us",
	"betfair_ex_eu",
	"matchbook",
	"novig",
	"prophetx",
	"fanduel",
	"draftkings",
}

// DefaultSoftBooks are recreational books.
var DefaultSoftBooks = []string{
	"betmgm",
	"williamhill_us",
	"caesars",
	"pointsbetus",
	"bovada",
	"betrivers",
	"unibet_us",
	"wynnbet",
	"superbook",
	"espnbet",
	"betonlineag",
	"mybookieag",
	"fliff",
	"hardrockbet",
	"ballybet",
	"betparx",
}

// Roster classifies book keys. It is immutable after construction.
type Roster struct {
	classes map[string]BookClass
}

// NewRoster builds a roster. Empty lists fall back to the defaults; a key in
// both lists is treated as sharp.
func NewRoster(sharp, soft []string) *Roster {
	if len(sharp) == 0 {
		sharp = DefaultSharpBooks
	}
	if len(soft) == 0 {
		soft = DefaultSoftBooks
	}
	classes := make(map[string]BookClass, len(sharp)+len(soft))
	for _, k := range soft {
		classes[normalizeBookKey(k)] = BookSoft
	}
	for _, k := range sharp {
		classes[normalizeBookKey(k)] = BookSharp
	}
	return &Roster{classes: classes}
}

// Classify returns the class of a book key.
func (r *Roster) Classify(bookKey string) BookClass {
	if c, ok := r.classes[normalizeBookKey(bookKey)]; ok {
		return c
	}
	return BookOther
}

func normalizeBookKey(k string) string {
	return strings.ToLower(strings.TrimSpace(k))
}
