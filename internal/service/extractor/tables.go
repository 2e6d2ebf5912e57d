package extractor

// Static lookup tables. All are read-only after init and safe for unlimited
// concurrent readers.

// greetings is a denylist of purely conversational queries that never
// warrant upstream calls.
var greetings = []string{
	"hi",
	"hello",
	"hey",
	"good morning",
	"good afternoon",
	"good evening",
	"how are you",
	"thank you",
	"thanks",
	"bye",
	"goodbye",
}

// stopwords are low-content words stripped before company-name matching and
// symbol-search fallback.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "is": {}, "are": {}, "was": {}, "be": {},
	"what": {}, "whats": {}, "what's": {}, "how": {}, "why": {}, "when": {},
	"my": {}, "me": {}, "our": {}, "your": {}, "i": {}, "we": {}, "you": {},
	"of": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "with": {},
	"and": {}, "or": {}, "do": {}, "does": {}, "did": {}, "can": {},
	"tell": {}, "give": {}, "show": {}, "about": {}, "please": {},
	"today": {}, "now": {}, "latest": {}, "current": {},
	"stock": {}, "stocks": {}, "price": {}, "prices": {}, "market": {},
	"update": {}, "news": {}, "exposure": {}, "analysis": {},
}

// asiaTechTickers is the curated thematic set returned for any query that
// mentions both the region and the sector. Deterministic high-recall
// behavior for the highest-value query class; no fuzzy lookup involved.
var asiaTechTickers = []string{"TSM", "005930.KS", "BABA", "TCEHY", "SONY"}

// companies maps well-known company names to symbols. Kept as an ordered
// slice so extraction output is reproducible.
var companies = []struct {
	Name   string
	Symbol string
}{
	{"apple", "AAPL"},
	{"microsoft", "MSFT"},
	{"tesla", "TSLA"},
	{"nvidia", "NVDA"},
	{"amazon", "AMZN"},
	{"alphabet", "GOOGL"},
	{"google", "GOOGL"},
	{"meta", "META"},
	{"netflix", "NFLX"},
	{"samsung", "005930.KS"},
	{"tsmc", "TSM"},
	{"taiwan semiconductor", "TSM"},
	{"alibaba", "BABA"},
	{"tencent", "TCEHY"},
	{"sony", "SONY"},
	{"asml", "ASML"},
	{"intel", "INTC"},
	{"amd", "AMD"},
}

// deniedSuffixes marks foreign/secondary listings the market data agent
// cannot serve reliably. A leading caret marks an index.
var deniedSuffixes = []string{".SA", ".F", ".SG", ".DU"}
