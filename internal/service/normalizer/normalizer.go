package normalizer

import "strings"

// correction is one literal phrase substitution applied to transcribed
// queries. Order matters: entries are applied top to bottom, so a later
// entry may match text produced by an earlier one.
type correction struct {
	from string
	to   string
}

// corrections fixes common speech-to-text mistakes seen in finance queries.
var corrections = []correction{
	{"asian tech", "asia tech"},
	{"asia take", "asia tech"},
	{"azure tech", "asia tech"},
	{"age of tech", "asia tech"},
	{"tech stalks", "tech stocks"},
	{"stalk market", "stock market"},
	{"stalk price", "stock price"},
	{"my crows off", "microsoft"},
	{"te sla", "tesla"},
	{"in video", "nvidia"},
	{"earning surprises", "earnings surprises"},
	{"earning surprise", "earnings surprise"},
}

// Normalize lowercases raw and applies the correction list in order.
// It is pure and never fails; applying it to already-normalized text is a
// no-op as long as no correction reintroduces another's source phrase.
func Normalize(raw string) string {
	q := strings.ToLower(raw)
	for _, c := range corrections {
		q = strings.ReplaceAll(q, c.from, c.to)
	}
	return q
}
