package usecase

import (
	"fmt"
	"strings"

	"FinVoice/internal/domain/models"
)

// noContextMarker is the placeholder chunk the retrieval agent emits when
// its index has nothing to offer.
const noContextMarker = "No context available"

// Reconcile splits the requested tickers into those with usable market data
// and those without. A ticker is valid iff its key is present, the series
// is non-empty, and it carries no error marker. Results are keyed by
// ticker, so completion order of the batch is irrelevant here.
func Reconcile(tickers []string, market models.MarketData) (valid, missing []string) {
	for _, t := range tickers {
		series, ok := market[t]
		if ok && series.Usable() {
			valid = append(valid, t)
		} else {
			missing = append(missing, t)
		}
	}
	return valid, missing
}

// Confident reports whether retrieved context is trustworthy enough to
// include in the generation prompt. Low confidence never aborts the
// pipeline; it only drops the context section.
func Confident(res models.RetrievalResult, err error) bool {
	if err != nil || len(res.Chunks) == 0 {
		return false
	}
	for _, ch := range res.Chunks {
		if ch.Snippet != noContextMarker {
			return true
		}
	}
	return false
}

// ApologyNarrative is the terminal response when no requested ticker has
// usable market data. It names every missing ticker in natural language.
func ApologyNarrative(missing []string) string {
	if len(missing) == 0 {
		return "I'm sorry, I couldn't retrieve any market data right now. Please try again in a moment."
	}
	return fmt.Sprintf(
		"I'm sorry, I couldn't retrieve market data for %s right now. The data source may be unavailable, please try again in a moment.",
		strings.Join(missing, ", "),
	)
}

// NoTickerNarrative is the response when extraction found no instrument in
// the query. This is a defined outcome, not an error.
const NoTickerNarrative = "I couldn't identify any stock or company in your question. Try asking about a specific company, like Apple or TSMC, or a ticker symbol."

// InternalFaultNarrative is the catch-all response for unexpected faults.
const InternalFaultNarrative = "I'm sorry, something went wrong while preparing your market briefing. Please try again."
