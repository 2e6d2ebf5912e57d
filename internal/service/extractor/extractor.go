package extractor

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	domservice "FinVoice/internal/domain/service"
	"FinVoice/internal/service/cache"
	"FinVoice/internal/service/ratelimit"
	xlogger "FinVoice/pkg/logger"
	"FinVoice/pkg/util"
)

var (
	validWordRe = regexp.MustCompile(`^[a-z0-9.]+$`)
	urlRe       = regexp.MustCompile(`(?i)\bhttps?://[^\s]+|\bwww\.[^\s]+`)
)

const cacheKeyPrefix = "symsearch:"

// Option configures the Extractor.
type Option func(*Extractor)

// Extractor derives instrument symbols and literal URLs from a query.
// Symbols come from the thematic set, the company-name map, or a fallback
// lookup against the external symbol-search service.
type Extractor struct {
	search  domservice.SymbolSearcher
	cache   cache.BytesCache
	limiter *ratelimit.Limiter
	logger  *xlogger.Logger

	searchTimeout time.Duration
	maxPhrases    int
	cacheTTL      time.Duration
	rateCapacity  float64
	ratePerSecond float64
}

// New creates an Extractor. The searcher may be nil, in which case the
// fallback resolution step is skipped entirely.
func New(search domservice.SymbolSearcher, logger *xlogger.Logger, opts ...Option) *Extractor {
	e := &Extractor{
		search:        search,
		logger:        logger,
		searchTimeout: 5 * time.Second,
		maxPhrases:    8,
		cacheTTL:      6 * time.Hour,
		rateCapacity:  10,
		ratePerSecond: 5,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithCache enables caching of symbol-search resolutions.
func WithCache(c cache.BytesCache, ttl time.Duration) Option {
	return func(e *Extractor) {
		e.cache = c
		if ttl > 0 {
			e.cacheTTL = ttl
		}
	}
}

// WithRateLimit bounds outbound symbol-search calls.
func WithRateLimit(l *ratelimit.Limiter, capacity, perSecond float64) Option {
	return func(e *Extractor) {
		e.limiter = l
		if capacity > 0 {
			e.rateCapacity = capacity
		}
		if perSecond > 0 {
			e.ratePerSecond = perSecond
		}
	}
}

// WithSearchTimeout sets the per-phrase lookup timeout.
func WithSearchTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.searchTimeout = d
		}
	}
}

// WithMaxPhrases caps how many candidate phrases are resolved per query.
func WithMaxPhrases(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.maxPhrases = n
		}
	}
}

// Tickers extracts instrument symbols from a normalized query. An empty
// result means "could not identify any instrument", never an error.
func (e *Extractor) Tickers(ctx context.Context, normalized string) []string {
	q := strings.TrimSpace(normalized)

	if isGreeting(q) || countValidWords(q) < 2 {
		return nil
	}

	// Thematic short-circuit: curated set, no fuzzy lookup.
	if util.ContainsFold(q, "asia") && util.ContainsFold(q, "tech") {
		out := make([]string, len(asiaTechTickers))
		copy(out, asiaTechTickers)
		return out
	}

	cleaned := stripStopwords(q)

	// Mapped company names take precedence over fuzzy resolution.
	var mapped []string
	for _, c := range companies {
		if strings.Contains(cleaned, c.Name) {
			mapped = append(mapped, c.Symbol)
		}
	}
	if len(mapped) > 0 {
		return util.Unique(mapped)
	}

	return e.resolvePhrases(ctx, candidatePhrases(cleaned, e.maxPhrases))
}

// URLs extracts literal http(s) and www URLs from the raw, unnormalized
// query. Double-prefixed URLs are discarded as malformed.
func (e *Extractor) URLs(raw string) []string {
	var out []string
	for _, m := range urlRe.FindAllString(raw, -1) {
		u := strings.TrimRight(m, ".,;:!?)")
		if strings.Count(strings.ToLower(u), "://") > 1 {
			continue
		}
		out = append(out, u)
	}
	return util.Unique(out)
}

// resolvePhrases queries the symbol-search service for every candidate
// phrase concurrently. One phrase failing never aborts the others.
func (e *Extractor) resolvePhrases(ctx context.Context, phrases []string) []string {
	if e.search == nil || len(phrases) == 0 {
		return nil
	}

	resolved := make([]string, len(phrases))
	var wg sync.WaitGroup
	for i, phrase := range phrases {
		wg.Add(1)
		go func(i int, phrase string) {
			defer wg.Done()
			sym, err := e.resolvePhrase(ctx, phrase)
			if err != nil {
				if e.logger != nil {
					e.logger.Debug("symbol lookup failed",
						xlogger.String("phrase", phrase),
						xlogger.Error(err),
					)
				}
				return
			}
			resolved[i] = sym
		}(i, phrase)
	}
	wg.Wait()

	var out []string
	for _, sym := range resolved {
		if symbolAllowed(sym) {
			out = append(out, sym)
		}
	}
	return util.Unique(out)
}

func (e *Extractor) resolvePhrase(ctx context.Context, phrase string) (string, error) {
	if e.cache != nil {
		if b, ok, err := e.cache.GetBytes(cacheKeyPrefix + phrase); err == nil && ok {
			return string(b), nil
		}
	}

	if e.limiter != nil && !e.limiter.Allow("symbol_search", e.rateCapacity, e.ratePerSecond) {
		// Throttled phrases are treated like a failed resolution.
		return "", nil
	}

	cctx, cancel := context.WithTimeout(ctx, e.searchTimeout)
	defer cancel()

	sym, err := e.search.Search(cctx, phrase)
	if err != nil {
		return "", err
	}

	if e.cache != nil && sym != "" {
		_ = e.cache.SetBytes(cacheKeyPrefix+phrase, []byte(sym), e.cacheTTL)
	}
	return sym, nil
}

// candidatePhrases returns the full cleaned query plus each individual
// valid word, capped at max entries.
func candidatePhrases(cleaned string, max int) []string {
	var phrases []string
	if cleaned != "" {
		phrases = append(phrases, cleaned)
	}
	for _, w := range strings.Fields(cleaned) {
		if validWordRe.MatchString(w) {
			phrases = append(phrases, w)
		}
	}
	phrases = util.Unique(phrases)
	if len(phrases) > max {
		phrases = phrases[:max]
	}
	return phrases
}

func symbolAllowed(sym string) bool {
	if sym == "" || strings.HasPrefix(sym, "^") {
		return false
	}
	for _, suffix := range deniedSuffixes {
		if strings.HasSuffix(sym, suffix) {
			return false
		}
	}
	return true
}

func isGreeting(q string) bool {
	trimmed := strings.TrimRight(q, " .!?")
	for _, g := range greetings {
		if trimmed == g {
			return true
		}
	}
	return false
}

func countValidWords(q string) int {
	n := 0
	for _, w := range strings.Fields(q) {
		w = strings.Trim(w, "?!,.")
		if w != "" && validWordRe.MatchString(w) {
			n++
		}
	}
	return n
}

func stripStopwords(q string) string {
	var kept []string
	for _, w := range strings.Fields(q) {
		w = strings.Trim(w, "?!,.")
		if w == "" {
			continue
		}
		if _, drop := stopwords[w]; drop {
			continue
		}
		kept = append(kept, w)
	}
	return strings.Join(kept, " ")
}
