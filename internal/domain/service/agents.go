package service

import (
	"context"

	"FinVoice/internal/domain/models"
)

// MarketDataService fetches OHLCV records for a set of tickers.
type MarketDataService interface {
	Fetch(ctx context.Context, tickers []string) (models.MarketData, error)
}

// NewsService fetches scraped news articles for a set of tickers.
type NewsService interface {
	Fetch(ctx context.Context, tickers []string) (models.NewsData, error)
}

// RetrievalService queries the semantic document index.
type RetrievalService interface {
	Query(ctx context.Context, query string, tickers, userURLs []string) (models.RetrievalResult, error)
	Health(ctx context.Context) error
}

// AnalysisService computes numeric analysis over gathered market and news data.
type AnalysisService interface {
	Analyze(ctx context.Context, market models.MarketData, news models.NewsData, tickers []string, query string) (models.AnalysisData, error)
}

// GenerationService turns an assembled prompt into a narrative.
type GenerationService interface {
	Generate(ctx context.Context, prompt string, analysis models.AnalysisData) (string, error)
}

// SpeechService synthesizes narrative text to base64-encoded audio.
type SpeechService interface {
	Speak(ctx context.Context, text string) (string, error)
}

// SymbolSearcher resolves a free-text phrase to its top-ranked instrument
// symbol. An empty symbol with nil error means no match.
type SymbolSearcher interface {
	Search(ctx context.Context, phrase string) (string, error)
}
