package usecase

import (
	"context"
	"fmt"
	"sync"

	"FinVoice/internal/domain/models"
	domservice "FinVoice/internal/domain/service"
	xlogger "FinVoice/pkg/logger"
)

// DispatchResult gathers the fan-out batch, keyed by collaborator rather
// than completion order. A failed call leaves its Err set and never
// disturbs the other results.
type DispatchResult struct {
	Market    models.MarketData
	MarketErr error

	News    models.NewsData
	NewsErr error

	Retrieval    models.RetrievalResult
	RetrievalErr error
}

// Dispatcher issues the data-gathering calls concurrently. Each call
// carries its own timeout and retry policy inside its client, so the batch
// wall clock is bounded by the slowest call, not the sum.
type Dispatcher struct {
	market    domservice.MarketDataService
	news      domservice.NewsService
	retrieval domservice.RetrievalService
	logger    *xlogger.Logger
}

func NewDispatcher(market domservice.MarketDataService, news domservice.NewsService, retrieval domservice.RetrievalService, logger *xlogger.Logger) *Dispatcher {
	return &Dispatcher{market: market, news: news, retrieval: retrieval, logger: logger}
}

// Dispatch runs the batch and joins at a single point. Sub-call panics are
// converted to errors so one bad collaborator cannot take down the request.
func (d *Dispatcher) Dispatch(ctx context.Context, query string, tickers, userURLs []string) DispatchResult {
	// Readiness ping ahead of the batch, diagnostic only: its failure is
	// logged and the main flow proceeds regardless.
	if err := d.retrieval.Health(ctx); err != nil && d.logger != nil {
		d.logger.Warn("retrieval agent not ready", xlogger.Error(err))
	}

	var res DispatchResult
	var wg sync.WaitGroup
	wg.Add(3)

	go d.guard("market_data", &wg, &res.MarketErr, func() error {
		var err error
		res.Market, err = d.market.Fetch(ctx, tickers)
		return err
	})
	go d.guard("news", &wg, &res.NewsErr, func() error {
		var err error
		res.News, err = d.news.Fetch(ctx, tickers)
		return err
	})
	go d.guard("retrieval", &wg, &res.RetrievalErr, func() error {
		var err error
		res.Retrieval, err = d.retrieval.Query(ctx, query, tickers, userURLs)
		return err
	})

	wg.Wait()
	return res
}

// guard runs one sub-call, capturing its error or panic into errp.
func (d *Dispatcher) guard(name string, wg *sync.WaitGroup, errp *error, fn func() error) {
	defer wg.Done()
	defer func() {
		if r := recover(); r != nil {
			*errp = fmt.Errorf("%s call panicked: %v", name, r)
		}
	}()
	if err := fn(); err != nil {
		*errp = err
		if d.logger != nil {
			d.logger.Warn("upstream call failed",
				xlogger.String("agent", name),
				xlogger.Error(err),
			)
		}
	}
}
