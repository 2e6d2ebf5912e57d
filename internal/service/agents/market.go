package agents

import (
	"context"

	"FinVoice/internal/domain/models"
	"FinVoice/internal/domain/repository"
	domservice "FinVoice/internal/domain/service"
	"FinVoice/pkg/config"
	xhttp "FinVoice/pkg/http"
	"FinVoice/pkg/retry"
)

// MarketClient talks to the market data agent. The agent answers per ticker
// with either a candle list or an error object; both land in TickerSeries.
type MarketClient struct {
	agentClient
}

func NewMarketClient(cfg *config.Config, client *xhttp.Client, metrics repository.Metrics) domservice.MarketDataService {
	policy := retry.NewPolicy(cfg.Agents.RetryAttempts, cfg.Agents.RetryDelay)
	return &MarketClient{
		agentClient: newAgentClient("market_data", cfg.Agents.MarketDataURL, cfg.Agents.MarketDataTimeout, client, policy, metrics),
	}
}

func (c *MarketClient) Fetch(ctx context.Context, tickers []string) (models.MarketData, error) {
	payload := map[string][]string{"tickers": tickers}
	var data models.MarketData
	if err := c.postJSON(ctx, "/run", payload, &data); err != nil {
		return nil, err
	}
	return data, nil
}
