package agents

import (
	"context"
	"fmt"

	"FinVoice/internal/domain/models"
	"FinVoice/internal/domain/repository"
	domservice "FinVoice/internal/domain/service"
	"FinVoice/pkg/config"
	xhttp "FinVoice/pkg/http"
	"FinVoice/pkg/retry"
)

// AnalysisClient talks to the numeric analysis agent. Its payload shape
// varies by query class, so the result stays a loosely typed map that is
// forwarded to generation as-is.
type AnalysisClient struct {
	agentClient
}

func NewAnalysisClient(cfg *config.Config, client *xhttp.Client, metrics repository.Metrics) domservice.AnalysisService {
	policy := retry.NewPolicy(cfg.Agents.RetryAttempts, cfg.Agents.RetryDelay)
	return &AnalysisClient{
		agentClient: newAgentClient("analysis", cfg.Agents.AnalysisURL, cfg.Agents.AnalysisTimeout, client, policy, metrics),
	}
}

func (c *AnalysisClient) Analyze(ctx context.Context, market models.MarketData, news models.NewsData, tickers []string, query string) (models.AnalysisData, error) {
	payload := map[string]interface{}{
		"api_data":    market,
		"scrape_data": news,
		"tickers":     tickers,
		"query":       query,
	}
	var data models.AnalysisData
	if err := c.postJSON(ctx, "/analyze", payload, &data); err != nil {
		return nil, err
	}
	if msg, ok := data["error"].(string); ok && msg != "" {
		return nil, fmt.Errorf("analysis agent: %s", msg)
	}
	return data, nil
}
