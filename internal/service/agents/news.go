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

// NewsClient talks to the news scraping agent.
type NewsClient struct {
	agentClient
}

func NewNewsClient(cfg *config.Config, client *xhttp.Client, metrics repository.Metrics) domservice.NewsService {
	policy := retry.NewPolicy(cfg.Agents.RetryAttempts, cfg.Agents.RetryDelay)
	return &NewsClient{
		agentClient: newAgentClient("news", cfg.Agents.NewsURL, cfg.Agents.NewsTimeout, client, policy, metrics),
	}
}

func (c *NewsClient) Fetch(ctx context.Context, tickers []string) (models.NewsData, error) {
	payload := map[string][]string{"tickers": tickers}
	var raw struct {
		Articles map[string][]models.Article `json:"articles"`
		Error    string                      `json:"error"`
	}
	if err := c.postJSON(ctx, "/run", payload, &raw); err != nil {
		return models.NewsData{}, err
	}
	// A well-formed error payload is a failure but never retried.
	if raw.Error != "" {
		return models.NewsData{}, fmt.Errorf("news agent: %s", raw.Error)
	}
	return models.NewsData{Articles: raw.Articles}, nil
}
