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

// RetrievalClient talks to the document retrieval agent.
type RetrievalClient struct {
	agentClient
	health agentClient
}

func NewRetrievalClient(cfg *config.Config, client *xhttp.Client, metrics repository.Metrics) domservice.RetrievalService {
	policy := retry.NewPolicy(cfg.Agents.RetryAttempts, cfg.Agents.RetryDelay)
	// The readiness ping gets a single attempt and a tight deadline.
	healthPolicy := retry.NewPolicy(1, 0)
	return &RetrievalClient{
		agentClient: newAgentClient("retrieval", cfg.Agents.RetrievalURL, cfg.Agents.RetrievalTimeout, client, policy, metrics),
		health:      newAgentClient("retrieval_health", cfg.Agents.RetrievalURL, cfg.Agents.HealthTimeout, client, healthPolicy, metrics),
	}
}

func (c *RetrievalClient) Query(ctx context.Context, query string, tickers, userURLs []string) (models.RetrievalResult, error) {
	payload := map[string]interface{}{
		"query":     query,
		"tickers":   tickers,
		"user_urls": userURLs,
	}
	var raw struct {
		Chunks []models.Chunk `json:"chunks"`
		Error  string         `json:"error"`
	}
	if err := c.postJSON(ctx, "/query", payload, &raw); err != nil {
		return models.RetrievalResult{}, err
	}
	if raw.Error != "" {
		return models.RetrievalResult{}, fmt.Errorf("retrieval agent: %s", raw.Error)
	}
	return models.RetrievalResult{Chunks: raw.Chunks}, nil
}

func (c *RetrievalClient) Health(ctx context.Context) error {
	var raw struct {
		Status string `json:"status"`
	}
	return c.health.getJSON(ctx, "/health", nil, &raw)
}
