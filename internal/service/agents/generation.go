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

// GenerationClient talks to the narrative generation agent.
type GenerationClient struct {
	agentClient
}

func NewGenerationClient(cfg *config.Config, client *xhttp.Client, metrics repository.Metrics) domservice.GenerationService {
	policy := retry.NewPolicy(cfg.Agents.RetryAttempts, cfg.Agents.RetryDelay)
	return &GenerationClient{
		agentClient: newAgentClient("generation", cfg.Agents.GenerationURL, cfg.Agents.GenerationTimeout, client, policy, metrics),
	}
}

func (c *GenerationClient) Generate(ctx context.Context, prompt string, analysis models.AnalysisData) (string, error) {
	payload := map[string]interface{}{
		"prompt":        prompt,
		"analysis_data": analysis,
	}
	var raw struct {
		Response *string `json:"response"`
	}
	if err := c.postJSON(ctx, "/generate", payload, &raw); err != nil {
		return "", err
	}
	if raw.Response == nil {
		return "", fmt.Errorf("generation agent: response key missing")
	}
	return *raw.Response, nil
}
