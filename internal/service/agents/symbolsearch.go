package agents

import (
	"context"

	"FinVoice/internal/domain/repository"
	domservice "FinVoice/internal/domain/service"
	"FinVoice/pkg/config"
	xhttp "FinVoice/pkg/http"
	"FinVoice/pkg/retry"
)

// SymbolSearchClient resolves free-text phrases against the external symbol
// search API (Yahoo-style `?q=` endpoint returning a quotes list).
type SymbolSearchClient struct {
	agentClient
}

func NewSymbolSearchClient(cfg *config.Config, client *xhttp.Client, metrics repository.Metrics) domservice.SymbolSearcher {
	// Per-phrase lookups are fire-and-forget inside the extractor; failed
	// phrases simply resolve to nothing, so retrying is not worth the wait.
	policy := retry.NewPolicy(1, 0)
	return &SymbolSearchClient{
		agentClient: newAgentClient("symbol_search", cfg.SymbolSearch.URL, cfg.SymbolSearch.Timeout, client, policy, metrics),
	}
}

func (c *SymbolSearchClient) Search(ctx context.Context, phrase string) (string, error) {
	var raw struct {
		Quotes []struct {
			Symbol string `json:"symbol"`
		} `json:"quotes"`
	}
	params := map[string][]string{"q": {phrase}}
	if err := c.getJSON(ctx, "", params, &raw); err != nil {
		return "", err
	}
	// Empty quotes is "no match for this phrase", not a failure.
	if len(raw.Quotes) == 0 {
		return "", nil
	}
	return raw.Quotes[0].Symbol, nil
}
