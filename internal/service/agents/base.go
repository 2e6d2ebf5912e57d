package agents

import (
	"context"
	"fmt"
	"time"

	"FinVoice/internal/domain/repository"
	xhttp "FinVoice/pkg/http"
	"FinVoice/pkg/retry"
)

// agentClient is the shared foundation of every collaborator client: one
// pooled HTTP client, a per-agent base URL and timeout, the uniform retry
// policy, and metrics recording.
type agentClient struct {
	name    string
	baseURL string
	timeout time.Duration
	client  *xhttp.Client
	retry   retry.Policy
	metrics repository.Metrics
}

func newAgentClient(name, baseURL string, timeout time.Duration, client *xhttp.Client, policy retry.Policy, metrics repository.Metrics) agentClient {
	return agentClient{
		name:    name,
		baseURL: baseURL,
		timeout: timeout,
		client:  client,
		retry:   policy,
		metrics: metrics,
	}
}

// postJSON posts payload to path under baseURL and decodes JSON into dest,
// retrying transient transport failures per the agent's policy. The call
// carries its own timeout regardless of the parent context.
func (a *agentClient) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	return a.do(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    a.baseURL + path,
		Body:   payload,
	}, dest)
}

// getJSON issues a GET with optional query params.
func (a *agentClient) getJSON(ctx context.Context, path string, params map[string][]string, dest interface{}) error {
	return a.do(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         a.baseURL + path,
		QueryParams: params,
	}, dest)
}

func (a *agentClient) do(ctx context.Context, opts *xhttp.RequestOptions, dest interface{}) error {
	if a.client == nil || a.baseURL == "" {
		return fmt.Errorf("%s client not initialized", a.name)
	}

	start := time.Now()
	attempt := 0
	err := a.retry.Do(ctx, func(ctx context.Context) error {
		attempt++
		if attempt > 1 && a.metrics != nil {
			a.metrics.RecordRetry(a.name)
		}
		cctx, cancel := context.WithTimeout(ctx, a.timeout)
		defer cancel()
		return a.client.SendAndParse(cctx, opts, dest)
	})

	if a.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		a.metrics.RecordUpstream(a.name, outcome)
		a.metrics.RecordUpstreamLatency(a.name, time.Since(start).Seconds())
	}

	if err != nil {
		return fmt.Errorf("%s %s: %w", a.name, opts.URL, err)
	}
	return nil
}
