package repository

import (
	"context"

	"FinVoice/internal/domain/models"
)

// AuditPublisher publishes per-request audit events, best effort.
type AuditPublisher interface {
	Publish(ctx context.Context, audit models.RequestAudit) error
	Close() error
}

// Metrics records pipeline observability counters.
type Metrics interface {
	RecordUpstream(agent, outcome string)
	RecordUpstreamLatency(agent string, seconds float64)
	RecordRetry(agent string)
	RecordRequest(outcome string, seconds float64)
	RecordTickersExtracted(n int)
}
