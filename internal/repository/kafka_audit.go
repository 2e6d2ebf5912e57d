package repository

import (
	"context"

	"FinVoice/internal/domain/models"
	domrepo "FinVoice/internal/domain/repository"
	pkgkafka "FinVoice/pkg/kafka"
)

// KafkaAuditPublisher publishes request audit events to a Kafka topic.
// Publishing is best effort; the pipeline only logs failures.
type KafkaAuditPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaAuditPublisher(producer *pkgkafka.Producer, topic string) *KafkaAuditPublisher {
	return &KafkaAuditPublisher{producer: producer, topic: topic}
}

func (p *KafkaAuditPublisher) Publish(ctx context.Context, audit models.RequestAudit) error {
	return p.producer.Publish(ctx, p.topic, []byte(audit.RequestID), audit)
}

func (p *KafkaAuditPublisher) Close() error {
	return p.producer.Close()
}

// PublishMessage satisfies the logger collector's Publisher interface so
// aggregated error logs share the audit producer.
func (p *KafkaAuditPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

// NoopAuditPublisher discards audit events. Used when no brokers are
// configured.
type NoopAuditPublisher struct{}

func (NoopAuditPublisher) Publish(context.Context, models.RequestAudit) error { return nil }
func (NoopAuditPublisher) Close() error                                       { return nil }

var (
	_ domrepo.AuditPublisher = (*KafkaAuditPublisher)(nil)
	_ domrepo.AuditPublisher = NoopAuditPublisher{}
)
