package repository

import (
	"context"
	"time"

	"copydesk/internal/domain/repository"
	pkgkafka "copydesk/pkg/kafka"
)

// KafkaAuditPublisher writes pipeline events to a Kafka topic. It also
// satisfies logger.Publisher so aggregated error logs can share the stream.
type KafkaAuditPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaAuditPublisher(producer *pkgkafka.Producer, topic string) *KafkaAuditPublisher {
	return &KafkaAuditPublisher{producer: producer, topic: topic}
}

type auditEnvelope struct {
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload"`
}

func (p *KafkaAuditPublisher) PublishEvent(ctx context.Context, event interface{}) error {
	return p.producer.Publish(ctx, p.topic, nil, auditEnvelope{At: time.Now().UTC(), Payload: event})
}

// PublishMessage implements logger.Publisher.
func (p *KafkaAuditPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

func (p *KafkaAuditPublisher) Close() error {
	return p.producer.Close()
}

// NopAuditPublisher is used when auditing is disabled by configuration.
type NopAuditPublisher struct{}

func (NopAuditPublisher) PublishEvent(context.Context, interface{}) error { return nil }
func (NopAuditPublisher) Close() error                                    { return nil }

var _ repository.AuditPublisher = (*KafkaAuditPublisher)(nil)
var _ repository.AuditPublisher = NopAuditPublisher{}
