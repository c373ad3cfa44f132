package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"spadmin/internal/logger"

	"github.com/segmentio/kafka-go"
)

const (
	TypeProductCreated  = "product.created"
	TypeProductUpdated  = "product.updated"
	TypeProductDeleted  = "product.deleted"
	TypeImportCompleted = "import.completed"
	TypeSeedCompleted   = "seed.completed"
)

type Event struct {
	Type      string                 `json:"type"`
	ProductID string                 `json:"product_id,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Publisher emits catalog events to Kafka. A nil Publisher drops events, so
// callers never need to check whether eventing is configured.
type Publisher struct {
	writer *kafka.Writer
	logger *logger.Logger
}

// NewPublisher returns nil when no brokers are configured.
func NewPublisher(brokers, topic string, log *logger.Logger) *Publisher {
	if brokers == "" {
		return nil
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(strings.Split(brokers, ",")...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Publisher{writer: writer, logger: log}
}

// Publish sends one event. Failures are logged and never propagate: eventing
// must not fail the operation that triggered it.
func (p *Publisher) Publish(ctx context.Context, event Event) {
	if p == nil {
		return
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to encode %s event: %v", event.Type, err)
		return
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Type),
		Value: value,
	}); err != nil {
		p.logger.Error("failed to publish %s event: %v", event.Type, err)
	}
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
