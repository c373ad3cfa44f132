package worker

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"spadmin/internal/config"
	"spadmin/internal/events"
	"spadmin/internal/logger"

	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AuditCollection stores one document per consumed catalog event.
const AuditCollection = "audit_events"

// Worker consumes catalog events and records them as an audit trail.
type Worker struct {
	config *config.Config
	logger *logger.Logger
	reader *kafka.Reader
	audit  *mongo.Collection
}

func New(cfg *config.Config, log *logger.Logger, db *mongo.Database) *Worker {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokerList(cfg.KafkaBrokers),
		GroupID:        "spadmin-worker",
		Topic:          cfg.KafkaTopic,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		CommitInterval: time.Second,
	})

	return &Worker{
		config: cfg,
		logger: log,
		reader: reader,
		audit:  db.Collection(AuditCollection),
	}
}

// brokerList splits the comma-separated KAFKA_BROKERS value into addresses.
func brokerList(brokers string) []string {
	var addrs []string
	for _, addr := range strings.Split(brokers, ",") {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			addrs = append(addrs, trimmed)
		}
	}
	return addrs
}

func (w *Worker) Start() {
	w.logger.Info("worker started, listening for catalog events...")

	for {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		message, err := w.reader.ReadMessage(ctx)
		cancel()

		if err != nil {
			w.logger.Error("failed to read message: %v", err)
			continue
		}

		w.logger.Debug("received message: %s", string(message.Value))

		var event events.Event
		if err := json.Unmarshal(message.Value, &event); err != nil {
			w.logger.Error("failed to parse event: %v", err)
			continue
		}

		if err := w.record(event); err != nil {
			w.logger.Error("failed to record event: %v", err)
			continue
		}

		w.logger.Debug("event %s recorded", event.Type)
	}
}

func (w *Worker) record(event events.Event) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := w.audit.InsertOne(ctx, bson.M{
		"type":       event.Type,
		"productId":  event.ProductID,
		"data":       event.Data,
		"timestamp":  event.Timestamp,
		"recordedAt": time.Now(),
	})
	return err
}

func (w *Worker) Stop() {
	w.logger.Info("stopping worker...")
	w.reader.Close()
}
