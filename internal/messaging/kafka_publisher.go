package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// messageWriter is the part of *kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes daily selection snapshots to Kafka
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger zerolog.Logger
}

// KafkaPublisherConfig holds Kafka publisher configuration
type KafkaPublisherConfig struct {
	Brokers []string
	Topic   string // e.g., "daily_selections"
}

// NewKafkaPublisher creates a publisher for one topic
func NewKafkaPublisher(config KafkaPublisherConfig, logger zerolog.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(config.Brokers...),
		Topic:                  config.Topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
	}

	return &KafkaPublisher{
		writer: writer,
		topic:  config.Topic,
		logger: logger.With().Str("component", "kafka_publisher").Logger(),
	}
}

// PublishSnapshot writes the snapshot keyed by its generation date
func (p *KafkaPublisher) PublishSnapshot(ctx context.Context, snapshot *models.DailySnapshot) error {
	message := models.KafkaSelectionsMessage{
		Snapshot:  *snapshot,
		Timestamp: time.Now().UTC(),
		BatchID:   uuid.NewString(),
	}

	value, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(snapshot.GeneratedAt.UTC().Format(time.DateOnly)),
		Value: value,
		Time:  message.Timestamp,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}

	p.logger.Debug().
		Str("topic", p.topic).
		Str("key", string(msg.Key)).
		Str("batch_id", message.BatchID).
		Msg("published daily snapshot")

	return nil
}

// Close flushes and closes the writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
