package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/service"
)

// KafkaConsumer consumes odds refresh requests from Kafka
type KafkaConsumer struct {
	reader    *kafka.Reader
	refresher service.EventRefresher
	logger    zerolog.Logger
}

// KafkaConsumerConfig holds Kafka consumer configuration
type KafkaConsumerConfig struct {
	Brokers []string // e.g., ["localhost:9092"]
	Topic   string   // e.g., "odds_refresh_requests"
	GroupID string   // e.g., "odds-pipeline"
}

// NewKafkaConsumer creates a new Kafka consumer
func NewKafkaConsumer(
	config KafkaConsumerConfig,
	refresher service.EventRefresher,
	logger zerolog.Logger,
) *KafkaConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        config.Brokers,
		Topic:          config.Topic,
		GroupID:        config.GroupID,
		MinBytes:       1,
		MaxBytes:       1e6, // 1MB
		CommitInterval: 0,   // commit synchronously
	})

	return &KafkaConsumer{
		reader:    reader,
		refresher: refresher,
		logger:    logger.With().Str("component", "kafka_consumer").Logger(),
	}
}

// Start begins consuming messages from Kafka
func (c *KafkaConsumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("topic", c.reader.Config().Topic).
		Str("group_id", c.reader.Config().GroupID).
		Msg("started consuming from Kafka")

	for {
		select {
		case <-ctx.Done():
			c.logger.Info().Msg("stopping Kafka consumer")
			return nil

		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return nil
				}
				c.logger.Error().Err(err).Msg("failed to fetch message")
				continue
			}

			if err := c.processMessage(ctx, msg); err != nil {
				c.logger.Error().
					Err(err).
					Int64("offset", msg.Offset).
					Str("key", string(msg.Key)).
					Msg("failed to process message")
				// Don't commit if processing failed
				continue
			}

			if err := c.reader.CommitMessages(ctx, msg); err != nil {
				c.logger.Error().Err(err).Msg("failed to commit message")
			}
		}
	}
}

// processMessage refreshes the requested events as one batch
func (c *KafkaConsumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var request models.KafkaOddsRefreshMessage
	if err := json.Unmarshal(msg.Value, &request); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	if len(request.Events) == 0 {
		c.logger.Debug().Str("batch_id", request.BatchID).Msg("empty odds refresh request")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.logger.Debug().
		Int("event_count", len(request.Events)).
		Str("batch_id", request.BatchID).
		Msg("processing odds refresh request")

	summaries, err := c.refresher.RefreshEvents(ctx, request.Events)

	c.logger.Info().
		Int("requested", len(request.Events)).
		Int("refreshed", len(summaries)).
		Str("batch_id", request.BatchID).
		Msg("processed odds refresh request")

	return err
}

// Close closes the Kafka reader
func (c *KafkaConsumer) Close() error {
	return c.reader.Close()
}
