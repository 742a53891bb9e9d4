package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestPublisher(w *fakeWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: "daily_selections", logger: zerolog.Nop()}
}

func TestNewKafkaPublisher(t *testing.T) {
	publisher := NewKafkaPublisher(KafkaPublisherConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "daily_selections",
	}, zerolog.Nop())

	writer, ok := publisher.writer.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "daily_selections", writer.Topic)
	assert.Equal(t, kafka.RequireAll, writer.RequiredAcks)
	assert.NoError(t, publisher.Close())
}

func TestPublishSnapshot(t *testing.T) {
	w := &fakeWriter{}
	publisher := newTestPublisher(w)

	snapshot := &models.DailySnapshot{
		Golden: []models.Selection{{
			Kind:      models.SelectionGolden,
			FixtureID: 10,
			Market:    "over25",
			Odds:      decimal.RequireFromString("1.9"),
		}},
		BetBuilder:  models.BetBuilder{CombinedOdds: decimal.RequireFromString("4.07")},
		GeneratedAt: time.Date(2026, 10, 15, 6, 0, 0, 0, time.UTC),
	}

	require.NoError(t, publisher.PublishSnapshot(context.Background(), snapshot))
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "2026-10-15", string(msg.Key))

	var decoded models.KafkaSelectionsMessage
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.NotEmpty(t, decoded.BatchID)
	require.Len(t, decoded.Snapshot.Golden, 1)
	assert.Equal(t, int64(10), decoded.Snapshot.Golden[0].FixtureID)
	assert.True(t, decoded.Snapshot.BetBuilder.CombinedOdds.Equal(decimal.RequireFromString("4.07")))
}

func TestPublishSnapshot_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker unavailable")}
	publisher := newTestPublisher(w)

	err := publisher.PublishSnapshot(context.Background(), &models.DailySnapshot{})
	assert.ErrorContains(t, err, "failed to publish snapshot")
}

func TestPublisherClose(t *testing.T) {
	w := &fakeWriter{}
	require.NoError(t, newTestPublisher(w).Close())
	assert.True(t, w.closed)
}
