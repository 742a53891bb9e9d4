package service

import (
	"context"
	"encoding/json"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// OddsFetcher retrieves raw event payloads from the odds provider
type OddsFetcher interface {
	FetchEventMarkets(ctx context.Context, sportKey, eventID string) (json.RawMessage, error)
	FetchEventOdds(ctx context.Context, sportKey, eventID string, marketKeys []string) (json.RawMessage, error)
}

// PredictionSource loads the latest model predictions and the odds they are priced against
type PredictionSource interface {
	Load(ctx context.Context) (*models.PredictionBatch, models.OddsByFixture, error)
}

// SnapshotPublisher announces a freshly derived daily snapshot
type SnapshotPublisher interface {
	PublishSnapshot(ctx context.Context, snapshot *models.DailySnapshot) error
}

// EventRefresher refreshes the odds of a batch of events
type EventRefresher interface {
	RefreshEvents(ctx context.Context, events []models.EventRef) ([]*models.EventOddsSummary, error)
}
