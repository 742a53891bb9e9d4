package service

import (
	"context"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// Cache is an interface that abstracts cache operations
// This allows for easier testing and mocking
type Cache interface {
	Set(ctx context.Context, summary *models.EventOddsSummary) error
	Get(ctx context.Context, sportKey, eventID string) (*models.EventOddsSummary, error)
	SetBatch(ctx context.Context, summaries []*models.EventOddsSummary) error
	GetBySport(ctx context.Context, sportKey string) ([]*models.EventOddsSummary, error)
	Ping(ctx context.Context) error
	Close() error
}
