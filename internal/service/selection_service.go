package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/metrics"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/store"
	"github.com/dannythehat/footy-oracle-v2-sub003/pkg/bets"
)

// SelectionService derives the daily golden, value and bet-builder selections
type SelectionService struct {
	source    PredictionSource
	store     *store.SelectionStore
	publisher SnapshotPublisher
	metrics   *metrics.PipelineMetrics
	logger    zerolog.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewSelectionService creates a new selection service. publisher and metrics may be nil.
func NewSelectionService(
	source PredictionSource,
	store *store.SelectionStore,
	publisher SnapshotPublisher,
	metrics *metrics.PipelineMetrics,
	logger zerolog.Logger,
) *SelectionService {
	return &SelectionService{
		source:    source,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.With().Str("component", "selection_service").Logger(),
		now:       time.Now,
	}
}

// Refresh loads the latest predictions, derives selections and replaces the stored snapshot
func (s *SelectionService) Refresh(ctx context.Context) (*models.DailySnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.derive(ctx)
	if s.metrics != nil {
		s.metrics.ObserveSelectionRefresh(snapshot, err)
	}
	if err != nil {
		return nil, err
	}

	s.store.Set(snapshot)

	if s.publisher != nil {
		if err := s.publisher.PublishSnapshot(ctx, snapshot); err != nil {
			s.logger.Warn().Err(err).Msg("failed to publish daily snapshot")
			// the stored snapshot is still served
		}
	}

	s.logger.Info().
		Int("predictions", len(snapshot.Predictions)).
		Int("golden", len(snapshot.Golden)).
		Int("value", len(snapshot.Value)).
		Int("bet_builder_legs", len(snapshot.BetBuilder.Legs)).
		Str("combined_odds", snapshot.BetBuilder.CombinedOdds.String()).
		Msg("refreshed daily selections")

	return snapshot, nil
}

func (s *SelectionService) derive(ctx context.Context) (*models.DailySnapshot, error) {
	batch, oddsByFixture, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load predictions: %w", err)
	}

	if !batch.Success {
		s.logger.Warn().Int("total", batch.Total).Msg("predictions batch not marked successful")
	}

	derived := bets.Derive(batch.Predictions, oddsByFixture)

	return &models.DailySnapshot{
		Predictions: batch.Predictions,
		Golden:      derived.Golden,
		Value:       derived.Value,
		BetBuilder:  derived.BetBuilder,
		GeneratedAt: s.now().UTC(),
	}, nil
}

func (s *SelectionService) snapshot() *models.DailySnapshot {
	if snapshot, ok := s.store.Get(); ok {
		return snapshot
	}
	return &models.DailySnapshot{}
}

// Golden returns today's golden bets, empty when nothing is stored
func (s *SelectionService) Golden() []models.Selection {
	return nonNil(s.snapshot().Golden)
}

// Value returns today's value bets
func (s *SelectionService) Value() []models.Selection {
	return nonNil(s.snapshot().Value)
}

// BetBuilder returns today's bet builder
func (s *SelectionService) BetBuilder() models.BetBuilder {
	builder := s.snapshot().BetBuilder
	builder.Legs = nonNil(builder.Legs)
	return builder
}

// Predictions returns the predictions behind today's snapshot
func (s *SelectionService) Predictions() []models.PredictionRow {
	if rows := s.snapshot().Predictions; rows != nil {
		return rows
	}
	return []models.PredictionRow{}
}

// Status reports what the store holds and when it expires
func (s *SelectionService) Status() store.Status {
	return s.store.Status()
}

// Clear drops the stored snapshot
func (s *SelectionService) Clear() {
	s.store.Clear()
	s.logger.Info().Msg("cleared daily selections")
}

func nonNil(selections []models.Selection) []models.Selection {
	if selections == nil {
		return []models.Selection{}
	}
	return selections
}
