package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/cache"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/metrics"
	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
	"github.com/dannythehat/footy-oracle-v2-sub003/pkg/odds"
	"github.com/dannythehat/footy-oracle-v2-sub003/pkg/pricing"
)

// ErrInvalidEvent is returned when a sport key or event id is empty
var ErrInvalidEvent = errors.New("sport key and event id are required")

// OddsService discovers, normalizes and caches event odds
type OddsService struct {
	fetcher  OddsFetcher
	cache    Cache
	pipeline *odds.Pipeline
	pricer   *pricing.Pricer
	metrics  *metrics.PipelineMetrics
	logger   zerolog.Logger

	// provider calls run one event at a time
	mu  sync.Mutex
	now func() time.Time
}

// NewOddsService creates a new odds service. metrics may be nil.
func NewOddsService(
	fetcher OddsFetcher,
	cache Cache,
	metrics *metrics.PipelineMetrics,
	logger zerolog.Logger,
) *OddsService {
	return &OddsService{
		fetcher:  fetcher,
		cache:    cache,
		pipeline: odds.NewPipeline(logger),
		pricer:   pricing.NewPricer(logger),
		metrics:  metrics,
		logger:   logger.With().Str("component", "odds_service").Logger(),
		now:      time.Now,
	}
}

// RefreshEvent fetches the event's markets, requests odds for the supported ones it offers,
// normalizes them and caches the summary
func (s *OddsService) RefreshEvent(ctx context.Context, sportKey, eventID string) (*models.EventOddsSummary, error) {
	if sportKey == "" || eventID == "" {
		return nil, ErrInvalidEvent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	summary, err := s.refreshEvent(ctx, sportKey, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, summary); err != nil {
		s.logger.Warn().
			Err(err).
			Str("sport_key", sportKey).
			Str("event_id", eventID).
			Msg("failed to cache event odds")
		// Don't fail the request on cache errors
	}

	return summary, nil
}

// RefreshEvents refreshes events one after another and caches the successful summaries
// in a single batch. Failed events are reported in the returned error.
func (s *OddsService) RefreshEvents(ctx context.Context, events []models.EventRef) ([]*models.EventOddsSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]*models.EventOddsSummary, 0, len(events))
	var failures []error

	for _, event := range events {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}

		if event.SportKey == "" || event.EventID == "" {
			failures = append(failures, fmt.Errorf("event %q/%q: %w", event.SportKey, event.EventID, ErrInvalidEvent))
			continue
		}

		summary, err := s.refreshEvent(ctx, event.SportKey, event.EventID)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("sport_key", event.SportKey).
				Str("event_id", event.EventID).
				Msg("failed to refresh event")
			failures = append(failures, fmt.Errorf("event %s/%s: %w", event.SportKey, event.EventID, err))
			continue
		}
		summaries = append(summaries, summary)
	}

	if len(summaries) > 0 {
		if err := s.cache.SetBatch(ctx, summaries); err != nil {
			s.logger.Warn().
				Err(err).
				Int("count", len(summaries)).
				Msg("failed to cache event odds batch")
		}
	}

	if len(failures) > 0 {
		return summaries, fmt.Errorf("failed to refresh %d of %d events: %w", len(events)-len(summaries), len(events), errors.Join(failures...))
	}
	return summaries, nil
}

// refreshEvent runs one refresh and records its metrics. Callers hold mu.
func (s *OddsService) refreshEvent(ctx context.Context, sportKey, eventID string) (*models.EventOddsSummary, error) {
	start := s.now()
	summary, err := s.refresh(ctx, sportKey, eventID)

	if s.metrics != nil {
		bundle := models.NormalizedOddsBundle{}
		if summary != nil {
			bundle = summary.Normalized
		}
		s.metrics.ObserveEventRefresh(bundle, s.now().Sub(start), err)
	}

	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("sport_key", sportKey).
		Str("event_id", eventID).
		Int("market_keys", len(summary.Markets)).
		Int("normalized", summary.Normalized.Size()).
		Int("best", len(summary.Best)).
		Msg("refreshed event odds")

	return summary, nil
}

func (s *OddsService) refresh(ctx context.Context, sportKey, eventID string) (*models.EventOddsSummary, error) {
	raw, err := s.fetcher.FetchEventMarkets(ctx, sportKey, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event markets: %w", err)
	}

	// a malformed payload still yields whatever markets could be salvaged
	discovered, _ := s.pipeline.Discover(raw)

	summary := &models.EventOddsSummary{
		ID:         uuid.New(),
		SportKey:   sportKey,
		EventID:    eventID,
		Markets:    discovered,
		Normalized: models.NewNormalizedOddsBundle(),
		Best:       make(map[string]models.NormalizedMarket),
		FetchedAt:  s.now().UTC(),
	}

	keys := odds.OfferedMarketKeys(discovered)
	if len(keys) == 0 {
		s.logger.Info().
			Str("sport_key", sportKey).
			Str("event_id", eventID).
			Msg("event offers no supported markets")
		return summary, nil
	}

	raw, err = s.fetcher.FetchEventOdds(ctx, sportKey, eventID, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event odds: %w", err)
	}

	eval, _ := s.pipeline.Evaluate(raw)
	summary.HomeTeam = eval.Event.HomeTeam
	summary.AwayTeam = eval.Event.AwayTeam
	summary.Normalized = eval.Normalized
	summary.Best = eval.Best
	summary.Fair = s.pricer.PriceAll(eval.Best)

	return summary, nil
}

// GetEventOdds retrieves event odds with cache-first strategy, refreshing on a miss
func (s *OddsService) GetEventOdds(ctx context.Context, sportKey, eventID string) (*models.EventOddsSummary, error) {
	if sportKey == "" || eventID == "" {
		return nil, ErrInvalidEvent
	}

	cached, err := s.cache.Get(ctx, sportKey, eventID)
	if err == nil && cached != nil {
		s.logger.Debug().
			Str("sport_key", sportKey).
			Str("event_id", eventID).
			Msg("cache hit for event odds")
		return cached, nil
	}

	// Log cache errors but fall through to the provider
	if err != nil && !errors.Is(err, cache.ErrNotFound) {
		s.logger.Warn().
			Err(err).
			Str("sport_key", sportKey).
			Str("event_id", eventID).
			Msg("cache error, refreshing from provider")
	}

	return s.RefreshEvent(ctx, sportKey, eventID)
}

// GetSportOdds retrieves all cached event odds for a sport
func (s *OddsService) GetSportOdds(ctx context.Context, sportKey string) ([]*models.EventOddsSummary, error) {
	summaries, err := s.cache.GetBySport(ctx, sportKey)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve odds for sport: %w", err)
	}

	s.logger.Debug().
		Str("sport_key", sportKey).
		Int("count", len(summaries)).
		Msg("retrieved event odds by sport")

	return summaries, nil
}

// DiscoverEvent lists every market an event offers, straight from the provider
func (s *OddsService) DiscoverEvent(ctx context.Context, sportKey, eventID string) (models.DiscoveredMarkets, error) {
	if sportKey == "" || eventID == "" {
		return nil, ErrInvalidEvent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.fetcher.FetchEventMarkets(ctx, sportKey, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event markets: %w", err)
	}

	discovered, _ := s.pipeline.Discover(raw)
	return discovered, nil
}
