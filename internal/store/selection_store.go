package store

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// DefaultTTL keeps a snapshot for one day
const DefaultTTL = 24 * time.Hour

// ListStatus describes one cached list
type ListStatus struct {
	Count            int `json:"count"`
	AgeMinutes       int `json:"age_minutes"`
	ExpiresInMinutes int `json:"expires_in_minutes"`
}

// Status describes the whole store; nil lists are absent or expired
type Status struct {
	Predictions *ListStatus `json:"predictions"`
	GoldenBets  *ListStatus `json:"golden_bets"`
	ValueBets   *ListStatus `json:"value_bets"`
	BetBuilder  *ListStatus `json:"bet_builder"`
}

// SelectionStore holds the latest daily snapshot in memory.
// Set replaces the snapshot wholesale; nothing is merged.
type SelectionStore struct {
	mu        sync.RWMutex
	snapshot  *models.DailySnapshot
	storedAt  time.Time
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
	logger    zerolog.Logger
}

// NewSelectionStore creates an empty store
func NewSelectionStore(ttl time.Duration, logger zerolog.Logger) *SelectionStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &SelectionStore{
		ttl:    ttl,
		now:    time.Now,
		logger: logger.With().Str("component", "selection_store").Logger(),
	}
}

// Set replaces the current snapshot
func (s *SelectionStore) Set(snapshot *models.DailySnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.snapshot = snapshot
	s.storedAt = now
	s.expiresAt = now.Add(s.ttl)

	s.logger.Info().
		Int("golden", len(snapshot.Golden)).
		Int("value", len(snapshot.Value)).
		Int("bet_builder_legs", len(snapshot.BetBuilder.Legs)).
		Dur("ttl", s.ttl).
		Msg("stored daily snapshot")
}

// Get returns the current snapshot, or false when empty or expired
func (s *SelectionStore) Get() (*models.DailySnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, false
	}
	if s.now().After(s.expiresAt) {
		s.logger.Debug().Msg("daily snapshot expired")
		return nil, false
	}
	return s.snapshot, true
}

// Clear drops the current snapshot
func (s *SelectionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = nil
	s.storedAt = time.Time{}
	s.expiresAt = time.Time{}
	s.logger.Info().Msg("cleared daily snapshot")
}

// Status reports counts and ages of the stored lists
func (s *SelectionStore) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	if s.snapshot == nil || now.After(s.expiresAt) {
		return Status{}
	}

	age := int(now.Sub(s.storedAt).Minutes())
	expiresIn := int(s.expiresAt.Sub(now).Minutes())
	list := func(n int) *ListStatus {
		return &ListStatus{Count: n, AgeMinutes: age, ExpiresInMinutes: expiresIn}
	}

	return Status{
		Predictions: list(len(s.snapshot.Predictions)),
		GoldenBets:  list(len(s.snapshot.Golden)),
		ValueBets:   list(len(s.snapshot.Value)),
		BetBuilder:  list(len(s.snapshot.BetBuilder.Legs)),
	}
}
