package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// DefaultHour is the local hour of the daily run
const DefaultHour = 6

// Refresher produces a new daily snapshot
type Refresher interface {
	Refresh(ctx context.Context) (*models.DailySnapshot, error)
}

// DailyScheduler runs a refresh at startup and then once a day at a fixed hour
type DailyScheduler struct {
	refresher  Refresher
	hour       int
	location   *time.Location
	runOnStart bool
	logger     zerolog.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// Option configures a DailyScheduler
type Option func(*DailyScheduler)

// WithLocation sets the time zone the hour is read in
func WithLocation(loc *time.Location) Option {
	return func(s *DailyScheduler) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithRunOnStart controls the refresh at startup
func WithRunOnStart(run bool) Option {
	return func(s *DailyScheduler) {
		s.runOnStart = run
	}
}

// NewDailyScheduler creates a scheduler firing at hour:00 every day.
// An hour outside 0-23 falls back to DefaultHour.
func NewDailyScheduler(refresher Refresher, hour int, logger zerolog.Logger, opts ...Option) *DailyScheduler {
	if hour < 0 || hour > 23 {
		hour = DefaultHour
	}

	s := &DailyScheduler{
		refresher:  refresher,
		hour:       hour,
		location:   time.Local,
		runOnStart: true,
		logger:     logger.With().Str("component", "daily_scheduler").Logger(),
		now:        time.Now,
		after:      time.After,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextRun returns the first hour:00 in loc strictly after now
func NextRun(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start blocks until ctx is canceled
func (s *DailyScheduler) Start(ctx context.Context) error {
	if s.runOnStart {
		s.run(ctx)
	}

	for {
		next := NextRun(s.now(), s.hour, s.location)
		s.logger.Info().Time("next_run", next).Msg("scheduled daily refresh")

		select {
		case <-ctx.Done():
			s.logger.Info().Msg("stopping daily scheduler")
			return nil
		case <-s.after(next.Sub(s.now())):
			s.run(ctx)
		}
	}
}

func (s *DailyScheduler) run(ctx context.Context) {
	if err := s.refresh(ctx); err != nil {
		s.logger.Error().Err(err).Msg("daily refresh failed")
	}
}

func (s *DailyScheduler) refresh(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in daily refresh: %v", r)
		}
	}()

	start := s.now()
	snapshot, err := s.refresher.Refresh(ctx)
	if err != nil {
		return err
	}

	s.logger.Info().
		Int("golden", len(snapshot.Golden)).
		Int("value", len(snapshot.Value)).
		Dur("elapsed", s.now().Sub(start)).
		Msg("daily refresh complete")
	return nil
}
