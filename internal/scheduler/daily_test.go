package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

type fakeRefresher struct {
	mu    sync.Mutex
	calls int
	errs  []error
	panic bool
	ran   chan struct{}
}

func newFakeRefresher(errs ...error) *fakeRefresher {
	return &fakeRefresher{errs: errs, ran: make(chan struct{}, 16)}
}

func (f *fakeRefresher) Refresh(context.Context) (*models.DailySnapshot, error) {
	f.mu.Lock()
	call := f.calls
	f.calls++
	f.mu.Unlock()

	defer func() { f.ran <- struct{}{} }()

	if f.panic {
		panic("boom")
	}
	if call < len(f.errs) && f.errs[call] != nil {
		return nil, f.errs[call]
	}
	return &models.DailySnapshot{}, nil
}

func (f *fakeRefresher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func waitRun(t *testing.T, f *fakeRefresher) {
	t.Helper()
	select {
	case <-f.ran:
	case <-time.After(time.Second):
		t.Fatal("refresh did not run")
	}
}

func TestNextRun(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before the hour runs today",
			now:  time.Date(2026, 10, 15, 5, 59, 0, 0, time.UTC),
			want: time.Date(2026, 10, 15, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly on the hour runs tomorrow",
			now:  time.Date(2026, 10, 15, 6, 0, 0, 0, time.UTC),
			want: time.Date(2026, 10, 16, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "after the hour runs tomorrow",
			now:  time.Date(2026, 10, 15, 18, 30, 0, 0, time.UTC),
			want: time.Date(2026, 10, 16, 6, 0, 0, 0, time.UTC),
		},
		{
			name: "month rollover",
			now:  time.Date(2026, 10, 31, 7, 0, 0, 0, time.UTC),
			want: time.Date(2026, 11, 1, 6, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextRun(tt.now, 6, time.UTC))
		})
	}
}

func TestNewDailyScheduler_InvalidHour(t *testing.T) {
	s := NewDailyScheduler(newFakeRefresher(), 24, zerolog.Nop())
	assert.Equal(t, DefaultHour, s.hour)

	s = NewDailyScheduler(newFakeRefresher(), -1, zerolog.Nop())
	assert.Equal(t, DefaultHour, s.hour)
}

func TestStart_RunsAtStartupAndOnSchedule(t *testing.T) {
	refresher := newFakeRefresher(errors.New("predictions missing"))
	s := NewDailyScheduler(refresher, 6, zerolog.Nop(), WithLocation(time.UTC))

	now := time.Date(2026, 10, 15, 5, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	fire := make(chan time.Time)
	waits := make(chan time.Duration, 4)
	s.after = func(d time.Duration) <-chan time.Time {
		waits <- d
		return fire
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	// startup run fails, loop continues
	waitRun(t, refresher)
	assert.Equal(t, time.Hour, <-waits)

	fire <- now
	waitRun(t, refresher)
	<-waits

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 2, refresher.count())
}

func TestStart_SkipRunOnStart(t *testing.T) {
	refresher := newFakeRefresher()
	s := NewDailyScheduler(refresher, 6, zerolog.Nop(), WithRunOnStart(false))

	waiting := make(chan struct{}, 1)
	s.after = func(time.Duration) <-chan time.Time {
		waiting <- struct{}{}
		return make(chan time.Time)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	<-waiting
	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, refresher.count())
}

func TestStart_RecoversFromPanic(t *testing.T) {
	refresher := newFakeRefresher()
	refresher.panic = true
	s := NewDailyScheduler(refresher, 6, zerolog.Nop())

	waiting := make(chan struct{}, 1)
	s.after = func(time.Duration) <-chan time.Time {
		waiting <- struct{}{}
		return make(chan time.Time)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	<-waiting
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 1, refresher.count())
}
