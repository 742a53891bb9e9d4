package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// testRedisCacheSetup is a helper struct to hold test dependencies
type testRedisCacheSetup struct {
	cache     *RedisCache
	miniRedis *miniredis.Miniredis
	ctx       context.Context
}

func setupTestRedisCache(t *testing.T) *testRedisCacheSetup {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	config := RedisCacheConfig{
		Addr: mr.Addr(),
		DB:   0,
		TTL:  15 * time.Minute,
	}

	return &testRedisCacheSetup{
		cache:     NewRedisCache(config, zerolog.Nop()),
		miniRedis: mr,
		ctx:       context.Background(),
	}
}

func (s *testRedisCacheSetup) cleanup() {
	s.cache.Close()
	s.miniRedis.Close()
}

func ptr(f float64) *float64 { return &f }

func newSummary(sportKey, eventID string) *models.EventOddsSummary {
	bundle := models.NewNormalizedOddsBundle()
	goals := models.NormalizedMarket{Line: 2.5, Bookmaker: "pinnacle", Over: ptr(1.95), Under: ptr(1.9)}
	bundle.Goals[2.5] = goals

	return &models.EventOddsSummary{
		ID:       uuid.New(),
		SportKey: sportKey,
		EventID:  eventID,
		HomeTeam: "Arsenal",
		AwayTeam: "Chelsea",
		Markets: models.DiscoveredMarkets{
			"totals": {{Bookmaker: "pinnacle", Line: ptr(2.5), Over: ptr(1.95), Under: ptr(1.9)}},
		},
		Normalized: bundle,
		Best:       map[string]models.NormalizedMarket{"goals_2.5": goals},
		FetchedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func TestNewRedisCache(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NotNil(t, setup.cache.client)
	assert.Equal(t, 15*time.Minute, setup.cache.ttl)
}

func TestSet_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	err := setup.cache.Set(setup.ctx, newSummary("soccer_epl", "event-123"))
	require.NoError(t, err)

	assert.True(t, setup.miniRedis.Exists("odds:soccer_epl:event-123"))
}

func TestGet_RoundTrip(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	summary := newSummary("soccer_epl", "event-123")
	require.NoError(t, setup.cache.Set(setup.ctx, summary))

	got, err := setup.cache.Get(setup.ctx, "soccer_epl", "event-123")
	require.NoError(t, err)

	assert.Equal(t, summary.ID, got.ID)
	assert.Equal(t, "Arsenal", got.HomeTeam)
	assert.True(t, summary.FetchedAt.Equal(got.FetchedAt))
	require.Contains(t, got.Normalized.Goals, models.Line(2.5))
	assert.Equal(t, "pinnacle", got.Normalized.Goals[2.5].Bookmaker)
	assert.Equal(t, 1.95, *got.Best["goals_2.5"].Over)
	require.Len(t, got.Markets["totals"], 1)
	assert.Equal(t, 2.5, *got.Markets["totals"][0].Line)
}

func TestGet_NotFound(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	got, err := setup.cache.Get(setup.ctx, "soccer_epl", "missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_CorruptPayload(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	require.NoError(t, setup.miniRedis.Set("odds:soccer_epl:bad", "{not json"))

	_, err := setup.cache.Get(setup.ctx, "soccer_epl", "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestGet_RedisDown(t *testing.T) {
	setup := setupTestRedisCache(t)
	setup.miniRedis.Close()
	defer setup.cache.Close()

	_, err := setup.cache.Get(setup.ctx, "soccer_epl", "event-123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestSetBatch_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	summaries := []*models.EventOddsSummary{
		newSummary("soccer_epl", "e1"),
		newSummary("soccer_epl", "e2"),
		newSummary("soccer_spain_la_liga", "e3"),
	}

	require.NoError(t, setup.cache.SetBatch(setup.ctx, summaries))

	for _, s := range summaries {
		got, err := setup.cache.Get(setup.ctx, s.SportKey, s.EventID)
		require.NoError(t, err)
		assert.Equal(t, s.ID, got.ID)
	}
}

func TestSetBatch_EmptyList(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NoError(t, setup.cache.SetBatch(setup.ctx, nil))
	assert.NoError(t, setup.cache.SetBatch(setup.ctx, []*models.EventOddsSummary{}))
	assert.Empty(t, setup.miniRedis.Keys())
}

func TestGetBySport_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	require.NoError(t, setup.cache.SetBatch(setup.ctx, []*models.EventOddsSummary{
		newSummary("soccer_epl", "e1"),
		newSummary("soccer_epl", "e2"),
		newSummary("soccer_spain_la_liga", "e3"),
	}))

	got, err := setup.cache.GetBySport(setup.ctx, "soccer_epl")
	require.NoError(t, err)
	require.Len(t, got, 2)

	ids := []string{got[0].EventID, got[1].EventID}
	assert.ElementsMatch(t, []string{"e1", "e2"}, ids)
}

func TestGetBySport_NoEvents(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	got, err := setup.cache.GetBySport(setup.ctx, "soccer_epl")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGetBySport_SkipsCorruptEntries(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	require.NoError(t, setup.cache.Set(setup.ctx, newSummary("soccer_epl", "e1")))
	require.NoError(t, setup.miniRedis.Set("odds:soccer_epl:e2", "garbage"))

	got, err := setup.cache.GetBySport(setup.ctx, "soccer_epl")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "e1", got[0].EventID)
}

func TestGetBySport_ManyEvents(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	summaries := make([]*models.EventOddsSummary, 250)
	for i := range summaries {
		summaries[i] = newSummary("soccer_epl", fmt.Sprintf("e%d", i))
	}
	require.NoError(t, setup.cache.SetBatch(setup.ctx, summaries))

	got, err := setup.cache.GetBySport(setup.ctx, "soccer_epl")
	require.NoError(t, err)
	assert.Len(t, got, 250)
}

func TestPing_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NoError(t, setup.cache.Ping(setup.ctx))
}

func TestPing_RedisDown(t *testing.T) {
	setup := setupTestRedisCache(t)
	setup.miniRedis.Close()
	defer setup.cache.Close()

	assert.Error(t, setup.cache.Ping(setup.ctx))
}

func TestCache_TTLRespected(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	require.NoError(t, setup.cache.Set(setup.ctx, newSummary("soccer_epl", "event-123")))

	ttl := setup.miniRedis.TTL("odds:soccer_epl:event-123")
	assert.True(t, ttl > 0)
	assert.True(t, ttl <= 15*time.Minute)

	setup.miniRedis.FastForward(16 * time.Minute)

	_, err := setup.cache.Get(setup.ctx, "soccer_epl", "event-123")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("e%d", i)
			assert.NoError(t, setup.cache.Set(setup.ctx, newSummary("soccer_epl", id)))
			_, err := setup.cache.Get(setup.ctx, "soccer_epl", id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := setup.cache.GetBySport(setup.ctx, "soccer_epl")
	require.NoError(t, err)
	assert.Len(t, got, 10)
}
