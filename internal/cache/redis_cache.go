package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/dannythehat/footy-oracle-v2-sub003/internal/models"
)

// ErrNotFound is returned when an event has no cached odds
var ErrNotFound = errors.New("odds not found in cache")

// RedisCache caches event odds summaries in Redis
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// RedisCacheConfig holds Redis cache configuration
type RedisCacheConfig struct {
	Addr     string // e.g., "localhost:6379"
	Password string
	DB       int
	TTL      time.Duration // e.g., 15 * time.Minute
}

// NewRedisCache creates a new Redis cache
func NewRedisCache(config RedisCacheConfig, logger zerolog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	return &RedisCache{
		client: client,
		ttl:    config.TTL,
		logger: logger.With().Str("component", "redis_cache").Logger(),
	}
}

// eventKey builds odds:{sport_key}:{event_id}
func eventKey(sportKey, eventID string) string {
	return fmt.Sprintf("odds:%s:%s", sportKey, eventID)
}

// Set caches the odds summary of one event
func (c *RedisCache) Set(ctx context.Context, summary *models.EventOddsSummary) error {
	key := eventKey(summary.SportKey, summary.EventID)

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to marshal odds summary: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in Redis: %w", err)
	}

	c.logger.Debug().
		Str("key", key).
		Dur("ttl", c.ttl).
		Msg("cached event odds")

	return nil
}

// Get retrieves the cached odds summary of one event
func (c *RedisCache) Get(ctx context.Context, sportKey, eventID string) (*models.EventOddsSummary, error) {
	key := eventKey(sportKey, eventID)

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to get from Redis: %w", err)
	}

	var summary models.EventOddsSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("failed to unmarshal odds summary: %w", err)
	}

	return &summary, nil
}

// SetBatch caches several summaries in one pipeline
func (c *RedisCache) SetBatch(ctx context.Context, summaries []*models.EventOddsSummary) error {
	if len(summaries) == 0 {
		return nil
	}

	pipe := c.client.Pipeline()

	for _, summary := range summaries {
		data, err := json.Marshal(summary)
		if err != nil {
			c.logger.Error().Err(err).Str("event_id", summary.EventID).Msg("failed to marshal odds summary")
			continue
		}
		pipe.Set(ctx, eventKey(summary.SportKey, summary.EventID), data, c.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute pipeline: %w", err)
	}

	c.logger.Info().
		Int("count", len(summaries)).
		Msg("cached batch of event odds")

	return nil
}

// GetBySport retrieves every cached summary for a sport
func (c *RedisCache) GetBySport(ctx context.Context, sportKey string) ([]*models.EventOddsSummary, error) {
	pattern := fmt.Sprintf("odds:%s:*", sportKey)

	var cursor uint64
	var keys []string

	for {
		var scanKeys []string
		var err error
		scanKeys, cursor, err = c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan keys: %w", err)
		}

		keys = append(keys, scanKeys...)

		if cursor == 0 {
			break
		}
	}

	summaries := make([]*models.EventOddsSummary, 0, len(keys))
	if len(keys) == 0 {
		return summaries, nil
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}

	for i, value := range values {
		// expired between SCAN and MGET
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var summary models.EventOddsSummary
		if err := json.Unmarshal([]byte(raw), &summary); err != nil {
			c.logger.Warn().Err(err).Str("key", keys[i]).Msg("failed to unmarshal odds summary")
			continue
		}

		summaries = append(summaries, &summary)
	}

	return summaries, nil
}

// Ping checks Redis connection
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
