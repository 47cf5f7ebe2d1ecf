package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/TVDoutor/controle-de-estoque-sub000/internal/shared/logger"
)

// StockSummaryCache holds the equipment count per status.
type StockSummaryCache interface {
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context) (map[string]int64, error)
	Set(ctx context.Context, counts map[string]int64) error
	Invalidate(ctx context.Context) error
}

const (
	stockSummaryKey        = "estoque:stock:summary"
	defaultStockSummaryTTL = 5 * time.Minute
)

// RedisStockSummaryCache stores the summary as a Redis hash keyed by status.
type RedisStockSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisStockSummaryCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisStockSummaryCache {
	if ttl <= 0 {
		ttl = defaultStockSummaryTTL
	}
	return &RedisStockSummaryCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisStockSummaryCache) Get(ctx context.Context) (map[string]int64, error) {
	result, err := c.client.HGetAll(ctx, stockSummaryKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stock summary from cache: %w", err)
	}
	if len(result) == 0 {
		return nil, nil
	}

	counts := make(map[string]int64, len(result))
	for status, raw := range result {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.logger.Warnw("discarding malformed stock summary entry", "status", status, "value", raw)
			return nil, nil
		}
		counts[status] = n
	}
	return counts, nil
}

// Set replaces the hash atomically so a reader never sees a partial summary.
func (c *RedisStockSummaryCache) Set(ctx context.Context, counts map[string]int64) error {
	fields := make(map[string]interface{}, len(counts))
	for status, n := range counts {
		fields[status] = n
	}

	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, stockSummaryKey)
		if len(fields) > 0 {
			pipe.HSet(ctx, stockSummaryKey, fields)
			pipe.Expire(ctx, stockSummaryKey, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to set stock summary cache: %w", err)
	}
	return nil
}

func (c *RedisStockSummaryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, stockSummaryKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate stock summary cache: %w", err)
	}
	return nil
}

// NoopStockSummaryCache is used when Redis is disabled. Every read is a miss.
type NoopStockSummaryCache struct{}

func (NoopStockSummaryCache) Get(ctx context.Context) (map[string]int64, error) { return nil, nil }
func (NoopStockSummaryCache) Set(ctx context.Context, counts map[string]int64) error {
	return nil
}
func (NoopStockSummaryCache) Invalidate(ctx context.Context) error { return nil }
