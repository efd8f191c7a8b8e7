package search

import (
	"context"
	"fmt"
	"time"

	"recipe-finder/internal/infrastructure/config"

	"github.com/go-redis/redis/v8"
)

// RedisCache 以 Redis 儲存的搜尋結果快取
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache 連線 Redis 並建立快取
func NewRedisCache(cfg config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// 測試連接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisCacheWithClient(client, cfg.TTL), nil
}

// NewRedisCacheWithClient 以既有的 client 建立快取
func NewRedisCacheWithClient(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get 獲取緩存
func (c *RedisCache) Get(ctx context.Context, key string) (*Result, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}
	return decodeResult(data)
}

// Set 設置緩存
func (c *RedisCache) Set(ctx context.Context, key string, result *Result) error {
	data, err := encodeResult(result)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Ping 檢查 Redis 連線
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close 關閉 Redis 連線
func (c *RedisCache) Close() error {
	return c.client.Close()
}
