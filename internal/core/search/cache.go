package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrCacheMiss 快取未命中
var ErrCacheMiss = errors.New("cache miss")

// Cache 搜尋結果快取
type Cache interface {
	Get(ctx context.Context, key string) (*Result, error)
	Set(ctx context.Context, key string, result *Result) error
	Close() error
}

// CacheKey 生成快取鍵，包含目錄識別碼以區分不同次建立的目錄
func CacheKey(catalogID string, q Query) string {
	hash := sha256.Sum256([]byte(q.Cuisine + "\x00" + q.Name + "\x00" + q.Ingredients))
	return fmt.Sprintf("search:%s:%s", catalogID, hex.EncodeToString(hash[:]))
}

// NewCache 依設定建立快取，未啟用時回傳 nil
func NewCache(cfg *config.Config) (Cache, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Search cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		c, err := NewRedisCache(cfg.Cache)
		if err != nil {
			return nil, err
		}
		common.LogInfo("Search cache initialized",
			zap.String("backend", cfg.Cache.Backend),
			zap.String("addr", cfg.Cache.Redis.Addr),
			zap.Duration("ttl", cfg.Cache.TTL),
		)
		return c, nil
	case config.CacheBackendMemory:
		return NewMemoryCache(cfg.Cache), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Cache.Backend)
	}
}

func encodeResult(r *Result) ([]byte, error) {
	data, err := common.MarshalJSON(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return data, nil
}

func decodeResult(data []byte) (*Result, error) {
	var r Result
	if err := common.ParseJSONBytes(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &r, nil
}
