package search

import (
	"context"
	"sync"
	"time"

	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryCache 行程內的搜尋結果快取
type MemoryCache struct {
	config config.CacheConfig
	mu     sync.Mutex
	store  map[string]cacheEntry
	stats  cacheStats
	done   chan struct{}
	once   sync.Once
	now    func() time.Time
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value       []byte
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewMemoryCache 創建記憶體快取並啟動清理協程
func NewMemoryCache(cfg config.CacheConfig) *MemoryCache {
	m := &MemoryCache{
		config: cfg,
		store:  make(map[string]cacheEntry),
		done:   make(chan struct{}),
		now:    time.Now,
	}

	if cfg.CleanupInterval > 0 {
		go m.startCleanup()
	}

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)

	return m
}

// Get 獲取緩存值
func (m *MemoryCache) Get(ctx context.Context, key string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		return nil, ErrCacheMiss
	}

	// 檢查是否過期
	now := m.now()
	if now.After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		return nil, ErrCacheMiss
	}

	// 更新訪問統計
	entry.lastAccess = now
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++

	return decodeResult(entry.value)
}

// Set 設置緩存值
func (m *MemoryCache) Set(ctx context.Context, key string, result *Result) error {
	data, err := encodeResult(result)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 容量已滿時先清理過期項目，再淘汰最少使用的項目
	if _, exists := m.store[key]; !exists && len(m.store) >= m.config.MaxSize {
		if evicted := m.cleanup(); evicted > 0 {
			common.LogDebug("快取清理執行", zap.Int("清理數量", evicted))
		}
		for len(m.store) >= m.config.MaxSize && len(m.store) > 0 {
			m.evictLRU()
		}
	}

	now := m.now()
	m.store[key] = cacheEntry{
		value:      data,
		expiresAt:  now.Add(m.config.TTL),
		createdAt:  now,
		lastAccess: now,
	}

	return nil
}

// startCleanup 定期清理過期緩存
func (m *MemoryCache) startCleanup() {
	ticker := time.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			count := m.cleanup()
			m.mu.Unlock()
			if count > 0 {
				common.LogDebug("Cleaned up expired cache entries", zap.Int("count", count))
			}
		case <-m.done:
			return
		}
	}
}

// cleanup 清理過期的緩存，呼叫者需持有鎖
func (m *MemoryCache) cleanup() int {
	now := m.now()
	count := 0
	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}
	return count
}

// evictLRU 淘汰訪問次數最少、最久未訪問的項目，呼叫者需持有鎖
func (m *MemoryCache) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
	}
}

// Stats 獲取緩存統計信息
func (m *MemoryCache) Stats() map[string]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()

	ratio := 0.0
	if total := m.stats.hits + m.stats.misses; total > 0 {
		ratio = float64(m.stats.hits) / float64(total)
	}

	return map[string]interface{}{
		"size":      len(m.store),
		"max_size":  m.config.MaxSize,
		"hits":      m.stats.hits,
		"misses":    m.stats.misses,
		"evictions": m.stats.evictions,
		"hit_ratio": ratio,
	}
}

// Close 停止清理協程並清空緩存
func (m *MemoryCache) Close() error {
	m.once.Do(func() { close(m.done) })

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
