package middleware

import (
	"fmt"
	"math"
	"sync"
	"time"

	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RateLimiter 以客戶端為單位的令牌桶限流器
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	rate     float64 // 每秒補充的令牌數
	window   time.Duration
	now      func() time.Time
}

type bucket struct {
	tokens   float64
	lastTime time.Time
}

// NewRateLimiter 創建新的限流器，每個客戶端在 window 內最多 requests 次
func NewRateLimiter(requests int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		window:   window,
		now:      time.Now,
	}
}

// Allow 檢查是否允許請求
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.capacity, lastTime: now}
		rl.buckets[key] = b
	}

	// 依經過時間補充令牌
	elapsed := now.Sub(b.lastTime).Seconds()
	b.tokens = math.Min(rl.capacity, b.tokens+elapsed*rl.rate)
	b.lastTime = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Prune 移除已補滿的令牌桶，避免記錄無限增長
func (rl *RateLimiter) Prune() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for key, b := range rl.buckets {
		if b.tokens+now.Sub(b.lastTime).Seconds()*rl.rate >= rl.capacity {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// Middleware 限流中間件
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	var calls int
	var mu sync.Mutex

	return func(c *gin.Context) {
		mu.Lock()
		calls++
		prune := calls%1000 == 0
		mu.Unlock()
		if prune {
			rl.Prune()
		}

		if !rl.Allow(c.ClientIP()) {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(math.Ceil(rl.window.Seconds()))))
			c.AbortWithStatusJSON(common.ErrTooManyRequests.Status, common.ErrTooManyRequests.Response(false))
			return
		}

		c.Next()
	}
}

// RateLimit 限流中間件
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	return NewRateLimiter(requests, window).Middleware()
}
