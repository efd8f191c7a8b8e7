package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"recipe-finder/internal/core/favorites"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime"`
	Catalog   CatalogStatus          `json:"catalog"`
}

// CatalogStatus 目錄與會話狀態
type CatalogStatus struct {
	ID       string `json:"id"`
	Recipes  int    `json:"recipes"`
	Sessions int    `json:"sessions"`
}

// Pinger 可檢查連線狀態的依賴，例如 Redis 快取
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler 健康檢查處理器
type Handler struct {
	search   *search.Service
	sessions *favorites.Manager
	deps     map[string]Pinger
}

// NewHandler 創建健康檢查處理器，deps 為就緒檢查時需要確認的依賴
func NewHandler(searchSvc *search.Service, sessions *favorites.Manager, deps map[string]Pinger) *Handler {
	return &Handler{
		search:   searchSvc,
		sessions: sessions,
		deps:     deps,
	}
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	// 獲取配置
	version := ""
	if v, ok := c.Get("config"); ok {
		if cfg, ok := v.(*config.Config); ok {
			version = cfg.App.Version
		}
	}

	// 獲取運行時信息
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   version,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
		Catalog: CatalogStatus{
			ID:       h.search.Catalog().ID(),
			Recipes:  h.search.Catalog().Len(),
			Sessions: h.sessions.Len(),
		},
	}

	common.LogDebug("Health check request",
		zap.String("client_ip", c.ClientIP()),
		zap.String("path", c.Request.URL.Path),
	)

	c.JSON(http.StatusOK, response)
}

// ReadinessCheck 就緒檢查：目錄已載入且所有依賴可連線
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.search.Catalog().Len() == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"reason": "catalog is empty",
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	ready := true
	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			common.LogWarn("Readiness dependency failed", zap.String("dependency", name), zap.Error(err))
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not_ready",
			"checks": checks,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"checks": checks,
	})
}

// LivenessCheck 存活檢查處理器
func LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}
