// Package metrics 提供搜尋、快取與收藏的 Prometheus 指標。
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal 依搜尋模式 (ranked/plain/fallback) 計數
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_searches_total",
			Help: "Total number of recipe searches by pipeline mode",
		},
		[]string{"mode"},
	)

	// SearchResults 每次搜尋回傳的筆數
	SearchResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recipe_search_results",
			Help:    "Number of recipes returned per search",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10, 15},
		},
	)

	// SearchCacheTotal 搜尋快取結果 (hit/miss/error)
	SearchCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_search_cache_total",
			Help: "Search cache lookups by result",
		},
		[]string{"result"},
	)

	// FavoritesAddedTotal 新加入的收藏數（重複加入不計）
	FavoritesAddedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recipe_favorites_added_total",
			Help: "Total number of recipes newly added to favorites",
		},
	)

	// HTTPRequestsTotal HTTP 請求數
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration HTTP 請求耗時
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ActiveSessions 目前存活的會話數
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "recipe_active_sessions",
			Help: "Current number of live favorites sessions",
		},
	)
)

// RecordSearch 記錄一次搜尋
func RecordSearch(mode string, results int) {
	SearchesTotal.WithLabelValues(mode).Inc()
	SearchResults.Observe(float64(results))
}

// RecordCache 記錄一次快取查詢
func RecordCache(result string) {
	SearchCacheTotal.WithLabelValues(result).Inc()
}

// RecordHTTPRequest 記錄一次 HTTP 請求，route 使用路由樣板以避免高基數
func RecordHTTPRequest(method, route string, status int, seconds float64) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}
