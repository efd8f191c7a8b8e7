package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"recipe-finder/internal/api/handlers/health"
	recipeHandler "recipe-finder/internal/api/handlers/recipe"
	"recipe-finder/internal/api/handlers/web"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/favorites"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// 超時設置
const timeoutDuration = 30 * time.Second

// Services 路由需要的服務
type Services struct {
	Search    *search.Service
	Favorites *favorites.Service
	// Cache 可為 nil；支援 Ping 時會加入就緒檢查
	Cache search.Cache
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, svc Services) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if svc.Search == nil || svc.Favorites == nil {
		return nil, errors.New("failed to setup router: search and favorites services are required")
	}

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	// 創建路由引擎
	router := gin.New()
	router.SetHTMLTemplate(tmpl)

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	if cfg.Server.MaxBodyBytes > 0 {
		router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))
	}

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Set("config", cfg)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestid.Get(c)),
				zap.Duration("timeout", timeoutDuration),
			)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, common.ErrorResponse{
				Code:    "REQUEST_TIMEOUT",
				Message: "request timeout",
			})
		}
	})

	// 健康檢查路由
	deps := map[string]health.Pinger{}
	if p, ok := svc.Cache.(health.Pinger); ok {
		deps["cache"] = p
	}
	healthHandler := health.NewHandler(svc.Search, svc.Favorites.Sessions(), deps)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 頁面
	page := web.NewHandler(svc.Search, svc.Favorites, cfg.Session.CookieName)
	router.GET("/", page.HandleIndex)
	router.POST("/favorites", page.HandleAddFavorite)

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		h := recipeHandler.NewHandler(svc.Search, svc.Favorites)

		api.GET("/cuisines", h.HandleCuisines)
		api.GET("/recipes", h.HandleSearch)

		sessions := api.Group("/sessions")
		{
			sessions.POST("", h.HandleCreateSession)
			sessions.GET("/:id/favorites", h.HandleListFavorites)
			sessions.POST("/:id/favorites", h.HandleAddFavorite)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		common.WriteErrorResponse(c, common.ErrNotFound, false)
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("cache_enabled", svc.Cache != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Int("recipes", svc.Search.Catalog().Len()),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
