package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipe-finder/internal/api"
	"recipe-finder/internal/core/catalog"
	"recipe-finder/internal/core/favorites"
	"recipe-finder/internal/core/search"
	"recipe-finder/internal/core/similarity"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("env", cfg.App.Env),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("cache_backend", cfg.Cache.Backend),
		zap.String("redis_addr", cfg.Cache.Redis.Addr),
		zap.String("redis_auth", cfg.RedisPasswordMasked()),
	)

	// 建立目錄與相似度模型
	seed := cfg.Catalog.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cat, err := catalog.Default(rand.New(rand.NewSource(seed)))
	if err != nil {
		common.LogFatal("Failed to build recipe catalog", zap.Error(err))
	}
	model := similarity.FitCatalog(cat)
	common.LogInfo("Recipe catalog loaded",
		zap.String("catalog_id", cat.ID()),
		zap.Int("recipes", cat.Len()),
		zap.Int("vocabulary", model.VocabularySize()),
		zap.Int64("seed", seed),
	)

	// 初始化快取
	cache, err := search.NewCache(cfg)
	if err != nil {
		common.LogFatal("Failed to initialize search cache", zap.Error(err))
	}
	if cache != nil {
		defer cache.Close()
	}

	sessions := favorites.NewManager(cfg.Session)
	defer sessions.Close()

	searchSvc := search.NewService(cat, model, cache, search.Limits{
		MaxResults:      cfg.Search.MaxResults,
		FallbackResults: cfg.Search.FallbackResults,
	})

	// 設置路由
	router, err := api.SetupRouter(cfg, api.Services{
		Search:    searchSvc,
		Favorites: favorites.NewService(cat, sessions),
		Cache:     cache,
	})
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		return
	}

	common.LogInfo("Server exited")
}
