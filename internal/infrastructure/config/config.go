package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Search    SearchConfig    `mapstructure:"search"`
	Session   SessionConfig   `mapstructure:"session"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	LogLevel  string          `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`
}

// CatalogConfig 食譜目錄設定
type CatalogConfig struct {
	// Seed 為 0 時以啟動時間作為亂數種子
	Seed int64 `mapstructure:"seed"`
}

// SearchConfig 搜尋設定
type SearchConfig struct {
	MaxResults      int `mapstructure:"max_results"`
	FallbackResults int `mapstructure:"fallback_results"`
}

// SessionConfig 收藏會話設定
type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	CookieName      string        `mapstructure:"cookie_name"`
}

// CacheConfig 緩存配置
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	Redis           RedisConfig   `mapstructure:"redis"`
}

// RedisConfig Redis 連線設定
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// 快取後端
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時使用環境變數與預設值
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("server.port", "APP_SERVER_PORT", "PORT")
	viper.BindEnv("catalog.seed", "APP_CATALOG_SEED", "CATALOG_SEED")
	viper.BindEnv("cache.enabled", "APP_CACHE_ENABLED", "CACHE_ENABLED")
	viper.BindEnv("cache.backend", "APP_CACHE_BACKEND", "CACHE_BACKEND")
	viper.BindEnv("cache.redis.addr", "APP_CACHE_REDIS_ADDR", "REDIS_ADDR")
	viper.BindEnv("cache.redis.password", "APP_CACHE_REDIS_PASSWORD", "REDIS_PASSWORD")
	viper.BindEnv("session.ttl", "APP_SESSION_TTL", "SESSION_TTL")
	viper.BindEnv("rate_limit.enabled", "APP_RATE_LIMIT_ENABLED", "RATE_LIMIT_ENABLED")
	viper.BindEnv("rate_limit.requests", "APP_RATE_LIMIT_REQUESTS", "RATE_LIMIT_REQUESTS")
	viper.BindEnv("rate_limit.window", "APP_RATE_LIMIT_WINDOW", "RATE_LIMIT_WINDOW")
	viper.BindEnv("log_level", "APP_LOG_LEVEL", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskSecret 遮罩密碼，只顯示前後各 2 個字符
func maskSecret(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return "****"
	}
	return secret[:2] + "..." + secret[len(secret)-2:]
}

// RedisPasswordMasked 回傳遮罩後的 Redis 密碼（用於日誌）
func (c *Config) RedisPasswordMasked() string {
	return maskSecret(c.Cache.Redis.Password)
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-finder")

	// 伺服器設定
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.max_body_bytes", 1<<20) // 1MB

	// 目錄設定
	viper.SetDefault("catalog.seed", 0)

	// 搜尋設定
	viper.SetDefault("search.max_results", 10)
	viper.SetDefault("search.fallback_results", 5)

	// 會話設定
	viper.SetDefault("session.ttl", "2h")
	viper.SetDefault("session.cleanup_interval", "5m")
	viper.SetDefault("session.cookie_name", "recipe_session")

	// 快取設定
	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.backend", CacheBackendMemory)
	viper.SetDefault("cache.max_size", 1000)
	viper.SetDefault("cache.ttl", "10m")
	viper.SetDefault("cache.cleanup_interval", "1m")
	viper.SetDefault("cache.redis.addr", "localhost:6379")
	viper.SetDefault("cache.redis.password", "")
	viper.SetDefault("cache.redis.db", 0)

	// 限流設定
	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests", 100)
	viper.SetDefault("rate_limit.window", "1m")

	viper.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body bytes")
	}

	// 驗證搜尋設定
	if config.Search.MaxResults <= 0 {
		return fmt.Errorf("invalid search max results")
	}
	if config.Search.FallbackResults <= 0 {
		return fmt.Errorf("invalid search fallback results")
	}

	// 驗證會話設定
	if config.Session.TTL <= 0 {
		return fmt.Errorf("invalid session ttl")
	}
	if config.Session.CleanupInterval <= 0 {
		return fmt.Errorf("invalid session cleanup interval")
	}
	if config.Session.CookieName == "" {
		return fmt.Errorf("session cookie name is required")
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case CacheBackendMemory:
			if config.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
			if config.Cache.CleanupInterval <= 0 {
				return fmt.Errorf("invalid cache cleanup interval")
			}
		case CacheBackendRedis:
			if config.Cache.Redis.Addr == "" {
				return fmt.Errorf("redis addr is required for redis cache backend")
			}
		default:
			return fmt.Errorf("unknown cache backend: %q", config.Cache.Backend)
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	// 驗證限流設定
	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	return nil
}
