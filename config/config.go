package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable, e.g. MACROTRACK_SERVER_PORT
const EnvPrefix = "MACROTRACK"

// Search bounds that configuration may tighten but not relax
const (
	MinSearchQueryLength = 2
	MaxSearchResultLimit = 20
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	USDA      USDAConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Search    SearchConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig selects and tunes the relational store
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // "sqlite" or "postgres"
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// USDAConfig holds USDA API configuration
type USDAConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type      string        `mapstructure:"type"` // "memory", "redis" or "none"
	RedisURL  string        `mapstructure:"redis_url"`
	KeyPrefix string        `mapstructure:"key_prefix"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute per client IP, 0 disables
	USDA  int `mapstructure:"usda"`   // upstream requests per hour
}

// SearchConfig tunes the unified food search
type SearchConfig struct {
	MinQueryLength int           `mapstructure:"min_query_length"`
	ResultLimit    int           `mapstructure:"result_limit"`
	SourceTimeout  time.Duration `mapstructure:"source_timeout"`
	EnableUSDA     bool          `mapstructure:"enable_usda"`
	EnableCurated  bool          `mapstructure:"enable_curated"`
	EnableCustom   bool          `mapstructure:"enable_custom"`
}

// LogConfig controls the zap logger
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Load loads configuration from a .env file, environment variables and config files
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/macrotrack/")

	// Environment variable settings
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Database defaults
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "macrotrack.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.auto_migrate", true)

	// USDA defaults
	v.SetDefault("usda.api_key", "DEMO_KEY")
	v.SetDefault("usda.base_url", "https://api.nal.usda.gov/fdc")
	v.SetDefault("usda.timeout", "5s")
	v.SetDefault("usda.page_size", 20)

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.key_prefix", "macrotrack:")
	v.SetDefault("cache.ttl", "24h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)
	v.SetDefault("ratelimit.usda", 1000)

	// Search defaults
	v.SetDefault("search.min_query_length", MinSearchQueryLength)
	v.SetDefault("search.result_limit", MaxSearchResultLimit)
	v.SetDefault("search.source_timeout", "5s")
	v.SetDefault("search.enable_usda", true)
	v.SetDefault("search.enable_curated", true)
	v.SetDefault("search.enable_custom", true)

	// Log defaults
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch config.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database driver must be 'sqlite' or 'postgres', got: %s", config.Database.Driver)
	}
	if config.Database.DSN == "" {
		return fmt.Errorf("database DSN is required (set %s_DATABASE_DSN)", EnvPrefix)
	}

	if config.USDA.APIKey == "" {
		return fmt.Errorf("USDA API key is required (set %s_USDA_API_KEY)", EnvPrefix)
	}
	if config.USDA.Timeout <= 0 {
		return fmt.Errorf("USDA timeout must be positive, got: %s", config.USDA.Timeout)
	}

	switch config.Cache.Type {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'none', got: %s", config.Cache.Type)
	}
	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.USDA <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}

	if config.Search.MinQueryLength < MinSearchQueryLength {
		return fmt.Errorf("search min query length must be at least %d, got: %d", MinSearchQueryLength, config.Search.MinQueryLength)
	}
	if config.Search.ResultLimit < 1 || config.Search.ResultLimit > MaxSearchResultLimit {
		return fmt.Errorf("search result limit must be between 1 and %d, got: %d", MaxSearchResultLimit, config.Search.ResultLimit)
	}

	if _, err := zapcore.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", config.Log.Level)
	}

	return nil
}
