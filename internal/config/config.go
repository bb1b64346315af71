// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	FareAPI   FareAPIConfig
	Extractor ExtractorConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	App       AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
}

// FareAPIConfig holds fare-search API settings.
type FareAPIConfig struct {
	// BaseURL is the Travelpayouts prices_for_dates endpoint base.
	BaseURL string `env:"FARE_API_BASE_URL" envDefault:"https://api.travelpayouts.com"`

	// Token is the API access credential.
	Token string `env:"FARE_API_TOKEN,required"`

	// Currency tags all fare queries.
	Currency string `env:"FARE_API_CURRENCY" envDefault:"rub"`

	// Timeout bounds each individual fare query at the transport level.
	Timeout time.Duration `env:"FARE_API_TIMEOUT" envDefault:"10s"`
}

// ExtractorConfig holds NLP parameter-extractor settings.
type ExtractorConfig struct {
	// BaseURL is an OpenAI-compatible chat completions endpoint base.
	BaseURL string `env:"EXTRACTOR_BASE_URL" envDefault:"https://api.openai.com"`

	// APIKey authenticates extraction requests.
	APIKey string `env:"EXTRACTOR_API_KEY,required"`

	// Model is the chat model used for extraction.
	Model string `env:"EXTRACTOR_MODEL" envDefault:"gpt-4o-mini"`

	// Timeout bounds each extraction call.
	Timeout time.Duration `env:"EXTRACTOR_TIMEOUT" envDefault:"20s"`
}

// CacheConfig holds search-response cache settings.
type CacheConfig struct {
	// Enabled toggles the Redis cache; when false a no-op cache is used.
	Enabled bool `env:"CACHE_ENABLED" envDefault:"false"`

	RedisAddr     string        `env:"CACHE_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"CACHE_REDIS_PASSWORD" envDefault:""`
	RedisDB       int           `env:"CACHE_REDIS_DB" envDefault:"0"`
	TTL           time.Duration `env:"CACHE_TTL" envDefault:"5m"`
}

// RateLimitConfig holds fare-API rate limiter settings.
type RateLimitConfig struct {
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	BurstSize         int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.FareAPI.Timeout <= 0 {
		return fmt.Errorf("FARE_API_TIMEOUT must be positive")
	}
	if cfg.Extractor.Timeout <= 0 {
		return fmt.Errorf("EXTRACTOR_TIMEOUT must be positive")
	}

	if cfg.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive")
	}
	if cfg.RateLimit.BurstSize < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1")
	}

	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
