// Package cache provides a search-outcome cache keyed by normalized search
// parameters. A Redis-backed implementation is used in production; the no-op
// implementation serves tests and cache-less deployments.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/farescout/fare-search-assistant/internal/domain"
)

// Cache stores ranked search outcomes for identical repeated requests.
type Cache interface {
	// Get returns a cached outcome for the parameters, if one exists.
	Get(ctx context.Context, params domain.SearchParameters) (*domain.SearchOutcome, bool)

	// Set stores the outcome under the parameters' cache key.
	Set(ctx context.Context, params domain.SearchParameters, outcome *domain.SearchOutcome) error

	// Close releases any underlying connections.
	Close() error
}

// RedisCache is a Redis-backed Cache with a fixed TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisConfig holds connection settings for the Redis cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// DefaultRedisConfig returns settings for a local Redis with a 5-minute TTL.
// Fare prices go stale quickly, so the TTL is deliberately short.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr: "localhost:6379",
		TTL:  5 * time.Minute,
	}
}

// NewRedisCache connects to Redis and verifies the connection with a ping.
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{client: client, ttl: cfg.TTL}, nil
}

// Get implements Cache.Get.
func (c *RedisCache) Get(ctx context.Context, params domain.SearchParameters) (*domain.SearchOutcome, bool) {
	data, err := c.client.Get(ctx, Key(params)).Bytes()
	if err != nil {
		return nil, false
	}

	var outcome domain.SearchOutcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, false
	}
	return &outcome, true
}

// Set implements Cache.Set.
func (c *RedisCache) Set(ctx context.Context, params domain.SearchParameters, outcome *domain.SearchOutcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, Key(params), data, c.ttl).Err()
}

// Close implements Cache.Close.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// NoOpCache is a Cache that stores nothing. It is used when Redis is not
// configured and in unit tests.
type NoOpCache struct{}

// NewNoOpCache creates a NoOpCache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Get always misses.
func (c *NoOpCache) Get(ctx context.Context, params domain.SearchParameters) (*domain.SearchOutcome, bool) {
	return nil, false
}

// Set discards the outcome.
func (c *NoOpCache) Set(ctx context.Context, params domain.SearchParameters, outcome *domain.SearchOutcome) error {
	return nil
}

// Close is a no-op.
func (c *NoOpCache) Close() error {
	return nil
}

// Ensure both implementations satisfy Cache at compile time.
var (
	_ Cache = (*RedisCache)(nil)
	_ Cache = (*NoOpCache)(nil)
)

// Key derives a stable cache key from the normalized search parameters.
// Identical requests hash to the same key regardless of field order.
func Key(params domain.SearchParameters) string {
	keyData := struct {
		Origin      string
		Destination string
		Departure   string
		Return      string
		Flexibility string
		DurationMin int
		DurationMax int
	}{
		Origin:      params.Origin,
		Destination: params.Destination,
		Departure:   params.DepartureDate.Format("2006-01-02"),
		Flexibility: string(params.Flexibility),
	}

	if params.ReturnDate != nil {
		keyData.Return = params.ReturnDate.Format("2006-01-02")
	}
	if params.Duration != nil {
		keyData.DurationMin = params.Duration.Min
		keyData.DurationMax = params.Duration.Max
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "fare:" + hex.EncodeToString(hash[:])
}
