// Package ratelimit provides client-side rate limiting for the fare API.
// The Travelpayouts API throttles aggressive clients, and a single flexible
// search fans out up to 20 concurrent queries, so the limiter smooths the
// burst before it leaves the process.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"
)

// Config holds token-bucket settings for the fare API limiter.
type Config struct {
	// RequestsPerSecond is the sustained request rate
	RequestsPerSecond float64

	// BurstSize is the number of requests allowed to fire at once
	BurstSize int
}

// DefaultConfig allows a full date-pair fan-out to fire as one burst while
// keeping the sustained rate modest.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

// Limiter is a token-bucket limiter shared by all fare queries.
type Limiter struct {
	limiter *rate.Limiter
}

// New creates a Limiter with the given configuration.
func New(cfg Config) *Limiter {
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// NewWithDefaults creates a Limiter with DefaultConfig settings.
func NewWithDefaults() *Limiter {
	return New(DefaultConfig())
}

// Wait blocks until a token is available or the context is done.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a request may proceed right now without waiting.
func (l *Limiter) Allow() bool {
	return l.limiter.Allow()
}
