// Package mock provides test doubles for the fare search system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/farescout/fare-search-assistant/internal/domain"
)

// FareClient is a configurable mock implementation of domain.FareClient.
// It supports configurable delays, errors, and per-date-pair responses for
// testing various scenarios including timeouts and partial failures.
type FareClient struct {
	batch     *domain.FareBatch
	byPair    map[string]*domain.FareBatch
	errByPair map[string]error
	err       error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewFareClient creates a new mock fare client.
// The client is configured using the builder pattern methods.
func NewFareClient() *FareClient {
	return &FareClient{
		byPair:    make(map[string]*domain.FareBatch),
		errByPair: make(map[string]error),
	}
}

// WithBatch configures the client to return the given batch for every query.
func (f *FareClient) WithBatch(batch *domain.FareBatch) *FareClient {
	f.batch = batch
	return f
}

// WithBatchForPair configures the batch returned for a specific date pair.
// The key is the DatePair.Key() form ("2026-03-01/2026-03-11").
func (f *FareClient) WithBatchForPair(pairKey string, batch *domain.FareBatch) *FareClient {
	f.byPair[pairKey] = batch
	return f
}

// WithError configures the client to return the given error for every query.
func (f *FareClient) WithError(err error) *FareClient {
	f.err = err
	return f
}

// WithErrorForPair configures the error returned for a specific date pair.
func (f *FareClient) WithErrorForPair(pairKey string, err error) *FareClient {
	f.errByPair[pairKey] = err
	return f
}

// WithDelay configures the client to wait before responding.
// This is useful for testing timeout behavior.
func (f *FareClient) WithDelay(d time.Duration) *FareClient {
	f.delay = d
	return f
}

// SearchFares implements domain.FareClient.SearchFares.
// It respects context cancellation, applies the configured delay, and
// resolves per-pair configuration before the catch-all batch or error.
func (f *FareClient) SearchFares(ctx context.Context, query domain.Query) (*domain.FareBatch, error) {
	f.mu.Lock()
	f.callCount++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	key := query.Dates.Key()
	if err, ok := f.errByPair[key]; ok {
		return nil, err
	}
	if batch, ok := f.byPair[key]; ok {
		return batch, nil
	}

	if f.err != nil {
		return nil, f.err
	}
	if f.batch != nil {
		return f.batch, nil
	}

	return &domain.FareBatch{Currency: "rub"}, nil
}

// CallCount returns the number of times SearchFares was called.
// This is useful for verifying fan-out behavior.
func (f *FareClient) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.callCount
}

// Reset resets the call count to zero.
func (f *FareClient) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.callCount = 0
}

// Ensure FareClient implements domain.FareClient at compile time.
var _ domain.FareClient = (*FareClient)(nil)

// SampleBatch returns a fare batch with count tickets for testing.
// Prices climb by 500 per ticket so ranking order is deterministic.
func SampleBatch(origin, destination string, count int) *domain.FareBatch {
	tickets := make([]domain.Ticket, count)

	baseTime := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		departure := baseTime.Add(time.Duration(i*2) * time.Hour)
		tickets[i] = domain.Ticket{
			Origin:                  origin,
			Destination:             destination,
			Price:                   12000 + float64(i*500),
			Currency:                "rub",
			DepartureAt:             departure,
			ArrivalAt:               departure.Add(4 * time.Hour),
			OutboundDurationMinutes: 240,
			Transfers:               i % 2,
			BookingLink:             "/search/" + origin + destination + "1",
		}
	}

	return &domain.FareBatch{Tickets: tickets, Currency: "rub"}
}
