package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/farescout/fare-search-assistant/internal/domain"
	"github.com/farescout/fare-search-assistant/internal/infrastructure/retry"
	"github.com/farescout/fare-search-assistant/test/mock"
)

// fastRetry disables backoff delays so failure-path tests run instantly.
var fastRetry = retry.Config{
	MaxAttempts:  1,
	InitialDelay: time.Millisecond,
	MaxDelay:     time.Millisecond,
	Multiplier:   1.0,
}

func testConfig(overrides func(*Config)) *Config {
	cfg := &Config{
		Expander: testExpander(),
		Retry:    &fastRetry,
	}
	if overrides != nil {
		overrides(cfg)
	}
	return cfg
}

// relativeOffsetParams expands to exactly five round-trip pairs:
// 2026-03-08 through 2026-03-12 departures with a 10-day trip length.
func relativeOffsetParams() domain.SearchParameters {
	return domain.SearchParameters{
		Origin:        "MOW",
		Destination:   "PAR",
		DepartureDate: day(2026, 3, 10),
		ReturnDate:    dayPtr(2026, 3, 20),
		Flexibility:   domain.FlexibilityRelativeOffset,
	}
}

func TestSearchUseCase_InvalidParams(t *testing.T) {
	client := mock.NewFareClient()
	uc := NewSearchUseCase(client, testConfig(nil))

	_, err := uc.Search(context.Background(), domain.SearchParameters{}, DefaultSearchOptions())

	require.Error(t, err)
	assert.True(t, domain.IsInvalidParams(err))
	assert.Equal(t, 0, client.CallCount())
}

func TestSearchUseCase_FansOutOneQueryPerPair(t *testing.T) {
	client := mock.NewFareClient().WithBatch(mock.SampleBatch("MOW", "PAR", 2))
	uc := NewSearchUseCase(client, testConfig(nil))

	outcome, err := uc.Search(context.Background(), relativeOffsetParams(), DefaultSearchOptions())

	require.NoError(t, err)
	assert.Equal(t, 5, client.CallCount())
	assert.Equal(t, 5, outcome.Metadata.QueriesIssued)
	assert.Equal(t, 5, outcome.Metadata.QueriesSucceeded)
	assert.Equal(t, 0, outcome.Metadata.QueriesFailed)
}

func TestSearchUseCase_AbsorbsPartialFailures(t *testing.T) {
	failure := domain.NewQueryError(domain.DatePair{}, errors.New("boom"))

	client := mock.NewFareClient().
		WithErrorForPair("2026-03-08/2026-03-18", failure).
		WithErrorForPair("2026-03-09/2026-03-19", failure).
		WithErrorForPair("2026-03-10/2026-03-20", failure).
		WithBatchForPair("2026-03-11/2026-03-21", mock.SampleBatch("MOW", "PAR", 4)).
		WithBatchForPair("2026-03-12/2026-03-22", mock.SampleBatch("MOW", "PAR", 6))

	uc := NewSearchUseCase(client, testConfig(nil))

	outcome, err := uc.Search(context.Background(), relativeOffsetParams(), DefaultSearchOptions())

	require.NoError(t, err)
	assert.Equal(t, 5, outcome.Metadata.QueriesIssued)
	assert.Equal(t, 2, outcome.Metadata.QueriesSucceeded)
	assert.Equal(t, 3, outcome.Metadata.QueriesFailed)
	assert.Equal(t, 10, outcome.Result.TotalCandidates)
	assert.Equal(t, "rub", outcome.Result.Currency)
}

func TestSearchUseCase_AllQueriesFail(t *testing.T) {
	client := mock.NewFareClient().
		WithError(domain.NewQueryError(domain.DatePair{}, errors.New("boom")))
	uc := NewSearchUseCase(client, testConfig(nil))

	outcome, err := uc.Search(context.Background(), relativeOffsetParams(), DefaultSearchOptions())

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, domain.ErrNoTicketsFound)
	assert.Equal(t, 5, client.CallCount())
}

func TestSearchUseCase_EmptyBatchesYieldNoTicketsFound(t *testing.T) {
	// Every query succeeds but returns zero offers.
	client := mock.NewFareClient().WithBatch(&domain.FareBatch{Currency: "rub"})
	uc := NewSearchUseCase(client, testConfig(nil))

	outcome, err := uc.Search(context.Background(), relativeOffsetParams(), DefaultSearchOptions())

	assert.Nil(t, outcome)
	assert.ErrorIs(t, err, domain.ErrNoTicketsFound)
}

func TestSearchUseCase_RetriesRetryableFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := domain.NewMockFareClient(ctrl)

	params := domain.SearchParameters{
		Origin:        "MOW",
		Destination:   "PAR",
		DepartureDate: day(2026, 3, 1),
		ReturnDate:    dayPtr(2026, 3, 11),
		Flexibility:   domain.FlexibilityExact,
	}
	pair := domain.DatePair{Departure: day(2026, 3, 1), Return: dayPtr(2026, 3, 11)}

	gomock.InOrder(
		client.EXPECT().SearchFares(gomock.Any(), gomock.Any()).
			Return(nil, domain.NewRetryableQueryError(pair, errors.New("rate limited"))),
		client.EXPECT().SearchFares(gomock.Any(), gomock.Any()).
			Return(mock.SampleBatch("MOW", "PAR", 1), nil),
	)

	retryCfg := retry.Config{
		MaxAttempts:  2,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
		RetryIf:      domain.IsRetryable,
	}
	uc := NewSearchUseCase(client, testConfig(func(cfg *Config) {
		cfg.Retry = &retryCfg
	}))

	outcome, err := uc.Search(context.Background(), params, DefaultSearchOptions())

	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Result.TotalCandidates)
}

func TestSearchUseCase_DoesNotRetryPermanentFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := domain.NewMockFareClient(ctrl)

	params := domain.SearchParameters{
		Origin:        "MOW",
		Destination:   "PAR",
		DepartureDate: day(2026, 3, 1),
		Flexibility:   domain.FlexibilityExact,
	}
	pair := domain.DatePair{Departure: day(2026, 3, 1)}

	// A non-retryable failure must hit the client exactly once.
	client.EXPECT().SearchFares(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewQueryError(pair, errors.New("bad token"))).
		Times(1)

	retryCfg := retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
		RetryIf:      domain.IsRetryable,
	}
	uc := NewSearchUseCase(client, testConfig(func(cfg *Config) {
		cfg.Retry = &retryCfg
	}))

	_, err := uc.Search(context.Background(), params, DefaultSearchOptions())

	assert.ErrorIs(t, err, domain.ErrNoTicketsFound)
}

func TestSearchUseCase_CacheHit(t *testing.T) {
	cached := &domain.SearchOutcome{
		Result: domain.RankedResult{
			Tickets:  []domain.Ticket{{Price: 9000, Currency: "rub"}},
			Currency: "rub",
		},
	}

	client := mock.NewFareClient()
	uc := NewSearchUseCase(client, testConfig(func(cfg *Config) {
		cfg.Cache = &stubCache{outcome: cached}
	}))

	outcome, err := uc.Search(context.Background(), relativeOffsetParams(), DefaultSearchOptions())

	require.NoError(t, err)
	assert.True(t, outcome.Metadata.CacheHit)
	assert.Equal(t, 0, client.CallCount(), "cache hit must not query the fare API")
}

func TestSearchUseCase_SkipCache(t *testing.T) {
	cached := &domain.SearchOutcome{Result: domain.RankedResult{Currency: "rub"}}

	client := mock.NewFareClient().WithBatch(mock.SampleBatch("MOW", "PAR", 1))
	store := &stubCache{outcome: cached}
	uc := NewSearchUseCase(client, testConfig(func(cfg *Config) {
		cfg.Cache = store
	}))

	opts := DefaultSearchOptions()
	opts.SkipCache = true

	outcome, err := uc.Search(context.Background(), relativeOffsetParams(), opts)

	require.NoError(t, err)
	assert.False(t, outcome.Metadata.CacheHit)
	assert.Equal(t, 5, client.CallCount())
	assert.Equal(t, 0, store.sets, "skip-cache searches are not stored")
}

func TestSearchUseCase_StoresOutcomeInCache(t *testing.T) {
	client := mock.NewFareClient().WithBatch(mock.SampleBatch("MOW", "PAR", 1))
	store := &stubCache{}
	uc := NewSearchUseCase(client, testConfig(func(cfg *Config) {
		cfg.Cache = store
	}))

	_, err := uc.Search(context.Background(), relativeOffsetParams(), DefaultSearchOptions())

	require.NoError(t, err)
	assert.Equal(t, 1, store.sets)
}

func TestSearchUseCase_SlowQueryDoesNotBlockSiblings(t *testing.T) {
	client := mock.NewFareClient().
		WithBatch(mock.SampleBatch("MOW", "PAR", 1)).
		WithDelay(20 * time.Millisecond)
	uc := NewSearchUseCase(client, testConfig(nil))

	start := time.Now()
	outcome, err := uc.Search(context.Background(), relativeOffsetParams(), DefaultSearchOptions())
	elapsed := time.Since(start)

	require.NoError(t, err)
	assert.Equal(t, 5, outcome.Metadata.QueriesSucceeded)
	// Five sequential queries would take >=100ms; the fan-out runs them
	// concurrently.
	assert.Less(t, elapsed, 90*time.Millisecond)
}

// stubCache is an in-memory Cache test double.
type stubCache struct {
	mu      sync.Mutex
	outcome *domain.SearchOutcome
	sets    int
}

func (s *stubCache) Get(_ context.Context, _ domain.SearchParameters) (*domain.SearchOutcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.outcome == nil {
		return nil, false
	}
	return s.outcome, true
}

func (s *stubCache) Set(_ context.Context, _ domain.SearchParameters, outcome *domain.SearchOutcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets++
	s.outcome = outcome
	return nil
}

func (s *stubCache) Close() error { return nil }
