package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/farescout/fare-search-assistant/internal/cache"
	"github.com/farescout/fare-search-assistant/internal/domain"
	"github.com/farescout/fare-search-assistant/internal/infrastructure/retry"
	"github.com/farescout/fare-search-assistant/internal/ratelimit"
)

// SearchUseCase defines the interface for fare search operations.
type SearchUseCase interface {
	// Search expands the date request, fans out one fare query per date pair
	// concurrently, merges the successful results, and ranks them.
	Search(ctx context.Context, params domain.SearchParameters, opts SearchOptions) (*domain.SearchOutcome, error)
}

// searchUseCase implements SearchUseCase with the Scatter-Gather pattern:
// one goroutine per date pair, all awaited, failures absorbed per query.
type searchUseCase struct {
	client   domain.FareClient
	expander *DateExpander
	ranker   *TicketRanker
	cache    cache.Cache
	limiter  *ratelimit.Limiter
	retryCfg retry.Config
	log      zerolog.Logger
}

// Config contains the collaborators and policies for the use case.
// Nil fields fall back to defaults.
type Config struct {
	Expander *DateExpander
	Ranker   *TicketRanker
	Cache    cache.Cache
	Limiter  *ratelimit.Limiter
	Retry    *retry.Config
	Logger   *zerolog.Logger
}

// NewSearchUseCase creates a SearchUseCase around the given fare client.
// If cfg is nil every collaborator uses its default.
func NewSearchUseCase(client domain.FareClient, cfg *Config) SearchUseCase {
	uc := &searchUseCase{
		client:   client,
		expander: NewDateExpander(nil),
		ranker:   NewTicketRanker(RankerConfig{}),
		cache:    cache.NewNoOpCache(),
		retryCfg: retry.QueryConfig.WithRetryIf(domain.IsRetryable),
		log:      zerolog.Nop(),
	}

	if cfg != nil {
		if cfg.Expander != nil {
			uc.expander = cfg.Expander
		}
		if cfg.Ranker != nil {
			uc.ranker = cfg.Ranker
		}
		if cfg.Cache != nil {
			uc.cache = cfg.Cache
		}
		uc.limiter = cfg.Limiter
		if cfg.Retry != nil {
			uc.retryCfg = *cfg.Retry
		}
		if cfg.Logger != nil {
			uc.log = *cfg.Logger
		}
	}

	return uc
}

// Search implements SearchUseCase.Search.
//
// Failure policy: a minority of failed date-pair queries is not fatal. The
// orchestrator always waits for every issued query to settle; siblings are
// never cancelled on individual failure. Only when all queries fail, or when
// no query returns candidates, does the search surface ErrNoTicketsFound.
func (uc *searchUseCase) Search(ctx context.Context, params domain.SearchParameters, opts SearchOptions) (*domain.SearchOutcome, error) {
	startTime := time.Now()

	if err := params.Validate(); err != nil {
		return nil, err
	}

	if !opts.SkipCache {
		if cached, ok := uc.cache.Get(ctx, params); ok {
			uc.log.Debug().Str("origin", params.Origin).Str("destination", params.Destination).
				Msg("Search served from cache")
			cached.Metadata.CacheHit = true
			return cached, nil
		}
	}

	pairs := uc.expander.Expand(params)

	// Buffered channel so no goroutine blocks on send after a slow gather.
	resultsChan := make(chan domain.QueryResult, len(pairs))

	var wg sync.WaitGroup
	for _, pair := range pairs {
		wg.Add(1)
		go func(p domain.DatePair) {
			defer wg.Done()
			uc.queryPair(ctx, params, p, opts, resultsChan)
		}(pair)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Gather: merge all successful batches into one pool. The pool carries
	// the currency of the first successful response; pool order is
	// deliberately unspecified.
	var pool []domain.Ticket
	var currency string
	succeeded, failed := 0, 0

	for result := range resultsChan {
		if !result.IsSuccess() {
			failed++
			uc.log.Warn().Err(result.Error).Str("pair", result.Pair.Key()).
				Int64("duration_ms", result.DurationMs).
				Msg("Date-pair query failed")
			continue
		}
		succeeded++
		if currency == "" {
			currency = result.Batch.Currency
		}
		pool = append(pool, result.Batch.Tickets...)
	}

	if succeeded == 0 || len(pool) == 0 {
		uc.log.Info().Int("queries", len(pairs)).Int("failed", failed).
			Msg("Search produced no candidates")
		return nil, domain.ErrNoTicketsFound
	}

	ranked := uc.ranker.Rank(pool, currency)

	outcome := &domain.SearchOutcome{
		Result: ranked,
		Metadata: domain.SearchMetadata{
			QueriesIssued:    len(pairs),
			QueriesSucceeded: succeeded,
			QueriesFailed:    failed,
			SearchTimeMs:     time.Since(startTime).Milliseconds(),
		},
	}

	if !opts.SkipCache {
		if err := uc.cache.Set(ctx, params, outcome); err != nil {
			uc.log.Warn().Err(err).Msg("Failed to cache search outcome")
		}
	}

	uc.log.Info().Int("queries", len(pairs)).Int("succeeded", succeeded).
		Int("candidates", len(pool)).Int64("duration_ms", outcome.Metadata.SearchTimeMs).
		Msg("Search completed")

	return outcome, nil
}

// queryPair performs one date-pair query with rate limiting, retry, and panic
// recovery. The retry policy lives here because the fare client itself never
// retries.
func (uc *searchUseCase) queryPair(ctx context.Context, params domain.SearchParameters, pair domain.DatePair, opts SearchOptions, results chan<- domain.QueryResult) {
	start := time.Now()

	// One panicking query must not take down its siblings.
	defer func() {
		if r := recover(); r != nil {
			results <- domain.QueryResult{
				Pair:       pair,
				Error:      fmt.Errorf("query panic: %v", r),
				DurationMs: time.Since(start).Milliseconds(),
			}
		}
	}()

	if uc.limiter != nil {
		if err := uc.limiter.Wait(ctx); err != nil {
			results <- domain.QueryResult{
				Pair:       pair,
				Error:      domain.NewQueryError(pair, err),
				DurationMs: time.Since(start).Milliseconds(),
			}
			return
		}
	}

	query := domain.Query{
		Origin:      params.Origin,
		Destination: params.Destination,
		Dates:       pair,
		DirectOnly:  opts.DirectOnly,
	}

	batch, err := retry.DoWithResult(ctx, func() (*domain.FareBatch, error) {
		return uc.client.SearchFares(ctx, query)
	}, uc.retryCfg)

	results <- domain.QueryResult{
		Pair:       pair,
		Batch:      batch,
		Error:      err,
		DurationMs: time.Since(start).Milliseconds(),
	}
}

// Ensure searchUseCase implements SearchUseCase at compile time.
var _ SearchUseCase = (*searchUseCase)(nil)
