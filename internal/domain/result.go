package domain

// FareBatch is the successful outcome of one fare query: the raw ticket
// offers plus the currency they are priced in.
type FareBatch struct {
	// Tickets are the raw offers returned for one date pair
	Tickets []Ticket

	// Currency is the ISO 4217 code the batch prices are expressed in
	Currency string
}

// RankedResult is the ordered outcome of a search, best ticket first.
// It is immutable once produced.
type RankedResult struct {
	// Tickets is the ranked top-N list (best first)
	Tickets []Ticket `json:"tickets"`

	// Currency is the currency all ticket prices are tagged with
	Currency string `json:"currency"`

	// TotalCandidates is the size of the merged pool the ranking considered
	TotalCandidates int `json:"total_candidates"`

	// Summary is a human-readable description of the top pick
	Summary string `json:"summary"`
}

// Empty reports whether the result contains no tickets.
func (r *RankedResult) Empty() bool {
	return len(r.Tickets) == 0
}

// Best returns the top-ranked ticket, or nil for an empty result.
func (r *RankedResult) Best() *Ticket {
	if len(r.Tickets) == 0 {
		return nil
	}
	return &r.Tickets[0]
}

// QueryResult is the settled outcome of a single date-pair query.
// This is used internally by the orchestrator when gathering fan-out results.
type QueryResult struct {
	// Pair is the date pair that was queried
	Pair DatePair

	// Batch holds the offers when the query succeeded
	Batch *FareBatch

	// Error is set if the query failed
	Error error

	// DurationMs is how long the query took
	DurationMs int64
}

// IsSuccess reports whether the query settled successfully.
func (qr *QueryResult) IsSuccess() bool {
	return qr.Error == nil
}

// SearchMetadata describes how a search executed.
type SearchMetadata struct {
	// QueriesIssued is the number of date-pair queries fanned out
	QueriesIssued int `json:"queries_issued"`

	// QueriesSucceeded is the number of queries that returned a batch
	QueriesSucceeded int `json:"queries_succeeded"`

	// QueriesFailed is the number of queries that failed after retries
	QueriesFailed int `json:"queries_failed"`

	// SearchTimeMs is the total search duration in milliseconds
	SearchTimeMs int64 `json:"search_time_ms"`

	// CacheHit indicates whether the results came from cache
	CacheHit bool `json:"cache_hit"`
}

// SearchOutcome bundles the ranked result with execution metadata.
type SearchOutcome struct {
	// Result is the ranked ticket list
	Result RankedResult `json:"result"`

	// Metadata describes the search execution
	Metadata SearchMetadata `json:"metadata"`
}
