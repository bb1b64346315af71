package usecase

// SearchOptions contains optional per-search parameters.
type SearchOptions struct {
	// DirectOnly restricts queries to offers without transfers
	DirectOnly bool

	// SkipCache bypasses the response cache for this search
	SkipCache bool
}

// DefaultSearchOptions returns SearchOptions with sensible defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		DirectOnly: false,
		SkipCache:  false,
	}
}
