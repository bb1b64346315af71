package domain

import "context"

//go:generate mockgen -source=fareclient.go -destination=mock_fareclient.go -package=domain

// FareClient performs exactly one remote fare query for one concrete
// origin/destination/date-pair combination.
//
// Implementations must:
//   - perform a single request per call (retry policy belongs to the
//     orchestrator, never to the client)
//   - return all failure modes as errors, never panic through
//   - respect context cancellation
type FareClient interface {
	// SearchFares queries the fare API for one date pair and returns the raw
	// offers plus their currency, or a typed failure.
	SearchFares(ctx context.Context, query Query) (*FareBatch, error)
}
