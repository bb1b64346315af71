package usecase

import (
	"fmt"
	"sort"

	"github.com/farescout/fare-search-assistant/internal/domain"
)

// Ranking constants. Price dominates globally through the band structure;
// duration and transfers only break ties among close-priced tickets.
const (
	// weightPrice scales the inverse normalized price term.
	weightPrice = 5.0

	// weightDuration scales the inverse normalized duration term.
	weightDuration = 4.0

	// weightTransfers scales the inverse transfer-count term.
	weightTransfers = 2.0

	// weightDurationBonus is added per duration unit inside multi-member
	// price bands, where prices are close enough that duration should
	// dominate the tie-break. It deliberately reuses the same normalization
	// base as the base score.
	weightDurationBonus = 2.0

	// priceNormBase normalizes prices; 10000 currency units score 1.0.
	priceNormBase = 10000.0

	// durationNormBase normalizes trip durations; 240 minutes score 1.0.
	durationNormBase = 240.0

	// priceBandThreshold is the relative price spread that keeps a ticket in
	// the current band.
	priceBandThreshold = 0.10

	// defaultTopN is how many tickets a ranked result carries.
	defaultTopN = 10
)

// RankerConfig allows overriding the ranking constants. The zero value of any
// field falls back to the canonical constant.
type RankerConfig struct {
	WeightPrice         float64
	WeightDuration      float64
	WeightTransfers     float64
	WeightDurationBonus float64
	PriceNormBase       float64
	DurationNormBase    float64
	PriceBandThreshold  float64
	TopN                int
}

// DefaultRankerConfig returns the canonical weight set.
func DefaultRankerConfig() RankerConfig {
	return RankerConfig{
		WeightPrice:         weightPrice,
		WeightDuration:      weightDuration,
		WeightTransfers:     weightTransfers,
		WeightDurationBonus: weightDurationBonus,
		PriceNormBase:       priceNormBase,
		DurationNormBase:    durationNormBase,
		PriceBandThreshold:  priceBandThreshold,
		TopN:                defaultTopN,
	}
}

// TicketRanker scores candidate tickets with a weighted multi-criteria
// formula and produces an ordered top-N list.
type TicketRanker struct {
	cfg RankerConfig
}

// NewTicketRanker creates a ranker. Zero-valued config fields fall back to
// the canonical constants.
func NewTicketRanker(cfg RankerConfig) *TicketRanker {
	def := DefaultRankerConfig()
	if cfg.WeightPrice == 0 {
		cfg.WeightPrice = def.WeightPrice
	}
	if cfg.WeightDuration == 0 {
		cfg.WeightDuration = def.WeightDuration
	}
	if cfg.WeightTransfers == 0 {
		cfg.WeightTransfers = def.WeightTransfers
	}
	if cfg.WeightDurationBonus == 0 {
		cfg.WeightDurationBonus = def.WeightDurationBonus
	}
	if cfg.PriceNormBase == 0 {
		cfg.PriceNormBase = def.PriceNormBase
	}
	if cfg.DurationNormBase == 0 {
		cfg.DurationNormBase = def.DurationNormBase
	}
	if cfg.PriceBandThreshold == 0 {
		cfg.PriceBandThreshold = def.PriceBandThreshold
	}
	if cfg.TopN == 0 {
		cfg.TopN = def.TopN
	}
	return &TicketRanker{cfg: cfg}
}

// Rank orders the merged candidate pool and truncates it to the top N.
//
// The pool is sorted ascending by price and partitioned into greedy price
// bands: a ticket joins the current band while its price stays within the
// band threshold of the band's first price. Within each band tickets are
// ordered descending by score; bands are concatenated in ascending price
// order, so no ticket from a pricier band ever precedes one from a cheaper
// band.
//
// Tickets with a non-positive price cannot be normalized and are excluded.
// An empty pool yields an empty result with a "nothing to rank" summary,
// never an error. The input slice is not mutated.
func (r *TicketRanker) Rank(pool []domain.Ticket, currency string) domain.RankedResult {
	candidates := make([]domain.Ticket, 0, len(pool))
	for _, t := range pool {
		if t.Rankable() {
			candidates = append(candidates, t)
		}
	}

	if len(candidates) == 0 {
		return domain.RankedResult{
			Tickets:         []domain.Ticket{},
			Currency:        currency,
			TotalCandidates: len(pool),
			Summary:         "nothing to rank: no valid ticket offers in the pool",
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Price < candidates[j].Price
	})

	ranked := make([]domain.Ticket, 0, len(candidates))
	for _, band := range r.partitionBands(candidates) {
		ranked = append(ranked, r.orderBand(band)...)
	}

	if len(ranked) > r.cfg.TopN {
		ranked = ranked[:r.cfg.TopN]
	}

	return domain.RankedResult{
		Tickets:         ranked,
		Currency:        currency,
		TotalCandidates: len(pool),
		Summary:         r.summarize(&ranked[0], currency),
	}
}

// partitionBands splits a price-sorted slice into greedy price bands.
func (r *TicketRanker) partitionBands(sorted []domain.Ticket) [][]domain.Ticket {
	var bands [][]domain.Ticket
	var band []domain.Ticket
	bandStart := 0.0

	for _, t := range sorted {
		if len(band) == 0 {
			band = []domain.Ticket{t}
			bandStart = t.Price
			continue
		}
		if (t.Price-bandStart)/bandStart <= r.cfg.PriceBandThreshold {
			band = append(band, t)
			continue
		}
		bands = append(bands, band)
		band = []domain.Ticket{t}
		bandStart = t.Price
	}
	if len(band) > 0 {
		bands = append(bands, band)
	}
	return bands
}

// orderBand scores every ticket in a band and orders the band descending by
// final score. Multi-member bands get the duration-priority bonus before
// ordering, so the faster itinerary wins among close-priced offers.
func (r *TicketRanker) orderBand(band []domain.Ticket) []domain.Ticket {
	scored := make([]domain.Ticket, len(band))
	copy(scored, band)

	multiMember := len(scored) > 1
	for i := range scored {
		score := r.baseScore(&scored[i])
		if multiMember {
			score += r.cfg.WeightDurationBonus * r.durationTerm(&scored[i])
		}
		scored[i].Score = score
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// baseScore computes the weighted multi-criteria score. Higher is better.
func (r *TicketRanker) baseScore(t *domain.Ticket) float64 {
	priceTerm := 1.0 / (t.Price / r.cfg.PriceNormBase)
	transferTerm := 1.0 / float64(t.TotalTransfers()+1)

	return r.cfg.WeightPrice*priceTerm +
		r.cfg.WeightDuration*r.durationTerm(t) +
		r.cfg.WeightTransfers*transferTerm
}

// durationTerm computes the inverse normalized duration. Offers without
// duration information contribute nothing rather than dividing by zero.
func (r *TicketRanker) durationTerm(t *domain.Ticket) float64 {
	minutes := t.TotalDurationMinutes()
	if minutes <= 0 {
		return 0
	}
	return 1.0 / (float64(minutes) / r.cfg.DurationNormBase)
}

// summarize builds the human-readable description of the top pick.
func (r *TicketRanker) summarize(best *domain.Ticket, currency string) string {
	route := best.Origin
	if best.Destination != "" {
		route += " → " + best.Destination
	}

	transfers := best.TotalTransfers()
	transferText := "non-stop"
	if transfers == 1 {
		transferText = "1 transfer"
	} else if transfers > 1 {
		transferText = fmt.Sprintf("%d transfers", transfers)
	}

	return fmt.Sprintf("Best pick: %s for %.0f %s, %s", route, best.Price, currency, transferText)
}
