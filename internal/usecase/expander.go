// Package usecase contains the business logic for the fare search engine.
// It expands flexible date requests, orchestrates concurrent fare queries
// with the Scatter-Gather pattern, and ranks the merged candidate pool.
package usecase

import (
	"time"

	"github.com/farescout/fare-search-assistant/internal/domain"
	"github.com/farescout/fare-search-assistant/internal/infrastructure/timeutil"
)

// Expansion limits.
const (
	// MaxDatePairs bounds the fan-out of a single request. Generation stops
	// deterministically once the cap is reached.
	MaxDatePairs = 20

	// startOfMonthDays is how many consecutive departure dates a
	// start-of-month request expands to.
	startOfMonthDays = 5

	// relativeOffsetDays is the half-width of the departure window around a
	// relative-offset anchor date.
	relativeOffsetDays = 2
)

// DateExpander turns a flexible date request into an ordered, deduplicated
// sequence of concrete date pairs to query.
type DateExpander struct {
	clock timeutil.Clock
}

// NewDateExpander creates a DateExpander. A nil clock defaults to real time.
func NewDateExpander(clock timeutil.Clock) *DateExpander {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	return &DateExpander{clock: clock}
}

// Expand produces the date pairs for the given parameters according to their
// flexibility mode. The result never exceeds MaxDatePairs.
func (e *DateExpander) Expand(params domain.SearchParameters) []domain.DatePair {
	b := newPairBuilder()

	switch params.Flexibility {
	case domain.FlexibilityStartOfMonth:
		e.expandStartOfMonth(&params, b)
	case domain.FlexibilityDayRange:
		e.expandDayRange(&params, b)
	case domain.FlexibilityRelativeOffset:
		e.expandRelativeOffset(&params, b)
	default: // domain.FlexibilityExact
		b.add(domain.DatePair{Departure: truncateToDay(params.DepartureDate), Return: params.ReturnDate})
	}

	return b.pairs
}

// expandStartOfMonth generates five consecutive departures from the 1st of
// the target month. With a fixed trip length each departure gets one paired
// return; with a duration range each departure gets returns sampled across
// the range; otherwise the pairs are one-way.
func (e *DateExpander) expandStartOfMonth(params *domain.SearchParameters, b *pairBuilder) {
	start := e.monthStart(params.DepartureDate)

	for day := 0; day < startOfMonthDays; day++ {
		dep := start.AddDate(0, 0, day)
		e.addPairsForDeparture(params, dep, b)
		if b.full() {
			return
		}
	}
}

// expandDayRange keeps the single known departure date and samples return
// dates across the explicit duration range.
func (e *DateExpander) expandDayRange(params *domain.SearchParameters, b *pairBuilder) {
	e.addPairsForDeparture(params, truncateToDay(params.DepartureDate), b)
}

// expandRelativeOffset generates a ±2-day departure window around the anchor
// date, preserving the trip length for each when one is known.
func (e *DateExpander) expandRelativeOffset(params *domain.SearchParameters, b *pairBuilder) {
	anchor := truncateToDay(params.DepartureDate)

	for offset := -relativeOffsetDays; offset <= relativeOffsetDays; offset++ {
		dep := anchor.AddDate(0, 0, offset)
		if length, ok := params.TripLength(); ok {
			ret := dep.AddDate(0, 0, length)
			b.add(domain.DatePair{Departure: dep, Return: &ret})
		} else {
			b.add(domain.DatePair{Departure: dep})
		}
		if b.full() {
			return
		}
	}
}

// addPairsForDeparture emits the pairs for one departure date: a single
// round-trip pair for a fixed length, sampled returns for a range, or a
// one-way pair when no return information is known.
func (e *DateExpander) addPairsForDeparture(params *domain.SearchParameters, dep time.Time, b *pairBuilder) {
	if length, ok := params.TripLength(); ok {
		ret := dep.AddDate(0, 0, length)
		b.add(domain.DatePair{Departure: dep, Return: &ret})
		return
	}

	if params.Duration != nil {
		// Adaptive sampling keeps the per-departure fan-out at ~4 queries.
		step := durationStep(params.Duration.Min, params.Duration.Max)
		for days := params.Duration.Min; days <= params.Duration.Max; days += step {
			ret := dep.AddDate(0, 0, days)
			b.add(domain.DatePair{Departure: dep, Return: &ret})
			if b.full() {
				return
			}
		}
		return
	}

	b.add(domain.DatePair{Departure: dep})
}

// monthStart resolves the 1st of the target month. An anchor whose month has
// already fully passed rolls over to the same month next year.
func (e *DateExpander) monthStart(anchor time.Time) time.Time {
	start := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)

	now := e.clock.Now().UTC()
	endOfWindow := start.AddDate(0, 0, startOfMonthDays)
	if endOfWindow.Before(now) {
		start = start.AddDate(1, 0, 0)
	}
	return start
}

// durationStep computes the adaptive return-date sampling step.
func durationStep(min, max int) int {
	step := (max - min) / 3
	if step < 2 {
		step = 2
	}
	return step
}

// truncateToDay normalizes a timestamp to date precision in UTC.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// pairBuilder accumulates ordered, deduplicated date pairs up to MaxDatePairs.
type pairBuilder struct {
	pairs []domain.DatePair
	seen  map[string]bool
}

func newPairBuilder() *pairBuilder {
	return &pairBuilder{seen: make(map[string]bool)}
}

func (b *pairBuilder) add(pair domain.DatePair) {
	if b.full() {
		return
	}
	key := pair.Key()
	if b.seen[key] {
		return
	}
	b.seen[key] = true
	b.pairs = append(b.pairs, pair)
}

func (b *pairBuilder) full() bool {
	return len(b.pairs) >= MaxDatePairs
}
