// Package domain contains the core business entities and rules for the fare
// search engine. These entities are transport-agnostic and form the foundation
// upon which all other components are built.
package domain

import (
	"fmt"
	"regexp"
	"time"
)

// DateFlexibility describes how an ambiguous date request expands into
// concrete query dates.
type DateFlexibility string

// Supported flexibility modes.
const (
	// FlexibilityExact queries the requested dates as-is.
	FlexibilityExact DateFlexibility = "exact"

	// FlexibilityStartOfMonth queries the first five days of the target month.
	FlexibilityStartOfMonth DateFlexibility = "start_of_month"

	// FlexibilityDayRange queries one departure date with return dates sampled
	// across an explicit trip-length range.
	FlexibilityDayRange DateFlexibility = "day_range"

	// FlexibilityRelativeOffset queries a ±2-day window around the anchor date.
	FlexibilityRelativeOffset DateFlexibility = "relative_offset"
)

// IsValid reports whether the flexibility mode is one of the supported values.
func (f DateFlexibility) IsValid() bool {
	switch f {
	case FlexibilityExact, FlexibilityStartOfMonth, FlexibilityDayRange, FlexibilityRelativeOffset:
		return true
	}
	return false
}

// DurationRange is a trip length in days, expressed as an inclusive range.
// A fixed trip length has Min == Max.
type DurationRange struct {
	// Min is the minimum trip length in days
	Min int `json:"min"`

	// Max is the maximum trip length in days
	Max int `json:"max"`
}

// IsFixed reports whether the range collapses to a single trip length.
func (d DurationRange) IsFixed() bool {
	return d.Min == d.Max
}

// Valid reports whether the range is well-formed (positive, ordered).
func (d DurationRange) Valid() bool {
	return d.Min > 0 && d.Max >= d.Min
}

// SearchParameters is the normalized search request produced by the NLP
// boundary (or supplied directly via the API) after validation.
type SearchParameters struct {
	// Origin is the IATA code of the departure city (e.g., "MOW")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival city.
	// Empty means an "anywhere" search.
	Destination string `json:"destination,omitempty"`

	// DepartureDate is the requested departure date (date precision only)
	DepartureDate time.Time `json:"departure_date"`

	// ReturnDate is the requested return date, if a round trip was asked for.
	// When set it must be strictly after DepartureDate.
	ReturnDate *time.Time `json:"return_date,omitempty"`

	// Flexibility governs how DepartureDate expands into query dates
	Flexibility DateFlexibility `json:"flexibility"`

	// Duration is the desired trip length range in days. Meaningful only when
	// ReturnDate is absent but a round trip is wanted.
	Duration *DurationRange `json:"duration_days,omitempty"`
}

// locationCodeRegex matches valid IATA location codes (3 uppercase letters).
var locationCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// Validate checks the parameters against the domain invariants.
// Returns a wrapped ErrInvalidParams error if validation fails.
func (p *SearchParameters) Validate() error {
	if p.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidParams)
	}
	if !locationCodeRegex.MatchString(p.Origin) {
		return fmt.Errorf("%w: origin must be a 3-letter IATA code, got %q", ErrInvalidParams, p.Origin)
	}

	// Destination is optional ("anywhere" search), but must be a valid code
	// when present.
	if p.Destination != "" && !locationCodeRegex.MatchString(p.Destination) {
		return fmt.Errorf("%w: destination must be a 3-letter IATA code, got %q", ErrInvalidParams, p.Destination)
	}
	if p.Destination != "" && p.Origin == p.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidParams)
	}

	if p.DepartureDate.IsZero() {
		return fmt.Errorf("%w: departure date is required", ErrInvalidParams)
	}

	if p.ReturnDate != nil && !p.ReturnDate.After(p.DepartureDate) {
		return fmt.Errorf("%w: return date must be after departure date", ErrInvalidParams)
	}

	if !p.Flexibility.IsValid() {
		return fmt.Errorf("%w: unknown date flexibility %q", ErrInvalidParams, p.Flexibility)
	}

	// A day-range request is meaningless without the range itself.
	if p.Flexibility == FlexibilityDayRange && p.Duration == nil {
		return fmt.Errorf("%w: day_range flexibility requires a duration range", ErrInvalidParams)
	}

	if p.Duration != nil && !p.Duration.Valid() {
		return fmt.Errorf("%w: duration range must satisfy 0 < min <= max, got [%d,%d]",
			ErrInvalidParams, p.Duration.Min, p.Duration.Max)
	}

	return nil
}

// TripLength returns the fixed trip length in days, derived from either an
// explicit return date or a fixed duration range. The second return value is
// false when no fixed length is known.
func (p *SearchParameters) TripLength() (int, bool) {
	if p.ReturnDate != nil {
		return int(p.ReturnDate.Sub(p.DepartureDate).Hours() / 24), true
	}
	if p.Duration != nil && p.Duration.IsFixed() {
		return p.Duration.Min, true
	}
	return 0, false
}

// DatePair is one (departure date, optional return date) combination
// submitted as a single fare query.
type DatePair struct {
	// Departure is the outbound date (date precision only)
	Departure time.Time `json:"departure"`

	// Return is the inbound date; nil for one-way queries
	Return *time.Time `json:"return,omitempty"`
}

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// Key returns a stable identity string used for deduplication.
func (dp DatePair) Key() string {
	if dp.Return == nil {
		return dp.Departure.Format(dateLayout)
	}
	return dp.Departure.Format(dateLayout) + "/" + dp.Return.Format(dateLayout)
}

// OneWay reports whether the pair has no return leg.
func (dp DatePair) OneWay() bool {
	return dp.Return == nil
}

// Query is the input to a single fare query: the route plus one date pair.
type Query struct {
	// Origin is the IATA code of the departure city
	Origin string

	// Destination is the IATA code of the arrival city; empty for "anywhere"
	Destination string

	// Dates is the concrete date pair to query
	Dates DatePair

	// DirectOnly restricts the query to offers without transfers
	DirectOnly bool
}
