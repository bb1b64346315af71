// Package session manages per-conversation dialog state. A dialog accumulates
// search parameters across turns until enough information exists to run a
// search, then resets on the terminal transition.
package session

import (
	"time"

	"github.com/farescout/fare-search-assistant/internal/domain"
)

// State is the dialog accumulation state.
type State string

// Dialog states. A dialog moves EMPTY → PARTIAL → COMPLETE and returns to
// EMPTY after a search runs (found or not) or on explicit reset.
const (
	StateEmpty    State = "empty"
	StatePartial  State = "partial"
	StateComplete State = "complete"
)

// Required parameter field names, used when prompting for missing data.
const (
	FieldOrigin        = "origin"
	FieldDestination   = "destination"
	FieldDepartureDate = "departure date"
)

// Dialog is the mutable per-session record of accumulated search parameters.
// It is owned by the conversation session and only ever touched by the single
// active turn for that session.
type Dialog struct {
	origin      string
	destination string
	departure   string
	returnDate  string
	flexibility string
	durationMin int
	durationMax int
}

// Merge overlays newly extracted parameters on the accumulated state.
// Fields present in the extraction overwrite earlier values of the same name;
// fields absent from the extraction are kept from before, so a conversation
// that repeatedly supplies partial information accumulates monotonically.
func (d *Dialog) Merge(params domain.ExtractedParams) {
	if params.Origin != "" {
		d.origin = params.Origin
	}
	if params.Destination != "" {
		d.destination = params.Destination
	}
	if params.DepartureDate != "" {
		d.departure = params.DepartureDate
	}
	if params.ReturnDate != "" {
		d.returnDate = params.ReturnDate
	}
	if params.Flexibility != "" {
		d.flexibility = params.Flexibility
	}
	if params.DurationDaysMin > 0 {
		d.durationMin = params.DurationDaysMin
	}
	if params.DurationDaysMax > 0 {
		d.durationMax = params.DurationDaysMax
	}
}

// State reports where the dialog stands in the accumulation state machine.
func (d *Dialog) State() State {
	if d.origin == "" && d.destination == "" && d.departure == "" &&
		d.returnDate == "" && d.flexibility == "" && d.durationMin == 0 && d.durationMax == 0 {
		return StateEmpty
	}
	if len(d.MissingFields()) > 0 {
		return StatePartial
	}
	return StateComplete
}

// MissingFields lists the required fields still absent after merging.
func (d *Dialog) MissingFields() []string {
	var missing []string
	if d.origin == "" {
		missing = append(missing, FieldOrigin)
	}
	if d.destination == "" {
		missing = append(missing, FieldDestination)
	}
	if d.departure == "" {
		missing = append(missing, FieldDepartureDate)
	}
	return missing
}

// Snapshot returns the accumulated parameters as an extraction-shaped object,
// suitable for giving the NLP extractor conversational context.
func (d *Dialog) Snapshot() domain.ExtractedParams {
	return domain.ExtractedParams{
		Origin:          d.origin,
		Destination:     d.destination,
		DepartureDate:   d.departure,
		ReturnDate:      d.returnDate,
		Flexibility:     d.flexibility,
		DurationDaysMin: d.durationMin,
		DurationDaysMax: d.durationMax,
	}
}

// SearchParameters materializes a validated parameter object.
// It fails with ErrInvalidParams when the dialog is not COMPLETE or the
// accumulated values violate a domain invariant.
func (d *Dialog) SearchParameters() (domain.SearchParameters, error) {
	var params domain.SearchParameters

	if missing := d.MissingFields(); len(missing) > 0 {
		return params, domain.WrapInvalidParams("dialog is missing required fields: %v", missing)
	}

	dep, err := domain.ParseDate(d.departure)
	if err != nil {
		return params, domain.WrapInvalidParams("accumulated departure date %q is invalid", d.departure)
	}

	params = domain.SearchParameters{
		Origin:        d.origin,
		Destination:   d.destination,
		DepartureDate: dep,
		Flexibility:   domain.FlexibilityExact,
	}

	if d.returnDate != "" {
		ret, err := domain.ParseDate(d.returnDate)
		if err != nil {
			return domain.SearchParameters{}, domain.WrapInvalidParams("accumulated return date %q is invalid", d.returnDate)
		}
		params.ReturnDate = &ret
	}

	if d.flexibility != "" {
		params.Flexibility = domain.DateFlexibility(d.flexibility)
	}

	if d.durationMin > 0 || d.durationMax > 0 {
		params.Duration = &domain.DurationRange{Min: d.durationMin, Max: d.durationMax}
		if params.Duration.Min == 0 {
			params.Duration.Min = params.Duration.Max
		}
		if params.Duration.Max == 0 {
			params.Duration.Max = params.Duration.Min
		}
	}

	if err := params.Validate(); err != nil {
		return domain.SearchParameters{}, err
	}
	return params, nil
}

// touchedAt supports idle-session sweeping by the store.
type dialogEntry struct {
	dialog    *Dialog
	touchedAt time.Time
}
