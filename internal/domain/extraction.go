package domain

import (
	"strings"
	"time"
)

// ExtractedParams is the partial parameter set returned by the NLP extractor
// for one conversation turn. All fields are optional: a turn may contribute
// anything from a single city to a complete request. Dates are carried as
// YYYY-MM-DD strings because that is what the extractor emits; they are
// parsed and validated here, at the boundary, so malformed extractions are
// rejected instead of propagating into the engine.
type ExtractedParams struct {
	// Origin is the IATA code of the departure city, if mentioned
	Origin string `json:"origin,omitempty"`

	// Destination is the IATA code of the arrival city, if mentioned
	Destination string `json:"destination,omitempty"`

	// DepartureDate is the departure date in YYYY-MM-DD, if mentioned
	DepartureDate string `json:"departure_date,omitempty"`

	// ReturnDate is the return date in YYYY-MM-DD, if mentioned
	ReturnDate string `json:"return_date,omitempty"`

	// Flexibility is the date flexibility mode, if the request was ambiguous
	Flexibility string `json:"flexibility,omitempty"`

	// DurationDaysMin / DurationDaysMax describe a trip-length range in days.
	// A fixed length has both set to the same value.
	DurationDaysMin int `json:"duration_days_min,omitempty"`
	DurationDaysMax int `json:"duration_days_max,omitempty"`
}

// IsEmpty reports whether the extraction carries no information at all.
func (e *ExtractedParams) IsEmpty() bool {
	return e.Origin == "" && e.Destination == "" &&
		e.DepartureDate == "" && e.ReturnDate == "" &&
		e.Flexibility == "" && e.DurationDaysMin == 0 && e.DurationDaysMax == 0
}

// Normalize uppercases location codes and lowercases the flexibility mode so
// downstream comparison is case-insensitive.
func (e *ExtractedParams) Normalize() {
	e.Origin = strings.ToUpper(strings.TrimSpace(e.Origin))
	e.Destination = strings.ToUpper(strings.TrimSpace(e.Destination))
	e.Flexibility = strings.ToLower(strings.TrimSpace(e.Flexibility))
}

// Validate rejects malformed extractions at the boundary. Present fields must
// be well-formed; absent fields are fine.
func (e *ExtractedParams) Validate() error {
	if e.Origin != "" && !locationCodeRegex.MatchString(e.Origin) {
		return WrapInvalidParams("extracted origin %q is not a 3-letter IATA code", e.Origin)
	}
	if e.Destination != "" && !locationCodeRegex.MatchString(e.Destination) {
		return WrapInvalidParams("extracted destination %q is not a 3-letter IATA code", e.Destination)
	}
	if e.DepartureDate != "" {
		if _, err := time.Parse(dateLayout, e.DepartureDate); err != nil {
			return WrapInvalidParams("extracted departure date %q is not a valid YYYY-MM-DD date", e.DepartureDate)
		}
	}
	if e.ReturnDate != "" {
		if _, err := time.Parse(dateLayout, e.ReturnDate); err != nil {
			return WrapInvalidParams("extracted return date %q is not a valid YYYY-MM-DD date", e.ReturnDate)
		}
	}
	if e.Flexibility != "" && !DateFlexibility(e.Flexibility).IsValid() {
		return WrapInvalidParams("extracted flexibility %q is not a known mode", e.Flexibility)
	}
	if e.DurationDaysMin < 0 || e.DurationDaysMax < 0 {
		return WrapInvalidParams("extracted duration range must be non-negative")
	}
	if e.DurationDaysMin > 0 && e.DurationDaysMax > 0 && e.DurationDaysMin > e.DurationDaysMax {
		return WrapInvalidParams("extracted duration range [%d,%d] is inverted", e.DurationDaysMin, e.DurationDaysMax)
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD extraction date. The caller must have
// validated the extraction first.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}
