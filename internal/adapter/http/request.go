// Package http provides the HTTP handler layer for the fare search API.
// It handles request parsing, validation, response formatting, and error
// mapping.
package http

import (
	"regexp"
	"strings"
	"time"

	"github.com/farescout/fare-search-assistant/internal/domain"
)

// SearchRequest represents the request body for a structured fare search.
type SearchRequest struct {
	// Origin is the IATA code of the departure city (e.g., "MOW")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival city.
	// Empty means an "anywhere" search.
	Destination string `json:"destination,omitempty"`

	// DepartureDate is the requested departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// ReturnDate is the requested return date in YYYY-MM-DD format (optional)
	ReturnDate string `json:"returnDate,omitempty"`

	// Flexibility is the date flexibility mode:
	// exact, start_of_month, day_range, relative_offset (default: exact)
	Flexibility string `json:"flexibility,omitempty"`

	// DurationDays is the desired trip length range in days (optional)
	DurationDays *DurationRangeDTO `json:"durationDays,omitempty"`

	// DirectOnly restricts the search to offers without transfers
	DirectOnly bool `json:"directOnly,omitempty"`
}

// DurationRangeDTO represents a trip-length range in days.
// A fixed trip length has min == max.
type DurationRangeDTO struct {
	// Min is the minimum trip length in days
	Min int `json:"min" example:"10"`

	// Max is the maximum trip length in days
	Max int `json:"max" example:"14"`
}

// MessageRequest represents one conversational turn.
type MessageRequest struct {
	// SessionID identifies the conversation; omitted on the first turn,
	// in which case the server assigns one.
	SessionID string `json:"sessionId,omitempty"`

	// Text is the user's free-text message
	Text string `json:"text"`
}

// Validation regex patterns.
var (
	locationCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)
	datePattern         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Valid flexibility modes (empty defaults to exact).
var validFlexibilities = map[string]bool{
	"":                true,
	"exact":           true,
	"start_of_month":  true,
	"day_range":       true,
	"relative_offset": true,
}

// ValidationErrors holds field-level validation errors.
type ValidationErrors struct {
	Errors []domain.ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Error()
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, domain.ValidationError{Field: field, Message: message})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for the API response.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		result[e.Field] = e.Message
	}
	return result
}

// Validate validates the search request, normalizing codes to uppercase.
func (r *SearchRequest) Validate() error {
	errs := &ValidationErrors{}

	r.validateOrigin(errs)
	r.validateDestination(errs)
	r.validateDates(errs)
	r.validateFlexibility(errs)
	r.validateDuration(errs)

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *SearchRequest) validateOrigin(errs *ValidationErrors) {
	if r.Origin == "" {
		errs.Add("origin", "origin is required")
		return
	}

	origin := strings.ToUpper(r.Origin)
	if !locationCodePattern.MatchString(origin) {
		errs.Add("origin", "origin must be a valid 3-letter IATA code")
		return
	}
	r.Origin = origin
}

func (r *SearchRequest) validateDestination(errs *ValidationErrors) {
	// Destination is optional: empty means an "anywhere" search.
	if r.Destination == "" {
		return
	}

	dest := strings.ToUpper(r.Destination)
	if !locationCodePattern.MatchString(dest) {
		errs.Add("destination", "destination must be a valid 3-letter IATA code")
		return
	}
	if dest == strings.ToUpper(r.Origin) {
		errs.Add("destination", "origin and destination must be different")
		return
	}
	r.Destination = dest
}

func (r *SearchRequest) validateDates(errs *ValidationErrors) {
	if r.DepartureDate == "" {
		errs.Add("departureDate", "departureDate is required")
		return
	}
	if !datePattern.MatchString(r.DepartureDate) {
		errs.Add("departureDate", "departureDate must be in YYYY-MM-DD format")
		return
	}
	dep, err := time.Parse("2006-01-02", r.DepartureDate)
	if err != nil {
		errs.Add("departureDate", "departureDate is not a valid date")
		return
	}

	if r.ReturnDate == "" {
		return
	}
	if !datePattern.MatchString(r.ReturnDate) {
		errs.Add("returnDate", "returnDate must be in YYYY-MM-DD format")
		return
	}
	ret, err := time.Parse("2006-01-02", r.ReturnDate)
	if err != nil {
		errs.Add("returnDate", "returnDate is not a valid date")
		return
	}
	if !ret.After(dep) {
		errs.Add("returnDate", "returnDate must be after departureDate")
	}
}

func (r *SearchRequest) validateFlexibility(errs *ValidationErrors) {
	if !validFlexibilities[strings.ToLower(r.Flexibility)] {
		errs.Add("flexibility", "flexibility must be one of: exact, start_of_month, day_range, relative_offset")
		return
	}
	r.Flexibility = strings.ToLower(r.Flexibility)
}

func (r *SearchRequest) validateDuration(errs *ValidationErrors) {
	if r.DurationDays == nil {
		if strings.ToLower(r.Flexibility) == string(domain.FlexibilityDayRange) {
			errs.Add("durationDays", "durationDays is required for day_range flexibility")
		}
		return
	}

	if r.DurationDays.Min < 1 {
		errs.Add("durationDays.min", "min must be at least 1")
	}
	if r.DurationDays.Max < r.DurationDays.Min {
		errs.Add("durationDays.max", "max must be greater than or equal to min")
	}
}

// Validate validates a conversational message request.
func (r *MessageRequest) Validate() error {
	errs := &ValidationErrors{}

	if strings.TrimSpace(r.Text) == "" {
		errs.Add("text", "text is required")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
