// Package http provides the HTTP handler layer for the fare search API.
package http

import (
	"strings"

	"github.com/farescout/fare-search-assistant/internal/domain"
	"github.com/farescout/fare-search-assistant/internal/usecase"
)

// ToDomainParams converts a validated SearchRequest to domain.SearchParameters.
// The request must have passed Validate first; date parsing cannot fail here.
func ToDomainParams(req *SearchRequest) domain.SearchParameters {
	dep, _ := domain.ParseDate(req.DepartureDate)

	params := domain.SearchParameters{
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureDate: dep,
		Flexibility:   domain.FlexibilityExact,
	}

	if req.ReturnDate != "" {
		ret, _ := domain.ParseDate(req.ReturnDate)
		params.ReturnDate = &ret
	}

	if req.Flexibility != "" {
		params.Flexibility = domain.DateFlexibility(strings.ToLower(req.Flexibility))
	}

	if req.DurationDays != nil {
		params.Duration = &domain.DurationRange{
			Min: req.DurationDays.Min,
			Max: req.DurationDays.Max,
		}
	}

	return params
}

// ToSearchOptions converts request fields to usecase.SearchOptions.
func ToSearchOptions(req *SearchRequest) usecase.SearchOptions {
	opts := usecase.DefaultSearchOptions()
	opts.DirectOnly = req.DirectOnly
	return opts
}
