package http

import (
	"github.com/farescout/fare-search-assistant/internal/domain"
)

// SearchResponseDTO is the data transfer object for search responses.
// It matches the expected API output format with snake_case fields.
type SearchResponseDTO struct {
	Found    bool        `json:"found"`
	Result   *ResultDTO  `json:"result,omitempty"`
	Metadata MetadataDTO `json:"metadata"`
}

// ResultDTO represents the ranked ticket list in the response.
type ResultDTO struct {
	Tickets         []TicketDTO `json:"tickets"`
	Currency        string      `json:"currency"`
	TotalCandidates int         `json:"total_candidates"`
	Summary         string      `json:"summary"`
}

// MetadataDTO contains metadata about the search execution.
type MetadataDTO struct {
	QueriesIssued    int   `json:"queries_issued"`
	QueriesSucceeded int   `json:"queries_succeeded"`
	QueriesFailed    int   `json:"queries_failed"`
	SearchTimeMs     int64 `json:"search_time_ms"`
	CacheHit         bool  `json:"cache_hit"`
}

// TicketDTO is the data transfer object for a single ranked ticket.
type TicketDTO struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Price       PriceDTO   `json:"price"`
	DepartureAt string     `json:"departure_at"`
	ReturnAt    string     `json:"return_at,omitempty"`
	Outbound    LegDTO     `json:"outbound"`
	Return      *LegDTO    `json:"return,omitempty"`
	Total       DurationDTO `json:"total_duration"`
	BookingLink string     `json:"booking_link,omitempty"`
	Score       float64    `json:"score"`
}

// PriceDTO represents price information.
type PriceDTO struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// LegDTO represents one leg of the trip.
type LegDTO struct {
	Duration  DurationDTO `json:"duration"`
	Transfers int         `json:"transfers"`
}

// DurationDTO represents a trip duration.
type DurationDTO struct {
	TotalMinutes int    `json:"total_minutes"`
	Formatted    string `json:"formatted"`
}

// MessageResponse is the response body for a conversational turn.
type MessageResponse struct {
	// SessionID identifies the conversation; echo it back on the next turn.
	SessionID string `json:"session_id"`

	// Status is one of: need_more_info, results, not_found
	Status string `json:"status"`

	// Reply is the assistant's text for this turn
	Reply string `json:"reply"`

	// Missing lists required fields the user still has to provide
	Missing []string `json:"missing,omitempty"`

	// Search holds the search response once the dialog completed
	Search *SearchResponseDTO `json:"search,omitempty"`
}

// Message turn statuses.
const (
	StatusNeedMoreInfo = "need_more_info"
	StatusResults      = "results"
	StatusNotFound     = "not_found"
)

// ToSearchResponseDTO converts a domain SearchOutcome to a SearchResponseDTO.
func ToSearchResponseDTO(outcome *domain.SearchOutcome) *SearchResponseDTO {
	if outcome == nil {
		return nil
	}

	dto := &SearchResponseDTO{
		Found: !outcome.Result.Empty(),
		Result: &ResultDTO{
			Tickets:         make([]TicketDTO, len(outcome.Result.Tickets)),
			Currency:        outcome.Result.Currency,
			TotalCandidates: outcome.Result.TotalCandidates,
			Summary:         outcome.Result.Summary,
		},
		Metadata: MetadataDTO{
			QueriesIssued:    outcome.Metadata.QueriesIssued,
			QueriesSucceeded: outcome.Metadata.QueriesSucceeded,
			QueriesFailed:    outcome.Metadata.QueriesFailed,
			SearchTimeMs:     outcome.Metadata.SearchTimeMs,
			CacheHit:         outcome.Metadata.CacheHit,
		},
	}

	for i, ticket := range outcome.Result.Tickets {
		dto.Result.Tickets[i] = ToTicketDTO(&ticket)
	}

	return dto
}

// ToTicketDTO converts a domain Ticket to a TicketDTO.
func ToTicketDTO(t *domain.Ticket) TicketDTO {
	dto := TicketDTO{
		Origin:      t.Origin,
		Destination: t.Destination,
		Price: PriceDTO{
			Amount:   t.Price,
			Currency: t.Currency,
		},
		DepartureAt: t.DepartureAt.Format("2006-01-02T15:04:05-07:00"),
		Outbound: LegDTO{
			Duration: DurationDTO{
				TotalMinutes: t.OutboundDurationMinutes,
				Formatted:    domain.FormatDuration(t.OutboundDurationMinutes),
			},
			Transfers: t.Transfers,
		},
		Total: DurationDTO{
			TotalMinutes: t.TotalDurationMinutes(),
			Formatted:    domain.FormatDuration(t.TotalDurationMinutes()),
		},
		BookingLink: t.BookingLink,
		Score:       t.Score,
	}

	if !t.ReturnAt.IsZero() {
		dto.ReturnAt = t.ReturnAt.Format("2006-01-02T15:04:05-07:00")
		dto.Return = &LegDTO{
			Duration: DurationDTO{
				TotalMinutes: t.ReturnDurationMinutes,
				Formatted:    domain.FormatDuration(t.ReturnDurationMinutes),
			},
			Transfers: t.ReturnTransfers,
		}
	}

	return dto
}

// NotFoundResponseDTO builds the response body for a search that found no
// tickets at all.
func NotFoundResponseDTO() *SearchResponseDTO {
	return &SearchResponseDTO{
		Found: false,
	}
}
