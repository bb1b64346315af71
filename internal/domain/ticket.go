package domain

import (
	"strconv"
	"time"
)

// Ticket represents a single candidate fare offer returned by the fare API.
// Tickets are produced fresh per query and never mutated after creation;
// the Score field is owned exclusively by the ranker, which operates on copies.
type Ticket struct {
	// Origin is the IATA code of the departure city
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival city
	Destination string `json:"destination"`

	// Price is the total fare amount (always positive for rankable tickets)
	Price float64 `json:"price"`

	// Currency is the ISO 4217 currency code the price is expressed in
	Currency string `json:"currency"`

	// DepartureAt is the outbound departure timestamp
	DepartureAt time.Time `json:"departure_at"`

	// ArrivalAt is the outbound arrival timestamp
	ArrivalAt time.Time `json:"arrival_at"`

	// ReturnAt is the inbound departure timestamp; zero for one-way offers
	ReturnAt time.Time `json:"return_at,omitempty"`

	// OutboundDurationMinutes is the outbound leg duration
	OutboundDurationMinutes int `json:"outbound_duration_minutes"`

	// ReturnDurationMinutes is the inbound leg duration; 0 for one-way offers
	ReturnDurationMinutes int `json:"return_duration_minutes,omitempty"`

	// Transfers is the number of outbound transfers
	Transfers int `json:"transfers"`

	// ReturnTransfers is the number of inbound transfers
	ReturnTransfers int `json:"return_transfers,omitempty"`

	// BookingLink is the relative booking URL on the fare aggregator
	BookingLink string `json:"booking_link,omitempty"`

	// Score is the ranking score computed by the ticket ranker.
	// Higher is better. Zero until ranked.
	Score float64 `json:"score,omitempty"`
}

// TotalDurationMinutes returns the combined trip duration: outbound plus
// return leg when present.
func (t *Ticket) TotalDurationMinutes() int {
	return t.OutboundDurationMinutes + t.ReturnDurationMinutes
}

// TotalTransfers returns the combined transfer count across both legs.
func (t *Ticket) TotalTransfers() int {
	return t.Transfers + t.ReturnTransfers
}

// Rankable reports whether the ticket can participate in ranking.
// A non-positive price cannot be normalized and excludes the ticket.
func (t *Ticket) Rankable() bool {
	return t.Price > 0
}

// FormatDuration renders minutes as a human-readable duration ("2h 30m").
func FormatDuration(totalMinutes int) string {
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	switch {
	case hours > 0 && mins > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(mins) + "m"
	case hours > 0:
		return strconv.Itoa(hours) + "h"
	default:
		return strconv.Itoa(mins) + "m"
	}
}
