// Package aviasales implements the fare query client against the
// Travelpayouts/Aviasales prices_for_dates API. The client performs exactly
// one request per call and translates the wire format into domain tickets;
// retry policy and result merging belong to the orchestrator.
package aviasales

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/farescout/fare-search-assistant/internal/domain"
)

// pricesForDatesPath is the fare search endpoint, relative to the API base.
const pricesForDatesPath = "/aviasales/v3/prices_for_dates"

// queryLimit caps the number of offers requested per date pair.
const queryLimit = 30

// dateLayout is the wire format for query dates.
const dateLayout = "2006-01-02"

// Config holds the client settings.
type Config struct {
	// BaseURL is the API base (e.g., "https://api.travelpayouts.com")
	BaseURL string

	// Token is the API access credential
	Token string

	// Currency tags all queries (e.g., "rub")
	Currency string

	// Timeout bounds each request at the transport level
	Timeout time.Duration
}

// Client is the prices_for_dates fare client.
type Client struct {
	baseURL    string
	token      string
	currency   string
	httpClient *http.Client
}

// NewClient creates a fare client with the given configuration.
func NewClient(cfg Config) *Client {
	currency := cfg.Currency
	if currency == "" {
		currency = "rub"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/"),
		token:    cfg.Token,
		currency: currency,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// apiResponse is the wire shape of a prices_for_dates response.
type apiResponse struct {
	Success  bool        `json:"success"`
	Currency string      `json:"currency"`
	Data     []apiTicket `json:"data"`
	Error    string      `json:"error,omitempty"`
}

// apiTicket is one raw fare record on the wire.
type apiTicket struct {
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Price           float64 `json:"price"`
	DepartureAt     string  `json:"departure_at"`
	ArrivalAt       string  `json:"arrival_at"`
	ReturnAt        string  `json:"return_at"`
	DurationTo      int     `json:"duration_to"`
	DurationBack    int     `json:"duration_back"`
	Transfers       int     `json:"transfers"`
	ReturnTransfers int     `json:"return_transfers"`
	Link            string  `json:"link"`
}

// SearchFares implements domain.FareClient. It issues exactly one request for
// the given date pair and returns the raw offers, or a typed failure:
// network-level errors are retryable, remote API errors and malformed bodies
// are not.
func (c *Client) SearchFares(ctx context.Context, query domain.Query) (*domain.FareBatch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(query), nil)
	if err != nil {
		return nil, domain.NewQueryError(query.Dates, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewRetryableQueryError(query.Dates, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewRetryableQueryError(query.Dates, err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &domain.APIError{Status: resp.StatusCode, Message: errorMessage(body)}
		if retryableStatus(resp.StatusCode) {
			return nil, domain.NewRetryableQueryError(query.Dates, apiErr)
		}
		return nil, domain.NewQueryError(query.Dates, apiErr)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, domain.NewQueryError(query.Dates, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err))
	}

	if !parsed.Success {
		apiErr := &domain.APIError{Status: resp.StatusCode, Message: parsed.Error}
		return nil, domain.NewQueryError(query.Dates, apiErr)
	}

	return &domain.FareBatch{
		Tickets:  c.convertTickets(parsed.Data),
		Currency: strings.ToUpper(parsed.Currency),
	}, nil
}

// buildURL assembles the request URL with all query parameters.
func (c *Client) buildURL(query domain.Query) string {
	params := url.Values{}
	params.Set("currency", c.currency)
	params.Set("origin", query.Origin)
	if query.Destination != "" {
		params.Set("destination", query.Destination)
	}
	params.Set("departure_at", query.Dates.Departure.Format(dateLayout))
	if query.Dates.Return != nil {
		params.Set("return_at", query.Dates.Return.Format(dateLayout))
	}
	params.Set("sorting", "price")
	if query.DirectOnly {
		params.Set("direct", "true")
	} else {
		params.Set("direct", "false")
	}
	params.Set("limit", fmt.Sprintf("%d", queryLimit))
	params.Set("token", c.token)

	return c.baseURL + pricesForDatesPath + "?" + params.Encode()
}

// convertTickets maps raw fare records to domain tickets. Records with
// unparseable timestamps are kept with zero times rather than dropped; the
// ranker decides what is usable.
func (c *Client) convertTickets(records []apiTicket) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(records))
	for _, r := range records {
		tickets = append(tickets, domain.Ticket{
			Origin:                  r.Origin,
			Destination:             r.Destination,
			Price:                   r.Price,
			DepartureAt:             parseTimestamp(r.DepartureAt),
			ArrivalAt:               parseTimestamp(r.ArrivalAt),
			ReturnAt:                parseTimestamp(r.ReturnAt),
			OutboundDurationMinutes: r.DurationTo,
			ReturnDurationMinutes:   r.DurationBack,
			Transfers:               r.Transfers,
			ReturnTransfers:         r.ReturnTransfers,
			BookingLink:             r.Link,
		})
	}
	return tickets
}

// parseTimestamp parses an API timestamp, tolerating the empty string.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// errorMessage extracts an error string from a non-200 body, if present.
func errorMessage(body []byte) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	return parsed.Error
}

// retryableStatus reports whether an HTTP status is worth retrying.
func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

// Ensure Client implements domain.FareClient at compile time.
var _ domain.FareClient = (*Client)(nil)
