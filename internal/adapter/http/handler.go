package http

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/farescout/fare-search-assistant/internal/adapter/http/response"
	"github.com/farescout/fare-search-assistant/internal/adapter/nlp"
	"github.com/farescout/fare-search-assistant/internal/domain"
	"github.com/farescout/fare-search-assistant/internal/session"
	"github.com/farescout/fare-search-assistant/internal/usecase"
)

// FareHandler handles HTTP requests for fare search endpoints, both the
// structured search API and the conversational message API.
type FareHandler struct {
	useCase   usecase.SearchUseCase
	extractor nlp.Extractor
	sessions  *session.Store
	log       zerolog.Logger
}

// NewFareHandler creates a new FareHandler with the given collaborators.
// The extractor and session store may be nil when the conversational
// endpoint is not wired; the structured search endpoint works without them.
func NewFareHandler(uc usecase.SearchUseCase, extractor nlp.Extractor, sessions *session.Store, log zerolog.Logger) *FareHandler {
	return &FareHandler{
		useCase:   uc,
		extractor: extractor,
		sessions:  sessions,
		log:       log,
	}
}

// Search handles POST /api/v1/search
//
// @Summary Search for fares
// @Description Expand the date request into concrete date pairs, query fares for each pair concurrently, and return the ranked best offers
// @Tags fares
// @Accept json
// @Produce json
// @Param request body SearchRequest true "Search parameters"
// @Success 200 {object} SearchResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/search [post]
func (h *FareHandler) Search(c echo.Context) error {
	var req SearchRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	params := ToDomainParams(&req)
	opts := ToSearchOptions(&req)

	outcome, err := h.useCase.Search(c.Request().Context(), params, opts)
	if err != nil {
		return h.handleSearchError(c, err)
	}

	return response.OK(c, ToSearchResponseDTO(outcome))
}

// Message handles POST /api/v1/messages
//
// @Summary Send a conversational message
// @Description Extract search parameters from free text, accumulate them in the session dialog, and either ask for the missing fields or run the search
// @Tags conversation
// @Accept json
// @Produce json
// @Param request body MessageRequest true "Conversational turn"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 422 {object} response.ErrorDetail "Extraction failed"
// @Failure 503 {object} response.ErrorDetail "Service unavailable"
// @Router /api/v1/messages [post]
func (h *FareHandler) Message(c echo.Context) error {
	var req MessageRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	ctx := c.Request().Context()
	dialog := h.sessions.Get(sessionID)

	extracted, err := h.extractor.Extract(ctx, req.Text, dialog.Snapshot())
	if err != nil {
		h.log.Warn().Err(err).Str("session_id", sessionID).Msg("Parameter extraction failed")
		if errors.Is(err, domain.ErrExtractionFailed) {
			return response.ExtractionFailed(c)
		}
		return h.handleSearchError(c, err)
	}

	dialog.Merge(extracted)

	if dialog.State() != session.StateComplete {
		missing := dialog.MissingFields()
		return response.OK(c, &MessageResponse{
			SessionID: sessionID,
			Status:    StatusNeedMoreInfo,
			Reply:     promptForMissing(missing),
			Missing:   missing,
		})
	}

	params, err := dialog.SearchParameters()
	if err != nil {
		// Accumulated values violate a domain invariant; the dialog cannot
		// make progress, so reset it rather than trap the user.
		h.sessions.Clear(sessionID)
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	// Running a search is the terminal transition for the dialog, whether
	// tickets are found or not.
	outcome, err := h.useCase.Search(ctx, params, usecase.DefaultSearchOptions())
	h.sessions.Clear(sessionID)

	if err != nil {
		if errors.Is(err, domain.ErrNoTicketsFound) {
			return response.OK(c, &MessageResponse{
				SessionID: sessionID,
				Status:    StatusNotFound,
				Reply:     "I could not find any tickets for those dates. Try different dates or another destination.",
				Search:    NotFoundResponseDTO(),
			})
		}
		return h.handleSearchError(c, err)
	}

	return response.OK(c, &MessageResponse{
		SessionID: sessionID,
		Status:    StatusResults,
		Reply:     outcome.Result.Summary,
		Search:    ToSearchResponseDTO(outcome),
	})
}

// Reset handles DELETE /api/v1/sessions/:id
// It clears the dialog state for the session.
func (h *FareHandler) Reset(c echo.Context) error {
	sessionID := c.Param("id")
	if sessionID == "" {
		return response.BadRequest(c, "session id is required")
	}

	h.sessions.Clear(sessionID)
	return c.NoContent(204)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *FareHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleSearchError maps domain errors to appropriate HTTP responses.
func (h *FareHandler) handleSearchError(c echo.Context, err error) error {
	// No tickets at all is a legitimate outcome, not a server failure
	if errors.Is(err, domain.ErrNoTicketsFound) {
		return response.OK(c, NotFoundResponseDTO())
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	if domain.IsInvalidParams(err) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	h.log.Error().Err(err).Msg("Search failed")
	return response.InternalServerError(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *FareHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// promptForMissing builds the follow-up question asking for the fields the
// dialog still needs.
func promptForMissing(missing []string) string {
	if len(missing) == 0 {
		return "Could you tell me more about your trip?"
	}
	return "To search for tickets I still need: " + strings.Join(missing, ", ") + "."
}
