// Package nlp implements the parameter-extractor client. It sends free user
// text (plus the current dialog snapshot for context) to an OpenAI-compatible
// chat completions endpoint and parses the model's JSON reply into extracted
// search parameters. The engine treats this boundary as opaque: it produces a
// validated parameter object or nothing, never partially-typed garbage.
package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/farescout/fare-search-assistant/internal/domain"
)

// chatCompletionsPath is the extraction endpoint, relative to the API base.
const chatCompletionsPath = "/v1/chat/completions"

// systemPrompt instructs the model to return strict JSON only. Field names
// must match domain.ExtractedParams.
const systemPrompt = `You are a flight search assistant. Extract flight search parameters from the user's message.
Return ONLY a JSON object with these optional fields:
- "origin": 3-letter IATA code of the departure city
- "destination": 3-letter IATA code of the arrival city
- "departure_date": departure date as YYYY-MM-DD
- "return_date": return date as YYYY-MM-DD
- "flexibility": one of "exact", "start_of_month", "day_range", "relative_offset"
- "duration_days_min", "duration_days_max": trip length range in days
Omit any field the message does not mention. If the message contains no flight search information, return {}.`

// Config holds the extractor client settings.
type Config struct {
	// BaseURL is the OpenAI-compatible API base
	BaseURL string

	// APIKey authenticates requests
	APIKey string

	// Model is the chat model used for extraction
	Model string

	// Timeout bounds each extraction call
	Timeout time.Duration
}

// Client is the parameter-extractor client.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates an extractor client with the given configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Extractor extracts search parameters from free text.
type Extractor interface {
	// Extract returns the parameters found in the text, or ErrExtractionFailed
	// when the model produces no usable object.
	Extract(ctx context.Context, text string, snapshot domain.ExtractedParams) (domain.ExtractedParams, error)
}

// chatRequest is the OpenAI chat completion request shape.
type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

// chatMessage is one chat turn.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the OpenAI chat completion response shape.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Extract implements Extractor. The current dialog snapshot is passed as
// context so follow-up turns ("actually, from Saint Petersburg") resolve
// against what is already known.
func (c *Client) Extract(ctx context.Context, text string, snapshot domain.ExtractedParams) (domain.ExtractedParams, error) {
	var empty domain.ExtractedParams

	messages := []chatMessage{
		{Role: "system", Content: systemPrompt},
	}
	if !snapshot.IsEmpty() {
		known, _ := json.Marshal(snapshot)
		messages = append(messages, chatMessage{
			Role:    "system",
			Content: "Parameters already known from earlier turns: " + string(known),
		})
	}
	messages = append(messages, chatMessage{Role: "user", Content: text})

	payload, err := json.Marshal(chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    0,
		ResponseFormat: map[string]string{"type": "json_object"},
	})
	if err != nil {
		return empty, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(payload))
	if err != nil {
		return empty, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return empty, fmt.Errorf("%w: extractor returned status %d", domain.ErrExtractionFailed, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return empty, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	if len(parsed.Choices) == 0 {
		return empty, fmt.Errorf("%w: no choices in response", domain.ErrExtractionFailed)
	}

	return parseExtraction(parsed.Choices[0].Message.Content)
}

// parseExtraction decodes the model's JSON reply, tolerating markdown code
// fences, then normalizes and validates the result at the boundary.
func parseExtraction(content string) (domain.ExtractedParams, error) {
	var empty domain.ExtractedParams

	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var extracted domain.ExtractedParams
	if err := json.Unmarshal([]byte(content), &extracted); err != nil {
		return empty, fmt.Errorf("%w: model reply is not valid JSON", domain.ErrExtractionFailed)
	}

	extracted.Normalize()
	if err := extracted.Validate(); err != nil {
		// Malformed extractions are rejected here rather than propagated.
		return empty, fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	return extracted, nil
}

// Ensure Client implements Extractor at compile time.
var _ Extractor = (*Client)(nil)
