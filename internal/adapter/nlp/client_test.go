package nlp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farescout/fare-search-assistant/internal/domain"
)

// extractorReply wraps model output in the chat completions response shape.
func extractorReply(content string) string {
	reply := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"content": content}},
		},
	}
	b, _ := json.Marshal(reply)
	return string(b)
}

func newTestExtractor(baseURL string) *Client {
	return NewClient(Config{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		Timeout: 2 * time.Second,
	})
}

func TestClient_Extract_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, chatCompletionsPath, r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		w.Write([]byte(extractorReply(`{"origin": "mow", "destination": "par", "departure_date": "2026-03-01"}`)))
	}))
	defer server.Close()

	client := newTestExtractor(server.URL)
	extracted, err := client.Extract(context.Background(), "tickets from Moscow to Paris on March 1st", domain.ExtractedParams{})

	require.NoError(t, err)
	assert.Equal(t, "MOW", extracted.Origin, "codes normalized to uppercase")
	assert.Equal(t, "PAR", extracted.Destination)
	assert.Equal(t, "2026-03-01", extracted.DepartureDate)
}

func TestClient_Extract_RequestPayload(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write([]byte(extractorReply(`{}`)))
	}))
	defer server.Close()

	client := newTestExtractor(server.URL)
	extracted, err := client.Extract(context.Background(), "hello", domain.ExtractedParams{})
	require.NoError(t, err)
	assert.True(t, extracted.IsEmpty())

	assert.Equal(t, "gpt-4o-mini", captured.Model)
	assert.Equal(t, float64(0), captured.Temperature)
	assert.Equal(t, "json_object", captured.ResponseFormat["type"])
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "user", captured.Messages[1].Role)
	assert.Equal(t, "hello", captured.Messages[1].Content)
}

func TestClient_Extract_SnapshotPassedAsContext(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &captured))
		w.Write([]byte(extractorReply(`{"destination": "BKK"}`)))
	}))
	defer server.Close()

	client := newTestExtractor(server.URL)
	snapshot := domain.ExtractedParams{Origin: "MOW", DepartureDate: "2026-02-01"}

	extracted, err := client.Extract(context.Background(), "to Bangkok instead", snapshot)
	require.NoError(t, err)
	assert.Equal(t, "BKK", extracted.Destination)

	// system prompt, known-parameters context, user turn
	require.Len(t, captured.Messages, 3)
	assert.Equal(t, "system", captured.Messages[1].Role)
	assert.Contains(t, captured.Messages[1].Content, "already known")
	assert.Contains(t, captured.Messages[1].Content, "MOW")
	assert.Contains(t, captured.Messages[1].Content, "2026-02-01")
}

func TestClient_Extract_StripsMarkdownFences(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(extractorReply("```json\n{\"origin\": \"LED\"}\n```")))
	}))
	defer server.Close()

	client := newTestExtractor(server.URL)
	extracted, err := client.Extract(context.Background(), "from Saint Petersburg", domain.ExtractedParams{})

	require.NoError(t, err)
	assert.Equal(t, "LED", extracted.Origin)
}

func TestClient_Extract_HTTPErrorWrapsExtractionFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestExtractor(server.URL)
	_, err := client.Extract(context.Background(), "anything", domain.ExtractedParams{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_Extract_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := newTestExtractor(server.URL)
	_, err := client.Extract(context.Background(), "anything", domain.ExtractedParams{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestClient_Extract_MalformedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := newTestExtractor(server.URL)
	_, err := client.Extract(context.Background(), "anything", domain.ExtractedParams{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestClient_Extract_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	client := newTestExtractor(server.URL)
	_, err := client.Extract(context.Background(), "anything", domain.ExtractedParams{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestClient_Extract_ModelReplyNotJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(extractorReply("I'm sorry, I cannot help with that.")))
	}))
	defer server.Close()

	client := newTestExtractor(server.URL)
	_, err := client.Extract(context.Background(), "anything", domain.ExtractedParams{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestClient_Extract_InvalidExtractionRejected(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad origin code", `{"origin": "MOSCOW"}`},
		{"bad date", `{"departure_date": "March 1st"}`},
		{"unknown flexibility", `{"flexibility": "whenever"}`},
		{"inverted duration range", `{"duration_days_min": 14, "duration_days_max": 10}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(extractorReply(tt.content)))
			}))
			defer server.Close()

			client := newTestExtractor(server.URL)
			_, err := client.Extract(context.Background(), "anything", domain.ExtractedParams{})

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrExtractionFailed)
		})
	}
}

func TestClient_Extract_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.Write([]byte(extractorReply(`{}`)))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	client := newTestExtractor(server.URL)
	_, err := client.Extract(ctx, "anything", domain.ExtractedParams{})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestParseExtraction_Valid(t *testing.T) {
	extracted, err := parseExtraction(`{"origin": "mow", "flexibility": "START_OF_MONTH"}`)

	require.NoError(t, err)
	assert.Equal(t, "MOW", extracted.Origin)
	assert.Equal(t, "start_of_month", extracted.Flexibility, "flexibility lowercased")
}

func TestParseExtraction_EmptyObject(t *testing.T) {
	extracted, err := parseExtraction(`{}`)

	require.NoError(t, err)
	assert.True(t, extracted.IsEmpty())
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{BaseURL: "https://api.openai.com/"})

	assert.Equal(t, "https://api.openai.com", client.baseURL)
	assert.Equal(t, 20*time.Second, client.httpClient.Timeout)
}
